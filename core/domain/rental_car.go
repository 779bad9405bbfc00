package domain

// Classification buckets cars by size class
type Classification string

const (
	ClassificationCompact  Classification = "compact"
	ClassificationMidsize  Classification = "midsize"
	ClassificationFullsize Classification = "fullsize"
	ClassificationSUV      Classification = "suv"
	ClassificationVan      Classification = "van"
)

// Fuel is the car's fuel type
type Fuel string

const (
	FuelGasoline Fuel = "gasoline"
	FuelDiesel   Fuel = "diesel"
	FuelEV       Fuel = "ev"
	FuelHybrid   Fuel = "hybrid"
)

// ValidClassification reports whether c is a known size class
func ValidClassification(c Classification) bool {
	switch c {
	case ClassificationCompact, ClassificationMidsize, ClassificationFullsize, ClassificationSUV, ClassificationVan:
		return true
	}
	return false
}

// ValidFuel reports whether f is a known fuel type
func ValidFuel(f Fuel) bool {
	switch f {
	case FuelGasoline, FuelDiesel, FuelEV, FuelHybrid:
		return true
	}
	return false
}

// Transmission is the gearbox type
type Transmission string

const (
	TransmissionAuto   Transmission = "auto"
	TransmissionManual Transmission = "manual"
)

// Car is a rentable vehicle. (Name, Grade, Fuel, Year) is unique.
type Car struct {
	Base
	Name           string         `json:"name" db:"name"`
	Grade          string         `json:"grade,omitempty" db:"grade"`
	Classification Classification `json:"classification" db:"classification"`
	Price          int            `json:"price" db:"price"`
	Year           int            `json:"year,omitempty" db:"year"`
	CarNo          string         `json:"car_no" db:"car_no"`
	Transmission   Transmission   `json:"transmission" db:"transmission"`
	Mileage        int            `json:"mileage" db:"mileage"`
	Displacement   int            `json:"displacement" db:"displacement"`
	Fuel           Fuel           `json:"fuel" db:"fuel"`
	Imgs           []string       `json:"imgs,omitempty" db:"imgs"`
}

// CarFilter narrows car listings beyond the shared page options
type CarFilter struct {
	PageOptions
	Classification *Classification `json:"classification,omitempty"`
	Fuel           *Fuel           `json:"fuel,omitempty"`
	PriceMin       *int            `json:"price_min,omitempty"`
	PriceMax       *int            `json:"price_max,omitempty"`
}
