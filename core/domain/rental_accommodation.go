package domain

import "time"

// AccommodationType buckets stays by kind
type AccommodationType string

const (
	AccommodationHotel   AccommodationType = "hotel"
	AccommodationPension AccommodationType = "pension"
	AccommodationResort  AccommodationType = "resort"
	AccommodationCamping AccommodationType = "camping"
)

// Accommodation is a bookable stay
type Accommodation struct {
	Base
	Name        string            `json:"name" db:"name"`
	Area        string            `json:"area" db:"area"`
	Type        AccommodationType `json:"type" db:"type"`
	ReservedAt  *time.Time        `json:"reserved_at" db:"reserved_at"`
	Price       int               `json:"price" db:"price"`
	Personnel   int               `json:"personnel" db:"personnel"`
	Information string            `json:"information" db:"information"`
	Imgs        []string          `json:"imgs,omitempty" db:"imgs"`
}
