package domain

import (
	"time"

	"github.com/google/uuid"
)

// Gender of the profile owner
type Gender string

const (
	GenderDefault Gender = "default"
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
)

// Grade is the loyalty tier
type Grade string

const (
	GradeBronze Grade = "bronze"
	GradeSilver Grade = "silver"
	GradeGold   Grade = "gold"
	GradeVIP    Grade = "vip"
)

// Profile holds extended member data. Its id equals the owning user's id.
type Profile struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Phone     string     `json:"phone,omitempty" db:"phone"`
	Address   string     `json:"address,omitempty" db:"address"`
	Birth     *time.Time `json:"birth,omitempty" db:"birth"`
	Gender    Gender     `json:"gender" db:"gender"`
	Grade     Grade      `json:"grade" db:"grade"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`

	Payments []*Payment `json:"payments,omitempty" db:"-"`
}
