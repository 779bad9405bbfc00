package domain

import "github.com/google/uuid"

// Comment is a review on a car or an accommodation. Exactly one of CarID
// and AccommodationID is set.
type Comment struct {
	Base
	Contents        string     `json:"contents" db:"contents"`
	Rating          int        `json:"rating" db:"rating"`
	UserID          uuid.UUID  `json:"user_id" db:"user_id"`
	CarID           *uuid.UUID `json:"car_id,omitempty" db:"car_id"`
	AccommodationID *uuid.UUID `json:"accommodation_id,omitempty" db:"accommodation_id"`

	Author *User `json:"author,omitempty" db:"-"`
}
