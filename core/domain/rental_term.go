package domain

import (
	"time"

	"github.com/google/uuid"
)

// Term records a member's legal consents. Its id equals the owning user's id.
type Term struct {
	ID             uuid.UUID `json:"id" db:"id"`
	AgreeOfTerm    bool      `json:"agree_of_term" db:"agree_of_term"`
	AgreeFourteen  bool      `json:"agree_fourteen" db:"agree_fourteen"`
	AgreeOfService bool      `json:"agree_of_service" db:"agree_of_service"`
	AgreeOfEvent   bool      `json:"agree_of_event" db:"agree_of_event"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
