package domain

import (
	"time"

	"github.com/google/uuid"
)

// Payment is a registered card. CardNumber and CardCvc are stored
// AES-256-GCM encrypted; the domain struct always carries plaintext.
type Payment struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ProfileID   uuid.UUID `json:"profile_id" db:"profile_id"`
	CardCompany string    `json:"card_company" db:"card_company"`
	CardNumber  string    `json:"card_number" db:"card_number"`
	CardCvc     string    `json:"-" db:"card_cvc"`
	CardExpire  string    `json:"card_expire" db:"card_expire"`
	CardAlias   string    `json:"card_alias,omitempty" db:"card_alias"`
	IsMain      bool      `json:"is_main" db:"is_main"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// MaskedNumber renders the card number with all but the last four digits hidden
func (p *Payment) MaskedNumber() string {
	digits := 0
	for _, r := range p.CardNumber {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits <= 4 {
		return p.CardNumber
	}

	seen := 0
	masked := make([]rune, 0, len(p.CardNumber))
	for _, r := range p.CardNumber {
		if r >= '0' && r <= '9' {
			seen++
			if seen <= digits-4 {
				masked = append(masked, '*')
				continue
			}
		}
		masked = append(masked, r)
	}
	return string(masked)
}
