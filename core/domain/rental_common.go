package domain

import (
	"time"

	"github.com/google/uuid"
)

// Base carries the columns shared by every entity: uuid primary key,
// creation/update timestamps and a soft-delete marker. Reads exclude rows
// where DeletedAt is set.
type Base struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// NewBase mints a Base with a fresh uuid and matching timestamps
func NewBase() Base {
	now := time.Now().UTC()
	return Base{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Sort enumerates the supported listing orders
type Sort string

const (
	SortLastCreated  Sort = "LAST_CREATED"
	SortFirstCreated Sort = "FIRST_CREATED"
	SortExpensive    Sort = "EXPENSIVE"
	SortInexpensive  Sort = "INEXPENSIVE"
)

// SortOption maps a Sort to a concrete column and direction
type SortOption struct {
	Column string
	Order  string
}

// SortValue is the fixed lookup table for listing sorts. Unknown sorts are
// rejected at parse time, not here.
var SortValue = map[Sort]SortOption{
	SortLastCreated:  {Column: "created_at", Order: "DESC"},
	SortFirstCreated: {Column: "created_at", Order: "ASC"},
	SortExpensive:    {Column: "price", Order: "DESC"},
	SortInexpensive:  {Column: "price", Order: "ASC"},
}

// ValidSort reports whether s is a known sort value
func ValidSort(s Sort) bool {
	_, ok := SortValue[s]
	return ok
}

// PageOptions carries the pagination/filter parameters of a listing call
type PageOptions struct {
	Keyword string `json:"keyword,omitempty"`
	Sort    Sort   `json:"sort"`
	Page    int    `json:"page"`
	Take    int    `json:"take"`
}

// Normalize applies the defaults of the HTTP surface: page 1, take 10,
// newest-first sort.
func (p *PageOptions) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Take < 1 {
		p.Take = 10
	}
	if p.Sort == "" {
		p.Sort = SortLastCreated
	}
}

// Skip returns the row offset for the requested page
func (p *PageOptions) Skip() int {
	return (p.Page - 1) * p.Take
}
