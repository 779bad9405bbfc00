package domain

import "testing"

func TestPageOptionsNormalize(t *testing.T) {
	var p PageOptions
	p.Normalize()

	if p.Page != 1 {
		t.Errorf("expected default page 1, got %d", p.Page)
	}
	if p.Take != 10 {
		t.Errorf("expected default take 10, got %d", p.Take)
	}
	if p.Sort != SortLastCreated {
		t.Errorf("expected default sort %s, got %s", SortLastCreated, p.Sort)
	}
}

func TestPageOptionsSkip(t *testing.T) {
	p := PageOptions{Page: 3, Take: 10}
	if p.Skip() != 20 {
		t.Errorf("expected skip 20, got %d", p.Skip())
	}
}

func TestSortLookup(t *testing.T) {
	tests := []struct {
		sort   Sort
		column string
		order  string
	}{
		{SortLastCreated, "created_at", "DESC"},
		{SortFirstCreated, "created_at", "ASC"},
		{SortExpensive, "price", "DESC"},
		{SortInexpensive, "price", "ASC"},
	}

	for _, tt := range tests {
		opt, ok := SortValue[tt.sort]
		if !ok {
			t.Fatalf("missing sort %s", tt.sort)
		}
		if opt.Column != tt.column || opt.Order != tt.order {
			t.Errorf("%s: expected (%s,%s), got (%s,%s)", tt.sort, tt.column, tt.order, opt.Column, opt.Order)
		}
	}

	if ValidSort("RANDOM") {
		t.Error("unknown sort must be invalid")
	}
}
