package response

import "testing"

func TestNewPageMeta(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		take      int
		itemCount int
		pageCount int
		hasBefore bool
		hasNext   bool
	}{
		{
			name:      "first page of many",
			page:      1,
			take:      10,
			itemCount: 25,
			pageCount: 3,
			hasBefore: false,
			hasNext:   true,
		},
		{
			name:      "last partial page of 15 items",
			page:      2,
			take:      10,
			itemCount: 15,
			pageCount: 2,
			hasBefore: true,
			hasNext:   false,
		},
		{
			name:      "exact multiple",
			page:      2,
			take:      5,
			itemCount: 10,
			pageCount: 2,
			hasBefore: true,
			hasNext:   false,
		},
		{
			name:      "single item",
			page:      1,
			take:      10,
			itemCount: 1,
			pageCount: 1,
			hasBefore: false,
			hasNext:   false,
		},
		{
			name:      "middle page",
			page:      2,
			take:      10,
			itemCount: 31,
			pageCount: 4,
			hasBefore: true,
			hasNext:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := NewPageMeta(tt.page, tt.take, tt.itemCount)
			if meta.PageCount != tt.pageCount {
				t.Errorf("page count: expected %d, got %d", tt.pageCount, meta.PageCount)
			}
			if meta.HasBeforePage != tt.hasBefore {
				t.Errorf("has before: expected %v, got %v", tt.hasBefore, meta.HasBeforePage)
			}
			if meta.HasNextPage != tt.hasNext {
				t.Errorf("has next: expected %v, got %v", tt.hasNext, meta.HasNextPage)
			}
			if meta.ItemCount != tt.itemCount {
				t.Errorf("item count: expected %d, got %d", tt.itemCount, meta.ItemCount)
			}
		})
	}
}
