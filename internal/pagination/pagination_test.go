package pagination

import (
	"testing"
)

func TestParsePageNumber(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int
	}{
		{
			name:     "absent defaults to 1",
			raw:      "",
			expected: 1,
		},
		{
			name:     "non-numeric defaults to 1",
			raw:      "abc",
			expected: 1,
		},
		{
			name:     "valid number",
			raw:      "2",
			expected: 2,
		},
		{
			name:     "zero passes through for clamping",
			raw:      "0",
			expected: 0,
		},
		{
			name:     "negative passes through for clamping",
			raw:      "-3",
			expected: -3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePageNumber(tt.raw); got != tt.expected {
				t.Errorf("ParsePageNumber(%q) = %d, want %d", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestPagerNumPages(t *testing.T) {
	pager := NewPager(10)

	tests := []struct {
		name     string
		total    int64
		expected int
	}{
		{"empty listing has one page", 0, 1},
		{"exact fit", 10, 1},
		{"one over", 11, 2},
		{"thirteen posts", 13, 2},
		{"three full pages", 30, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pager.NumPages(tt.total); got != tt.expected {
				t.Errorf("NumPages(%d) = %d, want %d", tt.total, got, tt.expected)
			}
		})
	}
}

func TestPagerClamp(t *testing.T) {
	pager := NewPager(10)

	tests := []struct {
		name     string
		number   int
		total    int64
		expected int
	}{
		{"in range", 1, 13, 1},
		{"last page", 2, 13, 2},
		{"beyond last clamps to last", 5, 13, 2},
		{"zero clamps to last", 0, 13, 2},
		{"negative clamps to last", -1, 13, 2},
		{"empty listing clamps to 1", 7, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pager.Clamp(tt.number, tt.total); got != tt.expected {
				t.Errorf("Clamp(%d, %d) = %d, want %d", tt.number, tt.total, got, tt.expected)
			}
		})
	}
}

func TestPagerWindow(t *testing.T) {
	pager := NewPager(10)

	offset, limit := pager.Window(1)
	if offset != 0 || limit != 10 {
		t.Errorf("Window(1) = (%d, %d), want (0, 10)", offset, limit)
	}

	offset, limit = pager.Window(2)
	if offset != 10 || limit != 10 {
		t.Errorf("Window(2) = (%d, %d), want (10, 10)", offset, limit)
	}
}

func TestPageNavigation(t *testing.T) {
	page := &Page{Number: 1, NumPages: 2}
	if !page.HasNext() {
		t.Error("page 1 of 2 should have a next page")
	}
	if page.HasPrevious() {
		t.Error("page 1 should not have a previous page")
	}

	page = &Page{Number: 2, NumPages: 2}
	if page.HasNext() {
		t.Error("last page should not have a next page")
	}
	if !page.HasPrevious() {
		t.Error("page 2 should have a previous page")
	}
}
