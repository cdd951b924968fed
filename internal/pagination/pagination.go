package pagination

import (
	"strconv"

	"github.com/inkwell/inkwell/internal/models"
)

// Page is one window of a post listing
type Page struct {
	Items      []*models.Post `json:"items"`
	Number     int            `json:"number"`
	PerPage    int            `json:"per_page"`
	NumPages   int            `json:"num_pages"`
	TotalCount int64          `json:"total_count"`
}

// HasNext reports whether a later page exists
func (p *Page) HasNext() bool {
	return p.Number < p.NumPages
}

// HasPrevious reports whether an earlier page exists
func (p *Page) HasPrevious() bool {
	return p.Number > 1
}

// Pager computes 1-indexed page windows over a fixed page size
type Pager struct {
	PerPage int
}

// NewPager creates a pager with the given page size
func NewPager(perPage int) Pager {
	return Pager{PerPage: perPage}
}

// NumPages returns the number of pages needed for total items.
// An empty listing still has one (empty) page.
func (p Pager) NumPages(total int64) int {
	if total <= 0 {
		return 1
	}
	pages := int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
	return pages
}

// Clamp resolves a requested page number against the listing size.
// Out-of-range numbers, including anything below 1, resolve to the
// last valid page.
func (p Pager) Clamp(number int, total int64) int {
	pages := p.NumPages(total)
	if number < 1 || number > pages {
		return pages
	}
	return number
}

// Window returns the offset and limit for the resolved page number
func (p Pager) Window(number int) (offset, limit int) {
	return (number - 1) * p.PerPage, p.PerPage
}

// ParsePageNumber parses a raw page query parameter. An absent or
// non-numeric value defaults to page 1.
func ParsePageNumber(raw string) int {
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return n
}
