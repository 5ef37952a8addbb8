package grid

import (
	"errors"
	"fmt"
)

// ErrInvalidInput indicates a caller-fixable input error: non-positive
// counts, gutters larger than the canvas, or more images than cells.
var ErrInvalidInput = errors.New("invalid input")

// ErrDegenerateLayout indicates the planner could not produce a layout with
// positive cell dimensions for the given canvas and gutters.
var ErrDegenerateLayout = errors.New("degenerate layout")

// ErrDuplicatePage indicates the same page number appeared twice while
// inverting a cell-to-page map. This is unreachable for maps built by
// CellToPage and signals a broken mapping, not bad input.
var ErrDuplicatePage = errors.New("duplicate page number")

// ConsistencyError reports the page and cells involved in a duplicate-page
// violation found during map inversion.
type ConsistencyError struct {
	Page  int
	First string // cell already holding the page
	Cell  string // cell that tried to claim it again
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("page %d mapped to both %s and %s: %v", e.Page, e.First, e.Cell, ErrDuplicatePage)
}

func (e *ConsistencyError) Unwrap() error {
	return ErrDuplicatePage
}
