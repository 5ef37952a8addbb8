package grid

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// CellPage is one entry of the forward cell-to-page map.
type CellPage struct {
	Address string `json:"address"`
	Page    int    `json:"page"`
}

// CellName renders the spreadsheet-style address for a 1-based column and
// row, e.g. CellName(3, 2) == "C2". Columns beyond 26 use the bijective
// base-26 letter sequence (27 == "AA"). Both the address maps and the sheet
// labels derive letters through this one path so they cannot drift apart.
func CellName(column, row int) (string, error) {
	if column < 1 || row < 1 {
		return "", fmt.Errorf("cell coordinates must be positive, got column %d row %d: %w", column, row, ErrInvalidInput)
	}
	letters, err := excelize.ColumnNumberToName(column)
	if err != nil {
		return "", fmt.Errorf("could not name column %d: %w", column, err)
	}
	return letters + strconv.Itoa(row), nil
}

// ColumnLabel returns just the letter part of a 1-based column's address.
func ColumnLabel(column int) (string, error) {
	if column < 1 {
		return "", fmt.Errorf("column must be positive, got %d: %w", column, ErrInvalidInput)
	}
	letters, err := excelize.ColumnNumberToName(column)
	if err != nil {
		return "", fmt.Errorf("could not name column %d: %w", column, err)
	}
	return letters, nil
}

// ParseCellName splits an address like "AA3" into its 1-based column and
// row indices.
func ParseCellName(address string) (column, row int, err error) {
	column, row, err = excelize.CellNameToCoordinates(address)
	if err != nil {
		return 0, 0, fmt.Errorf("could not parse cell address %q: %w", address, err)
	}
	return column, row, nil
}

// CellToPage builds the forward map from cell addresses to page numbers for
// a rows x columns grid, filling cells in row-major order with consecutive
// page numbers starting at startPage. Cells past the last page stay
// unoccupied.
func CellToPage(startPage, pageCount, rows, columns int) ([]CellPage, error) {
	if pageCount <= 0 {
		return nil, fmt.Errorf("page count must be positive, got %d: %w", pageCount, ErrInvalidInput)
	}
	if rows <= 0 || columns <= 0 {
		return nil, fmt.Errorf("grid shape must be positive, got %dx%d: %w", rows, columns, ErrInvalidInput)
	}
	if pageCount > rows*columns {
		return nil, fmt.Errorf("%d pages exceed grid capacity %d: %w", pageCount, rows*columns, ErrInvalidInput)
	}

	pairs := make([]CellPage, 0, pageCount)
	page := startPage
	lastPage := startPage + pageCount - 1
	for row := 1; row <= rows; row++ {
		for column := 1; column <= columns; column++ {
			if page > lastPage {
				return pairs, nil
			}
			address, err := CellName(column, row)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, CellPage{Address: address, Page: page})
			page++
		}
	}
	return pairs, nil
}

// InvertMap builds the page-to-address inverse of a forward map. A repeated
// page number is a ConsistencyError: it cannot happen for maps built by
// CellToPage, so hitting it means the mapping code is broken.
func InvertMap(pairs []CellPage) (map[int]string, error) {
	inverse := make(map[int]string, len(pairs))
	for _, cp := range pairs {
		if first, ok := inverse[cp.Page]; ok {
			return nil, &ConsistencyError{Page: cp.Page, First: first, Cell: cp.Address}
		}
		inverse[cp.Page] = cp.Address
	}
	return inverse, nil
}
