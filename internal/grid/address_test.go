package grid

import (
	"errors"
	"testing"
)

func TestCellName(t *testing.T) {
	tests := []struct {
		name     string
		column   int
		row      int
		expected string
	}{
		{"first cell", 1, 1, "A1"},
		{"third column second row", 3, 2, "C2"},
		{"last single letter", 26, 1, "Z1"},
		{"first double letter", 27, 1, "AA1"},
		{"end of AZ block", 52, 3, "AZ3"},
		{"start of BA block", 53, 3, "BA3"},
		{"large row", 2, 120, "B120"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CellName(tc.column, tc.row)
			if err != nil {
				t.Fatalf("CellName(%d, %d) returned error: %v", tc.column, tc.row, err)
			}
			if got != tc.expected {
				t.Errorf("CellName(%d, %d) = %q; want %q", tc.column, tc.row, got, tc.expected)
			}
		})
	}
}

func TestCellName_InvalidCoordinates(t *testing.T) {
	if _, err := CellName(0, 1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("CellName(0, 1) error = %v; want ErrInvalidInput", err)
	}
	if _, err := CellName(1, 0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("CellName(1, 0) error = %v; want ErrInvalidInput", err)
	}
}

func TestParseCellName(t *testing.T) {
	column, row, err := ParseCellName("AA3")
	if err != nil {
		t.Fatalf("ParseCellName returned error: %v", err)
	}
	if column != 27 || row != 3 {
		t.Errorf("ParseCellName(\"AA3\") = (%d, %d); want (27, 3)", column, row)
	}

	if _, _, err := ParseCellName("3A"); err == nil {
		t.Error("ParseCellName(\"3A\") succeeded; want error")
	}
}

func TestCellToPage_RowMajorOrder(t *testing.T) {
	pairs, err := CellToPage(1, 9, 3, 3)
	if err != nil {
		t.Fatalf("CellToPage returned error: %v", err)
	}

	expected := []CellPage{
		{"A1", 1}, {"B1", 2}, {"C1", 3},
		{"A2", 4}, {"B2", 5}, {"C2", 6},
		{"A3", 7}, {"B3", 8}, {"C3", 9},
	}
	if len(pairs) != len(expected) {
		t.Fatalf("got %d entries; want %d", len(pairs), len(expected))
	}
	for i, want := range expected {
		if pairs[i] != want {
			t.Errorf("entry %d = %+v; want %+v", i, pairs[i], want)
		}
	}
}

func TestCellToPage_PartialFill(t *testing.T) {
	pairs, err := CellToPage(1, 5, 2, 3)
	if err != nil {
		t.Fatalf("CellToPage returned error: %v", err)
	}
	if len(pairs) != 5 {
		t.Fatalf("got %d entries; want 5", len(pairs))
	}
	if last := pairs[4]; last.Address != "B2" || last.Page != 5 {
		t.Errorf("last entry = %+v; want {B2 5}", last)
	}
}

func TestCellToPage_StartPageOffset(t *testing.T) {
	pairs, err := CellToPage(100, 4, 2, 2)
	if err != nil {
		t.Fatalf("CellToPage returned error: %v", err)
	}
	expected := []CellPage{{"A1", 100}, {"B1", 101}, {"A2", 102}, {"B2", 103}}
	for i, want := range expected {
		if pairs[i] != want {
			t.Errorf("entry %d = %+v; want %+v", i, pairs[i], want)
		}
	}
}

func TestCellToPage_WideGridColumnOverflow(t *testing.T) {
	pairs, err := CellToPage(1, 27, 1, 27)
	if err != nil {
		t.Fatalf("CellToPage returned error: %v", err)
	}
	if first := pairs[0].Address; first != "A1" {
		t.Errorf("column 1 address = %q; want \"A1\"", first)
	}
	if last := pairs[26].Address; last != "AA1" {
		t.Errorf("column 27 address = %q; want \"AA1\"", last)
	}
}

func TestCellToPage_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		startPage int
		pageCount int
		rows      int
		columns   int
	}{
		{"zero page count", 1, 0, 3, 3},
		{"negative page count", 1, -1, 3, 3},
		{"zero rows", 1, 4, 0, 3},
		{"zero columns", 1, 4, 3, 0},
		{"pages exceed capacity", 1, 10, 3, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CellToPage(tc.startPage, tc.pageCount, tc.rows, tc.columns)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("CellToPage error = %v; want ErrInvalidInput", err)
			}
		})
	}
}

func TestInvertMap_Bijection(t *testing.T) {
	configs := []struct {
		startPage, pageCount, rows, columns int
	}{
		{1, 9, 3, 3},
		{1, 5, 2, 3},
		{17, 30, 6, 5},
		{1, 27, 1, 27},
		{500, 1, 1, 1},
	}

	for _, c := range configs {
		pairs, err := CellToPage(c.startPage, c.pageCount, c.rows, c.columns)
		if err != nil {
			t.Fatalf("CellToPage(%+v) returned error: %v", c, err)
		}
		inverse, err := InvertMap(pairs)
		if err != nil {
			t.Fatalf("InvertMap(%+v) returned error: %v", c, err)
		}
		if len(inverse) != c.pageCount {
			t.Errorf("inverse of %+v has %d entries; want %d", c, len(inverse), c.pageCount)
		}
		for _, cp := range pairs {
			if got := inverse[cp.Page]; got != cp.Address {
				t.Errorf("inverse[%d] = %q; want %q", cp.Page, got, cp.Address)
			}
		}
		for page := c.startPage; page < c.startPage+c.pageCount; page++ {
			if _, ok := inverse[page]; !ok {
				t.Errorf("inverse of %+v missing page %d", c, page)
			}
		}
	}
}

func TestInvertMap_DuplicatePage(t *testing.T) {
	// Hand-built corrupt map; CellToPage can never produce one.
	pairs := []CellPage{{"A1", 1}, {"B1", 2}, {"C1", 1}}

	_, err := InvertMap(pairs)
	if !errors.Is(err, ErrDuplicatePage) {
		t.Fatalf("InvertMap error = %v; want ErrDuplicatePage", err)
	}

	var consistency *ConsistencyError
	if !errors.As(err, &consistency) {
		t.Fatalf("InvertMap error %T is not a *ConsistencyError", err)
	}
	if consistency.Page != 1 || consistency.First != "A1" || consistency.Cell != "C1" {
		t.Errorf("ConsistencyError = %+v; want page 1 between A1 and C1", consistency)
	}
}
