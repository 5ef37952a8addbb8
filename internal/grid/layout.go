// Package grid plans, addresses and composes atlas sheets: grid rasters of
// page thumbnails with spreadsheet-style cell labels.
package grid

import (
	"fmt"
	"math"
)

// Default canvas and gutter sizes, used when PlanOptions fields are zero.
const (
	DefaultMaxCanvasWidth     = 1792
	DefaultMaxCanvasHeight    = 1024
	DefaultRowGutterWidth     = 50
	DefaultColumnGutterHeight = 50
)

// Layout describes the shape of one atlas sheet: the grid dimensions, the
// thumbnail size of each cell and the label gutters it was planned with.
// A Layout is built once per sheet and never modified.
type Layout struct {
	Rows               int
	Columns            int
	CellWidth          int
	CellHeight         int
	RowGutterWidth     int // left gutter reserved for row numerals
	ColumnGutterHeight int // top gutter reserved for column letters
}

// Capacity returns the number of cells in the grid.
func (l Layout) Capacity() int {
	return l.Rows * l.Columns
}

// RasterWidth returns the pixel width of the composed sheet.
func (l Layout) RasterWidth() int {
	return l.Columns*l.CellWidth + l.RowGutterWidth
}

// RasterHeight returns the pixel height of the composed sheet.
func (l Layout) RasterHeight() int {
	return l.Rows*l.CellHeight + l.ColumnGutterHeight
}

// PlanOptions bounds the canvas the planner may fill. Zero fields fall back
// to the package defaults.
type PlanOptions struct {
	MaxCanvasWidth     int
	MaxCanvasHeight    int
	RowGutterWidth     int
	ColumnGutterHeight int
}

func (o PlanOptions) withDefaults() PlanOptions {
	if o.MaxCanvasWidth == 0 {
		o.MaxCanvasWidth = DefaultMaxCanvasWidth
	}
	if o.MaxCanvasHeight == 0 {
		o.MaxCanvasHeight = DefaultMaxCanvasHeight
	}
	if o.RowGutterWidth == 0 {
		o.RowGutterWidth = DefaultRowGutterWidth
	}
	if o.ColumnGutterHeight == 0 {
		o.ColumnGutterHeight = DefaultColumnGutterHeight
	}
	return o
}

// PlanLayout chooses the grid shape and cell size that best fill the canvas
// for itemCount thumbnails sharing the aspect ratio refWidth:refHeight.
//
// The planner sweeps candidate row counts from 1 to itemCount. For each
// candidate the column count is the minimum needed to hold all items, the
// cell is the largest aspect-preserving rectangle that fits the per-cell
// share of the canvas, and the candidate with the largest cell area wins.
// Ties keep the smallest row count. The winning dimensions are truncated to
// integers.
func PlanLayout(itemCount, refWidth, refHeight int, opts PlanOptions) (Layout, error) {
	if itemCount <= 0 {
		return Layout{}, fmt.Errorf("item count must be positive, got %d: %w", itemCount, ErrInvalidInput)
	}
	if refWidth <= 0 || refHeight <= 0 {
		return Layout{}, fmt.Errorf("reference size must be positive, got %dx%d: %w", refWidth, refHeight, ErrInvalidInput)
	}

	opts = opts.withDefaults()
	availWidth := float64(opts.MaxCanvasWidth - opts.RowGutterWidth)
	availHeight := float64(opts.MaxCanvasHeight - opts.ColumnGutterHeight)
	if availWidth <= 0 || availHeight <= 0 {
		return Layout{}, fmt.Errorf("gutters %dx%d exceed canvas %dx%d: %w",
			opts.RowGutterWidth, opts.ColumnGutterHeight,
			opts.MaxCanvasWidth, opts.MaxCanvasHeight, ErrInvalidInput)
	}

	aspect := float64(refWidth) / float64(refHeight)

	var (
		bestRows, bestColumns int
		bestWidth, bestHeight float64
		bestArea              = -1.0
	)
	for rows := 1; rows <= itemCount; rows++ {
		columns := (itemCount + rows - 1) / rows

		width := math.Min(availWidth/float64(columns), (availHeight/float64(rows))*aspect)
		height := width / aspect
		if height > availHeight/float64(rows) {
			// Rounding slack: clamp to the row share and re-derive width.
			height = availHeight / float64(rows)
			width = height * aspect
		}

		// Strictly greater keeps the smallest row count on equal area.
		if area := width * height; area > bestArea {
			bestArea = area
			bestRows = rows
			bestColumns = columns
			bestWidth = width
			bestHeight = height
		}
	}

	layout := Layout{
		Rows:               bestRows,
		Columns:            bestColumns,
		CellWidth:          int(bestWidth),
		CellHeight:         int(bestHeight),
		RowGutterWidth:     opts.RowGutterWidth,
		ColumnGutterHeight: opts.ColumnGutterHeight,
	}
	if layout.CellWidth <= 0 || layout.CellHeight <= 0 {
		return Layout{}, fmt.Errorf("cell size %dx%d for %d items on %dx%d canvas: %w",
			layout.CellWidth, layout.CellHeight, itemCount,
			opts.MaxCanvasWidth, opts.MaxCanvasHeight, ErrDegenerateLayout)
	}
	return layout, nil
}
