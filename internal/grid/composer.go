package grid

import (
	"fmt"
	"image"
	"strconv"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Compose draws the given images into a labeled grid raster. Image i lands
// in the cell at row i/columns, column i%columns and is stretched to the
// exact cell size. Fewer images than cells is fine; the trailing cells keep
// the background color. More images than cells is an input error.
//
// The returned raster is layout.RasterWidth() x layout.RasterHeight() and is
// owned by the caller. Source images are only read.
func Compose(layout Layout, images []image.Image, style Style) (*image.RGBA, error) {
	if layout.Rows <= 0 || layout.Columns <= 0 {
		return nil, fmt.Errorf("grid shape must be positive, got %dx%d: %w", layout.Rows, layout.Columns, ErrInvalidInput)
	}
	if layout.CellWidth <= 0 || layout.CellHeight <= 0 {
		return nil, fmt.Errorf("cell size %dx%d: %w", layout.CellWidth, layout.CellHeight, ErrDegenerateLayout)
	}
	if len(images) > layout.Capacity() {
		return nil, fmt.Errorf("%d images exceed grid capacity %d: %w", len(images), layout.Capacity(), ErrInvalidInput)
	}

	dst := image.NewRGBA(image.Rect(0, 0, layout.RasterWidth(), layout.RasterHeight()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(style.Background), image.Point{}, draw.Src)

	for i, src := range images {
		if src == nil {
			return nil, fmt.Errorf("image %d is nil: %w", i, ErrInvalidInput)
		}
		row := i / layout.Columns
		column := i % layout.Columns
		x0 := layout.RowGutterWidth + column*layout.CellWidth
		y0 := layout.ColumnGutterHeight + row*layout.CellHeight
		cell := image.Rect(x0, y0, x0+layout.CellWidth, y0+layout.CellHeight)
		draw.CatmullRom.Scale(dst, cell, src, src.Bounds(), draw.Src, nil)
	}

	drawGridLines(dst, layout, style)
	if err := drawLabels(dst, layout, style); err != nil {
		return nil, err
	}
	return dst, nil
}

// drawGridLines fills separator lines along every cell boundary, including
// the outer border. Lines on the far edges are pulled inward so they stay
// inside the raster.
func drawGridLines(dst *image.RGBA, layout Layout, style Style) {
	width := style.LineWidth
	if width <= 0 {
		width = 1
	}
	line := image.NewUniform(style.LineColor)
	right := layout.RasterWidth()
	bottom := layout.RasterHeight()

	for c := 0; c <= layout.Columns; c++ {
		x := layout.RowGutterWidth + c*layout.CellWidth
		if x+width > right {
			x = right - width
		}
		r := image.Rect(x, layout.ColumnGutterHeight, x+width, bottom)
		draw.Draw(dst, r, line, image.Point{}, draw.Src)
	}
	for r := 0; r <= layout.Rows; r++ {
		y := layout.ColumnGutterHeight + r*layout.CellHeight
		if y+width > bottom {
			y = bottom - width
		}
		rect := image.Rect(layout.RowGutterWidth, y, right, y+width)
		draw.Draw(dst, rect, line, image.Point{}, draw.Src)
	}
}

// drawLabels renders row numerals in the left gutter and column letters in
// the top gutter, each centered on its row or column band. Column letters
// come from the same derivation the address maps use.
func drawLabels(dst *image.RGBA, layout Layout, style Style) error {
	face, err := style.labelFace()
	if err != nil {
		return err
	}
	defer face.Close()

	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(style.LabelColor),
		Face: face,
	}

	if layout.RowGutterWidth > 0 {
		for row := 1; row <= layout.Rows; row++ {
			label := strconv.Itoa(row)
			cx := layout.RowGutterWidth / 2
			cy := layout.ColumnGutterHeight + (row-1)*layout.CellHeight + layout.CellHeight/2
			drawCentered(drawer, face, label, cx, cy)
		}
	}

	if layout.ColumnGutterHeight > 0 {
		for column := 1; column <= layout.Columns; column++ {
			label, err := ColumnLabel(column)
			if err != nil {
				return err
			}
			cx := layout.RowGutterWidth + (column-1)*layout.CellWidth + layout.CellWidth/2
			cy := layout.ColumnGutterHeight / 2
			drawCentered(drawer, face, label, cx, cy)
		}
	}
	return nil
}

// drawCentered places text so its advance and x-height center on (cx, cy).
func drawCentered(drawer *font.Drawer, face font.Face, text string, cx, cy int) {
	advance := font.MeasureString(face, text)
	metrics := face.Metrics()
	drawer.Dot = fixed.Point26_6{
		X: fixed.I(cx) - advance/2,
		Y: fixed.I(cy) + (metrics.Ascent-metrics.Descent)/2,
	}
	drawer.DrawString(text)
}
