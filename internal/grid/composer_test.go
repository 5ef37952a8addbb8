package grid

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"
)

// uniformImage builds a solid-color source image for composition tests.
func uniformImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func testStyle() Style {
	return Style{
		Background:    color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		LineColor:     color.RGBA{A: 0xff},
		LineWidth:     1,
		LabelColor:    color.RGBA{A: 0xff},
		LabelFontSize: 14,
		LabelBold:     true,
	}
}

func TestCompose_RasterDimensions(t *testing.T) {
	layout := Layout{
		Rows: 3, Columns: 4,
		CellWidth: 200, CellHeight: 150,
		RowGutterWidth: 50, ColumnGutterHeight: 50,
	}

	raster, err := Compose(layout, nil, testStyle())
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}
	bounds := raster.Bounds()
	if bounds.Dx() != 850 || bounds.Dy() != 500 {
		t.Errorf("raster is %dx%d; want 850x500", bounds.Dx(), bounds.Dy())
	}
}

func TestCompose_PlacesImagesRowMajor(t *testing.T) {
	layout := Layout{
		Rows: 2, Columns: 2,
		CellWidth: 100, CellHeight: 100,
		RowGutterWidth: 50, ColumnGutterHeight: 50,
	}
	red := color.RGBA{R: 0xff, A: 0xff}
	blue := color.RGBA{B: 0xff, A: 0xff}
	green := color.RGBA{G: 0xff, A: 0xff}
	images := []image.Image{
		uniformImage(40, 60, red),
		uniformImage(80, 20, blue),
		uniformImage(10, 10, green),
	}

	raster, err := Compose(layout, images, testStyle())
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}

	// Sample each cell center: gutter + column*cell + cell/2.
	samples := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"cell A1", 100, 100, red},
		{"cell B1", 200, 100, blue},
		{"cell A2", 100, 200, green},
	}
	for _, s := range samples {
		if got := raster.RGBAAt(s.x, s.y); got != s.want {
			t.Errorf("%s center = %v; want %v", s.name, got, s.want)
		}
	}
}

func TestCompose_PartialFillKeepsBackground(t *testing.T) {
	layout := Layout{
		Rows: 2, Columns: 2,
		CellWidth: 100, CellHeight: 100,
		RowGutterWidth: 50, ColumnGutterHeight: 50,
	}
	style := testStyle()
	images := []image.Image{uniformImage(20, 20, color.RGBA{R: 0xff, A: 0xff})}

	raster, err := Compose(layout, images, style)
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}

	// Center of the last (unoccupied) cell must stay background.
	if got := raster.RGBAAt(200, 200); got != style.Background {
		t.Errorf("empty cell center = %v; want background %v", got, style.Background)
	}
}

func TestCompose_StretchesToFit(t *testing.T) {
	layout := Layout{
		Rows: 1, Columns: 1,
		CellWidth: 100, CellHeight: 100,
		RowGutterWidth: 50, ColumnGutterHeight: 50,
	}
	// Tall narrow source, left half red and right half blue; stretching must
	// keep the halves on their sides of the cell.
	src := image.NewRGBA(image.Rect(0, 0, 10, 40))
	red := color.RGBA{R: 0xff, A: 0xff}
	blue := color.RGBA{B: 0xff, A: 0xff}
	draw.Draw(src, image.Rect(0, 0, 5, 40), image.NewUniform(red), image.Point{}, draw.Src)
	draw.Draw(src, image.Rect(5, 0, 10, 40), image.NewUniform(blue), image.Point{}, draw.Src)

	raster, err := Compose(layout, []image.Image{src}, testStyle())
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}

	if got := raster.RGBAAt(50+25, 50+50); got != red {
		t.Errorf("left quarter of cell = %v; want %v", got, red)
	}
	if got := raster.RGBAAt(50+75, 50+50); got != blue {
		t.Errorf("right quarter of cell = %v; want %v", got, blue)
	}
}

func TestCompose_DrawsGridLinesAndLabels(t *testing.T) {
	layout := Layout{
		Rows: 2, Columns: 3,
		CellWidth: 100, CellHeight: 80,
		RowGutterWidth: 50, ColumnGutterHeight: 50,
	}
	style := testStyle()

	raster, err := Compose(layout, nil, testStyle())
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}

	// Outer border corner and an interior column boundary.
	lineColor := color.RGBA{A: 0xff}
	if got := raster.RGBAAt(50, 50); got != lineColor {
		t.Errorf("top-left border pixel = %v; want %v", got, lineColor)
	}
	if got := raster.RGBAAt(50+100, 90); got != lineColor {
		t.Errorf("interior column boundary pixel = %v; want %v", got, lineColor)
	}

	// Labels are drawn even for empty cells: both gutters must contain at
	// least one non-background pixel.
	if !regionTouched(raster, image.Rect(0, 50, 50, raster.Bounds().Dy()), style.Background) {
		t.Error("left gutter has no label pixels")
	}
	if !regionTouched(raster, image.Rect(50, 0, raster.Bounds().Dx(), 50), style.Background) {
		t.Error("top gutter has no label pixels")
	}
}

// regionTouched reports whether any pixel in the region differs from the
// background color.
func regionTouched(raster *image.RGBA, region image.Rectangle, background color.Color) bool {
	bg := color.RGBAModel.Convert(background).(color.RGBA)
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			if raster.RGBAAt(x, y) != bg {
				return true
			}
		}
	}
	return false
}

func TestCompose_TooManyImages(t *testing.T) {
	layout := Layout{
		Rows: 2, Columns: 2,
		CellWidth: 50, CellHeight: 50,
		RowGutterWidth: 50, ColumnGutterHeight: 50,
	}
	images := make([]image.Image, 5)
	for i := range images {
		images[i] = uniformImage(10, 10, color.RGBA{A: 0xff})
	}

	_, err := Compose(layout, images, testStyle())
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Compose error = %v; want ErrInvalidInput", err)
	}
}

func TestCompose_RejectsBrokenLayouts(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
		want   error
	}{
		{"zero rows", Layout{Columns: 2, CellWidth: 10, CellHeight: 10}, ErrInvalidInput},
		{"zero cell width", Layout{Rows: 2, Columns: 2, CellHeight: 10}, ErrDegenerateLayout},
		{"zero cell height", Layout{Rows: 2, Columns: 2, CellWidth: 10}, ErrDegenerateLayout},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compose(tc.layout, nil, testStyle())
			if !errors.Is(err, tc.want) {
				t.Errorf("Compose error = %v; want %v", err, tc.want)
			}
		})
	}
}

func TestCompose_NilImage(t *testing.T) {
	layout := Layout{
		Rows: 1, Columns: 2,
		CellWidth: 50, CellHeight: 50,
		RowGutterWidth: 50, ColumnGutterHeight: 50,
	}
	_, err := Compose(layout, []image.Image{nil}, testStyle())
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Compose error = %v; want ErrInvalidInput", err)
	}
}
