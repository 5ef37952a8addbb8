package grid

import (
	"fmt"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Style holds the drawing configuration for one composed sheet: background,
// grid lines and gutter labels. Styles are plain values passed into Compose,
// never mutated by it.
type Style struct {
	Background    color.Color
	LineColor     color.Color
	LineWidth     int
	LabelColor    color.Color
	LabelFontSize float64
	LabelBold     bool
}

// DefaultStyle returns a white sheet with thin gray lines and dark labels.
func DefaultStyle() Style {
	return Style{
		Background:    color.White,
		LineColor:     color.RGBA{R: 0x90, G: 0x90, B: 0x90, A: 0xff},
		LineWidth:     1,
		LabelColor:    color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff},
		LabelFontSize: 16,
		LabelBold:     true,
	}
}

var (
	fontOnce    sync.Once
	fontErr     error
	regularFont *opentype.Font
	boldFont    *opentype.Font
)

func parseFonts() {
	regularFont, fontErr = opentype.Parse(goregular.TTF)
	if fontErr != nil {
		return
	}
	boldFont, fontErr = opentype.Parse(gobold.TTF)
}

// labelFace builds the font face used for gutter labels.
func (s Style) labelFace() (font.Face, error) {
	fontOnce.Do(parseFonts)
	if fontErr != nil {
		return nil, fmt.Errorf("could not parse label font: %w", fontErr)
	}
	f := regularFont
	if s.LabelBold {
		f = boldFont
	}
	size := s.LabelFontSize
	if size <= 0 {
		size = DefaultStyle().LabelFontSize
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("could not build label font face: %w", err)
	}
	return face, nil
}
