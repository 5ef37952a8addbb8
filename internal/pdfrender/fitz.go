// Package pdfrender rasterizes PDF pages into in-memory images via MuPDF.
package pdfrender

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// Document wraps an open PDF and renders its pages at a fixed density.
// Pages are addressed 1-based, matching how page numbers appear on sheets.
type Document struct {
	doc     *fitz.Document
	density float64
}

// Open opens a PDF file for rendering at the given density (DPI).
// A non-positive density falls back to 96 DPI.
func Open(path string, density int) (*Document, error) {
	if density <= 0 {
		density = 96
	}
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("could not open document %s: %w", path, err)
	}
	return &Document{doc: doc, density: float64(density)}, nil
}

// OpenBytes opens a PDF held in memory, e.g. an uploaded request body.
func OpenBytes(data []byte, density int) (*Document, error) {
	if density <= 0 {
		density = 96
	}
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("could not open document from memory: %w", err)
	}
	return &Document{doc: doc, density: float64(density)}, nil
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.doc.NumPage()
}

// RenderPage rasterizes the 1-based page number into an RGBA image.
func (d *Document) RenderPage(page int) (image.Image, error) {
	if page < 1 || page > d.doc.NumPage() {
		return nil, fmt.Errorf("page %d out of range 1..%d", page, d.doc.NumPage())
	}
	img, err := d.doc.ImageDPI(page-1, d.density)
	if err != nil {
		return nil, fmt.Errorf("could not render page %d: %w", page, err)
	}
	return img, nil
}

// Close releases the underlying MuPDF document.
func (d *Document) Close() error {
	return d.doc.Close()
}
