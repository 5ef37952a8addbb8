package handlers

import (
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/pageatlas/page-atlas/internal/atlas"
	"github.com/pageatlas/page-atlas/internal/config"
	"github.com/pageatlas/page-atlas/internal/pdfrender"
	"github.com/pageatlas/page-atlas/internal/sink"
)

// maxDocumentSize caps uploaded documents at 256 MB.
const maxDocumentSize = 256 << 20

// ComposeHandler turns an uploaded PDF into a composed atlas sheet.
type ComposeHandler struct {
	config *config.Config
}

// NewComposeHandler creates a new compose handler.
func NewComposeHandler(cfg *config.Config) *ComposeHandler {
	return &ComposeHandler{config: cfg}
}

// formInt parses an integer form value with a fallback default.
func formInt(r *http.Request, name string, defaultVal int) (int, error) {
	s := r.FormValue(name)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}

// Compose handles POST /api/v1/compose. The request carries the PDF as the
// multipart file "document" plus optional density, style, start, pages,
// per_sheet and sheet form values. The response body is the PNG of the
// requested sheet; sheet count and grid shape travel in headers.
func (h *ComposeHandler) Compose(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxDocumentSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		respondError(w, http.StatusBadRequest, "document file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxDocumentSize))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read document")
		return
	}

	density, err := formInt(r, "density", h.config.Render.Density)
	if err != nil {
		respondError(w, http.StatusBadRequest, "density must be an integer")
		return
	}
	startPage, err := formInt(r, "start", 1)
	if err != nil {
		respondError(w, http.StatusBadRequest, "start must be an integer")
		return
	}
	maxPages, err := formInt(r, "pages", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, "pages must be an integer")
		return
	}
	perSheet, err := formInt(r, "per_sheet", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, "per_sheet must be an integer")
		return
	}
	sheetIndex, err := formInt(r, "sheet", 1)
	if err != nil {
		respondError(w, http.StatusBadRequest, "sheet must be an integer")
		return
	}

	styleName := r.FormValue("style")
	if styleName == "" {
		styleName = "default"
	}
	style, err := h.config.StyleByName(styleName)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := pdfrender.OpenBytes(data, density)
	if err != nil {
		respondError(w, http.StatusBadRequest, "document is not a readable PDF")
		return
	}
	defer doc.Close()

	memory := sink.NewMemorySink()
	builder := atlas.New(doc, memory)
	result, err := builder.Build(r.Context(), "upload", atlas.BuildOptions{
		StartPage:     startPage,
		MaxPages:      maxPages,
		PagesPerSheet: perSheet,
		Plan:          h.config.Layout.PlanOptions(),
		Style:         style,
	})
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	if sheetIndex < 1 || sheetIndex > len(result.Sheets) {
		respondError(w, http.StatusBadRequest, "sheet index out of range")
		return
	}
	sheet := result.Sheets[sheetIndex-1]
	png, ok := memory.Sheet(sheet.Name)
	if !ok {
		respondError(w, http.StatusInternalServerError, "composed sheet missing from sink")
		return
	}

	log.Printf("composed %s (%d pages, sheet %d/%d) for upload %q",
		sheet.Name, sheet.PageCount, sheet.Index, len(result.Sheets), header.Filename)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Atlas-Sheet-Count", strconv.Itoa(len(result.Sheets)))
	w.Header().Set("X-Atlas-Rows", strconv.Itoa(sheet.Layout.Rows))
	w.Header().Set("X-Atlas-Columns", strconv.Itoa(sheet.Layout.Columns))
	w.WriteHeader(http.StatusOK)
	w.Write(png) //nolint:errcheck // best effort once headers are sent
}
