// Package atlas drives the sheet pipeline: render pages, plan the grid,
// map addresses, compose the raster and hand it to the sink.
package atlas

import (
	"context"
	"fmt"
	"image"

	"github.com/pageatlas/page-atlas/internal/grid"
	"github.com/pageatlas/page-atlas/internal/sink"
)

// Renderer is the page rasterizer the pipeline consumes. Pages are 1-based.
type Renderer interface {
	PageCount() int
	RenderPage(page int) (image.Image, error)
}

// ProgressInfo contains progress information for callbacks
type ProgressInfo struct {
	Phase   string // "rendering", "composing"
	Current int
	Total   int
	Sheet   int // 1-based sheet index
}

// BuildOptions controls one document build.
type BuildOptions struct {
	StartPage     int  // first page to include, 1-based (default 1)
	MaxPages      int  // cap on total pages; 0 means through the last page
	PagesPerSheet int  // batch size per sheet; 0 means one sheet for everything
	Plan          grid.PlanOptions
	Style         grid.Style
	OnProgress    func(ProgressInfo) // optional progress callback
}

// SheetInfo describes one composed sheet of the result.
type SheetInfo struct {
	Index     int    // 1-based
	Name      string
	Path      string // location reported by the sink
	StartPage int
	PageCount int
	Layout    grid.Layout
	Cells     []grid.CellPage

	pageToCell map[int]string
}

// BuildResult is the outcome of building a whole document.
type BuildResult struct {
	Document string
	Sheets   []SheetInfo
}

// Locate returns the sheet and cell address holding the given page number.
func (r *BuildResult) Locate(page int) (SheetInfo, string, bool) {
	for _, sheet := range r.Sheets {
		if page >= sheet.StartPage && page < sheet.StartPage+sheet.PageCount {
			return sheet, sheet.pageToCell[page], true
		}
	}
	return SheetInfo{}, "", false
}

// Builder composes atlas sheets from a renderer into a sink.
type Builder struct {
	renderer Renderer
	sink     sink.Sink
}

func New(renderer Renderer, s sink.Sink) *Builder {
	return &Builder{
		renderer: renderer,
		sink:     s,
	}
}

func reportProgress(opts BuildOptions, info ProgressInfo) {
	if opts.OnProgress != nil {
		opts.OnProgress(info)
	}
}

// Build renders the selected page range, splits it into per-sheet batches
// and stores one composed sheet per batch. The reference aspect ratio for
// each sheet comes from its first page.
func (b *Builder) Build(ctx context.Context, docName string, opts BuildOptions) (*BuildResult, error) {
	total := b.renderer.PageCount()
	if total <= 0 {
		return nil, fmt.Errorf("document %s has no pages: %w", docName, grid.ErrInvalidInput)
	}

	start := opts.StartPage
	if start == 0 {
		start = 1
	}
	if start < 1 || start > total {
		return nil, fmt.Errorf("start page %d out of range 1..%d: %w", start, total, grid.ErrInvalidInput)
	}

	count := total - start + 1
	if opts.MaxPages > 0 && count > opts.MaxPages {
		count = opts.MaxPages
	}
	perSheet := opts.PagesPerSheet
	if perSheet <= 0 {
		perSheet = count
	}

	style := opts.Style
	if style.Background == nil {
		style = grid.DefaultStyle()
	}

	result := &BuildResult{Document: docName}
	page := start
	remaining := count
	rendered := 0

	for remaining > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		batch := perSheet
		if batch > remaining {
			batch = remaining
		}
		sheetIndex := len(result.Sheets) + 1

		images := make([]image.Image, 0, batch)
		for p := page; p < page+batch; p++ {
			img, err := b.renderer.RenderPage(p)
			if err != nil {
				return nil, fmt.Errorf("rendering page %d: %w", p, err)
			}
			images = append(images, img)
			rendered++
			reportProgress(opts, ProgressInfo{Phase: "rendering", Current: rendered, Total: count, Sheet: sheetIndex})
		}

		ref := images[0].Bounds()
		layout, err := grid.PlanLayout(batch, ref.Dx(), ref.Dy(), opts.Plan)
		if err != nil {
			return nil, fmt.Errorf("planning sheet %d: %w", sheetIndex, err)
		}

		cells, err := grid.CellToPage(page, batch, layout.Rows, layout.Columns)
		if err != nil {
			return nil, fmt.Errorf("mapping sheet %d: %w", sheetIndex, err)
		}
		inverse, err := grid.InvertMap(cells)
		if err != nil {
			return nil, fmt.Errorf("inverting map of sheet %d: %w", sheetIndex, err)
		}

		reportProgress(opts, ProgressInfo{Phase: "composing", Current: sheetIndex, Total: 0, Sheet: sheetIndex})
		raster, err := grid.Compose(layout, images, style)
		if err != nil {
			return nil, fmt.Errorf("composing sheet %d: %w", sheetIndex, err)
		}

		name := fmt.Sprintf("%s-sheet-%03d", docName, sheetIndex)
		path, err := b.sink.Store(name, raster)
		if err != nil {
			return nil, fmt.Errorf("storing sheet %d: %w", sheetIndex, err)
		}

		result.Sheets = append(result.Sheets, SheetInfo{
			Index:      sheetIndex,
			Name:       name,
			Path:       path,
			StartPage:  page,
			PageCount:  batch,
			Layout:     layout,
			Cells:      cells,
			pageToCell: inverse,
		})

		page += batch
		remaining -= batch
	}

	return result, nil
}
