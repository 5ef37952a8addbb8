package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pageatlas/page-atlas/internal/config"
	"github.com/pageatlas/page-atlas/internal/grid"
	"github.com/pageatlas/page-atlas/internal/pdfrender"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <pdf-file> <page-number|cell-address>",
	Short: "Translate between a page number and its cell address",
	Long: `Lookup plans the same sheet layout the compose command would use and
translates a page number into its cell address, or a cell address like C2
back into the page it holds.

Example:
  page-atlas lookup report.pdf 17
  page-atlas lookup report.pdf C2
  page-atlas lookup --per-sheet 30 report.pdf AA3 --sheet 2`,
	Args: cobra.ExactArgs(2),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().Int("density", 0, "Rasterization density in DPI (defaults to ATLAS_DENSITY or 96)")
	lookupCmd.Flags().Int("start", 1, "First page to include")
	lookupCmd.Flags().Int("per-sheet", 0, "Pages per sheet (0 = everything on one sheet)")
	lookupCmd.Flags().Int("sheet", 1, "Sheet to resolve a cell address on")
}

// planSheets replays the compose batching: one layout and address map per
// sheet, using the first page's dimensions as the reference aspect ratio.
func planSheets(doc *pdfrender.Document, start, perSheet int, plan grid.PlanOptions) ([]sheetPlan, error) {
	total := doc.PageCount()
	if start < 1 || start > total {
		return nil, fmt.Errorf("start page %d out of range 1..%d: %w", start, total, grid.ErrInvalidInput)
	}
	count := total - start + 1
	if perSheet <= 0 {
		perSheet = count
	}

	ref, err := doc.RenderPage(start)
	if err != nil {
		return nil, fmt.Errorf("failed to size reference page: %w", err)
	}
	refBounds := ref.Bounds()

	var sheets []sheetPlan
	page := start
	remaining := count
	for remaining > 0 {
		batch := perSheet
		if batch > remaining {
			batch = remaining
		}
		layout, err := grid.PlanLayout(batch, refBounds.Dx(), refBounds.Dy(), plan)
		if err != nil {
			return nil, fmt.Errorf("failed to plan sheet %d: %w", len(sheets)+1, err)
		}
		cells, err := grid.CellToPage(page, batch, layout.Rows, layout.Columns)
		if err != nil {
			return nil, fmt.Errorf("failed to map sheet %d: %w", len(sheets)+1, err)
		}
		sheets = append(sheets, sheetPlan{
			index:     len(sheets) + 1,
			startPage: page,
			pageCount: batch,
			layout:    layout,
			cells:     cells,
		})
		page += batch
		remaining -= batch
	}
	return sheets, nil
}

type sheetPlan struct {
	index     int
	startPage int
	pageCount int
	layout    grid.Layout
	cells     []grid.CellPage
}

func runLookup(cmd *cobra.Command, args []string) error {
	pdfPath := args[0]
	target := args[1]
	cfg := config.Load()

	density := mustGetInt(cmd, "density")
	if density == 0 {
		density = cfg.Render.Density
	}

	doc, err := pdfrender.Open(pdfPath, density)
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}
	defer doc.Close()

	sheets, err := planSheets(doc, mustGetInt(cmd, "start"), mustGetInt(cmd, "per-sheet"), cfg.Layout.PlanOptions())
	if err != nil {
		return err
	}

	if page, parseErr := strconv.Atoi(target); parseErr == nil {
		return lookupPage(sheets, page)
	}
	return lookupCell(sheets, target, mustGetInt(cmd, "sheet"))
}

// lookupPage resolves a page number to its sheet and cell address.
func lookupPage(sheets []sheetPlan, page int) error {
	for _, sheet := range sheets {
		if page < sheet.startPage || page >= sheet.startPage+sheet.pageCount {
			continue
		}
		inverse, err := grid.InvertMap(sheet.cells)
		if err != nil {
			return fmt.Errorf("address map of sheet %d is inconsistent: %w", sheet.index, err)
		}
		fmt.Printf("Page %d is cell %s on sheet %d (%dx%d grid)\n",
			page, inverse[page], sheet.index, sheet.layout.Rows, sheet.layout.Columns)
		return nil
	}
	return fmt.Errorf("page %d is not on any sheet", page)
}

// lookupCell resolves a cell address on one sheet to its page number.
func lookupCell(sheets []sheetPlan, address string, sheetIndex int) error {
	if _, _, err := grid.ParseCellName(address); err != nil {
		return err
	}
	if sheetIndex < 1 || sheetIndex > len(sheets) {
		return fmt.Errorf("sheet %d out of range 1..%d", sheetIndex, len(sheets))
	}
	sheet := sheets[sheetIndex-1]
	for _, cp := range sheet.cells {
		if cp.Address == address {
			fmt.Printf("Cell %s on sheet %d holds page %d\n", address, sheet.index, cp.Page)
			return nil
		}
	}
	return fmt.Errorf("cell %s on sheet %d is unoccupied or outside the grid", address, sheetIndex)
}
