package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/pageatlas/page-atlas/internal/atlas"
	"github.com/pageatlas/page-atlas/internal/config"
	"github.com/pageatlas/page-atlas/internal/pdfrender"
	"github.com/pageatlas/page-atlas/internal/sink"
)

var composeCmd = &cobra.Command{
	Use:   "compose <pdf-file>",
	Short: "Compose a PDF into atlas sheets",
	Long: `Compose renders every page of a PDF document and packs the thumbnails
into one or more atlas sheets, written as PNG files under the output
directory.

Example:
  page-atlas compose report.pdf
  page-atlas compose -o /tmp/sheets --per-sheet 30 --style dark report.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runCompose,
}

func init() {
	rootCmd.AddCommand(composeCmd)
	composeCmd.Flags().StringP("output", "o", "", "Output directory (defaults to ATLAS_OUTPUT_DIR or ./out)")
	composeCmd.Flags().Int("density", 0, "Rasterization density in DPI (defaults to ATLAS_DENSITY or 96)")
	composeCmd.Flags().String("style", "default", "Sheet style preset")
	composeCmd.Flags().Int("start", 1, "First page to include")
	composeCmd.Flags().Int("pages", 0, "Number of pages to include (0 = through the end)")
	composeCmd.Flags().Int("per-sheet", 0, "Pages per sheet (0 = everything on one sheet)")
}

// composeBar builds the progress bar used while rendering pages.
func composeBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Rendering"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("pages"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func runCompose(cmd *cobra.Command, args []string) error {
	pdfPath := args[0]
	cfg := config.Load()

	outputDir := mustGetString(cmd, "output")
	if outputDir == "" {
		outputDir = cfg.Output.Dir
	}
	density := mustGetInt(cmd, "density")
	if density == 0 {
		density = cfg.Render.Density
	}

	style, err := cfg.StyleByName(mustGetString(cmd, "style"))
	if err != nil {
		return fmt.Errorf("available styles are %s: %w", strings.Join(cfg.StyleNames(), ", "), err)
	}

	doc, err := pdfrender.Open(pdfPath, density)
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}
	defer doc.Close()

	docName := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	out, err := sink.NewDirSink(outputDir, docName)
	if err != nil {
		return fmt.Errorf("failed to prepare output directory: %w", err)
	}

	fmt.Printf("Composing %s (%d pages) at %d DPI\n", filepath.Base(pdfPath), doc.PageCount(), density)

	bar := composeBar(doc.PageCount())
	builder := atlas.New(doc, out)
	result, err := builder.Build(cmd.Context(), docName, atlas.BuildOptions{
		StartPage:     mustGetInt(cmd, "start"),
		MaxPages:      mustGetInt(cmd, "pages"),
		PagesPerSheet: mustGetInt(cmd, "per-sheet"),
		Plan:          cfg.Layout.PlanOptions(),
		Style:         style,
		OnProgress: func(info atlas.ProgressInfo) {
			if info.Phase == "rendering" {
				bar.Add(1)
			}
		},
	})
	if err != nil {
		return fmt.Errorf("failed to compose %s: %w", docName, err)
	}
	fmt.Println()

	for _, sheet := range result.Sheets {
		first := sheet.Cells[0]
		last := sheet.Cells[len(sheet.Cells)-1]
		fmt.Printf("Sheet %d: %dx%d grid, pages %d-%d (%s-%s) -> %s\n",
			sheet.Index, sheet.Layout.Rows, sheet.Layout.Columns,
			sheet.StartPage, sheet.StartPage+sheet.PageCount-1,
			first.Address, last.Address, sheet.Path)
	}
	fmt.Printf("\nDone! Composed %d sheet(s) for '%s'\n", len(result.Sheets), docName)
	return nil
}
