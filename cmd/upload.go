package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/pageatlas/page-atlas/internal/config"
	"github.com/pageatlas/page-atlas/internal/hub"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <sheet-dir>",
	Short: "Upload composed sheets to the hub",
	Long: `Upload sends every composed sheet PNG in a directory to the sheet hub
and enqueues a processing message for each uploaded artifact.

The hub is configured through the ATLAS_HUB_URL and ATLAS_HUB_TOKEN
environment variables.

Example:
  page-atlas upload out/report/sheets`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().String("document", "", "Document name reported to the hub (defaults to the directory name)")
}

// sheetFiles lists the PNG files of a sheet directory in name order.
func sheetFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read folder %s: %w", dir, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".png") {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func runUpload(cmd *cobra.Command, args []string) error {
	dir := args[0]
	cfg := config.Load()

	if cfg.Hub.URL == "" {
		return errors.New("ATLAS_HUB_URL environment variable is required")
	}

	document := mustGetString(cmd, "document")
	if document == "" {
		document = filepath.Base(filepath.Dir(dir))
	}

	paths, err := sheetFiles(dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Println("No sheet files found in the specified folder.")
		return nil
	}

	client, err := hub.New(cfg.Hub.URL, cfg.Hub.Token)
	if err != nil {
		return fmt.Errorf("failed to create hub client: %w", err)
	}

	fmt.Printf("Uploading %d sheet(s) for document '%s'\n", len(paths), document)
	bar := progressbar.NewOptions(len(paths),
		progressbar.OptionSetDescription("Uploading"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("sheets"),
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

	var uploadErrors []string
	uploaded := 0
	for i, path := range paths {
		key, err := client.UploadSheet(cmd.Context(), path)
		if err != nil {
			uploadErrors = append(uploadErrors, fmt.Sprintf("%s: %v", filepath.Base(path), err))
			bar.Add(1)
			continue
		}
		if err := client.NotifyProcessed(cmd.Context(), key, document, i+1); err != nil {
			uploadErrors = append(uploadErrors, fmt.Sprintf("%s: %v", filepath.Base(path), err))
			bar.Add(1)
			continue
		}
		uploaded++
		bar.Add(1)
	}
	fmt.Println()

	for _, errMsg := range uploadErrors {
		fmt.Printf("Failed: %s\n", errMsg)
	}
	if uploaded == 0 {
		return fmt.Errorf("no sheets were uploaded successfully")
	}

	fmt.Printf("\nDone! Uploaded %d sheet(s) for document '%s'\n", uploaded, document)
	return nil
}
