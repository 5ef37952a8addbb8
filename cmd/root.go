package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "page-atlas",
	Short: "Compose PDF pages into spreadsheet-style atlas sheets",
	Long: `Page Atlas renders the pages of a PDF document into thumbnails and
composes them into atlas sheets: grid images where every page sits in a
labeled cell (A1, B1, ...) so a page number always translates to a cell
address and back.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
