package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gopreview/internal/app"
	"github.com/philipparndt/gopreview/internal/config"
	"github.com/spf13/cobra"
)

var viewNoWatch bool

var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Open a document in an interactive viewport",
	Long: `Open an interactive window. Drag with the right mouse button to orbit,
hold shift to pan, use the wheel to zoom and click to pick an object.
The document reloads when its file changes.`,
	Args: cobra.ExactArgs(1),
	Run:  runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().BoolVar(&viewNoWatch, "no-watch", false, "Do not reload when the file changes")
}

func runView(cmd *cobra.Command, args []string) {
	cfg.Resolve(config.Flags{Verbose: verbose, NoWatch: viewNoWatch})

	if err := app.Run(cmd.Context(), app.Options{Path: args[0], Config: cfg}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
