package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gopreview/pkg/viewer"
	"github.com/spf13/cobra"
)

var (
	pickX      float64
	pickY      float64
	pickWidth  int
	pickHeight int
)

var pickCmd = &cobra.Command{
	Use:   "pick [file]",
	Short: "Show the object under a viewport position",
	Long: `Cast a ray through pixel (x, y) of a width × height viewport seen from the
document's camera and print the properties of the nearest object hit.`,
	Args: cobra.ExactArgs(1),
	Run:  runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)

	pickCmd.Flags().Float64Var(&pickX, "x", 0, "Viewport X coordinate")
	pickCmd.Flags().Float64Var(&pickY, "y", 0, "Viewport Y coordinate")
	pickCmd.Flags().IntVar(&pickWidth, "width", 0, "Viewport width (default from config)")
	pickCmd.Flags().IntVar(&pickHeight, "height", 0, "Viewport height (default from config)")
}

func runPick(cmd *cobra.Command, args []string) {
	cfg.Resolve(cfgFlags(pickWidth, pickHeight))

	s := loadScene(cmd.Context(), args[0])
	hitTester := viewer.NewRayHitTester(s, float64(cfg.Render.Width), float64(cfg.Render.Height))
	picker := viewer.NewPicker(s.Document, hitTester)

	if !picker.Pick(pickX, pickY) {
		fmt.Fprintf(os.Stderr, "No object at (%.0f, %.0f)\n", pickX, pickY)
		os.Exit(1)
	}

	for _, line := range picker.Selection.Properties {
		fmt.Println(line)
	}
}
