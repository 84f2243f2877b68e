package main

import (
	"fmt"

	"github.com/philipparndt/gopreview/pkg/analysis"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a document",
	Long:  "Show the document properties, triangle count, surface area and dimensions of the built scene.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]
	s := loadScene(cmd.Context(), filename)
	result := analysis.AnalyzeScene(s)

	fmt.Println("Document Information")
	fmt.Println("====================")
	fmt.Printf("File: %s\n", filename)
	for _, line := range s.Properties() {
		fmt.Println(line)
	}
	fmt.Println()

	fmt.Println("Scene Statistics:")
	fmt.Printf("  Meshes: %d\n", len(s.Meshes))
	fmt.Printf("  Triangles: %d\n", result.TriangleCount)
	fmt.Printf("  Edges: %d\n", result.EdgeCount)
	fmt.Printf("  Surface Area: %.6f square units\n\n", result.SurfaceArea)

	if result.TriangleCount == 0 {
		return
	}

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Printf("  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

	fmt.Println("Dimensions:")
	fmt.Printf("  Width (X): %.6f units\n", result.Dimensions.X)
	fmt.Printf("  Depth (Y): %.6f units\n", result.Dimensions.Y)
	fmt.Printf("  Height (Z): %.6f units\n", result.Dimensions.Z)
	fmt.Printf("  Diagonal: %.6f units\n", result.BoundingBox.Diagonal())
	fmt.Printf("  Volume: %.6f cubic units\n\n", result.Volume)

	fmt.Println("Camera:")
	fmt.Printf("  Position: %s\n", analysis.FormatVector(s.Camera.Position))
	fmt.Printf("  Look: %s\n", analysis.FormatVector(s.Camera.Look))
	fmt.Printf("  Up: %s\n", analysis.FormatVector(s.Camera.Up))
	fmt.Printf("  Field of view: %.1f°\n", s.Camera.FieldOfView)
}
