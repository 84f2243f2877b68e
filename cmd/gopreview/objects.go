package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/philipparndt/gopreview/pkg/analysis"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var objectsStats bool

var objectsCmd = &cobra.Command{
	Use:   "objects [file]",
	Short: "List the objects of a document",
	Args:  cobra.ExactArgs(1),
	Run:   runObjects,
}

func init() {
	rootCmd.AddCommand(objectsCmd)

	objectsCmd.Flags().BoolVarP(&objectsStats, "stats", "s", false, "Show triangle count and surface area of each object")
}

func runObjects(cmd *cobra.Command, args []string) {
	s := loadScene(cmd.Context(), args[0])

	results := lo.KeyBy(analysis.AnalyzeScene(s).Objects, func(r analysis.ObjectResult) uuid.UUID {
		return r.ObjectID
	})

	for i, obj := range s.Document.Objects {
		if i > 0 {
			fmt.Println()
		}
		for _, line := range obj.Properties() {
			fmt.Println(line)
		}

		if !objectsStats {
			continue
		}
		r, ok := results[obj.ID]
		if !ok {
			fmt.Println("Not rendered")
			continue
		}
		fmt.Printf("Triangles: %d\n", r.TriangleCount)
		fmt.Printf("Surface Area: %.6f\n", r.SurfaceArea)
	}
}
