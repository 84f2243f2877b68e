// Package analysis measures the triangles of a built scene.
package analysis

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/google/uuid"
	"github.com/philipparndt/gopreview/pkg/geometry"
	"github.com/philipparndt/gopreview/pkg/scene"
)

// EdgeInfo contains information about a triangle edge
type EdgeInfo struct {
	Start      geometry.Vector3
	End        geometry.Vector3
	Length     float64
	ObjectID   uuid.UUID
	TriangleID int
}

// ObjectResult contains the measurements of one object's mesh
type ObjectResult struct {
	ObjectID      uuid.UUID
	BoundingBox   geometry.BoundingBox
	SurfaceArea   float64
	TriangleCount int
}

// MeasurementResult contains various measurements of a scene. The
// bounding box is the tight one, without the scene margin.
type MeasurementResult struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	Volume        float64
	SurfaceArea   float64
	TriangleCount int
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	Objects       []ObjectResult
	AllEdges      []EdgeInfo
}

// AnalyzeScene measures every render mesh of s
func AnalyzeScene(s *scene.Scene) *MeasurementResult {
	result := &MeasurementResult{
		BoundingBox: geometry.EmptyBoundingBox(),
		AllEdges:    make([]EdgeInfo, 0),
	}

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	for _, mesh := range s.Meshes {
		obj := ObjectResult{
			ObjectID:      mesh.ObjectID,
			BoundingBox:   mesh.BoundingBox(),
			TriangleCount: mesh.TriangleCount(),
		}

		for i := 0; i < mesh.TriangleCount(); i++ {
			triangle := mesh.Triangle(i)
			obj.SurfaceArea += triangle.Area()

			edges := []struct {
				start, end geometry.Vector3
			}{
				{triangle.V1, triangle.V2},
				{triangle.V2, triangle.V3},
				{triangle.V3, triangle.V1},
			}

			for _, edge := range edges {
				length := edge.start.Distance(edge.end)

				result.AllEdges = append(result.AllEdges, EdgeInfo{
					Start:      edge.start,
					End:        edge.end,
					Length:     length,
					ObjectID:   mesh.ObjectID,
					TriangleID: i,
				})

				totalLength += length
				minLength = math.Min(minLength, length)
				maxLength = math.Max(maxLength, length)
			}
		}

		if obj.TriangleCount > 0 {
			result.BoundingBox.Union(obj.BoundingBox)
		}
		result.SurfaceArea += obj.SurfaceArea
		result.TriangleCount += obj.TriangleCount
		result.Objects = append(result.Objects, obj)
	}

	if result.BoundingBox.IsValid() {
		result.Dimensions = result.BoundingBox.Size()
		result.Volume = result.BoundingBox.Volume()
	}

	result.EdgeCount = len(result.AllEdges)
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}

	return result
}

// FindEdgesByLength finds all edges within a length range
func FindEdgesByLength(result *MeasurementResult, minLength, maxLength float64) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range result.AllEdges {
		if edge.Length >= minLength && edge.Length <= maxLength {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindLongestEdges returns the N longest edges
func FindLongestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) int {
		return cmp.Compare(b.Length, a.Length)
	})
}

// FindShortestEdges returns the N shortest edges
func FindShortestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) int {
		return cmp.Compare(a.Length, b.Length)
	})
}

func sortedEdges(result *MeasurementResult, count int, compare func(a, b EdgeInfo) int) []EdgeInfo {
	edges := slices.Clone(result.AllEdges)
	slices.SortStableFunc(edges, compare)
	return edges[:min(count, len(edges))]
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
