package model

import (
	"math"
	"testing"

	"github.com/philipparndt/gopreview/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quadGrid builds an n×n grid of unit quads in the XY plane
func quadGrid(n int) *Mesh {
	m := NewMesh()
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			m.AddVertex(geometry.NewVector3(float64(x), float64(y), 0))
		}
	}
	row := n + 1
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			i := y*row + x
			m.AddQuad(i, i+1, i+row+1, i+row)
		}
	}
	return m
}

func TestConvertQuadsToTriangles(t *testing.T) {
	m := quadGrid(3)
	m.AddTriangle(0, 1, 4)

	quads, tris := m.QuadCount(), m.TriangleCount()
	require.Equal(t, 9, quads)
	require.Equal(t, 1, tris)

	assert.True(t, m.ConvertQuadsToTriangles())
	assert.Equal(t, 2*quads+tris, m.TriangleCount())
	assert.Zero(t, m.QuadCount())

	assert.False(t, m.ConvertQuadsToTriangles(), "nothing left to split")
}

func TestComputeNormalsFlatGrid(t *testing.T) {
	m := quadGrid(2)
	m.ComputeNormals()

	require.Len(t, m.Normals, len(m.Vertices))
	for i, n := range m.Normals {
		assert.InDelta(t, 1.0, n.Z, 1e-10, "normal %d", i)
		assert.InDelta(t, 1.0, n.Length(), 1e-10, "normal %d", i)
	}
}

func TestComputeNormalsLeavesIsolatedVertexZero(t *testing.T) {
	m := quadGrid(1)
	isolated := m.AddVertex(geometry.NewVector3(9, 9, 9))
	m.ComputeNormals()

	assert.True(t, m.Normals[isolated].IsZero())
}

func TestCompactDropsUnusedVertices(t *testing.T) {
	m := NewMesh()
	m.AddVertex(geometry.NewVector3(100, 100, 100))
	a := m.AddVertex(geometry.NewVector3(0, 0, 0))
	b := m.AddVertex(geometry.NewVector3(1, 0, 0))
	c := m.AddVertex(geometry.NewVector3(0, 1, 0))
	m.AddTriangle(a, b, c)

	m.Compact()

	require.Len(t, m.Vertices, 3)
	va, vb, vc, _, ok := m.FaceVertices(0)
	require.True(t, ok)
	assert.Equal(t, geometry.NewVector3(0, 0, 0), va)
	assert.Equal(t, geometry.NewVector3(1, 0, 0), vb)
	assert.Equal(t, geometry.NewVector3(0, 1, 0), vc)
	assert.Equal(t, geometry.NewVector3(1, 1, 0), m.BoundingBox().Max)
}

func TestAppendOffsetsFaces(t *testing.T) {
	m := quadGrid(1)
	other := quadGrid(1)
	m.Append(other)

	require.Len(t, m.Vertices, 8)
	require.Len(t, m.Faces, 2)
	assert.Equal(t, MeshFace{A: 4, B: 5, C: 7, D: 6}, m.Faces[1])
}

func TestFaceVerticesRejectsBadIndices(t *testing.T) {
	m := NewMesh()
	m.AddVertex(geometry.NewVector3(0, 0, 0))
	m.AddTriangle(0, 1, 2)

	_, _, _, _, ok := m.FaceVertices(0)
	assert.False(t, ok)
	_, _, _, _, ok = m.FaceVertices(5)
	assert.False(t, ok)
}

func TestNaNFlowsThrough(t *testing.T) {
	m := NewMesh()
	a := m.AddVertex(geometry.NewVector3(math.NaN(), 0, 0))
	b := m.AddVertex(geometry.NewVector3(1, 0, 0))
	c := m.AddVertex(geometry.NewVector3(0, 1, 0))
	m.AddTriangle(a, b, c)

	m.ConvertQuadsToTriangles()
	m.Compact()

	assert.True(t, math.IsNaN(m.Vertices[0].X))
}
