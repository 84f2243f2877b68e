package model

import (
	"github.com/philipparndt/gopreview/pkg/geometry"
)

// MeshFace indexes three or four vertices. A face is a triangle when C == D.
type MeshFace struct {
	A, B, C, D int
}

// IsQuad reports whether the face has four distinct corners
func (f MeshFace) IsQuad() bool {
	return f.C != f.D
}

// Mesh is an indexed polygon mesh of triangles and quads
type Mesh struct {
	Vertices []geometry.Vector3
	Faces    []MeshFace
	Normals  []geometry.Vector3 // per vertex, empty until ComputeNormals
}

// NewMesh creates an empty mesh
func NewMesh() *Mesh {
	return &Mesh{
		Vertices: make([]geometry.Vector3, 0),
		Faces:    make([]MeshFace, 0),
	}
}

func (m *Mesh) Kind() GeometryKind { return KindMesh }

func (m *Mesh) TypeName() string { return "Mesh" }

// Tessellate returns a copy so callers can triangulate without touching the
// document
func (m *Mesh) Tessellate() (*Mesh, error) {
	return m.Clone(), nil
}

// AddVertex appends a vertex and returns its index
func (m *Mesh) AddVertex(v geometry.Vector3) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddTriangle appends a triangular face
func (m *Mesh) AddTriangle(a, b, c int) {
	m.Faces = append(m.Faces, MeshFace{A: a, B: b, C: c, D: c})
}

// AddQuad appends a quad face
func (m *Mesh) AddQuad(a, b, c, d int) {
	m.Faces = append(m.Faces, MeshFace{A: a, B: b, C: c, D: d})
}

// TriangleCount returns the number of triangular faces
func (m *Mesh) TriangleCount() int {
	count := 0
	for _, f := range m.Faces {
		if !f.IsQuad() {
			count++
		}
	}
	return count
}

// QuadCount returns the number of quad faces
func (m *Mesh) QuadCount() int {
	return len(m.Faces) - m.TriangleCount()
}

// BoundingBox returns the extent of all vertices
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	return geometry.NewBoundingBoxFromPoints(m.Vertices...)
}

// Clone returns a deep copy
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Vertices: make([]geometry.Vector3, len(m.Vertices)),
		Faces:    make([]MeshFace, len(m.Faces)),
	}
	copy(c.Vertices, m.Vertices)
	copy(c.Faces, m.Faces)
	if len(m.Normals) > 0 {
		c.Normals = make([]geometry.Vector3, len(m.Normals))
		copy(c.Normals, m.Normals)
	}
	return c
}

// Append adds the vertices and faces of other to m
func (m *Mesh) Append(other *Mesh) {
	if other == nil {
		return
	}
	offset := len(m.Vertices)
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, f := range other.Faces {
		m.Faces = append(m.Faces, MeshFace{
			A: f.A + offset,
			B: f.B + offset,
			C: f.C + offset,
			D: f.D + offset,
		})
	}
	// normals no longer line up with the vertices
	m.Normals = nil
}

// ConvertQuadsToTriangles splits every quad (a,b,c,d) into (a,b,c) and
// (a,c,d). It reports whether anything was split.
func (m *Mesh) ConvertQuadsToTriangles() bool {
	quads := m.QuadCount()
	if quads == 0 {
		return false
	}

	faces := make([]MeshFace, 0, len(m.Faces)+quads)
	for _, f := range m.Faces {
		if !f.IsQuad() {
			faces = append(faces, f)
			continue
		}
		faces = append(faces,
			MeshFace{A: f.A, B: f.B, C: f.C, D: f.C},
			MeshFace{A: f.A, B: f.C, C: f.D, D: f.D},
		)
	}
	m.Faces = faces
	return true
}

// Compact drops vertices no face references and renumbers the faces.
// Faces themselves are kept, including degenerate ones.
func (m *Mesh) Compact() {
	used := make([]bool, len(m.Vertices))
	for _, f := range m.Faces {
		for _, i := range [4]int{f.A, f.B, f.C, f.D} {
			if i >= 0 && i < len(used) {
				used[i] = true
			}
		}
	}

	remap := make([]int, len(m.Vertices))
	vertices := make([]geometry.Vector3, 0, len(m.Vertices))
	for i, v := range m.Vertices {
		if !used[i] {
			remap[i] = -1
			continue
		}
		remap[i] = len(vertices)
		vertices = append(vertices, v)
	}
	if len(vertices) == len(m.Vertices) {
		return
	}

	at := func(i int) int {
		if i < 0 || i >= len(remap) {
			return -1
		}
		return remap[i]
	}
	for i, f := range m.Faces {
		m.Faces[i] = MeshFace{A: at(f.A), B: at(f.B), C: at(f.C), D: at(f.D)}
	}
	m.Vertices = vertices
	m.Normals = nil
}

// ComputeNormals sets one unit normal per vertex: the area weighted sum of
// the normals of the faces around it. Vertices without faces get a zero
// normal.
func (m *Mesh) ComputeNormals() {
	normals := make([]geometry.Vector3, len(m.Vertices))
	for i := range m.Faces {
		a, b, c, d, ok := m.FaceVertices(i)
		if !ok {
			continue
		}
		f := m.Faces[i]
		// unnormalised cross product is twice the area
		n := b.Sub(a).Cross(c.Sub(a))
		if f.IsQuad() {
			n = n.Add(c.Sub(a).Cross(d.Sub(a)))
		}
		normals[f.A] = normals[f.A].Add(n)
		normals[f.B] = normals[f.B].Add(n)
		normals[f.C] = normals[f.C].Add(n)
		if f.IsQuad() {
			normals[f.D] = normals[f.D].Add(n)
		}
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	m.Normals = normals
}

// FaceVertices returns the corner positions of face i. For triangles d
// equals c. ok is false when the face references missing vertices.
func (m *Mesh) FaceVertices(i int) (a, b, c, d geometry.Vector3, ok bool) {
	if i < 0 || i >= len(m.Faces) {
		return a, b, c, d, false
	}
	f := m.Faces[i]
	n := len(m.Vertices)
	for _, idx := range [4]int{f.A, f.B, f.C, f.D} {
		if idx < 0 || idx >= n {
			return a, b, c, d, false
		}
	}
	return m.Vertices[f.A], m.Vertices[f.B], m.Vertices[f.C], m.Vertices[f.D], true
}
