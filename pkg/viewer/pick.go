package viewer

import (
	"log/slog"
	"math"

	"github.com/google/uuid"
	"github.com/philipparndt/gopreview/pkg/geometry"
	"github.com/philipparndt/gopreview/pkg/model"
	"github.com/philipparndt/gopreview/pkg/scene"
)

// HitTester finds the render mesh under a viewport position. Hosts with a
// 3D backend provide their own; RayHitTester works on any scene.
type HitTester interface {
	HitTest(x, y float64) (*scene.RenderMesh, bool)
}

// RayHitTester casts a ray through the camera and tests every triangle
type RayHitTester struct {
	Camera *scene.Camera
	Width  float64
	Height float64
	Meshes []*scene.RenderMesh
}

// NewRayHitTester creates a hit tester for a scene shown at width × height
func NewRayHitTester(s *scene.Scene, width, height float64) *RayHitTester {
	return &RayHitTester{
		Camera: s.Camera,
		Width:  width,
		Height: height,
		Meshes: s.Meshes,
	}
}

// HitTest returns the mesh owning the nearest triangle under (x, y)
func (h *RayHitTester) HitTest(x, y float64) (*scene.RenderMesh, bool) {
	if h.Width <= 0 || h.Height <= 0 {
		return nil, false
	}
	origin, dir := h.Camera.Unproject(x, y, h.Width, h.Height)
	mesh, _, ok := NearestHit(h.Meshes, origin, dir)
	return mesh, ok
}

// NearestHit intersects a ray with all meshes and returns the mesh with the
// closest hit and its distance along the ray.
func NearestHit(meshes []*scene.RenderMesh, origin, dir geometry.Vector3) (*scene.RenderMesh, float64, bool) {
	var nearest *scene.RenderMesh
	best := math.Inf(1)

	for _, m := range meshes {
		for i := 0; i < m.TriangleCount(); i++ {
			dist, ok := m.Triangle(i).IntersectRay(origin, dir)
			if ok && dist < best {
				best = dist
				nearest = m
			}
		}
	}
	return nearest, best, nearest != nil
}

// Selection is the most recently picked object
type Selection struct {
	ObjectID   uuid.UUID
	Properties []string
	Valid      bool
}

// Picker resolves viewport positions to document objects
type Picker struct {
	Document  *model.Document
	HitTester HitTester
	Selection Selection
}

// NewPicker creates a picker with an empty selection
func NewPicker(doc *model.Document, ht HitTester) *Picker {
	return &Picker{Document: doc, HitTester: ht}
}

// Pick selects the object under (x, y) and reports whether the selection
// changed. A miss keeps the previous selection.
func (p *Picker) Pick(x, y float64) bool {
	mesh, ok := p.HitTester.HitTest(x, y)
	if !ok {
		return false
	}

	obj := p.Document.FindID(mesh.ObjectID)
	if obj == nil {
		slog.Warn("hit mesh without object", "id", mesh.ObjectID)
		return false
	}

	p.Selection = Selection{
		ObjectID:   obj.ID,
		Properties: obj.Properties(),
		Valid:      true,
	}
	slog.Debug("picked object", "id", obj.ID, "name", obj.Name)
	return true
}
