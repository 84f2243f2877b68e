package viewer

import (
	"testing"

	"github.com/philipparndt/gopreview/pkg/geometry"
	"github.com/philipparndt/gopreview/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHitTester struct {
	mesh *scene.RenderMesh
}

func (s stubHitTester) HitTest(x, y float64) (*scene.RenderMesh, bool) {
	return s.mesh, s.mesh != nil
}

func TestRayHitTester(t *testing.T) {
	s := unitSquareScene(false)
	ht := NewRayHitTester(s, 100, 100)

	mesh, ok := ht.HitTest(hitX, hitY)
	require.True(t, ok)
	assert.Same(t, s.Meshes[0], mesh)

	_, ok = ht.HitTest(missX, missY)
	assert.False(t, ok)

	_, ok = NewRayHitTester(s, 0, 0).HitTest(hitX, hitY)
	assert.False(t, ok)
}

func TestNearestHitPicksClosest(t *testing.T) {
	near := unitSquareScene(false).Meshes[0]
	far := unitSquareScene(false).Meshes[0]
	for i := range far.Positions {
		far.Positions[i].Z = -5
	}

	origin := geometry.NewVector3(0.5, 0.5, 10)
	dir := geometry.NewVector3(0, 0, -1)

	mesh, dist, ok := NearestHit([]*scene.RenderMesh{far, near}, origin, dir)
	require.True(t, ok)
	assert.Same(t, near, mesh)
	assert.InDelta(t, 10.0, dist, 1e-10)

	_, _, ok = NearestHit([]*scene.RenderMesh{far, near}, origin, dir.Neg())
	assert.False(t, ok, "hits behind the origin do not count")
}

func TestPickSelectsObject(t *testing.T) {
	s := unitSquareScene(false)
	p := NewPicker(s.Document, NewRayHitTester(s, 100, 100))

	require.True(t, p.Pick(hitX, hitY))
	obj := s.Document.Objects[0]
	assert.True(t, p.Selection.Valid)
	assert.Equal(t, obj.ID, p.Selection.ObjectID)
	assert.Equal(t, obj.Properties(), p.Selection.Properties)
	assert.Len(t, p.Selection.Properties, 5)
	assert.Equal(t, "Name: square", p.Selection.Properties[0])
}

func TestPickMissKeepsSelection(t *testing.T) {
	s := unitSquareScene(false)
	p := NewPicker(s.Document, NewRayHitTester(s, 100, 100))

	assert.False(t, p.Pick(missX, missY))
	assert.False(t, p.Selection.Valid)

	require.True(t, p.Pick(hitX, hitY))
	before := p.Selection

	assert.False(t, p.Pick(missX, missY))
	assert.Equal(t, before, p.Selection)
}

func TestPickUnknownObjectKeepsSelection(t *testing.T) {
	s := unitSquareScene(false)
	orphan := *s.Meshes[0]
	orphan.ObjectID[0] ^= 0xff

	p := NewPicker(s.Document, stubHitTester{mesh: s.Meshes[0]})
	require.True(t, p.Pick(0, 0))
	before := p.Selection

	p.HitTester = stubHitTester{mesh: &orphan}
	assert.False(t, p.Pick(0, 0))
	assert.Equal(t, before, p.Selection)
}
