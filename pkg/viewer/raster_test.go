package viewer

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderShadesFrontFaces(t *testing.T) {
	s := unitSquareScene(false)
	opts := DefaultRenderOptions(100, 100)
	img := Render(s, opts)

	assert.Equal(t, 100, img.Bounds().Dx())

	hit := img.RGBAAt(int(hitX), int(hitY))
	assert.Greater(t, hit.R, uint8(0))
	assert.Zero(t, hit.G)
	assert.Zero(t, hit.B)

	assert.Equal(t, opts.Background, img.RGBAAt(int(missX), int(missY)))
}

func TestRenderBackFacesUseBackMaterial(t *testing.T) {
	s := unitSquareScene(true)
	img := Render(s, DefaultRenderOptions(100, 100))

	assert.Equal(t, color.RGBA{A: 255}, img.RGBAAt(int(hitX), int(hitY)))
}

func TestRenderHighlight(t *testing.T) {
	s := unitSquareScene(false)
	opts := DefaultRenderOptions(100, 100)
	plain := Render(s, opts).RGBAAt(int(hitX), int(hitY))

	opts.Highlight = s.Meshes[0]
	lit := Render(s, opts).RGBAAt(int(hitX), int(hitY))
	assert.NotEqual(t, plain, lit)
	assert.Greater(t, lit.G, uint8(0))
}

func TestRenderOverlay(t *testing.T) {
	s := unitSquareScene(false)
	opts := DefaultRenderOptions(100, 100)
	opts.Overlay = []string{"Object Count: 1"}
	img := Render(s, opts)

	changed := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < 60; x++ {
			if img.RGBAAt(x, y) != opts.Background {
				changed++
			}
		}
	}
	assert.Greater(t, changed, 0)
}

func TestRenderSkipsGeometryBehindCamera(t *testing.T) {
	s := unitSquareScene(false)
	s.Camera.Look = s.Camera.Look.Neg()
	opts := DefaultRenderOptions(50, 50)
	img := Render(s, opts)

	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			if img.RGBAAt(x, y) != opts.Background {
				t.Fatalf("pixel (%d, %d) drawn", x, y)
			}
		}
	}
}
