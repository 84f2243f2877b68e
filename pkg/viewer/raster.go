package viewer

import (
	"image"
	"image/color"
	"math"

	"github.com/philipparndt/gopreview/pkg/geometry"
	"github.com/philipparndt/gopreview/pkg/scene"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	ambientLight = 0.25
	lightWeight  = 0.35
	nearPlane    = 0.01
)

// RenderOptions control the software renderer
type RenderOptions struct {
	Width      int
	Height     int
	Background color.RGBA
	Wireframe  bool       // draw triangle edges on top of the shaded faces
	Edge       color.RGBA // wireframe colour
	Overlay    []string   // text lines drawn in the top left corner
	Highlight  *scene.RenderMesh
}

// DefaultRenderOptions returns options for a width × height image
func DefaultRenderOptions(width, height int) RenderOptions {
	return RenderOptions{
		Width:      width,
		Height:     height,
		Background: color.RGBA{R: 40, G: 40, B: 46, A: 255},
		Edge:       color.RGBA{R: 90, G: 90, B: 90, A: 255},
	}
}

// Render draws the scene from its camera into a new image. Faces turned
// away from the camera use the back material.
func Render(s *scene.Scene, opts RenderOptions) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = opts.Background.R
		img.Pix[i+1] = opts.Background.G
		img.Pix[i+2] = opts.Background.B
		img.Pix[i+3] = opts.Background.A
	}

	zbuffer := make([]float64, opts.Width*opts.Height)
	for i := range zbuffer {
		zbuffer[i] = math.Inf(1)
	}

	w, h := float64(opts.Width), float64(opts.Height)
	cam := s.Camera

	for _, mesh := range s.Meshes {
		material := mesh.Material
		if mesh == opts.Highlight {
			material = Highlight(material)
		}

		for i := 0; i < mesh.TriangleCount(); i++ {
			tri := mesh.Triangle(i)

			x1, y1, z1 := cam.Project(tri.V1, w, h)
			x2, y2, z2 := cam.Project(tri.V2, w, h)
			x3, y3, z3 := cam.Project(tri.V3, w, h)
			if z1 <= nearPlane || z2 <= nearPlane || z3 <= nearPlane {
				continue
			}

			col := mesh.BackMaterial
			if tri.Normal.Dot(cam.Position.Sub(tri.Center())) > 0 {
				col = Shade(material, tri, s.Lights)
			}
			fillTriangleWithDepth(img, zbuffer, x1, y1, z1, x2, y2, z2, x3, y3, z3, col)

			if opts.Wireframe {
				drawLine(img, int(x1), int(y1), int(x2), int(y2), opts.Edge)
				drawLine(img, int(x2), int(y2), int(x3), int(y3), opts.Edge)
				drawLine(img, int(x3), int(y3), int(x1), int(y1), opts.Edge)
			}
		}
	}

	if len(opts.Overlay) > 0 {
		drawText(img, opts.Overlay, color.RGBA{R: 230, G: 230, B: 230, A: 255})
	}
	return img
}

// Shade applies ambient plus diffuse light from the point lights
func Shade(material color.RGBA, tri geometry.Triangle, lights [4]scene.Light) color.RGBA {
	center := tri.Center()
	intensity := ambientLight
	for _, l := range lights {
		dir := l.Position.Sub(center).Normalize()
		if d := tri.Normal.Dot(dir); d > 0 {
			intensity += d * lightWeight
		}
	}
	intensity = math.Min(intensity, 1)

	scale := func(c uint8) uint8 {
		return uint8(math.Round(float64(c) * intensity))
	}
	return color.RGBA{R: scale(material.R), G: scale(material.G), B: scale(material.B), A: material.A}
}

// Highlight brightens a colour halfway towards yellow
func Highlight(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8((int(c.R) + 255) / 2),
		G: uint8((int(c.G) + 220) / 2),
		B: uint8(int(c.B) / 2),
		A: c.A,
	}
}

// drawText draws lines of text with the fixed 7x13 font
func drawText(img *image.RGBA, lines []string, col color.RGBA) {
	face := basicfont.Face7x13
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	padding := 6

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
	}
	for i, line := range lines {
		d.Dot = fixed.Point26_6{
			X: fixed.I(padding),
			Y: fixed.I(padding + metrics.Ascent.Ceil() + i*lineHeight),
		}
		d.DrawString(line)
	}
}

// fillTriangleWithDepth fills a triangle with depth testing
func fillTriangleWithDepth(img *image.RGBA, zbuffer []float64, x1, y1, z1, x2, y2, z2, x3, y3, z3 float64, col color.RGBA) {
	// Convert to integers for pixel operations
	vertices := [][3]float64{
		{x1, y1, z1},
		{x2, y2, z2},
		{x3, y3, z3},
	}

	// Sort vertices by Y coordinate (top to bottom)
	if vertices[0][1] > vertices[1][1] {
		vertices[0], vertices[1] = vertices[1], vertices[0]
	}
	if vertices[1][1] > vertices[2][1] {
		vertices[1], vertices[2] = vertices[2], vertices[1]
	}
	if vertices[0][1] > vertices[1][1] {
		vertices[0], vertices[1] = vertices[1], vertices[0]
	}

	x1, y1, z1 = vertices[0][0], vertices[0][1], vertices[0][2]
	x2, y2, z2 = vertices[1][0], vertices[1][1], vertices[1][2]
	x3, y3, z3 = vertices[2][0], vertices[2][1], vertices[2][2]

	bounds := img.Bounds()
	width := bounds.Max.X

	// Scanline algorithm with depth interpolation
	for y := int(math.Max(0, y1)); y <= int(math.Min(float64(bounds.Max.Y-1), y3)); y++ {
		fy := float64(y)

		var xStart, xEnd, zStart, zEnd float64
		foundStart := false
		foundEnd := false

		// Find intersections with triangle edges
		// Edge 1-2
		if y1 != y2 && fy >= y1 && fy <= y2 {
			t := (fy - y1) / (y2 - y1)
			x := x1 + t*(x2-x1)
			z := z1 + t*(z2-z1)
			if !foundStart {
				xStart, zStart = x, z
				foundStart = true
			} else {
				xEnd, zEnd = x, z
				foundEnd = true
			}
		}

		// Edge 2-3
		if y2 != y3 && fy >= y2 && fy <= y3 {
			t := (fy - y2) / (y3 - y2)
			x := x2 + t*(x3-x2)
			z := z2 + t*(z3-z2)
			if !foundStart {
				xStart, zStart = x, z
				foundStart = true
			} else {
				xEnd, zEnd = x, z
				foundEnd = true
			}
		}

		// Edge 1-3
		if y1 != y3 && fy >= y1 && fy <= y3 {
			t := (fy - y1) / (y3 - y1)
			x := x1 + t*(x3-x1)
			z := z1 + t*(z3-z1)
			if !foundStart {
				xStart, zStart = x, z
				foundStart = true
			} else {
				xEnd, zEnd = x, z
				foundEnd = true
			}
		}

		if foundStart && foundEnd {
			// Ensure xStart < xEnd
			if xStart > xEnd {
				xStart, xEnd = xEnd, xStart
				zStart, zEnd = zEnd, zStart
			}

			// Clamp to image bounds
			xStartInt := int(math.Max(0, xStart))
			xEndInt := int(math.Min(float64(bounds.Max.X-1), xEnd))

			// Draw horizontal line with depth testing
			for x := xStartInt; x <= xEndInt; x++ {
				// Interpolate depth
				t := 0.0
				if xEnd != xStart {
					t = (float64(x) - xStart) / (xEnd - xStart)
				}
				z := zStart + t*(zEnd-zStart)

				// Depth test - draw if closer (smaller z)
				idx := y*width + x
				if idx >= 0 && idx < len(zbuffer) {
					if z < zbuffer[idx] {
						zbuffer[idx] = z
						img.SetRGBA(x, y, col)
					}
				}
			}
		}
	}
}

// drawLine draws a line on an image using Bresenham's algorithm
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := img.Bounds()

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	var sx, sy int
	if x1 < x2 {
		sx = 1
	} else {
		sx = -1
	}
	if y1 < y2 {
		sy = 1
	} else {
		sy = -1
	}

	err := dx - dy

	for {
		// Check bounds
		if x1 >= 0 && x1 < bounds.Max.X && y1 >= 0 && y1 < bounds.Max.Y {
			img.SetRGBA(x1, y1, col)
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
