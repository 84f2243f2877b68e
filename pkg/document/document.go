// Package document reads CAD documents written as YAML. A document lists
// layers, saved views and objects; objects carry a mesh, a brep made of
// primitive faces, or a placeholder for geometry the viewer does not draw.
//
//	name: Bracket
//	layers:
//	  - {name: Steel, color: "#8090a0"}
//	views:
//	  - name: Perspective
//	    perspective: true
//	    location: [40, -40, 30]
//	    direction: [-1, 1, -0.7]
//	    up: [0, 0, 1]
//	objects:
//	  - name: plate
//	    layer: 0
//	    mesh:
//	      vertices: [[0, 0, 0], [10, 0, 0], [10, 10, 0], [0, 10, 0]]
//	      faces: [[0, 1, 2, 3]]
//	  - name: pin
//	    brep:
//	      faces:
//	        - cylinder: {height: 10, radius: 1}
//	          translate: [5, 5, 5]
//	  - name: axis
//	    other: {type: Curve, min: [0, 0, 0], max: [0, 0, 20]}
package document

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/deadsy/sdfx/sdf"
	"github.com/google/uuid"
	"github.com/philipparndt/gopreview/pkg/geometry"
	"github.com/philipparndt/gopreview/pkg/model"
	"github.com/philipparndt/gopreview/pkg/solid"
	"gopkg.in/yaml.v3"
)

// ErrUnknownPrimitive is returned for brep faces that name no primitive or
// more than one
var ErrUnknownPrimitive = errors.New("unknown primitive")

// Options control how documents are read
type Options struct {
	// Cells is the marching cubes resolution of brep faces
	Cells int
}

// DefaultOptions returns the options Load uses
func DefaultOptions() Options {
	return Options{Cells: solid.DefaultCells}
}

type fileDocument struct {
	Name                string       `yaml:"name"`
	InstanceDefinitions int          `yaml:"instance_definitions"`
	Layers              []fileLayer  `yaml:"layers"`
	Views               []fileView   `yaml:"views"`
	Objects             []fileObject `yaml:"objects"`
}

type fileLayer struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

type fileView struct {
	Name        string     `yaml:"name"`
	Perspective bool       `yaml:"perspective"`
	Location    [3]float64 `yaml:"location"`
	Direction   [3]float64 `yaml:"direction"`
	Up          [3]float64 `yaml:"up"`
}

type fileObject struct {
	ID       string     `yaml:"id"`
	Name     string     `yaml:"name"`
	Layer    int        `yaml:"layer"`
	Material int        `yaml:"material"`
	Mesh     *fileMesh  `yaml:"mesh"`
	Brep     *fileBrep  `yaml:"brep"`
	Other    *fileOther `yaml:"other"`
}

type fileMesh struct {
	Vertices [][3]float64 `yaml:"vertices"`
	Faces    [][]int      `yaml:"faces"`
}

type fileBrep struct {
	Faces []fileFace `yaml:"faces"`
}

type fileFace struct {
	Box       *fileBox      `yaml:"box"`
	Sphere    *fileSphere   `yaml:"sphere"`
	Cylinder  *fileCylinder `yaml:"cylinder"`
	Translate [3]float64    `yaml:"translate"`
	Rotate    [3]float64    `yaml:"rotate"`
}

type fileBox struct {
	Size  [3]float64 `yaml:"size"`
	Round float64    `yaml:"round"`
}

type fileSphere struct {
	Radius float64 `yaml:"radius"`
}

type fileCylinder struct {
	Height float64 `yaml:"height"`
	Radius float64 `yaml:"radius"`
	Round  float64 `yaml:"round"`
}

type fileOther struct {
	Type string     `yaml:"type"`
	Min  [3]float64 `yaml:"min"`
	Max  [3]float64 `yaml:"max"`
}

// Load reads the document at path
func Load(ctx context.Context, path string, opts Options) (*model.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return Parse(data, opts)
}

// Parse decodes a YAML document
func Parse(data []byte, opts Options) (*model.Document, error) {
	var fd fileDocument
	if err := yaml.Unmarshal(data, &fd); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	doc := model.NewDocument(fd.Name)
	doc.InstanceDefinitions = fd.InstanceDefinitions

	for i, l := range fd.Layers {
		c, err := ParseColor(l.Color)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		doc.Layers = append(doc.Layers, model.Layer{Name: l.Name, Color: c})
	}

	for _, v := range fd.Views {
		doc.Views = append(doc.Views, model.View{
			Name: v.Name,
			Viewport: model.Viewport{
				Perspective:     v.Perspective,
				CameraLocation:  vector(v.Location),
				CameraDirection: vector(v.Direction),
				CameraUp:        vector(v.Up),
			},
		})
	}

	for i, fo := range fd.Objects {
		obj, err := fo.object(opts)
		if err != nil {
			name := fo.Name
			if name == "" {
				name = strconv.Itoa(i)
			}
			return nil, fmt.Errorf("object %s: %w", name, err)
		}
		doc.AddObject(obj)
	}
	return doc, nil
}

func (fo fileObject) object(opts Options) (*model.Object, error) {
	obj := &model.Object{
		Name:       fo.Name,
		Attributes: model.Attributes{LayerIndex: fo.Layer, MaterialIndex: fo.Material},
	}

	if fo.ID != "" {
		id, err := uuid.Parse(fo.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid id: %w", err)
		}
		obj.ID = id
	}

	var err error
	switch {
	case fo.Mesh != nil:
		obj.Geometry, err = fo.Mesh.mesh()
	case fo.Brep != nil:
		obj.Geometry, err = fo.Brep.brep(opts)
	case fo.Other != nil:
		obj.Geometry = &model.Other{
			Type:   fo.Other.Type,
			Bounds: geometry.NewBoundingBoxFromPoints(vector(fo.Other.Min), vector(fo.Other.Max)),
		}
	}
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func (fm *fileMesh) mesh() (*model.Mesh, error) {
	m := model.NewMesh()
	for _, v := range fm.Vertices {
		m.AddVertex(vector(v))
	}
	for i, f := range fm.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= len(m.Vertices) {
				return nil, fmt.Errorf("face %d: vertex index %d out of range", i, idx)
			}
		}
		switch len(f) {
		case 3:
			m.AddTriangle(f[0], f[1], f[2])
		case 4:
			m.AddQuad(f[0], f[1], f[2], f[3])
		default:
			return nil, fmt.Errorf("face %d: %d corners, want 3 or 4", i, len(f))
		}
	}
	return m, nil
}

func (fb *fileBrep) brep(opts Options) (*model.Brep, error) {
	b := &model.Brep{}
	for i, ff := range fb.Faces {
		s, err := ff.sdf()
		if err != nil {
			return nil, fmt.Errorf("face %d: %w", i, err)
		}
		b.Faces = append(b.Faces, &solid.Face{SDF: s, Cells: opts.Cells})
	}
	return b, nil
}

func (ff fileFace) sdf() (sdf.SDF3, error) {
	count := 0
	for _, set := range []bool{ff.Box != nil, ff.Sphere != nil, ff.Cylinder != nil} {
		if set {
			count++
		}
	}
	if count != 1 {
		return nil, ErrUnknownPrimitive
	}

	var s sdf.SDF3
	var err error
	switch {
	case ff.Box != nil:
		s, err = solid.Box(vector(ff.Box.Size), ff.Box.Round)
	case ff.Sphere != nil:
		s, err = solid.Sphere(ff.Sphere.Radius)
	case ff.Cylinder != nil:
		s, err = solid.Cylinder(ff.Cylinder.Height, ff.Cylinder.Radius, ff.Cylinder.Round)
	}
	if err != nil {
		return nil, err
	}
	return solid.Place(s, vector(ff.Translate), vector(ff.Rotate)), nil
}

func vector(v [3]float64) geometry.Vector3 {
	return geometry.NewVector3(v[0], v[1], v[2])
}

// ParseColor parses "#rrggbb" or "#rrggbbaa". An empty string is opaque
// black.
func ParseColor(s string) (color.RGBA, error) {
	if s == "" {
		return color.RGBA{A: 255}, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
