// Package threemf reads 3D Manufacturing Format packages into documents.
//
// Every build item becomes a document object carrying the triangles of the
// meshes it places, with item and component transforms applied. Base
// material groups are flattened into the layer table.
package threemf

import (
	"context"
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hpinc/go3mf"
	"github.com/philipparndt/gopreview/pkg/geometry"
	"github.com/philipparndt/gopreview/pkg/model"
)

// Creator is the document name used when the package names no application
const Creator = "3MF"

// AssemblyType is the type name of component objects
const AssemblyType = "Components"

// DefaultColor is used for the fallback layer of packages without materials
var DefaultColor = color.RGBA{R: 200, G: 200, B: 200, A: 255}

// Load reads the package at path
func Load(ctx context.Context, path string) (*model.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r, err := go3mf.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open 3mf: %w", err)
	}
	defer r.Close()

	var m go3mf.Model
	if err := r.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode 3mf: %w", err)
	}
	return Convert(&m, filepath.Base(path)), nil
}

// materialKey addresses one base of a base material group
type materialKey struct {
	group uint32
	index uint32
}

// maxDepth bounds component nesting so that cyclic references terminate
const maxDepth = 32

// Convert maps a decoded package onto a document. Every build item becomes
// one document object whose mesh holds all meshes it places, transformed by
// the item and component transforms. Packages without build items fall back
// to one untransformed object per mesh resource. Object IDs are derived from
// source and the item position so that reloading a file keeps them.
func Convert(m *go3mf.Model, source string) *model.Document {
	c := &converter{
		m:          m,
		doc:        model.NewDocument(application(m)),
		layers:     make(map[materialKey]int),
		assemblies: make(map[uint32]bool),
	}
	c.collectLayers()

	if len(m.Build.Items) == 0 {
		for _, obj := range m.Resources.Objects {
			if obj.Mesh == nil && obj.Components == nil {
				continue
			}
			c.place(fmt.Sprintf("%s#%d", source, obj.ID), "", obj, go3mf.Identity())
		}
		return c.doc
	}

	for i, item := range m.Build.Items {
		obj, ok := c.find(item.ObjectPath(), item.ObjectID)
		if !ok {
			continue
		}
		c.place(fmt.Sprintf("%s#item%d/%d", source, i, item.ObjectID), item.ObjectPath(), obj, item.Transform)
	}
	return c.doc
}

type converter struct {
	m          *go3mf.Model
	doc        *model.Document
	layers     map[materialKey]int
	assemblies map[uint32]bool
}

func (c *converter) collectLayers() {
	for _, asset := range c.m.Resources.Assets {
		group, ok := asset.(*go3mf.BaseMaterials)
		if !ok {
			continue
		}
		for i, base := range group.Materials {
			c.layers[materialKey{group.ID, uint32(i)}] = len(c.doc.Layers)
			c.doc.Layers = append(c.doc.Layers, model.Layer{Name: base.Name, Color: base.Color})
		}
	}
	if len(c.doc.Layers) == 0 {
		c.doc.Layers = model.Layers{{Name: "Default", Color: DefaultColor}}
	}
}

func (c *converter) find(path string, id uint32) (*go3mf.Object, bool) {
	if obj, ok := c.m.FindObject(path, id); ok {
		return obj, true
	}
	return c.m.Resources.FindObject(id)
}

// place adds one document object for obj placed with transform
func (c *converter) place(key, path string, obj *go3mf.Object, transform go3mf.Matrix) {
	o := &model.Object{
		ID:   uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)),
		Name: obj.Name,
	}
	if o.Name == "" {
		o.Name = fmt.Sprintf("Object %d", obj.ID)
	}

	mesh := model.NewMesh()
	source := c.flatten(mesh, path, obj, normalize(transform), 0)
	if source == nil {
		source = obj
	}
	layer, ok := c.layers[materialKey{source.PID, source.PIndex}]
	if !ok {
		layer = 0
	}
	o.Attributes = model.Attributes{LayerIndex: layer, MaterialIndex: int(source.PIndex)}

	if len(mesh.Faces) > 0 {
		o.Geometry = mesh
	} else {
		o.Geometry = &model.Other{Type: AssemblyType, Bounds: geometry.EmptyBoundingBox()}
	}
	c.doc.AddObject(o)
}

// flatten appends every mesh reachable from obj to dst and returns the
// first mesh object it met
func (c *converter) flatten(dst *model.Mesh, path string, obj *go3mf.Object, transform go3mf.Matrix, depth int) *go3mf.Object {
	if depth > maxDepth {
		return nil
	}
	if obj.Mesh != nil {
		dst.Append(convertMesh(obj.Mesh, transform))
		return obj
	}
	if obj.Components == nil {
		return nil
	}
	if !c.assemblies[obj.ID] {
		c.assemblies[obj.ID] = true
		c.doc.InstanceDefinitions++
	}

	var first *go3mf.Object
	for _, comp := range obj.Components.Component {
		child, ok := c.find(comp.ObjectPath(path), comp.ObjectID)
		if !ok {
			continue
		}
		found := c.flatten(dst, comp.ObjectPath(path), child, transform.Mul(normalize(comp.Transform)), depth+1)
		if first == nil {
			first = found
		}
	}
	return first
}

// normalize maps the zero matrix of an absent transform attribute to identity
func normalize(m go3mf.Matrix) go3mf.Matrix {
	if m == (go3mf.Matrix{}) {
		return go3mf.Identity()
	}
	return m
}

func convertMesh(src *go3mf.Mesh, transform go3mf.Matrix) *model.Mesh {
	mesh := model.NewMesh()
	for _, v := range src.Vertices.Vertex {
		p := transform.Mul3D(v)
		mesh.AddVertex(geometry.FromFloat32(p[0], p[1], p[2]))
	}
	for _, t := range src.Triangles.Triangle {
		mesh.AddTriangle(int(t.V1), int(t.V2), int(t.V3))
	}
	return mesh
}

func application(m *go3mf.Model) string {
	for _, md := range m.Metadata {
		if md.Name.Local == "Application" && md.Value != "" {
			return md.Value
		}
	}
	return Creator
}
