// Package model holds the read-only document shape every loader produces:
// an ordered list of objects, a positional layer table and saved views.
package model

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Document is one opened CAD document. Loaders build it once and nothing
// mutates it afterwards.
type Document struct {
	Name                string // application or creator that wrote the file
	Objects             []*Object
	Layers              Layers
	Views               []View
	InstanceDefinitions int
}

// NewDocument creates an empty document
func NewDocument(name string) *Document {
	return &Document{
		Name:    name,
		Objects: make([]*Object, 0),
	}
}

// AddObject appends an object, assigning a fresh ID when it has none
func (d *Document) AddObject(obj *Object) {
	if obj.ID == uuid.Nil {
		obj.ID = uuid.New()
	}
	d.Objects = append(d.Objects, obj)
}

// FindID returns the object with the given ID, or nil
func (d *Document) FindID(id uuid.UUID) *Object {
	obj, ok := lo.Find(d.Objects, func(o *Object) bool {
		return o.ID == id
	})
	if !ok {
		return nil
	}
	return obj
}

// FirstPerspectiveView returns the first saved view with a perspective
// projection
func (d *Document) FirstPerspectiveView() (View, bool) {
	return lo.Find(d.Views, func(v View) bool {
		return v.Viewport.Perspective
	})
}

// Properties returns the document summary shown next to the viewport
func (d *Document) Properties() []string {
	return []string{
		fmt.Sprintf("Name: %s", d.Name),
		fmt.Sprintf("Layer Count: %d", len(d.Layers)),
		fmt.Sprintf("Object Count: %d", len(d.Objects)),
		fmt.Sprintf("Blockdefinition Count: %d", d.InstanceDefinitions),
	}
}

// Attributes reference entries of the document's tables by position
type Attributes struct {
	LayerIndex    int
	MaterialIndex int
}

// Object is one placed geometric entity
type Object struct {
	ID         uuid.UUID
	Name       string
	Geometry   Geometry
	Attributes Attributes
}

// Properties returns the five display lines for a picked object
func (o *Object) Properties() []string {
	typeName := "None"
	if o.Geometry != nil {
		typeName = o.Geometry.TypeName()
	}
	return []string{
		fmt.Sprintf("Name: %s", o.Name),
		fmt.Sprintf("Layer: %d", o.Attributes.LayerIndex),
		fmt.Sprintf("Type: %s", typeName),
		fmt.Sprintf("Id: %s", o.ID),
		fmt.Sprintf("Material: %d", o.Attributes.MaterialIndex),
	}
}
