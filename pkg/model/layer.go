package model

import "image/color"

// Layer is an entry of the document's layer table
type Layer struct {
	Name  string
	Color color.RGBA
}

// DefaultLayer is returned for layer indices that are not in the table
var DefaultLayer = Layer{Name: "Default", Color: color.RGBA{A: 255}}

// Layers is indexed by position, not by any layer identifier
type Layers []Layer

// FindIndex returns the layer at position index, or DefaultLayer
func (l Layers) FindIndex(index int) Layer {
	if index < 0 || index >= len(l) {
		return DefaultLayer
	}
	return l[index]
}
