package model

import "github.com/philipparndt/gopreview/pkg/geometry"

// View is a named view saved in the document
type View struct {
	Name     string
	Viewport Viewport
}

// Viewport holds the camera a view was saved with
type Viewport struct {
	Perspective     bool
	CameraLocation  geometry.Vector3
	CameraDirection geometry.Vector3
	CameraUp        geometry.Vector3
}
