// Package openscad turns OpenSCAD sources into documents by running the
// openscad binary, and finds the files a source depends on so that they
// can be watched.
package openscad

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/philipparndt/gopreview/pkg/model"
	"github.com/philipparndt/gopreview/pkg/stl"
)

// Binary is the name of the OpenSCAD executable looked up in PATH
const Binary = "openscad"

// DocumentName names every rendered document
const DocumentName = "OpenSCAD"

// ErrNotInstalled is returned when the openscad binary cannot be found
var ErrNotInstalled = errors.New("openscad not found in PATH, install it from https://openscad.org/")

// RenderError carries the console output of a failed openscad run
type RenderError struct {
	File   string
	Output string
	Err    error
}

func (e *RenderError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("failed to render %s: %v", e.File, e.Err)
	}
	return fmt.Sprintf("failed to render %s: %v\n%s", e.File, e.Err, e.Output)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Render runs openscad on path and reads the resulting mesh. The document
// holds a single object named after the source file.
func Render(ctx context.Context, path string) (*model.Document, error) {
	bin, err := exec.LookPath(Binary)
	if err != nil {
		return nil, ErrNotInstalled
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	out, err := os.CreateTemp("", "gopreview-*.stl")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	outPath := out.Name()
	out.Close()
	defer os.Remove(outPath)

	cmd := exec.CommandContext(ctx, bin, "-o", outPath, absPath)
	cmd.Dir = filepath.Dir(absPath)

	start := time.Now()
	output, err := cmd.CombinedOutput()
	slog.Debug("openscad finished", "file", absPath, "duration", time.Since(start), "error", err)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &RenderError{File: path, Output: strings.TrimSpace(string(output)), Err: err}
	}

	solid, err := stl.Parse(outPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load rendered STL: %w", err)
	}
	solid.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	doc := solid.Document()
	doc.Name = DocumentName
	return doc, nil
}
