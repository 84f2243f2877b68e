// Package loader opens model files of every supported format as documents.
package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/philipparndt/gopreview/pkg/document"
	"github.com/philipparndt/gopreview/pkg/model"
	"github.com/philipparndt/gopreview/pkg/openscad"
	"github.com/philipparndt/gopreview/pkg/stl"
	"github.com/philipparndt/gopreview/pkg/threemf"
	"github.com/philipparndt/gopreview/pkg/watcher"
)

// ErrUnsupportedFormat is returned for file extensions no reader handles
var ErrUnsupportedFormat = errors.New("unsupported format")

// Options control loading
type Options struct {
	Document document.Options
}

// DefaultOptions returns the options used by Load
func DefaultOptions() Options {
	return Options{Document: document.DefaultOptions()}
}

// Extensions lists the supported file extensions
func Extensions() []string {
	return []string{".3mf", ".stl", ".scad", ".yaml", ".yml"}
}

// Load opens path with default options
func Load(ctx context.Context, path string) (*model.Document, error) {
	return LoadWithOptions(ctx, path, DefaultOptions())
}

// LoadWithOptions opens path, picking the reader by file extension
func LoadWithOptions(ctx context.Context, path string, opts Options) (*model.Document, error) {
	start := time.Now()
	doc, err := load(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	slog.Debug("document loaded",
		"file", path,
		"objects", len(doc.Objects),
		"layers", len(doc.Layers),
		"duration", time.Since(start))
	return doc, nil
}

func load(ctx context.Context, path string, opts Options) (*model.Document, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".3mf":
		return threemf.Load(ctx, path)
	case ".stl":
		solid, err := stl.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load STL file: %w", err)
		}
		return solid.Document(), nil
	case ".scad":
		return openscad.Render(ctx, path)
	case ".yaml", ".yml":
		return document.Load(ctx, path, opts.Document)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Dependencies returns the files whose change requires reloading path:
// the file itself, plus everything an OpenSCAD source uses or includes.
func Dependencies(path string) ([]string, error) {
	if strings.ToLower(filepath.Ext(path)) != ".scad" {
		return []string{path}, nil
	}
	return openscad.Dependencies(path)
}

// Watch calls onChange, debounced, whenever path or one of its
// dependencies changes. The caller closes the returned watcher.
func Watch(path string, debounce time.Duration, onChange func(changed string)) (*watcher.FileWatcher, error) {
	files, err := Dependencies(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dependencies: %w", err)
	}

	fw, err := watcher.NewFileWatcher(debounce)
	if err != nil {
		return nil, err
	}
	if err := fw.Watch(files, onChange); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch files: %w", err)
	}
	fw.Start()

	slog.Info("watching for changes", "files", len(files))
	return fw, nil
}
