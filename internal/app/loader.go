package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/philipparndt/gopreview/pkg/loader"
	"github.com/philipparndt/gopreview/pkg/model"
	"github.com/philipparndt/gopreview/pkg/scene"
	"github.com/philipparndt/gopreview/pkg/viewer"
)

func (app *App) loaderOptions() loader.Options {
	return loader.Options{Document: app.Config.DocumentOptions()}
}

// setScene builds the scene for doc and resets picking state. The caller
// uploads the meshes.
func (app *App) setScene(doc *model.Document) {
	s := scene.Build(doc)
	app.Model.scene = s
	app.Model.home = s.Camera.Clone()
	app.Interaction.picker = viewer.NewPicker(doc, rayHitTester{app})
	app.Interaction.highlighted = -1
}

// setupFileWatcher watches the source file and its dependencies
func (app *App) setupFileWatcher() error {
	fw, err := loader.Watch(app.FileWatch.sourceFile, app.Config.Debounce(), func(changed string) {
		slog.Info("file changed", "file", changed)
		app.FileWatch.needsReload.Store(true)
	})
	if err != nil {
		return fmt.Errorf("failed to set up file watching: %w", err)
	}
	app.FileWatch.fileWatcher = fw
	return nil
}

// reloadModel loads the source file again in the background
func (app *App) reloadModel(ctx context.Context) {
	if app.FileWatch.isLoading {
		return
	}

	app.FileWatch.isLoading = true
	app.FileWatch.loadingStartTime = time.Now()
	slog.Info("reloading", "file", app.FileWatch.sourceFile)

	go func() {
		doc, err := loader.LoadWithOptions(ctx, app.FileWatch.sourceFile, app.loaderOptions())
		app.FileWatch.loaded <- loadResult{doc: doc, err: err}
	}()
}

// applyLoadedModel swaps in a document loaded in the background. GPU
// uploads must happen on the main thread. The camera is kept.
func (app *App) applyLoadedModel() {
	var result loadResult
	select {
	case result = <-app.FileWatch.loaded:
	default:
		return
	}
	app.FileWatch.isLoading = false

	if result.err != nil {
		slog.Error("reload failed", "error", result.err)
		app.FileWatch.lastError = result.err
		return
	}
	app.FileWatch.lastError = nil

	camera := app.Model.scene.Camera
	app.setScene(result.doc)
	app.Model.scene.Camera = camera
	app.uploadScene()

	slog.Info("reloaded",
		"objects", len(result.doc.Objects),
		"duration", time.Since(app.FileWatch.loadingStartTime))
}
