// Package app is the raylib desktop viewer: it shows one file, orbits and
// pans with the right mouse button, picks with the left one and reloads
// when the file changes.
package app

import (
	"context"
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gopreview/internal/config"
	"github.com/philipparndt/gopreview/pkg/loader"
)

// Options configure Run
type Options struct {
	Path   string
	Config config.Config
}

// Run opens a window showing path until the window closes or ctx is done
func Run(ctx context.Context, opts Options) error {
	app := &App{
		Config: opts.Config,
		View: ViewSettings{
			showWireframe: opts.Config.Render.Wireframe,
			showOverlay:   true,
		},
		FileWatch: FileWatchState{
			sourceFile: opts.Path,
			loaded:     make(chan loadResult, 1),
		},
	}

	doc, err := loader.LoadWithOptions(ctx, opts.Path, app.loaderOptions())
	if err != nil {
		return fmt.Errorf("error loading file: %w", err)
	}

	bg := opts.Config.Background()
	app.View.background = rl.NewColor(bg.R, bg.G, bg.B, bg.A)

	if opts.Config.Watch.Enabled {
		if err := app.setupFileWatcher(); err != nil {
			slog.Warn("auto-reload not available", "error", err)
		} else {
			defer app.FileWatch.fileWatcher.Close()
		}
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(int32(opts.Config.Window.Width), int32(opts.Config.Window.Height), "GoPreview - "+doc.Name)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	app.Model.material = rl.LoadMaterialDefault()
	app.setScene(doc)
	app.uploadScene()
	defer app.unloadMeshes()

	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			break
		}

		if !app.FileWatch.isLoading && app.FileWatch.needsReload.CompareAndSwap(true, false) {
			app.reloadModel(ctx)
		}
		app.applyLoadedModel()

		app.handleInput()

		rl.BeginDrawing()
		rl.ClearBackground(app.View.background)
		app.drawScene()
		app.drawUI()
		rl.EndDrawing()
	}

	return nil
}
