package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/gopreview/internal/config"
	"github.com/philipparndt/gopreview/pkg/loader"
	"github.com/philipparndt/gopreview/pkg/scene"
	"github.com/philipparndt/gopreview/pkg/viewer"
	"github.com/philipparndt/gopreview/pkg/watcher"
)

type App struct {
	app      fyne.App
	window   fyne.Window
	config   config.Config
	filename string
	viewport *viewer.Viewport
	watcher  *watcher.FileWatcher

	fileInfo      *widget.Label
	selectionInfo *widget.Label
}

func main() {
	cfg := loadConfig()

	a := app.New()
	w := a.NewWindow("GoPreview")

	appInstance := &App{
		app:    a,
		window: w,
		config: cfg,
	}

	// Check if file was provided as argument
	if len(os.Args) > 1 {
		appInstance.loadFile(os.Args[1])
	} else {
		appInstance.showWelcomeScreen()
	}

	w.SetOnClosed(appInstance.stopWatching)
	w.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))
	w.ShowAndRun()
}

func loadConfig() config.Config {
	cfg := config.Default()
	if path, err := config.DefaultPath(); err == nil {
		if loaded, err := config.LoadOrDefault(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else {
			cfg = loaded
		}
	}
	cfg.Resolve(config.Flags{})

	level, _ := cfg.Level()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return cfg
}

func (a *App) showWelcomeScreen() {
	welcomeLabel := widget.NewLabel("Welcome to GoPreview")
	welcomeLabel.TextStyle = fyne.TextStyle{Bold: true}

	instructionLabel := widget.NewLabel("Click 'Open File' to load a 3MF, STL, OpenSCAD or YAML document")

	openButton := widget.NewButton("Open File", func() {
		a.showFileDialog()
	})

	content := container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(welcomeLabel),
		container.NewCenter(instructionLabel),
		layout.NewSpacer(),
		container.NewCenter(openButton),
		layout.NewSpacer(),
	)

	a.window.SetContent(content)
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.loadFile(reader.URI().Path())
	}, a.window)
}

func (a *App) loadScene(filename string) (*scene.Scene, error) {
	doc, err := loader.LoadWithOptions(context.Background(), filename, loader.Options{Document: a.config.DocumentOptions()})
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filepath.Base(filename), err)
	}
	return scene.Build(doc), nil
}

func (a *App) loadFile(filename string) {
	s, err := a.loadScene(filename)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	a.filename = filename
	a.window.SetTitle("GoPreview - " + filepath.Base(filename))
	if a.viewport == nil {
		a.setupMainUI()
	}
	a.showScene(s)
	a.watch()
}

// reload loads the current file again and keeps the camera
func (a *App) reload() {
	s, err := a.loadScene(a.filename)
	if err != nil {
		slog.Error("reload failed", "error", err)
		a.selectionInfo.SetText(err.Error())
		return
	}
	if old := a.viewport.Scene(); old != nil {
		s.Camera = old.Camera
	}
	a.showScene(s)
	slog.Info("reloaded", "file", a.filename)
}

func (a *App) showScene(s *scene.Scene) {
	a.viewport.SetScene(s)
	a.fileInfo.SetText(strings.Join(s.Properties(), "\n"))
	a.selectionInfo.SetText("Click an object to select it")
}

func (a *App) watch() {
	a.stopWatching()
	if !a.config.Watch.Enabled {
		return
	}

	fw, err := loader.Watch(a.filename, a.config.Debounce(), func(string) {
		fyne.Do(a.reload)
	})
	if err != nil {
		slog.Warn("auto-reload not available", "error", err)
		return
	}
	a.watcher = fw
}

func (a *App) stopWatching() {
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
}

// openExternal opens the current file in the system's default application
func (a *App) openExternal() {
	abs, err := filepath.Abs(a.filename)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	u := &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	if err := a.app.OpenURL(u); err != nil {
		dialog.ShowError(fmt.Errorf("failed to open %s: %w", filepath.Base(a.filename), err), a.window)
	}
}

func (a *App) setupMainUI() {
	a.fileInfo = widget.NewLabel("")
	a.selectionInfo = widget.NewLabel("")
	a.selectionInfo.Wrapping = fyne.TextWrapWord

	a.viewport = viewer.NewViewport(nil)
	a.viewport.SetBackground(a.config.Background())
	a.viewport.SetWireframe(a.config.Render.Wireframe)
	a.viewport.SetOnSelect(func(sel viewer.Selection) {
		a.selectionInfo.SetText(strings.Join(sel.Properties, "\n"))
	})

	openButton := widget.NewButton("Open File", func() {
		a.showFileDialog()
	})

	externalButton := widget.NewButton("Open in Default Application", func() {
		a.openExternal()
	})

	reloadButton := widget.NewButton("Reload", func() {
		a.reload()
	})

	wireframeCheck := widget.NewCheck("Show Wireframe", func(checked bool) {
		a.viewport.SetWireframe(checked)
	})
	wireframeCheck.SetChecked(a.config.Render.Wireframe)

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Right-drag to orbit\n" +
			"• Shift + right-drag to pan\n" +
			"• Scroll to zoom in/out\n" +
			"• Click an object to select it",
	)
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		widget.NewLabel("File Properties:"),
		widget.NewSeparator(),
		a.fileInfo,
		widget.NewSeparator(),
		widget.NewLabel("Selected Object:"),
		widget.NewSeparator(),
		a.selectionInfo,
		widget.NewSeparator(),
		widget.NewLabel("Display Options:"),
		wireframeCheck,
		widget.NewSeparator(),
		instructions,
		widget.NewSeparator(),
		openButton,
		reloadButton,
		externalButton,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(300, 0))

	content := container.NewBorder(
		nil,        // top
		nil,        // bottom
		nil,        // left
		infoScroll, // right
		a.viewport, // center
	)

	a.window.SetContent(content)
}
