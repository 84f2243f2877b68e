package app

import (
	"sync/atomic"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gopreview/internal/config"
	"github.com/philipparndt/gopreview/pkg/model"
	"github.com/philipparndt/gopreview/pkg/scene"
	"github.com/philipparndt/gopreview/pkg/viewer"
	"github.com/philipparndt/gopreview/pkg/watcher"
)

// ModelData holds the loaded document and its GPU meshes
type ModelData struct {
	scene    *scene.Scene
	home     *scene.Camera // camera of the freshly built scene, for reset
	meshes   []rl.Mesh     // parallel to scene.Meshes
	edges    []edge
	material rl.Material
}

// ViewSettings holds display settings
type ViewSettings struct {
	showWireframe bool
	showOverlay   bool
	background    rl.Color
}

// InteractionState holds mouse and selection state
type InteractionState struct {
	interaction  viewer.Interaction
	picker       *viewer.Picker
	mouseDownPos rl.Vector2
	highlighted  int // index into scene.Meshes, -1 for none
}

// FileWatchState holds file watching and reload state
type FileWatchState struct {
	sourceFile       string
	fileWatcher      *watcher.FileWatcher
	needsReload      atomic.Bool // set from watcher goroutines
	isLoading        bool
	loadingStartTime time.Time
	loaded           chan loadResult
	lastError        error
}

type loadResult struct {
	doc *model.Document
	err error
}

// App is the raylib viewer window
type App struct {
	Config      config.Config
	Model       ModelData
	View        ViewSettings
	Interaction InteractionState
	FileWatch   FileWatchState
}
