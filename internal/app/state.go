package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/stlview/internal/config"
	"github.com/philipparndt/stlview/internal/dialog"
	"github.com/philipparndt/stlview/pkg/analysis"
	"github.com/philipparndt/stlview/pkg/export"
	"github.com/philipparndt/stlview/pkg/library"
	"github.com/philipparndt/stlview/pkg/render"
	"github.com/philipparndt/stlview/pkg/stl"
	"github.com/philipparndt/stlview/pkg/watcher"
)

// Options configure the interactive viewer
type Options struct {
	ConfigPath     string // empty disables persistence
	NativeDialogs  bool
	SoftwareExport bool // render exports on the CPU instead of the GPU
	Watch          bool
}

// App is the state of the interactive viewer. It is only touched from the
// main goroutine.
type App struct {
	opts     Options
	cfg      config.Config
	settings render.Settings

	lib      *library.Library
	gpu      *gpu
	exporter *export.Exporter
	dialogs  dialog.Provider
	watch    *watcher.ModelWatcher

	Interaction InteractionState
	UI          UIState
	pending     []action
}

// InteractionState holds mouse state for orbiting
type InteractionState struct {
	dragging     bool
	lastMousePos rl.Vector2
}

// UIState holds panel state that survives between frames
type UIState struct {
	layout       panelLayout
	activeSlider string // label of the slider being dragged
	listScroll   int
	overList     bool // the wheel scrolls the model list instead of the panel
	panelScroll  float32
	report       *analysis.Report
	reportFor    *stl.Model
}

// panelLayout is produced by drawPanel and consumed by the viewport in
// the same frame.
type panelLayout struct {
	Width    float32
	Viewport rl.Rectangle
}

// action is a user request that must run outside of BeginDrawing, for
// example because it opens a modal dialog.
type action int

const (
	actionOpenFile action = iota
	actionOpenFolder
	actionExportCurrent
	actionExportAll
	actionClear
)
