// Package editor implements the interaction engine of the custom design
// canvas: tool selection, hit-testing, drawing, move/resize/rotate
// gestures, grid snapping, pan/zoom and snapshot undo/redo.
//
// An Editor never owns the scene. It reads and writes it through a
// Document, so the application state stays the single source of truth.
package editor

import (
	"errors"

	"go.uber.org/zap"

	"github.com/YashGhavghave/Glass-Billing-Software/internal/geom"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/models"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/scene"
)

var (
	// ErrToolDisabled is returned when selecting a tool that is reserved.
	ErrToolDisabled = errors.New("tool is disabled")
	// ErrNoSelection is returned by commands that need a selected element.
	ErrNoSelection = errors.New("no element selected")
	// ErrUnknownTool is returned for unrecognised tool names.
	ErrUnknownTool = errors.New("unknown tool")
)

// Tool is the active canvas tool.
type Tool string

const (
	ToolSelect      Tool = "select"
	ToolDrawFrame   Tool = "draw-frame"
	ToolDrawMullion Tool = "draw-mullion"
	ToolDimension   Tool = "dimension"
	ToolDrawText    Tool = "draw-text"
	ToolPaint       Tool = "paint"
	ToolPan         Tool = "pan"
	ToolMerge       Tool = "merge"
)

func (t Tool) valid() bool {
	switch t {
	case ToolSelect, ToolDrawFrame, ToolDrawMullion, ToolDimension, ToolDrawText, ToolPaint, ToolPan, ToolMerge:
		return true
	}
	return false
}

func (t Tool) draws() bool {
	return t == ToolDrawFrame || t == ToolDrawMullion || t == ToolDimension || t == ToolDrawText
}

// Mode is the gesture currently in progress. Only one gesture can run at
// a time.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDrawing
	ModePanning
	ModeSelecting
	ModeDragging
	ModeResizing
	ModeRotating
)

func (m Mode) String() string {
	switch m {
	case ModeDrawing:
		return "drawing"
	case ModePanning:
		return "panning"
	case ModeSelecting:
		return "selecting"
	case ModeDragging:
		return "dragging"
	case ModeResizing:
		return "resizing"
	case ModeRotating:
		return "rotating"
	default:
		return "idle"
	}
}

// PaintTarget selects which part of an element the paint tool colours.
type PaintTarget string

const (
	PaintFrame PaintTarget = "frame"
	PaintGlass PaintTarget = "glass"
	PaintLine  PaintTarget = "line"
)

// Button is a pointer button.
type Button int

const (
	ButtonPrimary Button = 0
	ButtonMiddle  Button = 1
)

// Modifiers are the keyboard modifiers held during an event.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Meta  bool
}

// Document is the scene and view storage the editor works against.
type Document interface {
	Scene() models.Scene
	SetScene(models.Scene)
	View() models.CanvasView
	SetView(models.CanvasView)
}

// Options holds the editor constants. Pixel sizes are divided by the zoom
// so they stay visually constant.
type Options struct {
	GridSize               float64
	SnapThreshold          float64
	HandleSize             float64
	RotationHandleDistance float64
	Viewport               geom.Point
}

// DefaultOptions returns the stock editor settings.
func DefaultOptions() Options {
	return Options{
		GridSize:               40,
		SnapThreshold:          8,
		HandleSize:             8,
		RotationHandleDistance: 30,
		Viewport:               geom.Point{X: 1200, Y: 800},
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.GridSize <= 0 {
		o.GridSize = d.GridSize
	}
	if o.SnapThreshold <= 0 {
		o.SnapThreshold = d.SnapThreshold
	}
	if o.HandleSize <= 0 {
		o.HandleSize = d.HandleSize
	}
	if o.RotationHandleDistance <= 0 {
		o.RotationHandleDistance = d.RotationHandleDistance
	}
	if o.Viewport.X <= 0 || o.Viewport.Y <= 0 {
		o.Viewport = d.Viewport
	}
	return o
}

// Sizes below which a freshly drawn element is discarded.
const (
	minDrawSize    = 5
	minTextBoxSize = 10
	minResizeSize  = 10

	minThickness  = 5
	maxThickness  = 100
	thicknessStep = 5

	defaultFontSize  = 16
	defaultTextColor = "#0A0A0A"
	defaultText      = "Text"
)

// RotationIndicator is the live angle readout shown while rotating.
type RotationIndicator struct {
	Angle float64    `json:"angle"`
	At    geom.Point `json:"at"`
}

// Editor is the canvas interaction state machine.
type Editor struct {
	doc     Document
	opts    Options
	logger  *zap.Logger
	history *History

	tool        Tool
	mode        Mode
	selected    models.ElementRef
	paintColor  string
	paintTarget PaintTarget
	editingText *models.TextBox
	indicator   *RotationIndicator

	// gesture state
	inOperation bool
	drawing     models.ElementRef
	panStart    geom.Point
	drag        *dragState
}

// New creates an editor over doc. The current scene seeds the history.
func New(doc Document, opts Options, logger *zap.Logger) *Editor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Editor{
		doc:         doc,
		opts:        opts.withDefaults(),
		logger:      logger,
		history:     NewHistory(doc.Scene()),
		tool:        ToolSelect,
		mode:        ModeIdle,
		paintColor:  scene.DefaultStrokeColor,
		paintTarget: PaintFrame,
	}
}

// Tool returns the active tool.
func (e *Editor) Tool() Tool { return e.tool }

// Mode returns the gesture in progress.
func (e *Editor) Mode() Mode { return e.mode }

// Selected returns the selected element, zero when nothing is selected.
func (e *Editor) Selected() models.ElementRef { return e.selected }

// EditingText returns the text box being edited inline, or nil.
func (e *Editor) EditingText() *models.TextBox { return e.editingText }

// RotationIndicator returns the live rotation readout, or nil.
func (e *Editor) RotationIndicator() *RotationIndicator { return e.indicator }

// CanUndo reports whether Undo would change the scene.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether Redo would change the scene.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// SetTool activates a tool. Merge is reserved and rejected.
func (e *Editor) SetTool(t Tool) error {
	if !t.valid() {
		return ErrUnknownTool
	}
	if t == ToolMerge {
		return ErrToolDisabled
	}
	e.tool = t
	return nil
}

// SetPaint configures the paint tool.
func (e *Editor) SetPaint(color string, target PaintTarget) {
	e.paintColor = color
	e.paintTarget = target
}

// Select replaces the selection. An empty ref clears it.
func (e *Editor) Select(ref models.ElementRef) {
	e.selected = ref
}

// zoom returns the current zoom, never zero.
func (e *Editor) zoom() float64 {
	return e.doc.View().Scale()
}

// update applies fn to a copy of the document scene and writes it back.
func (e *Editor) update(fn func(s *models.Scene)) {
	s := scene.Clone(e.doc.Scene())
	fn(&s)
	e.doc.SetScene(s)
}

// record pushes the current scene onto the history.
func (e *Editor) record() {
	if e.history.Record(e.doc.Scene()) {
		e.logger.Debug("Recorded history state", zap.Int("index", e.history.Index()))
	}
}

// updateAndRecord applies fn and records the result as one edit.
func (e *Editor) updateAndRecord(fn func(s *models.Scene)) {
	e.update(fn)
	e.record()
}
