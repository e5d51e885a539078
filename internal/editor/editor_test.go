package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YashGhavghave/Glass-Billing-Software/internal/geom"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/models"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/scene"
)

type memDoc struct {
	scene models.Scene
	view  models.CanvasView
}

func (d *memDoc) Scene() models.Scene         { return scene.Clone(d.scene) }
func (d *memDoc) SetScene(s models.Scene)     { d.scene = s }
func (d *memDoc) View() models.CanvasView     { return d.view }
func (d *memDoc) SetView(v models.CanvasView) { d.view = v }

func newTestEditor(s models.Scene) (*Editor, *memDoc) {
	doc := &memDoc{scene: s, view: models.DefaultCanvasView()}
	return New(doc, DefaultOptions(), nil), doc
}

// frameScene returns a 200x100 frame at the origin with its dimensions.
func frameScene() (models.Scene, models.Frame) {
	f := scene.NewFrame(geom.Rect{Width: 200, Height: 100})
	w, h := scene.FrameDimensions(f)
	return models.Scene{Frames: []models.Frame{f}, Dimensions: []models.Dimension{w, h}}, f
}

func pt(x, y float64) geom.Point { return geom.Point{X: x, Y: y} }

func drag(e *Editor, from, to geom.Point) {
	e.PointerDown(from, ButtonPrimary, Modifiers{})
	e.PointerMove(to, Modifiers{})
	e.PointerUp()
}

func TestDrawFrame(t *testing.T) {
	e, doc := newTestEditor(models.Scene{})
	require.NoError(t, e.SetTool(ToolDrawFrame))

	drag(e, pt(80, 80), pt(402, 322))

	require.Len(t, doc.scene.Frames, 1)
	f := doc.scene.Frames[0]
	assert.Equal(t, geom.Rect{X: 80, Y: 80, Width: 320, Height: 240}, f.Rect())
	assert.Equal(t, models.OpeningFixed, f.Opening)

	require.Len(t, doc.scene.Dimensions, 2)
	assert.Equal(t, "320mm", doc.scene.Dimensions[0].Text)
	assert.Equal(t, "240mm", doc.scene.Dimensions[1].Text)
	for _, d := range doc.scene.Dimensions {
		assert.Equal(t, f.ID, d.ParentID)
	}

	assert.Equal(t, ToolSelect, e.Tool())
	assert.Equal(t, ModeIdle, e.Mode())
	assert.True(t, e.CanUndo())
}

func TestDrawDegenerateIsDiscarded(t *testing.T) {
	tests := []struct {
		name string
		tool Tool
	}{
		{name: "frame", tool: ToolDrawFrame},
		{name: "mullion", tool: ToolDrawMullion},
		{name: "dimension", tool: ToolDimension},
		{name: "text", tool: ToolDrawText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, doc := newTestEditor(models.Scene{})
			require.NoError(t, e.SetTool(tt.tool))

			drag(e, pt(80, 80), pt(82, 82))

			assert.True(t, doc.scene.IsEmpty())
			assert.False(t, e.CanUndo())
			assert.Nil(t, e.EditingText())
		})
	}
}

func TestDrawMullionParentsToFrame(t *testing.T) {
	s, f := frameScene()
	e, doc := newTestEditor(s)
	require.NoError(t, e.SetTool(ToolDrawMullion))

	e.PointerDown(pt(100, 10), ButtonPrimary, Modifiers{})
	e.PointerMove(pt(104, 90), Modifiers{Shift: true})
	e.PointerUp()

	require.Len(t, doc.scene.Mullions, 1)
	m := doc.scene.Mullions[0]
	assert.Equal(t, f.ID, m.ParentID)
	assert.Equal(t, 100.0, m.X2, "shift constrains to the dominant axis")
	assert.Equal(t, 90.0, m.Y2)
}

func TestUndoRedoRoundTrip(t *testing.T) {
	e, doc := newTestEditor(models.Scene{})
	var states []models.Scene
	snapshot := func() { states = append(states, scene.Clone(doc.scene)) }

	require.NoError(t, e.SetTool(ToolDrawFrame))
	drag(e, pt(80, 80), pt(400, 320))
	snapshot()

	require.NoError(t, e.SetTool(ToolDrawMullion))
	drag(e, pt(600, 100), pt(600, 400))
	snapshot()

	require.NoError(t, e.SetTool(ToolDrawText))
	drag(e, pt(40, 480), pt(200, 560))
	snapshot()
	require.NotNil(t, e.EditingText())
	e.SetEditingText("Living room")
	e.CommitText()
	snapshot()

	require.NoError(t, e.AddShape(scene.ShapeArch))
	snapshot()

	final := scene.Clone(doc.scene)
	require.Equal(t, len(states)+1, e.history.Len())

	for i := len(states) - 2; i >= 0; i-- {
		require.True(t, e.Undo())
		assert.True(t, scene.Equal(states[i], doc.scene), "undo to edit %d", i)
	}
	require.True(t, e.Undo())
	assert.True(t, doc.scene.IsEmpty())
	assert.True(t, e.Selected().IsZero())
	assert.False(t, e.Undo())

	for i := range states {
		require.True(t, e.Redo())
		assert.True(t, scene.Equal(states[i], doc.scene), "redo to edit %d", i)
	}
	assert.False(t, e.Redo())
	assert.True(t, scene.Equal(final, doc.scene))
}

func TestEditAfterUndoDropsRedo(t *testing.T) {
	e, doc := newTestEditor(models.Scene{})
	require.NoError(t, e.SetTool(ToolDrawFrame))
	drag(e, pt(80, 80), pt(400, 320))
	require.NoError(t, e.SetTool(ToolDrawMullion))
	drag(e, pt(600, 100), pt(600, 400))

	require.True(t, e.Undo())
	require.NoError(t, e.AddShape(scene.ShapeTriangle))

	assert.False(t, e.CanRedo())
	assert.Len(t, doc.scene.Frames, 1)
	assert.Len(t, doc.scene.Mullions, 3)
}

func TestHitTestPriority(t *testing.T) {
	s, f := frameScene()
	m := scene.NewMullion(geom.Line{X1: 100, Y1: 0, X2: 100, Y2: 100}, "")
	s.Mullions = append(s.Mullions, m)
	s.TextBoxes = append(s.TextBoxes, models.TextBox{ID: "text_1", Type: models.KindTextBox, X: 20, Y: 20, Width: 40, Height: 40})
	e, _ := newTestEditor(s)

	tests := []struct {
		name string
		at   geom.Point
		want models.ElementRef
	}{
		{name: "dimension above frame", at: pt(50, -20), want: models.ElementRef{Kind: models.KindDimension, ID: s.Dimensions[0].ID}},
		{name: "mullion over frame", at: pt(105, 50), want: models.ElementRef{Kind: models.KindMullion, ID: m.ID}},
		{name: "frame over text box", at: pt(30, 30), want: models.ElementRef{Kind: models.KindFrame, ID: f.ID}},
		{name: "nothing", at: pt(500, 500)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := e.HitTest(&s, tt.at)
			if tt.want.IsZero() {
				assert.Nil(t, el)
				return
			}
			require.NotNil(t, el)
			assert.Equal(t, tt.want, refOf(el))
		})
	}
}

func TestMoveFrameCarriesChildren(t *testing.T) {
	s, f := frameScene()
	m := scene.NewMullion(geom.Line{X1: 150, Y1: 0, X2: 150, Y2: 100}, "")
	m.ParentID = f.ID
	s.Mullions = append(s.Mullions, m)
	e, doc := newTestEditor(s)

	drag(e, pt(50, 50), pt(93, 50))

	got := doc.scene.Frame(f.ID)
	require.NotNil(t, got)
	assert.Equal(t, 40.0, got.X, "moved origin snaps to the grid")
	assert.Equal(t, 0.0, got.Y)
	assert.Equal(t, 190.0, doc.scene.Mullions[0].X1)
	assert.Equal(t, 40.0, doc.scene.Dimensions[0].X1)
	assert.Equal(t, 20.0, doc.scene.Dimensions[1].X1)
	assert.Equal(t, models.ElementRef{Kind: models.KindFrame, ID: f.ID}, e.Selected())
	assert.True(t, e.CanUndo())
}

func TestResizeFrameRelabelsDimensions(t *testing.T) {
	s, f := frameScene()
	e, doc := newTestEditor(s)
	e.Select(models.ElementRef{Kind: models.KindFrame, ID: f.ID})

	e.PointerDown(pt(200, 100), ButtonPrimary, Modifiers{})
	assert.Equal(t, ModeResizing, e.Mode())
	e.PointerMove(pt(260, 140), Modifiers{})
	e.PointerUp()

	got := doc.scene.Frame(f.ID)
	assert.Equal(t, geom.Rect{Width: 260, Height: 140}, got.Rect())
	assert.Equal(t, "260mm", doc.scene.Dimensions[0].Text)
	assert.Equal(t, "140mm", doc.scene.Dimensions[1].Text)
	assert.Equal(t, 260.0, doc.scene.Dimensions[0].X2)
	assert.Equal(t, -20.0, doc.scene.Dimensions[0].Y1)
}

func TestResizeRespectsFloor(t *testing.T) {
	r := resizeRect(geom.Rect{Width: 200, Height: 100}, 0, HandleTopLeft, pt(500, 500))
	assert.Equal(t, geom.Rect{X: 190, Y: 90, Width: minResizeSize, Height: minResizeSize}, r)
}

func TestResizeRotatedKeepsOppositeEdge(t *testing.T) {
	start := geom.Rect{Width: 200, Height: 100}
	// Rotated 90 degrees the right grip points down in world space.
	r := resizeRect(start, 90, HandleRight, pt(0, 50))
	assert.InDelta(t, 250, r.Width, 1e-9)
	assert.InDelta(t, 100, r.Height, 1e-9)

	leftBefore := geom.RotateAround(pt(0, 50), start.Center(), 90)
	leftAfter := geom.RotateAround(pt(r.X, r.Y+r.Height/2), r.Center(), 90)
	assert.InDelta(t, leftBefore.X, leftAfter.X, 1e-9)
	assert.InDelta(t, leftBefore.Y, leftAfter.Y, 1e-9)
}

func TestRotateFrameRotatesDimensions(t *testing.T) {
	s, f := frameScene()
	e, doc := newTestEditor(s)
	e.Select(models.ElementRef{Kind: models.KindFrame, ID: f.ID})

	e.PointerDown(pt(100, 130), ButtonPrimary, Modifiers{})
	require.Equal(t, ModeRotating, e.Mode())
	e.PointerMove(pt(300, 52), Modifiers{Shift: true})
	require.NotNil(t, e.RotationIndicator())
	assert.Equal(t, 90.0, e.RotationIndicator().Angle)
	e.PointerUp()

	assert.Nil(t, e.RotationIndicator())
	assert.Equal(t, 90.0, doc.scene.Frame(f.ID).Rotation)
	for _, d := range doc.scene.Dimensions {
		assert.Equal(t, 90.0, d.Rotation)
		assert.Equal(t, pt(100, 50), d.RotationCenter())
	}
}

// assertFrameDimensions checks that both auto dimensions of frame id
// carry its rounded size, pivot on its centre and keep their offset.
func assertFrameDimensions(t *testing.T, s models.Scene, id string) {
	t.Helper()
	f := s.Frame(id)
	require.NotNil(t, f)
	require.Len(t, s.Dimensions, 2)
	width, height := s.Dimensions[0], s.Dimensions[1]
	center := f.Center()

	assert.Equal(t, scene.LengthLabel(f.Width), width.Text)
	assert.Equal(t, scene.LengthLabel(f.Height), height.Text)
	for _, d := range []models.Dimension{width, height} {
		assert.Equal(t, id, d.ParentID)
		assert.Equal(t, f.Rotation, d.Rotation)
		assert.InDelta(t, center.X, d.RotationCenter().X, 1e-9)
		assert.InDelta(t, center.Y, d.RotationCenter().Y, 1e-9)
	}

	assert.InDelta(t, f.Y-scene.DimensionOffset, width.Y1, 1e-9)
	assert.InDelta(t, f.X, width.X1, 1e-9)
	assert.InDelta(t, f.Width, width.Line().Length(), 1e-9)
	assert.InDelta(t, f.X-scene.DimensionOffset, height.X1, 1e-9)
	assert.InDelta(t, f.Y, height.Y1, 1e-9)
	assert.InDelta(t, f.Height, height.Line().Length(), 1e-9)
}

func TestResizeRotateResizeKeepsDimensions(t *testing.T) {
	s, f := frameScene()
	e, doc := newTestEditor(s)
	e.Select(models.ElementRef{Kind: models.KindFrame, ID: f.ID})

	// Bottom-right grip out to 260x140.
	e.PointerDown(pt(200, 100), ButtonPrimary, Modifiers{})
	require.Equal(t, ModeResizing, e.Mode())
	e.PointerMove(pt(260, 140), Modifiers{})
	e.PointerUp()
	assert.Equal(t, geom.Rect{Width: 260, Height: 140}, doc.scene.Frame(f.ID).Rect())
	assert.Equal(t, "260mm", doc.scene.Dimensions[0].Text)
	assert.Equal(t, "140mm", doc.scene.Dimensions[1].Text)
	assertFrameDimensions(t, doc.scene, f.ID)

	// Rotate grip sits 30 below the bottom edge; drag it level with the
	// centre to reach 90 degrees.
	e.PointerDown(pt(130, 170), ButtonPrimary, Modifiers{})
	require.Equal(t, ModeRotating, e.Mode())
	e.PointerMove(pt(330, 72), Modifiers{Shift: true})
	e.PointerUp()
	assert.Equal(t, 90.0, doc.scene.Frame(f.ID).Rotation)
	assert.Equal(t, "260mm", doc.scene.Dimensions[0].Text)
	assert.Equal(t, "140mm", doc.scene.Dimensions[1].Text)
	assertFrameDimensions(t, doc.scene, f.ID)

	// Rotated 90 degrees the right grip is below the centre.
	e.PointerDown(pt(130, 200), ButtonPrimary, Modifiers{})
	require.Equal(t, ModeResizing, e.Mode())
	e.PointerMove(pt(130, 237), Modifiers{})
	e.PointerUp()

	got := doc.scene.Frame(f.ID)
	assert.InDelta(t, 297, got.Width, 1e-9)
	assert.InDelta(t, 140, got.Height, 1e-9)
	assert.InDelta(t, 130, got.Center().X, 1e-9)
	assert.InDelta(t, 88.5, got.Center().Y, 1e-9)
	assert.Equal(t, "297mm", doc.scene.Dimensions[0].Text)
	assert.Equal(t, "140mm", doc.scene.Dimensions[1].Text)
	assertFrameDimensions(t, doc.scene, f.ID)
}

func TestNegativeZoomDrawsAtIdentityScale(t *testing.T) {
	e, doc := newTestEditor(models.Scene{})
	doc.view = models.CanvasView{Zoom: -2}
	require.NoError(t, e.SetTool(ToolDrawFrame))

	drag(e, pt(80, 80), pt(402, 322))

	require.Len(t, doc.scene.Frames, 1)
	assert.Equal(t, geom.Rect{X: 80, Y: 80, Width: 320, Height: 240}, doc.scene.Frames[0].Rect())
}

func TestPanWithMiddleButton(t *testing.T) {
	e, doc := newTestEditor(models.Scene{})

	e.PointerDown(pt(10, 10), ButtonMiddle, Modifiers{})
	assert.Equal(t, ModePanning, e.Mode())
	e.PointerMove(pt(40, 30), Modifiers{})
	e.PointerUp()

	assert.Equal(t, pt(30, 20), doc.view.PanOffset)
	assert.False(t, e.CanUndo())
}

func TestPaint(t *testing.T) {
	s, f := frameScene()
	e, doc := newTestEditor(s)
	require.NoError(t, e.SetTool(ToolPaint))

	e.SetPaint("#FF0000", PaintGlass)
	e.PointerDown(pt(100, 50), ButtonPrimary, Modifiers{})
	e.PointerUp()
	assert.Equal(t, "#FF0000", doc.scene.Frame(f.ID).GlassColor)

	e.SetPaint("#00FF00", PaintFrame)
	e.PointerDown(pt(100, 50), ButtonPrimary, Modifiers{})
	e.PointerUp()
	assert.Equal(t, scene.DefaultStrokeColor, doc.scene.Frame(f.ID).Color, "glass area is not the frame border")

	e.PointerDown(pt(5, 50), ButtonPrimary, Modifiers{})
	e.PointerUp()
	assert.Equal(t, "#00FF00", doc.scene.Frame(f.ID).Color)
}

func TestDeleteCascades(t *testing.T) {
	s, f := frameScene()
	m := scene.NewMullion(geom.Line{X1: 150, Y1: 0, X2: 150, Y2: 100}, "")
	m.ParentID = f.ID
	s.Mullions = append(s.Mullions, m)
	e, doc := newTestEditor(s)

	assert.ErrorIs(t, e.DeleteSelected(), ErrNoSelection)

	e.Select(models.ElementRef{Kind: models.KindFrame, ID: f.ID})
	e.KeyDown("Delete", Modifiers{})

	assert.True(t, doc.scene.IsEmpty())
	assert.True(t, e.Selected().IsZero())

	e.KeyDown("z", Modifiers{Ctrl: true})
	assert.Len(t, doc.scene.Frames, 1)
	assert.Len(t, doc.scene.Mullions, 1)
	assert.Len(t, doc.scene.Dimensions, 2)
}

func TestKeyboardShortcuts(t *testing.T) {
	e, _ := newTestEditor(models.Scene{})

	for key, want := range toolShortcuts {
		e.KeyDown(key, Modifiers{})
		assert.Equal(t, want, e.Tool(), key)
	}

	e.KeyDown("V", Modifiers{})
	assert.Equal(t, ToolSelect, e.Tool())
}

func TestMergeIsDisabled(t *testing.T) {
	e, _ := newTestEditor(models.Scene{})

	assert.ErrorIs(t, e.SetTool(ToolMerge), ErrToolDisabled)
	assert.ErrorIs(t, e.SetTool("lasso"), ErrUnknownTool)
	assert.ErrorIs(t, e.Command("merge", ""), ErrToolDisabled)
	assert.Equal(t, ToolSelect, e.Tool())
}

func TestZoom(t *testing.T) {
	e, doc := newTestEditor(models.Scene{})
	before := e.ViewportCenterWorld()

	e.ZoomIn()
	assert.InDelta(t, 1.2, doc.view.Zoom, 1e-9)
	assert.InDelta(t, -120, doc.view.PanOffset.X, 1e-9)
	assert.InDelta(t, -80, doc.view.PanOffset.Y, 1e-9)
	after := e.ViewportCenterWorld()
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)

	e.ZoomOut()
	assert.InDelta(t, 1, doc.view.Zoom, 1e-9)

	cursor := pt(300, 200)
	world := doc.view.ToWorld(cursor)
	e.Wheel(cursor, -100)
	assert.InDelta(t, 1.1, doc.view.Zoom, 1e-9)
	again := doc.view.ToWorld(cursor)
	assert.InDelta(t, world.X, again.X, 1e-9)
	assert.InDelta(t, world.Y, again.Y, 1e-9)
}

func TestZoomClamp(t *testing.T) {
	e, doc := newTestEditor(models.Scene{})
	doc.view = models.CanvasView{PanOffset: pt(5, 5), Zoom: maxZoom}

	e.Wheel(pt(100, 100), -1)
	assert.Equal(t, models.CanvasView{PanOffset: pt(5, 5), Zoom: maxZoom}, doc.view)

	doc.view.Zoom = 0.11
	e.ZoomOut()
	assert.Equal(t, minZoom, doc.view.Zoom)
}

func TestThickness(t *testing.T) {
	s, f := frameScene()
	e, doc := newTestEditor(s)
	ref := models.ElementRef{Kind: models.KindFrame, ID: f.ID}

	assert.ErrorIs(t, e.IncreaseThickness(), ErrNoSelection)

	e.Select(ref)
	require.NoError(t, e.IncreaseThickness())
	assert.Equal(t, 45.0, doc.scene.Frame(f.ID).Thickness)

	doc.scene.Frame(f.ID).Thickness = maxThickness
	require.NoError(t, e.IncreaseThickness())
	assert.Equal(t, float64(maxThickness), doc.scene.Frame(f.ID).Thickness)

	doc.scene.Frame(f.ID).Thickness = minThickness
	require.NoError(t, e.DecreaseThickness())
	assert.Equal(t, float64(minThickness), doc.scene.Frame(f.ID).Thickness)
}

func TestFrameProperties(t *testing.T) {
	s, f := frameScene()
	e, doc := newTestEditor(s)
	e.Select(models.ElementRef{Kind: models.KindFrame, ID: f.ID})

	require.NoError(t, e.SetMaterial(models.MaterialWood))
	got := doc.scene.Frame(f.ID)
	assert.Equal(t, models.MaterialWood, got.Material)
	assert.Equal(t, "linear-gradient(to right, #C6A686, #8B6B4E)", got.Color)

	doc.scene.Frame(f.ID).OpenState = models.FullyOpen
	require.NoError(t, e.SetOpening(models.OpeningCasementLeft))
	got = doc.scene.Frame(f.ID)
	assert.Equal(t, models.OpeningCasementLeft, got.Opening)
	assert.Equal(t, models.Closed, got.OpenState)

	require.NoError(t, e.SetInfill(models.InfillLouver))
	require.NoError(t, e.SetGlass(models.GlassToughened))
	got = doc.scene.Frame(f.ID)
	assert.Equal(t, models.InfillLouver, got.Infill)
	assert.Equal(t, models.GlassToughened, got.Glass)

	e.Select(models.ElementRef{Kind: models.KindDimension, ID: s.Dimensions[0].ID})
	assert.ErrorIs(t, e.SetInfill(models.InfillPanel), ErrNoSelection)
}

func TestTextEditing(t *testing.T) {
	e, doc := newTestEditor(models.Scene{})
	require.NoError(t, e.SetTool(ToolDrawText))

	drag(e, pt(80, 80), pt(200, 160))

	require.Len(t, doc.scene.TextBoxes, 1)
	require.NotNil(t, e.EditingText())
	assert.Equal(t, ToolSelect, e.Tool())

	// Shortcuts are ignored while typing.
	e.KeyDown("f", Modifiers{})
	assert.Equal(t, ToolSelect, e.Tool())

	e.SetEditingText("Kitchen")
	e.CommitText()
	assert.Nil(t, e.EditingText())
	assert.Equal(t, "Kitchen", doc.scene.TextBoxes[0].Text)

	require.True(t, e.BeginTextEdit(doc.scene.TextBoxes[0].ID))
	e.SetEditingText("Discarded")
	e.KeyDown("Escape", Modifiers{})
	assert.Nil(t, e.EditingText())
	assert.Equal(t, "Kitchen", doc.scene.TextBoxes[0].Text)
}

func TestAddShapeAtViewportCenter(t *testing.T) {
	e, doc := newTestEditor(models.Scene{})

	require.NoError(t, e.AddShape(scene.ShapeRectangle))
	require.Len(t, doc.scene.Frames, 1)
	assert.Equal(t, pt(600, 400), doc.scene.Frames[0].Center())

	assert.Error(t, e.AddShape("blob"))
	assert.Len(t, doc.scene.Frames, 1)
}

func TestApplyEvents(t *testing.T) {
	e, doc := newTestEditor(models.Scene{})
	events := []models.EditorEvent{
		{Type: models.EventTool, Tool: string(ToolDrawFrame)},
		{Type: models.EventPointerDown, X: 40, Y: 40},
		{Type: models.EventPointerMove, X: 160, Y: 120},
		{Type: models.EventPointerUp},
		{Type: models.EventCommand, Command: "zoom-in"},
	}

	for _, ev := range events {
		require.NoError(t, e.Apply(ev))
	}

	require.Len(t, doc.scene.Frames, 1)
	assert.InDelta(t, 1.2, doc.view.Zoom, 1e-9)
	assert.Error(t, e.Apply(models.EditorEvent{Type: "gesture"}))
	assert.Error(t, e.Apply(models.EditorEvent{Type: models.EventCommand, Command: "explode"}))
}

func TestHistory(t *testing.T) {
	h := NewHistory(models.Scene{})
	one := models.Scene{TextBoxes: []models.TextBox{{ID: "a"}}}
	two := models.Scene{TextBoxes: []models.TextBox{{ID: "b"}}}

	assert.True(t, h.Record(one))
	assert.False(t, h.Record(one), "identical state is not recorded twice")
	assert.True(t, h.Record(two))
	assert.Equal(t, 3, h.Len())

	s, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, "a", s.TextBoxes[0].ID)

	assert.True(t, h.Record(two))
	assert.Equal(t, 3, h.Len(), "recording after undo drops the redo tail")
	assert.False(t, h.CanRedo())
}
