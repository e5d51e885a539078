package editor

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/YashGhavghave/Glass-Billing-Software/internal/geom"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/models"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/scene"
)

// materialColors are the preset colours applied when a material changes.
var materialColors = map[models.MaterialType]string{
	models.MaterialWood:     "linear-gradient(to right, #C6A686, #8B6B4E)",
	models.MaterialAluminum: "#C0C0C0",
	models.MaterialUPVC:     "#EBEBEB",
}

// MaterialColor returns the preset colour for a material.
func MaterialColor(m models.MaterialType) string {
	if c, ok := materialColors[m]; ok {
		return c
	}
	return materialColors[models.MaterialUPVC]
}

// Undo restores the previous history state and clears the selection.
func (e *Editor) Undo() bool {
	s, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.doc.SetScene(s)
	e.selected = models.ElementRef{}
	return true
}

// Redo restores the next history state and clears the selection.
func (e *Editor) Redo() bool {
	s, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.doc.SetScene(s)
	e.selected = models.ElementRef{}
	return true
}

// DeleteSelected removes the selected element with its dependents.
func (e *Editor) DeleteSelected() error {
	if e.selected.IsZero() {
		return ErrNoSelection
	}
	ref := e.selected
	e.updateAndRecord(func(s *models.Scene) {
		scene.Delete(s, ref)
	})
	e.selected = models.ElementRef{}
	e.logger.Debug("Deleted element", zap.String("kind", string(ref.Kind)), zap.String("id", ref.ID))
	return nil
}

// Clear removes every element.
func (e *Editor) Clear() {
	e.updateAndRecord(func(s *models.Scene) {
		*s = models.Scene{}
	})
	e.selected = models.ElementRef{}
	e.editingText = nil
}

// IncreaseThickness thickens the selected frame or mullion by one step.
func (e *Editor) IncreaseThickness() error {
	return e.adjustThickness(thicknessStep)
}

// DecreaseThickness thins the selected frame or mullion by one step.
func (e *Editor) DecreaseThickness() error {
	return e.adjustThickness(-thicknessStep)
}

func (e *Editor) adjustThickness(step float64) error {
	if e.selected.IsZero() {
		return ErrNoSelection
	}
	e.updateAndRecord(func(s *models.Scene) {
		switch el := s.Find(e.selected).(type) {
		case *models.Frame:
			el.Thickness = geom.Clamp(el.WallThickness()+step, minThickness, maxThickness)
		case *models.Mullion:
			el.Thickness = geom.Clamp(el.WallThickness()+step, minThickness, maxThickness)
		}
	})
	return nil
}

// SetMaterial changes the material of the selected frame or mullion and
// applies the material's preset colour.
func (e *Editor) SetMaterial(m models.MaterialType) error {
	if e.selected.IsZero() {
		return ErrNoSelection
	}
	color := MaterialColor(m)
	e.updateAndRecord(func(s *models.Scene) {
		switch el := s.Find(e.selected).(type) {
		case *models.Frame:
			el.Material, el.Color = m, color
		case *models.Mullion:
			el.Material, el.Color = m, color
		}
	})
	return nil
}

// SetInfill changes the infill of the selected frame.
func (e *Editor) SetInfill(infill models.InfillType) error {
	return e.updateSelectedFrame(func(f *models.Frame) { f.Infill = infill })
}

// SetGlass changes the glass type of the selected frame.
func (e *Editor) SetGlass(glass models.GlassType) error {
	return e.updateSelectedFrame(func(f *models.Frame) { f.Glass = glass })
}

// SetOpening changes how the selected frame opens and closes it.
func (e *Editor) SetOpening(opening models.OpeningType) error {
	return e.updateSelectedFrame(func(f *models.Frame) {
		f.Opening = opening
		f.OpenState = models.Closed
	})
}

func (e *Editor) updateSelectedFrame(fn func(f *models.Frame)) error {
	if e.selected.Kind != models.KindFrame {
		return ErrNoSelection
	}
	e.updateAndRecord(func(s *models.Scene) {
		if f := s.Frame(e.selected.ID); f != nil {
			fn(f)
		}
	})
	return nil
}

// AddShape drops a preset shape at the centre of the viewport.
func (e *Editor) AddShape(shape scene.Shape) error {
	var err error
	e.updateAndRecord(func(s *models.Scene) {
		_, err = scene.AddShape(s, shape, e.ViewportCenterWorld())
	})
	return err
}

// BeginTextEdit starts inline editing of a text box. Only the select tool
// can edit text.
func (e *Editor) BeginTextEdit(id string) bool {
	if e.tool != ToolSelect {
		return false
	}
	s := e.doc.Scene()
	tb, ok := s.Find(models.ElementRef{Kind: models.KindTextBox, ID: id}).(*models.TextBox)
	if !ok {
		return false
	}
	edit := *tb
	e.editingText = &edit
	e.selected = refOf(tb)
	return true
}

// SetEditingText replaces the text of the box being edited.
func (e *Editor) SetEditingText(text string) {
	if e.editingText != nil {
		e.editingText.Text = text
	}
}

// CommitText writes the edited text back to the scene as one edit.
func (e *Editor) CommitText() {
	if e.editingText == nil {
		return
	}
	edit := *e.editingText
	e.editingText = nil
	e.updateAndRecord(func(s *models.Scene) {
		if tb, ok := s.Find(refOf(&edit)).(*models.TextBox); ok {
			*tb = edit
		}
	})
}

// CancelText abandons inline editing.
func (e *Editor) CancelText() {
	e.editingText = nil
}

var toolShortcuts = map[string]Tool{
	"v": ToolSelect,
	"f": ToolDrawFrame,
	"m": ToolDrawMullion,
	"d": ToolDimension,
	"p": ToolPaint,
	"h": ToolPan,
	"t": ToolDrawText,
}

// KeyDown handles keyboard shortcuts. While text is being edited only
// Escape is handled.
func (e *Editor) KeyDown(key string, mods Modifiers) {
	if e.editingText != nil {
		if key == "Escape" {
			e.CancelText()
		}
		return
	}

	if mods.Ctrl || mods.Meta {
		switch strings.ToLower(key) {
		case "z":
			e.Undo()
		case "y":
			e.Redo()
		}
		return
	}

	if key == "Delete" || key == "Backspace" {
		_ = e.DeleteSelected()
		return
	}

	if t, ok := toolShortcuts[strings.ToLower(key)]; ok {
		_ = e.SetTool(t)
	}
}

// Command runs a toolbar command by name.
func (e *Editor) Command(name, value string) error {
	switch name {
	case "undo":
		e.Undo()
	case "redo":
		e.Redo()
	case "zoom-in":
		e.ZoomIn()
	case "zoom-out":
		e.ZoomOut()
	case "clear":
		e.Clear()
	case "delete":
		return e.DeleteSelected()
	case "thickness-up":
		return e.IncreaseThickness()
	case "thickness-down":
		return e.DecreaseThickness()
	case "material":
		return e.SetMaterial(models.MaterialType(value))
	case "infill":
		return e.SetInfill(models.InfillType(value))
	case "glass":
		return e.SetGlass(models.GlassType(value))
	case "opening":
		return e.SetOpening(models.OpeningType(value))
	case "add-shape":
		return e.AddShape(scene.Shape(value))
	case "paint-color":
		e.paintColor = value
	case "paint-target":
		e.paintTarget = PaintTarget(value)
	case "edit-text":
		if !e.BeginTextEdit(value) {
			return fmt.Errorf("cannot edit text box %q", value)
		}
	case "commit-text":
		e.CommitText()
	case "cancel-text":
		e.CancelText()
	case "merge":
		return ErrToolDisabled
	default:
		return fmt.Errorf("unknown command %q", name)
	}
	return nil
}

// Apply replays one input event.
func (e *Editor) Apply(ev models.EditorEvent) error {
	p := geom.Point{X: ev.X, Y: ev.Y}
	mods := Modifiers{Shift: ev.Shift, Ctrl: ev.Ctrl, Meta: ev.Meta}

	switch ev.Type {
	case models.EventPointerDown:
		e.PointerDown(p, Button(ev.Button), mods)
	case models.EventPointerMove:
		e.PointerMove(p, mods)
	case models.EventPointerUp:
		e.PointerUp()
	case models.EventPointerLeave:
		e.PointerLeave()
	case models.EventWheel:
		e.Wheel(p, ev.DeltaY)
	case models.EventKey:
		e.KeyDown(ev.Key, mods)
	case models.EventTool:
		return e.SetTool(Tool(ev.Tool))
	case models.EventCommand:
		return e.Command(ev.Command, ev.Value)
	case models.EventText:
		e.SetEditingText(ev.Value)
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
	return nil
}
