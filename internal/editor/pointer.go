package editor

import (
	"math"

	"go.uber.org/zap"

	"github.com/YashGhavghave/Glass-Billing-Software/internal/geom"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/models"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/scene"
)

// dragState captures everything a move, resize or rotate gesture needs
// from the moment it started, so each pointer move is computed from the
// original geometry rather than accumulated.
type dragState struct {
	target    models.ElementRef
	handle    Handle
	start     geom.Point
	startRect geom.Rect
	startLine geom.Line
	rotation  float64
	center    geom.Point
	children  []childStart
}

type childStart struct {
	ref  models.ElementRef
	line geom.Line
}

// PointerDown starts a gesture at a canvas point. It is ignored while
// another gesture is in progress.
func (e *Editor) PointerDown(canvas geom.Point, button Button, mods Modifiers) {
	if e.mode != ModeIdle {
		return
	}
	if button == ButtonMiddle {
		e.mode = ModePanning
		e.panStart = canvas
		return
	}
	if button != ButtonPrimary || e.editingText != nil {
		return
	}

	e.inOperation = true
	world := e.doc.View().ToWorld(canvas)

	switch {
	case e.tool == ToolPan:
		e.mode = ModePanning
		e.panStart = canvas
	case e.tool == ToolPaint:
		e.paintAt(world)
	case e.tool == ToolSelect:
		e.beginSelect(world)
	case e.tool.draws():
		e.beginDraw(world)
	}
}

// PointerMove advances the gesture in progress.
func (e *Editor) PointerMove(canvas geom.Point, mods Modifiers) {
	if e.mode == ModeIdle || e.editingText != nil {
		return
	}
	if e.mode == ModeSelecting {
		e.mode = ModeDragging
	}

	if e.mode == ModePanning {
		v := e.doc.View()
		v.PanOffset = v.PanOffset.Add(canvas.Sub(e.panStart))
		e.doc.SetView(v)
		e.panStart = canvas
		return
	}

	world := e.doc.View().ToWorld(canvas)
	switch e.mode {
	case ModeDrawing:
		e.drawTo(world, mods)
	case ModeDragging:
		e.moveTo(world)
	case ModeResizing:
		e.resizeTo(world, mods)
	case ModeRotating:
		e.rotateTo(world, canvas, mods)
	}
}

// PointerUp ends the gesture in progress and records the result.
func (e *Editor) PointerUp() {
	e.indicator = nil

	if e.mode == ModeDrawing && !e.drawing.IsZero() {
		e.finishDrawing()
	}
	if e.inOperation {
		e.inOperation = false
		e.record()
	}

	e.mode = ModeIdle
	e.drawing = models.ElementRef{}
	e.drag = nil
}

// PointerLeave releases the gesture when the pointer leaves the canvas.
func (e *Editor) PointerLeave() {
	if e.mode != ModeIdle {
		e.PointerUp()
	}
}

func (e *Editor) beginSelect(world geom.Point) {
	s := e.doc.Scene()

	if el, h := e.selectedHandleAt(&s, world); h != HandleNone {
		d := captureStart(el, world)
		d.handle = h
		if h == HandleRotate {
			e.mode = ModeRotating
		} else {
			e.mode = ModeResizing
			if el.Kind() == models.KindFrame {
				d.children = parentedDimensions(&s, el.ElementID())
			}
		}
		e.drag = d
		return
	}

	el := e.HitTest(&s, world)
	if el == nil {
		e.selected = models.ElementRef{}
		e.mode = ModeIdle
		return
	}

	e.selected = refOf(el)
	e.mode = ModeSelecting
	d := captureStart(el, world)

	switch v := el.(type) {
	case *models.Frame:
		d.children = parentedDimensions(&s, v.ID)
		for _, m := range s.Mullions {
			if m.ParentID == v.ID {
				d.children = append(d.children, childStart{ref: models.ElementRef{Kind: models.KindMullion, ID: m.ID}, line: m.Line()})
			}
		}
	case *models.Mullion:
		d.children = parentedDimensions(&s, v.ID)
		if v.GroupID != "" {
			for _, m := range s.Mullions {
				if m.GroupID == v.GroupID && m.ID != v.ID {
					d.children = append(d.children, childStart{ref: models.ElementRef{Kind: models.KindMullion, ID: m.ID}, line: m.Line()})
				}
			}
		}
	}
	e.drag = d
}

func captureStart(el models.Element, world geom.Point) *dragState {
	d := &dragState{target: refOf(el), start: world}
	switch v := el.(type) {
	case *models.Frame:
		d.startRect = v.Rect()
		d.rotation = v.Rotation
		d.center = v.Center()
	case *models.TextBox:
		d.startRect = v.Rect()
		d.rotation = v.Rotation
		d.center = d.startRect.Center()
	case *models.Mullion:
		d.startLine = v.Line()
		d.center = d.startLine.Midpoint()
	case *models.Dimension:
		d.startLine = v.Line()
		d.center = d.startLine.Midpoint()
	}
	return d
}

func parentedDimensions(s *models.Scene, parentID string) []childStart {
	var out []childStart
	for _, dim := range s.Dimensions {
		if dim.ParentID == parentID {
			out = append(out, childStart{ref: models.ElementRef{Kind: models.KindDimension, ID: dim.ID}, line: dim.Line()})
		}
	}
	return out
}

func (e *Editor) beginDraw(world geom.Point) {
	e.mode = ModeDrawing
	e.selected = models.ElementRef{}
	e.drag = &dragState{start: world}

	e.update(func(s *models.Scene) {
		switch e.tool {
		case ToolDrawFrame:
			f := scene.NewFrame(geom.Rect{X: world.X, Y: world.Y})
			s.Frames = append(s.Frames, f)
			e.drawing = models.ElementRef{Kind: models.KindFrame, ID: f.ID}
		case ToolDrawMullion:
			m := scene.NewMullion(geom.Line{X1: world.X, Y1: world.Y, X2: world.X, Y2: world.Y}, "")
			s.Mullions = append(s.Mullions, m)
			e.drawing = models.ElementRef{Kind: models.KindMullion, ID: m.ID}
		case ToolDimension:
			d := models.Dimension{
				ID:   scene.NewID("dim"),
				Type: models.KindDimension,
				X1:   world.X,
				Y1:   world.Y,
				X2:   world.X,
				Y2:   world.Y,
				Text: scene.LengthLabel(0),
			}
			s.Dimensions = append(s.Dimensions, d)
			e.drawing = models.ElementRef{Kind: models.KindDimension, ID: d.ID}
		case ToolDrawText:
			t := models.TextBox{
				ID:       scene.NewID("text"),
				Type:     models.KindTextBox,
				X:        world.X,
				Y:        world.Y,
				Text:     defaultText,
				FontSize: defaultFontSize,
				Color:    defaultTextColor,
			}
			s.TextBoxes = append(s.TextBoxes, t)
			e.drawing = models.ElementRef{Kind: models.KindTextBox, ID: t.ID}
		}
	})
}

func (e *Editor) snap(p geom.Point) geom.Point {
	return geom.SnapPoint(p, e.opts.GridSize, e.opts.SnapThreshold/e.zoom())
}

func (e *Editor) drawTo(world geom.Point, mods Modifiers) {
	anchor := e.drag.start
	e.update(func(s *models.Scene) {
		switch el := s.Find(e.drawing).(type) {
		case *models.Frame:
			el.SetRect(geom.RectFromCorners(anchor, e.snap(world)))
		case *models.TextBox:
			el.SetRect(geom.RectFromCorners(anchor, e.snap(world)))
		case *models.Mullion:
			end := world
			if mods.Shift {
				end = geom.ConstrainAxis(anchor, end)
			}
			el.X2, el.Y2 = end.X, end.Y
		case *models.Dimension:
			el.X2, el.Y2 = world.X, world.Y
			el.Text = scene.LengthLabel(el.Line().Length())
		}
	})
}

func (e *Editor) finishDrawing() {
	ref := e.drawing
	var edit *models.TextBox

	e.update(func(s *models.Scene) {
		switch el := s.Find(ref).(type) {
		case *models.Frame:
			if el.Width < minDrawSize || el.Height < minDrawSize {
				scene.Delete(s, ref)
				return
			}
			w, h := scene.FrameDimensions(*el)
			s.Dimensions = append(s.Dimensions, w, h)
		case *models.Mullion:
			if el.Line().Length() < minDrawSize {
				scene.Delete(s, ref)
				return
			}
			el.ParentID = scene.ContainingFrame(*s, el.Line().Midpoint())
		case *models.Dimension:
			if el.Line().Length() < minDrawSize {
				scene.Delete(s, ref)
			}
		case *models.TextBox:
			if el.Width < minTextBoxSize || el.Height < minTextBoxSize {
				scene.Delete(s, ref)
				return
			}
			tb := *el
			edit = &tb
		}
	})

	if edit != nil {
		e.selected = ref
		e.editingText = edit
		e.tool = ToolSelect
	}
	if ref.Kind != models.KindTextBox {
		e.tool = ToolSelect
	}
	e.logger.Debug("Finished drawing", zap.String("kind", string(ref.Kind)), zap.String("id", ref.ID))
}

func (e *Editor) moveTo(world geom.Point) {
	d := e.drag
	if d == nil {
		return
	}
	delta := world.Sub(d.start)

	e.update(func(s *models.Scene) {
		switch el := s.Find(d.target).(type) {
		case *models.Frame:
			origin := geom.Point{X: d.startRect.X, Y: d.startRect.Y}
			pos := e.snap(origin.Add(delta))
			el.X, el.Y = pos.X, pos.Y
			moveChildren(s, d.children, pos.Sub(origin), el.Center(), false)
		case *models.TextBox:
			pos := e.snap(geom.Point{X: d.startRect.X + delta.X, Y: d.startRect.Y + delta.Y})
			el.X, el.Y = pos.X, pos.Y
		case *models.Mullion:
			el.SetLine(d.startLine.Translate(delta))
			moveChildren(s, d.children, delta, geom.Point{}, true)
		case *models.Dimension:
			el.SetLine(d.startLine.Translate(delta))
		}
	})
}

// moveChildren translates captured children rigidly. Dimensions following
// a frame get their rotation pivot recentred on pivot; dimensions of a
// mullion get their label refreshed.
func moveChildren(s *models.Scene, children []childStart, delta, pivot geom.Point, relabel bool) {
	for _, c := range children {
		switch el := s.Find(c.ref).(type) {
		case *models.Mullion:
			el.SetLine(c.line.Translate(delta))
		case *models.Dimension:
			el.SetLine(c.line.Translate(delta))
			if relabel {
				el.Text = scene.LengthLabel(el.Line().Length())
			} else {
				el.RotationCenterX, el.RotationCenterY = pivot.X, pivot.Y
			}
		}
	}
}

func (e *Editor) resizeTo(world geom.Point, mods Modifiers) {
	d := e.drag
	if d == nil {
		return
	}
	delta := world.Sub(d.start)

	e.update(func(s *models.Scene) {
		switch el := s.Find(d.target).(type) {
		case *models.Frame:
			r := resizeRect(d.startRect, d.rotation, d.handle, delta)
			el.SetRect(r)
			relayoutDimensions(s, d.children, d.startRect, r)
		case *models.TextBox:
			el.SetRect(resizeRect(d.startRect, d.rotation, d.handle, delta))
		case *models.Mullion:
			el.SetLine(moveEndpoint(d.startLine, d.handle, delta, mods.Shift))
		case *models.Dimension:
			el.SetLine(moveEndpoint(d.startLine, d.handle, delta, false))
			el.Text = scene.LengthLabel(el.Line().Length())
		}
	})
}

// resizeRect applies a world-space pointer delta to grip h of a rectangle
// rotated by rotation degrees about its centre. The edge opposite the grip
// stays fixed in world space and neither side shrinks below the floor.
func resizeRect(r geom.Rect, rotation float64, h Handle, delta geom.Point) geom.Rect {
	local := geom.RotateVector(delta, -rotation)
	out := r

	if h.movesRight() {
		out.Width = r.Width + local.X
	}
	if h.movesLeft() {
		out.Width = r.Width - local.X
		out.X = r.X + local.X
	}
	if h.movesBottom() {
		out.Height = r.Height + local.Y
	}
	if h.movesTop() {
		out.Height = r.Height - local.Y
		out.Y = r.Y + local.Y
	}

	if out.Width < minResizeSize {
		out.Width = minResizeSize
		if h.movesLeft() {
			out.X = r.X + r.Width - minResizeSize
		}
	}
	if out.Height < minResizeSize {
		out.Height = minResizeSize
		if h.movesTop() {
			out.Y = r.Y + r.Height - minResizeSize
		}
	}

	if rotation == 0 {
		return out
	}
	// out is expressed in the old rectangle's local frame; place its centre
	// in world space and let it rotate about that centre.
	c := geom.RotateAround(out.Center(), r.Center(), rotation)
	out.X = c.X - out.Width/2
	out.Y = c.Y - out.Height/2
	return out
}

// relayoutDimensions keeps the auto-generated width and height dimensions
// of a resized frame at their original offset from the frame edge.
func relayoutDimensions(s *models.Scene, children []childStart, from, to geom.Rect) {
	center := to.Center()
	for _, c := range children {
		dim, ok := s.Find(c.ref).(*models.Dimension)
		if !ok {
			continue
		}
		switch {
		case math.Abs(c.line.Y1-c.line.Y2) < 1:
			y := to.Y + (c.line.Y1 - from.Y)
			dim.SetLine(geom.Line{X1: to.X, Y1: y, X2: to.X + to.Width, Y2: y})
			dim.Text = scene.LengthLabel(to.Width)
		case math.Abs(c.line.X1-c.line.X2) < 1:
			x := to.X + (c.line.X1 - from.X)
			dim.SetLine(geom.Line{X1: x, Y1: to.Y, X2: x, Y2: to.Y + to.Height})
			dim.Text = scene.LengthLabel(to.Height)
		default:
			continue
		}
		dim.RotationCenterX, dim.RotationCenterY = center.X, center.Y
	}
}

func moveEndpoint(l geom.Line, h Handle, delta geom.Point, constrain bool) geom.Line {
	switch h {
	case HandleStart:
		p := l.Start().Add(delta)
		if constrain {
			p = geom.ConstrainAxis(l.End(), p)
		}
		l.X1, l.Y1 = p.X, p.Y
	case HandleEnd:
		p := l.End().Add(delta)
		if constrain {
			p = geom.ConstrainAxis(l.Start(), p)
		}
		l.X2, l.Y2 = p.X, p.Y
	}
	return l
}

func (e *Editor) rotateTo(world, canvas geom.Point, mods Modifiers) {
	d := e.drag
	if d == nil {
		return
	}

	angle := geom.Degrees(math.Atan2(world.Y-d.center.Y, world.X-d.center.X)) + 90
	if angle < 0 {
		angle += 360
	}
	if mods.Shift {
		angle = math.Round(angle/15) * 15
	}
	angle = geom.NormalizeDegrees(angle)
	e.indicator = &RotationIndicator{Angle: angle, At: canvas}

	e.update(func(s *models.Scene) {
		switch el := s.Find(d.target).(type) {
		case *models.Frame:
			el.Rotation = angle
			for i := range s.Dimensions {
				if s.Dimensions[i].ParentID == el.ID {
					s.Dimensions[i].Rotation = angle
					s.Dimensions[i].RotationCenterX = d.center.X
					s.Dimensions[i].RotationCenterY = d.center.Y
				}
			}
		case *models.TextBox:
			el.Rotation = angle
		}
	})
}

func (e *Editor) paintAt(world geom.Point) {
	e.updateAndRecord(func(s *models.Scene) {
		if e.paintTarget == PaintLine {
			for i := len(s.Mullions) - 1; i >= 0; i-- {
				m := &s.Mullions[i]
				if m.Line().Near(world, m.WallThickness()/2) {
					m.Color = e.paintColor
					return
				}
			}
			return
		}

		for i := len(s.Frames) - 1; i >= 0; i-- {
			f := &s.Frames[i]
			if !f.Contains(world) {
				continue
			}
			local := geom.Unrotate(world, f.Center(), f.Rotation)
			onBorder := !f.GlassRect().Contains(local)
			switch {
			case e.paintTarget == PaintFrame && onBorder:
				f.Color = e.paintColor
			case e.paintTarget == PaintGlass && !onBorder:
				f.GlassColor = e.paintColor
			}
			return
		}
	})
}
