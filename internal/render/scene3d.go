package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/YashGhavghave/Glass-Billing-Software/internal/models"
)

// Depths in millimetres and the millimetre to metre factor of the 3D view.
const (
	ProfileDepth = 80
	SashDepth    = 70
	Scale3D      = 0.001

	glassDepth3D  = 0.01
	panelDepth3D  = 0.02
	louverPitch3D = 0.025
	louverBlade3D = 0.005
	sweep3D       = 90

	glassColor3D  = "#cceeff"
	panelColor3D  = "#D3D3D3"
	louverColor3D = "#A9A9A9"
	brickColor3D  = "#8B4513"
)

// NodeKind distinguishes grouping nodes from drawable boxes.
type NodeKind string

const (
	NodeGroup NodeKind = "group"
	NodeBox   NodeKind = "box"
)

// Vec3 is a position, Euler rotation in radians or box size.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Material is the surface of a box.
type Material struct {
	Color       string  `json:"color"`
	Opacity     float64 `json:"opacity,omitempty"`
	Transparent bool    `json:"transparent,omitempty"`
	DoubleSide  bool    `json:"doubleSide,omitempty"`
}

// Node is one element of the 3D scene graph. Child transforms are
// relative to their parent. Target names the element a click on the node
// acts on, e.g. "panel:2" or "frame:frame_x".
type Node struct {
	Name     string    `json:"name,omitempty"`
	Kind     NodeKind  `json:"kind"`
	Position Vec3      `json:"position"`
	Rotation Vec3      `json:"rotation"`
	Size     *Vec3     `json:"size,omitempty"`
	Material *Material `json:"material,omitempty"`
	Target   string    `json:"target,omitempty"`
	Children []Node    `json:"children,omitempty"`
}

// Camera places the viewer.
type Camera struct {
	Position Vec3    `json:"position"`
	FOV      float64 `json:"fov"`
}

// Scene3D is a complete 3D view. Message is set instead of Root when
// there is nothing to show.
type Scene3D struct {
	Camera  Camera `json:"camera"`
	Root    *Node  `json:"root,omitempty"`
	Message string `json:"message,omitempty"`
}

func box(name string, pos, size Vec3, mat Material) Node {
	return Node{Name: name, Kind: NodeBox, Position: pos, Size: &size, Material: &mat}
}

func group(name string, pos Vec3, children ...Node) Node {
	return Node{Name: name, Kind: NodeGroup, Position: pos, Children: children}
}

// hinged rotates children by rot about pivot, both in the parent's space.
func hinged(pivot, rot Vec3, children ...Node) Node {
	inner := group("", Vec3{X: -pivot.X, Y: -pivot.Y, Z: -pivot.Z}, children...)
	return Node{Kind: NodeGroup, Position: pivot, Rotation: rot, Children: []Node{inner}}
}

// rectFrame returns the four members of a rectangular frame of outer size
// w x h, member width t and depth d, centred on the origin.
func rectFrame(prefix string, w, h, t, d float64, mat Material) []Node {
	return []Node{
		box(prefix+"-top", Vec3{Y: (h - t) / 2}, Vec3{X: w, Y: t, Z: d}, mat),
		box(prefix+"-bottom", Vec3{Y: (-h + t) / 2}, Vec3{X: w, Y: t, Z: d}, mat),
		box(prefix+"-left", Vec3{X: (-w + t) / 2}, Vec3{X: t, Y: h - 2*t, Z: d}, mat),
		box(prefix+"-right", Vec3{X: (w - t) / 2}, Vec3{X: t, Y: h - 2*t, Z: d}, mat),
	}
}

func glassPane(w, h, depth float64, color string) Node {
	return box("glass", Vec3{}, Vec3{X: w, Y: h, Z: depth}, Material{
		Color:       color,
		Opacity:     0.6,
		Transparent: true,
		DoubleSide:  true,
	})
}

// TrackZ returns the depth offset in metres of sliding panel index on a
// system with n tracks. Panels cycle over the tracks.
func TrackZ(n, index int) float64 {
	if n < 1 {
		n = 1
	}
	first := -float64(n-1) * SashDepth / 2
	return (first + float64(index%n)*SashDepth) * Scale3D
}

// DesignScene builds the 3D view of a parametric design.
func DesignScene(p models.DesignParameters, g *models.Geometry, states []PanelState) Scene3D {
	if g == nil {
		return Scene3D{Camera: Camera{Position: Vec3{Z: 1.5}, FOV: 50}, Message: "No design available for 3D view."}
	}

	color := Material{Color: p.Color.Hex()}
	outer := g.Frame.Outer
	frameW := outer.Width * Scale3D
	frameH := outer.Height * Scale3D
	frameT := (outer.Width - g.Frame.Inner.Width) / 2 * Scale3D

	root := group("design", Vec3{}, rectFrame("frame", frameW, frameH, frameT, ProfileDepth*Scale3D, color)...)

	tracks := p.System.TrackCount()
	if tracks < 1 {
		tracks = 2
	}
	for i, panel := range g.Panels {
		var st PanelState
		if i < len(states) {
			st = states[i]
		}

		w := panel.PanelRect.Width * Scale3D
		h := panel.PanelRect.Height * Scale3D
		x := (panel.PanelRect.X-outer.Width/2)*Scale3D + w/2
		y := -(panel.PanelRect.Y-outer.Height/2)*Scale3D - h/2
		sash := (panel.PanelRect.Width - panel.GlassRect.Width) / 2 * Scale3D

		pos := Vec3{X: x, Y: y, Z: (ProfileDepth - SashDepth) / 2 * Scale3D}
		if p.System.IsSliding() {
			pos = Vec3{X: x + st.Offset*Scale3D, Y: y, Z: TrackZ(tracks, i)}
		}

		parts := rectFrame("sash", w, h, sash, SashDepth*Scale3D, color)
		parts = append(parts, glassPane(panel.GlassRect.Width*Scale3D, panel.GlassRect.Height*Scale3D, glassDepth3D, glassColor3D))

		pivot, rot := panelHinge(p, i, w, h, st.Open)
		node := group(fmt.Sprintf("panel-%d", i), pos, hinged(pivot, rot, parts...))
		node.Target = fmt.Sprintf("panel:%d", i)
		root.Children = append(root.Children, node)
	}

	return Scene3D{Camera: Camera{Position: Vec3{Z: frameW * 1.5}, FOV: 50}, Root: &root}
}

// panelHinge returns the pivot and rotation of an opened parametric panel
// of size w x h metres.
func panelHinge(p models.DesignParameters, index int, w, h float64, state models.OpenState) (Vec3, Vec3) {
	if state == models.Closed {
		return Vec3{}, Vec3{}
	}
	angle := sweep3D * state.Ratio() * math.Pi / 180

	switch p.System {
	case models.SystemAwning, models.SystemTiltTurn:
		return Vec3{Y: h / 2}, Vec3{X: angle}
	case models.SystemCasement:
		if HingeOnLeft(p.CasementOpening, index) {
			return Vec3{X: -w / 2}, Vec3{Y: angle}
		}
		return Vec3{X: w / 2}, Vec3{Y: -angle}
	case models.SystemFoldable:
		if index%2 == 0 {
			return Vec3{X: w / 2}, Vec3{Y: -angle}
		}
		return Vec3{X: -w / 2}, Vec3{Y: angle}
	}
	return Vec3{}, Vec3{}
}

// SceneGraph builds the 3D view of a custom scene. Frames open about
// their hinge according to their opening type; mullions become boxes.
func SceneGraph(s models.Scene) Scene3D {
	cam := Camera{Position: Vec3{Z: 1.5}, FOV: 50}
	if len(s.Frames) == 0 && len(s.Mullions) == 0 {
		return Scene3D{Camera: cam, Message: "Draw a design on the 2D canvas to see it in 3D."}
	}

	root := group("custom", Vec3{})
	for i := range s.Frames {
		root.Children = append(root.Children, frameNode(&s.Frames[i]))
	}
	for i := range s.Mullions {
		root.Children = append(root.Children, mullionNode(&s.Mullions[i]))
	}
	centerScene(&root)

	return Scene3D{Camera: cam, Root: &root}
}

// solidColor drops gradients, which the 3D view cannot show.
func solidColor(color string) string {
	if color == "" || strings.HasPrefix(color, "linear-gradient") {
		return defaultStroke
	}
	return color
}

func frameNode(fr *models.Frame) Node {
	t := fr.WallThickness() * Scale3D
	w := fr.Width * Scale3D
	h := fr.Height * Scale3D
	gw, gh := w-2*t, h-2*t
	mat := Material{Color: solidColor(fr.Color)}

	parts := rectFrame("sash", w, h, t, SashDepth*Scale3D, mat)
	if gw > 0 && gh > 0 {
		parts = append(parts, infillNodes(fr, gw, gh)...)
	}

	var pivot, rot Vec3
	if fr.EffectiveOpening().IsOperable() && fr.OpenState != models.Closed {
		angle := sweep3D * fr.OpenState.Ratio() * math.Pi / 180
		switch fr.Opening {
		case models.OpeningAwning:
			pivot, rot = Vec3{Y: h / 2}, Vec3{X: angle}
		case models.OpeningTilt:
			pivot, rot = Vec3{Y: -h / 2}, Vec3{X: -angle}
		case models.OpeningCasementLeft, models.OpeningDoorLeft:
			pivot, rot = Vec3{X: -w / 2}, Vec3{Y: angle}
		case models.OpeningCasementRight, models.OpeningDoorRight:
			pivot, rot = Vec3{X: w / 2}, Vec3{Y: -angle}
		}
	}

	center := fr.Center()
	node := group(fr.ID, Vec3{X: center.X * Scale3D, Y: -center.Y * Scale3D}, hinged(pivot, rot, parts...))
	node.Rotation = Vec3{Z: -fr.Rotation * math.Pi / 180}
	if fr.EffectiveOpening().IsOperable() {
		node.Target = "frame:" + fr.ID
	}
	return node
}

func infillNodes(fr *models.Frame, w, h float64) []Node {
	switch fr.EffectiveInfill() {
	case models.InfillPanel:
		return []Node{box("panel", Vec3{}, Vec3{X: w, Y: h, Z: panelDepth3D}, Material{Color: panelColor3D, DoubleSide: true})}
	case models.InfillLouver:
		n := int(math.Floor(h / louverPitch3D))
		blades := make([]Node, 0, n)
		for i := 0; i < n; i++ {
			b := box(fmt.Sprintf("louver-%d", i),
				Vec3{Y: h/2 - (float64(i)+0.5)*louverPitch3D},
				Vec3{X: w, Y: louverBlade3D, Z: louverPitch3D},
				Material{Color: louverColor3D})
			b.Rotation = Vec3{X: -math.Pi / 6}
			blades = append(blades, b)
		}
		return []Node{group("louvers", Vec3{}, blades...)}
	case models.InfillBrickwork:
		return []Node{box("brickwork", Vec3{}, Vec3{X: w, Y: h, Z: ProfileDepth * Scale3D}, Material{Color: brickColor3D})}
	default:
		color := fr.GlassColor
		if color == "" {
			color = glassColor3D
		}
		return []Node{glassPane(w, h, glassDepth3D, color)}
	}
}

func mullionNode(m *models.Mullion) Node {
	x1, y1 := m.X1*Scale3D, -m.Y1*Scale3D
	x2, y2 := m.X2*Scale3D, -m.Y2*Scale3D
	length := math.Hypot(x2-x1, y2-y1)

	b := box(m.ID,
		Vec3{X: (x1 + x2) / 2, Y: (y1 + y2) / 2},
		Vec3{X: length, Y: m.WallThickness() * Scale3D, Z: ProfileDepth * Scale3D},
		Material{Color: solidColor(m.Color)})
	b.Rotation = Vec3{Z: math.Atan2(y2-y1, x2-x1)}
	return b
}

// centerScene shifts the children so the centre of their positions sits
// at the origin.
func centerScene(root *Node) {
	if len(root.Children) == 0 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range root.Children {
		minX, maxX = math.Min(minX, c.Position.X), math.Max(maxX, c.Position.X)
		minY, maxY = math.Min(minY, c.Position.Y), math.Max(maxY, c.Position.Y)
	}
	root.Position = Vec3{X: -(minX + maxX) / 2, Y: -(minY + maxY) / 2}
}
