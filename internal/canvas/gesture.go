package canvas

import (
	"math"

	"tablo/internal/model"
)

// Modifiers are the modifier keys held during an input event.
type Modifiers struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool
}

// Primary reports the platform primary modifier (ctrl, or cmd on mac).
func (m Modifiers) Primary() bool {
	return m.Ctrl || m.Meta
}

// PointerEvent is a mouse event in element pixel space.
type PointerEvent struct {
	Pos model.CanvasPosition
	Mod Modifiers
}

// Touch is one active touch point.
type Touch struct {
	ID  int
	Pos model.CanvasPosition
}

// KeyEvent is a normalized keyboard event. Key is the lowercase key name:
// "delete", "backspace", "escape", "a", "=", "+", "-", "0".
type KeyEvent struct {
	Key string
	Mod Modifiers
}

type gesturePhase int

const (
	phaseIdle gesturePhase = iota
	phasePanning
	phasePinching
	phaseBoxSelect
)

var phaseNames = map[gesturePhase]string{
	phaseIdle:      "idle",
	phasePanning:   "panning",
	phasePinching:  "pinch",
	phaseBoxSelect: "select",
}

// Callbacks let the host react to gestures the engine cannot resolve on its
// own: it has no object list, so deletion, select-all and box-selection hit
// testing are signalled outward.
type Callbacks struct {
	DeleteSelection func()
	SelectAll       func()
	BoxSelect       func(Bounds)
}

// Gesture translates raw pointer/touch/keyboard events into transform and
// selection updates. State machine: Idle -> Panning, Idle -> PinchZooming,
// Idle -> BoxSelecting; lifting one of two touches falls back to Panning so
// the camera never sticks mid-gesture.
type Gesture struct {
	cfg      Config
	view     *Viewport
	sel      *Selection
	cb       Callbacks
	readOnly bool

	phase       gesturePhase
	lastPointer model.CanvasPosition
	moved       bool

	boxStart model.CanvasPosition
	boxEnd   model.CanvasPosition

	initialDistance float64
	initialZoom     float64
	initialPos      model.CanvasPosition
}

// NewGesture creates the controller in the idle state.
func NewGesture(cfg Config, view *Viewport, sel *Selection, cb Callbacks, readOnly bool) *Gesture {
	return &Gesture{
		cfg:      cfg,
		view:     view,
		sel:      sel,
		cb:       cb,
		readOnly: readOnly,
	}
}

// SetCallbacks replaces the host callbacks. Hosts that need the engine in
// scope to build their callbacks wire them after construction.
func (g *Gesture) SetCallbacks(cb Callbacks) {
	g.cb = cb
}

// State names the current phase for status display.
func (g *Gesture) State() string {
	return phaseNames[g.phase]
}

// PointerDown starts a pan on empty canvas, or a box selection when the
// primary modifier is held.
func (g *Gesture) PointerDown(ev PointerEvent) {
	g.moved = false
	if ev.Mod.Primary() {
		g.phase = phaseBoxSelect
		g.boxStart = ev.Pos
		g.boxEnd = ev.Pos
		return
	}
	g.phase = phasePanning
	g.lastPointer = ev.Pos
}

// PointerMove advances the active gesture. While panning, each move applies
// the delta from the previous position so the camera tracks the pointer.
func (g *Gesture) PointerMove(ev PointerEvent) {
	switch g.phase {
	case phasePanning:
		delta := model.CanvasPosition{
			X: ev.Pos.X - g.lastPointer.X,
			Y: ev.Pos.Y - g.lastPointer.Y,
		}
		if delta.X != 0 || delta.Y != 0 {
			g.moved = true
			g.view.Pan(delta)
		}
		g.lastPointer = ev.Pos
	case phaseBoxSelect:
		g.moved = true
		g.boxEnd = ev.Pos
	}
}

// PointerUp finishes the gesture. A pan that never moved counts as a click
// on empty canvas and clears the selection; a finished box hands its bounds
// to the host for hit testing.
func (g *Gesture) PointerUp(ev PointerEvent) {
	switch g.phase {
	case phasePanning:
		if !g.moved && !ev.Mod.Primary() {
			g.sel.DeselectAll()
		}
	case phaseBoxSelect:
		if g.cb.BoxSelect != nil {
			g.cb.BoxSelect(g.selectionBox())
		}
	}
	g.phase = phaseIdle
}

// TapObject handles a click that landed on an object: replace selection, or
// extend it while shift is held.
func (g *Gesture) TapObject(id string, ev PointerEvent) {
	g.sel.Select([]string{id}, ev.Mod.Shift)
}

// SelectionBox returns the in-progress box in element pixel space.
func (g *Gesture) SelectionBox() (Bounds, bool) {
	if g.phase != phaseBoxSelect {
		return Bounds{}, false
	}
	return g.selectionBox(), true
}

func (g *Gesture) selectionBox() Bounds {
	return Bounds{
		MinX: math.Min(g.boxStart.X, g.boxEnd.X),
		MinY: math.Min(g.boxStart.Y, g.boxEnd.Y),
		MaxX: math.Max(g.boxStart.X, g.boxEnd.X),
		MaxY: math.Max(g.boxStart.Y, g.boxEnd.Y),
	}
}

// TouchStart begins panning for one touch or pinch zoom for two.
func (g *Gesture) TouchStart(touches []Touch) {
	switch len(touches) {
	case 1:
		g.phase = phasePanning
		g.moved = false
		g.lastPointer = touches[0].Pos
	case 2:
		g.phase = phasePinching
		g.initialDistance = touchDistance(touches[0], touches[1])
		t := g.view.Transform()
		g.initialZoom = t.Zoom
		g.initialPos = t.Position
	}
}

// TouchMove drives the active touch gesture. Pinch zoom scales from the
// initial distance and pivots around the touch midpoint: the midpoint offset
// from the element center is scaled by (factor-1) and subtracted from the
// initial pan position.
func (g *Gesture) TouchMove(touches []Touch) {
	switch g.phase {
	case phasePanning:
		if len(touches) == 0 {
			return
		}
		g.PointerMove(PointerEvent{Pos: touches[0].Pos})
	case phasePinching:
		if len(touches) < 2 || g.initialDistance <= 0 {
			return
		}
		factor := touchDistance(touches[0], touches[1]) / g.initialDistance
		zoom := g.cfg.ClampZoom(g.initialZoom * factor)
		mid := model.CanvasPosition{
			X: (touches[0].Pos.X + touches[1].Pos.X) / 2,
			Y: (touches[0].Pos.Y + touches[1].Pos.Y) / 2,
		}
		center := g.view.Center()
		pos := model.CanvasPosition{
			X: g.initialPos.X - (mid.X-center.X)*(factor-1),
			Y: g.initialPos.Y - (mid.Y-center.Y)*(factor-1),
		}
		g.view.SetView(pos, zoom, "pinch", "Pinch zoomed")
	}
}

// TouchEnd receives the touches still down. Going from two touches to one
// transitions to Panning anchored at the survivor, preserving continuity;
// lifting everything returns to Idle.
func (g *Gesture) TouchEnd(remaining []Touch) {
	switch len(remaining) {
	case 1:
		g.phase = phasePanning
		g.moved = true
		g.lastPointer = remaining[0].Pos
	case 0:
		g.phase = phaseIdle
	}
}

// Wheel zooms by -deltaY * sensitivity, clamped, pivoting around the cursor.
// Always legal regardless of phase.
func (g *Gesture) Wheel(deltaY float64, at model.CanvasPosition) {
	t := g.view.Transform()
	target := t.Zoom + -deltaY*g.cfg.WheelSensitivity
	g.view.ZoomAround(target, at, "Zoomed with wheel")
}

// HandleKey dispatches the keyboard shortcut surface. Returns true when the
// key was consumed. Shortcuts are inert in read-only mode.
func (g *Gesture) HandleKey(ev KeyEvent) bool {
	if g.readOnly {
		return false
	}
	switch {
	case ev.Key == "escape":
		g.sel.DeselectAll()
		return true
	case ev.Key == "delete" || ev.Key == "backspace":
		if g.cb.DeleteSelection != nil {
			g.cb.DeleteSelection()
		}
		return true
	case ev.Mod.Primary() && ev.Key == "a":
		if g.cb.SelectAll != nil {
			g.cb.SelectAll()
		}
		return true
	case ev.Mod.Primary() && (ev.Key == "=" || ev.Key == "+"):
		g.view.StepZoom(1)
		return true
	case ev.Mod.Primary() && ev.Key == "-":
		g.view.StepZoom(-1)
		return true
	case ev.Mod.Primary() && ev.Key == "0":
		g.view.Reset()
		return true
	}
	return false
}

func touchDistance(a, b Touch) float64 {
	dx := a.Pos.X - b.Pos.X
	dy := a.Pos.Y - b.Pos.Y
	return math.Hypot(dx, dy)
}
