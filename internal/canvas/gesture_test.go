package canvas

import (
	"math"
	"testing"

	"tablo/internal/model"
)

func testGesture(readOnly bool, cb Callbacks) (*Gesture, *Viewport, *Selection) {
	cfg := DefaultConfig()
	spy := &recordSpy{}
	v := NewViewport(cfg, spy)
	v.SetSize(800, 600)
	sel := NewSelection()
	g := NewGesture(cfg, v, sel, cb, readOnly)
	return g, v, sel
}

func TestPointerPanFollowsDeltas(t *testing.T) {
	g, v, _ := testGesture(false, Callbacks{})

	g.PointerDown(PointerEvent{Pos: model.CanvasPosition{X: 100, Y: 100}})
	if g.State() != "panning" {
		t.Fatalf("expected panning, got %s", g.State())
	}

	g.PointerMove(PointerEvent{Pos: model.CanvasPosition{X: 110, Y: 95}})
	g.PointerMove(PointerEvent{Pos: model.CanvasPosition{X: 130, Y: 95}})
	g.PointerUp(PointerEvent{Pos: model.CanvasPosition{X: 130, Y: 95}})

	tr := v.Transform()
	if tr.Position.X != 30 || tr.Position.Y != -5 {
		t.Errorf("expected pan (30,-5), got (%v,%v)", tr.Position.X, tr.Position.Y)
	}
	if g.State() != "idle" {
		t.Errorf("gesture should return to idle, got %s", g.State())
	}
}

func TestClickOnEmptyCanvasClearsSelection(t *testing.T) {
	g, _, sel := testGesture(false, Callbacks{})
	sel.Select([]string{"a"}, false)

	pos := model.CanvasPosition{X: 50, Y: 50}
	g.PointerDown(PointerEvent{Pos: pos})
	g.PointerUp(PointerEvent{Pos: pos})

	if sel.Len() != 0 {
		t.Errorf("unmoved click on empty canvas should deselect, got %v", sel.IDs())
	}
}

func TestDragDoesNotClearSelection(t *testing.T) {
	g, _, sel := testGesture(false, Callbacks{})
	sel.Select([]string{"a"}, false)

	g.PointerDown(PointerEvent{Pos: model.CanvasPosition{X: 50, Y: 50}})
	g.PointerMove(PointerEvent{Pos: model.CanvasPosition{X: 80, Y: 50}})
	g.PointerUp(PointerEvent{Pos: model.CanvasPosition{X: 80, Y: 50}})

	if sel.Len() != 1 {
		t.Error("a drag that panned must not clear the selection")
	}
}

func TestBoxSelectReportsNormalizedBounds(t *testing.T) {
	var got Bounds
	called := false
	g, _, _ := testGesture(false, Callbacks{
		BoxSelect: func(b Bounds) {
			got = b
			called = true
		},
	})

	// primary modifier starts a box, dragged up-left
	g.PointerDown(PointerEvent{Pos: model.CanvasPosition{X: 200, Y: 150}, Mod: Modifiers{Ctrl: true}})
	if g.State() != "select" {
		t.Fatalf("expected box select, got %s", g.State())
	}
	g.PointerMove(PointerEvent{Pos: model.CanvasPosition{X: 120, Y: 90}})

	if box, ok := g.SelectionBox(); !ok || box.MinX != 120 || box.MinY != 90 {
		t.Errorf("in-progress box should normalize corners, got %+v ok=%v", box, ok)
	}

	g.PointerUp(PointerEvent{Pos: model.CanvasPosition{X: 120, Y: 90}, Mod: Modifiers{Ctrl: true}})

	if !called {
		t.Fatal("finishing a box should invoke the callback")
	}
	if got.MinX != 120 || got.MaxX != 200 || got.MinY != 90 || got.MaxY != 150 {
		t.Errorf("unexpected box %+v", got)
	}
}

func TestTapObjectReplaceAndExtend(t *testing.T) {
	g, _, sel := testGesture(false, Callbacks{})

	g.TapObject("a", PointerEvent{})
	g.TapObject("b", PointerEvent{})
	if sel.Len() != 1 || !sel.Contains("b") {
		t.Errorf("plain tap should replace selection, got %v", sel.IDs())
	}

	g.TapObject("c", PointerEvent{Mod: Modifiers{Shift: true}})
	if sel.Len() != 2 || !sel.Contains("b") || !sel.Contains("c") {
		t.Errorf("shift tap should extend selection, got %v", sel.IDs())
	}
}

func TestWheelZoomsTowardCursor(t *testing.T) {
	g, v, _ := testGesture(false, Callbacks{})

	// wheel up 100 at the element center: zoom 1 -> 1.1, no pan shift
	g.Wheel(-100, model.CanvasPosition{X: 400, Y: 300})
	tr := v.Transform()
	if math.Abs(tr.Zoom-1.1) > 1e-9 {
		t.Fatalf("expected zoom 1.1, got %v", tr.Zoom)
	}
	if tr.Position.X != 0 || tr.Position.Y != 0 {
		t.Errorf("center-cursor wheel should not pan, got %+v", tr.Position)
	}

	// off-center cursor shifts the pan so the cursor point stays put
	g.Wheel(-100, model.CanvasPosition{X: 0, Y: 0})
	tr = v.Transform()
	factor := tr.Zoom / 1.1
	wantX := 0 - (0-400)*(factor-1)
	if math.Abs(tr.Position.X-wantX) > 1e-9 {
		t.Errorf("expected position X %v, got %v", wantX, tr.Position.X)
	}
}

func TestWheelClampsAtLimits(t *testing.T) {
	g, v, _ := testGesture(false, Callbacks{})

	for i := 0; i < 50; i++ {
		g.Wheel(100, model.CanvasPosition{X: 400, Y: 300})
	}
	if v.Transform().Zoom != 0.25 {
		t.Errorf("zoom-out should clamp at 0.25, got %v", v.Transform().Zoom)
	}

	for i := 0; i < 100; i++ {
		g.Wheel(-100, model.CanvasPosition{X: 400, Y: 300})
	}
	if v.Transform().Zoom != 3.0 {
		t.Errorf("zoom-in should clamp at 3.0, got %v", v.Transform().Zoom)
	}
}

func TestPinchZoomScalesFromInitialDistance(t *testing.T) {
	g, v, _ := testGesture(false, Callbacks{})

	g.TouchStart([]Touch{
		{ID: 1, Pos: model.CanvasPosition{X: 350, Y: 300}},
		{ID: 2, Pos: model.CanvasPosition{X: 450, Y: 300}},
	})
	if g.State() != "pinch" {
		t.Fatalf("two touches should pinch, got %s", g.State())
	}

	// spread to double the distance, midpoint stays at the element center
	g.TouchMove([]Touch{
		{ID: 1, Pos: model.CanvasPosition{X: 300, Y: 300}},
		{ID: 2, Pos: model.CanvasPosition{X: 500, Y: 300}},
	})

	tr := v.Transform()
	if math.Abs(tr.Zoom-2.0) > 1e-9 {
		t.Errorf("doubling the pinch distance should double zoom, got %v", tr.Zoom)
	}
	if tr.Position.X != 0 || tr.Position.Y != 0 {
		t.Errorf("center-midpoint pinch should not pan, got %+v", tr.Position)
	}
}

func TestPinchClampsZoom(t *testing.T) {
	g, v, _ := testGesture(false, Callbacks{})

	g.TouchStart([]Touch{
		{ID: 1, Pos: model.CanvasPosition{X: 390, Y: 300}},
		{ID: 2, Pos: model.CanvasPosition{X: 410, Y: 300}},
	})
	g.TouchMove([]Touch{
		{ID: 1, Pos: model.CanvasPosition{X: 0, Y: 300}},
		{ID: 2, Pos: model.CanvasPosition{X: 800, Y: 300}},
	})

	if v.Transform().Zoom != 3.0 {
		t.Errorf("pinch should clamp at max zoom, got %v", v.Transform().Zoom)
	}
}

func TestLiftingOneTouchContinuesPanning(t *testing.T) {
	g, v, _ := testGesture(false, Callbacks{})

	g.TouchStart([]Touch{
		{ID: 1, Pos: model.CanvasPosition{X: 350, Y: 300}},
		{ID: 2, Pos: model.CanvasPosition{X: 450, Y: 300}},
	})
	g.TouchEnd([]Touch{{ID: 2, Pos: model.CanvasPosition{X: 450, Y: 300}}})

	if g.State() != "panning" {
		t.Fatalf("dropping to one touch should continue panning, got %s", g.State())
	}

	before := v.Transform().Position
	g.TouchMove([]Touch{{ID: 2, Pos: model.CanvasPosition{X: 470, Y: 310}}})
	after := v.Transform().Position
	if after.X-before.X != 20 || after.Y-before.Y != 10 {
		t.Errorf("survivor touch should pan from its own position, got delta (%v,%v)", after.X-before.X, after.Y-before.Y)
	}

	g.TouchEnd(nil)
	if g.State() != "idle" {
		t.Errorf("lifting all touches should idle, got %s", g.State())
	}
}

func TestHandleKeyShortcuts(t *testing.T) {
	deleted := false
	selectedAll := false
	g, v, sel := testGesture(false, Callbacks{
		DeleteSelection: func() { deleted = true },
		SelectAll:       func() { selectedAll = true },
	})
	sel.Select([]string{"a"}, false)

	if !g.HandleKey(KeyEvent{Key: "escape"}) || sel.Len() != 0 {
		t.Error("escape should clear the selection")
	}
	if !g.HandleKey(KeyEvent{Key: "delete"}) || !deleted {
		t.Error("delete should invoke the delete callback")
	}
	if !g.HandleKey(KeyEvent{Key: "a", Mod: Modifiers{Ctrl: true}}) || !selectedAll {
		t.Error("ctrl+a should invoke the select-all callback")
	}
	if !g.HandleKey(KeyEvent{Key: "=", Mod: Modifiers{Ctrl: true}}) {
		t.Error("ctrl+= should zoom in")
	}
	if math.Abs(v.Transform().Zoom-1.1) > 1e-9 {
		t.Errorf("expected zoom 1.1, got %v", v.Transform().Zoom)
	}
	if !g.HandleKey(KeyEvent{Key: "0", Mod: Modifiers{Ctrl: true}}) {
		t.Error("ctrl+0 should reset the view")
	}
	if v.Transform().Zoom != 1.0 {
		t.Errorf("reset should restore zoom 1.0, got %v", v.Transform().Zoom)
	}

	if g.HandleKey(KeyEvent{Key: "x"}) {
		t.Error("unbound keys should not be consumed")
	}
}

func TestHandleKeyInertWhenReadOnly(t *testing.T) {
	deleted := false
	g, _, sel := testGesture(true, Callbacks{
		DeleteSelection: func() { deleted = true },
	})
	sel.Select([]string{"a"}, false)

	if g.HandleKey(KeyEvent{Key: "delete"}) || deleted {
		t.Error("read-only shortcuts must be inert")
	}
	if g.HandleKey(KeyEvent{Key: "escape"}) {
		t.Error("read-only shortcuts must be inert")
	}
	if sel.Len() != 1 {
		t.Error("read-only escape must not clear the selection")
	}
}
