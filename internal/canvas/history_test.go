package canvas

import (
	"testing"
	"time"

	"tablo/internal/model"
)

func testHistory(snap *Snapshot) *History {
	cfg := DefaultConfig()
	return NewHistory(cfg, func() Snapshot { return *snap })
}

func TestRecordCollapsesBurstIntoOneEntry(t *testing.T) {
	snap := &Snapshot{Transform: model.CanvasTransform{Zoom: 1}}
	h := testHistory(snap)
	defer h.Dispose()

	for i := 0; i < 25; i++ {
		h.Record("pan", "Panned view")
	}
	h.Flush()

	if h.Len() != 1 {
		t.Fatalf("a burst of records should commit once, got %d entries", h.Len())
	}
	if h.LastDescription() != "Panned view" {
		t.Errorf("unexpected description %q", h.LastDescription())
	}
}

func TestDebounceTimerCommits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HistoryDebounce = 10 * time.Millisecond
	snap := Snapshot{Transform: model.CanvasTransform{Zoom: 1}}
	h := NewHistory(cfg, func() Snapshot { return snap })
	defer h.Dispose()

	h.Record("zoom", "Zoomed to 110%")
	if h.Len() != 0 {
		t.Fatal("entry should not commit before the debounce elapses")
	}

	deadline := time.Now().Add(time.Second)
	for h.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if h.Len() != 1 {
		t.Fatal("debounce timer never committed the pending entry")
	}
}

func TestUndoRedoSymmetry(t *testing.T) {
	snap := &Snapshot{Transform: model.CanvasTransform{Zoom: 1}}
	h := testHistory(snap)
	defer h.Dispose()

	h.Record("pan", "Panned view")
	h.Flush()
	snap.Transform.Zoom = 2
	h.Record("zoom", "Zoomed to 200%")
	h.Flush()

	s, ok := h.Undo()
	if !ok {
		t.Fatal("undo should succeed with two entries")
	}
	if s.Transform.Zoom != 1 {
		t.Errorf("undo should restore the first snapshot, got zoom %v", s.Transform.Zoom)
	}

	s, ok = h.Redo()
	if !ok {
		t.Fatal("redo should succeed after undo")
	}
	if s.Transform.Zoom != 2 {
		t.Errorf("redo should restore the second snapshot, got zoom %v", s.Transform.Zoom)
	}
}

func TestUndoCommitsPendingFirst(t *testing.T) {
	snap := &Snapshot{}
	h := testHistory(snap)
	defer h.Dispose()

	h.Record("move", "Moved 1 object(s)")
	h.Flush()
	h.Record("move", "Moved 2 object(s)")

	// the pending record is still inside its debounce window
	if _, ok := h.Undo(); !ok {
		t.Fatal("undo should commit the pending record and step back")
	}
	if h.Len() != 2 {
		t.Errorf("pending record should have committed, got %d entries", h.Len())
	}
}

func TestUndoRedoBoundaries(t *testing.T) {
	snap := &Snapshot{}
	h := testHistory(snap)
	defer h.Dispose()

	if _, ok := h.Undo(); ok {
		t.Error("undo on empty history should be a no-op")
	}
	if _, ok := h.Redo(); ok {
		t.Error("redo on empty history should be a no-op")
	}

	h.Record("pan", "Panned view")
	h.Flush()

	if _, ok := h.Undo(); ok {
		t.Error("undo with a single entry should be a no-op")
	}
	if _, ok := h.Redo(); ok {
		t.Error("redo at the head should be a no-op")
	}
}

func TestNewActionTruncatesRedoTail(t *testing.T) {
	snap := &Snapshot{}
	h := testHistory(snap)
	defer h.Dispose()

	for i := 0; i < 3; i++ {
		h.Record("pan", "Panned view")
		h.Flush()
	}
	if _, ok := h.Undo(); !ok {
		t.Fatal("undo failed")
	}
	if !h.CanRedo() {
		t.Fatal("redo tail should exist after undo")
	}

	h.Record("zoom", "Zoomed to 110%")
	h.Flush()

	if h.CanRedo() {
		t.Error("a new action must drop the redo tail")
	}
	if h.Len() != 3 {
		t.Errorf("expected 3 entries after truncation, got %d", h.Len())
	}
}

func TestHistoryCapDropsOldest(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxHistory = 5
	snap := Snapshot{}
	h := NewHistory(cfg, func() Snapshot { return snap })
	defer h.Dispose()

	for i := 0; i < 12; i++ {
		h.Record("pan", "Panned view")
		h.Flush()
	}

	if h.Len() != 5 {
		t.Errorf("history should cap at 5 entries, got %d", h.Len())
	}
	if h.Index() != 4 {
		t.Errorf("index should point at the newest entry, got %d", h.Index())
	}
}

func TestDisposeDropsPendingAndRefusesRecords(t *testing.T) {
	snap := &Snapshot{}
	h := testHistory(snap)

	h.Record("pan", "Panned view")
	h.Dispose()
	h.Flush()
	if h.Len() != 0 {
		t.Error("dispose should drop the pending record")
	}

	h.Record("pan", "Panned view")
	h.Flush()
	if h.Len() != 0 {
		t.Error("a disposed history should refuse new records")
	}
}
