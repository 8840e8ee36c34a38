package canvas

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"tablo/internal/model"
)

// Snapshot captures the view/selection context restored around undo and redo.
// Object content lives in the external floor plan, not here.
type Snapshot struct {
	Selected  []string
	Transform model.CanvasTransform
}

// Entry is a single undo log record.
type Entry struct {
	ID          string
	Action      string
	Description string
	Timestamp   time.Time
	Before      Snapshot
	After       Snapshot
}

// History is the debounced undo/redo log. Repeated Record calls within the
// debounce window collapse into one entry, so a continuous drag produces a
// single record instead of one per pointer move. It owns exactly one timer
// handle; Dispose cancels it so nothing fires after teardown.
type History struct {
	mu       sync.Mutex
	cfg      Config
	snap     func() Snapshot
	now      func() time.Time
	entries  []Entry
	index    int
	pending  *pendingRecord
	timer    *time.Timer
	disposed bool
}

type pendingRecord struct {
	action      string
	description string
}

// NewHistory creates an empty history. snap is called at commit time to
// capture the current selection and transform.
func NewHistory(cfg Config, snap func() Snapshot) *History {
	return &History{
		cfg:   cfg,
		snap:  snap,
		now:   time.Now,
		index: -1,
	}
}

// Record schedules a history entry, replacing any pending one.
func (h *History) Record(action, description string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.disposed {
		return
	}
	h.pending = &pendingRecord{action: action, description: description}
	if h.timer != nil {
		h.timer.Stop()
	}
	h.timer = time.AfterFunc(h.cfg.HistoryDebounce, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.commitLocked()
	})
}

// Flush commits any pending entry immediately.
func (h *History) Flush() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.commitLocked()
}

func (h *History) commitLocked() {
	if h.disposed || h.pending == nil {
		return
	}
	p := *h.pending
	h.pending = nil
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}

	s := h.snap()
	entry := Entry{
		ID:          uuid.NewString(),
		Action:      p.action,
		Description: p.description,
		Timestamp:   h.now(),
		Before:      s,
		After:       s,
	}

	// Truncate the redo tail before appending.
	h.entries = append(h.entries[:h.index+1], entry)
	if len(h.entries) > h.cfg.MaxHistory {
		trimmed := make([]Entry, h.cfg.MaxHistory)
		copy(trimmed, h.entries[len(h.entries)-h.cfg.MaxHistory:])
		h.entries = trimmed
	}
	h.index = len(h.entries) - 1
}

// Undo steps back one entry and returns the snapshot to restore. A pending
// record is committed first so a just-finished action is undoable. No-op at
// the log boundary.
func (h *History) Undo() (Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.commitLocked()
	if h.index <= 0 {
		return Snapshot{}, false
	}
	h.index--
	return h.entries[h.index].Before, true
}

// Redo steps forward one entry and returns the snapshot to restore. No-op at
// the log boundary.
func (h *History) Redo() (Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.commitLocked()
	if h.index >= len(h.entries)-1 {
		return Snapshot{}, false
	}
	h.index++
	return h.entries[h.index].After, true
}

// CanUndo reports whether Undo would restore something.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pending != nil {
		return h.index >= 0
	}
	return h.index > 0
}

// CanRedo reports whether a redo tail exists.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pending == nil && h.index < len(h.entries)-1
}

// Len returns the number of committed entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Index returns the current position in the log, -1 when empty.
func (h *History) Index() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index
}

// LastDescription returns the description of the entry at the current index.
func (h *History) LastDescription() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index < 0 || h.index >= len(h.entries) {
		return ""
	}
	return h.entries[h.index].Description
}

// Dispose cancels the debounce timer and drops any pending record. The
// history refuses further records afterwards.
func (h *History) Dispose() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.disposed = true
	h.pending = nil
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
}
