package canvas

import (
	"github.com/google/uuid"
)

// Options configures a new Engine.
type Options struct {
	// Config falls back to DefaultConfig when left zero.
	Config Config
	// ReadOnly makes every mutating operation a silent no-op.
	ReadOnly bool
	// Commit receives the updated floor plan after each mutation.
	Commit CommitFunc
	// User stamps created objects' metadata.
	User string
	// Callbacks handle gestures the engine cannot resolve itself.
	Callbacks Callbacks
}

// Engine bundles the canvas subsystems for one editor session. Created when
// the editor mounts, disposed when it unmounts; holds no floor plan of its
// own.
type Engine struct {
	cfg       Config
	readOnly  bool
	Selection *Selection
	History   *History
	View      *Viewport
	Gesture   *Gesture
	Mutator   *Mutator
}

// New wires up an engine. The history snapshots the engine's own selection
// and transform at commit time.
func New(opts Options) *Engine {
	cfg := opts.Config
	if cfg.GridCellSize == 0 {
		cfg = DefaultConfig()
	}

	e := &Engine{cfg: cfg, readOnly: opts.ReadOnly}
	e.Selection = NewSelection()
	e.History = NewHistory(cfg, func() Snapshot { return e.Snapshot() })
	e.View = NewViewport(cfg, e.History)
	e.Gesture = NewGesture(cfg, e.View, e.Selection, opts.Callbacks, opts.ReadOnly)
	e.Mutator = NewMutator(cfg, opts.ReadOnly, opts.Commit, e.Selection, e.History, uuid.NewString, opts.User)
	return e
}

// Config returns the engine constants.
func (e *Engine) Config() Config {
	return e.cfg
}

// ReadOnly reports whether mutations are disabled.
func (e *Engine) ReadOnly() bool {
	return e.readOnly
}

// Snapshot captures the current selection and transform.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Selected:  e.Selection.IDs(),
		Transform: e.View.Transform(),
	}
}

// Undo restores the selection and transform preceding the last action.
func (e *Engine) Undo() bool {
	s, ok := e.History.Undo()
	if !ok {
		return false
	}
	e.restore(s)
	return true
}

// Redo re-applies the next entry's after-state.
func (e *Engine) Redo() bool {
	s, ok := e.History.Redo()
	if !ok {
		return false
	}
	e.restore(s)
	return true
}

func (e *Engine) restore(s Snapshot) {
	e.Selection.Restore(s.Selected)
	e.View.Restore(s.Transform)
}

// Dispose cancels the history debounce timer. Call on editor teardown.
func (e *Engine) Dispose() {
	e.History.Dispose()
}
