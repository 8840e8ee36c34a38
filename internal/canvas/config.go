// Package canvas implements the interactive floor-plan engine: coordinate
// conversion, the viewport camera, selection, debounced undo/redo history,
// object mutations and the gesture state machine. The engine never talks to
// the network or the database; it receives a FloorPlan, hands updated copies
// to a commit callback and keeps only session state of its own.
package canvas

import (
	"time"

	"tablo/internal/model"
)

// Config carries the host-tunable constants of the engine. Values are fixed
// for the lifetime of an Engine instance.
type Config struct {
	// GridCellSize is the pixel size of one grid unit.
	GridCellSize float64
	// CanvasCenter is the pixel position grid origin (0,0) maps to.
	CanvasCenter model.CanvasPosition

	MinZoom     float64
	MaxZoom     float64
	DefaultZoom float64
	// ZoomStep is the increment applied by keyboard zoom shortcuts.
	ZoomStep float64
	// WheelSensitivity converts a wheel deltaY into a zoom delta.
	WheelSensitivity float64

	// FitPadding is the share of the viewport FitToView fills with content.
	FitPadding float64

	// DuplicateOffset is the grid-unit offset applied to duplicated objects
	// on both axes.
	DuplicateOffset float64

	// MaxHistory caps the undo log; older entries are dropped from the front.
	MaxHistory int
	// HistoryDebounce is the quiet period that collapses bursts of history
	// records into a single entry.
	HistoryDebounce time.Duration
}

// DefaultConfig returns the constants used by the production editor.
func DefaultConfig() Config {
	return Config{
		GridCellSize:     20,
		CanvasCenter:     model.CanvasPosition{X: 2000, Y: 2000},
		MinZoom:          0.25,
		MaxZoom:          3.0,
		DefaultZoom:      1.0,
		ZoomStep:         0.1,
		WheelSensitivity: 0.001,
		FitPadding:       0.8,
		DuplicateOffset:  2,
		MaxHistory:       50,
		HistoryDebounce:  500 * time.Millisecond,
	}
}

// ClampZoom forces a requested zoom into [MinZoom, MaxZoom]. Out-of-range
// requests are clamped, never rejected.
func (c Config) ClampZoom(zoom float64) float64 {
	if zoom < c.MinZoom {
		return c.MinZoom
	}
	if zoom > c.MaxZoom {
		return c.MaxZoom
	}
	return zoom
}
