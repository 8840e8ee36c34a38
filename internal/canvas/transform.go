package canvas

import (
	"fmt"
	"math"

	"tablo/internal/model"
)

// Bounds is an axis-aligned box in canvas pixel space.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns the horizontal extent of the box.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent of the box.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Contains reports whether p lies inside the box.
func (b Bounds) Contains(p model.CanvasPosition) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// TransformPatch is a partial transform update. Nil fields are left alone.
type TransformPatch struct {
	Position *model.CanvasPosition
	Zoom     *float64
	Rotation *float64
}

// recorder is the slice of History the viewport needs.
type recorder interface {
	Record(action, description string)
}

// Viewport is the camera through which the floor plan is viewed. All zoom
// writes route through Apply so clamping happens in one place, and every
// transform-affecting call records a debounced history entry.
type Viewport struct {
	cfg       Config
	transform model.CanvasTransform
	width     float64
	height    float64
	bounds    Bounds
	hist      recorder
}

// NewViewport creates a viewport at the default transform.
func NewViewport(cfg Config, hist recorder) *Viewport {
	v := &Viewport{
		cfg:       cfg,
		transform: model.CanvasTransform{Zoom: cfg.DefaultZoom},
		hist:      hist,
	}
	v.recalcBounds()
	return v
}

// Transform returns the current camera state.
func (v *Viewport) Transform() model.CanvasTransform {
	return v.transform
}

// Size returns the viewport element size in pixels.
func (v *Viewport) Size() (width, height float64) {
	return v.width, v.height
}

// Center returns the element center, the pivot for keyboard and pinch zoom.
func (v *Viewport) Center() model.CanvasPosition {
	return model.CanvasPosition{X: v.width / 2, Y: v.height / 2}
}

// SetSize records the element size and recomputes the visible bounds.
func (v *Viewport) SetSize(width, height float64) {
	v.width = width
	v.height = height
	v.recalcBounds()
}

// Apply shallow-merges a partial transform. Zoom is clamped here and nowhere
// else; callers never see an out-of-range zoom take effect.
func (v *Viewport) Apply(patch TransformPatch) {
	if patch.Position != nil {
		v.transform.Position = *patch.Position
	}
	if patch.Zoom != nil {
		v.transform.Zoom = v.cfg.ClampZoom(*patch.Zoom)
	}
	if patch.Rotation != nil {
		v.transform.Rotation = *patch.Rotation
	}
	v.recalcBounds()
}

// Restore resets the camera from a history snapshot.
func (v *Viewport) Restore(t model.CanvasTransform) {
	t.Zoom = v.cfg.ClampZoom(t.Zoom)
	v.transform = t
	v.recalcBounds()
}

// Pan shifts the camera by a pixel delta. Deltas are incremental, one per
// pointer move, so the pan follows the pointer smoothly.
func (v *Viewport) Pan(delta model.CanvasPosition) {
	pos := model.CanvasPosition{
		X: v.transform.Position.X + delta.X,
		Y: v.transform.Position.Y + delta.Y,
	}
	v.Apply(TransformPatch{Position: &pos})
	v.hist.Record("pan", "Panned view")
}

// SetView moves zoom and position together, as pinch and wheel zoom do, and
// records a single history entry for the pair.
func (v *Viewport) SetView(pos model.CanvasPosition, zoom float64, action, description string) {
	v.Apply(TransformPatch{Position: &pos, Zoom: &zoom})
	v.hist.Record(action, description)
}

// StepZoom nudges the zoom by the configured keyboard increment, pivoting
// around the element center.
func (v *Viewport) StepZoom(direction int) {
	target := v.transform.Zoom + float64(direction)*v.cfg.ZoomStep
	v.ZoomAround(target, v.Center(), fmt.Sprintf("Zoomed to %d%%", int(math.Round(v.cfg.ClampZoom(target)*100))))
}

// ZoomAround zooms toward target, shifting the pan position so the given
// pivot point stays visually fixed instead of the canvas origin.
func (v *Viewport) ZoomAround(target float64, pivot model.CanvasPosition, description string) {
	old := v.transform.Zoom
	zoom := v.cfg.ClampZoom(target)
	if old <= 0 {
		old = v.cfg.DefaultZoom
	}
	factor := zoom / old
	center := v.Center()
	pos := model.CanvasPosition{
		X: v.transform.Position.X - (pivot.X-center.X)*(factor-1),
		Y: v.transform.Position.Y - (pivot.Y-center.Y)*(factor-1),
	}
	v.SetView(pos, zoom, "zoom", description)
}

// FitToView frames all tables: it computes their grid bounding box (each
// table expanded by half its size), picks the largest zoom that fits the box
// into the viewport with the configured padding, and centers the box midpoint
// on the canvas center. No-op when the plan has no tables.
func (v *Viewport) FitToView(objects []model.RestaurantObject) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	found := false
	for _, o := range objects {
		if !o.IsTable() {
			continue
		}
		found = true
		minX = math.Min(minX, o.Position.GridX-o.Size.Width/2)
		minY = math.Min(minY, o.Position.GridY-o.Size.Height/2)
		maxX = math.Max(maxX, o.Position.GridX+o.Size.Width/2)
		maxY = math.Max(maxY, o.Position.GridY+o.Size.Height/2)
	}
	if !found {
		return
	}

	contentW := (maxX - minX) * v.cfg.GridCellSize
	contentH := (maxY - minY) * v.cfg.GridCellSize
	zoom := v.cfg.MaxZoom
	if contentW > 0 {
		zoom = math.Min(zoom, v.width*v.cfg.FitPadding/contentW)
	}
	if contentH > 0 {
		zoom = math.Min(zoom, v.height*v.cfg.FitPadding/contentH)
	}
	zoom = math.Max(zoom, v.cfg.MinZoom)

	mid := v.cfg.GridToPixel(model.GridCoordinate{
		GridX: (minX + maxX) / 2,
		GridY: (minY + maxY) / 2,
	})
	pos := model.CanvasPosition{
		X: v.cfg.CanvasCenter.X - mid.X*zoom,
		Y: v.cfg.CanvasCenter.Y - mid.Y*zoom,
	}
	v.SetView(pos, zoom, "fit", "Fit all tables to view")
}

// Reset restores the default camera.
func (v *Viewport) Reset() {
	v.transform = model.CanvasTransform{Zoom: v.cfg.DefaultZoom}
	v.recalcBounds()
	v.hist.Record("reset", "Reset view to default")
}

// Bounds returns the axis-aligned canvas-space box covering the visible
// element, used for culling decisions. Recomputed on every transform change.
func (v *Viewport) Bounds() Bounds {
	return v.bounds
}

func (v *Viewport) recalcBounds() {
	zoom := v.transform.Zoom
	if zoom <= 0 {
		zoom = v.cfg.DefaultZoom
	}
	scaledW := v.width / zoom
	scaledH := v.height / zoom
	cx := -v.transform.Position.X / zoom
	cy := -v.transform.Position.Y / zoom
	v.bounds = Bounds{
		MinX: cx - scaledW/2,
		MinY: cy - scaledH/2,
		MaxX: cx + scaledW/2,
		MaxY: cy + scaledH/2,
	}
}
