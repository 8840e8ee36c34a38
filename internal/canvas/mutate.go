package canvas

import (
	"fmt"
	"time"

	"tablo/internal/model"
)

// CommitFunc receives the fully updated floor plan after every mutating
// operation. The engine never awaits a result; persistence failures are the
// host's responsibility.
type CommitFunc func(model.FloorPlan)

// TablePatch is a partial update for a table object. Nil fields are left
// untouched.
type TablePatch struct {
	Number     *int
	SubType    *string
	Shape      *model.TableShape
	Seats      *int
	MinSeats   *int
	MaxSeats   *int
	Status     *model.TableStatus
	Size       *model.GridSize
	Rotation   *float64
	Combinable *bool
}

// Mutator performs the add/update/move/delete/duplicate operations. Every
// mutation follows the same contract: build the updated plan as a copy, hand
// it to the commit callback, then record history and selection. Either the
// whole updated object set reaches the callback or nothing changes. All
// operations are no-ops in read-only mode and with empty id lists.
type Mutator struct {
	cfg      Config
	readOnly bool
	commit   CommitFunc
	sel      *Selection
	hist     *History
	now      func() time.Time
	newID    func() string
	user     string
}

// NewMutator wires a mutator to its collaborators. commit may be nil, in
// which case updated plans are only returned to the caller.
func NewMutator(cfg Config, readOnly bool, commit CommitFunc, sel *Selection, hist *History, newID func() string, user string) *Mutator {
	return &Mutator{
		cfg:      cfg,
		readOnly: readOnly,
		commit:   commit,
		sel:      sel,
		hist:     hist,
		now:      time.Now,
		newID:    newID,
		user:     user,
	}
}

func (m *Mutator) publish(fp model.FloorPlan) {
	if m.commit != nil {
		m.commit(fp)
	}
}

// MoveObjects shifts the matching objects by delta grid units.
func (m *Mutator) MoveObjects(fp model.FloorPlan, ids []string, delta model.GridCoordinate) model.FloorPlan {
	if m.readOnly || len(ids) == 0 {
		return fp
	}
	updated := ApplyMove(fp, ids, delta, m.now())
	m.publish(updated)
	m.hist.Record("move", fmt.Sprintf("Moved %d object(s)", len(ids)))
	return updated
}

// DeleteObjects removes the matching objects and clears the selection.
func (m *Mutator) DeleteObjects(fp model.FloorPlan, ids []string) model.FloorPlan {
	if m.readOnly || len(ids) == 0 {
		return fp
	}
	updated := ApplyDelete(fp, ids, m.now())
	m.sel.DeselectAll()
	m.publish(updated)
	m.hist.Record("delete", fmt.Sprintf("Deleted %d object(s)", len(ids)))
	return updated
}

// DuplicateObjects clones the matching objects with fresh ids, offset by the
// configured grid distance, and selects the clones.
func (m *Mutator) DuplicateObjects(fp model.FloorPlan, ids []string) model.FloorPlan {
	if m.readOnly || len(ids) == 0 {
		return fp
	}
	updated, newIDs := ApplyDuplicate(fp, ids, m.cfg.DuplicateOffset, m.now())
	if len(newIDs) == 0 {
		return fp
	}
	m.sel.Select(newIDs, false)
	m.publish(updated)
	m.hist.Record("duplicate", fmt.Sprintf("Duplicated %d object(s)", len(newIDs)))
	return updated
}

// AddTable materializes a full table from the given partial attributes and
// defaults, appends it at position, and selects it.
func (m *Mutator) AddTable(fp model.FloorPlan, attrs model.TableAttrs, pos model.GridCoordinate) model.FloorPlan {
	if m.readOnly {
		return fp
	}
	id := m.newID()
	updated, obj := ApplyAddTable(fp, id, attrs, pos, m.user, m.now())
	m.sel.Select([]string{obj.ID}, false)
	m.publish(updated)
	m.hist.Record("add", fmt.Sprintf("Added new %s table", obj.Table.SubType))
	return updated
}

// UpdateTable merges patch into the matching table-typed object. Ids that do
// not resolve to a table are left untouched; type must match.
func (m *Mutator) UpdateTable(fp model.FloorPlan, id string, patch TablePatch) model.FloorPlan {
	if m.readOnly || id == "" {
		return fp
	}
	updated, changed := ApplyUpdateTable(fp, id, patch, m.now())
	if !changed {
		return fp
	}
	m.publish(updated)
	m.hist.Record("update", fmt.Sprintf("Updated table %s", id))
	return updated
}

// ApplyMove is the pure transform behind MoveObjects.
func ApplyMove(fp model.FloorPlan, ids []string, delta model.GridCoordinate, now time.Time) model.FloorPlan {
	idset := toSet(ids)
	objects := make([]model.RestaurantObject, len(fp.Objects))
	copy(objects, fp.Objects)
	for i := range objects {
		if _, ok := idset[objects[i].ID]; !ok {
			continue
		}
		objects[i].Position = objects[i].Position.Add(delta)
		objects[i].Meta.LastModified = now
	}
	fp.Objects = objects
	fp.Meta.LastModified = now
	return fp
}

// ApplyDelete is the pure transform behind DeleteObjects.
func ApplyDelete(fp model.FloorPlan, ids []string, now time.Time) model.FloorPlan {
	idset := toSet(ids)
	objects := make([]model.RestaurantObject, 0, len(fp.Objects))
	for _, o := range fp.Objects {
		if _, ok := idset[o.ID]; ok {
			continue
		}
		objects = append(objects, o)
	}
	fp.Objects = objects
	fp.Meta.LastModified = now
	return fp
}

// ApplyDuplicate is the pure transform behind DuplicateObjects. Clone ids are
// synthesized as "<source>_copy_<unix-ms>"; clones keep the source's
// CreatedBy but get fresh created/modified stamps.
func ApplyDuplicate(fp model.FloorPlan, ids []string, offset float64, now time.Time) (model.FloorPlan, []string) {
	idset := toSet(ids)
	objects := make([]model.RestaurantObject, len(fp.Objects))
	copy(objects, fp.Objects)

	var newIDs []string
	for _, src := range fp.Objects {
		if _, ok := idset[src.ID]; !ok {
			continue
		}
		clone := src
		clone.ID = fmt.Sprintf("%s_copy_%d", src.ID, now.UnixMilli())
		clone.Position = src.Position.Add(model.GridCoordinate{GridX: offset, GridY: offset})
		clone.Meta = model.ObjectMeta{
			Created:      now,
			LastModified: now,
			CreatedBy:    src.Meta.CreatedBy,
		}
		if src.Table != nil {
			attrs := *src.Table
			clone.Table = &attrs
		}
		objects = append(objects, clone)
		newIDs = append(newIDs, clone.ID)
	}
	if len(newIDs) == 0 {
		return fp, nil
	}
	fp.Objects = objects
	fp.Meta.LastModified = now
	return fp, newIDs
}

// ApplyAddTable is the pure transform behind AddTable. Zero-valued fields of
// attrs fall back to the standard 3x3, 4-seat, 2-8 capacity table.
func ApplyAddTable(fp model.FloorPlan, id string, attrs model.TableAttrs, pos model.GridCoordinate, user string, now time.Time) (model.FloorPlan, model.RestaurantObject) {
	if id == "" {
		id = fmt.Sprintf("table_%d", now.UnixMilli())
	}
	if attrs.SubType == "" {
		attrs.SubType = "standard"
	}
	if attrs.Shape == "" {
		attrs.Shape = model.ShapeRectangle
	}
	if attrs.Seats == 0 {
		attrs.Seats = 4
	}
	if attrs.MinSeats == 0 {
		attrs.MinSeats = 2
	}
	if attrs.MaxSeats == 0 {
		attrs.MaxSeats = 8
	}
	if attrs.Status == "" {
		attrs.Status = model.TableAvailable
	}
	if attrs.Number == 0 {
		attrs.Number = nextTableNumber(fp)
	}

	obj := model.RestaurantObject{
		ID:       id,
		Kind:     model.KindTable,
		Position: pos,
		Size:     model.GridSize{Width: 3, Height: 3},
		Meta: model.ObjectMeta{
			Created:      now,
			LastModified: now,
			CreatedBy:    user,
		},
		Table: &attrs,
	}

	objects := make([]model.RestaurantObject, len(fp.Objects), len(fp.Objects)+1)
	copy(objects, fp.Objects)
	fp.Objects = append(objects, obj)
	fp.Meta.LastModified = now
	return fp, obj
}

// ApplyUpdateTable is the pure transform behind UpdateTable. Returns false
// when the id does not resolve to a table-typed object.
func ApplyUpdateTable(fp model.FloorPlan, id string, patch TablePatch, now time.Time) (model.FloorPlan, bool) {
	objects := make([]model.RestaurantObject, len(fp.Objects))
	copy(objects, fp.Objects)

	changed := false
	for i := range objects {
		if objects[i].ID != id || !objects[i].IsTable() {
			continue
		}
		attrs := *objects[i].Table
		if patch.Number != nil {
			attrs.Number = *patch.Number
		}
		if patch.SubType != nil {
			attrs.SubType = *patch.SubType
		}
		if patch.Shape != nil {
			attrs.Shape = *patch.Shape
		}
		if patch.Seats != nil {
			attrs.Seats = *patch.Seats
		}
		if patch.MinSeats != nil {
			attrs.MinSeats = *patch.MinSeats
		}
		if patch.MaxSeats != nil {
			attrs.MaxSeats = *patch.MaxSeats
		}
		if patch.Status != nil {
			attrs.Status = *patch.Status
		}
		if patch.Combinable != nil {
			attrs.Combinable = *patch.Combinable
		}
		objects[i].Table = &attrs
		if patch.Size != nil {
			objects[i].Size = *patch.Size
		}
		if patch.Rotation != nil {
			objects[i].Rotation = *patch.Rotation
		}
		objects[i].Meta.LastModified = now
		changed = true
		break
	}
	if !changed {
		return fp, false
	}
	fp.Objects = objects
	fp.Meta.LastModified = now
	return fp, true
}

func nextTableNumber(fp model.FloorPlan) int {
	max := 0
	for _, o := range fp.Objects {
		if o.IsTable() && o.Table.Number > max {
			max = o.Table.Number
		}
	}
	return max + 1
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
