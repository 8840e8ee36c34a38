package canvas

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"tablo/internal/model"
)

func testPlan(objects ...model.RestaurantObject) model.FloorPlan {
	return model.FloorPlan{
		ID:           "plan1",
		RestaurantID: "r1",
		Name:         "Test room",
		Objects:      objects,
	}
}

func testMutator(readOnly bool) (*Mutator, *Selection, *History, *[]model.FloorPlan) {
	cfg := DefaultConfig()
	sel := NewSelection()
	hist := NewHistory(cfg, func() Snapshot { return Snapshot{Selected: sel.IDs()} })
	var commits []model.FloorPlan
	commitsPtr := &commits
	seq := 0
	m := NewMutator(cfg, readOnly, func(fp model.FloorPlan) {
		*commitsPtr = append(*commitsPtr, fp)
	}, sel, hist, func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}, "tester")
	return m, sel, hist, commitsPtr
}

func TestMoveObjectsPreservesRelativeOffsets(t *testing.T) {
	m, _, _, commits := testMutator(false)
	fp := testPlan(
		testTable("a", 1, 0, 0),
		testTable("b", 2, 5, 3),
		testTable("c", 3, -4, -4),
	)

	delta := model.GridCoordinate{GridX: 2, GridY: -1}
	updated := m.MoveObjects(fp, []string{"a", "b"}, delta)

	a, _ := updated.Object("a")
	b, _ := updated.Object("b")
	c, _ := updated.Object("c")
	if a.Position.GridX != 2 || a.Position.GridY != -1 {
		t.Errorf("a should move to (2,-1), got %+v", a.Position)
	}
	if b.Position.GridX != 7 || b.Position.GridY != 2 {
		t.Errorf("b should move to (7,2), got %+v", b.Position)
	}
	if b.Position.GridX-a.Position.GridX != 5 || b.Position.GridY-a.Position.GridY != 3 {
		t.Error("relative offset between moved objects must be preserved")
	}
	if c.Position.GridX != -4 {
		t.Error("unselected objects must not move")
	}
	if len(*commits) != 1 || len((*commits)[0].Objects) != 3 {
		t.Fatalf("commit should receive the full object set, got %d commits", len(*commits))
	}
}

func TestMoveObjectsLeavesSourceUntouched(t *testing.T) {
	m, _, _, _ := testMutator(false)
	fp := testPlan(testTable("a", 1, 0, 0))

	m.MoveObjects(fp, []string{"a"}, model.GridCoordinate{GridX: 9, GridY: 9})

	a, _ := fp.Object("a")
	if a.Position.GridX != 0 || a.Position.GridY != 0 {
		t.Errorf("input plan must not be mutated, got %+v", a.Position)
	}
}

func TestMoveObjectsNoOps(t *testing.T) {
	m, _, hist, commits := testMutator(false)
	fp := testPlan(testTable("a", 1, 0, 0))

	m.MoveObjects(fp, nil, model.GridCoordinate{GridX: 1})
	if len(*commits) != 0 || hist.CanUndo() {
		t.Error("empty id list must be a silent no-op")
	}

	ro, _, _, roCommits := testMutator(true)
	ro.MoveObjects(fp, []string{"a"}, model.GridCoordinate{GridX: 1})
	if len(*roCommits) != 0 {
		t.Error("read-only mutator must not commit")
	}
}

func TestDeleteObjectsClearsSelection(t *testing.T) {
	m, sel, _, commits := testMutator(false)
	fp := testPlan(testTable("a", 1, 0, 0), testTable("b", 2, 5, 5))
	sel.Select([]string{"a"}, false)

	updated := m.DeleteObjects(fp, []string{"a"})

	if _, ok := updated.Object("a"); ok {
		t.Error("deleted object still present")
	}
	if _, ok := updated.Object("b"); !ok {
		t.Error("unrelated object was deleted")
	}
	if sel.Len() != 0 {
		t.Error("selection must clear after delete")
	}
	if len(*commits) != 1 {
		t.Errorf("expected one commit, got %d", len(*commits))
	}
}

func TestDuplicateObjectsOffsetsClones(t *testing.T) {
	m, sel, _, _ := testMutator(false)
	src := testTable("a", 1, 3, 3)
	fp := testPlan(src)
	sel.Select([]string{"a"}, false)

	updated := m.DuplicateObjects(fp, []string{"a"})

	if len(updated.Objects) != 2 {
		t.Fatalf("expected 2 objects after duplicate, got %d", len(updated.Objects))
	}
	clone := updated.Objects[1]
	if !strings.HasPrefix(clone.ID, "a_copy_") {
		t.Errorf("clone id should derive from the source, got %q", clone.ID)
	}
	if clone.Position.GridX != 5 || clone.Position.GridY != 5 {
		t.Errorf("clone should land at (5,5), got %+v", clone.Position)
	}

	orig, _ := updated.Object("a")
	if orig.Position.GridX != 3 {
		t.Error("source object must stay in place")
	}

	// selection switches to the clones
	if sel.Len() != 1 || !sel.Contains(clone.ID) {
		t.Errorf("clones should be selected, got %v", sel.IDs())
	}
}

func TestDuplicateDeepCopiesTableAttrs(t *testing.T) {
	m, _, _, _ := testMutator(false)
	fp := testPlan(testTable("a", 1, 0, 0))

	updated := m.DuplicateObjects(fp, []string{"a"})
	clone := updated.Objects[1]
	clone.Table.Number = 99

	orig, _ := updated.Object("a")
	if orig.Table.Number == 99 {
		t.Error("clone attrs must not alias the source attrs")
	}
}

func TestAddTableAppliesDefaults(t *testing.T) {
	m, sel, _, _ := testMutator(false)
	fp := testPlan(testTable("a", 4, 0, 0))

	updated := m.AddTable(fp, model.TableAttrs{}, model.GridCoordinate{GridX: 7, GridY: 7})

	if len(updated.Objects) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(updated.Objects))
	}
	added := updated.Objects[1]
	if !added.IsTable() {
		t.Fatal("added object must be a table")
	}
	at := added.Table
	if at.SubType != "standard" || at.Shape != model.ShapeRectangle || at.Seats != 4 ||
		at.MinSeats != 2 || at.MaxSeats != 8 || at.Status != model.TableAvailable {
		t.Errorf("defaults not applied: %+v", at)
	}
	if at.Number != 5 {
		t.Errorf("table number should continue from the highest existing, got %d", at.Number)
	}
	if added.Size.Width != 3 || added.Size.Height != 3 {
		t.Errorf("new tables default to 3x3, got %+v", added.Size)
	}
	if added.Meta.CreatedBy != "tester" {
		t.Errorf("created_by should carry the session user, got %q", added.Meta.CreatedBy)
	}
	if !sel.Contains(added.ID) {
		t.Error("new table should be selected")
	}
}

func TestUpdateTableMergesPatch(t *testing.T) {
	m, _, _, _ := testMutator(false)
	fp := testPlan(testTable("a", 1, 0, 0))

	seats := 6
	status := model.TableReserved
	updated := m.UpdateTable(fp, "a", TablePatch{Seats: &seats, Status: &status})

	a, _ := updated.Object("a")
	if a.Table.Seats != 6 || a.Table.Status != model.TableReserved {
		t.Errorf("patched fields not applied: %+v", a.Table)
	}
	if a.Table.Number != 1 || a.Table.MinSeats != 2 {
		t.Errorf("unpatched fields must survive: %+v", a.Table)
	}

	orig, _ := fp.Object("a")
	if orig.Table.Seats != 4 {
		t.Error("input plan attrs must not be mutated")
	}
}

func TestUpdateTableRejectsNonTables(t *testing.T) {
	m, _, hist, commits := testMutator(false)
	wall := model.RestaurantObject{ID: "w", Kind: model.KindWall, Size: model.GridSize{Width: 10, Height: 1}}
	fp := testPlan(wall)

	seats := 6
	updated := m.UpdateTable(fp, "w", TablePatch{Seats: &seats})

	if len(*commits) != 0 || hist.CanUndo() {
		t.Error("updating a non-table must be a silent no-op")
	}
	w, _ := updated.Object("w")
	if w.Table != nil {
		t.Error("non-table must not grow table attrs")
	}
}

func TestApplyMoveStampsLastModified(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fp := testPlan(testTable("a", 1, 0, 0))

	updated := ApplyMove(fp, []string{"a"}, model.GridCoordinate{GridX: 1}, now)

	a, _ := updated.Object("a")
	if !a.Meta.LastModified.Equal(now) {
		t.Error("moved object should be stamped with the mutation time")
	}
	if !updated.Meta.LastModified.Equal(now) {
		t.Error("plan metadata should be stamped with the mutation time")
	}
}
