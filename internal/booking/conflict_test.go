package booking

import (
	"testing"
	"time"

	"tablo/internal/model"
)

var day = time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func table(id string, number, maxSeats int) model.RestaurantObject {
	return model.RestaurantObject{
		ID:   id,
		Kind: model.KindTable,
		Size: model.GridSize{Width: 3, Height: 3},
		Table: &model.TableAttrs{
			Number: number, SubType: "standard", Shape: model.ShapeRectangle,
			Seats: 4, MinSeats: 2, MaxSeats: maxSeats, Status: model.TableAvailable,
		},
	}
}

func reservation(id, tableID string, startsAt time.Time, durationMin int, status model.ReservationStatus) model.Reservation {
	var ids []string
	if tableID != "" {
		ids = []string{tableID}
	}
	return model.Reservation{
		ID: id, RestaurantID: "r1", GuestName: "Guest", PartySize: 2,
		TableIDs: ids, StartsAt: startsAt, DurationMin: durationMin, Status: status,
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	cases := []struct {
		name                   string
		aStart, aEnd           time.Time
		bStart, bEnd           time.Time
		want                   bool
	}{
		{"back to back", at(18, 0), at(20, 0), at(20, 0), at(22, 0), false},
		{"overlapping hour", at(18, 0), at(20, 0), at(19, 0), at(21, 0), true},
		{"contained", at(18, 0), at(22, 0), at(19, 0), at(20, 0), true},
		{"identical", at(18, 0), at(20, 0), at(18, 0), at(20, 0), true},
		{"disjoint", at(12, 0), at(14, 0), at(18, 0), at(20, 0), false},
		{"touching before", at(16, 0), at(18, 0), at(18, 0), at(20, 0), false},
	}
	for _, tc := range cases {
		if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
			t.Errorf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestWindowDefaultsTurnTime(t *testing.T) {
	start, end, ok := Window(reservation("r", "t", at(18, 0), 0, model.ResConfirmed))
	if !ok {
		t.Fatal("scheduled reservation should have a window")
	}
	if !start.Equal(at(18, 0)) || !end.Equal(at(20, 0)) {
		t.Errorf("missing duration should default to 120 minutes, got [%v, %v)", start, end)
	}

	if _, _, ok := Window(reservation("r", "t", time.Time{}, 120, model.ResConfirmed)); ok {
		t.Error("a reservation without a start time has no window")
	}
}

func TestClassifyBackToBackDoesNotConflict(t *testing.T) {
	tables := []model.RestaurantObject{table("t1", 1, 8)}
	existing := []model.Reservation{reservation("r1", "t1", at(18, 0), 120, model.ResConfirmed)}

	got := ClassifyTables(tables, existing, Candidate{StartsAt: at(20, 0), TurnTimeMin: 120, PartySize: 2})

	c := got["t1"]
	if c.Conflicting {
		t.Error("a booking starting exactly when the previous ends must not conflict")
	}
	if !c.CanBeSelected {
		t.Error("table should be selectable")
	}
}

func TestClassifyOverlapConflicts(t *testing.T) {
	tables := []model.RestaurantObject{table("t1", 1, 8)}
	existing := []model.Reservation{reservation("r1", "t1", at(18, 0), 120, model.ResConfirmed)}

	got := ClassifyTables(tables, existing, Candidate{StartsAt: at(19, 0), TurnTimeMin: 120, PartySize: 2})

	c := got["t1"]
	if !c.Conflicting || c.ConflictsWith != "r1" {
		t.Errorf("overlapping windows must conflict, got %+v", c)
	}
	if c.CanBeSelected {
		t.Error("conflicting table must not be selectable")
	}
}

func TestClassifyTerminalStatusesNeverConflict(t *testing.T) {
	tables := []model.RestaurantObject{table("t1", 1, 8)}
	for _, status := range []model.ReservationStatus{model.ResCompleted, model.ResCancelled, model.ResNoShow} {
		existing := []model.Reservation{reservation("r1", "t1", at(18, 0), 120, status)}
		got := ClassifyTables(tables, existing, Candidate{StartsAt: at(18, 30), TurnTimeMin: 120, PartySize: 2})
		if got["t1"].Conflicting {
			t.Errorf("%s reservation must not block the table", status)
		}
	}
}

func TestClassifyOccupancyIndependentOfWindow(t *testing.T) {
	tables := []model.RestaurantObject{table("t1", 1, 8)}
	// seated hours ago; the scheduled window does not overlap the candidate
	existing := []model.Reservation{reservation("r1", "t1", at(12, 0), 120, model.ResSeated)}

	got := ClassifyTables(tables, existing, Candidate{StartsAt: at(19, 0), TurnTimeMin: 120, PartySize: 2})

	c := got["t1"]
	if !c.CurrentlyOccupied || c.OccupiedBy != "r1" {
		t.Errorf("live occupancy must be reported regardless of windows, got %+v", c)
	}
	if c.Conflicting {
		t.Error("non-overlapping window should not also be a time conflict")
	}
	if c.CanBeSelected {
		t.Error("occupied table must not be selectable")
	}
}

func TestClassifyActiveOccupancyStatuses(t *testing.T) {
	tables := []model.RestaurantObject{table("t1", 1, 8)}
	active := []model.ReservationStatus{
		model.ResArrived, model.ResSeated, model.ResOrdered, model.ResAppetizers,
		model.ResMainCourse, model.ResDessert, model.ResPayment,
	}
	for _, status := range active {
		existing := []model.Reservation{reservation("r1", "t1", at(12, 0), 120, status)}
		got := ClassifyTables(tables, existing, Candidate{PartySize: 2})
		if !got["t1"].CurrentlyOccupied {
			t.Errorf("%s should count as occupying the table", status)
		}
	}

	for _, status := range []model.ReservationStatus{model.ResPending, model.ResConfirmed} {
		existing := []model.Reservation{reservation("r1", "t1", at(12, 0), 120, status)}
		got := ClassifyTables(tables, existing, Candidate{PartySize: 2})
		if got["t1"].CurrentlyOccupied {
			t.Errorf("%s should not count as occupying the table", status)
		}
	}
}

func TestClassifySuitabilityIsAdvisory(t *testing.T) {
	tables := []model.RestaurantObject{table("small", 1, 4), table("big", 2, 10)}

	got := ClassifyTables(tables, nil, Candidate{StartsAt: at(19, 0), TurnTimeMin: 120, PartySize: 6})

	if got["small"].Suitable {
		t.Error("a 4-top is unsuitable for a party of 6")
	}
	if !got["small"].CanBeSelected {
		t.Error("unsuitable tables stay selectable")
	}
	if !got["big"].Suitable {
		t.Error("a 10-top fits a party of 6")
	}
}

func TestClassifyExcludesOwnReservation(t *testing.T) {
	tables := []model.RestaurantObject{table("t1", 1, 8)}
	existing := []model.Reservation{reservation("mine", "t1", at(19, 0), 120, model.ResConfirmed)}

	got := ClassifyTables(tables, existing, Candidate{ReservationID: "mine", StartsAt: at(19, 0), TurnTimeMin: 120, PartySize: 2})

	if got["t1"].Conflicting {
		t.Error("a reservation must not conflict with its own assignment")
	}
}

func TestClassifyMissingCandidateTime(t *testing.T) {
	tables := []model.RestaurantObject{table("t1", 1, 8)}
	existing := []model.Reservation{reservation("r1", "t1", at(19, 0), 120, model.ResConfirmed)}

	got := ClassifyTables(tables, existing, Candidate{PartySize: 2})

	c := got["t1"]
	if c.Conflicting {
		t.Error("an unscheduled candidate never time-conflicts")
	}
	if !c.CanBeSelected {
		t.Error("table should be selectable for an unscheduled candidate")
	}
}

func TestClassifyMissingReservationTime(t *testing.T) {
	tables := []model.RestaurantObject{table("t1", 1, 8)}
	existing := []model.Reservation{reservation("r1", "t1", time.Time{}, 120, model.ResConfirmed)}

	got := ClassifyTables(tables, existing, Candidate{StartsAt: at(19, 0), TurnTimeMin: 120, PartySize: 2})

	if got["t1"].Conflicting {
		t.Error("an unscheduled reservation never time-conflicts")
	}
}

func TestClassifyOvernightWindow(t *testing.T) {
	tables := []model.RestaurantObject{table("t1", 1, 8)}
	// 23:00 to 01:00 the next day
	existing := []model.Reservation{reservation("r1", "t1", at(23, 0), 120, model.ResConfirmed)}

	// half past midnight, inside the overnight window
	got := ClassifyTables(tables, existing, Candidate{StartsAt: at(24, 30), TurnTimeMin: 60, PartySize: 2})
	if !got["t1"].Conflicting {
		t.Error("a candidate inside an overnight window must conflict")
	}

	// 01:00 next day, exactly at the overnight window's end
	got = ClassifyTables(tables, existing, Candidate{StartsAt: at(25, 0), TurnTimeMin: 60, PartySize: 2})
	if got["t1"].Conflicting {
		t.Error("a candidate starting at the overnight window's end must not conflict")
	}
}

func TestClassifyDefaultTurnTime(t *testing.T) {
	tables := []model.RestaurantObject{table("t1", 1, 8)}
	existing := []model.Reservation{reservation("r1", "t1", at(20, 0), 120, model.ResConfirmed)}

	// no turn time given: 18:30 + 120min default = 20:30, overlapping 20:00
	got := ClassifyTables(tables, existing, Candidate{StartsAt: at(18, 30), PartySize: 2})
	if !got["t1"].Conflicting {
		t.Error("the default turn time should extend the candidate window to 20:30")
	}
}

func TestClassifySkipsUnassignedTables(t *testing.T) {
	tables := []model.RestaurantObject{table("t1", 1, 8), table("t2", 2, 8)}
	existing := []model.Reservation{reservation("r1", "t1", at(19, 0), 120, model.ResSeated)}

	got := ClassifyTables(tables, existing, Candidate{StartsAt: at(19, 0), TurnTimeMin: 120, PartySize: 2})

	if got["t2"].Conflicting || got["t2"].CurrentlyOccupied {
		t.Error("a reservation only blocks the tables it is assigned to")
	}
	if !got["t2"].CanBeSelected {
		t.Error("unassigned table should be selectable")
	}
}
