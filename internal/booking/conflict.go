// Package booking classifies floor-plan tables against existing reservations
// so the assignment UI can show which tables a booking may take without a
// scheduling collision. The detector is pure: it holds no state and is
// recomputed from current inputs on every render.
package booking

import (
	"time"

	"tablo/internal/model"
)

// DefaultTurnTimeMinutes is assumed when a booking carries no duration.
const DefaultTurnTimeMinutes = 120

// activeOccupancy are the statuses meaning a table is physically in use
// right now, independent of any scheduled window.
var activeOccupancy = map[model.ReservationStatus]bool{
	model.ResArrived:    true,
	model.ResSeated:     true,
	model.ResOrdered:    true,
	model.ResAppetizers: true,
	model.ResMainCourse: true,
	model.ResDessert:    true,
	model.ResPayment:    true,
}

// Candidate is the booking a table is being picked for.
type Candidate struct {
	// ReservationID excludes the booking's own assignment from conflicts
	// when an existing reservation is being edited.
	ReservationID string
	StartsAt      time.Time
	TurnTimeMin   int
	PartySize     int
}

// TableClassification is the per-table verdict.
type TableClassification struct {
	TableID string
	// Conflicting: another reservation's window overlaps the candidate's.
	Conflicting   bool
	ConflictsWith string
	// CurrentlyOccupied: a live occupancy always wins over a scheduled one.
	CurrentlyOccupied bool
	OccupiedBy        string
	// Suitable is advisory only; an unsuitable table stays selectable.
	Suitable      bool
	CanBeSelected bool
}

// Overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) overlap. Back-to-back windows that merely touch do not.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Window returns a reservation's booking interval. ok is false when the
// reservation has no start time; such bookings never conflict.
func Window(r model.Reservation) (start, end time.Time, ok bool) {
	if r.StartsAt.IsZero() {
		return time.Time{}, time.Time{}, false
	}
	turn := r.DurationMin
	if turn <= 0 {
		turn = DefaultTurnTimeMinutes
	}
	return r.StartsAt, r.StartsAt.Add(time.Duration(turn) * time.Minute), true
}

// ClassifyTables classifies every table of the plan for the candidate
// booking. It never panics; bookings with missing time fields are treated as
// non-conflicting. Overnight windows work out through plain time arithmetic
// since intervals are absolute instants, not clock times.
func ClassifyTables(tables []model.RestaurantObject, reservations []model.Reservation, cand Candidate) map[string]TableClassification {
	turn := cand.TurnTimeMin
	if turn <= 0 {
		turn = DefaultTurnTimeMinutes
	}
	candStart := cand.StartsAt
	candEnd := candStart.Add(time.Duration(turn) * time.Minute)
	hasWindow := !candStart.IsZero()

	out := make(map[string]TableClassification, len(tables))
	for _, t := range tables {
		if !t.IsTable() {
			continue
		}
		c := TableClassification{TableID: t.ID, Suitable: true}
		if cand.PartySize > 0 {
			c.Suitable = t.Capacity() >= cand.PartySize
		}

		for _, r := range reservations {
			if r.ID == cand.ReservationID || !r.AssignedTo(t.ID) {
				continue
			}
			if activeOccupancy[r.Status] {
				c.CurrentlyOccupied = true
				c.OccupiedBy = r.ID
			}
			if r.Status.Terminal() || !hasWindow {
				continue
			}
			if rStart, rEnd, ok := Window(r); ok && Overlaps(candStart, candEnd, rStart, rEnd) {
				c.Conflicting = true
				c.ConflictsWith = r.ID
			}
		}

		c.CanBeSelected = !c.Conflicting && !c.CurrentlyOccupied
		out[t.ID] = c
	}
	return out
}
