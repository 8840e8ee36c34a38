package model

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// FloorPlanLoadedMsg is sent when a floor plan is loaded from the database.
type FloorPlanLoadedMsg struct {
	Plan FloorPlan
}

// FloorPlanSavedMsg is sent when a floor plan has been persisted.
type FloorPlanSavedMsg struct {
	ID      string
	Version int
}

// ReservationsLoadedMsg is sent when the reservation list is loaded.
type ReservationsLoadedMsg struct {
	Reservations []Reservation
}

// ReservationSavedMsg is sent when a reservation is successfully saved.
type ReservationSavedMsg struct {
	ID        string
	Operation string // insert, update, delete
}

// ReservationStatusChangedMsg is sent after a status transition is persisted.
type ReservationStatusChangedMsg struct {
	ID     string
	Status ReservationStatus
}

// TablesAssignedMsg is sent when a reservation's table assignment is persisted.
type TablesAssignedMsg struct {
	ReservationID string
	TableIDs      []string
}

// FormCancelledMsg is sent when a form is cancelled.
type FormCancelledMsg struct{}

// Screen represents different app screens.
type Screen int

const (
	ScreenEditor Screen = iota
	ScreenReservations
	ScreenAssign
	ScreenTableForm
	ScreenReservationForm
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNav Mode = iota
	ModeInsert
)
