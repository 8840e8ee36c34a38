package ui

import (
	"database/sql"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"tablo/internal/db"
	"tablo/internal/model"
)

func loadFloorPlanCmd(database *sql.DB, restaurantID, planID string) tea.Cmd {
	return func() tea.Msg {
		var fp model.FloorPlan
		var err error
		if planID != "" {
			fp, err = db.GetFloorPlan(database, planID)
			if errors.Is(err, db.ErrNoFloorPlan) {
				// stale pref, fall back to the restaurant default
				fp, err = db.GetDefaultFloorPlan(database, restaurantID)
			}
		} else {
			fp, err = db.GetDefaultFloorPlan(database, restaurantID)
		}
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.FloorPlanLoadedMsg{Plan: fp}
	}
}

func saveFloorPlanCmd(database *sql.DB, fp model.FloorPlan) tea.Cmd {
	return func() tea.Msg {
		version, err := db.SaveFloorPlan(database, fp)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.FloorPlanSavedMsg{ID: fp.ID, Version: version}
	}
}

func loadReservationsCmd(database *sql.DB, restaurantID string) tea.Cmd {
	return func() tea.Msg {
		reservations, err := db.ListReservations(database, restaurantID)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.ReservationsLoadedMsg{Reservations: reservations}
	}
}

func insertReservationCmd(database *sql.DB, r model.Reservation) tea.Cmd {
	return func() tea.Msg {
		if err := db.InsertReservation(database, r); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.ReservationSavedMsg{ID: r.ID, Operation: "insert"}
	}
}

func updateReservationCmd(database *sql.DB, r model.Reservation) tea.Cmd {
	return func() tea.Msg {
		if err := db.UpdateReservation(database, r); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.ReservationSavedMsg{ID: r.ID, Operation: "update"}
	}
}

func updateReservationStatusCmd(database *sql.DB, id string, status model.ReservationStatus) tea.Cmd {
	return func() tea.Msg {
		if err := db.UpdateReservationStatus(database, id, status); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.ReservationStatusChangedMsg{ID: id, Status: status}
	}
}

func assignTablesCmd(database *sql.DB, reservationID string, tableIDs []string) tea.Cmd {
	return func() tea.Msg {
		if err := db.AssignTables(database, reservationID, tableIDs); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.TablesAssignedMsg{ReservationID: reservationID, TableIDs: tableIDs}
	}
}

func deleteReservationCmd(database *sql.DB, id string) tea.Cmd {
	return func() tea.Msg {
		if err := db.DeleteReservation(database, id); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.ReservationSavedMsg{ID: id, Operation: "delete"}
	}
}
