package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"tablo/internal/model"
)

// ListReservations retrieves all reservations for a restaurant ordered by
// start time.
func ListReservations(db *sql.DB, restaurantID string) ([]model.Reservation, error) {
	rows, err := db.Query(`
		SELECT id, restaurant_id, guest_name, party_size, table_ids, starts_at, duration_min, status, created_at
		FROM reservations
		WHERE restaurant_id = ?
		ORDER BY starts_at, created_at
	`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	var out []model.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetReservation retrieves a single reservation by id.
func GetReservation(db *sql.DB, id string) (model.Reservation, error) {
	rows, err := db.Query(`
		SELECT id, restaurant_id, guest_name, party_size, table_ids, starts_at, duration_min, status, created_at
		FROM reservations
		WHERE id = ?
	`, id)
	if err != nil {
		return model.Reservation{}, fmt.Errorf("failed to get reservation: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return model.Reservation{}, fmt.Errorf("failed to get reservation: %w", err)
		}
		return model.Reservation{}, sql.ErrNoRows
	}
	return scanReservation(rows)
}

// InsertReservation stores a new reservation.
func InsertReservation(db *sql.DB, r model.Reservation) error {
	tableIDs, err := json.Marshal(r.TableIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal table ids: %w", err)
	}

	var startsAt interface{}
	if !r.StartsAt.IsZero() {
		startsAt = r.StartsAt.UTC().Format(time.RFC3339)
	}
	createdAt := time.Now().UTC().Format(time.RFC3339)
	if !r.CreatedAt.IsZero() {
		createdAt = r.CreatedAt.UTC().Format(time.RFC3339)
	}
	duration := r.DurationMin
	if duration <= 0 {
		duration = 120
	}
	status := r.Status
	if status == "" {
		status = model.ResPending
	}

	query := `
		INSERT INTO reservations (id, restaurant_id, guest_name, party_size, table_ids, starts_at, duration_min, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := db.Exec(query, r.ID, r.RestaurantID, r.GuestName, r.PartySize, string(tableIDs), startsAt, duration, string(status), createdAt); err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}
	return nil
}

// UpdateReservation rewrites the editable fields of a reservation.
func UpdateReservation(db *sql.DB, r model.Reservation) error {
	var startsAt interface{}
	if !r.StartsAt.IsZero() {
		startsAt = r.StartsAt.UTC().Format(time.RFC3339)
	}

	query := `
		UPDATE reservations
		SET guest_name = ?, party_size = ?, starts_at = ?, duration_min = ?, status = ?
		WHERE id = ?
	`
	if _, err := db.Exec(query, r.GuestName, r.PartySize, startsAt, r.DurationMin, string(r.Status), r.ID); err != nil {
		return fmt.Errorf("failed to update reservation: %w", err)
	}
	return nil
}

// UpdateReservationStatus persists a status transition.
func UpdateReservationStatus(db *sql.DB, id string, status model.ReservationStatus) error {
	if _, err := db.Exec(`UPDATE reservations SET status = ? WHERE id = ?`, string(status), id); err != nil {
		return fmt.Errorf("failed to update reservation status: %w", err)
	}
	return nil
}

// AssignTables replaces a reservation's table assignment.
func AssignTables(db *sql.DB, id string, tableIDs []string) error {
	if tableIDs == nil {
		tableIDs = []string{}
	}
	data, err := json.Marshal(tableIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal table ids: %w", err)
	}
	if _, err := db.Exec(`UPDATE reservations SET table_ids = ? WHERE id = ?`, string(data), id); err != nil {
		return fmt.Errorf("failed to assign tables: %w", err)
	}
	return nil
}

// DeleteReservation removes a reservation.
func DeleteReservation(db *sql.DB, id string) error {
	if _, err := db.Exec(`DELETE FROM reservations WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	return nil
}

func scanReservation(rows *sql.Rows) (model.Reservation, error) {
	var r model.Reservation
	var tableIDs string
	var startsAt sql.NullString
	var createdAt string
	var status string
	if err := rows.Scan(&r.ID, &r.RestaurantID, &r.GuestName, &r.PartySize, &tableIDs, &startsAt, &r.DurationMin, &status, &createdAt); err != nil {
		return model.Reservation{}, fmt.Errorf("failed to scan reservation: %w", err)
	}
	r.Status = model.ReservationStatus(status)
	if err := json.Unmarshal([]byte(tableIDs), &r.TableIDs); err != nil {
		return model.Reservation{}, fmt.Errorf("failed to unmarshal table ids: %w", err)
	}
	if startsAt.Valid {
		if t, err := time.Parse(time.RFC3339, startsAt.String); err == nil {
			r.StartsAt = t
		}
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		r.CreatedAt = t
	}
	return r, nil
}
