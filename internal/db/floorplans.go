package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tablo/internal/model"
)

// ErrNoFloorPlan is returned when a restaurant has no stored plan yet.
var ErrNoFloorPlan = errors.New("no floor plan found")

// SaveFloorPlan upserts the plan document and bumps its version. The objects
// are stored as one JSON document; the engine already handed us a complete
// object set, so a partial write is never possible.
func SaveFloorPlan(db *sql.DB, fp model.FloorPlan) (int, error) {
	data, err := json.Marshal(fp.Objects)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal floor plan objects: %w", err)
	}

	lastModified := fp.Meta.LastModified
	if lastModified.IsZero() {
		lastModified = time.Now()
	}

	query := `
		INSERT INTO floor_plans (id, restaurant_id, name, data, version, last_modified)
		VALUES (?, ?, ?, ?, 1, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			data = excluded.data,
			version = floor_plans.version + 1,
			last_modified = excluded.last_modified
	`
	if _, err := db.Exec(query, fp.ID, fp.RestaurantID, fp.Name, string(data), lastModified.UTC().Format(time.RFC3339)); err != nil {
		return 0, fmt.Errorf("failed to save floor plan: %w", err)
	}

	var version int
	if err := db.QueryRow(`SELECT version FROM floor_plans WHERE id = ?`, fp.ID).Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read floor plan version: %w", err)
	}
	return version, nil
}

// GetFloorPlan loads a single plan by id.
func GetFloorPlan(db *sql.DB, id string) (model.FloorPlan, error) {
	row := db.QueryRow(`
		SELECT id, restaurant_id, name, data, version, last_modified
		FROM floor_plans
		WHERE id = ?
	`, id)
	return scanFloorPlan(row)
}

// GetDefaultFloorPlan loads the restaurant's first plan.
func GetDefaultFloorPlan(db *sql.DB, restaurantID string) (model.FloorPlan, error) {
	row := db.QueryRow(`
		SELECT id, restaurant_id, name, data, version, last_modified
		FROM floor_plans
		WHERE restaurant_id = ?
		ORDER BY last_modified DESC
		LIMIT 1
	`, restaurantID)
	return scanFloorPlan(row)
}

// CountFloorPlans returns the number of stored plans.
func CountFloorPlans(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM floor_plans`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count floor plans: %w", err)
	}
	return n, nil
}

func scanFloorPlan(row *sql.Row) (model.FloorPlan, error) {
	var fp model.FloorPlan
	var data string
	var lastModified string
	err := row.Scan(&fp.ID, &fp.RestaurantID, &fp.Name, &data, &fp.Meta.Version, &lastModified)
	if errors.Is(err, sql.ErrNoRows) {
		return model.FloorPlan{}, ErrNoFloorPlan
	}
	if err != nil {
		return model.FloorPlan{}, fmt.Errorf("failed to get floor plan: %w", err)
	}

	if err := json.Unmarshal([]byte(data), &fp.Objects); err != nil {
		return model.FloorPlan{}, fmt.Errorf("failed to unmarshal floor plan objects: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, lastModified); err == nil {
		fp.Meta.LastModified = t
	}
	return fp, nil
}
