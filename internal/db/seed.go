package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tablo/internal/model"
)

// SeedDemo creates a demo floor plan and a handful of reservations for a
// fresh database so the editor opens onto something visible. Returns the
// plan id.
func SeedDemo(db *sql.DB, restaurantID string) (string, error) {
	now := time.Now()
	plan := model.FloorPlan{
		ID:           uuid.NewString(),
		RestaurantID: restaurantID,
		Name:         "Main dining room",
		Meta:         model.PlanMeta{LastModified: now},
	}

	table := func(number int, x, y float64, shape model.TableShape, minSeats, maxSeats int) model.RestaurantObject {
		return model.RestaurantObject{
			ID:       fmt.Sprintf("table_%d", number),
			Kind:     model.KindTable,
			Position: model.GridCoordinate{GridX: x, GridY: y},
			Size:     model.GridSize{Width: 3, Height: 3},
			Meta:     model.ObjectMeta{Created: now, LastModified: now, CreatedBy: "seed"},
			Table: &model.TableAttrs{
				Number:   number,
				SubType:  "standard",
				Shape:    shape,
				Seats:    minSeats + 2,
				MinSeats: minSeats,
				MaxSeats: maxSeats,
				Status:   model.TableAvailable,
			},
		}
	}

	plan.Objects = []model.RestaurantObject{
		table(1, -8, -6, model.ShapeSquare, 2, 4),
		table(2, -2, -6, model.ShapeSquare, 2, 4),
		table(3, 4, -6, model.ShapeRound, 2, 6),
		table(4, -8, 0, model.ShapeRectangle, 4, 8),
		table(5, -2, 0, model.ShapeRectangle, 4, 8),
		table(6, 4, 0, model.ShapeRound, 2, 6),
		table(7, -5, 6, model.ShapeRectangle, 6, 10),
		table(8, 2, 6, model.ShapeSquare, 2, 4),
		{
			ID:       "wall_north",
			Kind:     model.KindWall,
			Position: model.GridCoordinate{GridX: -2, GridY: -10},
			Size:     model.GridSize{Width: 22, Height: 1},
			Meta:     model.ObjectMeta{Created: now, LastModified: now, CreatedBy: "seed"},
		},
		{
			ID:       "door_main",
			Kind:     model.KindDoor,
			Position: model.GridCoordinate{GridX: 9, GridY: -10},
			Size:     model.GridSize{Width: 2, Height: 1},
			Meta:     model.ObjectMeta{Created: now, LastModified: now, CreatedBy: "seed"},
		},
	}

	if _, err := SaveFloorPlan(db, plan); err != nil {
		return "", err
	}

	tonight := time.Date(now.Year(), now.Month(), now.Day(), 18, 0, 0, 0, now.Location())
	demo := []model.Reservation{
		{
			ID: uuid.NewString(), RestaurantID: restaurantID, GuestName: "Harper",
			PartySize: 2, TableIDs: []string{"table_1"},
			StartsAt: tonight, DurationMin: 120, Status: model.ResConfirmed,
		},
		{
			ID: uuid.NewString(), RestaurantID: restaurantID, GuestName: "Okafor",
			PartySize: 6, TableIDs: []string{"table_7"},
			StartsAt: tonight.Add(30 * time.Minute), DurationMin: 150, Status: model.ResSeated,
		},
		{
			ID: uuid.NewString(), RestaurantID: restaurantID, GuestName: "Lindqvist",
			PartySize: 4, TableIDs: nil,
			StartsAt: tonight.Add(2 * time.Hour), DurationMin: 120, Status: model.ResPending,
		},
	}
	for _, r := range demo {
		if err := InsertReservation(db, r); err != nil {
			return "", err
		}
	}

	return plan.ID, nil
}
