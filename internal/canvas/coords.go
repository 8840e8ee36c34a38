package canvas

import (
	"fmt"
	"time"

	"tablo/internal/model"
)

// GridToPixel converts a grid coordinate to canvas pixel space.
func (c Config) GridToPixel(g model.GridCoordinate) model.CanvasPosition {
	return model.CanvasPosition{
		X: c.CanvasCenter.X + g.GridX*c.GridCellSize,
		Y: c.CanvasCenter.Y + g.GridY*c.GridCellSize,
	}
}

// PixelToGrid is the exact inverse of GridToPixel.
func (c Config) PixelToGrid(p model.CanvasPosition) model.GridCoordinate {
	return model.GridCoordinate{
		GridX: (p.X - c.CanvasCenter.X) / c.GridCellSize,
		GridY: (p.Y - c.CanvasCenter.Y) / c.GridCellSize,
	}
}

// LegacyTableRecord is the flat, pixel-unit row shape used by older layout
// exports. Positions and sizes are raw pixels with no center offset.
type LegacyTableRecord struct {
	ID          string  `json:"id"`
	TableNumber int     `json:"table_number"`
	TableType   string  `json:"table_type"`
	Shape       string  `json:"shape"`
	XPosition   float64 `json:"x_position"`
	YPosition   float64 `json:"y_position"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	MinCapacity int     `json:"min_capacity"`
	MaxCapacity int     `json:"max_capacity"`
	IsActive    bool    `json:"is_active"`
}

// FromLegacyRecord maps a legacy row into a canvas table object by dividing
// pixel values by the grid cell size.
func (c Config) FromLegacyRecord(rec LegacyTableRecord, now time.Time) model.RestaurantObject {
	id := rec.ID
	if id == "" {
		id = fmt.Sprintf("table_%d", rec.TableNumber)
	}
	shape := model.TableShape(rec.Shape)
	if shape == "" {
		shape = model.ShapeRectangle
	}
	subType := rec.TableType
	if subType == "" {
		subType = "standard"
	}
	status := model.TableAvailable
	if !rec.IsActive {
		status = model.TableOutOfOrder
	}
	return model.RestaurantObject{
		ID:   id,
		Kind: model.KindTable,
		Position: model.GridCoordinate{
			GridX: rec.XPosition / c.GridCellSize,
			GridY: rec.YPosition / c.GridCellSize,
		},
		Size: model.GridSize{
			Width:  rec.Width / c.GridCellSize,
			Height: rec.Height / c.GridCellSize,
		},
		Meta: model.ObjectMeta{Created: now, LastModified: now},
		Table: &model.TableAttrs{
			Number:   rec.TableNumber,
			SubType:  subType,
			Shape:    shape,
			Seats:    rec.MinCapacity,
			MinSeats: rec.MinCapacity,
			MaxSeats: rec.MaxCapacity,
			Status:   status,
		},
	}
}

// ToLegacyRecord maps a table object back to the flat pixel-unit shape.
// Returns false for non-table objects, which have no legacy representation.
func (c Config) ToLegacyRecord(obj model.RestaurantObject) (LegacyTableRecord, bool) {
	if !obj.IsTable() {
		return LegacyTableRecord{}, false
	}
	return LegacyTableRecord{
		ID:          obj.ID,
		TableNumber: obj.Table.Number,
		TableType:   obj.Table.SubType,
		Shape:       string(obj.Table.Shape),
		XPosition:   obj.Position.GridX * c.GridCellSize,
		YPosition:   obj.Position.GridY * c.GridCellSize,
		Width:       obj.Size.Width * c.GridCellSize,
		Height:      obj.Size.Height * c.GridCellSize,
		MinCapacity: obj.Table.MinSeats,
		MaxCapacity: obj.Table.MaxSeats,
		IsActive:    obj.Table.Status != model.TableOutOfOrder,
	}, true
}
