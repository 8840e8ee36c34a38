package model

import "time"

// ObjectKind discriminates the floor-plan object variants. Code that switches
// on a kind must handle every constant below.
type ObjectKind string

const (
	KindTable      ObjectKind = "table"
	KindChair      ObjectKind = "chair"
	KindDecoration ObjectKind = "decoration"
	KindWall       ObjectKind = "wall"
	KindDoor       ObjectKind = "door"
)

// TableShape is the drawn outline of a table.
type TableShape string

const (
	ShapeRectangle TableShape = "rectangle"
	ShapeSquare    TableShape = "square"
	ShapeRound     TableShape = "round"
)

// TableStatus is the operational state of a physical table.
type TableStatus string

const (
	TableAvailable  TableStatus = "available"
	TableOccupied   TableStatus = "occupied"
	TableReserved   TableStatus = "reserved"
	TableOutOfOrder TableStatus = "out_of_order"
)

// GridCoordinate is a position in abstract grid units. Grid units are the
// canonical unit for everything persisted; pixel positions are always derived.
type GridCoordinate struct {
	GridX float64 `json:"grid_x"`
	GridY float64 `json:"grid_y"`
}

// Add returns the coordinate shifted by delta.
func (g GridCoordinate) Add(delta GridCoordinate) GridCoordinate {
	return GridCoordinate{GridX: g.GridX + delta.GridX, GridY: g.GridY + delta.GridY}
}

// GridSize is an object footprint in grid units.
type GridSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CanvasPosition is a pixel-space position. Never persisted.
type CanvasPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CanvasTransform is the viewport camera: pan position, zoom factor and an
// optional rotation.
type CanvasTransform struct {
	Position CanvasPosition `json:"position"`
	Zoom     float64        `json:"zoom"`
	Rotation float64        `json:"rotation,omitempty"`
}

// ObjectMeta carries modification metadata stamped by the mutation engine.
type ObjectMeta struct {
	Created      time.Time `json:"created"`
	LastModified time.Time `json:"last_modified"`
	CreatedBy    string    `json:"created_by,omitempty"`
}

// TableAttrs holds the table-specific fields of a floor-plan object.
// Invariant: MinSeats <= MaxSeats.
type TableAttrs struct {
	Number     int         `json:"number"`
	SubType    string      `json:"sub_type"`
	Shape      TableShape  `json:"shape"`
	Seats      int         `json:"seats"`
	MinSeats   int         `json:"min_seats"`
	MaxSeats   int         `json:"max_seats"`
	Status     TableStatus `json:"status"`
	Combinable bool        `json:"combinable,omitempty"`
}

// RestaurantObject is a single object on the floor plan. Position is the
// object's center. Table is non-nil exactly when Kind == KindTable.
type RestaurantObject struct {
	ID       string         `json:"id"`
	Kind     ObjectKind     `json:"kind"`
	Position GridCoordinate `json:"position"`
	Size     GridSize       `json:"size"`
	Rotation float64        `json:"rotation,omitempty"`
	ZIndex   int            `json:"z_index,omitempty"`
	Meta     ObjectMeta     `json:"meta"`
	Table    *TableAttrs    `json:"table,omitempty"`
}

// IsTable reports whether the object is a table with attributes attached.
func (o RestaurantObject) IsTable() bool {
	return o.Kind == KindTable && o.Table != nil
}

// Capacity returns the largest party the table seats, or 0 for non-tables.
func (o RestaurantObject) Capacity() int {
	if !o.IsTable() {
		return 0
	}
	if o.Table.MaxSeats > 0 {
		return o.Table.MaxSeats
	}
	return o.Table.Seats
}

// PlanMeta is the floor-plan document metadata. Version is bumped by the
// persistence layer on every save.
type PlanMeta struct {
	Version      int       `json:"version"`
	LastModified time.Time `json:"last_modified"`
}

// FloorPlan is the aggregate the canvas engine operates on. The engine never
// stores one; it receives a plan, returns an updated copy through the commit
// callback, and the host persists it.
type FloorPlan struct {
	ID           string             `json:"id"`
	RestaurantID string             `json:"restaurant_id"`
	Name         string             `json:"name"`
	Objects      []RestaurantObject `json:"objects"`
	Meta         PlanMeta           `json:"meta"`
}

// Object looks up an object by id.
func (fp FloorPlan) Object(id string) (RestaurantObject, bool) {
	for _, o := range fp.Objects {
		if o.ID == id {
			return o, true
		}
	}
	return RestaurantObject{}, false
}

// Tables returns the table objects of the plan in document order.
func (fp FloorPlan) Tables() []RestaurantObject {
	var out []RestaurantObject
	for _, o := range fp.Objects {
		if o.IsTable() {
			out = append(out, o)
		}
	}
	return out
}

// ReservationStatus is the lifecycle state of a booking.
type ReservationStatus string

const (
	ResPending    ReservationStatus = "pending"
	ResConfirmed  ReservationStatus = "confirmed"
	ResArrived    ReservationStatus = "arrived"
	ResSeated     ReservationStatus = "seated"
	ResOrdered    ReservationStatus = "ordered"
	ResAppetizers ReservationStatus = "appetizers"
	ResMainCourse ReservationStatus = "main_course"
	ResDessert    ReservationStatus = "dessert"
	ResPayment    ReservationStatus = "payment"
	ResCompleted  ReservationStatus = "completed"
	ResCancelled  ReservationStatus = "cancelled"
	ResNoShow     ReservationStatus = "no_show"
)

// Terminal reports whether the reservation can no longer block a table.
func (s ReservationStatus) Terminal() bool {
	return s == ResCompleted || s == ResCancelled || s == ResNoShow
}

// Reservation is an externally supplied booking fact: a time window, a party
// size and a status. Read-only input to the conflict detector.
type Reservation struct {
	ID           string
	RestaurantID string
	GuestName    string
	PartySize    int
	TableIDs     []string
	StartsAt     time.Time
	DurationMin  int
	Status       ReservationStatus
	CreatedAt    time.Time
}

// AssignedTo reports whether the reservation holds the given table.
func (r Reservation) AssignedTo(tableID string) bool {
	for _, id := range r.TableIDs {
		if id == tableID {
			return true
		}
	}
	return false
}
