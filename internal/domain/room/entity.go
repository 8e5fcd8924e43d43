package room

import (
	"time"

	"github.com/google/uuid"
)

// Room represents a bookable hotel room (matches rooms table).
// IsAvailable is a directory-level switch meaning "offered for booking
// at all", independent of whether specific dates are taken.
type Room struct {
	ID            uuid.UUID `db:"id"`
	Name          string    `db:"name"`
	RoomNumber    string    `db:"room_number"`
	RoomType      string    `db:"room_type"`
	PricePerNight float64   `db:"price_per_night"`
	Capacity      int       `db:"capacity"`
	Description   string    `db:"description"`
	IsAvailable   bool      `db:"is_available"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// Response is the public representation of a room
type Response struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	RoomNumber    string  `json:"room_number"`
	RoomType      string  `json:"room_type"`
	PricePerNight float64 `json:"price_per_night"`
	Capacity      int     `json:"capacity"`
	Description   string  `json:"description,omitempty"`
	IsAvailable   bool    `json:"is_available"`
}

// ToResponse converts entity to response
func (r *Room) ToResponse() *Response {
	return &Response{
		ID:            r.ID.String(),
		Name:          r.Name,
		RoomNumber:    r.RoomNumber,
		RoomType:      r.RoomType,
		PricePerNight: r.PricePerNight,
		Capacity:      r.Capacity,
		Description:   r.Description,
		IsAvailable:   r.IsAvailable,
	}
}

// ToResponses converts a slice of rooms
func ToResponses(rooms []*Room) []*Response {
	out := make([]*Response, len(rooms))
	for i, rm := range rooms {
		out[i] = rm.ToResponse()
	}
	return out
}
