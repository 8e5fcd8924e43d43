package booking

import (
	"time"

	"github.com/stayinn/stayinn-api/internal/domain/room"
)

// CreateBookingRequest is the payload for POST /bookings
type CreateBookingRequest struct {
	RoomID   string `json:"room_id" validate:"required,uuid"`
	CheckIn  string `json:"check_in_date" validate:"required,dateformat"`
	CheckOut string `json:"check_out_date" validate:"required,dateformat"`
}

// Response is the booking API representation
type Response struct {
	ID         string  `json:"id"`
	RoomID     string  `json:"room_id"`
	CheckIn    string  `json:"check_in_date"`
	CheckOut   string  `json:"check_out_date"`
	Nights     int     `json:"nights"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"total_price"`
	CreatedAt  string  `json:"created_at"`
}

// ToResponse converts booking entity to API response
func (b *Booking) ToResponse() *Response {
	return &Response{
		ID:         b.ID.String(),
		RoomID:     b.RoomID.String(),
		CheckIn:    b.CheckIn.Format(DateLayout),
		CheckOut:   b.CheckOut.Format(DateLayout),
		Nights:     b.Nights(),
		Status:     string(b.Status),
		TotalPrice: b.TotalPrice,
		CreatedAt:  b.CreatedAt.Format(time.RFC3339),
	}
}

// ToResponses converts booking slice to API responses
func ToResponses(bookings []*Booking) []*Response {
	out := make([]*Response, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.ToResponse())
	}
	return out
}

// AvailableRoomsResponse is the payload for GET /rooms/available
type AvailableRoomsResponse struct {
	AvailableRooms []*room.Response `json:"available_rooms"`
	CheckIn        string           `json:"check_in_date"`
	CheckOut       string           `json:"check_out_date"`
}
