package room

// CreateRoomRequest for admin room creation
type CreateRoomRequest struct {
	Name          string  `json:"name" validate:"required,max=100"`
	RoomNumber    string  `json:"room_number" validate:"required,max=10"`
	RoomType      string  `json:"room_type" validate:"required,room_type"`
	PricePerNight float64 `json:"price_per_night" validate:"gte=0"`
	Capacity      int     `json:"capacity" validate:"required,gte=1,lte=20"`
	Description   string  `json:"description" validate:"max=2000"`
	IsAvailable   *bool   `json:"is_available"`
}

// UpdateRoomRequest for admin room edits; nil fields are left unchanged
type UpdateRoomRequest struct {
	Name          *string  `json:"name" validate:"omitempty,max=100"`
	RoomType      *string  `json:"room_type" validate:"omitempty,room_type"`
	PricePerNight *float64 `json:"price_per_night" validate:"omitempty,gte=0"`
	Capacity      *int     `json:"capacity" validate:"omitempty,gte=1,lte=20"`
	Description   *string  `json:"description" validate:"omitempty,max=2000"`
	IsAvailable   *bool    `json:"is_available"`
}
