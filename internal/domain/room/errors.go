package room

import "errors"

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomNumberTaken = errors.New("a room with this number already exists")
)
