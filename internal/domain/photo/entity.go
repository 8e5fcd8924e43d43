package photo

import (
	"time"

	"github.com/google/uuid"
)

// RoomPhoto represents one stored gallery image of a room
// (matches room_photos table).
type RoomPhoto struct {
	ID          uuid.UUID `db:"id"`
	RoomID      uuid.UUID `db:"room_id"`
	StorageKey  string    `db:"storage_key"`
	ThumbKey    string    `db:"thumb_key"`
	ContentType string    `db:"content_type"`
	SizeBytes   int64     `db:"size_bytes"`
	Width       int       `db:"width"`
	Height      int       `db:"height"`
	CreatedAt   time.Time `db:"created_at"`
}

// Response is the public representation of a room photo
type Response struct {
	ID          string `json:"id"`
	RoomID      string `json:"room_id"`
	URL         string `json:"url"`
	ThumbURL    string `json:"thumb_url"`
	ContentType string `json:"content_type"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}
