package photo

import "errors"

var (
	ErrPhotoNotFound = errors.New("photo not found")
	ErrRoomNotFound  = errors.New("room not found")
	ErrInvalidImage  = errors.New("file is not a valid image")
	ErrImageTooLarge = errors.New("image exceeds the maximum upload size")
)
