package photo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/stayinn/stayinn-api/internal/pkg/imaging"
	"github.com/stayinn/stayinn-api/internal/pkg/storage"
)

// RoomChecker verifies a room exists before photos attach to it
type RoomChecker interface {
	RoomExists(ctx context.Context, roomID uuid.UUID) (bool, error)
}

// Service handles room photo uploads and gallery access
type Service struct {
	repo      Repository
	rooms     RoomChecker
	store     storage.Storage
	processor *imaging.Processor
	maxBytes  int64
}

// NewService creates photo service
func NewService(repo Repository, rooms RoomChecker, store storage.Storage, processor *imaging.Processor, maxBytes int64) *Service {
	return &Service{
		repo:      repo,
		rooms:     rooms,
		store:     store,
		processor: processor,
		maxBytes:  maxBytes,
	}
}

// Upload processes an uploaded image and stores the original plus a
// thumbnail under the room's key prefix. The thumbnail is best-effort
// metadata for galleries; the original is authoritative.
func (s *Service) Upload(ctx context.Context, roomID uuid.UUID, reader io.Reader, size int64) (*RoomPhoto, error) {
	if s.maxBytes > 0 && size > s.maxBytes {
		return nil, ErrImageTooLarge
	}

	exists, err := s.rooms.RoomExists(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrRoomNotFound
	}

	if s.maxBytes > 0 {
		reader = io.LimitReader(reader, s.maxBytes+1)
	}
	img, err := s.processor.Process(reader)
	if err != nil {
		return nil, ErrInvalidImage
	}

	id := uuid.New()
	ext := imaging.Ext(img.ContentType)
	key := fmt.Sprintf("rooms/%s/%s%s", roomID, id, ext)
	thumbKey := fmt.Sprintf("rooms/%s/%s_thumb%s", roomID, id, ext)

	if err := s.store.Save(ctx, key, bytes.NewReader(img.Original), img.ContentType); err != nil {
		return nil, fmt.Errorf("save original: %w", err)
	}
	if err := s.store.Save(ctx, thumbKey, bytes.NewReader(img.Thumbnail), img.ContentType); err != nil {
		_ = s.store.Delete(ctx, key)
		return nil, fmt.Errorf("save thumbnail: %w", err)
	}

	p := &RoomPhoto{
		ID:          id,
		RoomID:      roomID,
		StorageKey:  key,
		ThumbKey:    thumbKey,
		ContentType: img.ContentType,
		SizeBytes:   int64(len(img.Original)),
		Width:       img.Width,
		Height:      img.Height,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		_ = s.store.Delete(ctx, key)
		_ = s.store.Delete(ctx, thumbKey)
		return nil, err
	}

	log.Info().
		Str("photo_id", id.String()).
		Str("room_id", roomID.String()).
		Int("width", img.Width).
		Int("height", img.Height).
		Msg("Room photo uploaded")

	return p, nil
}

// ListByRoom returns the gallery of a room
func (s *Service) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*RoomPhoto, error) {
	exists, err := s.rooms.RoomExists(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrRoomNotFound
	}
	return s.repo.ListByRoom(ctx, roomID)
}

// Delete removes a photo record and its stored objects
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPhotoNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Storage cleanup after the row is gone; orphan objects are harmless.
	if err := s.store.Delete(ctx, p.StorageKey); err != nil {
		log.Warn().Err(err).Str("key", p.StorageKey).Msg("Failed to delete photo object")
	}
	if p.ThumbKey != "" {
		if err := s.store.Delete(ctx, p.ThumbKey); err != nil {
			log.Warn().Err(err).Str("key", p.ThumbKey).Msg("Failed to delete thumbnail object")
		}
	}
	return nil
}

// ToResponse resolves storage URLs for a photo
func (s *Service) ToResponse(p *RoomPhoto) *Response {
	return &Response{
		ID:          p.ID.String(),
		RoomID:      p.RoomID.String(),
		URL:         s.store.GetURL(p.StorageKey),
		ThumbURL:    s.store.GetURL(p.ThumbKey),
		ContentType: p.ContentType,
		Width:       p.Width,
		Height:      p.Height,
	}
}

// ToResponses resolves storage URLs for a photo slice
func (s *Service) ToResponses(photos []*RoomPhoto) []*Response {
	out := make([]*Response, 0, len(photos))
	for _, p := range photos {
		out = append(out, s.ToResponse(p))
	}
	return out
}
