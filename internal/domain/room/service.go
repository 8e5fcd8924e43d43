package room

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	listCacheKey = "rooms:list"
	listCacheTTL = 60 * time.Second
)

// Service handles room directory business logic
type Service struct {
	repo  Repository
	redis *redis.Client // nil disables the list cache
}

// NewService creates room service
func NewService(repo Repository, redisClient *redis.Client) *Service {
	return &Service{repo: repo, redis: redisClient}
}

// List returns all rooms, served from the Redis cache when warm
func (s *Service) List(ctx context.Context) ([]*Room, error) {
	if s.redis != nil {
		if data, err := s.redis.Get(ctx, listCacheKey).Bytes(); err == nil {
			var rooms []*Room
			if err := json.Unmarshal(data, &rooms); err == nil {
				return rooms, nil
			}
		}
	}

	rooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(rooms); err == nil {
			s.redis.Set(ctx, listCacheKey, data, listCacheTTL)
		}
	}

	return rooms, nil
}

// GetByID returns a room by id
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rm == nil {
		return nil, ErrRoomNotFound
	}
	return rm, nil
}

// Create adds a room to the directory (admin)
func (s *Service) Create(ctx context.Context, req *CreateRoomRequest) (*Room, error) {
	existing, err := s.repo.GetByNumber(ctx, req.RoomNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrRoomNumberTaken
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	now := time.Now()
	rm := &Room{
		ID:            uuid.New(),
		Name:          req.Name,
		RoomNumber:    req.RoomNumber,
		RoomType:      req.RoomType,
		PricePerNight: req.PricePerNight,
		Capacity:      req.Capacity,
		Description:   req.Description,
		IsAvailable:   available,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, rm); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	log.Info().Str("room_id", rm.ID.String()).Str("room_number", rm.RoomNumber).Msg("Room created")
	return rm, nil
}

// Update edits a room in place; only non-nil request fields change
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateRoomRequest) (*Room, error) {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rm == nil {
		return nil, ErrRoomNotFound
	}

	if req.Name != nil {
		rm.Name = *req.Name
	}
	if req.RoomType != nil {
		rm.RoomType = *req.RoomType
	}
	if req.PricePerNight != nil {
		rm.PricePerNight = *req.PricePerNight
	}
	if req.Capacity != nil {
		rm.Capacity = *req.Capacity
	}
	if req.Description != nil {
		rm.Description = *req.Description
	}
	if req.IsAvailable != nil {
		rm.IsAvailable = *req.IsAvailable
	}

	if err := s.repo.Update(ctx, rm); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	return rm, nil
}

// Delete removes a room from the directory (admin)
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rm == nil {
		return ErrRoomNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateListCache(ctx)
	return nil
}

func (s *Service) invalidateListCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, listCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate room list cache")
	}
}
