package photo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines room photo data access
type Repository interface {
	Create(ctx context.Context, p *RoomPhoto) error
	GetByID(ctx context.Context, id uuid.UUID) (*RoomPhoto, error)
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*RoomPhoto, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates photo repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *RoomPhoto) error {
	query := `
		INSERT INTO room_photos (id, room_id, storage_key, thumb_key, content_type, size_bytes, width, height, created_at)
		VALUES (:id, :room_id, :storage_key, :thumb_key, :content_type, :size_bytes, :width, :height, :created_at)
	`
	_, err := r.db.NamedExecContext(ctx, query, p)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*RoomPhoto, error) {
	query := `SELECT * FROM room_photos WHERE id = $1`
	var p RoomPhoto
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*RoomPhoto, error) {
	query := `SELECT * FROM room_photos WHERE room_id = $1 ORDER BY created_at`
	var photos []*RoomPhoto
	if err := r.db.SelectContext(ctx, &photos, query, roomID); err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM room_photos WHERE id = $1`, id)
	return err
}
