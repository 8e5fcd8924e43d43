package room

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines room data access
type Repository interface {
	Create(ctx context.Context, rm *Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*Room, error)
	GetByNumber(ctx context.Context, number string) (*Room, error)
	Update(ctx context.Context, rm *Room) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Room, error)
	ListAvailableFlagged(ctx context.Context) ([]*Room, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates room repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rm *Room) error {
	query := `
		INSERT INTO rooms (id, name, room_number, room_type, price_per_night, capacity, description, is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		rm.ID, rm.Name, rm.RoomNumber, rm.RoomType, rm.PricePerNight,
		rm.Capacity, rm.Description, rm.IsAvailable, rm.CreatedAt, rm.UpdatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	query := `SELECT * FROM rooms WHERE id = $1`
	var rm Room
	err := r.db.GetContext(ctx, &rm, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rm, nil
}

func (r *repository) GetByNumber(ctx context.Context, number string) (*Room, error) {
	query := `SELECT * FROM rooms WHERE room_number = $1`
	var rm Room
	err := r.db.GetContext(ctx, &rm, query, number)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rm, nil
}

func (r *repository) Update(ctx context.Context, rm *Room) error {
	query := `
		UPDATE rooms SET
			name = $2, room_type = $3, price_per_night = $4,
			capacity = $5, description = $6, is_available = $7, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		rm.ID, rm.Name, rm.RoomType, rm.PricePerNight,
		rm.Capacity, rm.Description, rm.IsAvailable,
	)
	return err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM rooms WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *repository) List(ctx context.Context) ([]*Room, error) {
	query := `SELECT * FROM rooms ORDER BY room_number`
	var rooms []*Room
	if err := r.db.SelectContext(ctx, &rooms, query); err != nil {
		return nil, err
	}
	return rooms, nil
}

// ListAvailableFlagged returns rooms offered for booking at all, ordered by
// room number so responses are reproducible.
func (r *repository) ListAvailableFlagged(ctx context.Context) ([]*Room, error) {
	query := `SELECT * FROM rooms WHERE is_available = TRUE ORDER BY room_number`
	var rooms []*Room
	if err := r.db.SelectContext(ctx, &rooms, query); err != nil {
		return nil, err
	}
	return rooms, nil
}
