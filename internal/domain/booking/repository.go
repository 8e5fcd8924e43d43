package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines booking ledger data access
type Repository interface {
	// CreateWithAvailabilityCheck inserts the booking only if no live booking
	// on the same room overlaps its range. The check and the insert run in one
	// transaction holding a row lock on the room, so concurrent overlapping
	// creates cannot both succeed. Returns ErrDateConflict on overlap and
	// ErrRoomUnavailable when the room row is gone.
	CreateWithAvailabilityCheck(ctx context.Context, b *Booking) error

	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Booking, error)
	ListLiveByRoom(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) ([]*Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	BookedRoomIDs(ctx context.Context, checkIn, checkOut time.Time) ([]uuid.UUID, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates booking repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateWithAvailabilityCheck(ctx context.Context, b *Booking) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin booking tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bookings per room: concurrent creates for the same room queue
	// on this lock and re-run the overlap check against committed state.
	var roomID uuid.UUID
	err = tx.GetContext(ctx, &roomID, `SELECT id FROM rooms WHERE id = $1 FOR UPDATE`, b.RoomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRoomUnavailable
		}
		return fmt.Errorf("lock room row: %w", err)
	}

	var conflicts int
	err = tx.GetContext(ctx, &conflicts, `
		SELECT COUNT(*) FROM bookings
		WHERE room_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND check_in_date < $3
		  AND check_out_date > $2
	`, b.RoomID, b.CheckIn, b.CheckOut)
	if err != nil {
		return fmt.Errorf("check overlap: %w", err)
	}
	if conflicts > 0 {
		return ErrDateConflict
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO bookings (id, room_id, user_id, check_in_date, check_out_date, status, total_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, b.ID, b.RoomID, b.UserID, b.CheckIn, b.CheckOut, b.Status, b.TotalPrice, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}

	return tx.Commit()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	query := `SELECT * FROM bookings WHERE id = $1`
	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Booking, error) {
	query := `SELECT * FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`
	var bookings []*Booking
	if err := r.db.SelectContext(ctx, &bookings, query, userID); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListLiveByRoom returns the live bookings on a room that overlap the given
// half-open range, the snapshot the availability engine scans.
func (r *repository) ListLiveByRoom(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) ([]*Booking, error) {
	query := `
		SELECT * FROM bookings
		WHERE room_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND check_in_date < $3
		  AND check_out_date > $2
		ORDER BY check_in_date
	`
	var bookings []*Booking
	if err := r.db.SelectContext(ctx, &bookings, query, roomID, checkIn, checkOut); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}

// BookedRoomIDs returns the ids of rooms with any live booking overlapping
// the given half-open range.
func (r *repository) BookedRoomIDs(ctx context.Context, checkIn, checkOut time.Time) ([]uuid.UUID, error) {
	query := `
		SELECT DISTINCT room_id FROM bookings
		WHERE status IN ('pending', 'confirmed')
		  AND check_in_date < $2
		  AND check_out_date > $1
	`
	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, query, checkIn, checkOut); err != nil {
		return nil, err
	}
	return ids, nil
}
