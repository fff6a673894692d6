package repository

import (
	"context"
	"time"

	"bookit/internal/model"
	apperrors "bookit/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SlotRepository interface {
	FindByID(ctx context.Context, id int) (*model.Slot, error)
	ListAvailableByExperience(ctx context.Context, experienceID int, from time.Time) ([]*model.Slot, error)

	// Transaction methods
	FindByIDWithLock(ctx context.Context, tx pgx.Tx, slotID int, experienceID int) (*model.Slot, error)
	UpdateAvailability(ctx context.Context, tx pgx.Tx, slotID int, availableCapacity int, status model.SlotStatus) error
}

type SlotRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewSlotRepository(pool *pgxpool.Pool) SlotRepository {
	return &SlotRepositoryImpl{
		pool: pool,
	}
}

const slotColumns = `
	id, experience_id, date, time_slot,
	total_capacity, available_capacity, status,
	created_at, updated_at
`

func scanSlot(row pgx.Row) (*model.Slot, error) {
	var slot model.Slot
	err := row.Scan(
		&slot.ID,
		&slot.ExperienceID,
		&slot.Date,
		&slot.TimeSlot,
		&slot.TotalCapacity,
		&slot.AvailableCapacity,
		&slot.Status,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *SlotRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE id = $1
	`

	slot, err := scanSlot(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrSlotNotFound
		}
		return nil, err
	}

	return slot, nil
}

func (r *SlotRepositoryImpl) ListAvailableByExperience(ctx context.Context, experienceID int, from time.Time) ([]*model.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE experience_id = $1
		  AND date >= $2::date
		  AND available_capacity > 0
		  AND status = 'available'
		ORDER BY date ASC, time_slot ASC
	`

	rows, err := r.pool.Query(ctx, query, experienceID, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]*model.Slot, 0)

	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return slots, nil
}

// FindByIDWithLock locks the slot row for the duration of the transaction.
// The lock is scoped to (slot, experience) so a slot id cannot be booked
// against the wrong experience.
func (r *SlotRepositoryImpl) FindByIDWithLock(ctx context.Context, tx pgx.Tx, slotID int, experienceID int) (*model.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE id = $1 AND experience_id = $2
		FOR UPDATE
	`

	slot, err := scanSlot(tx.QueryRow(ctx, query, slotID, experienceID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrSlotNotFound
		}
		return nil, err
	}

	return slot, nil
}

func (r *SlotRepositoryImpl) UpdateAvailability(ctx context.Context, tx pgx.Tx, slotID int, availableCapacity int, status model.SlotStatus) error {
	query := `
		UPDATE slots
		SET available_capacity = $1, status = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := tx.Exec(ctx, query, availableCapacity, status, time.Now().UTC(), slotID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrSlotNotFound
	}

	return nil
}
