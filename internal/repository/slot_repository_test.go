package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookit/internal/model"
	"bookit/internal/repository"
	apperrors "bookit/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotRepository_FindByID(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()
	ctx := context.Background()

	repo := repository.NewSlotRepository(testDB)

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 9999)
		assert.True(t, errors.Is(err, apperrors.ErrSlotNotFound))
	})

	t.Run("found", func(t *testing.T) {
		expID := createTestExperience(t, "Whale Watching", 1000)
		slotID := createTestSlot(t, expID, futureDate(2), "09:00", 5, 5, model.SlotStatusAvailable)

		slot, err := repo.FindByID(ctx, slotID)

		require.NoError(t, err)
		assert.Equal(t, slotID, slot.ID)
		assert.Equal(t, expID, slot.ExperienceID)
		assert.Equal(t, "09:00", slot.TimeSlot)
		assert.Equal(t, 5, slot.TotalCapacity)
		assert.Equal(t, 5, slot.AvailableCapacity)
		assert.Equal(t, model.SlotStatusAvailable, slot.Status)
	})
}

func TestSlotRepository_ListAvailableByExperience(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()
	ctx := context.Background()

	repo := repository.NewSlotRepository(testDB)
	expID := createTestExperience(t, "Whale Watching", 1000)

	keptLater := createTestSlot(t, expID, futureDate(3), "09:00", 5, 5, model.SlotStatusAvailable)
	keptEarlier := createTestSlot(t, expID, futureDate(2), "14:00", 5, 2, model.SlotStatusAvailable)

	// filtered out
	createTestSlot(t, expID, futureDate(-1), "09:00", 5, 5, model.SlotStatusAvailable)
	createTestSlot(t, expID, futureDate(2), "16:00", 5, 0, model.SlotStatusSoldOut)
	createTestSlot(t, expID, futureDate(2), "17:00", 5, 2, model.SlotStatusSoldOut)

	slots, err := repo.ListAvailableByExperience(ctx, expID, time.Now().UTC())

	require.NoError(t, err)
	require.Len(t, slots, 2)
	// ordered by date then time
	assert.Equal(t, keptEarlier, slots[0].ID)
	assert.Equal(t, keptLater, slots[1].ID)
}

func TestSlotRepository_FindByIDWithLock(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()
	ctx := context.Background()

	repo := repository.NewSlotRepository(testDB)
	expID := createTestExperience(t, "Whale Watching", 1000)
	otherExpID := createTestExperience(t, "City Tour", 500)
	slotID := createTestSlot(t, expID, futureDate(2), "09:00", 5, 5, model.SlotStatusAvailable)

	t.Run("locks the matching row", func(t *testing.T) {
		withTx(t, func(tx pgx.Tx) error {
			slot, err := repo.FindByIDWithLock(ctx, tx, slotID, expID)
			if err != nil {
				return err
			}
			assert.Equal(t, slotID, slot.ID)
			return nil
		})
	})

	t.Run("slot under a different experience is not found", func(t *testing.T) {
		tx, err := testDB.BeginTx(ctx, pgx.TxOptions{})
		require.NoError(t, err)
		defer tx.Rollback(ctx)

		_, err = repo.FindByIDWithLock(ctx, tx, slotID, otherExpID)
		assert.True(t, errors.Is(err, apperrors.ErrSlotNotFound))
	})
}

func TestSlotRepository_UpdateAvailability(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()
	ctx := context.Background()

	repo := repository.NewSlotRepository(testDB)
	expID := createTestExperience(t, "Whale Watching", 1000)
	slotID := createTestSlot(t, expID, futureDate(2), "09:00", 5, 5, model.SlotStatusAvailable)

	t.Run("updates capacity and status", func(t *testing.T) {
		withTx(t, func(tx pgx.Tx) error {
			return repo.UpdateAvailability(ctx, tx, slotID, 0, model.SlotStatusSoldOut)
		})

		slot, err := repo.FindByID(ctx, slotID)
		require.NoError(t, err)
		assert.Equal(t, 0, slot.AvailableCapacity)
		assert.Equal(t, model.SlotStatusSoldOut, slot.Status)
		assert.True(t, slot.UpdatedAt.After(slot.CreatedAt))
	})

	t.Run("unknown slot returns not found", func(t *testing.T) {
		tx, err := testDB.BeginTx(ctx, pgx.TxOptions{})
		require.NoError(t, err)
		defer tx.Rollback(ctx)

		err = repo.UpdateAvailability(ctx, tx, 9999, 1, model.SlotStatusAvailable)
		assert.True(t, errors.Is(err, apperrors.ErrSlotNotFound))
	})
}
