package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallery-backend/internal/domains/year"
	"gallery-backend/internal/storage"
)

var _ storage.Store = (*Store)(nil)

func TestInTxCommitsOnSuccess(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	y := year.NewYear("2025", "1.0")
	err := store.InTx(ctx, func(tx storage.Store) error {
		return tx.Years().Create(ctx, y)
	})
	require.NoError(t, err)

	got, err := store.Years().GetByID(ctx, y.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025", got.Label)
}

func TestInTxRollsBackOnError(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	boom := errors.New("boom")
	y := year.NewYear("2025", "1.0")
	err := store.InTx(ctx, func(tx storage.Store) error {
		if err := tx.Years().Create(ctx, y); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	// The failed transaction left no trace.
	_, err = store.Years().GetByID(ctx, y.ID)
	assert.ErrorIs(t, err, year.ErrYearNotFound)

	years, err := store.Years().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, years)
}

func TestInTxNestedJoinsOpenTransaction(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	boom := errors.New("boom")
	outer := year.NewYear("2024", "1.0")
	inner := year.NewYear("2025", "2.0")

	err := store.InTx(ctx, func(tx storage.Store) error {
		if err := tx.Years().Create(ctx, outer); err != nil {
			return err
		}
		// Nested InTx must see and share the outer transaction.
		if err := tx.InTx(ctx, func(nested storage.Store) error {
			if _, err := nested.Years().GetByID(ctx, outer.ID); err != nil {
				return err
			}
			return nested.Years().Create(ctx, inner)
		}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	// Everything, including the nested write, rolled back together.
	years, err := store.Years().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, years)
}

func TestTransactionIsolation(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	committed := year.NewYear("2023", "1.0")
	require.NoError(t, store.Years().Create(ctx, committed))

	err := store.InTx(ctx, func(tx storage.Store) error {
		fresh := year.NewYear("2024", "2.0")
		if err := tx.Years().Create(ctx, fresh); err != nil {
			return err
		}
		inside, err := tx.Years().List(ctx)
		if err != nil {
			return err
		}
		assert.Len(t, inside, 2)
		return errors.New("abort")
	})
	require.Error(t, err)

	outside, err := store.Years().List(ctx)
	require.NoError(t, err)
	assert.Len(t, outside, 1)
}
