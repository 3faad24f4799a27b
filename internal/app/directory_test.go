package app_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/freight-booking-backend/internal/db"
	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/pagination"
	"github.com/nekogravitycat/freight-booking-backend/internal/vessel"
	"github.com/nekogravitycat/freight-booking-backend/internal/voyage"
)

func TestVoyageRepositoryFirstMatchWins(t *testing.T) {
	clearTables(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var oldest string
	require.NoError(t, testPool.QueryRow(ctx,
		"INSERT INTO public.voyages (carrier_voyage_number, service_code, created_at) VALUES ($1, $2, $3) RETURNING id::text",
		"2103S", "FE1", base).Scan(&oldest))
	_, err := testPool.Exec(ctx,
		"INSERT INTO public.voyages (carrier_voyage_number, service_code, created_at) VALUES ($1, $2, $3), ($1, $4, $5)",
		"2103S", "FE2", base.Add(time.Hour), "FE3", base.Add(2*time.Hour))
	require.NoError(t, err)

	repo := voyage.NewPgxRepository(testPool)

	vy, err := repo.FirstByNumber(ctx, "2103S")
	require.NoError(t, err)
	assert.Equal(t, oldest, vy.ID)
	assert.Equal(t, "FE1", vy.ServiceCode)

	byID, err := repo.GetByID(ctx, oldest)
	require.NoError(t, err)
	assert.Equal(t, "2103S", byID.CarrierVoyageNumber)

	_, err = repo.FirstByNumber(ctx, "9999X")
	assert.ErrorIs(t, err, voyage.ErrNotFound)
}

func TestVesselRepositoryLookups(t *testing.T) {
	clearTables(t)
	ctx := context.Background()

	seedVessel(t, "9321483", "Atlantic Star")
	seedVessel(t, "9811000", "Ever Given")
	seedVessel(t, "9811001", "Ever Given")

	repo := vessel.NewPgxRepository(testPool)

	v, err := repo.GetByIMO(ctx, "9321483")
	require.NoError(t, err)
	assert.Equal(t, "Atlantic Star", v.Name)

	_, err = repo.GetByIMO(ctx, "1234567")
	assert.ErrorIs(t, err, vessel.ErrNotFound)

	byID, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "9321483", byID.IMONumber)

	matches, err := repo.ListByName(ctx, "Ever Given")
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	matches, err = repo.ListByName(ctx, "Atlantic")
	require.NoError(t, err)
	assert.Empty(t, matches, "name lookup is exact")

	page, total, err := repo.List(ctx, vessel.ListQuery{
		Name:   "ever",
		Cursor: pagination.Cursor{PageIndex: 0, PageSize: 1, Sort: vessel.DefaultSort},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, page, 1)
}

func TestDirectoryReadsShareTransaction(t *testing.T) {
	clearTables(t)
	ctx := context.Background()

	seedVessel(t, "9321483", "Atlantic Star")
	seedVoyage(t, "2103S")

	vessels := vessel.NewPgxRepository(testPool)
	voyages := voyage.NewPgxRepository(testPool)

	err := db.NewTxManager(testPool).WithinTx(ctx, func(ctx context.Context) error {
		var wg sync.WaitGroup
		for range 10 {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, err := vessels.ListByName(ctx, "Atlantic Star")
				assert.NoError(t, err)
			}()
			go func() {
				defer wg.Done()
				_, err := voyages.FirstByNumber(ctx, "2103S")
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
		return nil
	})
	require.NoError(t, err)
}
