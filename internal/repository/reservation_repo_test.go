package repository

import (
	"context"
	"testing"
	"time"

	"renthub/internal/domain"

	"github.com/stretchr/testify/assert"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: ":memory:"}),
		&gorm.Config{},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	return db
}

func testReservation(t *testing.T, listingID int64, startOffsetDays, lengthDays int) *domain.Reservation {
	t.Helper()

	start := time.Now().UTC().AddDate(0, 0, 30+startOffsetDays)
	total, err := domain.NewPrice(30000, domain.DefaultCurrency)
	assert.NoError(t, err)
	deposit, err := domain.NewPrice(50000, domain.DefaultCurrency)
	assert.NoError(t, err)

	res, err := domain.NewReservation(listingID, 7, 1, start, start.AddDate(0, 0, lengthDays), 1, total, deposit, "")
	assert.NoError(t, err)
	return res
}

func TestReservationRepository_CreateIfAvailable_RejectsOverlap(t *testing.T) {
	repo := NewReservationRepository(newTestDB(t))
	ctx := context.Background()

	first := testReservation(t, 42, 0, 5)
	assert.NoError(t, repo.CreateIfAvailable(ctx, first))
	assert.NotZero(t, first.ID)

	// overlaps [start, start+5) on the same listing
	overlapping := testReservation(t, 42, 3, 5)
	err := repo.CreateIfAvailable(ctx, overlapping)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// same dates on another listing are fine
	otherListing := testReservation(t, 43, 3, 5)
	assert.NoError(t, repo.CreateIfAvailable(ctx, otherListing))

	// half-open ranges: checking in exactly when the first stay checks out
	backToBack := testReservation(t, 42, 5, 3)
	backToBack.StartDate = first.EndDate
	backToBack.EndDate = first.EndDate.AddDate(0, 0, 3)
	assert.NoError(t, repo.CreateIfAvailable(ctx, backToBack))
}

func TestReservationRepository_CreateIfAvailable_IgnoresClosedReservations(t *testing.T) {
	repo := NewReservationRepository(newTestDB(t))
	ctx := context.Background()

	first := testReservation(t, 42, 0, 5)
	assert.NoError(t, repo.CreateIfAvailable(ctx, first))

	stored, err := repo.GetByID(ctx, first.ID)
	assert.NoError(t, err)
	prev := stored.UpdatedAt
	assert.NoError(t, stored.Reject())
	assert.NoError(t, repo.Update(ctx, stored, prev))

	// a rejected reservation no longer blocks the dates
	second := testReservation(t, 42, 0, 5)
	assert.NoError(t, repo.CreateIfAvailable(ctx, second))
}

func TestReservationRepository_UpdateDatesIfAvailable_RejectsOverlap(t *testing.T) {
	repo := NewReservationRepository(newTestDB(t))
	ctx := context.Background()

	first := testReservation(t, 42, 0, 5)
	assert.NoError(t, repo.CreateIfAvailable(ctx, first))
	second := testReservation(t, 42, 10, 3)
	assert.NoError(t, repo.CreateIfAvailable(ctx, second))

	// moving the second reservation onto the first one's dates must fail
	stored, err := repo.GetByID(ctx, second.ID)
	assert.NoError(t, err)
	prev := stored.UpdatedAt
	assert.NoError(t, stored.UpdateDates(first.StartDate, first.EndDate))

	err = repo.UpdateDatesIfAvailable(ctx, stored, prev)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// the row keeps its old dates
	unchanged, err := repo.GetByID(ctx, second.ID)
	assert.NoError(t, err)
	assert.True(t, unchanged.StartDate.Equal(second.StartDate))
}

func TestReservationRepository_UpdateDatesIfAvailable_MovesFreeDates(t *testing.T) {
	repo := NewReservationRepository(newTestDB(t))
	ctx := context.Background()

	res := testReservation(t, 42, 0, 5)
	assert.NoError(t, repo.CreateIfAvailable(ctx, res))

	stored, err := repo.GetByID(ctx, res.ID)
	assert.NoError(t, err)
	prev := stored.UpdatedAt
	newStart := stored.StartDate.AddDate(0, 0, 20)
	newEnd := newStart.AddDate(0, 0, 5)
	assert.NoError(t, stored.UpdateDates(newStart, newEnd))

	assert.NoError(t, repo.UpdateDatesIfAvailable(ctx, stored, prev))

	moved, err := repo.GetByID(ctx, res.ID)
	assert.NoError(t, err)
	assert.True(t, moved.StartDate.Equal(newStart))
	assert.True(t, moved.EndDate.Equal(newEnd))
}

func TestReservationRepository_UpdateDatesIfAvailable_StaleWrite(t *testing.T) {
	repo := NewReservationRepository(newTestDB(t))
	ctx := context.Background()

	res := testReservation(t, 42, 0, 5)
	assert.NoError(t, repo.CreateIfAvailable(ctx, res))

	stored, err := repo.GetByID(ctx, res.ID)
	assert.NoError(t, err)
	stale := stored.UpdatedAt.Add(-time.Hour)
	assert.NoError(t, stored.UpdateDates(stored.StartDate.AddDate(0, 0, 20), stored.StartDate.AddDate(0, 0, 25)))

	err = repo.UpdateDatesIfAvailable(ctx, stored, stale)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
