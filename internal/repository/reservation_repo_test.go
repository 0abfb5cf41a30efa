package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"peluqueria/internal/database"
	"peluqueria/internal/domain"
	"peluqueria/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testDBCounter int64

// newTestDB opens a private in-memory sqlite database. A single
// connection keeps concurrent transactions serialized the way a real
// server would serialize them, without sqlite busy errors.
func newTestDB(t *testing.T) *gorm.DB {
	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", n)

	db, err := database.Connect(dsn)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))
	return db
}

type eventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *eventRecorder) Publish(e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) all() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Event, len(r.events))
	copy(out, r.events)
	return out
}

func reservation(name, date, slot string) *domain.Reservation {
	return &domain.Reservation{
		Name:    name,
		Phone:   "+5491155550001",
		Date:    date,
		Slot:    slot,
		Service: domain.ServiceHaircut,
		Status:  domain.ReservationPending,
	}
}

func TestCreateIfFree_Persists(t *testing.T) {
	rec := &eventRecorder{}
	repo := NewReservationRepository(newTestDB(t), rec)
	ctx := context.Background()

	r := reservation("Maria", "2025-06-10", "10:00")
	require.NoError(t, repo.CreateIfFree(ctx, r))

	assert.NotEmpty(t, r.ID)
	assert.False(t, r.CreatedAt.IsZero())
	assert.Equal(t, domain.ReservationPending, r.Status)

	got, err := repo.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria", got.Name)
	assert.Equal(t, "10:00", got.Slot)

	evs := rec.all()
	require.Len(t, evs, 1)
	assert.Equal(t, events.KindCreated, evs[0].Kind)
	assert.Equal(t, "2025-06-10", evs[0].Date)
	assert.Equal(t, r.ID, evs[0].ID)
}

func TestCreateIfFree_Conflict(t *testing.T) {
	repo := NewReservationRepository(newTestDB(t), nil)
	ctx := context.Background()

	require.NoError(t, repo.CreateIfFree(ctx, reservation("Maria", "2025-06-10", "10:00")))

	err := repo.CreateIfFree(ctx, reservation("Carla", "2025-06-10", "10:00"))
	assert.ErrorIs(t, err, ErrSlotTaken)

	// other slots and days are unaffected
	assert.NoError(t, repo.CreateIfFree(ctx, reservation("Carla", "2025-06-10", "10:30")))
	assert.NoError(t, repo.CreateIfFree(ctx, reservation("Carla", "2025-06-11", "10:00")))
}

func TestCreateIfFree_NormalizesAtBoundary(t *testing.T) {
	repo := NewReservationRepository(newTestDB(t), nil)
	ctx := context.Background()

	sloppy := reservation("Maria", "2025-06-10", "10:00:00")
	require.NoError(t, repo.CreateIfFree(ctx, sloppy))
	assert.Equal(t, "10:00", sloppy.Slot)

	// the canonical spelling collides with the normalized row
	err := repo.CreateIfFree(ctx, reservation("Carla", "2025-06-10", "10:00"))
	assert.ErrorIs(t, err, ErrSlotTaken)
}

// N concurrent attempts on the same (date, slot) must yield exactly
// one inserted reservation and N-1 conflicts.
func TestCreateIfFree_ConcurrentSameSlot(t *testing.T) {
	repo := NewReservationRepository(newTestDB(t), nil)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := reservation(fmt.Sprintf("Cliente %d", i), "2025-06-10", "10:00")
			errs[i] = repo.CreateIfFree(context.Background(), r)
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, ErrSlotTaken):
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, attempts-1, lost)

	rows, err := repo.List(context.Background(), Filter{From: "2025-06-10", To: "2025-06-10"})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestUpdateStatus(t *testing.T) {
	rec := &eventRecorder{}
	repo := NewReservationRepository(newTestDB(t), rec)
	ctx := context.Background()

	r := reservation("Maria", "2025-06-10", "10:00")
	require.NoError(t, repo.CreateIfFree(ctx, r))

	require.NoError(t, repo.UpdateStatus(ctx, r.ID, domain.ReservationConfirmed))
	got, err := repo.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationConfirmed, got.Status)

	require.NoError(t, repo.UpdateStatus(ctx, r.ID, domain.ReservationPending))

	evs := rec.all()
	require.Len(t, evs, 3)
	assert.Equal(t, events.KindCreated, evs[0].Kind)
	assert.Equal(t, events.KindConfirmed, evs[1].Kind)
	assert.Equal(t, events.KindUnconfirmed, evs[2].Kind)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, "ghost", domain.ReservationConfirmed), ErrNotFound)
}

func TestDelete_FreesSlotAndStaysGone(t *testing.T) {
	rec := &eventRecorder{}
	repo := NewReservationRepository(newTestDB(t), rec)
	ctx := context.Background()

	r := reservation("Maria", "2025-06-10", "10:00")
	require.NoError(t, repo.CreateIfFree(ctx, r))
	require.NoError(t, repo.Delete(ctx, r.ID))

	// no operation can resurrect a removed reservation
	assert.ErrorIs(t, repo.Delete(ctx, r.ID), ErrNotFound)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, r.ID, domain.ReservationConfirmed), ErrNotFound)
	_, err := repo.GetByID(ctx, r.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// the freed pair is bookable again
	again := reservation("Carla", "2025-06-10", "10:00")
	require.NoError(t, repo.CreateIfFree(ctx, again))
	assert.NotEqual(t, r.ID, again.ID)

	evs := rec.all()
	require.Len(t, evs, 3)
	assert.Equal(t, events.KindDeleted, evs[1].Kind)
}

func TestList_OrderAndFilter(t *testing.T) {
	repo := NewReservationRepository(newTestDB(t), nil)
	ctx := context.Background()

	// inserted deliberately out of order
	for _, rs := range []struct{ date, slot string }{
		{"2025-06-11", "09:30"},
		{"2025-06-10", "15:00"},
		{"2025-06-10", "09:00"},
		{"2025-06-12", "14:00"},
	} {
		require.NoError(t, repo.CreateIfFree(ctx, reservation("X", rs.date, rs.slot)))
	}

	rows, err := repo.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "2025-06-10", rows[0].Date)
	assert.Equal(t, "09:00", rows[0].Slot)
	assert.Equal(t, "15:00", rows[1].Slot)
	assert.Equal(t, "2025-06-11", rows[2].Date)
	assert.Equal(t, "2025-06-12", rows[3].Date)

	rows, err = repo.List(ctx, Filter{From: "2025-06-11", To: "2025-06-11"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "09:30", rows[0].Slot)
}
