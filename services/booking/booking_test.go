package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"hotelsupport/config"
	"hotelsupport/models"
	"hotelsupport/services/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLedger(t *testing.T, rooms []config.RoomSeed) (*DefaultRoomLedgerService, *session.Manager, string) {
	t.Helper()
	mgr := session.NewManager(session.NewMemoryStore(), rooms, "User", zap.NewNop())
	sess, err := mgr.Start(context.Background(), "")
	require.NoError(t, err)

	svc := NewRoomLedgerService(mgr, zap.NewNop())
	svc.Now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc, mgr, sess.ID
}

// assertAvailabilityInvariant checks that a room is unavailable exactly when
// one live booking references it.
func assertAvailabilityInvariant(t *testing.T, mgr *session.Manager, sessionID string) {
	t.Helper()
	sess, err := mgr.View(context.Background(), sessionID)
	require.NoError(t, err)

	refs := map[string]int{}
	for _, b := range sess.RecentBookings {
		refs[b.RoomID]++
	}
	for id, room := range sess.Rooms {
		if room.Available {
			assert.Zero(t, refs[id], "available room %s has bookings", id)
		} else {
			assert.Equal(t, 1, refs[id], "unavailable room %s must have exactly one booking", id)
		}
	}

	seen := map[string]bool{}
	for _, b := range sess.RecentBookings {
		assert.False(t, seen[b.ID], "duplicate booking id %s", b.ID)
		seen[b.ID] = true
	}
}

func TestReserveThenCheckAvailability(t *testing.T) {
	svc, mgr, sid := newLedger(t, []config.RoomSeed{{ID: "room_101", Type: "single", Price: 100}})
	ctx := context.Background()

	b, err := svc.Reserve(ctx, sid, "room_101", "Amina")
	require.NoError(t, err)
	assert.Len(t, b.ID, 8)
	assert.Equal(t, "room_101", b.RoomID)
	assert.Equal(t, "single", b.RoomType)
	assert.Equal(t, 100.0, b.TotalCost)
	assert.Equal(t, "Amina", b.GuestName)
	assert.Equal(t, models.BookingStatusConfirmed, b.Status)

	_, err = svc.CheckAvailability(ctx, sid, "room_101")
	assert.ErrorIs(t, err, models.ErrNotAvailable)

	assertAvailabilityInvariant(t, mgr, sid)
}

func TestReserveUnknownRoom(t *testing.T) {
	svc, mgr, sid := newLedger(t, config.DefaultRooms)
	ctx := context.Background()
	before, err := mgr.View(ctx, sid)
	require.NoError(t, err)

	_, err = svc.Reserve(ctx, sid, "room_999", "X")
	assert.ErrorIs(t, err, models.ErrNotFound)

	after, err := mgr.View(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, before.Rooms, after.Rooms)
	assert.Empty(t, after.RecentBookings)
}

func TestReserveUnavailableRoomRejected(t *testing.T) {
	svc, mgr, sid := newLedger(t, config.DefaultRooms)
	ctx := context.Background()

	_, err := svc.Reserve(ctx, sid, "room_102", "Amina")
	require.NoError(t, err)

	_, err = svc.Reserve(ctx, sid, "room_102", "Omar")
	assert.ErrorIs(t, err, models.ErrNotAvailable)

	sess, err := mgr.View(ctx, sid)
	require.NoError(t, err)
	assert.Len(t, sess.RecentBookings, 1)
	assertAvailabilityInvariant(t, mgr, sid)
}

func TestReserveTwoRooms(t *testing.T) {
	svc, mgr, sid := newLedger(t, config.DefaultRooms)
	ctx := context.Background()

	first, err := svc.Reserve(ctx, sid, "room_101", "Amina")
	require.NoError(t, err)
	second, err := svc.Reserve(ctx, sid, "room_102", "Amina")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 100.0, first.TotalCost)
	assert.Equal(t, 150.0, second.TotalCost)

	sess, err := mgr.View(ctx, sid)
	require.NoError(t, err)
	assert.Len(t, sess.RecentBookings, 2)
	assertAvailabilityInvariant(t, mgr, sid)
}

func TestReserveFallsBackToSessionUserName(t *testing.T) {
	svc, mgr, sid := newLedger(t, config.DefaultRooms)
	ctx := context.Background()
	_, err := mgr.Update(ctx, sid, func(s *models.Session) error {
		s.UserName = "Layla"
		return nil
	})
	require.NoError(t, err)

	b, err := svc.Reserve(ctx, sid, "room_104", "  ")
	require.NoError(t, err)
	assert.Equal(t, "Layla", b.GuestName)
}

func TestRoomIDsAreCaseSensitive(t *testing.T) {
	svc, _, sid := newLedger(t, config.DefaultRooms)

	_, err := svc.CheckAvailability(context.Background(), sid, "ROOM_101")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCancelRestoresBookedRoom(t *testing.T) {
	svc, mgr, sid := newLedger(t, config.DefaultRooms)
	ctx := context.Background()

	keep, err := svc.Reserve(ctx, sid, "room_101", "Amina")
	require.NoError(t, err)
	drop, err := svc.Reserve(ctx, sid, "room_104", "Amina")
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, sid, drop.ID)
	require.NoError(t, err)
	assert.Equal(t, drop.ID, cancelled.ID)

	info, err := svc.CheckAvailability(ctx, sid, "room_104")
	require.NoError(t, err)
	assert.Equal(t, "single", info.Type)

	_, err = svc.CheckAvailability(ctx, sid, "room_101")
	assert.ErrorIs(t, err, models.ErrNotAvailable)

	got, err := svc.Lookup(ctx, sid, keep.ID)
	require.NoError(t, err)
	assert.Equal(t, keep.ID, got.ID)

	_, err = svc.Lookup(ctx, sid, drop.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assertAvailabilityInvariant(t, mgr, sid)
}

func TestCancelUnknownBookingLeavesStateUnchanged(t *testing.T) {
	svc, mgr, sid := newLedger(t, config.DefaultRooms)
	ctx := context.Background()

	_, err := svc.Reserve(ctx, sid, "room_101", "Amina")
	require.NoError(t, err)
	before, err := mgr.View(ctx, sid)
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, sid, "nope1234")
	assert.ErrorIs(t, err, models.ErrNotFound)

	after, err := mgr.View(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, before.Rooms, after.Rooms)
	assert.Equal(t, before.RecentBookings, after.RecentBookings)
}

func TestLookupEmptyID(t *testing.T) {
	svc, _, sid := newLedger(t, config.DefaultRooms)

	_, err := svc.Lookup(context.Background(), sid, "")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListRoomsIsSorted(t *testing.T) {
	svc, _, sid := newLedger(t, config.DefaultRooms)

	rooms, err := svc.ListRooms(context.Background(), sid)
	require.NoError(t, err)
	require.Len(t, rooms, 4)
	assert.Equal(t, "room_101", rooms[0].RoomID)
	assert.Equal(t, "room_104", rooms[3].RoomID)
}

func TestUnknownSession(t *testing.T) {
	svc, _, _ := newLedger(t, config.DefaultRooms)

	_, err := svc.Reserve(context.Background(), "missing", "room_101", "Amina")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestConcurrentReserveSameRoom(t *testing.T) {
	svc, mgr, sid := newLedger(t, config.DefaultRooms)
	ctx := context.Background()

	const guests = 50
	var (
		wg          sync.WaitGroup
		successes   atomic.Int32
		unavailable atomic.Int32
	)
	for i := 0; i < guests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Reserve(ctx, sid, "room_101", fmt.Sprintf("guest-%d", i))
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, models.ErrNotAvailable):
				unavailable.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, int32(guests-1), unavailable.Load())

	sess, err := mgr.View(ctx, sid)
	require.NoError(t, err)
	assert.Len(t, sess.RecentBookings, 1)
	assertAvailabilityInvariant(t, mgr, sid)
}

func TestConcurrentReserveAndCancel(t *testing.T) {
	svc, mgr, sid := newLedger(t, config.DefaultRooms)
	ctx := context.Background()

	first, err := svc.Reserve(ctx, sid, "room_102", "Amina")
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := svc.Cancel(ctx, sid, first.ID)
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		_, err := svc.Reserve(ctx, sid, "room_102", "Omar")
		if err != nil {
			assert.ErrorIs(t, err, models.ErrNotAvailable)
		}
	}()
	wg.Wait()

	assertAvailabilityInvariant(t, mgr, sid)
}
