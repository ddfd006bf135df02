package booking

import (
	"context"
	"strings"
	"time"

	"hotelsupport/models"
	"hotelsupport/services/session"
	"hotelsupport/utils"

	"go.uber.org/zap"
)

// DefaultRoomLedgerService implements RoomLedgerService on top of the
// session manager. Room and booking ids match exactly and case-sensitively.
type DefaultRoomLedgerService struct {
	Sessions *session.Manager
	Logger   *zap.Logger
	Now      func() time.Time
}

func NewRoomLedgerService(sessions *session.Manager, logger *zap.Logger) *DefaultRoomLedgerService {
	return &DefaultRoomLedgerService{
		Sessions: sessions,
		Logger:   logger,
		Now:      time.Now,
	}
}

// ListRooms returns the whole ledger, booked rooms included.
func (s *DefaultRoomLedgerService) ListRooms(ctx context.Context, sessionID string) ([]models.RoomInfo, error) {
	sess, err := s.Sessions.View(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	rooms := make([]models.RoomInfo, 0, len(sess.Rooms))
	for _, id := range sess.RoomIDs() {
		room := sess.Rooms[id]
		rooms = append(rooms, models.RoomInfo{RoomID: id, Type: room.Type, Price: room.Price, Available: room.Available})
	}
	return rooms, nil
}

func (s *DefaultRoomLedgerService) CheckAvailability(ctx context.Context, sessionID, roomID string) (*models.RoomInfo, error) {
	sess, err := s.Sessions.View(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	room, ok := sess.Rooms[roomID]
	if !ok {
		return nil, roomNotFound(roomID)
	}
	if !room.Available {
		return nil, roomUnavailable(roomID)
	}
	return &models.RoomInfo{RoomID: roomID, Type: room.Type, Price: room.Price, Available: true}, nil
}

// Reserve books an available room. Finding the room, flipping its
// availability and appending the booking happen in one session update.
func (s *DefaultRoomLedgerService) Reserve(ctx context.Context, sessionID, roomID, guestName string) (*models.Booking, error) {
	var booking models.Booking
	_, err := s.Sessions.Update(ctx, sessionID, func(sess *models.Session) error {
		room, ok := sess.Rooms[roomID]
		if !ok {
			return roomNotFound(roomID)
		}
		if !room.Available {
			return roomUnavailable(roomID)
		}

		guest := strings.TrimSpace(guestName)
		if guest == "" {
			guest = sess.UserName
		}

		booking = models.Booking{
			ID: utils.UniqueShortID(func(id string) bool {
				return sess.BookingIndex(id) >= 0
			}),
			RoomID:      roomID,
			RoomType:    room.Type,
			TotalCost:   room.Price,
			GuestName:   guest,
			Status:      models.BookingStatusConfirmed,
			BookingDate: s.Now(),
		}

		room.Available = false
		sess.Rooms[roomID] = room
		sess.RecentBookings = append(sess.RecentBookings, booking)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("Room reserved",
		zap.String("session_id", sessionID),
		zap.String("booking_id", booking.ID),
		zap.String("room_id", roomID),
		zap.String("guest", booking.GuestName),
		zap.Float64("total_cost", booking.TotalCost),
	)
	return &booking, nil
}

func (s *DefaultRoomLedgerService) Lookup(ctx context.Context, sessionID, bookingID string) (*models.Booking, error) {
	sess, err := s.Sessions.View(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	i := sess.BookingIndex(bookingID)
	if bookingID == "" || i < 0 {
		return nil, bookingNotFound(bookingID)
	}
	b := sess.RecentBookings[i]
	return &b, nil
}

// Cancel removes the booking and frees the room the booking itself
// references.
func (s *DefaultRoomLedgerService) Cancel(ctx context.Context, sessionID, bookingID string) (*models.Booking, error) {
	var cancelled models.Booking
	_, err := s.Sessions.Update(ctx, sessionID, func(sess *models.Session) error {
		i := sess.BookingIndex(bookingID)
		if bookingID == "" || i < 0 {
			return bookingNotFound(bookingID)
		}
		cancelled = sess.RecentBookings[i]

		if room, ok := sess.Rooms[cancelled.RoomID]; ok {
			room.Available = true
			sess.Rooms[cancelled.RoomID] = room
		}
		sess.RecentBookings = append(sess.RecentBookings[:i], sess.RecentBookings[i+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("Booking cancelled",
		zap.String("session_id", sessionID),
		zap.String("booking_id", bookingID),
		zap.String("room_id", cancelled.RoomID),
	)
	return &cancelled, nil
}
