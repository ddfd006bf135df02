package booking

import (
	"context"

	"hotelsupport/models"
)

// RoomLedgerService defines the booking handler's operations on one session.
type RoomLedgerService interface {
	ListRooms(ctx context.Context, sessionID string) ([]models.RoomInfo, error)
	CheckAvailability(ctx context.Context, sessionID, roomID string) (*models.RoomInfo, error)
	Reserve(ctx context.Context, sessionID, roomID, guestName string) (*models.Booking, error)
	Lookup(ctx context.Context, sessionID, bookingID string) (*models.Booking, error)
	Cancel(ctx context.Context, sessionID, bookingID string) (*models.Booking, error)
}
