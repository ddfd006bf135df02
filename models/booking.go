package models

import "time"

type BookingStatus string

const BookingStatusConfirmed BookingStatus = "confirmed"

// Room is one entry of the session's room ledger.
type Room struct {
	Type      string  `bson:"type" json:"room_type"`
	Price     float64 `bson:"price" json:"price"`
	Available bool    `bson:"available" json:"available"`
}

// RoomInfo is the public view of one ledger entry.
type RoomInfo struct {
	RoomID    string  `json:"room_id"`
	Type      string  `json:"room_type"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}

// Booking represents a confirmed single-day reservation.
type Booking struct {
	ID          string        `bson:"booking_id" json:"booking_id"`     // 8-char id, unique within the session
	RoomID      string        `bson:"room_id" json:"room_id"`           // Room the booking holds
	RoomType    string        `bson:"room_type" json:"room_type"`       // Snapshot of the room type at booking time
	TotalCost   float64       `bson:"total_cost" json:"total_cost"`     // Snapshot of the room price at booking time
	GuestName   string        `bson:"guest_name" json:"guest_name"`     // Falls back to the session user name
	Status      BookingStatus `bson:"status" json:"status"`             // Always "confirmed"; cancellation removes the record
	BookingDate time.Time     `bson:"booking_date" json:"booking_date"` // When the reservation was made
}
