package models

import (
	"sort"
	"time"
)

// Session holds all mutable state of one conversation.
type Session struct {
	ID             string          `bson:"_id" json:"session_id"`
	UserName       string          `bson:"user_name" json:"user_name"`
	Rooms          map[string]Room `bson:"rooms" json:"rooms"`
	RecentBookings []Booking       `bson:"recent_bookings" json:"recent_bookings"`
	PendingIssues  []Ticket        `bson:"pending_issues" json:"pending_issues"`
	CreatedAt      time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `bson:"updated_at" json:"updated_at"`
}

// Clone returns a deep copy that shares nothing with s.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Rooms = make(map[string]Room, len(s.Rooms))
	for id, r := range s.Rooms {
		out.Rooms[id] = r
	}
	out.RecentBookings = make([]Booking, len(s.RecentBookings))
	copy(out.RecentBookings, s.RecentBookings)
	out.PendingIssues = make([]Ticket, len(s.PendingIssues))
	for i, t := range s.PendingIssues {
		if t.ResolvedAt != nil {
			at := *t.ResolvedAt
			t.ResolvedAt = &at
		}
		out.PendingIssues[i] = t
	}
	return &out
}

// RoomIDs lists the ledger keys in a stable order.
func (s *Session) RoomIDs() []string {
	ids := make([]string, 0, len(s.Rooms))
	for id := range s.Rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// BookingIndex returns the position of bookingID in RecentBookings or -1.
func (s *Session) BookingIndex(bookingID string) int {
	for i, b := range s.RecentBookings {
		if b.ID == bookingID {
			return i
		}
	}
	return -1
}

// TicketIndex returns the position of ticketID in PendingIssues or -1.
func (s *Session) TicketIndex(ticketID string) int {
	for i, t := range s.PendingIssues {
		if t.ID == ticketID {
			return i
		}
	}
	return -1
}
