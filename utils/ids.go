package utils

import "github.com/google/uuid"

// ShortID returns the 8-character reference handed to guests for bookings
// and tickets.
func ShortID() string {
	return uuid.New().String()[:8]
}

// UniqueShortID draws ShortIDs until taken reports false.
func UniqueShortID(taken func(id string) bool) string {
	for {
		id := ShortID()
		if !taken(id) {
			return id
		}
	}
}
