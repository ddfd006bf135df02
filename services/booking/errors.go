package booking

import "hotelsupport/models"

func roomNotFound(roomID string) error {
	return models.NewNotFound("Room %s does not exist.", roomID)
}

func roomUnavailable(roomID string) error {
	return models.NewNotAvailable("Room %s is not available.", roomID)
}

func bookingNotFound(bookingID string) error {
	return models.NewNotFound("No booking found with ID: %s", bookingID)
}
