package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Session endpoints
	StartSessionHandler   gin.HandlerFunc
	GetSessionHandler     gin.HandlerFunc
	EndSessionHandler     gin.HandlerFunc
	UpdateUserNameHandler gin.HandlerFunc
	MessageHandler        gin.HandlerFunc
	VoiceHandler          gin.HandlerFunc

	// Booking endpoints
	ListRoomsHandler     gin.HandlerFunc
	CheckRoomHandler     gin.HandlerFunc
	ReserveHandler       gin.HandlerFunc
	GetBookingHandler    gin.HandlerFunc
	CancelBookingHandler gin.HandlerFunc

	// Issue endpoints
	CreateTicketHandler  gin.HandlerFunc
	GetTicketHandler     gin.HandlerFunc
	ResolveTicketHandler gin.HandlerFunc

	// Directions endpoints
	DirectionsHandler gin.HandlerFunc
}
