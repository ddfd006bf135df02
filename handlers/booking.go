package handlers

import (
	"net/http"

	"hotelsupport/services/booking"
	"hotelsupport/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the room ledger directly, bypassing the router.
type BookingHandler struct {
	Bookings booking.RoomLedgerService
}

func NewBookingHandler(bookings booking.RoomLedgerService) *BookingHandler {
	return &BookingHandler{Bookings: bookings}
}

type reserveRequest struct {
	RoomID    string `json:"room_id" binding:"required"`
	GuestName string `json:"guest_name"`
}

func (h *BookingHandler) ListRooms(c *gin.Context) {
	rooms, err := h.Bookings.ListRooms(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ServiceErrorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

func (h *BookingHandler) CheckRoom(c *gin.Context) {
	room, err := h.Bookings.CheckAvailability(c.Request.Context(), c.Param("id"), c.Param("roomID"))
	if err != nil {
		utils.ServiceErrorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *BookingHandler) Reserve(c *gin.Context) {
	var req reserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Bookings.Reserve(c.Request.Context(), c.Param("id"), req.RoomID, req.GuestName)
	if err != nil {
		utils.ServiceErrorJSON(c, err)
		return
	}
	getLogger(c).Info("Room reserved", zap.String("booking_id", b.ID), zap.String("room_id", b.RoomID))
	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Bookings.Lookup(c.Request.Context(), c.Param("id"), c.Param("bookingID"))
	if err != nil {
		utils.ServiceErrorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	b, err := h.Bookings.Cancel(c.Request.Context(), c.Param("id"), c.Param("bookingID"))
	if err != nil {
		utils.ServiceErrorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Booking with ID " + b.ID + " has been cancelled.",
		"booking": b,
	})
}
