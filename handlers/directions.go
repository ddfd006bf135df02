package handlers

import (
	"net/http"

	"hotelsupport/models"
	"hotelsupport/services/directions"
	"hotelsupport/utils"

	"github.com/gin-gonic/gin"
)

type DirectionsHandler struct {
	Directions directions.DirectionsService
}

func NewDirectionsHandler(svc directions.DirectionsService) *DirectionsHandler {
	return &DirectionsHandler{Directions: svc}
}

// GetDirections answers ?topic=route|nearby|location&origin=... directly.
func (h *DirectionsHandler) GetDirections(c *gin.Context) {
	req := models.DirectionsRequest{
		Topic:  models.Action(c.DefaultQuery("topic", string(models.ActionRoute))),
		Origin: c.Query("origin"),
	}

	guide, err := h.Directions.Guide(c.Request.Context(), req)
	if err != nil {
		utils.ServiceErrorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, guide)
}
