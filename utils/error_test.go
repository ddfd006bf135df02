package utils

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotelsupport/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{models.NewNotFound("Room %s does not exist.", "room_9"), http.StatusNotFound},
		{models.NewNotAvailable("Room %s is not available.", "room_1"), http.StatusConflict},
		{models.NewInvalidInput("missing"), http.StatusBadRequest},
		{models.NewOutOfDomain("only directions"), http.StatusUnprocessableEntity},
		{models.NewExternalFailure("maps", errors.New("boom"), false), http.StatusBadGateway},
		{models.NewExternalFailure("maps", context.DeadlineExceeded, true), http.StatusGatewayTimeout},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}

func TestServiceErrorJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ServiceErrorJSON(c, models.NewNotAvailable("Room %s is not available.", "room_101"))

	assert.Equal(t, http.StatusConflict, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Room room_101 is not available.", body.Message)
	assert.Equal(t, "not_available", body.Code)
}
