package handlers

import (
	"net/http"

	"hotelsupport/models"
	"hotelsupport/services/intelligence"
	"hotelsupport/services/session"
	"hotelsupport/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SessionHandler struct {
	Sessions *session.Manager
	Router   *intelligence.Router
}

func NewSessionHandler(sessions *session.Manager, router *intelligence.Router) *SessionHandler {
	return &SessionHandler{Sessions: sessions, Router: router}
}

type userNameRequest struct {
	UserName string `json:"user_name"`
}

// StartSession opens a conversation with a freshly seeded room ledger.
func (h *SessionHandler) StartSession(c *gin.Context) {
	var req userNameRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
	}

	sess, err := h.Sessions.Start(c.Request.Context(), req.UserName)
	if err != nil {
		utils.ServiceErrorJSON(c, err)
		return
	}
	getLogger(c).Info("Conversation opened", zap.String("session_id", sess.ID))
	c.JSON(http.StatusCreated, sess)
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	sess, err := h.Sessions.View(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ServiceErrorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *SessionHandler) EndSession(c *gin.Context) {
	if err := h.Sessions.End(c.Request.Context(), c.Param("id")); err != nil {
		utils.ServiceErrorJSON(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) UpdateUserName(c *gin.Context) {
	var req userNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	sess, err := h.Router.UpdateUserName(c.Request.Context(), c.Param("id"), req.UserName)
	if err != nil {
		utils.ServiceErrorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"message":   "User name updated to " + sess.UserName,
		"user_name": sess.UserName,
	})
}

// HandleMessage routes one typed guest message.
func (h *SessionHandler) HandleMessage(c *gin.Context) {
	var req models.AIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Router.Handle(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		utils.ServiceErrorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
