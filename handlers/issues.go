package handlers

import (
	"net/http"

	"hotelsupport/services/issues"
	"hotelsupport/utils"

	"github.com/gin-gonic/gin"
)

type IssueHandler struct {
	Issues issues.IssueService
}

func NewIssueHandler(svc issues.IssueService) *IssueHandler {
	return &IssueHandler{Issues: svc}
}

type createTicketRequest struct {
	Description string `json:"issue_description"`
	UserName    string `json:"user_name"`
}

type resolveTicketRequest struct {
	Notes string `json:"resolution_notes"`
}

// CreateTicket leaves description validation to the issue service so an
// empty description surfaces as invalid_input.
func (h *IssueHandler) CreateTicket(c *gin.Context) {
	var req createTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	t, err := h.Issues.CreateTicket(c.Request.Context(), c.Param("id"), req.UserName, req.Description)
	if err != nil {
		utils.ServiceErrorJSON(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *IssueHandler) GetTicket(c *gin.Context) {
	t, err := h.Issues.ViewStatus(c.Request.Context(), c.Param("id"), c.Param("ticketID"))
	if err != nil {
		utils.ServiceErrorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *IssueHandler) ResolveTicket(c *gin.Context) {
	var req resolveTicketRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
	}

	t, err := h.Issues.Resolve(c.Request.Context(), c.Param("id"), c.Param("ticketID"), req.Notes)
	if err != nil {
		utils.ServiceErrorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}
