package issues

import (
	"context"

	"hotelsupport/models"
)

// IssueService defines the issue handler's ticket operations on one session.
type IssueService interface {
	CreateTicket(ctx context.Context, sessionID, userName, description string) (*models.Ticket, error)
	ViewStatus(ctx context.Context, sessionID, ticketID string) (*models.Ticket, error)
	Resolve(ctx context.Context, sessionID, ticketID, notes string) (*models.Ticket, error)
}
