package models

import "time"

type TicketStatus string

const (
	TicketStatusOpen     TicketStatus = "open"
	TicketStatusResolved TicketStatus = "resolved"
)

// Ticket is a tracked customer issue. Only open tickets live in the session;
// resolving one removes it and hands back the resolved record.
type Ticket struct {
	ID               string       `bson:"ticket_id" json:"ticket_id"`
	UserName         string       `bson:"user_name" json:"user_name"`
	IssueDescription string       `bson:"issue_description" json:"issue_description"`
	Status           TicketStatus `bson:"status" json:"status"`
	CreatedAt        time.Time    `bson:"created_at" json:"created_at"`
	ResolutionNotes  string       `bson:"resolution_notes,omitempty" json:"resolution_notes,omitempty"`
	ResolvedAt       *time.Time   `bson:"resolved_at,omitempty" json:"resolved_at,omitempty"`
}
