package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"hotelsupport/metrics"
	"hotelsupport/models"
)

// Argument keys a Decision may carry.
const (
	ArgRoomID      = "room_id"
	ArgName        = "name"
	ArgBookingID   = "booking_id"
	ArgDescription = "description"
	ArgTicketID    = "ticket_id"
	ArgNotes       = "notes"
	ArgOrigin      = "origin"
)

// Decision is the classifier's untrusted answer for one message.
type Decision struct {
	Intent   models.Intent     `json:"intent"`
	Action   models.Action     `json:"action"`
	Args     map[string]string `json:"args"`
	UserName string            `json:"user_name"`
	Reply    string            `json:"reply"`
}

func (d *Decision) Arg(key string) string {
	if d.Args == nil {
		return ""
	}
	return strings.TrimSpace(d.Args[key])
}

// Classifier maps a message plus a read-only session snapshot to a Decision.
type Classifier interface {
	Classify(ctx context.Context, message string, snapshot *models.Session) (*Decision, error)
}

// snapshotView is the part of a session the classifier is shown.
type snapshotView struct {
	UserName       string                 `json:"user_name"`
	RecentBookings []models.Booking       `json:"recent_bookings"`
	PendingIssues  []models.Ticket        `json:"pending_issues"`
	Rooms          map[string]models.Room `json:"rooms"`
}

// GeminiClassifier asks a language model to route the message.
type GeminiClassifier struct {
	gen Generator
}

func NewGeminiClassifier(gen Generator) *GeminiClassifier {
	return &GeminiClassifier{gen: gen}
}

func (c *GeminiClassifier) Classify(ctx context.Context, message string, snapshot *models.Session) (*Decision, error) {
	state, err := json.MarshalIndent(snapshotView{
		UserName:       snapshot.UserName,
		RecentBookings: snapshot.RecentBookings,
		PendingIssues:  snapshot.PendingIssues,
		Rooms:          snapshot.Rooms,
	}, "", "  ")
	if err != nil {
		return nil, err
	}

	done := metrics.TimeExternalCall("classifier")
	raw, err := c.gen.Generate(ctx, fmt.Sprintf(classifyTemplate, state, message))
	done()
	if err != nil {
		return nil, err
	}

	var d Decision
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &d); err != nil {
		return nil, fmt.Errorf("unparseable classifier answer: %w", err)
	}
	d.Intent = models.Intent(strings.ToLower(strings.TrimSpace(string(d.Intent))))
	d.Action = models.Action(strings.ToLower(strings.TrimSpace(string(d.Action))))
	return &d, nil
}

// stripCodeFence removes a ```json ... ``` wrapper some models add.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}
