package notification

import (
	"context"
	"fmt"

	"hotelsupport/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// Notifier tells hotel staff about ticket activity.
type Notifier interface {
	TicketOpened(ctx context.Context, sessionID string, t models.Ticket) error
	TicketResolved(ctx context.Context, sessionID string, t models.Ticket) error
}

// Sender is the part of the FCM client the notifier needs.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMNotifier publishes ticket events to a staff topic.
type FCMNotifier struct {
	client Sender
	topic  string
	logger *zap.Logger
}

func NewFCMNotifier(client Sender, topic string, logger *zap.Logger) *FCMNotifier {
	return &FCMNotifier{client: client, topic: topic, logger: logger}
}

func (n *FCMNotifier) TicketOpened(ctx context.Context, sessionID string, t models.Ticket) error {
	return n.send(ctx, "New guest issue", fmt.Sprintf("%s: %s", t.UserName, t.IssueDescription), sessionID, t)
}

func (n *FCMNotifier) TicketResolved(ctx context.Context, sessionID string, t models.Ticket) error {
	body := fmt.Sprintf("Ticket %s resolved", t.ID)
	if t.ResolutionNotes != "" {
		body += ": " + t.ResolutionNotes
	}
	return n.send(ctx, "Guest issue resolved", body, sessionID, t)
}

func (n *FCMNotifier) send(ctx context.Context, title, body, sessionID string, t models.Ticket) error {
	msg := &messaging.Message{
		Topic: n.topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{
			"session_id": sessionID,
			"ticket_id":  t.ID,
			"status":     string(t.Status),
		},
	}

	id, err := n.client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("send FCM message: %w", err)
	}
	n.logger.Debug("Staff notified", zap.String("message_id", id), zap.String("ticket_id", t.ID))
	return nil
}

// NopNotifier is used when no Firebase credentials are configured.
type NopNotifier struct{}

func (NopNotifier) TicketOpened(context.Context, string, models.Ticket) error   { return nil }
func (NopNotifier) TicketResolved(context.Context, string, models.Ticket) error { return nil }
