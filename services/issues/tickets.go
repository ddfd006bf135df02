package issues

import (
	"context"
	"strings"
	"time"

	"hotelsupport/models"
	"hotelsupport/services/notification"
	"hotelsupport/services/session"
	"hotelsupport/utils"

	"go.uber.org/zap"
)

// DefaultIssueService keeps open tickets in the session's pending queue.
// Resolving a ticket removes it from the queue; the resolved record is
// returned to the caller and announced to staff.
type DefaultIssueService struct {
	Sessions *session.Manager
	Notifier notification.Notifier
	Logger   *zap.Logger
	Now      func() time.Time
}

func NewIssueService(sessions *session.Manager, notifier notification.Notifier, logger *zap.Logger) *DefaultIssueService {
	if notifier == nil {
		notifier = notification.NopNotifier{}
	}
	return &DefaultIssueService{
		Sessions: sessions,
		Notifier: notifier,
		Logger:   logger,
		Now:      time.Now,
	}
}

func (s *DefaultIssueService) CreateTicket(ctx context.Context, sessionID, userName, description string) (*models.Ticket, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, models.NewInvalidInput("An issue description is required.")
	}

	var ticket models.Ticket
	_, err := s.Sessions.Update(ctx, sessionID, func(sess *models.Session) error {
		name := strings.TrimSpace(userName)
		if name == "" {
			name = sess.UserName
		}
		ticket = models.Ticket{
			ID: utils.UniqueShortID(func(id string) bool {
				return sess.TicketIndex(id) >= 0
			}),
			UserName:         name,
			IssueDescription: description,
			Status:           models.TicketStatusOpen,
			CreatedAt:        s.Now(),
		}
		sess.PendingIssues = append(sess.PendingIssues, ticket)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("Issue ticket created",
		zap.String("session_id", sessionID),
		zap.String("ticket_id", ticket.ID),
		zap.String("user", ticket.UserName),
	)
	if err := s.Notifier.TicketOpened(ctx, sessionID, ticket); err != nil {
		s.Logger.Warn("Failed to notify staff", zap.String("ticket_id", ticket.ID), zap.Error(err))
	}
	return &ticket, nil
}

func (s *DefaultIssueService) ViewStatus(ctx context.Context, sessionID, ticketID string) (*models.Ticket, error) {
	sess, err := s.Sessions.View(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	i := sess.TicketIndex(ticketID)
	if ticketID == "" || i < 0 {
		return nil, ticketNotFound(ticketID)
	}
	t := sess.PendingIssues[i]
	return &t, nil
}

func (s *DefaultIssueService) Resolve(ctx context.Context, sessionID, ticketID, notes string) (*models.Ticket, error) {
	var resolved models.Ticket
	_, err := s.Sessions.Update(ctx, sessionID, func(sess *models.Session) error {
		i := sess.TicketIndex(ticketID)
		if ticketID == "" || i < 0 {
			return ticketNotFound(ticketID)
		}
		resolved = sess.PendingIssues[i]
		sess.PendingIssues = append(sess.PendingIssues[:i], sess.PendingIssues[i+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	at := s.Now()
	resolved.Status = models.TicketStatusResolved
	resolved.ResolutionNotes = strings.TrimSpace(notes)
	resolved.ResolvedAt = &at

	s.Logger.Info("Issue ticket resolved",
		zap.String("session_id", sessionID),
		zap.String("ticket_id", ticketID),
	)
	if err := s.Notifier.TicketResolved(ctx, sessionID, resolved); err != nil {
		s.Logger.Warn("Failed to notify staff", zap.String("ticket_id", ticketID), zap.Error(err))
	}
	return &resolved, nil
}

func ticketNotFound(ticketID string) error {
	return models.NewNotFound("No ticket found with ID: %s", ticketID)
}
