package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotelsupport/metrics"
	"hotelsupport/models"
	"hotelsupport/services/booking"
	"hotelsupport/services/directions"
	"hotelsupport/services/issues"
	"hotelsupport/services/session"

	"go.uber.org/zap"
)

const (
	askNameReply     = "May I have your name, please?"
	noInputReply     = "I did not catch that. Could you say it again?"
	classifyFailText = "Sorry, I could not process your request right now. Please try again."
)

// Router is the coordinator: it classifies each message and dispatches it to
// exactly one handler, or answers with a clarifying question. Apart from the
// guest's name it never mutates session state itself.
type Router struct {
	Sessions   *session.Manager
	Classifier Classifier
	Bookings   booking.RoomLedgerService
	Issues     issues.IssueService
	Directions directions.DirectionsService
	Timeout    time.Duration
	Logger     *zap.Logger
}

func NewRouter(
	sessions *session.Manager,
	classifier Classifier,
	bookings booking.RoomLedgerService,
	issueSvc issues.IssueService,
	directionsSvc directions.DirectionsService,
	timeout time.Duration,
	logger *zap.Logger,
) *Router {
	return &Router{
		Sessions:   sessions,
		Classifier: classifier,
		Bookings:   bookings,
		Issues:     issueSvc,
		Directions: directionsSvc,
		Timeout:    timeout,
		Logger:     logger,
	}
}

// UpdateUserName is the only session write the router performs directly.
func (r *Router) UpdateUserName(ctx context.Context, sessionID, name string) (*models.Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewInvalidInput("A name is required.")
	}
	sess, err := r.Sessions.Update(ctx, sessionID, func(s *models.Session) error {
		s.UserName = name
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.Logger.Info("User name updated", zap.String("session_id", sessionID), zap.String("user", name))
	return sess, nil
}

// Handle processes one guest message end to end. The only error it returns
// is for an unknown session; every other failure is relayed in the response.
func (r *Router) Handle(ctx context.Context, sessionID, text string) (*models.AIResponse, error) {
	snapshot, err := r.Sessions.View(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return r.clarify(sessionID, noInputReply), nil
	}

	classifyCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	decision, err := r.Classifier.Classify(classifyCtx, text, snapshot)
	cancel()
	if err != nil {
		timedOut := errors.Is(err, context.DeadlineExceeded)
		r.Logger.Warn("Classification failed",
			zap.String("session_id", sessionID),
			zap.Bool("timeout", timedOut),
			zap.Error(err),
		)
		metrics.HandlerError("router", string(models.CodeExternalFailure))
		resp := r.clarify(sessionID, classifyFailText)
		resp.Status = "error"
		resp.ErrorCode = models.CodeExternalFailure
		resp.Retryable = true
		return resp, nil
	}

	var renamed string
	if name := strings.TrimSpace(decision.UserName); name != "" && name != snapshot.UserName {
		if _, err := r.UpdateUserName(ctx, sessionID, name); err != nil {
			return nil, err
		}
		snapshot.UserName = name
		renamed = name
	}

	if !decision.Intent.Valid() || (decision.Intent != models.IntentAmbiguous && !decision.Intent.Allows(decision.Action)) {
		r.Logger.Warn("Classifier returned an unknown route",
			zap.String("session_id", sessionID),
			zap.String("intent", string(decision.Intent)),
			zap.String("action", string(decision.Action)),
		)
		decision.Intent = models.IntentAmbiguous
		decision.Reply = ""
	}

	if decision.Intent == models.IntentAmbiguous {
		reply := decision.Reply
		switch {
		case reply == "" && renamed != "":
			reply = fmt.Sprintf("User name updated to %s", renamed)
		case reply == "":
			reply = clarifyReply
		}
		return r.clarify(sessionID, reply), nil
	}

	if needsName(decision) && decision.Arg(ArgName) == "" && snapshot.UserName == r.Sessions.DefaultUserName() {
		return r.clarify(sessionID, askNameReply), nil
	}

	metrics.IntentRouted(string(decision.Intent))
	resp := &models.AIResponse{
		SessionID: sessionID,
		Intent:    decision.Intent,
		Action:    decision.Action,
		Status:    "success",
	}

	switch decision.Intent {
	case models.IntentBooking:
		err = r.dispatchBooking(ctx, sessionID, decision, resp)
	case models.IntentIssue:
		err = r.dispatchIssue(ctx, sessionID, decision, resp)
	case models.IntentDirections:
		err = r.dispatchDirections(ctx, decision, resp)
	}
	if err != nil {
		r.relayError(sessionID, string(decision.Intent), err, resp)
	}
	return resp, nil
}

func (r *Router) dispatchBooking(ctx context.Context, sessionID string, d *Decision, resp *models.AIResponse) error {
	switch d.Action {
	case models.ActionListRooms:
		rooms, err := r.Bookings.ListRooms(ctx, sessionID)
		if err != nil {
			return err
		}
		resp.Rooms = rooms
		resp.ResponseText = describeRooms(rooms)

	case models.ActionCheckAvailability:
		room, err := r.Bookings.CheckAvailability(ctx, sessionID, d.Arg(ArgRoomID))
		if err != nil {
			return err
		}
		resp.Room = room
		resp.ResponseText = fmt.Sprintf("Room %s is available.", room.RoomID)

	case models.ActionReserve:
		b, err := r.Bookings.Reserve(ctx, sessionID, d.Arg(ArgRoomID), d.Arg(ArgName))
		if err != nil {
			return err
		}
		resp.Booking = b
		resp.ResponseText = fmt.Sprintf("Reservation confirmed! Booking ID: %s", b.ID)

	case models.ActionLookupBooking:
		b, err := r.Bookings.Lookup(ctx, sessionID, d.Arg(ArgBookingID))
		if err != nil {
			return err
		}
		resp.Booking = b
		resp.ResponseText = fmt.Sprintf("Booking found with ID: %s", b.ID)

	case models.ActionCancelBooking:
		b, err := r.Bookings.Cancel(ctx, sessionID, d.Arg(ArgBookingID))
		if err != nil {
			return err
		}
		resp.Booking = b
		resp.ResponseText = fmt.Sprintf("Booking with ID %s has been cancelled.", b.ID)
	}
	return nil
}

func (r *Router) dispatchIssue(ctx context.Context, sessionID string, d *Decision, resp *models.AIResponse) error {
	switch d.Action {
	case models.ActionCreateTicket:
		t, err := r.Issues.CreateTicket(ctx, sessionID, d.Arg(ArgName), d.Arg(ArgDescription))
		if err != nil {
			return err
		}
		resp.Ticket = t
		resp.ResponseText = fmt.Sprintf("Issue ticket created successfully! Ticket ID: %s", t.ID)

	case models.ActionViewTicket:
		t, err := r.Issues.ViewStatus(ctx, sessionID, d.Arg(ArgTicketID))
		if err != nil {
			return err
		}
		resp.Ticket = t
		resp.ResponseText = fmt.Sprintf("Ticket found with ID: %s", t.ID)

	case models.ActionResolve:
		t, err := r.Issues.Resolve(ctx, sessionID, d.Arg(ArgTicketID), d.Arg(ArgNotes))
		if err != nil {
			return err
		}
		resp.Ticket = t
		resp.ResponseText = fmt.Sprintf("Ticket %s has been resolved", t.ID)
	}
	return nil
}

func (r *Router) dispatchDirections(ctx context.Context, d *Decision, resp *models.AIResponse) error {
	lookupCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	guide, err := r.Directions.Guide(lookupCtx, models.DirectionsRequest{
		Topic:  d.Action,
		Origin: d.Arg(ArgOrigin),
	})
	if err != nil {
		return err
	}
	resp.Guide = guide
	resp.ResponseText = guide.Summary
	return nil
}

func (r *Router) relayError(sessionID, handler string, err error, resp *models.AIResponse) {
	resp.Status = "error"

	var svcErr *models.ServiceError
	if !errors.As(err, &svcErr) {
		svcErr = models.NewExternalFailure(handler, err, false).(*models.ServiceError)
	}
	resp.ErrorCode = svcErr.Code
	resp.Retryable = svcErr.Retryable
	resp.ResponseText = svcErr.Message
	if svcErr.Code == models.CodeExternalFailure {
		resp.ResponseText = classifyFailText
	}

	metrics.HandlerError(handler, string(svcErr.Code))
	r.Logger.Info("Handler returned an error",
		zap.String("session_id", sessionID),
		zap.String("handler", handler),
		zap.String("code", string(svcErr.Code)),
		zap.Error(err),
	)
}

func (r *Router) clarify(sessionID, reply string) *models.AIResponse {
	metrics.IntentRouted(string(models.IntentAmbiguous))
	return &models.AIResponse{
		SessionID:    sessionID,
		Intent:       models.IntentAmbiguous,
		ResponseText: reply,
		Status:       "success",
	}
}

func needsName(d *Decision) bool {
	return d.Action == models.ActionReserve || d.Action == models.ActionCreateTicket
}

func describeRooms(rooms []models.RoomInfo) string {
	var free []string
	for _, room := range rooms {
		if room.Available {
			free = append(free, fmt.Sprintf("%s (%s, %.0f)", room.RoomID, room.Type, room.Price))
		}
	}
	if len(free) == 0 {
		return "No rooms are available right now."
	}
	return "Available rooms: " + strings.Join(free, ", ")
}
