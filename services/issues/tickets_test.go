package issues

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotelsupport/config"
	"hotelsupport/models"
	"hotelsupport/services/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) TicketOpened(ctx context.Context, sessionID string, t models.Ticket) error {
	return m.Called(sessionID, t.ID).Error(0)
}

func (m *mockNotifier) TicketResolved(ctx context.Context, sessionID string, t models.Ticket) error {
	return m.Called(sessionID, t.ID, t.Status).Error(0)
}

func newIssueService(t *testing.T, notifier *mockNotifier) (*DefaultIssueService, *session.Manager, string) {
	t.Helper()
	mgr := session.NewManager(session.NewMemoryStore(), config.DefaultRooms, "User", zap.NewNop())
	sess, err := mgr.Start(context.Background(), "Amina")
	require.NoError(t, err)

	svc := NewIssueService(mgr, notifier, zap.NewNop())
	svc.Now = func() time.Time { return time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC) }
	return svc, mgr, sess.ID
}

func TestTicketLifecycle(t *testing.T) {
	notifier := new(mockNotifier)
	svc, _, sid := newIssueService(t, notifier)
	ctx := context.Background()

	notifier.On("TicketOpened", sid, mock.Anything).Return(nil)
	ticket, err := svc.CreateTicket(ctx, sid, "", "The shower has no hot water")
	require.NoError(t, err)
	assert.Len(t, ticket.ID, 8)
	assert.Equal(t, "Amina", ticket.UserName)
	assert.Equal(t, models.TicketStatusOpen, ticket.Status)

	got, err := svc.ViewStatus(ctx, sid, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "The shower has no hot water", got.IssueDescription)
	assert.Equal(t, models.TicketStatusOpen, got.Status)

	notifier.On("TicketResolved", sid, ticket.ID, models.TicketStatusResolved).Return(nil)
	resolved, err := svc.Resolve(ctx, sid, ticket.ID, "boiler restarted")
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusResolved, resolved.Status)
	assert.Equal(t, "boiler restarted", resolved.ResolutionNotes)
	require.NotNil(t, resolved.ResolvedAt)

	_, err = svc.ViewStatus(ctx, sid, ticket.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	notifier.AssertExpectations(t)
}

func TestCreateTicketRequiresDescription(t *testing.T) {
	notifier := new(mockNotifier)
	svc, mgr, sid := newIssueService(t, notifier)
	ctx := context.Background()

	for _, desc := range []string{"", "   "} {
		_, err := svc.CreateTicket(ctx, sid, "Amina", desc)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	}

	sess, err := mgr.View(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, sess.PendingIssues)
	notifier.AssertNotCalled(t, "TicketOpened", mock.Anything, mock.Anything)
}

func TestResolveUnknownTicket(t *testing.T) {
	notifier := new(mockNotifier)
	svc, mgr, sid := newIssueService(t, notifier)
	ctx := context.Background()

	notifier.On("TicketOpened", sid, mock.Anything).Return(nil)
	_, err := svc.CreateTicket(ctx, sid, "Omar", "Noisy neighbours")
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, sid, "missing1", "")
	assert.ErrorIs(t, err, models.ErrNotFound)

	sess, err := mgr.View(ctx, sid)
	require.NoError(t, err)
	assert.Len(t, sess.PendingIssues, 1)
	assert.Equal(t, "Omar", sess.PendingIssues[0].UserName)
}

func TestResolveKeepsOtherTickets(t *testing.T) {
	notifier := new(mockNotifier)
	svc, mgr, sid := newIssueService(t, notifier)
	ctx := context.Background()
	notifier.On("TicketOpened", sid, mock.Anything).Return(nil)
	notifier.On("TicketResolved", sid, mock.Anything, models.TicketStatusResolved).Return(nil)

	first, err := svc.CreateTicket(ctx, sid, "", "Wi-Fi is down")
	require.NoError(t, err)
	second, err := svc.CreateTicket(ctx, sid, "", "Missing towels")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	resolved, err := svc.Resolve(ctx, sid, first.ID, "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, resolved.ID)

	sess, err := mgr.View(ctx, sid)
	require.NoError(t, err)
	require.Len(t, sess.PendingIssues, 1)
	assert.Equal(t, second.ID, sess.PendingIssues[0].ID)
}

func TestNotifierFailureDoesNotFailTicket(t *testing.T) {
	notifier := new(mockNotifier)
	svc, mgr, sid := newIssueService(t, notifier)
	ctx := context.Background()
	notifier.On("TicketOpened", sid, mock.Anything).Return(errors.New("fcm down"))

	ticket, err := svc.CreateTicket(ctx, sid, "", "Door lock jammed")
	require.NoError(t, err)

	sess, err := mgr.View(ctx, sid)
	require.NoError(t, err)
	require.Len(t, sess.PendingIssues, 1)
	assert.Equal(t, ticket.ID, sess.PendingIssues[0].ID)
}
