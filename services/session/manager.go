package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"hotelsupport/config"
	"hotelsupport/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager is the session state store every handler reads and writes through.
// Mutations of one session are serialized by a per-session lock and applied
// to a private copy, which is persisted only when the mutation succeeds.
type Manager struct {
	store           Store
	rooms           []config.RoomSeed
	defaultUserName string
	logger          *zap.Logger
	now             func() time.Time

	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock is held in Manager.locks only while some caller uses it.
type sessionLock struct {
	sync.Mutex
	refs int
}

func NewManager(store Store, rooms []config.RoomSeed, defaultUserName string, logger *zap.Logger) *Manager {
	if defaultUserName == "" {
		defaultUserName = "User"
	}
	return &Manager{
		store:           store,
		rooms:           rooms,
		defaultUserName: defaultUserName,
		logger:          logger,
		now:             time.Now,
		locks:           make(map[string]*sessionLock),
	}
}

// DefaultUserName is the placeholder a session carries until the guest
// introduces themselves.
func (m *Manager) DefaultUserName() string {
	return m.defaultUserName
}

// Start creates a session with a freshly seeded room ledger and empty booking
// and issue sequences.
func (m *Manager) Start(ctx context.Context, userName string) (*models.Session, error) {
	rooms, err := seedLedger(m.rooms)
	if err != nil {
		return nil, err
	}
	userName = strings.TrimSpace(userName)
	if userName == "" {
		userName = m.defaultUserName
	}

	now := m.now()
	s := &models.Session{
		ID:             uuid.New().String(),
		UserName:       userName,
		Rooms:          rooms,
		RecentBookings: []models.Booking{},
		PendingIssues:  []models.Ticket{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := m.store.Create(ctx, s); err != nil {
		return nil, err
	}

	m.logger.Info("Session started",
		zap.String("session_id", s.ID),
		zap.Int("rooms", len(rooms)),
	)
	return s.Clone(), nil
}

// View returns a read-only snapshot of the session.
func (m *Manager) View(ctx context.Context, id string) (*models.Session, error) {
	return m.store.Get(ctx, id)
}

// Update applies fn to a copy of the session and persists the copy when fn
// returns nil. The returned session is a snapshot of the committed state.
func (m *Manager) Update(ctx context.Context, id string, fn func(s *models.Session) error) (*models.Session, error) {
	m.lock(id)
	defer m.unlock(id)

	s, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	s.UpdatedAt = m.now()
	if err := m.store.Save(ctx, s); err != nil {
		return nil, err
	}
	return s.Clone(), nil
}

// End removes the session.
func (m *Manager) End(ctx context.Context, id string) error {
	m.lock(id)
	defer m.unlock(id)

	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}

	m.logger.Info("Session ended", zap.String("session_id", id))
	return nil
}

// Sweep purges sessions idle for longer than ttl on stores without native
// expiry. It reports how many were removed.
func (m *Manager) Sweep(ctx context.Context, ttl time.Duration) (int, error) {
	sweeper, ok := m.store.(Sweeper)
	if !ok {
		return 0, nil
	}
	return sweeper.PurgeIdle(ctx, m.now().Add(-ttl))
}

func (m *Manager) lock(id string) {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &sessionLock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.Lock()
}

// unlock releases the session lock and forgets it once no caller is waiting,
// so ids that never existed or have since expired leave nothing behind.
func (m *Manager) unlock(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l := m.locks[id]
	l.refs--
	if l.refs == 0 {
		delete(m.locks, id)
	}
	l.Unlock()
}

func seedLedger(seeds []config.RoomSeed) (map[string]models.Room, error) {
	rooms := make(map[string]models.Room, len(seeds))
	for _, seed := range seeds {
		id := strings.TrimSpace(seed.ID)
		if id == "" {
			return nil, models.NewInvalidInput("room seed without id")
		}
		if seed.Price < 0 {
			return nil, models.NewInvalidInput("room %s has a negative price", id)
		}
		if _, dup := rooms[id]; dup {
			return nil, models.NewInvalidInput("room %s is seeded twice", id)
		}
		rooms[id] = models.Room{Type: seed.Type, Price: seed.Price, Available: true}
	}
	return rooms, nil
}
