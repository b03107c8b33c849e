package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dtroode/neoarcana-server/internal/model"
)

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]model.User
}

func newMemoryUsers(users ...model.User) *memoryUsers {
	m := &memoryUsers{users: make(map[string]model.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memoryUsers) GetByID(_ context.Context, id string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return u, nil
}

func (m *memoryUsers) UpdateProfile(_ context.Context, user model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return model.ErrNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *memoryUsers) MarkDailyConsumed(_ context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return model.ErrNotFound
	}
	if u.LastDailyReadingAt == nil || u.LastDailyReadingAt.Before(at) {
		u.LastDailyReadingAt = &at
	}
	m.users[id] = u
	return nil
}

func (m *memoryUsers) MarkWeeklyConsumed(_ context.Context, id string, at time.Time, cycle int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return model.ErrNotFound
	}
	if u.WeeklyCycle < cycle {
		u.LastWeeklyReadingAt = &at
		u.WeeklyCycle = cycle
	}
	m.users[id] = u
	return nil
}

func (m *memoryUsers) get(id string) model.User {
	u, _ := m.GetByID(context.Background(), id)
	return u
}

type memoryArtifacts struct {
	mu         sync.Mutex
	artifacts  map[string]model.Artifact
	order      []string
	failCreate error
}

func newMemoryArtifacts() *memoryArtifacts {
	return &memoryArtifacts{artifacts: make(map[string]model.Artifact)}
}

func (m *memoryArtifacts) Get(_ context.Context, key model.PeriodKey) (model.Artifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.artifacts[key.String()]
	if !ok {
		return model.Artifact{}, model.ErrNotFound
	}
	return a, nil
}

func (m *memoryArtifacts) CreateIfAbsent(_ context.Context, artifact model.Artifact) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreate != nil {
		return false, m.failCreate
	}
	k := artifact.Key.String()
	if _, ok := m.artifacts[k]; ok {
		return false, nil
	}
	m.artifacts[k] = artifact
	m.order = append(m.order, k)
	return true, nil
}

func (m *memoryArtifacts) GetMostRecent(_ context.Context, userID string, readingType model.ReadingType) (model.Artifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.order) - 1; i >= 0; i-- {
		a := m.artifacts[m.order[i]]
		if a.Key.UserID == userID && a.Key.ReadingType == readingType {
			return a, nil
		}
	}
	return model.Artifact{}, model.ErrNotFound
}

func (m *memoryArtifacts) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.artifacts)
}

// scriptedGenerator returns a distinct payload per call unless fn overrides it.
type scriptedGenerator struct {
	calls atomic.Int32
	fn    func(ctx context.Context, call int32, req model.GenerationRequest) (model.Payload, error)
}

func (g *scriptedGenerator) Generate(ctx context.Context, req model.GenerationRequest) (model.Payload, error) {
	call := g.calls.Add(1)
	if g.fn != nil {
		return g.fn(ctx, call, req)
	}
	return payloadFor(call, req), nil
}

func payloadFor(call int32, req model.GenerationRequest) model.Payload {
	return model.Payload{
		Text:      fmt.Sprintf("reading %d for %s in %s", call, req.ReadingType, req.Language),
		CardNames: []string{"The Star"},
		Positions: []string{"Card of the Day"},
	}
}

type staticFallbacks struct{}

func (staticFallbacks) Fallback(t model.ReadingType, language string) model.Payload {
	return model.Payload{
		Text:     "fallback " + string(t),
		Metadata: map[string]string{"source": "fallback", "language": language},
	}
}

type memorySink struct {
	mu      sync.Mutex
	entries []model.HistoryEntry
	err     error
}

func (s *memorySink) Append(_ context.Context, entry model.HistoryEntry) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *memorySink) Name() string {
	return "memory"
}

func (s *memorySink) all() []model.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.HistoryEntry(nil), s.entries...)
}

var errProviderDown = errors.New("provider down")
