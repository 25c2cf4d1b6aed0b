package application_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ericfisherdev/jobtracker/internal/domain/model"
	"github.com/ericfisherdev/jobtracker/internal/domain/port/driven"
)

// --- Fake implementations ---

type fakeApplicationStore struct {
	mu      sync.Mutex
	nextID  int64
	apps    map[int64]model.Application
	listErr error
	imports [][]model.Application
}

func newFakeApplicationStore(apps ...model.Application) *fakeApplicationStore {
	s := &fakeApplicationStore{apps: make(map[int64]model.Application)}
	for _, app := range apps {
		s.nextID++
		if app.ID == 0 {
			app.ID = s.nextID
		} else if app.ID > s.nextID {
			s.nextID = app.ID
		}
		s.apps[app.ID] = app
	}
	return s
}

func (s *fakeApplicationStore) Create(_ context.Context, app model.Application) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	app.ID = s.nextID
	s.apps[app.ID] = app
	return app.ID, nil
}

func (s *fakeApplicationStore) Update(_ context.Context, app model.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.apps[app.ID]; !ok {
		return fmt.Errorf("update application %d: %w", app.ID, driven.ErrApplicationNotFound)
	}
	s.apps[app.ID] = app
	return nil
}

func (s *fakeApplicationStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.apps[id]; !ok {
		return fmt.Errorf("delete application %d: %w", id, driven.ErrApplicationNotFound)
	}
	delete(s.apps, id)
	return nil
}

func (s *fakeApplicationStore) Get(_ context.Context, id int64) (*model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.apps[id]
	if !ok {
		return nil, fmt.Errorf("get application %d: %w", id, driven.ErrApplicationNotFound)
	}
	return &app, nil
}

func (s *fakeApplicationStore) List(_ context.Context) ([]model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]model.Application, 0, len(s.apps))
	for _, app := range s.apps {
		out = append(out, app)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *fakeApplicationStore) Import(ctx context.Context, apps []model.Application) (driven.ImportResult, error) {
	s.imports = append(s.imports, apps)
	var result driven.ImportResult
	for _, app := range apps {
		if app.CompanyName == "" {
			result.Failures = append(result.Failures, driven.ImportFailure{CompanyName: "", Reason: "NOT NULL constraint failed"})
			continue
		}
		if _, err := s.Create(ctx, app); err != nil {
			return driven.ImportResult{}, err
		}
		result.Imported++
	}
	return result, nil
}

type fakeUserStore struct {
	users     map[string]model.User
	getErr    error
	createErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]model.User)}
}

func (s *fakeUserStore) Create(_ context.Context, user model.User) (int64, error) {
	if s.createErr != nil {
		return 0, s.createErr
	}
	if _, ok := s.users[user.Username]; ok {
		return 0, driven.ErrUserAlreadyExists
	}
	user.ID = int64(len(s.users) + 1)
	s.users[user.Username] = user
	return user.ID, nil
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	user, ok := s.users[username]
	if !ok {
		return nil, driven.ErrUserNotFound
	}
	return &user, nil
}

type fakeSessionStore struct {
	revoked map[string]time.Time
	pruned  int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{revoked: make(map[string]time.Time)}
}

func (s *fakeSessionStore) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	s.revoked[tokenID] = expiresAt
	return nil
}

func (s *fakeSessionStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := s.revoked[tokenID]
	return ok, nil
}

func (s *fakeSessionStore) PruneExpired(_ context.Context, now time.Time) (int64, error) {
	s.pruned++
	var n int64
	for id, exp := range s.revoked {
		if exp.Before(now) {
			delete(s.revoked, id)
			n++
		}
	}
	return n, nil
}

type fakeLegacySource struct {
	apps []model.Application
	err  error
}

func (s *fakeLegacySource) ReadApplications(_ context.Context) ([]model.Application, error) {
	return s.apps, s.err
}

type stubClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStubClock() *stubClock {
	return &stubClock{now: time.Date(2026, 10, 14, 9, 30, 15, 0, time.UTC)}
}

func (c *stubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stubClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type stubIDs struct {
	counter int
}

func (g *stubIDs) New() string {
	g.counter++
	return fmt.Sprintf("session-%d", g.counter)
}
