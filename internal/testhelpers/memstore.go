// Package testhelpers provides in-memory stores and fixtures shared by the
// service and handler tests.
package testhelpers

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/justsurfingit/job-tracker-api/internal/database"
	"github.com/justsurfingit/job-tracker-api/internal/models"
)

// JobStore is an in-memory services.JobStore. It counts writes so tests can
// assert that rejected requests never touched storage.
type JobStore struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]models.Application
	clock  time.Time

	Lookups int
	Writes  int
	// Err, when set, is returned by every method.
	Err error
}

func NewJobStore() *JobStore {
	return &JobStore{
		rows:  make(map[uint]models.Application),
		clock: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

// Seed inserts app as-is, assigning an id if it has none.
func (s *JobStore) Seed(app models.Application) models.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	if app.ID == 0 {
		s.nextID++
		app.ID = s.nextID
	} else if app.ID > s.nextID {
		s.nextID = app.ID
	}
	if app.CreatedAt.IsZero() {
		s.clock = s.clock.Add(time.Minute)
		app.CreatedAt = s.clock
	}
	s.rows[app.ID] = app
	return app
}

// Get reads a row without counting it as a lookup.
func (s *JobStore) Get(id uint) (models.Application, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.rows[id]
	return app, ok
}

func (s *JobStore) Create(_ context.Context, app *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Writes++
	s.nextID++
	s.clock = s.clock.Add(time.Minute)
	app.ID = s.nextID
	app.CreatedAt = s.clock
	s.rows[app.ID] = *app
	return nil
}

func (s *JobStore) FindByID(_ context.Context, id uint) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Lookups++
	if s.Err != nil {
		return nil, s.Err
	}
	app, ok := s.rows[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &app, nil
}

func (s *JobStore) List(_ context.Context, userID uint, filter models.ApplicationFilter) ([]models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []models.Application{}
	for _, app := range s.rows {
		if app.UserID == userID && matches(filter, app) {
			out = append(out, app)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *JobStore) Update(_ context.Context, id uint, changes models.ApplicationChanges) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	app, ok := s.rows[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	s.Writes++
	apply(changes, &app)
	s.rows[id] = app
	return &app, nil
}

func (s *JobStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.rows[id]; !ok {
		return database.ErrNotFound
	}
	s.Writes++
	delete(s.rows, id)
	return nil
}

func (s *JobStore) CountByStatus(_ context.Context, userID uint) (map[models.Status]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	counts := make(map[models.Status]int64)
	for _, app := range s.rows {
		if app.UserID == userID {
			counts[app.Status]++
		}
	}
	return counts, nil
}

// UserStore is an in-memory services.UserStore with a unique email index.
type UserStore struct {
	mu      sync.Mutex
	nextID  uint
	byEmail map[string]models.User

	Err error
}

func NewUserStore() *UserStore {
	return &UserStore{byEmail: make(map[string]models.User)}
}

func (s *UserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, taken := s.byEmail[user.Email]; taken {
		return database.ErrDuplicate
	}
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now().UTC()
	s.byEmail[user.Email] = *user
	return nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	user, ok := s.byEmail[email]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &user, nil
}

// ErrStorage is a stand-in for an unexpected storage failure.
var ErrStorage = errors.New("storage unavailable")

// matches mirrors the WHERE clause built by database.JobRepository.List.
func matches(f models.ApplicationFilter, app models.Application) bool {
	if f.Status != "" && app.Status != f.Status {
		return false
	}
	if f.Search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(app.CompanyName), f.Search) ||
		strings.Contains(strings.ToLower(app.JobTitle), f.Search)
}

func apply(c models.ApplicationChanges, app *models.Application) {
	if c.CompanyName != nil {
		app.CompanyName = *c.CompanyName
	}
	if c.JobTitle != nil {
		app.JobTitle = *c.JobTitle
	}
	if c.Status != nil {
		app.Status = *c.Status
	}
}
