// Package memory holds volatile in-process stores with the same contracts as
// the PostgreSQL repositories. They back the "memory" storage driver and the
// service and handler tests.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"jobcard-backend/internal/apperr"
	"jobcard-backend/internal/models"

	"github.com/google/uuid"
)

type CounterStore struct {
	mu     sync.Mutex
	values map[string]int64
}

func NewCounterStore() *CounterStore {
	return &CounterStore{values: make(map[string]int64)}
}

func (s *CounterStore) Next(_ context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name]++
	return s.values[name], nil
}

type JobcardStore struct {
	mu   sync.RWMutex
	byID map[string]*models.Jobcard
}

func NewJobcardStore() *JobcardStore {
	return &JobcardStore{byID: make(map[string]*models.Jobcard)}
}

func (s *JobcardStore) Create(_ context.Context, j *models.Jobcard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	for _, existing := range s.byID {
		if existing.SeqID == j.SeqID || existing.JobcardNo == j.JobcardNo {
			return apperr.Conflict("Jobcard number already exists")
		}
	}
	now := time.Now()
	j.CreatedAt, j.UpdatedAt = now, now
	s.byID[j.ID] = clone(j)
	return nil
}

func (s *JobcardStore) Update(_ context.Context, j *models.Jobcard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.byID[j.ID]
	if !ok {
		return apperr.NotFound("Jobcard not found")
	}
	j.SeqID, j.JobcardNo, j.CreatedAt = existing.SeqID, existing.JobcardNo, existing.CreatedAt
	j.UpdatedAt = time.Now()
	s.byID[j.ID] = clone(j)
	return nil
}

func (s *JobcardStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return apperr.NotFound("Jobcard not found")
	}
	delete(s.byID, id)
	return nil
}

func (s *JobcardStore) Find(_ context.Context, ref models.JobcardRef) (*models.Jobcard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if ref.Kind == models.RefByID {
		if j, ok := s.byID[ref.ID]; ok {
			return clone(j), nil
		}
		return nil, apperr.NotFound("Jobcard not found")
	}
	for _, j := range s.byID {
		if (ref.Kind == models.RefBySequence && j.SeqID == ref.Seq) ||
			(ref.Kind == models.RefByDisplayNumber && j.JobcardNo == ref.DisplayNo) {
			return clone(j), nil
		}
	}
	return nil, apperr.NotFound("Jobcard not found")
}

func (s *JobcardStore) List(_ context.Context, f models.JobcardFilter) ([]*models.Jobcard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Jobcard, 0, len(s.byID))
	for _, j := range s.byID {
		if f.Matches(j) {
			out = append(out, clone(j))
		}
	}
	slices.SortFunc(out, models.NewestFirst)
	return out, nil
}

func (s *JobcardStore) SumPaid(_ context.Context, from, to time.Time) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	for _, j := range s.byID {
		if !j.Date.Before(from) && !j.Date.After(to) {
			total += j.Paid
		}
	}
	return total, nil
}

func clone(j *models.Jobcard) *models.Jobcard {
	c := *j
	c.Services = slices.Clone(j.Services)
	c.Parts = slices.Clone(j.Parts)
	c.Labour = slices.Clone(j.Labour)
	return &c
}

type VehicleModelStore struct {
	mu     sync.RWMutex
	models map[string]*models.VehicleModel
}

func NewVehicleModelStore() *VehicleModelStore {
	return &VehicleModelStore{models: make(map[string]*models.VehicleModel)}
}

func (s *VehicleModelStore) Create(_ context.Context, m *models.VehicleModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.models {
		if strings.EqualFold(existing.Name, m.Name) {
			return apperr.Conflict("Model already exists")
		}
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := time.Now()
	m.CreatedAt, m.UpdatedAt = now, now
	c := *m
	s.models[m.ID] = &c
	return nil
}

func (s *VehicleModelStore) List(_ context.Context) ([]*models.VehicleModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.VehicleModel, 0, len(s.models))
	for _, m := range s.models {
		c := *m
		out = append(out, &c)
	}
	slices.SortFunc(out, func(a, b *models.VehicleModel) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (s *VehicleModelStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.models[id]; !ok {
		return apperr.NotFound("Model not found")
	}
	delete(s.models, id)
	return nil
}

type UserStore struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]*models.User)}
}

func (s *UserStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.Username]; ok {
		return apperr.Conflict("User already exists")
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	c := *u
	s.users[u.Username] = &c
	return nil
}

func (s *UserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return nil, apperr.NotFound("User not found")
	}
	c := *u
	return &c, nil
}

func (s *UserStore) UpdatePassword(_ context.Context, username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return apperr.NotFound("User not found")
	}
	u.Password = password
	u.UpdatedAt = time.Now()
	return nil
}
