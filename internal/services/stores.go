package services

import (
	"context"
	"time"

	"jobcard-backend/internal/models"
	"jobcard-backend/internal/realtime"
)

// SequenceStore issues durable, strictly increasing numbers per counter name
type SequenceStore interface {
	Next(ctx context.Context, name string) (int64, error)
}

type JobcardStore interface {
	Create(ctx context.Context, j *models.Jobcard) error
	Update(ctx context.Context, j *models.Jobcard) error
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, ref models.JobcardRef) (*models.Jobcard, error)
	List(ctx context.Context, f models.JobcardFilter) ([]*models.Jobcard, error)
	SumPaid(ctx context.Context, from, to time.Time) (float64, error)
}

type VehicleModelStore interface {
	Create(ctx context.Context, m *models.VehicleModel) error
	List(ctx context.Context) ([]*models.VehicleModel, error)
	Delete(ctx context.Context, id string) error
}

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdatePassword(ctx context.Context, username, password string) error
}

// Publisher receives change events. *realtime.Hub satisfies it.
type Publisher interface {
	Publish(e realtime.Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(realtime.Event) {}
