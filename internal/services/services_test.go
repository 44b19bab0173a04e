package services

import (
	"context"
	"errors"
	"sync"

	"jobcard-backend/internal/logger"
	"jobcard-backend/internal/models"
	"jobcard-backend/internal/realtime"
	"jobcard-backend/internal/repositories/memory"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (p *recordingPublisher) Publish(e realtime.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []realtime.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]realtime.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type failingCounter struct{}

func (failingCounter) Next(context.Context, string) (int64, error) {
	return 0, errors.New("counter unavailable")
}

type fixture struct {
	jobcards *JobcardService
	store    *memory.JobcardStore
	events   *recordingPublisher
}

func newFixture() *fixture {
	store := memory.NewJobcardStore()
	events := &recordingPublisher{}
	return &fixture{
		jobcards: NewJobcardService(store, memory.NewCounterStore(), events, logger.NewNop()),
		store:    store,
		events:   events,
	}
}

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }

func createReq(customer, reg string, amount float64, paid, remaining *float64) *models.CreateJobcardRequest {
	return &models.CreateJobcardRequest{
		CustomerName: customer,
		RegNo:        reg,
		Amount:       amount,
		Paid:         paid,
		Remaining:    remaining,
	}
}
