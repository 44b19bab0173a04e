package services

import (
	"context"
	"encoding/json"
	"strings"

	"jobcard-backend/internal/apperr"
	"jobcard-backend/internal/cache"
	"jobcard-backend/internal/logger"
	"jobcard-backend/internal/models"
	"jobcard-backend/internal/realtime"

	"github.com/google/uuid"
)

type VehicleModelService struct {
	Repo   VehicleModelStore
	Events Publisher
	log    *logger.Logger
}

func NewVehicleModelService(repo VehicleModelStore, events Publisher, log *logger.Logger) *VehicleModelService {
	if events == nil {
		events = nopPublisher{}
	}
	return &VehicleModelService{Repo: repo, Events: events, log: log}
}

// Create adds a model. Names are stored upper-cased; an empty type means Bike.
func (s *VehicleModelService) Create(ctx context.Context, req *models.CreateVehicleModelRequest) (*models.VehicleModel, error) {
	m := &models.VehicleModel{
		Name: strings.ToUpper(strings.TrimSpace(req.Name)),
		Type: models.VehicleType(strings.TrimSpace(req.Type)),
	}
	if m.Type == "" {
		m.Type = models.VehicleBike
	}
	if err := validateStruct(m); err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, err
	}
	s.log.Info("vehicle model added", "name", m.Name, "type", m.Type)
	s.changed(ctx)
	return m, nil
}

// List returns every model sorted by name. The result is cached when Redis is available.
func (s *VehicleModelService) List(ctx context.Context) ([]*models.VehicleModel, error) {
	if data, ok := cache.GetCachedModels(ctx); ok {
		var list []*models.VehicleModel
		if err := json.Unmarshal(data, &list); err == nil {
			return list, nil
		}
	}

	list, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(list); err == nil {
		cache.CacheModels(ctx, data)
	}
	return list, nil
}

// Delete removes a model without touching jobcards that name it
func (s *VehicleModelService) Delete(ctx context.Context, id string) error {
	key, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return apperr.NotFound("Model not found")
	}
	if err := s.Repo.Delete(ctx, key.String()); err != nil {
		return err
	}
	s.log.Info("vehicle model deleted", "id", key.String())
	s.changed(ctx)
	return nil
}

func (s *VehicleModelService) changed(ctx context.Context) {
	cache.InvalidateModels(ctx)
	s.Events.Publish(realtime.Event{Type: realtime.ModelsChanged})
}
