package repositories

import (
	"context"
	"fmt"

	"jobcard-backend/internal/apperr"
	"jobcard-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VehicleModelRepository struct {
	DB *pgxpool.Pool
}

func NewVehicleModelRepository(db *pgxpool.Pool) *VehicleModelRepository {
	return &VehicleModelRepository{DB: db}
}

// Create inserts a model. Names are unique regardless of case.
func (r *VehicleModelRepository) Create(ctx context.Context, m *models.VehicleModel) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	err := r.DB.QueryRow(ctx,
		`INSERT INTO vehicle_models(id, name, type) VALUES($1, $2, $3)
         RETURNING created_at, updated_at`,
		m.ID, m.Name, string(m.Type),
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.New(apperr.KindConflict, "Model already exists", err)
		}
		return fmt.Errorf("insert vehicle model: %w", err)
	}
	return nil
}

// List returns all models sorted by name
func (r *VehicleModelRepository) List(ctx context.Context) ([]*models.VehicleModel, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, type, created_at, updated_at FROM vehicle_models ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list vehicle models: %w", err)
	}
	defer rows.Close()

	list := make([]*models.VehicleModel, 0)
	for rows.Next() {
		var m models.VehicleModel
		var typ string
		if err := rows.Scan(&m.ID, &m.Name, &typ, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		m.Type = models.VehicleType(typ)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Delete removes a model. Jobcards naming it are left untouched.
func (r *VehicleModelRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM vehicle_models WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete vehicle model %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Model not found")
	}
	return nil
}
