package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CounterRepository hands out named, durable, strictly increasing sequence values
type CounterRepository struct {
	DB *pgxpool.Pool
}

func NewCounterRepository(db *pgxpool.Pool) *CounterRepository {
	return &CounterRepository{DB: db}
}

// Next increments the named counter and returns the new value.
// A counter that does not exist yet starts at 1.
func (r *CounterRepository) Next(ctx context.Context, name string) (int64, error) {
	var seq int64
	err := r.DB.QueryRow(ctx,
		`INSERT INTO counters(name, seq) VALUES($1, 1)
         ON CONFLICT (name) DO UPDATE SET seq = counters.seq + 1
         RETURNING seq`, name).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next value of counter %s: %w", name, err)
	}
	return seq, nil
}
