package repositories

import (
	"context"
	"errors"
	"fmt"

	"jobcard-backend/internal/apperr"
	"jobcard-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = models.RoleUser // Default role
	}
	err := r.DB.QueryRow(ctx,
		`INSERT INTO users(id, username, password, name, role)
         VALUES($1, $2, $3, $4, $5)
         RETURNING created_at, updated_at`,
		u.ID, u.Username, u.Password, u.Name, string(u.Role),
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.New(apperr.KindConflict, "User already exists", err)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, username, password, name, role, created_at, updated_at
         FROM users WHERE username=$1`, username)

	var user models.User
	var role string
	err := row.Scan(&user.ID, &user.Username, &user.Password, &user.Name, &role, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", username, err)
	}
	user.Role = models.Role(role)
	return &user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, username, password string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE users SET password=$1, updated_at=CURRENT_TIMESTAMP WHERE username=$2`,
		password, username)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User not found")
	}
	return nil
}
