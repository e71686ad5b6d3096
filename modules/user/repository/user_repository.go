package repository

import (
	"context"
	"database/sql"

	"github.com/Ecospace254/employee-sub000/core/database"
	"github.com/Ecospace254/employee-sub000/core/logger"
	"github.com/Ecospace254/employee-sub000/modules/user/entity"

	"github.com/google/uuid"
)

// UserRepository reads user rows for authentication and display summaries.
type UserRepository struct {
	DB database.Database
}

// UserRepositoryInterface defines the repository contract.
type UserRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ListSummaries(ctx context.Context, search string) ([]entity.Summary, error)
}

func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `
		SELECT id, name, email, password_hash, avatar_url, job_title, created_at, updated_at
		FROM users WHERE id = $1
	`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("UserRepository:GetByID", err)
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT id, name, email, password_hash, avatar_url, job_title, created_at, updated_at
		FROM users WHERE LOWER(email) = LOWER($1)
	`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("UserRepository:GetByEmail", err)
		return nil, err
	}

	return &user, nil
}

// ListSummaries returns user summaries for invite pickers, optionally
// filtered by a name/email substring.
func (r *UserRepository) ListSummaries(ctx context.Context, search string) ([]entity.Summary, error) {
	query := `
		SELECT id, name, email, avatar_url, job_title
		FROM users
		WHERE $1 = '' OR name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%'
		ORDER BY name ASC
	`

	var users []entity.Summary
	err := r.DB.SelectContext(ctx, &users, query, search)
	if err != nil {
		logger.Error("UserRepository:ListSummaries", err)
		return nil, err
	}

	return users, nil
}
