package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sandsky/travel-backend/internal/domain"
	"github.com/sandsky/travel-backend/internal/repository/ports"
)

type StaffRepository struct {
	db *sqlx.DB
}

func NewStaffRepo(db *sqlx.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) Create(ctx context.Context, user *domain.StaffUser) (*domain.StaffUser, error) {
	const query = `
		INSERT INTO staff_user (email, name, password_hash, is_active)
		VALUES (:email, :name, :password_hash, :is_active)
		RETURNING id, email, name, password_hash, is_active, created_at
	`

	args := map[string]any{
		"email":         strings.ToLower(strings.TrimSpace(user.Email)),
		"name":          user.Name,
		"password_hash": user.PasswordHash,
		"is_active":     user.IsActive,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var created domain.StaffUser
		if err = rows.StructScan(&created); err != nil {
			return nil, err
		}
		return &created, nil
	}
	return nil, sql.ErrNoRows
}

func (r *StaffRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.StaffUser, error) {
	const query = `
		SELECT id, email, name, password_hash, is_active, created_at
		FROM staff_user
		WHERE id = $1
	`
	var user domain.StaffUser
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *StaffRepository) FindByEmail(ctx context.Context, email string) (*domain.StaffUser, error) {
	const query = `
		SELECT id, email, name, password_hash, is_active, created_at
		FROM staff_user
		WHERE email = $1
	`
	var user domain.StaffUser
	if err := r.db.GetContext(ctx, &user, query, strings.ToLower(strings.TrimSpace(email))); err != nil {
		return nil, err
	}
	return &user, nil
}

var _ ports.StaffRepository = (*StaffRepository)(nil)
