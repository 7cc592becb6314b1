package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DirectoryRepository reads the employee and company records owned by the account
// layer.
type DirectoryRepository struct {
	db *pgxpool.Pool
}

func NewDirectoryRepository(db *pgxpool.Pool) *DirectoryRepository {
	return &DirectoryRepository{db: db}
}

func (r *DirectoryRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	query := `SELECT id, name, email, phone_number, password FROM employees WHERE id = $1`
	var e domain.Employee
	err := r.db.QueryRow(ctx, query, id).Scan(&e.ID, &e.Name, &e.Email, &e.PhoneNumber, &e.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("select employee: %w", err)
	}
	return &e, nil
}

func (r *DirectoryRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM companies WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check company: %w", err)
	}
	return exists, nil
}
