// Package pg implementa IdentityRepository sobre PostgreSQL (pgx).
package pg

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sp1ral-dev/veridian/internal/domain/repository"
)

const uniqueViolation = "23505"

// IdentityRepo es el adaptador Postgres del repositorio de identidades.
type IdentityRepo struct {
	pool *pgxpool.Pool
}

// NewIdentityRepo crea el repositorio sobre un pool existente.
func NewIdentityRepo(pool *pgxpool.Pool) *IdentityRepo {
	return &IdentityRepo{pool: pool}
}

const identityCols = `id, email, password_hash, provider, role, enabled, created_at, updated_at`

func scanIdentity(row pgx.Row) (*repository.Identity, error) {
	var ident repository.Identity
	err := row.Scan(
		&ident.ID, &ident.Email, &ident.PasswordHash,
		&ident.Provider, &ident.Role, &ident.Enabled,
		&ident.CreatedAt, &ident.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ident, nil
}

func (r *IdentityRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM identity WHERE LOWER(email) = LOWER($1))`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *IdentityRepo) GetByEmail(ctx context.Context, email string) (*repository.Identity, error) {
	const query = `SELECT ` + identityCols + ` FROM identity WHERE LOWER(email) = LOWER($1)`
	return scanIdentity(r.pool.QueryRow(ctx, query, email))
}

func (r *IdentityRepo) GetByID(ctx context.Context, id string) (*repository.Identity, error) {
	const query = `SELECT ` + identityCols + ` FROM identity WHERE id = $1`
	return scanIdentity(r.pool.QueryRow(ctx, query, id))
}

func (r *IdentityRepo) Create(ctx context.Context, ident *repository.Identity) (*repository.Identity, error) {
	const query = `
		INSERT INTO identity (id, email, password_hash, provider, role, enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING ` + identityCols

	now := time.Now().UTC()
	row := r.pool.QueryRow(ctx, query,
		ident.ID, ident.Email, ident.PasswordHash,
		ident.Provider, ident.Role, ident.Enabled, now,
	)
	created, err := scanIdentity(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, repository.ErrConflict
		}
		return nil, err
	}
	return created, nil
}

func (r *IdentityRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const query = `UPDATE identity SET password_hash = $2, updated_at = now() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *IdentityRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM identity WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
