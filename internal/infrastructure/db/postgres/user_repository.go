package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acquisitions/user-api/internal/core/domain"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint breach.
const uniqueViolation = "23505"

// projectionColumns are the public-safe fields returned by every query that
// yields a projection. The password column is only ever read by FindByEmail.
const projectionColumns = "id, name, email, role, created_at, updated_at"

// UserRepository persists users in Postgres through a shared pgx pool.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.Projection, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+projectionColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.Projection, 0)
	for rows.Next() {
		var u domain.Projection
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx,
		"SELECT id, name, email, password, role, created_at, updated_at FROM users WHERE email = $1",
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (domain.Projection, error) {
	var u domain.Projection
	err := r.pool.QueryRow(ctx,
		"SELECT "+projectionColumns+" FROM users WHERE id = $1", id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Projection{}, domain.ErrUserNotFound
		}
		return domain.Projection{}, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

func (r *UserRepository) Insert(ctx context.Context, name, email, passwordHash, role string) (domain.Projection, error) {
	var u domain.Projection
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+projectionColumns,
		name, email, passwordHash, role,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Projection{}, domain.ErrUserExists
		}
		return domain.Projection{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// Update applies only the provided fields and always refreshes updated_at.
func (r *UserRepository) Update(ctx context.Context, id int64, upd domain.UserUpdate) (domain.Projection, error) {
	set := make([]string, 0, 5)
	args := make([]any, 0, 5)

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.PasswordHash != nil {
		add("password", *upd.PasswordHash)
	}
	if upd.Role != nil {
		add("role", *upd.Role)
	}
	set = append(set, "updated_at = now()")

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE users SET %s WHERE id = $%d RETURNING %s",
		strings.Join(set, ", "), len(args), projectionColumns,
	)

	var u domain.Projection
	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Projection{}, domain.ErrUserNotFound
		}
		if isUniqueViolation(err) {
			return domain.Projection{}, domain.ErrUserExists
		}
		return domain.Projection{}, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) (domain.Projection, error) {
	var u domain.Projection
	err := r.pool.QueryRow(ctx,
		"DELETE FROM users WHERE id = $1 RETURNING "+projectionColumns, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Projection{}, domain.ErrUserNotFound
		}
		return domain.Projection{}, fmt.Errorf("delete user: %w", err)
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
