// Package postgres provides PostgreSQL implementations of the repositories.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"rentx/internal/rentx/domain/entities"
	"rentx/internal/rentx/ports/repositories"
	"rentx/pkg/logger"
)

// PgxPoolInterface is the subset of pgxpool.Pool the repositories need; it
// lets tests substitute pgxmock.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
}

const uniqueViolationCode = "23505"

const userColumns = `
        id, username, email, password_hash, first_name, last_name,
        phone_number, address, city, state, zip_code, profile_photo,
        date_of_birth, occupation, preferred_rental_type, max_budget,
        is_verified, member_since, created_at, updated_at`

// UserRepository implements repositories.UserRepository over Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository creates a new user repository.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.PhoneNumber,
		&user.Address,
		&user.City,
		&user.State,
		&user.ZipCode,
		&user.ProfilePhoto,
		&user.DateOfBirth,
		&user.Occupation,
		&user.PreferredRentalType,
		&user.MaxBudget,
		&user.IsVerified,
		&user.MemberSince,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create persists a new user. Username and email uniqueness is enforced by
// the store; violations surface as entities.ErrUserAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	query := `
        INSERT INTO users (username, email, password_hash, preferred_rental_type)
        VALUES ($1, $2, $3, $4)
        RETURNING id, member_since, created_at, updated_at
    `

	err := r.pool.QueryRow(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.PreferredRentalType,
	).Scan(&user.ID, &user.MemberSince, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			log.Debug(ctx, "duplicate username or email", zap.String("username", user.Username))
			return nil, entities.ErrUserAlreadyExists
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error inserting user: %w", err)
	}

	return user, nil
}

// FindByID finds a user by ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	query := `SELECT` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by id", zap.Error(err))
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}

	return user, nil
}

// FindByLogin finds a user by username or email.
func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByLogin"))

	query := `SELECT` + userColumns + ` FROM users WHERE username = $1 OR email = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, login))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found by login")
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by login", zap.Error(err))
		return nil, fmt.Errorf("error querying user by login: %w", err)
	}

	return user, nil
}

// FindByEmail finds a user by email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByEmail"))

	query := `SELECT` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("email", email))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by email", zap.Error(err))
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}

	return user, nil
}

// FindByUsername finds a user by username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByUsername"))

	query := `SELECT` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("username", username))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by username", zap.Error(err))
		return nil, fmt.Errorf("error querying user by username: %w", err)
	}

	return user, nil
}

// Update overwrites the user's profile fields.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Update"))

	query := `
        UPDATE users SET
            first_name = $1, last_name = $2, phone_number = $3, address = $4,
            city = $5, state = $6, zip_code = $7, profile_photo = $8,
            date_of_birth = $9, occupation = $10, preferred_rental_type = $11,
            max_budget = $12, updated_at = now()
        WHERE id = $13
        RETURNING updated_at
    `

	err := r.pool.QueryRow(ctx, query,
		user.FirstName, user.LastName, user.PhoneNumber, user.Address,
		user.City, user.State, user.ZipCode, user.ProfilePhoto,
		user.DateOfBirth, user.Occupation, user.PreferredRentalType,
		user.MaxBudget, user.ID,
	).Scan(&user.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("id", user.ID))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error updating user", zap.Error(err))
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	return user, nil
}
