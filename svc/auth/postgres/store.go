// Package postgres implements auth.UserStore on top of a pgx connection pool.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taexpense/auth-service/pkg/pg"
	"github.com/taexpense/auth-service/svc/auth"
)

// UserStore persists user records in the users table.
type UserStore struct {
	pool *pgxpool.Pool
}

var _ auth.UserStore = (*UserStore)(nil)

// NewUserStore creates a store over the given pool.
func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	const query = `
		SELECT id, email, password_hash, display_name, provider, provider_id,
		       otp_code, otp_expires_at, created_at, updated_at
		FROM users
		WHERE email = $1`

	var u auth.User
	err := s.pool.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.Provider, &u.ProviderID,
		&u.OTPCode, &u.OTPExpiresAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: find user by email: %v", auth.ErrStore, err)
	}
	return &u, nil
}

func (s *UserStore) Insert(ctx context.Context, u auth.NewUser) (int64, error) {
	const query = `
		INSERT INTO users (email, password_hash, display_name, provider, provider_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id int64
	err := s.pool.QueryRow(ctx, query,
		u.Email, u.PasswordHash, u.DisplayName, u.Provider, u.ProviderID,
	).Scan(&id)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return 0, auth.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("%w: insert user: %v", auth.ErrStore, err)
	}
	return id, nil
}

func (s *UserStore) SetOTP(ctx context.Context, email, code string, expiresAt time.Time) error {
	const query = `
		UPDATE users
		SET otp_code = $2, otp_expires_at = $3, updated_at = now()
		WHERE email = $1`

	tag, err := s.pool.Exec(ctx, query, email, code, expiresAt)
	if err != nil {
		return fmt.Errorf("%w: set otp: %v", auth.ErrStore, err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

// ConsumeOTP atomically clears a matching, unexpired code. The conditional
// update is the single authority on validity, so two concurrent attempts
// with the same code cannot both succeed.
func (s *UserStore) ConsumeOTP(ctx context.Context, email, code string) (bool, error) {
	const query = `
		UPDATE users
		SET otp_code = NULL, otp_expires_at = NULL, updated_at = now()
		WHERE email = $1
		  AND otp_code = $2
		  AND otp_expires_at > now()`

	tag, err := s.pool.Exec(ctx, query, email, code)
	if err != nil {
		return false, fmt.Errorf("%w: consume otp: %v", auth.ErrStore, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (s *UserStore) UpdatePassword(ctx context.Context, email, newHash string) error {
	const query = `
		UPDATE users
		SET password_hash = $2, updated_at = now()
		WHERE email = $1`

	tag, err := s.pool.Exec(ctx, query, email, newHash)
	if err != nil {
		return fmt.Errorf("%w: update password: %v", auth.ErrStore, err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}
