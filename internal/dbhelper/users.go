package dbhelper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/metinatakli/cinescope-autotests/internal/domain"
)

const userColumns = `id, email, full_name, password, created_at, updated_at, verified, banned, roles`

type UserHelper struct {
	db DBTX
}

func NewUserHelper(db DBTX) *UserHelper {
	return &UserHelper{db: db}
}

// CreateTestUser inserts u as is. The password hash must already be set.
func (h *UserHelper) CreateTestUser(ctx context.Context, u *domain.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO users (id, email, full_name, password, created_at, verified, banned, roles)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := h.db.Exec(ctx, query,
		u.ID,
		u.Email,
		u.FullName,
		string(u.Password.Hash),
		u.CreatedAt,
		u.Verified,
		u.Banned,
		u.Roles.Strings())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrUserAlreadyExists
		}

		return err
	}

	return nil
}

// GetByID returns nil, nil when the user does not exist.
func (h *UserHelper) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return h.one(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (h *UserHelper) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return h.one(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (h *UserHelper) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var ok bool

	err := h.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&ok)
	if err != nil {
		return false, err
	}

	return ok, nil
}

// Delete returns domain.ErrRecordNotFound when no row was removed.
func (h *UserHelper) Delete(ctx context.Context, id string) error {
	tag, err := h.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

// Cleanup deletes every user in users, skipping nils and users already gone.
func (h *UserHelper) Cleanup(ctx context.Context, users []*domain.User) error {
	var errs []error

	for _, u := range users {
		if u == nil {
			continue
		}

		if err := h.Delete(ctx, u.ID); err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
			errs = append(errs, fmt.Errorf("delete user %s: %w", u.Email, err))
		}
	}

	return errors.Join(errs...)
}

// DeleteByEmailPattern removes users whose email matches the SQL LIKE
// pattern and returns how many were removed.
func (h *UserHelper) DeleteByEmailPattern(ctx context.Context, pattern string) (int64, error) {
	tag, err := h.db.Exec(ctx, `DELETE FROM users WHERE email LIKE $1 AND NOT ('SUPER_ADMIN' = ANY (roles))`, pattern)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (h *UserHelper) one(ctx context.Context, query string, arg any) (*domain.User, error) {
	var (
		u     domain.User
		hash  string
		roles []string
	)

	err := h.db.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.Email,
		&u.FullName,
		&hash,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.Verified,
		&u.Banned,
		&roles,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	u.Password.Hash = []byte(hash)

	u.Roles, err = domain.ParseRoles(roles...)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", u.ID, err)
	}

	return &u, nil
}
