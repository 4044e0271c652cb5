package dbhelper

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/metinatakli/cinescope-autotests/internal/domain"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{"id", "email", "full_name", "password", "created_at", "updated_at", "verified", "banned", "roles"}

func TestUserHelper_CreateTestUser(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "created"},
		{name: "duplicate email", err: &pgconn.PgError{Code: pgerrcode.UniqueViolation}, wantErr: domain.ErrUserAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			u := &domain.User{
				ID:       "u-1",
				Email:    "kekabc@gmail.com",
				FullName: "Test User",
				Roles:    domain.Roles{domain.RoleUser},
			}
			u.Password.Hash = []byte("$2a$12$hash")

			exp := mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
				WithArgs("u-1", "kekabc@gmail.com", "Test User", "$2a$12$hash", pgxmock.AnyArg(), false, false, []string{"USER"})
			if tt.err != nil {
				exp.WillReturnError(tt.err)
			} else {
				exp.WillReturnResult(pgxmock.NewResult("INSERT", 1))
			}

			err = NewUserHelper(mock).CreateTestUser(context.Background(), u)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserHelper_GetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("kekabc@gmail.com").
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow("u-1", "kekabc@gmail.com", "Test User", "$2a$12$hash", created, (*time.Time)(nil), true, false, []string{"USER", "ADMIN"}))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("missing@gmail.com").
		WillReturnError(pgx.ErrNoRows)

	h := NewUserHelper(mock)

	u, err := h.GetByEmail(context.Background(), "kekabc@gmail.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, domain.Roles{domain.RoleUser, domain.RoleAdmin}, u.Roles)
	assert.Equal(t, []byte("$2a$12$hash"), u.Password.Hash)
	assert.True(t, u.Verified)
	assert.Nil(t, u.UpdatedAt)

	u, err = h.GetByEmail(context.Background(), "missing@gmail.com")
	require.NoError(t, err)
	assert.Nil(t, u)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserHelper_DeleteAndCleanup(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
		WithArgs("gone").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
		WithArgs("u-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
		WithArgs("u-2").
		WillReturnError(errors.New("connection reset"))

	h := NewUserHelper(mock)

	assert.ErrorIs(t, h.Delete(context.Background(), "gone"), domain.ErrRecordNotFound)

	err = h.Cleanup(context.Background(), []*domain.User{nil, {ID: "u-1"}, {ID: "u-2", Email: "b@gmail.com"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b@gmail.com")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserHelper_ExistsByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1)")).
		WithArgs("kekabc@gmail.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := NewUserHelper(mock).ExistsByEmail(context.Background(), "kekabc@gmail.com")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
