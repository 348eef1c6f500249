package config

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockExecer(t *testing.T) pgxmock.PgxPoolIface {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestInitSchema(t *testing.T) {
	mock := newMockExecer(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS tb_users`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	err := InitSchema(context.Background(), mock)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitSchema_Error(t *testing.T) {
	mock := newMockExecer(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS tb_users`).
		WillReturnError(errors.New("permission denied"))

	err := InitSchema(context.Background(), mock)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedAdmin_EmptyDatabase(t *testing.T) {
	mock := newMockExecer(t)

	// Pins the seeded row: username admin, role 'a', default full name and email
	mock.ExpectExec(regexp.QuoteMeta(`VALUES ('admin', $1, 'Administrator', 'a', 'admin@hotel.com')`)).
		WithArgs("hashed-admin").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := SeedAdmin(context.Background(), mock, "hashed-admin")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedAdmin_RerunIsNoOp(t *testing.T) {
	mock := newMockExecer(t)

	// The conflict clause keys the insert on username, so a second run
	// touches zero rows and still succeeds
	mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (username) DO NOTHING`)).
		WithArgs("hashed-admin").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	err := SeedAdmin(context.Background(), mock, "hashed-admin")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedAdmin_Error(t *testing.T) {
	mock := newMockExecer(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO tb_users`)).
		WithArgs("hashed-admin").
		WillReturnError(errors.New("connection reset"))

	err := SeedAdmin(context.Background(), mock, "hashed-admin")

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
