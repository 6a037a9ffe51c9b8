package migrations

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMigratorWithMock(t *testing.T) (*Migrator, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewMigrator(mock, zerolog.Nop()), mock
}

func TestApplyFile_SkipsAppliedMigration(t *testing.T) {
	m, mock := newMigratorWithMock(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("001").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	err := m.applyFile(context.Background(), "001_init.sql")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyFile_RecordsVersionInsideTransaction(t *testing.T) {
	m, mock := newMigratorWithMock(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("001").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("INSERT INTO schema_migrations").
		WithArgs("001", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := m.applyFile(context.Background(), "001_init.sql")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyFile_FailedCommitRecordsNothing(t *testing.T) {
	m, mock := newMigratorWithMock(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("001").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("INSERT INTO schema_migrations").
		WithArgs("001", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit().WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := m.applyFile(context.Background(), "001_init.sql")
	require.Error(t, err)

	// The version row rides the migration transaction, so the failed
	// commit discards it along with the schema changes.
	assert.NoError(t, mock.ExpectationsWereMet())
}
