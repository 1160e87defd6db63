package migration

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sentinelQuery = regexp.QuoteMeta("SELECT to_regclass($1) IS NOT NULL")

func TestEnsureMigrated_Skip(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(sentinelQuery).
		WithArgs(sentinelTable).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	var buf bytes.Buffer
	err = ensureMigrated(context.Background(), db, zerolog.New(&buf))

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), `"event":"db_migration_skip"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureMigrated_RunsEveryStep(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(sentinelQuery).
		WithArgs(sentinelTable).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	for _, step := range steps {
		mock.ExpectExec(regexp.QuoteMeta(step.SQL)).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	var buf bytes.Buffer
	err = ensureMigrated(context.Background(), db, zerolog.New(&buf))

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), `"event":"db_migration_success"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureMigrated_StepFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(sentinelQuery).
		WithArgs(sentinelTable).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(regexp.QuoteMeta(steps[0].SQL)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(steps[1].SQL)).WillReturnError(errors.New("permission denied"))

	var buf bytes.Buffer
	err = ensureMigrated(context.Background(), db, zerolog.New(&buf))

	require.Error(t, err)
	assert.Contains(t, err.Error(), steps[1].Name)
	assert.Contains(t, buf.String(), `"migration_step":"`+steps[1].Name+`"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureMigrated_SentinelError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(sentinelQuery).WithArgs(sentinelTable).WillReturnError(errors.New("connection refused"))

	err = ensureMigrated(context.Background(), db, zerolog.Nop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to check sentinel table")
}

func TestSteps_SentinelCreatedLast(t *testing.T) {
	last := steps[len(steps)-1]
	assert.Contains(t, last.SQL, "idx_reports_created_at")
	assert.Equal(t, "public.idx_reports_created_at", sentinelTable)
}
