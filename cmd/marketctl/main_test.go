package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/config"
	"marketplace/internal/storage"
)

func withMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	orig := openDB
	openDB = func(context.Context, config.DatabaseConfig) (*sql.DB, error) { return db, nil }
	t.Cleanup(func() { openDB = orig })
	return mock
}

func TestRun_Usage(t *testing.T) {
	cfg := &config.AppConfig{}
	var out bytes.Buffer

	tests := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"drop-everything"}},
		{"promote without email", []string{"promote"}},
		{"unknown flag", []string{"migrate", "--force"}},
		{"stray argument", []string{"migrate", "now"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(context.Background(), cfg, tt.args, &out)
			assert.ErrorIs(t, err, errUsage)
		})
	}
}

func TestRun_Migrate(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT to_regclass($1) IS NOT NULL")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectClose()

	var out bytes.Buffer
	err := run(context.Background(), &config.AppConfig{}, []string{"migrate"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "schema up to date\n", out.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_Promote(t *testing.T) {
	mock := withMockDB(t)
	rows := sqlmock.NewRows([]string{"id", "full_name", "email", "phone", "role", "verified", "suspended", "created_at"}).
		AddRow("u1", "Mona", "mona@example.com", "", "resident", false, false, time.Now())
	mock.ExpectQuery(`SELECT (.+) FROM profiles WHERE email = \$1`).WithArgs("mona@example.com").WillReturnRows(rows)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE profiles SET role = $1 WHERE id = $2")).
		WithArgs("admin", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectClose()

	var out bytes.Buffer
	err := run(context.Background(), &config.AppConfig{}, []string{"promote", "--email", "Mona@Example.com"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "mona@example.com (u1) is now admin\n", out.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_PromoteUnknownEmail(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectQuery(`SELECT (.+) FROM profiles WHERE email = \$1`).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectClose()

	err := run(context.Background(), &config.AppConfig{}, []string{"promote", "--email=ghost@example.com"}, &bytes.Buffer{})

	assert.ErrorContains(t, err, "not found")
}

func TestRun_SweepStorageError(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectClose()

	orig := openStore
	openStore = func(config.MinIOConfig) (storage.Storage, error) { return nil, errors.New("no endpoint") }
	t.Cleanup(func() { openStore = orig })

	err := run(context.Background(), &config.AppConfig{}, []string{"sweep"}, &bytes.Buffer{})

	assert.ErrorContains(t, err, "object storage: no endpoint")
}

func TestRun_DatabaseUnavailable(t *testing.T) {
	orig := openDB
	openDB = func(context.Context, config.DatabaseConfig) (*sql.DB, error) { return nil, errors.New("db ping: refused") }
	t.Cleanup(func() { openDB = orig })

	err := run(context.Background(), &config.AppConfig{}, []string{"migrate"}, &bytes.Buffer{})

	assert.ErrorContains(t, err, "db ping")
}
