package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"awards-portal/internal/common/config"
)

func TestMigrate_AppliesEmbeddedSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS applications`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_ReportsFailingFile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE`).WillReturnError(errors.New("permission denied"))

	err = Migrate(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "001_create_applications.sql")
	assert.Contains(t, err.Error(), "permission denied")
}

func TestNewRedis_RequiresAddress(t *testing.T) {
	_, err := NewRedis(config.RedisConfig{})
	assert.Error(t, err)

	client, err := NewRedis(config.RedisConfig{Address: "localhost:6379"})
	require.NoError(t, err)
	assert.NoError(t, client.Close())
}

func TestPostgresConfig_DSN(t *testing.T) {
	cfg := config.PostgresConfig{Host: "db", Port: 5432, User: "awards", Password: "pw", Database: "awards", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=awards password=pw dbname=awards sslmode=disable", cfg.GetDSN())
}
