package assetstore_test

import (
	"context"
	"errors"
	"testing"

	"controller-cleaner/core/assetstore"
	"controller-cleaner/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestDatabaseBackend(t *testing.T) {
	ctx := context.Background()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	backend := assetstore.NewDatabaseBackend(db)
	require.NoError(t, backend.Migrate())
	require.NoError(t, backend.Verify())

	_, err = backend.Read(ctx, "hero")
	assert.ErrorIs(t, err, assetstore.ErrNotFound)

	require.NoError(t, backend.Write(ctx, "hero", []byte("v1")))
	require.NoError(t, backend.Write(ctx, "hero", []byte("v2")))
	require.NoError(t, backend.Write(ctx, "boss", []byte("v1")))

	data, err := backend.Read(ctx, "hero")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))

	keys, err := backend.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"boss", "hero"}, keys)
}

func TestDatabaseBackend_VerifyMissingTable(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	err = assetstore.NewDatabaseBackend(db).Verify()
	assert.ErrorContains(t, err, "missing columns")
}

func TestDatabaseBackend_QueryError(t *testing.T) {
	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	sqlMock.ExpectQuery(".*").WillReturnError(errors.New("connection reset"))

	_, err = assetstore.NewDatabaseBackend(db).List(context.Background())
	assert.ErrorContains(t, err, "connection reset")
}
