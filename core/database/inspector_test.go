package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE documents (id INTEGER PRIMARY KEY, name TEXT NOT NULL, body BLOB)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "documents")
	require.NoError(t, err)
	require.Len(t, columns, 3)

	byName := make(map[string]ColumnInfo)
	for _, col := range columns {
		byName[col.Field] = col
	}
	assert.Equal(t, "integer", byName["id"].Type)
	assert.Equal(t, "PRI", byName["id"].Key)
	assert.Equal(t, "NO", byName["name"].Null)
	assert.Equal(t, "blob", byName["body"].Type)

	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE documents (\"key\" TEXT PRIMARY KEY, data BLOB)").Error)

	missing, err := MissingColumns(db, "documents", "key", "Data", "updated_at")
	require.NoError(t, err)
	assert.Equal(t, []string{"updated_at"}, missing)
}
