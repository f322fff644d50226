package db

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatsimonsguy/pompput-sizer/internal/model"
	"github.com/thatsimonsguy/pompput-sizer/internal/tables"
)

func setupTestDB(t *testing.T) (*sql.DB, string) {
	path := filepath.Join(t.TempDir(), "tables.db")
	conn, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn, path
}

func TestSeedAndLoadRoundTrip(t *testing.T) {
	conn, _ := setupTestDB(t)
	require.NoError(t, SeedDefaults(conn))

	rain, err := LoadRainfallTable(conn)
	require.NoError(t, err)
	assert.Equal(t, tables.DefaultRainfall().Entries(), rain.Entries())

	fittings, err := LoadFittingTable(conn)
	require.NoError(t, err)
	assert.Equal(t, tables.DefaultFittings().Entries(), fittings.Entries())

	row, err := fittings.Fittings(150)
	require.NoError(t, err)
	assert.Equal(t, "knie", row[0].Name)
	assert.Equal(t, "vlinderklep", row[len(row)-1].Name)
}

func TestSeedIsIdempotent(t *testing.T) {
	conn, _ := setupTestDB(t)
	require.NoError(t, SeedDefaults(conn))
	require.NoError(t, SeedDefaults(conn))

	entries, err := GetRainfallEntries(conn)
	require.NoError(t, err)
	assert.Len(t, entries, 24)

	fittings, err := GetFittingEntries(conn)
	require.NoError(t, err)
	assert.Len(t, fittings, 30)
}

func TestLoadEmptyTablesFails(t *testing.T) {
	conn, _ := setupTestDB(t)

	_, err := LoadRainfallTable(conn)
	assert.Error(t, err)

	_, err = LoadFittingTable(conn)
	assert.Error(t, err)
}

func TestSetRainfallDepth(t *testing.T) {
	conn, _ := setupTestDB(t)
	require.NoError(t, SeedDefaults(conn))

	require.NoError(t, SetRainfallDepth(conn, model.Duration30Min, 10, 45))

	depth, err := GetRainfallDepth(conn, model.Duration30Min, 10)
	require.NoError(t, err)
	assert.Equal(t, 45.0, depth)

	_, err = GetRainfallDepth(conn, model.Duration30Min, 20)
	assert.True(t, errors.Is(err, sql.ErrNoRows))

	assert.Error(t, SetRainfallDepth(conn, model.Duration30Min, 10, -1))
}

func TestSetFittingK(t *testing.T) {
	conn, _ := setupTestDB(t)
	require.NoError(t, SeedDefaults(conn))

	require.NoError(t, SetFittingK(conn, 150, "knie", 6.0))
	require.NoError(t, SetFittingK(conn, 150, "terugslagklep kogel", 12.0))

	fittings, err := LoadFittingTable(conn)
	require.NoError(t, err)

	k, err := fittings.K(150, "knie")
	require.NoError(t, err)
	assert.Equal(t, 6.0, k)

	row, err := fittings.Fittings(150)
	require.NoError(t, err)
	assert.Equal(t, "knie", row[0].Name, "updated fitting keeps its position")
	assert.Equal(t, "terugslagklep kogel", row[len(row)-1].Name)

	assert.Error(t, SetFittingK(conn, 150, "knie", -2))
}

func TestLoadTablesFromPath(t *testing.T) {
	conn, path := setupTestDB(t)
	require.NoError(t, SeedDefaults(conn))

	rain, fittings, err := LoadTables(path)
	require.NoError(t, err)

	depth, err := rain.Depth(model.Duration10Min, 100)
	require.NoError(t, err)
	assert.Equal(t, 43.0, depth)
	assert.Equal(t, []int{100, 150, 200}, fittings.Diameters())
}
