package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/pompput-sizer/internal/tables"
)

const schema = `
CREATE TABLE IF NOT EXISTS rainfall (
	duration_min  INTEGER NOT NULL,
	return_period INTEGER NOT NULL,
	depth_mm      REAL NOT NULL CHECK (depth_mm >= 0),
	PRIMARY KEY (duration_min, return_period)
);

CREATE TABLE IF NOT EXISTS fittings (
	diameter_mm INTEGER NOT NULL,
	name        TEXT NOT NULL,
	k           REAL NOT NULL CHECK (k >= 0),
	position    INTEGER NOT NULL,
	PRIMARY KEY (diameter_mm, name)
);
`

// Open opens (or creates) the reference-table database and applies the schema.
func Open(dbPath string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := ApplySchema(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

func ApplySchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// SeedDatabase writes the given entries in one transaction, replacing any
// rows with the same key.
func SeedDatabase(db *sql.DB, rainfall []tables.RainfallEntry, fittings []tables.FittingEntry) error {
	tx, err := StartTransaction(db)
	if err != nil {
		return err
	}
	defer RollbackTransaction(tx)

	for _, r := range rainfall {
		if err := UpsertRainfallWithTx(tx, r); err != nil {
			return err
		}
	}

	positions := map[int]int{}
	for _, f := range fittings {
		if err := UpsertFittingWithTx(tx, f, positions[f.DiameterMM]); err != nil {
			return err
		}
		positions[f.DiameterMM]++
	}

	if err := CommitTransaction(tx); err != nil {
		return err
	}

	log.Info().
		Int("rainfall_rows", len(rainfall)).
		Int("fitting_rows", len(fittings)).
		Msg("Reference tables seeded")
	return nil
}

// SeedDefaults seeds the embedded RIONED and fitting tables.
func SeedDefaults(db *sql.DB) error {
	return SeedDatabase(db, tables.DefaultRainfallEntries(), tables.DefaultFittingEntries())
}
