package db

import (
	"database/sql"
	"fmt"

	"github.com/thatsimonsguy/pompput-sizer/internal/model"
	"github.com/thatsimonsguy/pompput-sizer/internal/tables"
)

// GetRainfallEntries returns all rainfall rows ordered by key.
func GetRainfallEntries(db *sql.DB) ([]tables.RainfallEntry, error) {
	rows, err := db.Query(`SELECT duration_min, return_period, depth_mm FROM rainfall ORDER BY duration_min, return_period`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rainfall: %w", err)
	}
	defer rows.Close()

	var entries []tables.RainfallEntry
	for rows.Next() {
		var duration, returnPeriod int
		var depth float64
		if err := rows.Scan(&duration, &returnPeriod, &depth); err != nil {
			return nil, fmt.Errorf("failed to scan rainfall row: %w", err)
		}
		entries = append(entries, tables.RainfallEntry{
			Duration:     model.RainDuration(duration),
			ReturnPeriod: model.ReturnPeriod(returnPeriod),
			DepthMM:      depth,
		})
	}
	return entries, rows.Err()
}

// GetFittingEntries returns all fitting rows ordered by diameter, then the
// position they were seeded at.
func GetFittingEntries(db *sql.DB) ([]tables.FittingEntry, error) {
	rows, err := db.Query(`SELECT diameter_mm, name, k FROM fittings ORDER BY diameter_mm, position, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query fittings: %w", err)
	}
	defer rows.Close()

	var entries []tables.FittingEntry
	for rows.Next() {
		var f tables.FittingEntry
		if err := rows.Scan(&f.DiameterMM, &f.Name, &f.K); err != nil {
			return nil, fmt.Errorf("failed to scan fitting row: %w", err)
		}
		entries = append(entries, f)
	}
	return entries, rows.Err()
}

// GetRainfallDepth returns a single depth, or sql.ErrNoRows wrapped.
func GetRainfallDepth(db *sql.DB, d model.RainDuration, rp model.ReturnPeriod) (float64, error) {
	var depth float64
	err := db.QueryRow(`SELECT depth_mm FROM rainfall WHERE duration_min = ? AND return_period = ?`, int(d), int(rp)).Scan(&depth)
	if err != nil {
		return 0, fmt.Errorf("failed to get rainfall %d min / T=%d: %w", d, rp, err)
	}
	return depth, nil
}

func LoadRainfallTable(db *sql.DB) (*tables.RainfallTable, error) {
	entries, err := GetRainfallEntries(db)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("rainfall table is empty; seed the database first")
	}
	return tables.NewRainfallTable(entries)
}

func LoadFittingTable(db *sql.DB) (*tables.FittingTable, error) {
	entries, err := GetFittingEntries(db)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("fitting table is empty; seed the database first")
	}
	return tables.NewFittingTable(entries)
}

// LoadTables opens dbPath and reads both reference tables.
func LoadTables(dbPath string) (*tables.RainfallTable, *tables.FittingTable, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return nil, nil, err
	}
	defer conn.Close()

	rain, err := LoadRainfallTable(conn)
	if err != nil {
		return nil, nil, err
	}
	fittings, err := LoadFittingTable(conn)
	if err != nil {
		return nil, nil, err
	}
	return rain, fittings, nil
}
