package db

import (
	"database/sql"
	"fmt"

	"github.com/thatsimonsguy/pompput-sizer/internal/model"
	"github.com/thatsimonsguy/pompput-sizer/internal/tables"
)

// StartTransaction starts a new database transaction.
func StartTransaction(db *sql.DB) (*sql.Tx, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	return tx, nil
}

// CommitTransaction commits the given transaction.
func CommitTransaction(tx *sql.Tx) error {
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RollbackTransaction rolls back the given transaction. It is a no-op after
// a successful commit.
func RollbackTransaction(tx *sql.Tx) {
	tx.Rollback()
}

func UpsertRainfallWithTx(tx *sql.Tx, r tables.RainfallEntry) error {
	if r.DepthMM < 0 {
		return fmt.Errorf("rainfall depth %.1f mm is negative", r.DepthMM)
	}
	_, err := tx.Exec(`INSERT OR REPLACE INTO rainfall (duration_min, return_period, depth_mm) VALUES (?, ?, ?)`,
		int(r.Duration), int(r.ReturnPeriod), r.DepthMM)
	if err != nil {
		return fmt.Errorf("failed to upsert rainfall %d min / T=%d: %w", r.Duration, r.ReturnPeriod, err)
	}
	return nil
}

// UpsertFittingWithTx inserts or updates a fitting. An existing fitting
// keeps its position; position is only used for new rows.
func UpsertFittingWithTx(tx *sql.Tx, f tables.FittingEntry, position int) error {
	if f.K < 0 {
		return fmt.Errorf("fitting K %.2f is negative", f.K)
	}
	_, err := tx.Exec(`INSERT INTO fittings (diameter_mm, name, k, position) VALUES (?, ?, ?, ?)
		ON CONFLICT (diameter_mm, name) DO UPDATE SET k = excluded.k`,
		f.DiameterMM, f.Name, f.K, position)
	if err != nil {
		return fmt.Errorf("failed to upsert fitting %s DN%d: %w", f.Name, f.DiameterMM, err)
	}
	return nil
}

func nextFittingPosition(tx *sql.Tx, dn int) (int, error) {
	var pos int
	err := tx.QueryRow(`SELECT COALESCE(MAX(position) + 1, 0) FROM fittings WHERE diameter_mm = ?`, dn).Scan(&pos)
	if err != nil {
		return 0, fmt.Errorf("failed to read fitting positions for DN%d: %w", dn, err)
	}
	return pos, nil
}

// SetRainfallDepth updates one rainfall cell.
func SetRainfallDepth(db *sql.DB, d model.RainDuration, rp model.ReturnPeriod, depthMM float64) error {
	tx, err := StartTransaction(db)
	if err != nil {
		return err
	}
	if err := UpsertRainfallWithTx(tx, tables.RainfallEntry{Duration: d, ReturnPeriod: rp, DepthMM: depthMM}); err != nil {
		RollbackTransaction(tx)
		return err
	}
	return CommitTransaction(tx)
}

// SetFittingK updates a fitting coefficient, appending new fittings at the
// end of their diameter row.
func SetFittingK(db *sql.DB, dn int, name string, k float64) error {
	tx, err := StartTransaction(db)
	if err != nil {
		return err
	}
	pos, err := nextFittingPosition(tx, dn)
	if err != nil {
		RollbackTransaction(tx)
		return err
	}
	if err := UpsertFittingWithTx(tx, tables.FittingEntry{DiameterMM: dn, Name: name, K: k}, pos); err != nil {
		RollbackTransaction(tx)
		return err
	}
	return CommitTransaction(tx)
}
