package history

import (
	"database/sql"
	"fmt"
	"time"
)

// RecordRun inserts a completed run and returns it with the ID set.
func (db *DB) RecordRun(r *Run) (*Run, error) {
	result, err := db.Exec(`
		INSERT INTO runs (started_at, duration_ms, root, tree, mode,
			files_total, files_processed, files_skipped, samples, total_yield, report_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.StartedAt, r.Duration.Milliseconds(), r.Root, r.Tree, r.Mode,
		r.FilesTotal, r.FilesProcessed, r.FilesSkipped, r.Samples, r.TotalYield, r.ReportPath,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get run id: %w", err)
	}
	r.ID = id
	return r, nil
}

// GetRun fetches a single run by ID.
func (db *DB) GetRun(id int64) (*Run, error) {
	row := db.QueryRow(`
		SELECT id, started_at, duration_ms, root, tree, mode,
			files_total, files_processed, files_skipped, samples, total_yield, report_path
		FROM runs WHERE id = ?`, id)
	return scanRun(row)
}

// RecentRuns returns up to limit runs, most recent first.
func (db *DB) RecentRuns(limit int) ([]*Run, error) {
	rows, err := db.Query(`
		SELECT id, started_at, duration_ms, root, tree, mode,
			files_total, files_processed, files_skipped, samples, total_yield, report_path
		FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r, err := scanRunRow(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func scanRun(row *sql.Row) (*Run, error) {
	var r Run
	var durationMS int64
	err := row.Scan(&r.ID, &r.StartedAt, &durationMS, &r.Root, &r.Tree, &r.Mode,
		&r.FilesTotal, &r.FilesProcessed, &r.FilesSkipped, &r.Samples, &r.TotalYield, &r.ReportPath)
	if err != nil {
		return nil, err
	}
	r.Duration = time.Duration(durationMS) * time.Millisecond
	return &r, nil
}

func scanRunRow(rows *sql.Rows) (*Run, error) {
	var r Run
	var durationMS int64
	err := rows.Scan(&r.ID, &r.StartedAt, &durationMS, &r.Root, &r.Tree, &r.Mode,
		&r.FilesTotal, &r.FilesProcessed, &r.FilesSkipped, &r.Samples, &r.TotalYield, &r.ReportPath)
	if err != nil {
		return nil, err
	}
	r.Duration = time.Duration(durationMS) * time.Millisecond
	return &r, nil
}
