// Package history persists one record per completed tabulation run in a
// local SQLite database, so past yield totals can be compared over time.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite handle together with the query helpers.
type DB struct {
	*sql.DB
}

// Open opens the history database at path, creating the file and parent
// directory if needed, and brings the schema up to date.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	// The database is only touched by one process at a time; a single
	// connection avoids SQLITE_BUSY with the pure-Go driver.
	sqlDB.SetMaxOpenConns(1)

	db := &DB{sqlDB}
	if err := db.Migrate(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}
