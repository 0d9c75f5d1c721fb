package history

import (
	"path/filepath"
	"testing"
	"time"
)

// testDB creates a temporary database for testing
func testDB(t *testing.T) *DB {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func sampleRun(started time.Time) *Run {
	return &Run{
		StartedAt:      started,
		Duration:       1500 * time.Millisecond,
		Root:           "/data/mc16",
		Tree:           "nominal_Loose",
		Mode:           "filtered",
		FilesTotal:     5,
		FilesProcessed: 4,
		FilesSkipped:   1,
		Samples:        3,
		TotalYield:     95,
		ReportPath:     "EventYields.log",
	}
}

func TestRecordRun_RoundTrip(t *testing.T) {
	db := testDB(t)

	started := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	created, err := db.RecordRun(sampleRun(started))
	if err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected non-zero ID after insert")
	}

	got, err := db.GetRun(created.ID)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}

	if got.Root != created.Root {
		t.Errorf("Root mismatch: got %q, want %q", got.Root, created.Root)
	}
	if got.Tree != created.Tree {
		t.Errorf("Tree mismatch: got %q, want %q", got.Tree, created.Tree)
	}
	if got.Mode != created.Mode {
		t.Errorf("Mode mismatch: got %q, want %q", got.Mode, created.Mode)
	}
	if got.Duration != 1500*time.Millisecond {
		t.Errorf("Duration mismatch: got %v, want 1.5s", got.Duration)
	}
	if got.FilesProcessed != 4 || got.FilesSkipped != 1 {
		t.Errorf("file counts mismatch: got %d/%d", got.FilesProcessed, got.FilesSkipped)
	}
	if got.TotalYield != 95 {
		t.Errorf("TotalYield mismatch: got %v, want 95", got.TotalYield)
	}
	if !got.StartedAt.Equal(started) {
		t.Errorf("StartedAt mismatch: got %v, want %v", got.StartedAt, started)
	}
}

func TestRecentRuns_OrderAndLimit(t *testing.T) {
	db := testDB(t)

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		r := sampleRun(base.Add(time.Duration(i) * time.Hour))
		r.Root = filepath.Join("/data", string(rune('a'+i)))
		if _, err := db.RecordRun(r); err != nil {
			t.Fatalf("RecordRun failed: %v", err)
		}
	}

	runs, err := db.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	// Most recent first
	for i := 1; i < len(runs); i++ {
		if runs[i].StartedAt.After(runs[i-1].StartedAt) {
			t.Errorf("runs out of order: %v before %v", runs[i-1].StartedAt, runs[i].StartedAt)
		}
	}
	if runs[0].Root != "/data/e" {
		t.Errorf("expected most recent run first, got root %q", runs[0].Root)
	}
}

func TestRecentRuns_Empty(t *testing.T) {
	db := testDB(t)

	runs, err := db.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
