package history

import (
	"time"
)

// Run is one completed tabulation run.
type Run struct {
	ID             int64
	StartedAt      time.Time
	Duration       time.Duration
	Root           string
	Tree           string
	Mode           string
	FilesTotal     int64
	FilesProcessed int64
	FilesSkipped   int64
	Samples        int64
	TotalYield     float64
	ReportPath     string
}
