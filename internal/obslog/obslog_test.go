package obslog

import (
	"os"
	"testing"
)

func TestNewWithEmptyDirLogsToStderr(t *testing.T) {
	logger := New("", "hamclockd")
	if logger == nil {
		t.Fatal("New returned nil logger")
	}
}

func TestNewWithDirCreatesDailyLogFile(t *testing.T) {
	dir := t.TempDir()
	logger := New(dir, "hamclockd")
	logger.Info("test message")

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected dailylogger to create at least one log file on write")
	}
}
