package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFilters(t *testing.T, path, body string, mod time.Time) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write filters: %v", err)
	}
	if err := os.Chtimes(path, mod, mod); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
}

func TestNewFiltersLoader_Defaults(t *testing.T) {
	l := NewFiltersLoader(FiltersConfig{})
	if l.reload != DefaultFiltersReload {
		t.Errorf("reload = %v, want %v", l.reload, DefaultFiltersReload)
	}
	if l.logger == nil {
		t.Error("expected logger to be set")
	}
}

func TestFiltersLoader_DisabledWithoutPath(t *testing.T) {
	l := NewFiltersLoader(FiltersConfig{Logger: quietLogger()})
	l.Start(context.Background())
	l.Stop()

	if got := l.Stats(); !got.LastCheck.IsZero() {
		t.Errorf("disabled loader should never check, LastCheck = %v", got.LastCheck)
	}
}

func TestFiltersLoader_Refresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logfilters.json")
	l := NewFiltersLoader(FiltersConfig{Path: path, Logger: quietLogger()})

	// Missing file keeps current filters.
	if l.Refresh() {
		t.Error("Refresh() = true for missing file")
	}

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	writeFilters(t, path, `[]`, base)
	if !l.Refresh() {
		t.Fatal("Refresh() = false for new file")
	}
	if got := l.Stats(); got.FilterCount != 0 || !got.ModTime.Equal(base) {
		t.Errorf("Stats() = %+v", got)
	}

	// Same mtime is not re-read.
	if l.Refresh() {
		t.Error("Refresh() = true for unchanged file")
	}

	// Malformed content is rejected and the previous state kept.
	writeFilters(t, path, `{not json`, base.Add(time.Minute))
	if l.Refresh() {
		t.Error("Refresh() = true for malformed file")
	}
	if got := l.Stats(); !got.ModTime.Equal(base) {
		t.Errorf("ModTime = %v, want unchanged %v", got.ModTime, base)
	}

	writeFilters(t, path, ` [ ] `, base.Add(2*time.Minute))
	if !l.Refresh() {
		t.Error("Refresh() = false after file changed")
	}
}

func TestFiltersLoader_StartStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logfilters.json")
	writeFilters(t, path, `[]`, time.Now())

	l := NewFiltersLoader(FiltersConfig{Path: path, Reload: time.Millisecond, Logger: quietLogger()})
	l.Start(context.Background())

	if got := l.Stats(); got.File != path || got.LastCheck.IsZero() {
		t.Errorf("Stats() after Start = %+v", got)
	}

	l.Stop()
	l.Stop()
}
