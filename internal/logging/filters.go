package logging

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	logfilter "github.com/jmylchreest/slog-logfilter"
)

// DefaultFiltersReload is how often the filters file is checked for changes.
const DefaultFiltersReload = time.Minute

// FiltersConfig holds configuration for the log filters loader.
type FiltersConfig struct {
	Path   string        // JSON array of logfilter.LogFilter; empty disables the loader
	Reload time.Duration // default: DefaultFiltersReload
	Logger *slog.Logger
}

// FiltersLoader applies runtime log filters from a local JSON file.
// The file is re-read only when its modification time changes. A missing or
// malformed file keeps whatever filters are currently installed.
type FiltersLoader struct {
	path   string
	reload time.Duration
	logger *slog.Logger

	mu          sync.RWMutex
	modTime     time.Time
	lastCheck   time.Time
	filterCount int

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewFiltersLoader creates a loader. Call Start to apply the file.
func NewFiltersLoader(cfg FiltersConfig) *FiltersLoader {
	if cfg.Reload <= 0 {
		cfg.Reload = DefaultFiltersReload
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &FiltersLoader{
		path:   cfg.Path,
		reload: cfg.Reload,
		logger: cfg.Logger,
		stopCh: make(chan struct{}),
	}
}

// Start applies the filters file and then watches it until ctx ends or Stop is called.
func (l *FiltersLoader) Start(ctx context.Context) {
	if l.path == "" {
		l.logger.Debug("log filters loader disabled (set LOG_FILTERS_FILE to enable)")
		return
	}

	l.Refresh()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		ticker := time.NewTicker(l.reload)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				l.Refresh()
			case <-l.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	stats := l.Stats()
	l.logger.Info("log filters loader started",
		"file", stats.File,
		"filters", stats.FilterCount,
		"reload", l.reload.String(),
	)
}

// Stop ends the watch loop. It is safe to call more than once.
func (l *FiltersLoader) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
	l.wg.Wait()
}

// Refresh re-reads the file if it changed since the last successful load.
// It reports whether new filters were installed.
func (l *FiltersLoader) Refresh() bool {
	now := time.Now()

	info, err := os.Stat(l.path)
	if err != nil {
		l.mu.Lock()
		l.lastCheck = now
		l.mu.Unlock()
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Debug("log filters file not found (keeping current filters)", "file", l.path)
		} else {
			l.logger.Error("failed to stat log filters file", "file", l.path, "error", err)
		}
		return false
	}

	l.mu.RLock()
	unchanged := !l.modTime.IsZero() && info.ModTime().Equal(l.modTime)
	l.mu.RUnlock()
	if unchanged {
		l.mu.Lock()
		l.lastCheck = now
		l.mu.Unlock()
		return false
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		l.logger.Error("failed to read log filters file", "file", l.path, "error", err)
		return false
	}

	var filters []logfilter.LogFilter
	if err := json.Unmarshal(data, &filters); err != nil {
		l.logger.Error("failed to parse log filters JSON", "file", l.path, "error", err)
		return false
	}

	logfilter.SetFilters(filters)

	activeCount := 0
	for _, f := range filters {
		if f.IsActive() {
			activeCount++
		}
	}

	l.mu.Lock()
	l.modTime = info.ModTime()
	l.lastCheck = now
	l.filterCount = len(filters)
	l.mu.Unlock()

	l.logger.Info("log filters loaded",
		"file", l.path,
		"total_filters", len(filters),
		"active_filters", activeCount,
	)
	return true
}

// FiltersStats describes the loader state.
type FiltersStats struct {
	File        string    `json:"file"`
	FilterCount int       `json:"filter_count"`
	ModTime     time.Time `json:"mod_time"`
	LastCheck   time.Time `json:"last_check"`
}

// Stats returns current loader statistics.
func (l *FiltersLoader) Stats() FiltersStats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return FiltersStats{
		File:        l.path,
		FilterCount: l.filterCount,
		ModTime:     l.modTime,
		LastCheck:   l.lastCheck,
	}
}
