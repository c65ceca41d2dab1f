// Package shutdown provides idle monitoring for scale-to-zero deployments.
package shutdown

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultCheckInterval is how often the monitor evaluates idleness.
const DefaultCheckInterval = 10 * time.Second

// IdleMonitor tracks in-flight requests and signals when the server has had
// none for the configured timeout. Probe and scrape requests do not count as
// activity. A zero timeout disables the monitor.
type IdleMonitor struct {
	timeout  time.Duration
	interval time.Duration
	logger   *slog.Logger
	isProbe  func(*http.Request) bool

	active      atomic.Int64
	lastRequest atomic.Int64 // unix nanos

	shutdownCh chan struct{}
	stopCh     chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

// IdleConfig configures an IdleMonitor.
type IdleConfig struct {
	Timeout       time.Duration
	CheckInterval time.Duration
	Logger        *slog.Logger

	// IsProbe reports requests that should not keep the server alive.
	// Defaults to IsProbe.
	IsProbe func(*http.Request) bool
}

// NewIdleMonitor creates a monitor. Call Start to begin watching.
func NewIdleMonitor(cfg IdleConfig) *IdleMonitor {
	m := &IdleMonitor{
		timeout:    cfg.Timeout,
		interval:   cfg.CheckInterval,
		logger:     cfg.Logger,
		isProbe:    cfg.IsProbe,
		shutdownCh: make(chan struct{}),
		stopCh:     make(chan struct{}),
	}
	if m.interval <= 0 {
		m.interval = DefaultCheckInterval
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.isProbe == nil {
		m.isProbe = IsProbe
	}
	m.lastRequest.Store(time.Now().UnixNano())
	return m
}

// IsEnabled returns true if idle monitoring is enabled (timeout > 0).
func (m *IdleMonitor) IsEnabled() bool {
	return m.timeout > 0
}

// Start begins monitoring. It is a no-op when disabled.
func (m *IdleMonitor) Start() {
	if !m.IsEnabled() {
		m.logger.Debug("idle monitoring disabled (set IDLE_TIMEOUT to enable)")
		return
	}
	m.logger.Info("idle monitoring started", "timeout", m.timeout)

	m.wg.Add(1)
	go m.run()
}

// Stop ends monitoring and waits for the watcher to exit.
func (m *IdleMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
	m.wg.Wait()
}

func (m *IdleMonitor) run() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			idle := m.IdleTime()
			if idle > m.timeout && m.active.Load() == 0 {
				m.logger.Info("idle timeout reached, signaling graceful shutdown",
					"idle_time", idle.Round(time.Millisecond),
					"timeout", m.timeout,
				)
				close(m.shutdownCh)
				return
			}
		}
	}
}

// Middleware counts requests as activity.
func (m *IdleMonitor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.isProbe(r) {
			next.ServeHTTP(w, r)
			return
		}

		m.active.Add(1)
		m.touch()
		defer func() {
			m.active.Add(-1)
			m.touch()
		}()
		next.ServeHTTP(w, r)
	})
}

func (m *IdleMonitor) touch() {
	m.lastRequest.Store(time.Now().UnixNano())
}

// ShutdownChan is closed when the idle timeout fires.
func (m *IdleMonitor) ShutdownChan() <-chan struct{} {
	return m.shutdownCh
}

// ActiveRequests returns the number of in-flight tracked requests.
func (m *IdleMonitor) ActiveRequests() int64 {
	return m.active.Load()
}

// IdleTime returns how long ago the last tracked request started or ended.
func (m *IdleMonitor) IdleTime() time.Duration {
	return time.Since(time.Unix(0, m.lastRequest.Load()))
}

// IsProbe matches health checks, metrics scrapes and platform probes.
func IsProbe(r *http.Request) bool {
	if strings.Contains(r.Header.Get("User-Agent"), "HealthCheck") {
		return true
	}
	switch r.URL.Path {
	case "/api/health", "/healthz", "/metrics":
		return true
	}
	return false
}
