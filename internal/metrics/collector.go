// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package metrics

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"grimm.is/compdoc/internal/logging"
)

// Run describes one finished generation run.
type Run struct {
	Components int
	Rows       int
	Duration   time.Duration
	Outputs    map[string]string // format -> written path
	Err        error
}

// Collector records generation runs into the registry and optionally
// exports them as a node-exporter textfile.
type Collector struct {
	registry *Registry
	logger   *logging.Logger
	textfile string

	mu          sync.RWMutex
	lastRun     time.Time
	lastSuccess time.Time

	// Run counters for tests and status output
	runSuccess int64
	runFailure int64
}

// NewCollector creates a collector. textfile may be empty to keep metrics
// in memory only.
func NewCollector(logger *logging.Logger, textfile string) *Collector {
	if logger == nil {
		logger = logging.WithComponent("metrics")
	}
	return &Collector{
		registry: NewRegistry(),
		logger:   logger,
		textfile: textfile,
	}
}

// Registry returns the collector's metrics.
func (c *Collector) Registry() *Registry {
	return c.registry
}

// RecordRun updates the metrics for a finished run and writes the textfile.
func (c *Collector) RecordRun(run Run) {
	now := time.Now()

	c.mu.Lock()
	c.lastRun = now
	status := "success"
	if run.Err != nil {
		status = "failure"
		c.runFailure++
	} else {
		c.runSuccess++
		c.lastSuccess = now
	}
	c.mu.Unlock()

	c.registry.Runs.WithLabelValues(status).Inc()
	c.registry.RunDuration.Observe(run.Duration.Seconds())

	if run.Err == nil {
		c.registry.Components.Set(float64(run.Components))
		c.registry.Rows.Set(float64(run.Rows))
		c.registry.LastSuccessTS.Set(float64(now.Unix()))

		for format, path := range run.Outputs {
			c.registry.OutputsTotal.WithLabelValues(format).Inc()
			if info, err := os.Stat(path); err == nil {
				c.registry.OutputBytes.WithLabelValues(format).Set(float64(info.Size()))
			}
		}
	}

	if c.textfile != "" {
		if err := c.WriteTextfile(c.textfile); err != nil {
			c.logger.Warn("Failed to write metrics textfile", "path", c.textfile, "error", err)
		}
	}
}

// WriteTextfile writes all metrics in the Prometheus text format to path.
func (c *Collector) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, c.registry.Gatherer())
}

// GetRunCounts returns the number of successful and failed runs.
func (c *Collector) GetRunCounts() (success, failure int64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.runSuccess, c.runFailure
}

// GetLastSuccess returns the time of the last successful run.
func (c *Collector) GetLastSuccess() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastSuccess
}
