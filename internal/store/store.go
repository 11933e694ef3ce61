// Package store loads the SWAT-MODFLOW input files, runs the parsers and
// aggregations once, and hands out an immutable Dataset. A cache keyed by
// file path and stat metadata memoizes the load across requests in a
// long-lived process; a changed mtime or size triggers a reload on the next
// lookup.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/kokihydro/swatmf-dashboard-service/internal/config"
	"github.com/kokihydro/swatmf-dashboard-service/internal/domain"
	"github.com/kokihydro/swatmf-dashboard-service/internal/observability"
	"github.com/kokihydro/swatmf-dashboard-service/internal/stats"
	"github.com/kokihydro/swatmf-dashboard-service/internal/swatmf"
)

// Dataset is everything the render layer needs, derived once per load.
// Read-only after construction.
type Dataset struct {
	Flow          stats.FlowSummary
	RechargeGrids map[domain.GridKey]*domain.Grid
	RechargeMean  map[int]*domain.Grid // keyed by calendar month

	FlowSkipped     int
	FlowOrphans     int
	RechargeSkipped int

	LoadedAt time.Time
}

// fileKey identifies one version of an input file. Any stat change
// invalidates the cached dataset.
type fileKey struct {
	path    string
	modTime time.Time
	size    int64
}

// Store serves the current Dataset, reloading when either input file
// changes on disk.
type Store struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics

	mu          sync.RWMutex
	dataset     *Dataset
	flowKey     fileKey
	rechargeKey fileKey
}

// New creates a Store. No I/O happens until the first Get.
func New(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Store {
	return &Store{cfg: cfg, logger: logger, metrics: metrics}
}

// Get returns the current dataset, loading or reloading it if an input
// file changed since the cached load.
func (s *Store) Get(ctx context.Context) (*Dataset, error) {
	flowKey, err := statKey(s.cfg.FlowFile)
	if err != nil {
		return nil, fmt.Errorf("stat flow file: %w", err)
	}
	rechargeKey, err := statKey(s.cfg.RechargeFile)
	if err != nil {
		return nil, fmt.Errorf("stat recharge file: %w", err)
	}

	s.mu.RLock()
	if s.dataset != nil && s.flowKey == flowKey && s.rechargeKey == rechargeKey {
		ds := s.dataset
		s.mu.RUnlock()
		s.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return ds, nil
	}
	s.mu.RUnlock()

	s.metrics.CacheLookups.WithLabelValues("miss").Inc()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another request may have reloaded while we waited for the lock.
	if s.dataset != nil && s.flowKey == flowKey && s.rechargeKey == rechargeKey {
		return s.dataset, nil
	}

	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.dataset = ds
	s.flowKey = flowKey
	s.rechargeKey = rechargeKey
	return ds, nil
}

// CheckReadiness returns nil once a dataset has been loaded.
func (s *Store) CheckReadiness(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.dataset != nil
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	// Not loaded yet: try now so readiness flips as soon as the files are
	// in place.
	if _, err := s.Get(ctx); err != nil {
		return fmt.Errorf("dataset not loaded: %w", err)
	}
	return nil
}

// load parses both files and derives the aggregates. An empty parse result
// is fatal: rendering from nothing would only mask a broken model run.
func (s *Store) load(_ context.Context) (*Dataset, error) {
	start := time.Now()
	opts := swatmf.Options{Strict: s.cfg.StrictParse}

	flowRes, err := swatmf.ParseFlowFile(s.cfg.FlowFile, opts)
	if err != nil {
		return nil, fmt.Errorf("load flow data: %w", err)
	}
	if len(flowRes.Records) == 0 {
		return nil, errors.New("flow file produced no records")
	}

	rechargeRes, err := swatmf.ParseRechargeFile(s.cfg.RechargeFile, s.cfg.GridRows, s.cfg.GridCols, opts)
	if err != nil {
		return nil, fmt.Errorf("load recharge data: %w", err)
	}
	if len(rechargeRes.Grids) == 0 {
		return nil, errors.New("recharge file produced no grids")
	}

	s.metrics.RecordsParsed.WithLabelValues("flow").Add(float64(len(flowRes.Records)))
	s.metrics.RecordsParsed.WithLabelValues("recharge").Add(float64(len(rechargeRes.Grids)))
	s.metrics.LinesSkipped.WithLabelValues("flow").Add(float64(flowRes.Skipped))
	s.metrics.LinesSkipped.WithLabelValues("recharge").Add(float64(rechargeRes.Skipped))
	s.metrics.OrphanLines.Add(float64(flowRes.Orphans))

	if flowRes.Skipped > 0 || flowRes.Orphans > 0 {
		s.logger.Warn("flow file parsed leniently",
			"records", len(flowRes.Records),
			"skipped_lines", flowRes.Skipped,
			"orphan_lines", flowRes.Orphans,
		)
	}
	if rechargeRes.Skipped > 0 {
		s.logger.Warn("recharge file parsed leniently",
			"grids", len(rechargeRes.Grids),
			"skipped_lines", rechargeRes.Skipped,
		)
	}

	ds := &Dataset{
		Flow:            stats.AggregateFlow(flowRes.Records),
		RechargeGrids:   rechargeRes.Grids,
		RechargeMean:    stats.MonthlyRechargeMean(rechargeRes.Grids),
		FlowSkipped:     flowRes.Skipped,
		FlowOrphans:     flowRes.Orphans,
		RechargeSkipped: rechargeRes.Skipped,
		LoadedAt:        domain.Now(),
	}

	s.metrics.LoadDuration.Observe(time.Since(start).Seconds())
	s.metrics.DatasetLoaded.Set(1)
	s.logger.Info("dataset loaded",
		"flow_records", len(flowRes.Records),
		"recharge_grids", len(rechargeRes.Grids),
		"months", len(ds.Flow.Months),
		"duration", time.Since(start),
	)

	return ds, nil
}

func statKey(path string) (fileKey, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return fileKey{}, err
	}
	return fileKey{path: path, modTime: fi.ModTime(), size: fi.Size()}, nil
}
