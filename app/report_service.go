package app

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"suicidestats/domain/core"
	"suicidestats/domain/run"
	"suicidestats/domain/stats"
	"suicidestats/internal"
	"suicidestats/internal/analysis"
	"suicidestats/internal/config"
	"suicidestats/internal/dataset"
	"suicidestats/internal/errors"
	"suicidestats/internal/report"
	"suicidestats/ports"
)

// ReportService runs the load, clean, summarize, test, report and render
// stages for one country
type ReportService struct {
	config     config.Config
	source     ports.RecordSourcePort
	charts     ports.ChartRendererPort
	aggregator *analysis.Aggregator
	fitTester  *analysis.FitTester
	logger     *internal.Logger
}

// RunResult is the outcome of one report run
type RunResult struct {
	Manifest   *run.RunManifest `json:"manifest"`
	Analysis   *stats.Analysis  `json:"analysis"`
	ChartPaths []string         `json:"chart_paths,omitempty"`
	RuntimeMs  int64            `json:"runtime_ms"`
}

// NewReportService creates a report service. charts may be nil when chart
// rendering is disabled.
func NewReportService(cfg config.Config, source ports.RecordSourcePort, charts ports.ChartRendererPort, logger *internal.Logger) *ReportService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ReportService{
		config:     cfg,
		source:     source,
		charts:     charts,
		aggregator: analysis.NewAggregator(logger),
		fitTester:  analysis.NewFitTester(logger),
		logger:     logger.With("ReportService"),
	}
}

// Run executes every stage and writes the text report to out.
// Any failing stage aborts the run.
func (s *ReportService) Run(ctx context.Context, out io.Writer) (*RunResult, error) {
	startTime := time.Now()
	country := s.config.Data.Country

	records, err := s.source.ReadRecords(country)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", s.source.Path())
	}
	s.logger.Info("Loaded %d rows from %s", len(records), s.source.Path())

	sourceHash, err := s.source.SourceHash()
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash source")
	}

	ds, err := dataset.Clean(records, country)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to prepare %s data", country)
	}
	s.logger.Info("%d rows match country %q", ds.Len(), country)

	manifest := run.NewRunManifest(core.NewRunID(), country, s.source.Path(), sourceHash, dataset.CohortHash(ds), ds.Len())
	if err := manifest.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid run manifest")
	}
	s.logger.Info("Run %s fingerprint %s", manifest.RunID.Short(), manifest.Fingerprint.Fingerprint.Short())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &stats.Analysis{
		Dataset:     ds,
		Summary:     analysis.CalculateStatistics(ds.Rates()),
		SexByYear:   s.aggregator.SexByYear(ds),
		Yearly:      s.aggregator.ByYear(ds),
		AgeByYear:   s.aggregator.AgeByYear(ds),
		Generations: s.aggregator.ByGeneration(ds),
	}
	if result.Summary.Missing > 0 {
		s.logger.Warn("Dropped %d missing rates before summarizing", result.Summary.Missing)
	}

	result.Tests, err = s.fitTester.All(ds.Rates())
	if err != nil {
		return nil, errors.Wrap(err, "distribution tests failed")
	}

	if err := report.NewWriter(out).Write(result); err != nil {
		return nil, err
	}

	runResult := &RunResult{Manifest: manifest, Analysis: result}
	if s.config.Charts.Enabled && s.charts != nil {
		dir := filepath.Join(s.config.Charts.OutputDir, manifest.RunID.String())
		paths, err := s.charts.Render(ctx, dir, result)
		if err != nil {
			return nil, errors.Wrap(err, "chart rendering failed")
		}
		runResult.ChartPaths = paths
	}

	runResult.RuntimeMs = time.Since(startTime).Milliseconds()
	s.logger.Info("Run %s completed in %dms", manifest.RunID.Short(), runResult.RuntimeMs)
	return runResult, nil
}
