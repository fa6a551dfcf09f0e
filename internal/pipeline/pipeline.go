package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/hurricane-landfall-service/internal/domain"
	"github.com/couchcryptid/hurricane-landfall-service/internal/observability"
)

// FeedSource opens the raw HURDAT2 feed for one pass.
type FeedSource interface {
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

// ReachabilityChecker is implemented by feed sources that can cheaply
// confirm the feed is reachable without downloading it.
type ReachabilityChecker interface {
	CheckReachable(ctx context.Context) error
}

// ReportPublisher ships a generated report to downstream consumers.
type ReportPublisher interface {
	PublishReport(ctx context.Context, report domain.Report) error
}

// Option configures optional ReportService stages.
type Option func(*ReportService)

// WithEnricher adds reverse geocoding of each row's landfall point.
func WithEnricher(e *RowEnricher) Option {
	return func(s *ReportService) { s.enricher = e }
}

// WithPublisher publishes every generated report.
func WithPublisher(p ReportPublisher) Option {
	return func(s *ReportService) { s.publisher = p }
}

// ReportService orchestrates fetch, load, filter, row building, enrichment
// and publication. The feed is fetched fresh on every call.
type ReportService struct {
	source    FeedSource
	criteria  domain.FilterCriteria
	enricher  *RowEnricher
	publisher ReportPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewReportService creates a ReportService reading from source. criteria is
// used when a caller does not supply its own.
func NewReportService(source FeedSource, criteria domain.FilterCriteria, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *ReportService {
	s := &ReportService{
		source:   source,
		criteria: criteria,
		logger:   logger,
		metrics:  metrics,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Criteria returns the default filter criteria.
func (s *ReportService) Criteria() domain.FilterCriteria {
	return s.criteria
}

// CheckReadiness reports whether the feed source is reachable right now.
// Sources that cannot be checked are always ready. Past load failures do not
// affect readiness; they are visible in logs and metrics.
func (s *ReportService) CheckReadiness(ctx context.Context) error {
	checker, ok := s.source.(ReachabilityChecker)
	if !ok {
		return nil
	}
	if err := checker.CheckReachable(ctx); err != nil {
		return fmt.Errorf("feed source %s unreachable: %w", s.source.Name(), err)
	}
	return nil
}

// Storms returns every storm in the feed.
func (s *ReportService) Storms(ctx context.Context) ([]domain.StormEvent, error) {
	return s.load(ctx)
}

// Landfalls returns the storms matching c, in feed order.
func (s *ReportService) Landfalls(ctx context.Context, c domain.FilterCriteria) ([]domain.StormEvent, error) {
	events, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	qualifying, err := domain.FilterLandfalls(events, c)
	if err != nil {
		s.metrics.ParseFailures.Inc()
		return nil, err
	}
	s.metrics.StormsQualifying.Set(float64(len(qualifying)))
	return qualifying, nil
}

// Generate builds a report for the storms matching c. Enrichment and
// publication failures are logged and never fail the report.
func (s *ReportService) Generate(ctx context.Context, c domain.FilterCriteria) (domain.Report, error) {
	start := time.Now()

	qualifying, err := s.Landfalls(ctx, c)
	if err != nil {
		return domain.Report{}, err
	}

	rows := domain.BuildReportRows(qualifying)
	if s.enricher != nil {
		rows = s.enricher.Enrich(ctx, rows)
	}
	report := domain.NewReport(uuid.NewString(), c, rows)
	s.metrics.ReportDuration.Observe(time.Since(start).Seconds())

	if s.publisher != nil {
		s.publish(ctx, report)
	}

	s.logger.Info("report generated",
		"report_id", report.ID,
		"rows", len(report.Rows),
		"min_year", c.MinYear,
		"duration", time.Since(start),
	)
	return report, nil
}

func (s *ReportService) publish(ctx context.Context, report domain.Report) {
	if err := s.publisher.PublishReport(ctx, report); err != nil {
		s.metrics.ReportPublications.WithLabelValues("error").Inc()
		s.logger.Warn("publish report failed", "report_id", report.ID, "error", err)
		return
	}
	s.metrics.ReportPublications.WithLabelValues("success").Inc()
}

// load fetches and parses the whole feed.
func (s *ReportService) load(ctx context.Context) ([]domain.StormEvent, error) {
	start := time.Now()

	events, err := s.fetchAndParse(ctx)
	if err != nil {
		s.metrics.FeedFetches.WithLabelValues("error").Inc()
		if isParseFailure(err) {
			s.metrics.ParseFailures.Inc()
		}
		s.logger.Error("feed load failed", "source", s.source.Name(), "error", err)
		return nil, err
	}

	s.metrics.FeedFetches.WithLabelValues("success").Inc()
	s.metrics.FeedFetchDuration.Observe(time.Since(start).Seconds())
	s.metrics.StormsLoaded.Set(float64(len(events)))
	s.logger.Debug("feed loaded", "source", s.source.Name(), "storms", len(events))
	return events, nil
}

func (s *ReportService) fetchAndParse(ctx context.Context) ([]domain.StormEvent, error) {
	body, err := s.source.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer body.Close() //nolint:errcheck // read-only body

	events, err := domain.LoadDataset(body)
	if err != nil {
		if isParseFailure(err) {
			return nil, err
		}
		return nil, &domain.FetchError{Source: s.source.Name(), Err: err}
	}
	return events, nil
}

func isParseFailure(err error) bool {
	var perr *domain.ParseError
	var merr *domain.MalformedDatasetError
	return errors.As(err, &perr) || errors.As(err, &merr)
}
