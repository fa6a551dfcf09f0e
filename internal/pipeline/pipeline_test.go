package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/hurricane-landfall-service/internal/domain"
	"github.com/couchcryptid/hurricane-landfall-service/internal/observability"
	"github.com/couchcryptid/hurricane-landfall-service/internal/pipeline"
)

const feed = `AL011988,            ALBERTO,      2,
19880805, 1800,  , TD, 32.0N,  77.5W,  20, 1015,
19880806, 0000, L, TS, 27.0N,  82.0W, 120,  940,
AL042001,              BRAVO,      3,
20010910, 1200,  , TS, 25.0N,  84.0W,  60,  995,
20010911, 0600, L, HU, 26.0N,  81.5W, 120,  945,
20010911, 1200,  , HU, 27.0N,  80.5W,  90,  960,
AL052001,            CHANTAL,      1,
20010915, 0000, L, HU, 29.5N,  90.0W, 100,  950,
`

// --- mocks ---

type mockSource struct {
	body     string
	err      error
	reachErr error
	opens    int
}

func (m *mockSource) Name() string { return "mock" }

func (m *mockSource) CheckReachable(_ context.Context) error { return m.reachErr }

func (m *mockSource) Open(_ context.Context) (io.ReadCloser, error) {
	m.opens++
	if m.err != nil {
		return nil, m.err
	}
	return io.NopCloser(strings.NewReader(m.body)), nil
}

type mockPublisher struct {
	published []domain.Report
	err       error
}

func (m *mockPublisher) PublishReport(_ context.Context, report domain.Report) error {
	m.published = append(m.published, report)
	return m.err
}

type mockGeocoder struct {
	calls int
	err   error
}

func (m *mockGeocoder) ReverseGeocode(_ context.Context, lat, lon float64) (domain.GeocodingResult, error) {
	m.calls++
	if m.err != nil {
		return domain.GeocodingResult{}, m.err
	}
	return domain.GeocodingResult{Lat: lat, Lon: lon, PlaceName: "Naples, Florida"}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(src pipeline.FeedSource, metrics *observability.Metrics, opts ...pipeline.Option) *pipeline.ReportService {
	return pipeline.NewReportService(src, domain.DefaultCriteria(), discardLogger(), metrics, opts...)
}

// --- tests ---

func TestReportService_Storms(t *testing.T) {
	metrics := observability.NewUnregisteredMetrics()
	svc := newService(&mockSource{body: feed}, metrics)

	storms, err := svc.Storms(context.Background())
	require.NoError(t, err)
	require.Len(t, storms, 3)
	assert.Equal(t, "ALBERTO", storms[0].Name)
	assert.InDelta(t, 3, testutil.ToFloat64(metrics.StormsLoaded), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.FeedFetches.WithLabelValues("success")), 0)
}

func TestReportService_Landfalls(t *testing.T) {
	metrics := observability.NewUnregisteredMetrics()
	svc := newService(&mockSource{body: feed}, metrics)

	storms, err := svc.Landfalls(context.Background(), svc.Criteria())
	require.NoError(t, err)

	// ALBERTO predates 1990; CHANTAL lands outside the Florida box.
	require.Len(t, storms, 1)
	assert.Equal(t, "BRAVO", storms[0].Name)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.StormsQualifying), 0)
}

func TestReportService_Landfalls_CustomCriteria(t *testing.T) {
	svc := newService(&mockSource{body: feed}, observability.NewUnregisteredMetrics())

	gulf := domain.FilterCriteria{
		MinYear: 1980,
		Region:  domain.BoundingBox{MinLat: 24, MaxLat: 31, MinLon: -95, MaxLon: -80},
	}
	storms, err := svc.Landfalls(context.Background(), gulf)
	require.NoError(t, err)

	names := make([]string, 0, len(storms))
	for _, s := range storms {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"ALBERTO", "BRAVO", "CHANTAL"}, names)
}

func TestReportService_Generate(t *testing.T) {
	fixed := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { domain.SetClock(nil) })

	svc := newService(&mockSource{body: feed}, observability.NewUnregisteredMetrics())

	report, err := svc.Generate(context.Background(), svc.Criteria())
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, fixed, report.GeneratedAt)
	assert.Equal(t, domain.DefaultCriteria(), report.Criteria)
	assert.Equal(t, []domain.ReportRow{{
		StormID:           "AL042001",
		Name:              "BRAVO",
		LandfallDate:      "Month: 09 Day: 11 Year: 2001",
		MaxWindSpeedKnots: 120,
		Latitude:          "26.0N",
		Longitude:         "81.5W",
	}}, report.Rows)
}

func TestReportService_Generate_EmptyFeed(t *testing.T) {
	svc := newService(&mockSource{body: ""}, observability.NewUnregisteredMetrics())

	report, err := svc.Generate(context.Background(), svc.Criteria())
	require.NoError(t, err)
	assert.Empty(t, report.Rows)
}

func TestReportService_Generate_FetchesFreshEachCall(t *testing.T) {
	src := &mockSource{body: feed}
	svc := newService(src, observability.NewUnregisteredMetrics())

	_, err := svc.Generate(context.Background(), svc.Criteria())
	require.NoError(t, err)
	_, err = svc.Generate(context.Background(), svc.Criteria())
	require.NoError(t, err)
	assert.Equal(t, 2, src.opens)
}

func TestReportService_Generate_FetchError(t *testing.T) {
	metrics := observability.NewUnregisteredMetrics()
	fetchErr := &domain.FetchError{Source: "mock", Err: errors.New("connection refused")}
	svc := newService(&mockSource{err: fetchErr}, metrics)

	_, err := svc.Generate(context.Background(), svc.Criteria())
	var ferr *domain.FetchError
	require.ErrorAs(t, err, &ferr)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.FeedFetches.WithLabelValues("error")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(metrics.ParseFailures), 0)
}

func TestReportService_Generate_MalformedFeed(t *testing.T) {
	metrics := observability.NewUnregisteredMetrics()
	svc := newService(&mockSource{body: "AL011990, ARTHUR, 3,\n"}, metrics)

	_, err := svc.Generate(context.Background(), svc.Criteria())
	var merr *domain.MalformedDatasetError
	require.ErrorAs(t, err, &merr)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.ParseFailures), 0)
}

func TestReportService_CheckReadiness(t *testing.T) {
	src := &mockSource{body: feed}
	svc := newService(src, observability.NewUnregisteredMetrics())
	ctx := context.Background()

	require.NoError(t, svc.CheckReadiness(ctx), "ready before first load")

	src.reachErr = errors.New("no route to host")
	err := svc.CheckReadiness(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no route to host")
}

func TestReportService_CheckReadiness_RecoversWithoutRequests(t *testing.T) {
	src := &mockSource{body: feed, err: errors.New("upstream 503"), reachErr: errors.New("upstream 503")}
	svc := newService(src, observability.NewUnregisteredMetrics())
	ctx := context.Background()

	_, err := svc.Generate(ctx, svc.Criteria())
	require.Error(t, err)
	require.Error(t, svc.CheckReadiness(ctx))

	// Upstream comes back; no report request is made in between.
	src.reachErr = nil
	assert.NoError(t, svc.CheckReadiness(ctx))
	assert.Equal(t, 1, src.opens)
}

func TestReportService_CheckReadiness_IgnoresFailedLoads(t *testing.T) {
	metrics := observability.NewUnregisteredMetrics()
	src := &mockSource{err: &domain.FetchError{Source: "mock", Err: errors.New("timeout")}}
	svc := newService(src, metrics)
	ctx := context.Background()

	_, err := svc.Storms(ctx)
	require.Error(t, err)

	assert.NoError(t, svc.CheckReadiness(ctx))
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.FeedFetches.WithLabelValues("error")), 0)
}

func TestReportService_CheckReadiness_UncheckableSource(t *testing.T) {
	src := &mockSource{reachErr: errors.New("never consulted")}
	unchecked := struct{ pipeline.FeedSource }{src}
	svc := newService(unchecked, observability.NewUnregisteredMetrics())

	assert.NoError(t, svc.CheckReadiness(context.Background()))
}

func TestReportService_Generate_OversizedLine(t *testing.T) {
	metrics := observability.NewUnregisteredMetrics()
	body := "AL011990, ARTHUR, 1,\n" + strings.Repeat("9", 70*1024) + "\n"
	svc := newService(&mockSource{body: body}, metrics)

	_, err := svc.Generate(context.Background(), svc.Criteria())

	var perr *domain.ParseError
	require.ErrorAs(t, err, &perr)
	var ferr *domain.FetchError
	assert.False(t, errors.As(err, &ferr))
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.ParseFailures), 0)
}

func TestReportService_Publish(t *testing.T) {
	metrics := observability.NewUnregisteredMetrics()
	pub := &mockPublisher{}
	svc := newService(&mockSource{body: feed}, metrics, pipeline.WithPublisher(pub))

	report, err := svc.Generate(context.Background(), svc.Criteria())
	require.NoError(t, err)
	require.Len(t, pub.published, 1)
	assert.Equal(t, report.ID, pub.published[0].ID)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.ReportPublications.WithLabelValues("success")), 0)
}

func TestReportService_PublishFailureDoesNotFailReport(t *testing.T) {
	metrics := observability.NewUnregisteredMetrics()
	pub := &mockPublisher{err: errors.New("broker down")}
	svc := newService(&mockSource{body: feed}, metrics, pipeline.WithPublisher(pub))

	report, err := svc.Generate(context.Background(), svc.Criteria())
	require.NoError(t, err)
	assert.Len(t, report.Rows, 1)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.ReportPublications.WithLabelValues("error")), 0)
}

func TestReportService_Enrich(t *testing.T) {
	geo := &mockGeocoder{}
	svc := newService(&mockSource{body: feed}, observability.NewUnregisteredMetrics(),
		pipeline.WithEnricher(pipeline.NewRowEnricher(geo, discardLogger())))

	report, err := svc.Generate(context.Background(), svc.Criteria())
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "Naples, Florida", report.Rows[0].Place)
	assert.Equal(t, 1, geo.calls)
}
