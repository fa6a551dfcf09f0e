package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/hurricane-landfall-service/internal/domain"
)

const testMapboxToken = "pk.test-token"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultHurdatURL, cfg.HurdatURL)
	assert.Equal(t, 60*time.Second, cfg.FeedTimeout)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 1990, cfg.MinYear)
	assert.Equal(t, domain.FloridaBox, cfg.Region)
	assert.Equal(t, domain.DefaultCriteria(), cfg.Criteria())
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.PublishEnabled())
	assert.Equal(t, "hurricane-landfall-reports", cfg.KafkaReportTopic)
	assert.False(t, cfg.MapboxEnabled)
	assert.Empty(t, cfg.MapboxToken)
	assert.Equal(t, 5*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, 1000, cfg.MapboxCacheSize)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HURDAT_URL", "http://mirror.local/hurdat2.txt")
	t.Setenv("FEED_TIMEOUT", "15s")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("REPORT_MIN_YEAR", "2000")
	t.Setenv("REPORT_REGION", "28.9,33.0,-94.0,-88.8")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_REPORT_TOPIC", "custom-reports")
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	t.Setenv("MAPBOX_TIMEOUT", "10s")
	t.Setenv("MAPBOX_CACHE_SIZE", "500")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://mirror.local/hurdat2.txt", cfg.HurdatURL)
	assert.Equal(t, 15*time.Second, cfg.FeedTimeout)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 2000, cfg.MinYear)
	assert.Equal(t, domain.BoundingBox{MinLat: 28.9, MaxLat: 33.0, MinLon: -94.0, MaxLon: -88.8}, cfg.Region)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.PublishEnabled())
	assert.Equal(t, "custom-reports", cfg.KafkaReportTopic)
	assert.True(t, cfg.MapboxEnabled)
	assert.Equal(t, testMapboxToken, cfg.MapboxToken)
	assert.Equal(t, 10*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, 500, cfg.MapboxCacheSize)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidFeedTimeout(t *testing.T) {
	t.Setenv("FEED_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FEED_TIMEOUT")
}

func TestLoad_InvalidMapboxTimeout(t *testing.T) {
	t.Setenv("MAPBOX_TIMEOUT", "bad")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAPBOX_TIMEOUT")
}

func TestLoad_InvalidMinYear(t *testing.T) {
	for _, v := range []string{"nineteen-ninety", "1700"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("REPORT_MIN_YEAR", v)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "REPORT_MIN_YEAR")
		})
	}
}

func TestLoad_InvalidRegion(t *testing.T) {
	tests := map[string]string{
		"too few values": "24,31,-87",
		"not a number":   "24,31,west,-79",
		"inverted lat":   "31,24,-87,-79",
		"out of range":   "24,95,-87,-79",
	}
	for name, v := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv("REPORT_REGION", v)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "REPORT_REGION")
		})
	}
}

func TestLoad_MapboxEnabledWithoutToken(t *testing.T) {
	t.Setenv("MAPBOX_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAPBOX_TOKEN")
}

func TestLoad_MapboxExplicitlyDisabled(t *testing.T) {
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	t.Setenv("MAPBOX_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.MapboxEnabled)
}

func TestParseRegion_MessageNamesNoSource(t *testing.T) {
	_, err := ParseRegion("1,2,3")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "REPORT_REGION")
	assert.Contains(t, err.Error(), "region")
}

func TestValidateMinYear(t *testing.T) {
	require.NoError(t, ValidateMinYear(FirstSeason))
	require.NoError(t, ValidateMinYear(2000))

	err := ValidateMinYear(1700)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "REPORT_MIN_YEAR")
}
