package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/hurricane-landfall-service/internal/domain"
)

// DefaultHurdatURL is the Atlantic HURDAT2 release the report is built from.
const DefaultHurdatURL = "https://www.nhc.noaa.gov/data/hurdat/hurdat2-1851-2023-051124.txt"

// Config holds all service settings, populated from environment variables.
type Config struct {
	HurdatURL       string
	FeedTimeout     time.Duration
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	// Report selection.
	MinYear int
	Region  domain.BoundingBox

	// Optional Kafka publication of generated reports.
	KafkaBrokers     []string
	KafkaReportTopic string

	// Mapbox geocoding configuration.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int
}

// PublishEnabled reports whether generated reports are sent to Kafka.
func (c *Config) PublishEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Criteria returns the report filter built from the configured year and region.
func (c *Config) Criteria() domain.FilterCriteria {
	return domain.FilterCriteria{MinYear: c.MinYear, Region: c.Region}
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	feedTimeout, err := parsePositiveDuration("FEED_TIMEOUT", "60s")
	if err != nil {
		return nil, err
	}

	mapboxTimeout, err := parsePositiveDuration("MAPBOX_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	minYear, err := parseMinYear()
	if err != nil {
		return nil, err
	}

	region, err := ParseRegion(sharedcfg.EnvOrDefault("REPORT_REGION", formatRegion(domain.FloridaBox)))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_REGION: %w", err)
	}

	var brokers []string
	if v := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		HurdatURL:       sharedcfg.EnvOrDefault("HURDAT_URL", DefaultHurdatURL),
		FeedTimeout:     feedTimeout,
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		CORSOrigins:     splitList(sharedcfg.EnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),

		MinYear: minYear,
		Region:  region,

		KafkaBrokers:     brokers,
		KafkaReportTopic: sharedcfg.EnvOrDefault("KAFKA_REPORT_TOPIC", "hurricane-landfall-reports"),

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parseMapboxCacheSize(),
	}

	if cfg.HurdatURL == "" {
		return nil, errors.New("HURDAT_URL is required")
	}
	if cfg.PublishEnabled() && cfg.KafkaReportTopic == "" {
		return nil, errors.New("KAFKA_REPORT_TOPIC is required when KAFKA_BROKERS is set")
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}

	return cfg, nil
}

// ParseRegion parses "minLat,maxLat,minLon,maxLon" in signed degrees.
func ParseRegion(s string) (domain.BoundingBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return domain.BoundingBox{}, fmt.Errorf("region %q: want minLat,maxLat,minLon,maxLon", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return domain.BoundingBox{}, fmt.Errorf("region %q: %w", s, err)
		}
		v[i] = f
	}
	box := domain.BoundingBox{MinLat: v[0], MaxLat: v[1], MinLon: v[2], MaxLon: v[3]}
	if box.MinLat > box.MaxLat || box.MinLon > box.MaxLon {
		return domain.BoundingBox{}, fmt.Errorf("region %q: min exceeds max", s)
	}
	if box.MinLat < -90 || box.MaxLat > 90 || box.MinLon < -180 || box.MaxLon > 180 {
		return domain.BoundingBox{}, fmt.Errorf("region %q: out of range", s)
	}
	return box, nil
}

func formatRegion(b domain.BoundingBox) string {
	return fmt.Sprintf("%g,%g,%g,%g", b.MinLat, b.MaxLat, b.MinLon, b.MaxLon)
}

// FirstSeason is the first year covered by HURDAT2.
const FirstSeason = 1851

// ValidateMinYear rejects report start years before the first HURDAT2 season.
func ValidateMinYear(year int) error {
	if year < FirstSeason {
		return fmt.Errorf("min year %d is before the first season %d", year, FirstSeason)
	}
	return nil
}

func parseMinYear() (int, error) {
	s := os.Getenv("REPORT_MIN_YEAR")
	if s == "" {
		return domain.DefaultMinYear, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid REPORT_MIN_YEAR: %w", err)
	}
	if err := ValidateMinYear(n); err != nil {
		return 0, fmt.Errorf("invalid REPORT_MIN_YEAR: %w", err)
	}
	return n, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseMapboxCacheSize() int {
	if s := os.Getenv("MAPBOX_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
