package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/hurricane-landfall-service/internal/domain"
)

// RowEnricher fills in the place name nearest each row's landfall point.
type RowEnricher struct {
	geocoder domain.Geocoder
	logger   *slog.Logger
}

// NewRowEnricher creates a RowEnricher backed by geocoder.
func NewRowEnricher(geocoder domain.Geocoder, logger *slog.Logger) *RowEnricher {
	return &RowEnricher{
		geocoder: geocoder,
		logger:   logger,
	}
}

// Enrich returns rows with Place set where the lookup succeeded. Rows without
// a landfall, or whose lookup fails, are returned unchanged.
func (e *RowEnricher) Enrich(ctx context.Context, rows []domain.ReportRow) []domain.ReportRow {
	out := make([]domain.ReportRow, len(rows))
	for i, row := range rows {
		out[i] = e.enrichRow(ctx, row)
	}
	return out
}

func (e *RowEnricher) enrichRow(ctx context.Context, row domain.ReportRow) domain.ReportRow {
	if row.Latitude == "" || row.Longitude == "" {
		return row
	}
	lat, err := domain.ParseLatitude(row.Latitude)
	if err != nil {
		e.logger.Warn("skip geocoding, bad latitude", "storm_id", row.StormID, "error", err)
		return row
	}
	lon, err := domain.ParseLongitude(row.Longitude)
	if err != nil {
		e.logger.Warn("skip geocoding, bad longitude", "storm_id", row.StormID, "error", err)
		return row
	}

	result, err := e.geocoder.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		e.logger.Warn("reverse geocoding failed",
			"storm_id", row.StormID,
			"lat", lat,
			"lon", lon,
			"error", err,
		)
		return row
	}
	row.Place = result.PlaceName
	if row.Place == "" {
		row.Place = result.FormattedAddress
	}
	return row
}
