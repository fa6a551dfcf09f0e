package domain

import "time"

// LandfallIndicator is the HURDAT2 record identifier marking landfall.
const LandfallIndicator = "L"

// TrackPoint is one six-hourly (or special) observation of a storm.
type TrackPoint struct {
	Date              string `json:"date" yaml:"date"` // YYYYMMDD
	Time              string `json:"time" yaml:"time"` // HHMM UTC
	LandfallIndicator string `json:"landfall_indicator,omitempty" yaml:"landfall_indicator,omitempty"`
	Latitude          string `json:"latitude" yaml:"latitude"`   // e.g. "25.4N"
	Longitude         string `json:"longitude" yaml:"longitude"` // e.g. "80.1W"
	WindSpeedKnots    int    `json:"wind_speed_knots" yaml:"wind_speed_knots"`
	PressureMillibars int    `json:"pressure_millibars" yaml:"pressure_millibars"`
}

// IsLandfall reports whether the storm center crossed a coastline at this point.
func (p TrackPoint) IsLandfall() bool {
	return p.LandfallIndicator == LandfallIndicator
}

// StormEvent is a storm header plus its track points in file order.
type StormEvent struct {
	ID          string       `json:"id" yaml:"id"` // e.g. "AL092004"
	BasinCode   string       `json:"basin" yaml:"basin"`
	Year        int          `json:"year" yaml:"year"`
	Name        string       `json:"name" yaml:"name"`
	TrackPoints []TrackPoint `json:"track_points" yaml:"track_points"`
}

// ReportRow is one line of the landfall report.
type ReportRow struct {
	StormID           string `json:"storm_id" yaml:"storm_id"`
	Name              string `json:"name" yaml:"name"`
	LandfallDate      string `json:"landfall_date" yaml:"landfall_date"`
	MaxWindSpeedKnots int    `json:"max_wind_speed" yaml:"max_wind_speed"`
	Latitude          string `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude         string `json:"longitude,omitempty" yaml:"longitude,omitempty"`
	Place             string `json:"place,omitempty" yaml:"place,omitempty"`
}

// Report is a generated landfall report.
type Report struct {
	ID          string         `json:"id" yaml:"id"`
	GeneratedAt time.Time      `json:"generated_at" yaml:"generated_at"`
	Criteria    FilterCriteria `json:"criteria" yaml:"criteria"`
	Rows        []ReportRow    `json:"rows" yaml:"rows"`
}
