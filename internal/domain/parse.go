package domain

import (
	"errors"
	"strconv"
	"strings"
)

var (
	errMissingField = errors.New("field missing")
	errNotInteger   = errors.New("not an integer")
	errBadDate      = errors.New("expected 8-digit YYYYMMDD date")
)

// headerPrefix identifies Atlantic basin header lines.
const headerPrefix = "AL"

// fieldSpec describes one positional HURDAT2 column and how to store it.
type fieldSpec[T any] struct {
	name  string
	index int
	set   func(dst *T, value string) error
}

// trackPointSchema lists the track-point columns the report uses.
// Column 3 (system status) and everything after pressure are ignored.
var trackPointSchema = []fieldSpec[TrackPoint]{
	{"date", 0, func(p *TrackPoint, v string) error {
		if !isDigits(v, 8) {
			return errBadDate
		}
		p.Date = v
		return nil
	}},
	{"time", 1, func(p *TrackPoint, v string) error { p.Time = v; return nil }},
	{"landfall_indicator", 2, func(p *TrackPoint, v string) error { p.LandfallIndicator = v; return nil }},
	{"latitude", 4, func(p *TrackPoint, v string) error { p.Latitude = v; return nil }},
	{"longitude", 5, func(p *TrackPoint, v string) error { p.Longitude = v; return nil }},
	{"max_wind", 6, intField(func(p *TrackPoint) *int { return &p.WindSpeedKnots })},
	{"min_pressure", 7, intField(func(p *TrackPoint) *int { return &p.PressureMillibars })},
}

// stormHeader is the parsed form of a header line.
type stormHeader struct {
	id          string
	year        int
	name        string
	recordCount int
}

var headerSchema = []fieldSpec[stormHeader]{
	{"identifier", 0, func(h *stormHeader, v string) error {
		if len(v) < 5 {
			return errNotInteger
		}
		year, err := strconv.Atoi(strings.TrimSpace(v[4:]))
		if err != nil {
			return errNotInteger
		}
		h.id = v
		h.year = year
		return nil
	}},
	{"name", 1, func(h *stormHeader, v string) error { h.name = v; return nil }},
	{"record_count", 2, func(h *stormHeader, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return errNotInteger
		}
		h.recordCount = n
		return nil
	}},
}

func intField[T any](target func(*T) *int) func(*T, string) error {
	return func(dst *T, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errNotInteger
		}
		*target(dst) = n
		return nil
	}
}

// applySchema fills dst from fields, stopping at the first invalid column.
func applySchema[T any](schema []fieldSpec[T], fields []string, line int, dst *T) error {
	for _, f := range schema {
		if f.index >= len(fields) {
			return &ParseError{Line: line, Field: f.name, Index: f.index, Err: errMissingField}
		}
		if err := f.set(dst, fields[f.index]); err != nil {
			return &ParseError{Line: line, Field: f.name, Index: f.index, Value: fields[f.index], Err: err}
		}
	}
	return nil
}

// SplitFields trims a raw line and splits it on commas, trimming each field.
func SplitFields(line string) []string {
	fields := strings.Split(strings.TrimSpace(line), ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// ParseTrackPoint builds a TrackPoint from the split fields of a track-point line.
// line is only used for error reporting.
func ParseTrackPoint(fields []string, line int) (TrackPoint, error) {
	var p TrackPoint
	if err := applySchema(trackPointSchema, fields, line, &p); err != nil {
		return TrackPoint{}, err
	}
	return p, nil
}

// isHeader reports whether the split line starts a storm block.
func isHeader(fields []string) bool {
	return len(fields) > 0 && strings.HasPrefix(fields[0], headerPrefix)
}

func parseHeader(fields []string, line int) (stormHeader, error) {
	var h stormHeader
	if err := applySchema(headerSchema, fields, line, &h); err != nil {
		return stormHeader{}, err
	}
	return h, nil
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
