package domain

import (
	"errors"
	"strconv"
	"strings"
)

var errEmptyCoordinate = errors.New("empty coordinate")

// BoundingBox is an inclusive latitude/longitude rectangle in signed degrees.
type BoundingBox struct {
	MinLat float64 `json:"min_lat" yaml:"min_lat"`
	MaxLat float64 `json:"max_lat" yaml:"max_lat"`
	MinLon float64 `json:"min_lon" yaml:"min_lon"`
	MaxLon float64 `json:"max_lon" yaml:"max_lon"`
}

// FloridaBox approximates the state of Florida.
var FloridaBox = BoundingBox{
	MinLat: 24.396308,  // Key West
	MaxLat: 31.000968,  // Georgia border
	MinLon: -87.634896, // Perdido River
	MaxLon: -79.974307, // Atlantic coast
}

// Contains reports whether the coordinate lies inside the box, bounds included.
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// ContainsPoint converts the track point's hemisphere-suffixed coordinates
// and tests containment.
func (b BoundingBox) ContainsPoint(p TrackPoint) (bool, error) {
	lat, err := ParseLatitude(p.Latitude)
	if err != nil {
		return false, err
	}
	lon, err := ParseLongitude(p.Longitude)
	if err != nil {
		return false, err
	}
	return b.Contains(lat, lon), nil
}

// ParseLatitude converts "25.4N" to 25.4 and "25.4S" to -25.4.
func ParseLatitude(s string) (float64, error) {
	return parseHemisphere("latitude", s, 'S')
}

// ParseLongitude converts "80.1W" to -80.1. Only a "W" suffix is negative;
// "E" and any other suffix parse as positive.
func ParseLongitude(s string) (float64, error) {
	return parseHemisphere("longitude", s, 'W')
}

func parseHemisphere(field, s string, negative byte) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &ParseError{Field: field, Index: -1, Value: s, Err: errEmptyCoordinate}
	}
	suffix := s[len(s)-1]
	number := s
	if isLetter(suffix) {
		number = strings.TrimSpace(s[:len(s)-1])
	}
	v, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, &ParseError{Field: field, Index: -1, Value: s, Err: err}
	}
	if suffix == negative {
		return -v, nil
	}
	return v, nil
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
