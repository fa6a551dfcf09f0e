package domain

import "fmt"

// DefaultMinYear is the first season included in the report.
const DefaultMinYear = 1990

// FilterCriteria selects which storms appear in the report.
type FilterCriteria struct {
	MinYear int         `json:"min_year" yaml:"min_year"`
	Region  BoundingBox `json:"region" yaml:"region"`
}

// DefaultCriteria returns storms since 1990 making landfall in Florida.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{MinYear: DefaultMinYear, Region: FloridaBox}
}

// FilterLandfalls keeps events from MinYear onward with at least one landfall
// point inside Region. Input order is preserved and each event appears once.
func FilterLandfalls(events []StormEvent, c FilterCriteria) ([]StormEvent, error) {
	var kept []StormEvent
	for _, event := range events {
		ok, err := c.Matches(event)
		if err != nil {
			return nil, fmt.Errorf("filter storm %s: %w", event.ID, err)
		}
		if ok {
			kept = append(kept, event)
		}
	}
	return kept, nil
}

// Matches reports whether a single event satisfies the criteria. It stops at
// the first qualifying landfall point.
func (c FilterCriteria) Matches(event StormEvent) (bool, error) {
	if event.Year < c.MinYear {
		return false, nil
	}
	for _, p := range event.TrackPoints {
		if !p.IsLandfall() {
			continue
		}
		inside, err := c.Region.ContainsPoint(p)
		if err != nil {
			return false, err
		}
		if inside {
			return true, nil
		}
	}
	return false, nil
}
