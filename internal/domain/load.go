package domain

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// EventReader reads StormEvents from a HURDAT2 stream, one storm block at a time.
// It is single-pass; re-reading requires reopening the source.
type EventReader struct {
	scanner *bufio.Scanner
	line    int
}

// NewEventReader wraps r in an EventReader.
func NewEventReader(r io.Reader) *EventReader {
	return &EventReader{scanner: bufio.NewScanner(r)}
}

// Next returns the next storm. It returns io.EOF once the stream is exhausted.
// Lines outside a storm block that are not headers are skipped.
func (r *EventReader) Next() (StormEvent, error) {
	for r.scanner.Scan() {
		r.line++
		fields := SplitFields(r.scanner.Text())
		if !isHeader(fields) {
			continue
		}
		return r.readBlock(fields)
	}
	if err := r.scanner.Err(); err != nil {
		return StormEvent{}, r.scanError(err)
	}
	return StormEvent{}, io.EOF
}

// readBlock consumes the declared number of track-point lines after a header,
// whatever they contain.
func (r *EventReader) readBlock(headerFields []string) (StormEvent, error) {
	headerLine := r.line
	h, err := parseHeader(headerFields, headerLine)
	if err != nil {
		return StormEvent{}, err
	}

	event := StormEvent{
		ID:          h.id,
		BasinCode:   h.id[:len(headerPrefix)],
		Year:        h.year,
		Name:        h.name,
		TrackPoints: make([]TrackPoint, 0, h.recordCount),
	}
	for range h.recordCount {
		if !r.scanner.Scan() {
			if err := r.scanner.Err(); err != nil {
				return StormEvent{}, fmt.Errorf("storm %s: %w", h.id, r.scanError(err))
			}
			return StormEvent{}, &MalformedDatasetError{
				StormID:  h.id,
				Line:     headerLine,
				Declared: h.recordCount,
				Found:    len(event.TrackPoints),
			}
		}
		r.line++
		p, err := ParseTrackPoint(SplitFields(r.scanner.Text()), r.line)
		if err != nil {
			return StormEvent{}, fmt.Errorf("storm %s: %w", h.id, err)
		}
		event.TrackPoints = append(event.TrackPoints, p)
	}
	return event, nil
}

// scanError classifies a scanner failure. A line too long to buffer is a
// malformed feed; anything else is a read failure of the underlying stream.
func (r *EventReader) scanError(err error) error {
	if errors.Is(err, bufio.ErrTooLong) {
		return &ParseError{Line: r.line + 1, Field: "line", Index: -1, Err: err}
	}
	return fmt.Errorf("read feed line %d: %w", r.line+1, err)
}

// LoadDataset reads every storm from r. The first malformed block aborts the
// load; no partial result is returned.
func LoadDataset(r io.Reader) ([]StormEvent, error) {
	reader := NewEventReader(r)
	var events []StormEvent
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return events, nil
		}
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
}
