package domain

import (
	"fmt"
	"strconv"
)

// FetchError reports that the raw feed could not be retrieved.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a line or field that does not match the HURDAT2 shape.
// Line is 1-based and zero when the value did not come from a feed line
// (for example a coordinate parsed during filtering).
type ParseError struct {
	Line  int
	Field string
	Index int
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	msg := "parse " + e.Field
	if e.Index >= 0 {
		msg += " (field " + strconv.Itoa(e.Index) + ")"
	}
	if e.Line > 0 {
		msg += " on line " + strconv.Itoa(e.Line)
	}
	return fmt.Sprintf("%s: %q: %v", msg, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MalformedDatasetError reports a storm block whose declared record count
// does not match the lines actually present.
type MalformedDatasetError struct {
	StormID  string
	Line     int
	Declared int
	Found    int
}

func (e *MalformedDatasetError) Error() string {
	return fmt.Sprintf("malformed dataset: storm %s (header line %d) declares %d records, found %d",
		e.StormID, e.Line, e.Declared, e.Found)
}
