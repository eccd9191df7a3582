package cmap

import (
	"errors"
	"fmt"
	"strings"
)

// Errors reported before a request is sent.
var (
	// ErrMissingAPIKey is returned when no API key is configured anywhere
	// (explicit option, CMAP_API_KEY, or the credentials file).
	ErrMissingAPIKey = errors.New("cmap: no API key configured; register at https://simonscmap.com to obtain one, then store it with cmap.SaveAPIKey or set the CMAP_API_KEY environment variable")

	// ErrInvalidInterval is returned for a binning interval outside the
	// recognized synonym sets (weekly/monthly/quarterly/annual).
	ErrInvalidInterval = errors.New("cmap: unrecognized binning interval")

	// ErrClimatologyBinning is returned when a custom binning interval is
	// requested against a climatology table, which has no time axis to re-bin.
	ErrClimatologyBinning = errors.New("cmap: climatology datasets cannot be binned to a custom interval")

	// ErrNotFound is returned when a lookup that must resolve to a record
	// (cruise name, variable, dataset) matches nothing.
	ErrNotFound = errors.New("cmap: no matching record")

	// ErrTargetMismatch is returned by Match when target tables and target
	// variables do not pair up one-to-one.
	ErrTargetMismatch = errors.New("cmap: target tables and target variables must have equal length")
)

// ServiceError is returned when the service answers with a non-2xx status.
// The response body (truncated) is kept for diagnosis; no table is produced.
type ServiceError struct {
	Route      string
	StatusCode int
	Status     string
	Body       string
}

func (e *ServiceError) Error() string {
	msg := strings.TrimSpace(e.Body)
	if msg == "" {
		msg = e.Status
	}
	return fmt.Sprintf("cmap: service returned %d on %s: %s", e.StatusCode, e.Route, msg)
}

// TransportError is returned when the request never produced a response:
// connection failures, DNS errors, timeouts, canceled contexts.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("cmap: request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError is returned when a response body cannot be
// materialized as a table.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("cmap: malformed response payload: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// AmbiguousCruiseError is returned when a cruise name resolves to more than
// one record. Candidates carries the matching records so the caller can
// disambiguate (for example by exact Name rather than Nickname).
type AmbiguousCruiseError struct {
	Name       string
	Candidates []Cruise
}

func (e *AmbiguousCruiseError) Error() string {
	names := make([]string, 0, len(e.Candidates))
	for _, c := range e.Candidates {
		names = append(names, c.Name)
	}
	return fmt.Sprintf("cmap: cruise name %q matches %d cruises (%s)", e.Name, len(e.Candidates), strings.Join(names, ", "))
}

// TooLargeError is returned by Dataset when the row-count estimate reaches
// the full-fetch ceiling. Retrieve such datasets in pieces with SpaceTime.
type TooLargeError struct {
	Table string
	Rows  int64
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("cmap: dataset %s holds an estimated %d rows (limit %d); retrieve it in chunks with SpaceTime", e.Table, e.Rows, e.Limit)
}
