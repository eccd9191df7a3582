package cmap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/simonscmap/cmap-go/internal/logging"
	"github.com/simonscmap/cmap-go/internal/metrics"
)

const (
	queryRoute = "/api/data/query?"
	procRoute  = "/api/data/sp?"
)

// params is an ordered list of wire parameters. The stored-procedure route
// reads parameters by position, so insertion order is preserved end to end.
type params struct {
	pairs []pair
}

type pair struct {
	name  string
	value string
}

func (p *params) add(name, value string) {
	p.pairs = append(p.pairs, pair{name: name, value: value})
}

func (p *params) addFloat(name string, v float64) {
	p.add(name, formatFloat(v))
}

// encode joins name=value pairs with '&', then percent-encodes spaces and
// nothing else. Values are literal query fragments interpreted server-side;
// fuller escaping would change their meaning.
func (p *params) encode() string {
	var b strings.Builder
	for i, kv := range p.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(kv.name)
		b.WriteByte('=')
		b.WriteString(kv.value)
	}
	return strings.ReplaceAll(b.String(), " ", "%20")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// fingerprint is a stable correlation id for a request: the encoded payload
// is lowercased and whitespace-collapsed before hashing, so incidental
// formatting differences map to the same id.
func fingerprint(encoded string) string {
	norm := strings.Join(strings.Fields(strings.ToLower(encoded)), " ")
	return fmt.Sprintf("%016x", xxhash.Sum64String(norm))
}

// Query runs a raw SQL statement on the data service and materializes the
// response. Most callers want the typed operations instead; Query is the
// escape hatch for statements they do not cover.
func (c *Client) Query(ctx context.Context, query string) (*Table, error) {
	p := &params{}
	p.add("query", query)
	return c.fetch(ctx, queryRoute, p)
}

// fetch dispatches one GET to the given route and materializes the tabular
// response. It resolves the API key per call, so a key stored after the
// client was built is picked up without rebuilding.
func (c *Client) fetch(ctx context.Context, route string, p *params) (*Table, error) {
	key, err := c.creds.APIKey()
	if err != nil {
		return nil, err
	}

	encoded := p.encode()
	u := c.baseURL + route + encoded
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Api-Key "+key)
	if rid := logging.RequestIDFromContext(ctx); rid != "" {
		req.Header.Set(logging.RequestIDHeader, rid)
	}

	fp := fingerprint(encoded)
	label := strings.TrimSuffix(route, "?")
	start := c.now()

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveRequest(label, "error", time.Since(start).Seconds())
		return nil, &TransportError{URL: u, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	dur := time.Since(start)
	metrics.ObserveRequest(label, strconv.Itoa(resp.StatusCode), dur.Seconds())
	c.log.Debug().
		Str("route", label).
		Str("query", fp).
		Int("status", resp.StatusCode).
		Dur("duration", dur).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
		svcErr := &ServiceError{
			Route:      label,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(b)),
		}
		c.log.Warn().
			Str("route", label).
			Str("query", fp).
			Int("status", resp.StatusCode).
			Str("body", svcErr.Body).
			Msg("service error")
		return nil, svcErr
	}

	return readTable(resp.Body)
}
