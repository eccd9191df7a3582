// Package cmaptest provides an in-process fake of the Simons CMAP data
// service for tests and offline development.
//
// A Server answers the query and stored-procedure routes from registered
// fixtures and records every request it receives, so tests can assert both
// what was returned and what went over the wire:
//
//	srv := cmaptest.New()
//	defer srv.Close()
//	srv.SeedDemo()
//
//	c := cmap.New(cmap.Options{BaseURL: srv.URL, APIKey: cmaptest.DemoAPIKey})
package cmaptest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Request is one recorded call, captured before authentication so tests can
// also assert on rejected traffic.
type Request struct {
	Route    string
	RawQuery string
	Query    string
	SpName   string
	Params   url.Values
	Header   http.Header
}

// Server is the fake service. All methods are safe for concurrent use.
type Server struct {
	// URL is the base endpoint, set when the server is listening.
	URL string

	// APIKey, when non-empty, must arrive as "Api-Key <APIKey>" in the
	// Authorization header; everything else is rejected with 401.
	APIKey string

	hs     *httptest.Server
	router chi.Router
	log    zerolog.Logger

	mu         sync.Mutex
	requests   []Request
	tables     map[string][]string // name -> csv lines, header first
	queryStubs []queryStub
	procStubs  map[string]string
}

type queryStub struct {
	substr string
	status int
	body   string
	csv    string
}

// Options configures a Server.
type Options struct {
	// APIKey enables authentication checking.
	APIKey string
	// Logger receives request logs. Nil disables logging.
	Logger *zerolog.Logger
}

// New starts a fake service with no fixtures and no authentication.
func New() *Server {
	return NewWithOptions(Options{})
}

// NewWithOptions starts a fake service configured by opts.
func NewWithOptions(opts Options) *Server {
	s := NewUnstarted(opts)
	s.hs = httptest.NewServer(s.Handler())
	s.URL = s.hs.URL
	return s
}

// NewUnstarted builds the fixture without a listener; mount Handler on a
// server of your own. URL stays empty.
func NewUnstarted(opts Options) *Server {
	s := &Server{
		APIKey:    opts.APIKey,
		log:       zerolog.Nop(),
		tables:    make(map[string][]string),
		procStubs: make(map[string]string),
	}
	if opts.Logger != nil {
		s.log = *opts.Logger
	}

	r := chi.NewRouter()
	r.Use(Recover())
	r.Use(Logging(&s.log))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/api/data/query", s.handleQuery)
	r.Get("/api/data/sp", s.handleProc)
	s.router = r
	return s
}

// Handler returns the service's HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Close shuts the listener down.
func (s *Server) Close() {
	if s.hs != nil {
		s.hs.Close()
	}
}

// RegisterTable makes a table fixture available to plain and TOP-limited
// SELECT * queries. The fake honors TOP server-side, truncating in fixture
// row order. csv is a full payload: header row first.
func (s *Server) RegisterTable(name, csv string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[name] = strings.Split(strings.TrimRight(csv, "\n"), "\n")
}

// StubQuery serves csv for any query containing substr (case-insensitive).
// Stubs are tried in registration order after table fixtures.
func (s *Server) StubQuery(substr, csv string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryStubs = append(s.queryStubs, queryStub{substr: substr, status: http.StatusOK, csv: csv})
}

// StubQueryError answers any query containing substr with an error status
// and body.
func (s *Server) StubQueryError(substr string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryStubs = append(s.queryStubs, queryStub{substr: substr, status: status, body: body})
}

// StubProc serves csv for stored-procedure calls with the given spName.
func (s *Server) StubProc(spName, csv string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.procStubs[spName] = csv
}

// Requests returns a copy of every recorded request in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request, if any.
func (s *Server) LastRequest() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// Reset drops all recorded requests and fixtures.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
	s.tables = make(map[string][]string)
	s.queryStubs = nil
	s.procStubs = make(map[string]string)
}

func (s *Server) record(r *http.Request, route string) {
	q := r.URL.Query()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, Request{
		Route:    route,
		RawQuery: r.URL.RawQuery,
		Query:    q.Get("query"),
		SpName:   q.Get("spName"),
		Params:   q,
		Header:   r.Header.Clone(),
	})
}

func (s *Server) authorized(r *http.Request) bool {
	if s.APIKey == "" {
		return true
	}
	return r.Header.Get("Authorization") == "Api-Key "+s.APIKey
}

// selectPattern accepts the full-table reads the client emits: a plain
// SELECT * or a TOP-limited one.
var selectPattern = regexp.MustCompile(`(?i)^SELECT\s+(?:TOP\s+(\d+)\s+)?\*\s+FROM\s+(\S+)\s*$`)

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	s.record(r, "/api/data/query")
	if !s.authorized(r) {
		http.Error(w, "Invalid API key", http.StatusUnauthorized)
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("query"))

	if m := selectPattern.FindStringSubmatch(query); m != nil {
		s.mu.Lock()
		lines, ok := s.tables[m[2]]
		s.mu.Unlock()
		if ok {
			limit := -1
			if m[1] != "" {
				limit, _ = strconv.Atoi(m[1])
			}
			writeLines(w, lines, limit)
			return
		}
	}

	s.mu.Lock()
	var hit *queryStub
	lower := strings.ToLower(query)
	for i := range s.queryStubs {
		if strings.Contains(lower, strings.ToLower(s.queryStubs[i].substr)) {
			hit = &s.queryStubs[i]
			break
		}
	}
	s.mu.Unlock()

	if hit == nil {
		http.Error(w, fmt.Sprintf("no fixture matches query: %s", query), http.StatusBadRequest)
		return
	}
	if hit.status != http.StatusOK {
		http.Error(w, hit.body, hit.status)
		return
	}
	writeCSV(w, hit.csv)
}

func (s *Server) handleProc(w http.ResponseWriter, r *http.Request) {
	s.record(r, "/api/data/sp")
	if !s.authorized(r) {
		http.Error(w, "Invalid API key", http.StatusUnauthorized)
		return
	}
	spName := r.URL.Query().Get("spName")

	s.mu.Lock()
	csv, ok := s.procStubs[spName]
	s.mu.Unlock()
	if !ok {
		http.Error(w, fmt.Sprintf("no fixture for procedure: %s", spName), http.StatusBadRequest)
		return
	}
	writeCSV(w, csv)
}

func writeCSV(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
	if !strings.HasSuffix(body, "\n") {
		_, _ = w.Write([]byte("\n"))
	}
}

// writeLines emits the header line plus at most limit data lines; a
// negative limit means all of them.
func writeLines(w http.ResponseWriter, lines []string, limit int) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	for i, ln := range lines {
		if limit >= 0 && i > limit {
			break
		}
		_, _ = w.Write([]byte(ln + "\n"))
	}
}
