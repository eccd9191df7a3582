package cmap

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/simonscmap/cmap-go/internal/logging"
)

// serviceRecorder stands in for the data service and snapshots the last
// request it saw.
type serviceRecorder struct {
	mu        sync.Mutex
	hits      int
	lastPath  string
	lastQuery string
	lastAuth  string
	lastReqID string

	status int
	body   string
}

func (s *serviceRecorder) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits++
		s.lastPath = r.URL.Path
		s.lastQuery = r.URL.RawQuery
		s.lastAuth = r.Header.Get("Authorization")
		s.lastReqID = r.Header.Get(logging.RequestIDHeader)
		status, body := s.status, s.body
		s.mu.Unlock()

		if status == 0 {
			status = http.StatusOK
		}
		if body == "" {
			body = "a,b\n1,2\n"
		}
		w.Header().Set("Content-Type", "text/csv")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func (s *serviceRecorder) snapshot() (int, string, string, string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits, s.lastPath, s.lastQuery, s.lastAuth, s.lastReqID
}

func TestParamsEncode_PreservesOrderAndSeparators(t *testing.T) {
	p := &params{}
	p.add("tableName", "tblSST_AVHRR_OI_NRT")
	p.add("fields", "sst")
	p.add("dt1", "2016-04-30 00:00:00")

	got := p.encode()
	want := "tableName=tblSST_AVHRR_OI_NRT&fields=sst&dt1=2016-04-30%2000:00:00"
	if got != want {
		t.Fatalf("encode=%q want %q", got, want)
	}
	if n := strings.Count(got, "&"); n != 2 {
		t.Fatalf("separator count=%d want 2", n)
	}
	if strings.Contains(got, " ") {
		t.Fatalf("encoded form contains a literal space: %q", got)
	}
}

func TestParamsEncode_LeavesQuotesAndCommasAlone(t *testing.T) {
	p := &params{}
	p.add("query", "EXEC uspSearchCatalog 'sst, nrt'")

	got := p.encode()
	want := "query=EXEC%20uspSearchCatalog%20'sst,%20nrt'"
	if got != want {
		t.Fatalf("encode=%q want %q", got, want)
	}
}

func TestParamsEncode_EmptyMappingIsEmptyString(t *testing.T) {
	p := &params{}
	if got := p.encode(); got != "" {
		t.Fatalf("encode=%q want empty", got)
	}
}

func TestFingerprint_IgnoresCaseAndSpacing(t *testing.T) {
	a := fingerprint("query=SELECT *  FROM tblFoo")
	b := fingerprint("query=select * from TBLFOO")
	if a != b {
		t.Fatalf("fingerprints differ: %s vs %s", a, b)
	}
	if len(a) != 16 {
		t.Fatalf("fingerprint length=%d want 16", len(a))
	}
}

func TestFingerprint_DistinctQueriesDiffer(t *testing.T) {
	a := fingerprint("query=SELECT * FROM tblFoo")
	b := fingerprint("query=SELECT * FROM tblBar")
	if a == b {
		t.Fatalf("distinct queries share fingerprint %s", a)
	}
}

func TestQuery_SendsRouteKeyAndRequestID(t *testing.T) {
	rec := &serviceRecorder{}
	srv := httptest.NewServer(rec.handler())
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL, APIKey: "secret-key"})
	ctx := logging.WithRequestID(context.Background(), "req-123")

	tab, err := c.Query(ctx, "SELECT * FROM tblFoo")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if tab.NumRows() != 1 {
		t.Fatalf("rows=%d want 1", tab.NumRows())
	}

	hits, path, query, auth, reqID := rec.snapshot()
	if hits != 1 {
		t.Fatalf("hits=%d want 1", hits)
	}
	if path != "/api/data/query" {
		t.Fatalf("path=%q want /api/data/query", path)
	}
	if query != "query=SELECT%20*%20FROM%20tblFoo" {
		t.Fatalf("raw query=%q", query)
	}
	if auth != "Api-Key secret-key" {
		t.Fatalf("authorization=%q", auth)
	}
	if reqID != "req-123" {
		t.Fatalf("request id=%q want req-123", reqID)
	}
}

func TestQuery_MissingKeySendsNothing(t *testing.T) {
	rec := &serviceRecorder{}
	srv := httptest.NewServer(rec.handler())
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL, Credentials: StaticCredentials("")})

	_, err := c.Query(context.Background(), "SELECT * FROM tblFoo")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("err=%v want ErrMissingAPIKey", err)
	}
	if hits, _, _, _, _ := rec.snapshot(); hits != 0 {
		t.Fatalf("hits=%d want 0", hits)
	}
}

func TestQuery_ServiceErrorCarriesStatusAndBody(t *testing.T) {
	rec := &serviceRecorder{status: http.StatusInternalServerError, body: "backend offline"}
	srv := httptest.NewServer(rec.handler())
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL, APIKey: "k"})

	_, err := c.Query(context.Background(), "SELECT * FROM tblFoo")
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("err=%v want ServiceError", err)
	}
	if svcErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status=%d want 500", svcErr.StatusCode)
	}
	if svcErr.Body != "backend offline" {
		t.Fatalf("body=%q", svcErr.Body)
	}
	if svcErr.Route != "/api/data/query" {
		t.Fatalf("route=%q", svcErr.Route)
	}
}

func TestQuery_TransportErrorWrapsCause(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(Options{BaseURL: url, APIKey: "k"})

	_, err := c.Query(context.Background(), "SELECT * FROM tblFoo")
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("err=%v want TransportError", err)
	}
	if terr.Unwrap() == nil {
		t.Fatalf("transport error has no cause")
	}
}

func TestQuery_ContextCancellation(t *testing.T) {
	rec := &serviceRecorder{}
	srv := httptest.NewServer(rec.handler())
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL, APIKey: "k"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Query(ctx, "SELECT * FROM tblFoo")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v want context.Canceled", err)
	}
}

func TestSubset_WireParameterOrder(t *testing.T) {
	rec := &serviceRecorder{}
	srv := httptest.NewServer(rec.handler())
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL, APIKey: "k"})
	con := Constraint{
		Table:    "tblSST_AVHRR_OI_NRT",
		Variable: "sst",
		DT1:      "2016-04-30",
		DT2:      "2016-05-02",
		Lat1:     10, Lat2: 15,
		Lon1: -170.5, Lon2: -160,
		Depth1: 0, Depth2: 0,
	}
	if _, err := c.Subset(context.Background(), "uspSpaceTime", con); err != nil {
		t.Fatalf("Subset: %v", err)
	}

	_, path, query, _, _ := rec.snapshot()
	if path != "/api/data/sp" {
		t.Fatalf("path=%q want /api/data/sp", path)
	}
	want := "tableName=tblSST_AVHRR_OI_NRT&fields=sst&dt1=2016-04-30&dt2=2016-05-02" +
		"&lat1=10&lat2=15&lon1=-170.5&lon2=-160&depth1=0&depth2=0&spName=uspSpaceTime"
	if query != want {
		t.Fatalf("raw query:\n got %q\nwant %q", query, want)
	}
}
