package cmap

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestMatch_AssemblesPositionalArguments(t *testing.T) {
	c, srv := demoClient(t)

	req := MatchRequest{
		Source: Constraint{
			Table:    "tblSeaFlow",
			Variable: "prochloro_abundance",
			DT1:      "2016-04-20",
			DT2:      "2016-05-03",
			Lat1:     22.5, Lat2: 38.1,
			Lon1: -158.2, Lon2: -157.9,
			Depth1: 0, Depth2: 5,
		},
		TargetTables:    []string{"tblSST", "tblArgoMerge"},
		TargetVariables: []string{"sst", "salinity"},
		Tolerance:       Tolerance{Days: 1, Lat: 0.25, Lon: 0.25, Depth: 5},
	}
	tab, err := c.Match(context.Background(), req)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if tab.NumRows() != 3 {
		t.Fatalf("rows=%d want 3", tab.NumRows())
	}

	last, _ := srv.LastRequest()
	want := "EXEC uspMatch 'tblSeaFlow','prochloro_abundance','tblSST,tblArgoMerge','sst,salinity'," +
		"'2016-04-20','2016-05-03','22.5','38.1','-158.2','-157.9','0','5','1','0.25','0.25','5'"
	if last.Query != want {
		t.Fatalf("query:\n got %q\nwant %q", last.Query, want)
	}
}

func TestMatch_MismatchedTargetsSendNothing(t *testing.T) {
	c, srv := demoClient(t)

	_, err := c.Match(context.Background(), MatchRequest{
		Source:          Constraint{Table: "tblSeaFlow", Variable: "prochloro_abundance"},
		TargetTables:    []string{"tblSST", "tblArgoMerge"},
		TargetVariables: []string{"sst"},
	})
	if !errors.Is(err, ErrTargetMismatch) {
		t.Fatalf("err=%v want ErrTargetMismatch", err)
	}
	if n := len(srv.Requests()); n != 0 {
		t.Fatalf("requests=%d want 0", n)
	}
}

func TestAlongTrack_ResolvesBoundsThenMatches(t *testing.T) {
	c, srv := demoClient(t)

	tab, err := c.AlongTrack(context.Background(), "KOK1606",
		[]string{"tblSST"}, []string{"sst"}, 0, 5,
		Tolerance{Days: 1, Lat: 0.25, Lon: 0.25, Depth: 5})
	if err != nil {
		t.Fatalf("AlongTrack: %v", err)
	}
	if tab.NumRows() != 3 {
		t.Fatalf("rows=%d want 3", tab.NumRows())
	}

	reqs := srv.Requests()
	if len(reqs) != 3 {
		t.Fatalf("requests=%d want 3", len(reqs))
	}
	if reqs[0].Query != "EXEC uspCruiseByName 'KOK1606'" {
		t.Fatalf("first query=%q", reqs[0].Query)
	}
	if reqs[1].Query != "EXEC uspCruiseBounds 42" {
		t.Fatalf("second query=%q", reqs[1].Query)
	}
	matchQ := reqs[2].Query
	if !strings.HasPrefix(matchQ, "EXEC uspMatch ") {
		t.Fatalf("third query=%q", matchQ)
	}
	wantArgs := "'tblCruise_Trajectory','42','2016-04-20T00:00:00','2016-05-03T23:59:59'," +
		"'22.5','38.1','-158.2','-157.9','0','5'"
	if !strings.Contains(matchQ, wantArgs) {
		t.Fatalf("match query lacks resolved bounds:\n got %q\nwant substring %q", matchQ, wantArgs)
	}
}

func TestAlongTrack_AmbiguousCruiseShortCircuits(t *testing.T) {
	c, srv := demoClient(t)

	_, err := c.AlongTrack(context.Background(), "gradients",
		[]string{"tblSST"}, []string{"sst"}, 0, 5, Tolerance{})
	var ambig *AmbiguousCruiseError
	if !errors.As(err, &ambig) {
		t.Fatalf("err=%v want AmbiguousCruiseError", err)
	}
	if n := len(srv.Requests()); n != 1 {
		t.Fatalf("requests=%d want 1, only the name lookup", n)
	}
}

func TestAlongTrack_MismatchedTargetsSendNothing(t *testing.T) {
	c, srv := demoClient(t)

	_, err := c.AlongTrack(context.Background(), "KOK1606",
		[]string{"tblSST"}, nil, 0, 5, Tolerance{})
	if !errors.Is(err, ErrTargetMismatch) {
		t.Fatalf("err=%v want ErrTargetMismatch", err)
	}
	if n := len(srv.Requests()); n != 0 {
		t.Fatalf("requests=%d want 0", n)
	}
}
