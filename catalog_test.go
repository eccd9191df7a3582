package cmap

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/simonscmap/cmap-go/cmaptest"
)

func TestCatalog_ListsEveryVariable(t *testing.T) {
	c, _ := demoClient(t)

	tab, err := c.Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if tab.NumRows() != 3 {
		t.Fatalf("rows=%d want 3", tab.NumRows())
	}
	vars, err := tab.Strings("Variable")
	if err != nil {
		t.Fatalf("Strings: %v", err)
	}
	if diff := cmp.Diff([]string{"sst", "salinity", "prochloro_abundance"}, vars); diff != "" {
		t.Fatalf("variables mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_QuotesJoinedKeywords(t *testing.T) {
	c, srv := demoClient(t)

	tab, err := c.Search(context.Background(), "sst")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if tab.NumRows() != 1 {
		t.Fatalf("rows=%d want 1", tab.NumRows())
	}
	last, _ := srv.LastRequest()
	if last.Query != "EXEC uspSearchCatalog 'sst'" {
		t.Fatalf("query=%q", last.Query)
	}
}

func TestHead_TruncatesInServerOrder(t *testing.T) {
	c, _ := demoClient(t)

	tab, err := c.Head(context.Background(), "tblSST", 3)
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	if tab.NumRows() != 3 {
		t.Fatalf("rows=%d want 3", tab.NumRows())
	}
	lats, err := tab.Float64s("lat")
	if err != nil {
		t.Fatalf("Float64s: %v", err)
	}
	if diff := cmp.Diff([]float64{10.125, 10.375, 10.625}, lats); diff != "" {
		t.Fatalf("lats mismatch (-want +got):\n%s", diff)
	}
}

func TestHead_DefaultsToFiveRows(t *testing.T) {
	c, srv := demoClient(t)

	tab, err := c.Head(context.Background(), "tblSST", 0)
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	if tab.NumRows() != 5 {
		t.Fatalf("rows=%d want 5", tab.NumRows())
	}
	last, _ := srv.LastRequest()
	if last.Query != "SELECT TOP 5 * FROM tblSST" {
		t.Fatalf("query=%q", last.Query)
	}
}

func TestColumns_ReturnsNames(t *testing.T) {
	c, _ := demoClient(t)

	cols, err := c.Columns(context.Background(), "tblSST")
	if err != nil {
		t.Fatalf("Columns: %v", err)
	}
	if diff := cmp.Diff([]string{"time", "lat", "lon", "sst"}, cols); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
}

func TestDatasets_ListsRegisteredDatasets(t *testing.T) {
	c, _ := demoClient(t)

	tab, err := c.Datasets(context.Background())
	if err != nil {
		t.Fatalf("Datasets: %v", err)
	}
	if tab.NumRows() != 3 {
		t.Fatalf("rows=%d want 3", tab.NumRows())
	}
}

func TestDatasetMetadata_ReturnsRecord(t *testing.T) {
	c, _ := demoClient(t)

	tab, err := c.DatasetMetadata(context.Background(), "tblSST")
	if err != nil {
		t.Fatalf("DatasetMetadata: %v", err)
	}
	name, ok := tab.cellString("Dataset_Name", 0)
	if !ok || name != "SST" {
		t.Fatalf("Dataset_Name=%q want SST", name)
	}
}

func TestAuth_WrongKeyIsServiceError(t *testing.T) {
	srv := cmaptest.NewWithOptions(cmaptest.Options{APIKey: cmaptest.DemoAPIKey})
	t.Cleanup(srv.Close)
	srv.SeedDemo()

	c := New(Options{BaseURL: srv.URL, APIKey: "wrong"})
	_, err := c.Catalog(context.Background())
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("err=%v want ServiceError", err)
	}
	if svcErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status=%d want 401", svcErr.StatusCode)
	}
}

func TestAuth_MatchingKeyAccepted(t *testing.T) {
	srv := cmaptest.NewWithOptions(cmaptest.Options{APIKey: cmaptest.DemoAPIKey})
	t.Cleanup(srv.Close)
	srv.SeedDemo()

	c := New(Options{BaseURL: srv.URL, APIKey: cmaptest.DemoAPIKey})
	if _, err := c.Catalog(context.Background()); err != nil {
		t.Fatalf("Catalog: %v", err)
	}
}
