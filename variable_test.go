package cmap

import (
	"context"
	"errors"
	"testing"
)

func TestMetadata_ReturnsVariableRecord(t *testing.T) {
	c, srv := demoClient(t)

	tab, err := c.Metadata(context.Background(), "tblSST", "sst")
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	long, ok := tab.cellString("Long_Name", 0)
	if !ok || long != "Sea Surface Temperature" {
		t.Fatalf("Long_Name=%q", long)
	}
	last, _ := srv.LastRequest()
	if last.Query != "EXEC uspVariableMetaData 'tblSST', 'sst'" {
		t.Fatalf("query=%q", last.Query)
	}
}

func TestVariableCatalog_SingleEntry(t *testing.T) {
	c, _ := demoClient(t)

	tab, err := c.VariableCatalog(context.Background(), "tblSST", "sst")
	if err != nil {
		t.Fatalf("VariableCatalog: %v", err)
	}
	if tab.NumRows() != 1 {
		t.Fatalf("rows=%d want 1", tab.NumRows())
	}
	if v, _ := tab.cellString("Sensor", 0); v != "satellite" {
		t.Fatalf("Sensor=%q", v)
	}
}

func TestVariableLongNameAndUnit(t *testing.T) {
	c, _ := demoClient(t)

	long, err := c.VariableLongName(context.Background(), "tblSST", "sst")
	if err != nil {
		t.Fatalf("VariableLongName: %v", err)
	}
	if long != "Sea Surface Temperature" {
		t.Fatalf("long name=%q", long)
	}

	unit, err := c.VariableUnit(context.Background(), "tblSST", "sst")
	if err != nil {
		t.Fatalf("VariableUnit: %v", err)
	}
	if unit != "degree C" {
		t.Fatalf("unit=%q", unit)
	}
}

func TestVariableLongName_UnknownVariable(t *testing.T) {
	c, srv := demoClient(t)
	srv.StubQuery("Short_Name='nope'", "Long_Name,Short_Name")

	_, err := c.VariableLongName(context.Background(), "tblSST", "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v want ErrNotFound", err)
	}
}

func TestVariableResolutionCoverageStat_SingleRow(t *testing.T) {
	c, _ := demoClient(t)
	ctx := context.Background()

	res, err := c.VariableResolution(ctx, "tblSST", "sst")
	if err != nil {
		t.Fatalf("VariableResolution: %v", err)
	}
	if v, _ := res.cellString("Temporal_Resolution", 0); v != "Daily" {
		t.Fatalf("Temporal_Resolution=%q", v)
	}

	cov, err := c.VariableCoverage(ctx, "tblSST", "sst")
	if err != nil {
		t.Fatalf("VariableCoverage: %v", err)
	}
	if v, _ := cov.cellFloat("Lat_Max", 0); v != 89.875 {
		t.Fatalf("Lat_Max=%v", v)
	}

	stat, err := c.VariableStat(ctx, "tblSST", "sst")
	if err != nil {
		t.Fatalf("VariableStat: %v", err)
	}
	if v, _ := stat.cellFloat("Variable_Mean", 0); v != 18.2 {
		t.Fatalf("Variable_Mean=%v", v)
	}
}

func TestHasField_PresentAndAbsent(t *testing.T) {
	c, _ := demoClient(t)
	ctx := context.Background()

	has, err := c.HasField(ctx, "tblSST", "sst")
	if err != nil {
		t.Fatalf("HasField: %v", err)
	}
	if !has {
		t.Fatalf("HasField(tblSST, sst)=false want true")
	}

	has, err = c.HasField(ctx, "tblSST", "windspeed")
	if err != nil {
		t.Fatalf("HasField: %v", err)
	}
	if has {
		t.Fatalf("HasField(tblSST, windspeed)=true want false")
	}
}

func TestIsGrid_GriddedAndIrregular(t *testing.T) {
	c, _ := demoClient(t)
	ctx := context.Background()

	grid, err := c.IsGrid(ctx, "tblSST", "sst")
	if err != nil {
		t.Fatalf("IsGrid: %v", err)
	}
	if !grid {
		t.Fatalf("IsGrid(tblSST)=false want true")
	}

	grid, err = c.IsGrid(ctx, "tblSeaFlow", "prochloro_abundance")
	if err != nil {
		t.Fatalf("IsGrid: %v", err)
	}
	if grid {
		t.Fatalf("IsGrid(tblSeaFlow)=true want false")
	}
}

func TestIsClimatology_NameCheck(t *testing.T) {
	if !IsClimatology("tblDarwin_Nutrient_Climatology") {
		t.Fatalf("climatology table not recognized")
	}
	if IsClimatology("tblSST_AVHRR_OI_NRT") {
		t.Fatalf("non-climatology table flagged")
	}
}
