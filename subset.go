package cmap

import (
	"context"
	"fmt"
	"strings"
)

// Constraint selects one variable over inclusive time, latitude, longitude
// and depth windows. DT1 and DT2 are passed through verbatim, so any
// timestamp form the service accepts works. No client-side range checks are
// applied.
type Constraint struct {
	Table    string
	Variable string
	DT1      string
	DT2      string
	Lat1     float64
	Lat2     float64
	Lon1     float64
	Lon2     float64
	Depth1   float64
	Depth2   float64
}

// Subset invokes a named subsetting procedure with the given constraint.
// The parameter order below is positional on the service side and must not
// change.
func (c *Client) Subset(ctx context.Context, procName string, con Constraint) (*Table, error) {
	p := &params{}
	p.add("tableName", con.Table)
	p.add("fields", con.Variable)
	p.add("dt1", con.DT1)
	p.add("dt2", con.DT2)
	p.addFloat("lat1", con.Lat1)
	p.addFloat("lat2", con.Lat2)
	p.addFloat("lon1", con.Lon1)
	p.addFloat("lon2", con.Lon2)
	p.addFloat("depth1", con.Depth1)
	p.addFloat("depth2", con.Depth2)
	p.add("spName", procName)
	return c.fetch(ctx, procRoute, p)
}

// SpaceTime returns the variable's samples inside the constraint windows.
// This is the chunk-friendly retrieval path for large datasets.
func (c *Client) SpaceTime(ctx context.Context, con Constraint) (*Table, error) {
	return c.Subset(ctx, "uspSpaceTime", con)
}

// TimeSeries returns the variable aggregated over time. interval selects
// the binning: "" keeps the native sampling; weekly, monthly, quarterly and
// annual bins are selected by their synonyms (w/week/weekly and so on).
// Climatological products carry no real time axis and refuse any non-empty
// interval.
func (c *Client) TimeSeries(ctx context.Context, con Constraint, interval string) (*Table, error) {
	proc, err := intervalProc(interval)
	if err != nil {
		return nil, err
	}
	if proc != "uspTimeSeries" && IsClimatology(con.Table) {
		return nil, fmt.Errorf("%w: %s", ErrClimatologyBinning, con.Table)
	}
	return c.Subset(ctx, proc, con)
}

// DepthProfile returns the variable aggregated onto its depth axis.
func (c *Client) DepthProfile(ctx context.Context, con Constraint) (*Table, error) {
	return c.Subset(ctx, "uspDepthProfile", con)
}

// Section returns the variable along a vertical section through the
// constraint windows.
func (c *Client) Section(ctx context.Context, con Constraint) (*Table, error) {
	return c.Subset(ctx, "uspSectionMap", con)
}

// intervalProc maps a binning interval and its synonyms onto the serving
// procedure. Unknown intervals are an error, never a silent default.
func intervalProc(interval string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(interval)) {
	case "":
		return "uspTimeSeries", nil
	case "w", "week", "weekly":
		return "uspWeekly", nil
	case "m", "month", "monthly":
		return "uspMonthly", nil
	case "q", "s", "season", "seasonal", "seasonality", "quarterly":
		return "uspQuarterly", nil
	case "y", "a", "year", "yearly", "annual":
		return "uspAnnual", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidInterval, interval)
	}
}
