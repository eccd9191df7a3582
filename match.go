package cmap

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Tolerance is the maximum difference under which two samples are
// considered co-located. Days is temporal; Lat and Lon are degrees; Depth
// is meters.
type Tolerance struct {
	Days  float64
	Lat   float64
	Lon   float64
	Depth float64
}

// MatchRequest joins a source variable against one or more target
// variables. TargetTables and TargetVariables are order-correlated:
// TargetVariables[i] lives in TargetTables[i].
type MatchRequest struct {
	Source          Constraint
	TargetTables    []string
	TargetVariables []string
	Tolerance       Tolerance
}

// Match colocalizes the targets with the source within the tolerance
// windows. The server owns the nearest-within-tolerance join; this call only
// assembles the request. Mismatched target lengths fail before anything is
// sent.
func (c *Client) Match(ctx context.Context, req MatchRequest) (*Table, error) {
	if len(req.TargetTables) != len(req.TargetVariables) {
		return nil, fmt.Errorf("%w: %d tables, %d variables",
			ErrTargetMismatch, len(req.TargetTables), len(req.TargetVariables))
	}
	args := []string{
		req.Source.Table,
		req.Source.Variable,
		strings.Join(req.TargetTables, ","),
		strings.Join(req.TargetVariables, ","),
		req.Source.DT1,
		req.Source.DT2,
		formatFloat(req.Source.Lat1),
		formatFloat(req.Source.Lat2),
		formatFloat(req.Source.Lon1),
		formatFloat(req.Source.Lon2),
		formatFloat(req.Source.Depth1),
		formatFloat(req.Source.Depth2),
		formatFloat(req.Tolerance.Days),
		formatFloat(req.Tolerance.Lat),
		formatFloat(req.Tolerance.Lon),
		formatFloat(req.Tolerance.Depth),
	}
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = "'" + a + "'"
	}
	return c.Query(ctx, "EXEC uspMatch "+strings.Join(quoted, ","))
}

// AlongTrack colocalizes target variables along a cruise's trajectory: the
// cruise name is resolved to its bounds, then matched with the trajectory as
// the source series. Resolution failure short-circuits before any match
// request is sent.
func (c *Client) AlongTrack(ctx context.Context, cruise string, targetTables, targetVariables []string, depth1, depth2 float64, tol Tolerance) (*Table, error) {
	if len(targetTables) != len(targetVariables) {
		return nil, fmt.Errorf("%w: %d tables, %d variables",
			ErrTargetMismatch, len(targetTables), len(targetVariables))
	}
	cr, err := c.CruiseByName(ctx, cruise)
	if err != nil {
		return nil, err
	}
	b, err := c.cruiseBounds(ctx, cr)
	if err != nil {
		return nil, err
	}
	return c.Match(ctx, MatchRequest{
		Source: Constraint{
			Table:    "tblCruise_Trajectory",
			Variable: strconv.FormatInt(cr.ID, 10),
			DT1:      b.DT1,
			DT2:      b.DT2,
			Lat1:     b.Lat1,
			Lat2:     b.Lat2,
			Lon1:     b.Lon1,
			Lon2:     b.Lon2,
			Depth1:   depth1,
			Depth2:   depth2,
		},
		TargetTables:    targetTables,
		TargetVariables: targetVariables,
		Tolerance:       tol,
	})
}
