package cmap

import (
	"context"
	"fmt"
)

// Cruise is one resolved cruise record.
type Cruise struct {
	ID       int64
	Name     string
	Nickname string
	Ship     string
	Chief    string
}

// CruiseBounds is a cruise's time window and bounding box, derived from its
// trajectory. Bounds are resolved on demand and never cached; trajectories
// can be amended server-side.
type CruiseBounds struct {
	ID   int64
	DT1  string
	DT2  string
	Lat1 float64
	Lat2 float64
	Lon1 float64
	Lon2 float64
}

// Cruises lists all registered cruises.
func (c *Client) Cruises(ctx context.Context) (*Table, error) {
	return c.Query(ctx, "EXEC uspCruises")
}

// CruiseByName resolves an official cruise name or nickname to exactly one
// cruise. Zero matches is ErrNotFound; several matches is an
// AmbiguousCruiseError carrying the candidates so the caller can pick.
func (c *Client) CruiseByName(ctx context.Context, name string) (Cruise, error) {
	t, err := c.Query(ctx, fmt.Sprintf("EXEC uspCruiseByName '%s'", name))
	if err != nil {
		return Cruise{}, err
	}
	switch t.NumRows() {
	case 0:
		return Cruise{}, fmt.Errorf("%w: cruise %q", ErrNotFound, name)
	case 1:
		return cruiseAt(t, 0)
	default:
		cand := make([]Cruise, t.NumRows())
		for i := range cand {
			cr, err := cruiseAt(t, i)
			if err != nil {
				return Cruise{}, err
			}
			cand[i] = cr
		}
		return Cruise{}, &AmbiguousCruiseError{Name: name, Candidates: cand}
	}
}

// cruiseAt reads one cruise record. The ID drives every follow-up procedure
// call, so a record without a usable ID is a malformed response rather than
// cruise zero.
func cruiseAt(t *Table, row int) (Cruise, error) {
	id, ok := t.cellInt("ID", row)
	if !ok {
		return Cruise{}, &MalformedResponseError{Err: fmt.Errorf("cruise record %d lacks a numeric ID", row)}
	}
	cr := Cruise{ID: id}
	cr.Name, _ = t.cellString("Name", row)
	cr.Nickname, _ = t.cellString("Nickname", row)
	cr.Ship, _ = t.cellString("Ship_Name", row)
	cr.Chief, _ = t.cellString("Chief_Name", row)
	return cr, nil
}

// CruiseBounds resolves a cruise name and returns its bounds.
func (c *Client) CruiseBounds(ctx context.Context, name string) (CruiseBounds, error) {
	cr, err := c.CruiseByName(ctx, name)
	if err != nil {
		return CruiseBounds{}, err
	}
	return c.cruiseBounds(ctx, cr)
}

func (c *Client) cruiseBounds(ctx context.Context, cr Cruise) (CruiseBounds, error) {
	t, err := c.Query(ctx, fmt.Sprintf("EXEC uspCruiseBounds %d", cr.ID))
	if err != nil {
		return CruiseBounds{}, err
	}
	if t.NumRows() == 0 {
		return CruiseBounds{}, fmt.Errorf("%w: no bounds for cruise %q", ErrNotFound, cr.Name)
	}

	b := CruiseBounds{ID: cr.ID}
	b.DT1, _ = t.cellString("dt1", 0)
	b.DT2, _ = t.cellString("dt2", 0)
	if b.DT1 == "" || b.DT2 == "" {
		return CruiseBounds{}, &MalformedResponseError{Err: fmt.Errorf("cruise bounds for %q lack a time window", cr.Name)}
	}
	for _, f := range []struct {
		col string
		dst *float64
	}{
		{"lat1", &b.Lat1},
		{"lat2", &b.Lat2},
		{"lon1", &b.Lon1},
		{"lon2", &b.Lon2},
	} {
		v, ok := t.cellFloat(f.col, 0)
		if !ok {
			return CruiseBounds{}, &MalformedResponseError{Err: fmt.Errorf("cruise bounds for %q lack %s", cr.Name, f.col)}
		}
		*f.dst = v
	}
	return b, nil
}

// CruiseTrajectory returns the cruise's track, one row per fix in time
// order.
func (c *Client) CruiseTrajectory(ctx context.Context, name string) (*Table, error) {
	cr, err := c.CruiseByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return c.Query(ctx, fmt.Sprintf("EXEC uspCruiseTrajectory %d", cr.ID))
}

// CruiseVariables lists the variables measured on a cruise.
func (c *Client) CruiseVariables(ctx context.Context, name string) (*Table, error) {
	cr, err := c.CruiseByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return c.Query(ctx, fmt.Sprintf("SELECT * FROM dbo.udfCruiseVariables(%d)", cr.ID))
}
