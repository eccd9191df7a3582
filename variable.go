package cmap

import (
	"context"
	"fmt"
	"strings"
)

// climatologyMarker flags datasets holding averaged typical conditions
// rather than dated observations.
const climatologyMarker = "_Climatology"

// Metadata returns the full metadata record of a variable.
func (c *Client) Metadata(ctx context.Context, table, variable string) (*Table, error) {
	return c.Query(ctx, fmt.Sprintf("EXEC uspVariableMetaData '%s', '%s'", table, variable))
}

// VariableCatalog returns the catalog entry of a single variable.
func (c *Client) VariableCatalog(ctx context.Context, table, variable string) (*Table, error) {
	return c.Query(ctx, fmt.Sprintf("SELECT * FROM dbo.udfCatalog() WHERE Table_Name='%s' AND Variable='%s'", table, variable))
}

// VariableLongName returns the human-readable name of a variable.
func (c *Client) VariableLongName(ctx context.Context, table, variable string) (string, error) {
	t, err := c.Query(ctx, fmt.Sprintf("SELECT Long_Name, Short_Name FROM tblVariables WHERE Table_Name='%s' AND Short_Name='%s'", table, variable))
	if err != nil {
		return "", err
	}
	name, ok := t.cellString("Long_Name", 0)
	if !ok {
		return "", ErrNotFound
	}
	return name, nil
}

// VariableUnit returns the unit of a variable, without decoration.
func (c *Client) VariableUnit(ctx context.Context, table, variable string) (string, error) {
	t, err := c.Query(ctx, fmt.Sprintf("SELECT Unit, Short_Name FROM tblVariables WHERE Table_Name='%s' AND Short_Name='%s'", table, variable))
	if err != nil {
		return "", err
	}
	unit, ok := t.cellString("Unit", 0)
	if !ok {
		return "", ErrNotFound
	}
	return unit, nil
}

// VariableResolution returns the temporal and spatial resolution of a
// variable as a single-row table.
func (c *Client) VariableResolution(ctx context.Context, table, variable string) (*Table, error) {
	return c.Query(ctx, fmt.Sprintf("SELECT Table_Name, Variable, Temporal_Resolution, Spatial_Resolution FROM dbo.udfCatalog() WHERE Table_Name='%s' AND Variable='%s'", table, variable))
}

// VariableCoverage returns the spatiotemporal coverage of a variable as a
// single-row table.
func (c *Client) VariableCoverage(ctx context.Context, table, variable string) (*Table, error) {
	return c.Query(ctx, fmt.Sprintf("SELECT Table_Name, Variable, Time_Min, Time_Max, Lat_Min, Lat_Max, Lon_Min, Lon_Max, Depth_Min, Depth_Max FROM dbo.udfCatalog() WHERE Table_Name='%s' AND Variable='%s'", table, variable))
}

// VariableStat returns the summary statistics of a variable as a single-row
// table.
func (c *Client) VariableStat(ctx context.Context, table, variable string) (*Table, error) {
	return c.Query(ctx, fmt.Sprintf("SELECT Table_Name, Variable, Variable_Min, Variable_Max, Variable_Mean, Variable_STD, Variable_Count FROM dbo.udfCatalog() WHERE Table_Name='%s' AND Variable='%s'", table, variable))
}

// HasField reports whether a table has a column of the given name.
func (c *Client) HasField(ctx context.Context, table, variable string) (bool, error) {
	t, err := c.Query(ctx, fmt.Sprintf("SELECT COL_LENGTH('%s', '%s') AS RESULT", table, variable))
	if err != nil {
		return false, err
	}
	v, ok := t.cellString("RESULT", 0)
	return ok && v != "", nil
}

// IsGrid reports whether a variable lies on a regular spatial grid.
// Irregularly sampled data (cruises, floats, drifters) returns false.
func (c *Client) IsGrid(ctx context.Context, table, variable string) (bool, error) {
	t, err := c.Query(ctx, fmt.Sprintf(
		"SELECT Spatial_Res_ID, RTRIM(LTRIM(Spatial_Resolution)) AS Spatial_Resolution FROM tblVariables "+
			"JOIN tblSpatial_Resolutions ON [tblVariables].Spatial_Res_ID=[tblSpatial_Resolutions].ID "+
			"WHERE Table_Name='%s' AND Short_Name='%s'", table, variable))
	if err != nil {
		return false, err
	}
	res, ok := t.cellString("Spatial_Resolution", 0)
	if !ok {
		return false, ErrNotFound
	}
	return !strings.Contains(strings.ToLower(res), "irregular"), nil
}

// IsClimatology reports whether a table holds a climatological product.
// Pure name check; no request is made.
func IsClimatology(table string) bool {
	return strings.Contains(table, climatologyMarker)
}
