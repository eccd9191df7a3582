package cmap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// maxDatasetRows is the ceiling above which full-table fetches are refused.
const maxDatasetRows = 2_000_000

// DatasetID resolves the dataset id backing a table.
func (c *Client) DatasetID(ctx context.Context, table string) (int64, error) {
	t, err := c.Query(ctx, fmt.Sprintf("SELECT DISTINCT(Dataset_ID) FROM dbo.udfCatalog() WHERE Table_Name='%s'", table))
	if err != nil {
		return 0, err
	}
	id, ok := t.cellInt("Dataset_ID", 0)
	if !ok {
		return 0, ErrNotFound
	}
	return id, nil
}

// Dataset returns the complete contents of a table. Datasets whose row
// estimate is at or above the ceiling are refused with TooLargeError before
// any fetch is issued; pull those window by window with SpaceTime. When no
// estimate is available the guard is skipped, since the estimate is
// advisory.
func (c *Client) Dataset(ctx context.Context, table string) (*Table, error) {
	id, err := c.DatasetID(ctx, table)
	if err != nil {
		return nil, err
	}
	rows, err := c.datasetRows(ctx, id)
	if err != nil {
		c.log.Warn().
			Str("table", table).
			Err(err).
			Msg("row estimate unavailable, fetching without size guard")
	} else if rows >= maxDatasetRows {
		return nil, &TooLargeError{Table: table, Rows: rows, Limit: maxDatasetRows}
	}
	return c.Query(ctx, fmt.Sprintf("SELECT * FROM %s", table))
}

// datasetRows reads the row estimate from the dataset's stored statistics.
func (c *Client) datasetRows(ctx context.Context, datasetID int64) (int64, error) {
	t, err := c.Query(ctx, fmt.Sprintf("SELECT JSON_stats FROM tblDataset_Stats WHERE Dataset_ID=%d", datasetID))
	if err != nil {
		return 0, err
	}
	raw, ok := t.cellString("JSON_stats", 0)
	if !ok || raw == "" {
		return 0, errors.New("no statistics record")
	}
	var stats struct {
		Lat struct {
			Count float64 `json:"count"`
		} `json:"lat"`
	}
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return 0, fmt.Errorf("decode statistics: %w", err)
	}
	if stats.Lat.Count <= 0 {
		return 0, errors.New("statistics carry no row count")
	}
	return int64(stats.Lat.Count), nil
}

// References returns the citation references recorded for a dataset.
func (c *Client) References(ctx context.Context, datasetID int64) ([]string, error) {
	t, err := c.Query(ctx, fmt.Sprintf("SELECT Reference FROM tblDataset_References WHERE Dataset_ID=%d", datasetID))
	if err != nil {
		return nil, err
	}
	return t.Strings("Reference")
}
