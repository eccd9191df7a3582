package cmap

import (
	"context"
	"fmt"
	"strings"
)

// Catalog returns the full variable catalog: one row per variable with its
// dataset, coverage and summary statistics.
func (c *Client) Catalog(ctx context.Context) (*Table, error) {
	return c.Query(ctx, "EXEC uspCatalog")
}

// Search filters the catalog by keywords. All keywords must hit for a
// variable to be returned.
func (c *Client) Search(ctx context.Context, keywords ...string) (*Table, error) {
	return c.Query(ctx, fmt.Sprintf("EXEC uspSearchCatalog '%s'", strings.Join(keywords, " ")))
}

// Datasets lists the registered datasets.
func (c *Client) Datasets(ctx context.Context) (*Table, error) {
	return c.Query(ctx, "SELECT * FROM tblDatasets")
}

// Head returns the first rows of a table in server order. rows <= 0 means 5.
func (c *Client) Head(ctx context.Context, table string, rows int) (*Table, error) {
	if rows <= 0 {
		rows = 5
	}
	return c.Query(ctx, fmt.Sprintf("SELECT TOP %d * FROM %s", rows, table))
}

// Columns returns the column names of a table.
func (c *Client) Columns(ctx context.Context, table string) ([]string, error) {
	t, err := c.Query(ctx, fmt.Sprintf("SELECT COLUMN_NAME FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_NAME='%s'", table))
	if err != nil {
		return nil, err
	}
	return t.Strings("COLUMN_NAME")
}

// DatasetMetadata returns the dataset-level metadata (description,
// distributor, references) for the dataset backing a table.
func (c *Client) DatasetMetadata(ctx context.Context, table string) (*Table, error) {
	return c.Query(ctx, fmt.Sprintf("EXEC uspDatasetMetadata '%s'", table))
}
