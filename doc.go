// Package cmap is a client for the Simons CMAP ocean data service.
//
// Data is retrieved through parameterized queries: raw SQL via Query, or
// typed operations wrapping the service's stored procedures (catalog
// lookups, space-time subsets, cruise resolution, variable colocalization).
// Responses materialize as column-typed Tables owned by the caller.
//
//	c := cmap.New(cmap.Options{})
//	t, err := c.SpaceTime(ctx, cmap.Constraint{
//		Table:    "tblSST_AVHRR_OI_NRT",
//		Variable: "sst",
//		DT1:      "2016-04-30",
//		DT2:      "2016-04-30",
//		Lat1:     10,
//		Lat2:     70,
//		Lon1:     -180,
//		Lon2:     -80,
//	})
//
// Register at https://simonscmap.com for an API key and store it once with
// SaveAPIKey; clients resolve it on every request from the environment or
// the credentials file, so a key stored mid-session takes effect
// immediately.
//
// Query parameters are inserted into server-side SQL with only whitespace
// escaping. Do not pass untrusted input containing quote characters.
package cmap
