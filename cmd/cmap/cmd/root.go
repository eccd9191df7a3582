// Package cmd implements the cmap command line interface.
package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	cmap "github.com/simonscmap/cmap-go"
	"github.com/simonscmap/cmap-go/internal/logging"
)

var (
	baseURL  string
	logLevel string
	outPath  string
)

var rootCmd = &cobra.Command{
	Use:           "cmap",
	Short:         "query the Simons CMAP ocean data service",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&baseURL, "base-url", "", "service endpoint (default "+cmap.DefaultBaseURL+")")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVarP(&outPath, "out", "o", "", "write the result as CSV to this file instead of stdout")
}

// newClient builds a client from environment variables, with flags taking
// precedence.
func newClient() *cmap.Client {
	opts := cmap.Options{BaseURL: os.Getenv("CMAP_BASE_URL")}
	if baseURL != "" {
		opts.BaseURL = baseURL
	}
	lvl := os.Getenv("CMAP_LOG_LEVEL")
	if logLevel != "" {
		lvl = logLevel
	}
	if lvl != "" {
		zl := logging.Build(logging.Config{Level: lvl, Console: true, Component: "cmap"}, os.Stderr)
		opts.Logger = &zl
	}
	return cmap.New(opts)
}

// writeTable sends the result to --out as CSV, or to stdout.
func writeTable(t *cmap.Table) error {
	if outPath == "" {
		return t.WriteCSV(os.Stdout)
	}
	f, err := os.Create(filepath.Clean(outPath))
	if err != nil {
		return err
	}
	if err := t.WriteCSV(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
