package cmd

import (
	"github.com/spf13/cobra"
)

var headRows int

var headCmd = &cobra.Command{
	Use:   "head <table>",
	Short: "show the first rows of a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := newClient().Head(cmd.Context(), args[0], headRows)
		if err != nil {
			return err
		}
		return writeTable(t)
	},
}

var queryCmd = &cobra.Command{
	Use:   "query <sql>",
	Short: "run a raw SQL statement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := newClient().Query(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeTable(t)
	},
}

func init() {
	headCmd.Flags().IntVar(&headRows, "rows", 5, "number of rows to fetch")
	rootCmd.AddCommand(headCmd)
	rootCmd.AddCommand(queryCmd)
}
