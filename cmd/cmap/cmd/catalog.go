package cmd

import (
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "list every variable in the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		t, err := newClient().Catalog(cmd.Context())
		if err != nil {
			return err
		}
		return writeTable(t)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <keyword>...",
	Short: "search the catalog by keywords",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := newClient().Search(cmd.Context(), args...)
		if err != nil {
			return err
		}
		return writeTable(t)
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(searchCmd)
}
