package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	cmap "github.com/simonscmap/cmap-go"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "manage client configuration",
}

var setKeyCmd = &cobra.Command{
	Use:   "set-key <api-key>",
	Short: "store the API key for this and future sessions",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if err := cmap.SaveAPIKey(args[0]); err != nil {
			return err
		}
		fmt.Println("api key stored")
		return nil
	},
}

func init() {
	configCmd.AddCommand(setKeyCmd)
	rootCmd.AddCommand(configCmd)
}
