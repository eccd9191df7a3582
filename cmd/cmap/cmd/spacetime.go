package cmd

import (
	"github.com/spf13/cobra"

	cmap "github.com/simonscmap/cmap-go"
)

var stCon cmap.Constraint

var spaceTimeCmd = &cobra.Command{
	Use:   "space-time <table> <variable>",
	Short: "pull a variable inside time, latitude, longitude and depth windows",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		stCon.Table = args[0]
		stCon.Variable = args[1]
		t, err := newClient().SpaceTime(cmd.Context(), stCon)
		if err != nil {
			return err
		}
		return writeTable(t)
	},
}

func init() {
	flags := spaceTimeCmd.Flags()
	flags.StringVar(&stCon.DT1, "dt1", "", "window start, e.g. 2016-04-30")
	flags.StringVar(&stCon.DT2, "dt2", "", "window end")
	flags.Float64Var(&stCon.Lat1, "lat1", -90, "south latitude bound")
	flags.Float64Var(&stCon.Lat2, "lat2", 90, "north latitude bound")
	flags.Float64Var(&stCon.Lon1, "lon1", -180, "west longitude bound")
	flags.Float64Var(&stCon.Lon2, "lon2", 180, "east longitude bound")
	flags.Float64Var(&stCon.Depth1, "depth1", 0, "shallow depth bound in meters")
	flags.Float64Var(&stCon.Depth2, "depth2", 0, "deep depth bound in meters")
	_ = spaceTimeCmd.MarkFlagRequired("dt1")
	_ = spaceTimeCmd.MarkFlagRequired("dt2")
	rootCmd.AddCommand(spaceTimeCmd)
}
