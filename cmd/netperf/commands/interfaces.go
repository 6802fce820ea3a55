package commands

import (
	"github.com/ryanelliottsmith/netperf/pkg/inspect"
	"github.com/ryanelliottsmith/netperf/pkg/output"
	"github.com/spf13/cobra"
)

var interfacesCmd = &cobra.Command{
	Use:   "interfaces",
	Short: "Show active network interfaces",
	Long:  "Prints the interface snapshot that run reports carry: addresses, link speed, and wireless details where available.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ifaces, err := inspect.Inspect()
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("output")
		return output.PrintInterfaces(ifaces, format)
	},
}
