package main

import (
	"github.com/spf13/cobra"
)

var (
	// Flags shared across subcommands.
	serverURL    string
	narrateRoute bool

	rootCmd = &cobra.Command{
		Use:   "navctl",
		Short: "A CLI for the campus navigation service",
		Long:  "navctl talks to a running campus navigation server to list locations and compute walking routes.",
	}

	locationsCmd = &cobra.Command{
		Use:   "locations",
		Short: "List every location on the campus",
		Run:   runLocationsCommand,
	}

	routeCmd = &cobra.Command{
		Use:   "route [start] [end]",
		Short: "Compute the shortest walking route between two locations",
		Long:  "Compute the shortest walking route between two locations.\nNames with spaces must be quoted, e.g. navctl route \"gate 1\" \"santosh library\".",
		Args:  cobra.ExactArgs(2),
		Run:   runRouteCommand,
	}

	askCmd = &cobra.Command{
		Use:   "ask",
		Short: "Pick a start and destination interactively",
		Run:   runAskCommand,
	}
)

func init() {
	rootCmd.AddCommand(locationsCmd)
	rootCmd.AddCommand(routeCmd)
	rootCmd.AddCommand(askCmd)

	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "", "Base URL of the navigation server (overrides CAMPUSNAV_SERVER_URL)")
	routeCmd.Flags().BoolVar(&narrateRoute, "narrate", false, "Ask the server to speak the directions aloud")
	askCmd.Flags().BoolVar(&narrateRoute, "narrate", false, "Ask the server to speak the directions aloud")
}
