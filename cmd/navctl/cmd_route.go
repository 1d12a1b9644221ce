package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"campusnav-backend/pkg/api"
)

func runRouteCommand(cmd *cobra.Command, args []string) {
	route, err := sendNavigateRequest(args[0], args[1], narrateRoute)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	printRoute(route)
}

func runLocationsCommand(cmd *cobra.Command, args []string) {
	locations, err := fetchLocations()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	fmt.Println(styles.Title.Render("Campus locations"))
	for _, loc := range locations.Locations {
		coords := styles.Muted.Render(fmt.Sprintf("(%.5f, %.5f)", loc.Latitude, loc.Longitude))
		fmt.Printf("  %s %s %s\n", styles.Success.Render("•"), loc.Name, coords)
	}
	fmt.Println(styles.Muted.Render(fmt.Sprintf("%d locations", locations.Count)))
}

func runAskCommand(cmd *cobra.Command, args []string) {
	locations, err := fetchLocations()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	options := make([]huh.Option[string], 0, len(locations.Locations))
	for _, loc := range locations.Locations {
		options = append(options, huh.NewOption(loc.Name, loc.Key))
	}

	var start, end string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where are you now?").
				Options(options...).
				Value(&start),
			huh.NewSelect[string]().
				Title("Where do you want to go?").
				Options(options...).
				Value(&end),
			huh.NewConfirm().
				Title("Speak the directions aloud?").
				Value(&narrateRoute),
		),
	)
	if err := form.Run(); err != nil {
		printError(err)
		os.Exit(1)
	}

	route, err := sendNavigateRequest(start, end, narrateRoute)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	printRoute(route)
}

func printRoute(route *api.NavigateResponse) {
	fmt.Println(styles.Box.Render(strings.Join(route.Path, " → ")))
	for i, step := range route.Instructions {
		fmt.Printf("  %d. %s\n", i+1, step)
	}
	fmt.Println(styles.Highlight.Render(fmt.Sprintf("%.0f meters, about %d min on foot", route.DistanceMeters, route.DurationMinutes)))
	if route.MapURL != "" {
		fmt.Println(styles.Muted.Render("Map: " + serverBaseURL() + route.MapURL))
	}
	if narrateRoute {
		fmt.Println(styles.Success.Render("✓ Directions sent to the voice guide"))
	}
}
