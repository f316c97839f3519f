package main

import (
	"encoding/json"
	"fmt"
	"os"

	"spacescope/internal/clients"
	"spacescope/internal/services"

	"github.com/spf13/cobra"
)

var (
	neoDate string
	lat     float64
	lon     float64
)

var feedsCmd = &cobra.Command{
	Use:   "feeds",
	Short: "Fetch the dashboard feeds once and print them as JSON",
	RunE:  runFeeds,
}

func init() {
	feedsCmd.Flags().StringVar(&neoDate, "date", "", "NEO feed date (YYYY-MM-DD, default today)")
	feedsCmd.Flags().Float64Var(&lat, "lat", 0, "latitude for local sky conditions")
	feedsCmd.Flags().Float64Var(&lon, "lon", 0, "longitude for local sky conditions")
}

func runFeeds(cmd *cobra.Command, args []string) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	nasa := clients.NewNasaClient(cfg.NasaAPIURL, cfg.NasaAPIKey)
	meteo := clients.NewOpenMeteoClient(cfg.OpenMeteoURL)
	feeds := services.NewFeedService(nasa, meteo, nil, loc, logger)

	ctx := cmd.Context()
	out := map[string]interface{}{
		"dashboard": feeds.Dashboard(ctx),
	}
	if neoDate != "" {
		out["near_earth_objects"] = feeds.NearEarthObjects(ctx, neoDate)
	}

	var locator services.Locator = services.NoLocation{}
	if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon") {
		locator = services.FixedLocator{Lat: lat, Lon: lon}
	}
	if atm, ok := feeds.LocalAtmosphere(ctx, locator); ok {
		out["atmosphere"] = atm
		out["clear_skies"] = atm.ClearSkies()
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding feeds: %w", err)
	}
	return nil
}
