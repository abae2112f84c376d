package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"voyage/internal/modules/trips"
	"voyage/internal/service"
	"voyage/internal/types"
)

var planOpts struct {
	destination  string
	departure    string
	start        string
	end          string
	adults       int
	travelType   string
	flightBudget float64
	hotelBudget  float64
	out          string
	asJSON       bool
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Run one planning pipeline",
	Long: `Plan runs the pipeline once. When the weather is unfavorable it prints
the suggested alternates; re-run with --destination set to one of them.

Example:
  plan_demo plan --destination Goa --departure Delhi --start 2026-11-01 --end 2026-11-05 --out trip.md`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	week := time.Now().AddDate(0, 0, 7)
	f := planCmd.Flags()
	f.StringVar(&planOpts.destination, "destination", "", "destination city (required)")
	f.StringVar(&planOpts.departure, "departure", "", "departure city (required)")
	f.StringVar(&planOpts.start, "start", week.Format(service.DateLayout), "start date YYYY-MM-DD")
	f.StringVar(&planOpts.end, "end", week.AddDate(0, 0, 4).Format(service.DateLayout), "end date YYYY-MM-DD")
	f.IntVar(&planOpts.adults, "adults", 1, "number of adults")
	f.StringVar(&planOpts.travelType, "travel-type", string(service.Relaxation), "Relaxation, Adventure, Sightseeing, Family, Romantic or Budget-friendly")
	f.Float64Var(&planOpts.flightBudget, "flight-budget", 20000, "flight budget in INR")
	f.Float64Var(&planOpts.hotelBudget, "hotel-budget", 150, "hotel budget in USD per night")
	f.StringVarP(&planOpts.out, "out", "o", "", "write the itinerary markdown to this file")
	f.BoolVar(&planOpts.asJSON, "json", false, "print the full outcome as JSON")
	_ = planCmd.MarkFlagRequired("destination")
	_ = planCmd.MarkFlagRequired("departure")
}

func buildRequest() (service.TripRequest, error) {
	start, err := time.Parse(service.DateLayout, planOpts.start)
	if err != nil {
		return service.TripRequest{}, fmt.Errorf("--start: %w", err)
	}
	end, err := time.Parse(service.DateLayout, planOpts.end)
	if err != nil {
		return service.TripRequest{}, fmt.Errorf("--end: %w", err)
	}
	travelType, err := service.ParseTravelType(planOpts.travelType)
	if err != nil {
		return service.TripRequest{}, err
	}
	req := service.TripRequest{
		Destination:  planOpts.destination,
		Departure:    planOpts.departure,
		StartDate:    start,
		EndDate:      end,
		Duration:     int(end.Sub(start).Hours() / 24),
		Adults:       planOpts.adults,
		TravelType:   travelType,
		FlightBudget: types.INR(planOpts.flightBudget),
		HotelBudget:  types.USD(planOpts.hotelBudget),
	}
	return req, req.Validate()
}

func runPlan(cmd *cobra.Command, _ []string) error {
	req, err := buildRequest()
	if err != nil {
		return err
	}
	planner, err := providers.Planner(nil)
	if err != nil {
		return err
	}

	out := planner.PlanTrip(cmd.Context(), req)
	if planOpts.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Run %s\n\n", out.RunID)
	for i, msg := range out.Messages {
		fmt.Fprintf(w, "%d. %s\n", i+1, msg)
	}
	fmt.Fprintln(w)

	if !out.Success {
		fmt.Fprintf(w, "Weather at %s looks unfavorable: %s\n", req.Destination, out.WeatherAnalysis)
		if len(out.AlternateDestinations) == 0 {
			fmt.Fprintln(w, "No alternates were suggested.")
			return nil
		}
		fmt.Fprintln(w, "Suggested alternates:")
		for i, dest := range out.AlternateDestinations {
			reason := ""
			if i < len(out.AlternateReasons) && out.AlternateReasons[i] != "" {
				reason = " - " + out.AlternateReasons[i]
			}
			fmt.Fprintf(w, "  * %s%s\n", dest, reason)
		}
		fmt.Fprintln(w, "\nRe-run with --destination set to one of them.")
		return nil
	}

	fmt.Fprintf(w, "Budget: %s\n\n", out.BudgetNotes)
	fmt.Fprintln(w, strings.TrimSpace(out.ItineraryMarkdown))
	if planOpts.out != "" {
		path := planOpts.out
		if strings.HasSuffix(path, "/") {
			path += trips.Filename(req.Destination)
		}
		if err := os.WriteFile(path, []byte(out.ItineraryMarkdown), 0o644); err != nil {
			return fmt.Errorf("write itinerary: %w", err)
		}
		fmt.Fprintf(w, "\nItinerary written to %s\n", path)
	}
	return nil
}
