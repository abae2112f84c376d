package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"voyage/internal/service"
	"voyage/internal/weather"
)

var weatherOpts struct {
	start string
	end   string
}

var weatherCmd = &cobra.Command{
	Use:   "weather <location>",
	Short: "Print the forecast summary the planner would see",
	Args:  cobra.ExactArgs(1),
	RunE:  runWeather,
}

func init() {
	today := time.Now().Format(service.DateLayout)
	weatherCmd.Flags().StringVar(&weatherOpts.start, "start", today, "start date YYYY-MM-DD")
	weatherCmd.Flags().StringVar(&weatherOpts.end, "end", time.Now().AddDate(0, 0, 6).Format(service.DateLayout), "end date YYYY-MM-DD")
}

func runWeather(cmd *cobra.Command, args []string) error {
	start, err := time.Parse(service.DateLayout, weatherOpts.start)
	if err != nil {
		return fmt.Errorf("--start: %w", err)
	}
	end, err := time.Parse(service.DateLayout, weatherOpts.end)
	if err != nil {
		return fmt.Errorf("--end: %w", err)
	}

	fc, err := providers.Weather.Forecast(cmd.Context(), args[0], start, end)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s (%.4f, %.4f) %s..%s\n", args[0], fc.Location.Lat, fc.Location.Lng, fc.Start, fc.End)
	if fc.Remarks != "" {
		fmt.Fprintln(w, fc.Remarks)
	}
	if fc.Data == nil {
		return nil
	}
	fmt.Fprintf(w, "\n%s\n\n", weather.Summarize(fc.Data))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tCONDITION\tMIN\tMAX\tRAIN mm\tPRECIP %")
	for _, d := range weather.Days(fc.Data) {
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\t%s\t%s\n", d.Date, d.Icon, d.Condition,
			num(d.TempMin), num(d.TempMax), num(d.RainMM), num(d.PrecipProb))
	}
	return tw.Flush()
}

func num(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}
