package weather

import (
	"fmt"
	"time"
)

// HorizonDays is the last forecastable day counted from today (today + 15 = 16 days).
const HorizonDays = 15

const dateLayout = "2006-01-02"

// Window is the part of a requested date range the forecast API can serve.
type Window struct {
	Start   time.Time
	End     time.Time
	Remarks []string
	// Empty is set when nothing in the request falls inside the horizon.
	Empty bool
}

// ClampToHorizon fits [start, end] into [today, today+HorizonDays], recording a
// remark for every adjustment.
func ClampToHorizon(today, start, end time.Time) Window {
	today = truncateDay(today)
	start, end = truncateDay(start), truncateDay(end)
	origStart, origEnd := start, end
	maxFuture := today.AddDate(0, 0, HorizonDays)

	w := Window{}
	if start.Before(today) {
		w.Remarks = append(w.Remarks, fmt.Sprintf("Requested start date %s is in the past; adjusted to %s.", start.Format(dateLayout), today.Format(dateLayout)))
		start = today
	}
	if end.Before(start) {
		w.Remarks = append(w.Remarks, "End date is before start date; adjusted to same as start date.")
		end = start
	}
	if end.After(maxFuture) {
		w.Remarks = append(w.Remarks, fmt.Sprintf("Requested end date %s exceeds 16-day forecast limit; adjusted to %s.", end.Format(dateLayout), maxFuture.Format(dateLayout)))
		end = maxFuture
	}
	if start.After(maxFuture) {
		return Window{
			Start:   origStart,
			End:     origEnd,
			Empty:   true,
			Remarks: []string{fmt.Sprintf("No forecast data available: dates (%s to %s) are beyond the 16-day limit.", origStart.Format(dateLayout), origEnd.Format(dateLayout))},
		}
	}
	w.Start, w.End = start, end
	return w
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
