package search

import (
	"math"
	"slices"
	"sort"

	"voyage/internal/types"
)

// StopCategory buckets an option by its layover count.
func StopCategory(o types.FlightOption) string {
	switch n := o.Stops(); {
	case n == 0:
		return StopsNonStop
	case n == 1:
		return StopsOne
	default:
		return StopsTwoPlus
	}
}

// FilterFlights keeps options passing every set criterion. An unpriced option
// counts as 0 against MaxPrice; with an airline filter an option needs at least one listed carrier.
func FilterFlights(options []types.FlightOption, f FlightFilter) []types.FlightOption {
	out := make([]types.FlightOption, 0, len(options))
	for _, o := range options {
		if f.MaxPrice != nil && priceOr(o, 0) > *f.MaxPrice {
			continue
		}
		if len(f.Stops) > 0 && !slices.Contains(f.Stops, StopCategory(o)) {
			continue
		}
		if len(f.Airlines) > 0 && !sharesAny(o.Airlines(), f.Airlines) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// SortFlights sorts in place and stably; an empty key keeps provider order.
func SortFlights(options []types.FlightOption, by FlightSort) {
	switch by {
	case FlightPriceAsc:
		sort.SliceStable(options, func(i, j int) bool { return priceOr(options[i], 0) < priceOr(options[j], 0) })
	case FlightPriceDesc:
		sort.SliceStable(options, func(i, j int) bool { return priceOr(options[i], 0) > priceOr(options[j], 0) })
	case FlightDurationAsc:
		sort.SliceStable(options, func(i, j int) bool {
			return durationOr(options[i], math.Inf(1)) < durationOr(options[j], math.Inf(1))
		})
	case FlightDurationDesc:
		sort.SliceStable(options, func(i, j int) bool { return durationOr(options[i], 0) > durationOr(options[j], 0) })
	}
}

// FilterHotels applies the amenity filter (all selected must be present) and
// MaxPrice; properties without any price are kept.
func FilterHotels(props []types.HotelProperty, f HotelFilter) []types.HotelProperty {
	out := make([]types.HotelProperty, 0, len(props))
	for _, p := range props {
		if len(f.Amenities) > 0 && !hasAll(p.Amenities, f.Amenities) {
			continue
		}
		if f.MaxPrice != nil {
			if rate, ok := p.NightlyRate(); ok && rate > *f.MaxPrice {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

func SortHotels(props []types.HotelProperty, by HotelSort) {
	switch by {
	case HotelPriceAsc:
		sort.SliceStable(props, func(i, j int) bool { return rateOr(props[i], math.Inf(1)) < rateOr(props[j], math.Inf(1)) })
	case HotelPriceDesc:
		sort.SliceStable(props, func(i, j int) bool { return rateOr(props[i], 0) > rateOr(props[j], 0) })
	case HotelRatingDesc:
		sort.SliceStable(props, func(i, j int) bool { return ratingOr(props[i]) > ratingOr(props[j]) })
	}
}

// Amenities lists every amenity offered across props, sorted.
func Amenities(props []types.HotelProperty) []string {
	set := map[string]bool{}
	for _, p := range props {
		for _, a := range p.Amenities {
			set[a] = true
		}
	}
	return sortedKeys(set)
}

// Airlines lists every carrier across options, sorted.
func Airlines(options []types.FlightOption) []string {
	set := map[string]bool{}
	for _, o := range options {
		for _, a := range o.Airlines() {
			set[a] = true
		}
	}
	return sortedKeys(set)
}

func priceOr(o types.FlightOption, def float64) float64 {
	if o.Price == nil {
		return def
	}
	return *o.Price
}

func durationOr(o types.FlightOption, def float64) float64 {
	if o.TotalDuration == nil {
		return def
	}
	return float64(*o.TotalDuration)
}

func rateOr(p types.HotelProperty, def float64) float64 {
	if rate, ok := p.NightlyRate(); ok {
		return rate
	}
	return def
}

func ratingOr(p types.HotelProperty) float64 {
	if p.OverallRating == nil {
		return 0
	}
	return *p.OverallRating
}

func sharesAny(have, want []string) bool {
	for _, h := range have {
		if slices.Contains(want, h) {
			return true
		}
	}
	return false
}

func hasAll(have, want []string) bool {
	for _, w := range want {
		if !slices.Contains(have, w) {
			return false
		}
	}
	return true
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
