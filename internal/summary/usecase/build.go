package usecase

import (
	"cmp"
	"slices"

	"github.com/officialforloop/summary-report/internal/summary/entity"
)

const topCountries = 3

type countryCount struct {
	country string
	count   int
}

// BuildSummary derives the caller-facing summary from an aggregate.
//
// Countries are ranked by descending count; equal counts are ordered by
// country name so the result does not depend on map iteration order.
func BuildSummary(agg Aggregate) entity.Summary {
	var average float64
	if agg.Users > 0 {
		average = agg.TotalAge / float64(agg.Users)
	}

	ranked := make([]countryCount, 0, len(agg.Countries))
	for country, n := range agg.Countries {
		ranked = append(ranked, countryCount{country: country, count: n})
	}
	slices.SortFunc(ranked, func(a, b countryCount) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(a.country, b.country)
	})
	if len(ranked) > topCountries {
		ranked = ranked[:topCountries]
	}

	labels := make([]string, 0, len(ranked))
	data := make([]int, 0, len(ranked))
	for _, rc := range ranked {
		labels = append(labels, rc.country)
		data = append(data, rc.count)
	}

	return entity.Summary{
		TotalUsers:    agg.Users,
		AverageAge:    average,
		CountryLabels: labels,
		CountryData:   data,
	}
}
