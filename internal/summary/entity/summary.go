package entity

// Summary is the aggregate view over every valid user of one run.
//
// CountryLabels and CountryData are parallel: CountryData[i] is the number of
// users from CountryLabels[i]. Both hold at most three entries, ordered by
// descending count.
type Summary struct {
	TotalUsers    int      `json:"totalUsers"`
	AverageAge    float64  `json:"averageAge"`
	CountryLabels []string `json:"countryLabels"`
	CountryData   []int    `json:"countryData"`
}
