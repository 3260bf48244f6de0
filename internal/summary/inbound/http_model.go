package inbound

import "github.com/officialforloop/summary-report/internal/summary/entity"

type SummaryResponse struct {
	TotalUsers    int      `json:"totalUsers"`
	AverageAge    float64  `json:"averageAge"`
	CountryLabels []string `json:"countryLabels"`
	CountryData   []int    `json:"countryData"`
}

func toSummaryResponse(s entity.Summary) SummaryResponse {
	labels := s.CountryLabels
	if labels == nil {
		labels = []string{}
	}
	data := s.CountryData
	if data == nil {
		data = []int{}
	}

	return SummaryResponse{
		TotalUsers:    s.TotalUsers,
		AverageAge:    s.AverageAge,
		CountryLabels: labels,
		CountryData:   data,
	}
}
