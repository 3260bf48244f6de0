package usecase

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/officialforloop/summary-report/internal/summary/entity"
	"github.com/stretchr/testify/assert"
)

func users(countries ...string) []entity.User {
	out := make([]entity.User, 0, len(countries))
	for i, c := range countries {
		out = append(out, entity.User{ID: strconv.Itoa(i + 1), Name: "n", Email: "e", Age: int64(20 + i), Country: c})
	}
	return out
}

func TestFoldAndMergeAreOrderIndependent(t *testing.T) {
	a := Fold(users("US", "US", "FR"))
	b := Fold(users("DE", "FR"))
	c := Fold(nil)

	left := Merge(a, b, c)
	right := Merge(c, b, a)
	nested := Merge(Merge(b, c), a)

	if diff := cmp.Diff(left, right); diff != "" {
		t.Fatalf("merge not commutative (-left +right):\n%s", diff)
	}
	if diff := cmp.Diff(left, nested); diff != "" {
		t.Fatalf("merge not associative (-left +nested):\n%s", diff)
	}

	assert.Equal(t, 5, left.Users)
	assert.Equal(t, float64(20+21+22+20+21), left.TotalAge)
	assert.Equal(t, map[string]int{"US": 2, "FR": 2, "DE": 1}, left.Countries)
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	a := Fold(users("US"))
	_ = Merge(a, a)

	assert.Equal(t, 1, a.Countries["US"])
}

func TestAggregateAddOnZeroValue(t *testing.T) {
	var agg Aggregate
	agg.Add(entity.User{Age: 10, Country: "US"})

	assert.Equal(t, 1, agg.Users)
	assert.Equal(t, 10.0, agg.TotalAge)
	assert.Equal(t, 1, agg.Countries["US"])
}

func TestLargeAgesDoNotWrap(t *testing.T) {
	const age = 9000000000000000000
	agg := Merge(
		Fold([]entity.User{{ID: "1", Age: age, Country: "US"}}),
		Fold([]entity.User{{ID: "2", Age: age, Country: "US"}}),
	)

	got := BuildSummary(agg)
	assert.Equal(t, 2, got.TotalUsers)
	assert.Equal(t, float64(age), got.AverageAge)
	assert.Positive(t, got.AverageAge)
}

func TestBuildSummary(t *testing.T) {
	tests := []struct {
		name string
		agg  Aggregate
		want entity.Summary
	}{
		{
			name: "empty aggregate",
			agg:  Aggregate{},
			want: entity.Summary{CountryLabels: []string{}, CountryData: []int{}},
		},
		{
			name: "single country",
			agg:  Aggregate{Users: 2, TotalAge: 70, Countries: map[string]int{"US": 2}},
			want: entity.Summary{TotalUsers: 2, AverageAge: 35, CountryLabels: []string{"US"}, CountryData: []int{2}},
		},
		{
			name: "keeps top three with alphabetical tie-break",
			agg: Aggregate{Users: 9, TotalAge: 300, Countries: map[string]int{
				"Spain": 1, "Chile": 2, "Brazil": 2, "Austria": 2, "Japan": 2,
			}},
			want: entity.Summary{
				TotalUsers:    9,
				AverageAge:    300.0 / 9.0,
				CountryLabels: []string{"Austria", "Brazil", "Chile"},
				CountryData:   []int{2, 2, 2},
			},
		},
		{
			name: "descending by count",
			agg: Aggregate{Users: 6, TotalAge: 121, Countries: map[string]int{
				"A": 1, "B": 3, "C": 2,
			}},
			want: entity.Summary{
				TotalUsers:    6,
				AverageAge:    121.0 / 6.0,
				CountryLabels: []string{"B", "C", "A"},
				CountryData:   []int{3, 2, 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildSummary(tt.agg)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("unexpected summary (-want +got):\n%s", diff)
			}
			assert.Len(t, got.CountryData, len(got.CountryLabels))
			assert.LessOrEqual(t, len(got.CountryLabels), 3)
		})
	}
}
