package usecase

import "github.com/officialforloop/summary-report/internal/summary/entity"

// Aggregate holds the running totals of a set of users.
//
// Every operation on it is commutative and associative, so per-file
// aggregates can be merged in any order and give the same result.
type Aggregate struct {
	Users int
	// TotalAge is summed as float64 so large ages cannot wrap around.
	TotalAge  float64
	Countries map[string]int
}

// Add folds a single user into the aggregate.
func (a *Aggregate) Add(u entity.User) {
	if a.Countries == nil {
		a.Countries = make(map[string]int)
	}

	a.Users++
	a.TotalAge += float64(u.Age)
	a.Countries[u.Country]++
}

// Fold builds an aggregate from a slice of users.
func Fold(users []entity.User) Aggregate {
	agg := Aggregate{Countries: make(map[string]int)}
	for _, u := range users {
		agg.Add(u)
	}
	return agg
}

// Merge combines several aggregates into a new one. Inputs are not modified.
func Merge(parts ...Aggregate) Aggregate {
	out := Aggregate{Countries: make(map[string]int)}
	for _, p := range parts {
		out.Users += p.Users
		out.TotalAge += p.TotalAge
		for country, n := range p.Countries {
			out.Countries[country] += n
		}
	}
	return out
}
