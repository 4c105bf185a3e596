package inventory

import (
	"sort"

	"evalgo.org/eqinv/models"
)

// KindCount is the number of records of one kind.
type KindCount struct {
	Kind  models.Kind `json:"kind" yaml:"kind"`
	Count int         `json:"count" yaml:"count"`
}

// KindAverage is the mean power draw of one kind, in watts.
type KindAverage struct {
	Kind         models.Kind `json:"kind" yaml:"kind"`
	AverageWatts float64     `json:"averageWatts" yaml:"average_watts"`
}

// StateCount is the number of records in one power state.
type StateCount struct {
	State models.State `json:"state" yaml:"state"`
	Count int          `json:"count" yaml:"count"`
}

// Summary contains the aggregate report shown by the summary command.
type Summary struct {
	Total            int                `json:"total" yaml:"total"`
	ByKind           []KindCount        `json:"byKind" yaml:"by_kind"`
	AverageByKind    []KindAverage      `json:"averageByKind" yaml:"average_by_kind"`
	ByState          []StateCount       `json:"byState" yaml:"by_state"`
	TopByConsumption []models.Equipment `json:"topByConsumption" yaml:"top_by_consumption"`
}

// CountByKind groups records by kind. Only kinds present are returned, in
// models.Kinds order.
func (r *Registry) CountByKind() []KindCount {
	counts := make(map[models.Kind]int)
	for _, e := range r.items {
		counts[e.Kind]++
	}

	var out []KindCount
	for _, k := range models.Kinds {
		if n := counts[k]; n > 0 {
			out = append(out, KindCount{Kind: k, Count: n})
		}
	}
	return out
}

// AverageConsumptionByKind averages EnergyWatts per kind.
func (r *Registry) AverageConsumptionByKind() []KindAverage {
	sums := make(map[models.Kind]float64)
	counts := make(map[models.Kind]int)
	for _, e := range r.items {
		sums[e.Kind] += e.EnergyWatts
		counts[e.Kind]++
	}

	var out []KindAverage
	for _, k := range models.Kinds {
		if n := counts[k]; n > 0 {
			out = append(out, KindAverage{Kind: k, AverageWatts: sums[k] / float64(n)})
		}
	}
	return out
}

// CountByState groups records by power state.
func (r *Registry) CountByState() []StateCount {
	counts := make(map[models.State]int)
	for _, e := range r.items {
		counts[e.State]++
	}

	var out []StateCount
	for _, s := range models.States {
		if n := counts[s]; n > 0 {
			out = append(out, StateCount{State: s, Count: n})
		}
	}
	return out
}

// TopByConsumption returns up to n records sorted by EnergyWatts descending.
// Ties keep insertion order.
func (r *Registry) TopByConsumption(n int) []models.Equipment {
	if n <= 0 {
		return nil
	}

	sorted := r.All()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EnergyWatts > sorted[j].EnergyWatts
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Top3ByConsumption is TopByConsumption(3).
func (r *Registry) Top3ByConsumption() []models.Equipment {
	return r.TopByConsumption(3)
}

// Summary calculates every aggregate at once.
func (r *Registry) Summary() Summary {
	return Summary{
		Total:            r.Len(),
		ByKind:           r.CountByKind(),
		AverageByKind:    r.AverageConsumptionByKind(),
		ByState:          r.CountByState(),
		TopByConsumption: r.Top3ByConsumption(),
	}
}
