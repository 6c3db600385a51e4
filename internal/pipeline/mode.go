package pipeline

import (
	"sort"

	"go-bikeshare/internal/model"
)

// Rank counts each distinct value and orders them by descending count.
// Values with equal counts keep the order in which they first appeared.
func Rank[V comparable](values []V) []model.ValueCount[V] {
	counts := make(map[V]int)
	order := make([]V, 0)

	for _, v := range values {
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	ranked := make([]model.ValueCount[V], len(order))
	for i, v := range order {
		ranked[i] = model.ValueCount[V]{Value: v, Count: counts[v]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}

// ModeWithTies returns every value that occurs the maximal number of times,
// in first-occurrence order. If all values are distinct, all of them are
// returned with a count of 1.
func ModeWithTies[V comparable](values []V) (model.FrequencyResult[V], error) {
	if len(values) == 0 {
		return model.FrequencyResult[V]{}, model.ErrEmptySequence
	}

	ranked := Rank(values)
	top := ranked[0].Count
	result := model.FrequencyResult[V]{Count: top}
	for _, vc := range ranked {
		if vc.Count != top {
			break
		}
		result.Values = append(result.Values, vc.Value)
	}
	return result, nil
}
