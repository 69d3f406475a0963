package demes

import "math"

// Tolerance bounds the difference allowed between two floating-point fields
// compared by the IsClose methods. Two values a and b are close when
//
//	|a-b| <= max(Rel*max(|a|, |b|), Abs)
//
// Infinite values are close only to an identical infinity.
type Tolerance struct {
	Rel float64
	Abs float64
}

// DefaultTolerance is used by the IsClose methods.
var DefaultTolerance = Tolerance{Rel: 1e-9, Abs: 1e-12}

// proportionSumTolerance bounds |sum(proportions) - 1|.
const proportionSumTolerance = 1e-9

// Float returns a pointer to v. It fills optional fields of [DemeOptions]
// and [EpochSpec].
func Float(v float64) *float64 { return &v }

func isClose(a, b float64, tol Tolerance) bool {
	if a == b {
		return true
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) || math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	diff := math.Abs(a - b)
	return diff <= math.Max(tol.Rel*math.Max(math.Abs(a), math.Abs(b)), tol.Abs)
}

func isClosePtr(a, b *float64, tol Tolerance) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return isClose(*a, *b, tol)
}

// matchAll reports whether a and b are equal as multisets under eq: every
// element of a is paired with a distinct element of b and vice versa.
// It runs augmenting-path bipartite matching, so a greedy pairing that
// blocks a later element never produces a false negative. Cost is
// O(len(a)*len(b)) comparisons.
func matchAll[T any](a, b []T, eq func(x, y T) bool) bool {
	if len(a) != len(b) {
		return false
	}
	n := len(a)
	adj := make([][]int, n)
	for i := range a {
		for j := range b {
			if eq(a[i], b[j]) {
				adj[i] = append(adj[i], j)
			}
		}
		if len(adj[i]) == 0 {
			return false
		}
	}

	owner := make([]int, n)
	for j := range owner {
		owner[j] = -1
	}

	var augment func(i int, seen []bool) bool
	augment = func(i int, seen []bool) bool {
		for _, j := range adj[i] {
			if seen[j] {
				continue
			}
			seen[j] = true
			if owner[j] < 0 || augment(owner[j], seen) {
				owner[j] = i
				return true
			}
		}
		return false
	}

	for i := 0; i < n; i++ {
		if !augment(i, make([]bool, n)) {
			return false
		}
	}
	return true
}

// weightsClose compares two id->weight assignments as sets.
func weightsClose(ids []string, weights []float64, otherIDs []string, otherWeights []float64, tol Tolerance) bool {
	if len(ids) != len(otherIDs) || len(weights) != len(otherWeights) || len(ids) != len(weights) {
		return false
	}
	other := make(map[string]float64, len(otherIDs))
	for i, id := range otherIDs {
		other[id] = otherWeights[i]
	}
	if len(other) != len(otherIDs) {
		return false
	}
	for i, id := range ids {
		w, ok := other[id]
		if !ok || !isClose(weights[i], w, tol) {
			return false
		}
	}
	return true
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, s := range a {
		counts[s]++
	}
	for _, s := range b {
		if counts[s] == 0 {
			return false
		}
		counts[s]--
	}
	return true
}
