package graph

import "sort"

// IndependenceNumber returns the exact independence number alpha(g).
// Exponential time; see MaximumIndependentSet.
func (g *Graph) IndependenceNumber() int {
	return len(g.MaximumIndependentSet())
}

// MaximumIndependentSet returns a maximum independent set of g, in
// increasing vertex order. The search is an exact branch and bound over
// vertex subsets and does not run in polynomial time; it exists as an
// oracle for small graphs, not as a bound.
func (g *Graph) MaximumIndependentSet() []int {
	var best []int
	var cur []int

	var rec func(active []bool, count int)
	rec = func(active []bool, count int) {
		if len(cur)+count <= len(best) {
			return
		}

		// Branch on an active vertex of maximum residual degree.
		pick, maxDeg := -1, -1
		for u := 0; u < g.n; u++ {
			if !active[u] {
				continue
			}
			d := 0
			for w := 0; w < g.n; w++ {
				if active[w] && g.adj[u][w] {
					d++
				}
			}
			if d > maxDeg {
				maxDeg, pick = d, u
			}
		}

		if pick == -1 {
			if len(cur) > len(best) {
				best = append([]int(nil), cur...)
			}
			return
		}

		if maxDeg == 0 {
			// Everything left is isolated: take it all.
			mark := len(cur)
			for u := 0; u < g.n; u++ {
				if active[u] {
					cur = append(cur, u)
				}
			}
			if len(cur) > len(best) {
				best = append([]int(nil), cur...)
			}
			cur = cur[:mark]
			return
		}

		// Include pick: drop its closed neighborhood.
		with := make([]bool, g.n)
		copy(with, active)
		with[pick] = false
		withCount := count - 1
		for w := 0; w < g.n; w++ {
			if with[w] && g.adj[pick][w] {
				with[w] = false
				withCount--
			}
		}
		cur = append(cur, pick)
		rec(with, withCount)
		cur = cur[:len(cur)-1]

		// Exclude pick.
		without := make([]bool, g.n)
		copy(without, active)
		without[pick] = false
		rec(without, count-1)
	}

	active := make([]bool, g.n)
	for i := range active {
		active[i] = true
	}
	rec(active, g.n)

	sort.Ints(best)
	return best
}
