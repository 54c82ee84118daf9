package graph

// MatchingNumber returns the size of a maximum matching, computed with
// Edmonds' blossom algorithm. The graph is treated as unweighted; there
// is no weighted variant.
//
// Runs in O(n^3); exact for general (non-bipartite) graphs, so it is
// safe to call on both input graphs and their bipartite double covers.
func (g *Graph) MatchingNumber() int {
	n := g.n
	match := make([]int, n)
	for i := range match {
		match[i] = -1
	}
	p := make([]int, n)
	base := make([]int, n)
	used := make([]bool, n)
	blossom := make([]bool, n)
	var queue []int

	// lca walks to the root from both endpoints along alternating paths
	// and returns the first common blossom base.
	lca := func(a, b int) int {
		onPath := make([]bool, n)
		for {
			a = base[a]
			onPath[a] = true
			if match[a] == -1 {
				break
			}
			a = p[match[a]]
		}
		for {
			b = base[b]
			if onPath[b] {
				return b
			}
			b = p[match[b]]
		}
	}

	markPath := func(v, b, child int) {
		for base[v] != b {
			blossom[base[v]] = true
			blossom[base[match[v]]] = true
			p[v] = child
			child = match[v]
			v = p[match[v]]
		}
	}

	// findPath grows an alternating tree from root, contracting blossoms
	// as they appear, and returns an exposed vertex ending an augmenting
	// path, or -1 if none exists.
	findPath := func(root int) int {
		for i := 0; i < n; i++ {
			used[i] = false
			p[i] = -1
			base[i] = i
		}
		used[root] = true
		queue = queue[:0]
		queue = append(queue, root)

		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for to := 0; to < n; to++ {
				if !g.adj[v][to] {
					continue
				}
				if base[v] == base[to] || match[v] == to {
					continue
				}
				if to == root || (match[to] != -1 && p[match[to]] != -1) {
					// Odd cycle: contract the blossom.
					curBase := lca(v, to)
					for i := range blossom {
						blossom[i] = false
					}
					markPath(v, curBase, to)
					markPath(to, curBase, v)
					for i := 0; i < n; i++ {
						if blossom[base[i]] {
							base[i] = curBase
							if !used[i] {
								used[i] = true
								queue = append(queue, i)
							}
						}
					}
				} else if p[to] == -1 {
					p[to] = v
					if match[to] == -1 {
						return to
					}
					used[match[to]] = true
					queue = append(queue, match[to])
				}
			}
		}
		return -1
	}

	size := 0
	for v := 0; v < n; v++ {
		if match[v] != -1 {
			continue
		}
		if u := findPath(v); u != -1 {
			size++
			// Augment: flip matched/unmatched edges back to the root.
			for u != -1 {
				pv := p[u]
				ppv := match[pv]
				match[u] = pv
				match[pv] = u
				u = ppv
			}
		}
	}
	return size
}
