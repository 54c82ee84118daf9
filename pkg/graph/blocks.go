package graph

import "sort"

// BlocksAndCutVertices decomposes g into its biconnected components.
// It returns the blocks as vertex sets (each sorted increasingly) and
// the cut vertices in increasing order. An isolated vertex forms a
// singleton block. Classic Tarjan low-link search.
func (g *Graph) BlocksAndCutVertices() (blocks [][]int, cutVertices []int) {
	n := g.n
	disc := make([]int, n)
	low := make([]int, n)
	for i := range disc {
		disc[i] = -1
	}
	isCut := make([]bool, n)
	var stack [][2]int
	timer := 0

	popBlock := func(u, v int) {
		seen := make(map[int]bool)
		for {
			e := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			seen[e[0]] = true
			seen[e[1]] = true
			if e[0] == u && e[1] == v {
				break
			}
		}
		block := make([]int, 0, len(seen))
		for w := range seen {
			block = append(block, w)
		}
		sort.Ints(block)
		blocks = append(blocks, block)
	}

	var dfs func(v, parent int)
	dfs = func(v, parent int) {
		disc[v] = timer
		low[v] = timer
		timer++
		children := 0

		for to := 0; to < n; to++ {
			if !g.adj[v][to] || to == parent {
				continue
			}
			if disc[to] == -1 {
				stack = append(stack, [2]int{v, to})
				children++
				dfs(to, v)
				if low[to] < low[v] {
					low[v] = low[to]
				}
				if parent != -1 && low[to] >= disc[v] {
					isCut[v] = true
				}
				if low[to] >= disc[v] {
					popBlock(v, to)
				}
			} else if disc[to] < disc[v] {
				stack = append(stack, [2]int{v, to})
				if disc[to] < low[v] {
					low[v] = disc[to]
				}
			}
		}

		if parent == -1 && children > 1 {
			isCut[v] = true
		}
	}

	for v := 0; v < n; v++ {
		if disc[v] == -1 {
			dfs(v, -1)
			if g.Degree(v) == 0 {
				blocks = append(blocks, []int{v})
			}
		}
	}

	cutVertices = trueIndices(isCut)
	return blocks, cutVertices
}
