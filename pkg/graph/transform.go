package graph

import "sort"

// Complement returns the graph on the same vertex set whose edges are
// exactly the non-edges of g.
func (g *Graph) Complement() *Graph {
	c := New(g.n)
	for u := 0; u < g.n; u++ {
		for v := u + 1; v < g.n; v++ {
			if !g.adj[u][v] {
				c.adj[u][v] = true
				c.adj[v][u] = true
				c.m++
			}
		}
	}
	return c
}

// Subgraph returns the subgraph induced by the vertex set s.
// Vertices are relabeled 0..len(s)-1 in increasing order of their
// original ids; duplicates in s are ignored.
func (g *Graph) Subgraph(s []int) *Graph {
	keep := make([]bool, g.n)
	for _, v := range s {
		if v >= 0 && v < g.n {
			keep[v] = true
		}
	}
	verts := trueIndices(keep)
	sort.Ints(verts)

	sub := New(len(verts))
	for i, u := range verts {
		for j := i + 1; j < len(verts); j++ {
			if g.adj[u][verts[j]] {
				sub.adj[i][j] = true
				sub.adj[j][i] = true
				sub.m++
			}
		}
	}
	return sub
}

// DeleteVertices returns the subgraph induced by all vertices not in s.
func (g *Graph) DeleteVertices(s []int) *Graph {
	drop := make([]bool, g.n)
	for _, v := range s {
		if v >= 0 && v < g.n {
			drop[v] = true
		}
	}
	var keep []int
	for v := 0; v < g.n; v++ {
		if !drop[v] {
			keep = append(keep, v)
		}
	}
	return g.Subgraph(keep)
}

// BipartiteDoubleCover returns the tensor product of g with K2: vertex
// (v, side) maps to index v + side*n, and (u, 0) is adjacent to (v, 1)
// iff uv is an edge of g. The result is always bipartite, with the two
// copies of the vertex set as parts.
//
// The double cover of K3 is the 6-cycle; of any bipartite graph, two
// disjoint copies of it.
func (g *Graph) BipartiteDoubleCover() *Graph {
	b := New(2 * g.n)
	for u := 0; u < g.n; u++ {
		for v := u + 1; v < g.n; v++ {
			if g.adj[u][v] {
				b.addCoverEdge(u, v+g.n)
				b.addCoverEdge(v, u+g.n)
			}
		}
	}
	return b
}

// CoverVertex returns the double-cover index of (v, side), side 0 or 1.
// It mirrors the indexing used by BipartiteDoubleCover so callers can
// address cover vertices without knowing the layout.
func (g *Graph) CoverVertex(v, side int) int {
	return v + side*g.n
}

func (b *Graph) addCoverEdge(x, y int) {
	b.adj[x][y] = true
	b.adj[y][x] = true
	b.m++
}
