package graph

import (
	"sort"

	"github.com/graphcert/alphabound/pkg/errors"
)

// Graph is a finite simple undirected graph on vertices 0..n-1.
//
// The zero value is the empty graph on zero vertices. Use [New] or
// [FromEdges] to construct instances; all methods are read-only.
type Graph struct {
	n   int
	adj [][]bool // adj[u][v] == adj[v][u]; diagonal always false
	m   int      // edge count
}

// New returns the edgeless graph on n vertices.
func New(n int) *Graph {
	adj := make([][]bool, n)
	for i := range adj {
		adj[i] = make([]bool, n)
	}
	return &Graph{n: n, adj: adj}
}

// FromEdges builds a graph on n vertices with the given undirected
// edges. Loops and duplicate edges are rejected, as are endpoints
// outside [0, n): a malformed edge is a fault in the input, not a
// skippable condition.
func FromEdges(n int, edges [][2]int) (*Graph, error) {
	g := New(n)
	for _, e := range edges {
		u, v := e[0], e[1]
		if u < 0 || u >= n || v < 0 || v >= n {
			return nil, errors.New(errors.ErrCodeInvalidGraph,
				"edge (%d,%d) references a vertex outside [0,%d)", u, v, n)
		}
		if u == v {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "loop at vertex %d", u)
		}
		if g.adj[u][v] {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "duplicate edge (%d,%d)", u, v)
		}
		g.adj[u][v] = true
		g.adj[v][u] = true
		g.m++
	}
	return g, nil
}

// Order returns the number of vertices.
func (g *Graph) Order() int { return g.n }

// Size returns the number of edges.
func (g *Graph) Size() int { return g.m }

// Vertices returns the vertex ids in increasing order.
func (g *Graph) Vertices() []int {
	vs := make([]int, g.n)
	for i := range vs {
		vs[i] = i
	}
	return vs
}

// Edges returns all edges as ordered pairs (u, v) with u < v,
// in lexicographic order.
func (g *Graph) Edges() [][2]int {
	es := make([][2]int, 0, g.m)
	for u := 0; u < g.n; u++ {
		for v := u + 1; v < g.n; v++ {
			if g.adj[u][v] {
				es = append(es, [2]int{u, v})
			}
		}
	}
	return es
}

// HasEdge reports whether u and v are adjacent. Out-of-range vertices
// are not adjacent to anything.
func (g *Graph) HasEdge(u, v int) bool {
	if u < 0 || u >= g.n || v < 0 || v >= g.n {
		return false
	}
	return g.adj[u][v]
}

// Neighbors returns the open neighborhood of v in increasing order.
func (g *Graph) Neighbors(v int) []int {
	var ns []int
	for u := 0; u < g.n; u++ {
		if g.adj[v][u] {
			ns = append(ns, u)
		}
	}
	return ns
}

// Degree returns the number of neighbors of v.
func (g *Graph) Degree(v int) int {
	d := 0
	for u := 0; u < g.n; u++ {
		if g.adj[v][u] {
			d++
		}
	}
	return d
}

// DegreeSequence returns all vertex degrees sorted in decreasing order.
func (g *Graph) DegreeSequence() []int {
	seq := make([]int, g.n)
	for v := 0; v < g.n; v++ {
		seq[v] = g.Degree(v)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(seq)))
	return seq
}

// MaxDegree returns the largest vertex degree, or 0 for the graph on
// zero vertices.
func (g *Graph) MaxDegree() int {
	max := 0
	for v := 0; v < g.n; v++ {
		if d := g.Degree(v); d > max {
			max = d
		}
	}
	return max
}

// MinDegree returns the smallest vertex degree, or 0 for the graph on
// zero vertices.
func (g *Graph) MinDegree() int {
	if g.n == 0 {
		return 0
	}
	min := g.n
	for v := 0; v < g.n; v++ {
		if d := g.Degree(v); d < min {
			min = d
		}
	}
	return min
}

// AverageDegree returns 2e/n, or 0 for the graph on zero vertices.
func (g *Graph) AverageDegree() float64 {
	if g.n == 0 {
		return 0
	}
	return 2 * float64(g.m) / float64(g.n)
}

// OpenNeighborhood returns the union of the neighbor sets of vs,
// in increasing order. Vertices of vs are included only if some other
// vertex of vs is adjacent to them.
func (g *Graph) OpenNeighborhood(vs []int) []int {
	in := make([]bool, g.n)
	for _, v := range vs {
		for u := 0; u < g.n; u++ {
			if g.adj[v][u] {
				in[u] = true
			}
		}
	}
	return trueIndices(in)
}

// ClosedNeighborhood returns vs together with all their neighbors,
// in increasing order.
func (g *Graph) ClosedNeighborhood(vs []int) []int {
	in := make([]bool, g.n)
	for _, v := range vs {
		in[v] = true
		for u := 0; u < g.n; u++ {
			if g.adj[v][u] {
				in[u] = true
			}
		}
	}
	return trueIndices(in)
}

// InducesClique reports whether the vertices of s are pairwise adjacent.
// The empty set and single vertices are cliques.
func (g *Graph) InducesClique(s []int) bool {
	for i := 0; i < len(s); i++ {
		for j := i + 1; j < len(s); j++ {
			if !g.adj[s[i]][s[j]] {
				return false
			}
		}
	}
	return true
}

// IsIndependent reports whether no two vertices of s are adjacent.
func (g *Graph) IsIndependent(s []int) bool {
	for i := 0; i < len(s); i++ {
		for j := i + 1; j < len(s); j++ {
			if g.adj[s[i]][s[j]] {
				return false
			}
		}
	}
	return true
}

func trueIndices(in []bool) []int {
	var out []int
	for i, ok := range in {
		if ok {
			out = append(out, i)
		}
	}
	return out
}
