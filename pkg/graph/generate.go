package graph

// Named constructions used throughout the bound literature and the
// test suite. All of them are total: any n >= 0 yields a valid graph.

// Empty returns the graph on n vertices with no edges.
func Empty(n int) *Graph { return New(n) }

// Complete returns K_n.
func Complete(n int) *Graph {
	g := New(n)
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			g.adj[u][v] = true
			g.adj[v][u] = true
			g.m++
		}
	}
	return g
}

// Path returns the path on n vertices, 0-1-...-(n-1).
func Path(n int) *Graph {
	g := New(n)
	for v := 0; v+1 < n; v++ {
		g.adj[v][v+1] = true
		g.adj[v+1][v] = true
		g.m++
	}
	return g
}

// Cycle returns the cycle on n vertices. For n < 3 it degenerates to
// Path(n).
func Cycle(n int) *Graph {
	if n < 3 {
		return Path(n)
	}
	g := Path(n)
	g.adj[0][n-1] = true
	g.adj[n-1][0] = true
	g.m++
	return g
}

// Star returns the star K_{1,n}: vertex 0 adjacent to n leaves, on n+1
// vertices total.
func Star(n int) *Graph {
	g := New(n + 1)
	for v := 1; v <= n; v++ {
		g.adj[0][v] = true
		g.adj[v][0] = true
		g.m++
	}
	return g
}

// Petersen returns the Petersen graph: outer 5-cycle 0..4, inner
// pentagram 5..9, spokes v to v+5.
func Petersen() *Graph {
	g := New(10)
	add := func(u, v int) {
		g.adj[u][v] = true
		g.adj[v][u] = true
		g.m++
	}
	for v := 0; v < 5; v++ {
		add(v, (v+1)%5)     // outer cycle
		add(v+5, (v+2)%5+5) // inner pentagram
		add(v, v+5)         // spoke
	}
	return g
}
