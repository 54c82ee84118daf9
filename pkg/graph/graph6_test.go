package graph

import (
	"testing"

	"github.com/graphcert/alphabound/pkg/errors"
)

func TestParseGraph6(t *testing.T) {
	// "Bw" is K3.
	g, err := ParseGraph6("Bw")
	if err != nil {
		t.Fatalf("ParseGraph6(Bw) error = %v", err)
	}
	if g.Order() != 3 || g.Size() != 3 {
		t.Errorf("Bw: order %d size %d, want K3", g.Order(), g.Size())
	}

	// "Cx" is the paw: a triangle 0-1-2 with the pendant edge 2-3.
	paw, err := ParseGraph6("Cx")
	if err != nil {
		t.Fatalf("ParseGraph6(Cx) error = %v", err)
	}
	wantEdges := [][2]int{{0, 1}, {0, 2}, {1, 2}, {2, 3}}
	got := paw.Edges()
	if len(got) != len(wantEdges) {
		t.Fatalf("Cx edges = %v, want %v", got, wantEdges)
	}
	for i := range wantEdges {
		if got[i] != wantEdges[i] {
			t.Errorf("Cx edge[%d] = %v, want %v", i, got[i], wantEdges[i])
		}
	}

	// "EXCO": order 6, size 5, matching number 2, independence number 4.
	exco, err := ParseGraph6("EXCO")
	if err != nil {
		t.Fatalf("ParseGraph6(EXCO) error = %v", err)
	}
	if exco.Order() != 6 || exco.Size() != 5 {
		t.Errorf("EXCO: order %d size %d, want 6 and 5", exco.Order(), exco.Size())
	}
	if mu := exco.MatchingNumber(); mu != 2 {
		t.Errorf("EXCO matching number = %d, want 2", mu)
	}
	if alpha := exco.IndependenceNumber(); alpha != 4 {
		t.Errorf("EXCO independence number = %d, want 4", alpha)
	}
}

func TestParseGraph6Header(t *testing.T) {
	g, err := ParseGraph6(">>graph6<<Bw")
	if err != nil {
		t.Fatalf("ParseGraph6 with header error = %v", err)
	}
	if g.Order() != 3 {
		t.Errorf("order = %d, want 3", g.Order())
	}
}

func TestParseGraph6Malformed(t *testing.T) {
	cases := []string{
		"",
		"B",     // missing data byte
		"Bww",   // trailing data
		"B\x10", // byte below 63
		"~B",    // truncated long order
	}
	for _, s := range cases {
		if _, err := ParseGraph6(s); !errors.Is(err, errors.ErrCodeInvalidGraph) {
			t.Errorf("ParseGraph6(%q) error = %v, want INVALID_GRAPH", s, err)
		}
	}
}

func TestGraph6RoundTrip(t *testing.T) {
	graphs := []*Graph{
		New(0),
		Empty(2),
		Complete(3),
		Path(3),
		Star(3),
		Cycle(5),
		Petersen(),
	}
	for _, g := range graphs {
		s, err := g.Graph6()
		if err != nil {
			t.Fatalf("Graph6() error = %v", err)
		}
		back, err := ParseGraph6(s)
		if err != nil {
			t.Fatalf("ParseGraph6(%q) error = %v", s, err)
		}
		if back.Order() != g.Order() || back.Size() != g.Size() {
			t.Errorf("round trip of order %d: got order %d size %d, want size %d",
				g.Order(), back.Order(), back.Size(), g.Size())
		}
		for u := 0; u < g.Order(); u++ {
			for v := u + 1; v < g.Order(); v++ {
				if g.HasEdge(u, v) != back.HasEdge(u, v) {
					t.Errorf("round trip of %q: edge (%d,%d) mismatch", s, u, v)
				}
			}
		}
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	g := Petersen()

	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph() error = %v", err)
	}
	back, err := UnmarshalGraph(data)
	if err != nil {
		t.Fatalf("UnmarshalGraph() error = %v", err)
	}
	if back.Order() != 10 || back.Size() != 15 {
		t.Errorf("round trip: order %d size %d, want 10 and 15", back.Order(), back.Size())
	}
}

func TestUnmarshalGraphRejectsBadEdges(t *testing.T) {
	_, err := UnmarshalGraph([]byte(`{"order": 2, "edges": [{"u": 0, "v": 7}]}`))
	if !errors.Is(err, errors.ErrCodeInvalidGraph) {
		t.Errorf("UnmarshalGraph() error = %v, want INVALID_GRAPH", err)
	}
}
