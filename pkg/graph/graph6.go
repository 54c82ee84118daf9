package graph

import (
	"strings"

	"github.com/graphcert/alphabound/pkg/errors"
)

// graph6 is the compact ASCII encoding used by graph corpora: a size
// header followed by the upper triangle of the adjacency matrix packed
// six bits per byte, each byte offset by 63. See the nauty formats
// documentation for the full definition.

const graph6Header = ">>graph6<<"

// ParseGraph6 decodes a graph6 string, with or without the optional
// ">>graph6<<" prefix. Malformed input is an INVALID_GRAPH error.
func ParseGraph6(s string) (*Graph, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, graph6Header)
	if s == "" {
		return nil, errors.New(errors.ErrCodeInvalidGraph, "empty graph6 string")
	}

	data := []byte(s)
	for _, b := range data {
		if b < 63 || b > 126 {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "graph6 byte %d out of range", b)
		}
	}

	n, rest, err := decodeGraph6Order(data)
	if err != nil {
		return nil, err
	}

	need := (n*(n-1)/2 + 5) / 6
	if len(rest) != need {
		return nil, errors.New(errors.ErrCodeInvalidGraph,
			"graph6 string for order %d needs %d data bytes, got %d", n, need, len(rest))
	}

	g := New(n)
	bit := 0
	for j := 1; j < n; j++ {
		for i := 0; i < j; i++ {
			byteIdx, bitIdx := bit/6, bit%6
			if (rest[byteIdx]-63)&(1<<(5-bitIdx)) != 0 {
				g.adj[i][j] = true
				g.adj[j][i] = true
				g.m++
			}
			bit++
		}
	}
	return g, nil
}

// Graph6 encodes the graph as a graph6 string without the optional
// header. Orders above 258047 are not supported.
func (g *Graph) Graph6() (string, error) {
	var buf []byte

	switch {
	case g.n <= 62:
		buf = append(buf, byte(g.n)+63)
	case g.n <= 258047:
		buf = append(buf, 126,
			byte(g.n>>12)+63, byte((g.n>>6)&63)+63, byte(g.n&63)+63)
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "graph6 encoding of order %d", g.n)
	}

	bits := g.n * (g.n - 1) / 2
	data := make([]byte, (bits+5)/6)
	bit := 0
	for j := 1; j < g.n; j++ {
		for i := 0; i < j; i++ {
			if g.adj[i][j] {
				data[bit/6] |= 1 << (5 - bit%6)
			}
			bit++
		}
	}
	for i := range data {
		data[i] += 63
	}
	return string(append(buf, data...)), nil
}

func decodeGraph6Order(data []byte) (n int, rest []byte, err error) {
	if data[0] != 126 {
		return int(data[0] - 63), data[1:], nil
	}
	if len(data) >= 2 && data[1] == 126 {
		if len(data) < 8 {
			return 0, nil, errors.New(errors.ErrCodeInvalidGraph, "truncated graph6 order header")
		}
		for _, b := range data[2:8] {
			n = n<<6 | int(b-63)
		}
		return n, data[8:], nil
	}
	if len(data) < 4 {
		return 0, nil, errors.New(errors.ErrCodeInvalidGraph, "truncated graph6 order header")
	}
	for _, b := range data[1:4] {
		n = n<<6 | int(b-63)
	}
	return n, data[4:], nil
}
