package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Node-link wire format
// =============================================================================

// Doc is the canonical node-link serialization of a graph, used for
// JSON files, API payloads, and cache entries. The format is designed
// for round-trip fidelity: decode(encode(g)) reproduces g exactly.
type Doc struct {
	Order int       `json:"order"`
	Edges []DocEdge `json:"edges"`
}

// DocEdge is an undirected edge in the wire format.
type DocEdge struct {
	U int `json:"u"`
	V int `json:"v"`
}

// ToDoc converts a graph to its serialization format. Edges are emitted
// with u < v in lexicographic order, so output is deterministic.
func ToDoc(g *Graph) Doc {
	es := g.Edges()
	doc := Doc{Order: g.Order(), Edges: make([]DocEdge, len(es))}
	for i, e := range es {
		doc.Edges[i] = DocEdge{U: e[0], V: e[1]}
	}
	return doc
}

// FromDoc converts a wire document back to a graph. Malformed edges
// (loops, duplicates, out-of-range endpoints) are INVALID_GRAPH errors.
func FromDoc(doc Doc) (*Graph, error) {
	edges := make([][2]int, len(doc.Edges))
	for i, e := range doc.Edges {
		edges[i] = [2]int{e.U, e.V}
	}
	return FromEdges(doc.Order, edges)
}

// =============================================================================
// Serialization API
// =============================================================================

// MarshalGraph converts a graph to indented JSON bytes.
func MarshalGraph(g *Graph) ([]byte, error) {
	return json.MarshalIndent(ToDoc(g), "", "  ")
}

// UnmarshalGraph deserializes JSON bytes to a graph.
func UnmarshalGraph(data []byte) (*Graph, error) {
	var doc Doc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return FromDoc(doc)
}

// WriteGraph writes a graph as JSON to an io.Writer.
func WriteGraph(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToDoc(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadGraph decodes a JSON graph from an io.Reader.
func ReadGraph(r io.Reader) (*Graph, error) {
	var doc Doc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return FromDoc(doc)
}

// WriteGraphFile writes a graph to a JSON file with 0644 permissions.
func WriteGraphFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

// ReadGraphFile reads a JSON file and returns the decoded graph.
func ReadGraphFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}
