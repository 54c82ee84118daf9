package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/graphcert/alphabound/pkg/graph"
)

// DOTOptions configures graph drawing.
type DOTOptions struct {
	// Highlight fills the listed vertices, typically the UMCIS, so the
	// critical structure is visible at a glance.
	Highlight []int

	// Labels replaces the numeric vertex labels when set.
	Labels map[int]string
}

// ToDOT converts a graph to Graphviz DOT format. The resulting string
// can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(g *graph.Graph, opts DOTOptions) string {
	highlighted := make(map[int]bool, len(opts.Highlight))
	for _, v := range opts.Highlight {
		highlighted[v] = true
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	for _, v := range g.Vertices() {
		label := fmt.Sprintf("%d", v)
		if l, ok := opts.Labels[v]; ok {
			label = l
		}
		if highlighted[v] {
			fmt.Fprintf(&buf, "  %d [label=%q, fillcolor=gold];\n", v, label)
		} else {
			fmt.Fprintf(&buf, "  %d [label=%q];\n", v, label)
		}
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %d -- %d;\n", e[0], e[1])
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
