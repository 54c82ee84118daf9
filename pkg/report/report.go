// Package report renders classification results into certificates a
// human or a downstream tool can consume: JSON for machines, plain
// text for terminals, and Graphviz drawings with the critical set
// highlighted.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/graphcert/alphabound/pkg/classify"
	"github.com/graphcert/alphabound/pkg/graph"
)

// Certificate is a classification result bound to the graph it
// describes, stamped with an id and a timestamp so batch runs can be
// audited later.
type Certificate struct {
	ID          string           `json:"id"`
	Graph6      string           `json:"graph6,omitempty"`
	GeneratedAt time.Time        `json:"generated_at"`
	Result      *classify.Result `json:"result"`
}

// New builds a certificate for a classified graph. Graphs too large
// for graph6 encoding keep an empty Graph6 field.
func New(g *graph.Graph, res *classify.Result) *Certificate {
	cert := &Certificate{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Result:      res,
	}
	if g6, err := g.Graph6(); err == nil {
		cert.Graph6 = g6
	}
	return cert
}

// JSON renders the certificate as indented JSON.
func (c *Certificate) JSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// Text renders the certificate for a terminal.
func (c *Certificate) Text() string {
	var b strings.Builder
	res := c.Result

	if c.Graph6 != "" {
		fmt.Fprintf(&b, "graph %s (order %d, size %d)\n", c.Graph6, res.Order, res.Size)
	} else {
		fmt.Fprintf(&b, "graph of order %d, size %d\n", res.Order, res.Size)
	}

	if res.Verdict.IsDifficult {
		b.WriteString("verdict: DIFFICULT\n")
	} else {
		b.WriteString("verdict: not difficult\n")
	}
	fmt.Fprintf(&b, "reason: %s\n", res.Verdict.Reason)

	if res.Report != nil {
		fmt.Fprintf(&b, "bounds: %d <= alpha <= %d\n", res.Report.Lower, res.Report.Upper)
	}
	if len(res.UMCIS) > 0 {
		fmt.Fprintf(&b, "critical set union: %v\n", res.UMCIS)
	}

	if len(res.Trace) > 0 {
		b.WriteString("\nevaluated entries:\n")
		for _, e := range res.Trace {
			fmt.Fprintf(&b, "  %-32s %-8s %s\n", e.Name, e.Kind, entryOutcome(e))
		}
	}
	return b.String()
}

func entryOutcome(e classify.EntryResult) string {
	switch {
	case e.Skipped:
		return "skipped: " + e.Reason
	case e.Kind == classify.KindProperty:
		if e.Holds {
			return "holds"
		}
		return "does not hold"
	default:
		return fmt.Sprintf("%g", e.Value)
	}
}
