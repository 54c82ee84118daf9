// Package pkg provides the core libraries for alphabound independence
// number classification.
//
// # Overview
//
// Alphabound evaluates efficiently computable bounds and structural
// properties of the graph independence number, and flags the graphs
// where all of them fail to pin the value down. The pkg directory is
// organized into four main areas:
//
//  1. [graph], [critical] - Domain structures (graphs, critical independent sets)
//  2. [bounds], [props], [solver] - Bound functions, alpha properties, LP/SDP relaxations
//  3. [classify], [report] - The registry-driven classifier and its certificates
//  4. [pipeline], [cache], [api] - Orchestration, caching, and the HTTP surface
//
// # Architecture
//
// The typical data flow through alphabound:
//
//	graph6 string / JSON document
//	         ↓
//	    [graph] package (decode, primitives)
//	         ↓
//	    [classify] package (properties short-circuit, bounds in parallel)
//	         ↓
//	    [report] package (certificate with trace and critical set)
//	         ↓
//	    text/JSON/DOT/SVG/PNG output
//
// # Quick Start
//
//	g, _ := graph.ParseGraph6("Cx")
//	c := classify.New(classify.NewRegistry(), classify.Options{})
//	result, _ := c.Classify(context.Background(), g)
//	fmt.Println(result.Verdict.IsDifficult)
package pkg
