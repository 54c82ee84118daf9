// Package graph implements the finite simple graphs that alphabound
// classifies, together with every primitive the bound and property
// engines consume.
//
// # Model
//
// A [Graph] has vertices 0..n-1 and an undirected edge set with no
// loops or multi-edges. Graphs are immutable once built: every
// transformation (complement, subgraph, double cover, vertex deletion)
// returns a fresh Graph, so a classification run can never observe a
// mutation.
//
// # Primitives
//
// Cheap queries: Order, Size, Neighbors, Degree, DegreeSequence,
// MaxDegree, MinDegree, AverageDegree, HasEdge.
//
// Derived graphs: Complement, Subgraph, DeleteVertices,
// BipartiteDoubleCover (the tensor product with K2).
//
// Heavier primitives: AdjacencyEigenvalues (symmetric eigendecomposition
// via gonum), MatchingNumber (Edmonds blossom algorithm, exact),
// MaximumIndependentSet (exact branch and bound, exponential — intended
// for small graphs and test oracles), BlocksAndCutVertices (Tarjan).
//
// # Encodings
//
// Graphs round-trip through two encodings:
//
//   - graph6, the compact ASCII format used by graph corpora
//     ([ParseGraph6], [Graph.Graph6])
//   - a node-link JSON format for files and API payloads
//     ([MarshalGraph], [ReadGraphFile])
//
// # Concurrency
//
// A Graph is safe for concurrent readers; there are no mutating methods.
package graph
