package classify

import (
	"sort"
	"strings"

	"github.com/graphcert/alphabound/pkg/bounds"
	"github.com/graphcert/alphabound/pkg/props"
)

// Kind tags a registry entry by what it contributes to the verdict.
type Kind string

const (
	KindLower    Kind = "lower"
	KindUpper    Kind = "upper"
	KindProperty Kind = "property"
)

// BoundEntry pairs a named bound function with its kind.
type BoundEntry struct {
	Name string
	Kind Kind
	Eval bounds.Func
}

// PropertyEntry names an alpha-property predicate. Properties are
// evaluated in registration order and short-circuit on the first hit.
type PropertyEntry struct {
	Name string
	Eval props.Predicate
}

// Registry is the immutable configuration of a Classifier: the ordered
// bound and property entries it will evaluate. Build one with
// NewRegistry and never mutate it afterwards; a Classifier shares its
// Registry across goroutines.
type Registry struct {
	lower      []BoundEntry
	upper      []BoundEntry
	properties []PropertyEntry
	solvers    string
}

// RegistryOption customizes registry construction.
type RegistryOption func(*registryConfig)

type registryConfig struct {
	relax    *bounds.Relaxations
	disabled map[string]bool
}

// WithRelaxations injects the solver adapters backing the fractional
// and theta entries. Defaults to bounds.NewRelaxations.
func WithRelaxations(r *bounds.Relaxations) RegistryOption {
	return func(c *registryConfig) { c.relax = r }
}

// WithoutEntries removes the named entries from the registry. Unknown
// names are ignored.
func WithoutEntries(names ...string) RegistryOption {
	return func(c *registryConfig) {
		for _, n := range names {
			c.disabled[n] = true
		}
	}
}

// NewRegistry builds the full registry of known bounds and alpha
// properties. Property order puts the cheap degree checks before the
// subset-enumeration and matching-based ones so short-circuiting pays.
func NewRegistry(opts ...RegistryOption) *Registry {
	cfg := registryConfig{disabled: map[string]bool{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.relax == nil {
		cfg.relax = bounds.NewRelaxations()
	}

	r := &Registry{solvers: cfg.relax.Fingerprint()}
	add := func(dst *[]BoundEntry, name string, kind Kind, eval bounds.Func) {
		if !cfg.disabled[name] {
			*dst = append(*dst, BoundEntry{Name: name, Kind: kind, Eval: eval})
		}
	}

	add(&r.lower, "matching_lower_bound", KindLower, bounds.MatchingLower)
	add(&r.lower, "residue", KindLower, bounds.Residue)
	add(&r.lower, "average_degree_bound", KindLower, bounds.AverageDegree)
	add(&r.lower, "caro_wei", KindLower, bounds.CaroWei)
	add(&r.lower, "wilf", KindLower, bounds.Wilf)
	add(&r.lower, "hansen_zheng_lower_bound", KindLower, bounds.HansenZhengLower)
	add(&r.lower, "harant", KindLower, bounds.Harant)
	add(&r.lower, "greedy_min", KindLower, bounds.GreedyMIN)

	add(&r.upper, "matching_upper_bound", KindUpper, bounds.MatchingUpper)
	add(&r.upper, "min_degree_bound", KindUpper, bounds.MinDegreeUpper)
	add(&r.upper, "cvetkovic", KindUpper, bounds.Cvetkovic)
	add(&r.upper, "annihilation", KindUpper, bounds.Annihilation)
	add(&r.upper, "kwok", KindUpper, bounds.Kwok)
	add(&r.upper, "borg", KindUpper, bounds.Borg)
	add(&r.upper, "hansen_zheng_upper_bound", KindUpper, bounds.HansenZhengUpper)
	add(&r.upper, "cut_vertices_bound", KindUpper, bounds.CutVertices)
	add(&r.upper, "fractional_alpha", KindUpper, cfg.relax.FractionalAlpha)
	add(&r.upper, "lovasz_theta", KindUpper, cfg.relax.LovaszTheta)

	properties := []PropertyEntry{
		{Name: "has_max_degree_order_minus_one", Eval: props.HasDominatingVertex},
		{Name: "has_pendant_vertex", Eval: props.HasPendantVertex},
		{Name: "has_simplicial_vertex", Eval: props.HasSimplicialVertex},
		{Name: "is_claw_free", Eval: props.IsClawFree},
		{Name: "is_KE", Eval: props.IsKoenigEgervary},
		{Name: "is_almost_KE", Eval: props.IsAlmostKoenigEgervary},
		{Name: "has_nonempty_KE_part", Eval: props.HasNonemptyCriticalPart},
	}
	for _, p := range properties {
		if !cfg.disabled[p.Name] {
			r.properties = append(r.properties, p)
		}
	}
	return r
}

// Lower returns the lower-bound entries in registration order.
func (r *Registry) Lower() []BoundEntry { return r.lower }

// Upper returns the upper-bound entries in registration order.
func (r *Registry) Upper() []BoundEntry { return r.upper }

// Properties returns the property entries in registration order.
func (r *Registry) Properties() []PropertyEntry { return r.properties }

// Names returns the sorted names of every registered entry.
func (r *Registry) Names() []string {
	var names []string
	for _, e := range r.lower {
		names = append(names, e.Name)
	}
	for _, e := range r.upper {
		names = append(names, e.Name)
	}
	for _, p := range r.properties {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// Fingerprint identifies the registry composition for cache keying. It
// covers the entry set and the solver settings behind the relaxation
// entries, so re-tuning a tolerance produces a fresh fingerprint.
func (r *Registry) Fingerprint() string {
	if r.solvers == "" {
		return strings.Join(r.Names(), ",")
	}
	return strings.Join(r.Names(), ",") + ";" + r.solvers
}
