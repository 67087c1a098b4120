package di

import "fmt"

// Scope selects which injectors of the parent chain take part in a lookup.
type Scope int

const (
	// SelfAndAncestors searches the injector, then its parents. It is the default.
	SelfAndAncestors Scope = iota
	// Self searches only the injector itself (and the defaults, for a root injector).
	Self
	// Ancestors skips the injector and starts at its parent.
	Ancestors
)

// String returns the manifest spelling of the scope.
func (s Scope) String() string {
	switch s {
	case SelfAndAncestors:
		return "self-and-ancestors"
	case Self:
		return "self"
	case Ancestors:
		return "ancestors"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

// ParseScope parses "self", "ancestors" or "self-and-ancestors".
// The empty string is the default scope.
func ParseScope(s string) (Scope, error) {
	switch s {
	case "", "self-and-ancestors":
		return SelfAndAncestors, nil
	case "self":
		return Self, nil
	case "ancestors":
		return Ancestors, nil
	default:
		return SelfAndAncestors, fmt.Errorf("di: unknown scope %q", s)
	}
}

// ResolveOption configures a single lookup or dependency.
type ResolveOption func(*resolveOptions)

type resolveOptions struct {
	optional bool
	from     Scope
}

func newResolveOptions(opts []ResolveOption) resolveOptions {
	var o resolveOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Optional makes a missing provider resolve to nil instead of an error.
// Cycles and destroyed injectors are still reported.
func Optional() ResolveOption {
	return func(o *resolveOptions) { o.optional = true }
}

// From restricts the lookup to the given scope.
func From(s Scope) ResolveOption {
	return func(o *resolveOptions) { o.from = s }
}

// Dependency is anything that can be listed as a provider dependency:
// a token, a class, or a Dep carrying options.
type Dependency interface {
	dep() Dep
}

// Dep is a dependency on Token with per-dependency resolution options.
// The options apply to this dependency only, independently of how the
// dependent itself was requested.
type Dep struct {
	Token    Key
	Optional bool
	From     Scope
}

func (d Dep) dep() Dep { return d }

// DepOn attaches resolution options to a dependency.
//
//	di.Construct(newHandler, di.DepOn(Tracer, di.Optional()), di.DepOn(Config, di.From(di.Ancestors)))
func DepOn(key Key, opts ...ResolveOption) Dep {
	o := newResolveOptions(opts)
	return Dep{Token: key, Optional: o.optional, From: o.from}
}

func toDeps(deps []Dependency) []Dep {
	out := make([]Dep, 0, len(deps))
	for _, d := range deps {
		out = append(out, d.dep())
	}
	return out
}
