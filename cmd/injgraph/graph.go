package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/sghaida/scopedi/di"
)

// component is the instance produced by a class provider.
type component struct {
	class string
	token string
	deps  di.Args
	onEnd func(*component)
}

func (c *component) String() string {
	parts := make([]string, 0, len(c.deps))
	for _, d := range c.deps {
		parts = append(parts, render(d))
	}
	return c.class + "(" + strings.Join(parts, ", ") + ")"
}

// OnDestroy implements di.Destroyable.
func (c *component) OnDestroy() {
	if c.onEnd != nil {
		c.onEnd(c)
	}
}

// scope is a built injector with its manifest name.
type scope struct {
	name string
	inj  *di.Injector
}

// graph is an injector tree built from a manifest.
type graph struct {
	keys   map[string]di.Key
	scopes []*scope
	byName map[string]*scope

	// ended collects "token (Class)" for every destroyed component.
	ended []string
}

func buildGraph(m *Manifest, log *zap.Logger) (*graph, error) {
	g := &graph{
		keys:   make(map[string]di.Key),
		byName: make(map[string]*scope),
	}
	for _, t := range m.Tokens {
		if t.Multi {
			g.keys[t.Name] = di.NewMultiToken[any](t.Name)
		} else {
			g.keys[t.Name] = di.NewToken[any](t.Name)
		}
	}

	defaults := di.NewDefaults()
	for _, p := range m.Defaults {
		b, err := g.binding(p)
		if err != nil {
			return nil, errors.Wrap(err, "defaults")
		}
		defaults.Provide(b)
	}

	for _, s := range m.Scopes {
		bindings := make([]di.ProviderBinding, 0, len(s.Providers))
		for _, p := range s.Providers {
			b, err := g.binding(p)
			if err != nil {
				return nil, errors.Wrapf(err, "scope %q", s.Name)
			}
			bindings = append(bindings, b)
		}

		opts := []di.Option{di.WithLogger(log.With(zap.String("scope", s.Name)))}
		if s.Parent == "" {
			opts = append(opts, di.WithDefaults(defaults))
		} else {
			opts = append(opts, di.WithParent(g.byName[s.Parent].inj))
		}

		sc := &scope{name: s.Name, inj: di.New(bindings, opts...)}
		g.scopes = append(g.scopes, sc)
		g.byName[s.Name] = sc
	}
	return g, nil
}

// key returns the token registered under name, declaring a single token on
// first use.
func (g *graph) key(name string) di.Key {
	if k, ok := g.keys[name]; ok {
		return k
	}
	k := di.NewToken[any](name)
	g.keys[name] = k
	return k
}

func (g *graph) binding(p ProviderSpec) (di.ProviderBinding, error) {
	deps, err := g.deps(p.Deps)
	if err != nil {
		return di.ProviderBinding{}, errors.Wrapf(err, "provider %q", p.Token)
	}
	key := g.key(p.Token)

	switch p.kind() {
	case "value":
		return di.Provide(key, di.Value(p.Value)), nil
	case "format":
		format := *p.Format
		return di.Provide(key, di.Factory(func(args di.Args) (any, error) {
			return fmt.Sprintf(format, args...), nil
		}, deps...)), nil
	case "class":
		class, token := p.Class, p.Token
		return di.Provide(key, di.Construct(func(args di.Args) (any, error) {
			return &component{class: class, token: token, deps: args, onEnd: g.end}, nil
		}, deps...)), nil
	case "alias":
		return di.Provide(key, di.Alias(g.key(p.Alias))), nil
	default:
		return di.ProviderBinding{}, errors.Errorf("provider %q has no kind", p.Token)
	}
}

func (g *graph) deps(specs []DepSpec) ([]di.Dependency, error) {
	out := make([]di.Dependency, 0, len(specs))
	for _, d := range specs {
		opts, err := lookupOptions(d.Optional, d.From)
		if err != nil {
			return nil, errors.Wrapf(err, "dep %q", d.Token)
		}
		out = append(out, di.DepOn(g.key(d.Token), opts...))
	}
	return out, nil
}

func (g *graph) end(c *component) {
	g.ended = append(g.ended, c.token+" ("+c.class+")")
}

// resolve runs one lookup and renders it as "scope/token = value" or
// "scope/token: error".
func (g *graph) resolve(r ResolveSpec) (string, error) {
	label := r.Scope + "/" + r.Token
	sc, ok := g.byName[r.Scope]
	if !ok {
		return "", errors.Errorf("unknown scope %q", r.Scope)
	}
	opts, err := lookupOptions(r.Optional, r.From)
	if err != nil {
		return label + ": " + err.Error(), err
	}

	v, err := sc.inj.Get(g.key(r.Token), opts...)
	if err != nil {
		return label + ": " + err.Error(), err
	}
	return label + " = " + render(v), nil
}

// destroy tears the scopes down leaves first and returns one line per
// notified component.
func (g *graph) destroy() []string {
	var lines []string
	for i := len(g.scopes) - 1; i >= 0; i-- {
		sc := g.scopes[i]
		start := len(g.ended)
		sc.inj.Destroy()
		for _, e := range g.ended[start:] {
			lines = append(lines, "destroyed "+sc.name+"/"+e)
		}
	}
	return lines
}

func lookupOptions(optional bool, from string) ([]di.ResolveOption, error) {
	s, err := di.ParseScope(from)
	if err != nil {
		return nil, err
	}
	opts := []di.ResolveOption{di.From(s)}
	if optional {
		opts = append(opts, di.Optional())
	}
	return opts, nil
}

func render(v any) string {
	switch v := v.(type) {
	case nil:
		return "<nil>"
	case []any:
		parts := make([]string, 0, len(v))
		for _, e := range v {
			parts = append(parts, render(e))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
