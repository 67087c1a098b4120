package di

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Destroyable is implemented by class instances that want to be notified
// when their injector is destroyed.
type Destroyable interface {
	OnDestroy()
}

// binding is the cached outcome of constructing a provider in one injector.
type binding struct {
	provider Provider
	instance any
}

type multiBinding struct {
	bindings  []binding
	instances []any
}

// Option configures an injector at construction.
type Option func(*Injector)

// WithParent makes the injector a child of parent.
func WithParent(parent *Injector) Option {
	return func(i *Injector) { i.parent = parent }
}

// WithDefaults sets the fallback registry consulted by a root injector.
// It is ignored for child injectors.
func WithDefaults(d *Defaults) Option {
	return func(i *Injector) { i.defaults = d }
}

// WithLogger sets the logger used for construction and destroy traces.
func WithLogger(l *zap.Logger) Option {
	return func(i *Injector) {
		if l != nil {
			i.log = l
		}
	}
}

// Injector resolves keys to instances, constructing each at most once.
//
// An Injector is not safe for concurrent use: callers must serialise access
// to one injector (and to its ancestors, which a lookup may populate).
type Injector struct {
	id       uuid.UUID
	depth    int
	parent   *Injector
	defaults *Defaults
	log      *zap.Logger

	providers      map[Key]Provider
	multiProviders *MultiMap[Key, Provider]

	bindings      map[Key]*binding
	multiBindings map[Key]*multiBinding

	// created lists class-eligible bindings in construction order.
	created   []*binding
	destroyed bool
}

// New creates an injector from bindings. Without WithParent it is a root.
//
// Single keys bound more than once keep the last provider; multi keys keep
// every provider in order. Binding InjectorToken has no effect.
func New(bindings []ProviderBinding, opts ...Option) *Injector {
	inj := &Injector{
		id:             uuid.New(),
		log:            zap.NewNop(),
		providers:      make(map[Key]Provider, len(bindings)),
		multiProviders: NewMultiMap[Key, Provider](),
		bindings:       make(map[Key]*binding),
		multiBindings:  make(map[Key]*multiBinding),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(inj)
		}
	}

	if inj.parent != nil {
		inj.depth = inj.parent.depth + 1
		if inj.defaults != nil {
			inj.log.Debug("defaults ignored for child injector", inj.fields()...)
			inj.defaults = nil
		}
	}

	for idx, b := range bindings {
		checkBinding(idx, b)
		if b.Token.multi() {
			inj.multiProviders.Add(b.Token, b.Provider)
		} else {
			inj.providers[b.Token] = b.Provider
		}
	}

	inj.bindings[InjectorToken] = &binding{provider: Alias(InjectorToken), instance: inj}
	return inj
}

// Child creates an injector whose parent is i. It shares i's logger.
func (i *Injector) Child(bindings ...ProviderBinding) *Injector {
	return New(bindings, WithParent(i), WithLogger(i.log))
}

// ID returns the random identity used in logs.
func (i *Injector) ID() uuid.UUID { return i.id }

// Depth is 0 for a root injector and parent depth + 1 otherwise.
func (i *Injector) Depth() int { return i.depth }

// Parent returns the parent injector, or nil for a root.
func (i *Injector) Parent() *Injector { return i.parent }

// Destroyed reports whether Destroy has run.
func (i *Injector) Destroyed() bool { return i.destroyed }

// String implements fmt.Stringer.
func (i *Injector) String() string {
	return fmt.Sprintf("Injector(%s)@%d", i.id, i.depth)
}

// Get resolves key.
//
// A single key yields its instance. A multi key yields []any, ordered from
// the root's defaults down to this injector. With Optional, a missing
// provider yields (nil, nil).
func (i *Injector) Get(key Key, opts ...ResolveOption) (any, error) {
	return i.resolve(key, newResolveOptions(opts), nil)
}

// Destroy calls OnDestroy on every class instance constructed by this
// injector, most recent first, and rejects further lookups.
// Parents and children are not affected. Calling Destroy again does nothing.
func (i *Injector) Destroy() {
	if i.destroyed {
		return
	}
	defer func() { i.destroyed = true }()

	notified := 0
	for idx := len(i.created) - 1; idx >= 0; idx-- {
		b := i.created[idx]
		if !IsClassProvider(b.provider) {
			continue
		}
		if d, ok := b.instance.(Destroyable); ok {
			d.OnDestroy()
			notified++
		}
	}
	i.log.Debug("injector destroyed", append(i.fields(), zap.Int("notified", notified))...)
}

func (i *Injector) resolve(key Key, o resolveOptions, path ResolvePath) (any, error) {
	if i.destroyed {
		return nil, ErrInjectorDestroyed
	}
	if idx := path.indexOf(key, i); idx >= 0 {
		return nil, &CyclicDepsError{
			Path:  append(ResolvePath(nil), path[:idx]...),
			Cycle: path[idx:].push(key, i),
		}
	}
	if key.multi() {
		return i.resolveMany(key, o, path)
	}
	return i.resolveOne(key, o, path)
}

func (i *Injector) resolveOne(key Key, o resolveOptions, path ResolvePath) (any, error) {
	if key == Key(InjectorToken) {
		return i, nil
	}

	if o.from == Ancestors {
		if i.parent != nil {
			return i.parent.resolve(key, resolveOptions{optional: o.optional}, path)
		}
		return missing(path, key, o.optional)
	}

	// The cache is checked first so a provider is never constructed twice.
	if b, ok := i.bindings[key]; ok {
		return b.instance, nil
	}
	if p, ok := i.providers[key]; ok {
		return i.bind(key, p, path)
	}

	if i.parent == nil {
		if p, ok := i.defaults.lookup(key); ok {
			return i.bind(key, p, path)
		}
		return missing(path, key, o.optional)
	}
	if o.from != Self {
		return i.parent.resolve(key, resolveOptions{optional: o.optional}, path)
	}
	return missing(path, key, o.optional)
}

func (i *Injector) bind(key Key, p Provider, path ResolvePath) (any, error) {
	inst, err := i.construct(key, p, path.push(key, i))
	if err != nil {
		return nil, err
	}

	b := &binding{provider: p, instance: inst}
	i.bindings[key] = b
	i.created = append(i.created, b)
	i.log.Debug("provider constructed", append(i.fields(), zap.String("token", key.Name()))...)
	return inst, nil
}

func (i *Injector) resolveMany(key Key, o resolveOptions, path ResolvePath) (any, error) {
	var instances []any
	switch o.from {
	case Self:
		own, err := i.ownMany(key, path)
		if err != nil {
			return nil, err
		}
		instances = append(instances, own...)
	case Ancestors:
		inherited, err := i.ancestorsMany(key, path)
		if err != nil {
			return nil, err
		}
		instances = append(instances, inherited...)
	default:
		inherited, err := i.ancestorsMany(key, path)
		if err != nil {
			return nil, err
		}
		own, err := i.ownMany(key, path)
		if err != nil {
			return nil, err
		}
		instances = append(append(instances, inherited...), own...)
	}

	if len(instances) == 0 {
		return missing(path, key, o.optional)
	}
	return instances, nil
}

func (i *Injector) ancestorsMany(key Key, path ResolvePath) ([]any, error) {
	if i.parent == nil {
		return nil, nil
	}
	v, err := i.parent.resolve(key, resolveOptions{optional: true}, path)
	if err != nil || v == nil {
		return nil, err
	}
	return v.([]any), nil
}

func (i *Injector) ownMany(key Key, path ResolvePath) ([]any, error) {
	if mb, ok := i.multiBindings[key]; ok {
		return mb.instances, nil
	}

	var providers []Provider
	if i.parent == nil {
		providers = append(providers, i.defaults.lookupMulti(key)...)
	}
	own, _ := i.multiProviders.Get(key)
	providers = append(providers, own...)
	if len(providers) == 0 {
		return nil, nil
	}
	return i.bindMany(key, providers, path)
}

func (i *Injector) bindMany(key Key, providers []Provider, path ResolvePath) ([]any, error) {
	next := path.push(key, i)
	mb := &multiBinding{
		bindings:  make([]binding, 0, len(providers)),
		instances: make([]any, 0, len(providers)),
	}
	for _, p := range providers {
		inst, err := i.construct(key, p, next)
		if err != nil {
			return nil, err
		}
		mb.bindings = append(mb.bindings, binding{provider: p, instance: inst})
		mb.instances = append(mb.instances, inst)
	}

	i.multiBindings[key] = mb
	for idx := range mb.bindings {
		i.created = append(i.created, &mb.bindings[idx])
	}
	i.log.Debug("multi provider constructed",
		append(i.fields(), zap.String("token", key.Name()), zap.Int("count", len(providers)))...)
	return mb.instances, nil
}

func (i *Injector) construct(key Key, p Provider, path ResolvePath) (any, error) {
	switch p := p.(type) {
	case *ValueProvider:
		return p.Value, nil
	case *TokenProvider:
		return i.resolve(p.Token, resolveOptions{}, path)
	case *FactoryProvider:
		args, err := i.resolveDeps(p.Deps, path)
		if err != nil {
			return nil, err
		}
		return call(key, path, p.Factory, args)
	case *ClassProvider:
		args, err := i.resolveDeps(p.Deps, path)
		if err != nil {
			return nil, err
		}
		return call(key, path, p.New, args)
	default:
		return nil, fmt.Errorf("di: unsupported provider %T for %s", p, key.Name())
	}
}

func (i *Injector) resolveDeps(deps []Dep, path ResolvePath) (Args, error) {
	args := make(Args, 0, len(deps))
	for _, d := range deps {
		v, err := i.resolve(d.Token, resolveOptions{optional: d.Optional, from: d.From}, path)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

// call runs a factory or constructor and converts its failure or panic into
// a *ConstructError.
func call(key Key, path ResolvePath, fn func(Args) (any, error), args Args) (inst any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			inst = nil
			err = &ConstructError{Path: path, Token: key, Err: fmt.Errorf("%w: %v", ErrProviderPanic, rec)}
		}
	}()

	inst, err = fn(args)
	if err != nil {
		return nil, &ConstructError{Path: path, Token: key, Err: err}
	}
	return inst, nil
}

func missing(path ResolvePath, key Key, optional bool) (any, error) {
	if optional {
		return nil, nil
	}
	return nil, &MissingProviderError{Path: path, Token: key}
}

// checkBinding panics when b is missing its token or provider.
func checkBinding(idx int, b ProviderBinding) {
	if b.Token == nil {
		panic(fmt.Sprintf("di: binding #%d has no token", idx))
	}
	if isNilProvider(b.Provider) {
		panic(fmt.Sprintf("di: binding #%d (%s) has no provider", idx, b.Token.Name()))
	}
}

func isNilProvider(p Provider) bool {
	switch p := p.(type) {
	case nil:
		return true
	case *ValueProvider:
		return p == nil
	case *FactoryProvider:
		return p == nil || p.Factory == nil
	case *ClassProvider:
		return p == nil || p.New == nil
	case *TokenProvider:
		return p == nil || p.Token == nil
	default:
		return false
	}
}

func (i *Injector) fields() []zap.Field {
	return []zap.Field{zap.Stringer("injector", i.id), zap.Int("depth", i.depth)}
}
