package di

// Provider is a recipe for producing the value of a key.
//
// It is sealed: the only implementations are *ValueProvider, *FactoryProvider,
// *ClassProvider and *TokenProvider. The shape is fixed when the provider is
// built and the injector switches on it exhaustively.
type Provider interface {
	kind() providerKind
}

type providerKind int

const (
	valueKind providerKind = iota
	factoryKind
	classKind
	tokenKind
)

// Args holds resolved dependency values in declaration order.
// An optional dependency that was not found is nil.
type Args []any

// Arg returns args[i] as T. It yields the zero T when i is out of range,
// the value is nil, or the value is not a T; a wrong dependency type is
// therefore silent. Use TryArg to tell those cases apart.
func Arg[T any](args Args, i int) T {
	v, _ := TryArg[T](args, i)
	return v
}

// TryArg returns args[i] as T and whether it was present and of type T.
func TryArg[T any](args Args, i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(args) || args[i] == nil {
		return zero, false
	}
	v, ok := args[i].(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// ValueProvider binds a precomputed value.
type ValueProvider struct {
	Value any
}

func (*ValueProvider) kind() providerKind { return valueKind }

// FactoryProvider calls Factory with the resolved Deps.
type FactoryProvider struct {
	Factory func(Args) (any, error)
	Deps    []Dep
}

func (*FactoryProvider) kind() providerKind { return factoryKind }

// ClassProvider constructs an instance with New and the resolved Deps.
//
// Only class instances take part in the destroy lifecycle.
// The key it is bound to need not be a *Class, which allows binding an
// interface token to a concrete implementation.
type ClassProvider struct {
	New  func(Args) (any, error)
	Deps []Dep
}

func (*ClassProvider) kind() providerKind { return classKind }

// TokenProvider forwards to another key, resolved from the injector that owns
// this provider with default options.
type TokenProvider struct {
	Token Key
}

func (*TokenProvider) kind() providerKind { return tokenKind }

// Value returns a provider for a fixed value.
func Value(v any) *ValueProvider {
	return &ValueProvider{Value: v}
}

// Factory returns a provider that calls fn with the resolved deps.
func Factory(fn func(Args) (any, error), deps ...Dependency) *FactoryProvider {
	return &FactoryProvider{Factory: fn, Deps: toDeps(deps)}
}

// Construct returns a class provider that builds an instance with ctor.
func Construct(ctor func(Args) (any, error), deps ...Dependency) *ClassProvider {
	return &ClassProvider{New: ctor, Deps: toDeps(deps)}
}

// Alias returns a provider that resolves key instead.
func Alias(key Key) *TokenProvider {
	return &TokenProvider{Token: key}
}

// IsValueProvider reports whether p is a value provider.
func IsValueProvider(p Provider) bool { return p != nil && p.kind() == valueKind }

// IsFactoryProvider reports whether p is a factory provider.
func IsFactoryProvider(p Provider) bool { return p != nil && p.kind() == factoryKind }

// IsClassProvider reports whether p is a class provider.
func IsClassProvider(p Provider) bool { return p != nil && p.kind() == classKind }

// IsTokenProvider reports whether p is an alias provider.
func IsTokenProvider(p Provider) bool { return p != nil && p.kind() == tokenKind }

// ProviderBinding pairs a key with the provider used to produce it.
type ProviderBinding struct {
	Token    Key
	Provider Provider
}

// Provide binds key to p.
func Provide(key Key, p Provider) ProviderBinding {
	return ProviderBinding{Token: key, Provider: p}
}

// ProvideClass binds a class to its own constructor and dependencies.
func ProvideClass[T any](cls *Class[T]) ProviderBinding {
	return ProviderBinding{Token: cls, Provider: cls.provider()}
}
