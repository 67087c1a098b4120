package di

// Key identifies a binding in an injector.
//
// Keys compare by identity: two tokens created with the same name are
// different keys. The name is only used in diagnostics.
//
// Key is sealed; the implementations are *Token[T], *MultiToken[T] and *Class[T].
type Key interface {
	Dependency

	// Name returns the display name used in error messages.
	Name() string

	multi() bool
}

// Token is a single-value key. T documents the type of the bound value.
//
// Example:
//
//	var DSN = di.NewToken[string]("dsn")
type Token[T any] struct {
	name string
}

// NewToken creates a single-value token.
func NewToken[T any](name string) *Token[T] {
	return &Token[T]{name: name}
}

// Name returns the display name of the token.
func (t *Token[T]) Name() string { return t.name }

// String implements fmt.Stringer.
func (t *Token[T]) String() string { return t.name }

func (t *Token[T]) multi() bool { return false }

func (t *Token[T]) dep() Dep { return Dep{Token: t} }

// MultiToken is a key that aggregates every provider bound to it into an
// ordered slice.
type MultiToken[T any] struct {
	name string
}

// NewMultiToken creates a multi-value token.
func NewMultiToken[T any](name string) *MultiToken[T] {
	return &MultiToken[T]{name: name}
}

// Name returns the display name of the token.
func (t *MultiToken[T]) Name() string { return t.name }

// String implements fmt.Stringer.
func (t *MultiToken[T]) String() string { return t.name }

func (t *MultiToken[T]) multi() bool { return true }

func (t *MultiToken[T]) dep() Dep { return Dep{Token: t} }

// Class is a constructor that is also a single-value key.
//
// Binding a class with ProvideClass uses its own constructor and dependencies.
// It may also be bound to any other provider, e.g. a test double.
type Class[T any] struct {
	name string
	ctor func(Args) (T, error)
	deps []Dependency
}

// NewClass declares a class key with its constructor and ordered dependencies.
func NewClass[T any](name string, ctor func(Args) (T, error), deps ...Dependency) *Class[T] {
	return &Class[T]{name: name, ctor: ctor, deps: deps}
}

// Name returns the display name of the class.
func (c *Class[T]) Name() string { return c.name }

// String implements fmt.Stringer.
func (c *Class[T]) String() string { return c.name }

func (c *Class[T]) multi() bool { return false }

func (c *Class[T]) dep() Dep { return Dep{Token: c} }

// provider returns the class provider built from the class's own constructor.
func (c *Class[T]) provider() *ClassProvider {
	return Construct(func(args Args) (any, error) {
		return c.ctor(args)
	}, c.deps...)
}

// InjectorToken resolves to the injector performing the lookup.
var InjectorToken = NewToken[*Injector]("Injector")
