// Package di provides a hierarchical dependency injection container with
// explicit, declared dependencies.
//
// Providers are recipes bound to keys. An Injector resolves a key lazily,
// constructs the value once and caches it for its own lifetime:
//
//   - Token[T]: a single value, looked up by identity (never by name)
//   - MultiToken[T]: every provider bound to it, aggregated into a slice
//   - Class[T]: a constructor that is also its own key
//
// Provider shapes are fixed when built: Value, Factory, Construct (class)
// and Alias (another key). Dependencies are listed next to the provider, in
// the order the factory receives them; there is no reflection-based wiring.
//
// Scoping
//
// Injectors form a tree. A lookup walks from the injector towards the root,
// and each lookup or dependency can narrow that walk with From(Self) or
// From(Ancestors). A root injector may carry a Defaults registry consulted
// after its own providers. Multi keys aggregate root defaults first, then
// each ancestor, then the injector itself.
//
// Errors
//
// Lookups return *MissingProviderError, *CyclicDepsError,
// ErrInjectorDestroyed or *ConstructError. Optional() turns only a missing
// provider into a nil result. Messages render the construction path as
// "Name@depth → Name@depth".
//
// Lifecycle
//
// Destroy notifies every class instance implementing Destroyable and makes
// the injector reject further lookups.
//
// Import
//
//	"github.com/sghaida/scopedi/di"
package di
