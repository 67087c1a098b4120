// Package scopedi is a hierarchical dependency injection container for Go.
//
// Bindings are explicit: every provider lists its dependencies next to its
// constructor, and lookups go through typed tokens rather than reflection.
// Injectors form a tree (application scope, request scope, ...) where each
// scope caches what it built and is destroyed on its own.
//
// Layout:
//   - di: the injector, tokens, providers, defaults and typed accessors
//   - cmd/injgraph: builds an injector tree from a YAML/JSON manifest and prints lookups
//   - examples/scopes: an application scope with one child scope per request
//
// Start with the di package documentation.
package scopedi
