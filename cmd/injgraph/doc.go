// Command injgraph builds an injector tree from a manifest, runs the lookups
// it lists and prints what each one resolved to.
//
// It is a way to explore scoping rules without writing Go: which scope a
// value comes from, what From(Self) or From(Ancestors) changes, how multi
// tokens aggregate, what a cycle or a missing provider looks like.
//
// Manifest
//
// YAML (default) or JSON, chosen by file extension:
//
//	tokens:
//	  - {name: plugins, multi: true}
//	defaults:
//	  - {token: greeting, value: hello}
//	scopes:
//	  - name: app
//	    providers:
//	      - {token: name, value: world}
//	      - {token: message, format: "%v, %v!", deps: [greeting, name]}
//	      - {token: service, class: Service, deps: [message, {token: plugins, optional: true}]}
//	      - {token: msg, alias: message}
//	  - name: request
//	    parent: app
//	    providers:
//	      - {token: name, value: request}
//	resolve:
//	  - {scope: request, token: message}
//	  - {scope: request, token: name, from: ancestors}
//
// Names not listed under tokens are single tokens. Each provider sets exactly
// one of value, format, class or alias:
//
//   - value:  the decoded literal
//   - format: fmt.Sprintf(format, deps...)
//   - class:  a component Class(dep, ...) notified when its scope is destroyed
//   - alias:  whatever the named token resolves to in the same scope
//
// A dep is a token name or {token, optional, from}; from is one of self,
// ancestors or self-and-ancestors (the default). A scope without a parent is
// a root and falls back to the manifest defaults.
//
// Output
//
// One line per lookup, in order:
//
//	request/message = hello, world!
//	request/missing: missing provider: missing
//
// then one line per destroyed component, leaves first:
//
//	destroyed app/service (Service)
//
// The exit status is 1 if any lookup failed.
//
// Configuration
//
//	-manifest    INJGRAPH_MANIFEST    manifest path (required)
//	-log-level   INJGRAPH_LOG_LEVEL   debug | info | warn | error (default info)
//	-log-format  INJGRAPH_LOG_FORMAT  console | json (default console)
//	-env                              .env file to load (default ./.env when present)
//
// Flags win over the environment. Logs go to stderr; at debug level every
// construction and destroy is traced.
package main
