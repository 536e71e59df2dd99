// Package registry enforces the invariants that span specification
// documents and assigns command-line dispatch identifiers.
//
// A Registry is constructed once per generation run and is the only place
// that remembers declarations across documents. It tracks five independent
// namespaces (module identifiers, long spellings, short spellings, smt names
// and display names) and allocates getopt identifiers from a fixed base in
// the shared traversal order, so that the per-module and aggregate emitters
// agree on every ID without talking to each other.
//
// Nothing here is global: tests and repeated invocations construct a fresh
// Registry and never see residual state.
package registry
