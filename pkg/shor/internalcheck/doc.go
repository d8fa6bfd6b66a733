// Package internalcheck holds static policy tests over the library packages.
//
// The tests load pkg/shor/... with golang.org/x/tools/go/packages and fail on:
//
//   - direct printing through fmt or log (trace output goes through logging)
//   - package-level math/rand functions (randomness must be injected)
//
// It has no exported API.
package internalcheck
