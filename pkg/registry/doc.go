// Package registry defines the reference breed registry as seen by the
// matcher: species, canonical transboundary breed names, and the full list of
// alias breed names, plus the Provider capability that fetches them.
//
// Concrete transports (the DAD-IS HTTP client) live elsewhere; Memory is an
// in-memory Provider for tests and offline use.
package registry
