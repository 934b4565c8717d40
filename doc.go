// Package fab is a small collection of creational-pattern building blocks,
// demonstrated on simulated database connections.
//
// The repository explores a handful of classic construction patterns, each in
// its own package:
//
//   - registry: a generic, thread-safe factory registry (Factory Method made
//     extensible via a kind → constructor table)
//   - config: a fluent builder for connection configuration, plus YAML loading
//   - conn: an abstract product interface with a few concrete implementations
//     and a pre-wired default registry
//   - pool: a deliberately tiny bounded pool driven by the factory (Object
//     Pool as a teaching toy, not production machinery)
//
// The goal is pedagogical: keep each pattern small enough to read in one
// sitting, make misuse fail early with typed errors you can assert in tests,
// and avoid reflection or hidden wiring.
//
// Start with the runnable demos under examples/*: each is an independent main
// that exercises one pattern and prints what it does.
package fab
