// Package pool provides a deliberately tiny bounded connection pool: the
// Object Pool pattern as a teaching toy.
//
// The pool keeps two collections — idle connections and handed-out
// connections — under one mutex, caps how many connections it will ever
// manufacture, and logs lifecycle events. A connection is in exactly one of
// the two collections at any time, and idle + in-use never exceeds capacity.
//
// That is the whole design. There is intentionally no waiting, no acquire
// timeout, no health checking, no eviction, and no retry: when the pool is
// empty and at capacity, Get simply returns ErrExhausted and the caller
// decides what to do. Anything fancier belongs in a real pool library, not a
// pattern demo.
//
// Connections are manufactured through a conn.Registry, which is the point of
// the exercise: the pool is a consumer of the factory, not a factory itself.
package pool
