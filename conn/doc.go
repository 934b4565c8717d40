// Package conn provides simulated database connections: the abstract product
// side of the factory demos.
//
// A Conn is a fake connection that tracks its own connected state, carries a
// unique ID, and logs lifecycle transitions. Nothing here dials a network —
// the point is the shape of the API, not real I/O.
//
// The package ships three concrete implementations (MySQL, Postgres, Mongo)
// and a Default registry pre-wired with their constructors. KindRedis is
// declared but deliberately left unregistered so the unknown-kind path has a
// realistic demonstration:
//
//	_, err := conn.New(conn.KindRedis, cfg)
//	// err is registry.UnknownKindError
//
// Extending the factory does not require touching this package: clone the
// default registry (or build one with NewRegistry) and register your own
// constructor for a new Kind. examples/factory shows both directions.
package conn
