// Package registry provides a small, generic factory registry.
//
// It models the extensible Factory Method pattern as a table: a comparable
// kind maps to a Constructor that turns a configuration value into a product.
// Registration is explicit (usually in an init function or a composition
// root), lookup is by kind, and misuse fails early with typed errors you can
// assert in tests:
//
//   - DuplicateKindError: two registrations for the same kind
//   - NilConstructorError: a nil constructor
//   - UnknownKindError: creating a kind nobody registered
//   - WrongProductError: CreateAs asked for a type the constructor did not make
//
// The registry is intentionally:
//   - generic over kind, config, and product types
//   - safe for concurrent use (registration after startup is supported)
//   - free of reflection on the success path
//
// Typed creation is available via CreateAs, which narrows the product
// interface to a concrete implementation:
//
//	mysql, err := registry.CreateAs[*conn.MySQL](reg, conn.KindMySQL, cfg)
//
// See examples/factory for end-to-end usage.
package registry
