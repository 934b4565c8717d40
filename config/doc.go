// Package config provides the connection configuration value object and its
// Builder.
//
// Config is deliberately boring: host, port, database, and a free-form
// property bag. What the package demonstrates is how the value is constructed:
//
//   - Builder: a fluent builder with defaults and build-time validation.
//     Invalid configurations are typed errors (MissingFieldError,
//     PortRangeError) asserted in tests rather than discovered at use time.
//   - Parse / LoadFile: the same validation applied to YAML input, so a config
//     file and a hand-built config go through one code path.
//
// Built Config values are immutable by convention: the property bag is copied
// on Build and on Clone, so holding a Config never aliases a builder's map.
package config
