package conn

import (
	"github.com/sghaida/fab/config"
	"github.com/sghaida/fab/registry"
)

// Registry is the factory registry specialized to connections.
type Registry = registry.Registry[Kind, config.Config, Conn]

// NewRegistry returns a fresh Registry pre-wired with the built-in
// constructors (MySQL, Postgres, Mongo). The given options are bound into
// every constructor, so a logger set here shows up on each produced Conn.
//
// KindRedis is intentionally not registered: the kind exists, the factory for
// it does not, which is exactly the unknown-kind case the registry's typed
// errors exist for.
func NewRegistry(opts ...Option) *Registry {
	return registry.New[Kind, config.Config, Conn]().
		MustRegister(KindMySQL, func(cfg config.Config) (Conn, error) {
			return NewMySQL(cfg, opts...), nil
		}).
		MustRegister(KindPostgres, func(cfg config.Config) (Conn, error) {
			return NewPostgres(cfg, opts...), nil
		}).
		MustRegister(KindMongo, func(cfg config.Config) (Conn, error) {
			return NewMongo(cfg, opts...), nil
		})
}

var defaultRegistry = NewRegistry()

// Default returns the shared default Registry.
//
// It is safe to register additional kinds on it at runtime; callers that want
// local extensions without global effect should work on Default().Clone().
func Default() *Registry {
	return defaultRegistry
}

// New creates a connection of the given kind via the Default registry.
func New(kind Kind, cfg config.Config) (Conn, error) {
	return defaultRegistry.Create(kind, cfg)
}

// MustNew is New that panics on error. Intended for examples and tests.
func MustNew(kind Kind, cfg config.Config) Conn {
	c, err := New(kind, cfg)
	if err != nil {
		panic(err)
	}
	return c
}
