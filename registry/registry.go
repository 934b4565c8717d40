package registry

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"sync"
)

// ErrConstructorPanic is returned (wrapped) if a constructor panics inside
// Create. The registry never lets a badly behaved constructor take the caller
// down with it.
var ErrConstructorPanic = errors.New("registry: panic during Create")

// Constructor turns a configuration value into a product.
//
// Constructors are typically small closures registered once per kind:
//
//	reg.Register(KindMySQL, func(cfg config.Config) (Conn, error) { ... })
type Constructor[C any, P any] func(cfg C) (P, error)

// DuplicateKindError is returned when Register is called with a kind that
// already has a constructor.
type DuplicateKindError struct{ Kind any }

// Error implements the error interface.
func (e DuplicateKindError) Error() string {
	// Example: registry: duplicate kind "mysql"
	return "registry: duplicate kind " + quoteKind(e.Kind)
}

// UnknownKindError is returned when Create is called with a kind nobody
// registered.
type UnknownKindError struct{ Kind any }

// Error implements the error interface.
func (e UnknownKindError) Error() string {
	// Example: registry: unknown kind "redis"
	return "registry: unknown kind " + quoteKind(e.Kind)
}

// NilConstructorError indicates a nil constructor for a specific kind.
type NilConstructorError struct{ Kind any }

// Error implements the error interface.
func (e NilConstructorError) Error() string {
	// Example: registry: nil constructor for kind "mysql"
	return "registry: nil constructor for kind " + quoteKind(e.Kind)
}

// WrongProductError is returned by CreateAs when the constructor produced a
// value that is not the requested type.
//
// WantType and GotType are reflect type strings, kept as plain strings so the
// error is cheap to construct and easy to assert on.
type WrongProductError struct {
	Kind     any
	WantType string
	GotType  string
}

// Error implements the error interface.
func (e WrongProductError) Error() string {
	// Example: registry: kind "mysql" produced *conn.Postgres, want *conn.MySQL
	return "registry: kind " + quoteKind(e.Kind) + " produced " + e.GotType + ", want " + e.WantType
}

// quoteKind renders a kind for error messages. String-ish kinds are quoted,
// everything else falls back to its default formatting.
func quoteKind(k any) string {
	if s, ok := k.(fmt.Stringer); ok {
		return strconv.Quote(s.String())
	}
	rv := reflect.ValueOf(k)
	if rv.IsValid() && rv.Kind() == reflect.String {
		return strconv.Quote(rv.String())
	}
	return fmt.Sprint(k)
}

// Registry maps kinds to constructors.
//
// K is the discriminator (commonly a small named string type), C the
// configuration handed to constructors, and P the product (commonly an
// interface). The zero value is not usable; call New.
type Registry[K comparable, C any, P any] struct {
	mu    sync.RWMutex
	ctors map[K]Constructor[C, P]
}

// New constructs an empty Registry.
func New[K comparable, C any, P any]() *Registry[K, C, P] {
	return &Registry[K, C, P]{ctors: make(map[K]Constructor[C, P])}
}

// Register binds a constructor to a kind.
//
// It fails if:
//   - ctor is nil (NilConstructorError)
//   - kind already has a constructor (DuplicateKindError)
func (r *Registry[K, C, P]) Register(kind K, ctor Constructor[C, P]) error {
	if ctor == nil {
		return NilConstructorError{Kind: kind}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.ctors[kind]; exists {
		return DuplicateKindError{Kind: kind}
	}
	r.ctors[kind] = ctor
	return nil
}

// MustRegister is Register that panics on error and returns the registry for
// chaining. Useful in package init blocks and examples where a registration
// failure is a programming error.
func (r *Registry[K, C, P]) MustRegister(kind K, ctor Constructor[C, P]) *Registry[K, C, P] {
	if err := r.Register(kind, ctor); err != nil {
		panic(err)
	}
	return r
}

// Create looks up the constructor for kind and runs it with cfg.
//
// It returns UnknownKindError if the kind was never registered, and converts
// constructor panics into an error wrapping ErrConstructorPanic.
func (r *Registry[K, C, P]) Create(kind K, cfg C) (p P, err error) {
	r.mu.RLock()
	ctor, ok := r.ctors[kind]
	r.mu.RUnlock()
	if !ok {
		var zero P
		return zero, UnknownKindError{Kind: kind}
	}

	defer func() {
		if rec := recover(); rec != nil {
			var zero P
			p = zero
			err = fmt.Errorf("%w: %v", ErrConstructorPanic, rec)
		}
	}()
	return ctor(cfg)
}

// Has reports whether a constructor exists for kind.
func (r *Registry[K, C, P]) Has(kind K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ctors[kind]
	return ok
}

// Kinds returns the registered kinds in unspecified order.
func (r *Registry[K, C, P]) Kinds() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]K, 0, len(r.ctors))
	for k := range r.ctors {
		kinds = append(kinds, k)
	}
	return kinds
}

// Len returns the number of registered kinds.
func (r *Registry[K, C, P]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ctors)
}

// Clone returns a copy of the Registry with the same constructors.
//
// Further registrations on the clone do not affect the original, which makes
// Clone the way to extend a shared default registry locally.
func (r *Registry[K, C, P]) Clone() *Registry[K, C, P] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cp := &Registry[K, C, P]{ctors: make(map[K]Constructor[C, P], len(r.ctors))}
	for k, ctor := range r.ctors {
		cp.ctors[k] = ctor
	}
	return cp
}

// CreateAs creates a product for kind and narrows it to T.
//
// It returns:
//   - whatever Create returns on lookup/constructor failure
//   - WrongProductError if the product is not a T
//
// This is the typed counterpart of Create for callers that need a concrete
// implementation rather than the product interface.
func CreateAs[T any, K comparable, C any, P any](r *Registry[K, C, P], kind K, cfg C) (T, error) {
	p, err := r.Create(kind, cfg)
	if err != nil {
		var zero T
		return zero, err
	}
	t, ok := any(p).(T)
	if !ok {
		// A constructor may legally return (nil, nil); reflect.TypeOf is nil
		// for a nil product, so render it explicitly instead of panicking.
		gotType := "<nil>"
		if rt := reflect.TypeOf(p); rt != nil {
			gotType = rt.String()
		}
		var zero T
		return zero, WrongProductError{
			Kind:     kind,
			WantType: reflect.TypeOf((*T)(nil)).Elem().String(),
			GotType:  gotType,
		}
	}
	return t, nil
}
