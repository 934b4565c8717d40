package registry_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/sghaida/fab/registry"
)

// Test fixtures: a tiny widget "domain" so the registry is exercised without
// pulling in the conn package.

type widgetKind string

const (
	kindGear   widgetKind = "gear"
	kindSpring widgetKind = "spring"
)

type widgetCfg struct {
	Size int
}

type widget interface {
	Describe() string
}

type gear struct{ size int }

func (g *gear) Describe() string { return fmt.Sprintf("gear(%d)", g.size) }

type spring struct{ size int }

func (s *spring) Describe() string { return fmt.Sprintf("spring(%d)", s.size) }

func newGearRegistry(t *testing.T) *registry.Registry[widgetKind, widgetCfg, widget] {
	t.Helper()
	r := registry.New[widgetKind, widgetCfg, widget]()
	require.NoError(t, r.Register(kindGear, func(cfg widgetCfg) (widget, error) {
		return &gear{size: cfg.Size}, nil
	}))
	return r
}

//
// -----------------------------------------------------------------------------
// New / Register / MustRegister
// -----------------------------------------------------------------------------

// TestNew_Empty verifies New returns a usable empty registry.
func TestNew_Empty(t *testing.T) {
	t.Parallel()

	r := registry.New[widgetKind, widgetCfg, widget]()
	require.NotNil(t, r)
	assert.Zero(t, r.Len())
	assert.Empty(t, r.Kinds())
	assert.False(t, r.Has(kindGear))
}

// TestRegister_Duplicate verifies a second registration for the same kind
// fails with DuplicateKindError and leaves the first constructor in place.
func TestRegister_Duplicate(t *testing.T) {
	t.Parallel()

	r := newGearRegistry(t)

	err := r.Register(kindGear, func(cfg widgetCfg) (widget, error) {
		return &spring{size: cfg.Size}, nil
	})
	require.Error(t, err)

	var dup registry.DuplicateKindError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, kindGear, dup.Kind)
	assert.Equal(t, `registry: duplicate kind "gear"`, err.Error())

	// First constructor still wins.
	w, err := r.Create(kindGear, widgetCfg{Size: 3})
	require.NoError(t, err)
	assert.Equal(t, "gear(3)", w.Describe())
}

// TestRegister_NilConstructor verifies a nil constructor is rejected with kind
// context.
func TestRegister_NilConstructor(t *testing.T) {
	t.Parallel()

	r := registry.New[widgetKind, widgetCfg, widget]()

	err := r.Register(kindGear, nil)
	require.Error(t, err)

	var nilCtor registry.NilConstructorError
	require.True(t, errors.As(err, &nilCtor))
	assert.Equal(t, kindGear, nilCtor.Kind)
	assert.False(t, r.Has(kindGear))
}

// TestMustRegister_ChainsAndPanics verifies MustRegister chains on success and
// panics on duplicate registration.
func TestMustRegister_ChainsAndPanics(t *testing.T) {
	t.Parallel()

	r := registry.New[widgetKind, widgetCfg, widget]()

	ret := r.
		MustRegister(kindGear, func(cfg widgetCfg) (widget, error) { return &gear{size: cfg.Size}, nil }).
		MustRegister(kindSpring, func(cfg widgetCfg) (widget, error) { return &spring{size: cfg.Size}, nil })
	require.Same(t, r, ret)
	assert.Equal(t, 2, r.Len())

	assert.PanicsWithError(t, `registry: duplicate kind "gear"`, func() {
		r.MustRegister(kindGear, func(cfg widgetCfg) (widget, error) { return &gear{}, nil })
	})
}

//
// -----------------------------------------------------------------------------
// Create
// -----------------------------------------------------------------------------

// TestCreate_Known verifies Create runs the registered constructor with the
// provided config.
func TestCreate_Known(t *testing.T) {
	t.Parallel()

	r := newGearRegistry(t)

	w, err := r.Create(kindGear, widgetCfg{Size: 8})
	require.NoError(t, err)
	assert.Equal(t, "gear(8)", w.Describe())
}

// TestCreate_Unknown verifies Create fails with UnknownKindError for a kind
// nobody registered.
func TestCreate_Unknown(t *testing.T) {
	t.Parallel()

	r := newGearRegistry(t)

	w, err := r.Create(kindSpring, widgetCfg{})
	require.Error(t, err)
	assert.Nil(t, w)

	var unknown registry.UnknownKindError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, kindSpring, unknown.Kind)
	assert.Equal(t, `registry: unknown kind "spring"`, err.Error())
}

// TestCreate_ConstructorError verifies constructor errors pass through
// unchanged.
func TestCreate_ConstructorError(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("no gears today")
	r := registry.New[widgetKind, widgetCfg, widget]()
	require.NoError(t, r.Register(kindGear, func(widgetCfg) (widget, error) {
		return nil, sentinel
	}))

	w, err := r.Create(kindGear, widgetCfg{})
	assert.Nil(t, w)
	assert.ErrorIs(t, err, sentinel)
}

// TestCreate_RecoversFromPanic verifies constructor panics are converted into
// errors wrapping ErrConstructorPanic.
func TestCreate_RecoversFromPanic(t *testing.T) {
	t.Parallel()

	r := registry.New[widgetKind, widgetCfg, widget]()
	require.NoError(t, r.Register(kindGear, func(widgetCfg) (widget, error) {
		panic("boom")
	}))

	w, err := r.Create(kindGear, widgetCfg{})
	require.Error(t, err)
	assert.Nil(t, w)
	assert.ErrorIs(t, err, registry.ErrConstructorPanic)
	assert.Contains(t, err.Error(), "boom")
}

//
// -----------------------------------------------------------------------------
// Has / Kinds / Len / Clone
// -----------------------------------------------------------------------------

// TestKinds verifies Kinds reports every registered kind exactly once.
func TestKinds(t *testing.T) {
	t.Parallel()

	r := newGearRegistry(t)
	require.NoError(t, r.Register(kindSpring, func(cfg widgetCfg) (widget, error) {
		return &spring{size: cfg.Size}, nil
	}))

	assert.ElementsMatch(t, []widgetKind{kindGear, kindSpring}, r.Kinds())
	assert.Equal(t, 2, r.Len())
	assert.True(t, r.Has(kindGear))
	assert.True(t, r.Has(kindSpring))
}

// TestClone_Independent verifies registrations on a clone do not leak back
// into the original.
func TestClone_Independent(t *testing.T) {
	t.Parallel()

	orig := newGearRegistry(t)
	cp := orig.Clone()

	require.NoError(t, cp.Register(kindSpring, func(cfg widgetCfg) (widget, error) {
		return &spring{size: cfg.Size}, nil
	}))

	assert.True(t, cp.Has(kindSpring))
	assert.False(t, orig.Has(kindSpring))

	// The shared constructor still works on both.
	w, err := orig.Create(kindGear, widgetCfg{Size: 1})
	require.NoError(t, err)
	assert.Equal(t, "gear(1)", w.Describe())
}

//
// -----------------------------------------------------------------------------
// CreateAs
// -----------------------------------------------------------------------------

// TestCreateAs_Narrows verifies CreateAs returns the concrete type when the
// constructor produces one.
func TestCreateAs_Narrows(t *testing.T) {
	t.Parallel()

	r := newGearRegistry(t)

	g, err := registry.CreateAs[*gear](r, kindGear, widgetCfg{Size: 5})
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, 5, g.size)
}

// TestCreateAs_WrongProduct verifies CreateAs fails with WrongProductError
// (including both type names) when the product is not the requested type.
func TestCreateAs_WrongProduct(t *testing.T) {
	t.Parallel()

	r := newGearRegistry(t)

	s, err := registry.CreateAs[*spring](r, kindGear, widgetCfg{})
	require.Error(t, err)
	assert.Nil(t, s)

	var wrong registry.WrongProductError
	require.True(t, errors.As(err, &wrong))
	assert.Equal(t, kindGear, wrong.Kind)
	assert.Contains(t, wrong.WantType, "spring")
	assert.Contains(t, wrong.GotType, "gear")
}

// TestCreateAs_NilProduct verifies a constructor returning (nil, nil) yields
// a WrongProductError with a "<nil>" product type instead of panicking.
func TestCreateAs_NilProduct(t *testing.T) {
	t.Parallel()

	r := registry.New[widgetKind, widgetCfg, widget]()
	require.NoError(t, r.Register(kindGear, func(widgetCfg) (widget, error) {
		return nil, nil
	}))

	g, err := registry.CreateAs[*gear](r, kindGear, widgetCfg{})
	require.Error(t, err)
	assert.Nil(t, g)

	var wrong registry.WrongProductError
	require.True(t, errors.As(err, &wrong))
	assert.Equal(t, kindGear, wrong.Kind)
	assert.Equal(t, "<nil>", wrong.GotType)
	assert.Contains(t, wrong.WantType, "gear")
}

// TestCreateAs_UnknownKindPassthrough verifies lookup failures surface
// unchanged through CreateAs.
func TestCreateAs_UnknownKindPassthrough(t *testing.T) {
	t.Parallel()

	r := newGearRegistry(t)

	_, err := registry.CreateAs[*spring](r, kindSpring, widgetCfg{})
	var unknown registry.UnknownKindError
	require.True(t, errors.As(err, &unknown))
}

//
// -----------------------------------------------------------------------------
// Concurrency
// -----------------------------------------------------------------------------

// TestConcurrentRegisterAndCreate verifies the registry tolerates concurrent
// registration and creation (run with -race).
func TestConcurrentRegisterAndCreate(t *testing.T) {
	t.Parallel()

	r := newGearRegistry(t)

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		i := i
		g.Go(func() error {
			kind := widgetKind(fmt.Sprintf("gear-%d", i))
			if err := r.Register(kind, func(cfg widgetCfg) (widget, error) {
				return &gear{size: cfg.Size}, nil
			}); err != nil {
				return err
			}
			_, err := r.Create(kind, widgetCfg{Size: i})
			return err
		})
		g.Go(func() error {
			_, err := r.Create(kindGear, widgetCfg{Size: i})
			return err
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, 9, r.Len())
}
