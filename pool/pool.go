package pool

import (
	"errors"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/sghaida/fab/config"
	"github.com/sghaida/fab/conn"
)

var (
	// ErrClosed is returned by Get and Put after Close.
	ErrClosed = errors.New("pool: closed")

	// ErrExhausted is returned by Get when no connection is idle and the pool
	// is at capacity. The pool never blocks waiting for a return.
	ErrExhausted = errors.New("pool: exhausted")

	// ErrNilConn is returned by Put for a nil connection.
	ErrNilConn = errors.New("pool: nil connection")

	// ErrForeignConn is returned by Put for a connection this pool did not
	// hand out.
	ErrForeignConn = errors.New("pool: connection not issued by this pool")
)

// CapacityError is returned by New for a capacity below 1.
type CapacityError struct{ Capacity int }

// Error implements the error interface.
func (e CapacityError) Error() string {
	// Example: pool: capacity 0 must be at least 1
	return "pool: capacity " + strconv.Itoa(e.Capacity) + " must be at least 1"
}

// defaultPrewarm is how many idle connections New manufactures up front
// (clamped to capacity).
const defaultPrewarm = 3

// Stats is a point-in-time snapshot of the pool's collections.
type Stats struct {
	Idle     int
	InUse    int
	Capacity int
}

// Option configures a Pool at construction time.
type Option func(*Pool)

// WithLogger sets the lifecycle logger. A nil logger is replaced with
// zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pool) {
		if logger == nil {
			logger = zap.NewNop()
		}
		p.logger = logger
	}
}

// WithRegistry sets the factory registry used to manufacture connections.
// Defaults to conn.Default().
func WithRegistry(reg *conn.Registry) Option {
	return func(p *Pool) {
		if reg != nil {
			p.reg = reg
		}
	}
}

// WithPrewarm overrides how many idle connections New manufactures up front.
// Negative values are treated as zero; values above capacity are clamped.
func WithPrewarm(n int) Option {
	return func(p *Pool) {
		if n < 0 {
			n = 0
		}
		p.prewarm = n
	}
}

// Pool is a bounded pool of connections of a single kind.
//
// All methods are safe for concurrent use. See the package comment for what
// the pool intentionally does not do.
type Pool struct {
	kind    conn.Kind
	cfg     config.Config
	cap     int
	prewarm int
	reg     *conn.Registry
	logger  *zap.Logger

	mu     sync.Mutex
	free   []conn.Conn
	used   map[string]conn.Conn
	closed bool
}

// New constructs a Pool for the given kind and configuration.
//
// Capacity is the hard cap on manufactured connections and must be at least 1.
// New pre-warms min(3, capacity) idle connections unless WithPrewarm says
// otherwise; pre-warmed connections are manufactured but not connected, Get
// connects on handout.
func New(kind conn.Kind, cfg config.Config, capacity int, opts ...Option) (*Pool, error) {
	if capacity < 1 {
		return nil, CapacityError{Capacity: capacity}
	}

	p := &Pool{
		kind:    kind,
		cfg:     cfg,
		cap:     capacity,
		prewarm: defaultPrewarm,
		reg:     conn.Default(),
		logger:  zap.NewNop(),
		used:    make(map[string]conn.Conn),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.prewarm > capacity {
		p.prewarm = capacity
	}

	for i := 0; i < p.prewarm; i++ {
		c, err := p.manufacture()
		if err != nil {
			return nil, err
		}
		p.free = append(p.free, c)
	}

	p.logger.Info("pool ready",
		zap.String("kind", kind.String()),
		zap.Int("idle", len(p.free)),
		zap.Int("capacity", capacity))
	return p, nil
}

// Get hands out a connection, connecting it on the way.
//
// It prefers an idle connection, manufactures a new one while under capacity,
// and fails with ErrExhausted otherwise.
func (p *Pool) Get() (conn.Conn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrClosed
	}

	var c conn.Conn
	switch {
	case len(p.free) > 0:
		c = p.free[0]
		p.free = p.free[1:]
	case len(p.used) < p.cap:
		created, err := p.manufacture()
		if err != nil {
			return nil, err
		}
		c = created
	default:
		return nil, ErrExhausted
	}

	if err := c.Connect(); err != nil {
		p.free = append(p.free, c)
		return nil, err
	}
	p.used[c.ID()] = c

	p.logger.Info("connection handed out",
		zap.String("id", c.ID()),
		zap.Int("idle", len(p.free)),
		zap.Int("in_use", len(p.used)))
	return c, nil
}

// Put returns a handed-out connection to the idle collection, disconnecting
// it on the way. If Disconnect fails the connection stays checked out, so it
// is never lost from the pool's bookkeeping; the caller may retry Put.
func (p *Pool) Put(c conn.Conn) error {
	if c == nil {
		return ErrNilConn
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if _, ok := p.used[c.ID()]; !ok {
		return ErrForeignConn
	}

	if err := c.Disconnect(); err != nil && !errors.Is(err, conn.ErrNotConnected) {
		return err
	}
	delete(p.used, c.ID())
	p.free = append(p.free, c)

	p.logger.Info("connection returned",
		zap.String("id", c.ID()),
		zap.Int("idle", len(p.free)),
		zap.Int("in_use", len(p.used)))
	return nil
}

// Close disconnects every connection and empties both collections. It is
// idempotent; Get and Put fail with ErrClosed afterwards.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	for _, c := range p.used {
		_ = c.Disconnect()
	}
	for _, c := range p.free {
		// Idle connections are normally already disconnected; tolerate both.
		if err := c.Disconnect(); err != nil && !errors.Is(err, conn.ErrNotConnected) {
			p.logger.Warn("disconnect on close", zap.String("id", c.ID()), zap.Error(err))
		}
	}

	p.logger.Info("pool closed",
		zap.Int("disconnected", len(p.free)+len(p.used)))
	p.free = nil
	p.used = make(map[string]conn.Conn)
	return nil
}

// Stats returns a snapshot of the collections.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{Idle: len(p.free), InUse: len(p.used), Capacity: p.cap}
}

// manufacture creates one connection through the registry. Callers hold p.mu
// (or are still inside New).
func (p *Pool) manufacture() (conn.Conn, error) {
	c, err := p.reg.Create(p.kind, p.cfg)
	if err != nil {
		return nil, err
	}
	p.logger.Info("connection manufactured",
		zap.String("kind", p.kind.String()),
		zap.String("id", c.ID()))
	return c, nil
}
