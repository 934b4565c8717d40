package conn

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sghaida/fab/config"
)

var (
	// ErrAlreadyConnected is returned by Connect on a connected Conn.
	ErrAlreadyConnected = errors.New("conn: already connected")

	// ErrNotConnected is returned by Disconnect on a disconnected Conn.
	ErrNotConnected = errors.New("conn: not connected")
)

// Conn is a simulated database connection.
//
// Connect and Disconnect only flip internal state and log the transition;
// there is no real handshake behind them.
type Conn interface {
	// Connect marks the connection established. Connecting twice is an error.
	Connect() error

	// Disconnect marks the connection closed. Disconnecting an unconnected
	// Conn is an error.
	Disconnect() error

	// Addr returns the connection string, e.g. "mysql://localhost:3306/app".
	Addr() string

	// Kind returns the connection's kind.
	Kind() Kind

	// ID returns the connection's unique identifier.
	ID() string
}

// Option configures a concrete connection at construction time.
type Option func(*base)

// WithLogger sets the lifecycle logger. A nil logger is replaced with
// zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(b *base) {
		if logger == nil {
			logger = zap.NewNop()
		}
		b.logger = logger
	}
}

// base carries the state shared by every concrete connection.
type base struct {
	id     string
	kind   Kind
	scheme string
	cfg    config.Config
	logger *zap.Logger

	mu        sync.Mutex
	connected bool
}

// init fills the base in place; base embeds a mutex, so it is never copied
// after construction.
func (b *base) init(kind Kind, scheme string, cfg config.Config, opts []Option) {
	b.id = uuid.NewString()
	b.kind = kind
	b.scheme = scheme
	b.cfg = cfg
	b.logger = zap.NewNop()
	for _, opt := range opts {
		opt(b)
	}
}

// Connect implements Conn.
func (b *base) Connect() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.connected {
		return ErrAlreadyConnected
	}
	b.connected = true
	b.logger.Info("connected",
		zap.String("kind", b.kind.DisplayName()),
		zap.String("id", b.id),
		zap.String("addr", b.Addr()))
	return nil
}

// Disconnect implements Conn.
func (b *base) Disconnect() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.connected {
		return ErrNotConnected
	}
	b.connected = false
	b.logger.Info("disconnected",
		zap.String("kind", b.kind.DisplayName()),
		zap.String("id", b.id))
	return nil
}

// Connected reports the current state.
func (b *base) Connected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.connected
}

// Addr implements Conn.
func (b *base) Addr() string {
	return fmt.Sprintf("%s://%s:%d/%s", b.scheme, b.cfg.Host, b.cfg.Port, b.cfg.Database)
}

// Kind implements Conn.
func (b *base) Kind() Kind { return b.kind }

// ID implements Conn.
func (b *base) ID() string { return b.id }

// Config returns the configuration the connection was built from.
func (b *base) Config() config.Config { return b.cfg }

// MySQL is the MySQL-flavoured simulated connection.
type MySQL struct{ base }

// NewMySQL constructs a MySQL connection.
func NewMySQL(cfg config.Config, opts ...Option) *MySQL {
	c := &MySQL{}
	c.init(KindMySQL, "mysql", cfg, opts)
	return c
}

// Postgres is the PostgreSQL-flavoured simulated connection.
type Postgres struct{ base }

// NewPostgres constructs a Postgres connection.
func NewPostgres(cfg config.Config, opts ...Option) *Postgres {
	c := &Postgres{}
	c.init(KindPostgres, "postgres", cfg, opts)
	return c
}

// Mongo is the MongoDB-flavoured simulated connection.
type Mongo struct{ base }

// NewMongo constructs a Mongo connection.
func NewMongo(cfg config.Config, opts ...Option) *Mongo {
	c := &Mongo{}
	c.init(KindMongo, "mongodb", cfg, opts)
	return c
}
