package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultHost is used when the builder (or a config file) does not set a host.
const DefaultHost = "localhost"

// MissingFieldError is returned by Build when a required field was not set.
type MissingFieldError struct{ Field string }

// Error implements the error interface.
func (e MissingFieldError) Error() string {
	// Example: config: missing required field "database"
	return "config: missing required field " + strconv.Quote(e.Field)
}

// PortRangeError is returned by Build when the port is outside [1, 65535].
type PortRangeError struct{ Port int }

// Error implements the error interface.
func (e PortRangeError) Error() string {
	// Example: config: port 70000 out of range
	return "config: port " + strconv.Itoa(e.Port) + " out of range"
}

// Config describes where a connection should point.
//
// Values are produced by a Builder (or Parse/LoadFile) and should be treated
// as read-only afterwards; use Clone before mutating Properties.
type Config struct {
	Host       string            `yaml:"host"`
	Port       int               `yaml:"port"`
	Database   string            `yaml:"database"`
	Properties map[string]string `yaml:"properties"`
}

// Property returns the named property, if set.
func (c Config) Property(key string) (string, bool) {
	v, ok := c.Properties[key]
	return v, ok
}

// Clone returns a copy of the Config with its own property map.
func (c Config) Clone() Config {
	cp := c
	if c.Properties != nil {
		cp.Properties = make(map[string]string, len(c.Properties))
		for k, v := range c.Properties {
			cp.Properties[k] = v
		}
	}
	return cp
}

// Builder assembles a Config step by step.
//
// The zero value is not usable; call NewBuilder, chain setters, then Build:
//
//	cfg, err := config.NewBuilder().
//	    Host("db.internal").
//	    Port(3306).
//	    Database("orders").
//	    Property("useSSL", "true").
//	    Build()
type Builder struct {
	host       string
	port       int
	database   string
	properties map[string]string
}

// NewBuilder returns a Builder with defaults applied (host = DefaultHost).
func NewBuilder() *Builder {
	return &Builder{
		host:       DefaultHost,
		properties: map[string]string{},
	}
}

// Host sets the host and returns the builder for chaining.
func (b *Builder) Host(host string) *Builder {
	b.host = host
	return b
}

// Port sets the port and returns the builder for chaining.
func (b *Builder) Port(port int) *Builder {
	b.port = port
	return b
}

// Database sets the database name and returns the builder for chaining.
func (b *Builder) Database(database string) *Builder {
	b.database = database
	return b
}

// Property sets a single property and returns the builder for chaining.
func (b *Builder) Property(key, value string) *Builder {
	b.properties[key] = value
	return b
}

// Properties merges a property map into the builder and returns it for
// chaining. Later entries win over earlier ones.
func (b *Builder) Properties(props map[string]string) *Builder {
	for k, v := range props {
		b.properties[k] = v
	}
	return b
}

// Build validates the builder state and returns the Config.
//
// It fails if:
//   - host is empty (MissingFieldError, only reachable via Host(""))
//   - database is empty (MissingFieldError)
//   - port is outside [1, 65535] (PortRangeError)
//
// The property bag is copied, so reusing the builder afterwards does not
// mutate the built Config.
func (b *Builder) Build() (Config, error) {
	if b.host == "" {
		return Config{}, MissingFieldError{Field: "host"}
	}
	if b.database == "" {
		return Config{}, MissingFieldError{Field: "database"}
	}
	if b.port < 1 || b.port > 65535 {
		return Config{}, PortRangeError{Port: b.port}
	}

	props := make(map[string]string, len(b.properties))
	for k, v := range b.properties {
		props[k] = v
	}
	return Config{
		Host:       b.host,
		Port:       b.port,
		Database:   b.database,
		Properties: props,
	}, nil
}

// MustBuild is Build that panics on error. Useful in examples and tests where
// an invalid config is a programming error.
func (b *Builder) MustBuild() Config {
	cfg, err := b.Build()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Parse decodes YAML into a Config and runs it through the same validation as
// Build, so file-sourced and hand-built configs obey identical rules.
func Parse(data []byte) (Config, error) {
	var raw Config
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, err
	}

	b := NewBuilder().
		Port(raw.Port).
		Database(raw.Database).
		Properties(raw.Properties)
	if raw.Host != "" {
		b.Host(raw.Host)
	}
	return b.Build()
}

// LoadFile reads a YAML file and parses it via Parse.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}
