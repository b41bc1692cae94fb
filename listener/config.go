// Package listener provides the HTTP listener module serving the editor API in the Fx container.
package listener

import (
	"errors"
	"fmt"
	"net"
	"time"
)

// DefaultAddress binds the editor to loopback, since a session belongs to a single operator.
const DefaultAddress = "127.0.0.1:8088"

// DefaultShutdownTimeout bounds a graceful shutdown when the stop context carries no deadline.
const DefaultShutdownTimeout = 5 * time.Second

// ErrEmptyAddress is returned when the address is empty.
var ErrEmptyAddress = errors.New("address must not be empty")

// ErrInvalidAddress is returned when the address is not a host:port pair.
var ErrInvalidAddress = errors.New("address must be host:port")

// ErrInvalidShutdownTimeout is returned for a negative shutdown timeout.
var ErrInvalidShutdownTimeout = errors.New("shutdown timeout must not be negative")

// ErrListenFailed is returned when the server fails to listen on the configured address.
var ErrListenFailed = errors.New("failed to listen")

// ErrShutdownFailed is returned when the server fails to shut down gracefully.
var ErrShutdownFailed = errors.New("shutdown failed")

// ErrEmptyName is returned when the listener name is empty.
var ErrEmptyName = errors.New("listener name must not be empty")

// ErrNilHandler is returned when a nil http.Handler is provided.
var ErrNilHandler = errors.New("handler must not be nil")

// Config holds the configuration for an HTTP listener.
type Config struct {
	Address         string        `yaml:"address"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() bool {
	changed := false

	if c.Address == "" {
		c.Address = DefaultAddress
		changed = true
	}

	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
		changed = true
	}

	return changed
}

// Validate validates the Config.
func (c *Config) Validate() error {
	if c.Address == "" {
		return ErrEmptyAddress
	}

	if _, _, err := net.SplitHostPort(c.Address); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, c.Address)
	}

	if c.ShutdownTimeout < 0 {
		return ErrInvalidShutdownTimeout
	}

	return nil
}
