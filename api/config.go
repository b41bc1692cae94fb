package api

import (
	"errors"
	"fmt"

	"github.com/0xalexb/confedit/listener/middleware"
)

// ErrInvalidBodyLimit is returned for a negative body size limit.
var ErrInvalidBodyLimit = errors.New("maxBodyBytes must not be negative")

// Config holds the HTTP settings of the API.
type Config struct {
	// MaxBodyBytes caps request bodies. Blob edits are the largest payloads.
	MaxBodyBytes int64 `yaml:"maxBodyBytes"`
	// AllowedOrigins lists browser origins allowed to call the API, e.g. "http://localhost:3000".
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() bool {
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = middleware.DefaultMaxRequestSize

		return true
	}

	return false
}

// Validate checks the body limit and every origin.
func (c *Config) Validate() error {
	if c.MaxBodyBytes < 0 {
		return ErrInvalidBodyLimit
	}

	for _, origin := range c.AllowedOrigins {
		if err := middleware.ValidateOrigin(origin); err != nil {
			return fmt.Errorf("allowedOrigins: %w", err)
		}
	}

	return nil
}
