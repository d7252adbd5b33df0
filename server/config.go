package server

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	mg "ndjin/ndjinmg"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the settings of a Server.
type Config struct {
	Addr           string
	StartFEN       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxBodyBytes   int64
	AllowedOrigins []string
}

func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		StartFEN:     mg.FENStartPos,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		MaxBodyBytes: 1 << 16,
	}
}

// ApplyEnv overrides fields from NDJIN_ADDR, NDJIN_FEN and NDJIN_ORIGINS
// (comma separated). lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("NDJIN_ADDR"); ok && v != "" {
		c.Addr = v
	}
	if v, ok := lookup("NDJIN_FEN"); ok && v != "" {
		c.StartFEN = v
	}
	if v, ok := lookup("NDJIN_ORIGINS"); ok && v != "" {
		c.AllowedOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.AllowedOrigins = append(c.AllowedOrigins, o)
			}
		}
	}
}

// Validate checks the address, timeouts and start position.
func (c Config) Validate() error {
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return fmt.Errorf("%w: addr %q: %v", ErrInvalidConfig, c.Addr, err)
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 || c.IdleTimeout <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidConfig)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: max body bytes must be positive", ErrInvalidConfig)
	}
	if _, err := mg.ParseFEN(c.StartFEN); err != nil {
		return fmt.Errorf("%w: start position: %v", ErrInvalidConfig, err)
	}
	return nil
}
