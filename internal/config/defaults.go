package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultZagrebMIC     = "XZAG"
	DefaultLjubljanaMIC  = "XLJU"
	DefaultSourceTimeout = 30 * time.Second
	DefaultDBPort        = 5432
	DefaultDBSSLMode     = "prefer"
	DefaultMaxConns      = 4
	DefaultMinConns      = 1
	DefaultListenAddr    = ":8080"
	DefaultSMTPPort      = 465
)

func (c *Config) applyDefaults() {
	// Source defaults
	if c.Sources.Zagreb.MIC == "" {
		c.Sources.Zagreb.MIC = DefaultZagrebMIC
	}
	if c.Sources.Ljubljana.MIC == "" {
		c.Sources.Ljubljana.MIC = DefaultLjubljanaMIC
	}
	if c.Sources.Zagreb.Timeout == 0 {
		c.Sources.Zagreb.Timeout = DefaultSourceTimeout
	}
	if c.Sources.Ljubljana.Timeout == 0 {
		c.Sources.Ljubljana.Timeout = DefaultSourceTimeout
	}
	if c.Sources.Vienna.Timeout == 0 {
		c.Sources.Vienna.Timeout = DefaultSourceTimeout
	}

	// Database defaults
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}

	// HTTP defaults
	if c.HTTP.ListenAddr == "" {
		c.HTTP.ListenAddr = DefaultListenAddr
	}

	// SMTP defaults
	if c.SMTP.Port == 0 {
		c.SMTP.Port = DefaultSMTPPort
	}
}
