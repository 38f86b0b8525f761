package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Instance.ID == "" {
		return errors.New("instance.id is required")
	}

	if err := c.Sources.Zagreb.validate("sources.zagreb"); err != nil {
		return err
	}
	if err := c.Sources.Ljubljana.validate("sources.ljubljana"); err != nil {
		return err
	}
	if c.Sources.Vienna.BaseURL == "" {
		return errors.New("sources.vienna.base_url is required")
	}

	if err := c.Database.validate("database"); err != nil {
		return err
	}

	if c.SMTP.Enabled() {
		if c.SMTP.From == "" {
			return errors.New("smtp.from is required when smtp.host is set")
		}
		if len(c.SMTP.To) == 0 {
			return errors.New("smtp.to is required when smtp.host is set")
		}
		if c.SMTP.Port < 1 || c.SMTP.Port > 65535 {
			return fmt.Errorf("smtp.port must be between 1 and 65535, got %d", c.SMTP.Port)
		}
	}

	return nil
}

func (h *HistAPIConfig) validate(prefix string) error {
	if h.BaseURL == "" {
		return fmt.Errorf("%s.base_url is required", prefix)
	}
	if h.MIC == "" {
		return fmt.Errorf("%s.mic is required", prefix)
	}
	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
