package config

import "time"

// Config is the root configuration for the sync daemon.
type Config struct {
	Instance InstanceConfig `yaml:"instance"`
	Sources  SourcesConfig  `yaml:"sources"`
	Database DBConfig       `yaml:"database"`
	HTTP     HTTPConfig     `yaml:"http"`
	Schedule ScheduleConfig `yaml:"schedule"`
	SMTP     SMTPConfig     `yaml:"smtp"`
}

// InstanceConfig identifies this daemon instance.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// SourcesConfig holds the three upstream venues.
type SourcesConfig struct {
	Zagreb    HistAPIConfig   `yaml:"zagreb"`
	Ljubljana HistAPIConfig   `yaml:"ljubljana"`
	Vienna    CSVExportConfig `yaml:"vienna"`
}

// HistAPIConfig holds one JSON history API endpoint. The base URL includes
// the venue's access-token path segment.
type HistAPIConfig struct {
	BaseURL string        `yaml:"base_url"`
	MIC     string        `yaml:"mic"`
	Timeout time.Duration `yaml:"timeout"`
}

// CSVExportConfig holds the Vienna CSV export endpoint.
type CSVExportConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// DBConfig holds the PostgreSQL connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// HTTPConfig holds the trigger/health listener settings.
type HTTPConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// ScheduleConfig holds the in-process scheduler settings. An empty cron
// expression disables scheduled runs; the HTTP trigger keeps working.
type ScheduleConfig struct {
	Cron string `yaml:"cron"`
}

// SMTPConfig holds the outcome notification mail settings. When Host is
// empty, outcomes are only logged.
type SMTPConfig struct {
	Host     string   `yaml:"host"`
	Port     int      `yaml:"port"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	From     string   `yaml:"from"`
	To       []string `yaml:"to"`
}

// Enabled reports whether mail notification is configured.
func (s SMTPConfig) Enabled() bool {
	return s.Host != ""
}
