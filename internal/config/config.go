// Package config loads webstarter settings from the environment.
//
// Precedence is flags over environment over built-in defaults; commands read
// the parsed Config for their flag defaults so all three layers compose.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the environment-driven defaults for webstarter commands.
type Config struct {
	// PythonBin is the interpreter used to create virtual environments.
	PythonBin string `env:"WEBSTARTER_PYTHON" envDefault:"python3"`

	// PythonVersion is written to the generated .python-version file.
	PythonVersion string `env:"WEBSTARTER_PYTHON_VERSION" envDefault:"3.12"`

	// DBPath overrides the workspace database location (data/database.db).
	DBPath string `env:"WEBSTARTER_DB"`

	// HTTPAddr is the preview server listen address.
	HTTPAddr string `env:"WEBSTARTER_HTTP_ADDR" envDefault:":5000"`

	// ShutdownTimeout bounds preview server graceful shutdown.
	ShutdownTimeout time.Duration `env:"WEBSTARTER_SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// FromEnv parses the WEBSTARTER_* environment variables into a Config.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
