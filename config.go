package feedback

import (
	"errors"
	"fmt"
	"time"
)

// Server identity reported to MCP clients.
const (
	DefaultServerName    = "saai-skill-feedback-server"
	DefaultServerVersion = "1.0.0"
)

// Config holds runtime configuration for the feedback server.
type Config struct {
	ServerName    string
	ServerVersion string

	// Interpreter runs Script. When empty, Script is executed directly.
	Interpreter string
	Script      string
	// Dir is the collaborator working directory; empty inherits ours.
	Dir string
	// Env entries are added to the inherited environment.
	Env map[string]string
	// Timeout bounds a collaborator run. Zero means no limit.
	Timeout time.Duration

	LogLevel  string
	LogFormat string // "json" or "console"
}

// DefaultConfig returns a Config with all defaults applied. Script has no
// default here; the binary resolves it relative to its own location.
func DefaultConfig() Config {
	return Config{
		ServerName:    DefaultServerName,
		ServerVersion: DefaultServerVersion,
		Interpreter:   "python3",
		LogLevel:      "info",
		LogFormat:     "json",
	}
}

// Validate checks that c can be used to start the server.
func (c Config) Validate() error {
	if c.Script == "" {
		return errors.New("collaborator script is required")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative, got %s", c.Timeout)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("log format must be json or console, got %q", c.LogFormat)
	}
	return nil
}

// Command returns the collaborator command line for req.
func (c Config) Command(req Request) []string {
	var argv []string
	if c.Interpreter != "" {
		argv = append(argv, c.Interpreter)
	}
	argv = append(argv, c.Script)
	return append(argv, req.Args()...)
}
