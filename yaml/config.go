// Package yaml loads feedback server configuration from YAML files.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fwojciec/feedback"
	"gopkg.in/yaml.v3"
)

// file is the on-disk configuration format. Pointer fields distinguish an
// absent key from an explicit zero value.
type file struct {
	Server struct {
		Name    *string `yaml:"name"`
		Version *string `yaml:"version"`
	} `yaml:"server"`
	Collaborator struct {
		Interpreter *string           `yaml:"interpreter"`
		Script      *string           `yaml:"script"`
		Dir         *string           `yaml:"dir"`
		Timeout     *string           `yaml:"timeout"`
		Env         map[string]string `yaml:"env"`
	} `yaml:"collaborator"`
	Log struct {
		Level  *string `yaml:"level"`
		Format *string `yaml:"format"`
	} `yaml:"log"`
}

// Load reads the file at path and applies it on top of base.
func Load(path string, base feedback.Config) (feedback.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Decode(data, base)
	if err != nil {
		return base, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses YAML configuration and applies it on top of base. Unknown
// keys are rejected.
func Decode(data []byte, base feedback.Config) (feedback.Config, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return base, fmt.Errorf("decode config: %w", err)
	}

	cfg := base
	set(&cfg.ServerName, f.Server.Name)
	set(&cfg.ServerVersion, f.Server.Version)
	set(&cfg.Interpreter, f.Collaborator.Interpreter)
	set(&cfg.Script, f.Collaborator.Script)
	set(&cfg.Dir, f.Collaborator.Dir)
	set(&cfg.LogLevel, f.Log.Level)
	set(&cfg.LogFormat, f.Log.Format)

	if f.Collaborator.Timeout != nil {
		d, err := time.ParseDuration(*f.Collaborator.Timeout)
		if err != nil {
			return base, fmt.Errorf("collaborator.timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if len(f.Collaborator.Env) > 0 {
		env := make(map[string]string, len(base.Env)+len(f.Collaborator.Env))
		for k, v := range base.Env {
			env[k] = v
		}
		for k, v := range f.Collaborator.Env {
			env[k] = v
		}
		cfg.Env = env
	}
	return cfg, nil
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
