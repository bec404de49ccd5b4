package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "AYG_"

// Load builds a configuration from the defaults, the file at path and the
// process environment. An empty path means DefaultPath, which may be
// missing. The result is not validated so that flags can still be applied.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		err := cfg.LoadFile(path)
		if err != nil && (explicit || !errors.Is(err, ErrFileNotFound)) {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(os.Environ()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays the settings in path. The format follows the extension.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = c.decodeTOML(data)
	case ".yaml", ".yml":
		err = c.decodeYAML(data)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return &ParseError{Path: path, Err: err}
	}
	return nil
}

func (c *Config) decodeTOML(data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(c)
}

func (c *Config) decodeYAML(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv applies AYG_* overrides from environ ("KEY=value" entries).
// AYG_SPELL_MAX_WORD_LENGTH maps to spell.max_word_length. Prefixed
// variables that name no setting are ignored.
func (c *Config) ApplyEnv(environ []string) error {
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		path, ok := envToPath(name)
		if !ok {
			continue
		}
		if err := c.Set(path, value); err != nil {
			if errors.Is(err, ErrUnknownSetting) {
				continue
			}
			return fmt.Errorf("environment %s: %w", name, err)
		}
	}
	return nil
}

// envToPath converts AYG_EDITOR_TAB_WIDTH to editor.tab_width.
func envToPath(env string) (string, bool) {
	name := strings.ToLower(strings.TrimPrefix(env, EnvPrefix))
	section, key, ok := strings.Cut(name, "_")
	if !ok || section == "" || key == "" {
		return "", false
	}
	return section + "." + key, true
}
