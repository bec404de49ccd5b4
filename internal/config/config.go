package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dshills/ayg/internal/spell/dictionary"
)

// AppDirName is the directory name used under the user config and cache
// directories.
const AppDirName = "ayg"

// Config is the complete editor configuration.
type Config struct {
	Dictionary DictionaryConfig `toml:"dictionary" yaml:"dictionary"`
	Spell      SpellConfig      `toml:"spell" yaml:"spell"`
	Editor     EditorConfig     `toml:"editor" yaml:"editor"`
	Log        LogConfig        `toml:"log" yaml:"log"`
}

// DictionaryConfig says where the word list comes from.
type DictionaryConfig struct {
	// Source is an http(s) URL or a local file path.
	Source   string   `toml:"source" yaml:"source" validate:"required"`
	CacheDir string   `toml:"cache_dir" yaml:"cache_dir"`
	Refresh  bool     `toml:"refresh" yaml:"refresh"`
	Timeout  Duration `toml:"timeout" yaml:"timeout" validate:"gt=0"`
}

// SpellConfig tunes checking and correction.
type SpellConfig struct {
	// MaxWordLength caps the tokens sent to the corrector. 0 means no cap.
	MaxWordLength  int      `toml:"max_word_length" yaml:"max_word_length" validate:"gte=0,lte=12"`
	Relocate       string   `toml:"relocate" yaml:"relocate" validate:"oneof=search anchor"`
	DrainInterval  Duration `toml:"drain_interval" yaml:"drain_interval" validate:"gt=0"`
	HighlightColor string   `toml:"highlight_color" yaml:"highlight_color" validate:"required,color"`
}

// EditorConfig holds editing preferences.
type EditorConfig struct {
	TabWidth         int    `toml:"tab_width" yaml:"tab_width" validate:"gte=1,lte=16"`
	DefaultExtension string `toml:"default_extension" yaml:"default_extension" validate:"omitempty,startswith=."`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `toml:"level" yaml:"level" validate:"oneof=debug info warn warning error off none"`
	File  string `toml:"file" yaml:"file"`
}

// Duration is a time.Duration written as a string such as "250ms".
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String returns the duration in time.Duration notation.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// Default returns the built-in configuration.
func Default() *Config {
	cacheDir := defaultCacheDir()
	return &Config{
		Dictionary: DictionaryConfig{
			Source:   dictionary.DefaultSource,
			CacheDir: cacheDir,
			Timeout:  Duration(30 * time.Second),
		},
		Spell: SpellConfig{
			MaxWordLength:  9,
			Relocate:       "search",
			DrainInterval:  Duration(100 * time.Millisecond),
			HighlightColor: "red",
		},
		Editor: EditorConfig{
			TabWidth:         4,
			DefaultExtension: ".txt",
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(cacheDir, "ayg.log"),
		},
	}
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, AppDirName)
}

// DefaultPath returns the config file consulted when none is given, or ""
// when the user config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppDirName, "config.toml")
}

// Set assigns one setting from its string form. Paths use the file keys,
// for example "spell.max_word_length".
func (c *Config) Set(path, value string) error {
	var err error
	switch path {
	case "dictionary.source":
		c.Dictionary.Source = value
	case "dictionary.cache_dir":
		c.Dictionary.CacheDir = value
	case "dictionary.refresh":
		c.Dictionary.Refresh, err = strconv.ParseBool(value)
	case "dictionary.timeout":
		err = c.Dictionary.Timeout.UnmarshalText([]byte(value))
	case "spell.max_word_length":
		c.Spell.MaxWordLength, err = strconv.Atoi(value)
	case "spell.relocate":
		c.Spell.Relocate = value
	case "spell.drain_interval":
		err = c.Spell.DrainInterval.UnmarshalText([]byte(value))
	case "spell.highlight_color":
		c.Spell.HighlightColor = value
	case "editor.tab_width":
		c.Editor.TabWidth, err = strconv.Atoi(value)
	case "editor.default_extension":
		c.Editor.DefaultExtension = value
	case "log.level":
		c.Log.Level = value
	case "log.file":
		c.Log.File = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSetting, path)
	}
	if err != nil {
		return fmt.Errorf("setting %s: %w", path, err)
	}
	return nil
}
