package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file syntax.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "toml"
}

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Load reads and validates the file at path. A missing file yields the
// defaults. Validation problems are returned alongside the loaded
// configuration so callers can decide whether to continue.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg, err := Parse(data, format, path)
	if err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// Parse decodes data over the defaults. source names the input in errors.
func Parse(data []byte, format Format, source string) (*Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	// Lists replace the defaults rather than merging into them.
	cfg.Shortcuts = nil
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, cfg)
	default:
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, parseError(source, err)
	}
	if cfg.Shortcuts == nil && !declaresShortcuts(data) {
		cfg.Shortcuts = Default().Shortcuts
	}
	return cfg, nil
}

// declaresShortcuts reports whether the input names the shortcuts key,
// so an explicitly empty list is kept empty.
func declaresShortcuts(data []byte) bool {
	return shortcutsKey.Match(data)
}

var (
	shortcutsKey = regexp.MustCompile(`(?m)^\s*(\[\[shortcuts\]\]|shortcuts\s*[=:])`)
	yamlLine     = regexp.MustCompile(`line (\d+)`)
)

func parseError(source string, err error) *ParseError {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		pe.Line, pe.Column = derr.Position()
		pe.Message = derr.Error()
		return pe
	}
	if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
		pe.Line, _ = strconv.Atoi(m[1])
	}
	return pe
}

// Marshal encodes cfg in format.
func Marshal(cfg *Config, format Format) ([]byte, error) {
	if format == FormatYAML {
		return yaml.Marshal(cfg)
	}
	return toml.Marshal(cfg)
}
