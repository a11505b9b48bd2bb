package symgen

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	version "github.com/mcuadros/go-version"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/symlib"
)

// Environment variables read by LoadConfig
const (
	EnvFormatVersion    = "OTSYM_FORMAT_VERSION"
	EnvGenerator        = "OTSYM_GENERATOR"
	EnvGeneratorVersion = "OTSYM_GENERATOR_VERSION"
	EnvWorkers          = "OTSYM_WORKERS"
)

// Oldest editor whose files we write (KiCad 6)
const minGeneratorVersion = "6.0"

// Config controls the library header and batch parallelism.
type Config struct {
	// Library header
	FormatVersion    int    // (version N), default 20231120 (KiCad 8)
	Generator        string // (generator "..."), default kicad_symbol_editor
	GeneratorVersion string // (generator_version "..."), default 8.0

	// Batch rendering
	Workers int // Records rendered concurrently (default: GOMAXPROCS)
}

// DefaultConfig returns the KiCad 8 header and one worker per CPU.
func DefaultConfig() *Config {
	return &Config{
		FormatVersion:    20231120,
		Generator:        "kicad_symbol_editor",
		GeneratorVersion: "8.0",
		Workers:          runtime.GOMAXPROCS(0),
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.FormatVersion < symlib.MinSupportedVersion {
		return fmt.Errorf("format version %d is older than %d", c.FormatVersion, symlib.MinSupportedVersion)
	}
	if strings.TrimSpace(c.Generator) == "" {
		return errors.New("generator must not be empty")
	}
	if !isDottedNumber(c.GeneratorVersion) {
		return fmt.Errorf("invalid generator version %q", c.GeneratorVersion)
	}
	if version.CompareSimple(c.GeneratorVersion, minGeneratorVersion) < 0 {
		return fmt.Errorf("generator version %s is older than %s", c.GeneratorVersion, minGeneratorVersion)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

// Header returns the library header described by the configuration
func (c *Config) Header() symlib.Header {
	return symlib.Header{
		Version:          c.FormatVersion,
		Generator:        c.Generator,
		GeneratorVersion: c.GeneratorVersion,
	}
}

// LoadConfig starts from DefaultConfig and applies OTSYM_* overrides. Values
// come from the process environment first, then from the given .env files.
// The process environment is not modified.
func LoadConfig(envFiles ...string) (*Config, error) {
	fileEnv := map[string]string{}
	if len(envFiles) > 0 {
		var err error
		fileEnv, err = godotenv.Read(envFiles...)
		if err != nil {
			return nil, fmt.Errorf("failed to read env files: %w", err)
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok && v != ""
	}

	cfg := DefaultConfig()

	if v, ok := lookup(EnvFormatVersion); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvFormatVersion, v, err)
		}
		cfg.FormatVersion = n
	}
	if v, ok := lookup(EnvGenerator); ok {
		cfg.Generator = v
	}
	if v, ok := lookup(EnvGeneratorVersion); ok {
		cfg.GeneratorVersion = v
	}
	if v, ok := lookup(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvWorkers, v, err)
		}
		cfg.Workers = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func isDottedNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if _, err := strconv.Atoi(part); err != nil {
			return false
		}
	}
	return true
}
