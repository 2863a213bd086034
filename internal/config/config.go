package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pagevault/pagevault/internal/clierr"
	"github.com/pagevault/pagevault/internal/filename"
)

const fileMode = 0o600

// Sentinel errors.
var (
	ErrNotFound = errors.New("no archive found (run 'pagevault init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

// Config represents the archive configuration.
type Config struct {
	Version     int            `yaml:"version"`
	IncomingDir string         `yaml:"incoming_dir"`
	Filename    FilenameConfig `yaml:"filename"`
	Capture     CaptureConfig  `yaml:"capture"`

	// dir is the absolute path to the archive directory (not serialized).
	dir string `yaml:"-"`
}

// FilenameConfig holds the byte budgets for synthesized filenames.
type FilenameConfig struct {
	TotalBytes   int    `yaml:"total_bytes"`
	CeilingBytes int    `yaml:"ceiling_bytes"`
	MinContent   int    `yaml:"min_content"`
	Extension    string `yaml:"extension"`
}

// CaptureConfig holds page capture settings.
type CaptureConfig struct {
	DockerImage     string `yaml:"docker_image"`
	Timeout         string `yaml:"timeout"`
	RequestInterval string `yaml:"request_interval"`
	MaxRetries      int    `yaml:"max_retries"`
	CookiesFile     string `yaml:"cookies_file,omitempty"`
}

// Dir returns the absolute path to the archive directory.
func (c *Config) Dir() string {
	return c.dir
}

// IncomingPath returns the absolute path to the incoming directory.
func (c *Config) IncomingPath() string {
	if filepath.IsAbs(c.IncomingDir) {
		return c.IncomingDir
	}
	return filepath.Join(c.dir, c.IncomingDir)
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	return &Config{
		Version:     CurrentVersion,
		IncomingDir: DefaultIncomingDir,
		Filename: FilenameConfig{
			TotalBytes:   DefaultTotalBytes,
			CeilingBytes: DefaultCeilingBytes,
			MinContent:   DefaultMinContent,
			Extension:    DefaultExtension,
		},
		Capture: CaptureConfig{
			DockerImage:     DefaultDockerImage,
			Timeout:         DefaultCaptureTimeout,
			RequestInterval: DefaultRequestInterval,
			MaxRetries:      DefaultMaxRetries,
		},
	}
}

// SetDir sets the archive directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// Budget returns the filename byte budget derived from the config.
func (c *Config) Budget() filename.Budget {
	return filename.Budget{
		TotalBytes:   c.Filename.TotalBytes,
		CeilingBytes: c.Filename.CeilingBytes,
		MinContent:   c.Filename.MinContent,
		ExtBytes:     len(c.Filename.Extension),
	}
}

// CaptureTimeout parses the capture timeout string into a time.Duration.
// Returns the default if the field is empty or unparseable.
func (c *Config) CaptureTimeout() time.Duration {
	return parseDurationOr(c.Capture.Timeout, DefaultCaptureTimeout)
}

// RequestInterval parses the request interval string into a time.Duration.
// Returns the default if the field is empty or unparseable.
func (c *Config) RequestInterval() time.Duration {
	return parseDurationOr(c.Capture.RequestInterval, DefaultRequestInterval)
}

func parseDurationOr(value, fallback string) time.Duration {
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	d, _ := time.ParseDuration(fallback)
	return d
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if c.IncomingDir == "" {
		return fmt.Errorf("%w: incoming_dir is required", ErrInvalid)
	}
	if err := c.validateFilename(); err != nil {
		return err
	}
	return c.validateCapture()
}

func (c *Config) validateFilename() error {
	f := c.Filename
	if f.TotalBytes <= 0 {
		return fmt.Errorf("%w: filename.total_bytes must be > 0", ErrInvalid)
	}
	if f.CeilingBytes <= 0 {
		return fmt.Errorf("%w: filename.ceiling_bytes must be > 0", ErrInvalid)
	}
	if f.TotalBytes > f.CeilingBytes {
		return fmt.Errorf("%w: filename.total_bytes %d exceeds ceiling_bytes %d",
			ErrInvalid, f.TotalBytes, f.CeilingBytes)
	}
	if f.MinContent < 0 {
		return fmt.Errorf("%w: filename.min_content must be >= 0", ErrInvalid)
	}
	if f.Extension != "" && !strings.HasPrefix(f.Extension, ".") {
		return fmt.Errorf("%w: filename.extension must start with a dot", ErrInvalid)
	}
	return nil
}

func (c *Config) validateCapture() error {
	if c.Capture.DockerImage == "" {
		return fmt.Errorf("%w: capture.docker_image is required", ErrInvalid)
	}
	if c.Capture.Timeout != "" {
		if _, err := time.ParseDuration(c.Capture.Timeout); err != nil {
			return fmt.Errorf("%w: invalid capture.timeout %q: %w", ErrInvalid, c.Capture.Timeout, err)
		}
	}
	if c.Capture.RequestInterval != "" {
		if _, err := time.ParseDuration(c.Capture.RequestInterval); err != nil {
			return fmt.Errorf("%w: invalid capture.request_interval %q: %w",
				ErrInvalid, c.Capture.RequestInterval, err)
		}
	}
	if c.Capture.MaxRetries < 1 {
		return fmt.Errorf("%w: capture.max_retries must be >= 1", ErrInvalid)
	}
	return nil
}

// Init creates a new archive in the given directory with default settings.
// It creates the archive directory, the incoming subdirectory, and the
// config file.
func Init(dir string) (*Config, error) {
	const dirMode = 0o750

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg := NewDefault()
	cfg.SetDir(absDir)

	if err := os.MkdirAll(cfg.IncomingPath(), dirMode); err != nil {
		return nil, fmt.Errorf("creating incoming directory: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads and validates a config from the given archive directory.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.dir = absDir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FindDir walks upward from startDir looking for an archive directory
// containing config.yml. Returns the absolute path to the archive directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		// Also check if we're inside the archive directory itself.
		candidate = filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", clierr.New(clierr.ConfigNotFound,
				"no archive found (run 'pagevault init' to create one)")
		}
		dir = parent
	}
}
