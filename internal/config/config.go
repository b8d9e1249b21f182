package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dpshade/srs-wizard/internal/layout"
	"github.com/dpshade/srs-wizard/internal/pdf"
)

// Environment variables read by Load
const (
	EnvDir             = "SRS_WIZARD_DIR"
	EnvOutputDir       = "SRS_WIZARD_OUTPUT_DIR"
	EnvPort            = "SRS_WIZARD_PORT"
	EnvFallbackCompany = "SRS_WIZARD_FALLBACK_COMPANY"
	EnvPageSize        = "SRS_WIZARD_PAGE_SIZE"
	EnvUnit            = "SRS_WIZARD_UNIT"
)

// FileName is the config file inside the data directory
const FileName = "config.yaml"

// DocumentConfig controls how documents are laid out and named
type DocumentConfig struct {
	PageSize        string  `yaml:"pageSize"`
	Unit            string  `yaml:"unit"`
	Margin          float64 `yaml:"margin"` // millimetres
	FallbackCompany string  `yaml:"fallbackCompany"`
	DefaultFileName string  `yaml:"defaultFileName"`
	DateFormat      string  `yaml:"dateFormat"`
}

// ServerConfig controls the HTTP API
type ServerConfig struct {
	Port       int
	SessionTTL time.Duration
}

// Config is the resolved application configuration
type Config struct {
	DataDir   string
	OutputDir string
	Document  DocumentConfig
	Server    ServerConfig
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		DataDir:   defaultDataDir(),
		OutputDir: ".",
		Document: DocumentConfig{
			PageSize:        "A4",
			Unit:            "mm",
			Margin:          20,
			FallbackCompany: layout.DefaultFallbackName,
			DefaultFileName: pdf.DefaultFileName,
			DateFormat:      layout.DefaultDateFormat,
		},
		Server: ServerConfig{
			Port:       8080,
			SessionTTL: 2 * time.Hour,
		},
	}
}

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".srs-wizard"
	}
	return filepath.Join(homeDir, ".srs-wizard")
}

// rawConfig distinguishes keys missing from the YAML file from explicit zero values
type rawConfig struct {
	OutputDir *string `yaml:"outputDir"`
	Document  struct {
		PageSize        *string  `yaml:"pageSize"`
		Unit            *string  `yaml:"unit"`
		Margin          *float64 `yaml:"margin"`
		FallbackCompany *string  `yaml:"fallbackCompany"`
		DefaultFileName *string  `yaml:"defaultFileName"`
		DateFormat      *string  `yaml:"dateFormat"`
	} `yaml:"document"`
	Server struct {
		Port       *int    `yaml:"port"`
		SessionTTL *string `yaml:"sessionTTL"`
	} `yaml:"server"`
}

// Load resolves the configuration: defaults, then <dataDir>/config.yaml, then a .env file in the
// working directory, then the process environment. A missing file at any layer is not an error.
func Load() (*Config, error) {
	env, err := environment(".env")
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if dir := env[EnvDir]; dir != "" {
		cfg.DataDir = dir
	}

	if err := cfg.loadFile(filepath.Join(cfg.DataDir, FileName)); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(env); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// environment merges the .env file under the process environment, which wins on conflicts
func environment(dotenv string) (map[string]string, error) {
	env := map[string]string{}
	if _, err := os.Stat(dotenv); err == nil {
		values, err := godotenv.Read(dotenv)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", dotenv, err)
		}
		for k, v := range values {
			env[k] = v
		}
	}
	for _, key := range []string{EnvDir, EnvOutputDir, EnvPort, EnvFallbackCompany, EnvPageSize, EnvUnit} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return env, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	setString(&c.OutputDir, raw.OutputDir)
	setString(&c.Document.PageSize, raw.Document.PageSize)
	setString(&c.Document.Unit, raw.Document.Unit)
	setString(&c.Document.FallbackCompany, raw.Document.FallbackCompany)
	setString(&c.Document.DefaultFileName, raw.Document.DefaultFileName)
	setString(&c.Document.DateFormat, raw.Document.DateFormat)
	if raw.Document.Margin != nil {
		c.Document.Margin = *raw.Document.Margin
	}
	if raw.Server.Port != nil {
		c.Server.Port = *raw.Server.Port
	}
	if raw.Server.SessionTTL != nil {
		ttl, err := time.ParseDuration(*raw.Server.SessionTTL)
		if err != nil {
			return fmt.Errorf("server.sessionTTL: %w", err)
		}
		c.Server.SessionTTL = ttl
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func (c *Config) applyEnv(env map[string]string) error {
	if v := env[EnvOutputDir]; v != "" {
		c.OutputDir = v
	}
	if v := env[EnvFallbackCompany]; v != "" {
		c.Document.FallbackCompany = v
	}
	if v := env[EnvPageSize]; v != "" {
		c.Document.PageSize = v
	}
	if v := env[EnvUnit]; v != "" {
		c.Document.Unit = v
	}
	if v := env[EnvPort]; v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be a number, got %q", EnvPort, v)
		}
		c.Server.Port = port
	}
	return nil
}

// Validate rejects settings the renderer or server cannot use
func (c *Config) Validate() error {
	if _, err := c.Geometry(); err != nil {
		return fmt.Errorf("document: %w", err)
	}
	if strings.TrimSpace(c.Document.FallbackCompany) == "" {
		return fmt.Errorf("document.fallbackCompany must not be empty")
	}
	if strings.TrimSpace(c.Document.DefaultFileName) == "" {
		return fmt.Errorf("document.defaultFileName must not be empty")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.SessionTTL <= 0 {
		return fmt.Errorf("server.sessionTTL must be positive")
	}
	return nil
}

// Geometry is the page geometry for the configured size, unit and margin
func (c *Config) Geometry() (layout.Geometry, error) {
	return layout.NewGeometry(c.Document.PageSize, c.Document.Unit, c.Document.Margin)
}

// LayoutOptions are the header and footer settings for a render at the given time
func (c *Config) LayoutOptions(now time.Time) layout.Options {
	return layout.Options{
		FallbackName: c.Document.FallbackCompany,
		Date:         now,
		DateFormat:   c.Document.DateFormat,
	}
}

// LogDir is where the terminal wizard appends error logs
func (c *Config) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// fileConfig is the shape written by Save
type fileConfig struct {
	OutputDir string           `yaml:"outputDir"`
	Document  DocumentConfig   `yaml:"document"`
	Server    fileServerConfig `yaml:"server"`
}

type fileServerConfig struct {
	Port       int    `yaml:"port"`
	SessionTTL string `yaml:"sessionTTL"`
}

// Save writes the configuration to <dataDir>/config.yaml
func (c *Config) Save() error {
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	out := fileConfig{OutputDir: c.OutputDir, Document: c.Document}
	out.Server.Port = c.Server.Port
	out.Server.SessionTTL = c.Server.SessionTTL.String()

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(filepath.Join(c.DataDir, FileName), data, 0644)
}
