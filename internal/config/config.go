package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string `yaml:"project_path"`

	// Output settings
	OutputJSONFile string `yaml:"output_json_file"`
	OutputJSONDir  string `yaml:"output_json_dir"`
	JUnitFile      string `yaml:"junit_file"`
	MetricsFile    string `yaml:"metrics_file"`

	// Execution settings
	ScratchLimit int    `yaml:"scratch_limit"`
	LogLevel     string `yaml:"log_level"`

	// Database used by the mysql suite
	Database Database `yaml:"database"`

	// Command flags
	Flags Flags `yaml:"-"`
}

// Database holds MySQL connection settings
type Database struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Prefix   string `yaml:"prefix"`
}

// Flags holds command-line flags
type Flags struct {
	ConfigFile  string
	SuiteFilter string
	TestFilter  string
	ShowTests   bool
	FailFast    bool
	OnlyFailed  bool
	OpenFaills  bool
	Verbose     bool
	JUnitFile   string
	MetricsFile string
}

// New creates a new Config with defaults
func New() *Config {
	db := DefaultDatabase
	db.Prefix = DefaultDatabasePrefix
	return &Config{
		ProjectPath:    DefaultProjectPath,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		ScratchLimit:   DefaultScratchLimit,
		LogLevel:       DefaultLogLevel,
		Database:       db,
	}
}

// Load builds a config from defaults, the YAML file, .env and the environment,
// then applies flags. A missing config file is not an error unless it was named explicitly.
func Load(flags Flags) (*Config, error) {
	cfg := New()

	path := flags.ConfigFile
	if path == "" {
		path = filepath.Join(cfg.ProjectPath, DefaultConfigFile)
	}
	if err := cfg.loadFile(path); err != nil {
		if flags.ConfigFile != "" || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	// .env file might not exist, that's okay - use environment variables
	_ = godotenv.Load(filepath.Join(cfg.ProjectPath, ".env"))
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.ApplyFlags(flags)
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("GTP_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("GTP_SCRATCH_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid GTP_SCRATCH_LIMIT %q: %w", v, err)
		}
		c.ScratchLimit = n
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
		c.Database.Enabled = true
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		c.Database.Port = v
	}
	if v := os.Getenv("DB_USERNAME"); v != "" {
		c.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DB_DATABASE_PREFIX"); v != "" {
		c.Database.Prefix = v
	}
	return nil
}

// ApplyFlags stores flags and lets them override file and environment settings
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.JUnitFile != "" {
		c.JUnitFile = flags.JUnitFile
	}
	if flags.MetricsFile != "" {
		c.MetricsFile = flags.MetricsFile
	}
	if flags.Verbose {
		c.LogLevel = "debug"
	}
}

// GetOutputPath returns the full path to the output JSON file (under project so run and faills use the same file).
// Resolves to an absolute path so run and faills always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	return c.resolve(filepath.Join(c.OutputJSONDir, c.OutputJSONFile))
}

// GetJUnitPath returns the JUnit report path, or "" when disabled
func (c *Config) GetJUnitPath() string {
	if c.JUnitFile == "" {
		return ""
	}
	return c.resolve(c.JUnitFile)
}

// GetMetricsPath returns the Prometheus textfile path, or "" when disabled
func (c *Config) GetMetricsPath() string {
	if c.MetricsFile == "" {
		return ""
	}
	return c.resolve(c.MetricsFile)
}

func (c *Config) resolve(p string) string {
	if !filepath.IsAbs(p) {
		p = filepath.Join(c.ProjectPath, p)
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetDatabaseName returns the name of the database the mysql suite uses
func (c *Config) GetDatabaseName() string {
	prefix := c.Database.Prefix
	if prefix == "" {
		prefix = DefaultDatabasePrefix
	}
	return fmt.Sprintf("%s_gtp", prefix)
}

// GetDSN returns the MySQL DSN for dbName; an empty dbName connects to the server only
func (c *Config) GetDSN(dbName string) string {
	db := c.Database
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", db.User, db.Password, db.Host, db.Port, dbName)
}
