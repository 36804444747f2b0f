package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	ConfigFileName = "n8nharden.yaml"

	DefaultWorkflowsDir = "n8n-workflows"
	DefaultReportPath   = "workflow_enhancement_report.md"
	DefaultPattern      = "*.json"

	EnvWorkflowsDir = "N8NHARDEN_WORKFLOWS_DIR"
	EnvReportPath   = "N8NHARDEN_REPORT_PATH"
	EnvPattern      = "N8NHARDEN_PATTERN"
)

// ErrWorkflowsDirNotFound means the configured workflows directory is missing.
var ErrWorkflowsDirNotFound = errors.New("workflows directory not found")

// Config controls where workflows are read from and where the report goes.
// Every field is optional; a run without a config file uses the defaults.
type Config struct {
	WorkflowsDir string `yaml:"workflows_dir"`
	ReportPath   string `yaml:"report_path"`
	Pattern      string `yaml:"pattern"`
}

// ConfigPath is the config file consulted by Load.
var ConfigPath string

func init() {
	// Project-local config wins over the per-user one.
	pwd, _ := os.Getwd()
	projectConfig := filepath.Join(pwd, ConfigFileName)
	if _, err := os.Stat(projectConfig); err == nil {
		ConfigPath = projectConfig
		return
	}
	homeDir, _ := os.UserHomeDir()
	ConfigPath = filepath.Join(homeDir, ".n8nharden", "config.yaml")
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		WorkflowsDir: DefaultWorkflowsDir,
		ReportPath:   DefaultReportPath,
		Pattern:      DefaultPattern,
	}
}

// Load reads ConfigPath when it exists and applies environment overrides.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath)
}

// LoadFrom reads the YAML file at path over the defaults, then applies
// environment overrides. A missing file is not an error.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.finalize()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvWorkflowsDir); v != "" {
		c.WorkflowsDir = v
	}
	if v := os.Getenv(EnvReportPath); v != "" {
		c.ReportPath = v
	}
	if v := os.Getenv(EnvPattern); v != "" {
		c.Pattern = v
	}
}

// finalize restores defaults for fields a config file set to empty.
func (c *Config) finalize() {
	d := Default()
	if c.WorkflowsDir == "" {
		c.WorkflowsDir = d.WorkflowsDir
	}
	if c.ReportPath == "" {
		c.ReportPath = d.ReportPath
	}
	if c.Pattern == "" {
		c.Pattern = d.Pattern
	}
}

// CheckWorkflowsDir verifies that WorkflowsDir exists and is a directory.
func (c *Config) CheckWorkflowsDir() error {
	info, err := os.Stat(c.WorkflowsDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrWorkflowsDirNotFound, c.WorkflowsDir)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrWorkflowsDirNotFound, c.WorkflowsDir)
	}
	return nil
}
