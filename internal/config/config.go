// Package config provides centralized configuration management using Viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mark3labs/tokenforge/internal/logger"
)

// Config holds all configuration values for tokenforge.
type Config struct {
	LogLevel   string           `mapstructure:"log_level" yaml:"log_level"`
	LogFile    string           `mapstructure:"log_file" yaml:"log_file"`
	Network    NetworkConfig    `mapstructure:"network" yaml:"network"`
	Wallet     WalletConfig     `mapstructure:"wallet" yaml:"wallet"`
	Submission SubmissionConfig `mapstructure:"submission" yaml:"submission"`
	MCP        MCPConfig        `mapstructure:"mcp" yaml:"mcp"`
}

// NetworkConfig describes the simulated network.
type NetworkConfig struct {
	Name           string   `mapstructure:"name" yaml:"name"`
	NativeCurrency string   `mapstructure:"native_currency" yaml:"native_currency"`
	PairingTokens  []string `mapstructure:"pairing_tokens" yaml:"pairing_tokens"`
}

// WalletConfig describes the mock wallet.
type WalletConfig struct {
	Address string   `mapstructure:"address" yaml:"address"`
	Tokens  []string `mapstructure:"tokens" yaml:"tokens"`
}

// SubmissionConfig tunes the simulated transaction.
type SubmissionConfig struct {
	// Delay is a Go duration string such as "2s".
	Delay string `mapstructure:"delay" yaml:"delay"`
	// Fail rejects this many submissions before letting one through.
	Fail int `mapstructure:"fail" yaml:"fail"`
}

// MCPConfig configures the calculator tool server.
type MCPConfig struct {
	// Port 0 picks a free port.
	Port int `mapstructure:"port" yaml:"port"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Network: NetworkConfig{
			Name:           "devnet",
			NativeCurrency: "EGLD",
			PairingTokens:  []string{"EGLD", "USDC", "WEGLD"},
		},
		Wallet: WalletConfig{
			Tokens: []string{"MYT", "DEMO", "TEST"},
		},
		Submission: SubmissionConfig{
			Delay: "2s",
		},
	}
}

// envKeys are bound explicitly so nested keys resolve from the environment.
var envKeys = []string{
	"log_level",
	"log_file",
	"network.name",
	"network.native_currency",
	"network.pairing_tokens",
	"wallet.address",
	"wallet.tokens",
	"submission.delay",
	"submission.fail",
	"mcp.port",
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars (.env included) > project config > XDG global config > defaults
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("tokenforge")

	def := Default()
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("network.name", def.Network.Name)
	v.SetDefault("network.native_currency", def.Network.NativeCurrency)
	v.SetDefault("network.pairing_tokens", def.Network.PairingTokens)
	v.SetDefault("wallet.address", def.Wallet.Address)
	v.SetDefault("wallet.tokens", def.Wallet.Tokens)
	v.SetDefault("submission.delay", def.Submission.Delay)
	v.SetDefault("submission.fail", def.Submission.Fail)
	v.SetDefault("mcp.port", def.MCP.Port)

	v.SetEnvPrefix("TOKENFORGE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range envKeys {
		env := "TOKENFORGE_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.normalize()

	return &cfg, nil
}

// loadDotEnv reads ./.env when present. Variables already set win.
func loadDotEnv() error {
	if !fileExists(DotEnvPath) {
		return nil
	}
	if err := godotenv.Load(DotEnvPath); err != nil {
		return fmt.Errorf("loading %s: %w", DotEnvPath, err)
	}
	logger.Debug("loaded environment from %s", DotEnvPath)
	return nil
}

// DotEnvPath is the environment file read before configuration.
const DotEnvPath = ".env"

func (c *Config) normalize() {
	c.Network.NativeCurrency = strings.ToUpper(strings.TrimSpace(c.Network.NativeCurrency))
	c.Network.PairingTokens = upperAll(c.Network.PairingTokens)
	c.Wallet.Tokens = upperAll(c.Wallet.Tokens)
}

func upperAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SubmitDelay parses Submission.Delay. Empty means zero, which callers
// treat as the default delay.
func (c *Config) SubmitDelay() (time.Duration, error) {
	if c.Submission.Delay == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Submission.Delay)
	if err != nil {
		return 0, fmt.Errorf("submission.delay: %w", err)
	}
	return d, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.Network.NativeCurrency == "" {
		errs = append(errs, errors.New("network.native_currency is required"))
	}
	if d, err := c.SubmitDelay(); err != nil {
		errs = append(errs, err)
	} else if d < 0 {
		errs = append(errs, errors.New("submission.delay must not be negative"))
	}
	if c.Submission.Fail < 0 {
		errs = append(errs, errors.New("submission.fail must not be negative"))
	}
	if c.MCP.Port < 0 || c.MCP.Port > 65535 {
		errs = append(errs, fmt.Errorf("mcp.port %d out of range", c.MCP.Port))
	}
	return errors.Join(errs...)
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/tokenforge/tokenforge.yml or $XDG_CONFIG_HOME/tokenforge/tokenforge.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tokenforge", "tokenforge.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tokenforge", "tokenforge.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "tokenforge.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
