package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/mark3labs/tokenforge/internal/config"
	"github.com/mark3labs/tokenforge/internal/logger"
	"github.com/mark3labs/tokenforge/internal/tui"
	"github.com/mark3labs/tokenforge/internal/tui/theme"
)

const (
	logoText1 = "▀█▀ █▀█ █▄▀ █▀▀ █▄ █ █▀▀ █▀█ █▀█ █▀▀ █▀▀"
	logoText2 = " █  █▄█ █ █ ██▄ █ ▀█ █▀  █▄█ █▀▄ █▄█ ██▄"
)

// Version set via ldflags during build
var version = "dev"

// cfg is loaded before any command runs.
var cfg *config.Config

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "tokenforge",
	Short:             "Issue tokens and seed liquidity pools against a simulated network",
	PersistentPreRunE: loadConfig,
	RunE:              runHome,
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.Current()
	line1 := theme.Gradient(logoText1, t.Primary, t.Tertiary, 0)
	line2 := theme.Gradient(logoText2, t.Primary, t.Tertiary, 0)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

tokenforge walks you through issuing a token and providing its first
liquidity. The wallet is a mock and transactions are simulated: nothing is
signed or broadcast.

Configuration is read from ~/.config/tokenforge/tokenforge.yml, then
./tokenforge.yml, then TOKENFORGE_* environment variables (a ./.env file
is loaded first).`

	rootCmd.AddCommand(issueCmd)
	rootCmd.AddCommand(liquidityCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(setupCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := logger.Configure(loaded.LogLevel, loaded.LogFile); err != nil {
		return fmt.Errorf("failed to configure logger: %w", err)
	}
	cfg = loaded
	configureColor(os.Stdout, os.Environ())
	if !config.Exists() {
		logger.Debug("no config file at %s or %s, using defaults", config.GlobalPath(), config.ProjectPath())
	}
	logger.Debug("config loaded: network=%s native=%s", cfg.Network.Name, cfg.Network.NativeCurrency)
	return nil
}

func runHome(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cfg, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	return tui.Run(tui.Options{
		Wallet:       rt.wallet,
		Bus:          rt.bus,
		Network:      cfg.Network.Name,
		NewIssuance:  rt.newIssuance,
		NewLiquidity: rt.newLiquidity,
	})
}
