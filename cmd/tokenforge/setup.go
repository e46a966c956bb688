package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mark3labs/tokenforge/internal/config"
)

var setupFlags struct {
	project bool
	force   bool
	network string
	native  string
	delay   string
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create tokenforge configuration file",
	Long: `Create a tokenforge configuration file with sensible defaults.

By default, creates a global config at ~/.config/tokenforge/tokenforge.yml.
Use --project to create a project-local config in the current directory.`,
	// The config being written may not load yet.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE:              runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
	setupCmd.Flags().StringVar(&setupFlags.network, "network", "", "Network name shown in the UI")
	setupCmd.Flags().StringVar(&setupFlags.native, "native-currency", "", "Native currency of the network")
	setupCmd.Flags().StringVar(&setupFlags.delay, "delay", "", "Simulated confirmation delay, e.g. 2s")
}

func runSetup(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	if !setupFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	cfg := config.Default()
	if setupFlags.network != "" {
		cfg.Network.Name = setupFlags.network
	}
	if setupFlags.native != "" {
		cfg.Network.NativeCurrency = setupFlags.native
	}
	if setupFlags.delay != "" {
		cfg.Submission.Delay = setupFlags.delay
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	var err error
	if setupFlags.project {
		err = config.WriteProject(cfg)
	} else {
		err = config.WriteGlobal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	color.Green("Config written to: %s", targetPath)
	fmt.Println()
	fmt.Println("Run 'tokenforge' to get started.")
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
