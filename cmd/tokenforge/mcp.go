package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mark3labs/tokenforge/internal/logger"
	"github.com/mark3labs/tokenforge/internal/mcpserver"
)

var mcpFlags struct {
	port int
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the calculators and validators as MCP tools",
	Long: `Start an MCP server over streamable HTTP exposing the issuance and
liquidity calculators, the form validators and the help topics. The server
runs until interrupted.`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().IntVar(&mcpFlags.port, "port", -1, "Port to listen on (default: mcp.port from config, 0 picks a free port)")
}

func runMCP(cmd *cobra.Command, args []string) error {
	port := cfg.MCP.Port
	if mcpFlags.port >= 0 {
		port = mcpFlags.port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := mcpserver.New(cfg.Network.NativeCurrency)
	if _, err := srv.Start(ctx, port); err != nil {
		return fmt.Errorf("failed to start MCP server: %w", err)
	}
	defer func() {
		if err := srv.Stop(); err != nil {
			logger.Warn("stopping MCP server: %v", err)
		}
	}()

	fmt.Printf("MCP server listening on %s\n", color.CyanString(srv.URL()))
	faint.Println("Press Ctrl+C to stop.")

	<-ctx.Done()
	logger.Info("shutting down MCP server")
	return nil
}
