// Package mcpserver exposes the calculators and validators as MCP tools so
// agents can price an issuance or a pool without driving the TUI.
package mcpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mark3labs/tokenforge/internal/liquidity"
	"github.com/mark3labs/tokenforge/internal/logger"
)

// Server manages an embedded MCP HTTP server.
type Server struct {
	native     string
	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer
	stdServer  *http.Server
	port       int
	mu         sync.Mutex
}

// New creates a server for a network whose native currency is native
// (empty means EGLD). It is not started until Start is called.
func New(native string) *Server {
	if native == "" {
		native = liquidity.DefaultNativeCurrency
	}
	s := &Server{native: native}
	s.mcpServer = server.NewMCPServer(
		"tokenforge-calculator",
		"1.0.0",
		server.WithToolCapabilities(true),
	)
	s.registerTools()
	return s
}

// Start listens on 127.0.0.1:port (0 picks a free port) and serves in the
// background. It returns the bound port.
func (s *Server) Start(ctx context.Context, port int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer != nil {
		return 0, fmt.Errorf("server already started")
	}

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return 0, fmt.Errorf("failed to listen: %w", err)
	}
	s.port = listener.Addr().(*net.TCPAddr).Port

	mux := http.NewServeMux()
	s.httpServer = server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithStateLess(true),
	)
	mux.Handle("/mcp", s.httpServer)
	s.stdServer = &http.Server{Handler: mux}

	logger.Debug("starting MCP server on port %d", s.port)
	stdServer := s.stdServer
	go func() {
		if err := stdServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("MCP server error: %v", err)
		}
	}()

	return s.port, nil
}

// Stop shuts the HTTP server down. Stopping a stopped server is a no-op.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer == nil {
		return nil
	}

	logger.Debug("stopping MCP server")
	if err := s.stdServer.Shutdown(context.Background()); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}
	s.stdServer = nil
	s.httpServer = nil
	return nil
}

// URL returns the HTTP URL for the MCP endpoint.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("http://localhost:%d/mcp", s.port)
}
