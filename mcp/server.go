package mcp

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/foodhub/foodhub-client/client"
	"github.com/foodhub/foodhub-client/internal/config"
	"github.com/foodhub/foodhub-client/internal/logger"
	"github.com/foodhub/foodhub-client/mcp/internal/handlers"
	"github.com/foodhub/foodhub-client/session"
)

const (
	endpointPath      = "/mcp"
	heartbeatInterval = 30 * time.Second
	httpReadTimeout   = 5 * time.Second
	httpIdleTimeout   = 120 * time.Second
)

// loadConfig reads FOODHUB_* variables; command line flags override them.
func loadConfig(args []string) (*config.Config, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet("foodhub-mcp-server", flag.ContinueOnError)
	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "Backend API root")
	fs.StringVar(&cfg.MCPAddr, "addr", cfg.MCPAddr, "Listen address for the HTTP transport")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug|info|warn|error")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
}

// NewServer builds the MCP server with every tool bound to store.
func NewServer(cfg *config.Config, store *session.Store) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		cfg.MCPServerName,
		cfg.MCPServerVersion,
		server.WithToolCapabilities(true),
	)

	for name, h := range map[string]toolRegisterer{
		"session": handlers.NewSessionHandler(store),
		"catalog": handlers.NewCatalogHandler(store),
		"manage":  handlers.NewManageHandler(store),
	} {
		if err := h.RegisterTools(s); err != nil {
			return nil, fmt.Errorf("failed to register %s tools: %w", name, err)
		}
	}
	return s, nil
}

// NewStore wires a session store to the backend cfg points at.
func NewStore(cfg *config.Config) *session.Store {
	return session.NewStore(client.New(
		client.WithBaseURL(cfg.BaseURL),
		client.WithHTTPTimeout(cfg.HTTPTimeout),
		client.WithDebugLogging(cfg.Debug),
	))
}

// RunMCPServer starts the MCP server, serving stdio when launched by another
// process and streamable HTTP otherwise.
func RunMCPServer() error {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		return err
	}
	// stdout belongs to the stdio transport
	logger.SetGlobal(logger.New(os.Stderr, cfg.MCPServerName, cfg.Level()).With().Caller().Logger())

	log.Info().Str("base_url", cfg.BaseURL).Msg("Creating session store")
	s, err := NewServer(cfg, NewStore(cfg))
	if err != nil {
		log.Error().Stack().Err(err).Msg("Failed to build MCP server")
		return err
	}

	if shouldUseStdio() {
		log.Info().Msg("Starting foodhub MCP server (stdio transport)")
		return server.ServeStdio(s)
	}
	return serveHTTP(cfg, s)
}

func serveHTTP(cfg *config.Config, s *server.MCPServer) error {
	log.Info().Str("addr", cfg.MCPAddr).Msg("Starting foodhub MCP server (Streamable HTTP)")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	streamSrv := server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath(endpointPath),
		server.WithHeartbeatInterval(heartbeatInterval),
	)

	srv := &http.Server{
		Addr:         cfg.MCPAddr,
		Handler:      streamSrv,
		ReadTimeout:  httpReadTimeout,
		WriteTimeout: 0, // SSE streams have no deadline
		IdleTimeout:  httpIdleTimeout,
	}

	shutdownComplete := make(chan struct{})
	go func() {
		defer close(shutdownComplete)

		sig, ok := <-sigChan
		if !ok {
			return
		}
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during HTTP server shutdown")
		}
		if err := streamSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during MCP server shutdown")
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("HTTP server error")
		return err
	}

	<-shutdownComplete
	log.Info().Msg("MCP server shutdown complete")
	return nil
}

// shouldUseStdio determines whether to use stdio transport based on environment
func shouldUseStdio() bool {
	if os.Getenv("MCP_STDIO") == "true" {
		return true
	}
	if os.Getenv("MCP_HTTP") == "true" {
		return false
	}

	// Auto-detect: Use stdio if stdin is not a terminal (launched by another process)
	if fileInfo, err := os.Stdin.Stat(); err == nil {
		return (fileInfo.Mode() & os.ModeCharDevice) == 0
	}
	return false
}
