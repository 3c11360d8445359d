// Package main is the entry point for the drover-mcp server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/jbweber/drover/internal/config"
	"github.com/jbweber/drover/internal/mcptools"
	"github.com/jbweber/drover/internal/vagrant"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load("")
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	tokenBefore := cfg.MCP.AuthToken
	token, err := config.EnsureAuthToken(cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("could not generate auth token, running without authentication")
	} else if tokenBefore == "" {
		logger.Info().Str("token", token).Msg("generated auth token, set DROVER_MCP_AUTH_TOKEN to persist it")
	}

	audit, closeAudit := openAuditLogger(logger, cfg)
	defer closeAudit()

	confirm := mcptools.NewConfirmationTracker(mcptools.DestructiveTools)
	factory := mcptools.NewClientFactory(clientOptions(cfg, logger)...)

	mcpServer := server.NewMCPServer(
		"drover-mcp",
		version,
		server.WithToolCapabilities(false),
	)
	mcptools.RegisterAll(mcpServer, mcptools.VagrantTools(factory, confirm, audit))

	// Build the Streamable HTTP server and wrap it with auth middleware.
	httpHandler := server.NewStreamableHTTPServer(mcpServer)
	authMiddleware := mcptools.NewAuthMiddleware(cfg.MCP.AuthToken)
	wrappedHandler := authMiddleware(httpHandler)

	addr := fmt.Sprintf(":%d", cfg.MCP.Port)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           wrappedHandler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info().
			Str("addr", addr).
			Str("version", version).
			Str("commit", commit).
			Msg("drover-mcp listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-stop
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	logger.Info().Msg("server stopped")
}

// clientOptions translates the tool configuration into vagrant client
// options.
func clientOptions(cfg *config.ToolConfig, logger zerolog.Logger) []vagrant.Option {
	opts := []vagrant.Option{
		vagrant.WithLogger(logger),
		vagrant.WithQuietStderr(cfg.QuietStderrOrDefault()),
	}
	if cfg.Vagrant.Executable != "" {
		opts = append(opts, vagrant.WithExecutable(cfg.Vagrant.Executable))
	}
	if env := cfg.PassthroughEnv(); len(env) > 0 {
		opts = append(opts, vagrant.WithEnv(env...))
	}
	return opts
}

// openAuditLogger opens the audit log when auditing is enabled, first
// rotating a file that outgrew the configured cap. The returned func
// closes the log file.
func openAuditLogger(logger zerolog.Logger, cfg *config.ToolConfig) (*mcptools.AuditLogger, func()) {
	if !cfg.MCP.Audit.Enabled {
		return nil, func() {}
	}

	path := cfg.MCP.Audit.LogPath
	if cfg.MCP.Audit.MaxSizeMB > 0 {
		if info, err := os.Stat(path); err == nil && info.Size() > int64(cfg.MCP.Audit.MaxSizeMB)*1024*1024 {
			if err := os.Rename(path, path+".old"); err != nil {
				logger.Warn().Err(err).Str("path", path).Msg("could not rotate audit log")
			}
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("could not open audit log, audit logging disabled")
		return nil, func() {}
	}

	return mcptools.NewAuditLogger(f), func() { _ = f.Close() }
}
