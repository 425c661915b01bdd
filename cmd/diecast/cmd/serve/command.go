// Package serve provides the HTTP API server command.
package serve

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/diecast/internal/cmd/application"
	"github.com/agentstation/diecast/internal/cmd/emoji"
	"github.com/agentstation/diecast/internal/server"
	"github.com/agentstation/diecast/pkg/constants"
)

// NewCommand creates the serve command using app context.
func NewCommand(app application.Application) *cobra.Command {
	defaults := server.DefaultConfig()

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		GroupID: "management",
		Short:   "Start the REST API server with WebSocket and SSE support",
		Long: `Start a REST API server over the collection.

Features:
  - Search, facets and collection views with response caching
  - Collection changes (owned, wanted, quantities, import)
  - Series and case browsing
  - WebSocket (/ws) and Server-Sent Events (/events) change feeds
  - Rate limiting (requests per minute per IP)
  - API key authentication for writes (optional)
  - CORS support for web applications
  - Graceful shutdown with connection draining

The API key is read from --api-key or DIECAST_API_KEY.`,
		Example: `  # Start on default port 8080
  diecast serve

  # Start on custom port with authentication
  DIECAST_API_KEY=secret diecast serve --port 3000 --auth

  # Enable CORS for specific origins
  diecast serve --cors-origins "https://example.com,https://app.example.com"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := parseConfig(cmd, app)
			if err != nil {
				return err
			}
			return runServer(cmd, app, cfg)
		},
	}

	cmd.Flags().Int("port", defaults.Port, "Server port")
	cmd.Flags().String("host", defaults.Host, "Bind address")
	cmd.Flags().String("prefix", defaults.PathPrefix, "API path prefix")

	cmd.Flags().Bool("cors", false, "Enable CORS for all origins")
	cmd.Flags().StringSlice("cors-origins", []string{}, "Allowed CORS origins (comma-separated)")

	cmd.Flags().Bool("auth", false, "Require an API key for changes")
	cmd.Flags().String("auth-header", defaults.AuthHeader, "Authentication header name")
	cmd.Flags().String("api-key", "", "API key (default from DIECAST_API_KEY)")

	cmd.Flags().Int("rate-limit", defaults.RateLimit, "Requests per minute per IP (0 to disable)")
	cmd.Flags().Duration("cache-ttl", defaults.CacheTTL, "Response cache TTL")

	cmd.Flags().Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", defaults.WriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")

	return cmd
}

// runServer starts the API server and blocks until the command context
// is cancelled or the listener fails.
func runServer(cmd *cobra.Command, app application.Application, cfg server.Config) error {
	logger := app.Logger()

	garage, err := app.Garage()
	if err != nil {
		return err
	}

	srv, err := server.New(garage, cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	srv.Start()

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	httpServer := srv.HTTPServer(addr)

	logger.Info().
		Str("addr", addr).
		Str("prefix", cfg.PathPrefix).
		Bool("cors", cfg.CORSEnabled).
		Bool("auth", cfg.AuthEnabled).
		Int("rate_limit", cfg.RateLimit).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("Server starting")

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Serving diecast API on http://%s%s\n", addr, cfg.PathPrefix)
	fmt.Fprintln(out, "   Press Ctrl+C to stop")

	g, gctx := errgroup.WithContext(cmd.Context())

	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()

		httpErr := httpServer.Shutdown(ctx)
		srvErr := srv.Shutdown(ctx)
		if err := stderrors.Join(httpErr, srvErr); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("Server stopped gracefully")
		fmt.Fprintf(out, "%s Server stopped\n", emoji.Stop)
		return nil
	})

	return g.Wait()
}

// parseConfig parses command flags into server configuration.
func parseConfig(cmd *cobra.Command, app application.Application) (server.Config, error) {
	cfg := server.Config{
		Host:            mustGetString(cmd, "host"),
		Port:            mustGetInt(cmd, "port"),
		PathPrefix:      mustGetString(cmd, "prefix"),
		CORSEnabled:     mustGetBool(cmd, "cors"),
		CORSOrigins:     mustGetStringSlice(cmd, "cors-origins"),
		AuthEnabled:     mustGetBool(cmd, "auth"),
		AuthHeader:      mustGetString(cmd, "auth-header"),
		APIKey:          mustGetString(cmd, "api-key"),
		RateLimit:       mustGetInt(cmd, "rate-limit"),
		CacheTTL:        mustGetDuration(cmd, "cache-ttl"),
		ReadTimeout:     mustGetDuration(cmd, "read-timeout"),
		WriteTimeout:    mustGetDuration(cmd, "write-timeout"),
		IdleTimeout:     mustGetDuration(cmd, "idle-timeout"),
		IncludeOldCases: app.IncludeOldCases(),
	}

	// Environment overrides for container deployments
	if envPort := os.Getenv("HTTP_PORT"); envPort != "" && !cmd.Flags().Changed("port") {
		p, err := parsePort(envPort)
		if err != nil {
			return cfg, err
		}
		cfg.Port = p
	}
	if envHost := os.Getenv("HTTP_HOST"); envHost != "" && !cmd.Flags().Changed("host") {
		cfg.Host = envHost
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("DIECAST_API_KEY")
	}

	if cfg.AuthEnabled && cfg.APIKey == "" {
		return cfg, fmt.Errorf("--auth requires an API key (--api-key or DIECAST_API_KEY)")
	}
	return cfg, nil
}

// parsePort safely parses a port string to integer.
func parsePort(portStr string) (int, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, fmt.Errorf("invalid port number: %s", portStr)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port out of range: %d", port)
	}
	return port, nil
}

func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

func mustGetStringSlice(cmd *cobra.Command, name string) []string {
	val, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

func mustGetDuration(cmd *cobra.Command, name string) time.Duration {
	val, err := cmd.Flags().GetDuration(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
