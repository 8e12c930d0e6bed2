package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"n8n-mcp-server/internal/config"
	"n8n-mcp-server/internal/logging"
	"n8n-mcp-server/internal/mcp"
	"n8n-mcp-server/internal/n8n"
	"n8n-mcp-server/internal/tls"
)

var (
	flagConfig    string
	flagDebug     bool
	flagTransport string
	flagAddr      string
	flagTLS       bool
	flagTLSCert   string
	flagTLSKey    string
	flagTLSHosts  []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "n8n-mcp-server",
		Short:         "MCP server exposing n8n workflows and executions as tools and resources",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to a YAML config file (env vars take precedence)")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Enable debug logging and API request tracing")
	rootCmd.Flags().StringVar(&flagTransport, "transport", "stdio", "Transport to serve on: stdio or http")
	rootCmd.Flags().StringVar(&flagAddr, "addr", ":8080", "Listen address for the http transport")
	rootCmd.Flags().BoolVar(&flagTLS, "tls", false, "Serve the http transport over TLS")
	rootCmd.Flags().StringVar(&flagTLSCert, "tls-cert", "server.crt", "TLS certificate file")
	rootCmd.Flags().StringVar(&flagTLSKey, "tls-key", "server.key", "TLS key file")
	rootCmd.Flags().StringSliceVar(&flagTLSHosts, "tls-host", []string{"localhost"}, "Hostnames for a generated self-signed certificate")

	if err := rootCmd.Execute(); err != nil {
		logging.New(false).Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDebug {
		cfg.Debug = true
	}

	logger := logging.New(cfg.Debug)
	logger.Info("starting n8n MCP server", "api_url", cfg.APIURL, "transport", flagTransport)

	client := n8n.NewClient(cfg.ClientConfig(), logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := client.CheckConnectivity(ctx); err != nil {
		logger.Error("failed to connect to n8n API", "error", err)
		return err
	}
	logger.Info("connected to n8n API")

	srv := mcp.NewServer(client, logger)

	if flagTransport == "http" {
		return serveHTTP(srv, logger)
	}

	logger.Info("n8n MCP server running on stdio")
	return srv.ServeStdio()
}

func serveHTTP(srv *mcp.Server, logger *logging.Logger) error {
	e := mcp.NewHTTPServer(srv)

	httpServer := &http.Server{
		Addr:         flagAddr,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE streams stay open
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server listening", "address", flagAddr, "tls", flagTLS)
		if flagTLS {
			if _, err := os.Stat(flagTLSCert); os.IsNotExist(err) {
				if err := tls.GenerateSelfSignedCert(flagTLSCert, flagTLSKey, flagTLSHosts); err != nil {
					serverErrors <- err
					return
				}
				logger.Info("generated self-signed certificate", "cert", flagTLSCert)
			}
			serverErrors <- httpServer.ListenAndServeTLS(flagTLSCert, flagTLSKey)
			return
		}
		serverErrors <- httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case sig := <-shutdown:
		logger.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			logger.Error("server shutdown error", "error", err)
			if err := httpServer.Close(); err != nil {
				logger.Error("server close error", "error", err)
			}
		}
		logger.Info("server stopped gracefully")
	}
	return nil
}
