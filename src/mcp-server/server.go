// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/H0llyW00dzZ/x509-client/src/config"
	"github.com/H0llyW00dzZ/x509-client/src/logger"
	"github.com/H0llyW00dzZ/x509-client/src/mcp-server/templates"
	"github.com/H0llyW00dzZ/x509-client/src/metrics"
	"github.com/H0llyW00dzZ/x509-client/src/version"
	x509client "github.com/H0llyW00dzZ/x509-client/src/x509/client"
)

var appVersion = version.Version // default version

// GetVersion returns the current version of the MCP server.
//
// The version is initially set to the default from the version package,
// but can be overridden when calling Run() with a specific version string.
func GetVersion() string {
	return appVersion
}

// Run starts the MCP server on stdin and stdout.
//
// Parameters:
//   - version: Version string to set for the server (e.g., "0.1.0")
//
// Returns:
//   - error: Server startup or runtime error, or graceful shutdown signal
//
// Command-line flags are read from os.Args; see [NewCommand]. Configuration is
// loaded from the --config file or the file named by X509_CLIENT_CONFIG_FILE,
// falling back to defaults. The server stops on SIGINT or SIGTERM and then
// returns an error wrapping [context.Canceled].
func Run(version string) error {
	appVersion = version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewCommand(version).ExecuteContext(ctx)
}

// serve builds the server and runs it over the given streams until ctx is
// done or in is exhausted. Diagnostics go to errOut.
func serve(ctx context.Context, cfg *config.Config, version string, in io.Reader, out, errOut io.Writer) error {
	s, err := newServer(cfg, version, logger.NewMCPLogger(errOut, true), prometheus.NewRegistry())
	if err != nil {
		return err
	}

	stdioServer := server.NewStdioServer(s)
	stdioServer.SetErrorLogger(log.New(errOut, "", log.LstdFlags))

	errChan := make(chan error, 1)
	go func() {
		errChan <- stdioServer.Listen(ctx, in, out)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		return fmt.Errorf("server shutdown: %w", ctx.Err())
	}
}

// newServer wires a certificate client built from cfg into a server with the
// default tools and resources. Client metrics are registered on registry.
func newServer(cfg *config.Config, version string, sink logger.Logger, registry *prometheus.Registry) (*server.MCPServer, error) {
	clientConfig := cfg.ClientConfig()
	clientConfig.Version = version
	clientConfig.Logger = sink
	clientConfig.Metrics = metrics.NewPrometheus(registry)

	client, err := x509client.NewDefault(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create certificate client: %w", err)
	}

	s, err := NewServerBuilder().
		WithConfig(cfg).
		WithEmbed(templates.MagicEmbed).
		WithVersion(version).
		WithFetcher(client).
		WithDefaultTools().
		WithResources(createResources(version, cfg, registry)...).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build server: %w", err)
	}

	return s, nil
}
