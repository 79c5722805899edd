// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/H0llyW00dzZ/x509-client/src/config"
)

// Resource URIs.
const (
	uriConfig  = "config://current"
	uriVersion = "info://version"
	uriFormats = "docs://certificate-formats"
	uriMetrics = "metrics://client"
)

// createResources creates the MCP resources served next to the tools.
//
// Parameters:
//   - version: Server version reported by the version resource
//   - cfg: Active configuration reported by the config resource
//   - gatherer: Registry holding the certificate client metrics
//
// Returns:
//   - The resources in a stable order: config, version, formats, metrics
func createResources(version string, cfg *config.Config, gatherer prometheus.Gatherer) []server.ServerResource {
	return []server.ServerResource{
		{
			Resource: mcp.NewResource(uriConfig, "Active Configuration",
				mcp.WithResourceDescription("Client configuration the server was started with"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: configResourceHandler(cfg),
		},
		{
			Resource: mcp.NewResource(uriVersion, "Version Information",
				mcp.WithResourceDescription("Server name, version, tools and supported formats"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: versionResourceHandler(version),
		},
		{
			Resource: mcp.NewResource(uriFormats, "Certificate Formats",
				mcp.WithResourceDescription("How payload formats are detected and decoded"),
				mcp.WithMIMEType("text/markdown"),
			),
			Handler: handleCertificateFormatsResource,
		},
		{
			Resource: mcp.NewResource(uriMetrics, "Client Metrics",
				mcp.WithResourceDescription("Download and decode counters in Prometheus text format"),
				mcp.WithMIMEType("text/plain"),
			),
			Handler: metricsResourceHandler(gatherer),
		},
	}
}
