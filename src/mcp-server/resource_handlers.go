// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/H0llyW00dzZ/x509-client/src/config"
	"github.com/H0llyW00dzZ/x509-client/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/x509-client/src/mcp-server/templates"
	"github.com/H0llyW00dzZ/x509-client/src/metrics"
)

// configResourceHandler returns a handler serving cfg as JSON.
//
// A nil cfg is served as the default configuration.
func configResourceHandler(cfg *config.Config) ResourceHandler {
	if cfg == nil {
		cfg = config.Default()
	}

	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonData, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal config: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      uriConfig,
				MIMEType: "application/json",
				Text:     string(jsonData),
			},
		}, nil
	}
}

// versionResourceHandler returns a handler serving server metadata.
//
// The resource includes server name, version, tool names and the formats
// understood by the decoder and by the fetch tool.
func versionResourceHandler(version string) ResourceHandler {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		tools, toolsWithFetcher := createTools()

		names := make([]string, 0, len(tools)+len(toolsWithFetcher))
		for _, tool := range tools {
			names = append(names, tool.Tool.Name)
		}
		for _, tool := range toolsWithFetcher {
			names = append(names, tool.Tool.Name)
		}

		versionInfo := map[string]any{
			"name":    serverName,
			"version": version,
			"type":    "MCP Server",
			"capabilities": map[string]any{
				"tools":     names,
				"resources": []string{uriConfig, uriVersion, uriFormats, uriMetrics},
			},
			"payloadFormats": []string{"cer", "p7c", "pem"},
			"outputFormats":  []string{formatPEM, formatDER, formatTable, formatJSON},
		}

		jsonData, err := json.MarshalIndent(versionInfo, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal version info: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      uriVersion,
				MIMEType: "application/json",
				Text:     string(jsonData),
			},
		}, nil
	}
}

// handleCertificateFormatsResource serves the embedded format documentation.
func handleCertificateFormatsResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	content, err := templates.MagicEmbed.ReadFile("certificate-formats.md")
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate formats template: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uriFormats,
			MIMEType: "text/markdown",
			Text:     string(content),
		},
	}, nil
}

// metricsResourceHandler returns a handler serving the gathered metrics in
// the Prometheus text exposition format.
func metricsResourceHandler(gatherer prometheus.Gatherer) ResourceHandler {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		buf := gc.Default.Get()
		defer func() {
			buf.Reset()
			gc.Default.Put(buf)
		}()

		if err := metrics.WriteText(buf, gatherer); err != nil {
			return nil, fmt.Errorf("failed to render metrics: %w", err)
		}
		// Collectors without children gather nothing until the first fetch.
		if buf.Len() == 0 {
			buf.WriteString("# no fetches recorded yet\n")
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      uriMetrics,
				MIMEType: "text/plain",
				Text:     buf.String(),
			},
		}, nil
	}
}
