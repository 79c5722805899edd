// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool output formats.
const (
	formatPEM   = "pem"
	formatDER   = "der"
	formatTable = "table"
	formatJSON  = "json"
)

// createTools creates and returns all MCP tool definitions with their handlers.
//
// Returns:
//   - A slice of ToolDefinition for tools without fetcher dependencies
//   - A slice of ToolDefinitionWithFetcher for tools that download certificates
//
// The function defines the following tools:
//   - detect_format: Reports the payload format inferred from a path or Content-Type
//   - fetch_certificates: Downloads and decodes certificates from a URL or file
func createTools() ([]ToolDefinition, []ToolDefinitionWithFetcher) {
	tools := []ToolDefinition{
		{
			Tool: mcp.NewTool("detect_format",
				mcp.WithDescription("Report the certificate payload format (cer, p7c, pem or unknown) inferred from a file path, URL or Content-Type value"),
				mcp.WithString("origin",
					mcp.Description("File path or URL whose extension is inspected"),
				),
				mcp.WithString("content_type",
					mcp.Description("Content-Type header value; takes precedence over origin when set"),
				),
			),
			Handler: handleDetectFormat,
			Role:    "formatDetector",
		},
	}

	toolsWithFetcher := []ToolDefinitionWithFetcher{
		{
			Tool: mcp.NewTool("fetch_certificates",
				mcp.WithDescription("Download X509 certificates from an http(s) URL or file origin and decode them as a single DER certificate, a PKCS#7 bundle or a PEM chain"),
				mcp.WithString("origin",
					mcp.Required(),
					mcp.Description("http(s) URL, file:// URL or local path of the certificate payload"),
				),
				mcp.WithBoolean("first",
					mcp.Description("Return only the first certificate (default: false)"),
					mcp.DefaultBool(false),
				),
				mcp.WithString("format",
					mcp.Description("Output format: 'pem', 'der', 'table' or 'json' (default: pem)"),
					mcp.DefaultString(formatPEM),
					mcp.Enum(formatPEM, formatDER, formatTable, formatJSON),
				),
			),
			Handler: handleFetchCertificates,
			Role:    "certificateFetcher",
		},
	}

	return tools, toolsWithFetcher
}
