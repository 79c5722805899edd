// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	x509certs "github.com/H0llyW00dzZ/x509-client/src/x509/certs"
	x509client "github.com/H0llyW00dzZ/x509-client/src/x509/client"
	x509format "github.com/H0llyW00dzZ/x509-client/src/x509/format"
)

// handleDetectFormat reports the format hint for a path or Content-Type value.
//
// Parameters:
//   - ctx: Context for cancellation and timeout handling
//   - request: MCP tool call request carrying origin and/or content_type
//
// Returns:
//   - The tool execution result naming the hint and where it came from
//   - An error is never returned; bad input yields a tool error result
func handleDetectFormat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	origin := request.GetString("origin", "")
	contentType := request.GetString("content_type", "")

	switch {
	case contentType != "":
		hint := x509format.FromContentType(contentType)
		return mcp.NewToolResultText(fmt.Sprintf("Format: %s\nSource: Content-Type %q", hint, contentType)), nil
	case origin != "":
		u, err := x509client.ParseOrigin(origin)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid origin: %v", err)), nil
		}
		hint := x509format.FromPath(u.Path)
		return mcp.NewToolResultText(fmt.Sprintf("Format: %s\nSource: path %q", hint, u.Path)), nil
	default:
		return mcp.NewToolResultError("origin or content_type parameter required"), nil
	}
}

// handleFetchCertificates downloads and decodes the certificates at an origin.
//
// Parameters:
//   - ctx: Context for cancellation and timeout handling
//   - request: MCP tool call request containing origin, first and format
//   - fetcher: Certificate client built from the server configuration
//
// Returns:
//   - The tool execution result with the certificates in the requested format
//   - An error is never returned; fetch failures yield a tool error result
//
// DER output is base64 encoded since tool results are text.
func handleFetchCertificates(ctx context.Context, request mcp.CallToolRequest, fetcher CertificateFetcher) (*mcp.CallToolResult, error) {
	rawOrigin, err := request.RequireString("origin")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("origin parameter required: %v", err)), nil
	}

	first := request.GetBool("first", false)
	format := request.GetString("format", formatPEM)

	switch format {
	case formatPEM, formatDER, formatTable, formatJSON:
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q: use pem, der, table or json", format)), nil
	}

	origin, err := x509client.ParseOrigin(rawOrigin)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid origin: %v", err)), nil
	}

	var certs []*x509.Certificate
	if first {
		cert, err := fetcher.FetchFirst(ctx, origin)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		certs = []*x509.Certificate{cert}
	} else {
		if certs, err = fetcher.FetchAll(ctx, origin); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Origin: %s\n", origin)
	fmt.Fprintf(&result, "Certificates: %d\n\n", len(certs))

	certManager := x509certs.New()

	switch format {
	case formatDER:
		result.WriteString("Format: DER (base64 encoded)\n\n")
		result.WriteString(base64.StdEncoding.EncodeToString(certManager.EncodeMultipleDER(certs)))
	case formatTable:
		result.WriteString("Format: Table\n\n")
		result.WriteString(x509certs.RenderTable(summarize(certs)))
	case formatJSON:
		data, err := x509certs.ToVisualizationJSON(origin.String(), summarize(certs))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode JSON: %v", err)), nil
		}
		result.WriteString("Format: JSON\n\n")
		result.Write(data)
	default:
		result.WriteString("Format: PEM\n\n")
		result.Write(certManager.EncodeMultiplePEM(certs))
	}

	return mcp.NewToolResultText(result.String()), nil
}

func summarize(certs []*x509.Certificate) []x509certs.Summary {
	out := make([]x509certs.Summary, 0, len(certs))
	for _, cert := range certs {
		out = append(out, x509certs.Summarize(cert))
	}
	return out
}
