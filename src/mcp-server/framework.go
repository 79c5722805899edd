// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"crypto/x509"
	"errors"
	"net/url"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/x509-client/src/config"
	"github.com/H0llyW00dzZ/x509-client/src/mcp-server/templates"
)

// serverName is reported to MCP clients during initialization.
const serverName = "X509 Client"

// ErrMissingFetcher indicates that tools needing a [CertificateFetcher] were
// registered without one.
var ErrMissingFetcher = errors.New("mcpserver: certificate fetcher is required")

// CertificateFetcher defines the interface for certificate downloads.
// It is satisfied by [x509client.Client] instantiated for [*x509.Certificate].
//
// Methods:
//   - FetchAll: Downloads and decodes every certificate at an origin
//   - FetchFirst: Downloads and decodes the first certificate at an origin
//
// [x509client.Client]: https://pkg.go.dev/github.com/H0llyW00dzZ/x509-client/src/x509/client#Client
type CertificateFetcher interface {
	FetchAll(ctx context.Context, origin *url.URL) ([]*x509.Certificate, error)
	FetchFirst(ctx context.Context, origin *url.URL) (*x509.Certificate, error)
}

// ToolHandler defines the signature for tool handlers that matches [MCP] server expectations.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type ToolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// ToolHandlerWithFetcher defines tool handlers that download certificates.
// The fetcher passed in is the one given to [ServerBuilder.WithFetcher].
type ToolHandlerWithFetcher func(ctx context.Context, request mcp.CallToolRequest, fetcher CertificateFetcher) (*mcp.CallToolResult, error)

// ResourceHandler defines the signature for resource handlers.
type ResourceHandler = func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error)

// ToolDefinition holds a tool definition and its handler.
//
// Fields:
//   - Tool: The MCP tool definition containing name, description, and input schema
//   - Handler: The function that implements the tool's logic
//   - Role: Short key used by the instructions template to refer to the tool
type ToolDefinition struct {
	Tool    mcp.Tool
	Handler ToolHandler
	Role    string
}

// ToolDefinitionWithFetcher holds a tool definition whose handler needs a
// [CertificateFetcher].
type ToolDefinitionWithFetcher struct {
	Tool    mcp.Tool
	Handler ToolHandlerWithFetcher
	Role    string
}

// ServerDependencies holds all dependencies needed to create the MCP server.
//
// Fields:
//   - Config: Loaded configuration, exposed through the config resource
//   - Embed: Embedded filesystem holding the instructions template
//   - Version: Server version string reported to clients
//   - Fetcher: Certificate client used by download tools
//   - Tools: Tool definitions without fetcher requirements
//   - ToolsWithFetcher: Tool definitions that download certificates
//   - Resources: Resources provided by the server
//   - Instructions: Rendered instructions sent to clients on initialization
type ServerDependencies struct {
	Config           *config.Config
	Embed            templates.EmbedFS
	Version          string
	Fetcher          CertificateFetcher
	Tools            []ToolDefinition
	ToolsWithFetcher []ToolDefinitionWithFetcher
	Resources        []server.ServerResource
	Instructions     string
}

// ServerBuilder helps construct the MCP server with proper dependencies.
//
// Example usage:
//
//	s, err := NewServerBuilder().
//		WithConfig(cfg).
//		WithVersion("0.1.0").
//		WithFetcher(client).
//		WithDefaultTools().
//		Build()
type ServerBuilder struct{ deps ServerDependencies }

// NewServerBuilder creates a new server builder.
func NewServerBuilder() *ServerBuilder { return &ServerBuilder{} }

// WithConfig sets the server configuration.
func (b *ServerBuilder) WithConfig(config *config.Config) *ServerBuilder {
	b.deps.Config = config
	return b
}

// WithEmbed sets the embedded filesystem used for the instructions template.
// Build renders the template when no instructions were set explicitly.
func (b *ServerBuilder) WithEmbed(embed templates.EmbedFS) *ServerBuilder {
	b.deps.Embed = embed
	return b
}

// WithVersion sets the server version.
func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	b.deps.Version = version
	return b
}

// WithFetcher sets the certificate client used by download tools.
func (b *ServerBuilder) WithFetcher(fetcher CertificateFetcher) *ServerBuilder {
	b.deps.Fetcher = fetcher
	return b
}

// WithTools adds tools that don't require a fetcher.
func (b *ServerBuilder) WithTools(tools ...ToolDefinition) *ServerBuilder {
	b.deps.Tools = append(b.deps.Tools, tools...)
	return b
}

// WithToolsWithFetcher adds tools that download certificates.
func (b *ServerBuilder) WithToolsWithFetcher(tools ...ToolDefinitionWithFetcher) *ServerBuilder {
	b.deps.ToolsWithFetcher = append(b.deps.ToolsWithFetcher, tools...)
	return b
}

// WithResources adds resources.
func (b *ServerBuilder) WithResources(resources ...server.ServerResource) *ServerBuilder {
	b.deps.Resources = append(b.deps.Resources, resources...)
	return b
}

// WithInstructions sets the instructions sent to clients on initialization.
func (b *ServerBuilder) WithInstructions(instructions string) *ServerBuilder {
	b.deps.Instructions = instructions
	return b
}

// WithDefaultTools adds the default tool set.
func (b *ServerBuilder) WithDefaultTools() *ServerBuilder {
	tools, toolsWithFetcher := createTools()
	b.deps.Tools = append(b.deps.Tools, tools...)
	b.deps.ToolsWithFetcher = append(b.deps.ToolsWithFetcher, toolsWithFetcher...)
	return b
}

// Build creates the MCP server with the configured dependencies.
//
// Returns:
//   - *server.MCPServer: Server with every tool and resource registered
//   - error: [ErrMissingFetcher] when download tools were added without a fetcher,
//     or a template error while rendering instructions from the embedded filesystem
//
// Instructions set with WithInstructions take precedence over the template.
func (b *ServerBuilder) Build() (*server.MCPServer, error) {
	tools, err := b.serverTools()
	if err != nil {
		return nil, err
	}

	instructions := b.deps.Instructions
	if instructions == "" && b.deps.Embed != nil {
		if instructions, err = loadInstructions(b.deps.Embed, b.deps.Config, b.deps.Tools, b.deps.ToolsWithFetcher); err != nil {
			return nil, err
		}
	}

	opts := []server.ServerOption{
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
	}
	if instructions != "" {
		opts = append(opts, server.WithInstructions(instructions))
	}

	s := server.NewMCPServer(serverName, b.deps.Version, opts...)
	s.AddTools(tools...)

	for _, resource := range b.deps.Resources {
		s.AddResource(resource.Resource, resource.Handler)
	}

	return s, nil
}

// serverTools binds every tool definition to a plain server handler.
func (b *ServerBuilder) serverTools() ([]server.ServerTool, error) {
	if len(b.deps.ToolsWithFetcher) > 0 && b.deps.Fetcher == nil {
		return nil, ErrMissingFetcher
	}

	tools := make([]server.ServerTool, 0, len(b.deps.Tools)+len(b.deps.ToolsWithFetcher))
	for _, tool := range b.deps.Tools {
		tools = append(tools, server.ServerTool{Tool: tool.Tool, Handler: tool.Handler})
	}

	fetcher := b.deps.Fetcher
	for _, tool := range b.deps.ToolsWithFetcher {
		handler := tool.Handler
		tools = append(tools, server.ServerTool{
			Tool: tool.Tool,
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handler(ctx, request, fetcher)
			},
		})
	}

	return tools, nil
}
