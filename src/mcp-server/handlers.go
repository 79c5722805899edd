// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/H0llyW00dzZ/x509-client/src/config"
	"github.com/H0llyW00dzZ/x509-client/src/mcp-server/templates"
)

// instructionsTemplate is the embedded file holding the server instructions.
const instructionsTemplate = "X509_instructions.md"

// instructionData holds the data used to populate the MCP server instructions template.
type instructionData struct {
	Tools     []toolInfo
	ToolRoles map[string]string // Maps tool roles to tool names for template use
	Client    config.Client
}

// toolInfo represents information about an MCP tool for template rendering.
type toolInfo struct {
	Name        string
	Description string
}

// loadInstructions renders the instructions template with the registered tools
// and the active client settings.
//
// Parameters:
//   - embed: Filesystem holding the template
//   - cfg: Active configuration; its client section tells clients whether file origins work
//   - tools: Tool definitions without fetcher requirements
//   - toolsWithFetcher: Tool definitions that download certificates
//
// Returns:
//   - string: The rendered instruction text
//   - error: If the embedded file cannot be read or template parsing fails
func loadInstructions(embed templates.EmbedFS, cfg *config.Config, tools []ToolDefinition, toolsWithFetcher []ToolDefinitionWithFetcher) (string, error) {
	templateBytes, err := embed.ReadFile(instructionsTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to load MCP server instructions template: %w", err)
	}

	data := instructionData{ToolRoles: make(map[string]string)}
	if cfg != nil {
		data.Client = cfg.Client
	}

	add := func(name, description, role string) {
		data.Tools = append(data.Tools, toolInfo{Name: name, Description: description})
		if role != "" {
			data.ToolRoles[role] = name
		}
	}
	for _, tool := range tools {
		add(tool.Tool.Name, tool.Tool.Description, tool.Role)
	}
	for _, tool := range toolsWithFetcher {
		add(tool.Tool.Name, tool.Tool.Description, tool.Role)
	}

	tmpl, err := template.New("instructions").Parse(string(templateBytes))
	if err != nil {
		return "", fmt.Errorf("failed to parse instructions template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute instructions template: %w", err)
	}

	return buf.String(), nil
}
