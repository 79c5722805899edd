// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/x509-client/src/config"
	"github.com/H0llyW00dzZ/x509-client/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/x509-client/src/mcp-server/templates"
)

// NewCommand builds the root command of the MCP server executable.
//
// Parameters:
//   - version: Version reported by --version and to MCP clients
//
// Returns:
//   - *cobra.Command: Command serving MCP over stdio, or printing the
//     rendered instructions when --instructions is set
//
// The stdio streams are taken from the command, so tests can drive the server
// through SetIn and SetOut.
func NewCommand(version string) *cobra.Command {
	var (
		configFile       string
		showInstructions bool
	)

	exeName := posix.GetExecutableName()

	rootCmd := &cobra.Command{
		Use:   exeName,
		Short: "X.509 certificate client with MCP server integration",
		Long: `Serve the X.509 certificate client over the Model Context Protocol on stdio.

Clients can call fetch_certificates to download and decode certificates from an
http(s) URL or, when the configuration allows it, a file origin.`,
		Example: fmt.Sprintf(`  %[1]s --config config.yaml
  %[1]s --instructions`, exeName),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected arguments: %s for %q", strings.Join(args, " "), exeName)
			}

			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if showInstructions {
				return printInstructions(cmd, cfg)
			}

			return serve(cmd.Context(), cfg, version, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	rootCmd.Flags().BoolVar(&showInstructions, "instructions", false, "print the instructions sent to MCP clients and exit")
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "path to configuration file (default: $"+config.EnvConfigFile+")")

	return rootCmd
}

// printInstructions writes the rendered instructions to the command output.
func printInstructions(cmd *cobra.Command, cfg *config.Config) error {
	tools, toolsWithFetcher := createTools()

	instructions, err := loadInstructions(templates.MagicEmbed, cfg, tools, toolsWithFetcher)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), instructions)
	return err
}
