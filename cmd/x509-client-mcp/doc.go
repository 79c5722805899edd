// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// x509-client-mcp is a Model Context Protocol (MCP) server that exposes the
// X.509 certificate client to AI assistants and automation clients over stdio.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/x509-client/cmd/x509-client-mcp@latest
//
// # Usage
//
//	x509-client-mcp [FLAGS]
//
// # Flags
//
//	-c, --config        Configuration file (JSON or YAML, default: $X509_CLIENT_CONFIG_FILE)
//	    --instructions  Print the instructions sent to MCP clients and exit
//
// # Tools
//
//	fetch_certificates  Download and decode certificates (origin, first, format)
//	detect_format       Report the payload format inferred from a path or Content-Type
//
// # Resources
//
//	config://current            Active client configuration
//	info://version              Server version and capabilities
//	docs://certificate-formats  Format detection and decoding rules
//	metrics://client            Client metrics in Prometheus text format
package main
