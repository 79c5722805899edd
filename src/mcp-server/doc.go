// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver provides the [MCP] server exposing the [X509] certificate client.
//
// The server offers a fetch_certificates tool backed by a client producing
// [*x509.Certificate] values, a detect_format tool, and resources describing the
// active configuration, the server version, the supported payload formats and
// the client metrics in Prometheus text format. Servers are assembled with
// [ServerBuilder]; [Run] serves the default set over stdio.
//
// [X509]: https://grokipedia.com/page/X.509
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
package mcpserver
