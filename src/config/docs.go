// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config loads client settings shared by the command-line tool and the MCP server.
//
// Settings come from a JSON or YAML file (.json, .yaml, .yml) named explicitly or
// through the X509_CLIENT_CONFIG_FILE environment variable. Defaults are applied
// first, file values override them, and the result is validated before use:
//
//	client:
//	  strict: false
//	  allowFileScheme: true
//	  maxBytes: 1048576
//	  backend: x509        # x509, asn1 or raw
//	  timeoutSeconds: 10
package config
