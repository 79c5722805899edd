// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the X.509 certificate client.
// It implements a Cobra-based command that fetches certificates from a URL or a
// local file, decodes them with the selected backend and writes them as PEM, DER,
// a markdown table or JSON. Settings come from an optional configuration file;
// flags given on the command line take precedence over it.
package cli
