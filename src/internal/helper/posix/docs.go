// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides [POSIX]-compliant helper functions for cross-platform compatibility.
//
// The command-line tool uses [GetExecutableName] so help and usage text show the
// name the binary was invoked under:
//
//	rootCmd := &cobra.Command{
//	    Use:   posix.GetExecutableName() + " [flags] ORIGIN",
//	    Short: "Fetch X.509 certificates",
//	}
//
// Behavior across platforms:
//
//   - Linux/macOS: "/usr/bin/x509-client" → "x509-client"
//   - Windows: "C:\bin\x509-client.exe" → "x509-client"
//   - Fallback: Empty args → "x509-client"
//
// [POSIX]: https://grokipedia.com/page/POSIX
package posix
