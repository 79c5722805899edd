// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultExecutableName is returned when os.Args carries no program name.
const DefaultExecutableName = "x509-client"

// GetExecutableName returns the base name of the running program without a
// trailing .exe, accepting both slash and backslash separators.
func GetExecutableName() string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return DefaultExecutableName
	}

	// Split on both separators so a Windows path is handled on any OS.
	parts := strings.FieldsFunc(filepath.Base(os.Args[0]), func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(parts) == 0 {
		return DefaultExecutableName
	}

	return strings.TrimSuffix(parts[len(parts)-1], ".exe")
}
