// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/H0llyW00dzZ/x509-client/src/internal/helper/posix"
)

func TestGetExecutableName(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{name: "Relative path", args: []string{"./x509-client"}, expected: "x509-client"},
		{name: "Just filename", args: []string{"x509-client-mcp"}, expected: "x509-client-mcp"},
		{name: "Unix absolute path", args: []string{"/usr/local/bin/x509-client"}, expected: "x509-client"},
		{name: "Windows path with .exe", args: []string{"C:\\Program Files\\x509\\x509-client.exe"}, expected: "x509-client"},
		{name: "Windows path without .exe", args: []string{"C:\\tools\\fetcher"}, expected: "fetcher"},
		{name: "Keeps other extensions", args: []string{"/opt/app.bin"}, expected: "app.bin"},
		{name: "Root only", args: []string{"/"}, expected: posix.DefaultExecutableName},
		{name: "Empty args", args: []string{}, expected: posix.DefaultExecutableName},
		{name: "Empty first arg", args: []string{""}, expected: posix.DefaultExecutableName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origArgs := os.Args
			os.Args = tt.args
			defer func() {
				os.Args = origArgs
			}()

			assert.Equal(t, tt.expected, posix.GetExecutableName(), "input %q", tt.args)
		})
	}
}
