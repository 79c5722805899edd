// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"crypto/x509"
	"errors"
	"net/url"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/x509-client/src/config"
	"github.com/H0llyW00dzZ/x509-client/src/internal/helper/certtest"
	"github.com/H0llyW00dzZ/x509-client/src/mcp-server/templates"
)

// fakeFetcher returns fixed certificates and remembers the last origin.
type fakeFetcher struct {
	certs  []*x509.Certificate
	err    error
	origin *url.URL
}

func (f *fakeFetcher) FetchAll(ctx context.Context, origin *url.URL) ([]*x509.Certificate, error) {
	f.origin = origin
	return f.certs, f.err
}

func (f *fakeFetcher) FetchFirst(ctx context.Context, origin *url.URL) (*x509.Certificate, error) {
	f.origin = origin
	if f.err != nil {
		return nil, f.err
	}
	return f.certs[0], nil
}

// brokenEmbed fails every read.
type brokenEmbed struct{ templates.EmbedFS }

func (brokenEmbed) ReadFile(string) ([]byte, error) { return nil, errors.New("boom") }

func TestServerBuilder_Build(t *testing.T) {
	tests := []struct {
		name        string
		builder     func() *ServerBuilder
		expectError error
		expectAny   bool
	}{
		{
			name: "default tools with fetcher",
			builder: func() *ServerBuilder {
				return NewServerBuilder().
					WithConfig(config.Default()).
					WithVersion(testVersion).
					WithEmbed(templates.MagicEmbed).
					WithFetcher(&fakeFetcher{}).
					WithDefaultTools()
			},
		},
		{
			name: "explicit instructions skip the template",
			builder: func() *ServerBuilder {
				return NewServerBuilder().
					WithEmbed(brokenEmbed{}).
					WithInstructions("use fetch_certificates").
					WithDefaultTools().
					WithFetcher(&fakeFetcher{})
			},
		},
		{
			name: "tools without fetcher dependency",
			builder: func() *ServerBuilder {
				tools, _ := createTools()
				return NewServerBuilder().WithTools(tools...)
			},
		},
		{
			name: "missing fetcher",
			builder: func() *ServerBuilder {
				return NewServerBuilder().WithDefaultTools()
			},
			expectError: ErrMissingFetcher,
		},
		{
			name: "broken template",
			builder: func() *ServerBuilder {
				return NewServerBuilder().WithEmbed(brokenEmbed{})
			},
			expectAny: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.builder().Build()

			switch {
			case tt.expectError != nil:
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, s)
			case tt.expectAny:
				assert.Error(t, err)
				assert.Nil(t, s)
			default:
				require.NoError(t, err)
				assert.NotNil(t, s)
			}
		})
	}
}

func TestServerBuilder_ServerTools(t *testing.T) {
	cert := certtest.NewCertificate(t, "fake.example")
	fetcher := &fakeFetcher{certs: []*x509.Certificate{cert}}

	tools, err := NewServerBuilder().WithFetcher(fetcher).WithDefaultTools().serverTools()
	require.NoError(t, err)
	require.Len(t, tools, 2)

	var fetch func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
	for _, tool := range tools {
		if tool.Tool.Name == "fetch_certificates" {
			fetch = tool.Handler
		}
	}
	require.NotNil(t, fetch, "fetch_certificates not registered")

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"origin": "https://pki.example.com/leaf.cer", "first": true}

	result, err := fetch(context.Background(), req)
	require.NoError(t, err)
	require.False(t, result.IsError)

	require.NotNil(t, fetcher.origin, "handler must reach the builder's fetcher")
	assert.Equal(t, "https://pki.example.com/leaf.cer", fetcher.origin.String())
	assert.Contains(t, result.Content[0].(mcp.TextContent).Text, string(certtest.PEM(cert)))
}

func TestHandleFetchCertificates_FetcherError(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("fetch exploded")}

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"origin": "https://pki.example.com/leaf.cer"}

	result, err := handleFetchCertificates(context.Background(), req, fetcher)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "fetch exploded", result.Content[0].(mcp.TextContent).Text)
}

func TestLoadInstructions(t *testing.T) {
	tools, toolsWithFetcher := createTools()

	t.Run("Nil Config", func(t *testing.T) {
		out, err := loadInstructions(templates.MagicEmbed, nil, tools, toolsWithFetcher)
		require.NoError(t, err)
		assert.Contains(t, out, "Call `fetch_certificates`")
		assert.Contains(t, out, "Call `detect_format`")
	})

	t.Run("Read Failure", func(t *testing.T) {
		_, err := loadInstructions(brokenEmbed{}, nil, tools, toolsWithFetcher)
		assert.ErrorContains(t, err, "boom")
	})
}
