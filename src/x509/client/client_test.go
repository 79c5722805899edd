// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509client_test

import (
	"bytes"
	"context"
	"crypto/x509"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/x509-client/src/internal/helper/certtest"
	"github.com/H0llyW00dzZ/x509-client/src/logger"
	x509certs "github.com/H0llyW00dzZ/x509-client/src/x509/certs"
	x509client "github.com/H0llyW00dzZ/x509-client/src/x509/client"
	x509parse "github.com/H0llyW00dzZ/x509-client/src/x509/parse"
	x509transport "github.com/H0llyW00dzZ/x509-client/src/x509/transport"
)

// recorder collects metrics calls.
type recorder struct {
	mu        sync.Mutex
	transfers []string
	bytes     int
	results   []string
}

func (r *recorder) RecordTransfer(scheme string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transfers = append(r.transfers, scheme)
	r.bytes += n
}

func (r *recorder) RecordResult(result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
}

func static(contentType string, body []byte) *x509transport.StaticDoer {
	header := http.Header{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return &x509transport.StaticDoer{Header: header, Body: body}
}

func origin(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestNew(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		client, err := x509client.NewDefault(x509client.Config{})
		require.NoError(t, err)
		assert.False(t, client.Strict())
	})

	t.Run("Strict", func(t *testing.T) {
		client, err := x509client.New[*x509certs.Structure](x509certs.NewASN1(), x509client.Config{Strict: true})
		require.NoError(t, err)
		assert.True(t, client.Strict())
	})

	t.Run("Negative Size Limit", func(t *testing.T) {
		_, err := x509client.NewDefault(x509client.Config{MaxBytes: -1})
		assert.ErrorIs(t, err, x509client.ErrInvalidConfig)
	})

	t.Run("Negative Timeout", func(t *testing.T) {
		_, err := x509client.NewDefault(x509client.Config{Timeout: -1})
		assert.ErrorIs(t, err, x509client.ErrInvalidConfig)
	})

	t.Run("Nil Decoder", func(t *testing.T) {
		_, err := x509client.New[[]byte](nil, x509client.Config{})
		assert.ErrorIs(t, err, x509client.ErrInvalidConfig)
	})
}

func TestFetchAll_RoundTrip(t *testing.T) {
	first := certtest.NewCertificate(t, "first.example")
	second := certtest.NewCertificate(t, "second.example")

	tests := []struct {
		name        string
		contentType string
		body        []byte
		expectRaw   [][]byte
	}{
		{
			name:        "One DER Certificate",
			contentType: "application/pkix-cert",
			body:        first.Raw,
			expectRaw:   [][]byte{first.Raw},
		},
		{
			name:        "Two In PKCS7",
			contentType: "application/pkcs7-mime",
			body: certtest.PKCS7(certtest.Bundle{
				Certificates: []*x509.Certificate{first, second},
			}),
			expectRaw: [][]byte{first.Raw, second.Raw},
		},
		{
			name:        "Two In PEM",
			contentType: "application/pem-certificate-chain",
			body:        certtest.PEM(first, second),
			expectRaw:   [][]byte{first.Raw, second.Raw},
		},
	}

	for _, strict := range []bool{true, false} {
		for _, tt := range tests {
			name := tt.name
			if strict {
				name += " Strict"
			}

			t.Run(name, func(t *testing.T) {
				client, err := x509client.NewDefault(x509client.Config{
					Strict:     strict,
					HTTPClient: static(tt.contentType, tt.body),
				})
				require.NoError(t, err)

				certs, err := client.FetchAll(context.Background(), origin(t, "https://example.com/certs"))
				require.NoError(t, err)
				require.Len(t, certs, len(tt.expectRaw))
				for i, raw := range tt.expectRaw {
					assert.Equal(t, raw, certs[i].Raw, "certificate %d", i)
				}
			})
		}
	}

	t.Run("Absent Certificates Field", func(t *testing.T) {
		client, err := x509client.New[*x509certs.Structure](x509certs.NewASN1(), x509client.Config{
			Strict:     true,
			HTTPClient: static("application/pkcs7-mime", certtest.PKCS7(certtest.Bundle{OmitCertificates: true})),
		})
		require.NoError(t, err)

		certs, err := client.FetchAll(context.Background(), origin(t, "https://example.com/empty.p7c"))
		require.NoError(t, err)
		assert.Empty(t, certs)
	})

	t.Run("Relaxed Bundle Is Not Read As Empty PEM", func(t *testing.T) {
		bundles := map[string][]byte{
			"without crls": certtest.PKCS7(certtest.Bundle{
				Certificates: []*x509.Certificate{first, second},
			}),
			"with attribute certificate": certtest.PKCS7(certtest.Bundle{
				Certificates:          []*x509.Certificate{first, second},
				AttributeCertificates: [][]byte{{0x02, 0x01, 0x07}},
			}),
		}

		for shape, bundle := range bundles {
			for _, contentType := range []string{"application/pkcs7-mime", ""} {
				client, err := x509client.NewDefault(x509client.Config{
					HTTPClient: static(contentType, bundle),
				})
				require.NoError(t, err)

				certs, err := client.FetchAll(context.Background(), origin(t, "https://example.com/issuer.p7c"))
				require.NoError(t, err, "%s, content type %q", shape, contentType)
				require.Len(t, certs, 2, "%s, content type %q", shape, contentType)
				assert.Equal(t, first.Raw, certs[0].Raw)
				assert.Equal(t, second.Raw, certs[1].Raw)
			}
		}
	})
}

func TestFetchFirst(t *testing.T) {
	first := certtest.NewCertificate(t, "first.example")
	second := certtest.NewCertificate(t, "second.example")

	t.Run("Returns First In Order", func(t *testing.T) {
		client, err := x509client.NewDefault(x509client.Config{
			HTTPClient: static("application/pem-certificate-chain", certtest.PEM(first, second)),
		})
		require.NoError(t, err)

		cert, err := client.FetchFirst(context.Background(), origin(t, "https://example.com/chain.pem"))
		require.NoError(t, err)
		assert.Equal(t, first.Raw, cert.Raw)
	})

	t.Run("Empty Result", func(t *testing.T) {
		client, err := x509client.New[*x509certs.Structure](x509certs.NewASN1(), x509client.Config{
			HTTPClient: static("application/pkcs7-mime", certtest.PKCS7(certtest.Bundle{})),
		})
		require.NoError(t, err)

		cert, err := client.FetchFirst(context.Background(), origin(t, "https://example.com/empty.p7c"))
		assert.Nil(t, cert)
		require.ErrorIs(t, err, x509client.ErrEmptyResult)

		var clientErr *x509client.Error
		require.ErrorAs(t, err, &clientErr)
		assert.Equal(t, x509client.StageSelect, clientErr.Stage)
		assert.Equal(t, "https://example.com/empty.p7c", clientErr.Origin)
	})

	t.Run("Relaxed PEM Without Blocks", func(t *testing.T) {
		client, err := x509client.New[*x509certs.Structure](x509certs.NewASN1(), x509client.Config{
			HTTPClient: static("", []byte("no certificates here")),
		})
		require.NoError(t, err)

		_, err = client.FetchFirst(context.Background(), origin(t, "https://example.com/"))
		assert.ErrorIs(t, err, x509client.ErrEmptyResult)
	})
}

func TestFetch_Errors(t *testing.T) {
	cert := certtest.NewCertificate(t, "leaf.example")

	tests := []struct {
		name        string
		config      x509client.Config
		origin      string
		expectStage x509client.Stage
		expectError error
	}{
		{
			name:        "Unknown Format In Strict Mode",
			config:      x509client.Config{Strict: true, HTTPClient: static("text/plain", cert.Raw)},
			origin:      "https://example.com/leaf",
			expectStage: x509client.StageParse,
			expectError: x509parse.ErrUnknownFormatNotPermitted,
		},
		{
			name:        "Strict Decode Failure",
			config:      x509client.Config{Strict: true, HTTPClient: static("application/pkix-cert", certtest.PEM(cert))},
			origin:      "https://example.com/leaf.cer",
			expectStage: x509client.StageParse,
			expectError: x509certs.ErrParseCertificate,
		},
		{
			name:        "Size Limit",
			config:      x509client.Config{MaxBytes: 16, HTTPClient: static("application/pkix-cert", cert.Raw)},
			origin:      "https://example.com/leaf.cer",
			expectStage: x509client.StageTransport,
			expectError: x509transport.ErrSizeLimitExceeded,
		},
		{
			name:        "File Scheme Disabled",
			config:      x509client.Config{HTTPClient: static("", nil)},
			origin:      "file:///etc/ssl/certs/leaf.pem",
			expectStage: x509client.StageTransport,
			expectError: x509transport.ErrSchemeNotPermitted,
		},
		{
			name:        "Connection Failure",
			config:      x509client.Config{HTTPClient: &x509transport.StaticDoer{Err: errors.New("dial tcp: refused")}},
			origin:      "https://example.com/leaf.cer",
			expectStage: x509client.StageTransport,
			expectError: x509transport.ErrIOFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			tt.config.Metrics = rec

			client, err := x509client.NewDefault(tt.config)
			require.NoError(t, err)

			certs, err := client.FetchAll(context.Background(), origin(t, tt.origin))
			assert.Nil(t, certs)
			require.ErrorIs(t, err, tt.expectError)

			var clientErr *x509client.Error
			require.ErrorAs(t, err, &clientErr)
			assert.Equal(t, tt.expectStage, clientErr.Stage)
			assert.Equal(t, tt.origin, clientErr.Origin)
			assert.Contains(t, err.Error(), tt.expectStage.String())

			assert.Equal(t, []string{tt.expectStage.String()}, rec.results)
		})
	}

	t.Run("Status Error", func(t *testing.T) {
		client, err := x509client.NewDefault(x509client.Config{
			HTTPClient: &x509transport.StaticDoer{Status: http.StatusNotFound},
		})
		require.NoError(t, err)

		_, err = client.FetchAll(context.Background(), origin(t, "https://example.com/missing.cer"))

		var statusErr *x509transport.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusNotFound, statusErr.Code)
	})
}

func TestFetch_File(t *testing.T) {
	first := certtest.NewCertificate(t, "first.example")
	second := certtest.NewCertificate(t, "second.example")

	dir := t.TempDir()
	path := filepath.Join(dir, "chain.pem")
	require.NoError(t, os.WriteFile(path, certtest.PEM(first, second), 0o600))

	client, err := x509client.NewDefault(x509client.Config{Strict: true, AllowFileScheme: true})
	require.NoError(t, err)

	fileOrigin, err := x509client.ParseOrigin(path)
	require.NoError(t, err)

	certs, err := client.FetchAll(context.Background(), fileOrigin)
	require.NoError(t, err)
	require.Len(t, certs, 2)
	assert.Equal(t, "second.example", certs[1].Subject.CommonName)
}

func TestFetch_HTTPServer(t *testing.T) {
	cert := certtest.NewCertificate(t, "served.example")

	var userAgent atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent.Store(r.UserAgent())
		w.Header().Set("Content-Type", "application/pkix-cert")
		w.Write(cert.Raw)
	}))
	defer server.Close()

	client, err := x509client.New[[]byte](x509certs.Passthrough{}, x509client.Config{
		Strict:  true,
		Version: "9.9.9",
	})
	require.NoError(t, err)

	raw, err := client.FetchFirst(context.Background(), origin(t, server.URL+"/leaf.cer"))
	require.NoError(t, err)
	assert.Equal(t, cert.Raw, raw)
	assert.True(t, strings.HasPrefix(userAgent.Load().(string), "x509-client/9.9.9"), "user agent %q", userAgent.Load())
}

func TestFetch_LoggingAndMetrics(t *testing.T) {
	cert := certtest.NewCertificate(t, "logged.example")

	var buf bytes.Buffer
	rec := &recorder{}

	client, err := x509client.NewDefault(x509client.Config{
		HTTPClient: static("application/pkix-cert", cert.Raw),
		Logger:     logger.NewMCPLogger(&buf, false),
		Metrics:    rec,
	})
	require.NoError(t, err)

	_, err = client.FetchAll(context.Background(), origin(t, "https://example.com/leaf.cer"))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "attempting certificate(s) download: https://example.com/leaf.cer")
	assert.Contains(t, buf.String(), `"level":"debug"`)
	assert.Equal(t, []string{"https"}, rec.transfers)
	assert.Equal(t, len(cert.Raw), rec.bytes)
	assert.Equal(t, []string{x509client.ResultOK}, rec.results)
}

func TestFetch_Concurrent(t *testing.T) {
	first := certtest.NewCertificate(t, "first.example")
	second := certtest.NewCertificate(t, "second.example")
	rec := &recorder{}

	client, err := x509client.NewDefault(x509client.Config{
		HTTPClient: static("application/pem-certificate-chain", certtest.PEM(first, second)),
		Metrics:    rec,
	})
	require.NoError(t, err)

	const workers = 16
	target := origin(t, "https://example.com/chain.pem")

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()
			certs, err := client.FetchAll(context.Background(), target)
			assert.NoError(t, err)
			assert.Len(t, certs, 2)
		}()
	}

	wg.Wait()
	assert.Len(t, rec.results, workers)
}

func TestParseOrigin(t *testing.T) {
	abs, err := filepath.Abs("leaf.pem")
	require.NoError(t, err)

	tests := []struct {
		name        string
		input       string
		expect      string
		expectError bool
	}{
		{name: "HTTPS URL", input: "https://example.com/ca.p7c", expect: "https://example.com/ca.p7c"},
		{name: "File URL", input: "file:///tmp/leaf.cer", expect: "file:///tmp/leaf.cer"},
		{name: "Absolute Path", input: "/tmp/leaf.cer", expect: "file:///tmp/leaf.cer"},
		{name: "Relative Path", input: "leaf.pem", expect: "file://" + filepath.ToSlash(abs)},
		{name: "Empty", input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := x509client.ParseOrigin(tt.input)
			if tt.expectError {
				assert.ErrorIs(t, err, x509client.ErrInvalidOrigin)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expect, u.String())
		})
	}
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "transport", x509client.StageTransport.String())
	assert.Equal(t, "parse", x509client.StageParse.String())
	assert.Equal(t, "select", x509client.StageSelect.String())
	assert.Equal(t, "unknown", x509client.Stage(0).String())
}
