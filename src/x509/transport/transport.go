// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/H0llyW00dzZ/x509-client/src/internal/helper/gc"
	x509format "github.com/H0llyW00dzZ/x509-client/src/x509/format"
)

var (
	// ErrSchemeNotPermitted indicates a file origin while file access is disabled.
	ErrSchemeNotPermitted = errors.New("x509transport: file scheme is not permitted")

	// ErrPathResolutionFailed indicates a file origin that does not name an absolute local path.
	ErrPathResolutionFailed = errors.New("x509transport: cannot resolve file path")

	// ErrIOFailure indicates a failed file read, connection or request.
	ErrIOFailure = errors.New("x509transport: I/O failure")

	// ErrSizeLimitExceeded indicates a network payload larger than the configured ceiling.
	ErrSizeLimitExceeded = errors.New("x509transport: size limit exceeded")
)

// SchemeFile is the origin scheme served from the local filesystem.
const SchemeFile = "file"

// chunkSize is the read granularity when a size ceiling is enforced.
const chunkSize = 16 << 10

// acceptHeader lists the certificate media types understood by [x509format].
const acceptHeader = "application/pkix-cert, application/pkcs7-mime, application/pem-certificate-chain, */*;q=0.8"

// StatusError reports a non-success HTTP response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("x509transport: unexpected HTTP status %d %s", e.Code, http.StatusText(e.Code))
}

// Payload is the raw result of one retrieval.
type Payload struct {
	Hint x509format.Hint
	Data []byte
}

// Transport fetches payloads from file and network origins.
//
// The zero value refuses file origins, applies no size ceiling and sends
// requests through [http.DefaultClient]. A Transport must not be modified after
// first use and is safe for concurrent use when its Doer is.
type Transport struct {
	AllowFileScheme bool   // Permit file:// origins
	MaxBytes        int64  // Network payload ceiling in bytes, 0 means unlimited
	Doer            Doer   // HTTP implementation, nil means http.DefaultClient
	UserAgent       string // User-Agent header, omitted when empty
}

// Fetch retrieves the payload behind origin.
//
// Parameters:
//   - ctx: Context for cancellation and timeouts
//   - origin: file:// URL or network URL
//
// Returns:
//   - *Payload: Raw bytes and the format hint derived from the extension or Content-Type
//   - error: [ErrSchemeNotPermitted], [ErrPathResolutionFailed], [ErrIOFailure],
//     [*StatusError] or [ErrSizeLimitExceeded]
func (t *Transport) Fetch(ctx context.Context, origin *url.URL) (*Payload, error) {
	if origin.Scheme == SchemeFile {
		return t.fetchFile(ctx, origin)
	}
	return t.fetchNetwork(ctx, origin)
}

func (t *Transport) fetchFile(ctx context.Context, origin *url.URL) (*Payload, error) {
	if !t.AllowFileScheme {
		return nil, ErrSchemeNotPermitted
	}

	path, err := filePath(origin)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	defer f.Close()

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	if _, err := buf.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrIOFailure, path, err)
	}

	return &Payload{
		Hint: x509format.FromPath(path),
		Data: gc.Copy(buf),
	}, nil
}

// filePath converts a file URL to a local path. Only the empty host and
// localhost refer to this machine.
func filePath(origin *url.URL) (string, error) {
	if origin.Host != "" && origin.Host != "localhost" {
		return "", fmt.Errorf("%w: remote host %q", ErrPathResolutionFailed, origin.Host)
	}
	if origin.Opaque != "" {
		return "", fmt.Errorf("%w: opaque path %q", ErrPathResolutionFailed, origin.Opaque)
	}

	path := filepath.FromSlash(origin.Path)
	if !filepath.IsAbs(path) {
		return "", fmt.Errorf("%w: %q is not absolute", ErrPathResolutionFailed, origin.Path)
	}

	return path, nil
}

func (t *Transport) fetchNetwork(ctx context.Context, origin *url.URL) (*Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	req.Header.Set("Accept", acceptHeader)
	if t.UserAgent != "" {
		req.Header.Set("User-Agent", t.UserAgent)
	}

	resp, err := t.doer().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	hint := x509format.FromHeader(resp.Header)

	// Get a buffer from the pool
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	if err := t.readBody(buf, resp.Body); err != nil {
		return nil, err
	}

	return &Payload{Hint: hint, Data: gc.Copy(buf)}, nil
}

func (t *Transport) doer() Doer {
	if t.Doer != nil {
		return t.Doer
	}
	return http.DefaultClient
}

// readBody drains body into buf. With a ceiling set, the running total is
// checked after every chunk and reading stops at the first excess.
func (t *Transport) readBody(buf gc.Buffer, body io.Reader) error {
	if t.MaxBytes <= 0 {
		if _, err := buf.ReadFrom(body); err != nil {
			return fmt.Errorf("%w: reading body: %w", ErrIOFailure, err)
		}
		return nil
	}

	var (
		chunk = make([]byte, chunkSize)
		total int64
	)

	for {
		n, err := body.Read(chunk)
		if n > 0 {
			total += int64(n)
			if total > t.MaxBytes {
				return fmt.Errorf("%w: total transferred bytes %d exceeded limit %d",
					ErrSizeLimitExceeded, total, t.MaxBytes)
			}
			buf.Write(chunk[:n])
		}

		switch {
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return fmt.Errorf("%w: reading body: %w", ErrIOFailure, err)
		}
	}
}
