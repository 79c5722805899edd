// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509client

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/H0llyW00dzZ/x509-client/src/logger"
	x509certs "github.com/H0llyW00dzZ/x509-client/src/x509/certs"
	x509parse "github.com/H0llyW00dzZ/x509-client/src/x509/parse"
	x509transport "github.com/H0llyW00dzZ/x509-client/src/x509/transport"
)

// ResultOK is the metrics label of a successful fetch. Failures use the [Stage] name.
const ResultOK = "ok"

// Recorder receives client activity for metrics collection.
// Implementations must be safe for concurrent use.
type Recorder interface {
	// RecordTransfer is called once per retrieved payload with its size in bytes.
	RecordTransfer(scheme string, n int)
	// RecordResult is called once per fetch call with [ResultOK] or a [Stage] name.
	RecordResult(result string)
}

type nopRecorder struct{}

func (nopRecorder) RecordTransfer(string, int) {}
func (nopRecorder) RecordResult(string)        {}

// Config holds client settings. It is copied by [New]; later changes have no effect.
//
// MaxBytes uses 0 for "no ceiling", so a zero-byte ceiling cannot be expressed.
// Any certificate payload is non-empty, so such a ceiling would refuse every
// network fetch and is not worth a pointer or sentinel type.
type Config struct {
	Strict          bool               // Only the hinted decoder runs and unknown formats are refused
	AllowFileScheme bool               // Permit file:// origins
	MaxBytes        int64              // Network payload ceiling in bytes, 0 means unlimited
	HTTPClient      x509transport.Doer // Custom HTTP implementation, nil builds one from Timeout
	Timeout         time.Duration      // Request timeout of the built HTTP client
	UserAgent       string             // Custom User-Agent, if empty will be constructed from Version
	Version         string             // Application version for the default User-Agent
	Logger          logger.Logger      // Debug sink, nil discards
	Metrics         Recorder           // Activity recorder, nil discards
}

// Client fetches and decodes certificates of representation T.
//
// Client is safe for concurrent use.
type Client[T any] struct {
	transport *x509transport.Transport
	parser    *x509parse.Parser[T]
	log       logger.Logger
	metrics   Recorder
}

// New creates a Client around decoder.
//
// Parameters:
//   - decoder: Backend producing certificates of representation T
//   - cfg: Client settings
//
// Returns:
//   - *Client[T]: Client ready for use
//   - error: [ErrInvalidConfig] for a nil decoder or negative size ceiling
func New[T any](decoder x509certs.Decoder[T], cfg Config) (*Client[T], error) {
	if decoder == nil {
		return nil, fmt.Errorf("%w: decoder is nil", ErrInvalidConfig)
	}
	if cfg.MaxBytes < 0 {
		return nil, fmt.Errorf("%w: negative size limit %d", ErrInvalidConfig, cfg.MaxBytes)
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("%w: negative timeout %s", ErrInvalidConfig, cfg.Timeout)
	}

	httpConfig := x509transport.NewHTTPConfig(cfg.Version)
	httpConfig.UserAgent = cfg.UserAgent
	if cfg.Timeout > 0 {
		httpConfig.Timeout = cfg.Timeout
	}

	doer := cfg.HTTPClient
	if doer == nil {
		doer = httpConfig.Client()
	}

	c := &Client[T]{
		transport: &x509transport.Transport{
			AllowFileScheme: cfg.AllowFileScheme,
			MaxBytes:        cfg.MaxBytes,
			Doer:            doer,
			UserAgent:       httpConfig.GetUserAgent(),
		},
		parser:  x509parse.New(decoder, cfg.Strict),
		log:     cfg.Logger,
		metrics: cfg.Metrics,
	}

	if c.log == nil {
		c.log = logger.Discard()
	}
	if c.metrics == nil {
		c.metrics = nopRecorder{}
	}

	return c, nil
}

// NewDefault creates a Client producing [*x509.Certificate] values.
func NewDefault(cfg Config) (*Client[*x509.Certificate], error) {
	return New[*x509.Certificate](x509certs.New(), cfg)
}

// Strict reports whether the client parses in strict mode.
func (c *Client[T]) Strict() bool { return c.parser.Strict() }

// FetchAll retrieves origin and decodes every certificate it holds.
//
// Parameters:
//   - ctx: Context for cancellation and timeouts
//   - origin: file:// URL or network URL
//
// Returns:
//   - []T: Certificates in decoder emission order; may be empty
//   - error: [*Error] with [StageTransport] or [StageParse]
func (c *Client[T]) FetchAll(ctx context.Context, origin *url.URL) ([]T, error) {
	certs, err := c.fetch(ctx, origin)
	c.record(err)
	return certs, err
}

// FetchFirst retrieves origin and returns its first certificate.
//
// Parameters:
//   - ctx: Context for cancellation and timeouts
//   - origin: file:// URL or network URL
//
// Returns:
//   - T: First certificate in decoder emission order
//   - error: [*Error] with [StageTransport], [StageParse] or [StageSelect];
//     the latter wraps [ErrEmptyResult]
func (c *Client[T]) FetchFirst(ctx context.Context, origin *url.URL) (T, error) {
	var zero T

	certs, err := c.fetch(ctx, origin)
	if err == nil && len(certs) == 0 {
		err = &Error{Stage: StageSelect, Origin: origin.String(), Err: ErrEmptyResult}
	}

	c.record(err)
	if err != nil {
		return zero, err
	}
	return certs[0], nil
}

func (c *Client[T]) fetch(ctx context.Context, origin *url.URL) ([]T, error) {
	requestID := uuid.NewString()
	c.log.Debugf("[%s] attempting certificate(s) download: %s", requestID, origin)

	payload, err := c.transport.Fetch(ctx, origin)
	if err != nil {
		return nil, &Error{Stage: StageTransport, Origin: origin.String(), Err: err}
	}
	c.metrics.RecordTransfer(origin.Scheme, len(payload.Data))

	certs, err := c.parser.Parse(payload.Hint, payload.Data)
	if err != nil {
		return nil, &Error{Stage: StageParse, Origin: origin.String(), Err: err}
	}

	c.log.Debugf("[%s] decoded %d certificate(s) from %d bytes (format hint %s)",
		requestID, len(certs), len(payload.Data), payload.Hint)

	return certs, nil
}

func (c *Client[T]) record(err error) {
	if err == nil {
		c.metrics.RecordResult(ResultOK)
		return
	}
	var e *Error
	if errors.As(err, &e) {
		c.metrics.RecordResult(e.Stage.String())
	}
}

// ParseOrigin turns a command-line or tool argument into an origin URL.
//
// Values with a URL scheme are parsed as URLs. Anything else must be a
// filesystem path and is converted to an absolute file:// URL.
func ParseOrigin(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidOrigin)
	}

	// A single-letter scheme is a Windows drive, not a URL.
	if u, err := url.Parse(raw); err == nil && len(u.Scheme) > 1 {
		return u, nil
	}

	path, err := filepath.Abs(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOrigin, err)
	}

	path = filepath.ToSlash(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return &url.URL{Scheme: x509transport.SchemeFile, Path: path}, nil
}
