// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509parse

import (
	"errors"
	"fmt"

	x509certs "github.com/H0llyW00dzZ/x509-client/src/x509/certs"
	x509format "github.com/H0llyW00dzZ/x509-client/src/x509/format"
)

var (
	// ErrUnknownFormatNotPermitted indicates a strict parse of a payload without a usable format hint.
	ErrUnknownFormatNotPermitted = errors.New("x509parse: unknown format is not permitted in strict mode")

	// ErrNoFormatMatched indicates that every decoder failed during a relaxed parse.
	ErrNoFormatMatched = errors.New("x509parse: no format matched the payload")
)

// DecodeError reports a strict parse whose hinted decoder failed.
type DecodeError struct {
	Hint x509format.Hint
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("x509parse: decoding as %s failed: %v", e.Hint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// cascade is the relaxed fallback order after the hinted format.
var cascade = [...]x509format.Hint{
	x509format.SingleCert,
	x509format.PKCS7Bundle,
	x509format.PEMChain,
}

// Parser decodes payloads with a fixed decoder and policy.
//
// A Parser holds no mutable state and is safe for concurrent use when its
// decoder is.
type Parser[T any] struct {
	decoder x509certs.Decoder[T]
	strict  bool
}

// New creates a Parser around decoder.
//
// Parameters:
//   - decoder: Backend producing certificates of representation T
//   - strict: When true, only the hinted decoder runs and Unknown is refused
//
// Returns:
//   - *Parser[T]: Parser ready for use
func New[T any](decoder x509certs.Decoder[T], strict bool) *Parser[T] {
	return &Parser[T]{decoder: decoder, strict: strict}
}

// Strict reports whether the parser runs in strict mode.
func (p *Parser[T]) Strict() bool { return p.strict }

// Parse decodes data according to hint and the parser policy.
//
// Parameters:
//   - hint: Format derived from transport metadata
//   - data: Raw payload
//
// Returns:
//   - []T: Certificates in the order the decoder emitted them; may be empty
//   - error: [ErrUnknownFormatNotPermitted] or a [*DecodeError] in strict mode,
//     [ErrNoFormatMatched] in relaxed mode
func (p *Parser[T]) Parse(hint x509format.Hint, data []byte) ([]T, error) {
	if p.strict {
		return p.parseStrict(hint, data)
	}
	return p.parseRelaxed(hint, data)
}

func (p *Parser[T]) parseStrict(hint x509format.Hint, data []byte) ([]T, error) {
	if hint == x509format.Unknown {
		return nil, ErrUnknownFormatNotPermitted
	}

	certs, err := p.decode(hint, data)
	if err != nil {
		return nil, &DecodeError{Hint: hint, Err: err}
	}
	return certs, nil
}

func (p *Parser[T]) parseRelaxed(hint x509format.Hint, data []byte) ([]T, error) {
	steps := make([]x509format.Hint, 0, len(cascade)+1)
	if hint != x509format.Unknown {
		steps = append(steps, hint)
	}
	for _, h := range cascade {
		if h != hint {
			steps = append(steps, h)
		}
	}

	for _, h := range steps {
		if certs, err := p.decode(h, data); err == nil {
			return certs, nil
		}
	}

	return nil, ErrNoFormatMatched
}

func (p *Parser[T]) decode(hint x509format.Hint, data []byte) ([]T, error) {
	switch hint {
	case x509format.SingleCert:
		return p.decoder.DecodeDER(data)
	case x509format.PKCS7Bundle:
		return p.decoder.DecodePKCS7(data)
	case x509format.PEMChain:
		return p.decoder.DecodePEM(data)
	default:
		return nil, fmt.Errorf("x509parse: no decoder for format %s", hint)
	}
}
