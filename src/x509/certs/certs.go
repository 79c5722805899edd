// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/cloudflare/cfssl/crypto/pkcs7"
)

var (
	// ErrInvalidBlockType indicates that a PEM block is not a certificate block.
	ErrInvalidBlockType = errors.New("x509certs: invalid block type")

	// ErrParseCertificate indicates a failure to parse the certificate from the provided data.
	ErrParseCertificate = errors.New("x509certs: failed to parse certificate")

	// ErrTrailingData indicates that bytes follow a complete DER certificate.
	ErrTrailingData = errors.New("x509certs: trailing data after certificate")

	// ErrParsePKCS7 indicates a failure to parse PKCS7 formatted data.
	ErrParsePKCS7 = errors.New("x509certs: failed to parse PKCS7 data")

	// ErrNotSignedData indicates a well-formed PKCS7 ContentInfo that does not carry SignedData.
	ErrNotSignedData = errors.New("x509certs: PKCS7 content is not SignedData")
)

// pemCertificateType is the label of PEM certificate blocks.
const pemCertificateType = "CERTIFICATE"

// Decoder decodes certificates of representation T from raw bytes.
//
// Each operation returns the certificates in the order they appear in the input.
// An empty, non-error result is valid for DecodePEM (no blocks present) and for
// DecodePKCS7 (SignedData without a certificates field).
//
// Implementations must be safe for concurrent use.
type Decoder[T any] interface {
	// DecodeDER interprets the whole input as exactly one DER certificate.
	DecodeDER(data []byte) ([]T, error)
	// DecodePEM interprets the input as zero or more PEM certificate blocks.
	DecodePEM(data []byte) ([]T, error)
	// DecodePKCS7 interprets the input as a DER ContentInfo wrapping SignedData.
	DecodePKCS7(data []byte) ([]T, error)
}

// Certificate decodes and encodes [X.509] certificates using crypto/x509 and
// Cloudflare's PKCS7 parser.
//
// [X.509]: https://en.wikipedia.org/wiki/X.509
type Certificate struct {
	certBlockType string
}

// New creates a new Certificate with default settings.
func New() *Certificate {
	return &Certificate{
		certBlockType: pemCertificateType,
	}
}

// DecodeDER decodes a single DER certificate.
func (c *Certificate) DecodeDER(data []byte) ([]*x509.Certificate, error) {
	cert, err := c.parse(data)
	if err != nil {
		return nil, err
	}
	return []*x509.Certificate{cert}, nil
}

// DecodePEM decodes every certificate block of a PEM chain.
func (c *Certificate) DecodePEM(data []byte) ([]*x509.Certificate, error) {
	return decodePEMBlocks(data, c.certBlockType, c.parse)
}

// DecodePKCS7 decodes the certificates carried by a PKCS7 SignedData bundle.
//
// Cloudflare's parser handles the common shape. Bundles it refuses, such as
// openssl's -nocrl output, are walked directly and only plain certificate
// choices are kept.
func (c *Certificate) DecodePKCS7(data []byte) ([]*x509.Certificate, error) {
	p, err := pkcs7.ParsePKCS7(data)
	if err != nil {
		return c.decodeSignedData(data)
	}
	if p.ContentInfo != "SignedData" {
		return nil, fmt.Errorf("%w: got %s", ErrNotSignedData, p.ContentInfo)
	}

	certs := p.Content.SignedData.Certificates
	if certs == nil {
		certs = []*x509.Certificate{}
	}
	return certs, nil
}

func (c *Certificate) decodeSignedData(data []byte) ([]*x509.Certificate, error) {
	ders, err := signedDataCertificates(data)
	if err != nil {
		return nil, err
	}

	certs := make([]*x509.Certificate, 0, len(ders))
	for _, der := range ders {
		cert, err := c.parse(der)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParsePKCS7, err)
		}
		certs = append(certs, cert)
	}
	return certs, nil
}

func (c *Certificate) parse(der []byte) (*x509.Certificate, error) {
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseCertificate, err)
	}
	return cert, nil
}

// EncodePEM encodes a certificate to PEM format.
func (c *Certificate) EncodePEM(cert *x509.Certificate) []byte {
	block := pem.Block{
		Type:  c.certBlockType,
		Bytes: cert.Raw,
	}
	return pem.EncodeToMemory(&block)
}

// EncodeDER encodes a certificate to DER format.
func (c *Certificate) EncodeDER(cert *x509.Certificate) []byte { return cert.Raw }

// EncodeMultiplePEM encodes multiple certificates to PEM format.
func (c *Certificate) EncodeMultiplePEM(certs []*x509.Certificate) []byte {
	var data []byte

	for _, cert := range certs {
		data = append(data, c.EncodePEM(cert)...)
	}

	return data
}

// EncodeMultipleDER encodes multiple certificates to DER format.
func (c *Certificate) EncodeMultipleDER(certs []*x509.Certificate) []byte {
	var data []byte

	for _, cert := range certs {
		data = append(data, c.EncodeDER(cert)...)
	}

	return data
}

// decodePEMBlocks parses every PEM block of data with parse.
// Input without any PEM block yields an empty result.
func decodePEMBlocks[T any](data []byte, blockType string, parse func([]byte) (T, error)) ([]T, error) {
	out := []T{}

	for len(data) > 0 {
		block, rest := pem.Decode(data)
		if block == nil {
			break
		}
		if block.Type != blockType {
			return nil, fmt.Errorf("%w: %s", ErrInvalidBlockType, block.Type)
		}

		v, err := parse(block.Bytes)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
		data = rest
	}

	return out, nil
}
