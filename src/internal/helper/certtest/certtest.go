// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package certtest builds certificate fixtures for tests: self-signed
// certificates, PEM chains and PKCS7 SignedData envelopes.
package certtest

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/pem"
	"math/big"
	"testing"
	"time"

	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

var (
	oidData       = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 7, 1}
	oidSignedData = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 7, 2}
)

// NewCertificate returns a freshly generated self-signed ECDSA certificate.
func NewCertificate(tb testing.TB, commonName string) *x509.Certificate {
	tb.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		tb.Fatalf("generate key: %v", err)
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 62))
	if err != nil {
		tb.Fatalf("generate serial: %v", err)
	}

	template := &x509.Certificate{
		SerialNumber: serial,
		Subject:      pkix.Name{CommonName: commonName, Organization: []string{"x509-client tests"}},
		NotBefore:    time.Now().Add(-time.Hour).UTC().Truncate(time.Second),
		NotAfter:     time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second),
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	if err != nil {
		tb.Fatalf("create certificate: %v", err)
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		tb.Fatalf("parse certificate: %v", err)
	}
	return cert
}

// PEM armors certs as a concatenated PEM chain.
func PEM(certs ...*x509.Certificate) []byte {
	var out []byte
	for _, c := range certs {
		out = append(out, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: c.Raw})...)
	}
	return out
}

// Bundle describes a PKCS7 SignedData envelope to build.
type Bundle struct {
	// Certificates are added to the certificates set as plain certificate choices.
	Certificates []*x509.Certificate
	// AttributeCertificates are added as [1] tagged choices with the given content.
	AttributeCertificates [][]byte
	// OmitCertificates leaves the optional certificates field out entirely.
	OmitCertificates bool
	// EmptyCRLs adds an empty crls field.
	EmptyCRLs bool
}

// PKCS7 encodes b as a DER ContentInfo carrying SignedData.
func PKCS7(b Bundle) []byte {
	var builder cryptobyte.Builder

	builder.AddASN1(cbasn1.SEQUENCE, func(ci *cryptobyte.Builder) {
		ci.AddASN1ObjectIdentifier(oidSignedData)
		ci.AddASN1(cbasn1.Tag(0).Constructed().ContextSpecific(), func(content *cryptobyte.Builder) {
			content.AddASN1(cbasn1.SEQUENCE, func(sd *cryptobyte.Builder) {
				sd.AddASN1Int64(1)
				sd.AddASN1(cbasn1.SET, func(*cryptobyte.Builder) {})
				sd.AddASN1(cbasn1.SEQUENCE, func(eci *cryptobyte.Builder) {
					eci.AddASN1ObjectIdentifier(oidData)
				})
				if !b.OmitCertificates {
					sd.AddASN1(cbasn1.Tag(0).Constructed().ContextSpecific(), func(set *cryptobyte.Builder) {
						for _, c := range b.Certificates {
							set.AddBytes(c.Raw)
						}
						for _, attr := range b.AttributeCertificates {
							set.AddASN1(cbasn1.Tag(1).Constructed().ContextSpecific(), func(a *cryptobyte.Builder) {
								a.AddBytes(attr)
							})
						}
					})
				}
				if b.EmptyCRLs {
					sd.AddASN1(cbasn1.Tag(1).Constructed().ContextSpecific(), func(*cryptobyte.Builder) {})
				}
				sd.AddASN1(cbasn1.SET, func(*cryptobyte.Builder) {})
			})
		})
	})

	return builder.BytesOrPanic()
}

// Data encodes a PKCS7 ContentInfo of type Data, which carries no certificates.
func Data(payload []byte) []byte {
	var builder cryptobyte.Builder

	builder.AddASN1(cbasn1.SEQUENCE, func(ci *cryptobyte.Builder) {
		ci.AddASN1ObjectIdentifier(oidData)
		ci.AddASN1(cbasn1.Tag(0).Constructed().ContextSpecific(), func(content *cryptobyte.Builder) {
			content.AddASN1OctetString(payload)
		})
	})

	return builder.BytesOrPanic()
}
