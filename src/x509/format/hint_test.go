// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509format_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	x509format "github.com/H0llyW00dzZ/x509-client/src/x509/format"
)

func TestFromPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected x509format.Hint
	}{
		{name: "lower cer", path: "/tmp/leaf.cer", expected: x509format.SingleCert},
		{name: "upper cer", path: "/tmp/leaf.CER", expected: x509format.SingleCert},
		{name: "mixed cer", path: "/tmp/leaf.Cer", expected: x509format.SingleCert},
		{name: "p7c", path: "bundle.p7c", expected: x509format.PKCS7Bundle},
		{name: "P7C", path: "bundle.P7C", expected: x509format.PKCS7Bundle},
		{name: "pem", path: "/etc/ssl/chain.pem", expected: x509format.PEMChain},
		{name: "dotted directory", path: "/srv/certs.pem/leaf", expected: x509format.Unknown},
		{name: "unknown extension", path: "/tmp/leaf.crt", expected: x509format.Unknown},
		{name: "question mark extension", path: "/tmp/resource.xxx.?", expected: x509format.Unknown},
		{name: "no extension", path: "/tmp/leaf", expected: x509format.Unknown},
		{name: "trailing dot", path: "/tmp/leaf.", expected: x509format.Unknown},
		{name: "empty", path: "", expected: x509format.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, x509format.FromPath(tt.path))
		})
	}
}

func TestFromContentType(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected x509format.Hint
	}{
		{name: "pkix-cert", value: "application/pkix-cert", expected: x509format.SingleCert},
		{name: "pkix-cert upper", value: "APPLICATION/PKIX-CERT", expected: x509format.SingleCert},
		{name: "pkcs7-mime", value: "application/pkcs7-mime", expected: x509format.PKCS7Bundle},
		{name: "pkcs7-mime mixed", value: "Application/PKCS7-Mime", expected: x509format.PKCS7Bundle},
		{name: "pem chain", value: "application/pem-certificate-chain", expected: x509format.PEMChain},
		{name: "parameters are not stripped", value: "application/pkix-cert; charset=binary", expected: x509format.Unknown},
		{name: "octet-stream", value: "application/octet-stream", expected: x509format.Unknown},
		{name: "garbage", value: "?/?", expected: x509format.Unknown},
		{name: "non ascii", value: "application/pkix-cert\x80", expected: x509format.Unknown},
		{name: "empty", value: "", expected: x509format.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, x509format.FromContentType(tt.value))
		})
	}
}

func TestFromHeader(t *testing.T) {
	h := http.Header{}
	assert.Equal(t, x509format.Unknown, x509format.FromHeader(h), "missing header")
	assert.Equal(t, x509format.Unknown, x509format.FromHeader(nil), "nil header")

	h.Set("Content-Type", "application/PKCS7-mime")
	assert.Equal(t, x509format.PKCS7Bundle, x509format.FromHeader(h))
}

func TestHint_String(t *testing.T) {
	assert.Equal(t, "cer", x509format.SingleCert.String())
	assert.Equal(t, "p7c", x509format.PKCS7Bundle.String())
	assert.Equal(t, "pem", x509format.PEMChain.String())
	assert.Equal(t, "unknown", x509format.Unknown.String())
	assert.Equal(t, "unknown", x509format.Hint(42).String())
}
