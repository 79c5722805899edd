// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509format

import (
	"net/http"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
)

// Hint identifies the encoding a payload claims to use.
type Hint int

const (
	// Unknown means the metadata did not name a supported encoding.
	Unknown Hint = iota
	// SingleCert is a single DER-encoded certificate (.cer, application/pkix-cert).
	SingleCert
	// PKCS7Bundle is a DER-encoded [PKCS7] SignedData bundle (.p7c, application/pkcs7-mime).
	//
	// [PKCS7]: https://grokipedia.com/page/PKCS_7
	PKCS7Bundle
	// PEMChain is zero or more concatenated PEM certificates (.pem, application/pem-certificate-chain).
	PEMChain
)

var extensions = map[string]Hint{
	"cer": SingleCert,
	"p7c": PKCS7Bundle,
	"pem": PEMChain,
}

var contentTypes = map[string]Hint{
	"application/pkix-cert":             SingleCert,
	"application/pkcs7-mime":            PKCS7Bundle,
	"application/pem-certificate-chain": PEMChain,
}

// String returns the file extension associated with the hint, or "unknown".
func (h Hint) String() string {
	switch h {
	case SingleCert:
		return "cer"
	case PKCS7Bundle:
		return "p7c"
	case PEMChain:
		return "pem"
	default:
		return "unknown"
	}
}

// FromPath derives a hint from the extension of path.
// A path without an extension, or with an unsupported one, yields Unknown.
func FromPath(path string) Hint {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return Unknown
	}
	return lookup(extensions, ext)
}

// FromContentType derives a hint from a Content-Type header value.
//
// The comparison is an exact, case-insensitive match against the whole value;
// media type parameters are not stripped. Values carrying bytes outside of
// visible ASCII are treated as unparseable and yield Unknown.
func FromContentType(value string) Hint {
	if value == "" || !isVisibleASCII(value) {
		return Unknown
	}
	return lookup(contentTypes, value)
}

// FromHeader derives a hint from the Content-Type entry of h.
func FromHeader(h http.Header) Hint {
	if h == nil {
		return Unknown
	}
	return FromContentType(h.Get("Content-Type"))
}

// lookup folds key before matching; a Caser is stateful, so one is made per call.
func lookup(table map[string]Hint, key string) Hint {
	if hint, ok := table[cases.Fold().String(key)]; ok {
		return hint
	}
	return Unknown
}

func isVisibleASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\t' && (c < ' ' || c > '~') {
			return false
		}
	}
	return true
}
