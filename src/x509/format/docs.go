// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509format derives a certificate encoding hint from transport metadata.
// A hint comes either from a file extension or from an HTTP Content-Type header and
// is only ever a hint: the parser decides how far to trust it.
package x509format
