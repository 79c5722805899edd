// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509parse selects and runs certificate decoders for a payload.
//
// In strict mode the format hint alone decides which decoder runs and an
// unknown hint is refused. In relaxed mode the hinted decoder runs first and
// the remaining formats are tried in a fixed order until one succeeds:
//
//	SingleCert (DER) -> PKCS7Bundle -> PEMChain
//
// Relaxed mode returns the first success as is. Note that a PEM decode of
// input without PEM blocks succeeds with an empty result, so a relaxed parse
// of arbitrary bytes that reaches the PEM step yields zero certificates.
package x509parse
