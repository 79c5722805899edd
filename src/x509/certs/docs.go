// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs provides the decoding backends for [X.509] certificates.
//
// Every backend implements [Decoder] for its own certificate representation and
// understands the same three wire formats: a single DER certificate, a chain of
// [PEM] certificates and a DER [PKCS7] SignedData bundle. The package ships three
// backends:
//   - Certificate: crypto/x509 and Cloudflare's PKCS7 parser, yields *x509.Certificate.
//   - ASN1: walks the DER structures with cryptobyte, yields *Structure.
//   - Passthrough: hands back the raw input untouched, yields []byte.
//
// [X.509]: https://grokipedia.com/page/X.509
// [PKCS7]: https://grokipedia.com/page/PKCS_7
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package x509certs
