// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// x509-client is a command-line tool that downloads X.509 certificates from a
// URL or file and prints them.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/x509-client/cmd/x509-client@latest
//
// # Usage
//
//	x509-client [FLAGS] ORIGIN
//
// ORIGIN is an http(s) URL, a file:// URL or a local path. File origins need
// --allow-file.
//
// # Flags
//
//	-c, --config      Configuration file (JSON or YAML, default: $X509_CLIENT_CONFIG_FILE)
//	    --strict      Decode only the detected format and refuse unknown formats
//	    --allow-file  Permit file:// origins and local paths
//	    --max-bytes   Abort downloads larger than this many bytes (0: unlimited)
//	-b, --backend     Decoder backend: x509, asn1 or raw
//	    --first       Output only the first certificate
//	-f, --format      Output format: pem, der, table or json
//	-o, --output      Destination file (default: stdout)
//	    --timeout     HTTP request timeout
//	-v, --verbose     Log each download attempt to stderr
//	    --metrics     Print client metrics to stderr after the fetch
//
// # Examples
//
// Print the certificates of a PKCS#7 bundle as PEM:
//
//	x509-client https://pki.example.com/ca.p7c
//
// Summarize a local PEM chain:
//
//	x509-client --allow-file --format table ./chain.pem
//
// Save the leaf of a bundle in DER form:
//
//	x509-client --first --format der -o leaf.der https://pki.example.com/ca.p7c
//
// # Exit Codes
//
// 0 on success, 1 on any error and 130 when interrupted.
package main
