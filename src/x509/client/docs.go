// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509client fetches certificates from file and network origins and
// decodes them into a caller-chosen representation.
//
// A [Client] combines a transport with a bounded payload size and a cascading
// parser around one decoder backend:
//
//	client, err := x509client.NewDefault(x509client.Config{MaxBytes: 1 << 20})
//	if err != nil {
//		return err
//	}
//
//	origin, _ := url.Parse("https://example.com/ca.p7c")
//	certs, err := client.FetchAll(ctx, origin)
//
// Failures are reported as [*Error] values naming the stage that failed; the
// underlying transport or parse error stays reachable through [errors.Is] and
// [errors.As].
package x509client
