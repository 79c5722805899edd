// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509transport retrieves raw certificate payloads from file and
// network origins.
//
// Network payloads are streamed in chunks and the transfer is abandoned as
// soon as the running total passes the configured ceiling, so an oversized
// body is never buffered in full. Local files are read whole.
//
// HTTP requests go through a [Doer], which [*http.Client] satisfies. Tests and
// offline callers can substitute a [StaticDoer] that serves a canned response.
package x509transport
