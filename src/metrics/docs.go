// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package metrics provides a Prometheus-based recorder for certificate client activity.
//
// Collectors are registered on a caller-supplied registry rather than the global
// default, so several clients or tests can keep independent counts. [WriteText]
// renders a registry in the Prometheus text exposition format.
package metrics
