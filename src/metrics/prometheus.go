// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	x509client "github.com/H0llyW00dzZ/x509-client/src/x509/client"
)

const namespace = "x509_client"

// Prometheus implements [x509client.Recorder] using Prometheus collectors.
type Prometheus struct {
	transfers     *prometheus.CounterVec
	transferBytes *prometheus.HistogramVec
	results       *prometheus.CounterVec
}

var _ x509client.Recorder = (*Prometheus)(nil)

// NewPrometheus creates a recorder whose collectors are registered on reg.
//
// Parameters:
//   - reg: Registry receiving the collectors; registering twice on the same registry panics
//
// Returns:
//   - *Prometheus: Recorder ready to be passed as x509client.Config.Metrics
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	factory := promauto.With(reg)

	return &Prometheus{
		transfers: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transfers_total",
			Help:      "Total number of completed payload transfers",
		}, []string{"scheme"}),

		// 256 B .. 4 MiB
		transferBytes: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transfer_bytes",
			Help:      "Size of transferred payloads in bytes",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
		}, []string{"scheme"}),

		results: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_results_total",
			Help:      "Total number of fetch calls by outcome",
		}, []string{"result"}), // result: ok, transport, parse, select
	}
}

// RecordTransfer records a completed transfer of n bytes over scheme.
func (p *Prometheus) RecordTransfer(scheme string, n int) {
	p.transfers.WithLabelValues(scheme).Inc()
	p.transferBytes.WithLabelValues(scheme).Observe(float64(n))
}

// RecordResult records the outcome of one fetch call.
func (p *Prometheus) RecordResult(result string) {
	p.results.WithLabelValues(result).Inc()
}

// WriteText gathers g and writes every metric family in the Prometheus text format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("metrics: gather: %w", err)
	}

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("metrics: encode %s: %w", mf.GetName(), err)
		}
	}

	return nil
}
