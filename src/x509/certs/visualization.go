// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// Summary is a representation-independent description of a decoded certificate.
type Summary struct {
	Subject      string    `json:"subject,omitempty"`
	Issuer       string    `json:"issuer,omitempty"`
	SerialNumber string    `json:"serialNumber,omitempty"`
	NotBefore    time.Time `json:"notBefore"`
	NotAfter     time.Time `json:"notAfter"`
	Size         int       `json:"size"`
}

// Summarize describes a certificate produced by any backend of this package.
// Values of other types yield a zero Summary.
func Summarize(v any) Summary {
	switch c := v.(type) {
	case *x509.Certificate:
		return Summary{
			Subject:      c.Subject.String(),
			Issuer:       c.Issuer.String(),
			SerialNumber: c.SerialNumber.String(),
			NotBefore:    c.NotBefore,
			NotAfter:     c.NotAfter,
			Size:         len(c.Raw),
		}
	case *Structure:
		s := Summary{
			Subject:   c.Subject.String(),
			Issuer:    c.Issuer.String(),
			NotBefore: c.NotBefore,
			NotAfter:  c.NotAfter,
			Size:      len(c.Raw),
		}
		if c.SerialNumber != nil {
			s.SerialNumber = c.SerialNumber.String()
		}
		return s
	case []byte:
		return Summary{Size: len(c)}
	default:
		return Summary{}
	}
}

// DER returns the encoded bytes held by a certificate produced by any backend
// of this package, or nil for values of other types.
func DER(v any) []byte {
	switch c := v.(type) {
	case *x509.Certificate:
		return c.Raw
	case *Structure:
		return c.Raw
	case []byte:
		return c
	default:
		return nil
	}
}

// EncodePEMBlocks armors each DER value as a PEM certificate block.
func EncodePEMBlocks(ders [][]byte) []byte {
	var data []byte

	for _, der := range ders {
		data = append(data, pem.EncodeToMemory(&pem.Block{Type: pemCertificateType, Bytes: der})...)
	}

	return data
}

// RenderTable renders certificate summaries as a markdown table.
//
// Parameters:
//   - summaries: Certificates to render, in collection order
//
// Returns:
//   - string: Markdown table representation
func RenderTable(summaries []Summary) string {
	if len(summaries) == 0 {
		return "No certificates to display"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	table.Header([]string{"#", "Subject", "Issuer", "Serial", "Valid Until", "Size"})

	var rows [][]string
	for i, s := range summaries {
		notAfter := ""
		if !s.NotAfter.IsZero() {
			notAfter = s.NotAfter.Format("2006-01-02")
		}

		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			s.Subject,
			s.Issuer,
			s.SerialNumber,
			notAfter,
			fmt.Sprintf("%d bytes", s.Size),
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

// ToVisualizationJSON converts certificate summaries to structured JSON.
//
// Parameters:
//   - origin: Origin the certificates were fetched from
//   - summaries: Certificates to include, in collection order
//
// Returns:
//   - []byte: JSON document
//   - error: Error if JSON marshaling fails
func ToVisualizationJSON(origin string, summaries []Summary) ([]byte, error) {
	type CertificateVizData struct {
		Index int `json:"index"`
		Summary
	}

	type VisualizationData struct {
		Timestamp    string               `json:"timestamp"`
		Origin       string               `json:"origin"`
		Count        int                  `json:"count"`
		Certificates []CertificateVizData `json:"certificates"`
	}

	data := VisualizationData{
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Origin:       origin,
		Count:        len(summaries),
		Certificates: make([]CertificateVizData, len(summaries)),
	}

	for i, s := range summaries {
		data.Certificates[i] = CertificateVizData{Index: i, Summary: s}
	}

	return json.MarshalIndent(data, "", "  ")
}
