// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509transport

import (
	"bytes"
	"io"
	"net/http"
)

// StaticDoer answers every request with the same canned response.
//
// A zero Status means 200. When Err is set, Do fails with it and no response.
type StaticDoer struct {
	Status int
	Header http.Header
	Body   []byte
	Err    error
}

// Do returns a fresh response built from the canned fields.
func (s *StaticDoer) Do(req *http.Request) (*http.Response, error) {
	if s.Err != nil {
		return nil, s.Err
	}

	status := s.Status
	if status == 0 {
		status = http.StatusOK
	}

	header := s.Header.Clone()
	if header == nil {
		header = http.Header{}
	}

	return &http.Response{
		Status:        http.StatusText(status),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(s.Body)),
		ContentLength: int64(len(s.Body)),
		Request:       req,
	}, nil
}
