// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509client

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyResult indicates that a first-certificate request found no certificates.
	ErrEmptyResult = errors.New("x509client: no certificates found")

	// ErrInvalidConfig indicates a configuration the client cannot be built from.
	ErrInvalidConfig = errors.New("x509client: invalid configuration")

	// ErrInvalidOrigin indicates an origin that is neither a URL nor an absolute path.
	ErrInvalidOrigin = errors.New("x509client: invalid origin")
)

// Stage identifies the step of a fetch that failed.
type Stage int

const (
	// StageTransport covers retrieval of the raw payload.
	StageTransport Stage = iota + 1
	// StageParse covers decoding of the payload.
	StageParse
	// StageSelect covers picking a certificate out of the decoded collection.
	StageSelect
)

// String returns the stage name, also used as the failure label in metrics.
func (s Stage) String() string {
	switch s {
	case StageTransport:
		return "transport"
	case StageParse:
		return "parse"
	case StageSelect:
		return "select"
	default:
		return "unknown"
	}
}

// Error reports a failed fetch.
type Error struct {
	Stage  Stage
	Origin string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("x509client: %s failed for %s: %v", e.Stage, e.Origin, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
