// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import "bytes"

// Passthrough is a debugging backend that never decodes anything.
// Every operation succeeds and returns a copy of the whole input as a single element,
// which makes it useful for inspecting what a transport actually delivered.
type Passthrough struct{}

// DecodeDER returns the input as one element.
func (Passthrough) DecodeDER(data []byte) ([][]byte, error) { return passthrough(data), nil }

// DecodePEM returns the input as one element.
func (Passthrough) DecodePEM(data []byte) ([][]byte, error) { return passthrough(data), nil }

// DecodePKCS7 returns the input as one element.
func (Passthrough) DecodePKCS7(data []byte) ([][]byte, error) { return passthrough(data), nil }

func passthrough(data []byte) [][]byte {
	out := bytes.Clone(data)
	if out == nil {
		out = []byte{}
	}
	return [][]byte{out}
}
