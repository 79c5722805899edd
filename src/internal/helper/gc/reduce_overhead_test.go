// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package gc

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorReader struct{ err error }

func (e *errorReader) Read(p []byte) (int, error) { return 0, e.err }

// foreignBuffer satisfies Buffer without coming from a bytebufferpool.
type foreignBuffer struct{ bytes.Buffer }

func (f *foreignBuffer) Set(p []byte)       { f.Buffer.Reset(); f.Buffer.Write(p) }
func (f *foreignBuffer) SetString(s string) { f.Buffer.Reset(); f.Buffer.WriteString(s) }

func TestBufferOperations(t *testing.T) {
	tests := []struct {
		name  string
		setup func(buf Buffer)
		want  string
	}{
		{
			name:  "Write chunks",
			setup: func(buf Buffer) { buf.Write([]byte("-----BEGIN ")); buf.Write([]byte("CERTIFICATE-----")) },
			want:  "-----BEGIN CERTIFICATE-----",
		},
		{
			name:  "WriteString and WriteByte",
			setup: func(buf Buffer) { buf.WriteString("der"); buf.WriteByte('!') },
			want:  "der!",
		},
		{
			name:  "Set replaces content",
			setup: func(buf Buffer) { buf.WriteString("old"); buf.Set([]byte("new")) },
			want:  "new",
		},
		{
			name:  "SetString replaces content",
			setup: func(buf Buffer) { buf.WriteString("old"); buf.SetString("newer") },
			want:  "newer",
		},
		{
			name:  "Reset clears",
			setup: func(buf Buffer) { buf.WriteString("data"); buf.Reset() },
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := Default.Get()
			defer func() {
				buf.Reset()
				Default.Put(buf)
			}()

			tt.setup(buf)
			assert.Equal(t, tt.want, buf.String())
			assert.Equal(t, len(tt.want), buf.Len())
			assert.Equal(t, []byte(tt.want), append([]byte{}, buf.Bytes()...))
		})
	}
}

func TestBufferReadFrom(t *testing.T) {
	buf := Default.Get()
	defer func() {
		buf.Reset()
		Default.Put(buf)
	}()

	payload := strings.Repeat("0123456789", 1024)
	n, err := buf.ReadFrom(strings.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), n)
	assert.Equal(t, payload, buf.String())

	var out bytes.Buffer
	written, err := buf.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), written)
	assert.Equal(t, payload, out.String())
}

func TestBufferReadFromError(t *testing.T) {
	buf := Default.Get()
	defer func() {
		buf.Reset()
		Default.Put(buf)
	}()

	want := errors.New("connection reset")
	_, err := buf.ReadFrom(&errorReader{err: want})
	assert.ErrorIs(t, err, want)
}

func TestCopy(t *testing.T) {
	buf := Default.Get()
	buf.WriteString("certificate bytes")

	data := Copy(buf)
	buf.Reset()
	buf.WriteString("XXXXXXXXXXXXXXXXX")
	Default.Put(buf)

	assert.Equal(t, "certificate bytes", string(data), "copy must not alias pooled memory")

	empty := Default.Get()
	defer Default.Put(empty)
	assert.NotNil(t, Copy(empty))
	assert.Empty(t, Copy(empty))
}

func TestPoolPutForeignBuffer(t *testing.T) {
	assert.NotPanics(t, func() { Default.Put(&foreignBuffer{}) })
}

func TestPoolConcurrentUse(t *testing.T) {
	var wg sync.WaitGroup

	for i := range 32 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			buf := Default.Get()
			defer func() {
				buf.Reset()
				Default.Put(buf)
			}()

			want := strings.Repeat(string(rune('a'+i%26)), 64)
			buf.WriteString(want)
			assert.Equal(t, want, buf.String())
		}(i)
	}

	wg.Wait()
}
