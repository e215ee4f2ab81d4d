// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package bytesio

import (
	"errors"
	"testing"
)

func TestReadUvarint(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want uint64
		err  error
	}{
		{"s1-300", []byte{0xac, 0x02}, 300, nil},
		{"s1-zero", []byte{0x00}, 0, nil},
		{"s1-overflow", []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x02}, 0, ErrRange},
		{"empty-stream", []byte{}, 0, ErrEndOfStream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadUvarint(NewMemoryStream(tt.in))
			if !errors.Is(err, tt.err) {
				t.Fatalf("ReadUvarint(%x) err = %v, want %v", tt.in, err, tt.err)
			}
			if err == nil && got != tt.want {
				t.Errorf("ReadUvarint(%x) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestReadVarintZigZag(t *testing.T) {
	tests := []struct {
		in   []byte
		want int64
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x01}, -1},
		{[]byte{0x02}, 1},
		{[]byte{0x03}, -2},
	}
	for _, tt := range tests {
		got, err := ReadVarint(NewMemoryStream(tt.in))
		if err != nil {
			t.Fatalf("ReadVarint(%x) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ReadVarint(%x) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestUvarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 16384, 1 << 32, 1<<64 - 1}
	for _, v := range values {
		buf := AppendUvarint(nil, v)
		if len(buf) > MaxVarintBytes {
			t.Fatalf("encode(%d) produced %d bytes, over the %d-byte cap", v, len(buf), MaxVarintBytes)
		}
		got, err := ReadUvarint(NewMemoryStream(buf))
		if err != nil {
			t.Fatalf("decode(encode(%d)) err = %v", v, err)
		}
		if got != v {
			t.Errorf("decode(encode(%d)) = %d", v, got)
		}
	}
}

func TestVarintRoundTrip(t *testing.T) {
	values := []int64{0, -1, 1, -2, 1 << 40, -(1 << 40)}
	for _, v := range values {
		buf := AppendVarint(nil, v)
		got, err := ReadVarint(NewMemoryStream(buf))
		if err != nil {
			t.Fatalf("decode(encode(%d)) err = %v", v, err)
		}
		if got != v {
			t.Errorf("decode(encode(%d)) = %d", v, got)
		}
	}
}
