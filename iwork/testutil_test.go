// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iwork

import (
	"math"

	"github.com/iwa-go/iwacore/bytesio"
	"github.com/iwa-go/iwacore/wire"
)

// --- small hand-rolled wire-format fixture builders, mirroring the
// helpers in the wire and index packages' own tests. ---

func appendVarintField(buf []byte, fieldNum uint32, wt wire.WireType, value uint64) []byte {
	buf = bytesio.AppendUvarint(buf, uint64(fieldNum)<<3|uint64(wt))
	return bytesio.AppendUvarint(buf, value)
}

func appendLengthDelimited(buf []byte, fieldNum uint32, payload []byte) []byte {
	buf = bytesio.AppendUvarint(buf, uint64(fieldNum)<<3|uint64(wire.LengthDelimited))
	buf = bytesio.AppendUvarint(buf, uint64(len(payload)))
	return append(buf, payload...)
}

func appendStringField(buf []byte, fieldNum uint32, s string) []byte {
	return appendLengthDelimited(buf, fieldNum, []byte(s))
}

func appendDoubleField(buf []byte, fieldNum uint32, v float64) []byte {
	buf = bytesio.AppendUvarint(buf, uint64(fieldNum)<<3|uint64(wire.Fixed64))
	bits := math.Float64bits(v)
	for i := 0; i < 8; i++ {
		buf = append(buf, byte(bits>>(8*i)))
	}
	return buf
}

func appendBoolField(buf []byte, fieldNum uint32, v bool) []byte {
	n := uint64(0)
	if v {
		n = 1
	}
	return appendVarintField(buf, fieldNum, wire.Varint, n)
}

func appendMessageField(buf []byte, fieldNum uint32, sub []byte) []byte {
	return appendLengthDelimited(buf, fieldNum, sub)
}

func parseMsg(b []byte) *wire.Message {
	s := bytesio.NewMemoryStream(b)
	return wire.Parse(s, 0, s.Len(), nil)
}

func pointMsg(x, y float64) []byte {
	var b []byte
	b = appendDoubleField(b, 1, x)
	b = appendDoubleField(b, 2, y)
	return b
}

func sizeMsg(w, h float64) []byte {
	var b []byte
	b = appendDoubleField(b, 1, w)
	b = appendDoubleField(b, 2, h)
	return b
}
