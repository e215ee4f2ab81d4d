// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"math"

	"github.com/iwa-go/iwacore/bytesio"
)

// Accessor is the result of a typed field access: zero, one, or many
// decoded values in document order. Optional and Repeated give the
// two access shapes spec.md §3 names; a field that was never written,
// or whose stored wire type doesn't match the type being asked for,
// simply yields no values — AccessMismatch is recorded internally but
// Optional/Repeated themselves never panic or need an error check.
type Accessor[T any] struct {
	values []T
	err    error
}

// Optional returns the first recorded value, if any. A mismatched
// access (wrong declared type for the field's wire type) is reported
// here as "not present", per spec.md §7's "AccessMismatch ... caller
// treats it as field absent".
func (a Accessor[T]) Optional() (T, bool) {
	var zero T
	if a.err != nil || len(a.values) == 0 {
		return zero, false
	}
	return a.values[0], true
}

// Repeated returns every recorded value in document order, including
// values assembled from a packed length-delimited range.
func (a Accessor[T]) Repeated() []T { return a.values }

// Err reports the underlying access error, chiefly ErrAccessMismatch.
// Most callers should prefer Optional/Repeated's silent-absent
// behaviour; Err exists for callers that need to distinguish "absent"
// from "wrong type".
func (a Accessor[T]) Err() error { return a.err }

func scalarAccess[T any](m *Message, n uint32, kind declaredKind, nativeWT WireType, decodeElem func(*bytesio.MemoryStream) (T, error)) ([]T, error) {
	entry, ok := m.fields[n]
	if !ok {
		return nil, nil
	}
	if entry.cache != nil {
		if entry.cache.kind != kind {
			return nil, ErrAccessMismatch
		}
		vals, _ := entry.cache.data.([]T)
		return vals, entry.cache.err
	}

	if entry.wireType != nativeWT && entry.wireType != LengthDelimited {
		entry.cache = &cachedValue{kind: kind, err: ErrAccessMismatch}
		return nil, ErrAccessMismatch
	}

	var out []T
	for _, r := range entry.ranges {
		if err := m.stream.Seek(r.start, bytesio.SeekSet); err != nil {
			continue
		}
		if entry.wireType != LengthDelimited {
			v, err := decodeElem(m.stream)
			if err != nil {
				continue
			}
			out = append(out, v)
			continue
		}
		// Packed repeated: the range is a concatenation of this
		// scalar's elementary encoding, read until exhausted.
		for m.stream.Tell() < r.end {
			v, err := decodeElem(m.stream)
			if err != nil {
				break
			}
			out = append(out, v)
		}
	}
	entry.cache = &cachedValue{kind: kind, data: out}
	return out, nil
}

func rangeAccess[T any](m *Message, n uint32, kind declaredKind, build func(s *bytesio.MemoryStream, start, end int64) (T, error)) ([]T, error) {
	entry, ok := m.fields[n]
	if !ok {
		return nil, nil
	}
	if entry.cache != nil {
		if entry.cache.kind != kind {
			return nil, ErrAccessMismatch
		}
		vals, _ := entry.cache.data.([]T)
		return vals, entry.cache.err
	}
	if entry.wireType != LengthDelimited {
		entry.cache = &cachedValue{kind: kind, err: ErrAccessMismatch}
		return nil, ErrAccessMismatch
	}

	out := make([]T, 0, len(entry.ranges))
	for _, r := range entry.ranges {
		v, err := build(m.stream, r.start, r.end)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	entry.cache = &cachedValue{kind: kind, data: out}
	return out, nil
}

func decodeUint32(s *bytesio.MemoryStream) (uint32, error) {
	v, err := bytesio.ReadUvarint(s)
	return uint32(v), err
}

func decodeUint64(s *bytesio.MemoryStream) (uint64, error) {
	return bytesio.ReadUvarint(s)
}

func decodeSint32(s *bytesio.MemoryStream) (int32, error) {
	v, err := bytesio.ReadVarint(s)
	return int32(v), err
}

func decodeSint64(s *bytesio.MemoryStream) (int64, error) {
	return bytesio.ReadVarint(s)
}

func decodeBool(s *bytesio.MemoryStream) (bool, error) {
	v, err := bytesio.ReadUvarint(s)
	return v != 0, err
}

func decodeFixed64(s *bytesio.MemoryStream) (uint64, error) {
	b := s.Read(8)
	if len(b) != 8 {
		return 0, bytesio.ErrEndOfStream
	}
	return binary.LittleEndian.Uint64(b), nil
}

func decodeDouble(s *bytesio.MemoryStream) (float64, error) {
	bits, err := decodeFixed64(s)
	return math.Float64frombits(bits), err
}

func decodeFixed32(s *bytesio.MemoryStream) (uint32, error) {
	b := s.Read(4)
	if len(b) != 4 {
		return 0, bytesio.ErrEndOfStream
	}
	return binary.LittleEndian.Uint32(b), nil
}

func decodeFloat(s *bytesio.MemoryStream) (float32, error) {
	bits, err := decodeFixed32(s)
	return math.Float32frombits(bits), err
}

// Uint32 reads field n as an unsigned 32-bit varint (or packed
// sequence of them).
func (m *Message) Uint32(n uint32) Accessor[uint32] {
	v, err := scalarAccess(m, n, kindUint32, Varint, decodeUint32)
	return Accessor[uint32]{values: v, err: err}
}

// Uint64 reads field n as an unsigned 64-bit varint.
func (m *Message) Uint64(n uint32) Accessor[uint64] {
	v, err := scalarAccess(m, n, kindUint64, Varint, decodeUint64)
	return Accessor[uint64]{values: v, err: err}
}

// Sint32 reads field n as a ZigZag-encoded signed 32-bit varint.
func (m *Message) Sint32(n uint32) Accessor[int32] {
	v, err := scalarAccess(m, n, kindSint32, Varint, decodeSint32)
	return Accessor[int32]{values: v, err: err}
}

// Sint64 reads field n as a ZigZag-encoded signed 64-bit varint.
func (m *Message) Sint64(n uint32) Accessor[int64] {
	v, err := scalarAccess(m, n, kindSint64, Varint, decodeSint64)
	return Accessor[int64]{values: v, err: err}
}

// Bool reads field n as a varint-encoded boolean (any nonzero value
// is true).
func (m *Message) Bool(n uint32) Accessor[bool] {
	v, err := scalarAccess(m, n, kindBool, Varint, decodeBool)
	return Accessor[bool]{values: v, err: err}
}

// Fixed64 reads field n as a little-endian 64-bit fixed quantity.
func (m *Message) Fixed64(n uint32) Accessor[uint64] {
	v, err := scalarAccess(m, n, kindFixed64, Fixed64, decodeFixed64)
	return Accessor[uint64]{values: v, err: err}
}

// Double reads field n as an IEEE-754 double.
func (m *Message) Double(n uint32) Accessor[float64] {
	v, err := scalarAccess(m, n, kindDouble, Fixed64, decodeDouble)
	return Accessor[float64]{values: v, err: err}
}

// Fixed32 reads field n as a little-endian 32-bit fixed quantity.
func (m *Message) Fixed32(n uint32) Accessor[uint32] {
	v, err := scalarAccess(m, n, kindFixed32, Fixed32, decodeFixed32)
	return Accessor[uint32]{values: v, err: err}
}

// Float reads field n as an IEEE-754 single-precision float.
func (m *Message) Float(n uint32) Accessor[float32] {
	v, err := scalarAccess(m, n, kindFloat, Fixed32, decodeFloat)
	return Accessor[float32]{values: v, err: err}
}

// String reads field n as a UTF-8 string occupying the field's full
// length-delimited range.
func (m *Message) String(n uint32) Accessor[string] {
	v, err := rangeAccess(m, n, kindString, func(s *bytesio.MemoryStream, start, end int64) (string, error) {
		return string(s.Slice(start, end)), nil
	})
	return Accessor[string]{values: v, err: err}
}

// Bytes reads field n as a raw byte slice occupying the field's full
// length-delimited range. The returned slice is a copy; it does not
// alias the backing stream.
func (m *Message) Bytes(n uint32) Accessor[[]byte] {
	v, err := rangeAccess(m, n, kindBytes, func(s *bytesio.MemoryStream, start, end int64) ([]byte, error) {
		raw := s.Slice(start, end)
		out := make([]byte, len(raw))
		copy(out, raw)
		return out, nil
	})
	return Accessor[[]byte]{values: v, err: err}
}

// Message reads field n as a nested Message sharing this Message's
// backing stream.
func (m *Message) Message(n uint32) Accessor[*Message] {
	v, err := rangeAccess(m, n, kindMessage, func(s *bytesio.MemoryStream, start, end int64) (*Message, error) {
		return Parse(s, start, end, m.logger), nil
	})
	return Accessor[*Message]{values: v, err: err}
}
