// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wire

import (
	"testing"

	"github.com/iwa-go/iwacore/bytesio"
)

func parseAll(b []byte) *Message {
	s := bytesio.NewMemoryStream(b)
	return Parse(s, 0, s.Len(), nil)
}

func TestSimpleVarintField(t *testing.T) {
	// S3: key = (field 1, wire VARINT), value 4.
	m := parseAll([]byte{0x08, 0x04})

	got, ok := m.Uint64(1).Optional()
	if !ok || got != 4 {
		t.Fatalf("Uint64(1).Optional() = (%d, %v), want (4, true)", got, ok)
	}

	if _, ok := m.String(1).Optional(); ok {
		t.Fatal("String(1).Optional() on a VARINT field should report absent")
	}
	if err := m.String(1).Err(); err != ErrAccessMismatch {
		t.Fatalf("String(1).Err() = %v, want ErrAccessMismatch", err)
	}
}

func TestNestedMessage(t *testing.T) {
	// S4: 0a 06 08 04 12 02 10 0a representing {1: {1: 4, 2: {2: 10}}}.
	m := parseAll([]byte{0x0a, 0x06, 0x08, 0x04, 0x12, 0x02, 0x10, 0x0a})

	inner, ok := m.Message(1).Optional()
	if !ok {
		t.Fatal("Message(1).Optional() missing")
	}
	v, ok := inner.Uint64(1).Optional()
	if !ok || v != 4 {
		t.Fatalf("inner.Uint64(1) = (%d, %v), want (4, true)", v, ok)
	}
	deeper, ok := inner.Message(2).Optional()
	if !ok {
		t.Fatal("inner.Message(2).Optional() missing")
	}
	got, ok := deeper.Uint32(2).Optional()
	if !ok || got != 10 {
		t.Fatalf("deeper.Uint32(2) = (%d, %v), want (10, true)", got, ok)
	}
}

func TestPackedRepeated(t *testing.T) {
	// S5: field 1, length-delimited payload 01 02 03 -> [1,2,3].
	m := parseAll([]byte{0x0a, 0x03, 0x01, 0x02, 0x03})

	got := m.Uint64(1).Repeated()
	want := []uint64{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("Repeated() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Repeated()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestDuplicateFieldMismatchedWireTypeDropped(t *testing.T) {
	// field 1 as VARINT value 4, then field 1 again as FIXED32 garbage:
	// the boundary behaviour says the first is kept, the second dropped,
	// and decoding proceeds to a trailing field 2.
	var b []byte
	b = append(b, 0x08, 0x04)                   // field 1, varint, 4
	b = append(b, 0x0d, 0x01, 0x02, 0x03, 0x04) // field 1, fixed32, garbage
	b = append(b, 0x10, 0x07)                   // field 2, varint, 7

	m := parseAll(b)
	got, ok := m.Uint64(1).Optional()
	if !ok || got != 4 {
		t.Fatalf("Uint64(1) = (%d, %v), want (4, true)", got, ok)
	}
	if len(m.Uint64(1).Repeated()) != 1 {
		t.Fatalf("Repeated() = %v, want exactly the first occurrence", m.Uint64(1).Repeated())
	}
	got2, ok := m.Uint64(2).Optional()
	if !ok || got2 != 7 {
		t.Fatalf("field 2 did not survive the dropped duplicate: got (%d, %v)", got2, ok)
	}
}

func TestMessageWithDuplicateFieldNumbersInvariant(t *testing.T) {
	// repeated(n).len() >= (optional(n).is_some() ? 1 : 0)
	m := parseAll([]byte{0x08, 0x01, 0x08, 0x02})
	_, hasOptional := m.Uint64(1).Optional()
	if got, want := len(m.Uint64(1).Repeated()), 1; !hasOptional || got < want {
		t.Fatalf("Repeated() len = %d, Optional() present = %v", got, hasOptional)
	}
}

func TestAbsentFieldIsEmptyNotError(t *testing.T) {
	m := parseAll([]byte{0x08, 0x04})
	if v, ok := m.Uint64(99).Optional(); ok {
		t.Fatalf("Uint64(99).Optional() = (%d, true), want absent", v)
	}
	if err := m.Uint64(99).Err(); err != nil {
		t.Fatalf("absent field Err() = %v, want nil", err)
	}
}

func TestTruncatedMessageKeepsPriorFields(t *testing.T) {
	// field 1 parses cleanly; a final length-delimited key claims a
	// length that runs past the buffer and should truncate the parse
	// there, leaving field 1 intact.
	b := []byte{0x08, 0x04, 0x12, 0x7f}
	m := parseAll(b)
	got, ok := m.Uint64(1).Optional()
	if !ok || got != 4 {
		t.Fatalf("Uint64(1) = (%d, %v), want (4, true)", got, ok)
	}
	if m.Has(2) {
		t.Fatal("field 2 should not have been recorded: its declared length overruns the message")
	}
}

func TestFixedAndFloatAccessors(t *testing.T) {
	var b []byte
	b = append(b, 0x09, 0, 0, 0, 0, 0, 0, 0xf0, 0x3f) // field 1, fixed64, double 1.0
	b = append(b, 0x15, 0, 0, 0x80, 0x3f)             // field 2, fixed32, float 1.0
	m := parseAll(b)

	d, ok := m.Double(1).Optional()
	if !ok || d != 1.0 {
		t.Fatalf("Double(1) = (%v, %v), want (1.0, true)", d, ok)
	}
	f, ok := m.Float(2).Optional()
	if !ok || f != 1.0 {
		t.Fatalf("Float(2) = (%v, %v), want (1.0, true)", f, ok)
	}
}
