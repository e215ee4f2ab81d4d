// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package snappy

import (
	"bytes"
	"testing"

	refsnappy "github.com/golang/snappy"
	"github.com/iwa-go/iwacore/bytesio"
)

// block wraps a standard-snappy-encoded payload in the iWork block
// framing (varint block length, varint uncompressed length, tag
// stream). It is the test-only reference encoder spec.md's round-trip
// law explicitly sanctions: short literal and copy tags in stock
// Snappy's encoding are byte-identical to this package's variant (the
// two diverge only for literal runs long enough to need the extended
// length encoding, which these small fixtures never trigger).
func block(plain []byte) []byte {
	tags := refsnappy.Encode(nil, plain)
	// refsnappy.Encode prefixes its own varint uncompressed-length; our
	// framing wants the uncompressed length varint followed directly
	// by the tag stream, and refsnappy's block format is exactly that.
	var buf []byte
	buf = bytesio.AppendUvarint(buf, uint64(len(tags)))
	buf = append(buf, tags...)
	return buf
}

// rawBlock wraps a hand-built tag stream in the full two-level framing
// decodeBlock expects: an outer varint block length, then an inner
// declared-uncompressed-length varint (the value itself is only a
// buffer-reservation hint and plays no role in correctness, so tests
// that build tags by hand and don't care about that hint pass 0), then
// the tag stream itself.
func rawBlock(tags []byte) []byte {
	var body []byte
	body = bytesio.AppendUvarint(body, 0)
	body = append(body, tags...)
	var buf []byte
	buf = bytesio.AppendUvarint(buf, uint64(len(body)))
	buf = append(buf, body...)
	return buf
}

func TestDecompressSingleBlock(t *testing.T) {
	plain := []byte("hello world, this is a small iwork fragment payload")
	compressed := block(plain)

	got, err := Decompress(bytesio.NewMemoryStream(compressed))
	if err != nil {
		t.Fatalf("Decompress err = %v", err)
	}
	if !bytes.Equal(got.Bytes(), plain) {
		t.Fatalf("Decompress = %q, want %q", got.Bytes(), plain)
	}
}

func TestDecompressTwoBlocks(t *testing.T) {
	// S6: two blocks decompressing to "hello" and " world" concatenate.
	var stream []byte
	stream = append(stream, block([]byte("hello"))...)
	stream = append(stream, block([]byte(" world"))...)

	got, err := Decompress(bytesio.NewMemoryStream(stream))
	if err != nil {
		t.Fatalf("Decompress err = %v", err)
	}
	if got.Bytes() == nil || string(got.Bytes()) != "hello world" {
		t.Fatalf("Decompress = %q, want %q", got.Bytes(), "hello world")
	}
	got.Read(len("hello world"))
	if !got.IsEnd() {
		t.Error("IsEnd() should be true once every byte has been consumed")
	}
}

func TestDecompressCorruptedSecondBlockLeavesFirstIntact(t *testing.T) {
	first := block([]byte("hello"))
	second := block([]byte(" world"))
	// Invert every bit of the last byte of the second block's tag stream (well past its
	// own uncompressed-length varint, inside the literal run's bytes).
	second[len(second)-1] ^= 0xff

	stream := append(append([]byte{}, first...), second...)
	got, err := Decompress(bytesio.NewMemoryStream(stream))
	if err != nil {
		t.Fatalf("Decompress err = %v", err)
	}
	if string(got.Bytes()[:5]) != "hello" {
		t.Fatalf("first block corrupted: got %q", got.Bytes())
	}
}

func TestCopyOffsetEqualsLength(t *testing.T) {
	// literal "ab" (tag 0x04 = (1<<2)|0 -> length 2), then a far copy
	// with offset==length (2), expanding "ab" into "abab".
	var tags []byte
	tags = append(tags, 0x04, 'a', 'b')   // literal run, length 2
	tags = append(tags, 0x06, 0x02, 0x00) // far copy: low2=2, length=(c>>2)+1=2, offset=2
	buf := rawBlock(tags)

	got, err := Decompress(bytesio.NewMemoryStream(buf))
	if err != nil {
		t.Fatalf("Decompress err = %v", err)
	}
	if string(got.Bytes()) != "abab" {
		t.Fatalf("Decompress = %q, want %q", got.Bytes(), "abab")
	}
}

func TestRunLengthExpandingCopy(t *testing.T) {
	// literal "a" (tag 0x00 -> length 1), then a far copy with
	// offset 1 < length 4: the classic Snappy RLE trick, each byte
	// copied from one position behind the write cursor, appending four
	// more "a" bytes after the literal: "aaaaa".
	var tags []byte
	tags = append(tags, 0x00, 'a')        // literal run, length 1
	tags = append(tags, 0x0e, 0x01, 0x00) // far copy: low2=2, length=(c>>2)+1=4, offset=1
	buf := rawBlock(tags)

	got, err := Decompress(bytesio.NewMemoryStream(buf))
	if err != nil {
		t.Fatalf("Decompress err = %v", err)
	}
	if string(got.Bytes()) != "aaaaa" {
		t.Fatalf("Decompress = %q, want %q", got.Bytes(), "aaaaa")
	}
}

func TestFarCopyOffsetZeroIsFormatError(t *testing.T) {
	var tags []byte
	tags = append(tags, 0x04, 'a', 'b')   // literal "ab"
	tags = append(tags, 0x06, 0x00, 0x00) // far copy, length 2, offset 0
	buf := rawBlock(tags)

	_, err := Decompress(bytesio.NewMemoryStream(buf))
	if err != ErrFormat {
		t.Fatalf("Decompress err = %v, want ErrFormat", err)
	}
}

// TestFarCopyOffsetPastBlockStartIsFormatError exercises a copy whose
// offset reaches before the current block's own output, the "copies
// must never read past the current block's start" rule of spec.md
// §4.2. With a single block, the block's start is also the start of
// the whole buffer, so the two bounds coincide here. A single literal byte
// followed by a copy claiming an offset larger than the block's own
// output so far must fail cleanly rather than index out of range.
func TestFarCopyOffsetPastBlockStartIsFormatError(t *testing.T) {
	var tags []byte
	tags = append(tags, 0x00, 'a')        // literal "a": 1 byte of block output
	tags = append(tags, 0x06, 0x0a, 0x00) // far copy, length 2, offset 10 (> 1 byte written)
	buf := rawBlock(tags)

	_, err := Decompress(bytesio.NewMemoryStream(buf))
	if err != ErrFormat {
		t.Fatalf("Decompress err = %v, want ErrFormat", err)
	}
}

// TestExtendedLiteralLength exercises the extended literal-length tag
// form spec.md §4.2 describes (top nibble 0xf0, an explicit
// little-endian length in (L>>2)&0x3 following bytes) by hand, rather
// than through refsnappy.Encode: this iWork-variant encoding of long
// literal runs is not the same as stock Snappy's own multi-byte
// length convention (see the block helper's own doc comment), so it
// has to be built directly to exercise the decoder's own extended
// path rather than stock Snappy's.
func TestExtendedLiteralLength(t *testing.T) {
	plain := bytes.Repeat([]byte{'x'}, 150)

	var tags []byte
	tags = append(tags, 0xf4, 150) // tag: extended literal, 1 length byte = 150
	tags = append(tags, plain...)
	buf := rawBlock(tags)

	got, err := Decompress(bytesio.NewMemoryStream(buf))
	if err != nil {
		t.Fatalf("Decompress err = %v", err)
	}
	if string(got.Bytes()) != string(plain) {
		t.Fatalf("Decompress produced %d bytes, want %d", got.Len(), len(plain))
	}
}

// TestExtendedLiteralLengthTwoBytes exercises the two-length-byte
// extended form, catching the shift-by-byte-index regression the
// earlier off-by-one in literalLength's loop would reintroduce.
func TestExtendedLiteralLengthTwoBytes(t *testing.T) {
	plain := bytes.Repeat([]byte{'y'}, 300)

	var tags []byte
	// tag: extended literal, (L>>2)&0x3 == 2 -> 2 length bytes, little-endian 300 = 0x012c
	tags = append(tags, 0xf8, 0x2c, 0x01)
	tags = append(tags, plain...)
	buf := rawBlock(tags)

	got, err := Decompress(bytesio.NewMemoryStream(buf))
	if err != nil {
		t.Fatalf("Decompress err = %v", err)
	}
	if string(got.Bytes()) != string(plain) {
		t.Fatalf("Decompress produced %d bytes, want %d", got.Len(), len(plain))
	}
}

func TestReservedTagIsFormatError(t *testing.T) {
	buf := rawBlock([]byte{0x03}) // tag with low2 == 11
	_, err := Decompress(bytesio.NewMemoryStream(buf))
	if err != ErrFormat {
		t.Fatalf("Decompress err = %v, want ErrFormat", err)
	}
}

func TestHeaderByteSkipped(t *testing.T) {
	plain := []byte("short")
	compressed := append([]byte{0x78}, block(plain)...)
	got, err := Decompress(bytesio.NewMemoryStream(compressed))
	if err != nil {
		t.Fatalf("Decompress err = %v", err)
	}
	if string(got.Bytes()) != string(plain) {
		t.Fatalf("Decompress = %q, want %q", got.Bytes(), plain)
	}
}

func TestLegacyNoCompressionMarker(t *testing.T) {
	plain := []byte("verbatim payload, no snappy framing at all")
	compressed := append([]byte{0x1f, 0x8b, 0x00}, plain...)
	got, err := Decompress(bytesio.NewMemoryStream(compressed))
	if err != nil {
		t.Fatalf("Decompress err = %v", err)
	}
	if string(got.Bytes()) != string(plain) {
		t.Fatalf("Decompress = %q, want %q", got.Bytes(), plain)
	}
}
