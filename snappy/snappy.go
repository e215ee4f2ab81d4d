// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package snappy

import (
	"github.com/iwa-go/iwacore/bytesio"
)

// Decompress turns a Snappy-variant-compressed fragment into a single
// contiguous MemoryStream, per spec.md §4.2.
//
// A one-byte 0x78 header, or the two-byte 0x1f 0x8b marker left behind
// by files written by early iWork versions, may precede the block
// sequence; when the latter is present a third mode byte follows, and
// a zero there (Z_NO_COMPRESSION) means the rest of the input is a
// verbatim copy with no block framing at all. Real modern .iwa
// fragments carry neither marker and go straight into the block
// sequence — this is the common path and the one spec.md's S6 scenario
// exercises.
func Decompress(input *bytesio.MemoryStream) (*bytesio.MemoryStream, error) {
	verbatim, err := skipOptionalHeader(input)
	if err != nil {
		return nil, err
	}
	if verbatim {
		rest := input.Read(int(input.Len() - input.Tell()))
		return bytesio.NewMemoryStream(append([]byte(nil), rest...)), nil
	}

	out := &buffer{}
	for !input.IsEnd() {
		blockLen, err := bytesio.ReadUvarint(input)
		if err != nil {
			return nil, ErrFormat
		}
		remaining := input.Len() - input.Tell()
		if int64(blockLen) > remaining {
			blockLen = uint64(remaining)
		}
		blockEnd := input.Tell() + int64(blockLen)
		if err := decodeBlock(input, blockEnd, out); err != nil {
			return nil, err
		}
		// A block's last tag may read past blockEnd (an operand running
		// over the declared block length); resync to the declared
		// boundary so the next block's length varint is read from the
		// right place. A block that fails to decode is not skipped: its
		// error ends Decompress and the earlier blocks' output is
		// discarded.
		if err := input.Seek(blockEnd, bytesio.SeekSet); err != nil {
			break
		}
	}
	return bytesio.NewMemoryStream(out.bytes()), nil
}

// skipOptionalHeader consumes the two concession-to-early-versions
// markers described in spec.md §4.2, if present. It reports verbatim
// true when the stream declared Z_NO_COMPRESSION, in which case the
// caller must copy whatever remains rather than enter the block loop.
func skipOptionalHeader(input *bytesio.MemoryStream) (verbatim bool, err error) {
	peek := input.Slice(input.Tell(), input.Tell()+1)
	if len(peek) == 1 && peek[0] == 0x78 {
		input.Read(1)
		return false, nil
	}

	peek2 := input.Slice(input.Tell(), input.Tell()+2)
	if len(peek2) == 2 && peek2[0] == 0x1f && peek2[1] == 0x8b {
		input.Read(2)
		mode := input.Read(1)
		if len(mode) == 1 && mode[0] == 0 {
			return true, nil
		}
	}
	return false, nil
}

// decodeBlock reads an uncompressed-length varint followed by the
// Snappy tag stream, bounded to [input.Tell(), end), and appends the
// result to out. Copies are never allowed to read before blockStart,
// the position in out where this block's own output begins.
func decodeBlock(input *bytesio.MemoryStream, end int64, out *buffer) error {
	declaredLen, err := bytesio.ReadUvarint(input)
	if err != nil {
		return ErrFormat
	}
	blockCompressedLen := end - input.Tell()
	if blockCompressedLen < 0 {
		blockCompressedLen = 0
	}
	out.reserve(blockCompressedLen, int64(declaredLen))

	blockStart := out.len()
	for input.Tell() < end {
		tagByte := input.Slice(input.Tell(), input.Tell()+1)
		if len(tagByte) == 0 {
			break
		}
		c := tagByte[0]
		input.Read(1)

		switch c & 0x3 {
		case 0: // literal run
			n, err := literalLength(c, input)
			if err != nil {
				return err
			}
			lit := input.Read(n)
			if len(lit) < n {
				return ErrEndOfStream
			}
			out.append(lit)

		case 1: // near copy
			length := int(((c >> 2) & 0x7) + 4)
			next := input.Read(1)
			if len(next) != 1 {
				return ErrEndOfStream
			}
			offset := (int(c>>5) << 8) | int(next[0])
			if err := out.copyFrom(blockStart, offset, length); err != nil {
				return err
			}

		case 2: // far copy
			length := int(c>>2) + 1
			lo := input.Read(1)
			hi := input.Read(1)
			if len(lo) != 1 || len(hi) != 1 {
				return ErrEndOfStream
			}
			offset := int(lo[0]) | int(hi[0])<<8
			if err := out.copyFrom(blockStart, offset, length); err != nil {
				return err
			}

		case 3: // reserved
			return ErrFormat
		}
	}
	return nil
}

// literalLength decodes the length of a "00" literal-run tag per
// spec.md §4.2. When the top nibble of the raw tag byte is 0xf0, the
// length is an explicit little-endian value spanning (c>>2)&0x3 extra
// bytes (which, for a count of zero, is itself a zero-length run);
// otherwise length = (c>>2)+1.
func literalLength(c byte, input *bytesio.MemoryStream) (int, error) {
	if c&0xf0 != 0xf0 {
		return int(c>>2) + 1, nil
	}
	count := uint((c >> 2) & 0x3)
	var length uint32
	for i := uint(0); i < count; i++ {
		b := input.Read(1)
		if len(b) != 1 {
			return 0, ErrEndOfStream
		}
		length += uint32(b[0]) << (8 * i)
	}
	return int(length), nil
}
