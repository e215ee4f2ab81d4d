// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package snappy

// buffer is the growing output accumulator for Decompress. Its growth
// policy matches spec.md §5: the first block reserves
// min(2×compressed_length, declared_uncompressed_length) bytes, and
// later growth within that block proceeds in compressed_length-sized
// increments rather than Go's own doubling strategy, so decoding a
// hostile or miscounted length field cannot runaway-allocate.
type buffer struct {
	data      []byte
	increment int64
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// reserve is called once per block with that block's own compressed
// size and declared uncompressed size.
func (b *buffer) reserve(compressedLen, declaredLen int64) {
	if compressedLen <= 0 {
		compressedLen = 1
	}
	b.increment = compressedLen
	need := int64(len(b.data)) + minInt64(2*compressedLen, declaredLen)
	if int64(cap(b.data)) < need {
		b.growTo(need)
	}
}

func (b *buffer) growTo(need int64) {
	grown := make([]byte, len(b.data), need)
	copy(grown, b.data)
	b.data = grown
}

func (b *buffer) ensure(extra int64) {
	need := int64(len(b.data)) + extra
	for int64(cap(b.data)) < need {
		inc := b.increment
		if inc <= 0 {
			inc = extra
		}
		newCap := int64(cap(b.data)) + inc
		if newCap < need {
			newCap = need
		}
		b.growTo(newCap)
	}
}

func (b *buffer) append(p []byte) {
	b.ensure(int64(len(p)))
	b.data = append(b.data, p...)
}

// copyFrom appends a back-reference copy of length bytes found offset
// bytes before the current write position. blockStart is the position
// in b.data where the block currently being decoded began; a copy
// that would need to read before it is a Format error, matching
// spec.md's "copies must never read past the current block's start".
// An offset of zero is always a Format error. When offset < length the
// run self-overlaps and is expanded by repeating its offset-sized
// prefix, the classic Snappy RLE trick.
func (b *buffer) copyFrom(blockStart, offset, length int) error {
	if offset == 0 {
		return ErrFormat
	}
	if offset > len(b.data)-blockStart {
		return ErrFormat
	}

	b.ensure(int64(length))
	dest := len(b.data)
	b.data = b.data[:dest+length]
	src := dest - offset

	if offset >= length {
		copy(b.data[dest:dest+length], b.data[src:src+length])
		return nil
	}

	for w := dest; w < dest+length; {
		n := offset
		if w+n > dest+length {
			n = dest + length - w
		}
		copy(b.data[w:w+n], b.data[src:src+n])
		w += n
	}
	return nil
}

func (b *buffer) len() int      { return len(b.data) }
func (b *buffer) bytes() []byte { return b.data }
