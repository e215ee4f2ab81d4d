// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package bytesio

import (
	"io"
)

// Whence selects the origin a Seek offset is relative to.
type Whence int

// The three origins a MemoryStream can seek from.
const (
	SeekSet Whence = iota
	SeekCur
	SeekEnd
)

// MemoryStream is the RVNG-style seekable reader spec.md §4.1 calls
// for: an owned, in-memory byte slice with Read/Seek/Tell/IsEnd. It
// never copies out its backing slice; callers that need a Message to
// outlive the MemoryStream must not construct one (Messages borrow
// the stream, see wire.Message).
type MemoryStream struct {
	data []byte
	pos  int64
	end  bool
}

// NewMemoryStream takes ownership of data; the caller must not mutate
// it afterwards.
func NewMemoryStream(data []byte) *MemoryStream {
	return &MemoryStream{data: data}
}

// Len reports the total size of the backing buffer.
func (s *MemoryStream) Len() int64 { return int64(len(s.data)) }

// Bytes exposes the backing slice directly, for callers (wire.Message)
// that parse byte ranges without going through Read/Seek.
func (s *MemoryStream) Bytes() []byte { return s.data }

// Tell returns the current read position.
func (s *MemoryStream) Tell() int64 { return s.pos }

// IsEnd reports whether the stream is positioned at or past its end.
// It also latches true once a short read has been observed, mirroring
// the source's RVNGInputStream::isEnd semantics.
func (s *MemoryStream) IsEnd() bool {
	return s.end || s.pos >= int64(len(s.data))
}

// Read returns up to n bytes starting at the current position and
// advances past them. A read that runs past the end of the buffer
// returns a short slice and sets the end-of-stream flag rather than an
// error; callers that need exactly n bytes must check len(result).
func (s *MemoryStream) Read(n int) []byte {
	if n <= 0 || s.pos >= int64(len(s.data)) {
		s.end = true
		return nil
	}
	avail := int64(len(s.data)) - s.pos
	if int64(n) > avail {
		n = int(avail)
		s.end = true
	}
	out := s.data[s.pos : s.pos+int64(n)]
	s.pos += int64(n)
	return out
}

// ReadByte implements io.ByteReader so varint decoding can share the
// same stream abstraction everything else reads through.
func (s *MemoryStream) ReadByte() (byte, error) {
	b := s.Read(1)
	if len(b) == 0 {
		return 0, io.EOF
	}
	return b[0], nil
}

// Seek repositions the stream; it never extends past the buffer's
// bounds, clamping instead and reporting ErrEndOfStream when the
// caller asked to move past the end.
func (s *MemoryStream) Seek(offset int64, whence Whence) error {
	var target int64
	switch whence {
	case SeekSet:
		target = offset
	case SeekCur:
		target = s.pos + offset
	case SeekEnd:
		target = int64(len(s.data)) + offset
	}
	if target < 0 {
		return ErrEndOfStream
	}
	if target > int64(len(s.data)) {
		s.pos = int64(len(s.data))
		s.end = true
		return ErrEndOfStream
	}
	s.pos = target
	s.end = target >= int64(len(s.data))
	return nil
}

// Slice returns the backing bytes in [start, end), clamped to the
// buffer's bounds. It is how wire.Message resolves a recorded field
// range back into bytes without re-seeking the stream.
func (s *MemoryStream) Slice(start, end int64) []byte {
	if start < 0 {
		start = 0
	}
	if end > int64(len(s.data)) {
		end = int64(len(s.data))
	}
	if start >= end {
		return nil
	}
	return s.data[start:end]
}
