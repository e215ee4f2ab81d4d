// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wire

import (
	"github.com/iwa-go/iwacore/bytesio"
	"github.com/iwa-go/iwacore/internal/log"
)

// WireType identifies how a field's value is encoded, per the
// Protobuf wire format this decoder is modelled on.
type WireType byte

const (
	Varint          WireType = 0
	Fixed64         WireType = 1
	LengthDelimited WireType = 2
	Fixed32         WireType = 5
)

// byteRange is a [start, end) span into the backing stream.
type byteRange struct {
	start, end int64
}

type fieldEntry struct {
	wireType WireType
	ranges   []byteRange
	cache    *cachedValue
}

// cachedValue holds the result of the first typed access made against
// a field. kind pins the declared type that access used; a later
// access under a different kind fails ErrAccessMismatch without
// re-decoding, per spec.md §4.3's "mismatch between the stored type
// tag ... fails AccessMismatch" rule.
type cachedValue struct {
	kind declaredKind
	data any
	err  error
}

type declaredKind uint8

const (
	kindUint32 declaredKind = iota
	kindUint64
	kindSint32
	kindSint64
	kindBool
	kindFixed64
	kindDouble
	kindFixed32
	kindFloat
	kindString
	kindBytes
	kindMessage
)

// Message is a parsed, lazily-decoded view over a byte range. It does
// not own or copy the bytes it describes; reads go back through
// stream on demand. Messages are immutable once constructed: the
// field map built by Parse never changes, only the per-field decode
// cache fills in as accessors are called.
type Message struct {
	stream *bytesio.MemoryStream
	fields map[uint32]*fieldEntry
	logger *log.Helper
}

// Parse walks [start, end) of stream as a sequence of Protobuf-style
// key/value pairs and returns the resulting Message. Parse itself
// never fails: a truncated key, a length-delimited payload that would
// run past end, or a reserved wire type simply ends the scan at the
// last good field boundary, per spec.md §7's "local recovery: drop the
// offending field / fragment" policy. logger may be nil.
func Parse(stream *bytesio.MemoryStream, start, end int64, logger *log.Helper) *Message {
	m := &Message{
		stream: stream,
		fields: make(map[uint32]*fieldEntry),
		logger: logger,
	}
	if logger == nil {
		m.logger = log.Default()
	}

	if err := stream.Seek(start, bytesio.SeekSet); err != nil {
		return m
	}

	for stream.Tell() < end {
		key, err := bytesio.ReadUvarint(stream)
		if err != nil {
			break
		}
		wt := WireType(key & 0x7)
		fieldNum := uint32(key >> 3)

		var rng byteRange
		ok := true
		switch wt {
		case Varint:
			recStart := stream.Tell()
			if _, err := bytesio.ReadUvarint(stream); err != nil {
				ok = false
				break
			}
			rng = byteRange{recStart, stream.Tell()}

		case Fixed64:
			recStart := stream.Tell()
			if stream.Len()-recStart < 8 {
				ok = false
				break
			}
			stream.Read(8)
			rng = byteRange{recStart, recStart + 8}

		case Fixed32:
			recStart := stream.Tell()
			if stream.Len()-recStart < 4 {
				ok = false
				break
			}
			stream.Read(4)
			rng = byteRange{recStart, recStart + 4}

		case LengthDelimited:
			length, err := bytesio.ReadUvarint(stream)
			if err != nil {
				ok = false
				break
			}
			payloadStart := stream.Tell()
			payloadEnd := payloadStart + int64(length)
			if payloadEnd > end || payloadEnd < payloadStart {
				ok = false
				break
			}
			if err := stream.Seek(payloadEnd, bytesio.SeekSet); err != nil {
				ok = false
				break
			}
			rng = byteRange{payloadStart, payloadEnd}

		default:
			ok = false
		}

		if !ok {
			m.logger.Debugf("wire: truncating message at field %d, malformed wire type %d", fieldNum, wt)
			break
		}
		if rng.end > end {
			break
		}

		entry, seen := m.fields[fieldNum]
		if !seen {
			m.fields[fieldNum] = &fieldEntry{wireType: wt, ranges: []byteRange{rng}}
			continue
		}
		if entry.wireType != wt {
			m.logger.Debugf("wire: dropping field %d, wire type %d does not match earlier %d", fieldNum, wt, entry.wireType)
			continue
		}
		entry.ranges = append(entry.ranges, rng)
	}

	return m
}

// Has reports whether n occurs at all in this message, regardless of
// whether it has ever been typed-accessed.
func (m *Message) Has(n uint32) bool {
	_, ok := m.fields[n]
	return ok
}
