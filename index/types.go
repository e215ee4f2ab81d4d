// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package index

import (
	"github.com/iwa-go/iwacore/bytesio"
	"github.com/iwa-go/iwacore/internal/log"
	"github.com/iwa-go/iwacore/wire"
)

// ObjectRecord is what scanning a fragment produces for one object:
// its type tag and the [start, end) data span inside that fragment's
// decompressed stream. Per spec.md §3's invariant, header-range and
// data-range never overlap and both lie within the containing stream;
// ObjectRecord only retains the data span, since that's the only one
// any caller ever needs to re-parse.
type ObjectRecord struct {
	FragmentID uint32
	Type       uint32
	DataStart  int64
	DataEnd    int64
	stream     *bytesio.MemoryStream
}

// Message re-parses this record's data span as a wire.Message. Each
// call reparses; the Message itself performs its own lazy per-field
// caching, so repeated typed access against the same Message is
// still cheap. Re-running Parse per call avoids the index having to
// hold onto every object's Message indefinitely.
func (r *ObjectRecord) Message(logger *log.Helper) *wire.Message {
	return wire.Parse(r.stream, r.DataStart, r.DataEnd, logger)
}

// fragmentInfo tracks one registered fragment file and whether it has
// been scanned yet.
type fragmentInfo struct {
	id      uint32
	path    string
	decoded *bytesio.MemoryStream
	scanned bool
}

// fileDataEntry is one entry of the file-data table (index object
// field 4): the package-relative path of an embedded file, by file
// ID. internalPath wins over virtualPath when both are present, per
// spec.md §9's preserved "internal first, else virtual" rule.
type fileDataEntry struct {
	virtualPath  string
	internalPath string
}

func (e fileDataEntry) path() string {
	if e.internalPath != "" {
		return e.internalPath
	}
	return e.virtualPath
}

// Color is the RGBA color model iWork's palette indirection resolves
// palette IDs to.
type Color struct {
	R, G, B, A float64
}
