// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package discriminate

import (
	"github.com/iwa-go/iwacore/bytesio"
	"github.com/iwa-go/iwacore/snappy"
	"github.com/iwa-go/iwacore/wire"
)

func decompress(root *bytesio.MemoryStream) (*bytesio.MemoryStream, error) {
	if err := root.Seek(0, bytesio.SeekSet); err != nil {
		return nil, err
	}
	return snappy.Decompress(root)
}

// probeHeaderType reads the same object-record header shape index.scanFragment
// does (field 1 = object ID, field 2 = repeated data-info with field 1 =
// type tag) and reports the first data-info's type tag, without
// building a full ObjectIndex — this is a one-shot classification
// probe over a root stream that may not even be a real fragment file.
func probeHeaderType(stream *bytesio.MemoryStream, start, end int64) (uint32, bool) {
	header := wire.Parse(stream, start, end, nil)
	infos := header.Message(2).Repeated()
	if len(infos) == 0 {
		return 0, false
	}
	t, ok := infos[0].Uint32(1).Optional()
	return t, ok
}
