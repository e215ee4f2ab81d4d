// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package snappy decodes the iWork-variant framed Snappy stream used
// to compress every .iwa fragment file (spec.md §4.2). It is a
// decode-only codec: iWork files are read-only input to this module,
// so there is no production encoder, only a test-only reference one
// (see snappy_test.go) used to build fixtures.
package snappy

import "errors"

var (
	// ErrFormat is returned for a structural violation: a reserved tag
	// (binary 11), a copy whose offset is zero, or a copy that would
	// read before the start of the block currently being decoded.
	ErrFormat = errors.New("snappy: malformed iwork-variant stream")

	// ErrEndOfStream is returned when a block's declared length runs
	// past the bytes actually available.
	ErrEndOfStream = errors.New("snappy: unexpected end of stream")
)
