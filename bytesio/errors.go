// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package bytesio

import "errors"

// Errors returned by this package. Callers that need to distinguish
// the two kinds from spec.md §7 that originate here (ErrEndOfStream,
// ErrRange) should compare with errors.Is.
var (
	// ErrEndOfStream is returned when a read or seek runs past the end
	// of the backing buffer while a fixed quantity of bytes was
	// requested.
	ErrEndOfStream = errors.New("bytesio: end of stream")

	// ErrRange is returned when a varint runs past the maximum 10
	// bytes or encodes a value that does not fit in 64 bits.
	ErrRange = errors.New("bytesio: varint exceeds 64 bits")

	// ErrNotStructured is returned when a substream is requested from a
	// Package that has no named members (a bare .iwa or other flat
	// stream handed in directly).
	ErrNotStructured = errors.New("bytesio: stream is not structured")

	// ErrSubStreamNotFound is returned by Package.Open for a name that
	// does not exist in the package.
	ErrSubStreamNotFound = errors.New("bytesio: substream not found")
)
