// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package snappy

import "github.com/iwa-go/iwacore/bytesio"

// Fuzz is a dvyukov/go-fuzz-convention entry point, mirroring the
// teacher's root fuzz.go: a plain exported function taking the raw
// bytes, requiring no framework import. It only exercises Decompress
// for crashes; a malformed input returning an error is a pass (0), not
// a fuzz-harness failure.
func Fuzz(data []byte) int {
	_, err := Decompress(bytesio.NewMemoryStream(data))
	if err != nil {
		return 0
	}
	return 1
}
