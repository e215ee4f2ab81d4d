// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package index

import "github.com/iwa-go/iwacore/bytesio"

// fuzzPackage hands data back as Index/Metadata.iwa's raw (Snappy-
// compressed, in a well-formed input) bytes and nothing else, so Fuzz
// exercises Open's bootstrap scan without needing a real package.
type fuzzPackage struct{ data []byte }

func (p fuzzPackage) IsStructured() bool { return true }
func (p fuzzPackage) Exists(name string) bool {
	return name == "Index/Metadata.iwa"
}
func (p fuzzPackage) Open(name string) (*bytesio.MemoryStream, error) {
	if name != "Index/Metadata.iwa" {
		return nil, ErrBootstrapFailed
	}
	return bytesio.NewMemoryStream(p.data), nil
}

// Fuzz exercises Open (fragment scan + index-object parse) over
// arbitrary bytes standing in for Index/Metadata.iwa.
func Fuzz(data []byte) int {
	_, err := Open(fuzzPackage{data: data}, nil)
	if err != nil {
		return 0
	}
	return 1
}
