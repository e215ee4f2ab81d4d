// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wire

import "github.com/iwa-go/iwacore/bytesio"

// Fuzz exercises Parse over arbitrary bytes, checking only that it
// never panics or loops forever — Parse itself never returns an
// error, per spec.md §7's "local recovery" rule, so there is no
// success/failure split here beyond "it returned".
func Fuzz(data []byte) int {
	s := bytesio.NewMemoryStream(data)
	m := Parse(s, 0, s.Len(), nil)
	if m == nil {
		return 0
	}
	return 1
}
