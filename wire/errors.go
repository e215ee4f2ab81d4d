// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package wire parses a byte range into a lazily-typed field map, the
// core decoder spec.md §4.3 calls the Protobuf-like wire format every
// object record's body is written in. Messages never copy the bytes
// they describe; every accessor seeks back into the backing stream on
// first use and memoizes the decoded result.
package wire

import "errors"

// ErrAccessMismatch is returned by a typed accessor when the field it
// names was already decoded under a different declared type, or when
// the wire-type actually stored for that field is incompatible with
// the type being requested now. Per spec.md §7 this is a caller-facing
// error: the caller is expected to treat it as "field absent", not
// abort the surrounding parse.
var ErrAccessMismatch = errors.New("wire: field accessed under mismatched type")
