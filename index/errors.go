// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package index builds and serves the object index spec.md §4.4
// describes: the authoritative cross-reference, rebuilt from
// Index/Metadata.iwa, that maps object IDs to the fragment holding
// them, file IDs to embedded-file paths, and palette IDs to colors.
package index

import "errors"

// ErrBootstrapFailed is returned by Open when Index/Metadata.iwa
// itself cannot be opened or decompressed. Without it there is no
// fragment table to build from, so unlike every other failure mode in
// this package (which is tolerated and logged), this one is fatal:
// the caller has no document to read.
var ErrBootstrapFailed = errors.New("index: could not read Index/Metadata.iwa")
