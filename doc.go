// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package iwacore holds the core of a read-only importer for Apple's
// modern iWork document family (Keynote, Numbers, Pages): the binary
// container and message decoder shared by every iWork application
// since the 2013 file-format rewrite.
//
// The subsystem is split into packages by architectural seam:
//
//	bytesio       byte utilities: varints, a seekable in-memory stream,
//	              and the Package abstraction over a ZIP- or
//	              directory-backed iWork document
//	snappy        the iWork-specific Snappy variant .iwa fragments are
//	              compressed with
//	wire          the Protobuf-like wire decoder (Message, Field) with
//	              lazy, typed, corruption-tolerant field access
//	index         the object index built from Index/Metadata.iwa:
//	              object ID to fragment, file ID to embedded-file path,
//	              palette ID to color
//	discriminate  classifies an opened package as legacy XML or binary
//	              IWA, and as Keynote/Numbers/Pages
//	iwork         the parser driver: walks the object graph from the
//	              document root and emits shape/text/slide events to a
//	              Consumer
//
// This module never writes or renders iWork documents, and it leaves
// XML parsing, rendering, and package (ZIP) access to the host
// application; see each package's doc comment for its part of the
// contract.
//
// This package itself holds no code: the library surface lives
// entirely in the subpackages above, and cmd/iwkdump is the sole
// executable.
package iwacore
