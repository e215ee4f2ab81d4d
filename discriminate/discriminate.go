// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package discriminate classifies an input Package as one of the
// binary or XML iWork container variants, per spec.md §4.6. It never
// fails outright: an input nothing recognizes classifies as
// UNSUPPORTED, which the caller (cmd/iwkdump, or any host) surfaces as
// "file could not be recognised" without treating it as a crash.
package discriminate

import (
	"github.com/iwa-go/iwacore/bytesio"
)

// Format is the container variant a Classify result names.
type Format int

const (
	FormatUnsupported Format = iota
	FormatBinary
	FormatXMLv2Keynote
	FormatXMLv2NumbersOrPages
	FormatXMLv1Keynote
)

func (f Format) String() string {
	switch f {
	case FormatBinary:
		return "Binary"
	case FormatXMLv2Keynote:
		return "XMLv2Keynote"
	case FormatXMLv2NumbersOrPages:
		return "XMLv2NumbersOrPages"
	case FormatXMLv1Keynote:
		return "XMLv1Keynote"
	default:
		return "Unsupported"
	}
}

// Kind is the detected document application.
type Kind int

const (
	KindUnknown Kind = iota
	KindKeynote
	KindNumbers
	KindPages
)

func (k Kind) String() string {
	switch k {
	case KindKeynote:
		return "Keynote"
	case KindNumbers:
		return "Numbers"
	case KindPages:
		return "Pages"
	default:
		return "Unknown"
	}
}

// Confidence mirrors spec.md §4.6's two-level exit condition:
// EXCELLENT when the whole package is available, PARTIAL when only a
// root stream was handed in and embedded media can't be resolved.
type Confidence int

const (
	Unsupported Confidence = iota
	Partial
	Excellent
)

func (c Confidence) String() string {
	switch c {
	case Partial:
		return "Partial"
	case Excellent:
		return "Excellent"
	default:
		return "Unsupported"
	}
}

// Result is what Classify reports.
type Result struct {
	Format     Format
	Kind       Kind
	Confidence Confidence
	// Root is the Package Classify actually probed through: either pkg
	// itself, or a SubPackage rooted at "Index.zip" when the top-level
	// Index/ tree was absent but an Index.zip inner wrapping resolved.
	Root bytesio.Package

	// Encoding is the sniffed byte encoding of the resolved legacy XML
	// sibling, EncodingUTF8 for a binary result or when no XML sibling
	// was involved.
	Encoding TextEncoding
}

const (
	documentIWA    = "Index/Document.iwa"
	masterSlideIWA = "Index/MasterSlide.iwa"
	dataListIWA    = "Index/Tables/DataList.iwa"
)

var xmlV2KeynoteCandidates = []string{"index.apxl", "index.apxl.gz"}
var xmlV2OtherCandidates = []string{"index.xml", "index.xml.gz"}
var xmlV1KeynoteCandidates = []string{"presentation.apxl", "presentation.apxl.gz"}

// Classify probes pkg in the order spec.md §4.6 specifies. For a
// structured package it tries Index/Document.iwa first, then the
// three XML siblings; if none of those resolve at the top level it
// retries everything one level inside an Index.zip member, the
// restored feature from original_source/'s EtonyekDocument::detect.
// For an unstructured package it attempts the header-varint probe
// spec.md describes.
func Classify(pkg bytesio.Package) Result {
	if pkg.IsStructured() {
		if r, ok := classifyStructured(pkg, Excellent); ok {
			return r
		}
		sub := bytesio.NewSubPackage(pkg, "Index.zip")
		if r, ok := classifyStructured(sub, Excellent); ok {
			return r
		}
		return Result{Format: FormatUnsupported, Kind: KindUnknown}
	}

	root := bytesio.AsUnstructuredRoot(pkg)
	if root == nil {
		return Result{Format: FormatUnsupported, Kind: KindUnknown}
	}
	if r, ok := classifyUnstructuredBinary(root); ok {
		r.Confidence = Partial
		r.Root = pkg
		return r
	}
	if r, ok := classifyUnstructuredXML(root); ok {
		r.Confidence = Partial
		r.Root = pkg
		return r
	}
	return Result{Format: FormatUnsupported, Kind: KindUnknown}
}

func classifyStructured(pkg bytesio.Package, confidence Confidence) (Result, bool) {
	if pkg.Exists(documentIWA) {
		kind := disambiguateFragmentKind(pkg)
		return Result{Format: FormatBinary, Kind: kind, Confidence: confidence, Root: pkg}, true
	}
	if name, ok := firstExisting(pkg, xmlV2KeynoteCandidates); ok {
		return Result{Format: FormatXMLv2Keynote, Kind: KindKeynote, Confidence: confidence, Root: pkg,
			Encoding: sniffXMLSibling(pkg, name)}, true
	}
	if name, ok := firstExisting(pkg, xmlV2OtherCandidates); ok {
		return Result{Format: FormatXMLv2NumbersOrPages, Kind: KindUnknown, Confidence: confidence, Root: pkg,
			Encoding: sniffXMLSibling(pkg, name)}, true
	}
	if name, ok := firstExisting(pkg, xmlV1KeynoteCandidates); ok {
		return Result{Format: FormatXMLv1Keynote, Kind: KindKeynote, Confidence: confidence, Root: pkg,
			Encoding: sniffXMLSibling(pkg, name)}, true
	}
	return Result{}, false
}

func existsAny(pkg bytesio.Package, names []string) bool {
	_, ok := firstExisting(pkg, names)
	return ok
}

func firstExisting(pkg bytesio.Package, names []string) (string, bool) {
	for _, n := range names {
		if pkg.Exists(n) {
			return n, true
		}
	}
	return "", false
}

// disambiguateFragmentKind resolves the Keynote/Numbers ambiguity
// spec.md §4.6 describes for a binary package: both applications
// write an Index/Document.iwa root, so the application is told apart
// by which sibling fragment exists.
func disambiguateFragmentKind(pkg bytesio.Package) Kind {
	if pkg.Exists(masterSlideIWA) {
		return KindKeynote
	}
	if pkg.Exists(dataListIWA) {
		return KindNumbers
	}
	return KindUnknown
}

// classifyUnstructuredBinary implements the unstructured-input probe:
// wrap in the Snappy decompressor, then check whether the first
// meaningful bytes are a header-length varint followed by a
// structurally plausible header Message declaring type ∈ {1, 10000}.
func classifyUnstructuredBinary(root *bytesio.MemoryStream) (Result, bool) {
	decoded, err := decompress(root)
	if err != nil {
		return Result{}, false
	}

	headerLen, err := bytesio.ReadUvarint(decoded)
	if err != nil {
		return Result{}, false
	}
	headerStart := decoded.Tell()
	headerEnd := headerStart + int64(headerLen)
	if headerEnd > decoded.Len() {
		return Result{}, false
	}

	objType, ok := probeHeaderType(decoded, headerStart, headerEnd)
	if !ok {
		return Result{}, false
	}

	switch objType {
	case 1:
		// Keynote or Numbers; an unstructured input carries no sibling
		// fragments to disambiguate with, so the kind stays unknown.
		return Result{Format: FormatBinary, Kind: KindUnknown}, true
	case 10000:
		return Result{Format: FormatBinary, Kind: KindPages}, true
	default:
		return Result{}, false
	}
}
