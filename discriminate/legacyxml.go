// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package discriminate

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/iwa-go/iwacore/bytesio"
)

// TextEncoding names the byte encoding Classify sniffs for a resolved
// legacy XML sibling, so the out-of-scope XML parser collaborator
// (spec.md §1) knows whether to treat the stream as UTF-8 or UTF-16
// before parsing it, rather than guessing or failing on a BOM it
// doesn't expect.
type TextEncoding int

const (
	EncodingUTF8 TextEncoding = iota
	EncodingUTF16LE
	EncodingUTF16BE
)

// sniffEncoding inspects the first bytes of a legacy XML sibling for a
// byte-order mark, the iWork '08-era concession SPEC_FULL.md's domain
// stack table names: some copies of index.apxl / presentation.apxl
// predate the switch to UTF-8-only XML and carry a UTF-16 BOM.
func sniffEncoding(data []byte) TextEncoding {
	switch {
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE:
		return EncodingUTF16LE
	case len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF:
		return EncodingUTF16BE
	default:
		return EncodingUTF8
	}
}

// decodeLegacyXML transcodes a UTF-16 legacy XML sibling to UTF-8
// using golang.org/x/text/encoding/unicode, so whatever XML parser a
// host plugs in always receives UTF-8 regardless of which era wrote
// the file. A plain UTF-8 stream passes through unchanged.
func decodeLegacyXML(data []byte) ([]byte, TextEncoding, error) {
	enc := sniffEncoding(data)
	if enc == EncodingUTF8 {
		return data, enc, nil
	}
	endian := unicode.LittleEndian
	if enc == EncodingUTF16BE {
		endian = unicode.BigEndian
	}
	out, err := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder().Bytes(data)
	if err != nil {
		return nil, enc, err
	}
	return out, enc, nil
}

// classifyUnstructuredXML is the "otherwise feed to the XML probe"
// fallback spec.md §4.6 names for unstructured input that the
// header-varint probe didn't recognize as binary. It mirrors
// original_source/EtonyekDocument.cpp's probeXML/probeXMLFormat: read
// past any XML declaration/doctype to the first element and dispatch
// on its (namespace-prefixed) local name, rather than parsing the
// document with a real XML parser (spec.md §1 keeps that an
// out-of-scope external collaborator).
func classifyUnstructuredXML(root *bytesio.MemoryStream) (Result, bool) {
	decoded, enc, err := decodeLegacyXML(root.Bytes())
	if err != nil {
		return Result{}, false
	}
	name, ok := firstElementName(decoded)
	if !ok {
		return Result{}, false
	}
	local := name
	if i := strings.IndexByte(name, ':'); i >= 0 {
		local = name[i+1:]
	}
	switch local {
	case "presentation":
		// Keynote's only XML root element name, but unstructured input
		// carries no filename to tell the v1 (presentation.apxl) and v2
		// (index.apxl) generations apart, unlike classifyStructured's
		// named-substream branches; v2 is the more common generation
		// still in the wild, so it's the reported format.
		return Result{Format: FormatXMLv2Keynote, Kind: KindKeynote, Encoding: enc}, true
	case "document":
		// Both NUM1Token and PAG1Token root elements are named
		// "document" and only their namespace URI (not retrieved by
		// this byte-level probe) tells Numbers and Pages apart.
		return Result{Format: FormatXMLv2NumbersOrPages, Kind: KindUnknown, Encoding: enc}, true
	default:
		return Result{}, false
	}
}

// firstElementName scans past any "<?...?>" or "<!...>" prolog/doctype
// declarations to the first real element and returns its raw
// (possibly namespace-prefixed) tag name.
func firstElementName(data []byte) (string, bool) {
	i := 0
	for i < len(data) {
		if data[i] != '<' {
			i++
			continue
		}
		if i+1 < len(data) && (data[i+1] == '?' || data[i+1] == '!') {
			end := bytes.IndexByte(data[i:], '>')
			if end < 0 {
				return "", false
			}
			i += end + 1
			continue
		}
		j := i + 1
		for j < len(data) && !isNameBoundary(data[j]) {
			j++
		}
		if j == i+1 {
			return "", false
		}
		return string(data[i+1 : j]), true
	}
	return "", false
}

func isNameBoundary(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '>', '/':
		return true
	default:
		return false
	}
}

// sniffXMLSibling opens name (gunzipping first if it is .gz-suffixed,
// the getUncompressedSubStream duality SPEC_FULL.md §E item 2
// restores) and reports the text encoding of its first bytes. Read
// failures are tolerated: the caller already knows the sibling
// exists, so a failure here only makes the result fall back to
// EncodingUTF8, not classification itself fail.
func sniffXMLSibling(pkg bytesio.Package, name string) TextEncoding {
	s, err := pkg.Open(name)
	if err != nil {
		return EncodingUTF8
	}
	if len(name) > 3 && name[len(name)-3:] == ".gz" {
		s, err = bytesio.Gunzip(s)
		if err != nil {
			return EncodingUTF8
		}
	}
	head := s.Read(4)
	_, enc, err := decodeLegacyXML(head)
	if err != nil {
		return EncodingUTF8
	}
	return enc
}
