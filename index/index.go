// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package index

import (
	"fmt"

	"github.com/iwa-go/iwacore/bytesio"
	"github.com/iwa-go/iwacore/internal/log"
	"github.com/iwa-go/iwacore/snappy"
	"github.com/iwa-go/iwacore/wire"
)

const metadataFragmentID uint32 = 2

// ObjectIndex is the authoritative object cross-reference of spec.md
// §4.4. All of its caches are filled lazily and are owned by a single
// caller; nothing here is safe for concurrent use, matching the
// single-threaded core spec.md §9 calls for.
type ObjectIndex struct {
	pkg    bytesio.Package
	logger *log.Helper

	fragments      map[uint32]*fragmentInfo
	objects        map[uint32]*ObjectRecord
	objectFragment map[uint32]uint32
	fileData       map[uint32]fileDataEntry

	colorPaletteID     uint32
	colorPaletteLoaded bool
	colors             map[uint32]Color
}

// Open bootstraps an ObjectIndex from pkg: registers Index/Metadata.iwa
// as fragment #2, scans it, and parses object #2 (the index object
// itself) for the fragment table, file-data table, and color-palette
// indirection. Only the bootstrap read of Metadata.iwa is fatal;
// everything discovered afterwards tolerates damage per spec.md §7.
func Open(pkg bytesio.Package, logger *log.Helper) (*ObjectIndex, error) {
	if logger == nil {
		logger = log.Default()
	}
	idx := &ObjectIndex{
		pkg:            pkg,
		logger:         logger,
		fragments:      make(map[uint32]*fragmentInfo),
		objects:        make(map[uint32]*ObjectRecord),
		objectFragment: make(map[uint32]uint32),
		fileData:       make(map[uint32]fileDataEntry),
	}
	idx.fragments[metadataFragmentID] = &fragmentInfo{id: metadataFragmentID, path: "Index/Metadata.iwa"}

	if err := idx.scanFragment(metadataFragmentID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBootstrapFailed, err)
	}

	idx.parseIndexObject()
	return idx, nil
}

// scanFragment decompresses and scans fragment fid exactly once,
// populating idx.objects for every well-formed record found. A
// malformed record stops the scan at that point; records already
// found remain usable, per spec.md §4.4's "failures inside record
// parsing break the scan silently".
func (idx *ObjectIndex) scanFragment(fid uint32) error {
	info, ok := idx.fragments[fid]
	if !ok {
		return nil
	}
	if info.scanned {
		return nil
	}
	info.scanned = true

	raw, err := idx.pkg.Open(info.path)
	if err != nil {
		idx.logger.Errorf("index: open fragment %q: %v", info.path, err)
		return err
	}
	decoded, err := snappy.Decompress(raw)
	if err != nil {
		idx.logger.Errorf("index: decompress fragment %q: %v", info.path, err)
		return err
	}
	info.decoded = decoded

	for !decoded.IsEnd() {
		headerLen, err := bytesio.ReadUvarint(decoded)
		if err != nil {
			break
		}
		headerStart := decoded.Tell()
		headerEnd := headerStart + int64(headerLen)
		if headerEnd > decoded.Len() {
			break
		}
		header := wire.Parse(decoded, headerStart, headerEnd, idx.logger)
		if err := decoded.Seek(headerEnd, bytesio.SeekSet); err != nil {
			break
		}

		id, hasID := header.Uint32(1).Optional()

		var objType uint32
		var totalLen int64
		for i, di := range header.Message(2).Repeated() {
			if i == 0 {
				objType, _ = di.Uint32(1).Optional()
			}
			length, _ := di.Uint64(3).Optional()
			totalLen += int64(length)
		}

		dataStart := headerEnd
		dataEnd := dataStart + totalLen
		if dataEnd > decoded.Len() || dataEnd < dataStart {
			break
		}

		if hasID {
			if _, exists := idx.objects[id]; exists {
				idx.logger.Debugf("index: object %d already resident, ignoring duplicate in fragment %d", id, fid)
			} else {
				idx.objects[id] = &ObjectRecord{
					FragmentID: fid,
					Type:       objType,
					DataStart:  dataStart,
					DataEnd:    dataEnd,
					stream:     decoded,
				}
				idx.objectFragment[id] = fid
			}
		}

		if err := decoded.Seek(dataEnd, bytesio.SeekSet); err != nil {
			break
		}
	}
	return nil
}

// parseIndexObject reads object #2's own body (the index object) for
// the fragment table, file-data table, and color-palette indirection,
// per spec.md §4.4.
func (idx *ObjectIndex) parseIndexObject() {
	rec, ok := idx.objects[metadataFragmentID]
	if !ok {
		idx.logger.Errorf("index: object 2 (index object) missing from Index/Metadata.iwa")
		return
	}
	msg := rec.Message(idx.logger)

	for _, frag := range msg.Message(3).Repeated() {
		fid, ok := frag.Uint32(1).Optional()
		if !ok {
			continue
		}
		name, ok := frag.String(2).Optional()
		if !ok {
			name, ok = frag.String(3).Optional()
		}
		if ok {
			if _, already := idx.fragments[fid]; !already {
				idx.fragments[fid] = &fragmentInfo{id: fid, path: "Index/" + name + ".iwa"}
			}
		}
		for _, foreignID := range frag.Uint32(6).Repeated() {
			if _, known := idx.objectFragment[foreignID]; !known {
				idx.objectFragment[foreignID] = fid
			}
		}
	}

	for _, entry := range msg.Message(4).Repeated() {
		fileID, ok := entry.Uint32(1).Optional()
		if !ok {
			continue
		}
		virtual, _ := entry.String(3).Optional()
		internal, _ := entry.String(4).Optional()
		idx.fileData[fileID] = fileDataEntry{virtualPath: virtual, internalPath: internal}
	}

	id1, ok1 := msg.Uint32(1).Optional()
	var id10 uint32
	var ok10 bool
	if sub, ok := msg.Message(10).Optional(); ok {
		id10, ok10 = sub.Uint32(1).Optional()
	}
	switch {
	case ok10 && ok1 && id10 != id1:
		idx.logger.Debugf("index: color palette id mismatch, field1=%d field10.field1=%d, preferring field10", id1, id10)
		idx.colorPaletteID = id10
	case ok10:
		idx.colorPaletteID = id10
	case ok1:
		idx.colorPaletteID = id1
	}
}

// QueryObject returns the type tag and parsed Message for id, scanning
// its resident fragment on demand if it has not been read yet. The
// second call for the same id is cheap: the fragment scan already
// cached the record.
func (idx *ObjectIndex) QueryObject(id uint32) (uint32, *wire.Message, bool) {
	if rec, ok := idx.objects[id]; ok {
		return rec.Type, rec.Message(idx.logger), true
	}
	fid, ok := idx.objectFragment[id]
	if !ok {
		return 0, nil, false
	}
	if err := idx.scanFragment(fid); err != nil {
		return 0, nil, false
	}
	rec, ok := idx.objects[id]
	if !ok {
		return 0, nil, false
	}
	return rec.Type, rec.Message(idx.logger), true
}

// ObjectType is a cheap projection of QueryObject that scans the
// resident fragment if needed but never re-parses the object's body
// into a Message, for callers that only need the type tag.
func (idx *ObjectIndex) ObjectType(id uint32) (uint32, bool) {
	if rec, ok := idx.objects[id]; ok {
		return rec.Type, true
	}
	fid, ok := idx.objectFragment[id]
	if !ok {
		return 0, false
	}
	if err := idx.scanFragment(fid); err != nil {
		return 0, false
	}
	rec, ok := idx.objects[id]
	if !ok {
		return 0, false
	}
	return rec.Type, true
}

// KnownObjects returns the id and type tag of every object whose
// residing fragment has been scanned so far (QueryObject/ObjectType
// calls, or ScanAll). It does not trigger any scanning itself; a
// caller that wants the whole document calls ScanAll first, as
// cmd/iwkdump's --raw dump does.
func (idx *ObjectIndex) KnownObjects() map[uint32]uint32 {
	out := make(map[uint32]uint32, len(idx.objects))
	for id, rec := range idx.objects {
		out[id] = rec.Type
	}
	return out
}

// ScanAll eagerly scans every registered fragment, so a subsequent
// KnownObjects call reflects the whole document rather than only the
// branches a graph walk happened to reach. Individual fragment
// failures are tolerated exactly as scanFragment already tolerates
// them; ScanAll never returns early.
func (idx *ObjectIndex) ScanAll() {
	for fid := range idx.fragments {
		_ = idx.scanFragment(fid)
	}
}

// QueryFile returns a stream over the embedded file named by id,
// opened lazily, preferring the internal path over the virtual one.
func (idx *ObjectIndex) QueryFile(id uint32) (*bytesio.MemoryStream, bool) {
	entry, ok := idx.fileData[id]
	if !ok {
		return nil, false
	}
	p := entry.path()
	if p == "" {
		return nil, false
	}
	s, err := idx.pkg.Open(p)
	if err != nil {
		idx.logger.Errorf("index: open file %q (id %d): %v", p, id, err)
		return nil, false
	}
	return s, true
}

// QueryColor resolves a palette-ID to a Color, scanning and caching
// the color-palette object on first call.
func (idx *ObjectIndex) QueryColor(id uint32) (Color, bool) {
	if !idx.colorPaletteLoaded {
		idx.loadColorPalette()
		idx.colorPaletteLoaded = true
	}
	c, ok := idx.colors[id]
	return c, ok
}

func (idx *ObjectIndex) loadColorPalette() {
	if idx.colorPaletteID == 0 {
		return
	}
	_, msg, ok := idx.QueryObject(idx.colorPaletteID)
	if !ok {
		idx.logger.Errorf("index: color palette object %d not found", idx.colorPaletteID)
		return
	}
	idx.colors = make(map[uint32]Color)
	for _, entry := range msg.Message(1).Repeated() {
		id, ok := entry.Uint32(1).Optional()
		if !ok {
			continue
		}
		r, _ := entry.Double(2).Optional()
		g, _ := entry.Double(3).Optional()
		b, _ := entry.Double(4).Optional()
		a, hasAlpha := entry.Double(5).Optional()
		if !hasAlpha {
			a = 1.0
		}
		idx.colors[id] = Color{R: r, G: g, B: b, A: a}
	}
}
