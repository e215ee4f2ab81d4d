// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iwork

import (
	"github.com/iwa-go/iwacore/index"
	"github.com/iwa-go/iwacore/internal/log"
	"github.com/iwa-go/iwacore/wire"
)

// Driver walks the object graph index.ObjectIndex exposes and drives
// events on a Consumer. Each visited-set entry is removed when the
// branch that added it returns, so the set is empty again once Parse
// returns.
//
// Child references are modeled uniformly as a container object's
// field 2 (repeated object IDs), the same assumption decodeShapePlacement
// documents for geometry sub-fields: a reasonable, internally
// consistent field assignment recorded in DESIGN.md rather than lifted
// from a byte-exact reference.
type Driver struct {
	idx      *index.ObjectIndex
	logger   *log.Helper
	visiting map[uint32]bool
}

// NewDriver builds a Driver over an already-opened object index.
func NewDriver(idx *index.ObjectIndex, logger *log.Helper) *Driver {
	return &Driver{idx: idx, logger: logger, visiting: make(map[uint32]bool)}
}

// visitGuard releases an object ID from the visited set when the
// branch that entered it returns, the RAII-style scope guard spec.md
// §8 invariant #5 (cycle detection) calls for.
type visitGuard struct {
	d  *Driver
	id uint32
}

func (g *visitGuard) release() { delete(g.d.visiting, g.id) }

// enter marks id as on the current descent path. The second return
// value is false if id is already being visited (a cycle), in which
// case the caller must not descend into it.
func (d *Driver) enter(id uint32) (*visitGuard, bool) {
	if d.visiting[id] {
		return nil, false
	}
	d.visiting[id] = true
	return &visitGuard{d: d, id: id}, true
}

// Parse resolves object #1 (the document root) and walks its graph,
// emitting events on consumer. It returns false only when the root
// itself cannot be resolved — every other failure is contained to its
// branch and logged, per spec.md §7's propagation policy.
func (d *Driver) Parse(consumer Consumer) bool {
	typ, msg, ok := d.idx.QueryObject(1)
	if !ok {
		return false
	}
	if ObjectType(typ) != TypeDocument && ObjectType(typ) != TypePagesRoot {
		d.logger.Debugf("iwork: root object has unexpected type %d", typ)
	}

	guard, ok := d.enter(1)
	if !ok {
		return false
	}
	defer guard.release()

	consumer.OpenDocument()
	d.walkChildren(msg, consumer)
	consumer.CloseDocument()
	return true
}

// walkChildren visits a container object's child references in
// document order.
func (d *Driver) walkChildren(msg *wire.Message, consumer Consumer) {
	for _, id := range msg.Uint32(2).Repeated() {
		d.visit(id, consumer)
	}
}

// visit resolves id, guards against re-entering it, and dispatches on
// its object type. Unknown types are skipped with a debug note, per
// spec.md §4.5's dispatch-table rule.
func (d *Driver) visit(id uint32, consumer Consumer) {
	guard, ok := d.enter(id)
	if !ok {
		d.logger.Debugf("iwork: cycle detected at object %d, skipping", id)
		return
	}
	defer guard.release()

	typ, msg, ok := d.idx.QueryObject(id)
	if !ok {
		d.logger.Debugf("iwork: object %d not found, skipping", id)
		return
	}

	switch ObjectType(typ) {
	case TypePresentation, TypeSlideList, TypePagesRoot:
		d.walkChildren(msg, consumer)
	case TypeSlide:
		d.walkSlide(id, msg, consumer)
	case TypePlaceholder:
		d.walkPlaceholder(id, msg, consumer)
	case TypeDrawableShape:
		d.walkDrawableShape(id, msg, consumer)
	case TypeGroup:
		d.walkGroup(id, msg, consumer)
	case TypeImage:
		d.walkImage(id, msg, consumer)
	case TypeText:
		d.walkText(msg, consumer)
	default:
		d.logger.Debugf("iwork: skipping object %d with unhandled type %d", id, typ)
	}
}

func (d *Driver) walkSlide(id uint32, msg *wire.Message, consumer Consumer) {
	consumer.OpenSlide(id)
	consumer.OpenSlideLayer()
	d.walkChildren(msg, consumer)
	consumer.CloseSlideLayer()
	consumer.CloseSlide()
}

// walkPlaceholder treats an empty child list as "no own content" and
// sets Inherited, per SPEC_FULL.md's restored placeholder-inheritance
// feature; resolving the inherited appearance is left to the consumer.
func (d *Driver) walkPlaceholder(id uint32, msg *wire.Message, consumer Consumer) {
	children := msg.Uint32(2).Repeated()
	inherited := len(children) == 0
	consumer.OpenPlaceholder(id, inherited)
	d.walkChildren(msg, consumer)
	consumer.ClosePlaceholder()
}

func (d *Driver) walkDrawableShape(id uint32, msg *wire.Message, consumer Consumer) {
	placement := decodeShapePlacement(msg)
	path := decodePath(msg, d.logger)
	consumer.OpenDrawableShape(id, placement, path)
	d.walkChildren(msg, consumer)
	consumer.CloseDrawableShape()
}

func (d *Driver) walkGroup(id uint32, msg *wire.Message, consumer Consumer) {
	consumer.OpenGroup(id)
	d.walkChildren(msg, consumer)
	consumer.CloseGroup()
}

// walkImage reads the placement transform and the referenced
// file-data ID (field 3) but does not resolve the underlying bytes
// itself; the consumer is expected to call back into the index via
// QueryFile if it needs the image payload.
func (d *Driver) walkImage(id uint32, msg *wire.Message, consumer Consumer) {
	placement := decodeShapePlacement(msg)
	fileID, _ := msg.Uint32(3).Optional()
	consumer.OpenImage(id, placement, fileID)
	consumer.CloseImage()
}

func (d *Driver) walkText(msg *wire.Message, consumer Consumer) {
	ranges := decodeTextRanges(msg)
	emitText(consumer, ranges, d.logger)
}
