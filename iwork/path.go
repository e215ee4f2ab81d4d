// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iwork

import (
	"math"

	"github.com/iwa-go/iwacore/internal/log"
	"github.com/iwa-go/iwacore/wire"
)

// PathElementKind is the sum type spec.md §9 calls for in place of the
// original's dynamic_cast-based polymorphism.
type PathElementKind int

const (
	MoveTo PathElementKind = iota
	LineTo
	CurveTo
	Close
)

// PathElement is one drawing command. Control1/Control2 are populated
// only for CurveTo.
type PathElement struct {
	Kind               PathElementKind
	Point              Point
	Control1, Control2 Point
}

// decodePath resolves a drawable-shape's field 3 (the path
// sub-message) against whichever of its five sub-fields is present,
// per spec.md §4.5.
func decodePath(shape *wire.Message, logger *log.Helper) []PathElement {
	pathMsg, ok := shape.Message(3).Optional()
	if !ok {
		return nil
	}
	if pt, ok := pathMsg.Message(3).Optional(); ok {
		return decodePointPath(pt)
	}
	if sc, ok := pathMsg.Message(4).Optional(); ok {
		return decodeScalarPath(sc)
	}
	if bz, ok := pathMsg.Message(5).Optional(); ok {
		return decodeBezierPath(bz, logger)
	}
	if co, ok := pathMsg.Message(6).Optional(); ok {
		return decodeCalloutPath(co)
	}
	if ed, ok := pathMsg.Message(8).Optional(); ok {
		return decodeEditablePath(ed)
	}
	return nil
}

// decodeBezierPath walks the element list of a bezier path
// sub-message. Per spec.md's open-question resolution ("source
// drops; preserve"), once a Close element has been emitted, every
// further element is dropped: a trailing MoveTo (the path's terminal
// element) silently, anything else with a debug note.
func decodeBezierPath(msg *wire.Message, logger *log.Helper) []PathElement {
	var out []PathElement
	closed := false
	for _, el := range msg.Message(1).Repeated() {
		typ, _ := el.Uint32(1).Optional()
		if closed {
			if typ != 1 && logger != nil {
				logger.Debugf("iwork: dropping bezier element type %d after Close", typ)
			}
			continue
		}
		switch typ {
		case 1:
			out = append(out, PathElement{Kind: MoveTo, Point: decodePointMsg(el, 2)})
		case 2:
			out = append(out, PathElement{Kind: LineTo, Point: decodePointMsg(el, 2)})
		case 4:
			out = append(out, PathElement{
				Kind:     CurveTo,
				Control1: decodePointMsg(el, 2),
				Control2: decodePointMsg(el, 3),
				Point:    decodePointMsg(el, 4),
			})
		case 5:
			out = append(out, PathElement{Kind: Close})
			closed = true
		default:
			if logger != nil {
				logger.Debugf("iwork: dropping unknown bezier element type %d", typ)
			}
		}
	}
	return out
}

// decodePointPath synthesizes one of the three built-in point-path
// generators: arrow, double-arrow, star, per spec.md §4.7.
func decodePointPath(msg *wire.Message) []PathElement {
	typ, _ := msg.Uint32(1).Optional()
	anchor := decodePointMsg(msg, 2)
	size := decodeSizeMsg(msg, 3)
	switch typ {
	case 1:
		return arrowPath(anchor, size, false)
	case 10:
		return arrowPath(anchor, size, true)
	case 100:
		return starPath(anchor, size, 5)
	default:
		return nil
	}
}

// arrowPath builds a closed arrow outline directly in size coordinates,
// offset by anchor: a shaft half the shape's height, centred on the
// midline, running from the left edge into a head that takes the right
// 30% of the width. When double is true, both ends carry a head, each
// 20% of the width.
func arrowPath(anchor Point, size Size, double bool) []PathElement {
	w, h := size.W, size.H
	headLen := w * 0.3
	shaftHalf := h * 0.25
	if double {
		headLen = w * 0.2
	}

	pts := []Point{
		{0, h/2 - shaftHalf},
		{w - headLen, h/2 - shaftHalf},
		{w - headLen, 0},
		{w, h / 2},
		{w - headLen, h},
		{w - headLen, h/2 + shaftHalf},
		{0, h/2 + shaftHalf},
	}
	if double {
		left := []Point{{0, h / 2}, {headLen, 0}, {headLen, h/2 - shaftHalf}}
		pts = append(append(left, pts[1:6]...), Point{headLen, h/2 + shaftHalf}, Point{headLen, h})
	}

	out := make([]PathElement, 0, len(pts)+1)
	for i, p := range pts {
		kind := LineTo
		if i == 0 {
			kind = MoveTo
		}
		out = append(out, PathElement{Kind: kind, Point: Point{X: anchor.X + p.X, Y: anchor.Y + p.Y}})
	}
	out = append(out, PathElement{Kind: Close})
	return out
}

// starPath synthesizes an n-pointed star by alternating outer and
// inner radii around anchor, the technique spec.md §4.7 names.
func starPath(anchor Point, size Size, points int) []PathElement {
	if points < 2 {
		points = 2
	}
	outerR := math.Min(size.W, size.H) / 2
	innerR := outerR * 0.4
	cx, cy := anchor.X+size.W/2, anchor.Y+size.H/2

	out := make([]PathElement, 0, points*2+1)
	for i := 0; i < points*2; i++ {
		r := outerR
		if i%2 == 1 {
			r = innerR
		}
		theta := float64(i)*math.Pi/float64(points) - math.Pi/2
		p := Point{X: cx + r*math.Cos(theta), Y: cy + r*math.Sin(theta)}
		kind := LineTo
		if i == 0 {
			kind = MoveTo
		}
		out = append(out, PathElement{Kind: kind, Point: p})
	}
	out = append(out, PathElement{Kind: Close})
	return out
}

// decodeScalarPath dispatches the two scalar-path shapes: a rounded
// rectangle (scalar = corner radius) or a regular polygon (scalar =
// edge count).
func decodeScalarPath(msg *wire.Message) []PathElement {
	typ, _ := msg.Uint32(1).Optional()
	scalar, _ := msg.Double(2).Optional()
	size := decodeSizeMsg(msg, 3)
	switch typ {
	case 0:
		return roundedRectPath(size, scalar)
	case 1:
		return regularPolygonPath(size, int(scalar))
	default:
		return nil
	}
}

// roundedRectPath builds a rounded rectangle via four quarter-arc
// corners (approximated with cubic beziers), clamping radius to
// min(radius, min(w,h)/2) per spec.md §4.7.
func roundedRectPath(size Size, radius float64) []PathElement {
	w, h := size.W, size.H
	maxR := math.Min(w, h) / 2
	r := math.Min(radius, maxR)
	if r < 0 {
		r = 0
	}
	const k = 0.5523 // cubic-bezier circular-arc approximation constant

	corner := func(p0, v, p1 Point) PathElement {
		return PathElement{
			Kind:     CurveTo,
			Control1: Point{X: p0.X + k*(v.X-p0.X), Y: p0.Y + k*(v.Y-p0.Y)},
			Control2: Point{X: p1.X + k*(v.X-p1.X), Y: p1.Y + k*(v.Y-p1.Y)},
			Point:    p1,
		}
	}

	var out []PathElement
	out = append(out, PathElement{Kind: MoveTo, Point: Point{X: r, Y: 0}})
	out = append(out, PathElement{Kind: LineTo, Point: Point{X: w - r, Y: 0}})
	out = append(out, corner(Point{X: w - r, Y: 0}, Point{X: w, Y: 0}, Point{X: w, Y: r}))
	out = append(out, PathElement{Kind: LineTo, Point: Point{X: w, Y: h - r}})
	out = append(out, corner(Point{X: w, Y: h - r}, Point{X: w, Y: h}, Point{X: w - r, Y: h}))
	out = append(out, PathElement{Kind: LineTo, Point: Point{X: r, Y: h}})
	out = append(out, corner(Point{X: r, Y: h}, Point{X: 0, Y: h}, Point{X: 0, Y: h - r}))
	out = append(out, PathElement{Kind: LineTo, Point: Point{X: 0, Y: r}})
	out = append(out, corner(Point{X: 0, Y: r}, Point{X: 0, Y: 0}, Point{X: r, Y: 0}))
	out = append(out, PathElement{Kind: Close})
	return out
}

// regularPolygonPath places edgeCount points around a centered unit
// circle mapped into size.
func regularPolygonPath(size Size, edgeCount int) []PathElement {
	if edgeCount < 3 {
		edgeCount = 3
	}
	cx, cy := size.W/2, size.H/2
	rx, ry := size.W/2, size.H/2

	out := make([]PathElement, 0, edgeCount+1)
	for i := 0; i < edgeCount; i++ {
		theta := float64(i)*2*math.Pi/float64(edgeCount) - math.Pi/2
		p := Point{X: cx + rx*math.Cos(theta), Y: cy + ry*math.Sin(theta)}
		kind := LineTo
		if i == 0 {
			kind = MoveTo
		}
		out = append(out, PathElement{Kind: kind, Point: p})
	}
	out = append(out, PathElement{Kind: Close})
	return out
}

// decodeCalloutPath builds a callout: the rounded bounding rect
// followed by a triangular tail as a separate open subpath. The tail's
// base always lies on the bottom edge, centred under tailPosition.X,
// and its apex is tailPosition; where the tail lands relative to the
// rounded corners is not analysed.
func decodeCalloutPath(msg *wire.Message) []PathElement {
	size := decodeSizeMsg(msg, 1)
	tailPos := decodePointMsg(msg, 2)
	tailSize := decodeSizeMsg(msg, 3)
	radius, _ := msg.Double(4).Optional()

	body := roundedRectPath(size, radius)
	halfTail := tailSize.W / 2
	if halfTail == 0 {
		halfTail = size.W * 0.1
	}

	tail := []PathElement{
		{Kind: MoveTo, Point: Point{X: tailPos.X - halfTail, Y: size.H}},
		{Kind: LineTo, Point: tailPos},
		{Kind: LineTo, Point: Point{X: tailPos.X + halfTail, Y: size.H}},
	}
	return append(body, tail...)
}

// decodeEditablePath walks a list of 3-control-point nodes; a node
// whose controls all coincide degenerates to a straight
// MoveTo/LineTo, otherwise it's a bezier segment.
func decodeEditablePath(msg *wire.Message) []PathElement {
	nodes := msg.Message(1).Repeated()
	out := make([]PathElement, 0, len(nodes))
	for i, node := range nodes {
		c1 := decodePointMsg(node, 1)
		c2 := decodePointMsg(node, 2)
		c3 := decodePointMsg(node, 3)

		straight := c1 == c2 && c2 == c3
		if i == 0 {
			out = append(out, PathElement{Kind: MoveTo, Point: c3})
			continue
		}
		if straight {
			out = append(out, PathElement{Kind: LineTo, Point: c3})
		} else {
			out = append(out, PathElement{Kind: CurveTo, Control1: c1, Control2: c2, Point: c3})
		}
	}
	return out
}
