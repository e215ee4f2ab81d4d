// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iwork

import "github.com/iwa-go/iwacore/wire"

// Point is a 2D coordinate in a shape's local space.
type Point struct{ X, Y float64 }

// Size is a width/height pair.
type Size struct{ W, H float64 }

func decodePointMsg(msg *wire.Message, field uint32) Point {
	sub, ok := msg.Message(field).Optional()
	if !ok {
		return Point{}
	}
	x, _ := sub.Double(1).Optional()
	y, _ := sub.Double(2).Optional()
	return Point{X: x, Y: y}
}

func decodeSizeMsg(msg *wire.Message, field uint32) Size {
	sub, ok := msg.Message(field).Optional()
	if !ok {
		return Size{}
	}
	w, _ := sub.Double(1).Optional()
	h, _ := sub.Double(2).Optional()
	return Size{W: w, H: h}
}
