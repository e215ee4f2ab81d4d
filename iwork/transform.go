// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iwork

import (
	"math"

	"github.com/iwa-go/iwacore/wire"
)

// Transform is a 2D affine matrix in the conventional [a c tx; b d ty]
// layout: Apply(x, y) = (a·x + c·y + tx, b·x + d·y + ty).
type Transform struct {
	A, B, C, D, TX, TY float64
}

// Identity is the no-op transform.
func Identity() Transform { return Transform{A: 1, D: 1} }

func Translate(dx, dy float64) Transform { return Transform{A: 1, D: 1, TX: dx, TY: dy} }

func Rotate(radians float64) Transform {
	c, s := math.Cos(radians), math.Sin(radians)
	return Transform{A: c, B: s, C: -s, D: c}
}

func Scale(sx, sy float64) Transform { return Transform{A: sx, D: sy} }

func Flip(horizontal, vertical bool) Transform {
	sx, sy := 1.0, 1.0
	if horizontal {
		sx = -1
	}
	if vertical {
		sy = -1
	}
	return Scale(sx, sy)
}

func shearTransform(shx, shy float64) Transform {
	return Transform{A: 1, B: shy, C: shx, D: 1}
}

// Mul composes m then n, i.e. the result applied to a point is
// equivalent to applying n first and m second: (m.Mul(n)).Apply(p) ==
// m.Apply(n.Apply(p)).
func (m Transform) Mul(n Transform) Transform {
	return Transform{
		A:  m.A*n.A + m.C*n.B,
		B:  m.B*n.A + m.D*n.B,
		C:  m.A*n.C + m.C*n.D,
		D:  m.B*n.C + m.D*n.D,
		TX: m.A*n.TX + m.C*n.TY + m.TX,
		TY: m.B*n.TX + m.D*n.TY + m.TY,
	}
}

// Apply maps a local-space point through the transform.
func (m Transform) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.TX, m.B*x + m.D*y + m.TY
}

// decodeShapePlacement reads a shape's geometry sub-message and builds
// its placement transform per spec.md §4.5. As a Mul product (the
// right-most factor applies first):
//
//	T = translate(position) · center(size) · rotate(angle) · flip · shear · origin(size)
//
// Position is the upper-left corner; rotation pivots around the
// center; shear and flip precede rotation. The geometry sub-message
// field layout (natural size, size, position, angle, flip bits, shear
// angles) is not pinned down by byte-exact numbers in spec.md beyond
// the path sub-fields, so the field numbers below are a reasonable,
// internally-consistent assignment documented in DESIGN.md rather
// than lifted from a byte-exact reference.
func decodeShapePlacement(msg *wire.Message) Transform {
	geom, ok := msg.Message(1).Optional()
	if !ok {
		return Identity()
	}

	size := decodeSizeMsg(geom, 2)
	if size.W == 0 && size.H == 0 {
		size = decodeSizeMsg(geom, 1) // fall back to natural size
	}
	pos := decodePointMsg(geom, 3)
	angleDeg, _ := geom.Double(4).Optional()
	flipH, _ := geom.Bool(5).Optional()
	flipV, _ := geom.Bool(6).Optional()
	shearXDeg, _ := geom.Double(7).Optional()
	shearYDeg, _ := geom.Double(8).Optional()

	angle := angleDeg * math.Pi / 180
	shearX := math.Tan(shearXDeg * math.Pi / 180)
	shearY := math.Tan(shearYDeg * math.Pi / 180)

	center := Translate(size.W/2, size.H/2)
	rotate := Rotate(angle)
	flip := Flip(flipH, flipV)
	shear := shearTransform(shearX, shearY)
	origin := Translate(-size.W/2, -size.H/2)
	translate := Translate(pos.X, pos.Y)

	return translate.Mul(center).Mul(rotate).Mul(flip).Mul(shear).Mul(origin)
}
