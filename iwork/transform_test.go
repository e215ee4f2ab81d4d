// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iwork

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestIdentityIsNoOp(t *testing.T) {
	x, y := Identity().Apply(3, 4)
	if !almostEqual(x, 3) || !almostEqual(y, 4) {
		t.Fatalf("Identity().Apply(3,4) = (%v,%v), want (3,4)", x, y)
	}
}

func TestTranslateThenApply(t *testing.T) {
	x, y := Translate(10, -5).Apply(1, 1)
	if !almostEqual(x, 11) || !almostEqual(y, -4) {
		t.Fatalf("got (%v,%v), want (11,-4)", x, y)
	}
}

func TestMulAppliesRightOperandFirst(t *testing.T) {
	// translate then rotate 90deg: m.Mul(n).Apply(p) == m.Apply(n.Apply(p))
	m := Rotate(math.Pi / 2)
	n := Translate(1, 0)
	combined := m.Mul(n)

	gotX, gotY := combined.Apply(0, 0)
	wantX, wantY := m.Apply(n.Apply(0, 0))
	if !almostEqual(gotX, wantX) || !almostEqual(gotY, wantY) {
		t.Fatalf("Mul composition mismatch: got (%v,%v), want (%v,%v)", gotX, gotY, wantX, wantY)
	}
}

func TestFlipNegatesAxis(t *testing.T) {
	x, y := Flip(true, false).Apply(2, 3)
	if !almostEqual(x, -2) || !almostEqual(y, 3) {
		t.Fatalf("Flip(true,false).Apply(2,3) = (%v,%v), want (-2,3)", x, y)
	}
}

func TestDecodeShapePlacementNoGeometryIsIdentity(t *testing.T) {
	msg := parseMsg(nil)
	tr := decodeShapePlacement(msg)
	if tr != Identity() {
		t.Fatalf("decodeShapePlacement with no geometry = %+v, want Identity", tr)
	}
}

func TestDecodeShapePlacementTranslateOnly(t *testing.T) {
	var geom []byte
	geom = appendMessageField(geom, 2, sizeMsg(100, 50))
	geom = appendMessageField(geom, 3, pointMsg(20, 10))

	var top []byte
	top = appendMessageField(top, 1, geom)
	msg := parseMsg(top)

	tr := decodeShapePlacement(msg)
	// a shape with no rotation/flip/shear centered at its own position
	// plus half its size should map its own top-left corner to pos.
	x, y := tr.Apply(0, 0)
	if !almostEqual(x, 20) || !almostEqual(y, 10) {
		t.Fatalf("top-left maps to (%v,%v), want (20,10)", x, y)
	}
}

func TestDecodeShapePlacementRotationPivotsAroundCenter(t *testing.T) {
	var geom []byte
	geom = appendMessageField(geom, 2, sizeMsg(100, 100))
	geom = appendMessageField(geom, 3, pointMsg(0, 0))
	geom = appendDoubleField(geom, 4, 180)

	var top []byte
	top = appendMessageField(top, 1, geom)
	msg := parseMsg(top)

	tr := decodeShapePlacement(msg)
	cx, cy := tr.Apply(50, 50)
	if !almostEqual(cx, 50) || !almostEqual(cy, 50) {
		t.Fatalf("center should be a fixed point of a pure rotation: got (%v,%v)", cx, cy)
	}
}
