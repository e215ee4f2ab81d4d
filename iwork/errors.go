// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package iwork implements the recursive-descent parser driver and
// shape/text decoders of spec.md §4.5-§4.7: it walks the object graph
// the index package exposes, starting from object #1, and emits
// structured events into a Consumer.
package iwork

import "errors"

// errCycle names the condition of an object reference that would
// re-enter an object already on the current descent path. enter
// reports that condition as a false second return value; no function
// returns this variable. Per spec.md §7, a cycle silently yields an
// empty result for that branch, not a propagated error.
var errCycle = errors.New("iwork: object reference cycle")

var (
	// ErrRootNotFound names the case where object #1 (the document
	// root) cannot be resolved at all — the one failure mode spec.md
	// §7 treats as user-visible ("parse returned false"). Driver.Parse
	// reports it by returning false; it does not return this error.
	ErrRootNotFound = errors.New("iwork: document root object not found")
)
