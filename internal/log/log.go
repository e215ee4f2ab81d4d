// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package log adapts github.com/go-kratos/kratos/v2/log to the small
// surface this module's packages actually call, the same way
// github.com/saferwall/pe/log wraps it for that project's File type.
package log

import (
	"os"

	kratoslog "github.com/go-kratos/kratos/v2/log"
)

// Logger is the interface every component that can observe tolerated
// corruption accepts. It is exactly kratoslog.Logger so a caller can
// pass any kratos-compatible backend straight through.
type Logger = kratoslog.Logger

// Helper is the log.Helper every package stores and calls Debugf/Warnf/
// Errorf on, mirroring pe.File.logger.
type Helper = kratoslog.Helper

// NewHelper wraps a Logger the way pe.New does.
func NewHelper(logger Logger) *Helper {
	return kratoslog.NewHelper(logger)
}

// NewStdLogger returns a Logger that writes to w (Default and
// cmd/iwkdump pass os.Stdout, matching pe.New's fallback when
// Options.Logger is nil).
func NewStdLogger(w *os.File) Logger {
	return kratoslog.NewStdLogger(w)
}

// Default builds the helper pe.New/pe.NewBytes construct inline when no
// caller-supplied logger is present: a std logger filtered to warnings
// and above, so routine per-field corruption notes (Debug) stay quiet
// unless a caller opts in.
func Default() *Helper {
	return NewHelper(kratoslog.NewFilter(NewStdLogger(os.Stdout),
		kratoslog.FilterLevel(kratoslog.LevelWarn)))
}
