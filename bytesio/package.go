// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package bytesio

import (
	"archive/zip"
	"io"
	"os"
	"path"

	mmap "github.com/edsrzf/mmap-go"
)

// Package is the external input abstraction spec.md §6 describes: a
// read-only container that may or may not be structured (have named
// members). A bare single .iwa handed to the discriminator, and a full
// ZIP-backed iWork document, both satisfy it.
type Package interface {
	// IsStructured reports whether Exists/Open are meaningful.
	IsStructured() bool

	// Exists reports whether a named member is present. Calling it on
	// an unstructured Package always returns false.
	Exists(name string) bool

	// Open returns the named member's full contents as a MemoryStream.
	// It returns ErrSubStreamNotFound if absent and ErrNotStructured if
	// the Package is not structured.
	Open(name string) (*MemoryStream, error)
}

// unstructuredPackage adapts a single flat byte stream (a bare .iwa or
// any other root-level stream handed in directly, per spec.md §4.6's
// "unstructured input" branch) to the Package interface.
type unstructuredPackage struct {
	root *MemoryStream
}

// NewUnstructuredPackage wraps data as a Package with no named members.
func NewUnstructuredPackage(data []byte) Package {
	return &unstructuredPackage{root: NewMemoryStream(data)}
}

func (p *unstructuredPackage) IsStructured() bool { return false }
func (p *unstructuredPackage) Exists(string) bool { return false }
func (p *unstructuredPackage) Open(string) (*MemoryStream, error) {
	return nil, ErrNotStructured
}

// Root returns the single backing stream, for callers (the format
// discriminator) that need to probe the bytes of an unstructured
// Package directly.
func (p *unstructuredPackage) Root() *MemoryStream { return p.root }

// AsUnstructuredRoot returns the backing stream of an unstructured
// Package, or nil if pkg is structured.
func AsUnstructuredRoot(pkg Package) *MemoryStream {
	if u, ok := pkg.(*unstructuredPackage); ok {
		return u.root
	}
	return nil
}

// ZipPackage is the default structured Package, backed by archive/zip
// (spec.md §1 calls the ZIP reader itself an out-of-scope external
// collaborator; this is the thin default adapter that makes the
// module runnable end-to-end against real .key/.numbers/.pages files,
// which are ZIP archives).
type ZipPackage struct {
	zr *zip.Reader
}

// OpenZipPackage opens path as a ZIP-backed Package.
func OpenZipPackage(path string) (*ZipPackage, func() error, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, err
	}
	return &ZipPackage{zr: &rc.Reader}, rc.Close, nil
}

// NewZipPackage wraps an already-opened zip.Reader, for callers
// reading from an in-memory archive (zip.NewReader).
func NewZipPackage(zr *zip.Reader) *ZipPackage {
	return &ZipPackage{zr: zr}
}

func (p *ZipPackage) IsStructured() bool { return true }

func (p *ZipPackage) find(name string) *zip.File {
	for _, f := range p.zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func (p *ZipPackage) Exists(name string) bool { return p.find(name) != nil }

func (p *ZipPackage) Open(name string) (*MemoryStream, error) {
	f := p.find(name)
	if f == nil {
		return nil, ErrSubStreamNotFound
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	return NewMemoryStream(data), nil
}

// DirPackage is a structured Package backed by a plain directory on
// disk (an iWork package expanded by a host, or a developer's working
// copy). Open memory-maps a member the way pe.New maps the PE file and
// then copies the mapped bytes into a heap-owned buffer, so the whole
// member is held in memory once Open returns.
type DirPackage struct {
	root string
}

// NewDirPackage roots a Package at dir.
func NewDirPackage(dir string) *DirPackage {
	return &DirPackage{root: dir}
}

func (p *DirPackage) IsStructured() bool { return true }

func (p *DirPackage) Exists(name string) bool {
	_, err := os.Stat(path.Join(p.root, name))
	return err == nil
}

func (p *DirPackage) Open(name string) (*MemoryStream, error) {
	f, err := os.Open(path.Join(p.root, name))
	if err != nil {
		return nil, ErrSubStreamNotFound
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if fi.Size() == 0 {
		return NewMemoryStream(nil), nil
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, err
	}
	// mmap.MMap is a []byte; copying it out keeps the MemoryStream
	// valid after the mapping's owning *os.File is released below,
	// matching the "Messages do not outlive their backing stream"
	// rule from a snapshot rather than a live mapping.
	owned := make([]byte, len(data))
	copy(owned, data)
	_ = data.Unmap()
	return NewMemoryStream(owned), nil
}

// SubPackage roots a view at a prefix inside a parent Package, the
// Substream adapter of spec.md §4.1: exists/open delegate to the
// parent with the root prepended. It is how the "Index.zip/Index/*"
// inner-wrapping fallback of spec.md §6 is expressed without a second
// concrete Package type.
type SubPackage struct {
	parent Package
	prefix string
}

// NewSubPackage roots a view of parent at prefix (no leading or
// trailing slash).
func NewSubPackage(parent Package, prefix string) *SubPackage {
	return &SubPackage{parent: parent, prefix: prefix}
}

func (p *SubPackage) IsStructured() bool { return p.parent.IsStructured() }

func (p *SubPackage) join(name string) string {
	return path.Join(p.prefix, name)
}

func (p *SubPackage) Exists(name string) bool {
	return p.parent.Exists(p.join(name))
}

func (p *SubPackage) Open(name string) (*MemoryStream, error) {
	return p.parent.Open(p.join(name))
}
