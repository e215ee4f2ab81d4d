// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package bytesio

import "testing"

func TestMemoryStreamReadPastEnd(t *testing.T) {
	s := NewMemoryStream([]byte("hello"))
	got := s.Read(10)
	if string(got) != "hello" {
		t.Fatalf("Read(10) = %q, want %q", got, "hello")
	}
	if !s.IsEnd() {
		t.Fatal("IsEnd() = false after a short read, want true")
	}
}

func TestMemoryStreamSeek(t *testing.T) {
	s := NewMemoryStream([]byte("0123456789"))
	if err := s.Seek(5, SeekSet); err != nil {
		t.Fatalf("Seek(5, SeekSet) err = %v", err)
	}
	if got := string(s.Read(2)); got != "56" {
		t.Fatalf("Read(2) after Seek(5) = %q, want %q", got, "56")
	}
	if err := s.Seek(-100, SeekCur); err == nil {
		t.Fatal("Seek(-100, SeekCur) from pos 7 should fail, got nil error")
	}
}

func TestSubPackage(t *testing.T) {
	data := map[string][]byte{
		"Index/Document.iwa": []byte("doc"),
	}
	fake := &fakePackage{data: data}
	sub := NewSubPackage(fake, "Index.zip")
	if sub.Exists("Index/Document.iwa") {
		t.Fatal("sub.Exists should miss; parent only has the unprefixed path")
	}
	fake.data["Index.zip/Index/Document.iwa"] = []byte("nested")
	if !sub.Exists("Index/Document.iwa") {
		t.Fatal("sub.Exists should hit the prefixed path")
	}
}

type fakePackage struct{ data map[string][]byte }

func (p *fakePackage) IsStructured() bool { return true }
func (p *fakePackage) Exists(name string) bool {
	_, ok := p.data[name]
	return ok
}
func (p *fakePackage) Open(name string) (*MemoryStream, error) {
	d, ok := p.data[name]
	if !ok {
		return nil, ErrSubStreamNotFound
	}
	return NewMemoryStream(d), nil
}
