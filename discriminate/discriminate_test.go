// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package discriminate

import (
	"testing"

	refsnappy "github.com/golang/snappy"
	"github.com/iwa-go/iwacore/bytesio"
)

type fakePackage struct {
	files map[string][]byte
}

func (p *fakePackage) IsStructured() bool { return true }
func (p *fakePackage) Exists(name string) bool {
	_, ok := p.files[name]
	return ok
}
func (p *fakePackage) Open(name string) (*bytesio.MemoryStream, error) {
	d, ok := p.files[name]
	if !ok {
		return nil, bytesio.ErrSubStreamNotFound
	}
	return bytesio.NewMemoryStream(d), nil
}

func TestClassifyBinaryKeynote(t *testing.T) {
	pkg := &fakePackage{files: map[string][]byte{
		documentIWA:    []byte("anything"),
		masterSlideIWA: []byte("anything"),
	}}
	r := Classify(pkg)
	if r.Format != FormatBinary || r.Kind != KindKeynote || r.Confidence != Excellent {
		t.Fatalf("Classify = %+v, want binary/Keynote/Excellent", r)
	}
}

func TestClassifyBinaryNumbers(t *testing.T) {
	pkg := &fakePackage{files: map[string][]byte{
		documentIWA: []byte("anything"),
		dataListIWA: []byte("anything"),
	}}
	r := Classify(pkg)
	if r.Format != FormatBinary || r.Kind != KindNumbers {
		t.Fatalf("Classify = %+v, want binary/Numbers", r)
	}
}

func TestClassifyXMLv2Keynote(t *testing.T) {
	pkg := &fakePackage{files: map[string][]byte{"index.apxl": []byte("<xml/>")}}
	r := Classify(pkg)
	if r.Format != FormatXMLv2Keynote || r.Kind != KindKeynote {
		t.Fatalf("Classify = %+v, want XMLv2Keynote", r)
	}
}

func TestClassifyXMLv1Keynote(t *testing.T) {
	pkg := &fakePackage{files: map[string][]byte{"presentation.apxl.gz": []byte("gz")}}
	r := Classify(pkg)
	if r.Format != FormatXMLv1Keynote {
		t.Fatalf("Classify = %+v, want XMLv1Keynote", r)
	}
}

func TestClassifyIndexZipInnerWrapping(t *testing.T) {
	pkg := &fakePackage{files: map[string][]byte{
		"Index.zip/Index/Document.iwa":    []byte("anything"),
		"Index.zip/Index/MasterSlide.iwa": []byte("anything"),
	}}
	r := Classify(pkg)
	if r.Format != FormatBinary || r.Kind != KindKeynote {
		t.Fatalf("Classify = %+v, want binary/Keynote via Index.zip fallback", r)
	}
}

func TestClassifyUnsupported(t *testing.T) {
	pkg := &fakePackage{files: map[string][]byte{"readme.txt": []byte("nope")}}
	r := Classify(pkg)
	if r.Format != FormatUnsupported {
		t.Fatalf("Classify = %+v, want Unsupported", r)
	}
}

func TestClassifyUnstructuredXMLPresentationFallsBackToKeynote(t *testing.T) {
	pkg := bytesio.NewUnstructuredPackage([]byte(`<?xml version="1.0" encoding="UTF-8"?><key:presentation xmlns:key="x"/>`))
	r := Classify(pkg)
	if r.Format != FormatXMLv2Keynote || r.Kind != KindKeynote || r.Confidence != Partial {
		t.Fatalf("Classify = %+v, want XMLv2Keynote/Keynote/Partial", r)
	}
}

func TestClassifyUnstructuredXMLDocumentFallsBackToUnknownKind(t *testing.T) {
	pkg := bytesio.NewUnstructuredPackage([]byte(`<ls:document xmlns:ls="x"/>`))
	r := Classify(pkg)
	if r.Format != FormatXMLv2NumbersOrPages || r.Confidence != Partial {
		t.Fatalf("Classify = %+v, want XMLv2NumbersOrPages/Partial", r)
	}
}

func TestClassifyUnstructuredGarbageStaysUnsupported(t *testing.T) {
	pkg := bytesio.NewUnstructuredPackage([]byte("not snappy, not xml, just noise"))
	r := Classify(pkg)
	if r.Format != FormatUnsupported {
		t.Fatalf("Classify = %+v, want Unsupported", r)
	}
}

func TestClassifyUnstructuredPagesHeader(t *testing.T) {
	// header Message: field1=id(1), field2={field1: type=10000, field3: length=0}
	var dataInfo []byte
	dataInfo = bytesio.AppendUvarint(dataInfo, uint64(1)<<3|0) // field1, varint
	dataInfo = bytesio.AppendUvarint(dataInfo, 10000)
	dataInfo = bytesio.AppendUvarint(dataInfo, uint64(3)<<3|0) // field3, varint
	dataInfo = bytesio.AppendUvarint(dataInfo, 0)

	var header []byte
	header = bytesio.AppendUvarint(header, uint64(1)<<3|0) // field1, varint
	header = bytesio.AppendUvarint(header, 1)
	header = bytesio.AppendUvarint(header, uint64(2)<<3|2) // field2, length-delimited
	header = bytesio.AppendUvarint(header, uint64(len(dataInfo)))
	header = append(header, dataInfo...)

	var record []byte
	record = bytesio.AppendUvarint(record, uint64(len(header)))
	record = append(record, header...)

	tags := refsnappy.Encode(nil, record)
	var framed []byte
	framed = bytesio.AppendUvarint(framed, uint64(len(tags)))
	framed = append(framed, tags...)

	pkg := bytesio.NewUnstructuredPackage(framed)
	r := Classify(pkg)
	if r.Format != FormatBinary || r.Kind != KindPages || r.Confidence != Partial {
		t.Fatalf("Classify = %+v, want binary/Pages/Partial", r)
	}
}
