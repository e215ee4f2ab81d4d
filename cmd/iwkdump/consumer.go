// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"github.com/iwa-go/iwacore/iwork"
)

// node is one entry of the JSON tree dumpConsumer builds. It mirrors
// the shallow, field-tagged structs pe.File's own sections use for
// JSON output, generalized to a generic event tree since Consumer
// events are nested rather than flat tables.
type node struct {
	Kind      string           `json:"kind"`
	ID        uint32           `json:"id,omitempty"`
	StyleID   uint32           `json:"style_id,omitempty"`
	FileID    uint32           `json:"file_id,omitempty"`
	Language  uint32           `json:"language,omitempty"`
	ListStyle uint32           `json:"list_style,omitempty"`
	ListLevel uint32           `json:"list_level,omitempty"`
	Text      string           `json:"text,omitempty"`
	Placement *iwork.Transform `json:"placement,omitempty"`
	Inherited bool             `json:"inherited,omitempty"`
	Children  []*node          `json:"children,omitempty"`
}

// dumpConsumer implements iwork.Consumer by building a tree of node
// values instead of driving a real paginated-document output; flags
// gate which event families are retained, mirroring pedumper.go's
// per-section boolean flags.
type dumpConsumer struct {
	iwork.NoopConsumer

	wantSlides bool
	wantShapes bool
	wantText   bool

	root  *node
	stack []*node
}

func newDumpConsumer(wantSlides, wantShapes, wantText bool) *dumpConsumer {
	root := &node{Kind: "document"}
	return &dumpConsumer{wantSlides: wantSlides, wantShapes: wantShapes, wantText: wantText, root: root, stack: []*node{root}}
}

func (c *dumpConsumer) top() *node { return c.stack[len(c.stack)-1] }

func (c *dumpConsumer) push(n *node) {
	c.top().Children = append(c.top().Children, n)
	c.stack = append(c.stack, n)
}

func (c *dumpConsumer) pop() {
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *dumpConsumer) OpenDocument() {}
func (c *dumpConsumer) CloseDocument() {}

func (c *dumpConsumer) OpenSlide(id uint32) {
	if !c.wantSlides {
		return
	}
	c.push(&node{Kind: "slide", ID: id})
}
func (c *dumpConsumer) CloseSlide() {
	if !c.wantSlides {
		return
	}
	c.pop()
}

func (c *dumpConsumer) OpenSlideLayer() {
	if !c.wantSlides {
		return
	}
	c.push(&node{Kind: "layer"})
}
func (c *dumpConsumer) CloseSlideLayer() {
	if !c.wantSlides {
		return
	}
	c.pop()
}

func (c *dumpConsumer) OpenPlaceholder(id uint32, inherited bool) {
	if !c.wantShapes {
		return
	}
	c.push(&node{Kind: "placeholder", ID: id, Inherited: inherited})
}
func (c *dumpConsumer) ClosePlaceholder() {
	if !c.wantShapes {
		return
	}
	c.pop()
}

func (c *dumpConsumer) OpenGroup(id uint32) {
	if !c.wantShapes {
		return
	}
	c.push(&node{Kind: "group", ID: id})
}
func (c *dumpConsumer) CloseGroup() {
	if !c.wantShapes {
		return
	}
	c.pop()
}

func (c *dumpConsumer) OpenDrawableShape(id uint32, placement iwork.Transform, path []iwork.PathElement) {
	if !c.wantShapes {
		return
	}
	c.push(&node{Kind: "shape", ID: id, Placement: &placement})
}
func (c *dumpConsumer) CloseDrawableShape() {
	if !c.wantShapes {
		return
	}
	c.pop()
}

func (c *dumpConsumer) OpenImage(id uint32, placement iwork.Transform, fileID uint32) {
	if !c.wantShapes {
		return
	}
	c.top().Children = append(c.top().Children, &node{Kind: "image", ID: id, FileID: fileID, Placement: &placement})
}
func (c *dumpConsumer) CloseImage() {}

func (c *dumpConsumer) OpenText() {
	if !c.wantText {
		return
	}
	c.push(&node{Kind: "text"})
}
func (c *dumpConsumer) CloseText() {
	if !c.wantText {
		return
	}
	c.pop()
}

func (c *dumpConsumer) OpenParagraph(styleID, language uint32) {
	if !c.wantText {
		return
	}
	c.push(&node{Kind: "paragraph", StyleID: styleID, Language: language})
}
func (c *dumpConsumer) CloseParagraph() {
	if !c.wantText {
		return
	}
	c.pop()
}

func (c *dumpConsumer) OpenSpan(styleID, listStyle, listLevel uint32) {
	if !c.wantText {
		return
	}
	c.push(&node{Kind: "span", StyleID: styleID, ListStyle: listStyle, ListLevel: listLevel})
}
func (c *dumpConsumer) CloseSpan() {
	if !c.wantText {
		return
	}
	c.pop()
}

func (c *dumpConsumer) Text(s string) {
	if !c.wantText {
		return
	}
	c.top().Children = append(c.top().Children, &node{Kind: "text-run", Text: s})
}

func (c *dumpConsumer) Tab() {
	if c.wantText {
		c.top().Children = append(c.top().Children, &node{Kind: "tab"})
	}
}
func (c *dumpConsumer) LineBreak() {
	if c.wantText {
		c.top().Children = append(c.top().Children, &node{Kind: "line-break"})
	}
}
func (c *dumpConsumer) ParagraphBreak() {
	if c.wantText {
		c.top().Children = append(c.top().Children, &node{Kind: "paragraph-break"})
	}
}
func (c *dumpConsumer) PageBreak() {
	if c.wantText {
		c.top().Children = append(c.top().Children, &node{Kind: "page-break"})
	}
}
