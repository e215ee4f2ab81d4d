// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iwork

// Consumer is the external collaborator spec.md §6 describes: the
// driver walks the object graph and drives open/close events on it,
// leaving all presentation concerns (rendering, layout, export) to
// the host. A host only interested in a subset of events embeds a
// no-op base and overrides what it needs.
type Consumer interface {
	OpenDocument()
	CloseDocument()

	OpenSlide(id uint32)
	CloseSlide()

	OpenSlideLayer()
	CloseSlideLayer()

	// OpenPlaceholder announces a placeholder shape. inherited is set
	// when the placeholder's own content is empty and its appearance
	// must be resolved from its layout/master, per SPEC_FULL.md §E
	// item 6 — resolution itself is left to the consumer.
	OpenPlaceholder(id uint32, inherited bool)
	ClosePlaceholder()

	OpenGroup(id uint32)
	CloseGroup()

	OpenDrawableShape(id uint32, placement Transform, path []PathElement)
	CloseDrawableShape()

	OpenImage(id uint32, placement Transform, fileID uint32)
	CloseImage()

	OpenText()
	CloseText()
	// OpenParagraph announces a paragraph with the paragraph style and
	// language in effect at its start offset, the two maps spec.md §3
	// merges into the paragraph boundary set.
	OpenParagraph(styleID, languageID uint32)
	CloseParagraph()
	// OpenSpan announces a span with the span style, list style, and
	// list level in effect at its start offset — list style/level are
	// the SPEC_FULL.md §E item 5 map restored from original_source/,
	// tracked distinctly from paragraph style rather than folded into
	// it.
	OpenSpan(styleID, listStyleID, listLevel uint32)
	CloseSpan()
	Text(s string)
	Tab()
	LineBreak()
	ParagraphBreak()
	PageBreak()
}

// NoopConsumer implements Consumer with empty bodies so a host can
// embed it and override only the events it cares about.
type NoopConsumer struct{}

func (NoopConsumer) OpenDocument()  {}
func (NoopConsumer) CloseDocument() {}

func (NoopConsumer) OpenSlide(uint32) {}
func (NoopConsumer) CloseSlide()      {}

func (NoopConsumer) OpenSlideLayer()  {}
func (NoopConsumer) CloseSlideLayer() {}

func (NoopConsumer) OpenPlaceholder(uint32, bool) {}
func (NoopConsumer) ClosePlaceholder()            {}

func (NoopConsumer) OpenGroup(uint32) {}
func (NoopConsumer) CloseGroup()      {}

func (NoopConsumer) OpenDrawableShape(uint32, Transform, []PathElement) {}
func (NoopConsumer) CloseDrawableShape()                                {}

func (NoopConsumer) OpenImage(uint32, Transform, uint32) {}
func (NoopConsumer) CloseImage()                         {}

func (NoopConsumer) OpenText()            {}
func (NoopConsumer) CloseText()           {}
func (NoopConsumer) OpenParagraph(uint32, uint32) {}
func (NoopConsumer) CloseParagraph()              {}
func (NoopConsumer) OpenSpan(uint32, uint32, uint32) {}
func (NoopConsumer) CloseSpan()                      {}
func (NoopConsumer) Text(string)      {}
func (NoopConsumer) Tab()             {}
func (NoopConsumer) LineBreak()       {}
func (NoopConsumer) ParagraphBreak()  {}
func (NoopConsumer) PageBreak()       {}
