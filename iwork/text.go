// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iwork

import (
	"sort"

	"github.com/iwa-go/iwacore/internal/log"
	"github.com/iwa-go/iwacore/wire"
)

// styleRun is one parallel-map entry: a style/reference value holding
// from offset until the next entry (or text.length).
type styleRun struct {
	offset uint32
	value  uint32
}

// TextRanges is the decoded form of a text object's five parallel
// maps (paragraph style, span style, language, list style, list
// level) — kept as named fields rather than merged into
// ParagraphStyle, with list level tracked distinctly from list style.
type TextRanges struct {
	Text           string
	ParagraphStyle []styleRun
	SpanStyle      []styleRun
	Language       []styleRun
	ListStyle      []styleRun
	ListLevel      []styleRun
}

func decodeStyleRuns(msg *wire.Message, field uint32) []styleRun {
	var runs []styleRun
	for _, e := range msg.Message(field).Repeated() {
		off, _ := e.Uint32(1).Optional()
		val, _ := e.Uint32(2).Optional()
		runs = append(runs, styleRun{offset: off, value: val})
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].offset < runs[j].offset })
	return runs
}

// decodeTextRanges reads a text object's UTF-8 payload (field 1) and
// its five parallel style maps (fields 2-6).
func decodeTextRanges(msg *wire.Message) TextRanges {
	text, _ := msg.String(1).Optional()
	return TextRanges{
		Text:           text,
		ParagraphStyle: decodeStyleRuns(msg, 2),
		SpanStyle:      decodeStyleRuns(msg, 3),
		Language:       decodeStyleRuns(msg, 4),
		ListStyle:      decodeStyleRuns(msg, 5),
		ListLevel:      decodeStyleRuns(msg, 6),
	}
}

// valueAt returns the style value in effect at offset: the value of
// the last run whose offset is <= the queried offset, or 0 if none.
func valueAt(runs []styleRun, offset uint32) uint32 {
	var v uint32
	for _, r := range runs {
		if r.offset > offset {
			break
		}
		v = r.value
	}
	return v
}

// boundaries collects the distinct offsets at which any of the given
// maps starts a new run, plus 0 and textLen, sorted and deduplicated
// — the "⋃ [paragraph ranges] = [0, text.length]" construction of
// spec.md §8's S6 testable property, generalized to span ranges too.
func boundaries(textLen uint32, maps ...[]styleRun) []uint32 {
	set := map[uint32]bool{0: true, textLen: true}
	for _, m := range maps {
		for _, r := range m {
			if r.offset <= textLen {
				set[r.offset] = true
			}
		}
	}
	out := make([]uint32, 0, len(set))
	for o := range set {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// emitText walks a text object's decoded ranges and drives open/close
// events on consumer, per spec.md §4.7's text-decoding algorithm:
// paragraph boundaries are the union of paragraph-style and language
// boundaries (P); span boundaries are the union of span-style, list
// style, and list-level boundaries (S); each paragraph opens once and
// contains one or more spans clipped to the paragraph's extent.
func emitText(consumer Consumer, ranges TextRanges, logger *log.Helper) {
	text := ranges.Text
	textLen := uint32(len(text))
	if textLen == 0 {
		return
	}

	paragraphBounds := boundaries(textLen, ranges.ParagraphStyle, ranges.Language)
	spanBounds := boundaries(textLen, ranges.SpanStyle, ranges.ListStyle, ranges.ListLevel)

	consumer.OpenText()
	defer consumer.CloseText()

	for pi := 0; pi+1 < len(paragraphBounds); pi++ {
		pStart, pEnd := paragraphBounds[pi], paragraphBounds[pi+1]
		pStyle := valueAt(ranges.ParagraphStyle, pStart)
		language := valueAt(ranges.Language, pStart)
		consumer.OpenParagraph(pStyle, language)

		for si := 0; si+1 < len(spanBounds); si++ {
			sStart, sEnd := spanBounds[si], spanBounds[si+1]
			start, end := max32(pStart, sStart), min32(pEnd, sEnd)
			if start >= end {
				continue
			}
			spanStyle := valueAt(ranges.SpanStyle, start)
			listStyle := valueAt(ranges.ListStyle, start)
			listLevel := valueAt(ranges.ListLevel, start)
			consumer.OpenSpan(spanStyle, listStyle, listLevel)
			emitRun(consumer, text[start:end], end == pEnd, logger)
			consumer.CloseSpan()
		}

		consumer.CloseParagraph()
	}
}

// emitRun applies the byte-value escapes of spec.md §4.7 to one
// clipped text run and drives the corresponding consumer events.
// isFinalRunOfParagraph marks the run that reaches the paragraph's
// own end boundary, the one whose trailing newline (if any) is a pure
// paragraph terminator rather than a paragraph-break event.
func emitRun(consumer Consumer, run string, isFinalRunOfParagraph bool, logger *log.Helper) {
	var literal []byte
	flush := func() {
		if len(literal) > 0 {
			consumer.Text(string(literal))
			literal = literal[:0]
		}
	}
	spaceRun := false

	bytes := []byte(run)
	for i := 0; i < len(bytes); i++ {
		b := bytes[i]
		isLastByte := i == len(bytes)-1
		switch {
		case b == ' ':
			if spaceRun {
				continue
			}
			literal = append(literal, b)
			spaceRun = true
			continue
		case b == '\t':
			flush()
			consumer.Tab()
		case b == '\r':
			flush()
			consumer.LineBreak()
		case b == '\n':
			flush()
			if !(isLastByte && isFinalRunOfParagraph) {
				consumer.ParagraphBreak()
			}
		case b == 0x05:
			flush()
			consumer.PageBreak()
		case b < 0x20:
			flush()
			if logger != nil {
				logger.Debugf("iwork: discarding control byte 0x%02x in text run", b)
			}
		default:
			literal = append(literal, b)
		}
		spaceRun = b == ' '
	}
	flush()
}

func max32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}
