// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iwork

// ObjectType is the fixed small enumeration of object-record type tags
// spec.md §6 lists byte-for-byte. Values outside this set are valid
// (an object graph can reference types this core doesn't interpret)
// and are handled by the dispatcher's catch-all, not rejected.
type ObjectType uint32

const (
	TypeDocument       ObjectType = 1
	TypePresentation   ObjectType = 2
	TypeSlideList      ObjectType = 4
	TypeSlide          ObjectType = 5
	TypePlaceholder    ObjectType = 7
	TypeText           ObjectType = 2001
	TypeDrawableShape  ObjectType = 2011
	TypeCharacterStyle ObjectType = 2021
	TypeParagraphStyle ObjectType = 2022
	TypeImage          ObjectType = 3005
	TypeGroup          ObjectType = 3008
	TypePagesRoot      ObjectType = 10000
)

func (t ObjectType) String() string {
	switch t {
	case TypeDocument:
		return "Document"
	case TypePresentation:
		return "Presentation"
	case TypeSlideList:
		return "SlideList"
	case TypeSlide:
		return "Slide"
	case TypePlaceholder:
		return "Placeholder"
	case TypeText:
		return "Text"
	case TypeDrawableShape:
		return "DrawableShape"
	case TypeCharacterStyle:
		return "CharacterStyle"
	case TypeParagraphStyle:
		return "ParagraphStyle"
	case TypeImage:
		return "Image"
	case TypeGroup:
		return "Group"
	case TypePagesRoot:
		return "PagesRoot"
	default:
		return "Unknown"
	}
}
