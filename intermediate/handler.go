// Package intermediate defines the contract between the area tree walker and
// output formats, and implements the intermediate XML format (IF) on top of
// it: a serializer writing every call as XML and a parser replaying such XML
// into any other handler.
package intermediate

import (
	"image/color"

	"arender/area"
	"arender/geom"
	"arender/nav"
)

// PageSequence carries page sequence level information.
type PageSequence struct {
	Language string
}

// Page describes a page about to be rendered. Size is in millipoints.
type Page struct {
	Index  int
	Name   string
	Width  int
	Height int
}

// DocumentHandler receives a document in the following order:
//
//	StartDocument
//	  StartDocumentHeader ... EndDocumentHeader
//	  (StartPageSequence
//	    (StartPage
//	      StartPageHeader ... EndPageHeader
//	      StartPageContent ... EndPageContent
//	      StartPageTrailer ... EndPageTrailer
//	    EndPage)*
//	  EndPageSequence)*
//	  StartDocumentTrailer ... EndDocumentTrailer
//	EndDocument
//
// Calling methods in any other order is a programming error and panics.
type DocumentHandler interface {
	StartDocument() error
	StartDocumentHeader() error
	EndDocumentHeader() error
	StartPageSequence(ps PageSequence) error
	StartPage(p Page) error
	StartPageHeader() error
	EndPageHeader() error
	// StartPageContent returns painter valid until EndPageContent.
	StartPageContent() (Painter, error)
	EndPageContent() error
	StartPageTrailer() error
	EndPageTrailer() error
	EndPage() error
	EndPageSequence() error
	StartDocumentTrailer() error
	EndDocumentTrailer() error
	EndDocument() error

	// SupportsPagesOutOfOrder reports whether pages may arrive in any order.
	SupportsPagesOutOfOrder() bool
	// HandleExtension receives format specific attachments in header and
	// trailer sections.
	HandleExtension(ext area.Extension) error
	// NavigationHandler may return nil when the format has no navigation.
	NavigationHandler() NavigationHandler
}

// Font is the complete font state of text drawn after SetFont.
type Font struct {
	Family  string
	Style   string
	Weight  int
	Variant string
	Size    int
	Color   color.RGBA
}

// Painter paints page content. Coordinates are millipoints in the current
// coordinate system, y grows downwards.
type Painter interface {
	// StartViewport establishes a new coordinate system of the given size,
	// optionally clipped to clip (in the new coordinate system).
	StartViewport(transform geom.Matrix, width, height int, clip *geom.Rect) error
	EndViewport() error
	StartGroup(transform geom.Matrix) error
	EndGroup() error

	ClipRect(r geom.Rect) error
	FillRect(r geom.Rect, c color.RGBA) error
	DrawBorderRect(r geom.Rect, top, bottom, left, right *area.BorderProps) error
	DrawLine(start, end geom.Point, width int, c color.RGBA, style area.BorderStyle) error
	DrawImage(uri string, r geom.Rect) error
	DrawForeignObject(namespace string, content []byte, r geom.Rect) error

	SetFont(f Font) error
	// DrawText draws text with its baseline starting at (x, y). dx, when not
	// empty, holds extra inline displacement applied before each glyph.
	DrawText(x, y, letterSpacing, wordSpacing int, dx []int, text string) error
}

// NavigationHandler receives document navigation. Links are delivered in
// page trailers, bookmarks and named destinations in the document trailer.
// Actions completed after being referenced are delivered with
// AddResolvedAction, Commit marks the end of a batch of them.
type NavigationHandler interface {
	RenderNamedDestination(d *nav.NamedDestination) error
	RenderBookmarkTree(t *nav.BookmarkTree) error
	RenderLink(l *nav.Link) error
	AddResolvedAction(a *nav.GoTo) error
	Commit() error
}
