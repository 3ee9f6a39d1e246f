// Package area defines the laid-out area tree consumed by the renderer. Areas
// are built once (by a layout engine or by ReadXML) and treated as read-only
// while rendering.
package area

import (
	"arender/geom"
)

// Area is any node of the area tree.
type Area interface {
	box() *Box
}

// Box carries geometry and traits common to all areas.
type Box struct {
	IPD    int // inline-progression-dimension of the content rectangle
	BPD    int // block-progression-dimension of the content rectangle
	Offset int // block-progression offset within the parent (inline areas)
	Traits Traits
}

func (b *Box) box() *Box { return b }

// BoxOf gives access to common properties of any area.
func BoxOf(a Area) *Box {
	return a.box()
}

// SetTrait sets a trait, creating the map on first use.
func (b *Box) SetTrait(k Trait, v any) {
	if b.Traits == nil {
		b.Traits = make(Traits)
	}
	b.Traits[k] = v
}

func (b *Box) BorderAndPaddingWidthStart() int {
	return b.Traits.Border(TraitBorderStart).EffectiveWidth() + b.Traits.Int(TraitPaddingStart)
}

func (b *Box) BorderAndPaddingWidthEnd() int {
	return b.Traits.Border(TraitBorderEnd).EffectiveWidth() + b.Traits.Int(TraitPaddingEnd)
}

func (b *Box) BorderAndPaddingWidthBefore() int {
	return b.Traits.Border(TraitBorderBefore).EffectiveWidth() + b.Traits.Int(TraitPaddingBefore)
}

func (b *Box) BorderAndPaddingWidthAfter() int {
	return b.Traits.Border(TraitBorderAfter).EffectiveWidth() + b.Traits.Int(TraitPaddingAfter)
}

func (b *Box) SpaceBefore() int { return b.Traits.Int(TraitSpaceBefore) }
func (b *Box) SpaceAfter() int  { return b.Traits.Int(TraitSpaceAfter) }
func (b *Box) StartIndent() int { return b.Traits.Int(TraitStartIndent) }

// AllocIPD is the inline size including borders and padding.
func (b *Box) AllocIPD() int {
	return b.IPD + b.BorderAndPaddingWidthStart() + b.BorderAndPaddingWidthEnd()
}

// AllocBPD is the block size including borders, padding and spaces.
func (b *Box) AllocBPD() int {
	return b.BPD + b.SpaceBefore() + b.SpaceAfter() + b.BorderAndPaddingWidthBefore() + b.BorderAndPaddingWidthAfter()
}

// ID returns the id trait or empty string.
func (b *Box) ID() string {
	return b.Traits.Text(TraitID)
}

// Document is the root of an area tree.
type Document struct {
	Sequences    []*PageSequence
	Bookmarks    *BookmarkTree
	Destinations []*Destination
	Extensions   []Extension
}

// Pages returns the number of pages in all sequences.
func (d *Document) Pages() int {
	n := 0
	for _, s := range d.Sequences {
		n += len(s.Pages)
	}
	return n
}

type PageSequence struct {
	Language string
	Pages    []*PageViewport
}

// PageViewport is a page with its position in the document.
type PageViewport struct {
	Index      int
	Name       string
	Bounds     geom.Rect
	Page       *Page
	Extensions []Extension
}

// Page holds region viewports indexed by RegionClass.
type Page struct {
	Regions [5]*RegionViewport
}

type RegionViewport struct {
	Box
	View   geom.Rect
	Clip   bool
	Region *RegionReference
}

// RegionReference establishes the coordinate system of a region. Body is set
// for the body region only.
type RegionReference struct {
	Box
	Class  RegionClass
	CTM    geom.Matrix
	Blocks []Area
	Body   *BodyRegion
}

type BodyRegion struct {
	ColumnGap   int
	ColumnCount int
	BeforeFloat *Block
	Main        *MainReference
	Footnote    *Block
}

type MainReference struct {
	Spans []*Span
}

// Span covers a set of columns, BPD is its height.
type Span struct {
	Box
	Columns int
	Flows   []*Flow
}

type Flow struct {
	Box
	Blocks []Area
}

// Block is a normal block area. Reference blocks establish their own
// coordinate system.
type Block struct {
	Box
	XOffset     int
	YOffset     int
	Positioning Positioning
	Reference   bool
	Children    []Area
}

// BlockViewport is a block-container, it positions and possibly clips its
// content using CTM.
type BlockViewport struct {
	Block
	CTM  geom.Matrix
	Clip bool
}

type LineArea struct {
	Box
	Inlines []Area
}

type InlineParent struct {
	Box
	Children []Area
}

type InlineBlockParent struct {
	Box
	Child *Block
}

// TextArea groups words and spaces sharing font and color.
type TextArea struct {
	Box
	BaselineOffset    int
	LetterSpaceAdjust int
	WordSpaceAdjust   int
	Children          []Area
}

// WordArea is a run of glyphs. LetterAdjust, when present, has one entry per
// rune: extra inline displacement applied before that glyph.
type WordArea struct {
	Box
	Word         string
	LetterAdjust []int
}

type SpaceArea struct {
	Box
	Space      rune
	Adjustable bool
}

// InlineViewport holds an image or a foreign object.
type InlineViewport struct {
	Box
	Content         Area
	ContentPosition geom.Rect
	Clip            bool
}

type Image struct {
	Box
	URI string
}

type ForeignObject struct {
	Box
	Namespace string
	Content   []byte
}

type Leader struct {
	Box
	RuleStyle     BorderStyle
	RuleThickness int
}

type InlineSpace struct {
	Box
}

// Extension is a format specific attachment (for example a PostScript page
// device dictionary) carried through to the output handler.
type Extension struct {
	Kind    string
	Name    string
	Content string
}

type BookmarkTree struct {
	Bookmarks []*Bookmark
}

type Bookmark struct {
	Title    string
	IDRef    string
	Show     bool
	Children []*Bookmark
}

type Destination struct {
	IDRef string
}
