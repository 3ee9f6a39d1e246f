package area

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/language"

	"arender/fonts"
	"arender/geom"
)

// RootElement is the tag of the area tree XML root.
const RootElement = "areaTree"

// ReadXML reads area tree XML. Unknown elements are logged and skipped,
// malformed attribute values are errors.
func ReadXML(r io.Reader, log *zap.Logger) (*Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		ValidateInput: false,
		Permissive:    true,
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to read area tree: %w", err)
	}
	return ParseXML(doc, log)
}

// ParseXML builds the area tree from an already parsed DOM.
func ParseXML(doc *etree.Document, log *zap.Logger) (*Document, error) {
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("document has no root element")
	}
	if root.Tag != RootElement {
		return nil, fmt.Errorf("unexpected root element %q", root.Tag)
	}

	p := &parser{log: log}
	d := &Document{}
	for _, child := range root.ChildElements() {
		switch child.Tag {
		case "pageSequence":
			seq, err := p.pageSequence(child)
			if err != nil {
				return nil, fmt.Errorf("pageSequence: %w", err)
			}
			d.Sequences = append(d.Sequences, seq)
		case "bookmarkTree":
			d.Bookmarks = &BookmarkTree{Bookmarks: p.bookmarks(child)}
		case "destination":
			d.Destinations = append(d.Destinations, &Destination{IDRef: child.SelectAttrValue("idref", "")})
		case "extension":
			d.Extensions = append(d.Extensions, parseExtension(child))
		default:
			p.unexpected(root, child)
		}
	}
	if p.err != nil {
		return nil, p.err
	}
	return d, nil
}

type parser struct {
	log   *zap.Logger
	pages int
	err   error
}

func (p *parser) unexpected(parent, el *etree.Element) {
	p.log.Warn("Unexpected tag in area tree, ignoring", zap.String("parent", parent.Tag), zap.String("tag", el.Tag))
}

func (p *parser) pageSequence(el *etree.Element) (*PageSequence, error) {
	seq := &PageSequence{}
	if lang := el.SelectAttrValue("language", ""); lang != "" {
		if tag, err := language.Parse(lang); err == nil {
			seq.Language = tag.String()
		} else {
			// kept verbatim, the renderer reports it
			p.log.Debug("Unable to parse page sequence language", zap.String("language", lang), zap.Error(err))
			seq.Language = lang
		}
	}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "pageViewport":
			pv, err := p.pageViewport(child)
			if err != nil {
				return nil, fmt.Errorf("pageViewport %d: %w", p.pages, err)
			}
			seq.Pages = append(seq.Pages, pv)
		default:
			p.unexpected(el, child)
		}
	}
	return seq, nil
}

func (p *parser) pageViewport(el *etree.Element) (*PageViewport, error) {
	pv := &PageViewport{Index: p.pages, Name: el.SelectAttrValue("name", strconv.Itoa(p.pages+1))}
	p.pages++

	var err error
	if pv.Bounds, err = geom.ParseRect(el.SelectAttrValue("bounds", "")); err != nil {
		return nil, err
	}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "page":
			if pv.Page, err = p.page(child); err != nil {
				return nil, err
			}
		case "extension":
			pv.Extensions = append(pv.Extensions, parseExtension(child))
		default:
			p.unexpected(el, child)
		}
	}
	if pv.Page == nil {
		pv.Page = &Page{}
	}
	return pv, nil
}

func (p *parser) page(el *etree.Element) (*Page, error) {
	pg := &Page{}
	for _, child := range el.ChildElements() {
		if child.Tag != "regionViewport" {
			p.unexpected(el, child)
			continue
		}
		rv, err := p.regionViewport(child)
		if err != nil {
			return nil, fmt.Errorf("regionViewport: %w", err)
		}
		if rv.Region == nil {
			continue
		}
		pg.Regions[rv.Region.Class] = rv
	}
	return pg, nil
}

var regionTags = map[string]RegionClass{
	"regionBefore": RegionClassBefore,
	"regionStart":  RegionClassStart,
	"regionBody":   RegionClassBody,
	"regionEnd":    RegionClassEnd,
	"regionAfter":  RegionClassAfter,
}

func (p *parser) regionViewport(el *etree.Element) (*RegionViewport, error) {
	rv := &RegionViewport{}
	if err := p.box(el, &rv.Box); err != nil {
		return nil, err
	}
	var err error
	if rv.View, err = geom.ParseRect(el.SelectAttrValue("rect", "")); err != nil {
		return nil, err
	}
	rv.Clip = boolAttr(el, "clipped")

	for _, child := range el.ChildElements() {
		class, ok := regionTags[child.Tag]
		if !ok {
			p.unexpected(el, child)
			continue
		}
		ref := &RegionReference{Class: class}
		if err := p.box(child, &ref.Box); err != nil {
			return nil, err
		}
		if ref.CTM, err = geom.ParseTransform(child.SelectAttrValue("ctm", "")); err != nil {
			return nil, err
		}
		if class == RegionClassBody {
			if ref.Body, err = p.bodyRegion(child); err != nil {
				return nil, err
			}
		} else if ref.Blocks, err = p.blocks(child); err != nil {
			return nil, err
		}
		rv.Region = ref
	}
	return rv, nil
}

func (p *parser) bodyRegion(el *etree.Element) (*BodyRegion, error) {
	body := &BodyRegion{
		ColumnGap:   p.intAttr(el, "columnGap"),
		ColumnCount: max(1, p.intAttr(el, "columnCount")),
	}
	for _, child := range el.ChildElements() {
		var err error
		switch child.Tag {
		case "beforeFloat":
			body.BeforeFloat, err = p.container(child)
		case "footnote":
			body.Footnote, err = p.container(child)
		case "mainReference":
			body.Main, err = p.mainReference(child)
		default:
			p.unexpected(el, child)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", child.Tag, err)
		}
	}
	return body, nil
}

// container reads before-float and footnote areas, plain block stacks.
func (p *parser) container(el *etree.Element) (*Block, error) {
	b := &Block{}
	if err := p.box(el, &b.Box); err != nil {
		return nil, err
	}
	var err error
	b.Children, err = p.blocks(el)
	return b, err
}

func (p *parser) mainReference(el *etree.Element) (*MainReference, error) {
	mr := &MainReference{}
	for _, child := range el.ChildElements() {
		if child.Tag != "span" {
			p.unexpected(el, child)
			continue
		}
		span := &Span{Columns: max(1, p.intAttr(child, "columnCount"))}
		if err := p.box(child, &span.Box); err != nil {
			return nil, err
		}
		for _, fe := range child.ChildElements() {
			if fe.Tag != "flow" {
				p.unexpected(child, fe)
				continue
			}
			flow := &Flow{}
			if err := p.box(fe, &flow.Box); err != nil {
				return nil, err
			}
			var err error
			if flow.Blocks, err = p.blocks(fe); err != nil {
				return nil, err
			}
			span.Flows = append(span.Flows, flow)
		}
		mr.Spans = append(mr.Spans, span)
	}
	return mr, nil
}

// blocks reads block level children.
func (p *parser) blocks(el *etree.Element) ([]Area, error) {
	var out []Area
	for _, child := range el.ChildElements() {
		var (
			a   Area
			err error
		)
		switch child.Tag {
		case "block":
			a, err = p.block(child)
		case "blockViewport":
			a, err = p.blockViewport(child)
		case "lineArea":
			a, err = p.lineArea(child)
		default:
			p.unexpected(el, child)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", child.Tag, err)
		}
		out = append(out, a)
	}
	return out, nil
}

func (p *parser) blockFields(el *etree.Element, b *Block) error {
	if err := p.box(el, &b.Box); err != nil {
		return err
	}
	b.XOffset = p.intAttr(el, "left-offset")
	b.YOffset = p.intAttr(el, "top-offset")
	b.Reference = boolAttr(el, "is-reference-area")
	if v := el.SelectAttrValue("positioning", ""); v != "" {
		pos, err := ParsePositioning(v)
		if err != nil {
			return err
		}
		b.Positioning = pos
	}
	var err error
	b.Children, err = p.blocks(el)
	return err
}

func (p *parser) block(el *etree.Element) (*Block, error) {
	b := &Block{}
	if err := p.blockFields(el, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (p *parser) blockViewport(el *etree.Element) (*BlockViewport, error) {
	bv := &BlockViewport{Clip: boolAttr(el, "clipped")}
	if err := p.blockFields(el, &bv.Block); err != nil {
		return nil, err
	}
	var err error
	if bv.CTM, err = geom.ParseTransform(el.SelectAttrValue("ctm", "")); err != nil {
		return nil, err
	}
	return bv, nil
}

func (p *parser) lineArea(el *etree.Element) (*LineArea, error) {
	la := &LineArea{}
	if err := p.box(el, &la.Box); err != nil {
		return nil, err
	}
	var err error
	la.Inlines, err = p.inlines(el)
	return la, err
}

func (p *parser) inlines(el *etree.Element) ([]Area, error) {
	var out []Area
	for _, child := range el.ChildElements() {
		a, err := p.inline(el, child)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", child.Tag, err)
		}
		if a != nil {
			out = append(out, a)
		}
	}
	return out, nil
}

func (p *parser) inline(parent, el *etree.Element) (Area, error) {
	switch el.Tag {
	case "inlineparent":
		ip := &InlineParent{}
		if err := p.box(el, &ip.Box); err != nil {
			return nil, err
		}
		var err error
		ip.Children, err = p.inlines(el)
		return ip, err
	case "inlineblockparent":
		ibp := &InlineBlockParent{}
		if err := p.box(el, &ibp.Box); err != nil {
			return nil, err
		}
		if be := el.SelectElement("block"); be != nil {
			var err error
			if ibp.Child, err = p.block(be); err != nil {
				return nil, err
			}
		}
		return ibp, nil
	case "text":
		return p.text(el)
	case "viewport":
		return p.viewport(el)
	case "leader":
		l := &Leader{RuleThickness: p.intAttr(el, "ruleThickness")}
		if err := p.box(el, &l.Box); err != nil {
			return nil, err
		}
		if v := el.SelectAttrValue("ruleStyle", ""); v != "" {
			st, err := ParseBorderStyle(v)
			if err != nil {
				return nil, err
			}
			l.RuleStyle = st
		}
		return l, nil
	case "inlinespace":
		is := &InlineSpace{}
		if err := p.box(el, &is.Box); err != nil {
			return nil, err
		}
		return is, nil
	}
	p.unexpected(parent, el)
	return nil, nil
}

func (p *parser) text(el *etree.Element) (*TextArea, error) {
	ta := &TextArea{
		BaselineOffset:    p.intAttr(el, "baseline"),
		LetterSpaceAdjust: p.intAttr(el, "tlsadjust"),
		WordSpaceAdjust:   p.intAttr(el, "twsadjust"),
	}
	if err := p.box(el, &ta.Box); err != nil {
		return nil, err
	}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "word":
			w := &WordArea{Word: child.Text()}
			if err := p.box(child, &w.Box); err != nil {
				return nil, err
			}
			if v := child.SelectAttrValue("letter-adjust", ""); v != "" {
				for f := range strings.FieldsSeq(v) {
					n, err := strconv.Atoi(f)
					if err != nil {
						return nil, fmt.Errorf("malformed letter-adjust %q: %w", v, err)
					}
					w.LetterAdjust = append(w.LetterAdjust, n)
				}
			}
			ta.Children = append(ta.Children, w)
		case "space":
			s := &SpaceArea{Space: ' ', Adjustable: child.SelectAttrValue("adj", "true") == "true"}
			if t := child.Text(); t != "" {
				s.Space = []rune(t)[0]
			}
			if err := p.box(child, &s.Box); err != nil {
				return nil, err
			}
			ta.Children = append(ta.Children, s)
		default:
			p.unexpected(el, child)
		}
	}
	return ta, nil
}

func (p *parser) viewport(el *etree.Element) (*InlineViewport, error) {
	iv := &InlineViewport{Clip: boolAttr(el, "clip")}
	if err := p.box(el, &iv.Box); err != nil {
		return nil, err
	}
	var err error
	if iv.ContentPosition, err = geom.ParseRect(el.SelectAttrValue("pos", "0 0 0 0")); err != nil {
		return nil, err
	}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "image":
			img := &Image{URI: child.SelectAttrValue("url", "")}
			if err := p.box(child, &img.Box); err != nil {
				return nil, err
			}
			iv.Content = img
		case "foreignObject":
			fo := &ForeignObject{Namespace: child.SelectAttrValue("ns", "")}
			if err := p.box(child, &fo.Box); err != nil {
				return nil, err
			}
			inner := etree.NewDocument()
			for _, c := range child.ChildElements() {
				inner.AddChild(c.Copy())
			}
			if fo.Namespace == "" {
				if r := inner.Root(); r != nil {
					fo.Namespace = r.NamespaceURI()
				}
			}
			if fo.Content, err = inner.WriteToBytes(); err != nil {
				return nil, err
			}
			iv.Content = fo
		default:
			p.unexpected(el, child)
		}
	}
	return iv, nil
}

func (p *parser) bookmarks(el *etree.Element) []*Bookmark {
	var out []*Bookmark
	for _, child := range el.ChildElements() {
		if child.Tag != "bookmark" {
			p.unexpected(el, child)
			continue
		}
		out = append(out, &Bookmark{
			Title:    child.SelectAttrValue("title", ""),
			IDRef:    child.SelectAttrValue("idref", ""),
			Show:     child.SelectAttrValue("show-children", "true") == "true",
			Children: p.bookmarks(child),
		})
	}
	return out
}

func parseExtension(el *etree.Element) Extension {
	return Extension{
		Kind:    el.SelectAttrValue("kind", ""),
		Name:    el.SelectAttrValue("name", ""),
		Content: strings.TrimSpace(el.Text()),
	}
}

var borderTraits = []Trait{TraitBorderBefore, TraitBorderAfter, TraitBorderStart, TraitBorderEnd}

var intTraits = []Trait{
	TraitPaddingBefore, TraitPaddingAfter, TraitPaddingStart, TraitPaddingEnd,
	TraitSpaceBefore, TraitSpaceAfter, TraitStartIndent, TraitEndIndent, TraitFontSize,
}

var textTraits = []Trait{TraitID, TraitInternalLink, TraitExternalLink, TraitStructurePointer}

var boolTraits = []Trait{TraitUnderline, TraitOverline, TraitLineThrough}

// box reads geometry and all trait attributes present on el.
func (p *parser) box(el *etree.Element, b *Box) error {
	b.IPD = p.intAttr(el, "ipd")
	b.BPD = p.intAttr(el, "bpd")
	b.Offset = p.intAttr(el, "offset")

	for _, k := range borderTraits {
		if v := el.SelectAttrValue(k.String(), ""); v != "" {
			bp, err := ParseBorderProps(v)
			if err != nil {
				return err
			}
			b.SetTrait(k, bp)
		}
	}
	for _, k := range intTraits {
		if a := el.SelectAttr(k.String()); a != nil {
			n, err := strconv.Atoi(strings.TrimSpace(a.Value))
			if err != nil {
				return fmt.Errorf("malformed %s %q: %w", k, a.Value, err)
			}
			b.SetTrait(k, n)
		}
	}
	for _, k := range textTraits {
		if a := el.SelectAttr(k.String()); a != nil {
			b.SetTrait(k, a.Value)
		}
	}
	for _, k := range boolTraits {
		if a := el.SelectAttr(k.String()); a != nil {
			b.SetTrait(k, a.Value == "true")
		}
	}
	if v := el.SelectAttrValue(TraitColor.String(), ""); v != "" {
		c, err := ParseColor(v)
		if err != nil {
			return err
		}
		b.SetTrait(TraitColor, c)
	}
	if v := el.SelectAttrValue(TraitFont.String(), ""); v != "" {
		b.SetTrait(TraitFont, fonts.ParseTriplet(v))
	}
	if v := el.SelectAttrValue(TraitBackground.String(), ""); v != "" {
		bg, err := ParseBackground(v)
		if err != nil {
			return err
		}
		b.SetTrait(TraitBackground, bg)
	}
	return nil
}

// intAttr reads an integer attribute, absent means 0. The first malformed
// value is kept in p.err and fails the whole document.
func (p *parser) intAttr(el *etree.Element, name string) int {
	a := el.SelectAttr(name)
	if a == nil {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(a.Value))
	if err != nil {
		if p.err == nil {
			p.err = fmt.Errorf("%s: malformed %s %q: %w", el.Tag, name, a.Value, err)
		}
		return 0
	}
	return v
}

func boolAttr(el *etree.Element, name string) bool {
	return el.SelectAttrValue(name, "false") == "true"
}
