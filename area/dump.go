package area

import (
	"arender/utils/debug"
)

// String dumps the whole tree, used for debugging and in reports.
func (d *Document) String() string {
	tw := debug.NewTreeWriter()
	for _, seq := range d.Sequences {
		tw.Node(0, "pageSequence", "language", seq.Language)
		for _, pv := range seq.Pages {
			tw.Node(1, "pageViewport", "index", pv.Index, "name", pv.Name, "bounds", pv.Bounds)
			for _, ext := range pv.Extensions {
				tw.Node(2, "extension", "kind", ext.Kind, "name", ext.Name)
			}
			if pv.Page == nil {
				continue
			}
			for _, rv := range pv.Page.Regions {
				if rv != nil {
					dumpRegion(tw, 2, rv)
				}
			}
		}
	}
	if d.Bookmarks != nil {
		tw.Line(0, "bookmarkTree")
		dumpBookmarks(tw, 1, d.Bookmarks.Bookmarks)
	}
	for _, dest := range d.Destinations {
		tw.Node(0, "destination", "idref", dest.IDRef)
	}
	for _, ext := range d.Extensions {
		tw.Node(0, "extension", "kind", ext.Kind, "name", ext.Name)
	}
	return tw.String()
}

func dumpBookmarks(tw *debug.TreeWriter, depth int, bms []*Bookmark) {
	for _, bm := range bms {
		tw.Node(depth, "bookmark", "title", bm.Title, "idref", bm.IDRef, "show", bm.Show)
		dumpBookmarks(tw, depth+1, bm.Children)
	}
}

func dumpRegion(tw *debug.TreeWriter, depth int, rv *RegionViewport) {
	tw.Node(depth, "regionViewport", "view", rv.View, "clip", rv.Clip)
	ref := rv.Region
	if ref == nil {
		return
	}
	tw.Node(depth+1, "region", "class", ref.Class, "ipd", ref.IPD, "bpd", ref.BPD, "ctm", ref.CTM)
	if ref.Body == nil {
		dumpAreas(tw, depth+2, ref.Blocks)
		return
	}
	if ref.Body.BeforeFloat != nil {
		tw.Line(depth+2, "beforeFloat")
		dumpAreas(tw, depth+3, ref.Body.BeforeFloat.Children)
	}
	if ref.Body.Main != nil {
		for _, span := range ref.Body.Main.Spans {
			tw.Node(depth+2, "span", "columns", span.Columns, "bpd", span.BPD)
			for _, flow := range span.Flows {
				tw.Node(depth+3, "flow", "ipd", flow.IPD)
				dumpAreas(tw, depth+4, flow.Blocks)
			}
		}
	}
	if ref.Body.Footnote != nil {
		tw.Line(depth+2, "footnote")
		dumpAreas(tw, depth+3, ref.Body.Footnote.Children)
	}
}

func dumpAreas(tw *debug.TreeWriter, depth int, areas []Area) {
	for _, a := range areas {
		dumpArea(tw, depth, a)
	}
}

func dumpArea(tw *debug.TreeWriter, depth int, a Area) {
	b := BoxOf(a)
	switch n := a.(type) {
	case *BlockViewport:
		tw.Node(depth, "blockViewport", "ipd", n.IPD, "bpd", n.BPD, "positioning", n.Positioning, "ctm", n.CTM, "clip", n.Clip, "id", b.ID())
		dumpAreas(tw, depth+1, n.Children)
	case *Block:
		tw.Node(depth, "block", "ipd", n.IPD, "bpd", n.BPD, "left", n.XOffset, "top", n.YOffset, "positioning", n.Positioning, "id", b.ID())
		dumpAreas(tw, depth+1, n.Children)
	case *LineArea:
		tw.Node(depth, "lineArea", "ipd", n.IPD, "bpd", n.BPD)
		dumpAreas(tw, depth+1, n.Inlines)
	case *InlineParent:
		tw.Node(depth, "inlineparent", "ipd", n.IPD, "offset", n.Offset, "link", b.Traits.Text(TraitInternalLink), "uri", b.Traits.Text(TraitExternalLink))
		dumpAreas(tw, depth+1, n.Children)
	case *InlineBlockParent:
		tw.Node(depth, "inlineblockparent", "ipd", n.IPD, "offset", n.Offset)
		if n.Child != nil {
			dumpArea(tw, depth+1, n.Child)
		}
	case *TextArea:
		tw.Node(depth, "text", "ipd", n.IPD, "offset", n.Offset, "baseline", n.BaselineOffset)
		dumpAreas(tw, depth+1, n.Children)
	case *WordArea:
		tw.TextBlock(depth, "word", n.Word)
	case *SpaceArea:
		tw.TextBlock(depth, "space", string(n.Space))
	case *InlineViewport:
		tw.Node(depth, "viewport", "ipd", n.IPD, "bpd", n.BPD, "pos", n.ContentPosition, "clip", n.Clip)
		if n.Content != nil {
			dumpArea(tw, depth+1, n.Content)
		}
	case *Image:
		tw.Node(depth, "image", "url", n.URI)
	case *ForeignObject:
		tw.Node(depth, "foreignObject", "ns", n.Namespace, "size", len(n.Content))
	case *Leader:
		tw.Node(depth, "leader", "ipd", n.IPD, "style", n.RuleStyle, "thickness", n.RuleThickness)
	case *InlineSpace:
		tw.Node(depth, "inlinespace", "ipd", n.IPD)
	default:
		tw.Line(depth, "%T", a)
	}
}
