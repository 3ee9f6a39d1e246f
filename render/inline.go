package render

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"arender/area"
	"arender/events"
	"arender/fonts"
	"arender/geom"
	"arender/intermediate"
	"arender/nav"
)

// defaultFontSize applies to text without font-size trait.
const defaultFontSize = 12000

func (r *Renderer) renderLineArea(s *session, l *area.LineArea) error {
	saveBP := s.bp
	s.bp += l.SpaceBefore()
	s.ip += l.StartIndent()
	for _, in := range l.Inlines {
		if err := r.renderInline(s, in); err != nil {
			return err
		}
	}
	s.bp = saveBP
	return nil
}

// renderInline paints traits of any inline area and dispatches on its type.
// Every branch leaves the inline cursor advanced by the allocated IPD.
func (r *Renderer) renderInline(s *session, a area.Area) error {
	b := area.BoxOf(a)
	if err := r.inlineBackAndBorders(s, b); err != nil {
		return err
	}
	r.target(s, b, s.ip, s.bp+b.Offset)

	saveIP := s.ip
	var err error
	switch in := a.(type) {
	case *area.TextArea:
		err = r.renderText(s, in)
	case *area.InlineParent:
		err = r.renderInlineParent(s, in)
	case *area.InlineBlockParent:
		err = r.renderInlineBlockParent(s, in)
	case *area.InlineViewport:
		err = r.renderInlineViewport(s, in)
	case *area.Leader:
		err = r.renderLeader(s, in)
	case *area.Image, *area.ForeignObject:
		pos := geom.Rect{X: s.ip + b.BorderAndPaddingWidthStart(), Y: s.bp + b.Offset + b.BorderAndPaddingWidthBefore(), W: b.IPD, H: b.BPD}
		err = r.renderViewportContent(s, a, pos)
	case *area.WordArea, *area.SpaceArea:
		r.log.Debug("Word or space outside of text area, treating as blank")
	case *area.InlineSpace:
	default:
		r.log.Debug("Unexpected inline area, ignoring", zap.String("type", fmt.Sprintf("%T", a)))
	}
	s.ip = saveIP + b.AllocIPD()
	return err
}

// fontFor builds the painter font of a text area and reports substitutions
// once per triplet.
func (r *Renderer) fontFor(t *area.TextArea) (intermediate.Font, string) {
	triplet, ok := t.Traits.Font()
	if !ok {
		triplet = fonts.DefaultTriplet
	}
	size := t.Traits.Int(area.TraitFontSize)
	if size <= 0 {
		size = defaultFontSize
	}
	c, ok := t.Traits.Color()
	if !ok {
		c = area.Black
	}

	key := ""
	if r.fonts != nil {
		var exact bool
		key, exact = r.fonts.Lookup(triplet)
		if !exact && !r.substituted[triplet] {
			r.substituted[triplet] = true
			desc := r.fonts.Descriptor(key)
			r.events.Broadcast(events.New(events.SeverityWarning, events.FontSubstituted,
				"Font not available, using substitute",
				"requested", triplet.String(), "used", desc.PostScriptName))
		}
	}
	return intermediate.Font{
		Family:  triplet.Family,
		Style:   triplet.Style,
		Weight:  triplet.Weight,
		Variant: "normal",
		Size:    size,
		Color:   c,
	}, key
}

func (r *Renderer) renderText(s *session, t *area.TextArea) error {
	f, key := r.fontFor(t)
	if err := s.setFont(f); err != nil {
		return err
	}

	rx := s.ip + t.BorderAndPaddingWidthStart()
	baseline := s.bp + t.Offset + t.BaselineOffset
	if err := s.run.start(s.painter, rx, baseline, t.LetterSpaceAdjust, t.WordSpaceAdjust); err != nil {
		return err
	}

	for _, child := range t.Children {
		switch c := child.(type) {
		case *area.WordArea:
			r.target(s, &c.Box, s.ip, s.bp+t.Offset)
			addWord(&s.run, c)
			s.ip += c.AllocIPD()
		case *area.SpaceArea:
			sp := c.Space
			if sp == 0 {
				sp = ' '
			}
			s.run.addChar(sp)
			if sp == ' ' && !c.Adjustable {
				// word spacing widens every space, take it back for this one
				s.run.adjust(-t.WordSpaceAdjust)
			}
			s.ip += c.AllocIPD()
		default:
			r.log.Debug("Unexpected area in text, ignoring", zap.String("type", fmt.Sprintf("%T", child)))
		}
	}
	if err := s.flush(); err != nil {
		return err
	}
	return r.renderTextDecoration(s, t, key, f, baseline, rx)
}

// addWord appends glyphs of a word with their letter adjustments. The first
// adjustment moves the word, each following one the glyph it belongs to.
func addWord(run *textRun, w *area.WordArea) {
	runes := []rune(w.Word)
	if len(runes) == 0 {
		return
	}
	if len(w.LetterAdjust) > 0 {
		run.adjust(w.LetterAdjust[0])
	}
	for i, ch := range runes {
		run.addChar(ch)
		if i+1 < len(runes) && i+1 < len(w.LetterAdjust) {
			run.adjust(w.LetterAdjust[i+1])
		}
	}
}

func (r *Renderer) renderTextDecoration(s *session, t *area.TextArea, key string, f intermediate.Font, baseline, startx int) error {
	under, over, through := t.Traits.Bool(area.TraitUnderline), t.Traits.Bool(area.TraitOverline), t.Traits.Bool(area.TraitLineThrough)
	if !under && !over && !through {
		return nil
	}

	ascender, descender := f.Size*4/5, -f.Size/5
	if r.fonts != nil {
		m := r.fonts.Metrics(key)
		ascender, descender = m.Ascender(f.Size), m.Descender(f.Size)
	}
	capHeight := ascender * 7 / 10
	width := max(-descender/8, 1)
	endx := startx + t.IPD

	line := func(y int) error {
		return s.drawLine(geom.Point{X: startx, Y: y}, geom.Point{X: endx, Y: y}, width, f.Color, area.BorderStyleSolid)
	}
	if under {
		if err := line(baseline - descender/2); err != nil {
			return err
		}
	}
	if over {
		if err := line(baseline - capHeight*11/10); err != nil {
			return err
		}
	}
	if through {
		if err := line(baseline - capHeight*45/100); err != nil {
			return err
		}
	}
	return nil
}

// renderInlineParent renders children offset by the parent position and
// records a link when the parent carries one.
func (r *Renderer) renderInlineParent(s *session, ip *area.InlineParent) error {
	// link rectangle is taken before children move the cursor
	rect := s.ctm().TransformRect(geom.Rect{X: s.ip, Y: s.bp + ip.Offset, W: ip.IPD, H: ip.BPD})
	var action nav.Action
	if idref := ip.Traits.Text(area.TraitInternalLink); idref != "" {
		action = r.resolver.Reference(idref)
	} else if ext := ip.Traits.Text(area.TraitExternalLink); ext != "" {
		uri, newWindow := parseExternalLink(ext)
		action = r.resolver.ExternalLink(uri, newWindow)
	}

	saveBP := s.bp
	s.ip += ip.BorderAndPaddingWidthStart()
	s.bp += ip.Offset
	for _, child := range ip.Children {
		if err := r.renderInline(s, child); err != nil {
			return err
		}
	}
	s.bp = saveBP

	if action != nil {
		s.links = append(s.links, &nav.Link{Rect: rect, Action: action})
	}
	return nil
}

// parseExternalLink understands plain URIs as well as "url(...)" with an
// optional ",newWindow=true" suffix.
func parseExternalLink(v string) (string, bool) {
	v = strings.TrimSpace(v)
	newWindow := false
	if base, ok := strings.CutSuffix(v, ",newWindow=true"); ok {
		v, newWindow = base, true
	} else {
		v = strings.TrimSuffix(v, ",newWindow=false")
	}
	if inner, ok := strings.CutPrefix(v, "url("); ok {
		v = strings.TrimSuffix(inner, ")")
		v = strings.Trim(v, `"'`)
	}
	return v, newWindow
}

func (r *Renderer) renderInlineBlockParent(s *session, ibp *area.InlineBlockParent) error {
	if ibp.Child == nil {
		return nil
	}
	saveBP := s.bp
	s.ip += ibp.BorderAndPaddingWidthStart()
	s.bp += ibp.Offset + ibp.BorderAndPaddingWidthBefore()
	err := r.renderBlock(s, ibp.Child)
	s.bp = saveBP
	return err
}

func (r *Renderer) renderInlineViewport(s *session, v *area.InlineViewport) error {
	x, y := s.ip, s.bp+v.Offset
	bpStart, bpBefore := v.BorderAndPaddingWidthStart(), v.BorderAndPaddingWidthBefore()

	pos := v.ContentPosition
	if pos.Empty() {
		pos = geom.Rect{X: bpStart, Y: bpBefore, W: v.IPD, H: v.BPD}
	}
	pos.X += x
	pos.Y += y

	return s.scoped(func() error {
		if v.Clip {
			if err := s.startGroup(geom.Identity()); err != nil {
				return err
			}
			if err := s.clipRect(geom.Rect{X: x + bpStart, Y: y + bpBefore, W: v.IPD, H: v.BPD}); err != nil {
				return err
			}
		}
		if v.Content == nil {
			return nil
		}
		return r.renderViewportContent(s, v.Content, pos)
	})
}

func (r *Renderer) renderViewportContent(s *session, content area.Area, pos geom.Rect) error {
	switch c := content.(type) {
	case *area.Image:
		return s.drawImage(c.URI, pos)
	case *area.ForeignObject:
		return s.drawForeignObject(c.Namespace, c.Content, pos)
	case *area.Block:
		saveIP, saveBP := s.ip, s.bp
		s.ip, s.bp = pos.X, pos.Y
		err := r.renderBlock(s, c)
		s.ip, s.bp = saveIP, saveBP
		return err
	}
	r.log.Debug("Unexpected viewport content, ignoring", zap.String("type", fmt.Sprintf("%T", content)))
	return nil
}

func (r *Renderer) renderLeader(s *session, l *area.Leader) error {
	if !l.RuleStyle.Visible() || l.RuleThickness <= 0 {
		return nil
	}
	startx := s.ip + l.BorderAndPaddingWidthStart()
	y := s.bp + l.Offset + l.RuleThickness/2
	c, ok := l.Traits.Color()
	if !ok {
		c = area.Black
	}
	return s.drawLine(geom.Point{X: startx, Y: y}, geom.Point{X: startx + l.IPD, Y: y}, l.RuleThickness, c, l.RuleStyle)
}
