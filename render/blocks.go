package render

import (
	"go.uber.org/multierr"

	"arender/area"
	"arender/geom"
)

// renderPageAreas renders regions in fixed order: before, start, body, end,
// after.
func (r *Renderer) renderPageAreas(s *session, p *area.Page) error {
	for _, rv := range p.Regions {
		if rv == nil {
			continue
		}
		if err := r.renderRegionViewport(s, rv); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderRegionViewport(s *session, rv *area.RegionViewport) error {
	s.ip, s.bp = 0, 0

	// viewport traits are painted in page coordinates
	if err := r.drawBackAndBorders(s, &rv.Box, rv.View); err != nil {
		return err
	}
	ref := rv.Region
	if ref == nil {
		return nil
	}

	return s.scoped(func() error {
		var clip *geom.Rect
		if rv.Clip {
			clip = &geom.Rect{W: ref.IPD, H: ref.BPD}
		}
		if err := s.startViewport(ref.CTM, ref.IPD, ref.BPD, clip); err != nil {
			return err
		}
		s.ip, s.bp = 0, 0
		r.target(s, &ref.Box, 0, 0)
		if ref.Class == area.RegionClassBody && ref.Body != nil {
			return r.renderBody(s, ref.Body)
		}
		return r.renderBlocks(s, nil, ref.Blocks)
	})
}

func (r *Renderer) renderBody(s *session, body *area.BodyRegion) error {
	if bf := body.BeforeFloat; bf != nil {
		if err := r.renderBlocks(s, nil, bf.Children); err != nil {
			return err
		}
	}
	if body.Main != nil {
		if err := r.renderMainReference(s, body.Main, body.ColumnGap); err != nil {
			return err
		}
	}
	if fn := body.Footnote; fn != nil {
		s.bp += fn.YOffset
		if err := r.renderBlocks(s, nil, fn.Children); err != nil {
			return err
		}
	}
	return nil
}

// renderMainReference lays spans top to bottom, each span's flows left to
// right separated by the column gap.
func (r *Renderer) renderMainReference(s *session, mr *area.MainReference, gap int) error {
	saveIP, saveBP := s.ip, s.bp
	spanBP := saveBP
	for _, span := range mr.Spans {
		for _, flow := range span.Flows {
			if flow == nil {
				continue
			}
			s.bp = spanBP
			if err := r.renderBlocks(s, nil, flow.Blocks); err != nil {
				return err
			}
			s.ip += flow.IPD + gap
		}
		s.ip = saveIP
		spanBP += span.BPD
		s.bp = spanBP
	}
	s.bp = saveBP
	return nil
}

// renderBlocks stacks blocks and lines of parent. Each child starts at the
// containing block inline position.
func (r *Renderer) renderBlocks(s *session, parent *area.Block, children []area.Area) error {
	saveIP := s.ip
	if parent != nil {
		s.bp += parent.BorderAndPaddingWidthBefore()
	}
	contIP, contBP := s.ip, s.bp
	s.containingIP, s.containingBP = contIP, contBP

	for _, child := range children {
		switch c := child.(type) {
		case *area.Block, *area.BlockViewport:
			s.ip = contIP
			s.containingIP, s.containingBP = contIP, contBP
			if err := r.renderBlock(s, c); err != nil {
				return err
			}
			s.containingIP, s.containingBP = contIP, contBP
		case *area.LineArea:
			if parent != nil {
				s.ip += parent.StartIndent()
			}
			if err := r.renderLineArea(s, c); err != nil {
				return err
			}
			s.bp += c.AllocBPD()
		default:
			r.log.Debug("Unexpected area in block stacking context, ignoring")
		}
		s.ip = saveIP
	}
	return nil
}

func (r *Renderer) renderBlock(s *session, a area.Area) error {
	switch b := a.(type) {
	case *area.BlockViewport:
		if len(b.Children) == 0 {
			s.bp += b.SpaceBefore()
			if err := r.handleBlockTraits(s, &b.Block); err != nil {
				return err
			}
			s.bp += b.AllocBPD() - b.SpaceBefore()
			return nil
		}
		return r.renderBlockViewport(s, b)
	case *area.Block:
		if b.Reference {
			return r.renderReferenceBlock(s, b)
		}
		return r.renderNormalBlock(s, b)
	}
	return nil
}

func (r *Renderer) renderNormalBlock(s *session, b *area.Block) error {
	saveIP, saveBP := s.ip, s.bp

	s.ip += b.XOffset
	s.bp += b.YOffset
	s.bp += b.SpaceBefore()

	if err := r.handleBlockTraits(s, b); err != nil {
		return err
	}
	if len(b.Children) > 0 {
		if err := r.renderBlocks(s, b, b.Children); err != nil {
			return err
		}
	}

	s.ip = saveIP
	if b.Positioning == area.PositioningAbsolute {
		// absolute blocks do not take part in stacking
		s.bp = saveBP
	} else {
		s.bp = saveBP + b.AllocBPD()
	}
	return nil
}

// renderReferenceBlock paints children in a coordinate system whose origin is
// the block's content rectangle.
func (r *Renderer) renderReferenceBlock(s *session, b *area.Block) error {
	saveIP, saveBP := s.ip, s.bp

	s.ip += b.XOffset
	s.bp += b.YOffset
	s.bp += b.SpaceBefore()
	if err := r.handleBlockTraits(s, b); err != nil {
		return err
	}

	origin := geom.Translate(float64(s.ip+b.StartIndent()), float64(s.bp+b.BorderAndPaddingWidthBefore()))
	err := s.scoped(func() error {
		if err := s.startGroup(origin); err != nil {
			return err
		}
		s.ip, s.bp = 0, 0
		return r.renderBlocks(s, nil, b.Children)
	})
	if err != nil {
		return err
	}

	s.ip = saveIP
	if b.Positioning == area.PositioningAbsolute {
		s.bp = saveBP
	} else {
		s.bp = saveBP + b.AllocBPD()
	}
	return nil
}

// handleBlockTraits paints background and borders of a block at the cursor.
func (r *Renderer) handleBlockTraits(s *session, b *area.Block) error {
	x := s.ip + b.StartIndent() - b.BorderAndPaddingWidthStart()
	rect := geom.Rect{
		X: x,
		Y: s.bp,
		W: b.IPD + b.BorderAndPaddingWidthStart() + b.BorderAndPaddingWidthEnd(),
		H: b.BPD + b.BorderAndPaddingWidthBefore() + b.BorderAndPaddingWidthAfter(),
	}
	r.target(s, &b.Box, rect.X, rect.Y)
	return r.drawBackAndBorders(s, &b.Box, rect)
}

func (r *Renderer) renderBlockViewport(s *session, bv *area.BlockViewport) error {
	saveIP, saveBP := s.ip, s.bp

	if bv.Positioning == area.PositioningAbsolute || bv.Positioning == area.PositioningFixed {
		err := r.renderPositionedViewport(s, bv)
		s.ip, s.bp = saveIP, saveBP
		return err
	}

	s.bp += bv.SpaceBefore()
	// borders and background in the outer coordinate system
	if err := r.handleBlockTraits(s, &bv.Block); err != nil {
		return err
	}
	ctm := geom.Translate(float64(s.containingIP), float64(s.bp)).Multiply(bv.CTM)

	var clip *geom.Rect
	if bv.Clip {
		clip = &geom.Rect{W: bv.IPD, H: bv.BPD}
	}
	err := s.scoped(func() error {
		if err := s.startViewport(ctm, bv.IPD, bv.BPD, clip); err != nil {
			return err
		}
		s.ip, s.bp = 0, 0
		return r.renderBlocks(s, nil, bv.Children)
	})
	s.ip, s.bp = saveIP, saveBP+bv.AllocBPD()
	return err
}

// renderPositionedViewport handles absolute and fixed block-containers.
// Fixed ones break out to the page coordinate system first and restore the
// broken out brackets afterwards.
func (r *Renderer) renderPositionedViewport(s *session, bv *area.BlockViewport) (err error) {
	if bv.Positioning == area.PositioningFixed {
		saved, berr := s.breakOut()
		defer func() {
			err = multierr.Append(err, s.restore(saved))
		}()
		if berr != nil {
			return berr
		}
	}

	bpStart := bv.BorderAndPaddingWidthStart()
	bpBefore := bv.BorderAndPaddingWidthBefore()

	return s.scoped(func() error {
		// left and top offsets position the content rectangle
		position := geom.Translate(float64(bv.XOffset), float64(bv.YOffset)).
			Multiply(geom.Translate(float64(-bpStart), float64(-bpBefore)))
		if !position.IsIdentity() {
			if err := s.startGroup(position); err != nil {
				return err
			}
		}

		w, h := bv.IPD, bv.BPD
		border := geom.Rect{W: w + bpStart + bv.BorderAndPaddingWidthEnd(), H: h + bpBefore + bv.BorderAndPaddingWidthAfter()}
		r.target(s, &bv.Box, 0, 0)
		if err := r.drawBackAndBorders(s, &bv.Box, border); err != nil {
			return err
		}

		content := geom.Translate(float64(bpStart), float64(bpBefore))
		if !content.IsIdentity() {
			if err := s.startGroup(content); err != nil {
				return err
			}
		}
		if bv.Clip {
			if err := s.startGroup(geom.Identity()); err != nil {
				return err
			}
			if err := s.clipRect(geom.Rect{W: w, H: h}); err != nil {
				return err
			}
		}
		if !bv.CTM.IsIdentity() {
			if err := s.startGroup(bv.CTM); err != nil {
				return err
			}
		}
		s.ip, s.bp = 0, 0
		return r.renderBlocks(s, nil, bv.Children)
	})
}
