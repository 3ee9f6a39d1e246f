package render

import (
	"go.uber.org/zap"

	"arender/area"
	"arender/border"
	"arender/events"
	"arender/geom"
)

// target records the position of an area carrying an id.
func (r *Renderer) target(s *session, b *area.Box, x, y int) {
	id := b.ID()
	if id == "" {
		return
	}
	pt := s.ctm().Transform(geom.Point{X: x, Y: y})
	if !r.resolver.Target(id, s.pageIndex, pt) {
		r.log.Debug("Duplicate id ignored", zap.String("id", id), zap.Int("page", s.pageIndex))
	}
}

func (r *Renderer) inlineBackAndBorders(s *session, b *area.Box) error {
	bpStart, bpBefore := b.BorderAndPaddingWidthStart(), b.BorderAndPaddingWidthBefore()
	bpWidth := bpStart + b.BorderAndPaddingWidthEnd()
	bpHeight := bpBefore + b.BorderAndPaddingWidthAfter()
	if b.BPD == 0 && (bpHeight == 0 || bpWidth == 0) {
		return nil
	}
	rect := geom.Rect{X: s.ip, Y: s.bp + b.Offset - bpBefore, W: b.IPD + bpWidth, H: b.BPD + bpHeight}
	return r.drawBackAndBorders(s, b, rect)
}

// drawBackAndBorders paints background then borders of the border
// rectangle rect.
func (r *Renderer) drawBackAndBorders(s *session, b *area.Box, rect geom.Rect) error {
	if len(b.Traits) == 0 {
		return nil
	}
	top := b.Traits.Border(area.TraitBorderBefore)
	bottom := b.Traits.Border(area.TraitBorderAfter)
	left := b.Traits.Border(area.TraitBorderStart)
	right := b.Traits.Border(area.TraitBorderEnd)

	if bg := b.Traits.Background(); bg != nil {
		padding := geom.Rect{
			X: rect.X + left.EffectiveWidth(),
			Y: rect.Y + top.EffectiveWidth(),
			W: rect.W - left.EffectiveWidth() - right.EffectiveWidth(),
			H: rect.H - top.EffectiveWidth() - bottom.EffectiveWidth(),
		}
		if err := r.drawBackground(s, padding, bg); err != nil {
			return err
		}
	}
	if !border.HasVisible(top, bottom, left, right) {
		return nil
	}
	return s.drawBorderRect(rect, top, bottom, left, right)
}

// drawBackground fills the padding rectangle and tiles the background image
// over it, clipped to it.
func (r *Renderer) drawBackground(s *session, padding geom.Rect, bg *area.Background) error {
	if padding.Empty() {
		return nil
	}
	var tiles []geom.Rect
	if bg.URI != "" {
		tiles = r.backgroundTiles(padding, bg)
	}
	if len(tiles) == 0 {
		if bg.Color == nil {
			return nil
		}
		return s.fillRect(padding, *bg.Color)
	}
	return s.scoped(func() error {
		if err := s.startGroup(geom.Identity()); err != nil {
			return err
		}
		if err := s.clipRect(padding); err != nil {
			return err
		}
		if bg.Color != nil {
			if err := s.fillRect(padding, *bg.Color); err != nil {
				return err
			}
		}
		for _, t := range tiles {
			if err := s.drawImage(bg.URI, t); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Renderer) backgroundTiles(padding geom.Rect, bg *area.Background) []geom.Rect {
	if r.images == nil {
		return nil
	}
	img, err := r.images.Load(bg.URI)
	if err != nil {
		r.events.Broadcast(events.New(events.SeverityWarning, events.ImageNotFound,
			"Background image not available", "uri", bg.URI, "error", err.Error()))
		return nil
	}
	w, h := img.SizeMpt()
	return border.Tiles(padding, bg, w, h)
}
