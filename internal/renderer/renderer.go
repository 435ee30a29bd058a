// Package renderer rasterizes layout pages. It maps millimeters to pixels at
// a fixed DPI and draws what the layout engine computed; it makes no
// geometry decisions of its own.
package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/labelforge/sheet-engine/internal/layout"
	"github.com/labelforge/sheet-engine/pkg/sheetformat"
)

const mmPerInch = 25.4

// captionHeightPx is the strip reserved under the visual for caption text.
const captionHeightPx = 16

// Renderer converts layout pages to images
type Renderer struct {
	dpi float64
}

// New creates a renderer for the given output resolution.
func New(dpi int) (*Renderer, error) {
	if dpi <= 0 {
		return nil, fmt.Errorf("dpi must be positive (got %d)", dpi)
	}
	return &Renderer{dpi: float64(dpi)}, nil
}

func (r *Renderer) px(mm float64) float64 {
	return mm / mmPerInch * r.dpi
}

// RenderPage draws one page onto a white canvas sized to the paper.
func (r *Renderer) RenderPage(page *layout.Page) image.Image {
	width := int(math.Ceil(r.px(page.Width)))
	height := int(math.Ceil(r.px(page.Height)))

	ctx := gg.NewContext(width, height)
	ctx.SetColor(color.White)
	ctx.Clear()
	ctx.SetColor(color.Black)
	ctx.SetFontFace(basicfont.Face7x13)

	for _, row := range page.Rows {
		for i := range row {
			r.drawCell(ctx, &row[i])
		}
	}

	r.drawBorders(ctx, page)

	return ctx.Image()
}

// RenderAll renders every page of a layout result.
func (r *Renderer) RenderAll(result *layout.Result) []image.Image {
	images := make([]image.Image, len(result.Pages))
	for i := range result.Pages {
		images[i] = r.RenderPage(&result.Pages[i])
	}
	return images
}

func (r *Renderer) drawCell(ctx *gg.Context, cell *layout.Cell) {
	if !cell.Occupied() {
		return
	}

	// Drawable area: the nominal cell shrunk by the unprintable-border
	// compensation padding.
	x := r.px(cell.X + cell.Pad.Left)
	y := r.px(cell.Y + cell.Pad.Top)
	w := r.px(cell.Width - cell.Pad.Left - cell.Pad.Right)
	h := r.px(cell.Height - cell.Pad.Top - cell.Pad.Bottom)
	if w <= 0 || h <= 0 {
		return
	}

	caption := cell.Item.Caption()
	visualH := h
	if caption != "" && h > captionHeightPx*2 {
		visualH = h - captionHeightPx
	}

	if visual := cell.Item.Visual(); visual != nil && int(w) > 0 && int(visualH) > 0 {
		fitted := imaging.Fit(visual, int(w), int(visualH), imaging.Lanczos)
		offsetX := int(x) + (int(w)-fitted.Bounds().Dx())/2
		offsetY := int(y) + (int(visualH)-fitted.Bounds().Dy())/2
		ctx.DrawImage(fitted, offsetX, offsetY)
	}

	if caption != "" && visualH < h {
		ctx.DrawStringAnchored(caption, x+w/2, y+visualH+captionHeightPx/2, 0.5, 0.35)
	}
}

// drawBorders renders the purely visual outlines selected by border_mode.
func (r *Renderer) drawBorders(ctx *gg.Context, page *layout.Page) {
	if page.BorderMode == sheetformat.BorderNone || len(page.Rows) == 0 {
		return
	}

	ctx.SetLineWidth(1)

	if page.BorderMode == sheetformat.BorderGrid {
		for _, row := range page.Rows {
			for i := range row {
				cell := &row[i]
				if cell.Width <= 0 || cell.Height <= 0 {
					continue
				}
				ctx.DrawRectangle(r.px(cell.X), r.px(cell.Y), r.px(cell.Width), r.px(cell.Height))
				ctx.Stroke()
			}
		}
		return
	}

	// Outline mode: one rectangle around the whole grid area.
	first := &page.Rows[0][0]
	lastRow := page.Rows[len(page.Rows)-1]
	last := &lastRow[len(lastRow)-1]

	x := r.px(first.X)
	y := r.px(first.Y)
	w := r.px(last.X+last.Width) - x
	h := r.px(last.Y+last.Height) - y
	if w <= 0 || h <= 0 {
		return
	}

	ctx.DrawRectangle(x, y, w, h)
	ctx.Stroke()
}
