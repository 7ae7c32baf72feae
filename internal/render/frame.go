package render

import (
	"image/color"

	"github.com/fogleman/gg"

	"github.com/cristianadrielbraun/qrstudio/internal/geometry"
	"github.com/cristianadrielbraun/qrstudio/internal/style"
)

// frameBandColor picks the band fill: the gradient start when a gradient is
// active, otherwise the foreground color.
func frameBandColor(cfg style.Config) color.RGBA {
	if g := cfg.Gradient; g != nil && g.Enabled {
		return g.ColorStart
	}
	return cfg.ForegroundColor
}

// frameTextColor picks the caption color: the background color when opaque,
// white otherwise, so the caption always sits readable on the band.
func frameTextColor(cfg style.Config) color.RGBA {
	if !cfg.TransparentBackground && cfg.BackgroundColor.A != 0 {
		return cfg.BackgroundColor
	}
	return color.RGBA{255, 255, 255, 255}
}

// drawFrameRaster draws the caption band below the already-rendered symbol.
// The band occupies the extra FrameBandHeight pixels the surface was allocated
// with; the symbol above it is never touched.
func drawFrameRaster(dc *gg.Context, cfg style.Config) {
	w := float64(cfg.Size)
	bandY := float64(cfg.Size)
	bandH := float64(geometry.FrameBandHeight)

	dc.SetColor(frameBandColor(cfg))
	switch cfg.Frame.Style {
	case style.FrameRounded:
		dc.DrawRoundedRectangle(4, bandY+4, w-8, bandH-8, 14)
	case style.FrameBanner:
		// Ribbon with a notch pointing up at the symbol.
		dc.DrawRectangle(0, bandY+8, w, bandH-8)
		dc.Fill()
		dc.MoveTo(w/2-10, bandY+8)
		dc.LineTo(w/2, bandY)
		dc.LineTo(w/2+10, bandY+8)
		dc.ClosePath()
	default: // style.FrameSimple
		dc.DrawRectangle(0, bandY, w, bandH)
	}
	dc.Fill()

	dc.SetColor(frameTextColor(cfg))
	dc.DrawStringAnchored(cfg.Frame.Text, w/2, bandY+bandH/2, 0.5, 0.5)
}
