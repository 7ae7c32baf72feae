package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"

	"github.com/cristianadrielbraun/qrstudio/internal/geometry"
	"github.com/cristianadrielbraun/qrstudio/internal/qrencode"
	"github.com/cristianadrielbraun/qrstudio/internal/style"
)

// moduleFill resolves the data-module fill once, before the module loop.
// The returned pattern is never mutated mid-sequence; finder patterns and the
// frame set their own explicit colors afterwards.
func moduleFill(cfg style.Config) gg.Pattern {
	if g := cfg.Gradient; g != nil && g.Enabled {
		switch g.Type {
		case style.GradientRadial:
			cx, cy, r := geometry.RadialParams(cfg.Size)
			grad := gg.NewRadialGradient(cx, cy, 0, cx, cy, r)
			grad.AddColorStop(0, g.ColorStart)
			grad.AddColorStop(1, g.ColorEnd)
			return grad
		default:
			x0, y0, x1, y1 := geometry.LinearEndpoints(cfg.Size, g.Rotation)
			grad := gg.NewLinearGradient(x0, y0, x1, y1)
			grad.AddColorStop(0, g.ColorStart)
			grad.AddColorStop(1, g.ColorEnd)
			return grad
		}
	}
	return gg.NewSolidPattern(cfg.ForegroundColor)
}

// eyeColor resolves the color for one finder pattern corner, honoring the
// per-eye overrides when present.
func eyeColor(cfg style.Config, c geometry.Corner) color.RGBA {
	if e := cfg.EyeColors; e != nil {
		switch c {
		case geometry.TopLeft:
			if e.TopLeft != nil {
				return *e.TopLeft
			}
		case geometry.TopRight:
			if e.TopRight != nil {
				return *e.TopRight
			}
		case geometry.BottomLeft:
			if e.BottomLeft != nil {
				return *e.BottomLeft
			}
		}
	}
	return cfg.ForegroundColor
}

func drawShape(dc *gg.Context, s Shape) {
	switch v := s.(type) {
	case Rect:
		if v.Radius > 0 {
			dc.DrawRoundedRectangle(v.X, v.Y, v.W, v.H, v.Radius)
		} else {
			dc.DrawRectangle(v.X, v.Y, v.W, v.H)
		}
	case Circle:
		dc.DrawCircle(v.CX, v.CY, v.R)
	}
}

// renderRaster composites the full symbol onto a fresh pixel surface.
// Draw order is fixed: background, data modules, finder patterns, logo patch,
// logo, frame. Reordering any of these breaks scannability.
func renderRaster(ctx context.Context, m *qrencode.Matrix, cfg style.Config, loader ImageLoader) (image.Image, error) {
	layout, err := geometry.NewLayout(cfg.Size, m.ModuleCount(), cfg.Margin)
	if err != nil {
		return nil, err
	}

	height := cfg.Size
	if cfg.Frame.Enabled() {
		height += geometry.FrameBandHeight
	}
	// Every call gets its own surface; nothing is shared between renders.
	dc := gg.NewContext(cfg.Size, height)

	if !cfg.TransparentBackground {
		dc.SetColor(cfg.BackgroundColor)
		dc.Clear()
	}

	// Data modules, finder regions excluded.
	dc.SetFillStyle(moduleFill(cfg))
	n := m.ModuleCount()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if !m.Dark(x, y) || geometry.InFinder(x, y, n) {
				continue
			}
			drawShape(dc, MapModule(layout, x, y, cfg.DotStyle))
			dc.Fill()
		}
	}

	// Finder patterns, after data modules so generic-style bleed never
	// occludes them.
	for _, corner := range geometry.Corners {
		dc.SetColor(eyeColor(cfg, corner))
		for _, layer := range FinderLayers(layout, corner, cfg.FinderPattern) {
			drawShape(dc, layer.Shape)
			if layer.Stroke {
				dc.SetLineWidth(layer.StrokeWidth)
				dc.Stroke()
			} else {
				dc.Fill()
			}
		}
	}

	if cfg.Logo != nil {
		if err := drawLogo(ctx, dc, cfg, loader); err != nil {
			return nil, err
		}
	}

	if cfg.Frame.Enabled() {
		drawFrameRaster(dc, cfg)
	}

	return dc.Image(), nil
}

// drawLogo paints the opaque patch over the occluded region, then the logo
// itself, scaled to fit the occlusion box with its aspect ratio preserved.
func drawLogo(ctx context.Context, dc *gg.Context, cfg style.Config, loader ImageLoader) error {
	if loader == nil {
		return fmt.Errorf("%w: no image loader configured", ErrAssetLoad)
	}
	img, err := loader.Load(ctx, cfg.Logo.URL)
	if err != nil {
		return err
	}

	box := geometry.OcclusionBox(cfg.Size, cfg.Logo.SizeFraction)
	pad := cfg.Logo.PaddingPx
	if pad <= 0 {
		pad = style.DefaultLogoPadding
	}
	if !cfg.TransparentBackground {
		patch := box.Expand(float64(pad))
		dc.SetColor(cfg.BackgroundColor)
		dc.DrawRectangle(patch.X, patch.Y, patch.W, patch.H)
		dc.Fill()
	}

	scaled := resize.Thumbnail(uint(box.W), uint(box.H), img, resize.Lanczos3)
	b := scaled.Bounds()
	x := int(box.X + (box.W-float64(b.Dx()))/2)
	y := int(box.Y + (box.H-float64(b.Dy()))/2)
	dc.DrawImage(scaled, x, y)
	return nil
}

// encodePNG encodes the surface to PNG bytes.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("render: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeJPEG composites the image onto an opaque background and encodes it as
// JPEG; JPEG has no alpha channel.
func EncodeJPEG(img image.Image, bg color.RGBA) ([]byte, error) {
	if bg.A == 0 {
		bg = color.RGBA{255, 255, 255, 255}
	}
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	dc := gg.NewContextForRGBA(out)
	dc.SetColor(color.RGBA{bg.R, bg.G, bg.B, 255})
	dc.Clear()
	dc.DrawImage(img, bounds.Min.X, bounds.Min.Y)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: 92}); err != nil {
		return nil, fmt.Errorf("render: encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// pngDataURI wraps PNG bytes as a data URI usable directly as an image source.
func pngDataURI(data []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}
