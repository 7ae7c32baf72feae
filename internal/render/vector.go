package render

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	"github.com/nfnt/resize"

	"github.com/cristianadrielbraun/qrstudio/internal/geometry"
	"github.com/cristianadrielbraun/qrstudio/internal/qrencode"
	"github.com/cristianadrielbraun/qrstudio/internal/style"
)

const gradientID = "qrGradient"

func rgb(c color.RGBA) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func writeShape(b *strings.Builder, s Shape, fill string) {
	switch v := s.(type) {
	case Rect:
		if v.Radius > 0 {
			fmt.Fprintf(b, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" fill="%s"/>`,
				v.X, v.Y, v.W, v.H, v.Radius, fill)
		} else {
			fmt.Fprintf(b, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`,
				v.X, v.Y, v.W, v.H, fill)
		}
	case Circle:
		fmt.Fprintf(b, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`, v.CX, v.CY, v.R, fill)
	}
}

func writeStrokedShape(b *strings.Builder, s Shape, stroke string, width float64) {
	switch v := s.(type) {
	case Rect:
		if v.Radius > 0 {
			fmt.Fprintf(b, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" fill="none" stroke="%s" stroke-width="%.2f"/>`,
				v.X, v.Y, v.W, v.H, v.Radius, stroke, width)
		} else {
			fmt.Fprintf(b, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="%s" stroke-width="%.2f"/>`,
				v.X, v.Y, v.W, v.H, stroke, width)
		}
	case Circle:
		fmt.Fprintf(b, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s" stroke-width="%.2f"/>`,
			v.CX, v.CY, v.R, stroke, width)
	}
}

// writeGradientDefs emits the <defs> block for the module fill. Endpoints come
// from the same geometry formulas the raster gradient uses, in user space, so
// the two outputs shade identically.
func writeGradientDefs(b *strings.Builder, cfg style.Config) {
	g := cfg.Gradient
	b.WriteString(`<defs>`)
	switch g.Type {
	case style.GradientRadial:
		cx, cy, r := geometry.RadialParams(cfg.Size)
		fmt.Fprintf(b, `<radialGradient id="%s" gradientUnits="userSpaceOnUse" cx="%.2f" cy="%.2f" r="%.2f">`,
			gradientID, cx, cy, r)
		fmt.Fprintf(b, `<stop offset="0%%" stop-color="%s"/>`, rgb(g.ColorStart))
		fmt.Fprintf(b, `<stop offset="100%%" stop-color="%s"/>`, rgb(g.ColorEnd))
		b.WriteString(`</radialGradient>`)
	default:
		x0, y0, x1, y1 := geometry.LinearEndpoints(cfg.Size, g.Rotation)
		fmt.Fprintf(b, `<linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f">`,
			gradientID, x0, y0, x1, y1)
		fmt.Fprintf(b, `<stop offset="0%%" stop-color="%s"/>`, rgb(g.ColorStart))
		fmt.Fprintf(b, `<stop offset="100%%" stop-color="%s"/>`, rgb(g.ColorEnd))
		b.WriteString(`</linearGradient>`)
	}
	b.WriteString(`</defs>`)
}

// renderVector builds the SVG document for the same composition as the raster
// path. Module and finder geometry comes from the shared Layout, so positions
// and sizes match the raster output exactly at the same size.
func renderVector(ctx context.Context, m *qrencode.Matrix, cfg style.Config, loader ImageLoader) (string, error) {
	layout, err := geometry.NewLayout(cfg.Size, m.ModuleCount(), cfg.Margin)
	if err != nil {
		return "", err
	}

	height := cfg.Size
	if cfg.Frame.Enabled() {
		height += geometry.FrameBandHeight
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`,
		cfg.Size, height, cfg.Size, height)

	useGradient := cfg.Gradient != nil && cfg.Gradient.Enabled
	if useGradient {
		writeGradientDefs(&b, cfg)
	}

	if !cfg.TransparentBackground {
		fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="%s"/>`, cfg.Size, height, rgb(cfg.BackgroundColor))
	}

	moduleFill := rgb(cfg.ForegroundColor)
	if useGradient {
		moduleFill = fmt.Sprintf("url(#%s)", gradientID)
	}

	n := m.ModuleCount()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if !m.Dark(x, y) || geometry.InFinder(x, y, n) {
				continue
			}
			writeShape(&b, MapModule(layout, x, y, cfg.DotStyle), moduleFill)
		}
	}

	for _, corner := range geometry.Corners {
		col := rgb(eyeColor(cfg, corner))
		for _, layer := range FinderLayers(layout, corner, cfg.FinderPattern) {
			if layer.Stroke {
				writeStrokedShape(&b, layer.Shape, col, layer.StrokeWidth)
			} else {
				writeShape(&b, layer.Shape, col)
			}
		}
	}

	if cfg.Logo != nil {
		if err := writeLogo(ctx, &b, cfg, loader); err != nil {
			return "", err
		}
	}

	if cfg.Frame.Enabled() {
		writeFrame(&b, cfg)
	}

	b.WriteString(`</svg>`)
	return b.String(), nil
}

// writeLogo embeds the logo as a PNG data URI so the document stays
// self-contained, behind the same opaque patch the raster path draws.
func writeLogo(ctx context.Context, b *strings.Builder, cfg style.Config, loader ImageLoader) error {
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
		fmt.Fprintf(b, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`,
			patch.X, patch.Y, patch.W, patch.H, rgb(cfg.BackgroundColor))
	}

	scaled := resize.Thumbnail(uint(box.W), uint(box.H), img, resize.Lanczos3)
	data, err := encodePNG(scaled)
	if err != nil {
		return err
	}
	sb := scaled.Bounds()
	x := box.X + (box.W-float64(sb.Dx()))/2
	y := box.Y + (box.H-float64(sb.Dy()))/2
	fmt.Fprintf(b, `<image x="%.2f" y="%.2f" width="%d" height="%d" href="%s"/>`,
		x, y, sb.Dx(), sb.Dy(), pngDataURI(data))
	return nil
}

func writeFrame(b *strings.Builder, cfg style.Config) {
	w := float64(cfg.Size)
	bandY := float64(cfg.Size)
	bandH := float64(geometry.FrameBandHeight)
	band := rgb(frameBandColor(cfg))

	switch cfg.Frame.Style {
	case style.FrameRounded:
		fmt.Fprintf(b, `<rect x="4" y="%.2f" width="%.2f" height="%.2f" rx="14" fill="%s"/>`,
			bandY+4, w-8, bandH-8, band)
	case style.FrameBanner:
		fmt.Fprintf(b, `<rect x="0" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`,
			bandY+8, w, bandH-8, band)
		fmt.Fprintf(b, `<polygon points="%.2f,%.2f %.2f,%.2f %.2f,%.2f" fill="%s"/>`,
			w/2-10, bandY+8, w/2, bandY, w/2+10, bandY+8, band)
	default:
		fmt.Fprintf(b, `<rect x="0" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`,
			bandY, w, bandH, band)
	}

	fmt.Fprintf(b, `<text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="22" fill="%s">%s</text>`,
		w/2, bandY+bandH/2, rgb(frameTextColor(cfg)), escapeText(cfg.Frame.Text))
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
