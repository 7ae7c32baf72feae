package render

import (
	"github.com/cristianadrielbraun/qrstudio/internal/geometry"
	"github.com/cristianadrielbraun/qrstudio/internal/style"
)

// FinderLayer is one drawing step of a finder pattern. Layers are drawn in
// order; the last layer of every style is the solid core the scanner locks
// onto.
type FinderLayer struct {
	Shape       Shape
	Stroke      bool    // stroked outline instead of a fill
	StrokeWidth float64 // stroke width in pixels when Stroke is set
}

// dotRingCount is the number of border cells of a 7x7 block (4*7 - 4),
// one small circle per cell in the dots style.
const dotRingCount = 24

// FinderLayers builds the layer list for one corner's finder pattern.
// Square, rounded and extra-rounded draw the outer 7x7 ring as a stroked
// rectangle of one module width plus the filled 3x3 core; stroking instead of
// painting a background "hole" keeps transparent backgrounds transparent
// inside the eye. The dots style draws one small circle per border module of
// the 7x7 block plus a center disc over the core.
func FinderLayers(l geometry.Layout, c geometry.Corner, fs style.FinderStyle) []FinderLayer {
	mp := l.ModulePx
	ring := l.FinderRingBox(c)
	core := l.FinderCoreBox(c)

	switch fs {
	case style.FinderDots:
		outer := l.FinderOuterBox(c)
		layers := make([]FinderLayer, 0, dotRingCount+1)
		for my := 0; my < geometry.FinderSpan; my++ {
			for mx := 0; mx < geometry.FinderSpan; mx++ {
				if mx != 0 && mx != geometry.FinderSpan-1 && my != 0 && my != geometry.FinderSpan-1 {
					continue
				}
				layers = append(layers, FinderLayer{Shape: Circle{
					CX: outer.X + (float64(mx)+0.5)*mp,
					CY: outer.Y + (float64(my)+0.5)*mp,
					R:  mp / 2,
				}})
			}
		}
		layers = append(layers, FinderLayer{Shape: Circle{
			CX: core.X + core.W/2,
			CY: core.Y + core.H/2,
			R:  core.W / 2,
		}})
		return layers
	case style.FinderRounded:
		return []FinderLayer{
			{Shape: Rect{X: ring.X, Y: ring.Y, W: ring.W, H: ring.H, Radius: mp}, Stroke: true, StrokeWidth: mp},
			{Shape: Rect{X: core.X, Y: core.Y, W: core.W, H: core.H, Radius: mp * 0.5}},
		}
	case style.FinderExtraRounded:
		return []FinderLayer{
			{Shape: Rect{X: ring.X, Y: ring.Y, W: ring.W, H: ring.H, Radius: mp * 2}, Stroke: true, StrokeWidth: mp},
			{Shape: Rect{X: core.X, Y: core.Y, W: core.W, H: core.H, Radius: mp}},
		}
	default: // style.FinderSquare
		return []FinderLayer{
			{Shape: Rect{X: ring.X, Y: ring.Y, W: ring.W, H: ring.H}, Stroke: true, StrokeWidth: mp},
			{Shape: Rect{X: core.X, Y: core.Y, W: core.W, H: core.H}},
		}
	}
}
