package render

import (
	"testing"

	"github.com/cristianadrielbraun/qrstudio/internal/geometry"
	"github.com/cristianadrielbraun/qrstudio/internal/style"
)

func TestFinderLayersRingAndCore(t *testing.T) {
	l := testLayout(t)
	for _, fs := range []style.FinderStyle{style.FinderSquare, style.FinderRounded, style.FinderExtraRounded} {
		layers := FinderLayers(l, geometry.TopLeft, fs)
		if len(layers) != 2 {
			t.Fatalf("%v: %d layers, want 2", fs, len(layers))
		}
		if !layers[0].Stroke {
			t.Errorf("%v: outer layer not stroked", fs)
		}
		if layers[0].StrokeWidth != l.ModulePx {
			t.Errorf("%v: stroke width %g, want one module (%g)", fs, layers[0].StrokeWidth, l.ModulePx)
		}
		core := layers[len(layers)-1]
		if core.Stroke {
			t.Errorf("%v: core is stroked; it must be solid", fs)
		}
	}
}

func TestFinderLayersDots(t *testing.T) {
	l := testLayout(t)
	layers := FinderLayers(l, geometry.TopLeft, style.FinderDots)
	if len(layers) != dotRingCount+1 {
		t.Fatalf("dots: %d layers, want %d", len(layers), dotRingCount+1)
	}
	for i, layer := range layers {
		if layer.Stroke {
			t.Errorf("dots layer %d is stroked", i)
		}
		if _, ok := layer.Shape.(Circle); !ok {
			t.Errorf("dots layer %d is %T, want Circle", i, layer.Shape)
		}
	}
	// The last layer is the solid center disc over the 3x3 core.
	center := layers[len(layers)-1].Shape.(Circle)
	core := l.FinderCoreBox(geometry.TopLeft)
	if center.CX != core.X+core.W/2 || center.CY != core.Y+core.H/2 {
		t.Errorf("center disc at (%g,%g), want core center (%g,%g)",
			center.CX, center.CY, core.X+core.W/2, core.Y+core.H/2)
	}
	if center.R != core.W/2 {
		t.Errorf("center disc radius %g, want %g", center.R, core.W/2)
	}
}

func TestFinderLayersPerCorner(t *testing.T) {
	l := testLayout(t)
	seen := map[float64]bool{}
	for _, c := range geometry.Corners {
		layers := FinderLayers(l, c, style.FinderSquare)
		r := layers[0].Shape.(Rect)
		key := r.X*1000 + r.Y
		if seen[key] {
			t.Errorf("corner %d overlaps another corner's ring at (%g,%g)", c, r.X, r.Y)
		}
		seen[key] = true
	}
}
