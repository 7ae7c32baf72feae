// Package geometry holds the pure pixel math shared by the raster and vector
// compositors. Both pipelines must place modules, finder patterns, gradients
// and the logo patch at identical coordinates; keeping every formula here is
// what guarantees that, rather than convention between two drawing loops.
package geometry

import (
	"fmt"
	"image/color"
	"math"
)

// FinderSpan is the fixed edge length, in modules, of a finder pattern.
const FinderSpan = 7

// FrameBandHeight is the pixel height of the caption band drawn below the
// symbol when a frame is requested.
const FrameBandHeight = 60

// Layout maps module coordinates to pixel coordinates for one render call.
type Layout struct {
	Size        int     // output edge length in pixels
	ModuleCount int     // modules per side
	Margin      int     // quiet zone width in modules
	ModulePx    float64 // pixel edge length of one module
	Offset      float64 // pixel offset of module (0,0), i.e. the quiet zone width
}

// NewLayout derives the per-module pixel size from the output size, module
// count and quiet zone. The quiet zone counts toward the output size, so
// modulePx = size / (count + 2*margin).
func NewLayout(size, moduleCount, margin int) (Layout, error) {
	if size <= 0 {
		return Layout{}, fmt.Errorf("layout: size must be positive, got %d", size)
	}
	if moduleCount <= 0 {
		return Layout{}, fmt.Errorf("layout: module count must be positive, got %d", moduleCount)
	}
	if margin < 0 {
		return Layout{}, fmt.Errorf("layout: margin must be non-negative, got %d", margin)
	}
	px := float64(size) / float64(moduleCount+2*margin)
	return Layout{
		Size:        size,
		ModuleCount: moduleCount,
		Margin:      margin,
		ModulePx:    px,
		Offset:      float64(margin) * px,
	}, nil
}

// ModuleOrigin returns the pixel position of the top-left corner of module (x,y).
func (l Layout) ModuleOrigin(x, y int) (float64, float64) {
	return l.Offset + float64(x)*l.ModulePx, l.Offset + float64(y)*l.ModulePx
}

// Corner identifies one of the three finder pattern positions.
// The bottom-right corner of a QR symbol carries no finder pattern.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
)

// Corners lists the three finder pattern corners in draw order.
var Corners = []Corner{TopLeft, TopRight, BottomLeft}

// Origin returns the module coordinates of the corner's 7x7 block.
func (c Corner) Origin(moduleCount int) (int, int) {
	switch c {
	case TopRight:
		return moduleCount - FinderSpan, 0
	case BottomLeft:
		return 0, moduleCount - FinderSpan
	default:
		return 0, 0
	}
}

// InFinder reports whether module (x,y) falls inside one of the three 7x7
// finder regions. Data module styling must never touch these.
func InFinder(x, y, moduleCount int) bool {
	if x < FinderSpan && y < FinderSpan {
		return true
	}
	if x >= moduleCount-FinderSpan && y < FinderSpan {
		return true
	}
	if x < FinderSpan && y >= moduleCount-FinderSpan {
		return true
	}
	return false
}

// Box is an axis-aligned pixel rectangle.
type Box struct {
	X, Y, W, H float64
}

// FinderOuterBox returns the full 7x7 pixel bounds of the corner's pattern.
func (l Layout) FinderOuterBox(c Corner) Box {
	mx, my := c.Origin(l.ModuleCount)
	px, py := l.ModuleOrigin(mx, my)
	return Box{X: px, Y: py, W: FinderSpan * l.ModulePx, H: FinderSpan * l.ModulePx}
}

// FinderRingBox returns the rectangle on which the one-module-wide outer ring
// is stroked: the 7x7 bounds inset by half a module, so a stroke of ModulePx
// width covers exactly the outer ring (7x7 down to 5x5).
func (l Layout) FinderRingBox(c Corner) Box {
	o := l.FinderOuterBox(c)
	half := l.ModulePx / 2
	return Box{X: o.X + half, Y: o.Y + half, W: o.W - l.ModulePx, H: o.H - l.ModulePx}
}

// FinderCoreBox returns the solid 3x3 center block of the corner's pattern.
// This core is what scanners lock onto; it is always drawn filled.
func (l Layout) FinderCoreBox(c Corner) Box {
	o := l.FinderOuterBox(c)
	return Box{X: o.X + 2*l.ModulePx, Y: o.Y + 2*l.ModulePx, W: 3 * l.ModulePx, H: 3 * l.ModulePx}
}

// LinearEndpoints computes the start and end points of a linear gradient by
// rotating a unit vector around the canvas center. rotation is in degrees;
// zero runs left to right.
func LinearEndpoints(size int, rotation float64) (x0, y0, x1, y1 float64) {
	half := float64(size) / 2
	rad := rotation * math.Pi / 180
	dx, dy := math.Cos(rad), math.Sin(rad)
	return half - dx*half, half - dy*half, half + dx*half, half + dy*half
}

// RadialParams returns the center and radius of a centered, full-radius
// radial gradient.
func RadialParams(size int) (cx, cy, r float64) {
	half := float64(size) / 2
	return half, half, half
}

// OcclusionBox returns the centered square a logo of the given size fraction
// occupies. Used identically by the raster patch and the validator.
func OcclusionBox(size int, sizeFraction float64) Box {
	edge := float64(size) * sizeFraction
	off := (float64(size) - edge) / 2
	return Box{X: off, Y: off, W: edge, H: edge}
}

// OcclusionPercent reports the share of the symbol edge a logo covers, as a
// percentage. Named so the validator's occlusion rule reads off one source.
func OcclusionPercent(sizeFraction float64) float64 {
	return sizeFraction * 100
}

// Expand grows the box by pad pixels on every side.
func (b Box) Expand(pad float64) Box {
	return Box{X: b.X - pad, Y: b.Y - pad, W: b.W + 2*pad, H: b.H + 2*pad}
}

// LerpColor interpolates between two colors. t is clamped to [0,1].
func LerpColor(a, b color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return color.RGBA{
		R: uint8(float64(a.R) + t*(float64(b.R)-float64(a.R))),
		G: uint8(float64(a.G) + t*(float64(b.G)-float64(a.G))),
		B: uint8(float64(a.B) + t*(float64(b.B)-float64(a.B))),
		A: 255,
	}
}
