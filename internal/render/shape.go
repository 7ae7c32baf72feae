package render

import (
	"github.com/cristianadrielbraun/qrstudio/internal/geometry"
	"github.com/cristianadrielbraun/qrstudio/internal/style"
)

// Shape is the descriptor both compositors draw from. It is a closed union:
// every dot style maps to exactly one Rect or Circle.
type Shape interface {
	isShape()
}

// Rect is an axis-aligned rectangle with an optional corner radius.
type Rect struct {
	X, Y, W, H float64
	Radius     float64
}

// Circle is a filled circle.
type Circle struct {
	CX, CY, R float64
}

func (Rect) isShape()   {}
func (Circle) isShape() {}

// classyAspect is the width fraction of the classy module shape; the shape
// stays full height, so it reads taller than wide.
const classyAspect = 0.78

// MapModule maps the data module at (x,y) to its drawable shape. It is pure
// and total over DotStyle. Modules inside a finder region must be filtered
// out by the caller before reaching here (see geometry.InFinder).
func MapModule(l geometry.Layout, x, y int, ds style.DotStyle) Shape {
	px, py := l.ModuleOrigin(x, y)
	mp := l.ModulePx

	switch ds {
	case style.DotCircle:
		return Circle{CX: px + mp/2, CY: py + mp/2, R: mp / 2}
	case style.DotRounded:
		return Rect{X: px, Y: py, W: mp, H: mp, Radius: mp * 0.25}
	case style.DotExtraRounded:
		return Rect{X: px, Y: py, W: mp, H: mp, Radius: mp * 0.5}
	case style.DotClassy:
		w := mp * classyAspect
		return Rect{X: px + (mp-w)/2, Y: py, W: w, H: mp, Radius: mp * 0.3}
	default: // style.DotSquare
		return Rect{X: px, Y: py, W: mp, H: mp}
	}
}
