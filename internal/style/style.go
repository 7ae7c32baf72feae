// Package style defines the customization value object shared by the render
// and validate pipelines. Every style axis is a closed enum with a parse
// function, so unknown values are rejected up front instead of falling through
// a string switch at draw time.
package style

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ConfigurationError is returned for invalid style input: non-positive sizes,
// malformed colors, unknown enum values. Nothing is drawn when one is raised.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func configErr(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ECLevel is a QR error correction level.
type ECLevel int

const (
	ECLow ECLevel = iota
	ECMedium
	ECQuartile
	ECHigh
)

// Capacity returns the maximum byte-mode payload for the level at the largest
// symbol version. Shared by the validator and the encoder error classifier.
func (l ECLevel) Capacity() int {
	switch l {
	case ECLow:
		return 2953
	case ECMedium:
		return 2331
	case ECQuartile:
		return 1663
	default:
		return 1273
	}
}

func (l ECLevel) String() string {
	switch l {
	case ECLow:
		return "L"
	case ECMedium:
		return "M"
	case ECQuartile:
		return "Q"
	default:
		return "H"
	}
}

// ParseECLevel maps "L"/"M"/"Q"/"H" (case-insensitive) to a level.
func ParseECLevel(s string) (ECLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L":
		return ECLow, nil
	case "M", "":
		return ECMedium, nil
	case "Q":
		return ECQuartile, nil
	case "H":
		return ECHigh, nil
	}
	return 0, configErr("errorCorrectionLevel", "unknown level %q", s)
}

// DotStyle selects the shape drawn for each dark data module.
type DotStyle int

const (
	DotSquare DotStyle = iota
	DotCircle
	DotRounded
	DotExtraRounded
	DotClassy
)

func (d DotStyle) String() string {
	switch d {
	case DotSquare:
		return "square"
	case DotCircle:
		return "dot"
	case DotRounded:
		return "rounded"
	case DotExtraRounded:
		return "extra-rounded"
	default:
		return "classy"
	}
}

// ParseDotStyle maps a style name to its DotStyle.
func ParseDotStyle(s string) (DotStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "square", "":
		return DotSquare, nil
	case "dot", "dots", "circle":
		return DotCircle, nil
	case "rounded":
		return DotRounded, nil
	case "extra-rounded":
		return DotExtraRounded, nil
	case "classy":
		return DotClassy, nil
	}
	return 0, configErr("dotStyle", "unknown style %q", s)
}

// FinderStyle selects how the three corner finder patterns are drawn.
type FinderStyle int

const (
	FinderSquare FinderStyle = iota
	FinderRounded
	FinderDots
	FinderExtraRounded
)

func (f FinderStyle) String() string {
	switch f {
	case FinderSquare:
		return "square"
	case FinderRounded:
		return "rounded"
	case FinderDots:
		return "dots"
	default:
		return "extra-rounded"
	}
}

// ParseFinderStyle maps a pattern name to its FinderStyle. Every style keeps
// the inner 3x3 core solid; there is no valid hollow-core variant.
func ParseFinderStyle(s string) (FinderStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "square", "":
		return FinderSquare, nil
	case "rounded":
		return FinderRounded, nil
	case "dots", "dotted":
		return FinderDots, nil
	case "extra-rounded":
		return FinderExtraRounded, nil
	}
	return 0, configErr("finderPattern", "unknown style %q", s)
}

// GradientType selects linear or radial foreground gradients.
type GradientType int

const (
	GradientLinear GradientType = iota
	GradientRadial
)

// ParseGradientType maps "linear"/"radial" to a GradientType.
func ParseGradientType(s string) (GradientType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "":
		return GradientLinear, nil
	case "radial":
		return GradientRadial, nil
	}
	return 0, configErr("gradient.type", "unknown type %q", s)
}

// FrameStyle selects the caption band drawn under the symbol.
type FrameStyle int

const (
	FrameNone FrameStyle = iota
	FrameSimple
	FrameRounded
	FrameBanner
)

// ParseFrameStyle maps a frame name to its FrameStyle.
func ParseFrameStyle(s string) (FrameStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return FrameNone, nil
	case "simple":
		return FrameSimple, nil
	case "rounded":
		return FrameRounded, nil
	case "banner":
		return FrameBanner, nil
	}
	return 0, configErr("frame.style", "unknown style %q", s)
}

// Gradient describes an optional foreground gradient fill.
type Gradient struct {
	Enabled    bool
	Type       GradientType
	ColorStart color.RGBA
	ColorEnd   color.RGBA
	Rotation   float64 // degrees, linear gradients only
}

// EyeColors carries optional per-corner finder pattern color overrides.
// A nil entry falls back to the foreground color.
type EyeColors struct {
	TopLeft    *color.RGBA
	TopRight   *color.RGBA
	BottomLeft *color.RGBA
}

// Frame describes an optional caption band below the symbol.
type Frame struct {
	Style FrameStyle
	Text  string
}

// Enabled reports whether the frame adds a band to the output.
func (f Frame) Enabled() bool {
	return f.Style != FrameNone && strings.TrimSpace(f.Text) != ""
}

// Logo describes an optional embedded center image.
type Logo struct {
	URL          string
	SizeFraction float64 // edge length as a fraction of the symbol size
	PaddingPx    int     // opaque patch padding around the logo
}

// DefaultLogoPadding is applied when Logo.PaddingPx is zero.
const DefaultLogoPadding = 10

// Config fully determines one rendered output. It holds no hidden state; two
// renders of an equal Config over the same matrix are geometrically identical.
type Config struct {
	Size                  int // output edge length in pixels, frame band excluded
	Margin                int // quiet zone width in modules
	ErrorCorrectionLevel  ECLevel
	ForegroundColor       color.RGBA
	BackgroundColor       color.RGBA
	TransparentBackground bool
	DotStyle              DotStyle
	FinderPattern         FinderStyle
	Gradient              *Gradient
	EyeColors             *EyeColors
	Frame                 Frame
	Logo                  *Logo
}

// Default returns the baseline configuration: 300px black-on-white squares
// with a 2-module quiet zone at level M.
func Default() Config {
	return Config{
		Size:                 300,
		Margin:               2,
		ErrorCorrectionLevel: ECMedium,
		ForegroundColor:      color.RGBA{0, 0, 0, 255},
		BackgroundColor:      color.RGBA{255, 255, 255, 255},
	}
}

// Validate rejects configurations that must never reach a drawing surface.
func (c Config) Validate() error {
	if c.Size <= 0 {
		return configErr("size", "must be positive, got %d", c.Size)
	}
	if c.Margin < 0 {
		return configErr("margin", "must be non-negative, got %d", c.Margin)
	}
	if c.ForegroundColor.A == 0 {
		return configErr("foregroundColor", "must be opaque; only the background may be transparent")
	}
	if c.Logo != nil {
		if c.Logo.URL == "" {
			return configErr("logo.url", "must not be empty")
		}
		if c.Logo.SizeFraction <= 0 || c.Logo.SizeFraction >= 1 {
			return configErr("logo.sizeFraction", "must be in (0,1), got %g", c.Logo.SizeFraction)
		}
	}
	if g := c.Gradient; g != nil && g.Enabled {
		if g.Type != GradientLinear && g.Type != GradientRadial {
			return configErr("gradient.type", "unknown type %d", int(g.Type))
		}
	}
	return nil
}

// ParseHexColor parses "#RRGGBB" (leading # optional) or "transparent".
// Malformed input is an error, never a silent fallback color.
func ParseHexColor(s string) (color.RGBA, error) {
	v := strings.TrimSpace(s)
	if strings.EqualFold(v, "transparent") {
		return color.RGBA{}, nil
	}
	v = strings.TrimPrefix(v, "#")
	if len(v) != 6 {
		return color.RGBA{}, configErr("color", "want 6 hex digits, got %q", s)
	}
	r, err1 := strconv.ParseUint(v[0:2], 16, 8)
	g, err2 := strconv.ParseUint(v[2:4], 16, 8)
	b, err3 := strconv.ParseUint(v[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return color.RGBA{}, configErr("color", "malformed hex %q", s)
	}
	return color.RGBA{uint8(r), uint8(g), uint8(b), 255}, nil
}

// HexString formats c as "#RRGGBB".
func HexString(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
