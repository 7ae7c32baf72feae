// Package validate scores a style configuration for scannability before any
// rendering happens. It is stateless and cheap: callers run it to gate or
// annotate a generate action, never to block rendering automatically.
package validate

import (
	"fmt"
	"math"

	"github.com/cristianadrielbraun/qrstudio/internal/geometry"
	"github.com/cristianadrielbraun/qrstudio/internal/style"
)

// Status classifies one check result.
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// Check is one scored diagnostic.
type Check struct {
	ID       string  `json:"id"`
	Category string  `json:"category"`
	Status   Status  `json:"status"`
	Message  string  `json:"message"`
	Score    float64 `json:"score"`
}

// SuggestedLogo carries the corrected logo sizing.
type SuggestedLogo struct {
	SizeFraction float64 `json:"sizeFraction"`
}

// SuggestedSettings is the concrete remediation the report proposes. Feeding
// it back into Validate scores at least as well on the corrected dimension.
type SuggestedSettings struct {
	ErrorCorrectionLevel string         `json:"errorCorrectionLevel"`
	Logo                 *SuggestedLogo `json:"logo,omitempty"`
	ShortenContent       bool           `json:"shortenContent,omitempty"`
}

// Report is the full validation outcome. It is derived purely from the
// configuration and content length; identical inputs always produce an
// identical report.
type Report struct {
	OverallScore                 float64           `json:"overallScore"`
	Checks                       []Check           `json:"checks"`
	ContrastRatio                float64           `json:"contrastRatio"`
	RecommendedScanDistance      float64           `json:"recommendedScanDistanceCm"`
	LogoOcclusionPercent         float64           `json:"logoOcclusionPercent"`
	ErrorCorrectionCapacityBytes int               `json:"errorCorrectionCapacityBytes"`
	PrintRecommendation          string            `json:"printRecommendation"`
	SuggestedSettings            SuggestedSettings `json:"suggestedSettings"`
}

// approxModuleCount approximates the module count of a small symbol for the
// size heuristic. The real count varies with content length and level; this
// deliberately keeps the original design's simplification so scores stay
// comparable across versions.
const approxModuleCount = 33

// maxLogoFraction is the largest logo size the validator will ever suggest.
const maxLogoFraction = 0.30

// screenDPI converts pixel sizes to physical size for the scan distance
// estimate.
const screenDPI = 96

// linearize converts one sRGB channel to linear light.
func linearize(c uint8) float64 {
	v := float64(c) / 255
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// Luminance returns the WCAG relative luminance of a color.
func Luminance(c [3]uint8) float64 {
	return 0.2126*linearize(c[0]) + 0.7152*linearize(c[1]) + 0.0722*linearize(c[2])
}

// ContrastRatio returns the WCAG contrast ratio between two colors, always
// at least 1. Black on white is 21.
func ContrastRatio(a, b [3]uint8) float64 {
	la, lb := Luminance(a), Luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

func clampScore(s float64) float64 {
	return math.Max(0, math.Min(100, s))
}

// Validate scores cfg for scannability. contentLength of zero skips the
// capacity check (content not known yet). Validate never fails: every input
// produces a report, worst case score zero with the checks explaining why.
func Validate(cfg style.Config, contentLength int) Report {
	var checks []Check
	suggested := SuggestedSettings{ErrorCorrectionLevel: cfg.ErrorCorrectionLevel.String()}

	// Contrast between foreground and background.
	fg := [3]uint8{cfg.ForegroundColor.R, cfg.ForegroundColor.G, cfg.ForegroundColor.B}
	bg := [3]uint8{cfg.BackgroundColor.R, cfg.BackgroundColor.G, cfg.BackgroundColor.B}
	if cfg.TransparentBackground {
		// Scanned against an unknown surface; assume white, the common case.
		bg = [3]uint8{255, 255, 255}
	}
	ratio := ContrastRatio(fg, bg)
	contrast := Check{
		ID:       "contrast",
		Category: "colors",
		Score:    clampScore(ratio / 7 * 100),
	}
	switch {
	case ratio < 3:
		contrast.Status = StatusFail
		contrast.Message = fmt.Sprintf("contrast ratio %.2f is too low; scanning is likely to break", ratio)
	case ratio < 4.5:
		contrast.Status = StatusWarn
		contrast.Message = fmt.Sprintf("contrast ratio %.2f may fail in poor lighting", ratio)
	default:
		contrast.Status = StatusPass
		contrast.Message = fmt.Sprintf("contrast ratio %.2f is sufficient", ratio)
	}
	checks = append(checks, contrast)

	// Output size and derived scan distance.
	modulePx := float64(cfg.Size) / approxModuleCount
	widthCm := float64(cfg.Size) / screenDPI * 2.54
	scanDistanceCm := widthCm * 10
	sizeCheck := Check{
		ID:       "size",
		Category: "dimensions",
		Score:    clampScore(float64(cfg.Size) / 300 * 100),
	}
	switch {
	case cfg.Size < 200:
		sizeCheck.Status = StatusFail
		sizeCheck.Message = fmt.Sprintf("%dpx is too small (%.1fpx per module); use at least 200px", cfg.Size, modulePx)
	case cfg.Size < 300:
		sizeCheck.Status = StatusWarn
		sizeCheck.Message = fmt.Sprintf("%dpx works up close; 300px or more scans reliably", cfg.Size)
	default:
		sizeCheck.Status = StatusPass
		sizeCheck.Message = fmt.Sprintf("%dpx scans from up to %.0f cm", cfg.Size, scanDistanceCm)
	}
	checks = append(checks, sizeCheck)

	// Logo occlusion against the error correction budget.
	occlusion := 0.0
	if cfg.Logo != nil {
		occlusion = geometry.OcclusionPercent(cfg.Logo.SizeFraction)
		logoCheck := Check{
			ID:       "logo-occlusion",
			Category: "logo",
			Score:    clampScore(100 - 2*occlusion),
		}
		switch {
		case occlusion > 30:
			logoCheck.Status = StatusFail
			logoCheck.Message = fmt.Sprintf("logo covers %.0f%% of the symbol and may prevent scanning; keep it at or below 30%%", occlusion)
		case occlusion >= 20 && cfg.ErrorCorrectionLevel == style.ECLow:
			logoCheck.Status = StatusWarn
			logoCheck.Message = fmt.Sprintf("logo covers %.0f%% at level L; raise error correction to M or higher", occlusion)
		default:
			logoCheck.Status = StatusPass
			logoCheck.Message = fmt.Sprintf("logo covers %.0f%% of the symbol", occlusion)
		}
		checks = append(checks, logoCheck)

		suggested.Logo = &SuggestedLogo{SizeFraction: math.Min(cfg.Logo.SizeFraction, maxLogoFraction)}
		if cfg.ErrorCorrectionLevel == style.ECLow {
			// Any embedded logo needs headroom beyond level L.
			suggested.ErrorCorrectionLevel = style.ECMedium.String()
		}
	}

	// Content length against the level's byte capacity. Runs before any
	// render so an over-capacity payload never reaches the encoder blind.
	capacity := cfg.ErrorCorrectionLevel.Capacity()
	if contentLength > 0 {
		capCheck := Check{ID: "capacity", Category: "content"}
		switch {
		case contentLength > capacity:
			capCheck.Status = StatusFail
			capCheck.Score = 0
			if fit, ok := levelFor(contentLength); ok {
				capCheck.Message = fmt.Sprintf("%d bytes exceed level %s capacity (%d); use level %s or shorten the content",
					contentLength, cfg.ErrorCorrectionLevel, capacity, fit)
				suggested.ErrorCorrectionLevel = fit.String()
			} else {
				capCheck.Message = fmt.Sprintf("%d bytes exceed the maximum symbol capacity (%d); shorten the content",
					contentLength, style.ECLow.Capacity())
				suggested.ShortenContent = true
			}
		case float64(contentLength) > 0.9*float64(capacity):
			capCheck.Status = StatusWarn
			capCheck.Score = 70
			capCheck.Message = fmt.Sprintf("%d bytes is close to level %s capacity (%d)", contentLength, cfg.ErrorCorrectionLevel, capacity)
		default:
			capCheck.Status = StatusPass
			capCheck.Score = 100
			capCheck.Message = fmt.Sprintf("%d bytes fit level %s capacity (%d)", contentLength, cfg.ErrorCorrectionLevel, capacity)
		}
		checks = append(checks, capCheck)
	}

	total := 0.0
	for _, c := range checks {
		total += c.Score
	}
	overall := 0.0
	if len(checks) > 0 {
		overall = total / float64(len(checks))
	}

	printRec := fmt.Sprintf("print at least %.1f cm wide; expect scanning from up to %.0f cm", widthCm, scanDistanceCm)
	if modulePx < 4 {
		printRec = fmt.Sprintf("modules are only %.1fpx; increase size before printing", modulePx)
	}

	return Report{
		OverallScore:                 math.Round(overall*10) / 10,
		Checks:                       checks,
		ContrastRatio:                ratio,
		RecommendedScanDistance:      math.Round(scanDistanceCm*10) / 10,
		LogoOcclusionPercent:         occlusion,
		ErrorCorrectionCapacityBytes: capacity,
		PrintRecommendation:          printRec,
		SuggestedSettings:            suggested,
	}
}

// levelFor returns the most damage-resilient level whose capacity still
// covers n bytes.
func levelFor(n int) (style.ECLevel, bool) {
	for _, l := range []style.ECLevel{style.ECHigh, style.ECQuartile, style.ECMedium, style.ECLow} {
		if n <= l.Capacity() {
			return l, true
		}
	}
	return 0, false
}
