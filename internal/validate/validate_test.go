package validate

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrstudio/internal/style"
)

func checkByID(t *testing.T, r Report, id string) Check {
	t.Helper()
	for _, c := range r.Checks {
		if c.ID == id {
			return c
		}
	}
	t.Fatalf("report has no %q check", id)
	return Check{}
}

func TestContrastRatioKnownValues(t *testing.T) {
	black := [3]uint8{0, 0, 0}
	white := [3]uint8{255, 255, 255}

	assert.InDelta(t, 21.0, ContrastRatio(black, white), 1e-9)
	assert.InDelta(t, 21.0, ContrastRatio(white, black), 1e-9, "ratio is symmetric")

	for _, c := range [][3]uint8{black, white, {0x12, 0x34, 0x56}, {200, 100, 50}} {
		assert.InDelta(t, 1.0, ContrastRatio(c, c), 1e-9, "same color contrasts 1:1")
	}
}

func TestValidateGoodDefaults(t *testing.T) {
	// https://example.com at level M, 300px, black on white, no logo.
	report := Validate(style.Default(), len("https://example.com"))

	assert.GreaterOrEqual(t, report.OverallScore, 90.0)
	for _, c := range report.Checks {
		assert.NotEqual(t, StatusFail, c.Status, "check %s failed: %s", c.ID, c.Message)
	}
	assert.InDelta(t, 21.0, report.ContrastRatio, 1e-9)
	assert.Equal(t, 2331, report.ErrorCorrectionCapacityBytes)
}

func TestValidateLowContrast(t *testing.T) {
	cfg := style.Default()
	cfg.ForegroundColor = color.RGBA{0xDD, 0xDD, 0xDD, 255}

	report := Validate(cfg, 0)
	assert.Less(t, report.ContrastRatio, 1.5)
	contrast := checkByID(t, report, "contrast")
	assert.Equal(t, StatusFail, contrast.Status)
	assert.Less(t, report.OverallScore, 70.0)
}

func TestValidateContrastWarnBand(t *testing.T) {
	cfg := style.Default()
	cfg.ForegroundColor = color.RGBA{0x80, 0x80, 0x80, 255} // ~3.9:1 on white

	report := Validate(cfg, 0)
	contrast := checkByID(t, report, "contrast")
	assert.Equal(t, StatusWarn, contrast.Status)
}

func TestValidateTransparentBackgroundAssumesWhite(t *testing.T) {
	cfg := style.Default()
	cfg.TransparentBackground = true
	cfg.BackgroundColor = color.RGBA{}

	report := Validate(cfg, 0)
	assert.InDelta(t, 21.0, report.ContrastRatio, 1e-9)
}

func TestValidateSizeThresholds(t *testing.T) {
	tests := []struct {
		size int
		want Status
	}{
		{120, StatusFail},
		{199, StatusFail},
		{250, StatusWarn},
		{300, StatusPass},
		{1000, StatusPass},
	}
	for _, tt := range tests {
		cfg := style.Default()
		cfg.Size = tt.size
		report := Validate(cfg, 0)
		got := checkByID(t, report, "size")
		assert.Equal(t, tt.want, got.Status, "size %d", tt.size)
	}
}

func TestValidateOversizedLogoFails(t *testing.T) {
	cfg := style.Default()
	cfg.Logo = &style.Logo{URL: "logo.png", SizeFraction: 0.35}

	report := Validate(cfg, 0)
	logo := checkByID(t, report, "logo-occlusion")
	assert.Equal(t, StatusFail, logo.Status)
	assert.Contains(t, logo.Message, "prevent scanning")
	assert.Equal(t, 35.0, report.LogoOcclusionPercent)

	require.NotNil(t, report.SuggestedSettings.Logo)
	assert.LessOrEqual(t, report.SuggestedSettings.Logo.SizeFraction, 0.30)
}

func TestValidateLogoAtLowECWarns(t *testing.T) {
	cfg := style.Default()
	cfg.ErrorCorrectionLevel = style.ECLow
	cfg.Logo = &style.Logo{URL: "logo.png", SizeFraction: 0.25}

	report := Validate(cfg, 0)
	logo := checkByID(t, report, "logo-occlusion")
	assert.Equal(t, StatusWarn, logo.Status)
	assert.Equal(t, "M", report.SuggestedSettings.ErrorCorrectionLevel)
}

func TestValidateScoreMonotonicInLogoSize(t *testing.T) {
	prev := 101.0
	for _, fraction := range []float64{0.05, 0.1, 0.2, 0.3, 0.4, 0.5} {
		cfg := style.Default()
		cfg.Logo = &style.Logo{URL: "logo.png", SizeFraction: fraction}
		report := Validate(cfg, 0)
		assert.LessOrEqual(t, report.OverallScore, prev,
			"score increased when logo grew to %.0f%%", fraction*100)
		prev = report.OverallScore
	}
}

func TestValidateCapacity(t *testing.T) {
	cfg := style.Default()
	cfg.ErrorCorrectionLevel = style.ECLow

	// 3000 bytes exceed even level L; the only remedy is shorter content.
	report := Validate(cfg, 3000)
	capCheck := checkByID(t, report, "capacity")
	assert.Equal(t, StatusFail, capCheck.Status)
	assert.True(t, report.SuggestedSettings.ShortenContent)

	// 2500 bytes overflow M but fit L; the suggestion must name L.
	cfg.ErrorCorrectionLevel = style.ECMedium
	report = Validate(cfg, 2500)
	capCheck = checkByID(t, report, "capacity")
	assert.Equal(t, StatusFail, capCheck.Status)
	assert.Equal(t, "L", report.SuggestedSettings.ErrorCorrectionLevel)
	assert.False(t, report.SuggestedSettings.ShortenContent)
}

func TestValidateCapacityNearLimitWarns(t *testing.T) {
	cfg := style.Default()
	cfg.ErrorCorrectionLevel = style.ECHigh // capacity 1273

	report := Validate(cfg, 1200)
	capCheck := checkByID(t, report, "capacity")
	assert.Equal(t, StatusWarn, capCheck.Status)
}

func TestValidateDeterministic(t *testing.T) {
	cfg := style.Default()
	cfg.Logo = &style.Logo{URL: "logo.png", SizeFraction: 0.28}

	a := Validate(cfg, 500)
	b := Validate(cfg, 500)
	assert.Equal(t, a, b)
}

func TestSuggestedSettingsRoundTrip(t *testing.T) {
	cfg := style.Default()
	cfg.ErrorCorrectionLevel = style.ECLow
	cfg.Logo = &style.Logo{URL: "logo.png", SizeFraction: 0.35}

	before := Validate(cfg, 0)
	logoBefore := checkByID(t, before, "logo-occlusion")
	require.Equal(t, StatusFail, logoBefore.Status)

	// Apply the suggestion and re-validate.
	corrected := cfg
	corrected.Logo = &style.Logo{URL: "logo.png", SizeFraction: before.SuggestedSettings.Logo.SizeFraction}
	level, err := style.ParseECLevel(before.SuggestedSettings.ErrorCorrectionLevel)
	require.NoError(t, err)
	corrected.ErrorCorrectionLevel = level

	after := Validate(corrected, 0)
	logoAfter := checkByID(t, after, "logo-occlusion")
	assert.NotEqual(t, StatusFail, logoAfter.Status)
	assert.GreaterOrEqual(t, logoAfter.Score, logoBefore.Score)
	assert.GreaterOrEqual(t, after.OverallScore, before.OverallScore)
}

func TestValidateNeverEmptyReport(t *testing.T) {
	// Even a hostile config yields a report rather than an error.
	cfg := style.Config{Size: -5}
	report := Validate(cfg, -3)
	assert.NotEmpty(t, report.Checks)
	assert.GreaterOrEqual(t, report.OverallScore, 0.0)
	assert.LessOrEqual(t, report.OverallScore, 100.0)
}
