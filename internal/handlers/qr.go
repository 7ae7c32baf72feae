package handlers

import (
	"fmt"
	"image/color"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrstudio/internal/render"
	"github.com/cristianadrielbraun/qrstudio/internal/style"
)

// maxRenderSize caps the output edge length a request may ask for.
const maxRenderSize = 4096

// normalizeHTTPURL validates and normalizes a URL string for QR generation.
// It ensures an http/https scheme, a non-empty hostname, and returns a cleaned
// absolute URL.
func normalizeHTTPURL(s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", fmt.Errorf("URL parameter is required")
	}
	// If missing scheme, default to https
	if !strings.Contains(v, "://") {
		v = "https://" + v
	}
	u, err := url.ParseRequestURI(v)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("only http and https URLs are supported")
	}
	if u.Host == "" {
		return "", fmt.Errorf("URL must include a valid host")
	}
	if len(v) > 4096 {
		return "", fmt.Errorf("URL is too long")
	}
	return u.String(), nil
}

func queryColor(c *gin.Context, key string, fallback color.RGBA) (color.RGBA, error) {
	v := c.Query(key)
	if v == "" {
		return fallback, nil
	}
	return style.ParseHexColor(v)
}

func queryEyeColor(c *gin.Context, key string) (*color.RGBA, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	col, err := style.ParseHexColor(v)
	if err != nil {
		return nil, err
	}
	return &col, nil
}

// parseConfig builds a style.Config from request query parameters. Every
// enum value goes through its parse function, so unknown styles reject the
// request instead of silently falling back.
func parseConfig(c *gin.Context) (style.Config, error) {
	cfg := style.Default()

	if v := c.Query("size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return cfg, &style.ConfigurationError{Field: "size", Reason: "not an integer"}
		}
		if size > maxRenderSize {
			return cfg, &style.ConfigurationError{
				Field:  "size",
				Reason: fmt.Sprintf("must be at most %d, got %d", maxRenderSize, size),
			}
		}
		cfg.Size = size
	}
	if v := c.Query("margin"); v != "" {
		margin, err := strconv.Atoi(v)
		if err != nil {
			return cfg, &style.ConfigurationError{Field: "margin", Reason: "not an integer"}
		}
		cfg.Margin = margin
	}

	level, err := style.ParseECLevel(c.Query("ec"))
	if err != nil {
		return cfg, err
	}
	cfg.ErrorCorrectionLevel = level

	if strings.EqualFold(c.Query("bg"), "transparent") {
		cfg.TransparentBackground = true
		cfg.BackgroundColor = color.RGBA{}
	} else if cfg.BackgroundColor, err = queryColor(c, "bg", cfg.BackgroundColor); err != nil {
		return cfg, err
	}
	if cfg.ForegroundColor, err = queryColor(c, "fg", cfg.ForegroundColor); err != nil {
		return cfg, err
	}

	if cfg.DotStyle, err = style.ParseDotStyle(c.Query("dotStyle")); err != nil {
		return cfg, err
	}
	if cfg.FinderPattern, err = style.ParseFinderStyle(c.Query("finderPattern")); err != nil {
		return cfg, err
	}

	if mode := c.Query("gradient"); mode != "" && !strings.EqualFold(mode, "none") {
		gt, err := style.ParseGradientType(mode)
		if err != nil {
			return cfg, err
		}
		start, err := queryColor(c, "gradientStart", color.RGBA{0, 0, 0, 255})
		if err != nil {
			return cfg, err
		}
		end, err := queryColor(c, "gradientEnd", color.RGBA{255, 0, 0, 255})
		if err != nil {
			return cfg, err
		}
		rotation := 45.0
		if v := c.Query("gradientRotation"); v != "" {
			rotation, err = strconv.ParseFloat(v, 64)
			if err != nil {
				return cfg, &style.ConfigurationError{Field: "gradientRotation", Reason: "not a number"}
			}
		}
		cfg.Gradient = &style.Gradient{
			Enabled:    true,
			Type:       gt,
			ColorStart: start,
			ColorEnd:   end,
			Rotation:   rotation,
		}
	}

	tl, err := queryEyeColor(c, "eyeTopLeft")
	if err != nil {
		return cfg, err
	}
	tr, err := queryEyeColor(c, "eyeTopRight")
	if err != nil {
		return cfg, err
	}
	bl, err := queryEyeColor(c, "eyeBottomLeft")
	if err != nil {
		return cfg, err
	}
	if tl != nil || tr != nil || bl != nil {
		cfg.EyeColors = &style.EyeColors{TopLeft: tl, TopRight: tr, BottomLeft: bl}
	}

	if fs := c.Query("frameStyle"); fs != "" {
		frameStyle, err := style.ParseFrameStyle(fs)
		if err != nil {
			return cfg, err
		}
		cfg.Frame = style.Frame{Style: frameStyle, Text: c.Query("frameText")}
	}

	if logoURL := c.Query("logoUrl"); logoURL != "" {
		fraction := 0.2
		if v := c.Query("logoSize"); v != "" {
			fraction, err = strconv.ParseFloat(v, 64)
			if err != nil {
				return cfg, &style.ConfigurationError{Field: "logoSize", Reason: "not a number"}
			}
		}
		padding := style.DefaultLogoPadding
		if v := c.Query("logoPadding"); v != "" {
			padding, err = strconv.Atoi(v)
			if err != nil {
				return cfg, &style.ConfigurationError{Field: "logoPadding", Reason: "not an integer"}
			}
		}
		cfg.Logo = &style.Logo{URL: logoURL, SizeFraction: fraction, PaddingPx: padding}
	}

	return cfg, cfg.Validate()
}

// QRCodeHandler streams a single rendered format: png (default), jpg or svg.
func (h *Handler) QRCodeHandler(c *gin.Context) {
	content, err := normalizeHTTPURL(c.Query("url"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cfg, err := parseConfig(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	format := strings.ToLower(c.DefaultQuery("format", "png"))
	if format == "jpeg" {
		format = "jpg"
	}
	if format != "png" && format != "svg" && format != "jpg" {
		format = "png"
	}
	h.log.Debug("render request", "url", content, "format", format, "size", cfg.Size,
		"dotStyle", cfg.DotStyle.String(), "finder", cfg.FinderPattern.String())

	result, err := h.renderer.Render(c.Request.Context(), content, cfg)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	switch format {
	case "svg":
		c.Data(http.StatusOK, "image/svg+xml", []byte(result.Vector))
	case "jpg":
		data, err := render.EncodeJPEG(result.Image, cfg.BackgroundColor)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.Data(http.StatusOK, "image/jpeg", data)
	default:
		c.Data(http.StatusOK, "image/png", result.RasterPNG)
	}
}

// RenderHandler returns both outputs of one render call as JSON: the raster
// as a PNG data URI and the vector as a self-contained SVG document.
func (h *Handler) RenderHandler(c *gin.Context) {
	content, err := normalizeHTTPURL(c.Query("url"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cfg, err := parseConfig(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	result, err := h.renderer.Render(c.Request.Context(), content, cfg)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
