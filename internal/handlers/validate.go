package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrstudio/internal/style"
	"github.com/cristianadrielbraun/qrstudio/internal/validate"
)

// ValidateHandler scores a configuration for scannability without rendering
// anything. UIs call this before the more expensive render endpoints to warn
// the user pre-emptively.
func (h *Handler) ValidateHandler(c *gin.Context) {
	cfg, err := parseConfig(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	// hasLogo lets a UI ask about a planned logo before it has a URL for it.
	if cfg.Logo == nil && c.Query("hasLogo") == "true" {
		fraction := 0.2
		if v := c.Query("logoSize"); v != "" {
			fraction, err = strconv.ParseFloat(v, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid logoSize: %v", err)})
				return
			}
		}
		cfg.Logo = &style.Logo{URL: "pending", SizeFraction: fraction}
	}

	contentLength := 0
	if v := c.Query("contentLength"); v != "" {
		contentLength, err = strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid contentLength: %v", err)})
			return
		}
	} else if u := c.Query("url"); u != "" {
		contentLength = len(u)
	}

	report := validate.Validate(cfg, contentLength)
	h.log.Debug("validate request", "score", report.OverallScore, "checks", len(report.Checks))
	c.JSON(http.StatusOK, report)
}
