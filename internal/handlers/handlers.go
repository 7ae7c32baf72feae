// Package handlers exposes the render and validate engines over HTTP.
package handlers

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrstudio/internal/qrencode"
	"github.com/cristianadrielbraun/qrstudio/internal/render"
	"github.com/cristianadrielbraun/qrstudio/internal/style"
)

// Handler carries the dependencies of the HTTP endpoints.
type Handler struct {
	log      *log.Logger
	renderer *render.Renderer
}

// New returns a Handler wired with the default asset loader.
func New(logger *log.Logger) *Handler {
	return &Handler{
		log:      logger,
		renderer: render.New(render.NewLoader()),
	}
}

// NewWithRenderer returns a Handler using a caller-provided renderer, e.g.
// one with a stub asset loader in tests.
func NewWithRenderer(logger *log.Logger, r *render.Renderer) *Handler {
	return &Handler{log: logger, renderer: r}
}

// fail writes the error as JSON with a status matching its class.
func (h *Handler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var cfgErr *style.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		status = http.StatusBadRequest
	case errors.Is(err, qrencode.ErrCapacity):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, render.ErrAssetLoad):
		status = http.StatusBadGateway
	}
	h.log.Warn("request failed", "status", status, "err", err)
	c.JSON(status, gin.H{"error": err.Error()})
}
