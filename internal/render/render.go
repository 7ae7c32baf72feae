// Package render is the module-to-shape rendering engine: it turns an encoded
// module matrix plus a style configuration into a pixel raster and a scalable
// vector document that stay geometrically interchangeable.
package render

import (
	"context"
	"fmt"
	"image"

	"github.com/cristianadrielbraun/qrstudio/internal/qrencode"
	"github.com/cristianadrielbraun/qrstudio/internal/style"
)

// Result carries the two parallel outputs of one render call.
type Result struct {
	RasterDataURI string `json:"raster"`
	Vector        string `json:"vector"`

	// RasterPNG and Image let callers re-encode without another render pass.
	RasterPNG []byte      `json:"-"`
	Image     image.Image `json:"-"`
}

// Renderer holds the injected collaborators of the engine. It has no mutable
// state; independent Render calls are safe to run in parallel, each on its
// own surface.
type Renderer struct {
	loader ImageLoader
}

// New returns a Renderer using the given asset loader. A nil loader is valid
// as long as no configuration carries a logo.
func New(loader ImageLoader) *Renderer {
	return &Renderer{loader: loader}
}

// Render encodes content and produces both outputs for it. Configuration and
// capacity errors surface before any drawing; an asset failure aborts the
// whole call.
func (r *Renderer) Render(ctx context.Context, content string, cfg style.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	matrix, err := qrencode.Encode(content, cfg.ErrorCorrectionLevel)
	if err != nil {
		return nil, err
	}
	return r.RenderMatrix(ctx, matrix, cfg)
}

// RenderMatrix renders an already-encoded matrix. The matrix is never
// mutated; the raster and vector passes read it independently.
func (r *Renderer) RenderMatrix(ctx context.Context, m *qrencode.Matrix, cfg style.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	img, err := renderRaster(ctx, m, cfg, r.loader)
	if err != nil {
		return nil, fmt.Errorf("raster: %w", err)
	}
	svg, err := renderVector(ctx, m, cfg, r.loader)
	if err != nil {
		return nil, fmt.Errorf("vector: %w", err)
	}

	data, err := encodePNG(img)
	if err != nil {
		return nil, err
	}
	return &Result{
		RasterDataURI: pngDataURI(data),
		Vector:        svg,
		RasterPNG:     data,
		Image:         img,
	}, nil
}
