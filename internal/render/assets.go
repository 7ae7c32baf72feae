package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// ErrAssetLoad marks a logo image that could not be fetched or decoded. The
// render call carrying it fails outright; a silently missing logo would be a
// user-visible regression.
var ErrAssetLoad = errors.New("asset load failed")

// maxAssetBytes caps how much of a remote logo is read.
const maxAssetBytes = 8 << 20

// ImageLoader fetches and decodes a logo image. It is injected into the
// renderer so tests can use an in-memory stub with zero network dependency.
type ImageLoader interface {
	Load(ctx context.Context, url string) (image.Image, error)
}

// Loader is the default ImageLoader. It supports http(s) URLs, data URIs and
// local file paths, decoding PNG/JPEG/GIF via image.Decode and SVG via oksvg.
type Loader struct {
	Client *http.Client
}

// NewLoader returns a Loader with a 10 second HTTP timeout.
func NewLoader() *Loader {
	return &Loader{Client: &http.Client{Timeout: 10 * time.Second}}
}

// Load fetches url and decodes it into an image. All failures wrap ErrAssetLoad.
func (l *Loader) Load(ctx context.Context, url string) (image.Image, error) {
	data, svg, err := l.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetLoad, err)
	}
	var img image.Image
	if svg {
		img, err = rasterizeSVG(bytes.NewReader(data))
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrAssetLoad, url, err)
	}
	return img, nil
}

func (l *Loader) fetch(ctx context.Context, url string) (data []byte, svg bool, err error) {
	switch {
	case strings.HasPrefix(url, "data:"):
		data, svg, err = decodeDataURI(url)
		return data, svg, err
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, false, err
		}
		client := l.Client
		if client == nil {
			client = http.DefaultClient
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, false, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, false, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
		}
		data, err = io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes))
		if err != nil {
			return nil, false, err
		}
		svg = strings.Contains(resp.Header.Get("Content-Type"), "svg") ||
			strings.HasSuffix(strings.ToLower(url), ".svg")
		return data, svg, nil
	default:
		// Local file, e.g. an uploaded logo.
		data, err = os.ReadFile(url)
		if err != nil {
			return nil, false, err
		}
		return data, strings.HasSuffix(strings.ToLower(url), ".svg"), nil
	}
}

func decodeDataURI(uri string) ([]byte, bool, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, false, fmt.Errorf("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, false, fmt.Errorf("malformed data URI")
	}
	var data []byte
	var err error
	if strings.HasSuffix(meta, ";base64") {
		data, err = base64.StdEncoding.DecodeString(payload)
	} else {
		data = []byte(payload)
	}
	if err != nil {
		return nil, false, err
	}
	return data, strings.Contains(meta, "svg"), nil
}

// rasterizeSVG renders an SVG document to a pixel image at its declared
// viewbox size.
func rasterizeSVG(r io.Reader) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, err
	}
	w, h := int(icon.ViewBox.W), int(icon.ViewBox.H)
	if w <= 0 || h <= 0 {
		w, h = 512, 512
	}
	icon.SetTarget(0, 0, float64(w), float64(h))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return rgba, nil
}
