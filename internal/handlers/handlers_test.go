package handlers

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrstudio/internal/render"
	"github.com/cristianadrielbraun/qrstudio/internal/validate"
)

type stubLoader struct{}

func (stubLoader) Load(_ context.Context, _ string) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.SetRGBA(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	return img, nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewWithRenderer(charmlog.New(io.Discard), render.New(stubLoader{}))
	r := gin.New()
	api := r.Group("/api")
	api.GET("/qr", h.QRCodeHandler)
	api.GET("/render", h.RenderHandler)
	api.GET("/validate", h.ValidateHandler)
	return r
}

func get(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestQRMissingURL(t *testing.T) {
	w := get(t, newTestRouter(), "/api/qr")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestQRDefaultPNG(t *testing.T) {
	w := get(t, newTestRouter(), "/api/qr?url=example.com")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "\x89PNG") {
		t.Error("body is not a PNG")
	}
	if cc := w.Header().Get("Cache-Control"); !strings.Contains(cc, "max-age=3600") {
		t.Errorf("cache control = %q", cc)
	}
}

func TestQRSVGFormat(t *testing.T) {
	w := get(t, newTestRouter(), "/api/qr?url=example.com&format=svg&dotStyle=rounded&finderPattern=dots")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), "<svg") {
		t.Error("body is not an SVG document")
	}
}

func TestQRJPEGFormat(t *testing.T) {
	w := get(t, newTestRouter(), "/api/qr?url=example.com&format=jpeg")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("content type = %q", ct)
	}
}

func TestQRRejectsMalformedColor(t *testing.T) {
	w := get(t, newTestRouter(), "/api/qr?url=example.com&fg=notacolor")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestQRRejectsOversizeParam(t *testing.T) {
	w := get(t, newTestRouter(), "/api/qr?url=example.com&size=5000")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestQRRejectsTransparentForeground(t *testing.T) {
	w := get(t, newTestRouter(), "/api/qr?url=example.com&fg=transparent")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestQRRejectsUnknownStyle(t *testing.T) {
	w := get(t, newTestRouter(), "/api/qr?url=example.com&dotStyle=hexagon")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestQROverCapacity(t *testing.T) {
	long := "example.com/" + strings.Repeat("a", 3000)
	w := get(t, newTestRouter(), "/api/qr?url="+long+"&ec=L")
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", w.Code)
	}
}

func TestRenderReturnsBothOutputs(t *testing.T) {
	w := get(t, newTestRouter(), "/api/render?url=example.com")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var body struct {
		Raster string `json:"raster"`
		Vector string `json:"vector"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !strings.HasPrefix(body.Raster, "data:image/png;base64,") {
		t.Error("raster is not a PNG data URI")
	}
	if !strings.Contains(body.Vector, "<svg") {
		t.Error("vector is not an SVG document")
	}
}

func TestValidateEndpoint(t *testing.T) {
	w := get(t, newTestRouter(), "/api/validate?size=300&contentLength=19")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var report validate.Report
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if report.OverallScore < 90 {
		t.Errorf("overall score = %g, want >= 90", report.OverallScore)
	}
}

func TestValidateEndpointCapacityFail(t *testing.T) {
	w := get(t, newTestRouter(), "/api/validate?ec=L&contentLength=3000")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var report validate.Report
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	failed := false
	for _, c := range report.Checks {
		if c.ID == "capacity" && c.Status == validate.StatusFail {
			failed = true
		}
	}
	if !failed {
		t.Error("capacity check did not fail for 3000 bytes at level L")
	}
}

func TestValidateEndpointPlannedLogo(t *testing.T) {
	w := get(t, newTestRouter(), "/api/validate?hasLogo=true&logoSize=0.35")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var report validate.Report
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if report.LogoOcclusionPercent != 35 {
		t.Errorf("occlusion = %g, want 35", report.LogoOcclusionPercent)
	}
	if report.SuggestedSettings.Logo == nil || report.SuggestedSettings.Logo.SizeFraction > 0.30 {
		t.Errorf("suggested logo = %+v, want fraction <= 0.30", report.SuggestedSettings.Logo)
	}
}

func TestNormalizeHTTPURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain domain gets https", "example.com", "https://example.com", false},
		{"http preserved", "http://example.com/x", "http://example.com/x", false},
		{"empty", "", "", true},
		{"ftp rejected", "ftp://example.com", "", true},
		{"no host", "https://", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeHTTPURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("normalizeHTTPURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("normalizeHTTPURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
