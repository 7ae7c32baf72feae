// Package qrencode adapts the external QR encoder into the module matrix the
// rendering engine consumes. The encoder itself (versions, masks, Reed-Solomon)
// is a black box; this package only extracts its dark/light grid and classifies
// over-capacity failures distinctly.
package qrencode

import (
	"errors"
	"fmt"

	qrcode "github.com/yeqown/go-qrcode/v2"

	"github.com/cristianadrielbraun/qrstudio/internal/style"
)

// ErrCapacity marks content that exceeds the symbol's byte capacity for the
// requested error correction level. Callers check it with errors.Is.
var ErrCapacity = errors.New("content exceeds symbol capacity")

// Matrix is the immutable NxN dark/light grid produced by one encode call.
type Matrix struct {
	grid  [][]bool
	count int
}

// ModuleCount returns the number of modules per side.
func (m *Matrix) ModuleCount() int { return m.count }

// Dark reports whether module (x,y) is dark. Out-of-range coordinates are light.
func (m *Matrix) Dark(x, y int) bool {
	if y < 0 || y >= m.count || x < 0 || x >= m.count {
		return false
	}
	return m.grid[y][x]
}

// DarkCount returns the total number of dark modules.
func (m *Matrix) DarkCount() int {
	n := 0
	for _, row := range m.grid {
		for _, d := range row {
			if d {
				n++
			}
		}
	}
	return n
}

// matrixSink implements qrcode.Writer to capture the encoded matrix instead
// of writing an image.
type matrixSink struct {
	grid [][]bool
}

func (s *matrixSink) Write(mat qrcode.Matrix) error {
	n := mat.Width()
	grid := make([][]bool, n)
	for i := range grid {
		grid[i] = make([]bool, n)
	}
	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		if y >= 0 && y < n && x >= 0 && x < n {
			grid[y][x] = v.IsSet()
		}
	})
	s.grid = grid
	return nil
}

func (s *matrixSink) Close() error { return nil }

func ecOption(level style.ECLevel) qrcode.EncodeOption {
	switch level {
	case style.ECLow:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionLow)
	case style.ECMedium:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium)
	case style.ECQuartile:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart)
	default:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest)
	}
}

// Encode turns content into a module matrix at the given error correction
// level. Over-capacity content fails with ErrCapacity, never a truncated
// symbol.
func Encode(content string, level style.ECLevel) (*Matrix, error) {
	if content == "" {
		return nil, fmt.Errorf("encode: content must not be empty")
	}
	if len(content) > level.Capacity() {
		return nil, fmt.Errorf("encode: %d bytes at level %s (max %d): %w",
			len(content), level, level.Capacity(), ErrCapacity)
	}

	qrc, err := qrcode.NewWith(content, ecOption(level))
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	sink := &matrixSink{}
	if err := qrc.Save(sink); err != nil {
		return nil, fmt.Errorf("encode: extract matrix: %w", err)
	}
	if len(sink.grid) == 0 {
		return nil, fmt.Errorf("encode: encoder produced an empty matrix")
	}
	return &Matrix{grid: sink.grid, count: len(sink.grid)}, nil
}
