package util

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrNotPGM is returned when an image file does not carry a binary PGM header.
var ErrNotPGM = errors.New("not a pgm file")

// Cell is a coordinate on the board, used by events and pattern loaders.
type Cell struct {
	X, Y int
}

// ReadAliveCells reads a binary (P5) PGM image and returns the coordinates
// of every non-zero pixel. The image must be exactly width x height.
func ReadAliveCells(path string, width, height int) ([]Cell, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseAliveCells(data, width, height)
}

// ParseAliveCells does the work of ReadAliveCells on an in-memory image.
func ParseAliveCells(data []byte, width, height int) ([]Cell, error) {
	// Header is "P5 <width> <height> <maxval>" followed by a single whitespace byte
	header := make([]string, 0, 4)
	pos := 0
	for len(header) < 4 {
		// Skip whitespace between fields
		for pos < len(data) && isSpace(data[pos]) {
			pos++
		}
		start := pos
		for pos < len(data) && !isSpace(data[pos]) {
			pos++
		}
		if start == pos {
			return nil, fmt.Errorf("%w: truncated header", ErrNotPGM)
		}
		header = append(header, string(data[start:pos]))
	}
	// Exactly one whitespace byte separates the header from the raster
	pos++

	if header[0] != "P5" {
		return nil, ErrNotPGM
	}

	imageWidth, err := strconv.Atoi(header[1])
	if err != nil || imageWidth != width {
		return nil, fmt.Errorf("incorrect width %q, want %d", header[1], width)
	}

	imageHeight, err := strconv.Atoi(header[2])
	if err != nil || imageHeight != height {
		return nil, fmt.Errorf("incorrect height %q, want %d", header[2], height)
	}

	maxval, err := strconv.Atoi(strings.TrimSpace(header[3]))
	if err != nil || maxval != 255 {
		return nil, fmt.Errorf("incorrect maxval/bit depth %q", header[3])
	}

	if pos > len(data) || len(data)-pos < width*height {
		return nil, fmt.Errorf("%w: raster has %d bytes, want %d", ErrNotPGM, len(data)-pos, width*height)
	}
	image := data[pos:]

	var cells []Cell
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if image[y*width+x] != 0 {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}
	return cells, nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\r' || b == '\t'
}
