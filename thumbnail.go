package goosu

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"mime"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

// Thumbnail returns the beatmap's background scaled to fit in a maxDim
// square, together with its content type. Images that already fit are
// returned unchanged.
func Thumbnail(b Beatmap, maxDim int) ([]byte, string, error) {
	if maxDim < 1 {
		return nil, "", fmt.Errorf("invalid thumbnail size %d", maxDim)
	}
	data, err := os.ReadFile(b.BackgroundFile)
	if err != nil {
		return nil, "", fmt.Errorf("background read error: %w", err)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("background decode error: %w", err)
	}

	bounds := img.Bounds()
	newW, newH := resizeDimensions(bounds.Dx(), bounds.Dy(), maxDim)
	if newW == bounds.Dx() && newH == bounds.Dy() {
		return data, mime.TypeByExtension(filepath.Ext(b.BackgroundFile)), nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var out bytes.Buffer
	if format == "png" {
		if err := png.Encode(&out, dst); err != nil {
			return nil, "", fmt.Errorf("png encode error: %w", err)
		}
		return out.Bytes(), "image/png", nil
	}
	if err := jpeg.Encode(&out, dst, &jpeg.Options{Quality: 85}); err != nil {
		return nil, "", fmt.Errorf("jpeg encode error: %w", err)
	}
	return out.Bytes(), "image/jpeg", nil
}

func resizeDimensions(width, height, maxDim int) (int, int) {
	if width <= maxDim && height <= maxDim {
		return width, height
	}
	if width >= height {
		newH := height * maxDim / width
		if newH < 1 {
			newH = 1
		}
		return maxDim, newH
	}
	newW := width * maxDim / height
	if newW < 1 {
		newW = 1
	}
	return newW, maxDim
}
