// Package imaging shrinks inline images before they are stored.
package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"strings"

	// Registered decoders.
	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// MaxPixels bounds the decoded size of an input image.
const MaxPixels = 40_000_000

var (
	// ErrNotDataURL is returned for inputs that are not base64 data URLs.
	ErrNotDataURL = errors.New("not a base64 data URL")
	// ErrTooManyPixels is returned before decoding an image whose header
	// declares more than MaxPixels pixels.
	ErrTooManyPixels = errors.New("image exceeds pixel budget")
)

// Compressor re-encodes images as JPEG, fitting them in a square of
// MaxDimension pixels.
type Compressor struct {
	maxDimension int
	quality      int
}

// NewCompressor returns a Compressor. quality is the JPEG quality 1..100.
func NewCompressor(maxDimension, quality int) *Compressor {
	if quality < 1 || quality > 100 {
		quality = jpeg.DefaultQuality
	}
	return &Compressor{maxDimension: maxDimension, quality: quality}
}

// Compress decodes dataURL, downscales it and returns a JPEG data URL.
// When re-encoding does not make the image smaller the input is returned.
func (c *Compressor) Compress(ctx context.Context, dataURL string) (string, error) {
	raw, err := decodeDataURL(dataURL)
	if err != nil {
		return "", err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("decode image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return "", fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}

	src, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dst := c.resize(src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: c.quality}); err != nil {
		return "", fmt.Errorf("encode %s as jpeg: %w", format, err)
	}

	out := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	if len(out) >= len(dataURL) {
		return dataURL, nil
	}
	return out, nil
}

// resize fits src into maxDimension on a white background.
func (c *Compressor) resize(src image.Image) *image.RGBA {
	b := src.Bounds()
	w, h := fit(b.Dx(), b.Dy(), c.maxDimension)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// fit scales w x h down so the longer side is at most limit, keeping the
// aspect ratio. Non-positive limit leaves the size unchanged.
func fit(w, h, limit int) (int, int) {
	if limit <= 0 || (w <= limit && h <= limit) {
		return w, h
	}
	if w >= h {
		return limit, max(1, h*limit/w)
	}
	return max(1, w*limit/h), limit
}

func decodeDataURL(dataURL string) ([]byte, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return nil, ErrNotDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, ErrNotDataURL
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotDataURL, err)
	}
	return raw, nil
}
