// Package pipeline applies edit specifications to decoded images. The
// operation order is fixed (crop, resize, brightness, contrast, saturation,
// blur, sharpen, encode) so a stored specification always reproduces the
// same derived image.
package pipeline

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/dojoworks/dojosite/cms/domain"
)

// DefaultQuality is the JPEG quality used when a specification leaves it
// unset.
const DefaultQuality = 85

// Render applies crop, resize and the filter chain from spec to src. Each
// filter runs only when its value differs from neutral, so an empty
// specification is a passthrough.
func Render(src image.Image, spec domain.EditSpec) (*image.NRGBA, error) {
	img := imaging.Clone(src)

	if spec.Crop != nil {
		rect, err := cropRect(img.Bounds(), *spec.Crop)
		if err != nil {
			return nil, err
		}
		img = imaging.Crop(img, rect)
	}

	if spec.Resize != nil && spec.Resize.Width > 0 && spec.Resize.Height > 0 {
		// Fit scales down to the box preserving aspect ratio and never
		// enlarges past the current (possibly cropped) dimensions.
		img = imaging.Fit(img, spec.Resize.Width, spec.Resize.Height, imaging.Lanczos)
	}

	f := spec.Filters
	if f.Brightness != 1 {
		img = adjustLinear(img, f.Brightness, 0)
	}
	if f.Contrast != 1 {
		// Anchored at mid-gray: out = in*c + 128*(1-c). A factor of 1 is an
		// exact no-op and a factor of 0 maps every pixel to 128.
		img = adjustLinear(img, f.Contrast, 128*(1-f.Contrast))
	}
	if f.Saturation != 1 {
		img = imaging.AdjustSaturation(img, (f.Saturation-1)*100)
	}
	if f.Blur > 0 {
		img = imaging.Blur(img, f.Blur)
	}
	if f.Sharpen > 0 {
		img = imaging.Sharpen(img, f.Sharpen)
	}

	return img, nil
}

// EncodeJPEG flattens img to JPEG at the given quality (DefaultQuality when
// quality is zero or negative).
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	if quality <= 0 {
		quality = DefaultQuality
	}
	if quality > 100 {
		quality = 100
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("%w: encode: %v", domain.ErrProcessing, err)
	}
	return buf.Bytes(), nil
}

// cropRect rounds each coordinate to the nearest whole pixel independently.
// Width and height are rounded on their own rather than derived from the
// rounded opposite corners, so the output dimensions match the rounded
// request exactly.
func cropRect(bounds image.Rectangle, c domain.CropRect) (image.Rectangle, error) {
	x := int(math.Round(c.X))
	y := int(math.Round(c.Y))
	w := int(math.Round(c.Width))
	h := int(math.Round(c.Height))

	rect := image.Rect(x, y, x+w, y+h)
	if w <= 0 || h <= 0 || !rect.In(bounds) {
		return image.Rectangle{}, fmt.Errorf("%w: crop %v outside source bounds %v", domain.ErrProcessing, rect, bounds)
	}
	return rect, nil
}

// adjustLinear maps every channel through out = in*factor + offset.
func adjustLinear(img image.Image, factor, offset float64) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		c.R = clamp8(float64(c.R)*factor + offset)
		c.G = clamp8(float64(c.G)*factor + offset)
		c.B = clamp8(float64(c.B)*factor + offset)
		return c
	})
}

func clamp8(v float64) uint8 {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return uint8(v + 0.5)
}
