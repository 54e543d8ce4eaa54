// Package editor collects crop, filter and quality parameters for one
// source image and produces the edit specification the processing service
// replays. The preview it renders is advisory only; the service output is
// authoritative.
package editor

import (
	"fmt"
	"image"
	"io"
	"math"
	"net/http"
	"os"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/dojoworks/dojosite/cms/domain"
	"github.com/dojoworks/dojosite/cms/pipeline"
)

// Rect is a crop selection in display-pixel coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// MinCropSize is the smallest allowed crop selection edge, in display
// pixels. Smaller selections are bumped up, not rejected.
const MinCropSize = 50

// filterRanges mirrors the admin slider bounds; out-of-range values are
// clamped, not rejected.
var filterRanges = map[string][2]float64{
	"brightness": {0.5, 2},
	"contrast":   {0.5, 2},
	"saturation": {0, 2},
	"blur":       {0, 10},
	"sharpen":    {0, 5},
}

// Editor holds the state of one interactive edit session: a loaded source,
// an optional committed crop (stored in natural source pixels), the filter
// set, scale and output quality. A single session edits a single image;
// there is no internal concurrency.
type Editor struct {
	src      image.Image
	naturalW int
	naturalH int
	displayW int
	displayH int

	aspect  float64 // locked width:height ratio, 0 = free
	crop    *domain.CropRect
	filters domain.Filters
	quality int
	scale   float64
	rotate  int // display-only, never part of the specification
}

// New returns an editor with neutral defaults and no source loaded.
func New() *Editor {
	return &Editor{
		filters: domain.NeutralFilters(),
		quality: pipeline.DefaultQuality,
		scale:   1,
	}
}

// Load decodes a source image from r. Any previously committed crop is
// dropped since it belonged to the old source.
func (e *Editor) Load(r io.Reader) error {
	img, err := imaging.Decode(r)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnsupportedSource, err)
	}

	b := img.Bounds()
	e.src = img
	e.naturalW = b.Dx()
	e.naturalH = b.Dy()
	// Shown 1:1 until the caller reports a viewport.
	e.displayW = b.Dx()
	e.displayH = b.Dy()
	e.crop = nil
	return nil
}

// LoadSource accepts either a local file path or an http(s) URL, since
// editing happens both for fresh uploads and previously saved gallery
// images.
func (e *Editor) LoadSource(source string) error {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source)
		if err != nil {
			return fmt.Errorf("%w: fetch %s: %v", domain.ErrUnsupportedSource, source, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%w: fetch %s: status %d", domain.ErrUnsupportedSource, source, resp.StatusCode)
		}
		return e.Load(resp.Body)
	}

	f, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", domain.ErrUnsupportedSource, source, err)
	}
	defer f.Close()
	return e.Load(f)
}

// SetDisplaySize records the dimensions the source is being shown at so
// crop selections can be mapped back to natural pixels.
func (e *Editor) SetDisplaySize(w, h int) error {
	if e.src == nil {
		return fmt.Errorf("no source loaded")
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("display size %dx%d must be positive", w, h)
	}
	e.displayW, e.displayH = w, h
	return nil
}

// SetAspectLock constrains subsequent crop selections to a fixed
// width:height ratio. A ratio of 0 lifts the constraint.
func (e *Editor) SetAspectLock(ratio float64) {
	if ratio < 0 {
		ratio = 0
	}
	e.aspect = ratio
}

// SetCropRegion commits a crop selection expressed in display coordinates.
// The selection is bumped to the minimum size, squared to the aspect lock
// and clamped inside the display bounds, then converted to natural pixels
// using the exact natural/display ratio. The service replays that region
// server-side, so the conversion keeps full float precision.
func (e *Editor) SetCropRegion(r Rect) error {
	if e.src == nil {
		return fmt.Errorf("no source loaded")
	}

	if r.Width < MinCropSize {
		r.Width = MinCropSize
	}
	if r.Height < MinCropSize {
		r.Height = MinCropSize
	}
	if e.aspect > 0 {
		r.Height = r.Width / e.aspect
		if r.Height < MinCropSize {
			r.Height = MinCropSize
			r.Width = r.Height * e.aspect
		}
	}

	maxW, maxH := float64(e.displayW), float64(e.displayH)
	if r.Width > maxW {
		r.Width = maxW
	}
	if r.Height > maxH {
		r.Height = maxH
	}
	if r.X < 0 {
		r.X = 0
	}
	if r.Y < 0 {
		r.Y = 0
	}
	if r.X+r.Width > maxW {
		r.X = maxW - r.Width
	}
	if r.Y+r.Height > maxH {
		r.Y = maxH - r.Height
	}

	scaleX := float64(e.naturalW) / float64(e.displayW)
	scaleY := float64(e.naturalH) / float64(e.displayH)
	e.crop = &domain.CropRect{
		X:      r.X * scaleX,
		Y:      r.Y * scaleY,
		Width:  r.Width * scaleX,
		Height: r.Height * scaleY,
	}
	return nil
}

// SetFilter updates one of brightness, contrast, saturation, blur or
// sharpen, clamping the value to the filter's valid range.
func (e *Editor) SetFilter(name string, value float64) error {
	bounds, ok := filterRanges[name]
	if !ok {
		return fmt.Errorf("unknown filter %q", name)
	}
	value = math.Min(math.Max(value, bounds[0]), bounds[1])

	switch name {
	case "brightness":
		e.filters.Brightness = value
	case "contrast":
		e.filters.Contrast = value
	case "saturation":
		e.filters.Saturation = value
	case "blur":
		e.filters.Blur = value
	case "sharpen":
		e.filters.Sharpen = value
	}
	return nil
}

// SetQuality sets the output encoding quality, clamped to 1-100.
func (e *Editor) SetQuality(percent int) {
	if percent < 1 {
		percent = 1
	}
	if percent > 100 {
		percent = 100
	}
	e.quality = percent
}

// SetScale sets the resize factor applied to the natural dimensions,
// clamped to 0.5-2. A factor of 1 omits the resize target entirely.
func (e *Editor) SetScale(scale float64) {
	e.scale = math.Min(math.Max(scale, 0.5), 2)
}

// SetRotation records a display-only rotation. Rotation never enters the
// edit specification.
func (e *Editor) SetRotation(degrees int) {
	e.rotate = degrees
}

// RenderPreview renders the committed crop and filters against the loaded
// source with the same kernels the service uses. Each call supersedes the
// previous preview; only the latest result is meaningful.
func (e *Editor) RenderPreview() (image.Image, error) {
	if e.src == nil {
		return nil, fmt.Errorf("no source loaded")
	}
	return pipeline.Render(e.src, e.specification())
}

// BuildSpecification returns the finalized edit specification for the save
// request. A crop must have been committed first.
func (e *Editor) BuildSpecification() (domain.EditSpec, error) {
	if e.crop == nil {
		return domain.EditSpec{}, domain.ErrIncompleteCrop
	}
	return e.specification(), nil
}

// Reset returns filters, scale, rotation and quality to their neutral
// defaults. The loaded source and committed crop are kept.
func (e *Editor) Reset() {
	e.filters = domain.NeutralFilters()
	e.scale = 1
	e.rotate = 0
	e.quality = pipeline.DefaultQuality
}

func (e *Editor) specification() domain.EditSpec {
	spec := domain.EditSpec{
		Filters: e.filters,
		Quality: e.quality,
	}
	if e.crop != nil {
		crop := *e.crop
		spec.Crop = &crop
	}
	if e.scale != 1 {
		spec.Resize = &domain.Dimensions{
			Width:  int(math.Round(float64(e.naturalW) * e.scale)),
			Height: int(math.Round(float64(e.naturalH) * e.scale)),
		}
	}
	return spec
}
