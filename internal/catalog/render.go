package catalog

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	xdraw "golang.org/x/image/draw"
)

// Dimensions holds the target boxes for thumbnail and full renditions and the
// height-to-width ratio of the display they are shown on.
type Dimensions struct {
	ThumbWidth    int
	ThumbHeight   int
	FullWidth     int
	FullHeight    int
	HeightToWidth float64
}

// DefaultDimensions matches the kiosk display: a 0.5625 ratio with 158x88
// thumbnails and a 750x421 center pane.
func DefaultDimensions() Dimensions {
	return Dimensions{
		ThumbWidth:    158,
		ThumbHeight:   88,
		FullWidth:     750,
		FullHeight:    421,
		HeightToWidth: 0.5625,
	}
}

// ScaledSize computes the proportional size of a srcW x srcH image fitted to a
// boxW x boxH target. Sources at least as tall as ratio are scaled to the box
// height with a free width; flatter sources are scaled to the box width with a
// free height.
func ScaledSize(srcW, srcH, boxW, boxH int, ratio float64) (int, int) {
	if srcW <= 0 || srcH <= 0 {
		return 0, 0
	}
	if float64(srcH)/float64(srcW) >= ratio {
		w := int(math.Round(float64(srcW) * float64(boxH) / float64(srcH)))
		return max(w, 1), boxH
	}
	h := int(math.Round(float64(srcH) * float64(boxW) / float64(srcW)))
	return boxW, max(h, 1)
}

// Thumbnail returns the thumbnail rendition, decoding the source on first
// use. The same decode also fills the full rendition unless another caller is
// producing it, in which case the thumbnail does not wait. A failed decode
// leaves nothing cached so the next call retries.
func (m *MediaItem) Thumbnail() (image.Image, error) {
	m.thumbMu.Lock()
	defer m.thumbMu.Unlock()
	if m.thumb != nil {
		return m.thumb, nil
	}
	src, err := decodeFile(m.source)
	if err != nil {
		return nil, err
	}
	img, err := m.scale(src, m.dims.ThumbWidth, m.dims.ThumbHeight)
	if err != nil {
		return nil, err
	}
	m.thumb = img
	if m.fullMu.TryLock() {
		if m.full == nil {
			m.full, _ = m.scale(src, m.dims.FullWidth, m.dims.FullHeight)
		}
		m.fullMu.Unlock()
	}
	return img, nil
}

// Full returns the full (center pane) rendition, blocking until it is
// decoded. Like Thumbnail it fills the other rendition from the same decode
// when that one is free.
func (m *MediaItem) Full() (image.Image, error) {
	m.fullMu.Lock()
	defer m.fullMu.Unlock()
	if m.full != nil {
		return m.full, nil
	}
	src, err := decodeFile(m.source)
	if err != nil {
		return nil, err
	}
	img, err := m.scale(src, m.dims.FullWidth, m.dims.FullHeight)
	if err != nil {
		return nil, err
	}
	m.full = img
	if m.thumbMu.TryLock() {
		if m.thumb == nil {
			m.thumb, _ = m.scale(src, m.dims.ThumbWidth, m.dims.ThumbHeight)
		}
		m.thumbMu.Unlock()
	}
	return img, nil
}

// Materialized reports which renditions are already cached.
func (m *MediaItem) Materialized() (thumb, full bool) {
	m.thumbMu.Lock()
	thumb = m.thumb != nil
	m.thumbMu.Unlock()
	m.fullMu.Lock()
	full = m.full != nil
	m.fullMu.Unlock()
	return thumb, full
}

func (m *MediaItem) scale(src image.Image, boxW, boxH int) (image.Image, error) {
	bounds := src.Bounds()
	w, h := ScaledSize(bounds.Dx(), bounds.Dy(), boxW, boxH, m.dims.HeightToWidth)
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: %s: empty image", ErrDecode, m.source)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, xdraw.Src, nil)
	return dst, nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	return img, nil
}
