// Package raster provides the image input boundary for the layout compiler.
//
// The compiler only needs integer-addressable pixels with normalized
// channel values, expressed by the [Source] interface. This package
// supplies two implementations: an adapter over the standard library's
// image types (backed by non-premultiplied NRGBA so alpha survives as
// transparency) and an in-memory source for tests and procedural images.
//
// Decoding is the caller's precondition per the compiler contract: no
// resampling, filtering, or recompression happens here. Load registers
// decoders for PNG, JPEG, BMP, TIFF, and TGA.
package raster

import (
	"image"
	"image/draw"
)

// Source is a raster exposing pixels addressable by integer coordinates
// in [0,Width) x [0,Height). Sample returns normalized channel values in
// [0,1] with alpha kept as straight (non-premultiplied) transparency.
type Source interface {
	Width() int
	Height() int
	Sample(x, y int) (r, g, b, a float64)
}

// imageSource adapts a decoded image.Image to Source.
// The backing store is always NRGBA so channel values are straight alpha.
type imageSource struct {
	img *image.NRGBA
}

// FromImage wraps a decoded image as a Source.
// Images that are not already NRGBA are redrawn into an NRGBA buffer;
// this is a representation change only, channel values are preserved.
func FromImage(img image.Image) Source {
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		b := img.Bounds()
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}
	return &imageSource{img: nrgba}
}

func (s *imageSource) Width() int  { return s.img.Bounds().Dx() }
func (s *imageSource) Height() int { return s.img.Bounds().Dy() }

func (s *imageSource) Sample(x, y int) (r, g, b, a float64) {
	c := s.img.NRGBAAt(s.img.Bounds().Min.X+x, s.img.Bounds().Min.Y+y)
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, float64(c.A) / 255
}

// Memory is an in-memory Source with float precision, useful for tests
// and procedurally generated layouts.
type Memory struct {
	W, H int
	pix  [][4]float64
}

// NewMemory creates a fully transparent w x h memory source.
func NewMemory(w, h int) *Memory {
	return &Memory{W: w, H: h, pix: make([][4]float64, w*h)}
}

// Set assigns normalized channel values to pixel (x, y).
func (m *Memory) Set(x, y int, r, g, b, a float64) {
	m.pix[y*m.W+x] = [4]float64{r, g, b, a}
}

// Width returns the pixel width.
func (m *Memory) Width() int { return m.W }

// Height returns the pixel height.
func (m *Memory) Height() int { return m.H }

// Sample returns the normalized channel values of pixel (x, y).
func (m *Memory) Sample(x, y int) (r, g, b, a float64) {
	p := m.pix[y*m.W+x]
	return p[0], p[1], p[2], p[3]
}

// Ensure both implementations satisfy Source.
var (
	_ Source = (*imageSource)(nil)
	_ Source = (*Memory)(nil)
)
