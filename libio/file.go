package libio

import (
	"errors"
	"fmt"
	goimg "image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

type codec struct {
	decode func(r io.Reader) (goimg.Image, error)
	encode func(w io.Writer, img goimg.Image) error
}

var codecs = map[string]codec{
	".png":  {png.Decode, png.Encode},
	".jpg":  {jpeg.Decode, encodeJpeg},
	".jpeg": {jpeg.Decode, encodeJpeg},
	".bmp":  {bmp.Decode, bmp.Encode},
	".tif":  {tiff.Decode, encodeTiff},
	".tiff": {tiff.Decode, encodeTiff},
}

func encodeJpeg(w io.Writer, img goimg.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
}

func encodeTiff(w io.Writer, img goimg.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}

func IsSupported(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	_, ok := codecs[ext]
	return ok || ext == ".f32"
}

// LoadImage reads an image file and returns its pixels as normalized RGB samples.
// The format is chosen by file extension.
func LoadImage(p string) (*FloatImage, error) {
	ext := strings.ToLower(filepath.Ext(p))
	c, ok := codecs[ext]
	if !ok && ext != ".f32" {
		return nil, fmt.Errorf("%q: %w", p, ErrUnsupportedFormat)
	}

	file, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if ext == ".f32" {
		img, err := DecodeFloatImage(file)
		if err != nil {
			return nil, fmt.Errorf("could not decode %q: %w", p, err)
		}
		if img.Channels != 3 {
			return nil, fmt.Errorf("%q has %d channels, expected 3", p, img.Channels)
		}
		return img, nil
	}

	src, err := c.decode(file)
	if err != nil {
		return nil, fmt.Errorf("could not decode %q: %w", p, err)
	}

	return FromImage(src), nil
}

// SaveImage writes img, clamped to [0,1], in the format matching the file extension.
// A partially written file is removed on error.
func SaveImage(p string, img *FloatImage) (err error) {
	ext := strings.ToLower(filepath.Ext(p))
	c, ok := codecs[ext]
	if !ok && ext != ".f32" {
		return fmt.Errorf("%q: %w", p, ErrUnsupportedFormat)
	}

	file, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}
	defer func() {
		cerr := file.Close()
		if err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(p)
		}
	}()

	if ext == ".f32" {
		return EncodeFloatImage(file, img, FloatImageCompressionFixedPoint16Lz4)
	}

	return c.encode(file, img.ToIntImage().ToRGBA())
}

// FromImage converts any image to a normalized RGB FloatImage with a top left origin.
// Alpha is dropped, color channels are taken without premultiplication.
func FromImage(src goimg.Image) *FloatImage {
	b := src.Bounds()
	img := NewRgbImage(b.Dx(), b.Dy())

	var pix []uint8
	var stride int
	switch src := src.(type) {
	case *goimg.NRGBA:
		pix, stride = src.Pix, src.Stride
	case *goimg.RGBA:
		if src.Opaque() {
			pix, stride = src.Pix, src.Stride
		}
	}

	if pix != nil {
		for y := 0; y < img.Height; y++ {
			row := pix[y*stride:]
			for x := 0; x < img.Width; x++ {
				i := img.Index(x, y)
				img.Pix[i+0] = float32(row[x*4+0]) / 0xff
				img.Pix[i+1] = float32(row[x*4+1]) / 0xff
				img.Pix[i+2] = float32(row[x*4+2]) / 0xff
			}
		}
		return img
	}

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := color.NRGBA64Model.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA64)
			i := img.Index(x, y)
			img.Pix[i+0] = float32(c.R) / 0xffff
			img.Pix[i+1] = float32(c.G) / 0xffff
			img.Pix[i+2] = float32(c.B) / 0xffff
		}
	}
	return img
}
