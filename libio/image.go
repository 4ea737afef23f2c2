package libio

import (
	"errors"
	"fmt"
	goimg "image"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const MagicNumberF32 = 0x6d16837d

// Limits accepted by DecodeFloatImage.
const (
	MaxFloatImageSize     = 1 << 14
	MaxFloatImageChannels = 4
)

var ErrImageTooLarge = errors.New("image exceeds the size limit")

type FloatImageVersion uint32

const (
	F32Version1_001_000 = FloatImageVersion(1_001_000)
)

type FloatImageCompression uint32

const (
	FloatImageCompressionNone = FloatImageCompression(iota)
	FloatImageCompressionFixedPoint16Lz4
)

type image struct {
	Channels      int
	Width, Height int
}

// Calculates the tuple index into the images data.
//
// The origin (0,0) is the top left pixel, rows follow each other top to bottom.
func (img *image) Index(x, y int) int {
	return x*img.Channels + y*img.Channels*img.Width
}

func (img *image) Count() int {
	return img.Width * img.Height
}

func (img *image) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < img.Width && y < img.Height
}

type IntImage struct {
	image
	Pix []uint8
}

func NewIntImage(pix []uint8, channels int, width, height int) *IntImage {
	return &IntImage{
		Pix: pix,
		image: image{
			Channels: channels,
			Width:    width,
			Height:   height,
		},
	}
}

func (img *IntImage) ToRGBA() *goimg.RGBA {
	rgba := goimg.NewRGBA(goimg.Rect(0, 0, img.Width, img.Height))

	for i := 0; i < img.Count(); i++ {
		j := i * 4
		for c := 0; c < img.Channels && c < 4; c++ {
			rgba.Pix[j+c] = img.Pix[i*img.Channels+c]
		}
		if img.Channels < 4 {
			rgba.Pix[j+3] = 0xff
		}
	}

	return rgba
}

type FloatImageHeader struct {
	Check         uint32
	Version       FloatImageVersion
	Width, Height uint32
	Channels      uint8
	Compression   FloatImageCompression
	Unused        [14]uint8
}

// FloatImage is a dense, row-major pixel buffer with normalized samples.
// Cube faces always use three channels (RGB).
type FloatImage struct {
	image
	Pix []float32
}

func NewFloatImage(pix []float32, channels int, width, height int) *FloatImage {
	return &FloatImage{
		Pix: pix,
		image: image{
			Channels: channels,
			Width:    width,
			Height:   height,
		},
	}
}

// NewRgbImage allocates a black RGB image.
func NewRgbImage(width, height int) *FloatImage {
	return NewFloatImage(make([]float32, width*height*3), 3, width, height)
}

func (img *FloatImage) Clone() *FloatImage {
	pix := make([]float32, len(img.Pix))
	copy(pix, img.Pix)
	return NewFloatImage(pix, img.Channels, img.Width, img.Height)
}

func (img *FloatImage) checkBounds(x, y int) {
	if !img.inside(x, y) {
		panic(fmt.Errorf("pixel (%d, %d) outside of %dx%d image", x, y, img.Width, img.Height))
	}
}

// At returns the first three channels of the pixel at (x, y).
func (img *FloatImage) At(x, y int) mgl32.Vec3 {
	img.checkBounds(x, y)
	i := img.Index(x, y)
	return mgl32.Vec3{img.Pix[i+0], img.Pix[i+1], img.Pix[i+2]}
}

func (img *FloatImage) Set(x, y int, c mgl32.Vec3) {
	img.checkBounds(x, y)
	i := img.Index(x, y)
	img.Pix[i+0] = c[0]
	img.Pix[i+1] = c[1]
	img.Pix[i+2] = c[2]
}

// Row returns the samples of row y. The slice aliases the image data.
func (img *FloatImage) Row(y int) []float32 {
	img.checkBounds(0, y)
	stride := img.Width * img.Channels
	return img.Pix[y*stride : (y+1)*stride : (y+1)*stride]
}

func (img *FloatImage) ToIntImage() *IntImage {
	pix := make([]uint8, len(img.Pix))

	for i := 0; i < len(img.Pix); i++ {
		pix[i] = uint8(Clamp01(img.Pix[i])*0xff + 0.5)
	}

	return NewIntImage(pix, img.Channels, img.Width, img.Height)
}

// ToLinear converts sRGB encoded samples to linear in place.
func (img *FloatImage) ToLinear() {
	for i, v := range img.Pix {
		img.Pix[i] = SrgbToLinear(v)
	}
}

// ToSrgb converts linear samples to sRGB in place.
func (img *FloatImage) ToSrgb() {
	for i, v := range img.Pix {
		img.Pix[i] = LinearToSrgb(v)
	}
}

func Clamp01(v float32) float32 {
	return math32.Min(math32.Max(0.0, v), 1.0)
}
