package ibl

import (
	"fmt"

	"ibldiffuse/libio"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// cubicHermite interpolates between b (t=0) and c (t=1), a and d shape the slopes.
// See: https://blog.demofox.org/2015/08/15/resizing-images-with-bicubic-interpolation/
func cubicHermite(a, b, c, d, t float32) float32 {
	ca := -a/2.0 + (3.0*b)/2.0 - (3.0*c)/2.0 + d/2.0
	cb := a - (5.0*b)/2.0 + 2.0*c - d/2.0
	cc := -a/2.0 + c/2.0
	cd := b

	return ca*t*t*t + cb*t*t + cc*t + cd
}

func clampPixel(img *libio.FloatImage, x, y int) (int, int) {
	if x < 0 {
		x = 0
	} else if x >= img.Width {
		x = img.Width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= img.Height {
		y = img.Height - 1
	}
	return x, y
}

// sampleBicubic samples img at the normalized coordinate (u, v).
// Coordinates outside the image repeat the border, the result is clamped to [0,1].
func sampleBicubic(img *libio.FloatImage, u, v float32) mgl32.Vec3 {
	// -0.5 to adjust for the pixel center offset
	x := u*float32(img.Width) - 0.5
	y := v*float32(img.Height) - 0.5
	xfloor := math32.Floor(x)
	yfloor := math32.Floor(y)
	xfract := x - xfloor
	yfract := y - yfloor
	xint, yint := int(xfloor), int(yfloor)

	var p [4][4]mgl32.Vec3
	for j := 0; j < 4; j++ {
		for i := 0; i < 4; i++ {
			p[j][i] = img.At(clampPixel(img, xint+i-1, yint+j-1))
		}
	}

	var result mgl32.Vec3
	for c := 0; c < 3; c++ {
		var col [4]float32
		for j := 0; j < 4; j++ {
			col[j] = cubicHermite(p[j][0][c], p[j][1][c], p[j][2][c], p[j][3][c], xfract)
		}
		result[c] = libio.Clamp01(cubicHermite(col[0], col[1], col[2], col[3], yfract))
	}
	return result
}

// Downsize repeatedly halves the resolution of a square image until it is at most size.
// Each step at most halves the resolution.
// Images that are already small enough are returned as is. Sizes below 1 count as 1.
func Downsize(img *libio.FloatImage, size int) *libio.FloatImage {
	if size < 1 {
		size = 1
	}
	for img.Width > size {
		newSize := img.Width / 2
		if newSize < size {
			newSize = size
		}

		next := libio.NewRgbImage(newSize, newSize)
		for y := 0; y < newSize; y++ {
			v := TexelCenter(y, newSize)
			for x := 0; x < newSize; x++ {
				next.Set(x, y, sampleBicubic(img, TexelCenter(x, newSize), v))
			}
		}

		img = next
	}
	return img
}

type swResizer struct {
	threads int
}

// NewSwResizer creates a Resizer that downsizes one face per worker.
func NewSwResizer(options ...ConvolveOption) Resizer {
	cfg := newConvolveConfig(options)
	return &swResizer{threads: cfg.threads}
}

func (resizer *swResizer) Resize(cube *CubeMap, size int) (*CubeMap, error) {
	if err := cube.Validate(); err != nil {
		return nil, err
	}
	if size < 1 {
		return nil, fmt.Errorf("cannot resize to %d pixels: %w", size, ErrEmptyFace)
	}
	return downsizeCubeMap(cube, size, resizer.threads, nil), nil
}

func (resizer *swResizer) Release() {
}

// downsizeCubeMap returns a new cube map, the faces of cube are not modified.
func downsizeCubeMap(cube *CubeMap, size, threads int, onDone func(done int)) *CubeMap {
	result := &CubeMap{}
	runParallel(len(cube.Faces), threads, func(face int) {
		result.Faces[face] = Downsize(cube.Faces[face], size)
	}, onDone)
	return result
}
