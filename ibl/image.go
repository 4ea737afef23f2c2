package ibl

import (
	"fmt"

	"ibldiffuse/libio"
)

type CubeMapFace int

// Faces are ordered by sign, then axis. face%3 is the axis, face/3 the sign.
const (
	CubeMapNegativeX = CubeMapFace(iota)
	CubeMapNegativeY
	CubeMapNegativeZ
	CubeMapPositiveX
	CubeMapPositiveY
	CubeMapPositiveZ
)

const (
	CubeMapLeft  = CubeMapNegativeX
	CubeMapDown  = CubeMapNegativeY
	CubeMapBack  = CubeMapNegativeZ
	CubeMapRight = CubeMapPositiveX
	CubeMapUp    = CubeMapPositiveY
	CubeMapFront = CubeMapPositiveZ
)

// FaceNames are the conventional file name suffixes of the faces.
var FaceNames = [6]string{"Left", "Down", "Back", "Right", "Up", "Front"}

func (f CubeMapFace) String() string {
	if f < 0 || int(f) >= len(FaceNames) {
		return fmt.Sprintf("CubeMapFace(%d)", int(f))
	}
	return FaceNames[f]
}

func (f CubeMapFace) Axis() int {
	return int(f) % 3
}

func (f CubeMapFace) Positive() bool {
	return int(f)/3 == 1
}

type CubeMap struct {
	Faces [6]*libio.FloatImage
}

// NewCubeMap allocates six black size x size RGB faces.
func NewCubeMap(size int) *CubeMap {
	cube := &CubeMap{}
	data := make([]float32, 6*size*size*3)
	o := size * size * 3
	for i := range cube.Faces {
		cube.Faces[i] = libio.NewFloatImage(data[i*o:(i+1)*o:(i+1)*o], 3, size, size)
	}
	return cube
}

// Size returns the edge length of the faces, assuming a validated cube map.
func (cube *CubeMap) Size() int {
	if cube.Faces[0] == nil {
		return 0
	}
	return cube.Faces[0].Width
}

// Rows is the total number of rows over all faces.
func (cube *CubeMap) Rows() int {
	rows := 0
	for _, f := range cube.Faces {
		rows += f.Height
	}
	return rows
}

// Validate checks that all faces are present, square, non empty and of equal size.
func (cube *CubeMap) Validate() error {
	for i, f := range cube.Faces {
		face := CubeMapFace(i)
		if f == nil {
			return fmt.Errorf("face %d (%v): %w", i, face, ErrMissingFace)
		}
		if f.Width == 0 || f.Height == 0 {
			return fmt.Errorf("face %d (%v): %w", i, face, ErrEmptyFace)
		}
		if f.Width != f.Height {
			return fmt.Errorf("face %d (%v) is %dx%d: %w", i, face, f.Width, f.Height, ErrNotSquare)
		}
		if f.Channels != 3 || len(f.Pix) != f.Width*f.Height*3 {
			return fmt.Errorf("face %d (%v) has %d channels and %d samples: %w", i, face, f.Channels, len(f.Pix), ErrBadPixelData)
		}
		first := cube.Faces[0]
		if f.Width != first.Width {
			return fmt.Errorf("face %d (%v) is %dx%d but face 0 is %dx%d: %w", i, face, f.Width, f.Height, first.Width, first.Height, ErrFaceSizeMismatch)
		}
	}
	return nil
}
