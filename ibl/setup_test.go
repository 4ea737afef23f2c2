package ibl_test

import (
	"math/rand"

	"ibldiffuse/ibl"
	"ibldiffuse/libio"

	"github.com/go-gl/mathgl/mgl32"
)

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func randomFloats(count int, min, max float32) []float32 {
	rng := rand.New(rand.NewSource(0))
	ret := make([]float32, count)
	for i := range ret {
		ret[i] = rng.Float32()*(max-min) + min
	}
	return ret
}

func uniformCube(size int, color mgl32.Vec3) *ibl.CubeMap {
	cube := ibl.NewCubeMap(size)
	for _, face := range cube.Faces {
		for i := 0; i < face.Count(); i++ {
			face.Pix[i*3+0] = color[0]
			face.Pix[i*3+1] = color[1]
			face.Pix[i*3+2] = color[2]
		}
	}
	return cube
}

func randomCube(size int) *ibl.CubeMap {
	cube := ibl.NewCubeMap(size)
	data := randomFloats(6*size*size*3, 0, 1)
	for i, face := range cube.Faces {
		copy(face.Pix, data[i*len(face.Pix):])
	}
	return cube
}

func randomNormals(count int) []mgl32.Vec3 {
	rng := rand.New(rand.NewSource(1))
	normals := make([]mgl32.Vec3, 0, count)
	for len(normals) < count {
		n := mgl32.Vec3{rng.Float32()*2 - 1, rng.Float32()*2 - 1, rng.Float32()*2 - 1}
		if l := n.Len(); l > 0.1 && l <= 1 {
			normals = append(normals, n.Normalize())
		}
	}
	return normals
}

func forEachPixel(cube *ibl.CubeMap, cb func(face, x, y int, c mgl32.Vec3)) {
	for f, img := range cube.Faces {
		for y := 0; y < img.Height; y++ {
			for x := 0; x < img.Width; x++ {
				cb(f, x, y, img.At(x, y))
			}
		}
	}
}

func maxAbsDiff(a, b *libio.FloatImage) float32 {
	var max float32
	for i := range a.Pix {
		d := a.Pix[i] - b.Pix[i]
		if d < 0 {
			d = -d
		}
		if d > max {
			max = d
		}
	}
	return max
}
