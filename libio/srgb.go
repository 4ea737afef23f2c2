package libio

import "github.com/chewxy/math32"

func SrgbToLinear(v float32) float32 {
	if v < 0.04045 {
		return v / 12.92
	}
	return math32.Pow((v+0.055)/1.055, 2.4)
}

func LinearToSrgb(v float32) float32 {
	if v < 0.0031308 {
		return v * 12.92
	}
	return math32.Pow(v, 1.0/2.4)*1.055 - 0.055
}
