package ibl

// these functions are only exported when running tests

var EncodeRgbeChunk = encodeRgbeChunk
var DecodeRgbeChunk = decodeRgbeChunk
var SampleBicubic = sampleBicubic
var CubicHermite = cubicHermite
var RowAddress = rowAddress

func RunParallel(units, workers int, work func(unit int), onDone func(done int)) {
	runParallel(units, workers, work, onDone)
}
