package libio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/chewxy/math32"
	"github.com/pierrec/lz4/v4"
)

func EncodeFloatImage(w io.Writer, img *FloatImage, compression FloatImageCompression) (err error) {
	bw := &BinaryWriter{Dst: w, Order: binary.LittleEndian}

	header := FloatImageHeader{
		Check:       MagicNumberF32,
		Version:     F32Version1_001_000,
		Width:       uint32(img.Width),
		Height:      uint32(img.Height),
		Channels:    uint8(img.Channels),
		Compression: compression,
	}

	if !bw.WriteRef(&header) {
		return fmt.Errorf("could not write f32 header: %w", bw.Err)
	}

	switch compression {
	case FloatImageCompressionNone:
		if !bw.WriteRef(img.Pix) {
			return fmt.Errorf("could not write f32 pixels: %w", bw.Err)
		}
		return nil
	case FloatImageCompressionFixedPoint16Lz4:
		data := compressFixedPoint16(img.Channels, img.Count(), img.Pix)
		lzw := lz4.NewWriter(w)
		if err := lzw.Apply(lz4.CompressionLevelOption(lz4.Fast)); err != nil {
			return err
		}
		if _, err := lzw.Write(data); err != nil {
			return fmt.Errorf("could not write f32 encoded pixels: %w", err)
		}
		return lzw.Close()
	default:
		return fmt.Errorf("f32 compression id %d unsupported", compression)
	}
}

// Each channel is stored as its float range followed by 16 bit fractions of that range.
func compressFixedPoint16(channels int, count int, pix []float32) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, 8*channels+count*channels*2))
	bw := &BinaryWriter{Order: binary.LittleEndian, Dst: buf}
	for ch := 0; ch < channels; ch++ {
		var min, max float32 = math32.Inf(1), math32.Inf(-1)
		for i := 0; i < count; i++ {
			v := pix[i*channels+ch]
			min = math32.Min(min, v)
			max = math32.Max(max, v)
		}

		bw.WriteUInt32(math32.Float32bits(min))
		bw.WriteUInt32(math32.Float32bits(max))

		r := max - min
		for i := 0; i < count; i++ {
			var fix uint16
			if r > 0 {
				fix = uint16((pix[i*channels+ch]-min)/r*0xffff + 0.5)
			}
			bw.WriteUInt16(fix)
		}
	}
	// writes to a bytes.Buffer cannot fail
	return buf.Bytes()
}

// DecodeFloatImage reads an f32 stream. Pixel data is only allocated as it arrives.
func DecodeFloatImage(r io.Reader) (img *FloatImage, err error) {
	br := &BinaryReader{Src: r, Order: binary.LittleEndian}

	header := FloatImageHeader{}
	if !br.ReadRef(&header) {
		return nil, fmt.Errorf("expected f32 header: %w", br.Err)
	}

	if header.Check != MagicNumberF32 {
		return nil, fmt.Errorf("f32 header is corrupt")
	}

	if header.Version != F32Version1_001_000 {
		return nil, fmt.Errorf("f32 version %d unsupported", header.Version)
	}

	if header.Width > MaxFloatImageSize || header.Height > MaxFloatImageSize {
		return nil, fmt.Errorf("f32 image %dx%d exceeds %dx%d: %w", header.Width, header.Height, MaxFloatImageSize, MaxFloatImageSize, ErrImageTooLarge)
	}
	if header.Channels < 1 || header.Channels > MaxFloatImageChannels {
		return nil, fmt.Errorf("f32 image has %d channels, expected 1 to %d", header.Channels, MaxFloatImageChannels)
	}

	channels := int(header.Channels)
	count := int(header.Width) * int(header.Height)
	var data []float32

	switch header.Compression {
	case FloatImageCompressionNone:
		var raw []byte
		raw, err = readExactly(br, int64(count*channels)*4)
		if err != nil {
			break
		}
		data = make([]float32, count*channels)
		err = binary.Read(bytes.NewReader(raw), binary.LittleEndian, data)
	case FloatImageCompressionFixedPoint16Lz4:
		var buf []byte
		buf, err = readExactly(lz4.NewReader(br), int64(8*channels+count*channels*2))
		if err != nil {
			break
		}
		data, err = decompressFixedPoint16(channels, count, buf)
	default:
		err = fmt.Errorf("compression id %d unsupported", header.Compression)
	}

	if err != nil {
		return nil, fmt.Errorf("could not decompress f32 pixels; byte 0x%08x: %w", br.Index, err)
	}

	return NewFloatImage(data, channels, int(header.Width), int(header.Height)), nil
}

// readExactly reads n bytes, growing the buffer only as data arrives.
func readExactly(r io.Reader, n int64) ([]byte, error) {
	buf := &bytes.Buffer{}
	read, err := io.CopyN(buf, r, n)
	if read < n && (err == nil || err == io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompressFixedPoint16(channels, count int, data []byte) ([]float32, error) {
	result := make([]float32, count*channels)
	br := &BinaryReader{
		Src:   bytes.NewReader(data),
		Order: binary.LittleEndian,
	}
	fixed := make([]uint16, count)
	for ch := 0; ch < channels; ch++ {
		var imin, imax int
		br.ReadUInt32(&imin)
		br.ReadUInt32(&imax)
		br.ReadRef(fixed)
		if br.Err != nil {
			return nil, br.Err
		}

		min := math32.Float32frombits(uint32(imin))
		max := math32.Float32frombits(uint32(imax))
		r := max - min
		for i, fix := range fixed {
			result[i*channels+ch] = (float32(fix)/0xffff)*r + min
		}
	}
	return result, nil
}
