package libio_test

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"ibldiffuse/libio"
)

func TestBinaryRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	bw := &libio.BinaryWriter{Dst: buf, Order: binary.LittleEndian}

	bw.WriteUInt32(0xdeadbeef)
	bw.WriteUInt16(0x1234)
	bw.WriteRef([]float32{1.5, -2})
	bw.WriteBytes([]byte{7})
	if bw.Err != nil {
		t.Fatal(bw.Err)
	}
	if buf.Len() != 4+2+8+1 {
		t.Fatalf("should write 15 bytes but wrote %d\n", buf.Len())
	}

	br := &libio.BinaryReader{Src: buf, Order: binary.LittleEndian}
	var u32, u16 int
	floats := make([]float32, 2)
	br.ReadUInt32(&u32)
	br.ReadUInt16(&u16)
	br.ReadRef(floats)
	if br.Err != nil {
		t.Fatal(br.Err)
	}
	if u32 != 0xdeadbeef || u16 != 0x1234 || floats[0] != 1.5 || floats[1] != -2 {
		t.Errorf("read %x %x %v\n", u32, u16, floats)
	}
	if br.Index != 14 {
		t.Errorf("reader should be at byte 14 but is at %d\n", br.Index)
	}
}

func TestBinaryReaderStickyError(t *testing.T) {
	br := &libio.BinaryReader{Src: bytes.NewReader([]byte{1, 2, 3}), Order: binary.LittleEndian}

	var v int
	if br.ReadUInt32(&v) {
		t.Errorf("reading 4 of 3 bytes should fail\n")
	}
	if br.Err != io.ErrUnexpectedEOF {
		t.Errorf("error should be %v but is %v\n", io.ErrUnexpectedEOF, br.Err)
	}
	if br.ReadUInt16(&v) {
		t.Errorf("reads after an error should fail\n")
	}
}

type failingWriter struct {
	calls int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, io.ErrShortWrite
}

func TestBinaryWriterStickyError(t *testing.T) {
	dst := &failingWriter{}
	bw := &libio.BinaryWriter{Dst: dst, Order: binary.LittleEndian}

	var w io.Writer = bw
	if _, err := w.Write([]byte{1}); err != io.ErrShortWrite {
		t.Errorf("error should be %v but is %v\n", io.ErrShortWrite, err)
	}
	if _, err := w.Write([]byte{2}); err != io.ErrShortWrite || dst.calls != 1 {
		t.Errorf("writes after an error should fail without reaching the destination, %d calls\n", dst.calls)
	}
	if bw.WriteUInt32(3) {
		t.Errorf("typed writes after an error should fail\n")
	}
}

func TestBinaryReaderCountsReads(t *testing.T) {
	br := &libio.BinaryReader{Src: bytes.NewReader(make([]byte, 10)), Order: binary.LittleEndian}
	var v int
	br.ReadUInt16(&v)
	data, err := io.ReadAll(br)
	if err != nil || len(data) != 8 || br.Index != 10 {
		t.Errorf("reading the rest should give 8 bytes at index 10 but gave %d at %d: %v\n", len(data), br.Index, err)
	}
}
