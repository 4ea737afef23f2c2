package libio

import (
	"encoding/binary"
	"io"
)

// BinaryReader reads fixed size values and remembers the first error.
// All reads after an error are no-ops returning false.
type BinaryReader struct {
	Order     binary.ByteOrder
	Src       io.Reader
	Index     int
	LastIndex int
	Err       error
	buf       [4]byte
}

func (br *BinaryReader) readN(n int) bool {
	if br.Err != nil {
		return false
	}

	nread, err := io.ReadFull(br.Src, br.buf[:n])
	br.LastIndex = br.Index
	br.Index += nread
	br.Err = err

	return err == nil
}

func (br *BinaryReader) Read(p []byte) (n int, err error) {
	n, err = br.Src.Read(p)
	br.Index += n
	return n, err
}

func (br *BinaryReader) ReadUInt16(i *int) (ok bool) {
	if !br.readN(2) {
		return false
	}
	*i = int(br.Order.Uint16(br.buf[:2]))
	return true
}

func (br *BinaryReader) ReadUInt32(i *int) (ok bool) {
	if !br.readN(4) {
		return false
	}
	*i = int(br.Order.Uint32(br.buf[:4]))
	return true
}

func (br *BinaryReader) ReadRef(data any) (ok bool) {
	if br.Err != nil {
		return false
	}
	err := binary.Read(br.Src, br.Order, data)
	br.Err = err
	br.LastIndex = br.Index
	if err == nil {
		br.Index += binary.Size(data)
	}
	return err == nil
}

// BinaryWriter is the writing counterpart of BinaryReader.
type BinaryWriter struct {
	Order binary.ByteOrder
	Dst   io.Writer
	Err   error
	buf   [4]byte
}

func (bw *BinaryWriter) WriteBytes(p []byte) (ok bool) {
	if bw.Err != nil {
		return false
	}

	_, bw.Err = bw.Dst.Write(p)
	return bw.Err == nil
}

// Write implements io.Writer on top of the sticky error.
func (bw *BinaryWriter) Write(p []byte) (n int, err error) {
	if !bw.WriteBytes(p) {
		return 0, bw.Err
	}
	return len(p), nil
}

func (bw *BinaryWriter) WriteUInt32(i uint32) (ok bool) {
	bw.Order.PutUint32(bw.buf[:4], i)
	return bw.WriteBytes(bw.buf[:4])
}

func (bw *BinaryWriter) WriteUInt16(i uint16) (ok bool) {
	bw.Order.PutUint16(bw.buf[:2], i)
	return bw.WriteBytes(bw.buf[:2])
}

func (bw *BinaryWriter) WriteRef(data any) (ok bool) {
	if bw.Err != nil {
		return false
	}
	bw.Err = binary.Write(bw.Dst, bw.Order, data)
	return bw.Err == nil
}
