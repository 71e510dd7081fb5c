package wire

import (
	"encoding/binary"
	"io"
)

// Value is the integer carried across the pipes. It has the width of a C int.
type Value int32

// PayloadWidth is the number of bytes one Value occupies on the wire.
const PayloadWidth = 4

// Payload is the raw wire form of a Value.
type Payload [PayloadWidth]byte

// Encode returns the wire form of v.
func Encode(v Value) Payload {
	var p Payload

	binary.NativeEndian.PutUint32(p[:], uint32(v))

	return p
}

// Decode returns the Value held in p.
func Decode(p Payload) Value {
	return Value(int32(binary.NativeEndian.Uint32(p[:])))
}

// WriteValue writes the PayloadWidth bytes of v to w.
// It returns the number of bytes written, which is PayloadWidth on success.
func WriteValue(w io.Writer, v Value) (int, error) {
	p := Encode(v)

	return w.Write(p[:])
}

// ReadValue reads exactly PayloadWidth bytes from r.
//
// A peer that closes its end before a full payload arrives yields
// io.ErrUnexpectedEOF (some bytes read) or io.EOF (none). The returned count
// is the number of bytes actually read.
func ReadValue(r io.Reader) (Value, int, error) {
	var p Payload

	n, err := io.ReadFull(r, p[:])
	if err != nil {
		return 0, n, err
	}

	return Decode(p), n, nil
}
