/*
Package codec implements the protobuf wire format used by all models and
messages. Every persisted type declares its schema in a codec.proto file
next to its Go definition and implements Marshal and Unmarshal with the
Encoder and Decode helpers of this package.

Encoding follows proto3 rules: zero values of scalar fields are not written
and unknown fields are skipped when decoding.
*/
package codec

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum/errors"
)

// Protobuf wire types.
const (
	WireVarint  = 0
	WireFixed64 = 1
	WireBytes   = 2
	WireFixed32 = 5
)

// Marshaller is anything that can be represented in binary.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Encoder writes protobuf fields. The first error is kept and returned by
// Result, all following writes are ignored.
type Encoder struct {
	buf *proto.Buffer
	err error
}

// NewEncoder returns an empty encoder.
func NewEncoder() *Encoder {
	return &Encoder{buf: proto.NewBuffer(nil)}
}

func (e *Encoder) tag(field int, wire int) {
	if e.err != nil {
		return
	}
	e.err = e.buf.EncodeVarint(uint64(field)<<3 | uint64(wire))
}

// Bytes writes a bytes field. Empty value is not written.
func (e *Encoder) Bytes(field int, b []byte) {
	if len(b) == 0 {
		return
	}
	e.rawBytes(field, b)
}

func (e *Encoder) rawBytes(field int, b []byte) {
	e.tag(field, WireBytes)
	if e.err != nil {
		return
	}
	e.err = e.buf.EncodeRawBytes(b)
}

// RepeatedBytes writes every element, including empty ones, so that the
// number of elements is preserved.
func (e *Encoder) RepeatedBytes(field int, bs [][]byte) {
	for _, b := range bs {
		e.rawBytes(field, b)
	}
}

// String writes a string field. Empty value is not written.
func (e *Encoder) String(field int, s string) {
	if s == "" {
		return
	}
	e.tag(field, WireBytes)
	if e.err != nil {
		return
	}
	e.err = e.buf.EncodeStringBytes(s)
}

// Uint64 writes a varint field. Zero is not written.
func (e *Encoder) Uint64(field int, v uint64) {
	if v == 0 {
		return
	}
	e.tag(field, WireVarint)
	if e.err != nil {
		return
	}
	e.err = e.buf.EncodeVarint(v)
}

// PackedUint64 writes all values as a single packed varint field, the
// proto3 default for repeated scalars. Empty list is not written.
func (e *Encoder) PackedUint64(field int, vs []uint64) {
	if len(vs) == 0 {
		return
	}
	packed := proto.NewBuffer(nil)
	for _, v := range vs {
		if err := packed.EncodeVarint(v); err != nil {
			e.err = err
			return
		}
	}
	e.rawBytes(field, packed.Bytes())
}

// Bool writes a bool field. False is not written.
func (e *Encoder) Bool(field int, v bool) {
	if v {
		e.Uint64(field, 1)
	}
}

// Message writes an embedded message. Nil message is not written.
func (e *Encoder) Message(field int, m Marshaller) {
	if e.err != nil || m == nil {
		return
	}
	raw, err := m.Marshal()
	if err != nil {
		e.err = err
		return
	}
	e.rawBytes(field, raw)
}

// Result returns the serialized form or the first error encountered. A
// message with all fields set to zero values serializes to an empty, non
// nil slice so that it can be stored.
func (e *Encoder) Result() ([]byte, error) {
	if e.err != nil {
		return nil, errors.Wrap(errors.ErrInput, e.err.Error())
	}
	if raw := e.buf.Bytes(); raw != nil {
		return raw, nil
	}
	return []byte{}, nil
}

// Decoder reads the value of a single field. It is passed to the callback
// of the Decode function.
type Decoder struct {
	raw  []byte
	off  int
	wire int
}

// Decode reads all fields of a serialized message and calls fn for each of
// them. fn must consume the value using one of the Decoder methods, or call
// Skip.
func Decode(raw []byte, fn func(field int, d *Decoder) error) error {
	d := &Decoder{raw: raw}
	for d.off < len(d.raw) {
		tag, err := d.varint()
		if err != nil {
			return errors.Wrap(err, "field tag")
		}
		field := int(tag >> 3)
		if field <= 0 {
			return errors.Wrapf(errors.ErrInput, "illegal field number %d", field)
		}
		d.wire = int(tag & 7)
		if err := fn(field, d); err != nil {
			return err
		}
	}
	return nil
}

func (d *Decoder) varint() (uint64, error) {
	x, n := proto.DecodeVarint(d.raw[d.off:])
	if n == 0 {
		return 0, errors.Wrap(errors.ErrInput, "malformed varint")
	}
	d.off += n
	return x, nil
}

func (d *Decoder) advance(n uint64) ([]byte, error) {
	if n > uint64(len(d.raw)-d.off) {
		return nil, errors.Wrap(errors.ErrInput, "unexpected end of data")
	}
	b := d.raw[d.off : d.off+int(n)]
	d.off += int(n)
	return b, nil
}

func (d *Decoder) expect(wire int) error {
	if d.wire != wire {
		return errors.Wrapf(errors.ErrInput, "unexpected wire type %d", d.wire)
	}
	return nil
}

// Bytes reads a bytes field. The result does not share memory with the
// decoded buffer.
func (d *Decoder) Bytes() ([]byte, error) {
	if err := d.expect(WireBytes); err != nil {
		return nil, err
	}
	n, err := d.varint()
	if err != nil {
		return nil, err
	}
	b, err := d.advance(n)
	if err != nil {
		return nil, err
	}
	return append([]byte{}, b...), nil
}

// String reads a string field.
func (d *Decoder) String() (string, error) {
	b, err := d.Bytes()
	return string(b), err
}

// Uint64 reads a varint field.
func (d *Decoder) Uint64() (uint64, error) {
	if err := d.expect(WireVarint); err != nil {
		return 0, err
	}
	return d.varint()
}

// Uint32 reads a varint field that must fit in 32 bits.
func (d *Decoder) Uint32() (uint32, error) {
	v, err := d.Uint64()
	if err != nil {
		return 0, err
	}
	if v > 1<<32-1 {
		return 0, errors.Wrap(errors.ErrOverflow, "uint32")
	}
	return uint32(v), nil
}

// PackedUint64 reads a repeated varint field. Both packed and unpacked
// representations are accepted. Each occurrence of the field returns the
// values it holds, which must be appended to the already decoded ones.
func (d *Decoder) PackedUint64() ([]uint64, error) {
	if d.wire == WireVarint {
		v, err := d.varint()
		if err != nil {
			return nil, err
		}
		return []uint64{v}, nil
	}
	raw, err := d.Bytes()
	if err != nil {
		return nil, err
	}
	var vs []uint64
	for len(raw) > 0 {
		v, n := proto.DecodeVarint(raw)
		if n == 0 {
			return nil, errors.Wrap(errors.ErrInput, "malformed packed varint")
		}
		vs = append(vs, v)
		raw = raw[n:]
	}
	return vs, nil
}

// Bool reads a bool field.
func (d *Decoder) Bool() (bool, error) {
	v, err := d.Uint64()
	return v != 0, err
}

// Message reads an embedded message into given destination.
func (d *Decoder) Message(dest interface{ Unmarshal([]byte) error }) error {
	raw, err := d.Bytes()
	if err != nil {
		return err
	}
	return dest.Unmarshal(raw)
}

// Skip consumes the value of an unknown field.
func (d *Decoder) Skip() error {
	var err error
	switch d.wire {
	case WireVarint:
		_, err = d.varint()
	case WireFixed64:
		_, err = d.advance(8)
	case WireBytes:
		var n uint64
		if n, err = d.varint(); err == nil {
			_, err = d.advance(n)
		}
	case WireFixed32:
		_, err = d.advance(4)
	default:
		err = errors.Wrapf(errors.ErrInput, "unsupported wire type %d", d.wire)
	}
	return err
}
