package codec

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest/assert"
)

type sample struct {
	Name  string
	Count uint64
	Flag  bool
	Items [][]byte
}

func (s *sample) Marshal() ([]byte, error) {
	e := NewEncoder()
	e.String(1, s.Name)
	e.Uint64(2, s.Count)
	e.Bool(3, s.Flag)
	e.RepeatedBytes(4, s.Items)
	return e.Result()
}

func (s *sample) Unmarshal(raw []byte) error {
	*s = sample{}
	return Decode(raw, func(field int, d *Decoder) (err error) {
		switch field {
		case 1:
			s.Name, err = d.String()
		case 2:
			s.Count, err = d.Uint64()
		case 3:
			s.Flag, err = d.Bool()
		case 4:
			var b []byte
			b, err = d.Bytes()
			s.Items = append(s.Items, b)
		default:
			err = d.Skip()
		}
		return err
	})
}

func TestEncodingMatchesProtobuf(t *testing.T) {
	s := sample{Name: "abc", Count: 300, Flag: true, Items: [][]byte{{1}, {}}}
	raw, err := s.Marshal()
	assert.Nil(t, err)

	// Hand assembled expectation, field by field.
	want := []byte{0x0a, 3, 'a', 'b', 'c'}
	want = append(want, 0x10)
	want = append(want, proto.EncodeVarint(300)...)
	want = append(want, 0x18, 1)
	want = append(want, 0x22, 1, 1)
	want = append(want, 0x22, 0)
	assert.Equal(t, want, raw)

	var got sample
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, "abc", got.Name)
	assert.Equal(t, uint64(300), got.Count)
	assert.Equal(t, true, got.Flag)
	assert.Equal(t, 2, len(got.Items))
}

func TestZeroValuesAreNotWritten(t *testing.T) {
	raw, err := (&sample{}).Marshal()
	assert.Nil(t, err)
	assert.Equal(t, []byte{}, raw)
}

func TestUnknownFieldsAreSkipped(t *testing.T) {
	var raw []byte
	raw = append(raw, 0x0a, 1, 'x')                 // name
	raw = append(raw, 0x2a, 2, 9, 9)                // unknown bytes field 5
	raw = append(raw, 0x30, 7)                      // unknown varint field 6
	raw = append(raw, 0x39, 1, 2, 3, 4, 5, 6, 7, 8) // unknown fixed64 field 7
	raw = append(raw, 0x10, 5)                      // count
	var got sample
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, "x", got.Name)
	assert.Equal(t, uint64(5), got.Count)
}

func TestMalformedInput(t *testing.T) {
	cases := map[string][]byte{
		"truncated bytes":     {0x0a, 5, 'a'},
		"truncated varint":    {0x10, 0x80},
		"wrong wire type":     {0x08, 1},
		"field number zero":   {0x02, 0},
		"unknown wire type 3": {0x4b},
	}
	for testName, raw := range cases {
		t.Run(testName, func(t *testing.T) {
			var got sample
			err := got.Unmarshal(raw)
			assert.IsErr(t, errors.ErrInput, err)
		})
	}
}

func TestPackedUint64(t *testing.T) {
	e := NewEncoder()
	e.PackedUint64(1, []uint64{0, 1, 300})
	raw, err := e.Result()
	assert.Nil(t, err)
	want := append([]byte{0x0a, 4, 0, 1}, proto.EncodeVarint(300)...)
	assert.Equal(t, want, raw)

	// Unpacked representation of the same field is accepted as well.
	raw = append(raw, 0x08, 7)
	var got []uint64
	err = Decode(raw, func(field int, d *Decoder) error {
		vs, err := d.PackedUint64()
		got = append(got, vs...)
		return err
	})
	assert.Nil(t, err)
	assert.Equal(t, []uint64{0, 1, 300, 7}, got)
}
