package codec

import (
	"encoding/binary"
	"math"

	"github.com/wippyai/bitschema/errors"
)

// Serializer is a read/write cursor over a caller-owned, fixed-size buffer.
// It is not safe for concurrent use; create one per encode or decode operation.
type Serializer struct {
	buf   []byte
	index int
}

// NewSerializer creates a cursor at offset 0 over buf.
func NewSerializer(buf []byte) *Serializer {
	return &Serializer{buf: buf}
}

// Index returns the current offset.
func (s *Serializer) Index() int {
	return s.index
}

// Add moves the cursor by increment bytes.
func (s *Serializer) Add(increment int) {
	s.index += increment
}

// Len returns the size of the underlying buffer.
func (s *Serializer) Len() int {
	return len(s.buf)
}

// Remaining returns the number of bytes between the cursor and the buffer end.
func (s *Serializer) Remaining() int {
	if s.index >= len(s.buf) {
		return 0
	}
	return len(s.buf) - s.index
}

// Bytes returns the portion of the buffer before the cursor.
func (s *Serializer) Bytes() []byte {
	if s.index > len(s.buf) {
		return s.buf
	}
	return s.buf[:s.index]
}

func (s *Serializer) take(phase errors.Phase, n int) ([]byte, error) {
	if s.index < 0 || n > len(s.buf)-s.index {
		return nil, errors.OutOfBounds(phase, s.index, n, len(s.buf))
	}
	b := s.buf[s.index : s.index+n]
	s.index += n
	return b, nil
}

func (s *Serializer) WriteBytes(data []byte) error {
	b, err := s.take(errors.PhaseEncode, len(data))
	if err != nil {
		return err
	}
	copy(b, data)
	return nil
}

func (s *Serializer) ReadBytes(n int) ([]byte, error) {
	b, err := s.take(errors.PhaseDecode, n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

func (s *Serializer) WriteU8(v uint8) error {
	b, err := s.take(errors.PhaseEncode, 1)
	if err != nil {
		return err
	}
	b[0] = v
	return nil
}

func (s *Serializer) WriteU16(v uint16) error {
	b, err := s.take(errors.PhaseEncode, 2)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(b, v)
	return nil
}

func (s *Serializer) WriteU32(v uint32) error {
	b, err := s.take(errors.PhaseEncode, 4)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(b, v)
	return nil
}

func (s *Serializer) WriteU64(v uint64) error {
	b, err := s.take(errors.PhaseEncode, 8)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(b, v)
	return nil
}

func (s *Serializer) WriteF32(v float32) error {
	return s.WriteU32(math.Float32bits(v))
}

func (s *Serializer) WriteF64(v float64) error {
	return s.WriteU64(math.Float64bits(v))
}

func (s *Serializer) ReadU8() (uint8, error) {
	b, err := s.take(errors.PhaseDecode, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (s *Serializer) ReadU16() (uint16, error) {
	b, err := s.take(errors.PhaseDecode, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (s *Serializer) ReadU32() (uint32, error) {
	b, err := s.take(errors.PhaseDecode, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (s *Serializer) ReadU64() (uint64, error) {
	b, err := s.take(errors.PhaseDecode, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (s *Serializer) ReadF32() (float32, error) {
	v, err := s.ReadU32()
	return math.Float32frombits(v), err
}

func (s *Serializer) ReadF64() (float64, error) {
	v, err := s.ReadU64()
	return math.Float64frombits(v), err
}
