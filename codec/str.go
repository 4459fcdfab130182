package codec

import (
	"strconv"

	"github.com/wippyai/bitschema/errors"
)

// FixedString is an ASCII string stored in exactly N bytes. The last byte is
// always NUL, so at most N-1 characters survive encoding.
type FixedString struct {
	nullable
	unmaskable
	length int
}

// String returns the fixed-length string handler "s<length>".
func String(length int) *FixedString {
	return &FixedString{length: length}
}

func (f *FixedString) Length() int        { return f.length }
func (f *FixedString) Descriptor() string { return "s" + strconv.Itoa(f.length) }
func (f *FixedString) ByteCount() int     { return f.length }
func (f *FixedString) IsBasic() bool      { return true }
func (f *FixedString) Empty() any         { return "" }

func (f *FixedString) Encode(s *Serializer, v any, _ *Mask) error {
	src, ok := toBytes(v)
	if !ok {
		return errors.TypeMismatch(nil, v, f.Descriptor())
	}
	out := make([]byte, f.length)
	copy(out, src)
	if f.length > 0 {
		out[f.length-1] = 0
	}
	return s.WriteBytes(out)
}

func (f *FixedString) Decode(s *Serializer) (any, error) {
	raw, err := s.ReadBytes(f.length)
	if err != nil {
		return "", err
	}
	limit := f.length - 1
	if limit < 0 {
		limit = 0
	}
	for i := 0; i < limit; i++ {
		if raw[i] == 0 {
			return string(raw[:i]), nil
		}
	}
	return string(raw[:limit]), nil
}

// RemainderString consumes the rest of the buffer. It writes as many
// characters as fit, followed by a NUL only when room remains, and reads up
// to the first NUL or the end of the buffer.
type RemainderString struct {
	nullable
	unmaskable
}

var Remainder = &RemainderString{}

func (*RemainderString) Descriptor() string { return "s" }
func (*RemainderString) ByteCount() int     { return 0 }
func (*RemainderString) IsBasic() bool      { return true }
func (*RemainderString) Empty() any         { return "" }

func (r *RemainderString) Encode(s *Serializer, v any, _ *Mask) error {
	src, ok := toBytes(v)
	if !ok {
		return errors.TypeMismatch(nil, v, r.Descriptor())
	}
	n := len(src)
	if rem := s.Remaining(); n > rem {
		n = rem
	}
	if err := s.WriteBytes(src[:n]); err != nil {
		return err
	}
	if s.Remaining() > 0 {
		return s.WriteU8(0)
	}
	return nil
}

func (*RemainderString) Decode(s *Serializer) (any, error) {
	var out []byte
	for s.Remaining() > 0 {
		c, err := s.ReadU8()
		if err != nil {
			return string(out), err
		}
		if c == 0 {
			break
		}
		out = append(out, c)
	}
	return string(out), nil
}
