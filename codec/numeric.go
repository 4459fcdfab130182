package codec

import (
	"github.com/wippyai/bitschema/errors"
)

// NumericKind identifies a fixed-width numeric type.
type NumericKind uint8

const (
	KindU8 NumericKind = iota
	KindU16
	KindU32
	KindI8
	KindI16
	KindI32
	KindF32
	KindF64
)

var numericNames = [...]string{"u8", "u16", "u32", "i8", "i16", "i32", "f32", "f64"}
var numericSizes = [...]int{1, 2, 4, 1, 2, 4, 4, 8}

func (k NumericKind) String() string {
	if int(k) < len(numericNames) {
		return numericNames[k]
	}
	return "unknown"
}

// Numeric is a little-endian fixed-width integer or float codec. Values are
// not range checked: integers wrap to the type's width and floats truncate.
type Numeric struct {
	nullable
	unmaskable
	kind NumericKind
}

var (
	U8  = &Numeric{kind: KindU8}
	U16 = &Numeric{kind: KindU16}
	U32 = &Numeric{kind: KindU32}
	I8  = &Numeric{kind: KindI8}
	I16 = &Numeric{kind: KindI16}
	I32 = &Numeric{kind: KindI32}
	F32 = &Numeric{kind: KindF32}
	F64 = &Numeric{kind: KindF64}
)

func (n *Numeric) Kind() NumericKind  { return n.kind }
func (n *Numeric) Descriptor() string { return n.kind.String() }
func (n *Numeric) ByteCount() int     { return numericSizes[n.kind] }
func (n *Numeric) IsBasic() bool      { return true }

func (n *Numeric) Empty() any {
	switch n.kind {
	case KindU8:
		return uint8(0)
	case KindU16:
		return uint16(0)
	case KindU32:
		return uint32(0)
	case KindI8:
		return int8(0)
	case KindI16:
		return int16(0)
	case KindI32:
		return int32(0)
	case KindF32:
		return float32(0)
	default:
		return float64(0)
	}
}

func (n *Numeric) Encode(s *Serializer, v any, _ *Mask) error {
	if n.kind == KindF32 || n.kind == KindF64 {
		f, ok := toFloat64(v)
		if !ok {
			return errors.TypeMismatch(nil, v, n.Descriptor())
		}
		if n.kind == KindF32 {
			return s.WriteF32(float32(f))
		}
		return s.WriteF64(f)
	}

	i, ok := toInt64(v)
	if !ok {
		return errors.TypeMismatch(nil, v, n.Descriptor())
	}
	switch n.kind {
	case KindU8, KindI8:
		return s.WriteU8(uint8(i))
	case KindU16, KindI16:
		return s.WriteU16(uint16(i))
	default:
		return s.WriteU32(uint32(i))
	}
}

func (n *Numeric) Decode(s *Serializer) (any, error) {
	switch n.kind {
	case KindU8:
		return s.ReadU8()
	case KindU16:
		return s.ReadU16()
	case KindU32:
		return s.ReadU32()
	case KindI8:
		v, err := s.ReadU8()
		return int8(v), err
	case KindI16:
		v, err := s.ReadU16()
		return int16(v), err
	case KindI32:
		v, err := s.ReadU32()
		return int32(v), err
	case KindF32:
		return s.ReadF32()
	default:
		return s.ReadF64()
	}
}

// BoolHandler stores a boolean as a u8 of 1 or 0. Any non-zero byte decodes as true.
type BoolHandler struct {
	nullable
	unmaskable
}

var Bool = &BoolHandler{}

func (*BoolHandler) Descriptor() string { return "bool" }
func (*BoolHandler) ByteCount() int     { return 1 }
func (*BoolHandler) IsBasic() bool      { return true }
func (*BoolHandler) Empty() any         { return false }

func (*BoolHandler) Encode(s *Serializer, v any, _ *Mask) error {
	if truthy(v) {
		return s.WriteU8(1)
	}
	return s.WriteU8(0)
}

func (*BoolHandler) Decode(s *Serializer) (any, error) {
	v, err := s.ReadU8()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}
