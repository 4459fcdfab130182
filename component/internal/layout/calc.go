package layout

import (
	"go.bytecodealliance.org/wit"
)

// Info is the canonical ABI size and alignment of a type. For records and
// tuples, Offsets holds the byte offset of each field or element in order.
type Info struct {
	Offsets []uint32
	Size    uint32
	Align   uint32
}

// Calculator memoizes layouts of type definitions, which schemas share when
// one structure refers to another.
type Calculator struct {
	cache map[*wit.TypeDef]Info
}

func NewCalculator() *Calculator {
	return &Calculator{cache: make(map[*wit.TypeDef]Info)}
}

func AlignTo(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

// pointerPair is the layout of strings and lists: a u32 pointer and a u32 length.
var pointerPair = Info{Size: 8, Align: 4}

func scalar(n uint32) Info {
	return Info{Size: n, Align: n}
}

func (c *Calculator) Calculate(t wit.Type) Info {
	switch typ := t.(type) {
	case wit.U8, wit.S8, wit.Bool:
		return scalar(1)
	case wit.U16, wit.S16:
		return scalar(2)
	case wit.U32, wit.S32, wit.F32:
		return scalar(4)
	case wit.U64, wit.S64, wit.F64:
		return scalar(8)
	case wit.String:
		return pointerPair
	case *wit.TypeDef:
		if info, ok := c.cache[typ]; ok {
			return info
		}
		info := c.kind(typ.Kind)
		c.cache[typ] = info
		return info
	}
	return Info{Align: 1}
}

func (c *Calculator) kind(k wit.TypeDefKind) Info {
	switch x := k.(type) {
	case *wit.Record:
		types := make([]wit.Type, len(x.Fields))
		for i, f := range x.Fields {
			types[i] = f.Type
		}
		return c.sequence(types)
	case *wit.Tuple:
		return c.sequence(x.Types)
	case *wit.List:
		return pointerPair
	case *wit.Option:
		// one discriminant byte, then the payload at its own alignment
		inner := c.Calculate(x.Type)
		align := max(inner.Align, 1)
		return Info{Size: AlignTo(AlignTo(1, align)+inner.Size, align), Align: align}
	case wit.Type:
		return c.Calculate(x)
	}
	return Info{Align: 1}
}

// sequence lays types out one after another, each at its own alignment, and
// pads the total to the widest alignment.
func (c *Calculator) sequence(types []wit.Type) Info {
	info := Info{Offsets: make([]uint32, len(types)), Align: 1}
	var offset uint32
	for i, t := range types {
		l := c.Calculate(t)
		offset = AlignTo(offset, l.Align)
		info.Offsets[i] = offset
		offset += l.Size
		info.Align = max(info.Align, l.Align)
	}
	info.Size = AlignTo(offset, info.Align)
	return info
}
