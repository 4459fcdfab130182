package codec

// Handler encodes and decodes one type shape.
//
// Handlers are immutable once built and may be shared between goroutines;
// all mutable state lives in the Serializer passed to Encode and Decode.
type Handler interface {
	// Descriptor is the canonical signature, e.g. "u8", "[/8/u8:4]", "{a:u8,b:s5}".
	Descriptor() string
	// ByteCount is the maximum encoded size including mask bytes, or 0 for
	// variable-length types.
	ByteCount() int
	// IsBasic reports whether the handler is a primitive nameable in schema text.
	IsBasic() bool
	// Empty returns the zero value of the handler's logical type.
	Empty() any
	Encode(s *Serializer, v any, m *Mask) error
	Decode(s *Serializer) (any, error)
	// FullMask returns an override that forces every optional child, recursively,
	// to be present, or nil when nothing beneath the handler is optional.
	FullMask() *Mask
	// IsNull decides whether v is absent when it sits under a masked composite.
	IsNull(v any) bool
}

// Mask overrides which children of masked composites are written.
//
// Present is the mask entry for the composite the Mask is applied to: when
// non-nil, child i is written only if Present[i] is true and the child value
// is not null. Children carries overrides for nested composites by child
// index; for maps the index is the field's declaration position.
type Mask struct {
	Children map[int]*Mask
	Present  []bool
}

// Child returns the override for child i. It is safe to call on a nil Mask.
func (m *Mask) Child(i int) *Mask {
	if m == nil || m.Children == nil {
		return nil
	}
	return m.Children[i]
}

// Allows reports whether the override permits child i to be written.
func (m *Mask) Allows(i int) bool {
	if m == nil || m.Present == nil {
		return true
	}
	return i < len(m.Present) && m.Present[i]
}

func allPresent(n int) []bool {
	present := make([]bool, n)
	for i := range present {
		present[i] = true
	}
	return present
}

func hasBit(mask []byte, idx int) bool {
	return mask[idx/8]&(1<<(idx%8)) != 0
}

func setBit(mask []byte, idx int) {
	mask[idx/8] |= 1 << (idx % 8)
}

// MaskWidth returns the number of mask bytes for childCount children when the
// schema requested at least maskBits bits.
func MaskWidth(childCount, maskBits int) int {
	n := bytesFor(childCount)
	if requested := bytesFor(maskBits); requested > n {
		n = requested
	}
	return n
}

// bytesFor rounds bits up to whole bytes without overflowing near MaxInt.
func bytesFor(bits int) int {
	if bits <= 0 {
		return 0
	}
	n := bits / 8
	if bits%8 != 0 {
		n++
	}
	return n
}

// nullable provides the default IsNull predicate: a value is absent only when nil.
type nullable struct{}

func (nullable) IsNull(v any) bool {
	return isNil(v)
}

// unmaskable provides FullMask for handlers with no optional structure.
type unmaskable struct{}

func (unmaskable) FullMask() *Mask {
	return nil
}

// IsVariable reports whether h or any handler beneath it consumes the rest of
// the buffer. ByteCount does not account for such handlers.
func IsVariable(h Handler) bool {
	switch x := h.(type) {
	case *RemainderString:
		return true
	case *Tuple:
		if elem, _, ok := x.Elem(); ok {
			return IsVariable(elem)
		}
		for _, c := range x.children {
			if IsVariable(c) {
				return true
			}
		}
	case *Map:
		for _, c := range x.children {
			if IsVariable(c) {
				return true
			}
		}
	}
	return false
}
