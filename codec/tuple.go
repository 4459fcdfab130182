package codec

import (
	"strconv"
	"strings"

	"github.com/wippyai/bitschema/errors"
)

// Tuple encodes positional children. A masked tuple is prefixed by a bitmask
// where bit i (bit i%8 of byte i/8) marks child i as physically present;
// absent children take no bytes and decode as nil.
//
// Arrays are tuples of one repeated child handler with a compact descriptor.
type Tuple struct {
	nullable
	elem       Handler
	descriptor string
	children   []Handler
	byteCount  int
	maskBytes  int
	count      int
	masked     bool
}

// NewTuple builds an unmasked tuple: a flat concatenation of its children.
func NewTuple(children []Handler) *Tuple {
	t := &Tuple{children: children}
	t.init()
	return t
}

// NewMaskedTuple builds a masked tuple. maskBits is the requested minimum mask
// width; 0 means one bit per child, rounded up to whole bytes.
func NewMaskedTuple(children []Handler, maskBits int) *Tuple {
	t := &Tuple{
		children:  children,
		masked:    true,
		maskBytes: MaskWidth(len(children), maskBits),
	}
	t.init()
	return t
}

// NewArray builds an unmasked array of count copies of elem.
func NewArray(count int, elem Handler) *Tuple {
	t := NewTuple(repeat(elem, count))
	t.elem, t.count = elem, count
	t.descriptor = "[" + elem.Descriptor() + ":" + strconv.Itoa(count) + "]"
	return t
}

// NewMaskedArray builds a masked array of count copies of elem.
func NewMaskedArray(count int, elem Handler, maskBits int) *Tuple {
	t := NewMaskedTuple(repeat(elem, count), maskBits)
	t.elem, t.count = elem, count
	t.descriptor = "[/" + strconv.Itoa(t.maskBytes*8) + "/" + elem.Descriptor() + ":" + strconv.Itoa(count) + "]"
	return t
}

func repeat(h Handler, n int) []Handler {
	children := make([]Handler, n)
	for i := range children {
		children[i] = h
	}
	return children
}

func (t *Tuple) init() {
	t.byteCount = t.maskBytes
	descs := make([]string, len(t.children))
	for i, c := range t.children {
		t.byteCount += c.ByteCount()
		descs[i] = c.Descriptor()
	}
	var b strings.Builder
	b.WriteByte('(')
	if t.masked {
		b.WriteByte('/')
		b.WriteString(strconv.Itoa(t.maskBytes * 8))
		b.WriteByte('/')
	}
	b.WriteString(strings.Join(descs, ","))
	b.WriteByte(')')
	t.descriptor = b.String()
}

func (t *Tuple) Descriptor() string  { return t.descriptor }
func (t *Tuple) ByteCount() int      { return t.byteCount }
func (t *Tuple) IsBasic() bool       { return false }
func (t *Tuple) Masked() bool        { return t.masked }
func (t *Tuple) MaskBytes() int      { return t.maskBytes }
func (t *Tuple) Children() []Handler { return t.children }

// Elem returns the repeated element handler and count when t is an array.
func (t *Tuple) Elem() (Handler, int, bool) {
	return t.elem, t.count, t.elem != nil
}

func (t *Tuple) Empty() any {
	out := make([]any, len(t.children))
	for i, c := range t.children {
		out[i] = c.Empty()
	}
	return out
}

func (t *Tuple) FullMask() *Mask {
	var children map[int]*Mask
	for i, c := range t.children {
		if cm := c.FullMask(); cm != nil {
			if children == nil {
				children = make(map[int]*Mask)
			}
			children[i] = cm
		}
	}
	if !t.masked {
		if children == nil {
			return nil
		}
		return &Mask{Children: children}
	}
	return &Mask{Children: children, Present: allPresent(len(t.children))}
}

// MaskArray computes the mask bytes a masked tuple writes for v under m.
func (t *Tuple) MaskArray(v any, m *Mask) ([]byte, error) {
	values, ok := toSlice(v, len(t.children))
	if !ok {
		return nil, errors.TypeMismatch(nil, v, t.descriptor)
	}
	return maskArray(t.children, values, m, t.maskBytes), nil
}

func maskArray(children []Handler, values []any, m *Mask, maskBytes int) []byte {
	mask := make([]byte, maskBytes)
	for i, c := range children {
		if !m.Allows(i) {
			continue
		}
		if !c.IsNull(values[i]) {
			setBit(mask, i)
		}
	}
	return mask
}

func (t *Tuple) Encode(s *Serializer, v any, m *Mask) error {
	values, ok := toSlice(v, len(t.children))
	if !ok {
		return errors.TypeMismatch(nil, v, t.descriptor)
	}
	return encodeChildren(s, t.children, values, tupleKey, m, t.masked, t.maskBytes)
}

func (t *Tuple) Decode(s *Serializer) (any, error) {
	out := make([]any, len(t.children))
	err := decodeChildren(s, t.children, tupleKey, t.masked, t.maskBytes, func(i int, v any) {
		out[i] = v
	})
	return out, err
}

func tupleKey(i int) string {
	return strconv.Itoa(i)
}

// encodeChildren writes children in order. For masked composites it writes
// the mask first and then only the children whose bit is set.
func encodeChildren(s *Serializer, children []Handler, values []any, key func(int) string, m *Mask, masked bool, maskBytes int) error {
	var mask []byte
	if masked {
		mask = maskArray(children, values, m, maskBytes)
		if err := s.WriteBytes(mask); err != nil {
			return err
		}
	}
	for i, c := range children {
		if masked && !hasBit(mask, i) {
			continue
		}
		if err := c.Encode(s, values[i], m.Child(i)); err != nil {
			return errors.WithPath(err, key(i))
		}
	}
	return nil
}

// decodeChildren mirrors encodeChildren; absent children are reported as nil.
func decodeChildren(s *Serializer, children []Handler, key func(int) string, masked bool, maskBytes int, set func(int, any)) error {
	var mask []byte
	if masked {
		var err error
		if mask, err = s.ReadBytes(maskBytes); err != nil {
			return err
		}
	}
	for i, c := range children {
		if masked && !hasBit(mask, i) {
			set(i, nil)
			continue
		}
		v, err := c.Decode(s)
		if err != nil {
			return errors.WithPath(err, key(i))
		}
		set(i, v)
	}
	return nil
}
