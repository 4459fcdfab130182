package codec

import (
	"strconv"
	"strings"

	"github.com/wippyai/bitschema/errors"
)

// Field is a named child of a Map.
type Field struct {
	Handler Handler
	Key     string
}

// Map encodes named children in declaration order. It uses the same layout
// and masking rules as Tuple; mask bit i belongs to the i-th declared field.
type Map struct {
	nullable
	index      map[string]int
	descriptor string
	fields     []Field
	children   []Handler
	keys       []string
	byteCount  int
	maskBytes  int
	masked     bool
}

// NewMap builds an unmasked map.
func NewMap(fields []Field) *Map {
	m := &Map{fields: fields}
	m.init()
	return m
}

// NewMaskedMap builds a masked map with at least maskBits mask bits.
func NewMaskedMap(fields []Field, maskBits int) *Map {
	m := &Map{
		fields:    fields,
		masked:    true,
		maskBytes: MaskWidth(len(fields), maskBits),
	}
	m.init()
	return m
}

func (m *Map) init() {
	m.index = make(map[string]int, len(m.fields))
	m.children = make([]Handler, len(m.fields))
	m.keys = make([]string, len(m.fields))
	m.byteCount = m.maskBytes
	descs := make([]string, len(m.fields))
	for i, f := range m.fields {
		m.index[f.Key] = i
		m.children[i] = f.Handler
		m.keys[i] = f.Key
		m.byteCount += f.Handler.ByteCount()
		descs[i] = f.Key + ":" + f.Handler.Descriptor()
	}
	var b strings.Builder
	b.WriteByte('{')
	if m.masked {
		b.WriteByte('/')
		b.WriteString(strconv.Itoa(m.maskBytes * 8))
		b.WriteByte('/')
	}
	b.WriteString(strings.Join(descs, ","))
	b.WriteByte('}')
	m.descriptor = b.String()
}

func (m *Map) Descriptor() string { return m.descriptor }
func (m *Map) ByteCount() int     { return m.byteCount }
func (m *Map) IsBasic() bool      { return false }
func (m *Map) Masked() bool       { return m.masked }
func (m *Map) MaskBytes() int     { return m.maskBytes }
func (m *Map) Fields() []Field    { return m.fields }

// Index returns the declaration position of key, which is also its mask bit.
func (m *Map) Index(key string) (int, bool) {
	i, ok := m.index[key]
	return i, ok
}

func (m *Map) Empty() any {
	out := make(map[string]any, len(m.fields))
	for _, f := range m.fields {
		out[f.Key] = f.Handler.Empty()
	}
	return out
}

func (m *Map) FullMask() *Mask {
	var children map[int]*Mask
	for i, f := range m.fields {
		if cm := f.Handler.FullMask(); cm != nil {
			if children == nil {
				children = make(map[int]*Mask)
			}
			children[i] = cm
		}
	}
	if !m.masked {
		if children == nil {
			return nil
		}
		return &Mask{Children: children}
	}
	return &Mask{Children: children, Present: allPresent(len(m.fields))}
}

// MaskArray computes the mask bytes a masked map writes for v under mask.
func (m *Map) MaskArray(v any, mask *Mask) ([]byte, error) {
	values, ok := toFields(v, m.keys)
	if !ok {
		return nil, errors.TypeMismatch(nil, v, m.descriptor)
	}
	return maskArray(m.children, values, mask, m.maskBytes), nil
}

func (m *Map) Encode(s *Serializer, v any, mask *Mask) error {
	values, ok := toFields(v, m.keys)
	if !ok {
		return errors.TypeMismatch(nil, v, m.descriptor)
	}
	return encodeChildren(s, m.children, values, m.key, mask, m.masked, m.maskBytes)
}

func (m *Map) Decode(s *Serializer) (any, error) {
	out := make(map[string]any, len(m.fields))
	err := decodeChildren(s, m.children, m.key, m.masked, m.maskBytes, func(i int, v any) {
		out[m.keys[i]] = v
	})
	return out, err
}

func (m *Map) key(i int) string {
	return m.keys[i]
}
