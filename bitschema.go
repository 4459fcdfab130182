package bitschema

import (
	"github.com/wippyai/bitschema/codec"
	"github.com/wippyai/bitschema/schema"
)

// Memory represents a linear byte space that packed payloads are read from
// and written to, such as WASM guest memory.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
}

// MemorySizer provides the current size of the memory in bytes.
type MemorySizer interface {
	Size() uint32
}

// Library is a compiled schema: structure name to Handler.
type Library = schema.Library

// Handler encodes and decodes one type shape.
type Handler = codec.Handler

// Mask overrides which children of masked composites are written.
type Mask = codec.Mask

// Parse compiles schema text into a Library.
func Parse(text string) (*Library, error) {
	return schema.Parse(text)
}

// Encode packs v with h into buf and returns the number of bytes written.
func Encode(h Handler, buf []byte, v any, m *Mask) (int, error) {
	s := codec.NewSerializer(buf)
	if err := h.Encode(s, v, m); err != nil {
		return s.Index(), err
	}
	return s.Index(), nil
}

// Decode unpacks a value of h from the start of buf.
func Decode(h Handler, buf []byte) (any, error) {
	return h.Decode(codec.NewSerializer(buf))
}
