// Package guest encodes and decodes packed payloads directly in guest
// linear memory.
//
// A payload occupies a window starting at the given offset. The window is the
// handler's ByteCount, clipped to the end of memory when the memory reports
// its size. Handlers holding a remainder string get everything up to the end
// of memory and therefore need a sized memory.
package guest

import (
	"go.uber.org/zap"

	"github.com/wippyai/bitschema"
	"github.com/wippyai/bitschema/codec"
	"github.com/wippyai/bitschema/errors"
)

func window(mem bitschema.Memory, offset uint32, h codec.Handler) (uint32, error) {
	n := uint32(h.ByteCount())
	variable := codec.IsVariable(h)
	sizer, sized := mem.(bitschema.MemorySizer)
	if !sized {
		if variable {
			return 0, errors.InvalidInput(errors.PhaseMemory, "variable-length handler "+h.Descriptor()+" needs a sized memory")
		}
		return n, nil
	}
	size := sizer.Size()
	if offset > size {
		return 0, errors.OutOfBounds(errors.PhaseMemory, int(offset), int(n), int(size))
	}
	// the window never extends past the end of memory
	if rest := size - offset; variable || n > rest {
		n = rest
	}
	return n, nil
}

// Encode packs v at offset and returns the number of bytes written. Only the
// bytes the handler produced are written; the rest of the window is left
// untouched.
func Encode(mem bitschema.Memory, offset uint32, h codec.Handler, v any, m *codec.Mask) (uint32, error) {
	size, err := window(mem, offset, h)
	if err != nil {
		return 0, err
	}
	s := codec.NewSerializer(make([]byte, size))
	if err := h.Encode(s, v, m); err != nil {
		Logger().Debug("encode failed",
			zap.String("descriptor", h.Descriptor()),
			zap.Uint32("offset", offset),
			zap.Error(err))
		return 0, err
	}
	if err := mem.Write(offset, s.Bytes()); err != nil {
		return 0, err
	}
	Logger().Debug("encoded",
		zap.String("descriptor", h.Descriptor()),
		zap.Uint32("offset", offset),
		zap.Int("bytes", s.Index()),
		zap.Uint32("window", size))
	return uint32(s.Index()), nil
}

// Decode reads a value of h at offset and returns it with the number of
// bytes consumed.
func Decode(mem bitschema.Memory, offset uint32, h codec.Handler) (any, uint32, error) {
	size, err := window(mem, offset, h)
	if err != nil {
		return nil, 0, err
	}
	data, err := mem.Read(offset, size)
	if err != nil {
		Logger().Debug("decode window out of bounds",
			zap.String("descriptor", h.Descriptor()),
			zap.Uint32("offset", offset),
			zap.Uint32("window", size))
		return nil, 0, err
	}
	s := codec.NewSerializer(data)
	v, err := h.Decode(s)
	if err != nil {
		return nil, 0, err
	}
	return v, uint32(s.Index()), nil
}
