// Package codec provides the composable handlers that pack values into
// fixed-layout byte buffers and read them back.
//
// A Handler exists for every shape the schema language can describe:
//
//	Handler           Descriptor        Bytes
//	──────────────────────────────────────────────────────
//	Numeric           u8 u16 u32        1 2 4
//	                  i8 i16 i32        1 2 4
//	                  f32 f64           4 8
//	BoolHandler       bool              1
//	VoidHandler       void              0
//	FixedString       s<N>              N (NUL terminated)
//	RemainderString   s                 0 (rest of buffer)
//	Tuple             (a,b) (/8/a,b)    sum of children (+ mask)
//	Tuple (array)     [T:N] [/8/T:N]    N * T (+ mask)
//	Map               {k:T} {/8/k:T}    sum of fields (+ mask)
//
// All multi-byte numbers are little-endian. Unmasked composites are a flat
// concatenation of their children. Masked composites start with
// ceil(max(children, requested bits) / 8) mask bytes, followed by only the
// children whose bit is set:
//
//	[mask bytes][present child 0]...[present child k]
//
// ByteCount reports the maximum size; an encoding with clear bits is shorter.
//
// # Values
//
// Encoding accepts loosely typed Go values (any integer or float kind,
// json.Number, bool, string or []byte, slices for tuples and arrays,
// map[string]any for maps). Decoding produces the concrete type of each
// primitive, []any for tuples and arrays and map[string]any for maps.
// Children left out by a mask decode as nil.
//
// # Usage
//
//	h := codec.NewMaskedArray(4, codec.U8, 0)
//	buf := make([]byte, h.ByteCount())
//	err := h.Encode(codec.NewSerializer(buf), []any{1, nil, 3, nil}, nil)
//	// buf = [0x05, 0x01, 0x03, 0x00, 0x00]
//
// Handlers are immutable and safe to share. A Serializer is a single cursor
// and must not be shared between operations.
package codec
