package codec

import "sort"

var (
	_ Handler = (*Numeric)(nil)
	_ Handler = (*BoolHandler)(nil)
	_ Handler = (*VoidHandler)(nil)
	_ Handler = (*FixedString)(nil)
	_ Handler = (*RemainderString)(nil)
	_ Handler = (*Tuple)(nil)
	_ Handler = (*Map)(nil)
)

var builtins = map[string]Handler{
	"u8":   U8,
	"u16":  U16,
	"u32":  U32,
	"i8":   I8,
	"i16":  I16,
	"i32":  I32,
	"f32":  F32,
	"f64":  F64,
	"bool": Bool,
	"void": Void,
	"s":    Remainder,
}

// Builtin returns the basic handler registered under name. The fixed-length
// string family s<N> is not registered here; see String.
func Builtin(name string) (Handler, bool) {
	h, ok := builtins[name]
	if !ok || !h.IsBasic() {
		return nil, false
	}
	return h, true
}

// BuiltinNames returns the registered primitive names in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
