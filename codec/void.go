package codec

// VoidHandler occupies no bytes. Under a masked composite it acts as a pure
// presence bit: unlike other handlers, a truthy value counts as present and a
// falsy one (nil, false, 0, "") as absent.
type VoidHandler struct {
	unmaskable
}

var Void = &VoidHandler{}

func (*VoidHandler) Descriptor() string                   { return "void" }
func (*VoidHandler) ByteCount() int                       { return 0 }
func (*VoidHandler) IsBasic() bool                        { return true }
func (*VoidHandler) Empty() any                           { return true }
func (*VoidHandler) IsNull(v any) bool                    { return !truthy(v) }
func (*VoidHandler) Encode(*Serializer, any, *Mask) error { return nil }
func (*VoidHandler) Decode(*Serializer) (any, error)      { return true, nil }
