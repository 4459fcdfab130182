package ast

type Category int

const (
	Named Category = iota
	MapUnmasked
	MapMasked
	TupleUnmasked
	TupleMasked
	ArrayUnmasked
	ArrayMasked
)

func (c Category) String() string {
	switch c {
	case Named:
		return "named"
	case MapUnmasked:
		return "map"
	case MapMasked:
		return "masked map"
	case TupleUnmasked:
		return "tuple"
	case TupleMasked:
		return "masked tuple"
	case ArrayUnmasked:
		return "array"
	case ArrayMasked:
		return "masked array"
	}
	return "unknown"
}

// Masked reports whether c is one of the masked composite categories.
func (c Category) Masked() bool {
	return c == MapMasked || c == TupleMasked || c == ArrayMasked
}

// Type is one node of a parsed type expression. Which fields are set depends
// on Category: Name for Named, Fields for maps, Elems for tuples, Elem and
// Count for arrays. MaskBits is the requested minimum mask width of a masked
// node, 0 for the default.
type Type struct {
	Elem     *Type
	Name     string
	Fields   []Field
	Elems    []*Type
	Category Category
	Count    int
	MaskBits int
	Position int
}

type Field struct {
	Type     *Type
	Name     string
	Position int
}

// Decl is a top-level "Name = Type;" declaration.
type Decl struct {
	Type     *Type
	Name     string
	Position int
}
