package component

import (
	"fmt"
	"strings"
	"unicode"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/bitschema/codec"
	"github.com/wippyai/bitschema/component/internal/layout"
	"github.com/wippyai/bitschema/errors"
	"github.com/wippyai/bitschema/schema"
)

// Info is the canonical ABI layout of a mapped type.
type Info = layout.Info

// TypeOf maps a handler onto the component-model type that carries the same
// values. Children of masked composites become option<T>.
func TypeOf(h codec.Handler) (wit.Type, error) {
	return newMapper().typeOf(h)
}

// Define returns one named type definition per structure of lib, in
// declaration order. Structures referenced by later ones are shared rather
// than expanded again.
func Define(lib *schema.Library) ([]*wit.TypeDef, error) {
	m := newMapper()
	defs := make([]*wit.TypeDef, 0, lib.Len())
	for _, name := range lib.Names() {
		h, _ := lib.Get(name)
		t, err := m.typeOf(h)
		if err != nil {
			return nil, errors.WithPath(err, name)
		}
		witName := KebabCase(name)
		def, ok := t.(*wit.TypeDef)
		if !ok || def.Name != nil {
			// primitives and references to earlier structures become aliases
			def = &wit.TypeDef{Kind: t}
		}
		def.Name = &witName
		if _, seen := m.named[h]; !seen && !h.IsBasic() {
			m.named[h] = def
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// Layout computes the canonical ABI layout of h's component-model type.
func Layout(h codec.Handler) (Info, error) {
	t, err := TypeOf(h)
	if err != nil {
		return Info{}, err
	}
	return layout.NewCalculator().Calculate(t), nil
}

type mapper struct {
	named map[codec.Handler]*wit.TypeDef
}

func newMapper() *mapper {
	return &mapper{named: make(map[codec.Handler]*wit.TypeDef)}
}

func (m *mapper) typeOf(h codec.Handler) (wit.Type, error) {
	if def, ok := m.named[h]; ok {
		return def, nil
	}

	switch x := h.(type) {
	case *codec.Numeric:
		return numericType(x.Kind()), nil
	case *codec.BoolHandler, *codec.VoidHandler:
		return wit.Bool{}, nil
	case *codec.FixedString, *codec.RemainderString:
		return wit.String{}, nil
	case *codec.Tuple:
		if elem, _, ok := x.Elem(); ok {
			t, err := m.child(elem, x.Masked())
			if err != nil {
				return nil, err
			}
			return &wit.TypeDef{Kind: &wit.List{Type: t}}, nil
		}
		types := make([]wit.Type, len(x.Children()))
		for i, c := range x.Children() {
			t, err := m.child(c, x.Masked())
			if err != nil {
				return nil, errors.WithPath(err, fmt.Sprint(i))
			}
			types[i] = t
		}
		return &wit.TypeDef{Kind: &wit.Tuple{Types: types}}, nil
	case *codec.Map:
		fields := make([]wit.Field, len(x.Fields()))
		for i, f := range x.Fields() {
			t, err := m.child(f.Handler, x.Masked())
			if err != nil {
				return nil, errors.WithPath(err, f.Key)
			}
			fields[i] = wit.Field{Name: KebabCase(f.Key), Type: t}
		}
		return &wit.TypeDef{Kind: &wit.Record{Fields: fields}}, nil
	}
	return nil, errors.New(errors.PhaseGenerate, errors.KindUnknownCategory).
		Value(h).
		Detail("no component type for handler %T", h).
		Build()
}

func (m *mapper) child(h codec.Handler, optional bool) (wit.Type, error) {
	t, err := m.typeOf(h)
	if err != nil || !optional {
		return t, err
	}
	return &wit.TypeDef{Kind: &wit.Option{Type: t}}, nil
}

func numericType(k codec.NumericKind) wit.Type {
	switch k {
	case codec.KindU8:
		return wit.U8{}
	case codec.KindU16:
		return wit.U16{}
	case codec.KindU32:
		return wit.U32{}
	case codec.KindI8:
		return wit.S8{}
	case codec.KindI16:
		return wit.S16{}
	case codec.KindI32:
		return wit.S32{}
	case codec.KindF32:
		return wit.F32{}
	default:
		return wit.F64{}
	}
}

// KebabCase converts a schema identifier to a WIT identifier:
// "magnetometerBias" becomes "magnetometer-bias", "LEDColor" becomes
// "led-color" and underscores become hyphens.
func KebabCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	dash := func() {
		s := b.String()
		if s != "" && !strings.HasSuffix(s, "-") {
			b.WriteByte('-')
		}
	}
	for i, r := range runes {
		switch {
		case r == '_':
			dash()
		case unicode.IsUpper(r):
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					dash()
				}
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
