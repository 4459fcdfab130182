package component

import (
	"strings"

	"go.bytecodealliance.org/wit"
)

// Format renders t as WIT type syntax. Named definitions are referenced by
// name.
func Format(t wit.Type) string {
	switch x := t.(type) {
	case wit.Bool:
		return "bool"
	case wit.U8:
		return "u8"
	case wit.U16:
		return "u16"
	case wit.U32:
		return "u32"
	case wit.U64:
		return "u64"
	case wit.S8:
		return "s8"
	case wit.S16:
		return "s16"
	case wit.S32:
		return "s32"
	case wit.S64:
		return "s64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	case wit.String:
		return "string"
	case *wit.TypeDef:
		if x.Name != nil {
			return *x.Name
		}
		return formatKind(x.Kind)
	}
	return "<unknown>"
}

func formatKind(k wit.TypeDefKind) string {
	switch x := k.(type) {
	case *wit.Record:
		fields := make([]string, len(x.Fields))
		for i, f := range x.Fields {
			fields[i] = f.Name + ": " + Format(f.Type)
		}
		return "record { " + strings.Join(fields, ", ") + " }"
	case *wit.Tuple:
		types := make([]string, len(x.Types))
		for i, t := range x.Types {
			types[i] = Format(t)
		}
		return "tuple<" + strings.Join(types, ", ") + ">"
	case *wit.List:
		return "list<" + Format(x.Type) + ">"
	case *wit.Option:
		return "option<" + Format(x.Type) + ">"
	case wit.Type:
		return Format(x)
	}
	return "<unknown>"
}

// FormatDef renders a named definition as a WIT declaration: records as
// "record name { ... }", everything else as "type name = ...".
func FormatDef(def *wit.TypeDef) string {
	name := "_"
	if def.Name != nil {
		name = *def.Name
	}
	if r, ok := def.Kind.(*wit.Record); ok {
		var b strings.Builder
		b.WriteString("record ")
		b.WriteString(name)
		b.WriteString(" {\n")
		for _, f := range r.Fields {
			b.WriteString("    ")
			b.WriteString(f.Name)
			b.WriteString(": ")
			b.WriteString(Format(f.Type))
			b.WriteString(",\n")
		}
		b.WriteString("}")
		return b.String()
	}
	return "type " + name + " = " + formatKind(def.Kind)
}
