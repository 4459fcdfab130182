package component

import (
	"errors"
	"testing"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/bitschema/codec"
	bserrors "github.com/wippyai/bitschema/errors"
	"github.com/wippyai/bitschema/schema"
)

func parse(t *testing.T, text string) *schema.Library {
	t.Helper()
	lib, err := schema.Parse(text)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return lib
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		want   string
	}{
		{"u8", "V=u8;", "u8"},
		{"i16", "V=i16;", "s16"},
		{"f64", "V=f64;", "f64"},
		{"bool", "V=bool;", "bool"},
		{"void", "V=void;", "bool"},
		{"fixed_string", "V=s12;", "string"},
		{"remainder", "V=s;", "string"},
		{"array", "V=[u8:4];", "list<u8>"},
		{"masked_array", "V=[//u8:4];", "list<option<u8>>"},
		{"tuple", "V=(u8,i32);", "tuple<u8, s32>"},
		{"masked_tuple", "V=(//u8,i32);", "tuple<option<u8>, option<s32>>"},
		{"record", "V={mainMask:u16,led_mask:u16};", "record { main-mask: u16, led-mask: u16 }"},
		{"masked_record", "V={//a:f32};", "record { a: option<f32> }"},
		{"nested", "V={a:[/8/(u8,s4):2]};", "record { a: list<option<tuple<u8, string>>> }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := parse(t, tt.schema).Get("V")
			typ, err := TypeOf(h)
			if err != nil {
				t.Fatalf("TypeOf failed: %v", err)
			}
			if got := Format(typ); got != tt.want {
				t.Errorf("Format(TypeOf(%s)) = %q, want %q", h.Descriptor(), got, tt.want)
			}
		})
	}
}

type opaque struct {
	codec.Handler
}

func TestTypeOf_Unknown(t *testing.T) {
	h := codec.NewTuple([]codec.Handler{codec.U8, opaque{codec.U8}})
	_, err := TypeOf(h)
	var e *bserrors.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *errors.Error, got %v", err)
	}
	if e.Kind != bserrors.KindUnknownCategory {
		t.Errorf("Kind = %s", e.Kind)
	}
	if len(e.Path) != 1 || e.Path[0] != "1" {
		t.Errorf("Path = %v, want [1]", e.Path)
	}
}

func TestDefine(t *testing.T) {
	lib := parse(t, ""+
		"Color={red:u8,green:u8,blue:u8};"+
		"Led={color1:Color,color2:Color,pattern:u8};"+
		"Panel={/8/leds:[Led:4],name:s8};"+
		"Alias=Led;"+
		"Count=u32;")

	defs, err := Define(lib)
	if err != nil {
		t.Fatalf("Define failed: %v", err)
	}
	if len(defs) != 5 {
		t.Fatalf("got %d definitions, want 5", len(defs))
	}

	want := []string{
		"record color {\n    red: u8,\n    green: u8,\n    blue: u8,\n}",
		"record led {\n    color1: color,\n    color2: color,\n    pattern: u8,\n}",
		"record panel {\n    leds: option<list<led>>,\n    name: option<string>,\n}",
		"type alias = led",
		"type count = u32",
	}
	for i, def := range defs {
		if got := FormatDef(def); got != want[i] {
			t.Errorf("definition %d:\n%s\nwant:\n%s", i, got, want[i])
		}
	}

	led := defs[1]
	rec := defs[2].Kind.(*wit.Record)
	list := rec.Fields[0].Type.(*wit.TypeDef).Kind.(*wit.Option).Type.(*wit.TypeDef).Kind.(*wit.List)
	if list.Type != led {
		t.Error("panel should reference the led definition, not a copy")
	}
}

func TestLayout(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		size   uint32
		align  uint32
	}{
		{"u8", "V=u8;", 1, 1},
		{"record", "V={a:u8,b:u32,c:u16};", 12, 4},
		{"masked_record", "V={//a:u8,b:u32};", 12, 4},
		{"list", "V=[f64:16];", 8, 4},
		{"tuple", "V=(u8,i16,u8);", 6, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := parse(t, tt.schema).Get("V")
			info, err := Layout(h)
			if err != nil {
				t.Fatalf("Layout failed: %v", err)
			}
			if info.Size != tt.size || info.Align != tt.align {
				t.Errorf("Layout = size %d align %d, want %d %d", info.Size, info.Align, tt.size, tt.align)
			}
		})
	}
}

func TestLayout_FieldOffsets(t *testing.T) {
	h, _ := parse(t, "V={version:u8,magnetometerBias:f32};").Get("V")
	info, err := Layout(h)
	if err != nil {
		t.Fatal(err)
	}
	if len(info.Offsets) != 2 || info.Offsets[0] != 0 || info.Offsets[1] != 4 {
		t.Errorf("Offsets = %v, want [0 4]", info.Offsets)
	}
}

func TestKebabCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"red", "red"},
		{"magnetometerBias", "magnetometer-bias"},
		{"ledPatterns", "led-patterns"},
		{"Vector3", "vector3"},
		{"color1", "color1"},
		{"LEDColor", "led-color"},
		{"led_mask", "led-mask"},
		{"a__b_", "a-b"},
		{"Vu8", "vu8"},
		{"mainMask2X", "main-mask2-x"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := KebabCase(tt.in); got != tt.want {
				t.Errorf("KebabCase(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
