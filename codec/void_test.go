package codec

import (
	"bytes"
	"reflect"
	"testing"
)

func TestVoid_Properties(t *testing.T) {
	if Void.ByteCount() != 0 {
		t.Errorf("ByteCount() = %d", Void.ByteCount())
	}
	if Void.Empty() != true {
		t.Errorf("Empty() = %v, want true", Void.Empty())
	}
	if Void.FullMask() != nil {
		t.Error("FullMask() should be nil")
	}
	got, err := Void.Decode(NewSerializer(nil))
	if err != nil || got != true {
		t.Errorf("Decode = %v, %v", got, err)
	}
}

func TestVoid_IsNull(t *testing.T) {
	tests := []struct {
		value any
		name  string
		want  bool
	}{
		{true, "true", false},
		{1, "one", false},
		{"x", "string", false},
		{false, "false", true},
		{0, "zero", true},
		{nil, "nil", true},
		{"", "empty_string", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Void.IsNull(tt.value); got != tt.want {
				t.Errorf("IsNull(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestVoid_AsFlag(t *testing.T) {
	h := NewMaskedTuple([]Handler{Void, U8}, 0)

	buf := encodeBytes(t, h, h.ByteCount(), []any{true, 5}, nil)
	if !bytes.Equal(buf, []byte{3, 5}) {
		t.Errorf("set flag = %v, want [3 5]", buf)
	}

	buf = encodeBytes(t, h, h.ByteCount(), []any{false, 5}, nil)
	if !bytes.Equal(buf, []byte{2, 5}) {
		t.Errorf("cleared flag = %v, want [2 5]", buf)
	}

	got := decodeBytes(t, h, []byte{2, 5})
	if !reflect.DeepEqual(got, []any{nil, uint8(5)}) {
		t.Errorf("Decode = %#v", got)
	}
	got = decodeBytes(t, h, []byte{1})
	if !reflect.DeepEqual(got, []any{true, nil}) {
		t.Errorf("Decode = %#v", got)
	}
}
