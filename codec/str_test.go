package codec

import (
	"bytes"
	"testing"
)

func TestFixedString(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   []byte
		length int
	}{
		{"short", "Abcd", []byte{65, 98, 99, 100, 0, 0, 0, 0, 0}, 9},
		{"truncated", "Abc0123456", []byte{65, 98, 99, 48, 49, 0}, 6},
		{"exact_fit_loses_last", "Abcdef", []byte{65, 98, 99, 100, 101, 0}, 6},
		{"bytes", []byte("xy"), []byte{120, 121, 0, 0}, 4},
		{"nil", nil, []byte{0, 0, 0}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := String(tt.length)
			if h.ByteCount() != tt.length {
				t.Errorf("ByteCount() = %d, want %d", h.ByteCount(), tt.length)
			}
			got := encodeBytes(t, h, tt.length, tt.value, nil)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Encode(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestFixedString_Decode(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		data   []byte
		length int
	}{
		{"stops_at_nul", "Abcd", []byte{65, 98, 99, 100, 0, 0, 0, 0, 0}, 9},
		{"ignores_last_byte", "Abc01", []byte{65, 98, 99, 48, 49, 50}, 6},
		{"empty", "", []byte{0, 65, 65}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeBytes(t, String(tt.length), tt.data)
			if got != tt.want {
				t.Errorf("Decode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFixedString_Descriptor(t *testing.T) {
	h := String(32)
	if h.Descriptor() != "s32" {
		t.Errorf("Descriptor() = %q", h.Descriptor())
	}
	if h.Empty() != "" {
		t.Errorf("Empty() = %v", h.Empty())
	}
	if !h.IsBasic() {
		t.Error("fixed strings are basic")
	}
}

func TestRemainderString_Encode(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []byte
	}{
		{"terminated", "Abcd", []byte{65, 98, 99, 100, 0, 1, 1, 1, 1}},
		{"fills_buffer", "012345678", []byte("012345678")},
		{"truncates", "0123456789", []byte("012345678")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := bytes.Repeat([]byte{1}, 9)
			if err := Remainder.Encode(NewSerializer(buf), tt.value, nil); err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(buf, tt.want) {
				t.Errorf("Encode(%q) = %v, want %v", tt.value, buf, tt.want)
			}
		})
	}
}

func TestRemainderString_Decode(t *testing.T) {
	if got := decodeBytes(t, Remainder, []byte{65, 98, 99, 100, 0, 1, 1}); got != "Abcd" {
		t.Errorf("Decode = %q, want Abcd", got)
	}
	if got := decodeBytes(t, Remainder, []byte("012345678")); got != "012345678" {
		t.Errorf("Decode = %q, want 012345678", got)
	}
	if Remainder.ByteCount() != 0 || Remainder.Descriptor() != "s" {
		t.Errorf("remainder: %d %q", Remainder.ByteCount(), Remainder.Descriptor())
	}
}

func TestRemainderString_AfterPrefix(t *testing.T) {
	h := NewTuple([]Handler{U16, Remainder})
	buf := make([]byte, 6)
	s := NewSerializer(buf)
	if err := h.Encode(s, []any{0x0102, "hello"}, nil); err != nil {
		t.Fatal(err)
	}
	want := []byte{2, 1, 'h', 'e', 'l', 'l'}
	if !bytes.Equal(buf, want) {
		t.Fatalf("buf = %v, want %v", buf, want)
	}
	got := decodeBytes(t, h, buf)
	if g := got.([]any); g[0] != uint16(0x0102) || g[1] != "hell" {
		t.Errorf("Decode = %v", got)
	}
}
