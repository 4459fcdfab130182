package ast

import "testing"

func TestCategory(t *testing.T) {
	tests := []struct {
		name   string
		c      Category
		masked bool
	}{
		{"named", Named, false},
		{"map", MapUnmasked, false},
		{"masked map", MapMasked, true},
		{"tuple", TupleUnmasked, false},
		{"masked tuple", TupleMasked, true},
		{"array", ArrayUnmasked, false},
		{"masked array", ArrayMasked, true},
		{"unknown", Category(42), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.c.Masked(); got != tt.masked {
				t.Errorf("Masked() = %v, want %v", got, tt.masked)
			}
		})
	}
}
