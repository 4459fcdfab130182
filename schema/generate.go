package schema

import (
	"math"
	"strconv"
	"strings"

	"github.com/wippyai/bitschema/codec"
	"github.com/wippyai/bitschema/errors"
	"github.com/wippyai/bitschema/schema/internal/ast"
)

const (
	// MaxElements bounds array counts and requested mask widths in bits.
	MaxElements = 1 << 20
	// MaxByteCount bounds the encoded size of any single structure.
	MaxByteCount = math.MaxInt32
)

// generate builds the handler for t. Named references resolve against the
// built-in primitives, then the s<N> string family, then structures already
// in lib.
func generate(t *ast.Type, lib *Library) (codec.Handler, error) {
	switch t.Category {
	case ast.Named:
		return resolve(t, lib)

	case ast.MapUnmasked, ast.MapMasked:
		fields := make([]codec.Field, len(t.Fields))
		var size int64
		for i, f := range t.Fields {
			h, err := generate(f.Type, lib)
			if err != nil {
				return nil, err
			}
			fields[i] = codec.Field{Key: f.Name, Handler: h}
			size += int64(h.ByteCount())
		}
		if err := checkComposite(t, len(fields), size); err != nil {
			return nil, err
		}
		if t.Category == ast.MapMasked {
			return codec.NewMaskedMap(fields, t.MaskBits), nil
		}
		return codec.NewMap(fields), nil

	case ast.TupleUnmasked, ast.TupleMasked:
		children := make([]codec.Handler, len(t.Elems))
		var size int64
		for i, e := range t.Elems {
			h, err := generate(e, lib)
			if err != nil {
				return nil, err
			}
			children[i] = h
			size += int64(h.ByteCount())
		}
		if err := checkComposite(t, len(children), size); err != nil {
			return nil, err
		}
		if t.Category == ast.TupleMasked {
			return codec.NewMaskedTuple(children, t.MaskBits), nil
		}
		return codec.NewTuple(children), nil

	case ast.ArrayUnmasked, ast.ArrayMasked:
		if t.Count > MaxElements {
			return nil, tooLarge(t, "array count", int64(t.Count), MaxElements)
		}
		elem, err := generate(t.Elem, lib)
		if err != nil {
			return nil, err
		}
		if err := checkComposite(t, t.Count, int64(t.Count)*int64(elem.ByteCount())); err != nil {
			return nil, err
		}
		if t.Category == ast.ArrayMasked {
			return codec.NewMaskedArray(t.Count, elem, t.MaskBits), nil
		}
		return codec.NewArray(t.Count, elem), nil
	}

	err := errors.UnknownCategory(t.Category)
	err.Position = t.Position
	return nil, err
}

// checkComposite rejects mask widths and encoded sizes that cannot be
// allocated. size is the children's total byte count without mask bytes.
func checkComposite(t *ast.Type, children int, size int64) error {
	if t.Category.Masked() {
		if t.MaskBits > MaxElements {
			return tooLarge(t, "mask width", int64(t.MaskBits), MaxElements)
		}
		size += int64(codec.MaskWidth(children, t.MaskBits))
	}
	if size > MaxByteCount {
		return tooLarge(t, "byte count", size, MaxByteCount)
	}
	return nil
}

func tooLarge(t *ast.Type, what string, n, limit int64) error {
	return errors.New(errors.PhaseGenerate, errors.KindInvalidInput).
		At(t.Position).
		Value(n).
		Detail("%s %d exceeds limit of %d", what, n, limit).
		Build()
}

func resolve(t *ast.Type, lib *Library) (codec.Handler, error) {
	if h, ok := codec.Builtin(t.Name); ok {
		return h, nil
	}
	if n, ok := stringLength(t.Name); ok {
		if n > MaxByteCount {
			return nil, tooLarge(t, "string length", int64(n), MaxByteCount)
		}
		return codec.String(n), nil
	}
	if h, ok := lib.Get(t.Name); ok {
		return h, nil
	}
	err := errors.UnrecognizedType(t.Name)
	err.Position = t.Position
	return nil, err
}

// stringLength parses the N of an "s<N>" name. N is any decimal, including 0;
// lengths that do not fit an int are reported as math.MaxInt.
func stringLength(name string) (int, bool) {
	digits, ok := strings.CutPrefix(name, "s")
	if !ok || digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return math.MaxInt, true
	}
	return n, true
}
