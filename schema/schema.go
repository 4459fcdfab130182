package schema

import (
	"go.uber.org/zap"

	"github.com/wippyai/bitschema/errors"
	"github.com/wippyai/bitschema/schema/internal/parser"
	"github.com/wippyai/bitschema/schema/internal/token"
)

// Parse compiles schema text into a Library. Declarations are generated in
// order and may only refer to structures declared before them. The first
// failure aborts the whole schema.
func Parse(text string) (*Library, error) {
	tokens, err := token.Scan(text)
	if err != nil {
		return nil, err
	}
	decls, err := parser.New(tokens).Parse()
	if err != nil {
		return nil, err
	}

	lib := newLibrary(len(decls))
	for _, d := range decls {
		h, err := generate(d.Type, lib)
		if err != nil {
			return nil, errors.WithPath(err, d.Name)
		}
		lib.add(d.Name, h)
		Logger().Debug("generated structure",
			zap.String("name", d.Name),
			zap.String("descriptor", h.Descriptor()),
			zap.Int("byte_count", h.ByteCount()))
	}
	return lib, nil
}
