package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/tidwall/jsonc"

	"github.com/wippyai/bitschema"
	"github.com/wippyai/bitschema/codec"
)

const (
	formatJSON = "json"
	formatCBOR = "cbor"
)

// remainderRoom is the buffer space added for handlers that end in a
// remainder string when no explicit size is configured.
const remainderRoom = 256

var cborMode cbor.EncMode

func init() {
	var err error
	cborMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("bitschema: CBOR encoder initialization failed: " + err.Error())
	}
}

// readValueArg returns the value text, loading it from a file when arg
// starts with '@'.
func readValueArg(arg string) (string, error) {
	if name, ok := strings.CutPrefix(arg, "@"); ok {
		data, err := os.ReadFile(name)
		if err != nil {
			return "", fmt.Errorf("read value: %w", err)
		}
		return string(data), nil
	}
	return arg, nil
}

// parseValue decodes JSON with comments and trailing commas. Numbers stay
// json.Number so integers keep full precision.
func parseValue(text string) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON([]byte(text))))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("parse value: %w", err)
	}
	return v, nil
}

// bufferSize picks the encode buffer size for h. A positive override wins.
func bufferSize(h codec.Handler, override int) int {
	if override > 0 {
		return override
	}
	n := h.ByteCount()
	if codec.IsVariable(h) {
		n += remainderRoom
	}
	return n
}

// encodeValue packs v and returns only the bytes produced.
func encodeValue(h codec.Handler, v any, m *codec.Mask, size int) ([]byte, error) {
	buf := make([]byte, bufferSize(h, size))
	n, err := bitschema.Encode(h, buf, v, m)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

func decodeHex(h codec.Handler, text string) (any, error) {
	text = strings.TrimPrefix(strings.Join(strings.Fields(text), ""), "0x")
	data, err := hex.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return bitschema.Decode(h, data)
}

// formatValue renders a decoded value as JSON text or as hex of its
// deterministic CBOR encoding.
func formatValue(v any, format string) (string, error) {
	switch format {
	case formatCBOR:
		data, err := cborMode.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("cbor: %w", err)
		}
		return hex.EncodeToString(data), nil
	default:
		data, err := json.Marshal(jsonSafe(v))
		if err != nil {
			return "", fmt.Errorf("json: %w", err)
		}
		return string(data), nil
	}
}

// jsonSafe replaces NaN and infinities, which JSON cannot carry, with the
// strings "NaN", "+Inf" and "-Inf".
func jsonSafe(v any) any {
	switch x := v.(type) {
	case float32:
		return finiteOrString(float64(x), v)
	case float64:
		return finiteOrString(x, v)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = jsonSafe(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = jsonSafe(e)
		}
		return out
	}
	return v
}

func finiteOrString(f float64, v any) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	return v
}
