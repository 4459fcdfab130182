// Package bitschema compiles a small schema language into binary codecs for
// tightly packed, firmware-style wire formats.
//
// A schema declares named structures built from primitives and three
// composites, each of which may carry a leading presence bitmask:
//
//	Version = { major: u8, minor: u8, patch: u8 };
//	Color   = { red: u8, green: u8, blue: u8 };
//	Led     = { color1: Color, color2: Color, pattern: u8 };
//	Config  = {/16/ version: Version, name: s, leds: [// Led : 16] };
//
// Absent children of masked composites take no bytes on the wire.
//
// # Architecture Overview
//
//	bitschema/           Root package with the Memory interface and facades
//	├── codec/           Serializer, Handler and the composite handler algebra
//	├── schema/          Schema tokenizer, parser, generator, Library, Compiler
//	├── component/       Mapping of handlers onto component-model WIT types
//	├── guest/           Encoding and decoding in wazero guest memory
//	├── errors/          Structured error types
//	└── cmd/bitschema/   Command-line tool and interactive browser
//
// # Quick Start
//
//	lib, err := bitschema.Parse(text)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	h, _ := lib.Get("Config")
//
//	buf := make([]byte, h.ByteCount())
//	n, err := bitschema.Encode(h, buf, map[string]any{"name": "abc"}, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	v, err := bitschema.Decode(h, buf[:n])
//
// # Thread Safety
//
// A Library and its Handlers are immutable and safe for concurrent use.
// A codec.Serializer is a single cursor and must be used by one operation
// at a time. schema.Compiler is safe for concurrent use.
package bitschema
