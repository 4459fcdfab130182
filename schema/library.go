package schema

import (
	"encoding/hex"

	"github.com/zeebo/blake3"

	"github.com/wippyai/bitschema/codec"
)

// Library maps declared structure names to their handlers and remembers the
// declaration order. A Library is immutable once Parse returns it.
type Library struct {
	handlers map[string]codec.Handler
	names    []string
}

func newLibrary(capacity int) *Library {
	return &Library{
		handlers: make(map[string]codec.Handler, capacity),
		names:    make([]string, 0, capacity),
	}
}

// add registers h under name. Redeclaring a name replaces its handler but
// keeps its original position.
func (l *Library) add(name string, h codec.Handler) {
	if _, ok := l.handlers[name]; !ok {
		l.names = append(l.names, name)
	}
	l.handlers[name] = h
}

// Get returns the handler declared as name.
func (l *Library) Get(name string) (codec.Handler, bool) {
	if l == nil {
		return nil, false
	}
	h, ok := l.handlers[name]
	return h, ok
}

// Names returns structure names in declaration order.
func (l *Library) Names() []string {
	if l == nil {
		return nil
	}
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.names)
}

// Fingerprint identifies the wire format of the whole library: a hex blake3
// digest over "name=descriptor;" for every structure in declaration order.
// Two schemas with the same fingerprint encode identically.
func (l *Library) Fingerprint() string {
	h := blake3.New()
	for _, name := range l.Names() {
		_, _ = h.Write([]byte(name + "=" + l.handlers[name].Descriptor() + ";"))
	}
	return hex.EncodeToString(h.Sum(nil))
}
