package guest

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/bitschema/errors"
)

// Memory wraps wazero memory to implement bitschema.Memory and
// bitschema.MemorySizer.
type Memory struct {
	mem api.Memory
}

func NewMemory(mem api.Memory) *Memory {
	return &Memory{mem: mem}
}

// Read returns a view of guest memory; writes to it are visible to the guest.
func (m *Memory) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseMemory, int(offset), int(length), int(m.mem.Size()))
	}
	return data, nil
}

func (m *Memory) Write(offset uint32, data []byte) error {
	if !m.mem.Write(offset, data) {
		return errors.OutOfBounds(errors.PhaseMemory, int(offset), len(data), int(m.mem.Size()))
	}
	return nil
}

func (m *Memory) Size() uint32 {
	return m.mem.Size()
}
