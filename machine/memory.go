package machine

const (
	MEMORY_SIZE = 65536 // Number of addressable memory cells.
)

// Memory is the data memory. Accesses outside 0..MEMORY_SIZE-1 are
// ignored rather than trapped.
type Memory struct {
	Cell [MEMORY_SIZE]int32
}

// Valid returns true if the address names a memory cell.
func (m *Memory) Valid(addr int) bool {
	return addr >= 0 && addr < MEMORY_SIZE
}

// Store writes value at addr. Out of range stores are dropped.
func (m *Memory) Store(addr int, value int) (ok bool) {
	if !m.Valid(addr) {
		return
	}

	m.Cell[addr] = int32(value)
	return true
}

// Load reads the value at addr. Out of range loads report !ok.
func (m *Memory) Load(addr int) (value int, ok bool) {
	if !m.Valid(addr) {
		return
	}

	return int(m.Cell[addr]), true
}

// Reset zeros all of memory.
func (m *Memory) Reset() {
	clear(m.Cell[:])
}
