package machine

const (
	REGISTER_COUNT = 32     // Number of general purpose registers.
	VALUE_MIN      = -65535 // Smallest value a register may hold.
	VALUE_MAX      = 65535  // Largest value a register may hold.
)

// InRange returns true if the value may be held in a register.
func InRange(value int) bool {
	return value >= VALUE_MIN && value <= VALUE_MAX
}

// Registers is the register file.
type Registers [REGISTER_COUNT]int32

// Get returns the value of register n.
func (r *Registers) Get(n int) int {
	return int(r[n])
}

// Set stores value in register n, refusing values outside
// VALUE_MIN..VALUE_MAX.
func (r *Registers) Set(n int, value int) (err error) {
	if !InRange(value) {
		err = ErrRegisterOverflow
		return
	}

	r[n] = int32(value)
	return
}

// Reset zeros all registers.
func (r *Registers) Reset() {
	clear(r[:])
}
