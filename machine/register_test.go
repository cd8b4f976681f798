package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisters_Set(t *testing.T) {
	assert := assert.New(t)

	r := &Registers{}
	for n := range REGISTER_COUNT {
		assert.Equal(0, r.Get(n))
	}

	assert.NoError(r.Set(0, VALUE_MAX))
	assert.NoError(r.Set(31, VALUE_MIN))
	assert.Equal(VALUE_MAX, r.Get(0))
	assert.Equal(VALUE_MIN, r.Get(31))
}

func TestRegisters_Set_Range(t *testing.T) {
	assert := assert.New(t)

	r := &Registers{}
	assert.NoError(r.Set(5, 17))

	assert.ErrorIs(r.Set(5, VALUE_MAX+1), ErrRegisterOverflow)
	assert.ErrorIs(r.Set(5, VALUE_MIN-1), ErrRegisterOverflow)
	assert.ErrorIs(r.Set(5, 1<<40), ErrRegisterOverflow)
	assert.Equal(17, r.Get(5))
}

func TestRegisters_Reset(t *testing.T) {
	assert := assert.New(t)

	r := &Registers{}
	for n := range REGISTER_COUNT {
		assert.NoError(r.Set(n, n+1))
	}

	r.Reset()
	for n := range REGISTER_COUNT {
		assert.Equal(0, r.Get(n))
	}
}

func TestInRange(t *testing.T) {
	assert := assert.New(t)

	assert.True(InRange(0))
	assert.True(InRange(-65535))
	assert.True(InRange(65535))
	assert.False(InRange(-65536))
	assert.False(InRange(65536))
}
