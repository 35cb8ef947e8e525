package bit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	assert.Equal(t, uint16(0xABCD), Combine(0xAB, 0xCD))
	assert.Equal(t, uint16(0x00FF), Combine(0x00, 0xFF))
}

func TestHighLow(t *testing.T) {
	assert.Equal(t, uint8(0xAB), High(0xABCD))
	assert.Equal(t, uint8(0xCD), Low(0xABCD))
}

func TestSetResetIsSet(t *testing.T) {
	v := uint8(0)
	v = Set(3, v)
	assert.True(t, IsSet(3, v))
	assert.False(t, IsSet(2, v))

	v = Reset(3, v)
	assert.False(t, IsSet(3, v))
	assert.Equal(t, uint8(0), v)
}
