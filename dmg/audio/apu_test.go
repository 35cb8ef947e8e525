package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lcerati/go-dmg/dmg/addr"
)

func TestRegisterLatch(t *testing.T) {
	a := New()

	a.WriteRegister(addr.NR11, 0x80)
	a.WriteRegister(addr.NR52, 0xF1)

	assert.Equal(t, byte(0x80), a.ReadRegister(addr.NR11))
	assert.Equal(t, byte(0xF1), a.ReadRegister(addr.NR52))
	assert.Equal(t, byte(0x00), a.ReadRegister(addr.NR13))
}

func TestOutOfRangeAccess(t *testing.T) {
	a := New()

	a.WriteRegister(addr.AudioEnd+1, 0x42)

	assert.Equal(t, byte(0xFF), a.ReadRegister(addr.AudioEnd+1))
	assert.Equal(t, byte(0xFF), a.ReadRegister(addr.AudioStart-1))
}
