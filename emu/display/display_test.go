package display

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestFrame(t *testing.T) {
	var f Frame
	assert.Equal(t, 0, f.Lit())

	f.DrawPixel(0, 0, true)
	f.DrawPixel(Width-1, Height-1, true)
	assert.True(t, f.IsPixelOn(0, 0))
	assert.True(t, f.IsPixelOn(Width-1, Height-1))
	assert.False(t, f.IsPixelOn(1, 0))
	assert.Equal(t, 2, f.Lit())

	f.Clear()
	assert.Equal(t, 0, f.Lit())
}

func TestKeys(t *testing.T) {
	var k Keys

	key, ok := k.AnyPressed()
	assert.False(t, ok)
	assert.Equal(t, uint8(NoKey), key)

	k.Set(0xF, true)
	k.Set(0x5, true)
	k.Set(0x20, true)
	assert.True(t, k.IsPressed(0xF))
	assert.False(t, k.IsPressed(0x20))

	key, ok = k.AnyPressed()
	assert.True(t, ok)
	assert.Equal(t, uint8(0x5), key)

	k.Reset()
	assert.False(t, k.IsPressed(0xF))
}
