package audio

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestSquareWave(t *testing.T) {
	s := squareWave(8, 1)
	samples := make([][2]float64, 16)

	n, ok := s.Stream(samples)
	assert.True(t, ok)
	assert.Equal(t, 16, n)

	for i, sample := range samples {
		want := amplitude
		if i%8 >= 4 {
			want = -amplitude
		}
		assert.Equal(t, want, sample[0])
		assert.Equal(t, sample[0], sample[1])
	}
}
