package velocity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBeatRange(t *testing.T) {
	r := newBeatRange(480)
	r.stepBy(2)

	assert.Equal(t, 2, r.cnt)
	assert.Equal(t, int64(960), r.lowerBound)
	assert.Equal(t, int64(1440), r.upperBound)
	assert.True(t, r.contains(960))
	assert.False(t, r.contains(1440))
	assert.Equal(t, 2, r.position())
}

func TestPosition(t *testing.T) {
	tests := []struct {
		ticks int64
		want  int
	}{
		{0, 0},
		{90, 0},
		{479, 0},
		{480, 1},
		{960, 2},
		{1439, 2},
		{1440, 3},
		{1920, 0},
		{2400, 1},
		{480*4*100 + 970, 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Position(tt.ticks, 480), "ticks %d", tt.ticks)
	}

	assert.Equal(t, 0, Position(1000, 0))
	assert.Equal(t, 0, Position(-1, 480))
}
