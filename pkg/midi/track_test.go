package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackAppendEvent(t *testing.T) {
	track := NewTrack(0)
	require.NoError(t, track.AppendEvent(0, noteOn(0, 60, 100)))
	assert.False(t, track.Complete())

	require.NoError(t, track.AppendEvent(480, EndOfTrack()))
	assert.True(t, track.Complete())

	err := track.AppendEvent(0, noteOff(0, 60, 0))
	assert.ErrorIs(t, err, ErrAlreadyCompleteTrack)
	err = track.AppendEvent(0, EndOfTrack())
	assert.ErrorIs(t, err, ErrAlreadyCompleteTrack)

	assert.Len(t, track.Events(), 2)
	assert.Equal(t, uint32(480), track.Events()[1].Delta)
}

func TestTrackAppendInvalid(t *testing.T) {
	track := NewTrack(0)
	assert.ErrorIs(t, track.AppendEvent(0, nil), ErrInvalidArgument)
	assert.ErrorIs(t, track.AppendEvent(MaxVLQ+1, EndOfTrack()), ErrInvalidArgument)
	assert.Empty(t, track.Events())
	assert.False(t, track.Complete())
}

func TestTrackLength(t *testing.T) {
	assert.Equal(t, int64(28), NewTrack(20).Length())
}

func TestDecodeTrackHeader(t *testing.T) {
	buf := append([]byte{0x00}, trackChunk(0x00, 0xFF, 0x2F, 0x00)...)

	size, n, err := DecodeTrackHeader(buf, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), size)
	assert.Equal(t, 8, n)

	_, _, err = DecodeTrackHeader([]byte("MThd\x00\x00\x00\x00"), 0)
	assert.ErrorIs(t, err, ErrMalformedHeader)

	_, _, err = DecodeTrackHeader([]byte("MTrk\x00\x00"), 0)
	assert.ErrorIs(t, err, ErrTruncatedInput)
}

func TestDecodeTrackBody(t *testing.T) {
	body := []byte{
		0x00, 0x90, 60, 100,
		0x83, 0x60, 60, 0,
		0x00, 0xFF, 0x2F, 0x00,
		0xDE, 0xAD, // beyond end of track
	}

	track, n, err := DecodeTrackBody(body, 0)
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	assert.True(t, track.Complete())
	assert.Equal(t, []TimedEvent{
		{Delta: 0, Message: noteOn(0, 60, 100)},
		{Delta: 480, Message: noteOn(0, 60, 0)},
		{Delta: 0, Message: EndOfTrack()},
	}, track.Events())
}

func TestDecodeTrackBodyTruncated(t *testing.T) {
	body := []byte{0x00, 0x90, 60, 100, 0x00, 0x80, 60}

	_, _, err := DecodeTrackBody(body, 0)
	assert.ErrorIs(t, err, ErrTruncatedInput)

	// no end of track at all
	_, _, err = DecodeTrackBody([]byte{0x00, 0x90, 60, 100}, 0)
	assert.ErrorIs(t, err, ErrTruncatedInput)
}

func TestDecodeTrackIgnoresDeclaredSize(t *testing.T) {
	body := []byte{0x00, 0xC0, 0x05, 0x00, 0xFF, 0x2F, 0x00}

	for _, declared := range []uint32{0, 3, 1000} {
		buf := trackChunk(body...)
		buf[4], buf[5], buf[6], buf[7] = byte(declared>>24), byte(declared>>16), byte(declared>>8), byte(declared)

		track, n, err := DecodeTrack(buf, 0)
		require.NoError(t, err)
		assert.Equal(t, len(buf), n)
		assert.Equal(t, declared, track.DeclaredSize)
		assert.Len(t, track.Events(), 2)
	}
}

func TestDecodeTrackUnknownRunningStatus(t *testing.T) {
	_, _, err := DecodeTrack(trackChunk(0x00, 60, 100, 0x00, 0xFF, 0x2F, 0x00), 0)
	assert.ErrorIs(t, err, ErrUnknownRunningStatus)
}
