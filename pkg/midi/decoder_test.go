package midi

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDecodeSequence(t *testing.T) {
	s, err := DecodeSequence(specExample)
	require.NoError(t, err)

	assert.Equal(t, Header{FileType: MultiTrack, TrackCount: 4, TicksPerQuarterNote: 96}, s.Header)
	assert.Equal(t, MetricalTF, s.Header.TimeFormat())
	require.Len(t, s.Tracks(), 4)
	assert.Empty(t, s.Warnings())

	tempo := s.Tracks()[0]
	assert.Equal(t, uint32(0x14), tempo.DeclaredSize)
	assert.Equal(t, []TimedEvent{
		{Delta: 0, Message: Meta{Type: 0x58, Payload: []byte{4, 2, 0x18, 8}}},
		{Delta: 0, Message: Meta{Type: 0x51, Payload: []byte{7, 0xa1, 0x20}}},
		{Delta: 384, Message: EndOfTrack()},
	}, tempo.Events())

	assert.Equal(t, []TimedEvent{
		{Delta: 0, Message: ChannelVoice{Family: ProgramChange, Channel: 2, Data: []byte{0x46}}},
		{Delta: 0, Message: noteOn(2, 0x30, 0x60)},
		{Delta: 0, Message: noteOn(2, 0x3c, 0x60)},
		{Delta: 384, Message: noteOn(2, 0x30, 0)},
		{Delta: 0, Message: noteOn(2, 0x3c, 0)},
		{Delta: 0, Message: EndOfTrack()},
	}, s.Tracks()[3].Events())

	for i, track := range s.Tracks() {
		assert.True(t, track.Complete(), "track %d", i)
	}
}

func TestDecodeSequenceHeaderErrors(t *testing.T) {
	eot := trackChunk(0x00, 0xFF, 0x2F, 0x00)

	tests := []struct {
		name string
		data []byte
		err  error
	}{
		{"bad magic", concat([]byte("RIFF"), fileHeader(0, 1, 96)[4:], eot), ErrMalformedHeader},
		{"header size", concat([]byte{0x4d, 0x54, 0x68, 0x64, 0, 0, 0, 7, 0, 0, 0, 1, 0, 96, 0}, eot), ErrMalformedHeader},
		{"type 0 with two tracks", concat(fileHeader(0, 2, 480), eot, eot), ErrMalformedHeader},
		{"type 0 with no track", fileHeader(0, 0, 480), ErrMalformedHeader},
		{"type 2", concat(fileHeader(2, 1, 480), eot), ErrMalformedHeader},
		{"short magic", []byte("MTh"), ErrTruncatedInput},
		{"short header", fileHeader(1, 1, 480)[:10], ErrTruncatedInput},
		{"missing track", fileHeader(1, 2, 480), ErrTruncatedInput},
		{"track magic", concat(fileHeader(1, 1, 480), []byte("MThd\x00\x00\x00\x04\x00\xff\x2f\x00")), ErrMalformedHeader},
		{"second track truncated", concat(fileHeader(1, 2, 480), eot, eot[:10]), ErrTruncatedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := DecodeSequence(tt.data)
			assert.ErrorIs(t, err, tt.err)
			assert.Nil(t, s)
		})
	}
}

func TestDecodeSequenceRunningStatusPerTrack(t *testing.T) {
	// the second track starts with a data byte: running status from the
	// first track must not carry over
	data := concat(
		fileHeader(1, 2, 480),
		trackChunk(0x00, 0x90, 60, 100, 0x00, 0xFF, 0x2F, 0x00),
		trackChunk(0x00, 60, 0, 0x00, 0xFF, 0x2F, 0x00),
	)

	_, err := DecodeSequence(data)
	assert.ErrorIs(t, err, ErrUnknownRunningStatus)
}

func TestDecodeSequenceEmptyMultiTrack(t *testing.T) {
	s, err := DecodeSequence(fileHeader(1, 0, 480))
	require.NoError(t, err)
	assert.Empty(t, s.Tracks())
}

func TestDecodeSequenceTimeCode(t *testing.T) {
	s, err := DecodeSequence(concat(fileHeader(0, 1, 0xE728), trackChunk(0x00, 0xFF, 0x2F, 0x00)))
	require.NoError(t, err)
	assert.Equal(t, TimeCodeTF, s.Header.TimeFormat())
	assert.Equal(t, uint16(0xE728), s.Header.TicksPerQuarterNote)
}

func TestReadSequence(t *testing.T) {
	s, err := ReadSequence(bytes.NewReader(specExample))
	require.NoError(t, err)
	assert.Len(t, s.Tracks(), 4)
}

func TestSequenceAddTrackWarning(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	s := NewSequence(Header{FileType: MultiTrack, TrackCount: 1, TicksPerQuarterNote: 480})
	s.AddTrack(NewTrack(0))
	assert.Empty(t, s.Warnings())

	s.AddTrack(NewTrack(0))
	assert.Len(t, s.Tracks(), 2)
	require.Len(t, s.Warnings(), 1)
	assert.ErrorIs(t, s.Warnings()[0], ErrTrackCountMismatch)
	assert.Equal(t, 1, logs.FilterMessage("tracks exceed specified number of tracks in header field").Len())
}

func TestDecodeSequenceConcurrent(t *testing.T) {
	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			s, err := DecodeSequence(specExample)
			if err == nil && len(s.Tracks()) != 4 {
				err = ErrUnexpectedData
			}
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		assert.NoError(t, <-done)
	}
}
