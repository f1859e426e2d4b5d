package midi

import (
	"github.com/pkg/errors"
)

// TimedEvent is a message with its delta time in ticks.
type TimedEvent struct {
	Delta   uint32
	Message Message
}

// Track is an ordered list of events terminated by End-Of-Track.
type Track struct {
	// DeclaredSize is the chunk size found in (or intended for) the track
	// header. It is a hint: the actual body can be longer or shorter.
	DeclaredSize uint32

	events   []TimedEvent
	complete bool
}

// NewTrack returns an empty, incomplete track.
func NewTrack(declaredSize uint32) *Track {
	return &Track{DeclaredSize: declaredSize}
}

// AppendEvent adds an event to the track. Appending End-Of-Track completes
// the track; nothing can be appended after that.
func (t *Track) AppendEvent(delta uint32, msg Message) error {
	if t.complete {
		return ErrAlreadyCompleteTrack
	}
	if msg == nil {
		return errors.Wrap(ErrInvalidArgument, "nil message")
	}
	if err := validateDelta(delta); err != nil {
		return err
	}

	t.events = append(t.events, TimedEvent{Delta: delta, Message: msg})
	if IsEndOfTrack(msg) {
		t.complete = true
	}
	return nil
}

// Events returns the events in order. The slice must not be modified.
func (t *Track) Events() []TimedEvent {
	return t.events
}

// Complete reports whether End-Of-Track has been appended.
func (t *Track) Complete() bool {
	return t.complete
}

// Length returns the chunk length including its header, according to
// DeclaredSize.
func (t *Track) Length() int64 {
	return int64(t.DeclaredSize) + trackHeaderLen
}

// DecodeTrackHeader validates a track chunk header at offset and returns its
// declared size. It always consumes 8 bytes on success.
func DecodeTrackHeader(buf []byte, offset int) (uint32, int, error) {
	d := decoder{buf: buf, offset: offset}
	size, err := d.parseTrackHeader()
	if err != nil {
		return 0, 0, truncated(err, "track header", offset)
	}
	return size, trackHeaderLen, nil
}

// DecodeTrackBody decodes events starting at offset until End-Of-Track and
// returns the track and the number of bytes consumed. Running status starts
// empty.
func DecodeTrackBody(buf []byte, offset int) (*Track, int, error) {
	d := decoder{buf: buf, offset: offset}
	t := NewTrack(0)
	if err := d.parseTrackBody(t); err != nil {
		return nil, 0, truncated(err, "track event", d.offset)
	}
	return t, d.offset - offset, nil
}

// DecodeTrack decodes a track header and its body.
func DecodeTrack(buf []byte, offset int) (*Track, int, error) {
	d := decoder{buf: buf, offset: offset}
	t, err := d.parseTrack()
	if err != nil {
		return nil, 0, truncated(err, "track", d.offset)
	}
	return t, d.offset - offset, nil
}
