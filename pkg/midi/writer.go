package midi

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Writer emits a file as an ordered series of calls: FileHeader, then for
// each track TrackHeader followed by events ending with EndOfTrack.
//
// The status byte of an event is left out when it equals the previous
// event's status byte. A Writer must be used by one goroutine at a time.
// Bytes accepted by the underlying io.Writer are never taken back when a
// later call fails.
type Writer struct {
	w         io.Writer
	last      RunningStatus
	voiceOnly bool
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// VoiceRunningStatusOnly restricts running status to channel voice events:
// meta and system exclusive events always carry their status byte and
// cancel running status. Most other SMF readers expect files written this way.
func VoiceRunningStatusOnly() WriterOption {
	return func(w *Writer) {
		w.voiceOnly = true
	}
}

// NewWriter returns a Writer emitting to w. Backpressure is whatever w.Write
// applies: every call returns once the sink has accepted or rejected the bytes.
func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	mw := &Writer{w: w}
	for _, opt := range opts {
		opt(mw)
	}
	return mw
}

// FileHeader writes the 14 byte MThd chunk. The fields are written as given;
// only a zero track count is refused.
func (w *Writer) FileHeader(fileType FileType, trackCount, ticksPerQuarterNote uint16) error {
	if trackCount < 1 {
		return errors.Wrap(ErrInvalidArgument, "must at least have one track")
	}

	buf := make([]byte, fileHeaderLen)
	copy(buf, headerChunkID[:])
	binary.BigEndian.PutUint32(buf[4:], headerDataLen)
	binary.BigEndian.PutUint16(buf[8:], uint16(fileType))
	binary.BigEndian.PutUint16(buf[10:], trackCount)
	binary.BigEndian.PutUint16(buf[12:], ticksPerQuarterNote)

	writerLog.Debug("file header",
		zap.Uint16("fileType", uint16(fileType)),
		zap.Uint16("tracks", trackCount),
		zap.Uint16("ticks", ticksPerQuarterNote))

	return w.write(buf)
}

// TrackHeader writes the 8 byte MTrk chunk header with sizeHint as the
// declared size. The size is not computed or patched later; use Track for
// a header carrying the real size. Running status starts over.
func (w *Writer) TrackHeader(sizeHint uint32) error {
	buf := make([]byte, trackHeaderLen)
	copy(buf, trackChunkID[:])
	binary.BigEndian.PutUint32(buf[4:], sizeHint)

	if err := w.write(buf); err != nil {
		return err
	}
	w.last = NoRunningStatus
	return nil
}

// Track buffers the events written by fn and emits them after a track
// header declaring their exact size.
func (w *Writer) Track(fn func(tw *Writer) error) error {
	var body bytes.Buffer
	tw := &Writer{w: &body, voiceOnly: w.voiceOnly}
	if err := fn(tw); err != nil {
		return err
	}
	if uint64(body.Len()) > math.MaxUint32 {
		return errors.Wrapf(ErrInvalidArgument, "track body of %d bytes", body.Len())
	}
	if err := w.TrackHeader(uint32(body.Len())); err != nil {
		return err
	}
	return w.write(body.Bytes())
}

// Event writes a delta time, a status byte and raw data bytes. For channel
// voice statuses data must hold the family's fixed number of 7-bit bytes;
// for 0xF0-0xFF it is written verbatim.
func (w *Writer) Event(delta uint32, status byte, data []byte) error {
	if err := validateDelta(delta); err != nil {
		return err
	}
	if err := validateStatus(status); err != nil {
		return err
	}
	if isVoiceStatus(status) {
		if err := validateData(FamilyOf(status), data); err != nil {
			return err
		}
	}

	buf := AppendVLQ(make([]byte, 0, 6+len(data)), delta)
	var next RunningStatus
	if w.voiceOnly && !isVoiceStatus(status) {
		buf, next = append(buf, status), NoRunningStatus
	} else {
		buf, next = appendStatus(buf, status, w.last)
	}
	buf = append(buf, data...)

	if err := w.write(buf); err != nil {
		return err
	}
	w.last = next
	return nil
}

// WriteMessage writes a decoded message back out.
func (w *Writer) WriteMessage(delta uint32, msg Message) error {
	if err := validateMessage(msg); err != nil {
		return err
	}

	switch m := msg.(type) {
	case ChannelVoice:
		return w.Event(delta, m.Status(), m.Data)
	case Meta:
		return w.Meta(delta, m.Type, m.Payload)
	default:
		sx := msg.(SysEx)
		data := AppendVLQ(nil, uint32(len(sx.Payload)))
		return w.Event(delta, sx.Status(), append(data, sx.Payload...))
	}
}

func (w *Writer) channelVoice(delta uint32, f Family, channel uint8, data ...byte) error {
	m, err := NewChannelVoice(f, channel, data...)
	if err != nil {
		return err
	}
	return w.Event(delta, m.Status(), m.Data)
}

// NoteOff writes a "note off" event.
func (w *Writer) NoteOff(delta uint32, channel, note, velocity uint8) error {
	return w.channelVoice(delta, NoteOff, channel, note, velocity)
}

// NoteOn writes a "note on" event.
func (w *Writer) NoteOn(delta uint32, channel, note, velocity uint8) error {
	return w.channelVoice(delta, NoteOn, channel, note, velocity)
}

// PolyphonicAftertouch writes a per-note pressure event.
func (w *Writer) PolyphonicAftertouch(delta uint32, channel, note, pressure uint8) error {
	return w.channelVoice(delta, PolyphonicAftertouch, channel, note, pressure)
}

// ControlChange writes a controller event.
func (w *Writer) ControlChange(delta uint32, channel, controller, value uint8) error {
	return w.channelVoice(delta, ControlChange, channel, controller, value)
}

// ProgramChange writes a "program change" event.
func (w *Writer) ProgramChange(delta uint32, channel, program uint8) error {
	return w.channelVoice(delta, ProgramChange, channel, program)
}

// ChannelAftertouch writes a channel pressure event.
func (w *Writer) ChannelAftertouch(delta uint32, channel, pressure uint8) error {
	return w.channelVoice(delta, ChannelAftertouch, channel, pressure)
}

// PitchBend writes a pitch bend event. value is the 14-bit bend amount,
// 0x2000 being the center.
func (w *Writer) PitchBend(delta uint32, channel uint8, value uint16) error {
	if value > 0x3FFF {
		return errors.Wrapf(ErrInvalidArgument, "pitch bend %#04x (0-0x3FFF)", value)
	}
	return w.channelVoice(delta, PitchBendChange, channel, byte(value&0x7F), byte(value>>7))
}

// Meta writes a meta event with the given type and payload.
func (w *Writer) Meta(delta uint32, typ byte, payload []byte) error {
	if err := validateLength(len(payload)); err != nil {
		return err
	}
	data := append([]byte{typ}, EncodeVLQ(uint32(len(payload)))...)
	return w.Event(delta, MetaStatus, append(data, payload...))
}

// EndOfTrack writes the "end of track" meta event.
func (w *Writer) EndOfTrack(delta uint32) error {
	return w.Meta(delta, MetaEndOfTrack, nil)
}

func (w *Writer) write(p []byte) error {
	if _, err := w.w.Write(p); err != nil {
		writerLog.Debug("write failed", zap.Int("bytes", len(p)), zap.Error(err))
		return errors.Wrap(err, "midi write")
	}
	return nil
}
