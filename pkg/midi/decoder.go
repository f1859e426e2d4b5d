package midi

import (
	"github.com/pkg/errors"
)

const (
	fileHeaderLen  = 14
	trackHeaderLen = 8
	headerDataLen  = 6
)

var (
	headerChunkID = [4]byte{0x4D, 0x54, 0x68, 0x64}
	trackChunkID  = [4]byte{0x4D, 0x54, 0x72, 0x6B}
)

// decoder is a cursor over one in-memory buffer. Every decode call owns its
// own decoder, so distinct buffers can be decoded concurrently.
type decoder struct {
	buf           []byte
	offset        int
	runningStatus RunningStatus
}

func (d *decoder) parseHeader() (Header, error) {
	if err := d.need(4); err != nil {
		return Header{}, err
	}
	id, _ := d.chunkID()
	if id != headerChunkID {
		return Header{}, errors.Wrapf(ErrMalformedHeader, "expected header chunk ID %v, got %v", headerChunkID, id)
	}

	if err := d.need(fileHeaderLen - 4); err != nil {
		return Header{}, err
	}
	size, _ := d.uint32()
	if size != headerDataLen {
		return Header{}, errors.Wrapf(ErrMalformedHeader, "expected header size to be %d, was %d", headerDataLen, size)
	}

	var h Header
	fileType, _ := d.uint16()
	h.FileType = FileType(fileType)
	h.TrackCount, _ = d.uint16()
	h.TicksPerQuarterNote, _ = d.uint16()

	if err := h.validate(ErrMalformedHeader); err != nil {
		return Header{}, err
	}
	return h, nil
}

func (d *decoder) parseTrackHeader() (uint32, error) {
	if err := d.need(trackHeaderLen); err != nil {
		return 0, err
	}
	id, _ := d.chunkID()
	if id != trackChunkID {
		d.offset -= 4
		return 0, errors.Wrapf(ErrMalformedHeader, "expected track chunk ID %v, got %v", trackChunkID, id)
	}
	size, _ := d.uint32()
	return size, nil
}

func (d *decoder) parseTrack() (*Track, error) {
	size, err := d.parseTrackHeader()
	if err != nil {
		return nil, err
	}
	t := NewTrack(size)
	if err := d.parseTrackBody(t); err != nil {
		return nil, err
	}
	return t, nil
}

// parseTrackBody reads events until End-Of-Track. The declared size of the
// track is not consulted.
func (d *decoder) parseTrackBody(t *Track) error {
	d.runningStatus = NoRunningStatus
	for !t.Complete() {
		ev, err := d.parseEvent()
		if err != nil {
			return err
		}
		if err := t.AppendEvent(ev.Delta, ev.Message); err != nil {
			return err
		}
	}
	return nil
}

// parseEvent reads a delta and a message. On failure the cursor and the
// running status are left where they were.
func (d *decoder) parseEvent() (TimedEvent, error) {
	start, rs := d.offset, d.runningStatus

	delta, err := d.varLen()
	if err != nil {
		return TimedEvent{}, err
	}

	msg, err := d.parseMessage()
	if err != nil {
		d.offset, d.runningStatus = start, rs
		return TimedEvent{}, err
	}

	return TimedEvent{Delta: delta, Message: msg}, nil
}

func (d *decoder) parseMessage() (Message, error) {
	start, rs := d.offset, d.runningStatus
	msg, err := d.message()
	if err != nil {
		d.offset, d.runningStatus = start, rs
	}
	return msg, err
}

func (d *decoder) message() (Message, error) {
	// status byte give us the msg type and channel.
	status, err := d.peekByte()
	if err != nil {
		return nil, err
	}

	if status&0x80 == 0 {
		if d.runningStatus == NoRunningStatus {
			return nil, errors.Wrapf(ErrUnknownRunningStatus, "data byte %#02x at offset %d", status, d.offset)
		}
		status = byte(d.runningStatus)
	} else {
		d.offset++
	}

	switch {
	case isVoiceStatus(status):
		f := FamilyOf(status)
		data, err := d.bytes(f.DataLen())
		if err != nil {
			return nil, err
		}
		for _, b := range data {
			if b&0x80 != 0 {
				return nil, errors.Wrapf(ErrUnexpectedData, "%s data byte %#02x at offset %d", f, b, d.offset-len(data))
			}
		}
		d.runningStatus = RunningStatus(status)
		return ChannelVoice{Family: f, Channel: status & 0x0F, Data: cloneBytes(data)}, nil

	case status == MetaStatus:
		typ, err := d.readByte()
		if err != nil {
			return nil, err
		}
		payload, err := d.lengthPrefixed()
		if err != nil {
			return nil, err
		}
		d.runningStatus = RunningStatus(status)
		return Meta{Type: typ, Payload: payload}, nil

	case status == SysExStatus, status == SysExEscape:
		payload, err := d.lengthPrefixed()
		if err != nil {
			return nil, err
		}
		d.runningStatus = RunningStatus(status)
		return SysEx{Escape: status == SysExEscape, Payload: payload}, nil

	default:
		return nil, errors.Wrapf(ErrUnsupportedStatus, "status %#02x at offset %d", status, d.offset-1)
	}
}
