package midi

import (
	"fmt"

	"github.com/pkg/errors"
)

// MetaEndOfTrack is the meta type terminating a track.
const MetaEndOfTrack byte = 0x2F

// Message is one MIDI event body: ChannelVoice, Meta or SysEx.
type Message interface {
	// Status returns the raw status byte.
	Status() byte
	String() string
	isMessage()
}

// ChannelVoice is a channel scoped message. Data holds exactly
// Family.DataLen() bytes.
type ChannelVoice struct {
	Family  Family
	Channel uint8
	Data    []byte
}

// NewChannelVoice validates its arguments and builds a ChannelVoice message.
func NewChannelVoice(f Family, channel uint8, data ...byte) (ChannelVoice, error) {
	if !f.Valid() {
		return ChannelVoice{}, errors.Wrapf(ErrInvalidArgument, "family %#02x", byte(f))
	}
	if err := validateChannel(channel); err != nil {
		return ChannelVoice{}, err
	}
	if err := validateData(f, data); err != nil {
		return ChannelVoice{}, err
	}
	return ChannelVoice{Family: f, Channel: channel, Data: cloneBytes(data)}, nil
}

func (m ChannelVoice) Status() byte {
	return byte(m.Family) | m.Channel&0x0F
}

func (m ChannelVoice) String() string {
	return fmt.Sprintf("Channel %d: %s %v", m.Channel, m.Family, m.Data)
}

func (ChannelVoice) isMessage() {}

// Meta is a file-only event with status 0xFF.
type Meta struct {
	Type    byte
	Payload []byte
}

// EndOfTrack returns the End-Of-Track meta message.
func EndOfTrack() Meta {
	return Meta{Type: MetaEndOfTrack}
}

func (Meta) Status() byte {
	return MetaStatus
}

func (m Meta) String() string {
	return fmt.Sprintf("Meta Event: %#02x (%d bytes)", m.Type, len(m.Payload))
}

func (Meta) isMessage() {}

// SysEx carries a system exclusive event verbatim. Status is SysExStatus or
// SysExEscape; Payload is everything after the length field.
type SysEx struct {
	Escape  bool
	Payload []byte
}

func (m SysEx) Status() byte {
	if m.Escape {
		return SysExEscape
	}
	return SysExStatus
}

func (m SysEx) String() string {
	return fmt.Sprintf("SysEx %#02x (%d bytes)", m.Status(), len(m.Payload))
}

func (SysEx) isMessage() {}

// IsEndOfTrack reports whether msg is the End-Of-Track meta event.
func IsEndOfTrack(msg Message) bool {
	m, ok := msg.(Meta)
	return ok && m.Type == MetaEndOfTrack
}

// RunningStatus is the status byte in effect for the next event of a track.
// NoRunningStatus means none has been seen yet.
type RunningStatus byte

const NoRunningStatus RunningStatus = 0

// DecodeMessage decodes one message at offset using rs as the running status.
// It returns the message, the bytes consumed and the running status for the
// next message. If the buffer ends early the error is ErrNeedMoreData and
// nothing is consumed.
func DecodeMessage(buf []byte, offset int, rs RunningStatus) (Message, int, RunningStatus, error) {
	d := decoder{buf: buf, offset: offset, runningStatus: rs}
	msg, err := d.parseMessage()
	if err != nil {
		return nil, 0, rs, err
	}
	return msg, d.offset - offset, d.runningStatus, nil
}

// EncodeMessage is the inverse of DecodeMessage.
func EncodeMessage(msg Message, rs RunningStatus) ([]byte, RunningStatus, error) {
	return AppendMessage(nil, msg, rs)
}

// AppendMessage appends the encoding of msg to dst. The status byte is left
// out when it equals rs. msg is validated first; on error dst and rs are
// returned unchanged.
func AppendMessage(dst []byte, msg Message, rs RunningStatus) ([]byte, RunningStatus, error) {
	if err := validateMessage(msg); err != nil {
		return dst, rs, err
	}

	dst, rs = appendStatus(dst, msg.Status(), rs)

	switch m := msg.(type) {
	case ChannelVoice:
		dst = append(dst, m.Data...)
	case Meta:
		dst = append(dst, m.Type)
		dst = AppendVLQ(dst, uint32(len(m.Payload)))
		dst = append(dst, m.Payload...)
	case SysEx:
		dst = AppendVLQ(dst, uint32(len(m.Payload)))
		dst = append(dst, m.Payload...)
	}

	return dst, rs, nil
}

func appendStatus(dst []byte, status byte, rs RunningStatus) ([]byte, RunningStatus) {
	if RunningStatus(status) == rs {
		return dst, rs
	}
	return append(dst, status), RunningStatus(status)
}
