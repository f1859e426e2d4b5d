package midi

import "fmt"

// Family is a channel voice status byte with the channel nibble cleared.
type Family byte

const (
	NoteOff              Family = 0x80
	NoteOn               Family = 0x90
	PolyphonicAftertouch Family = 0xA0
	ControlChange        Family = 0xB0
	ProgramChange        Family = 0xC0
	ChannelAftertouch    Family = 0xD0
	PitchBendChange      Family = 0xE0
)

const (
	// MetaStatus is the status byte of every meta event.
	MetaStatus byte = 0xFF
	// SysExStatus starts a system exclusive event.
	SysExStatus byte = 0xF0
	// SysExEscape starts an escaped (continuation) system exclusive event.
	SysExEscape byte = 0xF7
)

var families = [...]struct {
	name    string
	dataLen int
}{
	{"NOTE_OFF", 2},
	{"NOTE_ON", 2},
	{"POLYPHONIC_AFTERTOUCH", 2},
	{"CONTROL_CHANGE", 2},
	{"PROGRAM_CHANGE", 1},
	{"CHANNEL_AFTERTOUCH", 1},
	{"PITCH_BEND_CHANGE", 2},
}

// FamilyOf returns the family of a channel voice status byte.
func FamilyOf(status byte) Family {
	return Family(status & 0xF0)
}

// Valid reports whether f is one of the seven channel voice families.
func (f Family) Valid() bool {
	return f&0x0F == 0 && f >= NoteOff && f <= PitchBendChange
}

// DataLen returns the fixed number of data bytes following the status byte.
func (f Family) DataLen() int {
	if !f.Valid() {
		return 0
	}
	return families[(f>>4)-8].dataLen
}

func (f Family) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Family(%#02x)", byte(f))
	}
	return families[(f>>4)-8].name
}

func isVoiceStatus(b byte) bool {
	return 0x80 <= b && b <= 0xEF
}
