package midi

// specExample is the format 1 example file from the Standard MIDI File
// specification. It relies on running status and declares exact sizes.
var specExample = []byte{
	// MThd, length 6, format 1, four tracks, 96 ticks per quarter note
	0x4d, 0x54, 0x68, 0x64, 0, 0, 0, 6, 0, 1, 0, 4, 0, 0x60,

	// MTrk: time signature, tempo, end of track
	0x4d, 0x54, 0x72, 0x6b, 0, 0, 0, 0x14,
	0, 0xff, 0x58, 4, 4, 2, 0x18, 8,
	0, 0xff, 0x51, 3, 7, 0xa1, 0x20,
	0x83, 0, 0xff, 0x2f, 0,

	// MTrk: program change, note on, note off by running status
	0x4d, 0x54, 0x72, 0x6b, 0, 0, 0, 0x10,
	0, 0xc0, 5,
	0x81, 0x40, 0x90, 0x4c, 0x20,
	0x81, 0x40, 0x4c, 0,
	0, 0xff, 0x2f, 0,

	// MTrk: same on channel 1
	0x4d, 0x54, 0x72, 0x6b, 0, 0, 0, 0xf,
	0, 0xc1, 0x2e,
	0x60, 0x91, 0x43, 0x40,
	0x82, 0x20, 0x43, 0,
	0, 0xff, 0x2f, 0,

	// MTrk: two notes on channel 2, all but the first by running status
	0x4d, 0x54, 0x72, 0x6b, 0, 0, 0, 0x15,
	0, 0xc2, 0x46,
	0, 0x92, 0x30, 0x60,
	0, 0x3c, 0x60,
	0x83, 0, 0x30, 0,
	0, 0x3c, 0,
	0, 0xff, 0x2f, 0,
}

func fileHeader(fileType, tracks, ticks uint16) []byte {
	return []byte{
		0x4d, 0x54, 0x68, 0x64, 0, 0, 0, 6,
		byte(fileType >> 8), byte(fileType),
		byte(tracks >> 8), byte(tracks),
		byte(ticks >> 8), byte(ticks),
	}
}

func trackChunk(body ...byte) []byte {
	n := len(body)
	return append([]byte{0x4d, 0x54, 0x72, 0x6b, byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}, body...)
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func noteOn(ch, note, vel uint8) ChannelVoice {
	return ChannelVoice{Family: NoteOn, Channel: ch, Data: []byte{note, vel}}
}

func noteOff(ch, note, vel uint8) ChannelVoice {
	return ChannelVoice{Family: NoteOff, Channel: ch, Data: []byte{note, vel}}
}
