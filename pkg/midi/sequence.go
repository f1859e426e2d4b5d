package midi

import (
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// FileType is the format field of the file header.
type FileType uint16

const (
	// SingleTrack files hold exactly one track.
	SingleTrack FileType = 0
	// MultiTrack files hold one or more simultaneous tracks.
	MultiTrack FileType = 1
)

type timeFormat int

const (
	MetricalTF timeFormat = iota + 1
	TimeCodeTF
)

// Header is the content of the MThd chunk.
type Header struct {
	FileType            FileType
	TrackCount          uint16
	TicksPerQuarterNote uint16
}

// TimeFormat tells whether the division field counts ticks per quarter note
// or SMPTE frames. Either way the value is opaque to this package.
func (h Header) TimeFormat() timeFormat {
	if h.TicksPerQuarterNote&0x8000 == 0 {
		return MetricalTF
	}
	return TimeCodeTF
}

func (h Header) validate(kind error) error {
	switch {
	case h.FileType != SingleTrack && h.FileType != MultiTrack:
		return errors.Wrapf(kind, "file type %d not supported", h.FileType)
	case h.FileType == SingleTrack && h.TrackCount != 1:
		return errors.Wrapf(kind, "file type 0 requires 1 track, header declares %d", h.TrackCount)
	}
	return nil
}

// Sequence is a decoded file: its header and its tracks in file order.
type Sequence struct {
	Header Header

	tracks   []*Track
	warnings []error
}

// NewSequence returns an empty sequence for building tracks programmatically.
func NewSequence(h Header) *Sequence {
	return &Sequence{Header: h}
}

// AddTrack appends a track. Going past the declared track count is reported
// as a warning, not an error.
func (s *Sequence) AddTrack(t *Track) {
	if len(s.tracks) >= int(s.Header.TrackCount) {
		err := errors.Wrapf(ErrTrackCountMismatch, "track %d exceeds declared count %d", len(s.tracks)+1, s.Header.TrackCount)
		sequenceLog.Warn("tracks exceed specified number of tracks in header field",
			zap.Int("tracks", len(s.tracks)+1), zap.Uint16("declared", s.Header.TrackCount))
		s.warnings = append(s.warnings, err)
	}
	s.tracks = append(s.tracks, t)
}

// Tracks returns the tracks in order.
func (s *Sequence) Tracks() []*Track {
	return s.tracks
}

// Warnings returns the non-fatal conditions met while building the sequence.
func (s *Sequence) Warnings() []error {
	return s.warnings
}

// DecodeSequence decodes a complete file held in buf. Tracks are read one
// after another, each one ending at its End-Of-Track event. Any error
// discards the whole sequence.
func DecodeSequence(buf []byte) (*Sequence, error) {
	log := decoderLog.Named("DecodeSequence")

	d := decoder{buf: buf}
	h, err := d.parseHeader()
	if err != nil {
		return nil, truncated(err, "file header", d.offset)
	}

	s := NewSequence(h)
	for i := 0; i < int(h.TrackCount); i++ {
		t, err := d.parseTrack()
		if err != nil {
			return nil, errors.WithMessagef(truncated(err, "track", d.offset), "track %d", i)
		}
		s.AddTrack(t)

		log.Debug("track",
			zap.Int("index", i),
			zap.Int("events", len(t.Events())),
			zap.Uint32("declaredSize", t.DeclaredSize))
	}

	if rest := len(buf) - d.offset; rest > 0 {
		log.Debug("trailing bytes", zap.Int("count", rest))
	}

	return s, nil
}

// ReadSequence reads r to the end and decodes the result.
func ReadSequence(r io.Reader) (*Sequence, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read sequence")
	}
	return DecodeSequence(buf)
}
