package midi

import (
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const scanChunkSize = 4096

type scanState int

const (
	scanFileHeader scanState = iota
	scanTrackHeader
	scanEvents
	scanDone
)

// Scanner decodes a file event by event from an io.Reader, holding only the
// bytes of the event being decoded. Whenever a structure is incomplete it
// reads more input and retries.
//
//	s := midi.NewScanner(r)
//	for s.Scan() {
//		ev := s.Event()
//		...
//	}
//	if err := s.Err(); err != nil { ... }
type Scanner struct {
	r   io.Reader
	d   decoder
	eof bool

	state  scanState
	header Header
	track  int
	size   uint32
	event  TimedEvent
	err    error
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: r, track: -1}
}

// Header returns the file header. It reads it first if Scan has not been
// called yet.
func (s *Scanner) Header() (Header, error) {
	if s.state == scanFileHeader && s.err == nil {
		s.readFileHeader()
	}
	return s.header, s.err
}

// Scan advances to the next event. It returns false at the end of the last
// declared track or on error.
func (s *Scanner) Scan() bool {
	for s.err == nil {
		switch s.state {
		case scanFileHeader:
			s.readFileHeader()
		case scanTrackHeader:
			if s.track+1 >= int(s.header.TrackCount) {
				s.state = scanDone
				continue
			}
			s.readTrackHeader()
		case scanEvents:
			return s.readEvent()
		case scanDone:
			return false
		}
	}
	return false
}

// Event returns the event read by the last successful Scan.
func (s *Scanner) Event() TimedEvent {
	return s.event
}

// Track returns the zero-based index of the track the current event belongs to.
func (s *Scanner) Track() int {
	return s.track
}

// DeclaredSize returns the size found in the current track's header.
func (s *Scanner) DeclaredSize() uint32 {
	return s.size
}

// Err returns the first error met, if any.
func (s *Scanner) Err() error {
	return s.err
}

func (s *Scanner) readFileHeader() {
	s.retry("file header", func() error {
		h, err := s.d.parseHeader()
		s.header = h
		return err
	})
	if s.err == nil {
		s.state = scanTrackHeader
	}
}

func (s *Scanner) readTrackHeader() {
	s.retry("track header", func() error {
		size, err := s.d.parseTrackHeader()
		s.size = size
		return err
	})
	if s.err == nil {
		s.track++
		s.d.runningStatus = NoRunningStatus
		s.state = scanEvents
		decoderLog.Debug("scan track", zap.Int("index", s.track), zap.Uint32("declaredSize", s.size))
	}
}

func (s *Scanner) readEvent() bool {
	s.retry("track event", func() error {
		ev, err := s.d.parseEvent()
		s.event = ev
		return err
	})
	if s.err != nil {
		return false
	}
	if IsEndOfTrack(s.event.Message) {
		s.state = scanTrackHeader
	}
	return true
}

// retry runs parse until it stops asking for more data. parse must leave the
// cursor untouched when it fails.
func (s *Scanner) retry(what string, parse func() error) {
	for {
		s.compact()
		start := s.d.offset
		err := parse()
		if err == nil {
			return
		}
		if !errors.Is(err, ErrNeedMoreData) {
			s.err = err
			return
		}
		s.d.offset = start
		if s.eof {
			s.err = truncated(err, what, start)
			return
		}
		if err := s.fill(); err != nil {
			s.err = err
			return
		}
	}
}

func (s *Scanner) compact() {
	if s.d.offset > 0 && s.d.offset >= len(s.d.buf)/2 {
		n := copy(s.d.buf, s.d.buf[s.d.offset:])
		s.d.buf = s.d.buf[:n]
		s.d.offset = 0
	}
}

func (s *Scanner) fill() error {
	buf := s.d.buf
	if cap(buf)-len(buf) < scanChunkSize {
		grown := make([]byte, len(buf), 2*cap(buf)+scanChunkSize)
		copy(grown, buf)
		buf = grown
	}
	n, err := s.r.Read(buf[len(buf) : len(buf)+scanChunkSize])
	s.d.buf = buf[:len(buf)+n]
	if err == io.EOF {
		s.eof = true
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "midi read")
	}
	return nil
}
