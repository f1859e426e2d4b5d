package midi

import "github.com/pkg/errors"

var (
	// ErrMalformedHeader reports a bad chunk magic, a wrong header length or a
	// file type that does not agree with the track count.
	ErrMalformedHeader = errors.New("malformed header")
	// ErrTruncatedInput reports that the buffer ended before the current
	// structure was complete.
	ErrTruncatedInput = errors.New("truncated input")
	// ErrNeedMoreData is returned by DecodeMessage when the buffer does not yet
	// hold the whole message. Streaming callers may append bytes and retry.
	ErrNeedMoreData = errors.New("need more data")
	// ErrUnknownRunningStatus reports a data byte with no running status in effect.
	ErrUnknownRunningStatus = errors.New("data byte without running status")
	// ErrUnsupportedStatus reports a system status byte that cannot appear in a file.
	ErrUnsupportedStatus = errors.New("unsupported status byte")
	// ErrUnexpectedData is a generic error reporting that the parser encountered unexpected data.
	ErrUnexpectedData = errors.New("unexpected data content")
	// ErrVLQTooLong reports a variable length quantity longer than four bytes.
	ErrVLQTooLong = errors.New("variable length quantity too long")
	// ErrAlreadyCompleteTrack is returned when appending to a track that already
	// holds its End-Of-Track event.
	ErrAlreadyCompleteTrack = errors.New("track already complete")
	// ErrInvalidArgument is returned by the writer for out of range values.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrTrackCountMismatch is the only non-fatal condition: more tracks were
	// added to a sequence than its header declares.
	ErrTrackCountMismatch = errors.New("track count mismatch")
)

func truncated(err error, what string, offset int) error {
	if errors.Is(err, ErrNeedMoreData) {
		return errors.Wrapf(ErrTruncatedInput, "%s at offset %d", what, offset)
	}
	return err
}
