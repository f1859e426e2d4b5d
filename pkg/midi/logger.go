package midi

import "go.uber.org/zap"

var (
	decoderLog  = zap.NewNop()
	sequenceLog = zap.NewNop()
	writerLog   = zap.NewNop()
)

// SetLogger enables debug logging for the package. It is not safe to call
// while decoding or writing is in progress.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	decoderLog = l.Named("decoder")
	sequenceLog = l.Named("sequence")
	writerLog = l.Named("writer")
}
