package main

import (
	"github.com/Garik-/smf/internal/velocity"
	"github.com/Garik-/smf/pkg/midi"
	"go.uber.org/zap"
)

var decoderLog = zap.NewNop()
var velocityMapLog = zap.NewNop()

func enableDebugLogging(l *zap.Logger) {
	decoderLog = l
	velocityMapLog = l
	midi.SetLogger(l)
	velocity.SetLogger(l)
}
