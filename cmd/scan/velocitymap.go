package main

import (
	"context"

	"github.com/Garik-/smf/internal/velocity"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type stats struct {
	files  int
	bytes  int64
	tracks int
}

func newVelocityMap(parent context.Context, paths <-chan string, cntRoutines int) (velocity.Map, stats, error) {
	log := velocityMapLog.Named("newVelocityMap")
	ctx, cancel := context.WithCancel(parent)
	results, done := decodeWorker(ctx, paths, cntRoutines)

	defer func() {
		log.Debug("cancel")
		cancel()
		for range results {
		}
		<-done // wait decodeWorker closed
	}()

	m := make(velocity.Map)
	var st stats

	for result := range results {
		if result.err != nil {
			return nil, st, errors.WithMessage(result.err, result.name)
		}

		log.Debug("result", zap.String("name", result.name), zap.Int("tracks", len(result.sequence.Tracks())))
		for _, w := range result.sequence.Warnings() {
			log.Warn("sequence", zap.String("name", result.name), zap.Error(w))
		}

		m.Add(result.sequence)
		st.files++
		st.bytes += result.size
		st.tracks += len(result.sequence.Tracks())
	}

	return m, st, nil
}
