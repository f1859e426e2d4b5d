package main

import (
	"bufio"
	"context"
	"os"

	"github.com/Garik-/smf/pkg/midi"
	"github.com/remeh/sizedwaitgroup"
	"go.uber.org/zap"
)

type result struct {
	name     string
	size     int64
	sequence *midi.Sequence
	err      error
}

func decodeFile(name string) *result {
	out := &result{name: name}
	f, err := os.Open(name)
	if err != nil {
		out.err = err
		return out
	}

	defer f.Close()

	if fi, err := f.Stat(); err == nil {
		out.size = fi.Size()
	}

	out.sequence, out.err = midi.ReadSequence(f)
	return out
}

func readList(file *os.File) <-chan string {
	out := make(chan string)

	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanLines)

	go func() {
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				out <- line
			}
		}
		close(out)
	}()

	return out
}

func decodeWorker(ctx context.Context, paths <-chan string, cntRoutines int) (<-chan *result, <-chan struct{}) {
	log := decoderLog.Named("decodeWorker")
	out := make(chan *result)
	done := make(chan struct{}, 1)

	go func() {
		swg := sizedwaitgroup.New(cntRoutines)

	loop:
		for path := range paths {
			if err := swg.AddWithContext(ctx); err != nil {
				log.Debug("context done")
				break loop
			}

			go func(path string) {
				defer swg.Done()

				select {
				case out <- decodeFile(path):
				case <-ctx.Done():
					log.Debug("decodeFile context done", zap.String("path", path))
				}
			}(path)
		}

		swg.Wait()
		close(out)

		done <- struct{}{}
		close(done)
	}()

	return out, done
}
