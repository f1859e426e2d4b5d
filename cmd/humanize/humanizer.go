package main

import (
	"io"
	"math/rand"

	"github.com/Garik-/smf/internal/velocity"
	"github.com/Garik-/smf/pkg/midi"
)

type humanizer struct {
	data     velocity.Map
	rng      *rand.Rand
	min, max int
	changed  int
}

// write emits seq to w with the velocity of every sounding note replaced by
// a recorded one for the same note, type and beat position.
func (h *humanizer) write(w io.Writer, seq *midi.Sequence) error {
	mw := midi.NewWriter(w, midi.VoiceRunningStatusOnly())
	if err := mw.FileHeader(seq.Header.FileType, seq.Header.TrackCount, seq.Header.TicksPerQuarterNote); err != nil {
		return err
	}

	var tpq int64
	if seq.Header.TimeFormat() == midi.MetricalTF {
		tpq = int64(seq.Header.TicksPerQuarterNote)
	}

	for _, track := range seq.Tracks() {
		err := mw.Track(func(tw *midi.Writer) error {
			var abs int64
			for _, ev := range track.Events() {
				abs += int64(ev.Delta)
				if err := tw.WriteMessage(ev.Delta, h.humanize(ev.Message, velocity.Position(abs, tpq))); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func (h *humanizer) humanize(msg midi.Message, position int) midi.Message {
	cv, ok := msg.(midi.ChannelVoice)
	if !ok || cv.Family != midi.NoteOn || cv.Data[1] == 0 {
		return msg
	}

	v, ok := h.data.Pick(h.rng, cv.Data[0], cv.Family, position, h.min, h.max)
	if !ok {
		return msg
	}

	h.changed++
	return midi.ChannelVoice{Family: cv.Family, Channel: cv.Channel, Data: []byte{cv.Data[0], v}}
}
