// Package velocity collects note velocities from MIDI sequences and picks
// replacement velocities from them.
package velocity

import (
	"encoding/json"
	"io"
	"math/rand"
	"os"
	"sort"

	"github.com/Garik-/smf/pkg/midi"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var log = zap.NewNop()

// SetLogger enables debug logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	log = l.Named("velocity")
}

// Map holds the velocities seen per note, per family and per beat position:
// note -> family -> position -> velocities (sorted, unique).
type Map map[uint8]map[midi.Family]map[int][]int

// Add records every sounding note of s.
func (m Map) Add(s *midi.Sequence) {
	var tpq int64
	if s.Header.TimeFormat() == midi.MetricalTF {
		tpq = int64(s.Header.TicksPerQuarterNote)
	}

	for i, track := range s.Tracks() {
		var abs int64
		added := 0
		for _, ev := range track.Events() {
			abs += int64(ev.Delta)

			cv, ok := ev.Message.(midi.ChannelVoice)
			if !ok || !recorded(cv) {
				continue
			}
			m.add(cv.Data[0], cv.Family, Position(abs, tpq), int(cv.Data[1]))
			added++
		}
		log.Debug("track", zap.Int("index", i), zap.Int("notes", added))
	}
}

func recorded(cv midi.ChannelVoice) bool {
	return (cv.Family == midi.NoteOn || cv.Family == midi.NoteOff) && len(cv.Data) == 2 && cv.Data[1] > 0
}

func (m Map) add(note uint8, f midi.Family, position int, v int) {
	families, ok := m[note]
	if !ok {
		families = make(map[midi.Family]map[int][]int)
		m[note] = families
	}
	positions, ok := families[f]
	if !ok {
		positions = make(map[int][]int)
		families[f] = positions
	}

	vs := positions[position]
	i := sort.Search(len(vs), func(i int) bool { return vs[i] >= v })
	if i < len(vs) && vs[i] == v {
		return
	}
	vs = append(vs, 0)
	copy(vs[i+1:], vs[i:])
	vs[i] = v
	positions[position] = vs
}

// Merge adds every velocity of o to m.
func (m Map) Merge(o Map) {
	for note, families := range o {
		for f, positions := range families {
			for pos, vs := range positions {
				for _, v := range vs {
					m.add(note, f, pos, v)
				}
			}
		}
	}
}

// Velocities returns the velocities recorded for a note.
func (m Map) Velocities(note uint8, f midi.Family, position int) []int {
	return m[note][f][position]
}

// Pick returns a random recorded velocity v with min < v < max. It reports
// false when there is none.
func (m Map) Pick(rng *rand.Rand, note uint8, f midi.Family, position int, min, max int) (uint8, bool) {
	var candidates []int
	for _, v := range m.Velocities(note, f, position) {
		if v > min && v < max && v <= 0x7F {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	return uint8(candidates[rng.Intn(len(candidates))]), true
}

// Encode writes m as JSON.
func (m Map) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(m), "encode velocity map")
}

// Decode reads a JSON map written by Encode.
func Decode(r io.Reader) (Map, error) {
	var m Map
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, errors.Wrap(err, "decode velocity map")
	}
	if m == nil {
		m = make(Map)
	}
	return m, nil
}

// Load reads a JSON map from a file.
func Load(name string) (Map, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, errors.WithMessage(err, name)
	}
	log.Debug("loaded", zap.String("name", name), zap.Int("notes", len(m)))
	return m, nil
}
