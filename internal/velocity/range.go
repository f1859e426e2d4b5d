package velocity

// beatRange is a window of one quarter note that steps forward through a
// track until it holds a given tick.
type beatRange struct {
	cnt int

	lowerBound int64
	upperBound int64
}

func newBeatRange(ticksPerQuarterNote int64) *beatRange {
	return &beatRange{upperBound: ticksPerQuarterNote}
}

func (r *beatRange) stepBy(n int) {
	r.cnt += n
	step := r.upperBound - r.lowerBound

	r.upperBound += step * int64(n)
	r.lowerBound += step * int64(n)
}

func (r *beatRange) contains(tick int64) bool {
	return tick >= r.lowerBound && tick < r.upperBound
}

func (r *beatRange) position() int {
	return r.cnt % BeatsPerBar
}

// BeatsPerBar is the bar length assumed when placing notes.
const BeatsPerBar = 4

// Position returns the beat (0-3) of a 4/4 bar holding absTicks.
func Position(absTicks int64, ticksPerQuarterNote int64) int {
	if ticksPerQuarterNote <= 0 || absTicks < 0 {
		return 0
	}
	r := newBeatRange(ticksPerQuarterNote)
	for !r.contains(absTicks) {
		if absTicks >= ticksPerQuarterNote {
			r.stepBy(int((absTicks - r.lowerBound) / ticksPerQuarterNote))
		} else {
			r.stepBy(1)
		}
	}
	return r.position()
}
