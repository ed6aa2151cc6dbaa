package timeline

import (
	"math"
	"sort"

	"github.com/coreman2200/adotimeline/internal/chart"
)

// SpeedRow starts a constant-tempo segment.
type SpeedRow struct {
	Beat        float64
	Seconds     float64
	BPM         float64
	Floor       int
	AngleOffset float64
}

// SpeedTable maps beats to seconds under piecewise constant tempo. Row 0 is
// a sentinel at -Inf carrying the chart's initial bpm; it is read as beat 0
// at the chart offset.
type SpeedTable struct {
	rows   []SpeedRow
	origin float64 // seconds of beat 0
}

func crotchet(bpm float64) float64 { return 60 / bpm }

// buildSpeedTable chains the SetSpeeds, which must already be ordered.
func buildSpeedTable(s chart.Settings, speeds []*chart.SetSpeed) SpeedTable {
	t := SpeedTable{origin: s.Offset / 1000}
	bpm := s.BPM
	t.rows = append(t.rows, SpeedRow{Beat: math.Inf(-1), Seconds: math.Inf(-1), BPM: bpm})
	lastBeat, seconds := 0.0, t.origin
	for _, ss := range speeds {
		seconds += (ss.At.Beat - lastBeat) * crotchet(bpm)
		if ss.SpeedType == chart.SpeedBpm {
			bpm = ss.BeatsPerMinute
		} else {
			bpm *= ss.BPMMultiplier
		}
		ss.At.Seconds = seconds
		t.rows = append(t.rows, SpeedRow{
			Beat:        ss.At.Beat,
			Seconds:     seconds,
			BPM:         bpm,
			Floor:       ss.Floor,
			AngleOffset: ss.At.AngleOffset,
		})
		lastBeat = ss.At.Beat
	}
	return t
}

// Rows returns a copy of the table.
func (t *SpeedTable) Rows() []SpeedRow { return append([]SpeedRow(nil), t.rows...) }

// before returns the row preceding the first row for which past is true.
func (t *SpeedTable) before(past func(r SpeedRow) bool) SpeedRow {
	i := sort.Search(len(t.rows), func(i int) bool { return past(t.rows[i]) })
	if i > 0 {
		i--
	}
	return t.rows[i]
}

func (t *SpeedTable) anchor(r SpeedRow) (beat, seconds float64) {
	if math.IsInf(r.Beat, -1) {
		return 0, t.origin
	}
	return r.Beat, r.Seconds
}

func (t *SpeedTable) BeatToSeconds(beat float64) float64 {
	r := t.before(func(r SpeedRow) bool { return beat < r.Beat })
	b, s := t.anchor(r)
	return s + (beat-b)*crotchet(r.BPM)
}

func (t *SpeedTable) SecondsToBeat(seconds float64) float64 {
	r := t.before(func(r SpeedRow) bool { return seconds < r.Seconds })
	b, s := t.anchor(r)
	return b + (seconds-s)/crotchet(r.BPM)
}

// BPMByBeat is the tempo in force at beat, counting a change exactly at beat.
func (t *SpeedTable) BPMByBeat(beat float64) float64 {
	return t.before(func(r SpeedRow) bool { return beat < r.Beat }).BPM
}

func (t *SpeedTable) BPMBySeconds(seconds float64) float64 {
	return t.before(func(r SpeedRow) bool { return seconds < r.Seconds }).BPM
}

// BPMExcludingBeat ignores a change that lands exactly on beat.
func (t *SpeedTable) BPMExcludingBeat(beat float64) float64 {
	return t.before(func(r SpeedRow) bool { return beat <= r.Beat }).BPM
}

// BPMForDynamicEvent orders by (floor, angleOffset), so an event sharing a
// SetSpeed's floor and offset already sees the new tempo.
func (t *SpeedTable) BPMForDynamicEvent(floor int, angleOffset float64) float64 {
	return t.before(func(r SpeedRow) bool {
		return floor < r.Floor || (floor == r.Floor && angleOffset < r.AngleOffset)
	}).BPM
}

// BPMAt is the tempo on floor at seconds, used for planet rotation.
func (t *SpeedTable) BPMAt(floor int, seconds float64) float64 {
	return t.before(func(r SpeedRow) bool { return floor < r.Floor || seconds < r.Seconds }).BPM
}
