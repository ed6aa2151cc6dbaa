package timeline_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/adotimeline/internal/chart"
	. "github.com/coreman2200/adotimeline/internal/timeline"
)

const eps = 1e-9

func load(t *testing.T, src string) *Level {
	t.Helper()
	doc, diags, err := chart.Decode([]byte(src))
	require.NoError(t, err)
	require.Empty(t, diags)
	l, err := New(doc)
	require.NoError(t, err)
	l.Parse()
	return l
}

func straight(n int, settings, actions string) string {
	angles := "0"
	for i := 1; i < n; i++ {
		angles += ",0"
	}
	return fmt.Sprintf(`{"angleData":[%s],"settings":{%s},"actions":[%s]}`, angles, settings, actions)
}

func TestStraightLine(t *testing.T) {
	l := load(t, straight(2, `"bpm":100,"offset":0`, ""))

	assert.InDelta(t, 0.0, l.Tiles[1].Beat, eps)
	assert.InDelta(t, 0.0, l.Tiles[1].Seconds, eps)
	assert.InDelta(t, 1.0, l.Tiles[2].Beat, eps)
	assert.InDelta(t, 0.6, l.Tiles[2].Seconds, eps)
	assert.True(t, math.IsInf(l.Tiles[0].Beat, -1))
	assert.True(t, math.IsInf(l.Tiles[0].Seconds, -1))
	assert.InDelta(t, -2.4, l.CountdownStart(), eps)

	assert.InDelta(t, 1.0, l.Tiles[1].Position.Original.X, eps)
	assert.InDelta(t, 2.0, l.Tiles[2].Position.Original.X, eps)
}

func TestOffsetShiftsSeconds(t *testing.T) {
	l := load(t, straight(3, `"bpm":120,"offset":250`, ""))
	assert.InDelta(t, 0.25, l.Tiles[1].Seconds, eps)
	assert.InDelta(t, 0.75, l.Tiles[2].Seconds, eps)
	assert.InDelta(t, 1.25, l.Tiles[3].Seconds, eps)
}

func TestSetSpeedMultiplier(t *testing.T) {
	l := load(t, straight(5, `"bpm":100`,
		`{"floor":3,"eventType":"SetSpeed","speedType":"Multiplier","bpmMultiplier":2}`))

	assert.InDelta(t, 2.0, l.Tiles[3].Beat, eps)
	assert.InDelta(t, 100.0, l.BPMByBeat(2-1e-6), eps)
	assert.InDelta(t, 200.0, l.BPMByBeat(2), eps)
	assert.InDelta(t, 100.0, l.BPMExcludingBeat(2), eps)
	assert.InDelta(t, 2.0, l.BPMByBeat(2)/l.BPMByBeat(2-1e-6), eps)

	assert.InDelta(t, 1.2, l.Tiles[3].Seconds, eps)
	assert.InDelta(t, 1.5, l.Tiles[4].Seconds, eps)
	assert.InDelta(t, 1.8, l.Tiles[5].Seconds, eps)

	rows := l.Speeds().Rows()
	require.Len(t, rows, 2)
	assert.InDelta(t, 1.2, rows[1].Seconds, eps)
	assert.Equal(t, 3, rows[1].Floor)
}

func TestSetSpeedTieBreaks(t *testing.T) {
	l := load(t, straight(4, `"bpm":100`,
		`{"floor":2,"eventType":"SetSpeed","speedType":"Bpm","beatsPerMinute":300,"angleOffset":90}`))

	// the change lands half a beat after tile 2
	assert.InDelta(t, 100.0, l.BPMForDynamicEvent(2, 45), eps)
	assert.InDelta(t, 300.0, l.BPMForDynamicEvent(2, 90), eps)
	assert.InDelta(t, 300.0, l.BPMForDynamicEvent(3, 0), eps)
	assert.InDelta(t, 100.0, l.BPMForDynamicEvent(1, 180), eps)

	assert.InDelta(t, 0.6+0.3+0.1, l.Tiles[3].Seconds, eps)
	assert.InDelta(t, 100.0, l.BPMBySeconds(0.89), eps)
	assert.InDelta(t, 300.0, l.BPMBySeconds(0.9), eps)
}

func TestSpeedRoundTripAndMonotonic(t *testing.T) {
	l := load(t, straight(8, `"bpm":150,"offset":40`, `
		{"floor":2,"eventType":"SetSpeed","speedType":"Bpm","beatsPerMinute":90},
		{"floor":4,"eventType":"SetSpeed","speedType":"Multiplier","bpmMultiplier":1.5,"angleOffset":45},
		{"floor":6,"eventType":"SetSpeed","speedType":"Bpm","beatsPerMinute":240}`))

	rows := l.Speeds().Rows()
	require.Len(t, rows, 4)
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i].Beat, rows[i-1].Beat)
		assert.GreaterOrEqual(t, rows[i].Seconds, rows[i-1].Seconds)
	}

	prevS, prevB := math.Inf(-1), math.Inf(-1)
	for b := -4.0; b <= 10; b += 0.125 {
		s := l.BeatToSeconds(b)
		assert.InDelta(t, b, l.SecondsToBeat(s), 1e-9, "beat %g", b)
		assert.GreaterOrEqual(t, s, prevS)
		prevS = s

		back := l.SecondsToBeat(b)
		assert.InDelta(t, b, l.BeatToSeconds(back), 1e-9, "seconds %g", b)
		assert.GreaterOrEqual(t, back, prevB)
		prevB = back
	}
	for _, r := range rows[1:] {
		assert.InDelta(t, r.Seconds, l.BeatToSeconds(r.Beat), 1e-9)
		assert.InDelta(t, r.Beat, l.SecondsToBeat(r.Seconds), 1e-9)
	}
}

func TestRepeatEventsBeat(t *testing.T) {
	l := load(t, straight(4, `"bpm":100`, `
		{"floor":1,"eventType":"MoveCamera","eventTag":"a","duration":0,"zoom":150},
		{"floor":1,"eventType":"RepeatEvents","repeatType":"Beat","repetitions":3,"interval":1,"tag":"a"}`))

	var seconds []float64
	generated := 0
	for _, id := range l.Processed() {
		mc, ok := l.Event(id).(*chart.MoveCamera)
		require.True(t, ok)
		if mc.At.Generated {
			generated++
		}
		seconds = append(seconds, mc.At.Seconds)
	}
	assert.Equal(t, 3, generated)
	require.Len(t, seconds, 4)
	for i := 1; i < len(seconds); i++ {
		assert.InDelta(t, 0.6, seconds[i]-seconds[i-1], eps)
	}
}

func TestRepeatEventsFloor(t *testing.T) {
	l := load(t, straight(4, `"bpm":100`, `
		{"floor":2,"eventType":"MoveTrack","eventTag":"x y","opacity":50,"angleOffset":90},
		{"floor":2,"eventType":"RepeatEvents","repeatType":"Floor","floorCount":5,"tag":"y","executeOnCurrentFloor":true},
		{"floor":2,"eventType":"RepeatEvents","repeatType":"Beat","repetitions":1,"tag":"nope"}`))

	var floors []int
	for _, id := range l.Processed() {
		mt := l.Event(id).(*chart.MoveTrack)
		floors = append(floors, mt.Floor)
		assert.InDelta(t, l.Tiles[mt.Floor].Seconds+0.3, mt.At.Seconds, eps)
	}
	// clones stop at the last tile
	assert.Equal(t, []int{2, 3, 4}, floors)
}

func TestProcessedStableOrder(t *testing.T) {
	l := load(t, straight(3, `"bpm":100`, `
		{"floor":2,"eventType":"MoveTrack","opacity":1},
		{"floor":1,"eventType":"MoveTrack","opacity":2,"angleOffset":180},
		{"floor":1,"eventType":"MoveTrack","opacity":3,"angleOffset":180},
		{"floor":1,"eventType":"MoveTrack","opacity":4}`))

	var got []float64
	prev := math.Inf(-1)
	for _, id := range l.Processed() {
		mt := l.Event(id).(*chart.MoveTrack)
		got = append(got, *mt.Opacity)
		assert.GreaterOrEqual(t, mt.At.Beat, prev)
		prev = mt.At.Beat
	}
	assert.Equal(t, []float64{4, 2, 3, 1}, got)
}

func TestMidSpin(t *testing.T) {
	l := load(t, `{"angleData":[0,999,180],"settings":{"bpm":100}}`)

	assert.Equal(t, l.Tiles[1].Beat, l.Tiles[2].Beat)
	assert.Equal(t, 0.0, l.IncludedAngle(2))
	assert.InDelta(t, 1.0, l.Tiles[3].Beat, eps)
	assert.InDelta(t, 0.0, l.Tiles[2].Position.Original.X, eps)
	assert.InDelta(t, -1.0, l.Tiles[3].Position.Original.X, eps)
}

func TestTwirlPauseHold(t *testing.T) {
	l := load(t, `{"angleData":[0,90,90,90],"settings":{"bpm":100},"actions":[
		{"floor":1,"eventType":"Twirl"},
		{"floor":2,"eventType":"Pause","duration":2},
		{"floor":3,"eventType":"Hold","duration":1}]}`)

	assert.Equal(t, Clockwise, l.Tiles[0].Orbit)
	assert.Equal(t, CounterClockwise, l.Tiles[1].Orbit)
	assert.Equal(t, CounterClockwise, l.Tiles[3].Orbit)
	assert.InDelta(t, 270.0, l.IncludedAngle(2), eps)
	assert.InDelta(t, 1.5, l.Tiles[2].Beat, eps)
	assert.InDelta(t, 1.5+1+2, l.Tiles[3].Beat, eps)
	assert.InDelta(t, 1.5+1+2+1+2, l.Tiles[4].Beat, eps)
}

func TestPositionTrack(t *testing.T) {
	l := load(t, straight(3, `"bpm":100`, `
		{"floor":1,"eventType":"PositionTrack","positionOffset":[1,2],"editorOnly":true},
		{"floor":2,"eventType":"PositionTrack","positionOffset":[0,1],"justThisTile":true}`))

	assert.Equal(t, 1.0, l.Tiles[1].Position.Original.X)
	assert.Equal(t, 0.0, l.Tiles[1].Position.Original.Y)
	assert.InDelta(t, 2.0, l.Tiles[1].EditorPos.X, eps)
	assert.InDelta(t, 2.0, l.Tiles[1].EditorPos.Y, eps)

	assert.InDelta(t, 1.0, l.Tiles[2].Position.Original.Y, eps)
	assert.InDelta(t, 0.0, l.Tiles[3].Position.Original.Y, eps)
	assert.InDelta(t, 3.0, l.Tiles[3].Position.Original.X, eps)
	assert.InDelta(t, 2.0, l.Tiles[3].EditorPos.Y, eps)
}

func TestInheritedTrackState(t *testing.T) {
	l := load(t, straight(4, `"bpm":100,"hitsound":"Hat"`, `
		{"floor":2,"eventType":"ColorTrack","trackColor":"ff0000","trackColorType":"Stripes"},
		{"floor":3,"eventType":"SetHitsound","gameSound":"Midspin","hitsound":"Chuck","hitsoundVolume":40}`))

	assert.Equal(t, chart.DefaultTrackColor, l.Tiles[1].TrackColor.Original)
	assert.Equal(t, chart.RGBA(255, 0, 0, 255), l.Tiles[4].TrackColor.Original)
	assert.Equal(t, chart.ColorStripes, l.Tiles[3].TrackColorType.Original)

	hat, _ := chart.ParseHitsound("Hat")
	chuck, _ := chart.ParseHitsound("Chuck")
	assert.Equal(t, hat, l.Tiles[4].Hitsound)
	assert.Equal(t, chuck, l.Tiles[4].MidspinHitsound)
	assert.Equal(t, 40.0, l.Tiles[4].MidspinHitsoundVolume)
	assert.Equal(t, hat, l.Tiles[2].MidspinHitsound)
}

func TestMoveTrackChase(t *testing.T) {
	l := load(t, straight(3, `"bpm":100`, `
		{"floor":1,"eventType":"MoveTrack","startTile":[0,"ThisTile"],"endTile":[1,"ThisTile"],
		 "duration":1,"positionOffset":[null,2],"ease":"Linear"}`))

	l.Update(-0.1)
	assert.Equal(t, 0.0, l.Tiles[1].Position.Current.Y)

	l.Update(0.3)
	assert.InDelta(t, 1.0, l.Tiles[1].Position.Current.Y, eps)
	assert.InDelta(t, 1.0, l.Tiles[2].Position.Current.Y, eps)
	assert.Equal(t, 0.0, l.Tiles[3].Position.Current.Y)
	assert.InDelta(t, 2.0, l.Tiles[2].Position.Current.X, eps)

	l.Update(5)
	assert.InDelta(t, 2.0, l.Tiles[1].Position.Current.Y, eps)
	assert.Equal(t, 0.0, l.Tiles[1].Position.Original.Y)
}

func TestMoveTrackOverride(t *testing.T) {
	l := load(t, straight(3, `"bpm":100`, `
		{"floor":1,"eventType":"MoveTrack","duration":4,"opacity":0,"rotationOffset":90},
		{"floor":2,"eventType":"MoveTrack","startTile":[-1,"ThisTile"],"endTile":[-1,"ThisTile"],"duration":0,"opacity":50}`))

	require.Len(t, l.Tiles[1].MoveTrack, 2)
	assert.InDelta(t, 0.6, l.Tiles[1].MoveTrack[0].End[ParamOpacity], eps)
	assert.True(t, math.IsInf(l.Tiles[1].MoveTrack[0].End[ParamRotation], 1))

	// the first move stops pulling opacity at 0.6 but keeps rotating
	l.Update(1.2)
	assert.InDelta(t, 50.0, l.Tiles[1].Opacity, eps)
	assert.InDelta(t, 45.0, l.Tiles[1].Rotation.Current, eps)
}

func TestUpdateIdempotent(t *testing.T) {
	l := load(t, straight(5, `"bpm":100,"trackColorType":"Glow","trackColorAnimDuration":1.5`, `
		{"floor":1,"eventType":"MoveTrack","startTile":[0,"Start"],"endTile":[0,"End"],"duration":2,
		 "positionOffset":[1,1],"scale":50,"ease":"OutQuad"},
		{"floor":2,"eventType":"RecolorTrack","startTile":[0,"ThisTile"],"endTile":[2,"ThisTile"],
		 "trackColorType":"Rainbow","trackColor":"3366cc"}`))

	a := l.Snapshot(1.0)
	b := l.Snapshot(1.0)
	assert.Equal(t, a, b)
	l.Snapshot(7)
	assert.Equal(t, a, l.Snapshot(1.0))
}

func TestRecolorTrack(t *testing.T) {
	l := load(t, straight(3, `"bpm":100`, `
		{"floor":2,"eventType":"RecolorTrack","startTile":[0,"Start"],"endTile":[0,"End"],"trackColor":"ff0000"}`))

	red := chart.RGBA(255, 0, 0, 255)
	l.Update(0.5)
	assert.Equal(t, chart.DefaultTrackColor, l.Tiles[3].Color)
	l.Update(0.6)
	for i := range l.Tiles {
		assert.Equal(t, red, l.Tiles[i].Color, "tile %d", i)
	}
	assert.Equal(t, chart.DefaultTrackColor, l.Tiles[3].TrackColor.Original)
}

func TestTrackColorTypes(t *testing.T) {
	l := load(t, straight(3, `"bpm":100,"trackColorType":"Stripes","trackColor":"000000","secondaryTrackColor":"ffffff"`, ""))
	l.Update(0)
	assert.Equal(t, chart.RGBA(0, 0, 0, 255), l.Tiles[2].Color)
	assert.Equal(t, chart.RGBA(255, 255, 255, 255), l.Tiles[3].Color)

	l = load(t, straight(3, `"trackColorType":"Switch","trackColor":"000000","secondaryTrackColor":"ffffff","trackColorAnimDuration":2`, ""))
	l.Update(0.5)
	assert.Equal(t, chart.RGBA(0, 0, 0, 255), l.Tiles[1].Color)
	l.Update(1.5)
	assert.Equal(t, chart.RGBA(255, 255, 255, 255), l.Tiles[1].Color)

	l = load(t, straight(3, `"trackColorType":"Glow","trackColor":"ffffff","secondaryTrackColor":"000000","trackColorAnimDuration":2`, ""))
	l.Update(0)
	assert.Equal(t, chart.RGBA(0, 0, 0, 255), l.Tiles[1].Color)
	l.Update(1)
	assert.Equal(t, chart.RGBA(255, 255, 255, 255), l.Tiles[1].Color)
}

func TestAnimateTrackFade(t *testing.T) {
	l := load(t, straight(5, `"bpm":100,"trackAnimation":"Fade","beatsAhead":3`, ""))

	generated := 0
	for _, id := range l.Processed() {
		if l.Event(id).(chart.Dynamic).Anchor().Generated {
			generated++
		}
	}
	assert.Equal(t, 10, generated)

	// tile 5 lands at 2.4 and starts appearing three beats earlier
	l.Update(0.5)
	assert.Equal(t, 0.0, l.Tiles[5].Opacity)
	assert.Equal(t, 100.0, l.Tiles[0].Opacity)
	l.Update(0.9)
	assert.InDelta(t, 100.0, l.Tiles[5].Opacity, eps)

	l.SetDisableAnimateTrack(true)
	assert.False(t, l.IsParsed())
	l.Parse()
	assert.Empty(t, l.Processed())
	l.Update(0.5)
	assert.Equal(t, 100.0, l.Tiles[5].Opacity)
}

func TestAnimateTrackGrowSpinAndShrink(t *testing.T) {
	l := load(t, straight(3, `"bpm":100`, `
		{"floor":2,"eventType":"AnimateTrack","trackAnimation":"Grow_Spin","beatsAhead":1,
		 "trackDisappearAnimation":"Shrink_Spin","beatsBehind":0}`))

	assert.Equal(t, 2, l.Tiles[3].TrackAnimationFloor)
	l.Update(0)
	assert.InDelta(t, -180.0, l.Tiles[3].Rotation.Current, eps)
	assert.Equal(t, 0.0, l.Tiles[3].Scale.Current.X)
	// last tile never disappears
	l.Update(10)
	assert.InDelta(t, 0.0, l.Tiles[3].Rotation.Current, eps)
	assert.InDelta(t, 100.0, l.Tiles[3].Scale.Current.Y, eps)
	assert.InDelta(t, 180.0, l.Tiles[2].Rotation.Current, eps)
	assert.InDelta(t, 0.0, l.Tiles[2].Scale.Current.X, eps)
	assert.InDelta(t, 0.0, l.Tiles[1].Rotation.Current, eps)
}

var TestHitMargins = []struct {
	Offset float64
	Expect HitMargin
}{
	{0, Perfect},
	{0.05, Perfect},
	{-0.05, Perfect},
	{0.12, LatePerfect},
	{-0.12, EarlyPerfect},
	{0.17, VeryLate},
	{-0.17, VeryEarly},
	{0.25, TooLate},
	{-0.25, TooEarly},
}

func TestHitMargin(t *testing.T) {
	l := load(t, straight(3, `"bpm":100`, ""))
	b := l.TimingBoundary(2, Normal)
	assert.InDelta(t, 0.1, b.Perfect, eps)
	assert.InDelta(t, 0.15, b.LatePerfect, eps)
	assert.InDelta(t, 0.2, b.VeryLate, eps)

	for _, v := range TestHitMargins {
		t.Run(v.Expect.String(), func(t *testing.T) {
			s := l.Tiles[2].Seconds + v.Offset
			assert.Equal(t, v.Expect, l.HitMargin(2, s, Normal))
			assert.InDelta(t, v.Offset, l.Timing(2, s), eps)
		})
	}
	assert.True(t, TooEarly < VeryEarly && VeryLate < TooLate)
}

func TestHitMarginExactIsPerfect(t *testing.T) {
	for _, bpm := range []float64{1, 60, 100, 333, 2000, 12000} {
		l := load(t, straight(3, fmt.Sprintf(`"bpm":%g`, bpm), ""))
		for _, d := range []Difficulty{Lenient, Normal, Strict} {
			for floor := 1; floor < len(l.Tiles); floor++ {
				assert.Equal(t, Perfect, l.HitMargin(floor, l.Tiles[floor].Seconds, d), "bpm %g %s", bpm, d)
			}
		}
	}
}

func TestTimingBoundaryFloors(t *testing.T) {
	l := load(t, straight(3, `"bpm":1000`, ""))
	b := l.TimingBoundary(2, Strict)
	assert.InDelta(t, 0.025, b.Perfect, eps)
	assert.InDelta(t, 0.03, b.LatePerfect, eps)
	assert.InDelta(t, 0.04, b.VeryLate, eps)
}

func TestFloorLookups(t *testing.T) {
	l := load(t, straight(3, `"bpm":100`, ""))
	assert.Equal(t, 0, l.FloorBySeconds(-1))
	assert.Equal(t, 1, l.FloorBySeconds(0))
	assert.Equal(t, 2, l.FloorBySeconds(0.7))
	assert.Equal(t, 3, l.FloorBySeconds(100))
	assert.Equal(t, 2, l.FloorByBeat(1))
	assert.Equal(t, 3, l.RelToAbs(1, chart.RelativeIndex{Index: 5, Anchor: chart.ThisTile}))
}

func TestPlanets(t *testing.T) {
	l := load(t, straight(3, `"bpm":100`, ""))
	assert.InDelta(t, 180.0, l.PlanetsDir(1, 0).Deg(), eps)
	assert.InDelta(t, 90.0, l.PlanetsDir(1, 0.3).Deg(), eps)
	assert.InDelta(t, 90.0, l.PlanetsDir(0, -0.3).Deg(), eps)

	fire, ice := l.PlanetsPos(1, 0)
	assert.InDelta(t, 0.0, fire.X, eps)
	assert.InDelta(t, 1.0, ice.X, eps)
	fire, ice = l.PlanetsPos(2, 0.6)
	assert.InDelta(t, 2.0, fire.X, eps)
	assert.InDelta(t, 1.0, ice.X, eps)
}

func TestQueriesPanicWhenDirty(t *testing.T) {
	l := DefaultLevel()
	require.Len(t, l.Tiles, 11)
	assert.InDelta(t, 5.4, l.Tiles[10].Seconds, eps)

	l.InsertTile(3, chart.Dir(90))
	assert.False(t, l.IsParsed())
	assert.PanicsWithValue(t, ErrNotParsed, func() { l.Update(0) })
	assert.PanicsWithValue(t, ErrNotParsed, func() { l.HitMargin(1, 0, Normal) })
	l.Parse()
	assert.Len(t, l.Tiles, 12)
}

func TestEditing(t *testing.T) {
	l := load(t, straight(4, `"bpm":100`, `
		{"floor":3,"eventType":"Twirl"},
		{"floor":4,"eventType":"Pause","duration":1}`))

	id := l.AddEvent(&chart.Twirl{Header: chart.Header{Floor: 1, Active: true}})
	l.Parse()
	assert.Equal(t, CounterClockwise, l.Tiles[1].Orbit)
	assert.Equal(t, Clockwise, l.Tiles[3].Orbit)

	l.RemoveEvent(id)
	assert.Nil(t, l.Event(id))
	l.EraseTiles(3, 4)
	l.Parse()
	require.Len(t, l.Tiles, 4)
	assert.Equal(t, Clockwise, l.Tiles[3].Orbit)

	doc := l.Document()
	require.Len(t, doc.Events, 1)
	assert.Equal(t, 3, doc.Events[0].Head().Floor)
	assert.Len(t, doc.Directions, 3)

	l.AppendTile(chart.MidSpin)
	l.ChangeTileAngle(1, chart.Dir(90))
	l.Parse()
	assert.Len(t, l.Tiles, 5)
	assert.Equal(t, l.Tiles[3].Beat, l.Tiles[4].Beat)
	l.PopTile()
	l.Parse()
	assert.Len(t, l.Tiles, 4)
}

func TestAddEventReplacesNonStackable(t *testing.T) {
	l := load(t, straight(4, `"bpm":100`, `{"floor":2,"eventType":"Pause","duration":1}`))
	first := l.Tiles[2].Events[0]

	id := l.AddEvent(&chart.Pause{Header: chart.Header{Floor: 2, Active: true}, Duration: 3})
	assert.Nil(t, l.Event(first))
	assert.Equal(t, []EventID{id}, l.Tiles[2].Events)

	a := l.AddEvent(&chart.MoveCamera{Header: chart.Header{Floor: 2, Active: true}, Duration: 1})
	b := l.AddEvent(&chart.MoveCamera{Header: chart.Header{Floor: 2, Active: true}, Duration: 2})
	assert.Equal(t, []EventID{id, a, b}, l.Tiles[2].Events)

	l.Parse()
	assert.InDelta(t, 5.0, l.Tiles[3].Beat, eps)
	doc := l.Document()
	require.Len(t, doc.Events, 3)
	p, ok := doc.Events[0].(*chart.Pause)
	require.True(t, ok)
	assert.Equal(t, 3.0, p.Duration)
}

func TestParseFromMatchesFullParse(t *testing.T) {
	src := `{"angleData":[0,90,180,90,0,270],"settings":{"bpm":120},"actions":[
		{"floor":2,"eventType":"Twirl"},
		{"floor":3,"eventType":"PositionTrack","positionOffset":[0.5,0],"justThisTile":true},
		{"floor":4,"eventType":"ColorTrack","trackColor":"00ff00"}]}`
	a := load(t, src)
	b := load(t, src)
	a.ChangeTileAngle(5, chart.Dir(45))
	b.ChangeTileAngle(5, chart.Dir(45))
	a.Parse()
	b.Parse()
	b.ChangeTileAngle(4, chart.Dir(0))
	b.ChangeTileAngle(4, chart.Dir(45))
	b.ParseFrom(4)
	a.ChangeTileAngle(4, chart.Dir(45))
	a.Parse()

	for i := range a.Tiles {
		assert.InDelta(t, a.Tiles[i].Position.Original.X, b.Tiles[i].Position.Original.X, eps, "tile %d", i)
		assert.InDelta(t, a.Tiles[i].Position.Original.Y, b.Tiles[i].Position.Original.Y, eps, "tile %d", i)
		assert.Equal(t, a.Tiles[i].Orbit, b.Tiles[i].Orbit)
		assert.Equal(t, a.Tiles[i].TrackColor.Original, b.Tiles[i].TrackColor.Original)
		if i > 0 {
			assert.InDelta(t, a.Tiles[i].Beat, b.Tiles[i].Beat, eps, "tile %d", i)
		}
	}
}

func TestTooFewTiles(t *testing.T) {
	_, err := New(&chart.Document{Settings: chart.DefaultSettings()})
	assert.ErrorIs(t, err, ErrTooFewTiles)
}
