package timeline

import (
	"math"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/adotimeline/internal/chart"
	"github.com/coreman2200/adotimeline/internal/ease"
	"github.com/coreman2200/adotimeline/internal/geom"
)

// tileEvents are the static events that shape a tile during the tile pass.
// A later event of the same kind on a tile overrides an earlier one.
type tileEvents struct {
	twirl    bool
	pause    float64
	hold     float64
	hitsound *chart.SetHitsound
	position *chart.PositionTrack
	color    *chart.ColorTrack
	animate  *chart.AnimateTrack
}

// Parse resolves the whole level.
func (l *Level) Parse() { l.ParseFrom(0) }

// ParseFrom resolves tile state for floors >= start and recomputes every
// timeline product. Earlier tiles keep their state from the previous Parse
// unless an edit since then reached below start.
func (l *Level) ParseFrom(start int) {
	if len(l.Tiles) < 2 {
		panic(ErrTooFewTiles)
	}
	start = max(0, min(start, l.stale))
	l.events = l.events[:l.authored]
	l.processed = l.processed[:0]
	for i := range l.Tiles {
		l.Tiles[i].MoveTrack = l.Tiles[i].MoveTrack[:0]
	}

	l.parseTiles(start)
	l.parseSetSpeed()
	dynamics, repeats := l.parseDynamicEvents()
	var animated []EventID
	if !l.disableAnimateTrack {
		animated = l.parseAnimateTrack()
	}
	cloned := l.parseRepeatEvents(dynamics, repeats)

	// Generated events go ahead of authored ones, most recent first, so that
	// an authored event wins a tie on beat.
	processed := make([]EventID, 0, len(cloned)+len(animated)+len(dynamics))
	for i := len(cloned) - 1; i >= 0; i-- {
		processed = append(processed, cloned[i])
	}
	for i := len(animated) - 1; i >= 0; i-- {
		processed = append(processed, animated[i])
	}
	processed = append(processed, dynamics...)
	sort.SliceStable(processed, func(i, j int) bool {
		return l.anchor(processed[i]).Beat < l.anchor(processed[j]).Beat
	})
	l.processed = processed
	l.parseMoveTrackData()

	l.Tiles[0].Beat = math.Inf(-1)
	l.Tiles[0].Seconds = math.Inf(-1)
	l.parsed = true
	l.stale = len(l.Tiles)
	l.reset()

	log.Debug().
		Int("tiles", len(l.Tiles)).
		Int("start", start).
		Int("speeds", len(l.speeds.rows)-1).
		Int("processed", len(l.processed)).
		Int("generated", len(l.events)-l.authored).
		Msg("level parsed")
}

func (l *Level) anchor(id EventID) *chart.Anchor {
	return l.events[id].(chart.Dynamic).Anchor()
}

// collectStatic renumbers every event to its tile's floor and gathers the
// active static events per tile.
func (l *Level) collectStatic() []tileEvents {
	out := make([]tileEvents, len(l.Tiles))
	for floor := range l.Tiles {
		for _, id := range l.Tiles[floor].Events {
			e := l.events[id]
			e.Head().Floor = floor
			if !e.Head().Active {
				continue
			}
			te := &out[floor]
			switch e := e.(type) {
			case *chart.Twirl:
				te.twirl = true
			case *chart.Pause:
				te.pause = e.Duration
			case *chart.Hold:
				te.hold = e.Duration
			case *chart.SetHitsound:
				te.hitsound = e
			case *chart.PositionTrack:
				te.position = e
			case *chart.ColorTrack:
				te.color = e
			case *chart.AnimateTrack:
				te.animate = e
			}
		}
	}
	return out
}

// retraction is the offset a just-this-tile PositionTrack on floor i takes
// back from the following tile.
func (l *Level) retraction(pt *chart.PositionTrack, i int) (pos, editor geom.Vec2) {
	if pt == nil || !pt.JustThisTile || i == l.last() {
		return
	}
	editor = pt.PositionOffset.Scale(-1)
	if !pt.EditorOnly {
		pos = editor
	}
	return
}

func (l *Level) parseTiles(start int) {
	static := l.collectStatic()
	var posOff, editorOff geom.Vec2
	for i := range l.Tiles {
		if i > 0 && i < start {
			continue
		}
		if i > 0 && i == start {
			posOff, editorOff = l.retraction(static[i-1].position, i-1)
		}
		t := &l.Tiles[i]
		te := static[i]
		if i == 0 {
			t.Orbit = Clockwise
			t.Beat = 0
			applySettings(t, l.Settings)
		} else {
			prev := &l.Tiles[i-1]
			inherit(t, prev)
			if t.Direction.IsMidSpin() {
				t.Beat = prev.Beat
			} else {
				a := l.includedAngle(i)
				if i == 1 {
					a -= 180
				}
				t.Beat = prev.Beat + a/180 + static[i-1].pause + 2*static[i-1].hold
			}
			dir := t.Direction.Angle()
			if t.Direction.IsMidSpin() {
				dir = prev.Direction.Angle() + 180
			}
			step := dir.Unit()
			t.Position.Original = prev.Position.Original.Add(posOff).Add(step)
			t.EditorPos = prev.EditorPos.Add(editorOff).Add(step)
		}
		if te.twirl {
			t.Orbit = t.Orbit.Flip()
		}

		posOff, editorOff = l.retraction(te.position, i)
		if pt := te.position; pt != nil {
			t.EditorPos = t.EditorPos.Add(pt.PositionOffset)
			if !pt.EditorOnly {
				t.Position.Original = t.Position.Original.Add(pt.PositionOffset)
			}
			if pt.StickToFloors != nil {
				t.StickToFloors = *pt.StickToFloors
			}
		}
		if ct := te.color; ct != nil {
			t.TrackColorType.Original = ct.TrackColorType
			t.TrackColor.Original = ct.TrackColor
			t.SecondaryTrackColor.Original = ct.SecondaryTrackColor
			t.AnimDuration.Original = ct.AnimDuration
			t.Style.Original = ct.Style
			t.Pulse.Original = ct.Pulse
			t.PulseLength.Original = ct.PulseLength
		}
		if at := te.animate; at != nil {
			t.TrackAnimationFloor = i
			if at.Appear != nil {
				t.TrackAnimation = *at.Appear
			}
			t.BeatsAhead = at.BeatsAhead
			if at.Disappear != nil {
				t.TrackDisappearAnimation = *at.Disappear
			}
			t.BeatsBehind = at.BeatsBehind
		}
		if sh := te.hitsound; sh != nil {
			switch sh.GameSound {
			case chart.GameSoundHitsound:
				t.Hitsound, t.HitsoundVolume = sh.Hitsound, sh.Volume
			case chart.GameSoundMidspin:
				t.MidspinHitsound, t.MidspinHitsoundVolume = sh.Hitsound, sh.Volume
			}
		}
	}
	l.Tiles[0].Beat = -l.Settings.CountdownTicks
}

// inherit copies the persistent state of the previous tile.
func inherit(t, prev *Tile) {
	t.Orbit = prev.Orbit
	t.StickToFloors = prev.StickToFloors

	t.TrackColorType.Original = prev.TrackColorType.Original
	t.TrackColor.Original = prev.TrackColor.Original
	t.SecondaryTrackColor.Original = prev.SecondaryTrackColor.Original
	t.AnimDuration.Original = prev.AnimDuration.Original
	t.Style.Original = prev.Style.Original
	t.Pulse.Original = prev.Pulse.Original
	t.PulseLength.Original = prev.PulseLength.Original

	t.TrackAnimationFloor = prev.TrackAnimationFloor
	t.TrackAnimation = prev.TrackAnimation
	t.BeatsAhead = prev.BeatsAhead
	t.TrackDisappearAnimation = prev.TrackDisappearAnimation
	t.BeatsBehind = prev.BeatsBehind

	t.Hitsound = prev.Hitsound
	t.HitsoundVolume = prev.HitsoundVolume
	t.MidspinHitsound = prev.MidspinHitsound
	t.MidspinHitsoundVolume = prev.MidspinHitsoundVolume
}

// includedAngle is the swing in degrees from tile i-1 to tile i, in
// (0, 360]. It is 0 for a mid-spin tile.
func (l *Level) includedAngle(i int) float64 {
	cur := l.Tiles[i].Direction
	if cur.IsMidSpin() || i == 0 {
		return 0
	}
	prev := &l.Tiles[i-1]
	var a geom.Angle
	if prev.Direction.IsMidSpin() && i >= 2 {
		a = l.Tiles[i-2].Direction.Angle() - cur.Angle()
	} else {
		a = prev.Direction.Angle() - 180 - cur.Angle()
	}
	if prev.Orbit == CounterClockwise {
		a = -a
	}
	a = a.WrapUnsigned()
	if a == 0 {
		a = 360
	}
	return a.Deg()
}

func (l *Level) parseSetSpeed() {
	var speeds []*chart.SetSpeed
	for _, t := range l.Tiles {
		for _, id := range t.Events {
			if ss, ok := l.events[id].(*chart.SetSpeed); ok && ss.Active {
				speeds = append(speeds, ss)
			}
		}
	}
	sort.SliceStable(speeds, func(i, j int) bool {
		if speeds[i].Floor != speeds[j].Floor {
			return speeds[i].Floor < speeds[j].Floor
		}
		return speeds[i].At.AngleOffset < speeds[j].At.AngleOffset
	})
	for _, ss := range speeds {
		ss.At.Beat = l.Tiles[ss.Floor].Beat + ss.At.AngleOffset/180
	}
	l.speeds = buildSpeedTable(l.Settings, speeds)
	for i := range l.Tiles {
		l.Tiles[i].Seconds = l.speeds.BeatToSeconds(l.Tiles[i].Beat)
	}
}

// parseDynamicEvents anchors every active dynamic event except SetSpeed and
// buckets the active RepeatEvents by floor.
func (l *Level) parseDynamicEvents() ([]EventID, [][]*chart.RepeatEvents) {
	var dynamics []EventID
	repeats := make([][]*chart.RepeatEvents, len(l.Tiles))
	for floor, t := range l.Tiles {
		for _, id := range t.Events {
			e := l.events[id]
			if !e.Head().Active {
				continue
			}
			switch e := e.(type) {
			case *chart.SetSpeed:
			case chart.Dynamic:
				a := e.Anchor()
				a.Generated = false
				if a.AngleOffset == 0 {
					a.Beat, a.Seconds = t.Beat, t.Seconds
				} else {
					spb := crotchet(l.speeds.BPMForDynamicEvent(floor, a.AngleOffset))
					a.Seconds = t.Seconds + a.AngleOffset/180*spb
					a.Beat = l.speeds.SecondsToBeat(a.Seconds)
				}
				dynamics = append(dynamics, id)
			case *chart.RepeatEvents:
				repeats[floor] = append(repeats[floor], e)
			}
		}
	}
	return dynamics, repeats
}

// moveTrack builds a generated single-tile MoveTrack anchored at seconds.
func (l *Level) moveTrack(floor int, seconds, duration float64) *chart.MoveTrack {
	here := chart.RelativeIndex{Index: 0, Anchor: chart.ThisTile}
	mt := &chart.MoveTrack{
		Header:    chart.Header{Floor: floor, Active: true},
		StartTile: here,
		EndTile:   here,
		Duration:  duration,
		Ease:      ease.Linear,
	}
	mt.At.Seconds = seconds
	mt.At.Beat = l.speeds.SecondsToBeat(seconds)
	if math.IsInf(seconds, -1) {
		mt.At.Beat = seconds
	}
	mt.At.Generated = true
	return mt
}

// parseAnimateTrack turns each tile's appear and disappear animation into
// MoveTracks. Styles without their own motion fall back to a fade.
func (l *Level) parseAnimateTrack() []EventID {
	var out []EventID
	for i := range l.Tiles {
		t := &l.Tiles[i]
		spb := crotchet(l.speeds.BPMByBeat(l.Tiles[t.TrackAnimationFloor].Beat))
		if i != 0 && t.TrackAnimation != chart.AppearNone {
			hide := l.moveTrack(i, math.Inf(-1), 0)
			appear := l.moveTrack(i, t.Seconds-t.BeatsAhead*spb, 0.5)
			switch t.TrackAnimation {
			case chart.AppearGrowSpin:
				hide.RotationOffset = chart.Float(-180)
				hide.Scale = chart.OptionalPoint{X: chart.Float(0), Y: chart.Float(0)}
				appear.RotationOffset = chart.Float(0)
				appear.Scale = chart.OptionalPoint{X: chart.Float(100), Y: chart.Float(100)}
			default:
				hide.Opacity = chart.Float(0)
				appear.Opacity = chart.Float(100)
			}
			out = append(out, l.generate(hide), l.generate(appear))
		}
		if i != l.last() && t.TrackDisappearAnimation != chart.DisappearNone {
			gone := l.moveTrack(i, l.Tiles[i+1].Seconds+t.BeatsBehind*spb, 0.5)
			switch t.TrackDisappearAnimation {
			case chart.DisappearShrinkSpin:
				gone.RotationOffset = chart.Float(180)
				gone.Scale = chart.OptionalPoint{X: chart.Float(0), Y: chart.Float(0)}
			default:
				gone.Opacity = chart.Float(0)
			}
			out = append(out, l.generate(gone))
		}
	}
	return out
}

// parseRepeatEvents clones each authored dynamic event once per repetition
// of every RepeatEvents on its floor that shares one of its tags.
func (l *Level) parseRepeatEvents(dynamics []EventID, repeats [][]*chart.RepeatEvents) []EventID {
	var out []EventID
	for _, id := range dynamics {
		src := l.events[id].(chart.Dynamic)
		a := src.Anchor()
		floor := src.Head().Floor
		for _, re := range repeats[floor] {
			if !a.HasTag(re.Tags) {
				continue
			}
			spb := crotchet(l.speeds.BPMByBeat(a.Beat))
			switch re.RepeatType {
			case chart.RepeatBeat:
				for i := 1; i <= re.Repetitions; i++ {
					c := src.Clone().(chart.Dynamic)
					ca := c.Anchor()
					ca.Seconds += float64(i) * re.Interval * spb
					ca.Beat = l.speeds.SecondsToBeat(ca.Seconds)
					ca.Generated = true
					out = append(out, l.generate(c))
				}
			case chart.RepeatFloor:
				for i := 1; i <= re.FloorCount && floor+i <= l.last(); i++ {
					c := src.Clone().(chart.Dynamic)
					ca := c.Anchor()
					ca.Seconds = l.Tiles[floor+i].Seconds + ca.AngleOffset/180*spb
					ca.Beat = l.speeds.SecondsToBeat(ca.Seconds)
					if re.ExecuteOnCurrentFloor {
						c.Head().Floor += i
					}
					ca.Generated = true
					out = append(out, l.generate(c))
				}
			}
		}
	}
	return out
}

// parseMoveTrackData gives every tile the MoveTracks covering it, in beat
// order, and marks where each parameter is next overridden.
func (l *Level) parseMoveTrackData() {
	for _, id := range l.processed {
		mt, ok := l.events[id].(*chart.MoveTrack)
		if !ok {
			continue
		}
		b := mt.StartTile.Resolve(mt.Floor, len(l.Tiles))
		e := min(l.last(), mt.EndTile.Resolve(mt.Floor, len(l.Tiles)))
		for i := b; i <= e; i++ {
			l.Tiles[i].MoveTrack = append(l.Tiles[i].MoveTrack, MoveTrackEntry{
				Floor:       mt.Floor,
				AngleOffset: mt.At.AngleOffset,
				Beat:        mt.At.Beat,
				Seconds:     mt.At.Seconds,
				Duration:    mt.Duration,
				Position:    mt.PositionOffset,
				Rotation:    mt.RotationOffset,
				Scale:       mt.Scale,
				Opacity:     mt.Opacity,
				Ease:        mt.Ease,
			})
		}
	}
	for i := range l.Tiles {
		entries := l.Tiles[i].MoveTrack
		var end [numParams]float64
		for p := range end {
			end[p] = math.Inf(1)
		}
		for j := len(entries) - 1; j >= 0; j-- {
			entries[j].End = end
			for p := Param(0); p < numParams; p++ {
				if _, ok := entries[j].target(p); ok {
					end[p] = entries[j].Seconds
				}
			}
		}
	}
}
