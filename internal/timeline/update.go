package timeline

import (
	"math"

	"github.com/coreman2200/adotimeline/internal/chart"
	"github.com/coreman2200/adotimeline/internal/ease"
)

// reset puts every tile back to its parsed state, colored as at second 0.
func (l *Level) reset() {
	for i := range l.Tiles {
		l.Tiles[i].resetDynamics()
		l.tileColor(0, i)
	}
}

// Update evaluates every tile's animated state at seconds. It starts from
// the parsed state each time, so repeated calls with the same argument give
// the same result.
func (l *Level) Update(seconds float64) {
	l.mustParsed()
	for i := range l.Tiles {
		l.Tiles[i].resetDynamics()
	}
	for _, id := range l.processed {
		if seconds < l.anchor(id).Seconds {
			break
		}
		if rt, ok := l.events[id].(*chart.RecolorTrack); ok {
			l.recolor(rt)
		}
	}
	for i := range l.Tiles {
		l.tileColor(seconds, i)
		l.tilePos(seconds, i)
	}
}

// recolor applies a RecolorTrack to its tile range. It takes effect at
// once; duration and ease are not animated.
func (l *Level) recolor(rt *chart.RecolorTrack) {
	b := rt.StartTile.Resolve(rt.Floor, len(l.Tiles))
	e := min(l.last(), rt.EndTile.Resolve(rt.Floor, len(l.Tiles)))
	for i := b; i <= e; i++ {
		t := &l.Tiles[i]
		t.TrackColor.Current = rt.TrackColor
		t.SecondaryTrackColor.Current = rt.SecondaryTrackColor
		t.TrackColorType.Current = rt.TrackColorType
		t.Style.Current = rt.Style
		t.Pulse.Current = rt.Pulse
		t.PulseLength.Current = rt.PulseLength
		t.AnimDuration.Current = rt.AnimDuration
	}
}

func positiveMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}

// colorPhase is where tile i is in its color cycle, in [0, 1).
func colorPhase(t *Tile, seconds float64, i int) float64 {
	d := t.AnimDuration.Current
	if d == 0 {
		return 0
	}
	x := seconds / d
	if n := t.PulseLength.Current; n != 0 {
		switch t.Pulse.Current {
		case chart.PulseForward:
			x -= float64(i) / float64(n)
		case chart.PulseBackward:
			x += float64(i) / float64(n)
		}
	}
	return positiveMod(x, 1)
}

func (l *Level) tileColor(seconds float64, i int) {
	t := &l.Tiles[i]
	x := colorPhase(t, seconds, i)
	primary, secondary := t.TrackColor.Current, t.SecondaryTrackColor.Current
	switch t.TrackColorType.Current {
	case chart.ColorStripes:
		t.Color = primary
		if i%2 != 0 {
			t.Color = secondary
		}
	case chart.ColorGlow:
		if x > 0.5 {
			x = 1 - x
		}
		t.Color = primary.Mix(secondary, uint8(x*2*255))
	case chart.ColorBlink:
		t.Color = primary.Mix(secondary, uint8(x*255))
	case chart.ColorSwitch:
		t.Color = primary
		if x > 0.5 {
			t.Color = secondary
		}
	case chart.ColorRainbow:
		t.Color = primary.HueShift(x * 360)
	case chart.ColorVolume:
		t.Color = primary
		if int(x*4)%2 != 0 {
			t.Color = secondary
		}
	default:
		t.Color = primary
	}
}

// channel returns the animated value for p and the value a MoveTrack
// target is relative to.
func (t *Tile) channel(p Param) (cur *float64, base float64) {
	switch p {
	case ParamX:
		return &t.Position.Current.X, t.Position.Original.X
	case ParamY:
		return &t.Position.Current.Y, t.Position.Original.Y
	case ParamRotation:
		return &t.Rotation.Current, 0
	case ParamScaleX:
		return &t.Scale.Current.X, 0
	case ParamScaleY:
		return &t.Scale.Current.Y, 0
	default:
		return &t.Opacity, 0
	}
}

// tilePos chases each parameter toward the target of every MoveTrack that
// has started. An entry stops pulling on a parameter once a later entry
// sets it.
func (l *Level) tilePos(seconds float64, i int) {
	t := &l.Tiles[i]
	for j := range t.MoveTrack {
		m := &t.MoveTrack[j]
		if seconds < m.Seconds {
			break
		}
		spb := crotchet(l.speeds.BPMForDynamicEvent(m.Floor, m.AngleOffset))
		for p := Param(0); p < numParams; p++ {
			target, ok := m.target(p)
			if !ok {
				continue
			}
			x := 1.0
			if m.Duration != 0 {
				x = (math.Min(seconds, m.End[p]) - m.Seconds) / spb / m.Duration
			}
			y := ease.Ease(m.Ease, x)
			cur, base := t.channel(p)
			*cur += (base + target - *cur) * y
		}
	}
}
