// Package camera resolves MoveCamera events into a camera view over time.
package camera

import (
	"math"

	"github.com/coreman2200/adotimeline/internal/chart"
	"github.com/coreman2200/adotimeline/internal/ease"
	"github.com/coreman2200/adotimeline/internal/geom"
	"github.com/coreman2200/adotimeline/internal/timeline"
)

// Entry is one camera move. Entry 0 of a Resolver is the chart's initial
// camera, anchored at -Inf.
type Entry struct {
	Floor       int
	AngleOffset float64
	Seconds     float64
	Duration    float64
	RelativeTo  *chart.RelativeToCamera
	Position    chart.OptionalPoint
	Rotation    *float64
	Zoom        *float64
	Ease        ease.Kind

	// Duplicated marks a Player or LastPosition move that follows a Player
	// span and so does not start a new one.
	Duplicated bool
	// RelEnd is when the next relativity span starts.
	RelEnd  float64
	XEnd    float64
	YEnd    float64
	RotEnd  float64
	ZoomEnd float64
}

type Resolver struct {
	entries []Entry
}

// New collects the level's processed MoveCameras. The level must be parsed.
func New(l *timeline.Level) *Resolver {
	inf := math.Inf(1)
	xEnd, yEnd, rotEnd, zoomEnd := inf, inf, inf, inf

	var moves []Entry
	ids := l.Processed()
	for i := len(ids) - 1; i >= 0; i-- {
		mc, ok := l.Event(ids[i]).(*chart.MoveCamera)
		if !ok {
			continue
		}
		moves = append(moves, Entry{
			Floor:       mc.Floor,
			AngleOffset: mc.At.AngleOffset,
			Seconds:     mc.At.Seconds,
			Duration:    mc.Duration,
			RelativeTo:  mc.RelativeTo,
			Position:    mc.Position,
			Rotation:    mc.Rotation,
			Zoom:        mc.Zoom,
			Ease:        mc.Ease,
			XEnd:        xEnd,
			YEnd:        yEnd,
			RotEnd:      rotEnd,
			ZoomEnd:     zoomEnd,
		})
		if mc.RelativeTo != nil && *mc.RelativeTo == chart.CameraLastPosition {
			xEnd, yEnd = mc.At.Seconds, mc.At.Seconds
		}
		if mc.Position.X != nil {
			xEnd = mc.At.Seconds
		}
		if mc.Position.Y != nil {
			yEnd = mc.At.Seconds
		}
		if mc.Rotation != nil {
			rotEnd = mc.At.Seconds
		}
		if mc.Zoom != nil {
			zoomEnd = mc.At.Seconds
		}
	}

	s := l.Settings
	rel := s.RelativeTo
	r := &Resolver{entries: make([]Entry, 0, len(moves)+1)}
	r.entries = append(r.entries, Entry{
		Seconds:    math.Inf(-1),
		RelativeTo: &rel,
		Position:   chart.OptionalPoint{X: chart.Float(s.Position.X), Y: chart.Float(s.Position.Y)},
		Rotation:   chart.Float(s.Rotation),
		Zoom:       chart.Float(s.Zoom),
		Ease:       ease.Linear,
		XEnd:       xEnd,
		YEnd:       yEnd,
		RotEnd:     rotEnd,
		ZoomEnd:    zoomEnd,
	})
	for i := len(moves) - 1; i >= 0; i-- {
		r.entries = append(r.entries, moves[i])
	}

	last := rel
	for i := 1; i < len(r.entries); i++ {
		e := &r.entries[i]
		if e.RelativeTo == nil {
			continue
		}
		e.Duplicated = last == chart.CameraPlayer &&
			(*e.RelativeTo == chart.CameraPlayer || *e.RelativeTo == chart.CameraLastPosition)
		if !e.Duplicated {
			last = *e.RelativeTo
		}
	}
	relEnd := inf
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := &r.entries[i]
		e.RelEnd = relEnd
		if e.RelativeTo != nil && !e.Duplicated {
			relEnd = e.Seconds
		}
	}
	return r
}

// Entries returns the resolved moves, the initial camera first.
func (r *Resolver) Entries() []Entry { return r.entries }

// State is what the camera carries from one Update to the next: the
// trailing point that follows the planets, and the last position reached in
// each Player span.
type State struct {
	Player         geom.Vec2
	LastSeconds    float64
	LastFloor      int
	LastChangedPos geom.Vec2

	started    bool
	playerLast map[int]geom.Vec2
}

func NewState() *State {
	return &State{playerLast: map[int]geom.Vec2{}}
}

// View is the camera at one instant.
type View struct {
	Position geom.Vec2 `json:"position"`
	Rotation float64   `json:"rotation"`
	Zoom     float64   `json:"zoom"`
}

// follow moves the trailing point toward floor's tile at a speed that covers
// the distance from where it was when the floor changed in half a beat.
func (st *State) follow(l *timeline.Level, seconds float64, floor int) {
	target := l.Tiles[floor].Position.Original
	if !st.started {
		st.started = true
		st.Player, st.LastChangedPos, st.LastFloor = target, target, floor
		return
	}
	delta := math.Max(0, seconds-st.LastSeconds)
	if floor != st.LastFloor {
		st.LastFloor = floor
		st.LastChangedPos = st.Player
	}
	speed := target.Dist(st.LastChangedPos) * l.BPMBySeconds(seconds) / 120
	gap := target.Sub(st.Player)
	step := delta * speed
	if d := gap.Len(); d > step {
		st.Player = st.Player.Add(gap.Scale(step / d))
	} else {
		st.Player = target
	}
}

// Update evaluates the camera at seconds with the planets on floor. st is
// advanced; reusing one State across a seek backwards keeps the trailing
// point where it was.
func (r *Resolver) Update(l *timeline.Level, st *State, seconds float64, floor int) View {
	if st.playerLast == nil {
		st.playerLast = map[int]geom.Vec2{}
	}
	var pos, off geom.Vec2
	rotation, zoom := 0.0, 100.0
	followed := false
	for i := range r.entries {
		e := &r.entries[i]
		if seconds < e.Seconds {
			break
		}
		spb := 60 / l.BPMForDynamicEvent(e.Floor, e.AngleOffset)
		progress := func(end float64) float64 {
			x := 1.0
			if e.Duration != 0 {
				x = (math.Min(seconds, end) - e.Seconds) / spb / e.Duration
			}
			return ease.Ease(e.Ease, x)
		}

		if e.RelativeTo != nil && !e.Duplicated {
			y := progress(e.RelEnd)
			inSpan := seconds <= e.RelEnd
			switch *e.RelativeTo {
			case chart.CameraPlayer:
				if !inSpan {
					if p, ok := st.playerLast[i]; ok {
						pos = p
					}
					break
				}
				if !followed {
					st.follow(l, seconds, floor)
					followed = true
				}
				pos = pos.Lerp(st.Player, y)
				st.playerLast[i] = pos
			case chart.CameraTile:
				pos = pos.Lerp(l.Tiles[e.Floor].Position.Original, y)
				if inSpan {
					st.Player = pos
				}
			case chart.CameraGlobal:
				pos = pos.Scale(1 - y)
				if inSpan {
					st.Player = pos
				}
			case chart.CameraLastPosition:
				pos = pos.Add(off)
				off = geom.Vec2{}
				if inSpan {
					st.Player = pos
				}
			}
		}

		if e.Position.X != nil {
			off.X += (*e.Position.X - off.X) * progress(e.XEnd)
		}
		if e.Position.Y != nil {
			off.Y += (*e.Position.Y - off.Y) * progress(e.YEnd)
		}
		if e.Rotation != nil {
			rotation += (*e.Rotation - rotation) * progress(e.RotEnd)
		}
		if e.Zoom != nil {
			zoom += (*e.Zoom - zoom) * progress(e.ZoomEnd)
		}
	}
	st.LastSeconds = seconds
	return View{Position: pos.Add(off), Rotation: rotation, Zoom: zoom}
}
