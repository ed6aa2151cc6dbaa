package timeline

import (
	"github.com/coreman2200/adotimeline/internal/chart"
	"github.com/coreman2200/adotimeline/internal/ease"
	"github.com/coreman2200/adotimeline/internal/geom"
)

type Orbit int

const (
	CounterClockwise Orbit = iota
	Clockwise
)

func (o Orbit) Flip() Orbit {
	if o == Clockwise {
		return CounterClockwise
	}
	return Clockwise
}

func (o Orbit) String() string {
	if o == Clockwise {
		return "CW"
	}
	return "CCW"
}

// EventID indexes the level's event arena.
type EventID int

// Tile is one floor of the path. Fields with a Dynamic type are animated by
// Update; everything else is fixed by Parse.
type Tile struct {
	Direction chart.Direction
	Orbit     Orbit
	Beat      float64
	Seconds   float64
	Events    []EventID

	EditorPos     geom.Vec2
	StickToFloors bool
	Position      geom.Dynamic[geom.Vec2]
	Scale         geom.Dynamic[geom.Vec2]
	Rotation      geom.Dynamic[float64]
	Opacity       float64

	TrackColorType      geom.Dynamic[chart.TrackColorType]
	TrackColor          geom.Dynamic[chart.Color]
	SecondaryTrackColor geom.Dynamic[chart.Color]
	AnimDuration        geom.Dynamic[float64]
	Pulse               geom.Dynamic[chart.TrackColorPulse]
	PulseLength         geom.Dynamic[int]
	Style               geom.Dynamic[chart.TrackStyle]
	// Color is the rendered color from the last Update.
	Color chart.Color

	TrackAnimationFloor     int
	TrackAnimation          chart.TrackAnimation
	BeatsAhead              float64
	TrackDisappearAnimation chart.TrackDisappearAnimation
	BeatsBehind             float64

	Hitsound              chart.Hitsound
	HitsoundVolume        float64
	MidspinHitsound       chart.Hitsound
	MidspinHitsoundVolume float64

	MoveTrack []MoveTrackEntry
}

func newTile(d chart.Direction) Tile {
	return Tile{
		Direction:             d,
		Orbit:                 Clockwise,
		Opacity:               100,
		Scale:                 geom.NewDynamic(geom.Vec2{X: 100, Y: 100}),
		TrackColor:            geom.NewDynamic(chart.DefaultTrackColor),
		SecondaryTrackColor:   geom.NewDynamic(chart.White),
		PulseLength:           geom.NewDynamic(10),
		Hitsound:              chart.HitsoundKick,
		HitsoundVolume:        100,
		MidspinHitsound:       chart.HitsoundKick,
		MidspinHitsoundVolume: 100,
	}
}

// applySettings gives tile 0 the chart-wide defaults.
func applySettings(t *Tile, s chart.Settings) {
	t.EditorPos = geom.Vec2{}
	t.Position.Original = geom.Vec2{}
	t.StickToFloors = s.StickToFloors
	t.TrackAnimationFloor = 0
	t.TrackAnimation = s.TrackAnimation
	t.BeatsAhead = s.BeatsAhead
	t.TrackDisappearAnimation = s.TrackDisappearAnimation
	t.BeatsBehind = s.BeatsBehind

	t.TrackColorType.Original = s.TrackColorType
	t.TrackColor.Original = s.TrackColor
	t.SecondaryTrackColor.Original = s.SecondaryTrackColor
	t.AnimDuration.Original = s.TrackColorAnimDuration
	t.Style.Original = s.TrackStyle
	t.Pulse.Original = s.TrackColorPulse
	t.PulseLength.Original = s.TrackPulseLength

	t.Hitsound, t.MidspinHitsound = s.Hitsound, s.Hitsound
	t.HitsoundVolume, t.MidspinHitsoundVolume = s.HitsoundVolume, s.HitsoundVolume
}

// resetDynamics puts every animated field back to its parsed value.
func (t *Tile) resetDynamics() {
	t.Position.Reset()
	t.Scale.Reset()
	t.Rotation.Reset()
	t.Opacity = 100
	t.TrackColorType.Reset()
	t.TrackColor.Reset()
	t.SecondaryTrackColor.Reset()
	t.AnimDuration.Reset()
	t.Pulse.Reset()
	t.PulseLength.Reset()
	t.Style.Reset()
}

// Param names one independently animated channel of a MoveTrack or
// MoveCamera entry.
type Param int

const (
	ParamX Param = iota
	ParamY
	ParamRotation
	ParamScaleX
	ParamScaleY
	ParamOpacity
	numParams
)

// MoveTrackEntry is one MoveTrack as seen by a single tile it covers.
type MoveTrackEntry struct {
	Floor       int
	AngleOffset float64
	Beat        float64
	Seconds     float64
	Duration    float64
	Position    chart.OptionalPoint
	Rotation    *float64
	Scale       chart.OptionalPoint
	Opacity     *float64
	Ease        ease.Kind
	// End[p] is when the next entry on the same tile that sets p starts,
	// or +Inf.
	End [numParams]float64
}

func (e *MoveTrackEntry) target(p Param) (float64, bool) {
	var v *float64
	switch p {
	case ParamX:
		v = e.Position.X
	case ParamY:
		v = e.Position.Y
	case ParamRotation:
		v = e.Rotation
	case ParamScaleX:
		v = e.Scale.X
	case ParamScaleY:
		v = e.Scale.Y
	case ParamOpacity:
		v = e.Opacity
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}
