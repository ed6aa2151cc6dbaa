package timeline

import (
	"github.com/coreman2200/adotimeline/internal/chart"
	"github.com/coreman2200/adotimeline/internal/geom"
)

// TileState is the rendered state of one tile at a query second.
type TileState struct {
	Floor    int         `json:"floor"`
	Position geom.Vec2   `json:"position"`
	Rotation float64     `json:"rotation"`
	Scale    geom.Vec2   `json:"scale"`
	Opacity  float64     `json:"opacity"`
	Color    chart.Color `json:"color"`
}

// Snapshot is everything a renderer needs for one frame of the track.
type Snapshot struct {
	Seconds float64     `json:"seconds"`
	Beat    float64     `json:"beat"`
	Floor   int         `json:"floor"`
	Fire    geom.Vec2   `json:"fire"`
	Ice     geom.Vec2   `json:"ice"`
	Tiles   []TileState `json:"tiles"`
}

// Snapshot runs Update at seconds and copies out the result.
func (l *Level) Snapshot(seconds float64) Snapshot {
	l.Update(seconds)
	floor := l.FloorBySeconds(seconds)
	s := Snapshot{
		Seconds: seconds,
		Beat:    l.speeds.SecondsToBeat(seconds),
		Floor:   floor,
		Tiles:   make([]TileState, len(l.Tiles)),
	}
	s.Fire, s.Ice = l.PlanetsPos(floor, seconds)
	for i := range l.Tiles {
		t := &l.Tiles[i]
		s.Tiles[i] = TileState{
			Floor:    i,
			Position: t.Position.Current,
			Rotation: t.Rotation.Current,
			Scale:    t.Scale.Current,
			Opacity:  t.Opacity,
			Color:    t.Color,
		}
	}
	return s
}
