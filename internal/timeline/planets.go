package timeline

import (
	"sort"

	"github.com/coreman2200/adotimeline/internal/geom"
)

// PlanetsDir is the direction from the static planet to the moving one while
// the pair is on floor at seconds.
func (l *Level) PlanetsDir(floor int, seconds float64) geom.Angle {
	l.mustParsed()
	spb := crotchet(l.speeds.BPMAt(floor, seconds))
	if floor == 0 {
		return geom.Angle(-seconds / spb * 180)
	}
	t := &l.Tiles[floor]
	a := t.Direction.Angle() + 180
	if t.Direction.IsMidSpin() {
		a = l.Tiles[floor-1].Direction.Angle()
	}
	swing := geom.Angle((seconds - t.Seconds) / spb * 180)
	if t.Orbit == Clockwise {
		return a - swing
	}
	return a + swing
}

// FirePlanetStatic reports whether the fire planet is the pivot on floor.
func FirePlanetStatic(floor int) bool { return floor%2 == 0 }

// PlanetsPos returns the fire and ice planet positions.
func (l *Level) PlanetsPos(floor int, seconds float64) (fire, ice geom.Vec2) {
	l.mustParsed()
	t := &l.Tiles[floor]
	pivot := t.Position.Original
	if t.StickToFloors {
		pivot = t.Position.Current
	}
	moving := pivot.Add(l.PlanetsDir(floor, seconds).Unit())
	if FirePlanetStatic(floor) {
		return pivot, moving
	}
	return moving, pivot
}

// FloorByBeat is the last floor reached at beat, 0 before the first landing.
func (l *Level) FloorByBeat(beat float64) int {
	l.mustParsed()
	rest := l.Tiles[1:]
	return sort.Search(len(rest), func(i int) bool { return beat < rest[i].Beat })
}

func (l *Level) FloorBySeconds(seconds float64) int {
	l.mustParsed()
	rest := l.Tiles[1:]
	return sort.Search(len(rest), func(i int) bool { return seconds < rest[i].Seconds })
}

// IncludedAngle is the swing in degrees that ends on floor, in (0, 360], or 0
// for a mid-spin tile and for floor 0.
func (l *Level) IncludedAngle(floor int) float64 {
	l.mustParsed()
	return l.includedAngle(floor)
}
