package timeline

import (
	"fmt"

	"github.com/coreman2200/adotimeline/internal/chart"
)

// DefaultLevel is a ten-tile straight line with default settings.
func DefaultLevel() *Level {
	doc := &chart.Document{Settings: chart.DefaultSettings()}
	for i := 0; i < 10; i++ {
		doc.Directions = append(doc.Directions, chart.Dir(0))
	}
	l, err := New(doc)
	if err != nil {
		panic(err)
	}
	l.Parse()
	return l
}

func (l *Level) checkFloor(floor, hi int) {
	if floor < 0 || floor > hi {
		panic(fmt.Sprintf("timeline: floor %d out of range [0, %d]", floor, hi))
	}
}

func (l *Level) dirty() {
	l.parsed = false
	l.events = l.events[:l.authored]
	l.processed = l.processed[:0]
}

// InsertTile inserts an empty tile so it becomes floor. Events on later
// tiles move with their tiles.
func (l *Level) InsertTile(floor int, d chart.Direction) {
	l.checkFloor(floor, len(l.Tiles))
	if floor == 0 {
		panic("timeline: cannot insert before the start tile")
	}
	l.dirty()
	l.touch(floor)
	l.Tiles = append(l.Tiles, Tile{})
	copy(l.Tiles[floor+1:], l.Tiles[floor:])
	l.Tiles[floor] = newTile(d)
}

func (l *Level) ChangeTileAngle(floor int, d chart.Direction) {
	l.checkFloor(floor, l.last())
	l.dirty()
	l.touch(floor)
	l.Tiles[floor].Direction = d
}

// EraseTiles removes floors [first, last) along with their events. last is
// clamped to the tile count.
func (l *Level) EraseTiles(first, last int) {
	last = min(last, len(l.Tiles))
	l.checkFloor(first, last)
	if first == 0 && last > 0 {
		panic("timeline: cannot erase the start tile")
	}
	l.dirty()
	l.touch(first - 1)
	for _, t := range l.Tiles[first:last] {
		for _, id := range t.Events {
			l.events[id] = nil
		}
	}
	l.Tiles = append(l.Tiles[:first], l.Tiles[last:]...)
}

func (l *Level) AppendTile(d chart.Direction) {
	l.dirty()
	l.touch(l.last())
	l.Tiles = append(l.Tiles, newTile(d))
}

// PopTile removes the last tile and its events.
func (l *Level) PopTile() {
	if len(l.Tiles) < 2 {
		panic(ErrTooFewTiles)
	}
	l.EraseTiles(l.last(), len(l.Tiles))
}

// AddEvent files e under its floor and returns its id. The level takes
// ownership of e. A non-stackable event replaces any event of the same type
// already on the tile.
func (l *Level) AddEvent(e chart.Event) EventID {
	floor := e.Head().Floor
	l.checkFloor(floor, l.last())
	if !e.Stackable() {
		for _, id := range append([]EventID(nil), l.Tiles[floor].Events...) {
			if old := l.events[id]; old != nil && old.Type() == e.Type() {
				l.RemoveEvent(id)
			}
		}
	}
	l.dirty()
	l.touch(floor)
	return l.push(e)
}

// RemoveEvent deletes an authored event. The id is not reused.
func (l *Level) RemoveEvent(id EventID) {
	if id < 0 || int(id) >= l.authored || l.events[id] == nil {
		panic(fmt.Sprintf("timeline: no event %d", id))
	}
	l.dirty()
	l.events[id] = nil
	for f := range l.Tiles {
		t := &l.Tiles[f]
		for i, x := range t.Events {
			if x == id {
				t.Events = append(t.Events[:i], t.Events[i+1:]...)
				l.touch(f)
				return
			}
		}
	}
}

func (l *Level) DisableAnimateTrack() bool { return l.disableAnimateTrack }

// SetDisableAnimateTrack turns AnimateTrack synthesis off or on.
func (l *Level) SetDisableAnimateTrack(disable bool) {
	if l.disableAnimateTrack != disable {
		l.dirty()
	}
	l.disableAnimateTrack = disable
}
