package timeline

import (
	"errors"
	"fmt"

	"github.com/coreman2200/adotimeline/internal/chart"
)

var (
	ErrTooFewTiles = errors.New("timeline: a chart needs at least two tiles")
	ErrNotParsed   = errors.New("timeline: level is not parsed")
)

// Level owns a chart's tiles and events and resolves them into a timeline.
// Edits mark it unparsed; every query on an unparsed level panics.
//
// Events live in an arena indexed by EventID. Authored events keep their id
// for the life of the level; events produced by Parse are appended after
// them and discarded on the next Parse or edit.
type Level struct {
	Settings chart.Settings
	Tiles    []Tile

	events    []chart.Event
	authored  int
	processed []EventID
	speeds    SpeedTable

	usePath             bool
	parsed              bool
	disableAnimateTrack bool
	// stale is the lowest floor edited since the last Parse.
	stale int
}

// New builds an unparsed level from a decoded document. The document's
// events are cloned, so doc can be reused.
func New(doc *chart.Document) (*Level, error) {
	if len(doc.Directions) < 1 {
		return nil, ErrTooFewTiles
	}
	l := &Level{Settings: doc.Settings, usePath: doc.UsePath}
	l.Tiles = make([]Tile, 0, len(doc.Directions)+1)
	l.Tiles = append(l.Tiles, newTile(chart.Dir(0)))
	for _, d := range doc.Directions {
		l.Tiles = append(l.Tiles, newTile(d))
	}
	for _, e := range doc.Events {
		floor := e.Head().Floor
		if floor < 0 || floor >= len(l.Tiles) {
			return nil, fmt.Errorf("timeline: %s on floor %d of %d", e.Type(), floor, len(l.Tiles))
		}
		l.push(e.Clone())
	}
	return l, nil
}

// push appends an authored event and files it under its floor.
func (l *Level) push(e chart.Event) EventID {
	l.events = l.events[:l.authored]
	id := EventID(len(l.events))
	l.events = append(l.events, e)
	l.authored++
	t := &l.Tiles[e.Head().Floor]
	t.Events = append(t.Events, id)
	return id
}

// generate appends a parse-time event.
func (l *Level) generate(e chart.Event) EventID {
	id := EventID(len(l.events))
	l.events = append(l.events, e)
	return id
}

// Document rebuilds the chart, authored events only, in floor order.
func (l *Level) Document() *chart.Document {
	doc := &chart.Document{UsePath: l.usePath, Settings: l.Settings}
	for i, t := range l.Tiles {
		if i > 0 {
			doc.Directions = append(doc.Directions, t.Direction)
		}
		for _, id := range t.Events {
			e := l.events[id].Clone()
			e.Head().Floor = i
			doc.Events = append(doc.Events, e)
		}
	}
	return doc
}

// Event returns the event with the given id, or nil if it was removed.
func (l *Level) Event(id EventID) chart.Event {
	if id < 0 || int(id) >= len(l.events) {
		return nil
	}
	return l.events[id]
}

// Processed returns the resolved dynamic events in beat order, including
// generated ones.
func (l *Level) Processed() []EventID {
	l.mustParsed()
	return l.processed
}

// Speeds returns the tempo table built by the last Parse.
func (l *Level) Speeds() *SpeedTable {
	l.mustParsed()
	return &l.speeds
}

func (l *Level) IsParsed() bool { return l.parsed }

func (l *Level) mustParsed() {
	if !l.parsed {
		panic(ErrNotParsed)
	}
}

func (l *Level) last() int { return len(l.Tiles) - 1 }

func (l *Level) touch(floor int) { l.stale = max(0, min(l.stale, floor)) }

// RelToAbs resolves a tile index relative to floor base.
func (l *Level) RelToAbs(base int, r chart.RelativeIndex) int {
	l.mustParsed()
	return r.Resolve(base, len(l.Tiles))
}

// CountdownStart is the second at which the countdown begins. Tile 0 itself
// reports -Inf after Parse.
func (l *Level) CountdownStart() float64 {
	l.mustParsed()
	return l.speeds.BeatToSeconds(-l.Settings.CountdownTicks)
}

func (l *Level) BeatToSeconds(beat float64) float64 {
	l.mustParsed()
	return l.speeds.BeatToSeconds(beat)
}

func (l *Level) SecondsToBeat(seconds float64) float64 {
	l.mustParsed()
	return l.speeds.SecondsToBeat(seconds)
}

func (l *Level) BPMByBeat(beat float64) float64 {
	l.mustParsed()
	return l.speeds.BPMByBeat(beat)
}

func (l *Level) BPMBySeconds(seconds float64) float64 {
	l.mustParsed()
	return l.speeds.BPMBySeconds(seconds)
}

func (l *Level) BPMExcludingBeat(beat float64) float64 {
	l.mustParsed()
	return l.speeds.BPMExcludingBeat(beat)
}

func (l *Level) BPMForDynamicEvent(floor int, angleOffset float64) float64 {
	l.mustParsed()
	return l.speeds.BPMForDynamicEvent(floor, angleOffset)
}
