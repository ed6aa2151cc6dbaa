package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/adotimeline/internal/chart"
	"github.com/coreman2200/adotimeline/internal/timeline"
)

const eps = 1e-9

// fourTiles lands on x = 1..4 at 0, 0.6, 1.2 and 1.8 seconds.
func fourTiles(t *testing.T) *timeline.Level {
	t.Helper()
	doc, _, err := chart.Decode([]byte(`{"angleData":[0,0,0,0],"settings":{"bpm":100},"actions":[]}`))
	require.NoError(t, err)
	l, err := timeline.New(doc)
	require.NoError(t, err)
	return l
}

func TestLoad(t *testing.T) {
	p := NewPlayer(Hooks{})
	assert.ErrorIs(t, p.Load(nil), ErrNoLevel)

	l := fourTiles(t)
	require.False(t, l.IsParsed())
	require.NoError(t, p.Load(l))
	assert.True(t, l.IsParsed())
	assert.Equal(t, Idle, p.State)

	start, end := p.Bounds()
	assert.InDelta(t, -2.4, start, eps)
	assert.InDelta(t, 1.8, end, eps)
	assert.Equal(t, start, p.Now())
}

func TestPlayerRunsToEnd(t *testing.T) {
	var floors []int
	frames, ends := 0, 0
	p := NewPlayer(Hooks{
		OnFrame: func(f Frame) { frames++ },
		OnFloor: func(floor int) { floors = append(floors, floor) },
		OnEnd:   func() { ends++ },
	})
	require.NoError(t, p.Load(fourTiles(t)))

	p.Tick(1)
	assert.Equal(t, 0, frames, "idle player does not tick")

	p.Seek(0.3)
	p.Start()
	p.Tick(0.6)
	p.Tick(0.6)
	assert.Equal(t, Running, p.State)
	p.Tick(1)

	assert.Equal(t, []int{1, 2, 3, 4}, floors)
	assert.Equal(t, 1, ends)
	assert.Equal(t, 5, frames)
	assert.Equal(t, Idle, p.State)
	assert.InDelta(t, 1.8, p.Now(), eps)
}

func TestSeekReportsFloor(t *testing.T) {
	var floors []int
	p := NewPlayer(Hooks{OnFloor: func(floor int) { floors = append(floors, floor) }})
	require.NoError(t, p.Load(fourTiles(t)))

	p.Seek(1.3)
	assert.Equal(t, []int{3}, floors)
	assert.Equal(t, 3, p.Frame().Floor)

	p.Start()
	assert.Equal(t, []int{3}, floors, "same floor is not reported twice")

	p.Seek(0.1)
	p.Seek(0.2)
	assert.Equal(t, []int{3, 1, 1}, floors)
}

func TestPlayerLoops(t *testing.T) {
	ends := 0
	p := NewPlayer(Hooks{OnEnd: func() { ends++ }})
	p.Loop = true
	require.NoError(t, p.Load(fourTiles(t)))
	p.Start()
	p.Tick(10)

	start, _ := p.Bounds()
	assert.Equal(t, Running, p.State)
	assert.Equal(t, start, p.Now())
	assert.Equal(t, 0, ends)
}

func TestPauseResumeStop(t *testing.T) {
	p := NewPlayer(Hooks{})
	require.NoError(t, p.Load(fourTiles(t)))
	p.Seek(0)
	p.Start()
	p.Pause()
	assert.Equal(t, Paused, p.State)
	p.Tick(0.5)
	assert.InDelta(t, 0.0, p.Now(), eps)

	p.Resume()
	p.Tick(0.5)
	assert.InDelta(t, 0.5, p.Now(), eps)

	p.Stop()
	start, _ := p.Bounds()
	assert.Equal(t, Idle, p.State)
	assert.Equal(t, start, p.Now())
}

func TestSeekClamps(t *testing.T) {
	p := NewPlayer(Hooks{})
	require.NoError(t, p.Load(fourTiles(t)))
	start, end := p.Bounds()
	p.Seek(-100)
	assert.Equal(t, start, p.Now())
	p.Seek(100)
	assert.Equal(t, end, p.Now())
}

func TestFrame(t *testing.T) {
	p := NewPlayer(Hooks{})
	require.NoError(t, p.Load(fourTiles(t)))
	p.Seek(0.9)
	f := p.Frame()
	assert.Equal(t, 2, f.Floor)
	assert.InDelta(t, 100.0, f.BPM, eps)
	assert.InDelta(t, 1.5, f.Beat, eps)
	assert.InDelta(t, 100.0, f.Camera.Zoom, eps)
	assert.Len(t, f.Track.Tiles, 5)
}

func TestPress(t *testing.T) {
	p := NewPlayer(Hooks{})
	require.NoError(t, p.Load(fourTiles(t)))

	for _, tc := range []struct {
		name   string
		at     float64
		offset float64
		floor  int
		margin timeline.HitMargin
	}{
		{"on time", 0.61, 0, 2, timeline.Perfect},
		{"late", 0.85, 0, 2, timeline.TooLate},
		{"early for next", 1.08, 0, 3, timeline.EarlyPerfect},
		{"countdown", -2.0, 0, 1, timeline.TooEarly},
		{"input offset", 0.66, 0.05, 2, timeline.Perfect},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p.InputOffset = tc.offset
			p.Seek(tc.at)
			h := p.Press()
			assert.Equal(t, tc.floor, h.Floor)
			assert.Equal(t, tc.margin, h.Margin)
			assert.Equal(t, tc.margin.String(), h.Grade)
		})
	}
}

func TestSafePlayer(t *testing.T) {
	s := NewSafePlayer(Hooks{})
	s.With(func(p *Player) {
		require.NoError(t, p.Load(fourTiles(t)))
		p.Start()
	})
	s.With(func(p *Player) { assert.Equal(t, Running, p.State) })
}
