package playback

import (
	"github.com/coreman2200/adotimeline/internal/camera"
	"github.com/coreman2200/adotimeline/internal/timeline"
)

// PlayerState enumerates playback states.
type PlayerState string

const (
	Idle    PlayerState = "idle"
	Running PlayerState = "running"
	Paused  PlayerState = "paused"
)

// Frame is one evaluated instant of the chart.
type Frame struct {
	Seconds float64           `json:"seconds"`
	Beat    float64           `json:"beat"`
	BPM     float64           `json:"bpm"`
	Floor   int               `json:"floor"`
	Camera  camera.View       `json:"camera"`
	Track   timeline.Snapshot `json:"track"`
}

// Hit is the judgment of one key press.
type Hit struct {
	Floor  int                `json:"floor"`
	Timing float64            `json:"timing"`
	Margin timeline.HitMargin `json:"-"`
	Grade  string             `json:"margin"`
}

// Hooks are callbacks into whatever consumes the frames.
type Hooks struct {
	// OnFrame receives every evaluated frame.
	OnFrame func(f Frame)
	// OnFloor fires when the planets land on a new floor, and for the floor
	// reached by a Seek.
	OnFloor func(floor int)
	// OnEnd fires when a non-looping chart reaches its last tile.
	OnEnd func()
}

// Player owns a resolved level and a clock over it.
type Player struct {
	State PlayerState

	Difficulty timeline.Difficulty
	// InputOffset is subtracted from press times, in seconds.
	InputOffset float64
	Loop        bool

	level    *timeline.Level
	cam      *camera.Resolver
	camState *camera.State

	nowS   float64
	startS float64 // countdown start
	endS   float64 // landing on the last tile
	floor  int

	hooks Hooks
}
