package playback

import (
	"errors"
	"math"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/adotimeline/internal/camera"
	"github.com/coreman2200/adotimeline/internal/timeline"
)

var ErrNoLevel = errors.New("playback: no level loaded")

// NewPlayer constructs a Player with provided hooks.
func NewPlayer(h Hooks) *Player {
	return &Player{
		State:      Idle,
		Difficulty: timeline.Normal,
		hooks:      h,
	}
}

// Load replaces the current level, parsing it if needed. Resets time to the
// countdown start and state to Idle.
func (p *Player) Load(l *timeline.Level) error {
	if l == nil {
		return ErrNoLevel
	}
	if !l.IsParsed() {
		l.Parse()
	}
	p.level = l
	p.cam = camera.New(l)
	p.startS = l.CountdownStart()
	p.endS = l.Tiles[len(l.Tiles)-1].Seconds
	p.State = Idle
	p.rewind(p.startS)
	log.Debug().
		Int("tiles", len(l.Tiles)).
		Int("camera_moves", len(p.cam.Entries())-1).
		Float64("start_s", p.startS).
		Float64("end_s", p.endS).
		Msg("level loaded")
	return nil
}

// rewind jumps to t and clears the floor marker so the next frame reports
// the floor it lands on.
func (p *Player) rewind(t float64) {
	p.nowS = t
	p.camState = camera.NewState()
	p.floor = -1
}

// Level returns the loaded level, or nil.
func (p *Player) Level() *timeline.Level { return p.level }

// Now is the current chart time in seconds.
func (p *Player) Now() float64 { return p.nowS }

// Bounds returns the countdown start and the last landing.
func (p *Player) Bounds() (start, end float64) { return p.startS, p.endS }

// Start moves to Running and emits the current frame.
func (p *Player) Start() {
	if p.level == nil || p.State == Running {
		return
	}
	p.State = Running
	p.emit()
}

// Pause pauses playback.
func (p *Player) Pause() {
	if p.State == Running {
		p.State = Paused
	}
}

// Resume resumes playback.
func (p *Player) Resume() {
	if p.State == Paused {
		p.State = Running
	}
}

// Stop stops and resets to the countdown start.
func (p *Player) Stop() {
	p.State = Idle
	if p.level != nil {
		p.rewind(p.startS)
	}
}

// Seek jumps to chart time t, clamped into [start, end]. The camera's
// trailing point restarts at the new position.
func (p *Player) Seek(t float64) {
	if p.level == nil {
		return
	}
	p.rewind(math.Max(p.startS, math.Min(t, p.endS)))
	p.emit()
}

// Tick advances playback by dt seconds and emits a frame.
func (p *Player) Tick(dt float64) {
	if p.State != Running || p.level == nil {
		return
	}
	if dt <= 0 {
		return
	}
	p.nowS += dt
	if p.nowS < p.endS {
		p.emit()
		return
	}

	p.nowS = p.endS
	p.emit()
	if p.Loop {
		p.rewind(p.startS)
		return
	}
	p.State = Idle
	if p.hooks.OnEnd != nil {
		p.hooks.OnEnd()
	}
}

// Frame evaluates the level and the camera at the current time.
func (p *Player) Frame() Frame {
	snap := p.level.Snapshot(p.nowS)
	return Frame{
		Seconds: p.nowS,
		Beat:    snap.Beat,
		BPM:     p.level.BPMBySeconds(p.nowS),
		Floor:   snap.Floor,
		Camera:  p.cam.Update(p.level, p.camState, p.nowS, snap.Floor),
		Track:   snap,
	}
}

func (p *Player) emit() {
	f := p.Frame()
	if f.Floor != p.floor {
		p.floor = f.Floor
		if p.hooks.OnFloor != nil {
			p.hooks.OnFloor(f.Floor)
		}
	}
	if p.hooks.OnFrame != nil {
		p.hooks.OnFrame(f)
	}
}

// Press judges a key press at the current time against whichever of the
// surrounding landings is closer.
func (p *Player) Press() Hit {
	l := p.level
	at := p.nowS - p.InputOffset
	last := len(l.Tiles) - 1
	floor := min(max(1, l.FloorBySeconds(at)), last)
	if next := floor + 1; next <= last &&
		math.Abs(l.Timing(next, at)) < math.Abs(l.Timing(floor, at)) {
		floor = next
	}
	m := l.HitMargin(floor, at, p.Difficulty)
	return Hit{Floor: floor, Timing: l.Timing(floor, at), Margin: m, Grade: m.String()}
}

// --- Lightweight synchronization helpers ---

type SafePlayer struct {
	mu sync.Mutex
	P  *Player
}

func NewSafePlayer(h Hooks) *SafePlayer {
	return &SafePlayer{P: NewPlayer(h)}
}

func (s *SafePlayer) With(f func(p *Player)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.P)
}
