package ws

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/coreman2200/adotimeline/internal/chart"
	"github.com/coreman2200/adotimeline/internal/config"
	diag "github.com/coreman2200/adotimeline/internal/diagnostics"
	"github.com/coreman2200/adotimeline/internal/playback"
	"github.com/coreman2200/adotimeline/internal/timeline"
)

type State struct {
	mu  sync.RWMutex
	FPS int

	ConfigPath string
	ChartPath  string
	LogLevel   string

	Player *playback.SafePlayer

	latest      *playback.Frame
	lastHit     *playback.Hit
	frameID     uint64
	startTime   time.Time
	clients     map[*websocket.Conn]bool
	diagClients map[*websocket.Conn]bool
}

func NewState(fps int) *State {
	s := &State{
		FPS:         fps,
		startTime:   time.Now(),
		clients:     map[*websocket.Conn]bool{},
		diagClients: map[*websocket.Conn]bool{},
	}
	s.Player = playback.NewSafePlayer(playback.Hooks{
		OnFrame: func(f playback.Frame) {
			s.mu.Lock()
			s.latest = &f
			s.frameID++
			s.mu.Unlock()
		},
		OnEnd: func() {
			s.pushDiag(diag.Diagnostic{Severity: diag.Info, Code: diag.PlaybackEnd, Summary: "Chart finished"})
		},
	})
	return s
}

// LoadChart decodes and resolves the chart at path and hands it to the
// player. Per-action problems are pushed as diagnostics.
func (s *State) LoadChart(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return s.failChart(path, err)
	}
	doc, diags, err := chart.Decode(data)
	if err != nil {
		return s.failChart(path, err)
	}
	l, err := timeline.New(doc)
	if err != nil {
		return s.failChart(path, err)
	}

	s.Player.With(func(p *playback.Player) {
		if old := p.Level(); old != nil {
			l.SetDisableAnimateTrack(old.DisableAnimateTrack())
		}
		err = p.Load(l)
	})
	if err != nil {
		return s.failChart(path, err)
	}

	s.mu.Lock()
	s.ChartPath = path
	s.lastHit = nil
	s.mu.Unlock()
	for _, d := range diags {
		s.pushDiag(d)
	}
	s.pushDiag(diag.Diagnostic{
		Severity: diag.Info, Code: diag.ChartLoaded, Summary: "Chart loaded", Detail: path,
		Evidence: map[string]any{"tiles": len(l.Tiles), "skipped": len(diags)},
	})
	log.Info().Str("chart", path).Int("tiles", len(l.Tiles)).Int("skipped", len(diags)).Msg("chart loaded")
	return nil
}

func (s *State) failChart(path string, err error) error {
	s.pushDiag(diag.Diagnostic{
		Severity: diag.Err, Code: diag.ChartFailed, Summary: "Chart could not be loaded", Detail: err.Error(),
		Evidence: map[string]any{"path": path},
	})
	return fmt.Errorf("load chart %s: %w", path, err)
}

func (s *State) RunRenderLoop() {
	s.mu.RLock()
	fps := s.FPS
	s.mu.RUnlock()
	ticker := time.NewTicker(time.Second / time.Duration(max(1, fps)))
	defer ticker.Stop()
	last := time.Now()
	for now := range ticker.C {
		dt := now.Sub(last).Seconds()
		last = now
		s.Player.With(func(p *playback.Player) { p.Tick(dt) })

		s.mu.Lock()
		f, id := s.latest, s.frameID
		s.latest = nil
		if s.FPS != fps && s.FPS > 0 {
			fps = s.FPS
			ticker.Reset(time.Second / time.Duration(fps))
		}
		s.mu.Unlock()
		if f != nil {
			s.broadcastFrame(id, f)
		}
	}
}

func (s *State) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()
	s.sendStatus(conn)

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *State) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.diagClients[conn] = true
	s.mu.Unlock()
	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.diagClients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *State) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if !gjson.ValidBytes(data) {
			continue
		}
		s.applyControl(gjson.ParseBytes(data))
		s.sendStatus(conn)
	}
}

func (s *State) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.status())
}

// applyControl handles one control message, e.g. {"cmd":"start"},
// {"seek":12.5}, {"press":true} or {"chart":"levels/a.adofai"}.
func (s *State) applyControl(msg gjson.Result) {
	if v := msg.Get("chart"); v.Type == gjson.String {
		if err := s.LoadChart(v.String()); err != nil {
			log.Warn().Err(err).Msg("control: chart")
		}
	}

	var unknown string
	s.Player.With(func(p *playback.Player) {
		if v := msg.Get("loop"); v.IsBool() {
			p.Loop = v.Bool()
		}
		if v := msg.Get("difficulty"); v.Exists() {
			d, err := timeline.ParseDifficulty(v.String())
			if err != nil {
				unknown = "difficulty " + v.String()
			} else {
				p.Difficulty = d
			}
		}
		if v := msg.Get("inputOffsetMs"); v.Type == gjson.Number {
			p.InputOffset = v.Float() / 1000
		}
		if v := msg.Get("disableAnimateTrack"); v.IsBool() && p.Level() != nil {
			now, state := p.Now(), p.State
			p.Level().SetDisableAnimateTrack(v.Bool())
			if err := p.Load(p.Level()); err == nil {
				p.Seek(now)
				p.State = state
			}
		}
		if v := msg.Get("seek"); v.Type == gjson.Number {
			p.Seek(v.Float())
		}
		if v := msg.Get("cmd"); v.Exists() {
			switch v.String() {
			case "start":
				p.Start()
			case "pause":
				p.Pause()
			case "resume":
				p.Resume()
			case "stop":
				p.Stop()
			default:
				unknown = "cmd " + v.String()
			}
		}
		if msg.Get("press").Bool() && p.Level() != nil {
			h := p.Press()
			s.mu.Lock()
			s.lastHit = &h
			s.mu.Unlock()
		}
	})

	if v := msg.Get("fps"); v.Type == gjson.Number && v.Int() > 0 {
		s.mu.Lock()
		s.FPS = int(v.Int())
		s.mu.Unlock()
	}
	if unknown != "" {
		s.pushDiag(diag.Diagnostic{
			Severity: diag.Warn, Code: diag.ControlBad, Summary: "Unknown control value",
			Evidence: map[string]any{"value": unknown},
		})
	}

	// Persist config after any change
	s.saveConfig()
}

func (s *State) saveConfig() {
	s.mu.RLock()
	path := s.ConfigPath
	cfg := &config.Config{FPS: s.FPS, Chart: s.ChartPath, LogLevel: s.LogLevel}
	s.mu.RUnlock()
	if path == "" {
		return
	}
	if prev, err := config.Load(path); err == nil {
		cfg.Addr = prev.Addr
	}
	s.Player.With(func(p *playback.Player) {
		cfg.Loop = p.Loop
		cfg.Judgment = config.Judgment{Difficulty: p.Difficulty.String(), InputOffsetMs: p.InputOffset * 1000}
		if l := p.Level(); l != nil {
			cfg.DisableAnimateTrack = l.DisableAnimateTrack()
		}
	})
	if err := config.Save(path, cfg); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("config save failed")
	}
}

func (s *State) status() map[string]any {
	resp := map[string]any{}
	s.Player.With(func(p *playback.Player) {
		resp["state"] = p.State
		resp["seconds"] = p.Now()
		resp["loop"] = p.Loop
		resp["difficulty"] = p.Difficulty.String()
		if l := p.Level(); l != nil {
			start, end := p.Bounds()
			resp["tiles"] = len(l.Tiles)
			resp["start_s"] = start
			resp["end_s"] = end
		}
	})
	s.mu.RLock()
	defer s.mu.RUnlock()
	resp["frame_id"] = s.frameID
	resp["uptime_s"] = time.Since(s.startTime).Seconds()
	resp["fps"] = s.FPS
	resp["chart"] = s.ChartPath
	if s.lastHit != nil {
		resp["hit"] = s.lastHit
	}
	return resp
}

func (s *State) sendStatus(conn *websocket.Conn) {
	b, _ := json.Marshal(s.status())
	_ = conn.WriteMessage(websocket.TextMessage, b)
}

func (s *State) broadcastFrame(id uint64, f *playback.Frame) {
	type frame struct {
		T       int64           `json:"t"`
		FrameID uint64          `json:"frame_id"`
		Frame   *playback.Frame `json:"frame"`
	}
	b, err := json.Marshal(frame{T: time.Now().UnixNano(), FrameID: id, Frame: f})
	if err != nil {
		log.Debug().Err(err).Msg("encode frame")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Msg("write frame")
		}
	}
}

func (s *State) pushDiag(d diag.Diagnostic) {
	b, _ := json.Marshal(d)
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.diagClients {
		c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		_ = c.WriteMessage(websocket.TextMessage, b)
	}
}
