package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/adotimeline/internal/config"
	"github.com/coreman2200/adotimeline/internal/playback"
	"github.com/coreman2200/adotimeline/internal/timeline"
	"github.com/coreman2200/adotimeline/internal/ws"
)

func main() {
	// ---- Flags (remain usable; config.yaml can override most) ----
	var (
		addr          = flag.String("addr", ":8080", "HTTP listen address")
		fps           = flag.Int("fps", 60, "frames per second streamed to clients")
		chartPath     = flag.String("chart", "", "path to a .adofai chart to load at startup")
		difficulty    = flag.String("difficulty", "Normal", "judgment difficulty: Lenient | Normal | Strict")
		inputOffsetMs = flag.Float64("input-offset-ms", 0, "input latency subtracted from key presses (ms)")
		noAnimate     = flag.Bool("disable-animate-track", false, "skip AnimateTrack synthesis")
		loop          = flag.Bool("loop", false, "restart the chart when it ends")
		logLevel      = flag.String("log-level", "info", "log level: debug | info | warn | error")
		configPath    = flag.String("config", "config.yaml", "path to config.yaml")
		autoStart     = flag.Bool("autostart", false, "start playback once the chart is loaded")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	// ---- Load config.yaml (optional) ----
	var cfg *config.Config
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
	} else {
		cfg = c
	}

	// ---- Effective params (config overrides flags where available) ----
	eAddr, eFPS, eChart := *addr, *fps, *chartPath
	eDiff, eOffset := *difficulty, *inputOffsetMs
	eNoAnimate, eLoop, eLevel := *noAnimate, *loop, *logLevel

	if cfg != nil {
		eAddr = firstNonEmpty(cfg.Addr, eAddr)
		if cfg.FPS > 0 {
			eFPS = cfg.FPS
		}
		eChart = firstNonEmpty(cfg.Chart, eChart)
		eDiff = firstNonEmpty(cfg.Judgment.Difficulty, eDiff)
		if cfg.Judgment.InputOffsetMs != 0 {
			eOffset = cfg.Judgment.InputOffsetMs
		}
		eNoAnimate = eNoAnimate || cfg.DisableAnimateTrack
		eLoop = eLoop || cfg.Loop
		eLevel = firstNonEmpty(cfg.LogLevel, eLevel)
	}

	if lvl, err := zerolog.ParseLevel(eLevel); err != nil {
		log.Warn().Err(err).Str("level", eLevel).Msg("unknown log level; using info")
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(lvl)
	}

	d, err := timeline.ParseDifficulty(eDiff)
	if err != nil {
		log.Warn().Err(err).Msg("falling back to Normal difficulty")
	}

	// ---- State ----
	state := ws.NewState(eFPS)
	state.ConfigPath = *configPath
	state.LogLevel = eLevel
	state.Player.With(func(p *playback.Player) {
		p.Difficulty = d
		p.InputOffset = eOffset / 1000
		p.Loop = eLoop
	})

	if eChart != "" {
		if err := state.LoadChart(eChart); err != nil {
			log.Error().Err(err).Msg("startup chart")
		} else {
			state.Player.With(func(p *playback.Player) {
				if eNoAnimate {
					p.Level().SetDisableAnimateTrack(true)
					_ = p.Load(p.Level())
				}
				if *autoStart {
					p.Start()
				}
			})
		}
	}

	// ---- HTTP routes ----
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", state.HandleFramesWS)
	mux.HandleFunc("/diag", state.HandleDiagWS)
	mux.HandleFunc("/control", state.HandleControlWS)
	mux.HandleFunc("/health", state.HandleHealth)

	srv := &http.Server{
		Addr:         eAddr,
		Handler:      withCORS(mux),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ---- Run render loop & server ----
	go state.RunRenderLoop()
	go func() {
		log.Info().Str("addr", eAddr).Int("fps", eFPS).Str("chart", eChart).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server crashed")
		}
	}()

	// ---- Graceful shutdown ----
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	s := <-ch
	log.Info().Str("signal", s.String()).Msg("shutting down")

	_ = srv.Close()
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}

func firstNonEmpty(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
