package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/adotimeline/internal/chart"
	diag "github.com/coreman2200/adotimeline/internal/diagnostics"
	"github.com/coreman2200/adotimeline/internal/playback"
	"github.com/coreman2200/adotimeline/internal/timeline"
)

func main() {
	var (
		chartPath string
		outPath   string
		fps       int
		at        float64
		realtime  bool
		frames    bool
		noAnimate bool
		verbose   bool
	)
	flag.StringVar(&chartPath, "chart", "", "Path to a .adofai chart")
	flag.StringVar(&outPath, "out", "", "Write the chart back out to this path")
	flag.IntVar(&fps, "fps", 60, "Simulation frames per second")
	flag.Float64Var(&at, "at", 0, "Print one frame at this chart time instead of simulating")
	flag.BoolVar(&realtime, "realtime", false, "Tick on a wall-clock ticker")
	flag.BoolVar(&frames, "frames", false, "Print every frame as JSON")
	flag.BoolVar(&noAnimate, "disable-animate-track", false, "Skip AnimateTrack synthesis")
	flag.BoolVar(&verbose, "v", false, "Debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if chartPath == "" {
		log.Fatal().Msg("Provide -chart path to a chart file")
	}
	data, err := os.ReadFile(chartPath)
	if err != nil {
		log.Fatal().Err(err).Msg("read chart")
	}
	doc, diags, err := chart.Decode(data)
	if err != nil {
		log.Fatal().Err(err).Msg("decode chart")
	}
	for _, d := range diags {
		log.Warn().Str("code", d.Code).Str("detail", d.Detail).Msg(d.Summary)
	}

	level, err := timeline.New(doc)
	if err != nil {
		log.Fatal().Err(err).Msg("build level")
	}
	level.SetDisableAnimateTrack(noAnimate)
	level.Parse()

	fmt.Printf("%d tiles, %d processed events, %d skipped actions\n",
		len(level.Tiles), len(level.Processed()), diag.Count(diags, diag.Warn))
	for _, r := range level.Speeds().Rows()[1:] {
		fmt.Printf("[SetSpeed] floor=%d beat=%.3f t=%.3fs bpm=%.2f\n", r.Floor, r.Beat, r.Seconds, r.BPM)
	}

	if outPath != "" {
		b, err := chart.Encode(level.Document())
		if err != nil {
			log.Fatal().Err(err).Msg("encode chart")
		}
		if err := os.WriteFile(outPath, b, 0644); err != nil {
			log.Fatal().Err(err).Msg("write chart")
		}
		log.Info().Str("path", outPath).Msg("chart written")
	}

	enc := json.NewEncoder(os.Stdout)
	h := playback.Hooks{
		OnFloor: func(floor int) {
			t := level.Tiles[floor]
			fmt.Printf("[Floor] %d beat=%.3f t=%.3fs\n", floor, t.Beat, t.Seconds)
		},
		OnEnd: func() { fmt.Println("[End]") },
	}
	if frames {
		h.OnFrame = func(f playback.Frame) {
			if err := enc.Encode(f); err != nil {
				log.Error().Err(err).Float64("t", f.Seconds).Msg("encode frame")
			}
		}
	}
	player := playback.NewPlayer(h)
	if err := player.Load(level); err != nil {
		log.Fatal().Err(err).Msg("load")
	}

	if isSet("at") {
		player.Seek(at)
		if frames {
			return
		}
		if err := enc.Encode(player.Frame()); err != nil {
			log.Fatal().Err(err).Msg("encode frame")
		}
		return
	}

	player.Start()
	dt := time.Second / time.Duration(max(1, fps))
	if !realtime {
		for player.State == playback.Running {
			player.Tick(dt.Seconds())
		}
		return
	}

	ticker := time.NewTicker(dt)
	defer ticker.Stop()
	start := time.Now()
	for range ticker.C {
		player.Tick(dt.Seconds())
		// End when player returns to Idle
		if player.State == playback.Idle {
			fmt.Println("Done at t=", time.Since(start).Seconds())
			return
		}
	}
}

func isSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
