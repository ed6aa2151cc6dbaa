package timeline

import (
	"fmt"
	"math"
)

type Difficulty int

const (
	Lenient Difficulty = iota
	Normal
	Strict
)

var difficultyNames = []string{"Lenient", "Normal", "Strict"}

func (d Difficulty) String() string {
	if d < 0 || int(d) >= len(difficultyNames) {
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
	return difficultyNames[d]
}

func ParseDifficulty(s string) (Difficulty, error) {
	for i, n := range difficultyNames {
		if n == s {
			return Difficulty(i), nil
		}
	}
	return Normal, fmt.Errorf("unknown difficulty %q", s)
}

// minWindow is the shortest beat a difficulty judges against.
func (d Difficulty) minWindow() float64 {
	switch d {
	case Lenient:
		return 0.273
	case Strict:
		return 0.120
	default:
		return 0.195
	}
}

// HitMargin grades a hit. The values are ordered from earliest to latest.
type HitMargin int

const (
	TooEarly HitMargin = iota
	VeryEarly
	EarlyPerfect
	Perfect
	LatePerfect
	VeryLate
	TooLate
)

var hitMarginNames = []string{"TooEarly", "VeryEarly", "EarlyPerfect", "Perfect", "LatePerfect", "VeryLate", "TooLate"}

func (h HitMargin) String() string {
	if h < 0 || int(h) >= len(hitMarginNames) {
		return fmt.Sprintf("HitMargin(%d)", int(h))
	}
	return hitMarginNames[h]
}

// TimingBoundary holds the half-widths, in seconds, of the perfect,
// late/early perfect and very late/early windows.
type TimingBoundary struct {
	Perfect     float64
	LatePerfect float64
	VeryLate    float64
}

const minBoundary = 0.025

// TimingBoundary derives the judgment windows for floor from the tempo in
// force just before its landing.
func (l *Level) TimingBoundary(floor int, d Difficulty) TimingBoundary {
	l.mustParsed()
	s := math.Max(crotchet(l.speeds.BPMExcludingBeat(l.Tiles[floor].Beat)), d.minWindow())
	return TimingBoundary{
		Perfect:     math.Max(minBoundary, s/6),
		LatePerfect: math.Max(minBoundary, s/4),
		VeryLate:    math.Max(minBoundary, s/3),
	}
}

// Timing is how far seconds is from floor's landing; positive is late.
func (l *Level) Timing(floor int, seconds float64) float64 {
	l.mustParsed()
	return seconds - l.Tiles[floor].Seconds
}

func (l *Level) HitMargin(floor int, seconds float64, d Difficulty) HitMargin {
	b := l.TimingBoundary(floor, d)
	t := l.Timing(floor, seconds)
	switch {
	case t > b.VeryLate:
		return TooLate
	case t > b.LatePerfect:
		return VeryLate
	case t > b.Perfect:
		return LatePerfect
	case t > -b.Perfect:
		return Perfect
	case t > -b.LatePerfect:
		return EarlyPerfect
	case t > -b.VeryLate:
		return VeryEarly
	}
	return TooEarly
}
