package chart

import (
	"github.com/tidwall/gjson"

	"github.com/coreman2200/adotimeline/internal/geom"
)

// Settings is the chart-wide "settings" object. Only the fields the timeline
// reads plus the song metadata are kept.
type Settings struct {
	Version               int
	Artist                string
	Song                  string
	Author                string
	SongFilename          string
	SeparateCountdownTime bool

	BPM            float64
	Volume         float64
	Offset         float64 // milliseconds
	Pitch          float64
	Hitsound       Hitsound
	HitsoundVolume float64
	CountdownTicks float64

	TrackColorType          TrackColorType
	TrackColor              Color
	SecondaryTrackColor     Color
	TrackColorAnimDuration  float64
	TrackColorPulse         TrackColorPulse
	TrackPulseLength        int
	TrackStyle              TrackStyle
	TrackAnimation          TrackAnimation
	BeatsAhead              float64
	TrackDisappearAnimation TrackDisappearAnimation
	BeatsBehind             float64

	BackgroundColor Color
	StickToFloors   bool
	UnscaledSize    float64

	RelativeTo RelativeToCamera
	Position   geom.Vec2
	Rotation   float64
	Zoom       float64
}

func DefaultSettings() Settings {
	return Settings{
		Version:             15,
		BPM:                 100,
		Volume:              100,
		Pitch:               100,
		Hitsound:            HitsoundKick,
		HitsoundVolume:      100,
		CountdownTicks:      4,
		TrackColor:          DefaultTrackColor,
		SecondaryTrackColor: DefaultTrackColor,
		TrackPulseLength:    10,
		BackgroundColor:     Black,
		UnscaledSize:        100,
		RelativeTo:          CameraPlayer,
		Zoom:                100,
	}
}

// DecodeSettings reads a settings object. Missing fields keep their defaults.
func DecodeSettings(obj gjson.Result) (Settings, error) {
	s := DefaultSettings()
	if !obj.Exists() {
		return s, nil
	}
	f := reader(obj)
	s.Version = f.integer("version", s.Version)
	s.Artist = f.str("artist", "")
	s.Song = f.str("song", "")
	s.Author = f.str("author", "")
	s.SongFilename = f.str("songFilename", "")
	s.SeparateCountdownTime = f.boolean("separateCountdownTime", false)

	s.BPM = f.float("bpm", s.BPM)
	s.Volume = f.float("volume", s.Volume)
	s.Offset = f.float("offset", s.Offset)
	s.Pitch = f.float("pitch", s.Pitch)
	s.Hitsound = enum(f, "hitsound", s.Hitsound, ParseHitsound)
	// older charts call it hitsoundSingle
	if f.has("hitsoundVolume") {
		s.HitsoundVolume = f.float("hitsoundVolume", s.HitsoundVolume)
	} else {
		s.HitsoundVolume = f.float("hitsoundSingle", s.HitsoundVolume)
	}
	s.CountdownTicks = f.float("countdownTicks", s.CountdownTicks)

	s.TrackColorType = enum(f, "trackColorType", s.TrackColorType, ParseTrackColorType)
	s.TrackColor = f.color("trackColor", s.TrackColor)
	s.SecondaryTrackColor = f.color("secondaryTrackColor", s.SecondaryTrackColor)
	s.TrackColorAnimDuration = f.float("trackColorAnimDuration", s.TrackColorAnimDuration)
	s.TrackColorPulse = enum(f, "trackColorPulse", s.TrackColorPulse, ParseTrackColorPulse)
	s.TrackPulseLength = f.integer("trackPulseLength", s.TrackPulseLength)
	s.TrackStyle = enum(f, "trackStyle", s.TrackStyle, ParseTrackStyle)
	s.TrackAnimation = enum(f, "trackAnimation", s.TrackAnimation, ParseTrackAnimation)
	s.BeatsAhead = f.float("beatsAhead", s.BeatsAhead)
	s.TrackDisappearAnimation = enum(f, "trackDisappearAnimation", s.TrackDisappearAnimation, ParseTrackDisappearAnimation)
	s.BeatsBehind = f.float("beatsBehind", s.BeatsBehind)

	s.BackgroundColor = f.color("backgroundColor", s.BackgroundColor)
	s.StickToFloors = f.boolean("stickToFloors", s.StickToFloors)
	s.UnscaledSize = f.float("unscaledSize", s.UnscaledSize)

	s.RelativeTo = enum(f, "relativeTo", s.RelativeTo, ParseRelativeToCamera)
	pos := f.point("position")
	if pos.X != nil {
		s.Position.X = *pos.X
	}
	if pos.Y != nil {
		s.Position.Y = *pos.Y
	}
	s.Rotation = f.float("rotation", s.Rotation)
	s.Zoom = f.float("zoom", s.Zoom)
	if f.err != nil {
		return DefaultSettings(), f.err
	}
	return s, nil
}

// Crotchet is the initial seconds per beat.
func (s Settings) Crotchet() float64 { return 60 / s.BPM }
