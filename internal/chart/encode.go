package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/sjson"
)

// num writes integral values without a fractional part.
func num(v float64) any {
	if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
		return int64(v)
	}
	return v
}

func optPoint(p OptionalPoint) []any {
	out := []any{nil, nil}
	if p.X != nil {
		out[0] = num(*p.X)
	}
	if p.Y != nil {
		out[1] = num(*p.Y)
	}
	return out
}

func relIndex(r RelativeIndex) []any { return []any{r.Index, r.Anchor.String()} }

type kv struct {
	key string
	val any
}

func eventFields(e Event) []kv {
	h := e.Head()
	out := []kv{{"floor", h.Floor}, {"eventType", string(e.Type())}}
	if !h.Active {
		out = append(out, kv{"active", false})
	}
	add := func(k string, v any) { out = append(out, kv{k, v}) }
	dyn := func(a *Anchor, tagKey string) {
		add("angleOffset", num(a.AngleOffset))
		add(tagKey, strings.Join(a.Tags, " "))
	}

	switch e := e.(type) {
	case *Twirl:
	case *Pause:
		add("duration", num(e.Duration))
		add("countdownTicks", num(e.CountdownTicks))
		add("angleCorrectionDir", e.AngleCorrectionDir.String())
	case *SetHitsound:
		add("gameSound", e.GameSound.String())
		add("hitsound", e.Hitsound.String())
		add("hitsoundVolume", num(e.Volume))
	case *SetPlanetRotation:
		add("ease", e.Ease.String())
		add("easeParts", e.EaseParts)
		add("easePartBehavior", e.EasePartBehavior.String())
	case *ColorTrack:
		add("trackColor", e.TrackColor.String())
		add("secondaryTrackColor", e.SecondaryTrackColor.String())
		add("trackColorAnimDuration", num(e.AnimDuration))
		add("trackColorType", e.TrackColorType.String())
		add("trackColorPulse", e.Pulse.String())
		add("trackPulseLength", e.PulseLength)
		add("trackStyle", e.Style.String())
		add("trackTexture", e.Texture)
		add("trackGlowIntensity", num(e.GlowIntensity))
	case *AnimateTrack:
		if e.Appear != nil {
			add("trackAnimation", e.Appear.String())
		}
		add("beatsAhead", num(e.BeatsAhead))
		if e.Disappear != nil {
			add("trackDisappearAnimation", e.Disappear.String())
		}
		add("beatsBehind", num(e.BeatsBehind))
	case *PositionTrack:
		add("positionOffset", []any{num(e.PositionOffset.X), num(e.PositionOffset.Y)})
		add("relativeTo", relIndex(e.RelativeTo))
		add("rotation", num(e.Rotation))
		add("scale", num(e.Scale))
		add("opacity", num(e.Opacity))
		add("justThisTile", e.JustThisTile)
		add("editorOnly", e.EditorOnly)
		if e.StickToFloors != nil {
			add("stickToFloors", *e.StickToFloors)
		}
	case *Hold:
		add("duration", num(e.Duration))
		add("distanceMultiplier", num(e.DistanceMultiplier))
		add("landingAnimation", e.LandingAnimation)
	case *SetSpeed:
		add("speedType", e.SpeedType.String())
		add("beatsPerMinute", num(e.BeatsPerMinute))
		add("bpmMultiplier", num(e.BPMMultiplier))
		dyn(&e.At, "eventTag")
	case *MoveCamera:
		add("duration", num(e.Duration))
		if e.RelativeTo != nil {
			add("relativeTo", e.RelativeTo.String())
		}
		if e.Position.IsSet() {
			add("position", optPoint(e.Position))
		}
		if e.Rotation != nil {
			add("rotation", num(*e.Rotation))
		}
		if e.Zoom != nil {
			add("zoom", num(*e.Zoom))
		}
		add("ease", e.Ease.String())
		dyn(&e.At, "eventTag")
	case *MoveTrack:
		add("startTile", relIndex(e.StartTile))
		add("endTile", relIndex(e.EndTile))
		add("duration", num(e.Duration))
		if e.PositionOffset.IsSet() {
			add("positionOffset", optPoint(e.PositionOffset))
		}
		if e.RotationOffset != nil {
			add("rotationOffset", num(*e.RotationOffset))
		}
		if e.Scale.IsSet() {
			add("scale", optPoint(e.Scale))
		}
		if e.Opacity != nil {
			add("opacity", num(*e.Opacity))
		}
		add("ease", e.Ease.String())
		dyn(&e.At, "eventTag")
	case *RecolorTrack:
		add("startTile", relIndex(e.StartTile))
		add("endTile", relIndex(e.EndTile))
		if e.Duration != nil {
			add("duration", num(*e.Duration))
		}
		add("trackColorType", e.TrackColorType.String())
		add("trackColor", e.TrackColor.String())
		add("secondaryTrackColor", e.SecondaryTrackColor.String())
		add("trackColorAnimDuration", num(e.AnimDuration))
		add("trackColorPulse", e.Pulse.String())
		add("trackPulseLength", e.PulseLength)
		add("trackStyle", e.Style.String())
		add("gapLength", num(e.GapLength))
		add("ease", e.Ease.String())
		add("trackGlowIntensity", num(e.GlowIntensity))
		dyn(&e.At, "eventTag")
	case *RepeatEvents:
		add("repeatType", e.RepeatType.String())
		add("repetitions", e.Repetitions)
		add("floorCount", e.FloorCount)
		add("interval", num(e.Interval))
		add("executeOnCurrentFloor", e.ExecuteOnCurrentFloor)
		add("tag", strings.Join(e.Tags, " "))
	}
	return out
}

func settingsFields(s Settings) []kv {
	return []kv{
		{"version", s.Version},
		{"artist", s.Artist},
		{"song", s.Song},
		{"author", s.Author},
		{"separateCountdownTime", s.SeparateCountdownTime},
		{"songFilename", s.SongFilename},
		{"bpm", num(s.BPM)},
		{"volume", num(s.Volume)},
		{"offset", num(s.Offset)},
		{"pitch", num(s.Pitch)},
		{"hitsound", s.Hitsound.String()},
		{"hitsoundVolume", num(s.HitsoundVolume)},
		{"countdownTicks", num(s.CountdownTicks)},
		{"trackColorType", s.TrackColorType.String()},
		{"trackColor", s.TrackColor.String()},
		{"secondaryTrackColor", s.SecondaryTrackColor.String()},
		{"trackColorAnimDuration", num(s.TrackColorAnimDuration)},
		{"trackColorPulse", s.TrackColorPulse.String()},
		{"trackPulseLength", s.TrackPulseLength},
		{"trackStyle", s.TrackStyle.String()},
		{"trackAnimation", s.TrackAnimation.String()},
		{"beatsAhead", num(s.BeatsAhead)},
		{"trackDisappearAnimation", s.TrackDisappearAnimation.String()},
		{"beatsBehind", num(s.BeatsBehind)},
		{"backgroundColor", s.BackgroundColor.String()},
		{"stickToFloors", s.StickToFloors},
		{"unscaledSize", num(s.UnscaledSize)},
		{"relativeTo", s.RelativeTo.String()},
		{"position", []any{num(s.Position.X), num(s.Position.Y)}},
		{"rotation", num(s.Rotation)},
		{"zoom", num(s.Zoom)},
	}
}

func object(fs []kv) ([]byte, error) {
	out := []byte("{}")
	var err error
	for _, f := range fs {
		if out, err = sjson.SetBytes(out, f.key, f.val); err != nil {
			return nil, fmt.Errorf("encode %s: %w", f.key, err)
		}
	}
	return out, nil
}

// EncodeEvent renders one action object.
func EncodeEvent(e Event) ([]byte, error) { return object(eventFields(e)) }

// Encode renders doc in chart file form. Generated events are never written.
func Encode(doc *Document) ([]byte, error) {
	out := []byte("{}")
	var err error
	if path, ok := EncodePath(doc.Directions); doc.UsePath && ok {
		out, err = sjson.SetBytes(out, "pathData", path)
	} else {
		angles := make([]any, len(doc.Directions))
		for i, d := range doc.Directions {
			angles[i] = num(d.Degrees())
		}
		out, err = sjson.SetBytes(out, "angleData", angles)
	}
	if err != nil {
		return nil, err
	}

	settings, err := object(settingsFields(doc.Settings))
	if err != nil {
		return nil, err
	}
	if out, err = sjson.SetRawBytes(out, "settings", settings); err != nil {
		return nil, err
	}

	if out, err = sjson.SetRawBytes(out, "actions", []byte("[]")); err != nil {
		return nil, err
	}
	for _, e := range doc.Events {
		if d, ok := e.(Dynamic); ok && d.Anchor().Generated {
			continue
		}
		raw, err := EncodeEvent(e)
		if err != nil {
			return nil, err
		}
		if out, err = sjson.SetRawBytes(out, "actions.-1", raw); err != nil {
			return nil, err
		}
	}
	return sjson.SetRawBytes(out, "decorations", []byte("[]"))
}
