package chart

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/coreman2200/adotimeline/internal/ease"
)

// Constructor builds one event from its JSON object. Header fields are
// filled in by DecodeEvent.
type Constructor func(obj gjson.Result) (Event, error)

func build(fn func(f *fields) Event) Constructor {
	return func(obj gjson.Result) (Event, error) {
		f := reader(obj)
		e := fn(f)
		return e, f.err
	}
}

var (
	regMu    sync.RWMutex
	registry = map[Type]Constructor{}
)

// Register adds or replaces the constructor for an event type.
func Register(t Type, c Constructor) {
	regMu.Lock()
	defer regMu.Unlock()
	registry[t] = c
}

func Get(t Type) (Constructor, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	c, ok := registry[t]
	return c, ok
}

// List returns the registered event types in name order.
func List() []Type {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]Type, 0, len(registry))
	for t := range registry {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ErrUnknownType is returned by DecodeEvent for an unregistered eventType.
var ErrUnknownType = fmt.Errorf("unknown eventType: %w", ErrBadEnum)

// DecodeEvent builds the event described by obj.
func DecodeEvent(obj gjson.Result) (Event, error) {
	if !obj.IsObject() {
		return nil, fmt.Errorf("action: %w", ErrBadType)
	}
	f := reader(obj)
	if !f.has("eventType") {
		return nil, fmt.Errorf("eventType: %w", ErrMissingField)
	}
	if !f.has("floor") {
		return nil, fmt.Errorf("floor: %w", ErrMissingField)
	}
	t := Type(f.str("eventType", ""))
	floor := f.integer("floor", 0)
	active := f.boolean("active", true)
	if f.err != nil {
		return nil, f.err
	}
	if floor < 0 {
		return nil, fmt.Errorf("floor %d: %w", floor, ErrBadType)
	}
	c, ok := Get(t)
	if !ok {
		return nil, fmt.Errorf("%q: %w", t, ErrUnknownType)
	}
	e, err := c(obj)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t, err)
	}
	*e.Head() = Header{Floor: floor, Active: active}
	return e, nil
}

func anchorOf(f *fields) Anchor {
	return Anchor{
		AngleOffset: f.float("angleOffset", 0),
		Tags:        SplitTags(f.str("eventTag", "")),
	}
}

func init() {
	Register(TypeTwirl, build(func(f *fields) Event { return &Twirl{} }))
	Register(TypePause, build(newPause))
	Register(TypeSetHitsound, build(newSetHitsound))
	Register(TypeSetPlanetRotation, build(newSetPlanetRotation))
	Register(TypeColorTrack, build(newColorTrack))
	Register(TypeAnimateTrack, build(newAnimateTrack))
	Register(TypePositionTrack, build(newPositionTrack))
	Register(TypeHold, build(newHold))
	Register(TypeSetSpeed, build(newSetSpeed))
	Register(TypeMoveCamera, build(newMoveCamera))
	Register(TypeMoveTrack, build(newMoveTrack))
	Register(TypeRecolorTrack, build(newRecolorTrack))
	Register(TypeRepeatEvents, build(newRepeatEvents))
}

func newPause(f *fields) Event {
	e := &Pause{
		Duration:       f.float("duration", 0),
		CountdownTicks: f.float("countdownTicks", 0),
	}
	// angleCorrectionDir is either a name or -1/0/1.
	v := f.obj.Get("angleCorrectionDir")
	switch v.Type {
	case gjson.String:
		i, err := lookup("angleCorrectionDir", angleCorrectionDirNames, v.Str)
		if err != nil {
			f.fail("angleCorrectionDir", err)
		}
		e.AngleCorrectionDir = AngleCorrectionDir(i - 1)
	case gjson.Number:
		d := v.Int()
		if d < -1 || d > 1 {
			f.fail("angleCorrectionDir", ErrBadEnum)
		}
		e.AngleCorrectionDir = AngleCorrectionDir(d)
	}
	return e
}

func newSetHitsound(f *fields) Event {
	e := &SetHitsound{
		GameSound: enum(f, "gameSound", GameSoundHitsound, func(s string) (GameSound, error) {
			i, err := lookup("gameSound", gameSoundNames, s)
			return GameSound(i), err
		}),
		Hitsound: enum(f, "hitsound", HitsoundKick, ParseHitsound),
		Volume:   f.float("hitsoundVolume", 100),
	}
	return e
}

func newSetPlanetRotation(f *fields) Event {
	return &SetPlanetRotation{
		Ease:      f.easing("ease", ease.Linear),
		EaseParts: f.integer("easeParts", 1),
		EasePartBehavior: enum(f, "easePartBehavior", EasePartRepeat, func(s string) (EasePartBehavior, error) {
			i, err := lookup("easePartBehavior", easePartBehaviorNames, s)
			return EasePartBehavior(i), err
		}),
	}
}

func newColorTrack(f *fields) Event {
	return &ColorTrack{
		TrackColorType:      enum(f, "trackColorType", ColorSingle, ParseTrackColorType),
		TrackColor:          f.color("trackColor", DefaultTrackColor),
		SecondaryTrackColor: f.color("secondaryTrackColor", White),
		AnimDuration:        f.float("trackColorAnimDuration", 2),
		Pulse:               enum(f, "trackColorPulse", PulseNone, ParseTrackColorPulse),
		PulseLength:         f.integer("trackPulseLength", 10),
		Style:               enum(f, "trackStyle", StyleStandard, ParseTrackStyle),
		Texture:             f.str("trackTexture", ""),
		GlowIntensity:       f.float("trackGlowIntensity", 100),
	}
}

func newAnimateTrack(f *fields) Event {
	e := &AnimateTrack{
		BeatsAhead:  f.float("beatsAhead", 3),
		BeatsBehind: f.float("beatsBehind", 4),
	}
	if f.has("trackAnimation") {
		v := enum(f, "trackAnimation", AppearNone, ParseTrackAnimation)
		e.Appear = &v
	}
	if f.has("trackDisappearAnimation") {
		v := enum(f, "trackDisappearAnimation", DisappearNone, ParseTrackDisappearAnimation)
		e.Disappear = &v
	}
	return e
}

func newPositionTrack(f *fields) Event {
	off := f.point("positionOffset")
	e := &PositionTrack{
		RelativeTo:    f.relativeIndex("relativeTo", RelativeIndex{Anchor: ThisTile}),
		Rotation:      f.float("rotation", 0),
		Scale:         f.float("scale", 100),
		Opacity:       f.float("opacity", 100),
		JustThisTile:  f.boolean("justThisTile", false),
		EditorOnly:    f.boolean("editorOnly", false),
		StickToFloors: f.optBool("stickToFloors"),
	}
	if off.X != nil {
		e.PositionOffset.X = *off.X
	}
	if off.Y != nil {
		e.PositionOffset.Y = *off.Y
	}
	return e
}

func newHold(f *fields) Event {
	return &Hold{
		Duration:           f.float("duration", 0),
		DistanceMultiplier: f.float("distanceMultiplier", 100),
		LandingAnimation:   f.boolean("landingAnimation", false),
	}
}

func newSetSpeed(f *fields) Event {
	return &SetSpeed{
		At: anchorOf(f),
		SpeedType: enum(f, "speedType", SpeedBpm, func(s string) (SpeedType, error) {
			i, err := lookup("speedType", speedTypeNames, s)
			return SpeedType(i), err
		}),
		BeatsPerMinute: f.float("beatsPerMinute", 100),
		BPMMultiplier:  f.float("bpmMultiplier", 1),
	}
}

func newMoveCamera(f *fields) Event {
	e := &MoveCamera{
		At:       anchorOf(f),
		Duration: f.float("duration", 1),
		Position: f.point("position"),
		Rotation: f.optFloat("rotation"),
		Zoom:     f.optFloat("zoom"),
		Ease:     f.easing("ease", ease.Linear),
	}
	if f.has("relativeTo") {
		v := enum(f, "relativeTo", CameraPlayer, ParseRelativeToCamera)
		e.RelativeTo = &v
	}
	return e
}

func newMoveTrack(f *fields) Event {
	e := &MoveTrack{
		At:             anchorOf(f),
		StartTile:      f.relativeIndex("startTile", RelativeIndex{Anchor: ThisTile}),
		EndTile:        f.relativeIndex("endTile", RelativeIndex{Anchor: ThisTile}),
		Duration:       f.float("duration", 1),
		PositionOffset: f.point("positionOffset"),
		RotationOffset: f.optFloat("rotationOffset"),
		Opacity:        f.optFloat("opacity"),
		Ease:           f.easing("ease", ease.Linear),
	}
	// scale is either [x, y] or a single number for both axes.
	if v := f.obj.Get("scale"); v.Type == gjson.Number {
		e.Scale = OptionalPoint{X: Float(v.Float()), Y: Float(v.Float())}
	} else {
		e.Scale = f.point("scale")
	}
	return e
}

func newRecolorTrack(f *fields) Event {
	return &RecolorTrack{
		At:                  anchorOf(f),
		StartTile:           f.relativeIndex("startTile", RelativeIndex{Anchor: ThisTile}),
		EndTile:             f.relativeIndex("endTile", RelativeIndex{Anchor: ThisTile}),
		GapLength:           f.float("gapLength", 0),
		Duration:            f.optFloat("duration"),
		TrackColorType:      enum(f, "trackColorType", ColorSingle, ParseTrackColorType),
		TrackColor:          f.color("trackColor", DefaultTrackColor),
		SecondaryTrackColor: f.color("secondaryTrackColor", White),
		AnimDuration:        f.float("trackColorAnimDuration", 2),
		Pulse:               enum(f, "trackColorPulse", PulseNone, ParseTrackColorPulse),
		PulseLength:         f.integer("trackPulseLength", 10),
		Style:               enum(f, "trackStyle", StyleStandard, ParseTrackStyle),
		Ease:                f.easing("ease", ease.Linear),
		GlowIntensity:       f.float("trackGlowIntensity", 100),
	}
}

func newRepeatEvents(f *fields) Event {
	return &RepeatEvents{
		RepeatType: enum(f, "repeatType", RepeatBeat, func(s string) (RepeatType, error) {
			i, err := lookup("repeatType", repeatTypeNames, s)
			return RepeatType(i), err
		}),
		Repetitions:           f.integer("repetitions", 1),
		FloorCount:            f.integer("floorCount", 0),
		Interval:              f.float("interval", 1),
		ExecuteOnCurrentFloor: f.boolean("executeOnCurrentFloor", false),
		Tags:                  SplitTags(f.str("tag", "")),
	}
}
