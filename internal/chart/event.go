package chart

import (
	"strings"

	"github.com/coreman2200/adotimeline/internal/ease"
	"github.com/coreman2200/adotimeline/internal/geom"
)

// Type is the eventType string used in chart files.
type Type string

const (
	TypeTwirl             Type = "Twirl"
	TypePause             Type = "Pause"
	TypeSetHitsound       Type = "SetHitsound"
	TypeSetPlanetRotation Type = "SetPlanetRotation"
	TypeColorTrack        Type = "ColorTrack"
	TypeAnimateTrack      Type = "AnimateTrack"
	TypePositionTrack     Type = "PositionTrack"
	TypeHold              Type = "Hold"
	TypeSetSpeed          Type = "SetSpeed"
	TypeMoveCamera        Type = "MoveCamera"
	TypeMoveTrack         Type = "MoveTrack"
	TypeRecolorTrack      Type = "RecolorTrack"
	TypeRepeatEvents      Type = "RepeatEvents"
)

// Header holds the fields every event carries.
type Header struct {
	Floor  int
	Active bool
}

// Event is implemented by every chart action.
type Event interface {
	Type() Type
	Head() *Header
	// Stackable events may appear more than once on a tile.
	Stackable() bool
	Clone() Event
}

// Anchor is the timing part of a dynamic event. AngleOffset and Tags are
// authored; Beat and Seconds are resolved by the timeline.
type Anchor struct {
	AngleOffset float64
	Tags        []string
	Beat        float64
	Seconds     float64
	Generated   bool
}

// HasTag reports whether any of tags is one of a's tags.
func (a *Anchor) HasTag(tags []string) bool {
	for _, t := range tags {
		for _, u := range a.Tags {
			if t == u {
				return true
			}
		}
	}
	return false
}

// Dynamic events fire at an angle offset past their tile.
type Dynamic interface {
	Event
	Anchor() *Anchor
}

// SplitTags splits a space separated tag list, ignoring empty items.
func SplitTags(s string) []string {
	return strings.Fields(s)
}

// OptionalPoint is a point whose coordinates may each be unset.
type OptionalPoint struct {
	X, Y *float64
}

func (p OptionalPoint) IsSet() bool { return p.X != nil || p.Y != nil }

func Float(v float64) *float64 { return &v }

func clonePoint(p OptionalPoint) OptionalPoint {
	out := OptionalPoint{}
	if p.X != nil {
		out.X = Float(*p.X)
	}
	if p.Y != nil {
		out.Y = Float(*p.Y)
	}
	return out
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	return Float(*f)
}

func cloneAnchor(a Anchor) Anchor {
	a.Tags = append([]string(nil), a.Tags...)
	return a
}

type Twirl struct {
	Header
}

type Pause struct {
	Header
	Duration           float64
	CountdownTicks     float64
	AngleCorrectionDir AngleCorrectionDir
}

type SetHitsound struct {
	Header
	GameSound GameSound
	Hitsound  Hitsound
	Volume    float64
}

type SetPlanetRotation struct {
	Header
	Ease             ease.Kind
	EaseParts        int
	EasePartBehavior EasePartBehavior
}

type ColorTrack struct {
	Header
	TrackColorType      TrackColorType
	TrackColor          Color
	SecondaryTrackColor Color
	AnimDuration        float64
	Pulse               TrackColorPulse
	PulseLength         int
	Style               TrackStyle
	Texture             string
	GlowIntensity       float64
}

// AnimateTrack changes the appear and disappear styles from its tile on.
// A nil animation leaves the inherited one in place.
type AnimateTrack struct {
	Header
	Appear      *TrackAnimation
	BeatsAhead  float64
	Disappear   *TrackDisappearAnimation
	BeatsBehind float64
}

type PositionTrack struct {
	Header
	PositionOffset geom.Vec2
	RelativeTo     RelativeIndex
	Rotation       float64
	Scale          float64
	Opacity        float64
	JustThisTile   bool
	EditorOnly     bool
	StickToFloors  *bool
}

type Hold struct {
	Header
	Duration           float64
	DistanceMultiplier float64
	LandingAnimation   bool
}

type SetSpeed struct {
	Header
	At             Anchor
	SpeedType      SpeedType
	BeatsPerMinute float64
	BPMMultiplier  float64
}

type MoveCamera struct {
	Header
	At         Anchor
	Duration   float64
	RelativeTo *RelativeToCamera
	Position   OptionalPoint
	Rotation   *float64
	Zoom       *float64
	Ease       ease.Kind
}

type MoveTrack struct {
	Header
	At             Anchor
	StartTile      RelativeIndex
	EndTile        RelativeIndex
	Duration       float64
	PositionOffset OptionalPoint
	RotationOffset *float64
	Scale          OptionalPoint
	Opacity        *float64
	Ease           ease.Kind
}

type RecolorTrack struct {
	Header
	At                  Anchor
	StartTile           RelativeIndex
	EndTile             RelativeIndex
	GapLength           float64
	Duration            *float64
	TrackColorType      TrackColorType
	TrackColor          Color
	SecondaryTrackColor Color
	AnimDuration        float64
	Pulse               TrackColorPulse
	PulseLength         int
	Style               TrackStyle
	Ease                ease.Kind
	GlowIntensity       float64
}

// RepeatEvents clones the dynamic events on its floor that share a tag.
type RepeatEvents struct {
	Header
	RepeatType            RepeatType
	Repetitions           int
	FloorCount            int
	Interval              float64
	ExecuteOnCurrentFloor bool
	Tags                  []string
}

func (e *Twirl) Type() Type             { return TypeTwirl }
func (e *Pause) Type() Type             { return TypePause }
func (e *SetHitsound) Type() Type       { return TypeSetHitsound }
func (e *SetPlanetRotation) Type() Type { return TypeSetPlanetRotation }
func (e *ColorTrack) Type() Type        { return TypeColorTrack }
func (e *AnimateTrack) Type() Type      { return TypeAnimateTrack }
func (e *PositionTrack) Type() Type     { return TypePositionTrack }
func (e *Hold) Type() Type              { return TypeHold }
func (e *SetSpeed) Type() Type          { return TypeSetSpeed }
func (e *MoveCamera) Type() Type        { return TypeMoveCamera }
func (e *MoveTrack) Type() Type         { return TypeMoveTrack }
func (e *RecolorTrack) Type() Type      { return TypeRecolorTrack }
func (e *RepeatEvents) Type() Type      { return TypeRepeatEvents }

func (e *Twirl) Head() *Header             { return &e.Header }
func (e *Pause) Head() *Header             { return &e.Header }
func (e *SetHitsound) Head() *Header       { return &e.Header }
func (e *SetPlanetRotation) Head() *Header { return &e.Header }
func (e *ColorTrack) Head() *Header        { return &e.Header }
func (e *AnimateTrack) Head() *Header      { return &e.Header }
func (e *PositionTrack) Head() *Header     { return &e.Header }
func (e *Hold) Head() *Header              { return &e.Header }
func (e *SetSpeed) Head() *Header          { return &e.Header }
func (e *MoveCamera) Head() *Header        { return &e.Header }
func (e *MoveTrack) Head() *Header         { return &e.Header }
func (e *RecolorTrack) Head() *Header      { return &e.Header }
func (e *RepeatEvents) Head() *Header      { return &e.Header }

func (e *Twirl) Stackable() bool             { return false }
func (e *Pause) Stackable() bool             { return false }
func (e *SetHitsound) Stackable() bool       { return false }
func (e *SetPlanetRotation) Stackable() bool { return false }
func (e *ColorTrack) Stackable() bool        { return false }
func (e *AnimateTrack) Stackable() bool      { return false }
func (e *PositionTrack) Stackable() bool     { return false }
func (e *Hold) Stackable() bool              { return false }
func (e *SetSpeed) Stackable() bool          { return true }
func (e *MoveCamera) Stackable() bool        { return true }
func (e *MoveTrack) Stackable() bool         { return true }
func (e *RecolorTrack) Stackable() bool      { return true }
func (e *RepeatEvents) Stackable() bool      { return true }

func (e *SetSpeed) Anchor() *Anchor     { return &e.At }
func (e *MoveCamera) Anchor() *Anchor   { return &e.At }
func (e *MoveTrack) Anchor() *Anchor    { return &e.At }
func (e *RecolorTrack) Anchor() *Anchor { return &e.At }

func (e *Twirl) Clone() Event             { c := *e; return &c }
func (e *Pause) Clone() Event             { c := *e; return &c }
func (e *SetHitsound) Clone() Event       { c := *e; return &c }
func (e *SetPlanetRotation) Clone() Event { c := *e; return &c }
func (e *ColorTrack) Clone() Event        { c := *e; return &c }
func (e *Hold) Clone() Event              { c := *e; return &c }

func (e *AnimateTrack) Clone() Event {
	c := *e
	if e.Appear != nil {
		v := *e.Appear
		c.Appear = &v
	}
	if e.Disappear != nil {
		v := *e.Disappear
		c.Disappear = &v
	}
	return &c
}

func (e *PositionTrack) Clone() Event {
	c := *e
	if e.StickToFloors != nil {
		v := *e.StickToFloors
		c.StickToFloors = &v
	}
	return &c
}

func (e *SetSpeed) Clone() Event {
	c := *e
	c.At = cloneAnchor(e.At)
	return &c
}

func (e *MoveCamera) Clone() Event {
	c := *e
	c.At = cloneAnchor(e.At)
	if e.RelativeTo != nil {
		v := *e.RelativeTo
		c.RelativeTo = &v
	}
	c.Position = clonePoint(e.Position)
	c.Rotation = cloneFloat(e.Rotation)
	c.Zoom = cloneFloat(e.Zoom)
	return &c
}

func (e *MoveTrack) Clone() Event {
	c := *e
	c.At = cloneAnchor(e.At)
	c.PositionOffset = clonePoint(e.PositionOffset)
	c.RotationOffset = cloneFloat(e.RotationOffset)
	c.Scale = clonePoint(e.Scale)
	c.Opacity = cloneFloat(e.Opacity)
	return &c
}

func (e *RecolorTrack) Clone() Event {
	c := *e
	c.At = cloneAnchor(e.At)
	c.Duration = cloneFloat(e.Duration)
	return &c
}

func (e *RepeatEvents) Clone() Event {
	c := *e
	c.Tags = append([]string(nil), e.Tags...)
	return &c
}
