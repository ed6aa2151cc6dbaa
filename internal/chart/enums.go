package chart

import "fmt"

func lookup(kind string, names []string, s string) (int, error) {
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%s %q: %w", kind, s, ErrBadEnum)
}

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("%d", i)
	}
	return names[i]
}

type TrackColorType int

const (
	ColorSingle TrackColorType = iota
	ColorStripes
	ColorGlow
	ColorBlink
	ColorSwitch
	ColorRainbow
	ColorVolume
)

var trackColorTypeNames = []string{"Single", "Stripes", "Glow", "Blink", "Switch", "Rainbow", "Volume"}

func (t TrackColorType) String() string { return enumName(trackColorTypeNames, int(t)) }

func ParseTrackColorType(s string) (TrackColorType, error) {
	i, err := lookup("trackColorType", trackColorTypeNames, s)
	return TrackColorType(i), err
}

type TrackStyle int

const (
	StyleStandard TrackStyle = iota
	StyleNeon
	StyleNeonLight
	StyleBasic
	StyleMinimal
	StyleGems
)

var trackStyleNames = []string{"Standard", "Neon", "NeonLight", "Basic", "Minimal", "Gems"}

func (t TrackStyle) String() string { return enumName(trackStyleNames, int(t)) }

func ParseTrackStyle(s string) (TrackStyle, error) {
	i, err := lookup("trackStyle", trackStyleNames, s)
	return TrackStyle(i), err
}

// TrackAnimation is how a tile appears ahead of the planets.
type TrackAnimation int

const (
	AppearNone TrackAnimation = iota
	AppearFade
	AppearScatter
	AppearScatterFar
	AppearAssemble
	AppearExtend
	AppearGrowSpin
)

var trackAnimationNames = []string{"None", "Fade", "Scatter", "Scatter_Far", "Assemble", "Extend", "Grow_Spin"}

func (t TrackAnimation) String() string { return enumName(trackAnimationNames, int(t)) }

func ParseTrackAnimation(s string) (TrackAnimation, error) {
	i, err := lookup("trackAnimation", trackAnimationNames, s)
	return TrackAnimation(i), err
}

// TrackDisappearAnimation is how a tile leaves after the planets pass it.
type TrackDisappearAnimation int

const (
	DisappearNone TrackDisappearAnimation = iota
	DisappearFade
	DisappearScatter
	DisappearScatterFar
	DisappearRetract
	DisappearShrinkSpin
)

var trackDisappearAnimationNames = []string{"None", "Fade", "Scatter", "Scatter_Far", "Retract", "Shrink_Spin"}

func (t TrackDisappearAnimation) String() string {
	return enumName(trackDisappearAnimationNames, int(t))
}

func ParseTrackDisappearAnimation(s string) (TrackDisappearAnimation, error) {
	i, err := lookup("trackDisappearAnimation", trackDisappearAnimationNames, s)
	return TrackDisappearAnimation(i), err
}

// TrackColorPulse shifts the color phase per tile index.
type TrackColorPulse int

const (
	PulseBackward TrackColorPulse = iota - 1
	PulseNone
	PulseForward
)

var trackColorPulseNames = []string{"Backward", "None", "Forward"}

func (t TrackColorPulse) String() string { return enumName(trackColorPulseNames, int(t)+1) }

func ParseTrackColorPulse(s string) (TrackColorPulse, error) {
	i, err := lookup("trackColorPulse", trackColorPulseNames, s)
	return TrackColorPulse(i - 1), err
}

type Hitsound int

var hitsoundNames = []string{
	"None", "Kick", "kick", "Sizzle", "Shaker", "FireTile", "Hat", "VehiclePositive",
	"VehicleNegative", "Squareshot", "PowerDown", "ReverbClap", "ReverbClack", "Hammer",
	"SnareAcoustic2", "SnareHouse", "Sidestick", "HatHouse", "ShakerLoud", "Chuck",
	"KickHouse", "KickRupture",
}

const (
	HitsoundNone Hitsound = 0
	HitsoundKick Hitsound = 1
)

func (h Hitsound) String() string { return enumName(hitsoundNames, int(h)) }

func ParseHitsound(s string) (Hitsound, error) {
	i, err := lookup("hitsound", hitsoundNames, s)
	return Hitsound(i), err
}

// RelativeToTile anchors a RelativeIndex.
type RelativeToTile int

const (
	Start RelativeToTile = iota
	ThisTile
	End
)

var relativeToTileNames = []string{"Start", "ThisTile", "End"}

func (r RelativeToTile) String() string { return enumName(relativeToTileNames, int(r)) }

func ParseRelativeToTile(s string) (RelativeToTile, error) {
	i, err := lookup("relativeTo", relativeToTileNames, s)
	return RelativeToTile(i), err
}

// RelativeToCamera is the origin a camera move is expressed against.
type RelativeToCamera int

const (
	CameraPlayer RelativeToCamera = iota
	CameraTile
	CameraGlobal
	CameraLastPosition
)

var relativeToCameraNames = []string{"Player", "Tile", "Global", "LastPosition"}

func (r RelativeToCamera) String() string { return enumName(relativeToCameraNames, int(r)) }

func ParseRelativeToCamera(s string) (RelativeToCamera, error) {
	i, err := lookup("relativeTo", relativeToCameraNames, s)
	return RelativeToCamera(i), err
}

type SpeedType int

const (
	SpeedBpm SpeedType = iota
	SpeedMultiplier
)

var speedTypeNames = []string{"Bpm", "Multiplier"}

func (s SpeedType) String() string { return enumName(speedTypeNames, int(s)) }

type RepeatType int

const (
	RepeatBeat RepeatType = iota
	RepeatFloor
)

var repeatTypeNames = []string{"Beat", "Floor"}

func (r RepeatType) String() string { return enumName(repeatTypeNames, int(r)) }

type GameSound int

const (
	GameSoundHitsound GameSound = iota
	GameSoundMidspin
)

var gameSoundNames = []string{"Hitsound", "Midspin"}

func (g GameSound) String() string { return enumName(gameSoundNames, int(g)) }

type EasePartBehavior int

const (
	EasePartRepeat EasePartBehavior = iota
	EasePartMirror
)

var easePartBehaviorNames = []string{"Repeat", "Mirror"}

func (e EasePartBehavior) String() string { return enumName(easePartBehaviorNames, int(e)) }

type AngleCorrectionDir int

const (
	CorrectionBackward AngleCorrectionDir = iota - 1
	CorrectionNone
	CorrectionForward
)

var angleCorrectionDirNames = []string{"Backward", "None", "Forward"}

func (a AngleCorrectionDir) String() string { return enumName(angleCorrectionDirNames, int(a)+1) }
