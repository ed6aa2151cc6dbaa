package chart_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	. "github.com/coreman2200/adotimeline/internal/chart"
	"github.com/coreman2200/adotimeline/internal/diagnostics"
	"github.com/coreman2200/adotimeline/internal/ease"
)

const sample = "\xEF\xBB\xBF" + `{
	"angleData": [0, 90, 999, 180, 45.5],
	"settings": {"bpm": 120, "offset": 250, "trackColor": "ff0000", "hitsoundSingle": 80, "stickToFloors": "Enabled"},
	"actions": [
		{"floor": 1, "eventType": "Twirl"},
		{"floor": 2, "eventType": "SetSpeed", "speedType": "Multiplier", "bpmMultiplier": 2, "angleOffset": 90},
		{"floor": 2, "eventType": "Bogus"},
		{"floor": 3, "eventType": "MoveTrack", "startTile": [0, "ThisTile"], "endTile": [2, "ThisTile"],
		 "duration": 1, "positionOffset": [1, null], "scale": 50, "ease": "OutQuad", "eventTag": "a b"},
		{"floor": 4, "eventType": "MoveCamera", "duration": 2, "ease": "NoSuchEase"},
		{"floor": 4, "eventType": "PositionTrack", "positionOffset": [0.5, 1], "editorOnly": true, "active": false},
		{"floor": 9, "eventType": "Twirl"}
	]
}`

func TestDecodeSample(t *testing.T) {
	doc, diags, err := Decode([]byte(sample))
	require.NoError(t, err)

	require.Len(t, doc.Directions, 5)
	assert.True(t, doc.Directions[2].IsMidSpin())
	assert.Equal(t, 45.5, doc.Directions[4].Degrees())

	assert.Equal(t, 120.0, doc.Settings.BPM)
	assert.Equal(t, 250.0, doc.Settings.Offset)
	assert.Equal(t, 80.0, doc.Settings.HitsoundVolume)
	assert.True(t, doc.Settings.StickToFloors)
	assert.Equal(t, Color(0xff0000ff), doc.Settings.TrackColor)
	assert.Equal(t, 4.0, doc.Settings.CountdownTicks)

	// Bogus, bad ease, floor past the end
	assert.Len(t, diags, 3)
	assert.Equal(t, 3, diagnostics.Count(diags, diagnostics.Warn))
	require.Len(t, doc.Events, 4)

	speed, ok := doc.Events[1].(*SetSpeed)
	require.True(t, ok)
	assert.Equal(t, SpeedMultiplier, speed.SpeedType)
	assert.Equal(t, 2.0, speed.BPMMultiplier)
	assert.Equal(t, 90.0, speed.Anchor().AngleOffset)

	mt := doc.Events[2].(*MoveTrack)
	assert.Equal(t, 3, mt.Floor)
	assert.Equal(t, ease.OutQuad, mt.Ease)
	require.NotNil(t, mt.PositionOffset.X)
	assert.Nil(t, mt.PositionOffset.Y)
	assert.Equal(t, 50.0, *mt.Scale.X)
	assert.Equal(t, 50.0, *mt.Scale.Y)
	assert.Equal(t, []string{"a", "b"}, mt.At.Tags)

	pt := doc.Events[3].(*PositionTrack)
	assert.False(t, pt.Active)
	assert.True(t, pt.EditorOnly)
	assert.Equal(t, RelativeIndex{Index: 0, Anchor: ThisTile}, pt.RelativeTo)
}

func TestDecodeDocumentErrors(t *testing.T) {
	_, _, err := Decode([]byte(`{"settings": {}}`))
	assert.True(t, errors.Is(err, ErrNoPath))

	_, _, err = Decode([]byte(`{"angleData": [0, "x"]}`))
	assert.True(t, errors.Is(err, ErrBadType))

	_, _, err = Decode([]byte(`{"pathData": "RR?"}`))
	assert.True(t, errors.Is(err, ErrBadEnum))

	_, _, err = Decode([]byte(`{"pathData": "RR", "settings": {"bpm": "fast"}}`))
	assert.True(t, errors.Is(err, ErrBadType))

	_, _, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestDecodeEventErrors(t *testing.T) {
	_, err := DecodeEvent(gjson.Parse(`{"eventType": "Twirl"}`))
	assert.True(t, errors.Is(err, ErrMissingField))

	_, err = DecodeEvent(gjson.Parse(`{"floor": 1, "eventType": "Nope"}`))
	assert.True(t, errors.Is(err, ErrUnknownType))

	_, err = DecodeEvent(gjson.Parse(`{"floor": 1, "eventType": "Pause", "angleCorrectionDir": 4}`))
	assert.True(t, errors.Is(err, ErrBadEnum))

	e, err := DecodeEvent(gjson.Parse(`{"floor": 1, "eventType": "Pause", "duration": 2, "angleCorrectionDir": "Forward"}`))
	require.NoError(t, err)
	assert.Equal(t, CorrectionForward, e.(*Pause).AngleCorrectionDir)
}

func TestPathData(t *testing.T) {
	dirs, err := ParsePath("RUL!5")
	require.NoError(t, err)
	require.Len(t, dirs, 5)
	assert.Equal(t, 0.0, dirs[0].Degrees())
	assert.Equal(t, 90.0, dirs[1].Degrees())
	assert.Equal(t, 180.0, dirs[2].Degrees())
	assert.True(t, dirs[3].IsMidSpin())
	assert.Equal(t, 555.0, dirs[4].Degrees())

	path, ok := EncodePath(dirs)
	assert.True(t, ok)
	assert.Equal(t, "RUL!5", path)

	_, ok = EncodePath([]Direction{Dir(12)})
	assert.False(t, ok)
}

func TestEncodeRoundTrip(t *testing.T) {
	doc, _, err := Decode([]byte(sample))
	require.NoError(t, err)

	out, err := Encode(doc)
	require.NoError(t, err)

	assert.Equal(t, "45.5", gjson.GetBytes(out, "angleData.4").Raw)
	assert.Equal(t, "999", gjson.GetBytes(out, "angleData.2").Raw)
	assert.Equal(t, "120", gjson.GetBytes(out, "settings.bpm").Raw)
	assert.Equal(t, "ff0000", gjson.GetBytes(out, "settings.trackColor").String())
	assert.True(t, gjson.GetBytes(out, "decorations").IsArray())
	assert.Equal(t, int64(4), gjson.GetBytes(out, "actions.#").Int())
	assert.Equal(t, "[1,null]", gjson.GetBytes(out, "actions.2.positionOffset").Raw)
	assert.Equal(t, "a b", gjson.GetBytes(out, "actions.2.eventTag").String())
	assert.Equal(t, "false", gjson.GetBytes(out, "actions.3.active").Raw)

	again, diags, err := Decode(out)
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Equal(t, doc.Directions, again.Directions)
	assert.Equal(t, doc.Settings, again.Settings)
	require.Len(t, again.Events, len(doc.Events))
	for i := range doc.Events {
		assert.Equal(t, doc.Events[i], again.Events[i], "event %d", i)
	}
}

func TestEncodeSkipsGenerated(t *testing.T) {
	mt := &MoveTrack{Header: Header{Floor: 1, Active: true}}
	mt.At.Generated = true
	doc := &Document{Directions: []Direction{Dir(0), Dir(0)}, Settings: DefaultSettings(), Events: []Event{mt}}
	out, err := Encode(doc)
	require.NoError(t, err)
	assert.Equal(t, int64(0), gjson.GetBytes(out, "actions.#").Int())
}

func TestCloneIsDeep(t *testing.T) {
	mt := &MoveTrack{Opacity: Float(50)}
	mt.At.Tags = []string{"x"}
	c := mt.Clone().(*MoveTrack)
	*c.Opacity = 10
	c.At.Tags[0] = "y"
	assert.Equal(t, 50.0, *mt.Opacity)
	assert.Equal(t, "x", mt.At.Tags[0])
}

var TestResolve = []struct {
	Rel    RelativeIndex
	Base   int
	Expect int
}{
	{RelativeIndex{Index: 3, Anchor: Start}, 5, 3},
	{RelativeIndex{Index: -3, Anchor: Start}, 5, 0},
	{RelativeIndex{Index: 50, Anchor: Start}, 5, 9},
	{RelativeIndex{Index: 2, Anchor: ThisTile}, 5, 7},
	{RelativeIndex{Index: -2, Anchor: ThisTile}, 5, 3},
	{RelativeIndex{Index: -9, Anchor: ThisTile}, 5, 0},
	{RelativeIndex{Index: 9, Anchor: ThisTile}, 5, 9},
	{RelativeIndex{Index: 0, Anchor: End}, 5, 9},
	{RelativeIndex{Index: 4, Anchor: End}, 5, 9},
	{RelativeIndex{Index: -4, Anchor: End}, 5, 5},
}

func TestRelativeIndexResolve(t *testing.T) {
	for _, v := range TestResolve {
		assert.Equal(t, v.Expect, v.Rel.Resolve(v.Base, 10), "%+v from %d", v.Rel, v.Base)
	}
}

func TestColor(t *testing.T) {
	c, err := ParseColor("#debb7b")
	require.NoError(t, err)
	assert.Equal(t, DefaultTrackColor, c)
	assert.Equal(t, "debb7b", c.String())
	assert.Equal(t, "debb7b80", c.WithA(0x80).String())

	_, err = ParseColor("12345")
	assert.Error(t, err)

	red := RGBA(255, 0, 0, 255)
	blue := RGBA(0, 0, 255, 255)
	assert.Equal(t, red, red.Mix(blue, 255))
	assert.Equal(t, blue, red.Mix(blue, 0))
	assert.Equal(t, RGBA(0, 255, 0, 255), red.HueShift(120))
	assert.Equal(t, red, red.HueShift(360))
}
