package chart

import (
	"bytes"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/coreman2200/adotimeline/internal/diagnostics"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Document is a decoded chart. Directions[i] belongs to tile i+1; tile 0 is
// the implicit start tile and is not stored.
type Document struct {
	Directions []Direction
	// UsePath is set when the source used pathData; Encode keeps that form
	// when every direction has a path symbol.
	UsePath  bool
	Settings Settings
	Events   []Event
}

// Decode parses a chart file. Actions that fail to decode are dropped and
// reported as warnings; only document-level problems return an error.
func Decode(data []byte) (*Document, []diagnostics.Diagnostic, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !gjson.ValidBytes(data) {
		return nil, nil, fmt.Errorf("chart: invalid JSON: %w", ErrBadType)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, nil, fmt.Errorf("chart: top level: %w", ErrBadType)
	}

	doc := &Document{}
	switch angles, path := root.Get("angleData"), root.Get("pathData"); {
	case angles.Exists():
		if !angles.IsArray() {
			return nil, nil, fmt.Errorf("chart: angleData: %w", ErrBadType)
		}
		for i, a := range angles.Array() {
			if a.Type != gjson.Number {
				return nil, nil, fmt.Errorf("chart: angleData[%d]: %w", i, ErrBadType)
			}
			doc.Directions = append(doc.Directions, DirectionFromDegrees(a.Float()))
		}
	case path.Exists():
		if path.Type != gjson.String {
			return nil, nil, fmt.Errorf("chart: pathData: %w", ErrBadType)
		}
		dirs, err := ParsePath(path.Str)
		if err != nil {
			return nil, nil, fmt.Errorf("chart: %w", err)
		}
		doc.Directions = dirs
		doc.UsePath = true
	default:
		return nil, nil, ErrNoPath
	}

	settings, err := DecodeSettings(root.Get("settings"))
	if err != nil {
		return nil, nil, fmt.Errorf("chart: settings: %w", err)
	}
	doc.Settings = settings

	var diags []diagnostics.Diagnostic
	tiles := len(doc.Directions) + 1
	root.Get("actions").ForEach(func(key, value gjson.Result) bool {
		idx := int(key.Int())
		ev, err := DecodeEvent(value)
		if err == nil && ev.Head().Floor >= tiles {
			err = fmt.Errorf("floor %d beyond last tile %d: %w", ev.Head().Floor, tiles-1, ErrBadType)
		}
		if err != nil {
			log.Warn().Err(err).Int("action", idx).Msg("skipping chart action")
			diags = append(diags, diagnostics.Skipped(idx, value.Get("eventType").String(), err))
			return true
		}
		doc.Events = append(doc.Events, ev)
		return true
	})
	return doc, diags, nil
}
