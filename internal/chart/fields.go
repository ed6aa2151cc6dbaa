package chart

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/coreman2200/adotimeline/internal/ease"
)

// fields reads typed values out of one JSON object. The first failure is kept
// in err and later reads become no-ops returning their defaults.
type fields struct {
	obj gjson.Result
	err error
}

func reader(obj gjson.Result) *fields { return &fields{obj: obj} }

func (f *fields) fail(key string, err error) {
	if f.err == nil {
		f.err = fmt.Errorf("%s: %w", key, err)
	}
}

func (f *fields) has(key string) bool {
	v := f.obj.Get(key)
	return v.Exists() && v.Type != gjson.Null
}

func (f *fields) float(key string, def float64) float64 {
	v := f.obj.Get(key)
	if f.err != nil || !v.Exists() || v.Type == gjson.Null {
		return def
	}
	if v.Type != gjson.Number {
		f.fail(key, ErrBadType)
		return def
	}
	return v.Float()
}

func (f *fields) optFloat(key string) *float64 {
	if !f.has(key) {
		return nil
	}
	v := f.float(key, 0)
	return &v
}

func (f *fields) integer(key string, def int) int {
	return int(f.float(key, float64(def)))
}

func (f *fields) str(key string, def string) string {
	v := f.obj.Get(key)
	if f.err != nil || !v.Exists() || v.Type == gjson.Null {
		return def
	}
	if v.Type != gjson.String {
		f.fail(key, ErrBadType)
		return def
	}
	return v.Str
}

// boolean accepts JSON booleans and the "Enabled"/"Disabled" spelling.
func (f *fields) boolean(key string, def bool) bool {
	v := f.obj.Get(key)
	if f.err != nil || !v.Exists() || v.Type == gjson.Null {
		return def
	}
	switch {
	case v.Type == gjson.True:
		return true
	case v.Type == gjson.False:
		return false
	case v.Type == gjson.String && v.Str == "Enabled":
		return true
	case v.Type == gjson.String && v.Str == "Disabled":
		return false
	}
	f.fail(key, ErrBadType)
	return def
}

func (f *fields) optBool(key string) *bool {
	if !f.has(key) {
		return nil
	}
	v := f.boolean(key, false)
	return &v
}

func (f *fields) color(key string, def Color) Color {
	s := f.str(key, "")
	if s == "" || f.err != nil {
		return def
	}
	c, err := ParseColor(s)
	if err != nil {
		f.fail(key, err)
		return def
	}
	return c
}

func (f *fields) easing(key string, def ease.Kind) ease.Kind {
	s := f.str(key, "")
	if s == "" || f.err != nil {
		return def
	}
	k, err := ease.Parse(s)
	if err != nil {
		f.fail(key, fmt.Errorf("%w: %v", ErrBadEnum, err))
		return def
	}
	return k
}

// enum parses a string field with parse, leaving def when the field is absent.
func enum[T any](f *fields, key string, def T, parse func(string) (T, error)) T {
	s := f.str(key, "")
	if s == "" || f.err != nil {
		return def
	}
	v, err := parse(s)
	if err != nil {
		f.fail(key, err)
		return def
	}
	return v
}

// point reads [x, y] where either item may be null.
func (f *fields) point(key string) OptionalPoint {
	var p OptionalPoint
	v := f.obj.Get(key)
	if f.err != nil || !v.Exists() || v.Type == gjson.Null {
		return p
	}
	if !v.IsArray() {
		f.fail(key, ErrBadType)
		return p
	}
	arr := v.Array()
	for i, dst := range []**float64{&p.X, &p.Y} {
		if i >= len(arr) || arr[i].Type == gjson.Null {
			continue
		}
		if arr[i].Type != gjson.Number {
			f.fail(key, ErrBadType)
			return OptionalPoint{}
		}
		*dst = Float(arr[i].Float())
	}
	return p
}

func (f *fields) relativeIndex(key string, def RelativeIndex) RelativeIndex {
	v := f.obj.Get(key)
	if f.err != nil || !v.Exists() || v.Type == gjson.Null {
		return def
	}
	arr := v.Array()
	if !v.IsArray() || len(arr) < 2 || arr[0].Type != gjson.Number || arr[1].Type != gjson.String {
		f.fail(key, ErrBadType)
		return def
	}
	anchor, err := ParseRelativeToTile(arr[1].Str)
	if err != nil {
		f.fail(key, err)
		return def
	}
	return RelativeIndex{Index: int(arr[0].Int()), Anchor: anchor}
}
