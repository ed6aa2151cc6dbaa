package chart

import (
	"fmt"

	"github.com/coreman2200/adotimeline/internal/geom"
)

// midSpinDegrees is how chart files spell a mid-spin tile.
const midSpinDegrees = 999

// Direction is a tile's travel direction, or MidSpin for a tile that only
// pivots and has no direction of its own.
type Direction struct {
	angle   geom.Angle
	midSpin bool
}

var MidSpin = Direction{midSpin: true}

func Dir(deg float64) Direction { return Direction{angle: geom.Angle(deg)} }

// DirectionFromDegrees maps the file encoding, where 999 means MidSpin.
func DirectionFromDegrees(deg float64) Direction {
	if deg == midSpinDegrees {
		return MidSpin
	}
	return Dir(deg)
}

func (d Direction) IsMidSpin() bool { return d.midSpin }

// Angle is the travel direction. It is zero for MidSpin.
func (d Direction) Angle() geom.Angle { return d.angle }

// Degrees is the file encoding of the direction.
func (d Direction) Degrees() float64 {
	if d.midSpin {
		return midSpinDegrees
	}
	return d.angle.Deg()
}

func (d Direction) String() string {
	if d.midSpin {
		return "MidSpin"
	}
	return fmt.Sprintf("%g°", d.angle.Deg())
}

var pathAngles = [...]float64{
	0, 15, 30, 45, 60, 75,
	90, 105, 120, 135, 150, 165,
	180, 195, 210, 225, 240, 255,
	270, 285, 300, 315, 330, 345,
	555, 666, 777, 888, 999,
}

const pathSymbols = "RpJEToUqGQHWLxNZFVDYBCMA5678!"

// ParsePath decodes pathData into directions, one per symbol.
func ParsePath(path string) ([]Direction, error) {
	out := make([]Direction, 0, len(path))
	for i, r := range path {
		j := -1
		for k, p := range pathSymbols {
			if p == r {
				j = k
				break
			}
		}
		if j < 0 {
			return nil, fmt.Errorf("pathData[%d] %q: %w", i, r, ErrBadEnum)
		}
		out = append(out, DirectionFromDegrees(pathAngles[j]))
	}
	return out, nil
}

// EncodePath is the inverse of ParsePath. ok is false when some direction has
// no path symbol, in which case callers should fall back to angleData.
func EncodePath(dirs []Direction) (string, bool) {
	b := make([]byte, 0, len(dirs))
	for _, d := range dirs {
		deg := d.Degrees()
		found := false
		for k, a := range pathAngles {
			if a == deg {
				b = append(b, pathSymbols[k])
				found = true
				break
			}
		}
		if !found {
			return "", false
		}
	}
	return string(b), true
}
