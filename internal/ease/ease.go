package ease

import (
	"fmt"
	"math"
)

// Kind names an easing curve as it appears in chart files ("Linear", "OutQuad", ...).
type Kind int

const (
	Linear Kind = iota
	InSine
	OutSine
	InOutSine
	InQuad
	OutQuad
	InOutQuad
	InCubic
	OutCubic
	InOutCubic
	InQuart
	OutQuart
	InOutQuart
	InQuint
	OutQuint
	InOutQuint
	InExpo
	OutExpo
	InOutExpo
	InCirc
	OutCirc
	InOutCirc
	InBack
	OutBack
	InOutBack
	InElastic
	OutElastic
	InOutElastic
	InBounce
	OutBounce
	InOutBounce
)

var names = [...]string{
	"Linear",
	"InSine", "OutSine", "InOutSine",
	"InQuad", "OutQuad", "InOutQuad",
	"InCubic", "OutCubic", "InOutCubic",
	"InQuart", "OutQuart", "InOutQuart",
	"InQuint", "OutQuint", "InOutQuint",
	"InExpo", "OutExpo", "InOutExpo",
	"InCirc", "OutCirc", "InOutCirc",
	"InBack", "OutBack", "InOutBack",
	"InElastic", "OutElastic", "InOutElastic",
	"InBounce", "OutBounce", "InOutBounce",
}

// Kinds returns every supported curve in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(names))
	for i := range names {
		out[i] = Kind(i)
	}
	return out
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(names) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return names[k]
}

// Parse maps a chart ease name to its Kind.
func Parse(name string) (Kind, error) {
	for i, n := range names {
		if n == name {
			return Kind(i), nil
		}
	}
	return Linear, fmt.Errorf("unknown ease %q", name)
}

const (
	c1 = 1.70158
	c2 = c1 * 1.525
	c3 = c1 + 1
	c4 = (2 * math.Pi) / 3
	c5 = (2 * math.Pi) / 4.5
	n1 = 7.5625
	d1 = 2.75
)

func outBounce(x float64) float64 {
	switch {
	case x < 1/d1:
		return n1 * x * x
	case x < 2/d1:
		x -= 1.5 / d1
		return n1*x*x + 0.75
	case x < 2.5/d1:
		x -= 2.25 / d1
		return n1*x*x + 0.9375
	default:
		x -= 2.625 / d1
		return n1*x*x + 0.984375
	}
}

// Ease evaluates curve k at x. Inputs outside (0,1) clamp to the endpoints.
func Ease(k Kind, x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	switch k {
	case Linear:
		return x
	case InSine:
		return 1 - math.Cos(x*math.Pi/2)
	case OutSine:
		return math.Sin(x * math.Pi / 2)
	case InOutSine:
		return -(math.Cos(math.Pi*x) - 1) / 2
	case InQuad:
		return x * x
	case OutQuad:
		return 1 - (1-x)*(1-x)
	case InOutQuad:
		if x < 0.5 {
			return 2 * x * x
		}
		return 1 - math.Pow(-2*x+2, 2)/2
	case InCubic:
		return x * x * x
	case OutCubic:
		return 1 - math.Pow(1-x, 3)
	case InOutCubic:
		if x < 0.5 {
			return 4 * x * x * x
		}
		return 1 - math.Pow(-2*x+2, 3)/2
	case InQuart:
		return math.Pow(x, 4)
	case OutQuart:
		return 1 - math.Pow(1-x, 4)
	case InOutQuart:
		if x < 0.5 {
			return 8 * math.Pow(x, 4)
		}
		return 1 - math.Pow(-2*x+2, 4)/2
	case InQuint:
		return math.Pow(x, 5)
	case OutQuint:
		return 1 - math.Pow(1-x, 5)
	case InOutQuint:
		if x < 0.5 {
			return 16 * math.Pow(x, 5)
		}
		return 1 - math.Pow(-2*x+2, 5)/2
	case InExpo:
		return math.Pow(2, 10*x-10)
	case OutExpo:
		return 1 - math.Pow(2, -10*x)
	case InOutExpo:
		if x < 0.5 {
			return math.Pow(2, 20*x-10) / 2
		}
		return (2 - math.Pow(2, -20*x+10)) / 2
	case InCirc:
		return 1 - math.Sqrt(1-x*x)
	case OutCirc:
		return math.Sqrt(1 - (x-1)*(x-1))
	case InOutCirc:
		if x < 0.5 {
			return (1 - math.Sqrt(1-math.Pow(2*x, 2))) / 2
		}
		return (math.Sqrt(1-math.Pow(-2*x+2, 2)) + 1) / 2
	case InBack:
		return c3*x*x*x - c1*x*x
	case OutBack:
		return 1 + c3*math.Pow(x-1, 3) + c1*math.Pow(x-1, 2)
	case InOutBack:
		if x < 0.5 {
			return (math.Pow(2*x, 2) * ((c2+1)*2*x - c2)) / 2
		}
		return (math.Pow(2*x-2, 2)*((c2+1)*(x*2-2)+c2) + 2) / 2
	case InElastic:
		return -math.Pow(2, 10*x-10) * math.Sin((x*10-10.75)*c4)
	case OutElastic:
		return math.Pow(2, -10*x)*math.Sin((x*10-0.75)*c4) + 1
	case InOutElastic:
		if x < 0.5 {
			return -(math.Pow(2, 20*x-10) * math.Sin((20*x-11.125)*c5)) / 2
		}
		return (math.Pow(2, -20*x+10)*math.Sin((20*x-11.125)*c5))/2 + 1
	case InBounce:
		return 1 - outBounce(1-x)
	case OutBounce:
		return outBounce(x)
	case InOutBounce:
		if x < 0.5 {
			return (1 - outBounce(1-2*x)) / 2
		}
		return (1 + outBounce(2*x-1)) / 2
	}
	return x
}
