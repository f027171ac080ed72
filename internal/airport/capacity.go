package airport

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// DefaultCapacity is the hangar size used when no capacity is given
const DefaultCapacity = 20

// ParseCapacity converts an integer, a float (truncated toward zero) or a
// numeric string into a hangar capacity. Anything else, or a result that is
// not strictly positive or above math.MaxInt32, yields ErrInvalidCapacity.
func ParseCapacity(v any) (int, error) {
	switch t := v.(type) {
	case nil, bool:
		return 0, ErrInvalidCapacity
	case string:
		v = strings.TrimSpace(t)
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, ErrInvalidCapacity
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrInvalidCapacity
	}

	f = math.Trunc(f)
	if f <= 0 || f > math.MaxInt32 {
		return 0, ErrInvalidCapacity
	}
	return int(f), nil
}
