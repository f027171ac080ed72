package airport

import (
	"math/rand/v2"
)

// Weather is the condition at an airport. Only sunny weather allows traffic.
type Weather int

const (
	Unknown Weather = iota
	Sunny
	Stormy
)

// DefaultStormyProbability is the chance that RandomWeather reports a storm
const DefaultStormyProbability = 0.1

func (w Weather) String() string {
	switch w {
	case Sunny:
		return "sunny"
	case Stormy:
		return "stormy"
	default:
		return "unknown"
	}
}

// WeatherProvider reports the current weather
type WeatherProvider interface {
	Weather() Weather
}

// WeatherFunc adapts a plain function to WeatherProvider
type WeatherFunc func() Weather

func (f WeatherFunc) Weather() Weather {
	return f()
}

// RandomWeather draws sunny or stormy weather from its own random source
type RandomWeather struct {
	rnd               *rand.Rand
	stormyProbability float64
}

// NewRandomWeather creates a provider backed by src. A probability outside
// [0, 1] is clamped.
func NewRandomWeather(src rand.Source, stormyProbability float64) *RandomWeather {
	if stormyProbability < 0 {
		stormyProbability = 0
	}
	if stormyProbability > 1 {
		stormyProbability = 1
	}
	return &RandomWeather{
		rnd:               rand.New(src),
		stormyProbability: stormyProbability,
	}
}

// NewSeededWeather creates a provider with the default storm probability
// whose sequence is fully determined by seed
func NewSeededWeather(seed uint64) *RandomWeather {
	return NewRandomWeather(rand.NewPCG(seed, seed^0xda3e39cb94b95bdb), DefaultStormyProbability)
}

func (r *RandomWeather) Weather() Weather {
	if r.rnd.Float64() < r.stormyProbability {
		return Stormy
	}
	return Sunny
}
