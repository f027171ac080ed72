package airport

import (
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// The messages below are part of the public contract and are matched
// verbatim by callers, hence the capitalisation.
var (
	ErrInvalidCapacity = errors.New(`Capacity must be a numerical value (e.g. 10, 10.0, "10") > 0`)
	ErrInvalidArgument = errors.New("Call error: must include a Plane as an argument")
)

// Airport owns a capacity bounded hangar and gates landings and launches on
// the weather. All methods are safe for concurrent use.
type Airport struct {
	mu       sync.Mutex
	capacity int
	hangar   []*Plane
	weather  Weather
	forecast WeatherProvider
}

// Option configures an Airport at construction
type Option func(*Airport) error

// WithCapacity sets the hangar capacity, see ParseCapacity for accepted values
func WithCapacity(v any) Option {
	return func(a *Airport) error {
		capacity, err := ParseCapacity(v)
		if err != nil {
			return err
		}
		a.capacity = capacity
		return nil
	}
}

// WithWeatherProvider replaces the provider used when CheckWeather is
// called without one
func WithWeatherProvider(p WeatherProvider) Option {
	return func(a *Airport) error {
		if p != nil {
			a.forecast = p
		}
		return nil
	}
}

// New creates an airport with DefaultCapacity and clock seeded random
// weather unless options say otherwise
func New(opts ...Option) (*Airport, error) {
	a := &Airport{
		capacity: DefaultCapacity,
		hangar:   make([]*Plane, 0),
		forecast: NewSeededWeather(uint64(time.Now().UnixNano())),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

func (a *Airport) Capacity() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.capacity
}

// SetCapacity changes the capacity. Planes already in the hangar stay put
// even if they now exceed it.
func (a *Airport) SetCapacity(v any) error {
	capacity, err := ParseCapacity(v)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.capacity = capacity
	slog.Debug("Airport capacity changed", "capacity", capacity, "hangar", len(a.hangar))
	return nil
}

// Weather returns the last observed weather, Unknown before the first check
func (a *Airport) Weather() Weather {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.weather
}

// CheckWeather reads the weather from p, or from the airport's own provider
// when p is nil, and stores it as the current weather
func (a *Airport) CheckWeather(p WeatherProvider) Weather {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.checkWeather(p)
}

func (a *Airport) checkWeather(p WeatherProvider) Weather {
	if p == nil {
		p = a.forecast
	}
	a.weather = p.Weather()
	return a.weather
}

// WeatherIsClear reports whether it is sunny. The weather is checked first
// if force is set or nothing has been observed yet.
func (a *Airport) WeatherIsClear(force bool) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.weatherIsClear(force)
}

func (a *Airport) weatherIsClear(force bool) bool {
	if force || a.weather == Unknown {
		a.checkWeather(nil)
	}
	return a.weather == Sunny
}

func (a *Airport) PlaneIsInHangar(p *Plane) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inHangar(p)
}

func (a *Airport) inHangar(p *Plane) bool {
	return slices.Contains(a.hangar, p)
}

// AddToHangar puts p in the hangar without any capacity or weather checks
func (a *Airport) AddToHangar(p *Plane) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hangar = append(a.hangar, p)
}

func (a *Airport) HangarCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.hangar)
}

// Hangar returns a copy of the planes currently on the ground
func (a *Airport) Hangar() []*Plane {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.hangar)
}

// RequestLand lands p if the weather is clear and the hangar has room. A
// plane already in the hangar is refused with DeniedAlreadyLanded.
func (a *Airport) RequestLand(p *Plane) (Outcome, error) {
	if p == nil {
		return NoOutcome, ErrInvalidArgument
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	outcome := Cleared
	switch {
	case !a.weatherIsClear(false):
		outcome = DeniedWeather
	case a.inHangar(p):
		outcome = DeniedAlreadyLanded
	case len(a.hangar) >= a.capacity:
		outcome = DeniedHangarFull
	default:
		a.hangar = append(a.hangar, p)
		p.setStatus(Landed)
	}

	slog.Debug("Landing request",
		"plane", p.id,
		"outcome", outcome,
		"weather", a.weather,
		"hangar", len(a.hangar),
		"capacity", a.capacity,
	)
	return outcome, nil
}

// RequestLaunch launches p if the weather is clear and p is in the hangar
func (a *Airport) RequestLaunch(p *Plane) (Outcome, error) {
	if p == nil {
		return NoOutcome, ErrInvalidArgument
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	outcome := Cleared
	switch {
	case !a.weatherIsClear(false):
		outcome = DeniedWeather
	case !a.inHangar(p):
		outcome = DeniedNotInHangar
	default:
		a.hangar = slices.DeleteFunc(a.hangar, func(h *Plane) bool { return h == p })
		p.setStatus(Flying)
	}

	slog.Debug("Launch request",
		"plane", p.id,
		"outcome", outcome,
		"weather", a.weather,
		"hangar", len(a.hangar),
		"capacity", a.capacity,
	)
	return outcome, nil
}
