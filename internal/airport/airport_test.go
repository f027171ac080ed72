package airport

import (
	"bytes"
	"log/slog"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	sunny  = WeatherFunc(func() Weather { return Sunny })
	stormy = WeatherFunc(func() Weather { return Stormy })
)

func newTestAirport(t *testing.T, opts ...Option) *Airport {
	a, err := New(opts...)
	require.NoError(t, err)
	require.NotNil(t, a)
	return a
}

func TestNew_DefaultCapacity(t *testing.T) {
	a := newTestAirport(t)
	assert.Equal(t, DefaultCapacity, a.Capacity())
	assert.Equal(t, 20, a.Capacity())
	assert.Equal(t, 0, a.HangarCount())
	assert.Equal(t, Unknown, a.Weather())
}

func TestNew_Capacity(t *testing.T) {
	tests := []struct {
		name     string
		capacity any
		want     int
	}{
		{name: "int", capacity: 10, want: 10},
		{name: "numeric string", capacity: "10", want: 10},
		{name: "float truncated", capacity: 10.75, want: 10},
		{name: "expression", capacity: 2 * 5, want: 10},
		{name: "float string truncated", capacity: "10.75", want: 10},
		{name: "uint", capacity: uint8(3), want: 3},
		{name: "padded string", capacity: " 7 ", want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAirport(t, WithCapacity(tt.capacity))
			assert.Equal(t, tt.want, a.Capacity())
		})
	}
}

func TestNew_InvalidCapacity(t *testing.T) {
	tests := []struct {
		name     string
		capacity any
	}{
		{name: "word", capacity: "ten"},
		{name: "slice", capacity: []int{10}},
		{name: "zero", capacity: 0},
		{name: "negative", capacity: -5},
		{name: "truncates to zero", capacity: 0.5},
		{name: "empty string", capacity: ""},
		{name: "bool", capacity: true},
		{name: "nil", capacity: nil},
		{name: "above int32", capacity: int64(math.MaxInt32) + 1},
		{name: "huge float string", capacity: "1e12"},
		{name: "infinity", capacity: math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(WithCapacity(tt.capacity))
			assert.Nil(t, a)
			require.ErrorIs(t, err, ErrInvalidCapacity)
			assert.EqualError(t, err, `Capacity must be a numerical value (e.g. 10, 10.0, "10") > 0`)
		})
	}
}

func TestCheckWeather(t *testing.T) {
	a := newTestAirport(t)

	assert.Equal(t, Sunny, a.CheckWeather(sunny))
	assert.Equal(t, Sunny, a.Weather())

	assert.Equal(t, Stormy, a.CheckWeather(stormy))
	assert.Equal(t, Stormy, a.Weather())
}

func TestCheckWeather_DefaultProvider(t *testing.T) {
	a := newTestAirport(t, WithWeatherProvider(stormy))
	assert.Equal(t, Stormy, a.CheckWeather(nil))
}

func TestWeatherIsClear(t *testing.T) {
	t.Run("stormy when forced", func(t *testing.T) {
		a := newTestAirport(t, WithWeatherProvider(stormy))
		a.CheckWeather(sunny)
		assert.False(t, a.WeatherIsClear(true))
	})

	t.Run("cached weather is reused", func(t *testing.T) {
		a := newTestAirport(t, WithWeatherProvider(stormy))
		a.CheckWeather(sunny)
		assert.True(t, a.WeatherIsClear(false))
	})

	t.Run("checks when nothing observed", func(t *testing.T) {
		a := newTestAirport(t, WithWeatherProvider(sunny))
		assert.True(t, a.WeatherIsClear(false))
		assert.Equal(t, Sunny, a.Weather())
	})
}

func TestPlaneIsInHangar(t *testing.T) {
	a := newTestAirport(t)
	assert.False(t, a.PlaneIsInHangar(NewPlane()))

	p := NewPlane()
	a.AddToHangar(p)
	assert.True(t, a.PlaneIsInHangar(p))
	assert.Equal(t, []*Plane{p}, a.Hangar())
}

func TestRequestLaunch_InvalidArgument(t *testing.T) {
	a := newTestAirport(t, WithWeatherProvider(sunny))

	outcome, err := a.RequestLaunch(nil)
	assert.EqualError(t, err, "Call error: must include a Plane as an argument")
	assert.Equal(t, NoOutcome, outcome)

	_, err = a.RequestLaunch(NewPlane())
	assert.NoError(t, err)
}

func TestRequestLand_InvalidArgument(t *testing.T) {
	a := newTestAirport(t, WithWeatherProvider(stormy))

	_, err := a.RequestLand(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = a.RequestLand(NewPlane())
	assert.NoError(t, err)
}

func TestRequestLaunch(t *testing.T) {
	a := newTestAirport(t, WithWeatherProvider(sunny))
	p := NewPlane()
	a.AddToHangar(p)

	outcome, err := a.RequestLaunch(p)
	require.NoError(t, err)
	assert.True(t, outcome.Granted())
	assert.False(t, a.PlaneIsInHangar(p))
	assert.Equal(t, 0, a.HangarCount())
	assert.Equal(t, Flying, p.Status())
}

func TestRequestLaunch_Denied(t *testing.T) {
	t.Run("stormy", func(t *testing.T) {
		a := newTestAirport(t, WithWeatherProvider(stormy))
		p := NewPlane()
		a.AddToHangar(p)

		outcome, err := a.RequestLaunch(p)
		require.NoError(t, err)
		assert.Equal(t, DeniedWeather, outcome)
		assert.False(t, outcome.Granted())
		assert.True(t, a.PlaneIsInHangar(p))
	})

	t.Run("not in hangar", func(t *testing.T) {
		a := newTestAirport(t, WithWeatherProvider(sunny))

		outcome, err := a.RequestLaunch(NewPlane())
		require.NoError(t, err)
		assert.Equal(t, DeniedNotInHangar, outcome)
	})
}

func TestRequestLand(t *testing.T) {
	a := newTestAirport(t, WithWeatherProvider(sunny))
	p := NewPlane()

	outcome, err := a.RequestLand(p)
	require.NoError(t, err)
	assert.Equal(t, Cleared, outcome)
	assert.True(t, a.PlaneIsInHangar(p))
	assert.Equal(t, 1, a.HangarCount())
	assert.Equal(t, Landed, p.Status())
}

func TestRequestLand_Denied(t *testing.T) {
	t.Run("stormy", func(t *testing.T) {
		a := newTestAirport(t, WithWeatherProvider(stormy))
		p := NewPlane()

		outcome, err := a.RequestLand(p)
		require.NoError(t, err)
		assert.Equal(t, DeniedWeather, outcome)
		assert.Equal(t, Flying, p.Status())
		assert.Equal(t, 0, a.HangarCount())
	})

	t.Run("hangar full", func(t *testing.T) {
		a := newTestAirport(t, WithWeatherProvider(sunny))
		for i := 0; i < DefaultCapacity; i++ {
			a.AddToHangar(NewPlane())
		}

		outcome, err := a.RequestLand(NewPlane())
		require.NoError(t, err)
		assert.Equal(t, DeniedHangarFull, outcome)
		assert.Equal(t, DefaultCapacity, a.HangarCount())
	})

	t.Run("already landed", func(t *testing.T) {
		a := newTestAirport(t, WithWeatherProvider(sunny))
		p := NewPlane()
		_, err := a.RequestLand(p)
		require.NoError(t, err)

		outcome, err := a.RequestLand(p)
		require.NoError(t, err)
		assert.Equal(t, DeniedAlreadyLanded, outcome)
		assert.Equal(t, 1, a.HangarCount())
	})
}

func TestLandLaunchLand(t *testing.T) {
	a := newTestAirport(t, WithWeatherProvider(sunny))
	p := NewPlane()

	outcome, err := a.RequestLand(p)
	require.NoError(t, err)
	assert.True(t, outcome.Granted())

	outcome, err = a.RequestLaunch(p)
	require.NoError(t, err)
	assert.True(t, outcome.Granted())

	outcome, err = a.RequestLand(p)
	require.NoError(t, err)
	assert.True(t, outcome.Granted())
	assert.True(t, a.PlaneIsInHangar(p))
	assert.Equal(t, Landed, p.Status())
}

func TestSetCapacity_DoesNotEvict(t *testing.T) {
	a := newTestAirport(t, WithWeatherProvider(sunny), WithCapacity(3))
	planes := []*Plane{NewPlane(), NewPlane(), NewPlane()}
	for _, p := range planes {
		outcome, err := a.RequestLand(p)
		require.NoError(t, err)
		require.True(t, outcome.Granted())
	}

	require.NoError(t, a.SetCapacity(1))
	assert.Equal(t, 3, a.HangarCount())

	outcome, err := a.RequestLand(NewPlane())
	require.NoError(t, err)
	assert.Equal(t, DeniedHangarFull, outcome)

	outcome, err = a.RequestLaunch(planes[0])
	require.NoError(t, err)
	assert.True(t, outcome.Granted())

	assert.ErrorIs(t, a.SetCapacity("none"), ErrInvalidCapacity)
	assert.Equal(t, 1, a.Capacity())
}

func TestRandomWeather(t *testing.T) {
	t.Run("never stormy", func(t *testing.T) {
		w := NewRandomWeather(rand.NewPCG(3, 3), 0)
		for i := 0; i < 100; i++ {
			assert.Equal(t, Sunny, w.Weather())
		}
	})

	t.Run("always stormy", func(t *testing.T) {
		w := NewRandomWeather(rand.NewPCG(4, 4), 1.5)
		for i := 0; i < 100; i++ {
			assert.Equal(t, Stormy, w.Weather())
		}
	})

	t.Run("mostly sunny", func(t *testing.T) {
		w := NewSeededWeather(42)
		stormyCount := 0
		for i := 0; i < 10000; i++ {
			if w.Weather() == Stormy {
				stormyCount++
			}
		}
		assert.InDelta(t, 1000, stormyCount, 200)
	})

	t.Run("same seed same sequence", func(t *testing.T) {
		a, b := NewSeededWeather(7), NewSeededWeather(7)
		for i := 0; i < 50; i++ {
			assert.Equal(t, a.Weather(), b.Weather())
		}
	})
}

func TestRequestLand_LogsDecision(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	prev := slog.Default()
	slog.SetDefault(logger)
	t.Cleanup(func() { slog.SetDefault(prev) })

	a := newTestAirport(t, WithWeatherProvider(stormy))

	_, err := a.RequestLand(NewPlane())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "outcome=denied_weather")
	assert.Contains(t, buf.String(), "weather=stormy")
}
