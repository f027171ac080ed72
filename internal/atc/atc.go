package atc

import (
	"log/slog"
	"slices"
	"sync"

	"airport_sim/internal/airport"
)

// AirTrafficControl runs a single airport and keeps a registry of every
// plane it has put into the air
type AirTrafficControl struct {
	mu      sync.Mutex
	airport *airport.Airport
	planes  []*airport.Plane
}

// New creates a controller for a new airport configured by opts
func New(opts ...airport.Option) (*AirTrafficControl, error) {
	ap, err := airport.New(opts...)
	if err != nil {
		return nil, err
	}

	return &AirTrafficControl{
		airport: ap,
		planes:  make([]*airport.Plane, 0),
	}, nil
}

func (c *AirTrafficControl) Airport() *airport.Airport {
	return c.airport
}

// Planes returns the registry in creation order
func (c *AirTrafficControl) Planes() []*airport.Plane {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.planes)
}

func (c *AirTrafficControl) FlyingPlanes() []*airport.Plane {
	return c.planesWithStatus(airport.Flying)
}

func (c *AirTrafficControl) LandedPlanes() []*airport.Plane {
	return c.planesWithStatus(airport.Landed)
}

func (c *AirTrafficControl) planesWithStatus(status airport.Status) []*airport.Plane {
	c.mu.Lock()
	defer c.mu.Unlock()

	planes := make([]*airport.Plane, 0, len(c.planes))
	for _, p := range c.planes {
		if p.Status() == status {
			planes = append(planes, p)
		}
	}
	return planes
}

// OverrideAirportCapacity sets the airport capacity to v, or back to
// airport.DefaultCapacity when v is nil
func (c *AirTrafficControl) OverrideAirportCapacity(v any) error {
	if v == nil {
		v = airport.DefaultCapacity
	}
	if err := c.airport.SetCapacity(v); err != nil {
		return err
	}

	slog.Info("Airport capacity overridden", "capacity", c.airport.Capacity())
	return nil
}

// NewPlane creates a flying plane and adds it to the registry
func (c *AirTrafficControl) NewPlane() *airport.Plane {
	p := airport.NewPlane()

	c.mu.Lock()
	c.planes = append(c.planes, p)
	c.mu.Unlock()

	slog.Debug("Plane created", "plane", p.ID())
	return p
}

// OrderLand asks the airport to land p
func (c *AirTrafficControl) OrderLand(p *airport.Plane) (airport.Outcome, error) {
	if p == nil {
		return airport.NoOutcome, airport.ErrInvalidArgument
	}
	return c.airport.RequestLand(p)
}

// OrderLaunch asks the airport to launch p
func (c *AirTrafficControl) OrderLaunch(p *airport.Plane) (airport.Outcome, error) {
	if p == nil {
		return airport.NoOutcome, airport.ErrInvalidArgument
	}
	return c.airport.RequestLaunch(p)
}
