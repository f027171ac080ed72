package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"airport_sim/internal/airport"
	"airport_sim/internal/atc"
	"airport_sim/internal/models"
)

// TrafficConfig tunes the traffic generated on each tick
type TrafficConfig struct {
	Interval          time.Duration
	FleetSize         int     // planes ATC keeps in its registry
	LaunchProbability float64 // chance a landed plane asks to leave on a tick
}

// TrafficTask drives an AirTrafficControl on a schedule: it refreshes the
// weather, spawns planes up to the fleet size and issues land and launch
// orders, reporting every request as a Movement
type TrafficTask struct {
	control      *atc.AirTrafficControl
	cfg          TrafficConfig
	rnd          *rand.Rand
	movementChan chan<- *models.Movement
}

func NewTrafficTask(control *atc.AirTrafficControl, cfg TrafficConfig, src rand.Source, movementChan chan<- *models.Movement) *TrafficTask {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	return &TrafficTask{
		control:      control,
		cfg:          cfg,
		rnd:          rand.New(src),
		movementChan: movementChan,
	}
}

func (t *TrafficTask) Name() string {
	return "traffic"
}

func (t *TrafficTask) Interval() time.Duration {
	return t.cfg.Interval
}

// Run performs one simulation tick
func (t *TrafficTask) Run(ctx context.Context) error {
	ap := t.control.Airport()
	weather := ap.CheckWeather(nil)

	if len(t.control.Planes()) < t.cfg.FleetSize {
		t.control.NewPlane()
	}

	// planes launched this tick do not turn straight back
	flying := t.control.FlyingPlanes()

	for _, p := range t.control.LandedPlanes() {
		if t.rnd.Float64() >= t.cfg.LaunchProbability {
			continue
		}
		outcome, err := t.control.OrderLaunch(p)
		if err != nil {
			return fmt.Errorf("failed to order launch: %w", err)
		}
		if err := t.emit(ctx, p, models.MovementLaunch, outcome); err != nil {
			return err
		}
	}

	for _, p := range flying {
		outcome, err := t.control.OrderLand(p)
		if err != nil {
			return fmt.Errorf("failed to order landing: %w", err)
		}
		if err := t.emit(ctx, p, models.MovementLand, outcome); err != nil {
			return err
		}
	}

	slog.Debug("Traffic tick complete",
		"weather", weather,
		"hangar", ap.HangarCount(),
		"capacity", ap.Capacity(),
		"fleet", len(t.control.Planes()),
	)
	return nil
}

func (t *TrafficTask) emit(ctx context.Context, p *airport.Plane, kind string, outcome airport.Outcome) error {
	ap := t.control.Airport()
	m := &models.Movement{
		Timestamp:   time.Now(),
		PlaneID:     p.ID(),
		Kind:        kind,
		Outcome:     outcome.String(),
		Weather:     ap.Weather().String(),
		HangarCount: ap.HangarCount(),
		Capacity:    ap.Capacity(),
	}

	select {
	case t.movementChan <- m:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
