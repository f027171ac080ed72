package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"airport_sim/internal/airport"
	"airport_sim/internal/atc"
	"airport_sim/internal/database"
	"airport_sim/internal/models"
	"airport_sim/internal/scheduler"
	"airport_sim/internal/tasks"
)

// Daemon runs the airport simulation and records its movements
type Daemon struct {
	ctx          context.Context
	cancel       context.CancelFunc
	scheduler    *scheduler.Scheduler
	database     database.Repository
	control      *atc.AirTrafficControl
	recorder     *tasks.MovementRecorder
	movementChan chan *models.Movement
	wg           sync.WaitGroup
}

// Config holds daemon configuration
type Config struct {
	DBPath            string        // Path to SQLite database, ":memory:" for none
	BatchSize         int           // Number of movements to batch before writing
	BatchTimeout      time.Duration // Flush batch after this time even if not full
	Capacity          any           // Hangar capacity, nil for the default
	StormyProbability float64
	Seed              uint64 // 0 seeds from the clock
	TickInterval      time.Duration
	FleetSize         int
	LaunchProbability float64
}

// New creates a new daemon instance
func New(cfg Config) (*Daemon, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	opts := []airport.Option{
		airport.WithWeatherProvider(airport.NewRandomWeather(rand.NewPCG(seed, 1), cfg.StormyProbability)),
	}
	if cfg.Capacity != nil {
		opts = append(opts, airport.WithCapacity(cfg.Capacity))
	}

	control, err := atc.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create air traffic control: %w", err)
	}

	db, err := database.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	movementChan := make(chan *models.Movement, 1000)

	sched := scheduler.New(ctx)
	sched.AddTask(tasks.NewTrafficTask(control, tasks.TrafficConfig{
		Interval:          cfg.TickInterval,
		FleetSize:         cfg.FleetSize,
		LaunchProbability: cfg.LaunchProbability,
	}, rand.NewPCG(seed, 2), movementChan))

	recorder := tasks.NewMovementRecorderWithConfig(db.MovementRepository(), movementChan, cfg.BatchSize, cfg.BatchTimeout)

	return &Daemon{
		ctx:          ctx,
		cancel:       cancel,
		scheduler:    sched,
		database:     db,
		control:      control,
		recorder:     recorder,
		movementChan: movementChan,
	}, nil
}

// Control exposes the simulated air traffic control
func (d *Daemon) Control() *atc.AirTrafficControl {
	return d.control
}

func (d *Daemon) Start() error {
	slog.Info("Starting daemon",
		"capacity", d.control.Airport().Capacity(),
	)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.recorder.Start(d.ctx); err != nil && d.ctx.Err() == nil {
			slog.Error("Movement recorder stopped", "error", err)
		}
	}()

	d.scheduler.Start()

	slog.Info("Daemon started successfully")
	return nil
}

// Stop gracefully stops the daemon. Traffic stops first so the recorder
// can flush every movement before the database closes.
func (d *Daemon) Stop() error {
	slog.Info("Stopping daemon")

	d.scheduler.Stop()
	d.cancel()
	d.wg.Wait()

	d.logSummary()

	if err := d.database.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	slog.Info("Daemon stopped")
	return nil
}

func (d *Daemon) logSummary() {
	counts, err := d.database.MovementRepository().CountByOutcome()
	if err != nil {
		slog.Error("Failed to summarise movements", "error", err)
		return
	}

	ap := d.control.Airport()
	slog.Info("Simulation summary",
		"planes", len(d.control.Planes()),
		"hangar", ap.HangarCount(),
		"capacity", ap.Capacity(),
		"weather", ap.Weather(),
		"ticks", d.scheduler.Stats()["traffic"].Runs,
	)
	for kind, outcomes := range counts {
		for outcome, n := range outcomes {
			slog.Info("Movement totals", "kind", kind, "outcome", outcome, "count", n)
		}
	}

	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		d.logPlaneHistory()
	}
}

// logPlaneHistory logs one line per plane built from its recorded movements
func (d *Daemon) logPlaneHistory() {
	repo := d.database.MovementRepository()
	for _, p := range d.control.Planes() {
		movements, err := repo.ListByPlane(p.ID())
		if err != nil {
			slog.Error("Failed to load plane history", "plane", p.ID(), "error", err)
			continue
		}

		granted := 0
		lastOutcome := "none"
		for _, m := range movements {
			if m.Granted() {
				granted++
			}
			lastOutcome = m.Kind + ":" + m.Outcome
		}

		slog.Debug("Plane history",
			"plane", p.ID(),
			"status", p.Status(),
			"requests", len(movements),
			"granted", granted,
			"last", lastOutcome,
		)
	}
}
