package tasks

import (
	"context"
	"log/slog"
	"time"

	"airport_sim/internal/database"
	"airport_sim/internal/models"
)

// MovementRecorder drains movements from a channel and writes them to the
// movement log in batches
type MovementRecorder struct {
	repo          database.MovementRepository
	movementChan  <-chan *models.Movement
	batchSize     int           // maximum number of movements in a batch before committing
	flushInterval time.Duration // time to flush batch even if not full
}

// Default batch size is 100 movements and flush interval is 1 second
func NewMovementRecorder(repo database.MovementRepository, movementChan <-chan *models.Movement) *MovementRecorder {
	return NewMovementRecorderWithConfig(repo, movementChan, 100, 1*time.Second)
}

// NewMovementRecorderWithConfig creates a recorder with custom batch settings
func NewMovementRecorderWithConfig(repo database.MovementRepository, movementChan <-chan *models.Movement, batchSize int, flushInterval time.Duration) *MovementRecorder {
	if batchSize <= 0 {
		batchSize = 100
	}
	if flushInterval <= 0 {
		flushInterval = 1 * time.Second
	}
	return &MovementRecorder{
		repo:          repo,
		movementChan:  movementChan,
		batchSize:     batchSize,
		flushInterval: flushInterval,
	}
}

// Start blocks until the context is cancelled or the channel is closed,
// flushing whatever is pending before it returns
func (r *MovementRecorder) Start(ctx context.Context) error {
	batch := make([]*models.Movement, 0, r.batchSize)

	flushBatch := func() {
		if len(batch) == 0 {
			return
		}
		if err := r.repo.InsertBatch(batch); err != nil {
			slog.Error("Error inserting batch of movements", "batch_size", len(batch), "error", err)
		} else {
			slog.Debug("Inserted batch of movements", "batch_size", len(batch))
		}
		batch = batch[:0]
	}

	ticker := time.NewTicker(r.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.drain(&batch)
			flushBatch()
			return ctx.Err()

		case <-ticker.C:
			flushBatch()

		case m, ok := <-r.movementChan:
			if !ok {
				flushBatch()
				return nil
			}
			if m == nil {
				continue
			}

			batch = append(batch, m)
			if len(batch) >= r.batchSize {
				flushBatch()
			}
		}
	}
}

// drain picks up movements already buffered in the channel
func (r *MovementRecorder) drain(batch *[]*models.Movement) {
	for {
		select {
		case m, ok := <-r.movementChan:
			if !ok {
				return
			}
			if m != nil {
				*batch = append(*batch, m)
			}
		default:
			return
		}
	}
}
