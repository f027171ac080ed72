package database

import (
	"database/sql"
	"fmt"

	"airport_sim/internal/models"
)

type MovementRepository interface {
	InsertBatch(movements []*models.Movement) error
	CountByOutcome() (map[string]map[string]int, error)
	ListByPlane(planeID string) ([]*models.Movement, error)
}

type movementRepository struct {
	db *sql.DB
}

func NewMovementRepository(db *sql.DB) MovementRepository {
	return &movementRepository{db: db}
}

// InsertBatch inserts one or more movements in a single transaction
func (r *movementRepository) InsertBatch(movements []*models.Movement) error {
	if len(movements) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO movements (
		timestamp, plane_id, kind, outcome, weather, hangar_count, capacity
	) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, m := range movements {
		if _, err := stmt.Exec(
			m.Timestamp,
			m.PlaneID,
			m.Kind,
			m.Outcome,
			m.Weather,
			m.HangarCount,
			m.Capacity,
		); err != nil {
			return fmt.Errorf("failed to insert movement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// CountByOutcome returns the number of movements keyed by kind then outcome
func (r *movementRepository) CountByOutcome() (map[string]map[string]int, error) {
	rows, err := r.db.Query(`SELECT kind, outcome, COUNT(*) FROM movements GROUP BY kind, outcome`)
	if err != nil {
		return nil, fmt.Errorf("failed to count movements: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]map[string]int)
	for rows.Next() {
		var kind, outcome string
		var n int
		if err := rows.Scan(&kind, &outcome, &n); err != nil {
			return nil, fmt.Errorf("failed to scan movement count: %w", err)
		}
		if counts[kind] == nil {
			counts[kind] = make(map[string]int)
		}
		counts[kind][outcome] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read movement counts: %w", err)
	}
	return counts, nil
}

// ListByPlane returns the movements of one plane, oldest first
func (r *movementRepository) ListByPlane(planeID string) ([]*models.Movement, error) {
	rows, err := r.db.Query(`SELECT timestamp, plane_id, kind, outcome, weather, hangar_count, capacity
		FROM movements WHERE plane_id = ? ORDER BY id`, planeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query movements: %w", err)
	}
	defer rows.Close()

	movements := make([]*models.Movement, 0)
	for rows.Next() {
		m := &models.Movement{}
		if err := rows.Scan(&m.Timestamp, &m.PlaneID, &m.Kind, &m.Outcome, &m.Weather, &m.HangarCount, &m.Capacity); err != nil {
			return nil, fmt.Errorf("failed to scan movement: %w", err)
		}
		movements = append(movements, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read movements: %w", err)
	}
	return movements, nil
}
