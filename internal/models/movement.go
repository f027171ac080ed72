package models

import (
	"time"

	"airport_sim/internal/airport"
)

// Movement kinds
const (
	MovementLand   = "land"
	MovementLaunch = "launch"
)

// Movement is one landing or launch request handled by the airport
type Movement struct {
	Timestamp   time.Time
	PlaneID     string
	Kind        string // MovementLand or MovementLaunch
	Outcome     string // cleared, denied_weather, ...
	Weather     string // weather the decision was made under
	HangarCount int    // hangar occupancy after the request
	Capacity    int
}

// Granted reports whether the request was cleared
func (m *Movement) Granted() bool {
	return m.Outcome == airport.Cleared.String()
}
