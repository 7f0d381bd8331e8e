package models

import "time"

// SimulationRun is one persisted analysis: the parameters that were submitted
// and the result they produced. Stored as an opaque record; nothing reads it
// back into the engine.
type SimulationRun struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Params    SimulationInput  `json:"params"`
	Result    SimulationResult `json:"result"`
}
