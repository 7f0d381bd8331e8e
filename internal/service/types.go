package service

import (
	"time"

	"transistor_bench/internal/models"
)

// HistoryFilter bounds the run listing. Zero times mean no bound.
type HistoryFilter struct {
	From time.Time // inclusive
	To   time.Time // inclusive
}

// AdviceRequest pairs a completed result with the parameters that produced it.
type AdviceRequest struct {
	Input  models.SimulationInput  `json:"params"`
	Result models.SimulationResult `json:"result"`
}

// Advice is a suggested follow-up run. Adjusted is nil when there is nothing
// to change.
type Advice struct {
	Suggestion string                  `json:"suggestion"`
	Adjusted   *models.SimulationInput `json:"adjustedParams,omitempty"`
}
