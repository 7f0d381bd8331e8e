package models

// SimulationMode selects which limit checks apply during a run.
type SimulationMode string

const (
	ModeTemp   SimulationMode = "temp"   // junction temperature only
	ModeBudget SimulationMode = "budget" // cooling budget only
	ModeFTF    SimulationMode = "ftf"    // first-to-fail across all limits
)

// Algorithm selects the current search strategy.
type Algorithm string

const (
	AlgorithmIterative Algorithm = "iterative"
	AlgorithmBinary    Algorithm = "binary"
)

// SimulationInput is the raw parameter set as submitted by the form layer.
// Values carry datasheet/UI units (mΩ, ns, kHz); the engine normalizes them
// to SI before running.
type SimulationInput struct {
	TransistorType       string         `json:"transistorType"`                // e.g. "MOSFET (N-Channel)", "IGBT"
	MaxCurrentA          float64        `json:"maxCurrent"`                    // A
	MaxVoltageV          float64        `json:"maxVoltage"`                    // V
	MaxPowerDissipationW float64        `json:"maxPowerDissipation,omitempty"` // W; 0 = rating unknown
	RdsOnMilliOhm        float64        `json:"rdsOnMilliOhms,omitempty"`      // mΩ (resistive variant)
	VceSatV              float64        `json:"vceSat,omitempty"`              // V (saturation variant)
	RiseTimeNs           float64        `json:"riseTime"`                      // ns
	FallTimeNs           float64        `json:"fallTime"`                      // ns
	SwitchingFreqKHz     float64        `json:"switchingFrequency"`            // kHz
	RthJC                float64        `json:"rthJC"`                         // °C/W junction-to-case
	MaxTemperatureC      float64        `json:"maxTemperature"`                // °C
	AmbientTemperatureC  float64        `json:"ambientTemperature"`            // °C
	CoolingProfileID     string         `json:"coolingProfileId"`
	CoolingBudgetW       float64        `json:"coolingBudget,omitempty"` // W; 0 = use the profile's budget
	Mode                 SimulationMode `json:"simulationMode"`
	Algorithm            Algorithm      `json:"algorithm"`
	PrecisionSteps       int            `json:"precisionSteps"`
}

// PowerDissipation breaks total loss into its terms.
type PowerDissipation struct {
	Total      float64 `json:"total"`      // W
	Conduction float64 `json:"conduction"` // W
	Switching  float64 `json:"switching"`  // W
}

// LiveDataPoint is one telemetry sample emitted while the search runs.
// The iterative algorithm emits them with non-decreasing current; binary
// search emits them in probe order, which is not current-ordered.
type LiveDataPoint struct {
	Current        float64 `json:"current"`        // A
	Temperature    float64 `json:"temperature"`    // °C junction
	PowerLoss      float64 `json:"powerLoss"`      // W total
	ConductionLoss float64 `json:"conductionLoss"` // W
	SwitchingLoss  float64 `json:"switchingLoss"`  // W
	Progress       float64 `json:"progress"`       // 0..100, search progress
	LimitValue     float64 `json:"limitValue"`     // the active limit in its own unit
	LimitUsage     float64 `json:"limitUsage"`     // 0..100, proximity to the active limit
}

// Run outcome statuses. A "failed" result is a successful analysis whose
// answer is that a limit binds before maxCurrent, not an error.
const (
	StatusSafe   = "safe"
	StatusFailed = "failed"
)

// SimulationResult is the terminal verdict of one run, produced exactly once
// after the search stops evaluating.
type SimulationResult struct {
	Status           string           `json:"status"` // safe | failed
	MaxSafeCurrent   float64          `json:"maxSafeCurrent"`
	FailureReason    string           `json:"failureReason,omitempty"` // empty when safe
	Details          string           `json:"details"`
	FinalTemperature float64          `json:"finalTemperature"`
	PowerDissipation PowerDissipation `json:"powerDissipation"`
}
