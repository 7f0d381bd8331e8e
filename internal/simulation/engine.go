package simulation

import (
	"fmt"
	"math"

	"transistor_bench/internal/models"
)

// Engine drives one current search over a fixed parameter set. It holds no
// mutable state, so independent runs never interfere.
type Engine struct {
	params Params
}

func New(params Params) *Engine { return &Engine{params: params} }

// Run executes the configured search algorithm, emitting one LiveDataPoint
// per evaluated current into sink, and returns the terminal result.
func (e *Engine) Run(sink Sink) models.SimulationResult {
	if e.params.Algorithm == models.AlgorithmBinary {
		return e.runBinary(sink)
	}
	return e.runIterative(sink)
}

// runIterative sweeps (0, maxCurrent] in precisionSteps equal increments, in
// strictly increasing order, stopping at the first unsafe sample. The answer
// is the last proven-safe sample (0 when the first already fails).
func (e *Engine) runIterative(sink Sink) models.SimulationResult {
	p := e.params
	steps := p.PrecisionSteps

	maxSafe := 0.0
	for i := 1; i <= steps; i++ {
		fraction := float64(i) / float64(steps)
		current := p.MaxCurrent * fraction
		chk := Evaluate(p, current)
		sink.Emit(e.point(current, fraction*100, chk))
		if !chk.IsSafe {
			return e.failedResult(maxSafe, chk)
		}
		maxSafe = current
	}
	return e.safeResult(maxSafe)
}

// runBinary bisects [0, maxCurrent] until the bracket shrinks to
// tolerance = maxCurrent/precisionSteps, so binary and iterative answers
// agree within one iterative step for the same parameters. low is assumed
// safe; probes land strictly inside the bracket, so maxCurrent itself is
// never exceeded. The iteration cap guards termination when floating-point
// midpoints stall.
func (e *Engine) runBinary(sink Sink) models.SimulationResult {
	p := e.params
	tolerance := p.MaxCurrent / float64(p.PrecisionSteps)
	maxIterations := int(math.Ceil(math.Log2(p.MaxCurrent/tolerance))) + 2

	low, high := 0.0, p.MaxCurrent
	var lastUnsafe *Check
	for i := 0; i < maxIterations && high-low > tolerance; i++ {
		mid := (low + high) / 2
		chk := Evaluate(p, mid)
		sink.Emit(e.point(mid, float64(i+1)/float64(maxIterations)*100, chk))
		if chk.IsSafe {
			low = mid
		} else {
			high = mid
			c := chk
			lastUnsafe = &c
		}
	}

	// lastUnsafe is the probe that fixed the final high bound; a nil value
	// means no probe ever failed.
	if lastUnsafe != nil {
		return e.failedResult(low, *lastUnsafe)
	}
	return e.safeResult(low)
}

// point builds the telemetry sample for one evaluated current.
func (e *Engine) point(current, progress float64, chk Check) models.LiveDataPoint {
	usage, limit := e.limitUsage(current, chk)
	return models.LiveDataPoint{
		Current:        current,
		Temperature:    chk.FinalTemperature,
		PowerLoss:      chk.Power.Total,
		ConductionLoss: chk.Power.Conduction,
		SwitchingLoss:  chk.Power.Switching,
		Progress:       clampPercent(progress),
		LimitValue:     limit,
		LimitUsage:     clampPercent(usage),
	}
}

// limitUsage reports how close the sample sits to the active limit, plus the
// limit's value in its own unit. In ftf mode the nearest limit dominates and
// the limit value is the 100% mark itself.
func (e *Engine) limitUsage(current float64, chk Check) (usage, limit float64) {
	p := e.params
	switch p.Mode {
	case models.ModeTemp:
		return chk.FinalTemperature / p.MaxTemperature * 100, p.MaxTemperature
	case models.ModeBudget:
		return chk.Power.Total / p.EffectiveCoolingBudget * 100, p.EffectiveCoolingBudget
	default:
		usage = chk.FinalTemperature / p.MaxTemperature * 100
		if p.MaxPowerDissipation > 0 {
			usage = math.Max(usage, chk.Power.Total/p.MaxPowerDissipation*100)
		}
		usage = math.Max(usage, chk.Power.Total/p.EffectiveCoolingBudget*100)
		usage = math.Max(usage, current/p.MaxCurrent*100)
		return usage, 100
	}
}

func (e *Engine) failedResult(maxSafe float64, chk Check) models.SimulationResult {
	return models.SimulationResult{
		Status:           models.StatusFailed,
		MaxSafeCurrent:   maxSafe,
		FailureReason:    chk.FailureReason,
		Details:          chk.Details,
		FinalTemperature: chk.FinalTemperature,
		PowerDissipation: chk.Power,
	}
}

func (e *Engine) safeResult(maxSafe float64) models.SimulationResult {
	chk := Evaluate(e.params, maxSafe)
	return models.SimulationResult{
		Status:           models.StatusSafe,
		MaxSafeCurrent:   maxSafe,
		Details:          fmt.Sprintf("Device operates safely up to %.2fA within all limits.", maxSafe),
		FinalTemperature: chk.FinalTemperature,
		PowerDissipation: chk.Power,
	}
}

func clampPercent(v float64) float64 {
	if v > 100 {
		return 100
	}
	if v < 0 {
		return 0
	}
	return v
}
