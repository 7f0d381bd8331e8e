package simulation

import (
	"fmt"

	"transistor_bench/internal/models"
)

// Failure reason tags carried on unsafe checks and failed results.
const (
	ReasonTemperature       = "temperature-limit-exceeded"
	ReasonDeviceDissipation = "device-dissipation-exceeded"
	ReasonBudget            = "power-budget-exceeded"
	ReasonCurrentRating     = "current-rating-exceeded"
)

const detailsSafe = "Operating within safe limits."

// Check is the verdict for a single candidate current.
type Check struct {
	IsSafe           bool
	FailureReason    string // empty when safe
	Details          string
	FinalTemperature float64
	Power            models.PowerDissipation
}

// Evaluate applies the active mode's limit checks to one candidate current.
// Pure function of its inputs; no side effects.
func Evaluate(p Params, current float64) Check {
	power := models.PowerDissipation{
		Conduction: p.ConductionLoss(current),
		Switching:  p.SwitchingLoss(current),
	}
	power.Total = power.Conduction + power.Switching
	temp := p.AmbientTemperature + power.Total*p.TotalRth

	reason, details := p.failure(current, temp, power.Total)
	return Check{
		IsSafe:           reason == "",
		FailureReason:    reason,
		Details:          details,
		FinalTemperature: temp,
		Power:            power,
	}
}

// failure checks the limits that apply in the active mode. In ftf mode the
// limits are checked in fixed priority order — temperature, device
// dissipation (when rated), cooling budget, current rating — and the first
// tripped limit wins when several trip at the same current.
func (p Params) failure(current, temp, totalLoss float64) (string, string) {
	overTemp := temp > p.MaxTemperature
	overDevice := p.MaxPowerDissipation > 0 && totalLoss > p.MaxPowerDissipation
	overBudget := totalLoss > p.EffectiveCoolingBudget
	overRating := current > p.MaxCurrent

	switch p.Mode {
	case models.ModeTemp:
		overDevice, overBudget, overRating = false, false, false
	case models.ModeBudget:
		overTemp, overDevice, overRating = false, false, false
	}

	switch {
	case overTemp:
		return ReasonTemperature,
			fmt.Sprintf("Exceeded max junction temp of %g°C. Reached %.2f°C.", p.MaxTemperature, temp)
	case overDevice:
		return ReasonDeviceDissipation,
			fmt.Sprintf("Exceeded device power dissipation rating of %gW. Reached %.2fW.", p.MaxPowerDissipation, totalLoss)
	case overBudget:
		return ReasonBudget,
			fmt.Sprintf("Exceeded cooling budget of %gW. Reached %.2fW.", p.EffectiveCoolingBudget, totalLoss)
	case overRating:
		return ReasonCurrentRating,
			fmt.Sprintf("Exceeded max current rating of %.2fA.", p.MaxCurrent)
	default:
		return "", detailsSafe
	}
}
