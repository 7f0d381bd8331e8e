package service

import (
	"context"
	"fmt"
	"sort"

	"transistor_bench/internal/models"
	"transistor_bench/internal/repository"
	"transistor_bench/internal/simulation"
)

// frequencyBackoff is the fractional cut applied to switching frequency when
// a power limit trips. Switching loss is linear in frequency, so a 25% cut
// buys 25% switching-loss headroom per follow-up run.
const frequencyBackoff = 0.75

// AdvisorService maps a completed result to adjusted parameters for an
// independent follow-up run. The engine never depends on this layer; it only
// ever receives ordinary parameters.
type AdvisorService struct {
	coolingRepo repository.CoolingRepo
}

func NewAdvisorService(coolingRepo repository.CoolingRepo) *AdvisorService {
	return &AdvisorService{coolingRepo: coolingRepo}
}

func (s *AdvisorService) Advise(ctx context.Context, req AdviceRequest) (Advice, error) {
	switch req.Result.FailureReason {
	case "":
		return Advice{
			Suggestion: fmt.Sprintf("Device is safe up to %.2fA; no adjustment needed.", req.Result.MaxSafeCurrent),
		}, nil
	case simulation.ReasonTemperature:
		return s.adviseCooling(ctx, req)
	case simulation.ReasonBudget, simulation.ReasonDeviceDissipation:
		adjusted := reduceFrequency(req.Input)
		return Advice{
			Suggestion: fmt.Sprintf(
				"A power limit is binding; reduce switching frequency from %g to %g kHz to cut switching loss.",
				req.Input.SwitchingFreqKHz, adjusted.SwitchingFreqKHz),
			Adjusted: &adjusted,
		}, nil
	case simulation.ReasonCurrentRating:
		return Advice{
			Suggestion: "The device current rating is the binding limit; a higher-rated part is required.",
		}, nil
	default:
		return Advice{
			Suggestion: "No adjustment rule for failure reason " + req.Result.FailureReason + ".",
		}, nil
	}
}

// adviseCooling proposes the nearest catalog upgrade over the current
// profile, falling back to a frequency cut when already on the best one.
func (s *AdvisorService) adviseCooling(ctx context.Context, req AdviceRequest) (Advice, error) {
	profiles, err := s.coolingRepo.List(ctx)
	if err != nil {
		return Advice{}, err
	}
	current, err := s.coolingRepo.Get(ctx, req.Input.CoolingProfileID)
	if err != nil {
		return Advice{}, err
	}

	// Weakest first, so the first profile beating the current one is the
	// smallest sufficient upgrade.
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].ThermalResistance > profiles[j].ThermalResistance
	})
	for _, p := range profiles {
		if p.ThermalResistance < current.ThermalResistance {
			adjusted := req.Input
			adjusted.CoolingProfileID = p.ID
			return Advice{
				Suggestion: fmt.Sprintf(
					"Junction temperature is the binding limit; switch cooling from %q to %q (%.2f → %.2f °C/W).",
					current.Name, p.Name, current.ThermalResistance, p.ThermalResistance),
				Adjusted: &adjusted,
			}, nil
		}
	}

	adjusted := reduceFrequency(req.Input)
	return Advice{
		Suggestion: fmt.Sprintf(
			"Junction temperature is the binding limit and %q is already the best cooling profile; reduce switching frequency to %g kHz.",
			current.Name, adjusted.SwitchingFreqKHz),
		Adjusted: &adjusted,
	}, nil
}

func reduceFrequency(in models.SimulationInput) models.SimulationInput {
	in.SwitchingFreqKHz *= frequencyBackoff
	return in
}
