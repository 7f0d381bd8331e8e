package service

import (
	"context"
	"math"
	"testing"

	"transistor_bench/internal/models"
	"transistor_bench/internal/simulation"
)

func TestAdvise_SafeResultNeedsNoAdjustment(t *testing.T) {
	svc := NewAdvisorService(stubCatalog())

	advice, err := svc.Advise(context.Background(), AdviceRequest{
		Input:  analyzerInput(),
		Result: models.SimulationResult{Status: models.StatusSafe, MaxSafeCurrent: 49},
	})
	if err != nil {
		t.Fatalf("Advise() error = %v", err)
	}
	if advice.Adjusted != nil {
		t.Fatalf("safe result must not produce adjusted parameters, got %+v", advice.Adjusted)
	}
}

func TestAdvise_TemperatureSuggestsCoolingUpgrade(t *testing.T) {
	svc := NewAdvisorService(stubCatalog())

	in := analyzerInput()
	in.CoolingProfileID = "bare-case"
	advice, err := svc.Advise(context.Background(), AdviceRequest{
		Input:  in,
		Result: models.SimulationResult{Status: models.StatusFailed, FailureReason: simulation.ReasonTemperature},
	})
	if err != nil {
		t.Fatalf("Advise() error = %v", err)
	}
	if advice.Adjusted == nil {
		t.Fatalf("expected adjusted parameters")
	}
	if advice.Adjusted.CoolingProfileID != "forced-air" {
		t.Fatalf("got profile %q, want the next stronger one %q", advice.Adjusted.CoolingProfileID, "forced-air")
	}
	if advice.Adjusted.SwitchingFreqKHz != in.SwitchingFreqKHz {
		t.Fatalf("a cooling upgrade must not touch switching frequency")
	}
}

func TestAdvise_TemperatureOnBestProfileFallsBackToFrequency(t *testing.T) {
	svc := NewAdvisorService(stubCatalog())

	in := analyzerInput() // already on forced-air, the strongest stub profile
	advice, err := svc.Advise(context.Background(), AdviceRequest{
		Input:  in,
		Result: models.SimulationResult{Status: models.StatusFailed, FailureReason: simulation.ReasonTemperature},
	})
	if err != nil {
		t.Fatalf("Advise() error = %v", err)
	}
	if advice.Adjusted == nil {
		t.Fatalf("expected adjusted parameters")
	}
	want := in.SwitchingFreqKHz * frequencyBackoff
	if math.Abs(advice.Adjusted.SwitchingFreqKHz-want) > 1e-12 {
		t.Fatalf("got %g kHz, want %g kHz", advice.Adjusted.SwitchingFreqKHz, want)
	}
}

func TestAdvise_BudgetCutsFrequency(t *testing.T) {
	svc := NewAdvisorService(stubCatalog())

	in := analyzerInput()
	for _, reason := range []string{simulation.ReasonBudget, simulation.ReasonDeviceDissipation} {
		advice, err := svc.Advise(context.Background(), AdviceRequest{
			Input:  in,
			Result: models.SimulationResult{Status: models.StatusFailed, FailureReason: reason},
		})
		if err != nil {
			t.Fatalf("Advise(%s) error = %v", reason, err)
		}
		if advice.Adjusted == nil {
			t.Fatalf("Advise(%s): expected adjusted parameters", reason)
		}
		want := in.SwitchingFreqKHz * frequencyBackoff
		if math.Abs(advice.Adjusted.SwitchingFreqKHz-want) > 1e-12 {
			t.Fatalf("Advise(%s): got %g kHz, want %g kHz", reason, advice.Adjusted.SwitchingFreqKHz, want)
		}
	}
}

func TestAdvise_CurrentRatingHasNoParameterFix(t *testing.T) {
	svc := NewAdvisorService(stubCatalog())

	advice, err := svc.Advise(context.Background(), AdviceRequest{
		Input:  analyzerInput(),
		Result: models.SimulationResult{Status: models.StatusFailed, FailureReason: simulation.ReasonCurrentRating},
	})
	if err != nil {
		t.Fatalf("Advise() error = %v", err)
	}
	if advice.Adjusted != nil {
		t.Fatalf("rating failures cannot be fixed by parameter tweaks, got %+v", advice.Adjusted)
	}
}
