package simulation

import (
	"errors"
	"testing"

	"transistor_bench/internal/models"
)

func testInput() models.SimulationInput {
	return models.SimulationInput{
		TransistorType:      "MOSFET (N-Channel)",
		MaxCurrentA:         49,
		MaxVoltageV:         55,
		RdsOnMilliOhm:       17.5,
		RiseTimeNs:          60,
		FallTimeNs:          45,
		SwitchingFreqKHz:    100,
		RthJC:               1.0,
		MaxTemperatureC:     150,
		AmbientTemperatureC: 25,
		CoolingProfileID:    "forced-air",
		Mode:                models.ModeFTF,
		Algorithm:           models.AlgorithmIterative,
		PrecisionSteps:      200,
	}
}

func testProfile() models.CoolingProfile {
	return models.CoolingProfile{
		ID:                "forced-air",
		Name:              "Forced-air heatsink",
		ThermalResistance: 1.5,
		CoolingBudget:     120,
	}
}

func TestNormalize_ConvertsUnitsAndChainsRth(t *testing.T) {
	p, err := Normalize(testInput(), testProfile())
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if p.RdsOn != 0.0175 {
		t.Fatalf("RdsOn = %v Ω, want 0.0175", p.RdsOn)
	}
	if p.RiseTime != 60e-9 || p.FallTime != 45e-9 {
		t.Fatalf("edge times = %v/%v s", p.RiseTime, p.FallTime)
	}
	if p.SwitchingFrequency != 100e3 {
		t.Fatalf("frequency = %v Hz, want 1e5", p.SwitchingFrequency)
	}
	if p.TotalRth != 2.5 {
		t.Fatalf("TotalRth = %v, want RthJC+profile = 2.5", p.TotalRth)
	}
	if p.Variant != VariantResistive {
		t.Fatalf("variant = %v, want resistive", p.Variant)
	}
}

func TestNormalize_EffectiveBudgetIsTheTighterBound(t *testing.T) {
	in := testInput()
	profile := testProfile()

	p, _ := Normalize(in, profile)
	if p.EffectiveCoolingBudget != profile.CoolingBudget {
		t.Fatalf("no requested budget: got %v, want profile budget %v",
			p.EffectiveCoolingBudget, profile.CoolingBudget)
	}

	in.CoolingBudgetW = 50
	p, _ = Normalize(in, profile)
	if p.EffectiveCoolingBudget != 50 {
		t.Fatalf("tighter request: got %v, want 50", p.EffectiveCoolingBudget)
	}

	in.CoolingBudgetW = 500 // looser than the profile can deliver
	p, _ = Normalize(in, profile)
	if p.EffectiveCoolingBudget != profile.CoolingBudget {
		t.Fatalf("looser request: got %v, want profile budget %v",
			p.EffectiveCoolingBudget, profile.CoolingBudget)
	}
}

func TestNormalize_RejectsInvalidConfigurations(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.SimulationInput)
		want   error
	}{
		{"non-positive maxCurrent", func(in *models.SimulationInput) { in.MaxCurrentA = 0 }, ErrInvalidMaxCurrent},
		{"non-positive maxVoltage", func(in *models.SimulationInput) { in.MaxVoltageV = -1 }, ErrInvalidMaxVoltage},
		{"precision below range", func(in *models.SimulationInput) { in.PrecisionSteps = 9 }, ErrInvalidPrecision},
		{"precision above range", func(in *models.SimulationInput) { in.PrecisionSteps = 501 }, ErrInvalidPrecision},
		{"unknown mode", func(in *models.SimulationInput) { in.Mode = "thermal" }, ErrInvalidMode},
		{"unknown algorithm", func(in *models.SimulationInput) { in.Algorithm = "newton" }, ErrInvalidAlgorithm},
		{"resistive variant without RdsOn", func(in *models.SimulationInput) { in.RdsOnMilliOhm = 0 }, ErrMissingCoefficient},
		{"saturation variant without VceSat", func(in *models.SimulationInput) {
			in.TransistorType = "IGBT"
			in.VceSatV = 0
		}, ErrMissingCoefficient},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := testInput()
			tc.mutate(&in)
			_, err := Normalize(in, testProfile())
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestNormalize_RejectsNonPositiveTotalRth(t *testing.T) {
	in := testInput()
	in.RthJC = 0
	profile := testProfile()
	profile.ThermalResistance = 0
	_, err := Normalize(in, profile)
	if !errors.Is(err, ErrInvalidTotalRth) {
		t.Fatalf("got %v, want %v", err, ErrInvalidTotalRth)
	}
}

func TestNormalize_RejectsMissingBudgetOutsideTempMode(t *testing.T) {
	in := testInput()
	in.Mode = models.ModeBudget
	profile := testProfile()
	profile.CoolingBudget = 0
	_, err := Normalize(in, profile)
	if !errors.Is(err, ErrInvalidCoolingBudget) {
		t.Fatalf("got %v, want %v", err, ErrInvalidCoolingBudget)
	}
}

func TestVariantForTransistorType(t *testing.T) {
	cases := map[string]ConductionVariant{
		"MOSFET (N-Channel)": VariantResistive,
		"MOSFET (P-Channel)": VariantResistive,
		"GaN FET":            VariantResistive,
		"BJT (NPN)":          VariantSaturation,
		"BJT (PNP)":          VariantSaturation,
		"IGBT":               VariantSaturation,
		"something else":     VariantResistive,
	}
	for label, want := range cases {
		if got := VariantForTransistorType(label); got != want {
			t.Fatalf("%q → %v, want %v", label, got, want)
		}
	}
}
