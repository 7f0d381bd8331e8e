package simulation

import (
	"errors"
	"strings"

	"transistor_bench/internal/models"
)

// ConductionVariant selects which conduction formula and coefficient apply.
// It is a tagged dispatch: exactly one of RdsOn / VceSat is authoritative.
type ConductionVariant int

const (
	VariantResistive  ConductionVariant = iota // P = I²·Rds(on)
	VariantSaturation                          // P = I·Vce(sat)
)

// Conversion factors between form-input units and the SI values the engine
// computes with.
const (
	nsToSeconds   = 1e-9
	kHzToHz       = 1e3
	milliohmToOhm = 1e-3
)

func NanosecondsToSeconds(ns float64) float64 { return ns * nsToSeconds }
func SecondsToNanoseconds(s float64) float64  { return s / nsToSeconds }
func KilohertzToHertz(khz float64) float64    { return khz * kHzToHz }
func HertzToKilohertz(hz float64) float64     { return hz / kHzToHz }
func MilliohmsToOhms(mohm float64) float64    { return mohm * milliohmToOhm }
func OhmsToMilliohms(ohm float64) float64     { return ohm / milliohmToOhm }

// Configuration errors, rejected before a run starts. Distinct from a
// computed "failed" result, which is a valid analysis outcome.
var (
	ErrInvalidMaxCurrent    = errors.New("maxCurrent must be > 0")
	ErrInvalidMaxVoltage    = errors.New("maxVoltage must be > 0")
	ErrInvalidTotalRth      = errors.New("total thermal resistance must be > 0")
	ErrInvalidPrecision     = errors.New("precisionSteps must be within [10, 500]")
	ErrMissingCoefficient   = errors.New("conduction coefficient missing for the selected transistor type")
	ErrInvalidMode          = errors.New("simulationMode must be one of temp, budget, ftf")
	ErrInvalidAlgorithm     = errors.New("algorithm must be iterative or binary")
	ErrInvalidCoolingBudget = errors.New("effective cooling budget must be > 0")
)

const (
	minPrecisionSteps = 10
	maxPrecisionSteps = 500
)

// Params is the fully resolved, SI-unit parameter set for one run.
// Immutable once built; every run gets its own value.
type Params struct {
	Variant ConductionVariant

	MaxCurrent          float64 // A, device rating and intrinsic upper search bound
	MaxVoltage          float64 // V
	MaxPowerDissipation float64 // W; 0 means the device rating is unknown
	RdsOn               float64 // Ω
	VceSat              float64 // V
	RiseTime            float64 // s
	FallTime            float64 // s
	SwitchingFrequency  float64 // Hz
	RthJC               float64 // °C/W
	CoolingRth          float64 // °C/W case-to-ambient, from the cooling profile
	TotalRth            float64 // °C/W, RthJC + CoolingRth
	MaxTemperature      float64 // °C
	AmbientTemperature  float64 // °C

	Mode                   models.SimulationMode
	EffectiveCoolingBudget float64 // W
	Algorithm              models.Algorithm
	PrecisionSteps         int
}

// VariantForTransistorType maps a datasheet type label to the conduction
// variant. Channel devices (MOSFET, GaN) dissipate through Rds(on); junction
// devices (BJT, IGBT) through the saturation drop. Unknown labels default to
// resistive.
func VariantForTransistorType(t string) ConductionVariant {
	switch {
	case strings.Contains(t, "MOSFET"), strings.Contains(t, "GaN"):
		return VariantResistive
	case strings.Contains(t, "NPN"), strings.Contains(t, "PNP"), strings.Contains(t, "IGBT"):
		return VariantSaturation
	default:
		return VariantResistive
	}
}

// Normalize resolves raw form inputs plus the selected cooling profile into a
// validated Params. The effective cooling budget is the tighter of the
// requested budget and what the profile can remove.
func Normalize(in models.SimulationInput, profile models.CoolingProfile) (Params, error) {
	p := Params{
		Variant:             VariantForTransistorType(in.TransistorType),
		MaxCurrent:          in.MaxCurrentA,
		MaxVoltage:          in.MaxVoltageV,
		MaxPowerDissipation: in.MaxPowerDissipationW,
		RdsOn:               MilliohmsToOhms(in.RdsOnMilliOhm),
		VceSat:              in.VceSatV,
		RiseTime:            NanosecondsToSeconds(in.RiseTimeNs),
		FallTime:            NanosecondsToSeconds(in.FallTimeNs),
		SwitchingFrequency:  KilohertzToHertz(in.SwitchingFreqKHz),
		RthJC:               in.RthJC,
		CoolingRth:          profile.ThermalResistance,
		TotalRth:            in.RthJC + profile.ThermalResistance,
		MaxTemperature:      in.MaxTemperatureC,
		AmbientTemperature:  in.AmbientTemperatureC,
		Mode:                in.Mode,
		Algorithm:           in.Algorithm,
		PrecisionSteps:      in.PrecisionSteps,
	}

	p.EffectiveCoolingBudget = profile.CoolingBudget
	if in.CoolingBudgetW > 0 && in.CoolingBudgetW < profile.CoolingBudget {
		p.EffectiveCoolingBudget = in.CoolingBudgetW
	}

	if err := p.validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

func (p Params) validate() error {
	if p.MaxCurrent <= 0 {
		return ErrInvalidMaxCurrent
	}
	if p.MaxVoltage <= 0 {
		return ErrInvalidMaxVoltage
	}
	if p.TotalRth <= 0 {
		return ErrInvalidTotalRth
	}
	if p.PrecisionSteps < minPrecisionSteps || p.PrecisionSteps > maxPrecisionSteps {
		return ErrInvalidPrecision
	}
	switch p.Mode {
	case models.ModeTemp, models.ModeBudget, models.ModeFTF:
	default:
		return ErrInvalidMode
	}
	switch p.Algorithm {
	case models.AlgorithmIterative, models.AlgorithmBinary:
	default:
		return ErrInvalidAlgorithm
	}
	if p.Variant == VariantResistive && p.RdsOn <= 0 {
		return ErrMissingCoefficient
	}
	if p.Variant == VariantSaturation && p.VceSat <= 0 {
		return ErrMissingCoefficient
	}
	// Budget checks only bind outside pure temperature mode.
	if p.Mode != models.ModeTemp && p.EffectiveCoolingBudget <= 0 {
		return ErrInvalidCoolingBudget
	}
	return nil
}
