package simulation

// The loss model is pure: every function here is a deterministic function of
// the parameter set and the candidate current. Both loss terms are
// non-decreasing in current, which binary search relies on.

// ConductionLoss is the steady-state on-state dissipation:
// I²·Rds(on) for channel devices, I·Vce(sat) for junction devices.
func (p Params) ConductionLoss(current float64) float64 {
	if p.Variant == VariantSaturation {
		return current * p.VceSat
	}
	return current * current * p.RdsOn
}

// SwitchingLoss is the transition dissipation:
// ½ · V · I · (tr + tf) · fsw, all SI units.
func (p Params) SwitchingLoss(current float64) float64 {
	return 0.5 * p.MaxVoltage * current * (p.RiseTime + p.FallTime) * p.SwitchingFrequency
}

// TotalLoss is conduction plus switching loss.
func (p Params) TotalLoss(current float64) float64 {
	return p.ConductionLoss(current) + p.SwitchingLoss(current)
}

// JunctionTemperature is ambient plus the temperature rise across the full
// thermal chain.
func (p Params) JunctionTemperature(current float64) float64 {
	return p.AmbientTemperature + p.TotalLoss(current)*p.TotalRth
}
