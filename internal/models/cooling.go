package models

// CoolingProfile is one entry of the read-only cooling solution catalog.
type CoolingProfile struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	ThermalResistance float64 `json:"thermalResistance"` // °C/W case-to-ambient
	CoolingBudget     float64 `json:"coolingBudget"`     // W the solution can remove steady-state
}
