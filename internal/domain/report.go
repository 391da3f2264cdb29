package domain

import "time"

// FollowUpEntry es una entrada del calendario de seguimiento. Se usa una
// lista ordenada y no un map para que el reporte serialice igual en cada
// corrida con los mismos insumos.
type FollowUpEntry struct {
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

// WellbeingTrend describe la deriva de animo y energia a lo largo del
// historial (pendiente por ciclo). Las pendientes quedan en nil cuando no
// hay suficientes puntajes registrados para derivar una tendencia.
type WellbeingTrend struct {
	MoodSlope   *float64 `json:"mood_slope,omitempty"`
	EnergySlope *float64 `json:"energy_slope,omitempty"`
}

// HealthScreeningReport es el reporte consolidado de un screening. Es un
// valor puro: valido independientemente de si llega a persistirse.
type HealthScreeningReport struct {
	ID               string                  `json:"id"`
	UserID           string                  `json:"user_id"`
	GeneratedAt      time.Time               `json:"generated_at"`
	CycleCount       int                     `json:"cycle_count"`
	Conditions       []ConditionAssessment   `json:"conditions"`
	Fertility        FertilityAssessment     `json:"fertility"`
	HormonalShift    HormonalShiftAssessment `json:"hormonal_shift"`
	Wellbeing        WellbeingTrend          `json:"wellbeing"`
	OverallRiskLevel RiskLevel               `json:"overall_risk_level"`
	Recommendations  []string                `json:"recommendations"`
	FollowUpSchedule []FollowUpEntry         `json:"follow_up_schedule"`
}
