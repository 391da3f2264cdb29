package domain

// FertilityAssessment es el puntaje de calidad fertil y su plan de
// optimizacion. Los componentes no computables quedan en nil y se
// excluyen del promedio general (degradacion explicita, no ceros).
type FertilityAssessment struct {
	OvulationRate    float64  `json:"ovulation_rate"`
	AvgLutealLength  *float64 `json:"avg_luteal_length,omitempty"`
	QualityScore     *float64 `json:"quality_score,omitempty"`
	AgeFactor        *float64 `json:"age_factor,omitempty"`
	LifestyleFactor  *float64 `json:"lifestyle_factor,omitempty"`
	OverallScore     float64  `json:"overall_score"`
	OptimizationPlan []string `json:"optimization_plan"`
	Confidence       float64  `json:"confidence"`
}
