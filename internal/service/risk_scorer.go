package service

import "flowsense/internal/domain"

// Umbrales de clasificacion: cortes exactos con limite inferior inclusivo.
const (
	highRiskThreshold     = 0.70
	moderateRiskThreshold = 0.50
	lowRiskThreshold      = 0.30
)

// RiskScorer agrega una bolsa de factores nombrados en un puntaje unico
// usando pesos por condicion, y lo clasifica en un nivel de riesgo.
type RiskScorer struct{}

// Score calcula el promedio ponderado Σ(factor·peso) / Σ(peso) sobre los
// factores presentes. Un factor sin peso declarado pondera 1.0. Bolsa
// vacia devuelve 0.
func (RiskScorer) Score(factors []domain.RiskFactor, weights map[string]float64) float64 {
	if len(factors) == 0 {
		return 0
	}
	var weightedSum, totalWeight float64
	for _, f := range factors {
		weight, ok := weights[f.Name]
		if !ok {
			weight = 1.0
		}
		weightedSum += f.Value * weight
		totalWeight += weight
	}
	if totalWeight == 0 {
		return 0
	}
	score := weightedSum / totalWeight
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// Classify mapea el puntaje continuo al nivel ordenado. Los valores de
// borde clasifican de forma deterministica segun la tabla fija:
// >=0.70 high, >=0.50 moderate, >=0.30 low, resto minimal.
func (RiskScorer) Classify(score float64) domain.RiskLevel {
	switch {
	case score >= highRiskThreshold:
		return domain.RiskHigh
	case score >= moderateRiskThreshold:
		return domain.RiskModerate
	case score >= lowRiskThreshold:
		return domain.RiskLow
	default:
		return domain.RiskMinimal
	}
}
