package service

import (
	"time"

	"flowsense/internal/domain"
)

// Nombres canonicos de factores de riesgo. El struct tipado por condicion
// se aplana a estos nombres en orden de declaracion.
const (
	factorIrregularCycles = "irregular_cycles"
	factorLongCycles      = "long_cycles"
	factorShortCycles     = "short_cycles"
	factorLightFlow       = "light_flow"
	factorHeavyFlow       = "heavy_flow"
	factorPainProgression = "pain_progression"
	factorHighPain        = "high_pain"
	factorSymptomCluster  = "symptom_cluster"
	factorElevatedBMI     = "elevated_bmi"
	factorFamilyHistory   = "family_history"
)

// minCyclesForLengthFactors: debajo de este minimo los factores basados en
// duracion se omiten (no se ponen en cero), lo que baja la confianza en vez
// de inflar o desinflar el puntaje.
const minCyclesForLengthFactors = 6

// Umbrales de patron de duracion/flujo compartidos por los assessors.
const (
	irregularityThresholdDays = 8.0
	irregularityScaleDays     = 14.0
	longCycleMeanThreshold    = 35.0
	shortCycleMeanThreshold   = 24.0
	lengthDeviationScaleDays  = 14.0
	lightFlowFractionMin      = 0.4
	heavyFlowFractionMin      = 0.3
	highPainMeanThreshold     = 6.0
	painProgressionScale      = 5.0
)

// conditionDef define la tabla estatica de una condicion: marcadores en
// orden fijo, pesos de factores y el factor fijo por antecedente familiar.
type conditionDef struct {
	Tag          domain.ConditionTag
	Name         string
	Markers      []domain.Symptom
	Weights      map[string]float64
	FamilyFactor float64
}

var hormonalImbalanceDef = conditionDef{
	Tag:  domain.ConditionHormonalImbalance,
	Name: "Hormonal imbalance pattern",
	Markers: []domain.Symptom{
		domain.SymptomAcne,
		domain.SymptomExcessHair,
		domain.SymptomWeightChange,
		domain.SymptomMoodSwings,
		domain.SymptomFatigue,
	},
	Weights: map[string]float64{
		factorIrregularCycles: 1.5,
		factorLongCycles:      1.2,
		factorSymptomCluster:  1.3,
		factorElevatedBMI:     1.0,
		factorFamilyHistory:   1.2,
	},
	FamilyFactor: 0.5,
}

var thyroidPatternDef = conditionDef{
	Tag:  domain.ConditionThyroidPattern,
	Name: "Thyroid-pattern indicators",
	Markers: []domain.Symptom{
		domain.SymptomFatigue,
		domain.SymptomWeightChange,
		domain.SymptomHairLoss,
		domain.SymptomColdIntolerance,
		domain.SymptomDrySkin,
		domain.SymptomMoodSwings,
	},
	Weights: map[string]float64{
		factorIrregularCycles: 1.3,
		factorShortCycles:     1.1,
		factorLongCycles:      1.1,
		factorLightFlow:       1.0,
		factorSymptomCluster:  1.4,
		factorFamilyHistory:   1.3,
	},
	FamilyFactor: 0.6,
}

var painBleedingDef = conditionDef{
	Tag:  domain.ConditionPainBleeding,
	Name: "Pain and bleeding pattern",
	Markers: []domain.Symptom{
		domain.SymptomSevereCramps,
		domain.SymptomPelvicPain,
		domain.SymptomPainDuringSex,
		domain.SymptomHeavyBleeding,
		domain.SymptomBloating,
		domain.SymptomFatigue,
	},
	Weights: map[string]float64{
		factorHeavyFlow:       1.3,
		factorPainProgression: 1.4,
		factorHighPain:        1.2,
		factorSymptomCluster:  1.2,
		factorFamilyHistory:   1.0,
	},
	FamilyFactor: 0.4,
}

// Cadencia de seguimiento por nivel de riesgo.
var followUpCadence = map[domain.RiskLevel]time.Duration{
	domain.RiskMinimal:  365 * 24 * time.Hour,
	domain.RiskLow:      180 * 24 * time.Hour,
	domain.RiskModerate: 90 * 24 * time.Hour,
	domain.RiskHigh:     30 * 24 * time.Hour,
	domain.RiskCritical: 30 * 24 * time.Hour,
}

// nextAssessmentDate aplica la cadencia de seguimiento al instante dado.
func nextAssessmentDate(now time.Time, level domain.RiskLevel) time.Time {
	cadence, ok := followUpCadence[level]
	if !ok {
		cadence = followUpCadence[domain.RiskMinimal]
	}
	return now.Add(cadence)
}

// Recomendaciones base por condicion; la segunda lista se agrega cuando el
// nivel alcanza moderate o mas.
var conditionRecommendations = map[domain.ConditionTag]struct {
	Base     []string
	Elevated []string
}{
	domain.ConditionHormonalImbalance: {
		Base: []string{
			"Keep tracking cycle start dates and symptoms consistently",
			"Maintain regular physical activity and a balanced diet",
		},
		Elevated: []string{
			"Discuss cycle irregularity and hormonal symptoms with a gynecologist",
			"Ask your doctor about hormone panel testing",
		},
	},
	domain.ConditionThyroidPattern: {
		Base: []string{
			"Track energy levels and cold sensitivity alongside your cycles",
		},
		Elevated: []string{
			"Discuss thyroid function testing (TSH, T3, T4) with your doctor",
			"Review recent weight and energy changes with a clinician",
		},
	},
	domain.ConditionPainBleeding: {
		Base: []string{
			"Log pain scores every cycle to build a reliable baseline",
		},
		Elevated: []string{
			"Discuss severe cramping and bleeding patterns with a gynecologist",
			"Ask about evaluation for endometriosis or fibroids",
		},
	},
}

// recommendationsFor arma la lista ordenada de recomendaciones de una
// condicion segun su nivel.
func recommendationsFor(tag domain.ConditionTag, level domain.RiskLevel) []string {
	entry, ok := conditionRecommendations[tag]
	if !ok {
		return nil
	}
	recs := make([]string, 0, len(entry.Base)+len(entry.Elevated))
	recs = append(recs, entry.Base...)
	if level >= domain.RiskModerate {
		recs = append(recs, entry.Elevated...)
	}
	return recs
}
