package service

import (
	"math"
	"time"

	"flowsense/internal/domain"
)

// ConditionAssessor combina el analizador estadistico, el detector de
// clusters de sintomas y el scorer de riesgo. Las tres condiciones
// comparten la misma plantilla; cambian los marcadores, pesos y factores
// especificos de patron.
type ConditionAssessor struct {
	stats    StatsAnalyzer
	clusters SymptomClusterDetector
	scorer   RiskScorer
}

func NewConditionAssessor() *ConditionAssessor {
	return &ConditionAssessor{}
}

// Bolsas de factores tipadas por condicion: un campo por factor conocido,
// nil cuando el factor fue omitido por falta de datos. El aplanado
// preserva el orden de declaracion.

type hormonalRiskFactors struct {
	IrregularCycles *float64
	LongCycles      *float64
	SymptomCluster  *float64
	ElevatedBMI     *float64
	FamilyHistory   *float64
}

func (f hormonalRiskFactors) flatten() []domain.RiskFactor {
	var out []domain.RiskFactor
	out = appendFactor(out, factorIrregularCycles, f.IrregularCycles)
	out = appendFactor(out, factorLongCycles, f.LongCycles)
	out = appendFactor(out, factorSymptomCluster, f.SymptomCluster)
	out = appendFactor(out, factorElevatedBMI, f.ElevatedBMI)
	out = appendFactor(out, factorFamilyHistory, f.FamilyHistory)
	return out
}

type thyroidRiskFactors struct {
	IrregularCycles *float64
	ShortCycles     *float64
	LongCycles      *float64
	LightFlow       *float64
	SymptomCluster  *float64
	FamilyHistory   *float64
}

func (f thyroidRiskFactors) flatten() []domain.RiskFactor {
	var out []domain.RiskFactor
	out = appendFactor(out, factorIrregularCycles, f.IrregularCycles)
	out = appendFactor(out, factorShortCycles, f.ShortCycles)
	out = appendFactor(out, factorLongCycles, f.LongCycles)
	out = appendFactor(out, factorLightFlow, f.LightFlow)
	out = appendFactor(out, factorSymptomCluster, f.SymptomCluster)
	out = appendFactor(out, factorFamilyHistory, f.FamilyHistory)
	return out
}

type painBleedingRiskFactors struct {
	HeavyFlow       *float64
	PainProgression *float64
	HighPain        *float64
	SymptomCluster  *float64
	FamilyHistory   *float64
}

func (f painBleedingRiskFactors) flatten() []domain.RiskFactor {
	var out []domain.RiskFactor
	out = appendFactor(out, factorHeavyFlow, f.HeavyFlow)
	out = appendFactor(out, factorPainProgression, f.PainProgression)
	out = appendFactor(out, factorHighPain, f.HighPain)
	out = appendFactor(out, factorSymptomCluster, f.SymptomCluster)
	out = appendFactor(out, factorFamilyHistory, f.FamilyHistory)
	return out
}

func appendFactor(list []domain.RiskFactor, name string, value *float64) []domain.RiskFactor {
	if value == nil {
		return list
	}
	return append(list, domain.RiskFactor{Name: name, Value: *value})
}

func factorOf(v float64) *float64 {
	return &v
}

// AssessHormonal evalua el patron de ciclo irregular / desbalance hormonal.
func (a *ConditionAssessor) AssessHormonal(cycles []domain.CycleRecord, profile domain.HealthProfile, now time.Time) domain.ConditionAssessment {
	def := hormonalImbalanceDef
	lengths := CycleLengths(cycles)
	cluster := a.clusters.Detect(cycles, def.Markers)

	var factors hormonalRiskFactors
	if len(lengths) >= minCyclesForLengthFactors {
		factors.IrregularCycles = a.irregularityFactor(lengths)
		factors.LongCycles = a.longCycleFactor(lengths)
	}
	if cluster.HasSignal() {
		factors.SymptomCluster = factorOf(cluster.Score)
	}
	factors.ElevatedBMI = bmiFactor(profile)
	factors.FamilyHistory = familyFactor(profile, def)

	return a.finalize(def, factors.flatten(), cluster, len(cycles), now)
}

// AssessThyroid evalua indicadores de patron tiroideo: extremos de
// duracion en ambas direcciones y flujo anormalmente ligero.
func (a *ConditionAssessor) AssessThyroid(cycles []domain.CycleRecord, profile domain.HealthProfile, now time.Time) domain.ConditionAssessment {
	def := thyroidPatternDef
	lengths := CycleLengths(cycles)
	cluster := a.clusters.Detect(cycles, def.Markers)

	var factors thyroidRiskFactors
	if len(lengths) >= minCyclesForLengthFactors {
		factors.IrregularCycles = a.irregularityFactor(lengths)
		factors.ShortCycles = a.shortCycleFactor(lengths)
		factors.LongCycles = a.longCycleFactor(lengths)
	}
	if fraction := flowFraction(cycles, func(ord int) bool { return ord > 0 && ord <= domain.FlowLight.Ordinal() }); fraction > lightFlowFractionMin {
		factors.LightFlow = factorOf(math.Min(1, fraction))
	}
	if cluster.HasSignal() {
		factors.SymptomCluster = factorOf(cluster.Score)
	}
	factors.FamilyHistory = familyFactor(profile, def)

	return a.finalize(def, factors.flatten(), cluster, len(cycles), now)
}

// AssessPainBleeding evalua el patron de dolor y sangrado: flujo abundante
// sostenido, dolor alto y dolor que progresa a lo largo del historial.
func (a *ConditionAssessor) AssessPainBleeding(cycles []domain.CycleRecord, profile domain.HealthProfile, now time.Time) domain.ConditionAssessment {
	def := painBleedingDef
	cluster := a.clusters.Detect(cycles, def.Markers)

	var factors painBleedingRiskFactors
	if fraction := flowFraction(cycles, func(ord int) bool { return ord >= domain.FlowHeavy.Ordinal() }); fraction > heavyFlowFractionMin {
		factors.HeavyFlow = factorOf(math.Min(1, fraction))
	}

	pains := painScores(cycles)
	if first, second := a.stats.FirstVsSecondHalf(pains); second > first {
		factors.PainProgression = factorOf(math.Min(1, (second-first)/painProgressionScale))
	}
	if mean := a.stats.Mean(pains); len(pains) > 0 && mean >= highPainMeanThreshold {
		factors.HighPain = factorOf(math.Min(1, mean/10))
	}
	if cluster.HasSignal() {
		factors.SymptomCluster = factorOf(cluster.Score)
	}
	factors.FamilyHistory = familyFactor(profile, def)

	return a.finalize(def, factors.flatten(), cluster, len(cycles), now)
}

// irregularityFactor escala la variabilidad de duracion: por encima de 8
// dias se considera irregular, saturando en 14 dias.
func (a *ConditionAssessor) irregularityFactor(lengths []float64) *float64 {
	variability := a.stats.Variability(lengths)
	if variability <= irregularityThresholdDays {
		return nil
	}
	return factorOf(math.Min(1, variability/irregularityScaleDays))
}

// longCycleFactor marca medias de ciclo en o por encima de 35 dias,
// escalando la desviacion respecto del ciclo de referencia.
func (a *ConditionAssessor) longCycleFactor(lengths []float64) *float64 {
	mean := a.stats.Mean(lengths)
	if mean < longCycleMeanThreshold {
		return nil
	}
	return factorOf(math.Min(1, (mean-DefaultCycleLength)/lengthDeviationScaleDays))
}

// shortCycleFactor marca medias de ciclo en o por debajo de 24 dias.
func (a *ConditionAssessor) shortCycleFactor(lengths []float64) *float64 {
	mean := a.stats.Mean(lengths)
	if mean > shortCycleMeanThreshold {
		return nil
	}
	return factorOf(math.Min(1, (DefaultCycleLength-mean)/lengthDeviationScaleDays))
}

// bmiFactor deriva el proxy de masa corporal elevada. Con peso o altura
// ausentes el factor se omite, nunca se asume riesgo cero ni maximo.
func bmiFactor(profile domain.HealthProfile) *float64 {
	bmi, ok := profile.BMI()
	if !ok || bmi <= 25 {
		return nil
	}
	return factorOf(math.Min(1, (bmi-25)/10))
}

// familyFactor aporta el factor fijo de la condicion cuando el perfil
// declara antecedentes familiares.
func familyFactor(profile domain.HealthProfile, def conditionDef) *float64 {
	if !profile.HasFamilyHistory(def.Tag) {
		return nil
	}
	return factorOf(def.FamilyFactor)
}

// flowFraction devuelve la fraccion de ciclos cuyo ordinal de flujo cumple
// el predicado.
func flowFraction(cycles []domain.CycleRecord, match func(ord int) bool) float64 {
	if len(cycles) == 0 {
		return 0
	}
	count := 0
	for _, c := range cycles {
		if match(c.FlowIntensity.Ordinal()) {
			count++
		}
	}
	return float64(count) / float64(len(cycles))
}

// painScores extrae los puntajes de dolor registrados, en orden.
func painScores(cycles []domain.CycleRecord) []float64 {
	var out []float64
	for _, c := range cycles {
		if c.PainScore != nil {
			out = append(out, float64(*c.PainScore))
		}
	}
	return out
}

// finalize comparte el cierre de la plantilla: puntaje, nivel, confianza,
// recomendaciones y fecha de proximo control.
func (a *ConditionAssessor) finalize(def conditionDef, factors []domain.RiskFactor, cluster SymptomCluster, cycleCount int, now time.Time) domain.ConditionAssessment {
	score := a.scorer.Score(factors, def.Weights)
	level := a.scorer.Classify(score)

	// Confianza compartida: crece con el historial y con la presencia de
	// factores computables.
	dataTerm := math.Min(1, float64(cycleCount)/12.0)
	factorTerm := 0.5
	if len(factors) > 0 {
		factorTerm = 0.8
	}
	confidence := (dataTerm + factorTerm) / 2

	detected := make([]domain.Symptom, len(cluster.Frequent))
	copy(detected, cluster.Frequent)

	return domain.ConditionAssessment{
		ConditionName:            def.Name,
		Condition:                def.Tag,
		RiskScore:                score,
		RiskLevel:                level,
		RiskFactors:              factors,
		DetectedSymptoms:         detected,
		Recommendations:          recommendationsFor(def.Tag, level),
		Confidence:               confidence,
		RequiresMedicalAttention: level >= domain.RiskModerate,
		NextAssessmentDate:       nextAssessmentDate(now, level),
	}
}
