package service

import (
	"math"

	"flowsense/internal/domain"
)

// Bandas discretas de factor por edad, como los tramos de consejo clinico:
// continuo no aporta nada aqui.
var fertilityAgeBands = []struct {
	MaxAge int
	Factor float64
}{
	{MaxAge: 30, Factor: 1.0},
	{MaxAge: 35, Factor: 0.9},
	{MaxAge: 40, Factor: 0.7},
}

const fertilityAgeFactorOver40 = 0.4

// Ajustes de estilo de vida sobre la base neutral de 0.5, en orden fijo de
// aplicacion para que el puntaje sea bit a bit reproducible.
var fertilityLifestyleNudges = []struct {
	Tag   domain.LifestyleTag
	Nudge float64
}{
	{domain.LifestyleModerateExercise, 0.15},
	{domain.LifestyleAdequateSleep, 0.10},
	{domain.LifestyleHighStress, -0.15},
	{domain.LifestylePoorSleep, -0.10},
	{domain.LifestyleSmoking, -0.15},
}

// FertilityAssessor puntua regularidad ovulatoria, suficiencia de fase
// lutea, edad y estilo de vida. Componentes sin datos quedan fuera del
// promedio general en vez de contar como cero.
type FertilityAssessor struct {
	stats StatsAnalyzer
}

func NewFertilityAssessor() *FertilityAssessor {
	return &FertilityAssessor{}
}

// Assess produce la evaluacion de calidad fertil del historial dado.
func (a *FertilityAssessor) Assess(cycles []domain.CycleRecord, profile domain.HealthProfile) domain.FertilityAssessment {
	assessment := domain.FertilityAssessment{}

	total := len(cycles)
	if total > 0 {
		withOvulation := 0
		for _, c := range cycles {
			if c.OvulationDate != nil {
				withOvulation++
			}
		}
		assessment.OvulationRate = float64(withOvulation) / float64(total)
	}

	var lutealLengths []float64
	for _, c := range cycles {
		if days, ok := c.LutealLength(); ok {
			lutealLengths = append(lutealLengths, days)
		}
	}
	if len(lutealLengths) > 0 {
		avg := a.stats.Mean(lutealLengths)
		assessment.AvgLutealLength = &avg
		quality := 0.6*assessment.OvulationRate + 0.4*lutealBandScore(avg)
		assessment.QualityScore = &quality
	}

	if profile.Age != nil {
		factor := ageFactor(*profile.Age)
		assessment.AgeFactor = &factor
	}

	if len(profile.Lifestyle) > 0 {
		factor := lifestyleFactor(profile)
		assessment.LifestyleFactor = &factor
	}

	assessment.OverallScore = overallFertilityScore(assessment)
	assessment.OptimizationPlan = fertilityPlan(assessment, profile)

	// Confianza: crece con el historial, con un piso mas alto cuando la
	// calidad ovulatoria fue computable.
	dataTerm := math.Min(1, float64(total)/12.0)
	qualityTerm := 0.5
	if assessment.QualityScore != nil {
		qualityTerm = 0.8
	}
	assessment.Confidence = (dataTerm + qualityTerm) / 2

	return assessment
}

// lutealBandScore puntua la fase lutea promedio por bandas: 12-16 dias es
// adecuada, 10-12 o 16-18 marginal, el resto pobre.
func lutealBandScore(days float64) float64 {
	switch {
	case days >= 12 && days <= 16:
		return 1.0
	case (days >= 10 && days < 12) || (days > 16 && days <= 18):
		return 0.75
	default:
		return 0.25
	}
}

func ageFactor(age int) float64 {
	for _, band := range fertilityAgeBands {
		if age <= band.MaxAge {
			return band.Factor
		}
	}
	return fertilityAgeFactorOver40
}

// lifestyleFactor parte de 0.5 neutral y aplica los ajustes declarados,
// acotando a [0,1].
func lifestyleFactor(profile domain.HealthProfile) float64 {
	factor := 0.5
	for _, entry := range fertilityLifestyleNudges {
		if profile.HasLifestyle(entry.Tag) {
			factor += entry.Nudge
		}
	}
	return math.Max(0, math.Min(1, factor))
}

// overallFertilityScore promedia solo los componentes computables
// (degradacion explicita cuando faltan datos de moco cervical o estilo
// de vida).
func overallFertilityScore(a domain.FertilityAssessment) float64 {
	var sum float64
	var count int
	for _, component := range []*float64{a.QualityScore, a.AgeFactor, a.LifestyleFactor} {
		if component != nil {
			sum += *component
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// fertilityPlan arma el plan de optimizacion en orden fijo segun los
// componentes debiles detectados.
func fertilityPlan(a domain.FertilityAssessment, profile domain.HealthProfile) []string {
	var plan []string
	if a.OvulationRate < 0.5 {
		plan = append(plan, "Track ovulation signs (basal temperature or test strips) to confirm ovulatory cycles")
	}
	if a.AvgLutealLength != nil && *a.AvgLutealLength < 12 {
		plan = append(plan, "Discuss luteal phase support with your doctor; your luteal phase averages under 12 days")
	}
	if profile.HasLifestyle(domain.LifestyleHighStress) {
		plan = append(plan, "Work on stress reduction; chronic stress can suppress ovulation")
	}
	if profile.HasLifestyle(domain.LifestylePoorSleep) {
		plan = append(plan, "Improve sleep hygiene; irregular sleep disrupts hormonal rhythm")
	}
	if profile.HasLifestyle(domain.LifestyleSmoking) {
		plan = append(plan, "Quitting smoking measurably improves fertility outcomes")
	}
	if len(plan) == 0 {
		plan = append(plan, "Keep tracking cycles and ovulation to maintain this baseline")
	}
	return plan
}
