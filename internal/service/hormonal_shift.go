package service

import (
	"math"

	"flowsense/internal/domain"
)

const (
	// minCyclesForShift: se comparan dos ventanas de 3 ciclos, por lo que
	// el minimo absoluto es 6.
	minCyclesForShift = 6
	shiftWindowSize   = 3

	// Umbrales fijos por señal.
	shiftLengthThresholdDays  = 5.0
	shiftFlowThresholdOrdinal = 0.3
	shiftSymptomRatioMin      = 0.4

	// Heuristica de transicion: solo se evalua desde esta edad.
	transitionMinAge      = 35
	skippedCycleGapDays   = 60.0
	insufficientShiftConf = 0.3
)

// Escalera de confianza segun cantidad de señales marcadas.
var shiftConfidenceLadder = []float64{0.3, 0.5, 0.7, 0.9}

// Sintomas asociados a transicion menopausica para la heuristica age-gated.
var transitionMarkers = []domain.Symptom{
	domain.SymptomHotFlashes,
	domain.SymptomNightSweats,
	domain.SymptomSleepDisturbance,
	domain.SymptomMoodSwings,
}

// Etiquetas de tramo de riesgo de transicion.
var transitionTiers = []struct {
	Max   float64
	Label string
}{
	{Max: 0.33, Label: "low"},
	{Max: 0.66, Label: "possible"},
	{Max: math.Inf(1), Label: "likely"},
}

// HormonalShiftDetector compara la ventana reciente de ciclos contra la
// inmediatamente anterior para detectar desviaciones de duracion, flujo y
// perfil de sintomas. Señal temprana con confianza calibrada, no un
// diagnostico.
type HormonalShiftDetector struct {
	stats StatsAnalyzer
}

func NewHormonalShiftDetector() *HormonalShiftDetector {
	return &HormonalShiftDetector{}
}

// Detect evalua el historial. Con menos de 6 ciclos devuelve el resultado
// explicito de datos insuficientes: confianza 0.3 y una accion concreta.
func (d *HormonalShiftDetector) Detect(cycles []domain.CycleRecord, profile domain.HealthProfile) domain.HormonalShiftAssessment {
	if len(cycles) < minCyclesForShift {
		return domain.HormonalShiftAssessment{
			Status:     domain.ShiftStatusInsufficient,
			Confidence: insufficientShiftConf,
			RecommendedActions: []string{
				"Continue tracking for 3 more months to enable hormonal shift detection",
			},
		}
	}

	recent := cycles[len(cycles)-shiftWindowSize:]
	prior := cycles[len(cycles)-2*shiftWindowSize : len(cycles)-shiftWindowSize]

	// La señal de duracion solo es computable con duraciones derivables en
	// ambas ventanas; una ventana vacia promedia 0 y fabricaria un delta.
	lengthDelta := 0.0
	recentLengths := CycleLengths(recent)
	priorLengths := CycleLengths(prior)
	if len(recentLengths) > 0 && len(priorLengths) > 0 {
		lengthDelta = math.Abs(d.stats.Mean(recentLengths) - d.stats.Mean(priorLengths))
	}
	flowDelta := math.Abs(meanFlowOrdinal(recent) - meanFlowOrdinal(prior))
	symptomDelta := symptomSetDelta(recent, prior)

	var detected []string
	if lengthDelta > shiftLengthThresholdDays {
		detected = append(detected, domain.ShiftSignalCycleLength)
	}
	if flowDelta > shiftFlowThresholdOrdinal {
		detected = append(detected, domain.ShiftSignalFlow)
	}
	if symptomDelta > shiftSymptomRatioMin {
		detected = append(detected, domain.ShiftSignalSymptoms)
	}

	ladderIdx := len(detected)
	if ladderIdx >= len(shiftConfidenceLadder) {
		ladderIdx = len(shiftConfidenceLadder) - 1
	}

	assessment := domain.HormonalShiftAssessment{
		Status:             domain.ShiftStatusAnalyzed,
		DetectedShifts:     detected,
		CycleLengthDelta:   lengthDelta,
		CycleLengthTrend:   d.stats.TrendSlope(CycleLengths(cycles)),
		FlowDelta:          flowDelta,
		SymptomDelta:       symptomDelta,
		Confidence:         shiftConfidenceLadder[ladderIdx],
		RecommendedActions: shiftActions(detected),
	}

	if profile.Age != nil && *profile.Age >= transitionMinAge {
		assessment.Transition = d.transitionIndicator(cycles)
	}

	return assessment
}

// shiftActions arma las acciones recomendadas en el orden de las señales.
func shiftActions(detected []string) []string {
	if len(detected) == 0 {
		return []string{"No significant hormonal shift detected; keep tracking as usual"}
	}
	actions := make([]string, 0, len(detected)+1)
	for _, signal := range detected {
		switch signal {
		case domain.ShiftSignalCycleLength:
			actions = append(actions, "Cycle length changed notably versus the previous months; note any new medication or stressors")
		case domain.ShiftSignalFlow:
			actions = append(actions, "Flow intensity shifted versus the previous months; track flow carefully over the next cycles")
		case domain.ShiftSignalSymptoms:
			actions = append(actions, "Your symptom profile changed versus the previous months; review new symptoms with your doctor if they persist")
		}
	}
	actions = append(actions, "If these changes persist for two more cycles, consider a medical consultation")
	return actions
}

// meanFlowOrdinal promedia la posicion ordinal del flujo en la ventana.
func meanFlowOrdinal(cycles []domain.CycleRecord) float64 {
	if len(cycles) == 0 {
		return 0
	}
	sum := 0
	for _, c := range cycles {
		sum += c.FlowIntensity.Ordinal()
	}
	return float64(sum) / float64(len(cycles))
}

// symptomSetDelta calcula |A△B| / |A∪B| entre los conjuntos de sintomas de
// ambas ventanas. Dos ventanas sin sintomas difieren en 0.
func symptomSetDelta(recent, prior []domain.CycleRecord) float64 {
	recentSet := symptomSet(recent)
	priorSet := symptomSet(prior)

	union := make(map[domain.Symptom]struct{}, len(recentSet)+len(priorSet))
	for s := range recentSet {
		union[s] = struct{}{}
	}
	for s := range priorSet {
		union[s] = struct{}{}
	}
	if len(union) == 0 {
		return 0
	}

	diff := 0
	for s := range union {
		_, inRecent := recentSet[s]
		_, inPrior := priorSet[s]
		if inRecent != inPrior {
			diff++
		}
	}
	return float64(diff) / float64(len(union))
}

func symptomSet(cycles []domain.CycleRecord) map[domain.Symptom]struct{} {
	set := make(map[domain.Symptom]struct{})
	for _, c := range cycles {
		for _, s := range c.Symptoms {
			set[s] = struct{}{}
		}
	}
	return set
}

// transitionIndicator estima riesgo de transicion menopausica a partir de
// irregularidad, ciclos salteados y frecuencia de sintomas asociados.
func (d *HormonalShiftDetector) transitionIndicator(cycles []domain.CycleRecord) *domain.TransitionIndicator {
	lengths := CycleLengths(cycles)
	irregularity := math.Min(1, d.stats.Variability(lengths)/irregularityScaleDays)

	skipped := 0
	for i := 1; i < len(cycles); i++ {
		gap := cycles[i].StartDate.Sub(cycles[i-1].StartDate).Hours() / 24
		if gap > skippedCycleGapDays {
			skipped++
		}
	}
	skippedRatio := 0.0
	if len(cycles) > 1 {
		skippedRatio = math.Min(1, float64(skipped)/float64(len(cycles)-1)*2)
	}

	symptomatic := 0
	for _, c := range cycles {
		for _, marker := range transitionMarkers {
			if c.HasSymptom(marker) {
				symptomatic++
				break
			}
		}
	}
	symptomFreq := float64(symptomatic) / float64(len(cycles))

	risk := 0.4*irregularity + 0.3*skippedRatio + 0.3*symptomFreq

	tier := transitionTiers[len(transitionTiers)-1].Label
	for _, t := range transitionTiers {
		if risk < t.Max {
			tier = t.Label
			break
		}
	}

	return &domain.TransitionIndicator{Risk: risk, Tier: tier}
}
