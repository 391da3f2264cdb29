package service

import (
	"sync"
	"time"

	"flowsense/internal/domain"
)

// maxReportRecommendations acota la lista consolidada del reporte.
const maxReportRecommendations = 10

// generalCheckupEntry es la entrada fija del calendario de seguimiento
// derivada del nivel de riesgo global.
const generalCheckupEntry = "general_checkup"

// ScreeningEngine corre los cinco assessors sobre un historial y consolida
// el reporte. Computo puro y sincronico: mismo (historial, perfil, now)
// produce exactamente el mismo reporte.
type ScreeningEngine struct {
	conditions *ConditionAssessor
	fertility  *FertilityAssessor
	shifts     *HormonalShiftDetector
}

func NewScreeningEngine() *ScreeningEngine {
	return &ScreeningEngine{
		conditions: NewConditionAssessor(),
		fertility:  NewFertilityAssessor(),
		shifts:     NewHormonalShiftDetector(),
	}
}

// Run ejecuta el screening completo. Los assessors no dependen entre si,
// asi que corren en paralelo y se juntan por indice; la reduccion final
// (maximo nivel, dedup de recomendaciones) es conmutativa y no necesita
// orden entre tareas.
func (e *ScreeningEngine) Run(userID string, cycles []domain.CycleRecord, profile domain.HealthProfile, now time.Time) domain.HealthScreeningReport {
	var (
		wg          sync.WaitGroup
		assessments [3]domain.ConditionAssessment
		fertility   domain.FertilityAssessment
		shift       domain.HormonalShiftAssessment
	)

	conditionRuns := []func() domain.ConditionAssessment{
		func() domain.ConditionAssessment { return e.conditions.AssessHormonal(cycles, profile, now) },
		func() domain.ConditionAssessment { return e.conditions.AssessThyroid(cycles, profile, now) },
		func() domain.ConditionAssessment { return e.conditions.AssessPainBleeding(cycles, profile, now) },
	}
	for i, run := range conditionRuns {
		wg.Add(1)
		go func(idx int, run func() domain.ConditionAssessment) {
			defer wg.Done()
			assessments[idx] = run()
		}(i, run)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		fertility = e.fertility.Assess(cycles, profile)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		shift = e.shifts.Detect(cycles, profile)
	}()

	wg.Wait()

	overall := domain.MaxRiskLevel(
		assessments[0].RiskLevel,
		assessments[1].RiskLevel,
		assessments[2].RiskLevel,
	)

	return domain.HealthScreeningReport{
		UserID:           userID,
		GeneratedAt:      now,
		CycleCount:       len(cycles),
		Conditions:       assessments[:],
		Fertility:        fertility,
		HormonalShift:    shift,
		Wellbeing:        buildWellbeingTrend(cycles),
		OverallRiskLevel: overall,
		Recommendations:  consolidateRecommendations(assessments[:], shift),
		FollowUpSchedule: buildFollowUpSchedule(assessments[:], overall, now),
	}
}

// buildWellbeingTrend deriva la pendiente de animo y energia del historial.
// Cada serie necesita al menos dos puntajes registrados; si no, la
// tendencia queda sin computar en vez de reportarse como plana.
func buildWellbeingTrend(cycles []domain.CycleRecord) domain.WellbeingTrend {
	var trend domain.WellbeingTrend
	if mood := scoreSeries(cycles, func(c domain.CycleRecord) *int { return c.MoodScore }); len(mood) >= 2 {
		slope := DefaultStatsAnalyzer.TrendSlope(mood)
		trend.MoodSlope = &slope
	}
	if energy := scoreSeries(cycles, func(c domain.CycleRecord) *int { return c.EnergyScore }); len(energy) >= 2 {
		slope := DefaultStatsAnalyzer.TrendSlope(energy)
		trend.EnergySlope = &slope
	}
	return trend
}

// scoreSeries extrae los puntajes registrados por el selector, en orden.
func scoreSeries(cycles []domain.CycleRecord, pick func(domain.CycleRecord) *int) []float64 {
	var out []float64
	for _, c := range cycles {
		if score := pick(c); score != nil {
			out = append(out, float64(*score))
		}
	}
	return out
}

// consolidateRecommendations concatena en orden de condicion, deduplica
// preservando primera aparicion y corta en el tope del reporte.
func consolidateRecommendations(assessments []domain.ConditionAssessment, shift domain.HormonalShiftAssessment) []string {
	seen := make(map[string]struct{})
	var out []string

	add := func(rec string) {
		if len(out) >= maxReportRecommendations {
			return
		}
		if _, dup := seen[rec]; dup {
			return
		}
		seen[rec] = struct{}{}
		out = append(out, rec)
	}

	for _, a := range assessments {
		for _, rec := range a.Recommendations {
			add(rec)
		}
	}
	for _, rec := range shift.RecommendedActions {
		add(rec)
	}
	return out
}

// buildFollowUpSchedule arma una entrada por condicion mas el control
// general derivado del nivel global.
func buildFollowUpSchedule(assessments []domain.ConditionAssessment, overall domain.RiskLevel, now time.Time) []domain.FollowUpEntry {
	schedule := make([]domain.FollowUpEntry, 0, len(assessments)+1)
	for _, a := range assessments {
		schedule = append(schedule, domain.FollowUpEntry{
			Name: string(a.Condition),
			Date: a.NextAssessmentDate,
		})
	}
	schedule = append(schedule, domain.FollowUpEntry{
		Name: generalCheckupEntry,
		Date: nextAssessmentDate(now, overall),
	})
	return schedule
}
