package service

import (
	"testing"
	"time"

	"flowsense/internal/domain"
)

// ovulatoryCycles arma ciclos con ovulacion y fin conocidos, con la fase
// lutea pedida.
func ovulatoryCycles(count int, cycleLength, lutealDays int) []domain.CycleRecord {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]domain.CycleRecord, 0, count)
	for i := 0; i < count; i++ {
		end := start.AddDate(0, 0, cycleLength)
		ovulation := end.AddDate(0, 0, -lutealDays)
		out = append(out, domain.CycleRecord{
			ID:            "c" + string(rune('a'+i)),
			UserID:        "u1",
			StartDate:     start,
			EndDate:       &end,
			OvulationDate: &ovulation,
			FlowIntensity: domain.FlowMedium,
		})
		start = end
	}
	return out
}

func TestFertilityAssessor_HealthyLutealPhase(t *testing.T) {
	assessor := NewFertilityAssessor()

	got := assessor.Assess(ovulatoryCycles(6, 28, 14), domain.HealthProfile{})

	if !almostEqual(got.OvulationRate, 1.0) {
		t.Fatalf("expected full ovulation rate, got %v", got.OvulationRate)
	}
	if got.AvgLutealLength == nil || !almostEqual(*got.AvgLutealLength, 14) {
		t.Fatalf("expected average luteal length 14, got %v", got.AvgLutealLength)
	}
	// 0.6*1.0 + 0.4*1.0: full ovulation and an adequate luteal band.
	if got.QualityScore == nil || !almostEqual(*got.QualityScore, 1.0) {
		t.Fatalf("expected quality score 1.0, got %v", got.QualityScore)
	}
}

func TestFertilityAssessor_ShortLutealPhase(t *testing.T) {
	assessor := NewFertilityAssessor()

	got := assessor.Assess(ovulatoryCycles(6, 28, 8), domain.HealthProfile{})

	// 0.6*1.0 + 0.4*0.25: the 8-day luteal phase lands in the poor band.
	if got.QualityScore == nil || !almostEqual(*got.QualityScore, 0.7) {
		t.Fatalf("expected quality score 0.7, got %v", got.QualityScore)
	}
	found := false
	for _, step := range got.OptimizationPlan {
		if step == "Discuss luteal phase support with your doctor; your luteal phase averages under 12 days" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a luteal phase plan entry, got %v", got.OptimizationPlan)
	}
}

func TestFertilityAssessor_AgeBands(t *testing.T) {
	assessor := NewFertilityAssessor()
	cycles := ovulatoryCycles(6, 28, 14)

	cases := []struct {
		age  int
		want float64
	}{
		{28, 1.0},
		{33, 0.9},
		{38, 0.7},
		{42, 0.4},
	}
	for _, tc := range cases {
		got := assessor.Assess(cycles, domain.HealthProfile{Age: intPtr(tc.age)})
		if got.AgeFactor == nil || !almostEqual(*got.AgeFactor, tc.want) {
			t.Fatalf("age %d: expected factor %v, got %v", tc.age, tc.want, got.AgeFactor)
		}
	}

	noAge := assessor.Assess(cycles, domain.HealthProfile{})
	if noAge.AgeFactor != nil {
		t.Fatalf("expected age factor omitted without age, got %v", *noAge.AgeFactor)
	}
}

func TestFertilityAssessor_LifestyleFactor(t *testing.T) {
	assessor := NewFertilityAssessor()
	cycles := ovulatoryCycles(6, 28, 14)

	positive := assessor.Assess(cycles, domain.HealthProfile{
		Lifestyle: []domain.LifestyleTag{domain.LifestyleModerateExercise, domain.LifestyleAdequateSleep},
	})
	if positive.LifestyleFactor == nil || !almostEqual(*positive.LifestyleFactor, 0.75) {
		t.Fatalf("expected lifestyle factor 0.75, got %v", positive.LifestyleFactor)
	}

	negative := assessor.Assess(cycles, domain.HealthProfile{
		Lifestyle: []domain.LifestyleTag{
			domain.LifestyleHighStress,
			domain.LifestylePoorSleep,
			domain.LifestyleSmoking,
		},
	})
	if negative.LifestyleFactor == nil || !almostEqual(*negative.LifestyleFactor, 0.1) {
		t.Fatalf("expected lifestyle factor 0.1, got %v", negative.LifestyleFactor)
	}
	// Each declared risk habit contributes its own plan entry.
	if len(negative.OptimizationPlan) < 3 {
		t.Fatalf("expected lifestyle plan entries, got %v", negative.OptimizationPlan)
	}

	none := assessor.Assess(cycles, domain.HealthProfile{})
	if none.LifestyleFactor != nil {
		t.Fatalf("expected lifestyle factor omitted without declared tags")
	}
}

func TestFertilityAssessor_OverallAveragesComputableComponents(t *testing.T) {
	assessor := NewFertilityAssessor()

	got := assessor.Assess(ovulatoryCycles(6, 28, 14), domain.HealthProfile{Age: intPtr(33)})

	// Quality 1.0 and age 0.9; lifestyle is absent and must not drag the
	// average down as a zero.
	if !almostEqual(got.OverallScore, 0.95) {
		t.Fatalf("expected overall score 0.95, got %v", got.OverallScore)
	}
}

func TestFertilityAssessor_DegradesWithoutData(t *testing.T) {
	assessor := NewFertilityAssessor()

	got := assessor.Assess(nil, domain.HealthProfile{})

	if got.OverallScore != 0 {
		t.Fatalf("expected zero overall score without data, got %v", got.OverallScore)
	}
	if got.QualityScore != nil || got.AvgLutealLength != nil {
		t.Fatalf("expected luteal components omitted without data")
	}
	if !almostEqual(got.Confidence, 0.25) {
		t.Fatalf("expected floor confidence 0.25, got %v", got.Confidence)
	}
	if len(got.OptimizationPlan) == 0 {
		t.Fatalf("expected a tracking suggestion even without data")
	}
}

func TestFertilityAssessor_ConfidenceGrowsWithHistory(t *testing.T) {
	assessor := NewFertilityAssessor()

	five := assessor.Assess(ovulatoryCycles(5, 28, 14), domain.HealthProfile{})
	twelve := assessor.Assess(ovulatoryCycles(12, 28, 14), domain.HealthProfile{})

	if twelve.Confidence <= five.Confidence {
		t.Fatalf("expected confidence to grow with history: %v vs %v", five.Confidence, twelve.Confidence)
	}
}
