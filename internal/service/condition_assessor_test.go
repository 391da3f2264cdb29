package service

import (
	"testing"
	"time"

	"flowsense/internal/domain"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

var assessNow = time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

func TestConditionAssessor_LongCycleFactor(t *testing.T) {
	assessor := NewConditionAssessor()

	long := assessor.AssessHormonal(cyclesWithLengths(35, 36, 35, 37, 36, 35), domain.HealthProfile{}, assessNow)
	value, ok := long.FactorValue("long_cycles")
	if !ok {
		t.Fatalf("expected a long_cycles factor for a 35+ day mean")
	}
	if value <= 0 || value > 1 {
		t.Fatalf("long_cycles factor out of range: %v", value)
	}

	normal := assessor.AssessHormonal(cyclesWithLengths(28, 29, 27, 28, 30, 28), domain.HealthProfile{}, assessNow)
	if _, ok := normal.FactorValue("long_cycles"); ok {
		t.Fatalf("did not expect a long_cycles factor for a normal-length history")
	}
}

func TestConditionAssessor_LengthFactorsNeedSixCycles(t *testing.T) {
	assessor := NewConditionAssessor()

	// Five long cycles: the pattern exists but the sample is too small, so
	// the factor is omitted rather than emitted with low value.
	short := assessor.AssessHormonal(cyclesWithLengths(36, 36, 36, 36, 36), domain.HealthProfile{}, assessNow)
	if _, ok := short.FactorValue("long_cycles"); ok {
		t.Fatalf("expected long_cycles omitted under six cycles")
	}

	full := assessor.AssessHormonal(cyclesWithLengths(36, 36, 36, 36, 36, 36), domain.HealthProfile{}, assessNow)
	if _, ok := full.FactorValue("long_cycles"); !ok {
		t.Fatalf("expected long_cycles present at six cycles")
	}
}

func TestConditionAssessor_IrregularityFactor(t *testing.T) {
	assessor := NewConditionAssessor()

	irregular := assessor.AssessHormonal(cyclesWithLengths(20, 40, 20, 40, 20, 40), domain.HealthProfile{}, assessNow)
	value, ok := irregular.FactorValue("irregular_cycles")
	if !ok {
		t.Fatalf("expected an irregular_cycles factor for a 10-day deviation")
	}
	if !almostEqual(value, 10.0/14.0) {
		t.Fatalf("expected irregularity factor 10/14, got %v", value)
	}

	steady := assessor.AssessHormonal(cyclesWithLengths(27, 28, 29, 28, 27, 29), domain.HealthProfile{}, assessNow)
	if _, ok := steady.FactorValue("irregular_cycles"); ok {
		t.Fatalf("did not expect an irregularity factor for a steady history")
	}
}

func TestConditionAssessor_BMIFactorOmittedWithoutData(t *testing.T) {
	assessor := NewConditionAssessor()
	cycles := cyclesWithLengths(28, 28, 28, 28, 28, 28)

	noData := assessor.AssessHormonal(cycles, domain.HealthProfile{}, assessNow)
	if _, ok := noData.FactorValue("elevated_bmi"); ok {
		t.Fatalf("expected elevated_bmi omitted when weight or height is missing")
	}

	profile := domain.HealthProfile{WeightKg: floatPtr(85), HeightCm: floatPtr(160)}
	elevated := assessor.AssessHormonal(cycles, profile, assessNow)
	value, ok := elevated.FactorValue("elevated_bmi")
	if !ok {
		t.Fatalf("expected an elevated_bmi factor for BMI over 25")
	}
	// BMI 33.2 scales to roughly 0.82.
	if value < 0.8 || value > 0.85 {
		t.Fatalf("unexpected elevated_bmi factor %v", value)
	}

	lean := domain.HealthProfile{WeightKg: floatPtr(55), HeightCm: floatPtr(165)}
	if _, ok := assessor.AssessHormonal(cycles, lean, assessNow).FactorValue("elevated_bmi"); ok {
		t.Fatalf("did not expect an elevated_bmi factor for BMI under 25")
	}
}

func TestConditionAssessor_FamilyHistoryFactors(t *testing.T) {
	assessor := NewConditionAssessor()
	cycles := cyclesWithLengths(28, 28, 28, 28, 28, 28)
	profile := domain.HealthProfile{
		FamilyHistory: []domain.ConditionTag{
			domain.ConditionHormonalImbalance,
			domain.ConditionThyroidPattern,
			domain.ConditionPainBleeding,
		},
	}

	cases := []struct {
		assessment domain.ConditionAssessment
		want       float64
	}{
		{assessor.AssessHormonal(cycles, profile, assessNow), 0.5},
		{assessor.AssessThyroid(cycles, profile, assessNow), 0.6},
		{assessor.AssessPainBleeding(cycles, profile, assessNow), 0.4},
	}
	for _, tc := range cases {
		value, ok := tc.assessment.FactorValue("family_history")
		if !ok {
			t.Fatalf("expected family_history factor for %s", tc.assessment.Condition)
		}
		if !almostEqual(value, tc.want) {
			t.Fatalf("family_history for %s = %v, want %v", tc.assessment.Condition, value, tc.want)
		}
	}
}

func TestConditionAssessor_ConfidenceGrowsWithHistory(t *testing.T) {
	assessor := NewConditionAssessor()
	profile := domain.HealthProfile{
		FamilyHistory: []domain.ConditionTag{domain.ConditionHormonalImbalance},
	}

	five := assessor.AssessHormonal(cyclesWithLengths(28, 28, 28, 28, 28), profile, assessNow)
	twelve := assessor.AssessHormonal(cyclesWithLengths(28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28), profile, assessNow)

	if twelve.Confidence <= five.Confidence {
		t.Fatalf("expected confidence to grow with history: 5 cycles %v vs 12 cycles %v", five.Confidence, twelve.Confidence)
	}
	if !almostEqual(twelve.Confidence, 0.9) {
		t.Fatalf("expected saturated confidence 0.9 at 12 cycles, got %v", twelve.Confidence)
	}
}

func TestConditionAssessor_NoFactorsMeansMinimal(t *testing.T) {
	assessor := NewConditionAssessor()

	got := assessor.AssessHormonal(cyclesWithLengths(28, 29, 27, 28, 30, 28), domain.HealthProfile{}, assessNow)
	if got.RiskScore != 0 {
		t.Fatalf("expected zero score without factors, got %v", got.RiskScore)
	}
	if got.RiskLevel != domain.RiskMinimal {
		t.Fatalf("expected minimal level, got %s", got.RiskLevel)
	}
	if got.RequiresMedicalAttention {
		t.Fatalf("minimal risk must not require medical attention")
	}
	if len(got.Recommendations) == 0 {
		t.Fatalf("expected base recommendations even at minimal risk")
	}
}

func TestConditionAssessor_PainBleedingProgression(t *testing.T) {
	assessor := NewConditionAssessor()

	cycles := cyclesWithLengths(28, 28, 28, 28, 28, 28)
	pains := []int{2, 3, 3, 7, 8, 8}
	for i := range cycles {
		cycles[i].PainScore = intPtr(pains[i])
		cycles[i].FlowIntensity = domain.FlowHeavy
	}

	got := assessor.AssessPainBleeding(cycles, domain.HealthProfile{}, assessNow)

	if _, ok := got.FactorValue("pain_progression"); !ok {
		t.Fatalf("expected a pain_progression factor when the second half hurts more")
	}
	heavy, ok := got.FactorValue("heavy_flow")
	if !ok || !almostEqual(heavy, 1.0) {
		t.Fatalf("expected heavy_flow factor 1.0 for an all-heavy history, got %v (present=%v)", heavy, ok)
	}
}

func TestConditionAssessor_FollowUpCadence(t *testing.T) {
	assessor := NewConditionAssessor()

	minimal := assessor.AssessHormonal(cyclesWithLengths(28, 28, 28, 28, 28, 28), domain.HealthProfile{}, assessNow)
	if want := assessNow.Add(365 * 24 * time.Hour); !minimal.NextAssessmentDate.Equal(want) {
		t.Fatalf("expected yearly follow-up for minimal risk, got %v", minimal.NextAssessmentDate)
	}
}

func TestConditionAssessor_ElevatedScenario(t *testing.T) {
	assessor := NewConditionAssessor()

	// Eight cycles with a 36-day mean, a recurring acne + weight change
	// pattern and an elevated BMI.
	cycles := cyclesWithLengths(35, 37, 36, 38, 35, 36, 34, 37)
	cycles = withSymptoms(cycles, []int{1, 4, 6}, domain.SymptomAcne, domain.SymptomWeightChange)
	profile := domain.HealthProfile{WeightKg: floatPtr(85), HeightCm: floatPtr(160)}

	got := assessor.AssessHormonal(cycles, profile, assessNow)

	if got.RiskLevel < domain.RiskModerate {
		t.Fatalf("expected at least moderate risk, got %s (score %v)", got.RiskLevel, got.RiskScore)
	}
	if !got.RequiresMedicalAttention {
		t.Fatalf("moderate risk must require medical attention")
	}
	if len(got.DetectedSymptoms) != 2 {
		t.Fatalf("expected the two clustered symptoms to be reported, got %v", got.DetectedSymptoms)
	}
	// Elevated levels append the consultation recommendations.
	if len(got.Recommendations) <= 2 {
		t.Fatalf("expected elevated recommendations, got %v", got.Recommendations)
	}
}
