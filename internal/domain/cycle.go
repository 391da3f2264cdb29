package domain

import "time"

// FlowIntensity es un enum ordenado: none < spotting < light < medium < heavy < very_heavy.
type FlowIntensity string

const (
	FlowNone      FlowIntensity = "none"
	FlowSpotting  FlowIntensity = "spotting"
	FlowLight     FlowIntensity = "light"
	FlowMedium    FlowIntensity = "medium"
	FlowHeavy     FlowIntensity = "heavy"
	FlowVeryHeavy FlowIntensity = "very_heavy"
)

var flowOrdinals = map[FlowIntensity]int{
	FlowNone:      0,
	FlowSpotting:  1,
	FlowLight:     2,
	FlowMedium:    3,
	FlowHeavy:     4,
	FlowVeryHeavy: 5,
}

// Ordinal devuelve la posicion del flujo en la escala ordenada (0..5).
// Valores desconocidos se tratan como "medium" para no distorsionar promedios.
func (f FlowIntensity) Ordinal() int {
	if ord, ok := flowOrdinals[f]; ok {
		return ord
	}
	return flowOrdinals[FlowMedium]
}

// Symptom es un tag de sintoma registrado en un ciclo.
type Symptom string

const (
	SymptomAcne             Symptom = "acne"
	SymptomExcessHair       Symptom = "excess_hair"
	SymptomHairLoss         Symptom = "hair_loss"
	SymptomWeightChange     Symptom = "weight_change"
	SymptomMoodSwings       Symptom = "mood_swings"
	SymptomFatigue          Symptom = "fatigue"
	SymptomColdIntolerance  Symptom = "cold_intolerance"
	SymptomDrySkin          Symptom = "dry_skin"
	SymptomConstipation     Symptom = "constipation"
	SymptomSevereCramps     Symptom = "severe_cramps"
	SymptomPelvicPain       Symptom = "pelvic_pain"
	SymptomHeavyBleeding    Symptom = "heavy_bleeding"
	SymptomPainDuringSex    Symptom = "pain_during_sex"
	SymptomBloating         Symptom = "bloating"
	SymptomHeadache         Symptom = "headache"
	SymptomHotFlashes       Symptom = "hot_flashes"
	SymptomNightSweats      Symptom = "night_sweats"
	SymptomSleepDisturbance Symptom = "sleep_disturbance"
	SymptomBreastTenderness Symptom = "breast_tenderness"
)

// CycleRecord es el snapshot inmutable de un ciclo. Cuando el ciclo se
// completa (se conoce fin u ovulacion) se registra un snapshot nuevo,
// nunca se muta el existente.
type CycleRecord struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	StartDate     time.Time     `json:"start_date"`
	EndDate       *time.Time    `json:"end_date,omitempty"`
	Length        int           `json:"length,omitempty"`
	Symptoms      []Symptom     `json:"symptoms,omitempty"`
	FlowIntensity FlowIntensity `json:"flow_intensity"`
	PainScore     *int          `json:"pain_score,omitempty"`
	MoodScore     *int          `json:"mood_score,omitempty"`
	EnergyScore   *int          `json:"energy_score,omitempty"`
	OvulationDate *time.Time    `json:"ovulation_date,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// EffectiveLength devuelve la duracion del ciclo en dias, derivandola de
// las fechas cuando no fue registrada explicitamente. Devuelve 0 si no hay
// forma de conocerla.
func (c CycleRecord) EffectiveLength() int {
	if c.Length > 0 {
		return c.Length
	}
	if c.EndDate != nil && c.EndDate.After(c.StartDate) {
		return int(c.EndDate.Sub(c.StartDate).Hours() / 24)
	}
	return 0
}

// HasSymptom indica si el ciclo registro el sintoma dado.
func (c CycleRecord) HasSymptom(s Symptom) bool {
	for _, tag := range c.Symptoms {
		if tag == s {
			return true
		}
	}
	return false
}

// LutealLength devuelve la fase lutea en dias (fin - ovulacion) y si es
// computable para este ciclo.
func (c CycleRecord) LutealLength() (float64, bool) {
	if c.OvulationDate == nil || c.EndDate == nil || !c.EndDate.After(*c.OvulationDate) {
		return 0, false
	}
	return c.EndDate.Sub(*c.OvulationDate).Hours() / 24, true
}
