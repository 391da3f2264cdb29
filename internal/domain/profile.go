package domain

import "time"

// ConditionTag identifica una condicion evaluable por el motor.
type ConditionTag string

const (
	ConditionHormonalImbalance ConditionTag = "hormonal_imbalance"
	ConditionThyroidPattern    ConditionTag = "thyroid_pattern"
	ConditionPainBleeding      ConditionTag = "pain_bleeding_pattern"
)

// LifestyleTag es una señal de estilo de vida declarada por la usuaria.
type LifestyleTag string

const (
	LifestyleModerateExercise LifestyleTag = "moderate_exercise"
	LifestyleAdequateSleep    LifestyleTag = "adequate_sleep"
	LifestyleHighStress       LifestyleTag = "high_stress"
	LifestylePoorSleep        LifestyleTag = "poor_sleep"
	LifestyleSmoking          LifestyleTag = "smoking"
)

// HealthProfile es el perfil de salud de la usuaria. Lo provee un
// colaborador externo y el motor lo trata como solo-lectura; los campos
// opcionales ausentes degradan el factor asociado a "omitido".
type HealthProfile struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id"`
	Age           *int           `json:"age,omitempty"`
	WeightKg      *float64       `json:"weight_kg,omitempty"`
	HeightCm      *float64       `json:"height_cm,omitempty"`
	FamilyHistory []ConditionTag `json:"family_history,omitempty"`
	Lifestyle     []LifestyleTag `json:"lifestyle,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// HasFamilyHistory indica si el perfil declara antecedentes familiares
// para la condicion dada.
func (p HealthProfile) HasFamilyHistory(tag ConditionTag) bool {
	for _, t := range p.FamilyHistory {
		if t == tag {
			return true
		}
	}
	return false
}

// HasLifestyle indica si el perfil declara la señal de estilo de vida.
func (p HealthProfile) HasLifestyle(tag LifestyleTag) bool {
	for _, t := range p.Lifestyle {
		if t == tag {
			return true
		}
	}
	return false
}

// BMI calcula el indice de masa corporal cuando peso y altura estan
// presentes. Devuelve false si falta alguno de los dos.
func (p HealthProfile) BMI() (float64, bool) {
	if p.WeightKg == nil || p.HeightCm == nil || *p.HeightCm <= 0 {
		return 0, false
	}
	meters := *p.HeightCm / 100.0
	return *p.WeightKg / (meters * meters), true
}
