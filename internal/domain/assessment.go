package domain

import "time"

// RiskLevel es el nivel ordenado de riesgo derivado del puntaje continuo.
type RiskLevel int

const (
	RiskMinimal RiskLevel = iota
	RiskLow
	RiskModerate
	RiskHigh
	RiskCritical
)

// RiskLevelInfo agrupa los textos de presentacion de cada nivel. Tabla
// estatica en lugar de switches repetidos por todo el codigo.
type RiskLevelInfo struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	IconKey     string `json:"icon_key"`
}

var riskLevelTable = map[RiskLevel]RiskLevelInfo{
	RiskMinimal:  {Label: "minimal", Description: "No concerning patterns detected", IconKey: "shield-check"},
	RiskLow:      {Label: "low", Description: "Minor patterns worth keeping an eye on", IconKey: "shield"},
	RiskModerate: {Label: "moderate", Description: "Patterns that merit a medical consultation", IconKey: "alert-circle"},
	RiskHigh:     {Label: "high", Description: "Strong patterns, medical review recommended soon", IconKey: "alert-triangle"},
	RiskCritical: {Label: "critical", Description: "Multiple strong patterns, seek medical review promptly", IconKey: "alert-octagon"},
}

// Info devuelve los textos de presentacion del nivel.
func (r RiskLevel) Info() RiskLevelInfo {
	if info, ok := riskLevelTable[r]; ok {
		return info
	}
	return riskLevelTable[RiskMinimal]
}

func (r RiskLevel) String() string {
	return r.Info().Label
}

// MarshalJSON serializa el nivel con su etiqueta estable, no el ordinal.
func (r RiskLevel) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.Info().Label + `"`), nil
}

// UnmarshalJSON acepta la etiqueta estable del nivel.
func (r *RiskLevel) UnmarshalJSON(data []byte) error {
	label := string(data)
	if len(label) >= 2 && label[0] == '"' {
		label = label[1 : len(label)-1]
	}
	for level, info := range riskLevelTable {
		if info.Label == label {
			*r = level
			return nil
		}
	}
	*r = RiskMinimal
	return nil
}

// MaxRiskLevel devuelve el mayor de los niveles dados (reduccion conmutativa).
func MaxRiskLevel(levels ...RiskLevel) RiskLevel {
	max := RiskMinimal
	for _, l := range levels {
		if l > max {
			max = l
		}
	}
	return max
}

// RiskFactor es un factor nombrado ya aplanado, con valor en [0,1].
// El orden de aparicion es el orden de declaracion del struct tipado
// que lo origino, asi el reporte es estable entre corridas.
type RiskFactor struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ConditionAssessment es el resultado inmutable de evaluar una condicion.
// Cada screening produce un assessment nuevo.
type ConditionAssessment struct {
	ConditionName            string       `json:"condition_name"`
	Condition                ConditionTag `json:"condition"`
	RiskScore                float64      `json:"risk_score"`
	RiskLevel                RiskLevel    `json:"risk_level"`
	RiskFactors              []RiskFactor `json:"risk_factors"`
	DetectedSymptoms         []Symptom    `json:"detected_symptoms"`
	Recommendations          []string     `json:"recommendations"`
	Confidence               float64      `json:"confidence"`
	RequiresMedicalAttention bool         `json:"requires_medical_attention"`
	NextAssessmentDate       time.Time    `json:"next_assessment_date"`
}

// FactorValue busca un factor por nombre. Devuelve false si fue omitido.
func (a ConditionAssessment) FactorValue(name string) (float64, bool) {
	for _, f := range a.RiskFactors {
		if f.Name == name {
			return f.Value, true
		}
	}
	return 0, false
}
