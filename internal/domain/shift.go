package domain

// ShiftStatus distingue "sin señal todavia" de "ventanas comparadas".
type ShiftStatus string

const (
	ShiftStatusInsufficient ShiftStatus = "insufficient_data"
	ShiftStatusAnalyzed     ShiftStatus = "analyzed"
)

// Señales que el detector puede marcar, en orden fijo de evaluacion.
const (
	ShiftSignalCycleLength = "cycle_length"
	ShiftSignalFlow        = "flow_intensity"
	ShiftSignalSymptoms    = "symptom_profile"
)

// TransitionIndicator es la heuristica de transicion (perimenopausia),
// evaluada solo para edades >= 35.
type TransitionIndicator struct {
	Risk float64 `json:"risk"`
	Tier string  `json:"tier"`
}

// HormonalShiftAssessment compara la ventana reciente de ciclos contra la
// inmediatamente anterior. Es una señal temprana, no un diagnostico.
type HormonalShiftAssessment struct {
	Status             ShiftStatus          `json:"status"`
	DetectedShifts     []string             `json:"detected_shifts"`
	CycleLengthDelta   float64              `json:"cycle_length_delta"`
	CycleLengthTrend   float64              `json:"cycle_length_trend"`
	FlowDelta          float64              `json:"flow_delta"`
	SymptomDelta       float64              `json:"symptom_delta"`
	Confidence         float64              `json:"confidence"`
	RecommendedActions []string             `json:"recommended_actions"`
	Transition         *TransitionIndicator `json:"transition,omitempty"`
}
