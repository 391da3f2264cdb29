package service

import "flowsense/internal/domain"

// frequentThreshold: un marcador es "frecuente" si aparece en mas del 30%
// de los ciclos del historial.
const frequentThreshold = 0.3

// minFrequentMarkers: el clustering exige co-ocurrencia; un sintoma
// aislado no es señal.
const minFrequentMarkers = 2

// SymptomCluster es el resultado de buscar los marcadores de una condicion
// en el historial.
type SymptomCluster struct {
	// Score = marcadores frecuentes / total de marcadores de la condicion.
	Score float64
	// Frequent conserva el orden de la lista de marcadores de la condicion.
	Frequent []domain.Symptom
	// Fractions mapea cada marcador a su fraccion de ocurrencia.
	Fractions map[domain.Symptom]float64
}

// HasSignal indica si el cluster alcanzo la co-ocurrencia minima.
func (c SymptomCluster) HasSignal() bool {
	return len(c.Frequent) >= minFrequentMarkers
}

// SymptomClusterDetector calcula frecuencias de marcadores por condicion.
// Sin estado; seguro para uso concurrente.
type SymptomClusterDetector struct{}

// Detect computa la fraccion de ocurrencia de cada marcador y el puntaje
// de clustering. Con historial vacio devuelve cluster sin señal.
func (SymptomClusterDetector) Detect(cycles []domain.CycleRecord, markers []domain.Symptom) SymptomCluster {
	cluster := SymptomCluster{
		Fractions: make(map[domain.Symptom]float64, len(markers)),
	}
	if len(cycles) == 0 || len(markers) == 0 {
		return cluster
	}

	total := float64(len(cycles))
	for _, marker := range markers {
		count := 0
		for _, c := range cycles {
			if c.HasSymptom(marker) {
				count++
			}
		}
		fraction := float64(count) / total
		cluster.Fractions[marker] = fraction
		if fraction > frequentThreshold {
			cluster.Frequent = append(cluster.Frequent, marker)
		}
	}

	cluster.Score = float64(len(cluster.Frequent)) / float64(len(markers))
	return cluster
}
