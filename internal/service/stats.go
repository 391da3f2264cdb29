package service

import (
	"math"

	"flowsense/internal/domain"
)

// DefaultCycleLength es el valor documentado que se usa como media cuando
// no hay historial: un ciclo de referencia de 28 dias, no un cero silencioso.
const DefaultCycleLength = 28.0

// StatsAnalyzer agrupa funciones puras sobre secuencias numericas del
// historial de ciclos. No guarda estado entre llamadas.
type StatsAnalyzer struct{}

// DefaultStatsAnalyzer permite uso directo sin instanciar.
var DefaultStatsAnalyzer = StatsAnalyzer{}

// Mean devuelve el promedio aritmetico. 0 para secuencias vacias.
func (StatsAnalyzer) Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Variability devuelve la desviacion estandar poblacional. Con menos de 3
// puntos no hay señal suficiente y devuelve 0, no es un error.
func (s StatsAnalyzer) Variability(values []float64) float64 {
	if len(values) < 3 {
		return 0
	}
	mean := s.Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// MeanCycleLength promedia las duraciones conocidas del historial.
// Historial vacio devuelve DefaultCycleLength.
func (s StatsAnalyzer) MeanCycleLength(cycles []domain.CycleRecord) float64 {
	lengths := CycleLengths(cycles)
	if len(lengths) == 0 {
		return DefaultCycleLength
	}
	return s.Mean(lengths)
}

// TrendSlope calcula la pendiente de minimos cuadrados ordinarios usando
// el indice de la secuencia como x. Sirve tanto para deriva de duracion de
// ciclo como para tendencias de animo/energia.
func (StatsAnalyzer) TrendSlope(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (fn*sumXY - sumX*sumY) / denom
}

// FirstVsSecondHalf compara el promedio de la primera mitad contra el de
// la segunda, para señales de progresion (ej. dolor que empeora). Con
// menos de 4 puntos devuelve mitades iguales (delta cero).
func (s StatsAnalyzer) FirstVsSecondHalf(values []float64) (float64, float64) {
	if len(values) < 4 {
		m := s.Mean(values)
		return m, m
	}
	mid := len(values) / 2
	return s.Mean(values[:mid]), s.Mean(values[mid:])
}

// CycleLengths extrae las duraciones conocidas (en dias) del historial,
// en el mismo orden, descartando ciclos sin duracion derivable.
func CycleLengths(cycles []domain.CycleRecord) []float64 {
	lengths := make([]float64, 0, len(cycles))
	for _, c := range cycles {
		if l := c.EffectiveLength(); l > 0 {
			lengths = append(lengths, float64(l))
		}
	}
	return lengths
}
