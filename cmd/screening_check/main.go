package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"flowsense/internal/domain"
	"flowsense/internal/service"
)

const (
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorReset  = "\033[0m"
)

// Fixture es el formato del archivo de entrada: perfil + historial de
// ciclos ordenado por fecha de inicio ascendente.
type Fixture struct {
	Profile domain.HealthProfile `json:"profile"`
	Cycles  []domain.CycleRecord `json:"cycles"`
}

func main() {
	fixturePath := flag.String("fixture", "", "path to a JSON fixture with profile and cycles")
	asJSON := flag.Bool("json", false, "print the full report as JSON")
	flag.Parse()

	if *fixturePath == "" {
		log.Fatal("usage: screening_check -fixture history.json [-json]")
	}

	raw, err := os.ReadFile(*fixturePath)
	if err != nil {
		log.Fatalf("read fixture: %v", err)
	}

	var fixture Fixture
	if err := json.Unmarshal(raw, &fixture); err != nil {
		log.Fatalf("parse fixture: %v", err)
	}

	engine := service.NewScreeningEngine()
	report := engine.Run(fixture.Profile.UserID, fixture.Cycles, fixture.Profile, time.Now().UTC())

	if *asJSON {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			log.Fatalf("marshal report: %v", err)
		}
		fmt.Println(string(out))
	} else {
		printReport(report)
	}

	if report.OverallRiskLevel >= domain.RiskModerate {
		os.Exit(1)
	}
}

func printReport(report domain.HealthScreeningReport) {
	fmt.Printf("Screening over %d cycles\n", report.CycleCount)
	fmt.Printf("Overall risk: %s%s%s\n\n", levelColor(report.OverallRiskLevel), report.OverallRiskLevel, colorReset)

	for _, cond := range report.Conditions {
		fmt.Printf("%-28s %s%-10s%s score=%.2f confidence=%.2f\n",
			cond.ConditionName,
			levelColor(cond.RiskLevel), cond.RiskLevel, colorReset,
			cond.RiskScore, cond.Confidence,
		)
		for _, f := range cond.RiskFactors {
			fmt.Printf("    factor %-20s %.2f\n", f.Name, f.Value)
		}
	}

	fmt.Printf("\nFertility score: %.2f (confidence %.2f)\n", report.Fertility.OverallScore, report.Fertility.Confidence)
	if report.Wellbeing.MoodSlope != nil {
		fmt.Printf("Mood trend: %+.2f per cycle\n", *report.Wellbeing.MoodSlope)
	}
	if report.Wellbeing.EnergySlope != nil {
		fmt.Printf("Energy trend: %+.2f per cycle\n", *report.Wellbeing.EnergySlope)
	}
	fmt.Printf("Hormonal shift: %s", report.HormonalShift.Status)
	if len(report.HormonalShift.DetectedShifts) > 0 {
		fmt.Printf(" %v", report.HormonalShift.DetectedShifts)
	}
	fmt.Println()

	if len(report.Recommendations) > 0 {
		fmt.Println("\nRecommendations:")
		for _, rec := range report.Recommendations {
			fmt.Printf("  - %s\n", rec)
		}
	}
}

func levelColor(level domain.RiskLevel) string {
	switch {
	case level >= domain.RiskHigh:
		return colorRed
	case level >= domain.RiskModerate:
		return colorYellow
	default:
		return colorGreen
	}
}
