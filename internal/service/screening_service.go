package service

import (
	"context"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"flowsense/internal/domain"
	"flowsense/internal/email"
	"flowsense/internal/repository"
)

// ScreeningCache guarda reportes por (usuario, hash de insumos). Como el
// motor es referencialmente transparente, la entrada es valida mientras
// los insumos no cambien; no hace falta invalidacion adicional.
type ScreeningCache interface {
	Get(ctx context.Context, userID string, inputHash uint64) (domain.HealthScreeningReport, bool)
	Set(ctx context.Context, userID string, inputHash uint64, report domain.HealthScreeningReport)
}

// ScreeningService coordina el screening de una usuaria: junta insumos,
// corre el motor y persiste/cachea el resultado. El reporte es un valor
// puro: si la persistencia falla se loguea y el reporte igual se devuelve.
type ScreeningService struct {
	logger      *zap.Logger
	engine      *ScreeningEngine
	cycles      repository.CycleRepository
	profiles    repository.HealthProfileRepository
	reports     repository.ReportRepository
	users       repository.UserRepository
	cache       ScreeningCache
	emailSender email.Sender
}

func NewScreeningService(
	logger *zap.Logger,
	engine *ScreeningEngine,
	cycles repository.CycleRepository,
	profiles repository.HealthProfileRepository,
	reports repository.ReportRepository,
	users repository.UserRepository,
	cache ScreeningCache,
	emailSender email.Sender,
) *ScreeningService {
	if engine == nil {
		engine = NewScreeningEngine()
	}
	return &ScreeningService{
		logger:      logger,
		engine:      engine,
		cycles:      cycles,
		profiles:    profiles,
		reports:     reports,
		users:       users,
		cache:       cache,
		emailSender: emailSender,
	}
}

// RunScreening ejecuta el screening completo para la usuaria.
func (s *ScreeningService) RunScreening(ctx context.Context, userID string) (domain.HealthScreeningReport, error) {
	cycles, err := s.cycles.ListByUser(ctx, userID)
	if err != nil {
		return domain.HealthScreeningReport{}, fmt.Errorf("list cycles for user %s: %w", userID, err)
	}

	// Perfil ausente degrada a factores omitidos, no es un error.
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		profile = domain.HealthProfile{UserID: userID}
	}

	inputHash := ScreeningInputHash(cycles, profile)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, userID, inputHash); ok {
			return cached, nil
		}
	}

	report := s.engine.Run(userID, cycles, profile, time.Now().UTC())
	report.ID = uuid.NewString()

	if s.reports != nil {
		if err := s.reports.Save(ctx, report); err != nil {
			// El reporte ya computado sigue siendo valido aunque no se guarde.
			s.logger.Warn("screening report save failed", zap.Error(err), zap.String("user_id", userID))
		}
	}

	if s.cache != nil {
		s.cache.Set(ctx, userID, inputHash, report)
	}

	s.notifyIfElevated(ctx, userID, report)

	return report, nil
}

// LatestReport devuelve el ultimo reporte persistido de la usuaria.
func (s *ScreeningService) LatestReport(ctx context.Context, userID string) (domain.HealthScreeningReport, error) {
	if s.reports == nil {
		return domain.HealthScreeningReport{}, fmt.Errorf("report repository not configured")
	}
	return s.reports.GetLatestByUser(ctx, userID)
}

// notifyIfElevated manda el resumen por correo cuando el riesgo global es
// moderate o mas. El envio es best-effort: un fallo no afecta el reporte.
func (s *ScreeningService) notifyIfElevated(ctx context.Context, userID string, report domain.HealthScreeningReport) {
	if s.emailSender == nil || s.users == nil || report.OverallRiskLevel < domain.RiskModerate {
		return
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.logger.Warn("screening summary skipped, user lookup failed", zap.Error(err), zap.String("user_id", userID))
		return
	}
	if err := s.emailSender.SendScreeningSummary(ctx, user.Email, report); err != nil {
		s.logger.Warn("screening summary email failed", zap.Error(err), zap.String("user_id", userID))
	}
}

// ScreeningInputHash calcula un hash FNV-1a estable de los insumos del
// motor. Se recorre todo en orden fijo (sintomas ordenados) y cada campo
// opcional escribe su tag y una bandera de presencia antes del valor, para
// que dos historiales con campos opcionales distintos nunca compartan el
// mismo flujo de bytes.
func ScreeningInputHash(cycles []domain.CycleRecord, profile domain.HealthProfile) uint64 {
	h := fnv.New64a()
	buf := make([]byte, 8)

	writeInt := func(v int64) {
		binary.BigEndian.PutUint64(buf, uint64(v))
		h.Write(buf)
	}
	writeStr := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	writeOpt := func(tag byte, present bool) bool {
		flag := byte(0)
		if present {
			flag = 1
		}
		h.Write([]byte{tag, flag})
		return present
	}

	for _, c := range cycles {
		writeStr(c.ID)
		writeInt(c.StartDate.Unix())
		if writeOpt('E', c.EndDate != nil) {
			writeInt(c.EndDate.Unix())
		}
		writeInt(int64(c.Length))
		writeStr(string(c.FlowIntensity))
		symptoms := make([]string, 0, len(c.Symptoms))
		for _, s := range c.Symptoms {
			symptoms = append(symptoms, string(s))
		}
		sort.Strings(symptoms)
		writeInt(int64(len(symptoms)))
		for _, s := range symptoms {
			writeStr(s)
		}
		if writeOpt('P', c.PainScore != nil) {
			writeInt(int64(*c.PainScore))
		}
		if writeOpt('M', c.MoodScore != nil) {
			writeInt(int64(*c.MoodScore))
		}
		if writeOpt('G', c.EnergyScore != nil) {
			writeInt(int64(*c.EnergyScore))
		}
		if writeOpt('O', c.OvulationDate != nil) {
			writeInt(c.OvulationDate.Unix())
		}
	}

	if writeOpt('A', profile.Age != nil) {
		writeInt(int64(*profile.Age))
	}
	if writeOpt('W', profile.WeightKg != nil) {
		writeInt(int64(*profile.WeightKg * 1000))
	}
	if writeOpt('H', profile.HeightCm != nil) {
		writeInt(int64(*profile.HeightCm * 1000))
	}
	history := make([]string, 0, len(profile.FamilyHistory))
	for _, t := range profile.FamilyHistory {
		history = append(history, string(t))
	}
	sort.Strings(history)
	for _, t := range history {
		writeStr(t)
	}
	lifestyle := make([]string, 0, len(profile.Lifestyle))
	for _, t := range profile.Lifestyle {
		lifestyle = append(lifestyle, string(t))
	}
	sort.Strings(lifestyle)
	for _, t := range lifestyle {
		writeStr(t)
	}

	return h.Sum64()
}
