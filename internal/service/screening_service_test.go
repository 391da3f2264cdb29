package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"flowsense/internal/domain"
	"flowsense/internal/email"
)

type mockCycleRepo struct {
	cycles  []domain.CycleRecord
	listErr error
}

func (m *mockCycleRepo) Create(_ context.Context, cycle domain.CycleRecord) error {
	m.cycles = append(m.cycles, cycle)
	return nil
}

func (m *mockCycleRepo) ListByUser(_ context.Context, _ string) ([]domain.CycleRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.cycles, nil
}

type mockProfileRepo struct {
	profile domain.HealthProfile
	getErr  error
}

func (m *mockProfileRepo) Upsert(_ context.Context, profile domain.HealthProfile) error {
	m.profile = profile
	return nil
}

func (m *mockProfileRepo) GetByUserID(_ context.Context, _ string) (domain.HealthProfile, error) {
	if m.getErr != nil {
		return domain.HealthProfile{}, m.getErr
	}
	return m.profile, nil
}

type mockReportRepo struct {
	saved   []domain.HealthScreeningReport
	saveErr error
}

func (m *mockReportRepo) Save(_ context.Context, report domain.HealthScreeningReport) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, report)
	return nil
}

func (m *mockReportRepo) GetLatestByUser(_ context.Context, _ string) (domain.HealthScreeningReport, error) {
	if len(m.saved) == 0 {
		return domain.HealthScreeningReport{}, errors.New("no reports")
	}
	return m.saved[len(m.saved)-1], nil
}

type mockScreeningCache struct {
	entries map[uint64]domain.HealthScreeningReport
	gets    int
	sets    int
}

func newMockScreeningCache() *mockScreeningCache {
	return &mockScreeningCache{entries: make(map[uint64]domain.HealthScreeningReport)}
}

func (m *mockScreeningCache) Get(_ context.Context, _ string, inputHash uint64) (domain.HealthScreeningReport, bool) {
	m.gets++
	report, ok := m.entries[inputHash]
	return report, ok
}

func (m *mockScreeningCache) Set(_ context.Context, _ string, inputHash uint64, report domain.HealthScreeningReport) {
	m.sets++
	m.entries[inputHash] = report
}

type mockEmailSender struct {
	sent []string
	err  error
}

func (m *mockEmailSender) SendScreeningSummary(_ context.Context, toEmail string, _ domain.HealthScreeningReport) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, toEmail)
	return nil
}

func newScreeningServiceForTest(cycles *mockCycleRepo, profiles *mockProfileRepo, reports *mockReportRepo, users *mockUserRepo, cache *mockScreeningCache, sender *mockEmailSender) *ScreeningService {
	var c ScreeningCache
	if cache != nil {
		c = cache
	}
	var e email.Sender
	if sender != nil {
		e = sender
	}
	return NewScreeningService(zap.NewNop(), NewScreeningEngine(), cycles, profiles, reports, users, c, e)
}

func TestScreeningService_RunPersistsAndCaches(t *testing.T) {
	history, profile := elevatedHistory()
	cycles := &mockCycleRepo{cycles: history}
	profiles := &mockProfileRepo{profile: profile}
	reports := &mockReportRepo{}
	users := newMockUserRepo()
	cache := newMockScreeningCache()

	svc := newScreeningServiceForTest(cycles, profiles, reports, users, cache, nil)

	report, err := svc.RunScreening(context.Background(), "u1")
	if err != nil {
		t.Fatalf("run screening: %v", err)
	}
	if report.ID == "" {
		t.Fatalf("expected a report ID")
	}
	if report.UserID != "u1" {
		t.Fatalf("expected user u1, got %q", report.UserID)
	}
	if len(reports.saved) != 1 {
		t.Fatalf("expected one persisted report, got %d", len(reports.saved))
	}
	if cache.sets != 1 {
		t.Fatalf("expected one cache write, got %d", cache.sets)
	}

	latest, err := svc.LatestReport(context.Background(), "u1")
	if err != nil {
		t.Fatalf("latest report: %v", err)
	}
	if latest.ID != report.ID {
		t.Fatalf("expected latest report %q, got %q", report.ID, latest.ID)
	}
}

func TestScreeningService_CacheHitSkipsRecompute(t *testing.T) {
	history, profile := elevatedHistory()
	cycles := &mockCycleRepo{cycles: history}
	profiles := &mockProfileRepo{profile: profile}
	reports := &mockReportRepo{}
	cache := newMockScreeningCache()

	svc := newScreeningServiceForTest(cycles, profiles, reports, newMockUserRepo(), cache, nil)

	first, err := svc.RunScreening(context.Background(), "u1")
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := svc.RunScreening(context.Background(), "u1")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected the cached report on the second run, got new ID %q", second.ID)
	}
	if len(reports.saved) != 1 {
		t.Fatalf("expected no second persisted report, got %d", len(reports.saved))
	}
}

func TestScreeningService_SaveFailureStillReturnsReport(t *testing.T) {
	history, profile := elevatedHistory()
	cycles := &mockCycleRepo{cycles: history}
	profiles := &mockProfileRepo{profile: profile}
	reports := &mockReportRepo{saveErr: errors.New("db down")}

	svc := newScreeningServiceForTest(cycles, profiles, reports, newMockUserRepo(), nil, nil)

	report, err := svc.RunScreening(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected the computed report despite the save failure, got %v", err)
	}
	if report.OverallRiskLevel < domain.RiskModerate {
		t.Fatalf("unexpected overall level %s", report.OverallRiskLevel)
	}
}

func TestScreeningService_MissingProfileDegrades(t *testing.T) {
	cycles := &mockCycleRepo{cycles: cyclesWithLengths(28, 28, 28, 28, 28, 28)}
	profiles := &mockProfileRepo{getErr: errors.New("no profile")}
	reports := &mockReportRepo{}

	svc := newScreeningServiceForTest(cycles, profiles, reports, newMockUserRepo(), nil, nil)

	report, err := svc.RunScreening(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected screening to run without a profile, got %v", err)
	}
	if report.OverallRiskLevel != domain.RiskMinimal {
		t.Fatalf("expected minimal risk, got %s", report.OverallRiskLevel)
	}
}

func TestScreeningService_NotifiesWhenElevated(t *testing.T) {
	history, profile := elevatedHistory()
	cycles := &mockCycleRepo{cycles: history}
	profiles := &mockProfileRepo{profile: profile}
	users := newMockUserRepo()
	if err := users.Create(context.Background(), domain.User{ID: "u1", Email: "ana@example.com"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	sender := &mockEmailSender{}

	svc := newScreeningServiceForTest(cycles, profiles, &mockReportRepo{}, users, nil, sender)

	if _, err := svc.RunScreening(context.Background(), "u1"); err != nil {
		t.Fatalf("run screening: %v", err)
	}
	if len(sender.sent) != 1 || sender.sent[0] != "ana@example.com" {
		t.Fatalf("expected one summary email to the user, got %v", sender.sent)
	}
}

func TestScreeningService_NoEmailOnMinimalRisk(t *testing.T) {
	cycles := &mockCycleRepo{cycles: cyclesWithLengths(28, 28, 28, 28, 28, 28)}
	users := newMockUserRepo()
	if err := users.Create(context.Background(), domain.User{ID: "u1", Email: "ana@example.com"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	sender := &mockEmailSender{}

	svc := newScreeningServiceForTest(cycles, &mockProfileRepo{}, &mockReportRepo{}, users, nil, sender)

	if _, err := svc.RunScreening(context.Background(), "u1"); err != nil {
		t.Fatalf("run screening: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("did not expect a summary email at minimal risk, got %v", sender.sent)
	}
}

func TestScreeningInputHash_StableAndOrderInsensitive(t *testing.T) {
	history, profile := elevatedHistory()

	first := ScreeningInputHash(history, profile)
	second := ScreeningInputHash(history, profile)
	if first != second {
		t.Fatalf("expected a stable hash, got %x and %x", first, second)
	}

	// Symptom order within a cycle does not change the hash.
	reordered := make([]domain.CycleRecord, len(history))
	copy(reordered, history)
	for i := range reordered {
		if len(reordered[i].Symptoms) == 2 {
			reordered[i].Symptoms = []domain.Symptom{reordered[i].Symptoms[1], reordered[i].Symptoms[0]}
		}
	}
	if got := ScreeningInputHash(reordered, profile); got != first {
		t.Fatalf("expected symptom order not to affect the hash")
	}

	changed := make([]domain.CycleRecord, len(history))
	copy(changed, history)
	changed[0].Length = changed[0].Length + 1
	if got := ScreeningInputHash(changed, profile); got == first {
		t.Fatalf("expected a different hash after changing a cycle length")
	}
}

func TestScreeningInputHash_DistinguishesOptionalFields(t *testing.T) {
	base := cyclesWithLengths(28, 28, 28)
	profile := domain.HealthProfile{UserID: "u1"}

	// The same value on two different optional fields must not collide:
	// the cached report for one input would be served for the other.
	withPain := make([]domain.CycleRecord, len(base))
	copy(withPain, base)
	withPain[0].PainScore = intPtr(8)

	withMood := make([]domain.CycleRecord, len(base))
	copy(withMood, base)
	withMood[0].MoodScore = intPtr(8)

	if ScreeningInputHash(withPain, profile) == ScreeningInputHash(withMood, profile) {
		t.Fatalf("expected a pain score and a mood score to hash differently")
	}

	heavy := domain.HealthProfile{UserID: "u1", WeightKg: floatPtr(60)}
	tall := domain.HealthProfile{UserID: "u1", HeightCm: floatPtr(60)}
	if ScreeningInputHash(base, heavy) == ScreeningInputHash(base, tall) {
		t.Fatalf("expected weight and height to hash differently")
	}

	if ScreeningInputHash(withPain, profile) == ScreeningInputHash(base, profile) {
		t.Fatalf("expected an absent optional field to hash differently from a present one")
	}
}
