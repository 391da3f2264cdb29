package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"flowsense/internal/domain"
)

// ReportRepository persiste los reportes de screening. El reporte se
// guarda como snapshot JSONB: es un valor inmutable generado en T, no un
// agregado que se edite campo a campo.
type ReportRepository interface {
	Save(ctx context.Context, report domain.HealthScreeningReport) error
	GetLatestByUser(ctx context.Context, userID string) (domain.HealthScreeningReport, error)
}

// PgReportRepository implementa ReportRepository usando pgxpool.
type PgReportRepository struct {
	pool *pgxpool.Pool
}

func NewPgReportRepository(pool *pgxpool.Pool) *PgReportRepository {
	return &PgReportRepository{pool: pool}
}

func (r *PgReportRepository) Save(ctx context.Context, report domain.HealthScreeningReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}
	const query = `
		INSERT INTO screening_reports (id, user_id, generated_at, overall_risk_level, payload)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = r.pool.Exec(ctx, query,
		report.ID,
		report.UserID,
		report.GeneratedAt,
		report.OverallRiskLevel.String(),
		payload,
	)
	return err
}

func (r *PgReportRepository) GetLatestByUser(ctx context.Context, userID string) (domain.HealthScreeningReport, error) {
	const query = `
		SELECT payload
		FROM screening_reports
		WHERE user_id = $1
		ORDER BY generated_at DESC
		LIMIT 1
	`
	var payload []byte
	err := r.pool.QueryRow(ctx, query, userID).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.HealthScreeningReport{}, err
	}
	if err != nil {
		return domain.HealthScreeningReport{}, err
	}
	var report domain.HealthScreeningReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return domain.HealthScreeningReport{}, err
	}
	return report, nil
}
