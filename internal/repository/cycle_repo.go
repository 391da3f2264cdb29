package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"flowsense/internal/domain"
)

// CycleRepository define el contrato de persistencia para ciclos. El
// listado viene ordenado ascendente por fecha de inicio, que es el orden
// que asume el motor de analisis.
type CycleRepository interface {
	Create(ctx context.Context, cycle domain.CycleRecord) error
	ListByUser(ctx context.Context, userID string) ([]domain.CycleRecord, error)
}

// PgCycleRepository implementa CycleRepository usando pgxpool.
type PgCycleRepository struct {
	pool *pgxpool.Pool
}

func NewPgCycleRepository(pool *pgxpool.Pool) *PgCycleRepository {
	return &PgCycleRepository{pool: pool}
}

func (r *PgCycleRepository) Create(ctx context.Context, cycle domain.CycleRecord) error {
	const query = `
		INSERT INTO cycles (id, user_id, start_date, end_date, length, symptoms, flow_intensity,
			pain_score, mood_score, energy_score, ovulation_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	symptoms := make([]string, 0, len(cycle.Symptoms))
	for _, s := range cycle.Symptoms {
		symptoms = append(symptoms, string(s))
	}
	_, err := r.pool.Exec(ctx, query,
		cycle.ID,
		cycle.UserID,
		cycle.StartDate,
		cycle.EndDate,
		cycle.Length,
		symptoms,
		string(cycle.FlowIntensity),
		cycle.PainScore,
		cycle.MoodScore,
		cycle.EnergyScore,
		cycle.OvulationDate,
		cycle.CreatedAt,
	)
	return err
}

func (r *PgCycleRepository) ListByUser(ctx context.Context, userID string) ([]domain.CycleRecord, error) {
	const query = `
		SELECT id, user_id, start_date, end_date, length, symptoms, flow_intensity,
			pain_score, mood_score, energy_score, ovulation_date, created_at
		FROM cycles
		WHERE user_id = $1
		ORDER BY start_date ASC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cycles []domain.CycleRecord
	for rows.Next() {
		var (
			c        domain.CycleRecord
			symptoms []string
			flow     string
		)
		if err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.StartDate,
			&c.EndDate,
			&c.Length,
			&symptoms,
			&flow,
			&c.PainScore,
			&c.MoodScore,
			&c.EnergyScore,
			&c.OvulationDate,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		c.FlowIntensity = domain.FlowIntensity(flow)
		c.Symptoms = make([]domain.Symptom, 0, len(symptoms))
		for _, s := range symptoms {
			c.Symptoms = append(c.Symptoms, domain.Symptom(s))
		}
		cycles = append(cycles, c)
	}
	return cycles, rows.Err()
}
