package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"flowsense/internal/domain"
)

// HealthProfileRepository define el contrato de persistencia del perfil
// de salud. Upsert: cada usuaria tiene a lo sumo un perfil vigente.
type HealthProfileRepository interface {
	Upsert(ctx context.Context, profile domain.HealthProfile) error
	GetByUserID(ctx context.Context, userID string) (domain.HealthProfile, error)
}

// PgHealthProfileRepository implementa HealthProfileRepository usando pgxpool.
type PgHealthProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgHealthProfileRepository(pool *pgxpool.Pool) *PgHealthProfileRepository {
	return &PgHealthProfileRepository{pool: pool}
}

func (r *PgHealthProfileRepository) Upsert(ctx context.Context, profile domain.HealthProfile) error {
	const query = `
		INSERT INTO health_profiles (id, user_id, age, weight_kg, height_cm, family_history, lifestyle, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			age = EXCLUDED.age,
			weight_kg = EXCLUDED.weight_kg,
			height_cm = EXCLUDED.height_cm,
			family_history = EXCLUDED.family_history,
			lifestyle = EXCLUDED.lifestyle,
			updated_at = EXCLUDED.updated_at
	`
	history := make([]string, 0, len(profile.FamilyHistory))
	for _, t := range profile.FamilyHistory {
		history = append(history, string(t))
	}
	lifestyle := make([]string, 0, len(profile.Lifestyle))
	for _, t := range profile.Lifestyle {
		lifestyle = append(lifestyle, string(t))
	}
	_, err := r.pool.Exec(ctx, query,
		profile.ID,
		profile.UserID,
		profile.Age,
		profile.WeightKg,
		profile.HeightCm,
		history,
		lifestyle,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	return err
}

func (r *PgHealthProfileRepository) GetByUserID(ctx context.Context, userID string) (domain.HealthProfile, error) {
	const query = `
		SELECT id, user_id, age, weight_kg, height_cm, family_history, lifestyle, created_at, updated_at
		FROM health_profiles
		WHERE user_id = $1
	`
	var (
		p         domain.HealthProfile
		history   []string
		lifestyle []string
	)
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.Age,
		&p.WeightKg,
		&p.HeightCm,
		&history,
		&lifestyle,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.HealthProfile{}, err
	}
	for _, t := range history {
		p.FamilyHistory = append(p.FamilyHistory, domain.ConditionTag(t))
	}
	for _, t := range lifestyle {
		p.Lifestyle = append(p.Lifestyle, domain.LifestyleTag(t))
	}
	return p, err
}
