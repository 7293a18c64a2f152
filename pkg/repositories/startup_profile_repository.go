package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/venturelink/match-engine/pkg/apperrors"
	"github.com/venturelink/match-engine/pkg/database"
	"github.com/venturelink/match-engine/pkg/models"
)

// StartupProfileRepository defines the interface for startup profile data access.
type StartupProfileRepository interface {
	// Upsert creates or fully replaces the profile owned by profile.UserID.
	Upsert(ctx context.Context, profile *models.StartupProfile) error
	GetByUserID(ctx context.Context, userID int64) (*models.StartupProfile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.StartupProfile, error)
	// ListUnswiped returns startups that have no match row against the
	// given investor, in insertion order.
	ListUnswiped(ctx context.Context, investorID uuid.UUID) ([]*models.StartupProfile, error)
}

// startupProfileRepository implements StartupProfileRepository using PostgreSQL.
type startupProfileRepository struct {
	db *database.DB
}

// NewStartupProfileRepository creates a new startup profile repository.
func NewStartupProfileRepository(db *database.DB) StartupProfileRepository {
	return &startupProfileRepository{db: db}
}

// Upsert creates or fully replaces a startup profile keyed by user_id.
func (r *startupProfileRepository) Upsert(ctx context.Context, profile *models.StartupProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}

	now := time.Now()
	query := `
		INSERT INTO startup_profiles (
			id, user_id, startup_name, industry, stage, funding_goal,
			current_revenue, team_size, founded_year, location, technologies,
			problem_statement, solution_description, target_market, competitive_advantage,
			pitch_deck_url, website_url, demo_url, logo_url,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $20)
		ON CONFLICT (user_id) DO UPDATE SET
			startup_name = EXCLUDED.startup_name,
			industry = EXCLUDED.industry,
			stage = EXCLUDED.stage,
			funding_goal = EXCLUDED.funding_goal,
			current_revenue = EXCLUDED.current_revenue,
			team_size = EXCLUDED.team_size,
			founded_year = EXCLUDED.founded_year,
			location = EXCLUDED.location,
			technologies = EXCLUDED.technologies,
			problem_statement = EXCLUDED.problem_statement,
			solution_description = EXCLUDED.solution_description,
			target_market = EXCLUDED.target_market,
			competitive_advantage = EXCLUDED.competitive_advantage,
			pitch_deck_url = EXCLUDED.pitch_deck_url,
			website_url = EXCLUDED.website_url,
			demo_url = EXCLUDED.demo_url,
			logo_url = EXCLUDED.logo_url,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		profile.ID,
		profile.UserID,
		profile.StartupName,
		profile.Industry,
		profile.Stage,
		profile.FundingGoal,
		profile.CurrentRevenue,
		profile.TeamSize,
		profile.FoundedYear,
		nullString(profile.Location),
		jsonbValue(profile.Technologies),
		nullString(profile.ProblemStatement),
		nullString(profile.SolutionDescription),
		nullString(profile.TargetMarket),
		nullString(profile.CompetitiveAdvantage),
		nullString(profile.PitchDeckURL),
		nullString(profile.WebsiteURL),
		nullString(profile.DemoURL),
		nullString(profile.LogoURL),
		now,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert startup profile: %w", err)
	}

	return nil
}

const startupProfileColumns = `
	id, user_id, startup_name, industry, stage, funding_goal,
	current_revenue, team_size, founded_year, location, technologies,
	problem_statement, solution_description, target_market, competitive_advantage,
	pitch_deck_url, website_url, demo_url, logo_url,
	created_at, updated_at`

// GetByUserID retrieves the startup profile owned by the given user.
func (r *startupProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.StartupProfile, error) {
	query := `SELECT` + startupProfileColumns + `
		FROM startup_profiles
		WHERE user_id = $1`

	return r.scanOne(r.db.QueryRow(ctx, query, userID))
}

// GetByID retrieves a startup profile by its id.
func (r *startupProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.StartupProfile, error) {
	query := `SELECT` + startupProfileColumns + `
		FROM startup_profiles
		WHERE id = $1`

	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

// ListUnswiped returns startups with no match row against the given investor.
func (r *startupProfileRepository) ListUnswiped(ctx context.Context, investorID uuid.UUID) ([]*models.StartupProfile, error) {
	query := `
		SELECT
			s.id, s.user_id, s.startup_name, s.industry, s.stage, s.funding_goal,
			s.current_revenue, s.team_size, s.founded_year, s.location, s.technologies,
			s.problem_statement, s.solution_description, s.target_market, s.competitive_advantage,
			s.pitch_deck_url, s.website_url, s.demo_url, s.logo_url,
			s.created_at, s.updated_at
		FROM startup_profiles s
		LEFT JOIN matches m ON m.startup_id = s.id AND m.investor_id = $1
		WHERE m.id IS NULL
		ORDER BY s.created_at`

	rows, err := r.db.Query(ctx, query, investorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list startup profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.StartupProfile
	for rows.Next() {
		profile, err := scanStartupProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating startup profiles: %w", err)
	}

	return profiles, nil
}

func (r *startupProfileRepository) scanOne(row pgx.Row) (*models.StartupProfile, error) {
	profile, err := scanStartupProfile(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// scanStartupProfile scans one startup profile row, decoding the JSONB
// technologies column into a string slice.
func scanStartupProfile(row pgx.Row) (*models.StartupProfile, error) {
	var (
		p            models.StartupProfile
		technologies []byte
		location     *string
		problem      *string
		solution     *string
		market       *string
		advantage    *string
		pitchDeckURL *string
		websiteURL   *string
		demoURL      *string
		logoURL      *string
	)

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.StartupName,
		&p.Industry,
		&p.Stage,
		&p.FundingGoal,
		&p.CurrentRevenue,
		&p.TeamSize,
		&p.FoundedYear,
		&location,
		&technologies,
		&problem,
		&solution,
		&market,
		&advantage,
		&pitchDeckURL,
		&websiteURL,
		&demoURL,
		&logoURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan startup profile: %w", err)
	}

	if p.Technologies, err = jsonbSlice(technologies); err != nil {
		return nil, fmt.Errorf("failed to unmarshal technologies: %w", err)
	}

	p.Location = stringValue(location)
	p.ProblemStatement = stringValue(problem)
	p.SolutionDescription = stringValue(solution)
	p.TargetMarket = stringValue(market)
	p.CompetitiveAdvantage = stringValue(advantage)
	p.PitchDeckURL = stringValue(pitchDeckURL)
	p.WebsiteURL = stringValue(websiteURL)
	p.DemoURL = stringValue(demoURL)
	p.LogoURL = stringValue(logoURL)

	return &p, nil
}

// Ensure startupProfileRepository implements StartupProfileRepository at compile time.
var _ StartupProfileRepository = (*startupProfileRepository)(nil)
