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

// InvestorProfileRepository defines the interface for investor profile data access.
type InvestorProfileRepository interface {
	// Upsert creates or fully replaces the profile owned by profile.UserID.
	Upsert(ctx context.Context, profile *models.InvestorProfile) error
	GetByUserID(ctx context.Context, userID int64) (*models.InvestorProfile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.InvestorProfile, error)
	// ListUnswiped returns investors that have no match row against the
	// given startup, in insertion order. Already-swiped investors
	// (interested or passed, either side) never reappear.
	ListUnswiped(ctx context.Context, startupID uuid.UUID) ([]*models.InvestorProfile, error)
}

// investorProfileRepository implements InvestorProfileRepository using PostgreSQL.
type investorProfileRepository struct {
	db *database.DB
}

// NewInvestorProfileRepository creates a new investor profile repository.
func NewInvestorProfileRepository(db *database.DB) InvestorProfileRepository {
	return &investorProfileRepository{db: db}
}

const investorProfileColumns = `
	id, user_id, investor_type, investment_range_min, investment_range_max,
	preferred_stages, preferred_industries, geographic_focus, preferred_technologies,
	portfolio_size, successful_exits, bio, linkedin_url, website_url,
	created_at, updated_at`

// Upsert creates or fully replaces an investor profile keyed by user_id.
func (r *investorProfileRepository) Upsert(ctx context.Context, profile *models.InvestorProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}

	now := time.Now()
	query := `
		INSERT INTO investor_profiles (
			id, user_id, investor_type, investment_range_min, investment_range_max,
			preferred_stages, preferred_industries, geographic_focus, preferred_technologies,
			portfolio_size, successful_exits, bio, linkedin_url, website_url,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15)
		ON CONFLICT (user_id) DO UPDATE SET
			investor_type = EXCLUDED.investor_type,
			investment_range_min = EXCLUDED.investment_range_min,
			investment_range_max = EXCLUDED.investment_range_max,
			preferred_stages = EXCLUDED.preferred_stages,
			preferred_industries = EXCLUDED.preferred_industries,
			geographic_focus = EXCLUDED.geographic_focus,
			preferred_technologies = EXCLUDED.preferred_technologies,
			portfolio_size = EXCLUDED.portfolio_size,
			successful_exits = EXCLUDED.successful_exits,
			bio = EXCLUDED.bio,
			linkedin_url = EXCLUDED.linkedin_url,
			website_url = EXCLUDED.website_url,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		profile.ID,
		profile.UserID,
		profile.InvestorType,
		profile.InvestmentRangeMin,
		profile.InvestmentRangeMax,
		jsonbValue(profile.PreferredStages),
		jsonbValue(profile.PreferredIndustries),
		jsonbValue(profile.GeographicFocus),
		jsonbValue(profile.PreferredTechnologies),
		profile.PortfolioSize,
		profile.SuccessfulExits,
		nullString(profile.Bio),
		nullString(profile.LinkedinURL),
		nullString(profile.WebsiteURL),
		now,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert investor profile: %w", err)
	}

	return nil
}

// GetByUserID retrieves the investor profile owned by the given user.
func (r *investorProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.InvestorProfile, error) {
	query := `SELECT` + investorProfileColumns + `
		FROM investor_profiles
		WHERE user_id = $1`

	return r.scanOne(r.db.QueryRow(ctx, query, userID))
}

// GetByID retrieves an investor profile by its id.
func (r *investorProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.InvestorProfile, error) {
	query := `SELECT` + investorProfileColumns + `
		FROM investor_profiles
		WHERE id = $1`

	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

// ListUnswiped returns investors with no match row against the given startup.
func (r *investorProfileRepository) ListUnswiped(ctx context.Context, startupID uuid.UUID) ([]*models.InvestorProfile, error) {
	query := `
		SELECT
			i.id, i.user_id, i.investor_type, i.investment_range_min, i.investment_range_max,
			i.preferred_stages, i.preferred_industries, i.geographic_focus, i.preferred_technologies,
			i.portfolio_size, i.successful_exits, i.bio, i.linkedin_url, i.website_url,
			i.created_at, i.updated_at
		FROM investor_profiles i
		LEFT JOIN matches m ON m.investor_id = i.id AND m.startup_id = $1
		WHERE m.id IS NULL
		ORDER BY i.created_at`

	rows, err := r.db.Query(ctx, query, startupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list investor profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.InvestorProfile
	for rows.Next() {
		profile, err := scanInvestorProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investor profiles: %w", err)
	}

	return profiles, nil
}

func (r *investorProfileRepository) scanOne(row pgx.Row) (*models.InvestorProfile, error) {
	profile, err := scanInvestorProfile(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// scanInvestorProfile scans one investor profile row, decoding the JSONB
// set-valued columns into string slices.
func scanInvestorProfile(row pgx.Row) (*models.InvestorProfile, error) {
	var (
		p            models.InvestorProfile
		stages       []byte
		industries   []byte
		geographies  []byte
		technologies []byte
		bio          *string
		linkedinURL  *string
		websiteURL   *string
	)

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.InvestorType,
		&p.InvestmentRangeMin,
		&p.InvestmentRangeMax,
		&stages,
		&industries,
		&geographies,
		&technologies,
		&p.PortfolioSize,
		&p.SuccessfulExits,
		&bio,
		&linkedinURL,
		&websiteURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan investor profile: %w", err)
	}

	if p.PreferredStages, err = jsonbSlice(stages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preferred_stages: %w", err)
	}
	if p.PreferredIndustries, err = jsonbSlice(industries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preferred_industries: %w", err)
	}
	if p.GeographicFocus, err = jsonbSlice(geographies); err != nil {
		return nil, fmt.Errorf("failed to unmarshal geographic_focus: %w", err)
	}
	if p.PreferredTechnologies, err = jsonbSlice(technologies); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preferred_technologies: %w", err)
	}

	p.Bio = stringValue(bio)
	p.LinkedinURL = stringValue(linkedinURL)
	p.WebsiteURL = stringValue(websiteURL)

	return &p, nil
}

// Ensure investorProfileRepository implements InvestorProfileRepository at compile time.
var _ InvestorProfileRepository = (*investorProfileRepository)(nil)
