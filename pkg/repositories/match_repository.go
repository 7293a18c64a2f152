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

// MatchRepository defines the interface for match ledger data access.
// The pair key is always oriented (investor_id, startup_id); the unique_match
// constraint collapses concurrent inserts for the same pair into one row.
type MatchRepository interface {
	GetByPair(ctx context.Context, investorID, startupID uuid.UUID) (*models.Match, error)
	// RecordInvestorInterest upserts the investor side of the pair's ledger
	// row and recomputes is_mutual in the same atomic statement. is_mutual
	// is sticky: once true it is never cleared.
	RecordInvestorInterest(ctx context.Context, investorID, startupID uuid.UUID, action string) (*models.Match, error)
	// RecordStartupInterest is the startup-side mirror.
	RecordStartupInterest(ctx context.Context, investorID, startupID uuid.UUID, action string) (*models.Match, error)
	// CacheScore stores the compatibility score on the match row and writes
	// a five-factor breakdown row to the match_scores audit table.
	CacheScore(ctx context.Context, matchID uuid.UUID, score models.CompatibilityScore) error
	// ListMutualForInvestor returns all mutual matches for an investor,
	// joined with the startup profiles.
	ListMutualForInvestor(ctx context.Context, investorID uuid.UUID) ([]*models.MutualMatch, error)
	// ListMutualForStartup returns all mutual matches for a startup,
	// joined with the investor profiles.
	ListMutualForStartup(ctx context.Context, startupID uuid.UUID) ([]*models.MutualMatch, error)
}

// matchRepository implements MatchRepository using PostgreSQL.
type matchRepository struct {
	db *database.DB
}

// NewMatchRepository creates a new match repository.
func NewMatchRepository(db *database.DB) MatchRepository {
	return &matchRepository{db: db}
}

const matchColumns = `
	id, investor_id, startup_id, compatibility_score,
	investor_interest, startup_interest, is_mutual, created_at, updated_at`

// GetByPair retrieves the ledger row for one (investor, startup) pair.
// Returns apperrors.ErrNotFound when neither side has expressed interest yet.
func (r *matchRepository) GetByPair(ctx context.Context, investorID, startupID uuid.UUID) (*models.Match, error) {
	query := `SELECT` + matchColumns + `
		FROM matches
		WHERE investor_id = $1 AND startup_id = $2`

	match, err := scanMatch(r.db.QueryRow(ctx, query, investorID, startupID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return match, nil
}

// recordInvestorInterestQuery upserts the investor side. On first contact the
// row is created with the startup side still pending; on re-swipe the action
// overwrites the previous one. is_mutual flips true when both sides read
// 'interested' after the write and never flips back (sticky OR).
const recordInvestorInterestQuery = `
	INSERT INTO matches (id, investor_id, startup_id, investor_interest, created_at, updated_at)
	VALUES ($1, $2, $3, $4, now(), now())
	ON CONFLICT ON CONSTRAINT unique_match DO UPDATE SET
		investor_interest = EXCLUDED.investor_interest,
		is_mutual = matches.is_mutual
			OR (EXCLUDED.investor_interest = 'interested' AND matches.startup_interest = 'interested'),
		updated_at = now()
	RETURNING` + matchColumns

const recordStartupInterestQuery = `
	INSERT INTO matches (id, investor_id, startup_id, startup_interest, created_at, updated_at)
	VALUES ($1, $2, $3, $4, now(), now())
	ON CONFLICT ON CONSTRAINT unique_match DO UPDATE SET
		startup_interest = EXCLUDED.startup_interest,
		is_mutual = matches.is_mutual
			OR (EXCLUDED.startup_interest = 'interested' AND matches.investor_interest = 'interested'),
		updated_at = now()
	RETURNING` + matchColumns

// RecordInvestorInterest upserts the investor side of the pair atomically.
func (r *matchRepository) RecordInvestorInterest(ctx context.Context, investorID, startupID uuid.UUID, action string) (*models.Match, error) {
	match, err := scanMatch(r.db.QueryRow(ctx, recordInvestorInterestQuery, uuid.New(), investorID, startupID, action))
	if err != nil {
		return nil, fmt.Errorf("failed to record investor interest: %w", err)
	}
	return match, nil
}

// RecordStartupInterest upserts the startup side of the pair atomically.
func (r *matchRepository) RecordStartupInterest(ctx context.Context, investorID, startupID uuid.UUID, action string) (*models.Match, error) {
	match, err := scanMatch(r.db.QueryRow(ctx, recordStartupInterestQuery, uuid.New(), investorID, startupID, action))
	if err != nil {
		return nil, fmt.Errorf("failed to record startup interest: %w", err)
	}
	return match, nil
}

// CacheScore stores the score on the match row and appends an audit row.
func (r *matchRepository) CacheScore(ctx context.Context, matchID uuid.UUID, score models.CompatibilityScore) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	updateQuery := `UPDATE matches SET compatibility_score = $1, updated_at = $2 WHERE id = $3`
	result, err := tx.Exec(ctx, updateQuery, score.Total, time.Now(), matchID)
	if err != nil {
		return fmt.Errorf("failed to cache compatibility score: %w", err)
	}
	if result.RowsAffected() == 0 {
		err = apperrors.ErrNotFound
		return err
	}

	insertQuery := `
		INSERT INTO match_scores (
			id, match_id, industry_score, stage_score, investment_score,
			geography_score, technology_score, overall_score, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = tx.Exec(ctx, insertQuery,
		uuid.New(),
		matchID,
		score.Breakdown.Industry,
		score.Breakdown.Stage,
		score.Breakdown.Investment,
		score.Breakdown.Geography,
		score.Breakdown.Technology,
		score.Total,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert match score breakdown: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListMutualForInvestor returns mutual matches joined with startup profiles.
func (r *matchRepository) ListMutualForInvestor(ctx context.Context, investorID uuid.UUID) ([]*models.MutualMatch, error) {
	query := `
		SELECT
			s.id, s.user_id, s.startup_name, s.industry, s.stage, s.funding_goal,
			s.current_revenue, s.team_size, s.founded_year, s.location, s.technologies,
			s.problem_statement, s.solution_description, s.target_market, s.competitive_advantage,
			s.pitch_deck_url, s.website_url, s.demo_url, s.logo_url,
			s.created_at, s.updated_at,
			m.created_at AS matched_at
		FROM matches m
		JOIN startup_profiles s ON m.startup_id = s.id
		WHERE m.investor_id = $1 AND m.is_mutual = TRUE
		ORDER BY m.created_at DESC`

	rows, err := r.db.Query(ctx, query, investorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list mutual matches: %w", err)
	}
	defer rows.Close()

	var matches []*models.MutualMatch
	for rows.Next() {
		entry, err := scanMutualStartup(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mutual matches: %w", err)
	}

	return matches, nil
}

// ListMutualForStartup returns mutual matches joined with investor profiles.
func (r *matchRepository) ListMutualForStartup(ctx context.Context, startupID uuid.UUID) ([]*models.MutualMatch, error) {
	query := `
		SELECT
			i.id, i.user_id, i.investor_type, i.investment_range_min, i.investment_range_max,
			i.preferred_stages, i.preferred_industries, i.geographic_focus, i.preferred_technologies,
			i.portfolio_size, i.successful_exits, i.bio, i.linkedin_url, i.website_url,
			i.created_at, i.updated_at,
			m.created_at AS matched_at
		FROM matches m
		JOIN investor_profiles i ON m.investor_id = i.id
		WHERE m.startup_id = $1 AND m.is_mutual = TRUE
		ORDER BY m.created_at DESC`

	rows, err := r.db.Query(ctx, query, startupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list mutual matches: %w", err)
	}
	defer rows.Close()

	var matches []*models.MutualMatch
	for rows.Next() {
		entry, err := scanMutualInvestor(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mutual matches: %w", err)
	}

	return matches, nil
}

func scanMatch(row pgx.Row) (*models.Match, error) {
	var m models.Match
	err := row.Scan(
		&m.ID,
		&m.InvestorID,
		&m.StartupID,
		&m.CompatibilityScore,
		&m.InvestorInterest,
		&m.StartupInterest,
		&m.IsMutual,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// scanMutualStartup scans a startup profile plus the matched_at timestamp.
func scanMutualStartup(rows pgx.Rows) (*models.MutualMatch, error) {
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
		matchedAt    time.Time
	)

	err := rows.Scan(
		&p.ID, &p.UserID, &p.StartupName, &p.Industry, &p.Stage, &p.FundingGoal,
		&p.CurrentRevenue, &p.TeamSize, &p.FoundedYear, &location, &technologies,
		&problem, &solution, &market, &advantage,
		&pitchDeckURL, &websiteURL, &demoURL, &logoURL,
		&p.CreatedAt, &p.UpdatedAt,
		&matchedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan mutual match: %w", err)
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

	return &models.MutualMatch{Startup: &p, MatchedAt: matchedAt}, nil
}

// scanMutualInvestor scans an investor profile plus the matched_at timestamp.
func scanMutualInvestor(rows pgx.Rows) (*models.MutualMatch, error) {
	var (
		p            models.InvestorProfile
		stages       []byte
		industries   []byte
		geographies  []byte
		technologies []byte
		bio          *string
		linkedinURL  *string
		websiteURL   *string
		matchedAt    time.Time
	)

	err := rows.Scan(
		&p.ID, &p.UserID, &p.InvestorType, &p.InvestmentRangeMin, &p.InvestmentRangeMax,
		&stages, &industries, &geographies, &technologies,
		&p.PortfolioSize, &p.SuccessfulExits, &bio, &linkedinURL, &websiteURL,
		&p.CreatedAt, &p.UpdatedAt,
		&matchedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan mutual match: %w", err)
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

	return &models.MutualMatch{Investor: &p, MatchedAt: matchedAt}, nil
}

// Ensure matchRepository implements MatchRepository at compile time.
var _ MatchRepository = (*matchRepository)(nil)
