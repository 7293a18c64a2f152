package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/venturelink/match-engine/pkg/apperrors"
	"github.com/venturelink/match-engine/pkg/metrics"
	"github.com/venturelink/match-engine/pkg/models"
	"github.com/venturelink/match-engine/pkg/repositories"
)

// MatchService defines the interface for match discovery and interest
// recording.
type MatchService interface {
	// FindMatches returns every not-yet-swiped candidate of the opposite
	// role, scored and sorted descending by total score. Read-only: nothing
	// is persisted. Returns apperrors.ErrProfileNotFound when the requester
	// has no profile of the stated role.
	FindMatches(ctx context.Context, userID int64, role string) ([]models.Candidate, error)
	// RecordInterest records a one-sided swipe and reports whether the pair
	// is now (or already was) mutual. Re-swiping the same target overwrites
	// the stored action; it never errors or accumulates.
	RecordInterest(ctx context.Context, userID int64, role string, targetID uuid.UUID, action string) (bool, error)
	// MutualMatches returns all mutual matches for the requester, joined
	// with the opposite side's profile. A requester with no profile of the
	// stated role gets an empty list, not an error.
	MutualMatches(ctx context.Context, userID int64, role string) ([]*models.MutualMatch, error)
}

// matchService implements MatchService.
type matchService struct {
	investorRepo repositories.InvestorProfileRepository
	startupRepo  repositories.StartupProfileRepository
	matchRepo    repositories.MatchRepository
	logger       *zap.Logger
}

// NewMatchService creates a new match service with dependencies.
func NewMatchService(
	investorRepo repositories.InvestorProfileRepository,
	startupRepo repositories.StartupProfileRepository,
	matchRepo repositories.MatchRepository,
	logger *zap.Logger,
) MatchService {
	return &matchService{
		investorRepo: investorRepo,
		startupRepo:  startupRepo,
		matchRepo:    matchRepo,
		logger:       logger,
	}
}

// FindMatches loads the requester's profile, scores every unswiped candidate
// of the opposite role and returns the full ranked list. No pagination and no
// minimum-score cutoff: zero-score candidates are included. Equal scores keep
// the store's insertion order (stable sort, no secondary key).
func (s *matchService) FindMatches(ctx context.Context, userID int64, role string) ([]models.Candidate, error) {
	var candidates []models.Candidate

	switch role {
	case models.RoleInvestor:
		investor, err := s.investorRepo.GetByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}

		startups, err := s.startupRepo.ListUnswiped(ctx, investor.ID)
		if err != nil {
			return nil, err
		}

		candidates = make([]models.Candidate, 0, len(startups))
		for _, startup := range startups {
			score := ScoreCompatibility(investor, startup)
			candidates = append(candidates, models.Candidate{
				Startup:        startup,
				MatchScore:     score.Total,
				ScoreBreakdown: score.Breakdown,
			})
		}

	case models.RoleStartup:
		startup, err := s.startupRepo.GetByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}

		investors, err := s.investorRepo.ListUnswiped(ctx, startup.ID)
		if err != nil {
			return nil, err
		}

		candidates = make([]models.Candidate, 0, len(investors))
		for _, investor := range investors {
			score := ScoreCompatibility(investor, startup)
			candidates = append(candidates, models.Candidate{
				Investor:       investor,
				MatchScore:     score.Total,
				ScoreBreakdown: score.Breakdown,
			})
		}

	default:
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MatchScore > candidates[j].MatchScore
	})

	s.logger.Debug("Found matches",
		zap.Int64("user_id", userID),
		zap.String("role", role),
		zap.Int("candidates", len(candidates)))
	metrics.RecordMatchSearch(role, len(candidates))

	return candidates, nil
}

// RecordInterest resolves the acting user's profile, orients the pair key
// investor-first regardless of who acted and writes only the acting side's
// interest field. Mutuality is recomputed atomically with the write and is
// sticky once set.
func (s *matchService) RecordInterest(ctx context.Context, userID int64, role string, targetID uuid.UUID, action string) (bool, error) {
	if !models.IsValidInterestAction(action) {
		return false, fmt.Errorf("%w: invalid action %q", apperrors.ErrValidation, action)
	}

	var (
		match    *models.Match
		investor *models.InvestorProfile
		startup  *models.StartupProfile
		err      error
	)

	switch role {
	case models.RoleInvestor:
		investor, err = s.investorRepo.GetByUserID(ctx, userID)
		if err != nil {
			return false, err
		}
		startup, err = s.startupRepo.GetByID(ctx, targetID)
		if err != nil {
			return false, err
		}
		match, err = s.matchRepo.RecordInvestorInterest(ctx, investor.ID, startup.ID, action)
		if err != nil {
			return false, err
		}

	case models.RoleStartup:
		startup, err = s.startupRepo.GetByUserID(ctx, userID)
		if err != nil {
			return false, err
		}
		investor, err = s.investorRepo.GetByID(ctx, targetID)
		if err != nil {
			return false, err
		}
		match, err = s.matchRepo.RecordStartupInterest(ctx, investor.ID, startup.ID, action)
		if err != nil {
			return false, err
		}

	default:
		return false, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}

	// Cache the current score on the ledger row for audit. Failure here must
	// not lose the recorded swipe.
	score := ScoreCompatibility(investor, startup)
	if err := s.matchRepo.CacheScore(ctx, match.ID, score); err != nil {
		s.logger.Warn("Failed to cache compatibility score",
			zap.String("match_id", match.ID.String()),
			zap.Error(err))
	}

	if match.IsMutual {
		s.logger.Info("Mutual match",
			zap.String("investor_id", match.InvestorID.String()),
			zap.String("startup_id", match.StartupID.String()))
	}
	metrics.RecordInterestAction(role, action, match.IsMutual)

	return match.IsMutual, nil
}

// MutualMatches lists mutual matches for the requester's role.
func (s *matchService) MutualMatches(ctx context.Context, userID int64, role string) ([]*models.MutualMatch, error) {
	switch role {
	case models.RoleInvestor:
		investor, err := s.investorRepo.GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrProfileNotFound) {
				return []*models.MutualMatch{}, nil
			}
			return nil, err
		}
		return s.matchRepo.ListMutualForInvestor(ctx, investor.ID)

	case models.RoleStartup:
		startup, err := s.startupRepo.GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrProfileNotFound) {
				return []*models.MutualMatch{}, nil
			}
			return nil, err
		}
		return s.matchRepo.ListMutualForStartup(ctx, startup.ID)

	default:
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}
}

// Ensure matchService implements MatchService at compile time.
var _ MatchService = (*matchService)(nil)
