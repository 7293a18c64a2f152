package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/venturelink/match-engine/pkg/apperrors"
	"github.com/venturelink/match-engine/pkg/metrics"
	"github.com/venturelink/match-engine/pkg/models"
	"github.com/venturelink/match-engine/pkg/repositories"
)

// ProfileService defines the interface for profile operations.
type ProfileService interface {
	// UpsertInvestor creates or fully replaces the investor profile owned
	// by profile.UserID. Partial updates are not supported.
	UpsertInvestor(ctx context.Context, profile *models.InvestorProfile) error
	// UpsertStartup is the startup-side equivalent.
	UpsertStartup(ctx context.Context, profile *models.StartupProfile) error
	// GetMine returns both of the user's profiles; either may be nil when
	// the user has not created that role's profile.
	GetMine(ctx context.Context, userID int64) (*models.InvestorProfile, *models.StartupProfile, error)
}

// profileService implements ProfileService.
type profileService struct {
	investorRepo repositories.InvestorProfileRepository
	startupRepo  repositories.StartupProfileRepository
	logger       *zap.Logger
}

// NewProfileService creates a new profile service with dependencies.
func NewProfileService(
	investorRepo repositories.InvestorProfileRepository,
	startupRepo repositories.StartupProfileRepository,
	logger *zap.Logger,
) ProfileService {
	return &profileService{
		investorRepo: investorRepo,
		startupRepo:  startupRepo,
		logger:       logger,
	}
}

// UpsertInvestor validates and stores an investor profile.
func (s *profileService) UpsertInvestor(ctx context.Context, profile *models.InvestorProfile) error {
	if profile.UserID == 0 {
		return fmt.Errorf("%w: user_id is required", apperrors.ErrValidation)
	}
	if !models.IsValidInvestorType(profile.InvestorType) {
		return fmt.Errorf("%w: invalid investor_type %q", apperrors.ErrValidation, profile.InvestorType)
	}
	if profile.InvestmentRangeMin != nil && profile.InvestmentRangeMax != nil &&
		*profile.InvestmentRangeMin > *profile.InvestmentRangeMax {
		return fmt.Errorf("%w: investment_range_min exceeds investment_range_max", apperrors.ErrValidation)
	}

	if err := s.investorRepo.Upsert(ctx, profile); err != nil {
		return err
	}

	s.logger.Info("Investor profile saved",
		zap.Int64("user_id", profile.UserID),
		zap.String("profile_id", profile.ID.String()))
	metrics.RecordProfileUpsert(models.RoleInvestor)
	return nil
}

// UpsertStartup validates and stores a startup profile.
func (s *profileService) UpsertStartup(ctx context.Context, profile *models.StartupProfile) error {
	if profile.UserID == 0 {
		return fmt.Errorf("%w: user_id is required", apperrors.ErrValidation)
	}
	if profile.StartupName == "" {
		return fmt.Errorf("%w: startup_name is required", apperrors.ErrValidation)
	}
	if profile.Industry == "" {
		return fmt.Errorf("%w: industry is required", apperrors.ErrValidation)
	}
	if !models.IsValidStage(profile.Stage) {
		return fmt.Errorf("%w: invalid stage %q", apperrors.ErrValidation, profile.Stage)
	}

	if err := s.startupRepo.Upsert(ctx, profile); err != nil {
		return err
	}

	s.logger.Info("Startup profile saved",
		zap.Int64("user_id", profile.UserID),
		zap.String("profile_id", profile.ID.String()))
	metrics.RecordProfileUpsert(models.RoleStartup)
	return nil
}

// GetMine returns the user's investor and startup profiles. A missing
// profile of either role is returned as nil, not an error.
func (s *profileService) GetMine(ctx context.Context, userID int64) (*models.InvestorProfile, *models.StartupProfile, error) {
	investor, err := s.investorRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, apperrors.ErrProfileNotFound) {
		return nil, nil, err
	}

	startup, err := s.startupRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, apperrors.ErrProfileNotFound) {
		return nil, nil, err
	}

	return investor, startup, nil
}

// Ensure profileService implements ProfileService at compile time.
var _ ProfileService = (*profileService)(nil)
