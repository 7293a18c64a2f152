package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/venturelink/match-engine/pkg/apperrors"
	"github.com/venturelink/match-engine/pkg/models"
)

// mockInvestorProfileRepository is a configurable mock for service tests.
type mockInvestorProfileRepository struct {
	profile   *models.InvestorProfile
	profiles  []*models.InvestorProfile
	upsertErr error
	getErr    error
	listErr   error

	// Capture inputs for verification
	capturedProfile   *models.InvestorProfile
	capturedUserID    int64
	capturedID        uuid.UUID
	capturedStartupID uuid.UUID
}

func (m *mockInvestorProfileRepository) Upsert(ctx context.Context, profile *models.InvestorProfile) error {
	m.capturedProfile = profile
	return m.upsertErr
}

func (m *mockInvestorProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.InvestorProfile, error) {
	m.capturedUserID = userID
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.profile == nil {
		return nil, apperrors.ErrProfileNotFound
	}
	return m.profile, nil
}

func (m *mockInvestorProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.InvestorProfile, error) {
	m.capturedID = id
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.profile == nil {
		return nil, apperrors.ErrProfileNotFound
	}
	return m.profile, nil
}

func (m *mockInvestorProfileRepository) ListUnswiped(ctx context.Context, startupID uuid.UUID) ([]*models.InvestorProfile, error) {
	m.capturedStartupID = startupID
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.profiles, nil
}

// mockStartupProfileRepository mirrors the investor mock for the startup side.
type mockStartupProfileRepository struct {
	profile   *models.StartupProfile
	profiles  []*models.StartupProfile
	upsertErr error
	getErr    error
	listErr   error

	capturedProfile    *models.StartupProfile
	capturedUserID     int64
	capturedID         uuid.UUID
	capturedInvestorID uuid.UUID
}

func (m *mockStartupProfileRepository) Upsert(ctx context.Context, profile *models.StartupProfile) error {
	m.capturedProfile = profile
	return m.upsertErr
}

func (m *mockStartupProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.StartupProfile, error) {
	m.capturedUserID = userID
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.profile == nil {
		return nil, apperrors.ErrProfileNotFound
	}
	return m.profile, nil
}

func (m *mockStartupProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.StartupProfile, error) {
	m.capturedID = id
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.profile == nil {
		return nil, apperrors.ErrProfileNotFound
	}
	return m.profile, nil
}

func (m *mockStartupProfileRepository) ListUnswiped(ctx context.Context, investorID uuid.UUID) ([]*models.StartupProfile, error) {
	m.capturedInvestorID = investorID
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.profiles, nil
}

// mockMatchRepository is a configurable mock for the match ledger.
type mockMatchRepository struct {
	match         *models.Match
	mutualMatches []*models.MutualMatch
	recordErr     error
	cacheErr      error
	listErr       error

	capturedInvestorID uuid.UUID
	capturedStartupID  uuid.UUID
	capturedAction     string
	capturedMatchID    uuid.UUID
	capturedScore      models.CompatibilityScore
	recordedSide       string
	cacheCalls         int
}

func (m *mockMatchRepository) GetByPair(ctx context.Context, investorID, startupID uuid.UUID) (*models.Match, error) {
	if m.match == nil {
		return nil, apperrors.ErrNotFound
	}
	return m.match, nil
}

func (m *mockMatchRepository) RecordInvestorInterest(ctx context.Context, investorID, startupID uuid.UUID, action string) (*models.Match, error) {
	m.capturedInvestorID = investorID
	m.capturedStartupID = startupID
	m.capturedAction = action
	m.recordedSide = "investor"
	if m.recordErr != nil {
		return nil, m.recordErr
	}
	return m.match, nil
}

func (m *mockMatchRepository) RecordStartupInterest(ctx context.Context, investorID, startupID uuid.UUID, action string) (*models.Match, error) {
	m.capturedInvestorID = investorID
	m.capturedStartupID = startupID
	m.capturedAction = action
	m.recordedSide = "startup"
	if m.recordErr != nil {
		return nil, m.recordErr
	}
	return m.match, nil
}

func (m *mockMatchRepository) CacheScore(ctx context.Context, matchID uuid.UUID, score models.CompatibilityScore) error {
	m.capturedMatchID = matchID
	m.capturedScore = score
	m.cacheCalls++
	return m.cacheErr
}

func (m *mockMatchRepository) ListMutualForInvestor(ctx context.Context, investorID uuid.UUID) ([]*models.MutualMatch, error) {
	m.capturedInvestorID = investorID
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.mutualMatches, nil
}

func (m *mockMatchRepository) ListMutualForStartup(ctx context.Context, startupID uuid.UUID) ([]*models.MutualMatch, error) {
	m.capturedStartupID = startupID
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.mutualMatches, nil
}
