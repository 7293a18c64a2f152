package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/venturelink/match-engine/pkg/models"
)

// mockProfileService is a configurable mock for profile handler tests.
type mockProfileService struct {
	investor  *models.InvestorProfile
	startup   *models.StartupProfile
	upsertErr error
	getErr    error

	capturedInvestor *models.InvestorProfile
	capturedStartup  *models.StartupProfile
	capturedUserID   int64
}

func (m *mockProfileService) UpsertInvestor(ctx context.Context, profile *models.InvestorProfile) error {
	m.capturedInvestor = profile
	return m.upsertErr
}

func (m *mockProfileService) UpsertStartup(ctx context.Context, profile *models.StartupProfile) error {
	m.capturedStartup = profile
	return m.upsertErr
}

func (m *mockProfileService) GetMine(ctx context.Context, userID int64) (*models.InvestorProfile, *models.StartupProfile, error) {
	m.capturedUserID = userID
	if m.getErr != nil {
		return nil, nil, m.getErr
	}
	return m.investor, m.startup, nil
}

// mockMatchService is a configurable mock for matching handler tests.
type mockMatchService struct {
	candidates []models.Candidate
	mutual     []*models.MutualMatch
	isMutual   bool
	findErr    error
	recordErr  error
	mutualErr  error

	capturedUserID   int64
	capturedRole     string
	capturedTargetID uuid.UUID
	capturedAction   string
}

func (m *mockMatchService) FindMatches(ctx context.Context, userID int64, role string) ([]models.Candidate, error) {
	m.capturedUserID = userID
	m.capturedRole = role
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.candidates, nil
}

func (m *mockMatchService) RecordInterest(ctx context.Context, userID int64, role string, targetID uuid.UUID, action string) (bool, error) {
	m.capturedUserID = userID
	m.capturedRole = role
	m.capturedTargetID = targetID
	m.capturedAction = action
	if m.recordErr != nil {
		return false, m.recordErr
	}
	return m.isMutual, nil
}

func (m *mockMatchService) MutualMatches(ctx context.Context, userID int64, role string) ([]*models.MutualMatch, error) {
	m.capturedUserID = userID
	m.capturedRole = role
	if m.mutualErr != nil {
		return nil, m.mutualErr
	}
	return m.mutual, nil
}
