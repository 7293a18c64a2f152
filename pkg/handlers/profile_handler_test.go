package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/venturelink/match-engine/pkg/apperrors"
	"github.com/venturelink/match-engine/pkg/models"
)

func TestProfileHandler_UpsertInvestor_Success(t *testing.T) {
	service := &mockProfileService{}
	handler := NewProfileHandler(service, zap.NewNop())

	body := `{
		"user_id": 42,
		"investor_type": "angel",
		"investment_range_min": 50000,
		"investment_range_max": 500000,
		"preferred_industries": ["FinTech"],
		"geographic_focus": ["Global"]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/matching/investor-profile", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.UpsertInvestor(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var response UpsertResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !response.Success {
		t.Error("expected success=true")
	}

	if service.capturedInvestor == nil {
		t.Fatal("expected profile to reach the service")
	}
	if service.capturedInvestor.UserID != 42 {
		t.Errorf("expected user_id 42, got %d", service.capturedInvestor.UserID)
	}
	if service.capturedInvestor.InvestmentRangeMin == nil || *service.capturedInvestor.InvestmentRangeMin != 50000 {
		t.Errorf("expected investment_range_min 50000, got %v", service.capturedInvestor.InvestmentRangeMin)
	}
}

func TestProfileHandler_UpsertInvestor_ValidationError(t *testing.T) {
	service := &mockProfileService{upsertErr: apperrors.ErrValidation}
	handler := NewProfileHandler(service, zap.NewNop())

	body := `{"user_id": 42, "investor_type": "bank"}`
	req := httptest.NewRequest(http.MethodPost, "/api/matching/investor-profile", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.UpsertInvestor(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "validation_failed") {
		t.Errorf("expected validation_failed error code, got %s", rec.Body.String())
	}
}

func TestProfileHandler_UpsertInvestor_MalformedBody(t *testing.T) {
	handler := NewProfileHandler(&mockProfileService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/matching/investor-profile", strings.NewReader(`{`))
	rec := httptest.NewRecorder()

	handler.UpsertInvestor(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestProfileHandler_UpsertStartup_Success(t *testing.T) {
	service := &mockProfileService{}
	handler := NewProfileHandler(service, zap.NewNop())

	body := `{
		"user_id": 7,
		"startup_name": "Acme",
		"industry": "FinTech",
		"stage": "seed",
		"funding_goal": 500000,
		"technologies": ["Go", "AI"]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/matching/startup-profile", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.UpsertStartup(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	if service.capturedStartup == nil {
		t.Fatal("expected profile to reach the service")
	}
	if service.capturedStartup.StartupName != "Acme" {
		t.Errorf("expected startup_name Acme, got %q", service.capturedStartup.StartupName)
	}
	if service.capturedStartup.FundingGoal == nil || *service.capturedStartup.FundingGoal != 500000 {
		t.Errorf("expected funding_goal 500000, got %v", service.capturedStartup.FundingGoal)
	}
}

func TestProfileHandler_UpsertStartup_ServiceError(t *testing.T) {
	service := &mockProfileService{upsertErr: errors.New("boom")}
	handler := NewProfileHandler(service, zap.NewNop())

	body := `{"user_id": 7, "startup_name": "Acme", "industry": "FinTech", "stage": "seed"}`
	req := httptest.NewRequest(http.MethodPost, "/api/matching/startup-profile", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.UpsertStartup(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
}

func TestProfileHandler_MyProfile_BothProfiles(t *testing.T) {
	service := &mockProfileService{
		investor: &models.InvestorProfile{UserID: 42, InvestorType: models.InvestorTypeAngel},
		startup:  &models.StartupProfile{UserID: 42, StartupName: "Acme"},
	}
	handler := NewProfileHandler(service, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/matching/my-profile?user_id=42", nil)
	rec := httptest.NewRecorder()

	handler.MyProfile(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response MyProfileResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Investor == nil || response.Startup == nil {
		t.Errorf("expected both profiles, got %+v", response)
	}
	if service.capturedUserID != 42 {
		t.Errorf("expected lookup for user 42, got %d", service.capturedUserID)
	}
}

func TestProfileHandler_MyProfile_NoProfilesAreNull(t *testing.T) {
	handler := NewProfileHandler(&mockProfileService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/matching/my-profile?user_id=42", nil)
	rec := httptest.NewRecorder()

	handler.MyProfile(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response MyProfileResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Investor != nil || response.Startup != nil {
		t.Errorf("expected null profiles, got %+v", response)
	}
}

func TestProfileHandler_MyProfile_MissingUserID(t *testing.T) {
	handler := NewProfileHandler(&mockProfileService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/matching/my-profile", nil)
	rec := httptest.NewRecorder()

	handler.MyProfile(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}
