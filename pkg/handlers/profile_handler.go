package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/venturelink/match-engine/pkg/apperrors"
	"github.com/venturelink/match-engine/pkg/models"
	"github.com/venturelink/match-engine/pkg/services"
)

// InvestorProfileRequest is the request body for upserting an investor profile.
type InvestorProfileRequest struct {
	UserID                int64    `json:"user_id"`
	InvestorType          string   `json:"investor_type"`
	InvestmentRangeMin    *int64   `json:"investment_range_min"`
	InvestmentRangeMax    *int64   `json:"investment_range_max"`
	PreferredStages       []string `json:"preferred_stages"`
	PreferredIndustries   []string `json:"preferred_industries"`
	GeographicFocus       []string `json:"geographic_focus"`
	PreferredTechnologies []string `json:"preferred_technologies"`
	PortfolioSize         int      `json:"portfolio_size"`
	SuccessfulExits       int      `json:"successful_exits"`
	Bio                   string   `json:"bio"`
	LinkedinURL           string   `json:"linkedin_url"`
	WebsiteURL            string   `json:"website_url"`
}

// StartupProfileRequest is the request body for upserting a startup profile.
type StartupProfileRequest struct {
	UserID               int64    `json:"user_id"`
	StartupName          string   `json:"startup_name"`
	Industry             string   `json:"industry"`
	Stage                string   `json:"stage"`
	FundingGoal          *int64   `json:"funding_goal"`
	CurrentRevenue       int64    `json:"current_revenue"`
	TeamSize             int      `json:"team_size"`
	FoundedYear          *int     `json:"founded_year"`
	Location             string   `json:"location"`
	Technologies         []string `json:"technologies"`
	ProblemStatement     string   `json:"problem_statement"`
	SolutionDescription  string   `json:"solution_description"`
	TargetMarket         string   `json:"target_market"`
	CompetitiveAdvantage string   `json:"competitive_advantage"`
	PitchDeckURL         string   `json:"pitch_deck_url"`
	WebsiteURL           string   `json:"website_url"`
	DemoURL              string   `json:"demo_url"`
	LogoURL              string   `json:"logo_url"`
}

// UpsertResponse acknowledges a profile upsert.
type UpsertResponse struct {
	Success bool `json:"success"`
}

// MyProfileResponse holds both of a user's profiles; either may be null.
type MyProfileResponse struct {
	Investor *models.InvestorProfile `json:"investor"`
	Startup  *models.StartupProfile  `json:"startup"`
}

// ProfileHandler handles investor/startup profile HTTP requests.
type ProfileHandler struct {
	profileService services.ProfileService
	logger         *zap.Logger
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService services.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// RegisterRoutes registers the profile handler's routes on the given mux.
func (h *ProfileHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/matching/investor-profile", h.UpsertInvestor)
	mux.HandleFunc("POST /api/matching/startup-profile", h.UpsertStartup)
	mux.HandleFunc("GET /api/matching/my-profile", h.MyProfile)
}

// UpsertInvestor handles POST /api/matching/investor-profile
// Creates or fully replaces the caller's investor profile.
func (h *ProfileHandler) UpsertInvestor(w http.ResponseWriter, r *http.Request) {
	var req InvestorProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	profile := &models.InvestorProfile{
		UserID:                req.UserID,
		InvestorType:          req.InvestorType,
		InvestmentRangeMin:    req.InvestmentRangeMin,
		InvestmentRangeMax:    req.InvestmentRangeMax,
		PreferredStages:       req.PreferredStages,
		PreferredIndustries:   req.PreferredIndustries,
		GeographicFocus:       req.GeographicFocus,
		PreferredTechnologies: req.PreferredTechnologies,
		PortfolioSize:         req.PortfolioSize,
		SuccessfulExits:       req.SuccessfulExits,
		Bio:                   req.Bio,
		LinkedinURL:           req.LinkedinURL,
		WebsiteURL:            req.WebsiteURL,
	}

	if err := h.profileService.UpsertInvestor(r.Context(), profile); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			if err := ErrorResponse(w, http.StatusBadRequest, "validation_failed", err.Error()); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to save investor profile",
			zap.Int64("user_id", req.UserID),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "save_failed", "Failed to save profile"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, UpsertResponse{Success: true}); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// UpsertStartup handles POST /api/matching/startup-profile
// Creates or fully replaces the caller's startup profile.
func (h *ProfileHandler) UpsertStartup(w http.ResponseWriter, r *http.Request) {
	var req StartupProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	profile := &models.StartupProfile{
		UserID:               req.UserID,
		StartupName:          req.StartupName,
		Industry:             req.Industry,
		Stage:                req.Stage,
		FundingGoal:          req.FundingGoal,
		CurrentRevenue:       req.CurrentRevenue,
		TeamSize:             req.TeamSize,
		FoundedYear:          req.FoundedYear,
		Location:             req.Location,
		Technologies:         req.Technologies,
		ProblemStatement:     req.ProblemStatement,
		SolutionDescription:  req.SolutionDescription,
		TargetMarket:         req.TargetMarket,
		CompetitiveAdvantage: req.CompetitiveAdvantage,
		PitchDeckURL:         req.PitchDeckURL,
		WebsiteURL:           req.WebsiteURL,
		DemoURL:              req.DemoURL,
		LogoURL:              req.LogoURL,
	}

	if err := h.profileService.UpsertStartup(r.Context(), profile); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			if err := ErrorResponse(w, http.StatusBadRequest, "validation_failed", err.Error()); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to save startup profile",
			zap.Int64("user_id", req.UserID),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "save_failed", "Failed to save profile"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, UpsertResponse{Success: true}); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// MyProfile handles GET /api/matching/my-profile?user_id=
// Returns both of the user's profiles; absent profiles are null.
func (h *ProfileHandler) MyProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID == 0 {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_user_id", "Valid user_id query parameter is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	investor, startup, err := h.profileService.GetMine(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to fetch profiles",
			zap.Int64("user_id", userID),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "fetch_failed", "Failed to fetch profile"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, MyProfileResponse{Investor: investor, Startup: startup}); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
