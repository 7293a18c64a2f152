package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/venturelink/match-engine/pkg/apperrors"
	"github.com/venturelink/match-engine/pkg/models"
	"github.com/venturelink/match-engine/pkg/services"
)

// FindMatchesRequest is the request body for the find-matches endpoint.
type FindMatchesRequest struct {
	UserID int64  `json:"user_id"`
	Type   string `json:"type"`
}

// FindMatchesResponse holds the ranked candidate list.
type FindMatchesResponse struct {
	Matches []models.Candidate `json:"matches"`
}

// InterestRequest is the request body for the like endpoint.
type InterestRequest struct {
	UserID   int64  `json:"user_id"`
	TargetID string `json:"target_id"`
	Action   string `json:"action"`
	Type     string `json:"type"`
}

// InterestResponse acknowledges an interest action and reports mutuality.
type InterestResponse struct {
	Success  bool `json:"success"`
	IsMutual bool `json:"is_mutual"`
}

// MutualMatchesResponse holds the mutual matches for one requester.
type MutualMatchesResponse struct {
	Matches []*models.MutualMatch `json:"matches"`
}

// MatchingHandler handles match discovery and interest HTTP requests.
type MatchingHandler struct {
	matchService services.MatchService
	logger       *zap.Logger
}

// NewMatchingHandler creates a new matching handler.
func NewMatchingHandler(matchService services.MatchService, logger *zap.Logger) *MatchingHandler {
	return &MatchingHandler{
		matchService: matchService,
		logger:       logger,
	}
}

// RegisterRoutes registers the matching handler's routes on the given mux.
func (h *MatchingHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/matching/find-matches", h.FindMatches)
	mux.HandleFunc("POST /api/matching/like", h.RecordInterest)
	mux.HandleFunc("GET /api/matching/mutual-matches", h.MutualMatches)
}

// FindMatches handles POST /api/matching/find-matches
// Returns every unswiped candidate of the opposite role, scored and ranked.
func (h *MatchingHandler) FindMatches(w http.ResponseWriter, r *http.Request) {
	var req FindMatchesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if req.UserID == 0 {
		if err := ErrorResponse(w, http.StatusBadRequest, "missing_user_id", "user_id is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if !models.IsValidRole(req.Type) {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_type", "type must be one of: investor, startup"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	matches, err := h.matchService.FindMatches(r.Context(), req.UserID, req.Type)
	if err != nil {
		if errors.Is(err, apperrors.ErrProfileNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "profile_not_found", "Profile not found"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to find matches",
			zap.Int64("user_id", req.UserID),
			zap.String("type", req.Type),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "find_failed", "Failed to find matches"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if matches == nil {
		matches = []models.Candidate{}
	}
	if err := WriteJSON(w, http.StatusOK, FindMatchesResponse{Matches: matches}); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// RecordInterest handles POST /api/matching/like
// Records a one-sided swipe and reports whether the pair is now mutual.
func (h *MatchingHandler) RecordInterest(w http.ResponseWriter, r *http.Request) {
	var req InterestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if req.UserID == 0 {
		if err := ErrorResponse(w, http.StatusBadRequest, "missing_user_id", "user_id is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if !models.IsValidRole(req.Type) {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_type", "type must be one of: investor, startup"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if !models.IsValidInterestAction(req.Action) {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_action", "action must be one of: interested, passed"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_target_id", "Invalid target_id format"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	isMutual, err := h.matchService.RecordInterest(r.Context(), req.UserID, req.Type, targetID, req.Action)
	if err != nil {
		if errors.Is(err, apperrors.ErrProfileNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "profile_not_found", "Profile not found"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			if err := ErrorResponse(w, http.StatusBadRequest, "validation_failed", err.Error()); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to record interest",
			zap.Int64("user_id", req.UserID),
			zap.String("target_id", req.TargetID),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "interest_failed", "Failed to process action"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, InterestResponse{Success: true, IsMutual: isMutual}); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// MutualMatches handles GET /api/matching/mutual-matches?user_id=&type=
// Lists mutual matches joined with the opposite side's profile.
func (h *MatchingHandler) MutualMatches(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID == 0 {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_user_id", "Valid user_id query parameter is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	role := r.URL.Query().Get("type")
	if !models.IsValidRole(role) {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_type", "type must be one of: investor, startup"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	matches, err := h.matchService.MutualMatches(r.Context(), userID, role)
	if err != nil {
		h.logger.Error("Failed to fetch mutual matches",
			zap.Int64("user_id", userID),
			zap.String("type", role),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "fetch_failed", "Failed to fetch matches"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if matches == nil {
		matches = []*models.MutualMatch{}
	}
	if err := WriteJSON(w, http.StatusOK, MutualMatchesResponse{Matches: matches}); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
