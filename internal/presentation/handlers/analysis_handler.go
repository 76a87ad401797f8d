package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bimakw/wallet-radar/internal/application/services"
)

// AnalysisHandler handles HTTP requests for the overlap and recurrence scans
type AnalysisHandler struct {
	analysis   *services.AnalysisService
	recurrence *services.RecurrenceService
	maxTokens  int
	logger     *zap.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(
	analysis *services.AnalysisService,
	recurrence *services.RecurrenceService,
	maxTokens int,
	logger *zap.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		analysis:   analysis,
		recurrence: recurrence,
		maxTokens:  maxTokens,
		logger:     logger,
	}
}

// RegisterRoutes registers the analysis routes
func (h *AnalysisHandler) RegisterRoutes(r chi.Router) {
	r.Post("/analyze", h.Analyze)
	r.Post("/recurring", h.Recurring)
}

// ScanRequest is the request body for both scans
type ScanRequest struct {
	Tokens []string `json:"tokens"`
}

func (h *AnalysisHandler) parseScanRequest(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return nil, false
	}
	if len(req.Tokens) < 2 {
		respondError(w, http.StatusBadRequest, "At least two token addresses are required")
		return nil, false
	}
	if h.maxTokens > 0 && len(req.Tokens) > h.maxTokens {
		respondError(w, http.StatusBadRequest, "Too many tokens in one scan")
		return nil, false
	}
	for _, t := range req.Tokens {
		if !isValidAddress(t) {
			respondError(w, http.StatusBadRequest, "Invalid token address: "+t)
			return nil, false
		}
	}
	return req.Tokens, true
}

// Analyze handles POST /api/v1/analyze
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	tokens, ok := h.parseScanRequest(w, r)
	if !ok {
		return
	}

	result, err := h.analysis.AnalyzeTokens(r.Context(), tokens)
	if err != nil {
		h.logger.Error("Analysis failed", zap.Error(err), zap.Strings("tokens", tokens))
		respondError(w, http.StatusBadGateway, "Analysis failed: no token could be processed")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Recurring handles POST /api/v1/recurring
func (h *AnalysisHandler) Recurring(w http.ResponseWriter, r *http.Request) {
	tokens, ok := h.parseScanRequest(w, r)
	if !ok {
		return
	}

	result, err := h.recurrence.ScanRecurring(r.Context(), tokens)
	if err != nil {
		h.logger.Error("Recurrence scan failed", zap.Error(err), zap.Strings("tokens", tokens))
		respondError(w, http.StatusBadGateway, "Recurrence scan failed: no token could be processed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"data": result})
}
