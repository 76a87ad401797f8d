package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bimakw/wallet-radar/internal/application/services"
)

// WalletHandler handles HTTP requests for single-wallet and single-token lookups
type WalletHandler struct {
	service *services.WalletService
	logger  *zap.Logger
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(service *services.WalletService, logger *zap.Logger) *WalletHandler {
	return &WalletHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the lookup routes
func (h *WalletHandler) RegisterRoutes(r chi.Router) {
	r.Get("/wallets/{address}/pnl", h.GetWalletPnL)
	r.Get("/tokens/{address}/top-traders", h.GetTopTraders)
	r.Get("/tokens/{address}/first-buyers", h.GetFirstBuyers)
}

// GetWalletPnL handles GET /api/v1/wallets/{address}/pnl
func (h *WalletHandler) GetWalletPnL(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	if !isValidAddress(address) {
		respondError(w, http.StatusBadRequest, "Invalid address format")
		return
	}

	summary, err := h.service.GetWalletPnL(r.Context(), address)
	if err != nil {
		h.logger.Error("Failed to get wallet pnl", zap.Error(err), zap.String("wallet", address))
		respondError(w, http.StatusBadGateway, "Failed to get wallet pnl")
		return
	}
	if summary == nil {
		respondError(w, http.StatusNotFound, "no data for wallet")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"data": summary})
}

// GetTopTraders handles GET /api/v1/tokens/{address}/top-traders
func (h *WalletHandler) GetTopTraders(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	if !isValidAddress(address) {
		respondError(w, http.StatusBadRequest, "Invalid address format")
		return
	}

	traders, err := h.service.GetTopTraders(r.Context(), address)
	if err != nil {
		h.logger.Error("Failed to get top traders", zap.Error(err), zap.String("token", address))
		respondError(w, http.StatusBadGateway, "Failed to get top traders")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"data": traders})
}

// GetFirstBuyers handles GET /api/v1/tokens/{address}/first-buyers
func (h *WalletHandler) GetFirstBuyers(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	if !isValidAddress(address) {
		respondError(w, http.StatusBadRequest, "Invalid address format")
		return
	}

	buyers, err := h.service.GetFirstBuyers(r.Context(), address)
	if err != nil {
		h.logger.Error("Failed to get first buyers", zap.Error(err), zap.String("token", address))
		respondError(w, http.StatusBadGateway, "Failed to get first buyers")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"data": buyers})
}
