package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bimakw/wallet-radar/internal/application/services"
	"github.com/bimakw/wallet-radar/internal/domain/entities"
	"github.com/bimakw/wallet-radar/internal/testutil"
)

func newWalletRouter(mock *testutil.MockTrackerAPI) chi.Router {
	logger := zap.NewNop()
	handler := NewWalletHandler(services.NewWalletService(mock, logger), logger)
	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func get(router chi.Router, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetWalletPnLHandler(t *testing.T) {
	mock := testutil.NewMockTrackerAPI()
	mock.Portfolios[testutil.AliceAddress] = 5_000
	mock.Reports[testutil.AliceAddress] = testutil.CreateTestPnLReport([2]float64{100, 20})
	router := newWalletRouter(mock)

	w := get(router, "/wallets/"+testutil.AliceAddress+"/pnl")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data entities.WalletSummary `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.PortfolioValue != 5_000 || resp.Data.RealizedPnL != 100 {
		t.Errorf("unexpected summary: %+v", resp.Data)
	}
}

func TestGetWalletPnLHandler_NotFound(t *testing.T) {
	router := newWalletRouter(testutil.NewMockTrackerAPI())

	if w := get(router, "/wallets/"+testutil.AliceAddress+"/pnl"); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown wallet, got %d", w.Code)
	}
}

func TestGetWalletPnLHandler_InvalidAddress(t *testing.T) {
	router := newWalletRouter(testutil.NewMockTrackerAPI())

	if w := get(router, "/wallets/invalid/pnl"); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestGetTopTradersHandler(t *testing.T) {
	mock := testutil.NewMockTrackerAPI()
	mock.Traders[testutil.TokenAAddress] = []entities.TraderRecord{
		{Wallet: testutil.AliceAddress, PnL: 9_000, WinRate: 70},
	}
	router := newWalletRouter(mock)

	w := get(router, "/tokens/"+testutil.TokenAAddress+"/top-traders")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Data []entities.TraderRecord `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Wallet != testutil.AliceAddress {
		t.Errorf("unexpected traders: %+v", resp.Data)
	}
}

func TestGetFirstBuyersHandler_UpstreamError(t *testing.T) {
	mock := testutil.NewMockTrackerAPI()
	mock.FirstBuyersFunc = func(ctx context.Context, address string) ([]entities.FirstBuyer, error) {
		return nil, errors.New("upstream down")
	}
	router := newWalletRouter(mock)

	if w := get(router, "/tokens/"+testutil.TokenAAddress+"/first-buyers"); w.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", w.Code)
	}
}

func TestIsValidAddress(t *testing.T) {
	cases := []struct {
		addr string
		want bool
	}{
		{testutil.TokenAAddress, true},
		{testutil.AliceAddress, true},
		{"", false},
		{"short", false},
		{"0x52908400098527886E0F7030069857D2E4169EE7abcdef", false}, // hex, not base58
		{testutil.TokenAAddress + testutil.TokenAAddress, false},  // too long
	}
	for _, tc := range cases {
		if got := isValidAddress(tc.addr); got != tc.want {
			t.Errorf("isValidAddress(%q) = %v, want %v", tc.addr, got, tc.want)
		}
	}
}
