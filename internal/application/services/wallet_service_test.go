package services

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/bimakw/wallet-radar/internal/domain/entities"
	"github.com/bimakw/wallet-radar/internal/testutil"
)

func TestGetWalletPnL_FromReport(t *testing.T) {
	mock := testutil.NewMockTrackerAPI()
	mock.Portfolios[testutil.AliceAddress] = 3_000
	mock.Reports[testutil.AliceAddress] = testutil.CreateTestPnLReport(
		[2]float64{100, 0},
		[2]float64{-40, 0},
	)
	svc := NewWalletService(mock, zap.NewNop())

	summary, err := svc.GetWalletPnL(context.Background(), testutil.AliceAddress)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary == nil {
		t.Fatal("expected summary, got nil")
	}
	if summary.PortfolioValue != 3_000 || summary.RealizedPnL != 60 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if summary.WinRate != 50 {
		t.Errorf("expected win rate 50, got %d", summary.WinRate)
	}
}

func TestGetWalletPnL_TradeFallback(t *testing.T) {
	mock := testutil.NewMockTrackerAPI()
	mock.Trades[testutil.AliceAddress] = []entities.TradeRecord{
		testutil.CreateTestTrade(testutil.TokenAAddress, "sell", testutil.TestBaseTime, testutil.TradeWithPnL(10)),
		testutil.CreateTestTrade(testutil.TokenAAddress, "sell", testutil.TestBaseTime, testutil.TradeWithPnL(-5)),
		testutil.CreateTestTrade(testutil.TokenAAddress, "sell", testutil.TestBaseTime, testutil.TradeWithPnL(20)),
	}
	svc := NewWalletService(mock, zap.NewNop())

	summary, err := svc.GetWalletPnL(context.Background(), testutil.AliceAddress)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary == nil {
		t.Fatal("expected summary, got nil")
	}
	if summary.RealizedPnL != 25 || summary.WinRate != 67 {
		t.Errorf("unexpected fallback summary: %+v", summary)
	}
}

func TestGetWalletPnL_NoData(t *testing.T) {
	svc := NewWalletService(testutil.NewMockTrackerAPI(), zap.NewNop())

	summary, err := svc.GetWalletPnL(context.Background(), testutil.AliceAddress)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != nil {
		t.Errorf("expected nil summary for an unknown wallet, got %+v", summary)
	}
}

func TestGetWalletPnL_BothSourcesFailed(t *testing.T) {
	mock := testutil.NewMockTrackerAPI()
	mock.WalletPnLFunc = func(ctx context.Context, wallet string) (*entities.PnLReport, error) {
		return nil, errors.New("upstream down")
	}
	mock.WalletTradesFunc = func(ctx context.Context, wallet string) ([]entities.TradeRecord, error) {
		return nil, errors.New("upstream down")
	}
	svc := NewWalletService(mock, zap.NewNop())

	if _, err := svc.GetWalletPnL(context.Background(), testutil.AliceAddress); err == nil {
		t.Fatal("expected error when both sources failed")
	}
}

func TestGetTopTraders(t *testing.T) {
	mock := testutil.NewMockTrackerAPI()
	mock.Traders[testutil.TokenAAddress] = []entities.TraderRecord{
		{Wallet: testutil.AliceAddress, PnL: 1_000},
	}
	svc := NewWalletService(mock, zap.NewNop())

	traders, err := svc.GetTopTraders(context.Background(), testutil.TokenAAddress)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(traders) != 1 || traders[0].Wallet != testutil.AliceAddress {
		t.Errorf("unexpected traders: %+v", traders)
	}
}

func TestGetFirstBuyers_Error(t *testing.T) {
	mock := testutil.NewMockTrackerAPI()
	mock.FirstBuyersFunc = func(ctx context.Context, address string) ([]entities.FirstBuyer, error) {
		return nil, errors.New("upstream down")
	}
	svc := NewWalletService(mock, zap.NewNop())

	if _, err := svc.GetFirstBuyers(context.Background(), testutil.TokenAAddress); err == nil {
		t.Fatal("expected error passthrough")
	}
}
